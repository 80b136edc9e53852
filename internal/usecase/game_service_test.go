package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/infrastructure/repository/memory"
	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameService_ListSeasonClassifiesTiers(t *testing.T) {
	t.Parallel()

	service := NewGameService(memory.NewGameRepository(memory.NewSeededStore()), logging.NewNop())

	games, err := service.ListSeason(context.Background(), memory.SeedSeason)
	require.NoError(t, err)
	require.Len(t, games, 5)

	byID := make(map[string]GameSummary, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}

	assert.Equal(t, game.TierNone, byID["game-001"].Tier)
	assert.Equal(t, 1, byID["game-001"].WinPoints)
	assert.Equal(t, game.TierPremium, byID["game-003"].Tier)
	assert.Equal(t, 2, byID["game-003"].WinPoints)
	assert.Equal(t, game.TierStandard, byID["game-004"].Tier)
	assert.Equal(t, 1, byID["game-004"].WinPoints)
	assert.Equal(t, game.TierNone, byID["game-005"].Tier, "championship is not tiered")
	assert.False(t, byID["game-005"].Completed)

	_, err = service.ListSeason(context.Background(), 0)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestGameService_Import(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(nil, nil, nil)
	repo := memory.NewGameRepository(store)
	service := NewGameService(repo, logging.NewNop())
	ctx := context.Background()

	count, err := service.Import(ctx, []game.Game{
		{ID: " g-1 ", Season: 2024, Week: 1, HomeTeam: "Army", AwayTeam: "Navy", GameType: "Rivalry"},
		{ID: "g-2", Season: 2024, Week: 16, HomeTeam: "Oregon", AwayTeam: "Ohio State", GameType: game.TypePlayoff, Name: "Rose Bowl"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stored, ok, err := repo.GetByID(ctx, "g-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, game.TypeRivalry, stored.GameType)

	tests := []struct {
		name  string
		games []game.Game
	}{
		{name: "missing id", games: []game.Game{{Season: 2024, HomeTeam: "A", AwayTeam: "B", GameType: game.TypeRegular}}},
		{name: "same teams", games: []game.Game{{ID: "x", Season: 2024, HomeTeam: "A", AwayTeam: "A", GameType: game.TypeRegular}}},
		{name: "unknown type", games: []game.Game{{ID: "x", Season: 2024, HomeTeam: "A", AwayTeam: "B", GameType: "exhibition"}}},
		{name: "half a score", games: []game.Game{{ID: "x", Season: 2024, HomeTeam: "A", AwayTeam: "B", GameType: game.TypeRegular, HomeScore: scoreRef(3)}}},
		{name: "duplicate id", games: []game.Game{
			{ID: "x", Season: 2024, HomeTeam: "A", AwayTeam: "B", GameType: game.TypeRegular},
			{ID: "x", Season: 2024, HomeTeam: "C", AwayTeam: "D", GameType: game.TypeRegular},
		}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Import(ctx, tc.games)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}

	_, ok, err = repo.GetByID(ctx, "x")
	require.NoError(t, err)
	assert.False(t, ok, "rejected batches must not write")
}
