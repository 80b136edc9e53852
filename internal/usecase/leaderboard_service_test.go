package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
	"github.com/fortyozsucka/college-football-picks/internal/domain/user"
	"github.com/fortyozsucka/college-football-picks/internal/infrastructure/repository/memory"
	"github.com/fortyozsucka/college-football-picks/internal/platform/cache"
	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legacyStore() *memory.Store {
	games := []game.Game{
		{ID: "g-1", Season: 2019, Week: 1, GameType: game.TypeRegular},
		{ID: "g-2", Season: 2019, Week: 2, GameType: game.TypeRegular},
		{ID: "g-3", Season: 2019, Week: 3, GameType: game.TypeRegular},
		{ID: "g-4", Season: 2020, Week: 1, GameType: game.TypeRegular},
	}
	users := []user.User{{ID: "u-a", Name: "A"}, {ID: "u-b", Name: "B"}, {ID: "u-c", Name: "C"}}
	picks := []pick.Pick{
		// Legacy rows carry points but no result tag.
		{ID: "p-1", UserID: "u-a", GameID: "g-1", Points: scoreRef(2), IsDoubleDown: true},
		{ID: "p-2", UserID: "u-a", GameID: "g-2", Points: scoreRef(0)},
		{ID: "p-3", UserID: "u-a", GameID: "g-3", Points: scoreRef(-1)},
		{ID: "p-4", UserID: "u-b", GameID: "g-1", Points: scoreRef(0), Result: pick.ResultPush},
		{ID: "p-5", UserID: "u-b", GameID: "g-2", Points: scoreRef(1), Result: pick.ResultWin},
		{ID: "p-6", UserID: "u-c", GameID: "g-1"},
		{ID: "p-7", UserID: "u-c", GameID: "g-4", Points: scoreRef(2)},
	}
	return memory.NewStore(games, users, picks)
}

func TestLeaderboardService_UnknownBucketForLegacyPicks(t *testing.T) {
	t.Parallel()

	store := legacyStore()
	service := NewLeaderboardService(memory.NewUserRepository(store), memory.NewPickRepository(store), nil, logging.NewNop())

	board, err := service.Leaderboard(context.Background(), 2019)
	require.NoError(t, err)
	require.Len(t, board.Entries, 3)

	byUser := make(map[string]LeaderboardEntry, len(board.Entries))
	for _, entry := range board.Entries {
		byUser[entry.UserID] = entry
	}

	a := byUser["u-a"]
	assert.Equal(t, 1, a.Points)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 1, a.Losses)
	assert.Equal(t, 1, a.Unknown, "zero-point legacy pick must not be counted as a loss")
	assert.Equal(t, 1, a.DoubleDownWins)

	b := byUser["u-b"]
	assert.Equal(t, 1, b.Points)
	assert.Equal(t, 1, b.Pushes)
	assert.Equal(t, 0, b.Unknown)

	c := byUser["u-c"]
	assert.Equal(t, 0, c.Points)
	assert.Equal(t, 1, c.Pending)
	assert.Equal(t, 1, c.TotalPicks)

	// a and b tie on 1 point and share rank 1; c is third.
	assert.Equal(t, 1, a.Rank)
	assert.Equal(t, 1, b.Rank)
	assert.Equal(t, 3, c.Rank)
}

func TestLeaderboardService_CacheInvalidatedAfterSettlement(t *testing.T) {
	t.Parallel()

	store := memory.NewSeededStore()
	picks := memory.NewPickRepository(store)
	users := memory.NewUserRepository(store)
	leaderboard := NewLeaderboardService(users, picks, cache.NewStore(time.Minute), logging.NewNop())
	settlement := NewSettlementService(picks, users, memory.NewLedgerRepository(store), leaderboard, nil, nil, logging.NewNop())
	ctx := context.Background()

	before, err := leaderboard.Leaderboard(ctx, memory.SeedSeason)
	require.NoError(t, err)
	for _, entry := range before.Entries {
		require.Equal(t, 0, entry.Points)
	}

	_, err = settlement.SettleUnscoredPicks(ctx, SettleInput{})
	require.NoError(t, err)

	after, err := leaderboard.Leaderboard(ctx, memory.SeedSeason)
	require.NoError(t, err)
	require.Equal(t, "user-avery", after.Entries[0].UserID)
	require.Equal(t, 3, after.Entries[0].Points)
}

func TestLeaderboardService_RejectsInvalidSeason(t *testing.T) {
	t.Parallel()

	store := memory.NewSeededStore()
	service := NewLeaderboardService(memory.NewUserRepository(store), memory.NewPickRepository(store), nil, nil)
	if _, err := service.Leaderboard(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
