package cache

import (
	"context"
	"testing"
	"time"

	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/domain/historicalstats"
	"github.com/fortyozsucka/college-football-picks/internal/infrastructure/repository/memory"
	basecache "github.com/fortyozsucka/college-football-picks/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingGameRepository struct {
	game.Repository
	listCalls int
}

func (r *countingGameRepository) ListBySeason(ctx context.Context, season int) ([]game.Game, error) {
	r.listCalls++
	return r.Repository.ListBySeason(ctx, season)
}

func TestGameRepository_CachesUntilUpsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingGameRepository{Repository: memory.NewGameRepository(memory.NewSeededStore())}
	repo := NewGameRepository(next, basecache.NewStore(time.Minute))

	first, err := repo.ListBySeason(ctx, memory.SeedSeason)
	require.NoError(t, err)
	_, err = repo.ListBySeason(ctx, memory.SeedSeason)
	require.NoError(t, err)
	assert.Equal(t, 1, next.listCalls)

	final := first[4]
	home, away := 34, 23
	final.HomeScore, final.AwayScore, final.Completed = &home, &away, true
	require.NoError(t, repo.Upsert(ctx, []game.Game{final}))

	refreshed, err := repo.ListBySeason(ctx, memory.SeedSeason)
	require.NoError(t, err)
	assert.Equal(t, 2, next.listCalls)
	assert.True(t, refreshed[4].HasFinalScore())

	got, ok, err := repo.GetByID(ctx, final.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ohio State", got.Winner())

	_, ok, err = repo.GetByID(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHistoricalStatsRepository_InsertDropsCachedMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewHistoricalStatsRepository(memory.NewHistoricalStatsRepository(memory.NewSeededStore()), basecache.NewStore(time.Minute))

	rows, err := repo.ListBySeason(ctx, 2025)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, repo.InsertSeason(ctx, 2025, []historicalstats.Stats{
		{ID: "hs-1", Season: 2025, UserID: "user-avery", Rank: 1, FinalScore: 3},
	}))

	rows, err = repo.ListBySeason(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "user-avery", rows[0].UserID)

	exists, err := repo.ExistsForSeason(ctx, 2025)
	require.NoError(t, err)
	assert.True(t, exists)
}
