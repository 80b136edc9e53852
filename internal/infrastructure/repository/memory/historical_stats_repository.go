package memory

import (
	"context"
	"fmt"

	"github.com/fortyozsucka/college-football-picks/internal/domain/historicalstats"
)

type HistoricalStatsRepository struct {
	store *Store
}

func NewHistoricalStatsRepository(store *Store) *HistoricalStatsRepository {
	return &HistoricalStatsRepository{store: store}
}

func (r *HistoricalStatsRepository) ExistsForSeason(_ context.Context, season int) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.stats[season]
	return ok, nil
}

func (r *HistoricalStatsRepository) InsertSeason(_ context.Context, season int, items []historicalstats.Stats) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.stats[season]; exists {
		return fmt.Errorf("%w: season=%d", historicalstats.ErrSeasonExists, season)
	}
	r.store.stats[season] = append([]historicalstats.Stats(nil), items...)
	return nil
}

func (r *HistoricalStatsRepository) ListBySeason(_ context.Context, season int) ([]historicalstats.Stats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]historicalstats.Stats(nil), r.store.stats[season]...), nil
}
