package cache

import (
	"context"
	"strconv"

	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/domain/historicalstats"
	basecache "github.com/fortyozsucka/college-football-picks/internal/platform/cache"
)

const (
	gameKeyPrefix         = "game:"
	historicalStatsPrefix = "historical-stats:season:"
)

// GameRepository caches schedule reads. Scores change only through Upsert,
// which drops every cached game.
type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, gameKeyPrefix+"id:"+gameID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, gameID)
		if err != nil {
			return nil, err
		}
		return cachedGameByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return game.Game{}, false, err
	}

	cached, _ := v.(cachedGameByID)
	return cached.value, cached.exists, nil
}

type cachedGameByID struct {
	value  game.Game
	exists bool
}

func (r *GameRepository) ListBySeason(ctx context.Context, season int) ([]game.Game, error) {
	v, err := r.cache.GetOrLoad(ctx, gameKeyPrefix+"season:"+strconv.Itoa(season), func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, season)
		if err != nil {
			return nil, err
		}
		return append([]game.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Game)
	return append([]game.Game(nil), items...), nil
}

func (r *GameRepository) Upsert(ctx context.Context, items []game.Game) error {
	if err := r.next.Upsert(ctx, items); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, gameKeyPrefix)
	return nil
}

// HistoricalStatsRepository caches archived seasons. Rows are written once per
// season, so only a season's negative lookups need dropping on insert.
type HistoricalStatsRepository struct {
	next  historicalstats.Repository
	cache *basecache.Store
}

func NewHistoricalStatsRepository(next historicalstats.Repository, cache *basecache.Store) *HistoricalStatsRepository {
	return &HistoricalStatsRepository{next: next, cache: cache}
}

func (r *HistoricalStatsRepository) ExistsForSeason(ctx context.Context, season int) (bool, error) {
	// Archive checks gate a write, so they always go to the store.
	return r.next.ExistsForSeason(ctx, season)
}

func (r *HistoricalStatsRepository) InsertSeason(ctx context.Context, season int, items []historicalstats.Stats) error {
	if err := r.next.InsertSeason(ctx, season, items); err != nil {
		return err
	}
	r.cache.Delete(ctx, historicalStatsKey(season))
	return nil
}

func (r *HistoricalStatsRepository) ListBySeason(ctx context.Context, season int) ([]historicalstats.Stats, error) {
	v, err := r.cache.GetOrLoad(ctx, historicalStatsKey(season), func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, season)
		if err != nil {
			return nil, err
		}
		return append([]historicalstats.Stats(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]historicalstats.Stats)
	return append([]historicalstats.Stats(nil), items...), nil
}

func historicalStatsKey(season int) string {
	return historicalStatsPrefix + strconv.Itoa(season)
}
