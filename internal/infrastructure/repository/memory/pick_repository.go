package memory

import (
	"context"

	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
)

type PickRepository struct {
	store *Store
}

func NewPickRepository(store *Store) *PickRepository {
	return &PickRepository{store: store}
}

func (r *PickRepository) ListUnscored(_ context.Context, filter pick.Filter) ([]pick.WithGame, error) {
	return r.list(filter, func(p pick.Pick) bool { return !p.IsScored() }), nil
}

func (r *PickRepository) ListScored(_ context.Context, filter pick.Filter) ([]pick.WithGame, error) {
	return r.list(filter, func(p pick.Pick) bool { return p.IsScored() }), nil
}

func (r *PickRepository) ListBySeason(_ context.Context, season int) ([]pick.WithGame, error) {
	return r.list(pick.Filter{Season: season}, nil), nil
}

func (r *PickRepository) SumPointsByUser(_ context.Context) (map[string]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[string]int)
	for _, item := range r.store.picks {
		if !item.IsScored() {
			continue
		}
		out[item.UserID] += *item.Points
	}
	return out, nil
}

func (r *PickRepository) list(filter pick.Filter, keep func(pick.Pick) bool) []pick.WithGame {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idSet := make(map[string]struct{}, len(filter.IDs))
	for _, id := range filter.IDs {
		idSet[id] = struct{}{}
	}

	out := make([]pick.WithGame, 0)
	for _, id := range r.store.sortedPickIDs() {
		item := r.store.picks[id]
		if keep != nil && !keep(item) {
			continue
		}
		if len(idSet) > 0 {
			if _, ok := idSet[item.ID]; !ok {
				continue
			}
		}
		if filter.UserID != "" && item.UserID != filter.UserID {
			continue
		}

		g, ok := r.store.games[item.GameID]
		if !ok {
			g = game.Game{ID: item.GameID}
		}
		if filter.Season > 0 && g.Season != filter.Season {
			continue
		}
		if filter.Week > 0 && g.Week != filter.Week {
			continue
		}
		if filter.GameType != "" && string(g.GameType) != filter.GameType {
			continue
		}

		out = append(out, pick.WithGame{Pick: clonePick(item), Game: cloneGame(g)})
	}
	return out
}
