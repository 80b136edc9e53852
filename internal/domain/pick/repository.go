package pick

import (
	"context"

	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
)

// WithGame is a pick joined with the game it belongs to.
type WithGame struct {
	Pick Pick
	Game game.Game
}

type Repository interface {
	ListUnscored(ctx context.Context, filter Filter) ([]WithGame, error)
	ListScored(ctx context.Context, filter Filter) ([]WithGame, error)
	ListBySeason(ctx context.Context, season int) ([]WithGame, error)
	// SumPointsByUser returns Σ points over scored picks, keyed by user id.
	SumPointsByUser(ctx context.Context) (map[string]int, error)
}
