package game

import "context"

type Repository interface {
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	ListBySeason(ctx context.Context, season int) ([]Game, error)
	Upsert(ctx context.Context, items []Game) error
}
