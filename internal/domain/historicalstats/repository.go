package historicalstats

import "context"

type Repository interface {
	ExistsForSeason(ctx context.Context, season int) (bool, error)
	// InsertSeason stores all rows of a season at once; rows are never updated afterwards.
	InsertSeason(ctx context.Context, season int, items []Stats) error
	ListBySeason(ctx context.Context, season int) ([]Stats, error)
}
