package scoring

import (
	"context"
	"time"

	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
)

// PickScore is the write produced by settling one pick.
type PickScore struct {
	PickID   string
	UserID   string
	Points   int
	Result   pick.Result
	ScoredAt time.Time
}

// PickReset describes what a reset removed from a pick and its owner.
type PickReset struct {
	PickID         string
	UserID         string
	PreviousPoints int
	PreviousResult pick.Result
}

// Ledger performs the per-pick writes that must stay consistent with the
// owner's cached total. Each call is one atomic unit.
type Ledger interface {
	// ApplyPickScore sets points/result on an unscored pick and adds the points
	// to the owner's total. Returns ErrAlreadyScored when points are non-null.
	ApplyPickScore(ctx context.Context, score PickScore) error
	// ResetPickScore nulls points/result on a scored pick and subtracts the old
	// points from the owner's total. Returns ErrNotScored when already null.
	ResetPickScore(ctx context.Context, pickID string) (PickReset, error)
}
