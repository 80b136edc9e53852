package pick

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

var ErrInvalidTransition = errors.New("invalid pick status transition")

// Result is the settled outcome of a pick against the spread.
type Result string

const (
	ResultUnset Result = ""
	ResultWin   Result = "win"
	ResultLoss  Result = "loss"
	ResultPush  Result = "push"
)

func (r Result) IsSettled() bool {
	return r == ResultWin || r == ResultLoss || r == ResultPush
}

// Status is the scoring state of a pick. SCORED is left only through an
// administrative reset.
type Status string

const (
	StatusUnscored Status = "unscored"
	StatusScored   Status = "scored"
)

func CanTransition(from, to Status) bool {
	switch {
	case from == StatusUnscored && to == StatusScored:
		return true
	case from == StatusScored && to == StatusUnscored:
		return true
	default:
		return false
	}
}

func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// Pick is one user's selection for one game. LockedSpread is captured at
// submission time and never follows later line movement.
type Pick struct {
	ID           string
	UserID       string
	GameID       string
	PickedTeam   string
	LockedSpread float64
	IsDoubleDown bool
	Points       *int
	Result       Result
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p Pick) Status() Status {
	if p.Points != nil {
		return StatusScored
	}
	return StatusUnscored
}

func (p Pick) IsScored() bool {
	return p.Points != nil
}

// PointsValue returns the scored points, or 0 when unscored.
func (p Pick) PointsValue() int {
	if p.Points == nil {
		return 0
	}
	return *p.Points
}

// Filter narrows pick listings. Zero values mean "any".
type Filter struct {
	IDs      []string
	UserID   string
	Season   int
	Week     int
	GameType string
}
