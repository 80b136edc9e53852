package historicalstats

import (
	"time"

	"github.com/cockroachdb/errors"
)

// ErrSeasonExists is returned when a season already has snapshot rows.
var ErrSeasonExists = errors.New("historical stats already exist for season")

// Stats is an immutable end-of-season snapshot for one user.
type Stats struct {
	ID             string
	Season         int
	UserID         string
	Rank           int
	FinalScore     int
	TotalPicks     int
	Wins           int
	Losses         int
	Pushes         int
	Unknown        int
	DoubleDowns    int
	DoubleDownWins int
	ArchivedAt     time.Time
}
