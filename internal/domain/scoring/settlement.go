package scoring

import (
	"fmt"

	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
)

// Side is the team that covers the spread, or push.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	SidePush Side = "push"
)

// Settlement is the against-the-spread result of a final score.
type Settlement struct {
	HomeTeam       string
	AwayTeam       string
	Side           Side
	AdjustedMargin float64
}

// Settle adds the home-relative spread to the home margin: positive means the
// home team covers, negative the away team, zero is a push. Callers pass the
// spread locked on the pick, never the game's current line.
func Settle(homeScore, awayScore int, lockedSpread float64, homeTeam, awayTeam string) Settlement {
	adjusted := float64(homeScore-awayScore) + lockedSpread

	side := SidePush
	switch {
	case adjusted > 0:
		side = SideHome
	case adjusted < 0:
		side = SideAway
	}

	return Settlement{
		HomeTeam:       homeTeam,
		AwayTeam:       awayTeam,
		Side:           side,
		AdjustedMargin: adjusted,
	}
}

func (s Settlement) IsPush() bool {
	return s.Side == SidePush
}

// Winner returns the covering team, or "" on a push.
func (s Settlement) Winner() string {
	switch s.Side {
	case SideHome:
		return s.HomeTeam
	case SideAway:
		return s.AwayTeam
	default:
		return ""
	}
}

func (s Settlement) ResultFor(pickedTeam string) (pick.Result, error) {
	if pickedTeam == "" || (pickedTeam != s.HomeTeam && pickedTeam != s.AwayTeam) {
		return pick.ResultUnset, fmt.Errorf("%w: %q (home=%q away=%q)", ErrUnknownPickedTeam, pickedTeam, s.HomeTeam, s.AwayTeam)
	}
	if s.IsPush() {
		return pick.ResultPush, nil
	}
	if s.Winner() == pickedTeam {
		return pick.ResultWin, nil
	}
	return pick.ResultLoss, nil
}
