package scoring

import (
	"fmt"

	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
)

// Outcome is everything settlement decides for one pick.
type Outcome struct {
	Result     pick.Result
	Points     int
	Tier       game.Tier
	Settlement Settlement
}

// Evaluate classifies, settles and scores one pick against its final game.
func Evaluate(g game.Game, p pick.Pick) (Outcome, error) {
	if !g.HasFinalScore() {
		return Outcome{}, fmt.Errorf("%w: game=%s", ErrGameNotFinal, g.ID)
	}
	gameType, err := game.ParseType(string(g.GameType))
	if err != nil {
		return Outcome{}, fmt.Errorf("game=%s: %w", g.ID, err)
	}

	settlement := Settle(*g.HomeScore, *g.AwayScore, p.LockedSpread, g.HomeTeam, g.AwayTeam)
	result, err := settlement.ResultFor(p.PickedTeam)
	if err != nil {
		return Outcome{}, fmt.Errorf("pick=%s: %w", p.ID, err)
	}

	tier := game.Classify(gameType, g.Notes, g.Name)
	points, err := Points(gameType, tier, result == pick.ResultWin, result == pick.ResultPush, p.IsDoubleDown)
	if err != nil {
		return Outcome{}, fmt.Errorf("pick=%s: %w", p.ID, err)
	}

	return Outcome{
		Result:     result,
		Points:     points,
		Tier:       tier,
		Settlement: settlement,
	}, nil
}

// DeriveLegacyResult recovers an outcome from points alone for picks stored
// before result tags existed. Zero points is ambiguous (push, standard-tier
// loss or push on any pick) and stays unset.
func DeriveLegacyResult(p pick.Pick) pick.Result {
	if p.Result.IsSettled() {
		return p.Result
	}
	if p.Points == nil {
		return pick.ResultUnset
	}
	switch {
	case *p.Points > 0:
		return pick.ResultWin
	case *p.Points < 0:
		return pick.ResultLoss
	default:
		return pick.ResultUnset
	}
}
