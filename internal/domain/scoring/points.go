package scoring

import (
	"fmt"

	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
)

const (
	premiumWinPoints  = 2
	premiumMissPoints = -1

	standardWinPoints  = 1
	standardMissPoints = 0

	baseWinPoints    = 1
	baseLossPoints   = -1
	doubleDownFactor = 2
)

// Points maps a settled pick to its award. Premium postseason picks are always
// scored as double-down-equivalent and ignore the flag; standard postseason
// picks have no downside; every other type uses base ±1 doubled by double-down.
func Points(gameType game.Type, tier game.Tier, isWin, isPush, isDoubleDown bool) (int, error) {
	if _, ok := game.AllTypes[gameType]; !ok {
		return 0, fmt.Errorf("%w: %q", game.ErrUnknownGameType, gameType)
	}
	if isWin && isPush {
		return 0, ErrConflictingOutcome
	}

	if gameType.IsPostseasonTiered() {
		switch tier {
		case game.TierPremium:
			if isWin {
				return premiumWinPoints, nil
			}
			return premiumMissPoints, nil
		case game.TierStandard:
			if isWin {
				return standardWinPoints, nil
			}
			return standardMissPoints, nil
		default:
			return 0, fmt.Errorf("%w: type=%s tier=%q", ErrMissingTier, gameType, tier)
		}
	}

	if isPush {
		return 0, nil
	}

	points := baseLossPoints
	if isWin {
		points = baseWinPoints
	}
	if isDoubleDown {
		points *= doubleDownFactor
	}
	return points, nil
}
