package game

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

var ErrUnknownGameType = errors.New("unknown game type")

// Type classifies a game for scoring purposes.
type Type string

const (
	TypeRegular      Type = "regular"
	TypeBowl         Type = "bowl"
	TypePlayoff      Type = "playoff"
	TypeChampionship Type = "championship"
	TypeRivalry      Type = "rivalry"
)

var AllTypes = map[Type]struct{}{
	TypeRegular:      {},
	TypeBowl:         {},
	TypePlayoff:      {},
	TypeChampionship: {},
	TypeRivalry:      {},
}

func ParseType(raw string) (Type, error) {
	value := Type(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := AllTypes[value]; !ok {
		return "", errors.Wrapf(ErrUnknownGameType, "%q", raw)
	}
	return value, nil
}

// IsPostseasonTiered reports whether points for this type depend on a prestige tier.
func (t Type) IsPostseasonTiered() bool {
	return t == TypeBowl || t == TypePlayoff
}

// Game is one scheduled contest. Scores stay nil until the sync marks them final.
type Game struct {
	ID         string
	ExternalID string
	Season     int
	Week       int
	HomeTeam   string
	AwayTeam   string
	HomeScore  *int
	AwayScore  *int
	Spread     float64
	GameType   Type
	Name       string
	Notes      string
	Completed  bool
	StartTime  time.Time
}

// HasFinalScore reports whether the game is complete and both scores arrived.
func (g Game) HasFinalScore() bool {
	return g.Completed && g.HomeScore != nil && g.AwayScore != nil
}

// IsMissingScores flags the transient state where the sync set completed before scores.
func (g Game) IsMissingScores() bool {
	return g.Completed && (g.HomeScore == nil || g.AwayScore == nil)
}

// Winner returns the straight-up winner, or "" for ties and unfinished games.
func (g Game) Winner() string {
	if !g.HasFinalScore() {
		return ""
	}
	switch {
	case *g.HomeScore > *g.AwayScore:
		return g.HomeTeam
	case *g.AwayScore > *g.HomeScore:
		return g.AwayTeam
	default:
		return ""
	}
}

func (g Game) HasTeam(team string) bool {
	return team != "" && (team == g.HomeTeam || team == g.AwayTeam)
}
