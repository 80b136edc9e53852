package game

import "strings"

// Tier is the prestige classification of a bowl or playoff game.
type Tier string

const (
	TierNone     Tier = ""
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// premiumMarkers is the only list of phrases that promote a postseason game to
// the premium tier. Matching is case-insensitive substring membership.
var premiumMarkers = []string{
	"national championship",
	"semifinal",
	"semi-final",
	"playoff",
	"rose",
	"sugar",
	"orange",
	"cotton",
	"fiesta",
	"peach",
}

// Classify derives the tier of a game from its free-text metadata (notes, game
// name). Types other than bowl and playoff have no tier.
func Classify(gameType Type, texts ...string) Tier {
	if !gameType.IsPostseasonTiered() {
		return TierNone
	}

	for _, text := range texts {
		normalized := strings.ToLower(text)
		if strings.TrimSpace(normalized) == "" {
			continue
		}
		for _, marker := range premiumMarkers {
			if strings.Contains(normalized, marker) {
				return TierPremium
			}
		}
	}

	return TierStandard
}

// Tier classifies the game using both its notes and name.
func (g Game) Tier() Tier {
	return Classify(g.GameType, g.Notes, g.Name)
}
