package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/domain/scoring"
	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
)

type GameService struct {
	gameRepo game.Repository
	logger   *logging.Logger
}

func NewGameService(gameRepo game.Repository, logger *logging.Logger) *GameService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameService{
		gameRepo: gameRepo,
		logger:   logger,
	}
}

// GameSummary is a game as the scoring engine sees it: its derived tier and
// what a correct single pick on it is worth.
type GameSummary struct {
	ID        string    `json:"id"`
	Season    int       `json:"season"`
	Week      int       `json:"week"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeScore *int      `json:"home_score,omitempty"`
	AwayScore *int      `json:"away_score,omitempty"`
	Spread    float64   `json:"spread"`
	GameType  game.Type `json:"game_type"`
	Tier      game.Tier `json:"tier,omitempty"`
	WinPoints int       `json:"win_points"`
	Name      string    `json:"name,omitempty"`
	Completed bool      `json:"completed"`
	StartTime time.Time `json:"start_time"`
}

func (s *GameService) ListSeason(ctx context.Context, season int) ([]GameSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.ListSeason")
	defer span.End()

	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}

	games, err := s.gameRepo.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("list games for season %d: %w", season, err)
	}

	out := make([]GameSummary, 0, len(games))
	for _, g := range games {
		tier := g.Tier()
		winPoints, err := scoring.Points(g.GameType, tier, true, false, false)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", g.ID, err)
		}
		out = append(out, GameSummary{
			ID:        g.ID,
			Season:    g.Season,
			Week:      g.Week,
			HomeTeam:  g.HomeTeam,
			AwayTeam:  g.AwayTeam,
			HomeScore: g.HomeScore,
			AwayScore: g.AwayScore,
			Spread:    g.Spread,
			GameType:  g.GameType,
			Tier:      tier,
			WinPoints: winPoints,
			Name:      g.Name,
			Completed: g.Completed,
			StartTime: g.StartTime,
		})
	}
	return out, nil
}

// Import upserts games from an external schedule feed. The whole batch is
// rejected if any game fails validation.
func (s *GameService) Import(ctx context.Context, games []game.Game) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Import")
	defer span.End()

	if len(games) == 0 {
		return 0, nil
	}

	seen := make(map[string]struct{}, len(games))
	items := make([]game.Game, 0, len(games))
	for i, g := range games {
		normalized, err := normalizeImportedGame(g)
		if err != nil {
			return 0, fmt.Errorf("%w: games[%d]: %v", ErrInvalidInput, i, err)
		}
		if _, ok := seen[normalized.ID]; ok {
			return 0, fmt.Errorf("%w: games[%d]: duplicate id %q", ErrInvalidInput, i, normalized.ID)
		}
		seen[normalized.ID] = struct{}{}
		items = append(items, normalized)
	}

	if err := s.gameRepo.Upsert(ctx, items); err != nil {
		return 0, fmt.Errorf("upsert games: %w", err)
	}

	s.logger.InfoContext(ctx, "games imported", "count", len(items))
	return len(items), nil
}

func normalizeImportedGame(g game.Game) (game.Game, error) {
	g.ID = strings.TrimSpace(g.ID)
	g.HomeTeam = strings.TrimSpace(g.HomeTeam)
	g.AwayTeam = strings.TrimSpace(g.AwayTeam)

	if g.ID == "" {
		return game.Game{}, fmt.Errorf("id is required")
	}
	if g.Season <= 0 || g.Week < 0 {
		return game.Game{}, fmt.Errorf("season and week must be positive")
	}
	if g.HomeTeam == "" || g.AwayTeam == "" || g.HomeTeam == g.AwayTeam {
		return game.Game{}, fmt.Errorf("home and away teams must be distinct and non-empty")
	}
	gameType, err := game.ParseType(string(g.GameType))
	if err != nil {
		return game.Game{}, err
	}
	g.GameType = gameType
	if (g.HomeScore == nil) != (g.AwayScore == nil) {
		return game.Game{}, fmt.Errorf("home and away scores must be set together")
	}
	return g, nil
}
