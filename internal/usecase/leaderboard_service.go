package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
	"github.com/fortyozsucka/college-football-picks/internal/domain/user"
	"github.com/fortyozsucka/college-football-picks/internal/platform/cache"
	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
)

const leaderboardCachePrefix = "leaderboard:season:"

type LeaderboardService struct {
	userRepo user.Repository
	pickRepo pick.Repository
	cache    *cache.Store
	logger   *logging.Logger
}

func NewLeaderboardService(userRepo user.Repository, pickRepo pick.Repository, store *cache.Store, logger *logging.Logger) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{
		userRepo: userRepo,
		pickRepo: pickRepo,
		cache:    store,
		logger:   logger,
	}
}

type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	UserID         string `json:"user_id"`
	UserName       string `json:"user_name"`
	Points         int    `json:"points"`
	TotalPicks     int    `json:"total_picks"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	Pushes         int    `json:"pushes"`
	Unknown        int    `json:"unknown"`
	Pending        int    `json:"pending"`
	DoubleDowns    int    `json:"double_downs"`
	DoubleDownWins int    `json:"double_down_wins"`
}

type Leaderboard struct {
	Season  int                `json:"season"`
	Entries []LeaderboardEntry `json:"entries"`
}

// Leaderboard ranks users by season points. Picks whose outcome cannot be told
// from legacy data are counted as Unknown, never as losses.
func (s *LeaderboardService) Leaderboard(ctx context.Context, season int) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard")
	defer span.End()

	if season <= 0 {
		return Leaderboard{}, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}

	if s.cache == nil {
		return s.build(ctx, season)
	}

	value, err := s.cache.GetOrLoad(ctx, leaderboardCachePrefix+strconv.Itoa(season), func(ctx context.Context) (any, error) {
		return s.build(ctx, season)
	})
	if err != nil {
		return Leaderboard{}, err
	}
	board, ok := value.(Leaderboard)
	if !ok {
		return Leaderboard{}, fmt.Errorf("unexpected leaderboard cache value %T", value)
	}
	return board, nil
}

// ScoresChanged drops every cached season.
func (s *LeaderboardService) ScoresChanged(ctx context.Context) {
	if s.cache == nil {
		return
	}
	removed := s.cache.DeletePrefix(ctx, leaderboardCachePrefix)
	s.logger.DebugContext(ctx, "leaderboard cache invalidated", "seasons", removed)
}

func (s *LeaderboardService) build(ctx context.Context, season int) (Leaderboard, error) {
	tallies, err := loadSeasonTallies(ctx, s.userRepo, s.pickRepo, season)
	if err != nil {
		return Leaderboard{}, err
	}

	out := Leaderboard{
		Season:  season,
		Entries: make([]LeaderboardEntry, 0, len(tallies)),
	}
	for _, item := range tallies {
		out.Entries = append(out.Entries, LeaderboardEntry{
			Rank:           item.Rank,
			UserID:         item.UserID,
			UserName:       item.UserName,
			Points:         item.Points,
			TotalPicks:     item.TotalPicks,
			Wins:           item.Wins,
			Losses:         item.Losses,
			Pushes:         item.Pushes,
			Unknown:        item.Unknown,
			Pending:        item.TotalPicks - item.Scored,
			DoubleDowns:    item.DoubleDowns,
			DoubleDownWins: item.DoubleDownWins,
		})
	}
	return out, nil
}
