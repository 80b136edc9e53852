package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fortyozsucka/college-football-picks/internal/domain/historicalstats"
	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
	"github.com/fortyozsucka/college-football-picks/internal/domain/user"
	"github.com/fortyozsucka/college-football-picks/internal/platform/id"
	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
)

type ArchiveService struct {
	userRepo  user.Repository
	pickRepo  pick.Repository
	statsRepo historicalstats.Repository
	ids       id.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewArchiveService(
	userRepo user.Repository,
	pickRepo pick.Repository,
	statsRepo historicalstats.Repository,
	ids id.Generator,
	logger *logging.Logger,
) *ArchiveService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &ArchiveService{
		userRepo:  userRepo,
		pickRepo:  pickRepo,
		statsRepo: statsRepo,
		ids:       ids,
		logger:    logger,
		now:       time.Now,
	}
}

type ArchiveResult struct {
	Season int                     `json:"season"`
	Rows   []historicalstats.Stats `json:"rows"`
}

// ArchiveSeason writes one snapshot row per user for a finished season. An
// existing archive is never overwritten.
func (s *ArchiveService) ArchiveSeason(ctx context.Context, season int) (ArchiveResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArchiveService.ArchiveSeason")
	defer span.End()

	if season <= 0 {
		return ArchiveResult{}, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}

	exists, err := s.statsRepo.ExistsForSeason(ctx, season)
	if err != nil {
		return ArchiveResult{}, fmt.Errorf("check archive for season=%d: %w", season, err)
	}
	if exists {
		return ArchiveResult{}, fmt.Errorf("%w: season=%d", ErrAlreadyArchived, season)
	}

	tallies, err := loadSeasonTallies(ctx, s.userRepo, s.pickRepo, season)
	if err != nil {
		return ArchiveResult{}, err
	}

	archivedAt := s.now().UTC()
	rows := make([]historicalstats.Stats, 0, len(tallies))
	for _, item := range tallies {
		rowID, err := s.ids.NewID()
		if err != nil {
			return ArchiveResult{}, fmt.Errorf("generate archive row id: %w", err)
		}
		rows = append(rows, historicalstats.Stats{
			ID:             rowID,
			Season:         season,
			UserID:         item.UserID,
			Rank:           item.Rank,
			FinalScore:     item.Points,
			TotalPicks:     item.TotalPicks,
			Wins:           item.Wins,
			Losses:         item.Losses,
			Pushes:         item.Pushes,
			Unknown:        item.Unknown,
			DoubleDowns:    item.DoubleDowns,
			DoubleDownWins: item.DoubleDownWins,
			ArchivedAt:     archivedAt,
		})
	}

	if err := s.statsRepo.InsertSeason(ctx, season, rows); err != nil {
		if errors.Is(err, historicalstats.ErrSeasonExists) {
			return ArchiveResult{}, fmt.Errorf("%w: season=%d", ErrAlreadyArchived, season)
		}
		return ArchiveResult{}, fmt.Errorf("insert archive for season=%d: %w", season, err)
	}

	s.logger.InfoContext(ctx, "season archived",
		"season", season,
		"users", len(rows),
	)
	return ArchiveResult{Season: season, Rows: rows}, nil
}

func (s *ArchiveService) ListSeason(ctx context.Context, season int) ([]historicalstats.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArchiveService.ListSeason")
	defer span.End()

	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}

	rows, err := s.statsRepo.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("list archive for season=%d: %w", season, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no archive for season=%d", ErrNotFound, season)
	}
	return rows, nil
}
