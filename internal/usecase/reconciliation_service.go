package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
	"github.com/fortyozsucka/college-football-picks/internal/domain/user"
	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
	"github.com/fortyozsucka/college-football-picks/internal/platform/resilience"
	"github.com/fortyozsucka/college-football-picks/internal/platform/tracing"
	"github.com/panjf2000/ants/v2"
)

const (
	batchOpResync = "resync"

	defaultResyncWorkers = 4
	maxResyncWorkers     = 16
)

type ReconciliationService struct {
	pickRepo       pick.Repository
	userRepo       user.Repository
	listener       ScoreChangeListener
	logger         *logging.Logger
	runFlight      *resilience.SingleFlight
	defaultWorkers int
}

func NewReconciliationService(
	pickRepo pick.Repository,
	userRepo user.Repository,
	listener ScoreChangeListener,
	runFlight *resilience.SingleFlight,
	defaultWorkers int,
	logger *logging.Logger,
) *ReconciliationService {
	if logger == nil {
		logger = logging.Default()
	}
	if runFlight == nil {
		runFlight = &resilience.SingleFlight{}
	}
	if defaultWorkers <= 0 {
		defaultWorkers = defaultResyncWorkers
	}
	return &ReconciliationService{
		pickRepo:       pickRepo,
		userRepo:       userRepo,
		listener:       listener,
		logger:         logger,
		runFlight:      runFlight,
		defaultWorkers: defaultWorkers,
	}
}

type Discrepancy struct {
	UserID          string `json:"user_id"`
	UserName        string `json:"user_name"`
	StoredTotal     int    `json:"stored_total"`
	CalculatedTotal int    `json:"calculated_total"`
	Discrepancy     int    `json:"discrepancy"`
}

type AuditSummary struct {
	UsersChecked             int `json:"users_checked"`
	UsersWithDiscrepancy     int `json:"users_with_discrepancy"`
	TotalAbsoluteDiscrepancy int `json:"total_absolute_discrepancy"`
}

type AuditReport struct {
	Discrepancies []Discrepancy `json:"discrepancies"`
	Summary       AuditSummary  `json:"summary"`
}

// Audit compares each user's stored total with the sum of their scored picks.
// It only reports; Resync is the repair path.
func (s *ReconciliationService) Audit(ctx context.Context) (AuditReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconciliationService.Audit")
	defer span.End()

	users, sums, err := s.loadTotals(ctx)
	if err != nil {
		return AuditReport{}, err
	}

	report := AuditReport{
		Discrepancies: findDiscrepancies(users, sums),
		Summary:       AuditSummary{UsersChecked: len(users)},
	}
	report.Summary.UsersWithDiscrepancy = len(report.Discrepancies)
	for _, item := range report.Discrepancies {
		report.Summary.TotalAbsoluteDiscrepancy += absInt(item.Discrepancy)
	}

	if report.Summary.UsersWithDiscrepancy > 0 {
		s.logger.WarnContext(ctx, "score audit found discrepancies",
			"users_checked", report.Summary.UsersChecked,
			"users_with_discrepancy", report.Summary.UsersWithDiscrepancy,
			"total_absolute_discrepancy", report.Summary.TotalAbsoluteDiscrepancy,
		)
	}
	return report, nil
}

type ResyncInput struct {
	DryRun     bool
	MaxWorkers int
}

type ResyncResult struct {
	DryRun         bool          `json:"dry_run"`
	UsersChecked   int           `json:"users_checked"`
	UsersWritten   int           `json:"users_written"`
	UsersCorrected int           `json:"users_corrected"`
	WorkerCount    int           `json:"worker_count"`
	Corrections    []Discrepancy `json:"corrections"`
}

// Resync overwrites every user's total with the sum of their scored picks.
// Running it twice in a row leaves nothing for the second run to correct.
func (s *ReconciliationService) Resync(ctx context.Context, input ResyncInput) (ResyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconciliationService.Resync")
	defer span.End()

	if input.MaxWorkers < 0 {
		return ResyncResult{}, fmt.Errorf("%w: max workers must not be negative", ErrInvalidInput)
	}

	var result ResyncResult
	_, err, ran := s.runFlight.TryDo(scoringRunKey, func() (any, error) {
		var runErr error
		result, runErr = s.resync(ctx, input)
		return nil, runErr
	})
	if !ran {
		return ResyncResult{}, ErrScoringInProgress
	}
	if !input.DryRun && result.UsersWritten > 0 && s.listener != nil {
		s.listener.ScoresChanged(ctx)
	}
	if err != nil {
		tracing.Fail(span, err)
		s.logger.ErrorContext(ctx, "score resync failed",
			"users_written", result.UsersWritten,
			"error", err,
		)
		return result, err
	}

	s.logger.InfoContext(ctx, "score resync finished",
		"dry_run", result.DryRun,
		"users_checked", result.UsersChecked,
		"users_written", result.UsersWritten,
		"users_corrected", result.UsersCorrected,
		"worker_count", result.WorkerCount,
	)
	return result, nil
}

func (s *ReconciliationService) resync(ctx context.Context, input ResyncInput) (ResyncResult, error) {
	users, sums, err := s.loadTotals(ctx)
	if err != nil {
		return ResyncResult{}, err
	}

	corrections := findDiscrepancies(users, sums)
	result := ResyncResult{
		DryRun:         input.DryRun,
		UsersChecked:   len(users),
		UsersCorrected: len(corrections),
		Corrections:    corrections,
	}
	if input.DryRun || len(users) == 0 {
		return result, nil
	}

	workerCount := s.normalizeWorkerCount(input.MaxWorkers, len(users))
	result.WorkerCount = workerCount

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return result, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		written  atomic.Int32
		workers  sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	for _, item := range users {
		item := item
		target := sums[item.ID]
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if ctxErr := ctx.Err(); ctxErr != nil {
				errOnce.Do(func() { firstErr = ctxErr })
				return
			}
			if setErr := s.userRepo.SetTotalScore(ctx, item.ID, target); setErr != nil {
				errOnce.Do(func() {
					firstErr = fmt.Errorf("set total score user=%s: %w", item.ID, setErr)
				})
				return
			}
			written.Add(1)
		}); err != nil {
			workers.Done()
			errOnce.Do(func() { firstErr = fmt.Errorf("submit resync task: %w", err) })
			break
		}
	}
	workers.Wait()

	result.UsersWritten = int(written.Load())
	if firstErr != nil {
		return result, &BatchError{Op: batchOpResync, Processed: result.UsersWritten, Err: firstErr}
	}
	return result, nil
}

func (s *ReconciliationService) loadTotals(ctx context.Context) ([]user.User, map[string]int, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list users: %w", err)
	}
	sums, err := s.pickRepo.SumPointsByUser(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("sum pick points by user: %w", err)
	}
	return users, sums, nil
}

func (s *ReconciliationService) normalizeWorkerCount(value, userCount int) int {
	if value <= 0 {
		value = s.defaultWorkers
	}
	if value > maxResyncWorkers {
		value = maxResyncWorkers
	}
	if value > userCount {
		value = userCount
	}
	if value < 1 {
		value = 1
	}
	return value
}

// findDiscrepancies returns non-zero rows, worst first, ties by user id.
func findDiscrepancies(users []user.User, sums map[string]int) []Discrepancy {
	out := make([]Discrepancy, 0)
	for _, item := range users {
		calculated := sums[item.ID]
		if item.TotalScore == calculated {
			continue
		}
		out = append(out, Discrepancy{
			UserID:          item.ID,
			UserName:        item.Name,
			StoredTotal:     item.TotalScore,
			CalculatedTotal: calculated,
			Discrepancy:     item.TotalScore - calculated,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		left, right := absInt(out[i].Discrepancy), absInt(out[j].Discrepancy)
		if left != right {
			return left > right
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
