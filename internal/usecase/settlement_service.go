package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
	"github.com/fortyozsucka/college-football-picks/internal/domain/scoring"
	"github.com/fortyozsucka/college-football-picks/internal/domain/user"
	"github.com/fortyozsucka/college-football-picks/internal/platform/id"
	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
	"github.com/fortyozsucka/college-football-picks/internal/platform/resilience"
	"github.com/fortyozsucka/college-football-picks/internal/platform/tracing"
	"go.opentelemetry.io/otel/attribute"
)

const (
	scoringRunKey = "scoring:run"

	batchOpSettle = "settle"
	batchOpReset  = "reset"

	skipReasonNotCompleted  = "game_not_completed"
	skipReasonMissingScores = "game_missing_scores"
	skipReasonAlreadyScored = "already_scored"
)

// ScoreChangeListener is told when pick points changed so derived views can
// drop stale data.
type ScoreChangeListener interface {
	ScoresChanged(ctx context.Context)
}

type SettlementService struct {
	pickRepo  pick.Repository
	userRepo  user.Repository
	ledger    scoring.Ledger
	listener  ScoreChangeListener
	ids       id.Generator
	logger    *logging.Logger
	now       func() time.Time
	runFlight *resilience.SingleFlight
}

func NewSettlementService(
	pickRepo pick.Repository,
	userRepo user.Repository,
	ledger scoring.Ledger,
	listener ScoreChangeListener,
	ids id.Generator,
	runFlight *resilience.SingleFlight,
	logger *logging.Logger,
) *SettlementService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if runFlight == nil {
		runFlight = &resilience.SingleFlight{}
	}
	return &SettlementService{
		pickRepo:  pickRepo,
		userRepo:  userRepo,
		ledger:    ledger,
		listener:  listener,
		ids:       ids,
		logger:    logger,
		now:       time.Now,
		runFlight: runFlight,
	}
}

type SettleInput struct {
	DryRun bool
	Season int
	Week   int
}

type SettleResult struct {
	RunID              string        `json:"run_id"`
	DryRun             bool          `json:"dry_run"`
	Candidates         int           `json:"candidates"`
	Updated            int           `json:"updated"`
	Skipped            int           `json:"skipped"`
	TotalPointsAwarded int           `json:"total_points_awarded"`
	Outcomes           []PickOutcome `json:"outcomes"`
	SkippedPicks       []SkippedPick `json:"skipped_picks,omitempty"`
}

type PickOutcome struct {
	PickID         string      `json:"pick_id"`
	UserID         string      `json:"user_id"`
	GameID         string      `json:"game_id"`
	PickedTeam     string      `json:"picked_team"`
	LockedSpread   float64     `json:"locked_spread"`
	AdjustedMargin float64     `json:"adjusted_margin"`
	GameType       game.Type   `json:"game_type"`
	Tier           game.Tier   `json:"tier,omitempty"`
	IsDoubleDown   bool        `json:"is_double_down"`
	Result         pick.Result `json:"result"`
	Points         int         `json:"points"`
}

type SkippedPick struct {
	PickID string `json:"pick_id"`
	GameID string `json:"game_id"`
	Reason string `json:"reason"`
}

// SettleUnscoredPicks scores every unscored pick whose game is final. Only one
// settle or reset run may execute at a time.
func (s *SettlementService) SettleUnscoredPicks(ctx context.Context, input SettleInput) (SettleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.SettleUnscoredPicks")
	defer span.End()

	if input.Season < 0 || input.Week < 0 {
		return SettleResult{}, fmt.Errorf("%w: season and week must not be negative", ErrInvalidInput)
	}

	var result SettleResult
	_, err, ran := s.runFlight.TryDo(scoringRunKey, func() (any, error) {
		runID, idErr := s.ids.NewID()
		if idErr != nil {
			return nil, fmt.Errorf("generate scoring run id: %w", idErr)
		}

		filter := pick.Filter{Season: input.Season, Week: input.Week}
		items, listErr := s.pickRepo.ListUnscored(ctx, filter)
		if listErr != nil {
			return nil, fmt.Errorf("list unscored picks: %w", listErr)
		}

		var runErr error
		result, runErr = s.settleItems(ctx, runID, items, input.DryRun)
		if !input.DryRun && result.Updated > 0 {
			s.notifyScoresChanged(ctx)
		}
		return nil, runErr
	})
	if !ran {
		return SettleResult{}, ErrScoringInProgress
	}
	span.SetAttributes(
		attribute.String("scoring.run_id", result.RunID),
		attribute.Bool("scoring.dry_run", input.DryRun),
		attribute.Int("scoring.updated", result.Updated),
	)
	if err != nil {
		tracing.Fail(span, err)
		s.logger.ErrorContext(ctx, "scoring run failed",
			"run_id", result.RunID,
			"dry_run", input.DryRun,
			"updated", result.Updated,
			"error", err,
		)
		return result, err
	}

	s.logger.InfoContext(ctx, "scoring run finished",
		"run_id", result.RunID,
		"dry_run", result.DryRun,
		"candidates", result.Candidates,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"total_points_awarded", result.TotalPointsAwarded,
	)
	return result, nil
}

// settleItems walks items in order. Each applied pick is committed on its own,
// so a failure leaves earlier picks scored and reports how many were applied.
func (s *SettlementService) settleItems(ctx context.Context, runID string, items []pick.WithGame, dryRun bool) (SettleResult, error) {
	result := SettleResult{
		RunID:      runID,
		DryRun:     dryRun,
		Candidates: len(items),
		Outcomes:   make([]PickOutcome, 0, len(items)),
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return result, &BatchError{Op: batchOpSettle, Processed: result.Updated, Err: err}
		}

		if reason, skip := skipReason(item.Game); skip {
			if reason == skipReasonMissingScores {
				s.logger.WarnContext(ctx, "game marked completed without final scores",
					"game_id", item.Game.ID,
					"external_id", item.Game.ExternalID,
					"pick_id", item.Pick.ID,
				)
			}
			result.Skipped++
			result.SkippedPicks = append(result.SkippedPicks, SkippedPick{
				PickID: item.Pick.ID,
				GameID: item.Game.ID,
				Reason: reason,
			})
			continue
		}

		outcome, err := scoring.Evaluate(item.Game, item.Pick)
		if err != nil {
			return result, &BatchError{Op: batchOpSettle, Processed: result.Updated, Err: err}
		}

		if !dryRun {
			err = s.ledger.ApplyPickScore(ctx, scoring.PickScore{
				PickID:   item.Pick.ID,
				UserID:   item.Pick.UserID,
				Points:   outcome.Points,
				Result:   outcome.Result,
				ScoredAt: s.now().UTC(),
			})
			if errors.Is(err, scoring.ErrAlreadyScored) {
				result.Skipped++
				result.SkippedPicks = append(result.SkippedPicks, SkippedPick{
					PickID: item.Pick.ID,
					GameID: item.Game.ID,
					Reason: skipReasonAlreadyScored,
				})
				continue
			}
			if err != nil {
				return result, &BatchError{
					Op:        batchOpSettle,
					Processed: result.Updated,
					Err:       fmt.Errorf("apply score for pick=%s: %w", item.Pick.ID, err),
				}
			}
		}

		result.Updated++
		result.TotalPointsAwarded += outcome.Points
		result.Outcomes = append(result.Outcomes, newPickOutcome(item, outcome))
	}

	return result, nil
}

func skipReason(g game.Game) (string, bool) {
	switch {
	case !g.Completed:
		return skipReasonNotCompleted, true
	case g.IsMissingScores():
		return skipReasonMissingScores, true
	default:
		return "", false
	}
}

func newPickOutcome(item pick.WithGame, outcome scoring.Outcome) PickOutcome {
	return PickOutcome{
		PickID:         item.Pick.ID,
		UserID:         item.Pick.UserID,
		GameID:         item.Game.ID,
		PickedTeam:     item.Pick.PickedTeam,
		LockedSpread:   item.Pick.LockedSpread,
		AdjustedMargin: outcome.Settlement.AdjustedMargin,
		GameType:       item.Game.GameType,
		Tier:           outcome.Tier,
		IsDoubleDown:   item.Pick.IsDoubleDown,
		Result:         outcome.Result,
		Points:         outcome.Points,
	}
}

type ResetInput struct {
	PickIDs  []string
	Season   int
	Week     int
	GameType string
	// All must be set to reset every scored pick when no other selector is given.
	All    bool
	DryRun bool
}

type ResetResult struct {
	RunID      string       `json:"run_id"`
	DryRun     bool         `json:"dry_run"`
	ResetCount int          `json:"reset_count"`
	Settle     SettleResult `json:"settle"`
	Users      []UserDelta  `json:"users"`
	Trace      []PickTrace  `json:"trace"`
}

type UserDelta struct {
	UserID string `json:"user_id"`
	Before int    `json:"before"`
	After  int    `json:"after"`
	Delta  int    `json:"delta"`
}

// PickTrace shows one pick before and after a reset-and-resettle run.
type PickTrace struct {
	PickID         string      `json:"pick_id"`
	UserID         string      `json:"user_id"`
	GameID         string      `json:"game_id"`
	PickedTeam     string      `json:"picked_team"`
	LockedSpread   float64     `json:"locked_spread"`
	AdjustedMargin *float64    `json:"adjusted_margin,omitempty"`
	Tier           game.Tier   `json:"tier,omitempty"`
	OldResult      pick.Result `json:"old_result,omitempty"`
	OldPoints      *int        `json:"old_points"`
	NewResult      pick.Result `json:"new_result,omitempty"`
	NewPoints      *int        `json:"new_points"`
}

// ResetAndResettle clears points on the selected scored picks, backing each
// one out of its owner's total, then settles the same selection again.
func (s *SettlementService) ResetAndResettle(ctx context.Context, input ResetInput) (ResetResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.ResetAndResettle")
	defer span.End()

	filter, err := normalizeResetInput(input)
	if err != nil {
		return ResetResult{}, err
	}

	var result ResetResult
	_, err, ran := s.runFlight.TryDo(scoringRunKey, func() (any, error) {
		var runErr error
		result, runErr = s.resetAndResettle(ctx, filter, input.DryRun)
		return nil, runErr
	})
	if !ran {
		return ResetResult{}, ErrScoringInProgress
	}
	span.SetAttributes(
		attribute.String("scoring.run_id", result.RunID),
		attribute.Bool("scoring.dry_run", input.DryRun),
		attribute.Int("scoring.reset_count", result.ResetCount),
	)
	if err != nil {
		tracing.Fail(span, err)
		s.logger.ErrorContext(ctx, "reset and resettle failed",
			"run_id", result.RunID,
			"dry_run", input.DryRun,
			"reset_count", result.ResetCount,
			"error", err,
		)
		return result, err
	}

	s.logger.InfoContext(ctx, "reset and resettle finished",
		"run_id", result.RunID,
		"dry_run", result.DryRun,
		"reset_count", result.ResetCount,
		"rescored", result.Settle.Updated,
		"users_affected", len(result.Users),
	)
	return result, nil
}

func normalizeResetInput(input ResetInput) (pick.Filter, error) {
	ids := make([]string, 0, len(input.PickIDs))
	seen := make(map[string]struct{}, len(input.PickIDs))
	for _, raw := range input.PickIDs {
		pickID := strings.TrimSpace(raw)
		if pickID == "" {
			continue
		}
		if _, ok := seen[pickID]; ok {
			continue
		}
		seen[pickID] = struct{}{}
		ids = append(ids, pickID)
	}

	if input.Season < 0 || input.Week < 0 {
		return pick.Filter{}, fmt.Errorf("%w: season and week must not be negative", ErrInvalidInput)
	}
	if input.Week > 0 && input.Season == 0 {
		return pick.Filter{}, fmt.Errorf("%w: week filter requires a season", ErrInvalidInput)
	}

	gameType := strings.TrimSpace(input.GameType)
	if gameType != "" {
		parsed, err := game.ParseType(gameType)
		if err != nil {
			return pick.Filter{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		gameType = string(parsed)
	}

	if len(ids) == 0 && input.Season == 0 && gameType == "" && !input.All {
		return pick.Filter{}, fmt.Errorf("%w: select picks by id, season or game type, or set all", ErrInvalidInput)
	}

	return pick.Filter{
		IDs:      ids,
		Season:   input.Season,
		Week:     input.Week,
		GameType: gameType,
	}, nil
}

func (s *SettlementService) resetAndResettle(ctx context.Context, filter pick.Filter, dryRun bool) (ResetResult, error) {
	runID, err := s.ids.NewID()
	if err != nil {
		return ResetResult{}, fmt.Errorf("generate scoring run id: %w", err)
	}
	result := ResetResult{RunID: runID, DryRun: dryRun}

	before, err := s.userTotals(ctx)
	if err != nil {
		return result, err
	}

	scored, err := s.pickRepo.ListScored(ctx, filter)
	if err != nil {
		return result, fmt.Errorf("list scored picks: %w", err)
	}

	traces := make(map[string]*PickTrace, len(scored))
	order := make([]string, 0, len(scored))
	addTrace := func(item pick.WithGame) *PickTrace {
		if existing, ok := traces[item.Pick.ID]; ok {
			return existing
		}
		trace := &PickTrace{
			PickID:       item.Pick.ID,
			UserID:       item.Pick.UserID,
			GameID:       item.Game.ID,
			PickedTeam:   item.Pick.PickedTeam,
			LockedSpread: item.Pick.LockedSpread,
		}
		traces[item.Pick.ID] = trace
		order = append(order, item.Pick.ID)
		return trace
	}

	changed := false
	defer func() {
		if changed {
			s.notifyScoresChanged(ctx)
		}
	}()

	for _, item := range scored {
		if err := ctx.Err(); err != nil {
			return result, &BatchError{Op: batchOpReset, Processed: result.ResetCount, Err: err}
		}

		previousPoints := item.Pick.PointsValue()
		previousResult := item.Pick.Result
		if !dryRun {
			reset, resetErr := s.ledger.ResetPickScore(ctx, item.Pick.ID)
			if errors.Is(resetErr, scoring.ErrNotScored) {
				continue
			}
			if resetErr != nil {
				return result, &BatchError{
					Op:        batchOpReset,
					Processed: result.ResetCount,
					Err:       fmt.Errorf("reset pick=%s: %w", item.Pick.ID, resetErr),
				}
			}
			changed = true
			previousPoints = reset.PreviousPoints
			previousResult = reset.PreviousResult
		}

		trace := addTrace(item)
		trace.OldPoints = intRef(previousPoints)
		trace.OldResult = previousResult
		result.ResetCount++
	}

	pending, err := s.pickRepo.ListUnscored(ctx, filter)
	if err != nil {
		return result, fmt.Errorf("list unscored picks after reset: %w", err)
	}
	if dryRun {
		// Nothing was reset, so the previously scored picks are settled as if unscored.
		for _, item := range scored {
			item.Pick.Points = nil
			item.Pick.Result = pick.ResultUnset
			pending = append(pending, item)
		}
	}

	settled, err := s.settleItems(ctx, runID, pending, dryRun)
	result.Settle = settled
	if settled.Updated > 0 && !dryRun {
		changed = true
	}
	if err != nil {
		return result, err
	}

	for _, item := range pending {
		addTrace(item)
	}
	for _, outcome := range settled.Outcomes {
		trace := traces[outcome.PickID]
		margin := outcome.AdjustedMargin
		trace.AdjustedMargin = &margin
		trace.Tier = outcome.Tier
		trace.NewPoints = intRef(outcome.Points)
		trace.NewResult = outcome.Result
	}

	result.Trace = make([]PickTrace, 0, len(order))
	for _, pickID := range order {
		result.Trace = append(result.Trace, *traces[pickID])
	}

	after := before
	if dryRun {
		after = projectTotals(before, result.Trace)
	} else {
		after, err = s.userTotals(ctx)
		if err != nil {
			return result, err
		}
	}
	result.Users = userDeltas(before, after, result.Trace)
	return result, nil
}

func (s *SettlementService) userTotals(ctx context.Context) (map[string]int, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make(map[string]int, len(users))
	for _, item := range users {
		out[item.ID] = item.TotalScore
	}
	return out, nil
}

func projectTotals(before map[string]int, traces []PickTrace) map[string]int {
	out := make(map[string]int, len(before))
	for userID, total := range before {
		out[userID] = total
	}
	for _, trace := range traces {
		out[trace.UserID] += derefInt(trace.NewPoints) - derefInt(trace.OldPoints)
	}
	return out
}

// userDeltas lists every user touched by the trace, in first-seen order.
func userDeltas(before, after map[string]int, traces []PickTrace) []UserDelta {
	out := make([]UserDelta, 0)
	seen := make(map[string]struct{})
	for _, trace := range traces {
		if _, ok := seen[trace.UserID]; ok {
			continue
		}
		seen[trace.UserID] = struct{}{}
		out = append(out, UserDelta{
			UserID: trace.UserID,
			Before: before[trace.UserID],
			After:  after[trace.UserID],
			Delta:  after[trace.UserID] - before[trace.UserID],
		})
	}
	return out
}

func (s *SettlementService) notifyScoresChanged(ctx context.Context) {
	if s.listener == nil {
		return
	}
	s.listener.ScoresChanged(ctx)
}

func intRef(v int) *int {
	return &v
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
