package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
	"github.com/fortyozsucka/college-football-picks/internal/domain/scoring"
)

func TestLedgerRepository_ApplyAndReset(t *testing.T) {
	t.Parallel()

	store := NewSeededStore()
	ledger := NewLedgerRepository(store)
	users := NewUserRepository(store)
	ctx := context.Background()

	err := ledger.ApplyPickScore(ctx, scoring.PickScore{
		PickID:   "pick-001",
		UserID:   "user-avery",
		Points:   1,
		Result:   pick.ResultWin,
		ScoredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("apply pick score: %v", err)
	}

	owner, _, _ := users.GetByID(ctx, "user-avery")
	if owner.TotalScore != 1 {
		t.Fatalf("unexpected total after apply: got=%d want=1", owner.TotalScore)
	}

	err = ledger.ApplyPickScore(ctx, scoring.PickScore{PickID: "pick-001", Points: 1, Result: pick.ResultWin})
	if !errors.Is(err, scoring.ErrAlreadyScored) {
		t.Fatalf("expected ErrAlreadyScored, got %v", err)
	}

	reset, err := ledger.ResetPickScore(ctx, "pick-001")
	if err != nil {
		t.Fatalf("reset pick score: %v", err)
	}
	if reset.PreviousPoints != 1 || reset.PreviousResult != pick.ResultWin {
		t.Fatalf("unexpected reset payload: %+v", reset)
	}

	owner, _, _ = users.GetByID(ctx, "user-avery")
	if owner.TotalScore != 0 {
		t.Fatalf("unexpected total after reset: got=%d want=0", owner.TotalScore)
	}

	if _, err := ledger.ResetPickScore(ctx, "pick-001"); !errors.Is(err, scoring.ErrNotScored) {
		t.Fatalf("expected ErrNotScored, got %v", err)
	}
	if _, err := ledger.ResetPickScore(ctx, "pick-missing"); !errors.Is(err, scoring.ErrPickNotFound) {
		t.Fatalf("expected ErrPickNotFound, got %v", err)
	}
}

func TestLedgerRepository_ConcurrentApplyScoresOnce(t *testing.T) {
	t.Parallel()

	store := NewSeededStore()
	ledger := NewLedgerRepository(store)
	users := NewUserRepository(store)
	ctx := context.Background()

	const attempts = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := ledger.ApplyPickScore(ctx, scoring.PickScore{PickID: "pick-002", Points: -2, Result: pick.ResultLoss})
			if err == nil {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if applied != 1 {
		t.Fatalf("expected exactly one successful apply, got %d", applied)
	}
	owner, _, _ := users.GetByID(ctx, "user-blake")
	if owner.TotalScore != -2 {
		t.Fatalf("unexpected total: got=%d want=-2", owner.TotalScore)
	}
}

func TestPickRepository_FiltersAndOrdering(t *testing.T) {
	t.Parallel()

	store := NewSeededStore()
	picks := NewPickRepository(store)
	ctx := context.Background()

	unscored, err := picks.ListUnscored(ctx, pick.Filter{})
	if err != nil {
		t.Fatalf("list unscored: %v", err)
	}
	if len(unscored) != len(SeedPicks()) {
		t.Fatalf("unexpected unscored count: got=%d want=%d", len(unscored), len(SeedPicks()))
	}
	for i := 1; i < len(unscored); i++ {
		if unscored[i].Game.StartTime.Before(unscored[i-1].Game.StartTime) {
			t.Fatalf("picks not ordered by kickoff at index %d", i)
		}
	}

	byWeek, err := picks.ListUnscored(ctx, pick.Filter{Season: SeedSeason, Week: 17})
	if err != nil {
		t.Fatalf("list by week: %v", err)
	}
	if len(byWeek) != 2 {
		t.Fatalf("unexpected week 17 count: got=%d want=2", len(byWeek))
	}

	byType, err := picks.ListUnscored(ctx, pick.Filter{GameType: "bowl"})
	if err != nil {
		t.Fatalf("list by type: %v", err)
	}
	if len(byType) != 1 || byType[0].Pick.ID != "pick-005" {
		t.Fatalf("unexpected bowl picks: %+v", byType)
	}

	byIDs, err := picks.ListUnscored(ctx, pick.Filter{IDs: []string{"pick-003", "pick-006"}})
	if err != nil {
		t.Fatalf("list by ids: %v", err)
	}
	if len(byIDs) != 2 {
		t.Fatalf("unexpected id-filtered count: got=%d want=2", len(byIDs))
	}

	scored, err := picks.ListScored(ctx, pick.Filter{})
	if err != nil {
		t.Fatalf("list scored: %v", err)
	}
	if len(scored) != 0 {
		t.Fatalf("expected no scored picks in seed, got %d", len(scored))
	}
}

func TestPickRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	store := NewSeededStore()
	ledger := NewLedgerRepository(store)
	picks := NewPickRepository(store)
	ctx := context.Background()

	if err := ledger.ApplyPickScore(ctx, scoring.PickScore{PickID: "pick-004", Points: 2, Result: pick.ResultWin}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	scored, err := picks.ListScored(ctx, pick.Filter{IDs: []string{"pick-004"}})
	if err != nil || len(scored) != 1 {
		t.Fatalf("list scored: items=%d err=%v", len(scored), err)
	}
	*scored[0].Pick.Points = 99

	sums, err := picks.SumPointsByUser(ctx)
	if err != nil {
		t.Fatalf("sum points: %v", err)
	}
	if sums["user-avery"] != 2 {
		t.Fatalf("store mutated through returned copy: got=%d want=2", sums["user-avery"])
	}
}
