package memory

import (
	"context"
	"fmt"

	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
	"github.com/fortyozsucka/college-football-picks/internal/domain/scoring"
)

type LedgerRepository struct {
	store *Store
}

func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

func (r *LedgerRepository) ApplyPickScore(_ context.Context, score scoring.PickScore) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.picks[score.PickID]
	if !ok {
		return fmt.Errorf("%w: %s", scoring.ErrPickNotFound, score.PickID)
	}
	if err := pick.ValidateTransition(item.Status(), pick.StatusScored); err != nil {
		return fmt.Errorf("%w: %s", scoring.ErrAlreadyScored, score.PickID)
	}
	owner, ok := r.store.users[item.UserID]
	if !ok {
		return fmt.Errorf("user %s not found for pick %s", item.UserID, item.ID)
	}

	points := score.Points
	item.Points = &points
	item.Result = score.Result
	item.UpdatedAt = score.ScoredAt
	owner.TotalScore += points

	r.store.picks[item.ID] = item
	r.store.users[owner.ID] = owner
	return nil
}

func (r *LedgerRepository) ResetPickScore(_ context.Context, pickID string) (scoring.PickReset, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.picks[pickID]
	if !ok {
		return scoring.PickReset{}, fmt.Errorf("%w: %s", scoring.ErrPickNotFound, pickID)
	}
	if err := pick.ValidateTransition(item.Status(), pick.StatusUnscored); err != nil {
		return scoring.PickReset{}, fmt.Errorf("%w: %s", scoring.ErrNotScored, pickID)
	}
	owner, ok := r.store.users[item.UserID]
	if !ok {
		return scoring.PickReset{}, fmt.Errorf("user %s not found for pick %s", item.UserID, item.ID)
	}

	reset := scoring.PickReset{
		PickID:         item.ID,
		UserID:         item.UserID,
		PreviousPoints: *item.Points,
		PreviousResult: item.Result,
	}
	owner.TotalScore -= *item.Points
	item.Points = nil
	item.Result = pick.ResultUnset

	r.store.picks[item.ID] = item
	r.store.users[owner.ID] = owner
	return reset, nil
}
