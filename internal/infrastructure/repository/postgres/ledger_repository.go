package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
	"github.com/fortyozsucka/college-football-picks/internal/domain/scoring"
	qb "github.com/fortyozsucka/college-football-picks/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

// LedgerRepository commits a pick's score and its owner's total in one
// transaction. The pick update is conditional on the current points state, so
// a second writer finds zero rows and backs off.
type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) ApplyPickScore(ctx context.Context, score scoring.PickScore) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for apply pick score: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Update("picks").
		Set("points", score.Points).
		Set("result", string(score.Result)).
		Set("updated_at", score.ScoredAt).
		Where(
			qb.Eq("public_id", score.PickID),
			qb.IsNull("points"),
			qb.IsNull("deleted_at"),
		).
		Returning("user_public_id").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build apply pick score query: %w", err)
	}

	var userID string
	if err := tx.GetContext(ctx, &userID, query, args...); err != nil {
		if isNotFound(err) {
			return r.missingPickError(ctx, tx, score.PickID, scoring.ErrAlreadyScored)
		}
		return fmt.Errorf("apply pick score pick=%s: %w", score.PickID, err)
	}

	if err := addUserTotal(ctx, tx, userID, score.Points); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply pick score tx: %w", err)
	}
	return nil
}

func (r *LedgerRepository) ResetPickScore(ctx context.Context, pickID string) (scoring.PickReset, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return scoring.PickReset{}, fmt.Errorf("begin tx for reset pick score: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const resetQuery = `
UPDATE picks p
SET points = NULL,
    result = NULL,
    updated_at = NOW()
FROM (
    SELECT public_id, points, result
    FROM picks
    WHERE public_id = $1
      AND points IS NOT NULL
      AND deleted_at IS NULL
    FOR UPDATE
) old
WHERE p.public_id = old.public_id
RETURNING p.user_public_id, old.points, old.result`

	var row struct {
		UserID string         `db:"user_public_id"`
		Points int            `db:"points"`
		Result sql.NullString `db:"result"`
	}
	if err := tx.GetContext(ctx, &row, resetQuery, pickID); err != nil {
		if isNotFound(err) {
			return scoring.PickReset{}, r.missingPickError(ctx, tx, pickID, scoring.ErrNotScored)
		}
		return scoring.PickReset{}, fmt.Errorf("reset pick score pick=%s: %w", pickID, err)
	}

	if err := addUserTotal(ctx, tx, row.UserID, -row.Points); err != nil {
		return scoring.PickReset{}, err
	}

	if err := tx.Commit(); err != nil {
		return scoring.PickReset{}, fmt.Errorf("commit reset pick score tx: %w", err)
	}
	return scoring.PickReset{
		PickID:         pickID,
		UserID:         row.UserID,
		PreviousPoints: row.Points,
		PreviousResult: pick.Result(row.Result.String),
	}, nil
}

// missingPickError tells a pick that does not exist apart from one that is in
// the wrong scoring state.
func (r *LedgerRepository) missingPickError(ctx context.Context, tx *sqlx.Tx, pickID string, stateErr error) error {
	query, args, err := qb.Select("COUNT(1)").From("picks").
		Where(
			qb.Eq("public_id", pickID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build pick exists query: %w", err)
	}

	var count int
	if err := tx.GetContext(ctx, &count, query, args...); err != nil {
		return fmt.Errorf("check pick exists pick=%s: %w", pickID, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", scoring.ErrPickNotFound, pickID)
	}
	return fmt.Errorf("%w: %s", stateErr, pickID)
}

func addUserTotal(ctx context.Context, tx *sqlx.Tx, userID string, delta int) error {
	query, args, err := qb.Update("users").
		SetExpr("total_score", "total_score + ?", delta).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build add user total query: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("add user total user=%s: %w", userID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("add user total rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("add user total: user=%s not found", userID)
	}
	return nil
}
