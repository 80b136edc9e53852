package postgres

import (
	"context"
	"fmt"

	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
	qb "github.com/fortyozsucka/college-football-picks/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) ListUnscored(ctx context.Context, filter pick.Filter) ([]pick.WithGame, error) {
	return r.list(ctx, "list unscored picks", pickFilterConditions(filter, qb.IsNull("p.points")))
}

func (r *PickRepository) ListScored(ctx context.Context, filter pick.Filter) ([]pick.WithGame, error) {
	return r.list(ctx, "list scored picks", pickFilterConditions(filter, qb.IsNotNull("p.points")))
}

func (r *PickRepository) ListBySeason(ctx context.Context, season int) ([]pick.WithGame, error) {
	return r.list(ctx, "list picks by season", pickFilterConditions(pick.Filter{Season: season}))
}

func (r *PickRepository) SumPointsByUser(ctx context.Context) (map[string]int, error) {
	query, args, err := qb.Select("user_public_id", "COALESCE(SUM(points), 0) AS total").
		From("picks").
		Where(
			qb.IsNotNull("points"),
			qb.IsNull("deleted_at"),
		).
		GroupBy("user_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build sum pick points query: %w", err)
	}

	var rows []pickPointsSumRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("sum pick points by user: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.UserID] = row.Total
	}
	return out, nil
}

func (r *PickRepository) list(ctx context.Context, op string, conditions []qb.Condition) ([]pick.WithGame, error) {
	query, args, err := qb.Select(pickWithGameColumns...).
		From("picks p").
		Join("games g", pickGameJoin).
		Where(conditions...).
		OrderBy("g.start_time", "p.public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []pickWithGameRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]pick.WithGame, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickWithGameFromRow(row))
	}
	return out, nil
}

func pickFilterConditions(filter pick.Filter, extra ...qb.Condition) []qb.Condition {
	conditions := []qb.Condition{qb.IsNull("p.deleted_at")}
	conditions = append(conditions, extra...)
	if len(filter.IDs) > 0 {
		conditions = append(conditions, qb.Any("p.public_id", pq.Array(filter.IDs)))
	}
	if filter.UserID != "" {
		conditions = append(conditions, qb.Eq("p.user_public_id", filter.UserID))
	}
	if filter.Season > 0 {
		conditions = append(conditions, qb.Eq("g.season", filter.Season))
	}
	if filter.Week > 0 {
		conditions = append(conditions, qb.Eq("g.week", filter.Week))
	}
	if filter.GameType != "" {
		conditions = append(conditions, qb.Eq("g.game_type", filter.GameType))
	}
	return conditions
}

func pickWithGameFromRow(row pickWithGameRow) pick.WithGame {
	return pick.WithGame{
		Pick: pick.Pick{
			ID:           row.PublicID,
			UserID:       row.UserID,
			GameID:       row.GameID,
			PickedTeam:   row.PickedTeam,
			LockedSpread: row.LockedSpread,
			IsDoubleDown: row.IsDoubleDown,
			Points:       nullIntToPtr(row.Points),
			Result:       pick.Result(row.Result.String),
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		},
		Game: game.Game{
			ID:         row.GameID,
			ExternalID: row.GameExternalID.String,
			Season:     row.GameSeason,
			Week:       row.GameWeek,
			HomeTeam:   row.GameHomeTeam,
			AwayTeam:   row.GameAwayTeam,
			HomeScore:  nullIntToPtr(row.GameHomeScore),
			AwayScore:  nullIntToPtr(row.GameAwayScore),
			Spread:     row.GameSpread,
			GameType:   game.Type(row.GameType),
			Name:       row.GameName,
			Notes:      row.GameNotes,
			Completed:  row.GameCompleted,
			StartTime:  row.GameStartTime,
		},
	}
}
