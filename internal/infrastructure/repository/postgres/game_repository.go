package postgres

import (
	"context"
	"fmt"

	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	qb "github.com/fortyozsucka/college-football-picks/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game by id query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game by id: %w", err)
	}
	return gameFromRow(row), true, nil
}

func (r *GameRepository) ListBySeason(ctx context.Context, season int) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("season", season),
			qb.IsNull("deleted_at"),
		).
		OrderBy("week", "start_time", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games by season query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by season: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}

// Upsert writes every game in one statement keyed on public_id. A previously
// soft-deleted game is revived.
func (r *GameRepository) Upsert(ctx context.Context, items []game.Game) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]gameInsertModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, gameInsertModel{
			PublicID:   item.ID,
			ExternalID: stringToNull(item.ExternalID),
			Season:     item.Season,
			Week:       item.Week,
			HomeTeam:   item.HomeTeam,
			AwayTeam:   item.AwayTeam,
			HomeScore:  ptrToNullInt(item.HomeScore),
			AwayScore:  ptrToNullInt(item.AwayScore),
			Spread:     item.Spread,
			GameType:   string(item.GameType),
			Name:       item.Name,
			Notes:      item.Notes,
			Completed:  item.Completed,
			StartTime:  item.StartTime,
		})
	}

	query, args, err := qb.InsertModels("games", rows...).
		OnConflict([]string{"public_id"}).
		SetOnConflict("updated_at", "NOW()").
		SetOnConflict("deleted_at", "NULL").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert games query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %d games: %w", len(items), err)
	}
	return nil
}

func gameFromRow(row gameTableModel) game.Game {
	return game.Game{
		ID:         row.PublicID,
		ExternalID: row.ExternalID.String,
		Season:     row.Season,
		Week:       row.Week,
		HomeTeam:   row.HomeTeam,
		AwayTeam:   row.AwayTeam,
		HomeScore:  nullIntToPtr(row.HomeScore),
		AwayScore:  nullIntToPtr(row.AwayScore),
		Spread:     row.Spread,
		GameType:   game.Type(row.GameType),
		Name:       row.Name,
		Notes:      row.Notes,
		Completed:  row.Completed,
		StartTime:  row.StartTime,
	}
}
