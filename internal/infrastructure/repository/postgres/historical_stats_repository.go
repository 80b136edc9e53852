package postgres

import (
	"context"
	"fmt"

	"github.com/fortyozsucka/college-football-picks/internal/domain/historicalstats"
	qb "github.com/fortyozsucka/college-football-picks/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type HistoricalStatsRepository struct {
	db *sqlx.DB
}

func NewHistoricalStatsRepository(db *sqlx.DB) *HistoricalStatsRepository {
	return &HistoricalStatsRepository{db: db}
}

func (r *HistoricalStatsRepository) ExistsForSeason(ctx context.Context, season int) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").From("historical_stats").
		Where(qb.Eq("season", season)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build historical stats exists query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("check historical stats season=%d: %w", season, err)
	}
	return count > 0, nil
}

// InsertSeason writes the whole archive in one statement so a season is never
// half archived. The unique (season, user) index rejects a second archive.
func (r *HistoricalStatsRepository) InsertSeason(ctx context.Context, season int, items []historicalstats.Stats) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]historicalStatsTableModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, historicalStatsTableModel{
			PublicID:       item.ID,
			Season:         season,
			UserID:         item.UserID,
			Rank:           item.Rank,
			FinalScore:     item.FinalScore,
			TotalPicks:     item.TotalPicks,
			Wins:           item.Wins,
			Losses:         item.Losses,
			Pushes:         item.Pushes,
			Unknown:        item.Unknown,
			DoubleDowns:    item.DoubleDowns,
			DoubleDownWins: item.DoubleDownWins,
			ArchivedAt:     item.ArchivedAt,
		})
	}

	query, args, err := qb.InsertModels("historical_stats", rows...).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert historical stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: season=%d", historicalstats.ErrSeasonExists, season)
		}
		return fmt.Errorf("insert historical stats season=%d: %w", season, err)
	}
	return nil
}

func (r *HistoricalStatsRepository) ListBySeason(ctx context.Context, season int) ([]historicalstats.Stats, error) {
	query, args, err := qb.Select(
		"public_id",
		"season",
		"user_public_id",
		"rank",
		"final_score",
		"total_picks",
		"wins",
		"losses",
		"pushes",
		"unknown_outcomes",
		"double_downs",
		"double_down_wins",
		"archived_at",
	).From("historical_stats").
		Where(qb.Eq("season", season)).
		OrderBy("rank", "user_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select historical stats query: %w", err)
	}

	var rows []historicalStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select historical stats season=%d: %w", season, err)
	}

	out := make([]historicalstats.Stats, 0, len(rows))
	for _, row := range rows {
		out = append(out, historicalstats.Stats{
			ID:             row.PublicID,
			Season:         row.Season,
			UserID:         row.UserID,
			Rank:           row.Rank,
			FinalScore:     row.FinalScore,
			TotalPicks:     row.TotalPicks,
			Wins:           row.Wins,
			Losses:         row.Losses,
			Pushes:         row.Pushes,
			Unknown:        row.Unknown,
			DoubleDowns:    row.DoubleDowns,
			DoubleDownWins: row.DoubleDownWins,
			ArchivedAt:     row.ArchivedAt,
		})
	}
	return out, nil
}
