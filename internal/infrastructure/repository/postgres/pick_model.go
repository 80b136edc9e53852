package postgres

import (
	"database/sql"
	"time"
)

// pickWithGameRow is one pick joined to its game; game columns are prefixed.
type pickWithGameRow struct {
	PublicID       string         `db:"public_id"`
	UserID         string         `db:"user_public_id"`
	GameID         string         `db:"game_public_id"`
	PickedTeam     string         `db:"picked_team"`
	LockedSpread   float64        `db:"locked_spread"`
	IsDoubleDown   bool           `db:"is_double_down"`
	Points         sql.NullInt64  `db:"points"`
	Result         sql.NullString `db:"result"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	GameExternalID sql.NullString `db:"game_external_id"`
	GameSeason     int            `db:"game_season"`
	GameWeek       int            `db:"game_week"`
	GameHomeTeam   string         `db:"game_home_team"`
	GameAwayTeam   string         `db:"game_away_team"`
	GameHomeScore  sql.NullInt64  `db:"game_home_score"`
	GameAwayScore  sql.NullInt64  `db:"game_away_score"`
	GameSpread     float64        `db:"game_spread"`
	GameType       string         `db:"game_type"`
	GameName       string         `db:"game_name"`
	GameNotes      string         `db:"game_notes"`
	GameCompleted  bool           `db:"game_completed"`
	GameStartTime  time.Time      `db:"game_start_time"`
}

var pickWithGameColumns = []string{
	"p.public_id",
	"p.user_public_id",
	"p.game_public_id",
	"p.picked_team",
	"p.locked_spread",
	"p.is_double_down",
	"p.points",
	"p.result",
	"p.created_at",
	"p.updated_at",
	"g.external_id AS game_external_id",
	"g.season AS game_season",
	"g.week AS game_week",
	"g.home_team AS game_home_team",
	"g.away_team AS game_away_team",
	"g.home_score AS game_home_score",
	"g.away_score AS game_away_score",
	"g.spread AS game_spread",
	"g.game_type AS game_type",
	"g.name AS game_name",
	"g.notes AS game_notes",
	"g.completed AS game_completed",
	"g.start_time AS game_start_time",
}

const pickGameJoin = "g.public_id = p.game_public_id AND g.deleted_at IS NULL"

type pickPointsSumRow struct {
	UserID string `db:"user_public_id"`
	Total  int    `db:"total"`
}
