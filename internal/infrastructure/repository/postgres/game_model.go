package postgres

import (
	"database/sql"
	"time"
)

type gameTableModel struct {
	ID         int64          `db:"id"`
	PublicID   string         `db:"public_id"`
	ExternalID sql.NullString `db:"external_id"`
	Season     int            `db:"season"`
	Week       int            `db:"week"`
	HomeTeam   string         `db:"home_team"`
	AwayTeam   string         `db:"away_team"`
	HomeScore  sql.NullInt64  `db:"home_score"`
	AwayScore  sql.NullInt64  `db:"away_score"`
	Spread     float64        `db:"spread"`
	GameType   string         `db:"game_type"`
	Name       string         `db:"name"`
	Notes      string         `db:"notes"`
	Completed  bool           `db:"completed"`
	StartTime  time.Time      `db:"start_time"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
	DeletedAt  *time.Time     `db:"deleted_at"`
}

type gameInsertModel struct {
	PublicID   string         `db:"public_id"`
	ExternalID sql.NullString `db:"external_id"`
	Season     int            `db:"season"`
	Week       int            `db:"week"`
	HomeTeam   string         `db:"home_team"`
	AwayTeam   string         `db:"away_team"`
	HomeScore  sql.NullInt64  `db:"home_score"`
	AwayScore  sql.NullInt64  `db:"away_score"`
	Spread     float64        `db:"spread"`
	GameType   string         `db:"game_type"`
	Name       string         `db:"name"`
	Notes      string         `db:"notes"`
	Completed  bool           `db:"completed"`
	StartTime  time.Time      `db:"start_time"`
}
