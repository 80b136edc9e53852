package postgres

import "time"

type historicalStatsTableModel struct {
	PublicID       string    `db:"public_id"`
	Season         int       `db:"season"`
	UserID         string    `db:"user_public_id"`
	Rank           int       `db:"rank"`
	FinalScore     int       `db:"final_score"`
	TotalPicks     int       `db:"total_picks"`
	Wins           int       `db:"wins"`
	Losses         int       `db:"losses"`
	Pushes         int       `db:"pushes"`
	Unknown        int       `db:"unknown_outcomes"`
	DoubleDowns    int       `db:"double_downs"`
	DoubleDownWins int       `db:"double_down_wins"`
	ArchivedAt     time.Time `db:"archived_at"`
}
