package postgres

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
	qb "github.com/fortyozsucka/college-football-picks/internal/platform/querybuilder"
)

func TestPickFilterConditions(t *testing.T) {
	filter := pick.Filter{
		IDs:      []string{"pick-001"},
		UserID:   "user-avery",
		Season:   2025,
		Week:     17,
		GameType: "playoff",
	}
	query, args, err := qb.Select("p.public_id").
		From("picks p").
		Join("games g", pickGameJoin).
		Where(pickFilterConditions(filter, qb.IsNull("p.points"))...).
		ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	for _, fragment := range []string{
		"p.deleted_at IS NULL",
		"p.points IS NULL",
		"p.public_id = ANY($1)",
		"p.user_public_id = $2",
		"g.season = $3",
		"g.week = $4",
		"g.game_type = $5",
	} {
		if !strings.Contains(query, fragment) {
			t.Fatalf("query missing %q:\n%s", fragment, query)
		}
	}
	if len(args) != 5 {
		t.Fatalf("unexpected arg count: %d", len(args))
	}
}

func TestPickFilterConditions_EmptyFilter(t *testing.T) {
	conditions := pickFilterConditions(pick.Filter{})
	if len(conditions) != 1 {
		t.Fatalf("expected only the soft-delete condition, got %d", len(conditions))
	}
}

func TestPickWithGameFromRow(t *testing.T) {
	start := time.Date(2025, time.January, 1, 17, 0, 0, 0, time.UTC)
	got := pickWithGameFromRow(pickWithGameRow{
		PublicID:      "pick-004",
		UserID:        "user-avery",
		GameID:        "game-003",
		PickedTeam:    "Notre Dame",
		LockedSpread:  -1.5,
		Points:        sql.NullInt64{Int64: 2, Valid: true},
		Result:        sql.NullString{String: "win", Valid: true},
		GameHomeTeam:  "Georgia",
		GameAwayTeam:  "Notre Dame",
		GameHomeScore: sql.NullInt64{Int64: 10, Valid: true},
		GameType:      "playoff",
		GameName:      "Sugar Bowl",
		GameCompleted: true,
		GameStartTime: start,
	})

	if got.Pick.PointsValue() != 2 || got.Pick.Result != pick.ResultWin {
		t.Fatalf("unexpected pick: %+v", got.Pick)
	}
	if got.Game.ID != "game-003" || got.Game.GameType != game.TypePlayoff || !got.Game.StartTime.Equal(start) {
		t.Fatalf("unexpected game: %+v", got.Game)
	}
	if got.Game.AwayScore != nil {
		t.Fatalf("expected null away score to stay nil")
	}
	if !got.Game.IsMissingScores() {
		t.Fatalf("expected joined game to report missing scores")
	}
}
