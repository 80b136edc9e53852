package querybuilder

import "testing"

func assertSQL(t *testing.T, gotQuery, wantQuery string, gotArgs []any, wantArgs ...any) {
	t.Helper()
	if gotQuery != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, gotQuery)
	}
	if len(gotArgs) != len(wantArgs) {
		t.Fatalf("unexpected args: want %v, got %v", wantArgs, gotArgs)
	}
	for i := range wantArgs {
		if gotArgs[i] != wantArgs[i] {
			t.Fatalf("arg %d: want %v, got %v", i, wantArgs[i], gotArgs[i])
		}
	}
}

func TestSelect_JoinFilterOrder(t *testing.T) {
	query, args, err := Select("p.public_id", "g.season").
		From("picks p").
		Join("games g", "g.public_id = p.game_public_id").
		Where(IsNull("p.points"), Eq("g.season", 2025), Expr("g.week >= ?", 16)).
		OrderBy("g.start_time", "p.public_id").
		Limit(50).
		ToSQL()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	assertSQL(t, query,
		"SELECT p.public_id, g.season FROM picks p JOIN games g ON g.public_id = p.game_public_id WHERE p.points IS NULL AND g.season = $1 AND g.week >= $2 ORDER BY g.start_time, p.public_id LIMIT 50",
		args, 2025, 16)
}

func TestSelect_GroupByWithAnyAndNotNull(t *testing.T) {
	ids := []string{"pick-001", "pick-002"}
	query, args, err := Select("user_public_id", "COALESCE(SUM(points), 0) AS total").
		From("picks").
		Where(Any("public_id", ids), IsNotNull("points")).
		GroupBy("user_public_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if query != "SELECT user_public_id, COALESCE(SUM(points), 0) AS total FROM picks WHERE public_id = ANY($1) AND points IS NOT NULL GROUP BY user_public_id" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 {
		t.Fatalf("expected the id list to bind once, got %d args", len(args))
	}
}

func TestSelect_RequiresColumnsAndTable(t *testing.T) {
	if _, _, err := Select().From("picks").ToSQL(); err == nil {
		t.Fatalf("expected error without columns")
	}
	if _, _, err := Select("1").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestExpr_SurplusMarkersStayLiteral(t *testing.T) {
	query, args, err := Select("1").From("games").Where(Expr("notes LIKE '?' OR week = ?", 3)).ToSQL()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// The first marker consumes the only value; the second stays literal.
	assertSQL(t, query, "SELECT 1 FROM games WHERE notes LIKE '$1' OR week = ?", args, 3)
}

func TestInsertModels_MultiRowUpsert(t *testing.T) {
	type gameRow struct {
		PublicID string `db:"public_id"`
		Week     int    `db:"week"`
		Name     string `db:"name,omitempty"`
		Ignored  string `db:"-"`
		internal string
	}

	query, args, err := InsertModels("games",
		gameRow{PublicID: "game-001", Week: 16, Name: "Army-Navy", internal: "x"},
		gameRow{PublicID: "game-002", Week: 17},
	).
		OnConflict([]string{"public_id"}).
		SetOnConflict("updated_at", "NOW()").
		ToSQL()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	assertSQL(t, query,
		"INSERT INTO games (public_id, week, name) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT (public_id) DO UPDATE SET week = EXCLUDED.week, name = EXCLUDED.name, updated_at = NOW()",
		args, "game-001", 16, "Army-Navy", "game-002", 17, "")
}

func TestInsertModels_PointersAndErrors(t *testing.T) {
	type statsRow struct {
		PublicID string `db:"public_id"`
		Season   int    `db:"season"`
	}

	query, args, err := InsertModels("historical_stats", &statsRow{PublicID: "hs-1", Season: 2025}).
		Returning("public_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	assertSQL(t, query, "INSERT INTO historical_stats (public_id, season) VALUES ($1, $2) RETURNING public_id", args, "hs-1", 2025)

	if _, _, err := InsertModels("historical_stats", (*statsRow)(nil)).ToSQL(); err == nil {
		t.Fatalf("expected error for nil model")
	}
	if _, _, err := InsertModels[statsRow]("historical_stats").ToSQL(); err == nil {
		t.Fatalf("expected error for no models")
	}
	if _, _, err := InsertModels("historical_stats", 42).ToSQL(); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	type untagged struct{ Season int }
	if _, _, err := InsertModels("historical_stats", untagged{Season: 1}).ToSQL(); err == nil {
		t.Fatalf("expected error for model without db tags")
	}
}

func TestInsert_DoNothingWhenEveryColumnIsKept(t *testing.T) {
	query, _, err := InsertInto("users").
		Columns("public_id", "name").
		Values("user-avery", "Avery").
		OnConflict([]string{"public_id"}, "name").
		ToSQL()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if query != "INSERT INTO users (public_id, name) VALUES ($1, $2) ON CONFLICT (public_id) DO NOTHING" {
		t.Fatalf("unexpected query: %s", query)
	}
}

func TestInsert_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("users").Columns("public_id", "name").Values("user-avery").ToSQL()
	if err == nil {
		t.Fatalf("expected row width error")
	}
}

func TestUpdate_DeltaWithReturning(t *testing.T) {
	query, args, err := Update("users").
		SetExpr("total_score", "total_score + ?", -2).
		SetExpr("updated_at", "NOW()").
		Set("name", "Blake").
		Where(Eq("public_id", "user-blake"), IsNull("deleted_at")).
		Returning("total_score").
		ToSQL()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	assertSQL(t, query,
		"UPDATE users SET total_score = total_score + $1, updated_at = NOW(), name = $2 WHERE public_id = $3 AND deleted_at IS NULL RETURNING total_score",
		args, -2, "Blake", "user-blake")
}

func TestUpdate_RequiresAssignments(t *testing.T) {
	if _, _, err := Update("users").Where(Eq("public_id", "x")).ToSQL(); err == nil {
		t.Fatalf("expected error without assignments")
	}
}
