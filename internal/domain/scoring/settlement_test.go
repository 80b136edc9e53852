package scoring

import (
	"errors"
	"testing"

	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
)

func TestSettle_HomeFavoredAwayCovers(t *testing.T) {
	t.Parallel()

	got := Settle(24, 20, -7, "Home", "Away")
	if got.Side != SideAway || got.Winner() != "Away" {
		t.Fatalf("expected away to cover, got %+v", got)
	}
	if got.AdjustedMargin != -3 {
		t.Fatalf("unexpected adjusted margin: %v", got.AdjustedMargin)
	}

	awayResult, err := got.ResultFor("Away")
	if err != nil || awayResult != pick.ResultWin {
		t.Fatalf("away pick: result=%s err=%v", awayResult, err)
	}
	homeResult, err := got.ResultFor("Home")
	if err != nil || homeResult != pick.ResultLoss {
		t.Fatalf("home pick: result=%s err=%v", homeResult, err)
	}
}

func TestSettle_SignProperty(t *testing.T) {
	t.Parallel()

	for margin := -45; margin <= 45; margin++ {
		for halfPoints := -60; halfPoints <= 60; halfPoints++ {
			spread := float64(halfPoints) / 2
			home := 30
			away := home - margin
			if away < 0 {
				home -= away
				away = 0
			}

			got := Settle(home, away, spread, "H", "A")
			sum := float64(margin) + spread
			switch {
			case sum == 0:
				if got.Side != SidePush || got.Winner() != "" {
					t.Fatalf("margin=%d spread=%v: expected push, got %+v", margin, spread, got)
				}
			case sum > 0:
				if got.Side != SideHome {
					t.Fatalf("margin=%d spread=%v: expected home, got %+v", margin, spread, got)
				}
			default:
				if got.Side != SideAway {
					t.Fatalf("margin=%d spread=%v: expected away, got %+v", margin, spread, got)
				}
			}

			again := Settle(home, away, spread, "H", "A")
			if again != got {
				t.Fatalf("settle is not deterministic: %+v vs %+v", got, again)
			}
		}
	}
}

func TestSettle_ExactPush(t *testing.T) {
	t.Parallel()

	got := Settle(17, 10, -7, "H", "A")
	if !got.IsPush() {
		t.Fatalf("expected push, got %+v", got)
	}
	for _, team := range []string{"H", "A"} {
		result, err := got.ResultFor(team)
		if err != nil || result != pick.ResultPush {
			t.Fatalf("team %s: result=%s err=%v", team, result, err)
		}
	}
}

func TestSettlement_ResultForUnknownTeam(t *testing.T) {
	t.Parallel()

	got := Settle(10, 3, 0, "H", "A")
	if _, err := got.ResultFor("Elsewhere"); !errors.Is(err, ErrUnknownPickedTeam) {
		t.Fatalf("expected ErrUnknownPickedTeam, got %v", err)
	}
	if _, err := got.ResultFor(""); !errors.Is(err, ErrUnknownPickedTeam) {
		t.Fatalf("expected ErrUnknownPickedTeam for empty team, got %v", err)
	}
}
