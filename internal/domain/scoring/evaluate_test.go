package scoring

import (
	"errors"
	"testing"

	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
)

func intPtr(v int) *int { return &v }

func finalGame(gameType game.Type, home, away int, notes string) game.Game {
	return game.Game{
		ID:        "g1",
		HomeTeam:  "Home",
		AwayTeam:  "Away",
		HomeScore: intPtr(home),
		AwayScore: intPtr(away),
		Spread:    -3,
		GameType:  gameType,
		Notes:     notes,
		Completed: true,
	}
}

func TestEvaluate_UsesLockedSpreadNotLiveLine(t *testing.T) {
	t.Parallel()

	g := finalGame(game.TypeRegular, 24, 20, "")
	g.Spread = -3 // line moved after the pick was made
	p := pick.Pick{ID: "p1", PickedTeam: "Away", LockedSpread: -7}

	got, err := Evaluate(g, p)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if got.Result != pick.ResultWin || got.Points != 1 {
		t.Fatalf("expected away win +1 with locked spread, got %+v", got)
	}
}

func TestEvaluate_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		game       game.Game
		pick       pick.Pick
		wantResult pick.Result
		wantPoints int
		wantTier   game.Tier
	}{
		{
			name:       "regular home favorite fails to cover",
			game:       finalGame(game.TypeRegular, 24, 20, ""),
			pick:       pick.Pick{ID: "p", PickedTeam: "Home", LockedSpread: -7},
			wantResult: pick.ResultLoss,
			wantPoints: -1,
		},
		{
			name:       "premium bowl win with double down flag",
			game:       finalGame(game.TypeBowl, 35, 10, "Rose Bowl"),
			pick:       pick.Pick{ID: "p", PickedTeam: "Home", LockedSpread: -3, IsDoubleDown: true},
			wantResult: pick.ResultWin,
			wantPoints: 2,
			wantTier:   game.TierPremium,
		},
		{
			name:       "standard bowl loss",
			game:       finalGame(game.TypeBowl, 35, 10, "Armed Forces Bowl"),
			pick:       pick.Pick{ID: "p", PickedTeam: "Away", LockedSpread: -3},
			wantResult: pick.ResultLoss,
			wantPoints: 0,
			wantTier:   game.TierStandard,
		},
		{
			name:       "double down push",
			game:       finalGame(game.TypeRivalry, 27, 20, ""),
			pick:       pick.Pick{ID: "p", PickedTeam: "Away", LockedSpread: -7, IsDoubleDown: true},
			wantResult: pick.ResultPush,
			wantPoints: 0,
		},
		{
			name:       "championship double down loss",
			game:       finalGame(game.TypeChampionship, 10, 31, "Big Ten Championship"),
			pick:       pick.Pick{ID: "p", PickedTeam: "Home", LockedSpread: 3.5, IsDoubleDown: true},
			wantResult: pick.ResultLoss,
			wantPoints: -2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Evaluate(tt.game, tt.pick)
			if err != nil {
				t.Fatalf("Evaluate error: %v", err)
			}
			if got.Result != tt.wantResult || got.Points != tt.wantPoints || got.Tier != tt.wantTier {
				t.Fatalf("unexpected outcome: %+v", got)
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	t.Parallel()

	notFinal := finalGame(game.TypeRegular, 1, 0, "")
	notFinal.AwayScore = nil
	if _, err := Evaluate(notFinal, pick.Pick{PickedTeam: "Home"}); !errors.Is(err, ErrGameNotFinal) {
		t.Fatalf("expected ErrGameNotFinal, got %v", err)
	}

	unknownType := finalGame("exhibition", 1, 0, "")
	if _, err := Evaluate(unknownType, pick.Pick{PickedTeam: "Home"}); !errors.Is(err, game.ErrUnknownGameType) {
		t.Fatalf("expected ErrUnknownGameType, got %v", err)
	}

	wrongTeam := finalGame(game.TypeRegular, 1, 0, "")
	if _, err := Evaluate(wrongTeam, pick.Pick{PickedTeam: "Nobody"}); !errors.Is(err, ErrUnknownPickedTeam) {
		t.Fatalf("expected ErrUnknownPickedTeam, got %v", err)
	}
}

func TestDeriveLegacyResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pick pick.Pick
		want pick.Result
	}{
		{pick: pick.Pick{Result: pick.ResultPush, Points: intPtr(0)}, want: pick.ResultPush},
		{pick: pick.Pick{Points: intPtr(2)}, want: pick.ResultWin},
		{pick: pick.Pick{Points: intPtr(-1)}, want: pick.ResultLoss},
		{pick: pick.Pick{Points: intPtr(0)}, want: pick.ResultUnset},
		{pick: pick.Pick{}, want: pick.ResultUnset},
	}
	for _, tt := range tests {
		if got := DeriveLegacyResult(tt.pick); got != tt.want {
			t.Fatalf("DeriveLegacyResult(%+v) = %q, want %q", tt.pick, got, tt.want)
		}
	}
}
