package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
	"github.com/fortyozsucka/college-football-picks/internal/domain/scoring"
	"github.com/fortyozsucka/college-football-picks/internal/domain/user"
	"github.com/sourcegraph/conc/pool"
)

// seasonTally is one user's picks for a season, summed the same way Audit sums
// the ledger: only scored picks carry points.
type seasonTally struct {
	UserID         string
	UserName       string
	Points         int
	TotalPicks     int
	Scored         int
	Wins           int
	Losses         int
	Pushes         int
	Unknown        int
	DoubleDowns    int
	DoubleDownWins int
	Rank           int
}

func (t *seasonTally) add(p pick.Pick) {
	t.TotalPicks++
	if p.IsDoubleDown {
		t.DoubleDowns++
	}
	if !p.IsScored() {
		return
	}

	t.Scored++
	t.Points += *p.Points
	switch scoring.DeriveLegacyResult(p) {
	case pick.ResultWin:
		t.Wins++
		if p.IsDoubleDown {
			t.DoubleDownWins++
		}
	case pick.ResultLoss:
		t.Losses++
	case pick.ResultPush:
		t.Pushes++
	default:
		t.Unknown++
	}
}

// loadSeasonTallies reads users and the season's picks concurrently and ranks
// every user, including those without picks.
func loadSeasonTallies(ctx context.Context, userRepo user.Repository, pickRepo pick.Repository, season int) ([]seasonTally, error) {
	var (
		users []user.User
		picks []pick.WithGame
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := userRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		users = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := pickRepo.ListBySeason(ctx, season)
		if err != nil {
			return fmt.Errorf("list picks by season: %w", err)
		}
		picks = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	byUser := make(map[string]*seasonTally, len(users))
	out := make([]seasonTally, 0, len(users))
	for _, item := range users {
		out = append(out, seasonTally{UserID: item.ID, UserName: item.Name})
	}
	for i := range out {
		byUser[out[i].UserID] = &out[i]
	}
	for _, item := range picks {
		tally, ok := byUser[item.Pick.UserID]
		if !ok {
			continue
		}
		tally.add(item.Pick)
	}

	rankTallies(out)
	return out, nil
}

// rankTallies sorts by points desc and assigns competition ranks (1, 1, 3).
func rankTallies(items []seasonTally) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Points != items[j].Points {
			return items[i].Points > items[j].Points
		}
		return items[i].UserID < items[j].UserID
	})
	for i := range items {
		if i > 0 && items[i].Points == items[i-1].Points {
			items[i].Rank = items[i-1].Rank
			continue
		}
		items[i].Rank = i + 1
	}
}
