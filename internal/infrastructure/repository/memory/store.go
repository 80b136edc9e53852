package memory

import (
	"sort"
	"sync"

	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/domain/historicalstats"
	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
	"github.com/fortyozsucka/college-football-picks/internal/domain/user"
)

// Store holds every table behind one lock so a ledger write touching a pick
// and its owner is atomic.
type Store struct {
	mu       sync.RWMutex
	games    map[string]game.Game
	picks    map[string]pick.Pick
	users    map[string]user.User
	stats    map[int][]historicalstats.Stats
	userList []string
}

func NewStore(games []game.Game, users []user.User, picks []pick.Pick) *Store {
	s := &Store{
		games: make(map[string]game.Game, len(games)),
		picks: make(map[string]pick.Pick, len(picks)),
		users: make(map[string]user.User, len(users)),
		stats: make(map[int][]historicalstats.Stats),
	}
	for _, g := range games {
		s.games[g.ID] = cloneGame(g)
	}
	for _, u := range users {
		if _, exists := s.users[u.ID]; !exists {
			s.userList = append(s.userList, u.ID)
		}
		s.users[u.ID] = u
	}
	for _, p := range picks {
		s.picks[p.ID] = clonePick(p)
	}
	return s
}

// sortedPickIDs must be called with the lock held.
func (s *Store) sortedPickIDs() []string {
	ids := make([]string, 0, len(s.picks))
	for id := range s.picks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		left := s.games[s.picks[ids[i]].GameID]
		right := s.games[s.picks[ids[j]].GameID]
		if !left.StartTime.Equal(right.StartTime) {
			return left.StartTime.Before(right.StartTime)
		}
		return ids[i] < ids[j]
	})
	return ids
}

func cloneGame(g game.Game) game.Game {
	copied := g
	copied.HomeScore = cloneInt(g.HomeScore)
	copied.AwayScore = cloneInt(g.AwayScore)
	return copied
}

func clonePick(p pick.Pick) pick.Pick {
	copied := p
	copied.Points = cloneInt(p.Points)
	return copied
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
