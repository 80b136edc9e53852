package memory

import (
	"time"

	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
	"github.com/fortyozsucka/college-football-picks/internal/domain/user"
)

const SeedSeason = 2025

func SeedUsers() []user.User {
	return []user.User{
		{ID: "user-avery", Name: "Avery", Email: "avery@example.com"},
		{ID: "user-blake", Name: "Blake", Email: "blake@example.com"},
		{ID: "user-casey", Name: "Casey", Email: "casey@example.com"},
	}
}

func SeedGames() []game.Game {
	kickoff := time.Date(SeedSeason, time.September, 6, 19, 30, 0, 0, time.UTC)
	return []game.Game{
		{
			ID: "game-001", ExternalID: "401628319", Season: SeedSeason, Week: 2,
			HomeTeam: "Michigan", AwayTeam: "Texas",
			HomeScore: seedInt(12), AwayScore: seedInt(31), Spread: 7,
			GameType: game.TypeRegular, Completed: true, StartTime: kickoff,
		},
		{
			ID: "game-002", ExternalID: "401628412", Season: SeedSeason, Week: 14,
			HomeTeam: "Ohio State", AwayTeam: "Michigan",
			HomeScore: seedInt(10), AwayScore: seedInt(13), Spread: -20.5,
			GameType: game.TypeRivalry, Name: "The Game", Completed: true,
			StartTime: kickoff.AddDate(0, 0, 84),
		},
		{
			ID: "game-003", ExternalID: "401677180", Season: SeedSeason, Week: 17,
			HomeTeam: "Georgia", AwayTeam: "Notre Dame",
			HomeScore: seedInt(10), AwayScore: seedInt(23), Spread: -1.5,
			GameType: game.TypePlayoff, Name: "Allstate Sugar Bowl", Notes: "CFP Quarterfinal",
			Completed: true, StartTime: kickoff.AddDate(0, 0, 118),
		},
		{
			ID: "game-004", ExternalID: "401677190", Season: SeedSeason, Week: 17,
			HomeTeam: "Iowa State", AwayTeam: "Miami",
			HomeScore: seedInt(42), AwayScore: seedInt(41), Spread: 1,
			GameType: game.TypeBowl, Name: "Pop-Tarts Bowl", Completed: true,
			StartTime: kickoff.AddDate(0, 0, 113),
		},
		{
			ID: "game-005", ExternalID: "401677200", Season: SeedSeason, Week: 18,
			HomeTeam: "Ohio State", AwayTeam: "Notre Dame",
			Spread: -8.5, GameType: game.TypeChampionship, Name: "CFP National Championship",
			StartTime: kickoff.AddDate(0, 0, 128),
		},
	}
}

func SeedPicks() []pick.Pick {
	created := time.Date(SeedSeason, time.September, 1, 12, 0, 0, 0, time.UTC)
	return []pick.Pick{
		{ID: "pick-001", UserID: "user-avery", GameID: "game-001", PickedTeam: "Texas", LockedSpread: 7, CreatedAt: created},
		{ID: "pick-002", UserID: "user-blake", GameID: "game-001", PickedTeam: "Michigan", LockedSpread: 6.5, IsDoubleDown: true, CreatedAt: created},
		{ID: "pick-003", UserID: "user-casey", GameID: "game-002", PickedTeam: "Michigan", LockedSpread: -20.5, CreatedAt: created},
		{ID: "pick-004", UserID: "user-avery", GameID: "game-003", PickedTeam: "Notre Dame", LockedSpread: -1.5, CreatedAt: created},
		{ID: "pick-005", UserID: "user-blake", GameID: "game-004", PickedTeam: "Iowa State", LockedSpread: 1, CreatedAt: created},
		{ID: "pick-006", UserID: "user-casey", GameID: "game-005", PickedTeam: "Ohio State", LockedSpread: -8.5, CreatedAt: created},
	}
}

// NewSeededStore returns a store loaded with the sample season.
func NewSeededStore() *Store {
	return NewStore(SeedGames(), SeedUsers(), SeedPicks())
}

func seedInt(v int) *int {
	return &v
}
