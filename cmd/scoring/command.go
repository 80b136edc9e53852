package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/fortyozsucka/college-football-picks/internal/app"
	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/usecase"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var commandNames = []string{"settle", "reset", "audit", "resync", "archive", "leaderboard", "games", "import-games"}

type command struct {
	name string

	dryRun     bool
	season     int
	week       int
	pickIDs    []string
	gameType   string
	all        bool
	maxWorkers int
	file       string
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, fmt.Errorf("missing command")
	}

	cmd := command{name: strings.ToLower(strings.TrimSpace(args[0]))}
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var pickIDs string
	switch cmd.name {
	case "settle":
		fs.BoolVar(&cmd.dryRun, "dry-run", false, "compute outcomes without writing")
		fs.IntVar(&cmd.season, "season", 0, "only settle picks in this season")
		fs.IntVar(&cmd.week, "week", 0, "only settle picks in this week")
	case "reset":
		fs.BoolVar(&cmd.dryRun, "dry-run", false, "show the reset and resettle without writing")
		fs.IntVar(&cmd.season, "season", 0, "reset scored picks in this season")
		fs.IntVar(&cmd.week, "week", 0, "reset scored picks in this week")
		fs.StringVar(&pickIDs, "pick-ids", "", "comma separated pick ids to reset")
		fs.StringVar(&cmd.gameType, "game-type", "", "reset scored picks on games of this type")
		fs.BoolVar(&cmd.all, "all", false, "reset every scored pick")
	case "audit":
	case "resync":
		fs.BoolVar(&cmd.dryRun, "dry-run", false, "report corrections without writing")
		fs.IntVar(&cmd.maxWorkers, "max-workers", 0, "parallel user writes (0 uses RESYNC_MAX_WORKERS)")
	case "archive", "leaderboard", "games":
		fs.IntVar(&cmd.season, "season", 0, "season year")
	case "import-games":
		fs.StringVar(&cmd.file, "file", "", "path to a JSON array of games, - for stdin")
	default:
		return command{}, fmt.Errorf("unknown command %q", args[0])
	}

	if err := fs.Parse(args[1:]); err != nil {
		return command{}, fmt.Errorf("%s: %w", cmd.name, err)
	}
	if fs.NArg() > 0 {
		return command{}, fmt.Errorf("%s: unexpected arguments %v", cmd.name, fs.Args())
	}
	cmd.pickIDs = splitIDs(pickIDs)

	switch cmd.name {
	case "archive", "leaderboard", "games":
		if cmd.season <= 0 {
			return command{}, fmt.Errorf("%s: -season is required", cmd.name)
		}
	case "reset":
		if len(cmd.pickIDs) == 0 && cmd.season == 0 && cmd.week == 0 && cmd.gameType == "" && !cmd.all {
			return command{}, fmt.Errorf("reset: one of -pick-ids, -season, -week, -game-type or -all is required")
		}
	case "import-games":
		if strings.TrimSpace(cmd.file) == "" {
			return command{}, fmt.Errorf("import-games: -file is required")
		}
	}

	return cmd, nil
}

func (c command) execute(ctx context.Context, services *app.Services, out io.Writer) error {
	var (
		result any
		err    error
	)

	switch c.name {
	case "settle":
		result, err = services.Settlement.SettleUnscoredPicks(ctx, usecase.SettleInput{
			DryRun: c.dryRun,
			Season: c.season,
			Week:   c.week,
		})
	case "reset":
		result, err = services.Settlement.ResetAndResettle(ctx, usecase.ResetInput{
			PickIDs:  c.pickIDs,
			Season:   c.season,
			Week:     c.week,
			GameType: c.gameType,
			All:      c.all,
			DryRun:   c.dryRun,
		})
	case "audit":
		result, err = services.Reconciliation.Audit(ctx)
	case "resync":
		result, err = services.Reconciliation.Resync(ctx, usecase.ResyncInput{
			DryRun:     c.dryRun,
			MaxWorkers: c.maxWorkers,
		})
	case "archive":
		result, err = services.Archive.ArchiveSeason(ctx, c.season)
	case "leaderboard":
		result, err = services.Leaderboard.Leaderboard(ctx, c.season)
	case "games":
		result, err = services.Games.ListSeason(ctx, c.season)
	case "import-games":
		result, err = c.importGames(ctx, services)
	default:
		return fmt.Errorf("unknown command %q", c.name)
	}
	if err != nil {
		if batchErr, ok := usecase.AsBatchError(err); ok {
			return fmt.Errorf("%w (processed before failure: %d)", err, batchErr.Processed)
		}
		return err
	}

	return writeResult(out, result)
}

type gameInput struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Season     int       `json:"season"`
	Week       int       `json:"week"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	HomeScore  *int      `json:"home_score"`
	AwayScore  *int      `json:"away_score"`
	Spread     float64   `json:"spread"`
	GameType   string    `json:"game_type"`
	Name       string    `json:"name"`
	Notes      string    `json:"notes"`
	Completed  bool      `json:"completed"`
	StartTime  time.Time `json:"start_time"`
}

func (c command) importGames(ctx context.Context, services *app.Services) (map[string]int, error) {
	raw, err := readInput(c.file)
	if err != nil {
		return nil, err
	}

	var items []gameInput
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}

	games := make([]game.Game, 0, len(items))
	for _, item := range items {
		games = append(games, game.Game{
			ID:         item.ID,
			ExternalID: item.ExternalID,
			Season:     item.Season,
			Week:       item.Week,
			HomeTeam:   item.HomeTeam,
			AwayTeam:   item.AwayTeam,
			HomeScore:  item.HomeScore,
			AwayScore:  item.AwayScore,
			Spread:     item.Spread,
			GameType:   game.Type(item.GameType),
			Name:       item.Name,
			Notes:      item.Notes,
			Completed:  item.Completed,
			StartTime:  item.StartTime,
		})
	}

	imported, err := services.Games.Import(ctx, games)
	if err != nil {
		return nil, err
	}
	return map[string]int{"imported": imported}, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}

func writeResult(out io.Writer, result any) error {
	enc := sonic.ConfigStd.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func splitIDs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if id := strings.TrimSpace(part); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: scoring <%s> [flags]\n", strings.Join(commandNames, "|"))
	fmt.Fprintln(w, "examples:")
	fmt.Fprintln(w, "  scoring settle -dry-run")
	fmt.Fprintln(w, "  scoring reset -season 2025 -game-type bowl -dry-run")
	fmt.Fprintln(w, "  scoring resync -max-workers 8")
	fmt.Fprintln(w, "  scoring archive -season 2025")
	fmt.Fprintln(w, "  scoring import-games -file games.json")
}
