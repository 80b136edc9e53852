package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fortyozsucka/college-football-picks/internal/app"
	"github.com/fortyozsucka/college-football-picks/internal/config"
	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

var defaultMigrationDirs = []string{"./db/migrations", "/app/db/migrations"}

// migrator is the part of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	logger := logging.New(logging.Options{Level: logging.LevelInfo, Output: os.Stderr}).Named("migration")
	defer func() { _ = logger.Sync() }()

	if len(args) == 0 {
		usage(os.Stderr)
		return exitUsage
	}
	cmd := strings.ToLower(strings.TrimSpace(args[0]))
	if _, ok := commands[cmd]; !ok {
		usage(os.Stderr)
		return exitUsage
	}

	if err := config.LoadDotEnv(); err != nil {
		logger.Error("load .env failed", "error", err)
		return exitFail
	}
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		logger.Error("DB_URL is required")
		return exitFail
	}
	disableBinary, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT")))

	dir, err := migrationsDir(os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		logger.Error("locate migrations failed", "error", err)
		return exitFail
	}
	source := "file://" + filepath.ToSlash(dir)

	m, err := migrate.New(source, app.PostgresDSN(dbURL, "college-football-picks-migration", disableBinary))
	if err != nil {
		logger.Error("open migrator failed", "source", source, "error", err)
		return exitFail
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn("close migrator failed", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	if err := execute(m, cmd, args[1:], out, logger); err != nil {
		logger.Error("migration failed", "command", cmd, "error", err)
		return exitFail
	}
	return exitOK
}

var commands = map[string]func(m migrator, args []string, out io.Writer) (string, error){
	"up": func(m migrator, _ []string, _ io.Writer) (string, error) {
		return "migrations applied", m.Up()
	},
	"down": func(m migrator, args []string, _ io.Writer) (string, error) {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || n <= 0 {
				return "", fmt.Errorf("down steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}
		return fmt.Sprintf("rolled back %d step(s)", steps), m.Steps(-steps)
	},
	"goto": func(m migrator, args []string, _ io.Writer) (string, error) {
		target, err := versionArg(args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("migrated to %d", target), m.Migrate(target)
	},
	"force": func(m migrator, args []string, _ io.Writer) (string, error) {
		target, err := versionArg(args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("forced version %d", target), m.Force(int(target))
	},
	"version": func(m migrator, _ []string, out io.Writer) (string, error) {
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			_, _ = fmt.Fprintln(out, "version: none")
			return "", nil
		case err != nil:
			return "", err
		}
		_, _ = fmt.Fprintf(out, "version: %d dirty: %t\n", version, dirty)
		return "", nil
	},
}

func execute(m migrator, cmd string, args []string, out io.Writer, logger *logging.Logger) error {
	handler, ok := commands[cmd]
	if !ok {
		return fmt.Errorf("unknown command %q", cmd)
	}
	done, err := handler(m, args, out)
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("schema already current", "command", cmd)
		return nil
	}
	if err != nil {
		return err
	}
	if done != "" {
		logger.Info(done, "command", cmd)
	}
	return nil
}

func versionArg(args []string) (uint, error) {
	if len(args) == 0 {
		return 0, errors.New("a version argument is required")
	}
	v, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 31)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", args[0], err)
	}
	return uint(v), nil
}

// migrationsDir returns the first existing directory among override and the
// defaults.
func migrationsDir(override string) (string, error) {
	candidates := append([]string{strings.TrimSpace(override)}, defaultMigrationDirs...)
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("no migrations directory among %v", candidates)
}

func usage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	_, _ = fmt.Fprintf(w, "usage: %s <up|down [n]|goto <version>|force <version>|version>\n", name)
	_, _ = fmt.Fprintf(w, "  %s goto 1760000003\n", name)
}
