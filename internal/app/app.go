package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fortyozsucka/college-football-picks/internal/config"
	"github.com/fortyozsucka/college-football-picks/internal/domain/game"
	"github.com/fortyozsucka/college-football-picks/internal/domain/historicalstats"
	"github.com/fortyozsucka/college-football-picks/internal/domain/pick"
	"github.com/fortyozsucka/college-football-picks/internal/domain/scoring"
	"github.com/fortyozsucka/college-football-picks/internal/domain/user"
	cachedrepo "github.com/fortyozsucka/college-football-picks/internal/infrastructure/repository/cache"
	"github.com/fortyozsucka/college-football-picks/internal/infrastructure/repository/memory"
	"github.com/fortyozsucka/college-football-picks/internal/infrastructure/repository/postgres"
	"github.com/fortyozsucka/college-football-picks/internal/interfaces/httpapi"
	"github.com/fortyozsucka/college-football-picks/internal/platform/cache"
	idgen "github.com/fortyozsucka/college-football-picks/internal/platform/id"
	"github.com/fortyozsucka/college-football-picks/internal/platform/logging"
	"github.com/fortyozsucka/college-football-picks/internal/platform/resilience"
	"github.com/fortyozsucka/college-football-picks/internal/usecase"
)

// Services is the wired scoring engine shared by the API server and the
// scoring CLI.
type Services struct {
	Settlement     *usecase.SettlementService
	Reconciliation *usecase.ReconciliationService
	Leaderboard    *usecase.LeaderboardService
	Archive        *usecase.ArchiveService
	Games          *usecase.GameService
	Readiness      httpapi.ReadinessChecker

	close func() error
}

type repositories struct {
	games  game.Repository
	picks  pick.Repository
	users  user.Repository
	ledger scoring.Ledger
	stats  historicalstats.Repository
}

func NewServices(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, readiness, closeFn, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
		repos.games = cachedrepo.NewGameRepository(repos.games, cacheStore)
		repos.stats = cachedrepo.NewHistoricalStatsRepository(repos.stats, cacheStore)
	}

	// One flight for every run that writes scores, so settle, reset and
	// resync never interleave.
	runFlight := &resilience.SingleFlight{}
	ids := idgen.NewUUIDGenerator()

	leaderboard := usecase.NewLeaderboardService(repos.users, repos.picks, cacheStore, logger)
	return &Services{
		Settlement:     usecase.NewSettlementService(repos.picks, repos.users, repos.ledger, leaderboard, ids, runFlight, logger),
		Reconciliation: usecase.NewReconciliationService(repos.picks, repos.users, leaderboard, runFlight, cfg.ResyncMaxWorkers, logger),
		Leaderboard:    leaderboard,
		Archive:        usecase.NewArchiveService(repos.users, repos.picks, repos.stats, ids, logger),
		Games:          usecase.NewGameService(repos.games, logger),
		Readiness:      readiness,
		close:          closeFn,
	}, nil
}

func (s *Services) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, httpapi.ReadinessChecker, func() error, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		store := memory.NewSeededStore()
		logger.Info("storage ready", "driver", config.StorageMemory, "season", memory.SeedSeason)
		return repositories{
			games:  memory.NewGameRepository(store),
			picks:  memory.NewPickRepository(store),
			users:  memory.NewUserRepository(store),
			ledger: memory.NewLedgerRepository(store),
			stats:  memory.NewHistoricalStatsRepository(store),
		}, nil, func() error { return nil }, nil
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, nil, nil, err
		}
		logger.Info("storage ready", "driver", config.StoragePostgres, "database", databaseName(cfg.DBURL))
		return repositories{
			games:  postgres.NewGameRepository(db),
			picks:  postgres.NewPickRepository(db),
			users:  postgres.NewUserRepository(db),
			ledger: postgres.NewLedgerRepository(db),
			stats:  postgres.NewHistoricalStatsRepository(db),
		}, newDBReadiness(db), db.Close, nil
	default:
		return repositories{}, nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if services == nil {
		return nil, fmt.Errorf("services are required")
	}

	handler := httpapi.NewHandler(
		services.Settlement,
		services.Reconciliation,
		services.Leaderboard,
		services.Archive,
		services.Games,
		services.Readiness,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		AdminToken:              cfg.AdminToken,
		CORSAllowedOrigins:      cfg.CORSAllowedOrigins,
		CaptureRequestBody:      cfg.UptraceEnabled && cfg.UptraceCaptureRequestBody,
		RequestBodyCaptureBytes: cfg.UptraceRequestBodyMaxBytes,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
