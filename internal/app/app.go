package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-stats/external/apifootball"
	"github.com/riskibarqy/match-stats/internal/config"
	"github.com/riskibarqy/match-stats/internal/domain/league"
	"github.com/riskibarqy/match-stats/internal/domain/match"
	"github.com/riskibarqy/match-stats/internal/domain/matchstats"
	"github.com/riskibarqy/match-stats/internal/domain/team"
	cacherepo "github.com/riskibarqy/match-stats/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/match-stats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-stats/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/match-stats/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/match-stats/internal/platform/cache"
	idgen "github.com/riskibarqy/match-stats/internal/platform/id"
	"github.com/riskibarqy/match-stats/internal/platform/logging"
	"github.com/riskibarqy/match-stats/internal/platform/resilience"
	"github.com/riskibarqy/match-stats/internal/usecase"
)

const (
	StoreModePostgres = "postgres"
	StoreModeMemory   = "memory"
	StoreModeDegraded = "degraded"
)

type repositories struct {
	matches    match.Repository
	statistics matchstats.Repository
	teams      team.Repository
	leagues    league.Repository
	mode       string
}

// App holds the wired services. Ingestion and Poller are nil when the provider or
// polling is disabled.
type App struct {
	Server    *http.Server
	Ingestion *usecase.IngestionService
	Poller    *usecase.LivePoller
	StoreMode string

	db     *sqlx.DB
	logger *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, db, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.CacheEnabled && repos.matches != nil {
		repos = withCache(repos, basecache.NewStore(cfg.CacheTTL))
	}

	historySvc := usecase.NewHistoryService(repos.matches, repos.statistics, logger)
	teamStatsSvc := usecase.NewTeamStatisticsService(historySvc)
	dimensionSvc := usecase.NewDimensionService(repos.teams, repos.leagues, logger)
	upsertSvc := usecase.NewUpsertService(repos.matches, repos.statistics, logger)

	app := &App{
		StoreMode: repos.mode,
		db:        db,
		logger:    logger,
	}

	if cfg.APIFootballEnabled {
		app.Ingestion = usecase.NewIngestionService(
			newProviderClient(cfg, logger),
			upsertSvc,
			repos.matches,
			idgen.NewRandomGenerator(idgen.PrefixIngestionRun),
			usecase.IngestionConfig{MaxWorkers: cfg.IngestionMaxWorkers},
			logger,
		)
		if cfg.IngestionPollEnabled {
			app.Poller = usecase.NewLivePoller(app.Ingestion, usecase.LivePollerConfig{
				Interval:   cfg.IngestionPollInterval,
				RunTimeout: cfg.IngestionRunTimeout,
				Targets:    pollTargets(cfg.IngestionTargets),
			}, logger)
		}
	}

	handler := httpapi.NewHandler(
		historySvc,
		teamStatsSvc,
		dimensionSvc,
		upsertSvc,
		app.Ingestion,
		repos.mode,
		httpapi.PageLimits{Default: cfg.DefaultPageLimit, Max: cfg.MaxPageLimit},
		logger,
	)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	})

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return app, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// openRepositories picks the store for cfg.StoreDriver. An unreachable postgres leaves
// the service running in degraded mode rather than failing startup.
func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := postgres.Open(ctx, postgres.DBConfig{
			URL:                   cfg.DBURL,
			DisablePreparedBinary: cfg.DBDisablePreparedBinary,
			MaxOpenConns:          cfg.DBMaxOpenConns,
			MaxIdleConns:          cfg.DBMaxIdleConns,
			ConnMaxLifetime:       cfg.DBConnMaxLifetime,
			ConnMaxIdleTime:       cfg.DBConnMaxIdleTime,
			PingTimeout:           cfg.DBPingTimeout,
		})
		if err != nil {
			logger.ErrorContext(ctx, "postgres unavailable, serving in degraded mode",
				"database", postgres.DatabaseName(cfg.DBURL),
				"error", err,
			)
			return repositories{mode: StoreModeDegraded}, nil, nil
		}
		if cfg.StoreSeed {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, nil, fmt.Errorf("seed postgres: %w", err)
			}
		}
		logger.InfoContext(ctx, "store ready", "driver", cfg.StoreDriver, "database", postgres.DatabaseName(cfg.DBURL))
		return repositories{
			matches:    postgres.NewMatchRepository(db),
			statistics: postgres.NewMatchStatisticsRepository(db),
			teams:      postgres.NewTeamRepository(db),
			leagues:    postgres.NewLeagueRepository(db),
			mode:       StoreModePostgres,
		}, db, nil
	case config.StoreDriverMemory:
		store := memory.NewStore()
		if cfg.StoreSeed {
			if err := memory.Seed(ctx, store); err != nil {
				return repositories{}, nil, fmt.Errorf("seed memory store: %w", err)
			}
		}
		logger.InfoContext(ctx, "store ready", "driver", cfg.StoreDriver, "seeded", cfg.StoreSeed)
		return repositories{
			matches:    memory.NewMatchRepository(store),
			statistics: memory.NewMatchStatisticsRepository(store),
			teams:      memory.NewTeamRepository(store),
			leagues:    memory.NewLeagueRepository(store),
			mode:       StoreModeMemory,
		}, nil, nil
	case config.StoreDriverNone:
		logger.WarnContext(ctx, "no store configured, serving in degraded mode")
		return repositories{mode: StoreModeDegraded}, nil, nil
	default:
		return repositories{}, nil, errors.New("unsupported store driver " + cfg.StoreDriver)
	}
}

func withCache(repos repositories, store *basecache.Store) repositories {
	repos.matches = cacherepo.NewMatchRepository(repos.matches, store)
	repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
	repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, store)
	return repos
}

func newProviderClient(cfg config.Config, logger *logging.Logger) *apifootball.Client {
	return apifootball.NewClient(apifootball.ClientConfig{
		HTTPClient:        &http.Client{Timeout: cfg.APIFootballTimeout},
		BaseURL:           cfg.APIFootballBaseURL,
		APIKey:            cfg.APIFootballKey,
		Timeout:           cfg.APIFootballTimeout,
		MaxRetries:        cfg.APIFootballMaxRetries,
		RetryBackoff:      cfg.APIFootballRetryBackoff,
		RequestsPerSecond: cfg.APIFootballRequestsPerSecond,
		Logger:            logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.APIFootballCircuitEnabled,
			FailureThreshold: cfg.APIFootballCircuitFailureCount,
			OpenTimeout:      cfg.APIFootballCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.APIFootballCircuitHalfOpenMaxReq,
		},
	})
}

func pollTargets(in []config.IngestionTarget) []usecase.IngestionTarget {
	out := make([]usecase.IngestionTarget, 0, len(in))
	for _, item := range in {
		out = append(out, usecase.IngestionTarget{LeagueID: item.LeagueID, Season: item.Season})
	}
	return out
}
