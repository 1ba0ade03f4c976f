package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/match-stats/internal/domain/match"
	"github.com/riskibarqy/match-stats/internal/domain/matchstats"
	idgen "github.com/riskibarqy/match-stats/internal/platform/id"
	"github.com/riskibarqy/match-stats/internal/platform/logging"
)

const defaultIngestionWorkers = 4

// FixtureProvider is the external football data source ingestion pulls from.
type FixtureProvider interface {
	FetchLiveFixtures(ctx context.Context, leagueID int64, season int) ([]ExternalFixture, error)
	FetchFixturesByDate(ctx context.Context, date time.Time) ([]ExternalFixture, error)
	FetchFixture(ctx context.Context, fixtureID int64) (ExternalFixture, bool, error)
	FetchFixtureStatistics(ctx context.Context, fixtureID int64) ([]ExternalTeamStatistics, error)
}

type ExternalFixture struct {
	FixtureID    int64
	LeagueID     int64
	LeagueName   string
	Season       int
	MatchDate    time.Time
	Status       string
	HomeTeamID   int64
	HomeTeamName string
	AwayTeamID   int64
	AwayTeamName string
	HomeScore    *int
	AwayScore    *int
}

// ExternalTeamStatistics is one side's statistics block for a fixture.
type ExternalTeamStatistics struct {
	TeamID         int64
	TeamName       string
	CornerKicks    int
	Fouls          int
	YellowCards    int
	RedCards       int
	Possession     *int
	Shots          *int
	PassesAccurate *int
}

type IngestionConfig struct {
	MaxWorkers int
}

type IngestionResult struct {
	RunID              string `json:"runId"`
	Scope              string `json:"scope"`
	FixturesFetched    int    `json:"fixturesFetched"`
	MatchesUpserted    int    `json:"matchesUpserted"`
	MatchesSkipped     int    `json:"matchesSkipped"`
	StatisticsUpserted int    `json:"statisticsUpserted"`
	StatisticsSkipped  int    `json:"statisticsSkipped"`
	DurationMs         int64  `json:"durationMs"`
}

// IngestionService pulls fixtures and statistics from the provider and stores them
// through UpsertService. Every provider call of a run completes before the first write,
// so a provider failure leaves the store untouched.
type IngestionService struct {
	provider  FixtureProvider
	upserts   *UpsertService
	matchRepo match.Repository
	ids       idgen.Generator
	cfg       IngestionConfig
	logger    *logging.Logger
}

func NewIngestionService(
	provider FixtureProvider,
	upserts *UpsertService,
	matchRepo match.Repository,
	ids idgen.Generator,
	cfg IngestionConfig,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = idgen.NewRandomGenerator(idgen.PrefixIngestionRun)
	}

	return &IngestionService{
		provider:  provider,
		upserts:   upserts,
		matchRepo: matchRepo,
		ids:       ids,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *IngestionService) SyncLive(ctx context.Context, leagueID int64, season int) (IngestionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncLive")
	defer span.End()

	if leagueID <= 0 || season <= 0 {
		return IngestionResult{}, fmt.Errorf("%w: league id and season must be > 0", ErrInvalidInput)
	}

	scope := fmt.Sprintf("live league=%d season=%d", leagueID, season)
	return s.run(ctx, scope, func(ctx context.Context) ([]ExternalFixture, error) {
		return s.provider.FetchLiveFixtures(ctx, leagueID, season)
	})
}

func (s *IngestionService) SyncByDate(ctx context.Context, date time.Time) (IngestionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncByDate")
	defer span.End()

	if date.IsZero() {
		return IngestionResult{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	scope := "date=" + date.UTC().Format(time.DateOnly)
	return s.run(ctx, scope, func(ctx context.Context) ([]ExternalFixture, error) {
		return s.provider.FetchFixturesByDate(ctx, date)
	})
}

func (s *IngestionService) SyncFixture(ctx context.Context, fixtureID int64) (IngestionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncFixture")
	defer span.End()

	if fixtureID <= 0 {
		return IngestionResult{}, fmt.Errorf("%w: fixture id must be > 0", ErrInvalidInput)
	}

	scope := fmt.Sprintf("fixture=%d", fixtureID)
	return s.run(ctx, scope, func(ctx context.Context) ([]ExternalFixture, error) {
		item, ok, err := s.provider.FetchFixture(ctx, fixtureID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return []ExternalFixture{item}, nil
	})
}

func (s *IngestionService) run(
	ctx context.Context,
	scope string,
	fetch func(ctx context.Context) ([]ExternalFixture, error),
) (IngestionResult, error) {
	start := time.Now()
	if s.provider == nil || s.upserts == nil {
		return IngestionResult{}, fmt.Errorf("%w: fixture provider is not configured", ErrDependencyUnavailable)
	}

	runID, err := s.ids.NewID()
	if err != nil {
		return IngestionResult{}, fmt.Errorf("generate ingestion run id: %w", err)
	}
	result := IngestionResult{RunID: runID, Scope: scope}
	logger := s.logger.With("run_id", runID, "scope", scope)

	if s.matchRepo == nil {
		warnStoreNotConfigured(ctx, logger, "ingestion")
		return result, nil
	}

	fixtures, err := fetch(ctx)
	if err != nil {
		return result, fmt.Errorf("%w: fetch fixtures %s: %w", ErrUpstreamIngestion, scope, err)
	}
	result.FixturesFetched = len(fixtures)
	if len(fixtures) == 0 {
		result.DurationMs = time.Since(start).Milliseconds()
		logger.InfoContext(ctx, "ingestion run finished, no fixtures returned")
		return result, nil
	}

	statsByFixture, err := s.fetchStatistics(ctx, fixtures)
	if err != nil {
		return result, err
	}

	for _, fx := range fixtures {
		item := mapExternalFixture(fx)
		if err := s.upserts.UpsertMatch(ctx, item); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				result.MatchesSkipped++
				logger.WarnContext(ctx, "skip invalid provider fixture", "fixture_id", fx.FixtureID, "error", err)
				continue
			}
			return result, fmt.Errorf("store fixture %d: %w", fx.FixtureID, err)
		}
		result.MatchesUpserted++

		teamStats, ok := statsByFixture[fx.FixtureID]
		if !ok {
			continue
		}

		stored, exists, err := s.matchRepo.GetByFixtureID(ctx, fx.FixtureID)
		if err != nil {
			return result, fmt.Errorf("resolve match for fixture %d: %w", fx.FixtureID, err)
		}
		if !exists {
			result.StatisticsSkipped++
			logger.WarnContext(ctx, "skip statistics, match not found after upsert", "fixture_id", fx.FixtureID)
			continue
		}

		stats, ok := mapExternalStatistics(stored.ID, fx, teamStats)
		if !ok {
			result.StatisticsSkipped++
			logger.WarnContext(ctx, "skip statistics, no side matched fixture teams", "fixture_id", fx.FixtureID)
			continue
		}
		if err := s.upserts.UpsertMatchStatistics(ctx, stats); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				result.StatisticsSkipped++
				logger.WarnContext(ctx, "skip invalid provider statistics", "fixture_id", fx.FixtureID, "error", err)
				continue
			}
			return result, fmt.Errorf("store statistics for fixture %d: %w", fx.FixtureID, err)
		}
		result.StatisticsUpserted++
	}

	result.DurationMs = time.Since(start).Milliseconds()
	logger.InfoContext(ctx, "ingestion run finished",
		"fixtures_fetched", result.FixturesFetched,
		"matches_upserted", result.MatchesUpserted,
		"statistics_upserted", result.StatisticsUpserted,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

// fetchStatistics pulls statistics for every started fixture over a bounded worker pool.
// Fixtures the provider has no statistics for are left out of the returned map.
func (s *IngestionService) fetchStatistics(ctx context.Context, fixtures []ExternalFixture) (map[int64][]ExternalTeamStatistics, error) {
	started := make([]int64, 0, len(fixtures))
	for _, fx := range fixtures {
		if match.HasStarted(fx.Status) {
			started = append(started, fx.FixtureID)
		}
	}

	out := make(map[int64][]ExternalTeamStatistics, len(started))
	if len(started) == 0 {
		return out, nil
	}

	pool, err := ants.NewPool(normalizeIngestionWorkerCount(s.cfg.MaxWorkers, len(started)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		firstErr error
		workers  sync.WaitGroup
	)
	for _, fixtureID := range started {
		fixtureID := fixtureID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			items, err := s.provider.FetchFixtureStatistics(ctx, fixtureID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("%w: fetch statistics for fixture %d: %w", ErrUpstreamIngestion, fixtureID, err)
				}
				return
			}
			if len(items) > 0 {
				out[fixtureID] = items
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit statistics fetch to worker pool: %w", err)
		}
	}
	workers.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func normalizeIngestionWorkerCount(requested, tasks int) int {
	if requested <= 0 {
		requested = defaultIngestionWorkers
	}
	if tasks > 0 && requested > tasks {
		return tasks
	}
	return requested
}

func mapExternalFixture(fx ExternalFixture) match.Match {
	return match.Match{
		FixtureID:    fx.FixtureID,
		HomeTeamID:   fx.HomeTeamID,
		HomeTeamName: strings.TrimSpace(fx.HomeTeamName),
		AwayTeamID:   fx.AwayTeamID,
		AwayTeamName: strings.TrimSpace(fx.AwayTeamName),
		LeagueID:     fx.LeagueID,
		LeagueName:   strings.TrimSpace(fx.LeagueName),
		Season:       fx.Season,
		MatchDate:    fx.MatchDate.UTC(),
		Status:       match.NormalizeStatus(fx.Status),
		HomeScore:    fx.HomeScore,
		AwayScore:    fx.AwayScore,
	}
}

// mapExternalStatistics orients provider blocks by team id. It reports false when neither
// block belongs to the fixture's teams.
func mapExternalStatistics(matchID int64, fx ExternalFixture, items []ExternalTeamStatistics) (matchstats.Statistics, bool) {
	out := matchstats.Statistics{MatchID: matchID}
	matched := false
	for _, item := range items {
		switch item.TeamID {
		case fx.HomeTeamID:
			out.HomeCornerKicks = item.CornerKicks
			out.HomeFouls = item.Fouls
			out.HomeYellowCards = item.YellowCards
			out.HomeRedCards = item.RedCards
			out.HomePossession = item.Possession
			out.HomeShots = item.Shots
			out.HomePassesAccurate = item.PassesAccurate
			matched = true
		case fx.AwayTeamID:
			out.AwayCornerKicks = item.CornerKicks
			out.AwayFouls = item.Fouls
			out.AwayYellowCards = item.YellowCards
			out.AwayRedCards = item.RedCards
			out.AwayPossession = item.Possession
			out.AwayShots = item.Shots
			out.AwayPassesAccurate = item.PassesAccurate
			matched = true
		}
	}
	return out, matched
}
