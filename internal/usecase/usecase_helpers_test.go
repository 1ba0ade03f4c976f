package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/match-stats/internal/domain/match"
	"github.com/riskibarqy/match-stats/internal/domain/matchstats"
	"github.com/riskibarqy/match-stats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-stats/internal/platform/logging"
)

type memoryServices struct {
	matchRepo *memory.MatchRepository
	statsRepo *memory.MatchStatisticsRepository
	upserts   *UpsertService
	history   *HistoryService
	teamStats *TeamStatisticsService
	dimension *DimensionService
}

func newMemoryServices(t *testing.T) memoryServices {
	t.Helper()

	store := memory.NewStore()
	matchRepo := memory.NewMatchRepository(store)
	statsRepo := memory.NewMatchStatisticsRepository(store)
	logger := logging.NewNop()
	history := NewHistoryService(matchRepo, statsRepo, logger)

	return memoryServices{
		matchRepo: matchRepo,
		statsRepo: statsRepo,
		upserts:   NewUpsertService(matchRepo, statsRepo, logger),
		history:   history,
		teamStats: NewTeamStatisticsService(history),
		dimension: NewDimensionService(memory.NewTeamRepository(store), memory.NewLeagueRepository(store), logger),
	}
}

func testMatch(fixtureID, home, away int64, date time.Time) match.Match {
	return match.Match{
		FixtureID:    fixtureID,
		HomeTeamID:   home,
		HomeTeamName: teamName(home),
		AwayTeamID:   away,
		AwayTeamName: teamName(away),
		LeagueID:     39,
		LeagueName:   "Premier League",
		Season:       2025,
		MatchDate:    date,
		Status:       match.StatusFinished,
	}
}

func teamName(id int64) string {
	names := map[int64]string{1: "Arsenal", 2: "Chelsea", 3: "Liverpool", 4: "Everton"}
	if name, ok := names[id]; ok {
		return name
	}
	return "Club"
}

func mustUpsertMatch(t *testing.T, svc *UpsertService, item match.Match) {
	t.Helper()
	if err := svc.UpsertMatch(context.Background(), item); err != nil {
		t.Fatalf("upsert match %d: %v", item.FixtureID, err)
	}
}

func mustMatchID(t *testing.T, repo match.Repository, fixtureID int64) int64 {
	t.Helper()
	item, ok, err := repo.GetByFixtureID(context.Background(), fixtureID)
	if err != nil || !ok {
		t.Fatalf("get match by fixture %d: ok=%v err=%v", fixtureID, ok, err)
	}
	return item.ID
}

func mustUpsertStatistics(t *testing.T, svc *UpsertService, item matchstats.Statistics) {
	t.Helper()
	if err := svc.UpsertMatchStatistics(context.Background(), item); err != nil {
		t.Fatalf("upsert statistics for match %d: %v", item.MatchID, err)
	}
}

func intPtr(v int) *int {
	return &v
}

func ctxMatcher(ctx context.Context) func(context.Context) bool {
	return func(v context.Context) bool { return v == ctx }
}
