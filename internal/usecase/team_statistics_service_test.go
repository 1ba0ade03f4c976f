package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/match-stats/internal/domain/match"
	"github.com/riskibarqy/match-stats/internal/domain/matchstats"
	"github.com/riskibarqy/match-stats/internal/domain/teamstats"
)

type stubHistoryReader struct {
	rows   []MatchWithStatistics
	err    error
	filter match.Filter
}

func (s *stubHistoryReader) GetMatchesWithStatistics(_ context.Context, filter match.Filter) ([]MatchWithStatistics, error) {
	s.filter = filter
	return s.rows, s.err
}

func TestTeamStatisticsService_Scenario(t *testing.T) {
	t.Parallel()

	svc := newMemoryServices(t)
	seedScenario(t, svc)

	got, err := svc.teamStats.GetTeamStatistics(context.Background(), 1, teamstats.Filter{})
	if err != nil {
		t.Fatalf("get team statistics: %v", err)
	}
	if got == nil {
		t.Fatalf("expected summary for team 1")
	}
	if got.MatchCount != 1 || got.TotalCorners != 6 || got.AverageCorners != 6.0 {
		t.Fatalf("unexpected summary: %+v", got)
	}

	// Team 2 played away in fixture 100 and sees the away counters.
	away, err := svc.teamStats.GetTeamStatistics(context.Background(), 2, teamstats.Filter{})
	if err != nil {
		t.Fatalf("get team statistics: %v", err)
	}
	if away == nil || away.TotalCorners != 4 {
		t.Fatalf("expected away orientation for team 2, got %+v", away)
	}
}

func TestTeamStatisticsService_NilWhenNoData(t *testing.T) {
	t.Parallel()

	svc := newMemoryServices(t)
	got, err := svc.teamStats.GetTeamStatistics(context.Background(), 1, teamstats.Filter{})
	if err != nil || got != nil {
		t.Fatalf("expected nil summary for empty store, got=%+v err=%v", got, err)
	}

	seedScenario(t, svc)
	got, err = svc.teamStats.GetTeamStatistics(context.Background(), 1, teamstats.Filter{StartDate: scenarioD2, EndDate: scenarioD1})
	if err != nil || got != nil {
		t.Fatalf("expected nil summary for an inverted window, got=%+v err=%v", got, err)
	}

	mustUpsertMatch(t, svc.upserts, testMatch(300, 1, 3, time.Date(2025, 9, 1, 14, 0, 0, 0, time.UTC)))
	got, err = svc.teamStats.GetTeamStatistics(context.Background(), 1, teamstats.Filter{})
	if err != nil || got != nil {
		t.Fatalf("expected nil summary when no match has statistics, got=%+v err=%v", got, err)
	}
}

func TestTeamStatisticsService_AveragesAndMissingValues(t *testing.T) {
	t.Parallel()

	history := &stubHistoryReader{rows: []MatchWithStatistics{
		{
			Match: match.Match{ID: 1, HomeTeamID: 10, AwayTeamID: 20},
			Statistics: &matchstats.Statistics{
				HomeCornerKicks: 5, HomeFouls: 11, HomeYellowCards: 2, HomeRedCards: 1,
				HomeShots: intPtr(14), HomePossession: intPtr(60),
			},
		},
		{
			Match: match.Match{ID: 2, HomeTeamID: 30, AwayTeamID: 10},
			Statistics: &matchstats.Statistics{
				AwayCornerKicks: 2, AwayFouls: 9, AwayYellowCards: 1,
			},
		},
		{Match: match.Match{ID: 3, HomeTeamID: 10, AwayTeamID: 40}},
	}}
	service := NewTeamStatisticsService(history)
	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	got, err := service.GetTeamStatistics(context.Background(), 10, teamstats.Filter{LeagueID: 39, StartDate: start})
	if err != nil {
		t.Fatalf("get team statistics: %v", err)
	}
	if history.filter.TeamID != 10 || history.filter.LeagueID != 39 || !history.filter.StartDate.Equal(start) {
		t.Fatalf("unexpected filter forwarded: %+v", history.filter)
	}
	if history.filter.Limit != 0 || history.filter.Offset != 0 {
		t.Fatalf("aggregation must read the full set, got %+v", history.filter)
	}

	if got.MatchCount != 2 {
		t.Fatalf("expected match without statistics to be skipped, got count=%d", got.MatchCount)
	}
	checks := []struct {
		name    string
		total   int
		average float64
	}{
		{"corners", got.TotalCorners, got.AverageCorners},
		{"fouls", got.TotalFouls, got.AverageFouls},
		{"yellow cards", got.TotalYellowCards, got.AverageYellowCards},
		{"red cards", got.TotalRedCards, got.AverageRedCards},
		{"shots", got.TotalShots, got.AverageShots},
		{"possession", got.TotalPossession, got.AveragePossession},
	}
	for _, c := range checks {
		if c.average != float64(c.total)/float64(got.MatchCount) {
			t.Fatalf("%s average %.2f does not equal total %d / %d", c.name, c.average, c.total, got.MatchCount)
		}
	}
	if got.TotalCorners != 7 || got.TotalShots != 14 || got.TotalPossession != 60 {
		t.Fatalf("unexpected totals: %+v", got)
	}
}

func TestTeamStatisticsService_Errors(t *testing.T) {
	t.Parallel()

	service := NewTeamStatisticsService(&stubHistoryReader{})
	if _, err := service.GetTeamStatistics(context.Background(), 0, teamstats.Filter{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	readErr := errors.New("boom")
	service = NewTeamStatisticsService(&stubHistoryReader{err: readErr})
	if _, err := service.GetTeamStatistics(context.Background(), 1, teamstats.Filter{}); !errors.Is(err, readErr) {
		t.Fatalf("expected read error, got %v", err)
	}
}
