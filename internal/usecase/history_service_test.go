package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/match-stats/internal/domain/match"
	"github.com/riskibarqy/match-stats/internal/domain/matchstats"
	"github.com/riskibarqy/match-stats/internal/domain/storage"
	matchmock "github.com/riskibarqy/match-stats/internal/mocks/domain/match"
	matchstatsmock "github.com/riskibarqy/match-stats/internal/mocks/domain/matchstats"
	"github.com/riskibarqy/match-stats/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

var (
	scenarioD1 = time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC)
	scenarioD2 = time.Date(2025, 8, 23, 14, 0, 0, 0, time.UTC)
)

// seedScenario stores fixture 100 (1 v 2, with statistics) and fixture 101 (2 v 1, newer,
// without statistics).
func seedScenario(t *testing.T, svc memoryServices) {
	t.Helper()

	mustUpsertMatch(t, svc.upserts, testMatch(100, 1, 2, scenarioD1))
	mustUpsertMatch(t, svc.upserts, testMatch(101, 2, 1, scenarioD2))
	mustUpsertStatistics(t, svc.upserts, matchstats.Statistics{
		MatchID:         mustMatchID(t, svc.matchRepo, 100),
		HomeCornerKicks: 6,
		AwayCornerKicks: 4,
	})
}

func TestHistoryService_PaginationScenario(t *testing.T) {
	t.Parallel()

	svc := newMemoryServices(t)
	seedScenario(t, svc)

	got, err := svc.history.GetHistoricalMatches(context.Background(), match.Filter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("get historical matches: %v", err)
	}
	if len(got) != 1 || got[0].FixtureID != 100 {
		t.Fatalf("expected exactly fixture 100, got=%+v", got)
	}
}

func TestHistoryService_GetHistoricalMatches_Properties(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newMemoryServices(t)
	base := time.Date(2025, 8, 1, 19, 0, 0, 0, time.UTC)
	for i := int64(0); i < 12; i++ {
		home := 1 + i%4
		away := 1 + (i+1)%4
		mustUpsertMatch(t, svc.upserts, testMatch(500+i, home, away, base.Add(time.Duration(i%5)*24*time.Hour)))
	}

	filters := []match.Filter{
		{},
		{TeamID: 1},
		{TeamID: 3, StartDate: base.Add(24 * time.Hour)},
		{LeagueID: 39, EndDate: base.Add(2 * 24 * time.Hour)},
	}
	for _, filter := range filters {
		t.Run(fmt.Sprintf("%+v", filter), func(t *testing.T) {
			got, err := svc.history.GetHistoricalMatches(ctx, filter)
			if err != nil {
				t.Fatalf("get historical matches: %v", err)
			}
			for i, item := range got {
				if i > 0 && item.MatchDate.After(got[i-1].MatchDate) {
					t.Fatalf("not ordered newest first at index %d", i)
				}
				if filter.TeamID > 0 && !item.InvolvesTeam(filter.TeamID) {
					t.Fatalf("match %d does not involve team %d", item.FixtureID, filter.TeamID)
				}
				if !filter.StartDate.IsZero() && item.MatchDate.Before(filter.StartDate) {
					t.Fatalf("match %d before start date", item.FixtureID)
				}
				if !filter.EndDate.IsZero() && item.MatchDate.After(filter.EndDate) {
					t.Fatalf("match %d after end date", item.FixtureID)
				}
			}
		})
	}

	small, err := svc.history.GetHistoricalMatches(ctx, match.Filter{Limit: 5})
	if err != nil {
		t.Fatalf("get first page: %v", err)
	}
	large, err := svc.history.GetHistoricalMatches(ctx, match.Filter{Limit: 10})
	if err != nil {
		t.Fatalf("get larger page: %v", err)
	}
	for k := 0; k < 5; k++ {
		if small[k].ID != large[k].ID {
			t.Fatalf("page boundary disagrees at %d: %d vs %d", k, small[k].ID, large[k].ID)
		}
	}
}

func TestHistoryService_InclusiveDateBounds(t *testing.T) {
	t.Parallel()

	svc := newMemoryServices(t)
	seedScenario(t, svc)

	got, err := svc.history.GetHistoricalMatches(context.Background(), match.Filter{StartDate: scenarioD1, EndDate: scenarioD1})
	if err != nil {
		t.Fatalf("get historical matches: %v", err)
	}
	if len(got) != 1 || got[0].FixtureID != 100 {
		t.Fatalf("expected match on the boundary instant, got=%+v", got)
	}
}

func TestHistoryService_GetHistoricalMatches_InvertedRangeIsEmpty(t *testing.T) {
	t.Parallel()

	svc := newMemoryServices(t)
	seedScenario(t, svc)

	got, err := svc.history.GetHistoricalMatches(context.Background(), match.Filter{StartDate: scenarioD2, EndDate: scenarioD1})
	if err != nil {
		t.Fatalf("get historical matches: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no match in an inverted window, got=%+v", got)
	}
}

func TestHistoryService_GetMatchesWithStatistics(t *testing.T) {
	t.Parallel()

	svc := newMemoryServices(t)
	seedScenario(t, svc)

	got, err := svc.history.GetMatchesWithStatistics(context.Background(), match.Filter{})
	if err != nil {
		t.Fatalf("get matches with statistics: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got=%d", len(got))
	}
	if got[0].Match.FixtureID != 101 || got[0].Statistics != nil {
		t.Fatalf("expected fixture 101 first with nil statistics, got=%+v", got[0])
	}
	if got[1].Statistics == nil || got[1].Statistics.HomeCornerKicks != 6 {
		t.Fatalf("expected statistics for fixture 100, got=%+v", got[1].Statistics)
	}
}

func TestHistoryService_GetMatchesWithStatistics_BatchesLookup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	statsRepo := matchstatsmock.NewRepository(t)
	service := NewHistoryService(matchRepo, statsRepo, logging.NewNop())

	matches := []match.Match{{ID: 7, FixtureID: 70}, {ID: 8, FixtureID: 80}}
	matchRepo.
		On("List", mock.MatchedBy(ctxMatcher(ctx)), match.Filter{Limit: 2}).
		Return(matches, nil).
		Once()
	statsRepo.
		On("ListByMatchIDs", mock.MatchedBy(ctxMatcher(ctx)), []int64{7, 8}).
		Return(map[int64]matchstats.Statistics{8: {ID: 1, MatchID: 8, AwayFouls: 12}}, nil).
		Once()

	got, err := service.GetMatchesWithStatistics(ctx, match.Filter{Limit: 2})
	if err != nil {
		t.Fatalf("get matches with statistics: %v", err)
	}
	if got[0].Statistics != nil || got[1].Statistics == nil || got[1].Statistics.AwayFouls != 12 {
		t.Fatalf("unexpected statistics mapping: %+v", got)
	}
}

func TestHistoryService_DegradesWhenStoreUnavailable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	service := NewHistoryService(matchRepo, matchstatsmock.NewRepository(t), logging.NewNop())

	matchRepo.
		On("List", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("select matches: %w", storage.ErrUnavailable)).
		Once()

	got, err := service.GetHistoricalMatches(ctx, match.Filter{TeamID: 1})
	if err != nil {
		t.Fatalf("expected degraded read, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got=%v", got)
	}
}

func TestHistoryService_PropagatesOtherStoreErrors(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	service := NewHistoryService(matchRepo, matchstatsmock.NewRepository(t), logging.NewNop())
	queryErr := errors.New("column does not exist")

	matchRepo.On("List", mock.Anything, mock.Anything).Return(nil, queryErr).Once()

	if _, err := service.GetHistoricalMatches(context.Background(), match.Filter{}); !errors.Is(err, queryErr) {
		t.Fatalf("expected query error, got %v", err)
	}
}

func TestHistoryService_NoStore(t *testing.T) {
	t.Parallel()

	service := NewHistoryService(nil, nil, logging.NewNop())
	got, err := service.GetMatchesWithStatistics(context.Background(), match.Filter{})
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result, got=%v err=%v", got, err)
	}
	if _, err := service.GetMatchWithStatistics(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHistoryService_GetRecentMatches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newMemoryServices(t)
	base := time.Date(2025, 8, 1, 19, 0, 0, 0, time.UTC)
	for i := int64(0); i < 12; i++ {
		mustUpsertMatch(t, svc.upserts, testMatch(900+i, 1, 2, base.Add(time.Duration(i)*time.Hour)))
	}

	got, err := svc.history.GetRecentMatches(ctx, 0)
	if err != nil {
		t.Fatalf("get recent matches: %v", err)
	}
	if len(got) != DefaultRecentMatchesLimit || got[0].FixtureID != 911 {
		t.Fatalf("unexpected recent matches: len=%d first=%d", len(got), got[0].FixtureID)
	}

	if _, err := svc.history.GetRecentMatches(ctx, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHistoryService_GetMatchWithStatistics(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newMemoryServices(t)
	seedScenario(t, svc)

	withStats, err := svc.history.GetMatchWithStatistics(ctx, mustMatchID(t, svc.matchRepo, 100))
	if err != nil {
		t.Fatalf("get match with statistics: %v", err)
	}
	if withStats.Statistics == nil || withStats.Statistics.AwayCornerKicks != 4 {
		t.Fatalf("unexpected statistics: %+v", withStats.Statistics)
	}

	without, err := svc.history.GetMatchWithStatistics(ctx, mustMatchID(t, svc.matchRepo, 101))
	if err != nil {
		t.Fatalf("get match without statistics: %v", err)
	}
	if without.Statistics != nil {
		t.Fatalf("expected nil statistics for fixture 101")
	}

	if _, err := svc.history.GetMatchWithStatistics(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.history.GetMatchWithStatistics(ctx, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
