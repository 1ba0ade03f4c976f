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

func TestUpsertService_UpsertMatch_RejectsInvalidPayload(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	service := NewUpsertService(matchRepo, matchstatsmock.NewRepository(t), logging.NewNop())
	date := time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC)

	cases := map[string]match.Match{
		"missing fixture id": testMatch(0, 1, 2, date),
		"same teams":         testMatch(100, 1, 1, date),
		"missing date":       testMatch(100, 1, 2, time.Time{}),
	}
	for name, item := range cases {
		if err := service.UpsertMatch(context.Background(), item); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestUpsertService_UpsertMatch_NormalizesBeforeWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	service := NewUpsertService(matchRepo, matchstatsmock.NewRepository(t), logging.NewNop())

	item := testMatch(100, 1, 2, time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC))
	item.Status = " ft "
	item.HomeTeamName = "  Arsenal "

	matchRepo.
		On("Upsert", mock.MatchedBy(ctxMatcher(ctx)), mock.MatchedBy(func(v match.Match) bool {
			return v.Status == match.StatusFinished && v.HomeTeamName == "Arsenal"
		})).
		Return(nil).
		Once()

	if err := service.UpsertMatch(ctx, item); err != nil {
		t.Fatalf("upsert match: %v", err)
	}
}

func TestUpsertService_UpsertMatch_PropagatesStoreError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	service := NewUpsertService(matchRepo, matchstatsmock.NewRepository(t), logging.NewNop())
	storeErr := errors.New("duplicate key")

	matchRepo.On("Upsert", mock.Anything, mock.Anything).Return(storeErr).Once()

	err := service.UpsertMatch(ctx, testMatch(100, 1, 2, time.Now()))
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestUpsertService_FailsWhenConfiguredStoreUnreachable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	statsRepo := matchstatsmock.NewRepository(t)
	service := NewUpsertService(matchRepo, statsRepo, logging.NewNop())

	dialErr := fmt.Errorf("%w: upsert match: dial tcp 10.0.0.5:5432: connect: connection refused", storage.ErrUnavailable)
	matchRepo.On("Upsert", mock.Anything, mock.Anything).Return(dialErr).Once()
	statsRepo.On("Upsert", mock.Anything, mock.Anything).Return(dialErr).Once()

	if err := service.UpsertMatch(ctx, testMatch(100, 1, 2, time.Now())); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if err := service.UpsertMatchStatistics(ctx, matchstats.Statistics{MatchID: 1}); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestUpsertService_NoStoreIsNoop(t *testing.T) {
	t.Parallel()

	service := NewUpsertService(nil, nil, logging.NewNop())
	if err := service.UpsertMatch(context.Background(), testMatch(100, 1, 2, time.Now())); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if err := service.UpsertMatchStatistics(context.Background(), matchstats.Statistics{MatchID: 1}); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}

	// validation still applies without a store
	if err := service.UpsertMatchStatistics(context.Background(), matchstats.Statistics{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpsertService_UpsertMatchStatistics_RejectsOutOfRangePossession(t *testing.T) {
	t.Parallel()

	service := NewUpsertService(nil, matchstatsmock.NewRepository(t), logging.NewNop())
	err := service.UpsertMatchStatistics(context.Background(), matchstats.Statistics{MatchID: 1, HomePossession: intPtr(101)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpsertService_IdempotentAgainstMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newMemoryServices(t)
	item := testMatch(100, 1, 2, time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC))
	item.HomeScore = intPtr(2)
	item.AwayScore = intPtr(1)

	mustUpsertMatch(t, svc.upserts, item)
	mustUpsertMatch(t, svc.upserts, item)

	all, err := svc.history.GetHistoricalMatches(ctx, match.Filter{})
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one row for fixture 100, got=%d", len(all))
	}
	got := all[0]
	if got.FixtureID != 100 || got.Status != match.StatusFinished || *got.HomeScore != 2 || *got.AwayScore != 1 {
		t.Fatalf("stored state differs from payload: %+v", got)
	}
}
