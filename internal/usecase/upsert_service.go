package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/match-stats/internal/domain/match"
	"github.com/riskibarqy/match-stats/internal/domain/matchstats"
	"github.com/riskibarqy/match-stats/internal/platform/logging"
)

// UpsertService writes matches and their statistics. A nil repository means no store is
// configured and writes become logged no-ops. A configured store that cannot be reached
// fails the write with ErrStoreUnavailable.
type UpsertService struct {
	matchRepo match.Repository
	statsRepo matchstats.Repository
	logger    *logging.Logger
}

func NewUpsertService(matchRepo match.Repository, statsRepo matchstats.Repository, logger *logging.Logger) *UpsertService {
	if logger == nil {
		logger = logging.Default()
	}

	return &UpsertService{
		matchRepo: matchRepo,
		statsRepo: statsRepo,
		logger:    logger,
	}
}

func (s *UpsertService) UpsertMatch(ctx context.Context, item match.Match) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UpsertService.UpsertMatch")
	defer span.End()

	item.HomeTeamName = strings.TrimSpace(item.HomeTeamName)
	item.AwayTeamName = strings.TrimSpace(item.AwayTeamName)
	item.LeagueName = strings.TrimSpace(item.LeagueName)
	item.Status = match.NormalizeStatus(item.Status)
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if s.matchRepo == nil {
		warnStoreNotConfigured(ctx, s.logger, "upsert match")
		return nil
	}
	if err := s.matchRepo.Upsert(ctx, item); err != nil {
		return fmt.Errorf("upsert match fixture_id=%d: %w", item.FixtureID, err)
	}
	return nil
}

func (s *UpsertService) UpsertMatchStatistics(ctx context.Context, item matchstats.Statistics) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UpsertService.UpsertMatchStatistics")
	defer span.End()

	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if s.statsRepo == nil {
		warnStoreNotConfigured(ctx, s.logger, "upsert match statistics")
		return nil
	}
	if err := s.statsRepo.Upsert(ctx, item); err != nil {
		return fmt.Errorf("upsert match statistics match_id=%d: %w", item.MatchID, err)
	}
	return nil
}
