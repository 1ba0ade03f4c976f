package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/match-stats/internal/domain/match"
	"github.com/riskibarqy/match-stats/internal/domain/matchstats"
	"github.com/riskibarqy/match-stats/internal/platform/logging"
)

const DefaultRecentMatchesLimit = 10

// MatchWithStatistics pairs a match with its statistics row. Statistics is nil when the
// match has none recorded yet.
type MatchWithStatistics struct {
	Match      match.Match
	Statistics *matchstats.Statistics
}

type HistoryService struct {
	matchRepo match.Repository
	statsRepo matchstats.Repository
	logger    *logging.Logger
}

func NewHistoryService(matchRepo match.Repository, statsRepo matchstats.Repository, logger *logging.Logger) *HistoryService {
	if logger == nil {
		logger = logging.Default()
	}

	return &HistoryService{
		matchRepo: matchRepo,
		statsRepo: statsRepo,
		logger:    logger,
	}
}

// GetHistoricalMatches returns matches newest first. A zero Limit returns every match
// after Offset.
func (s *HistoryService) GetHistoricalMatches(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.GetHistoricalMatches")
	defer span.End()

	if err := validateMatchFilter(filter); err != nil {
		return nil, err
	}
	if s.matchRepo == nil {
		warnStoreNotConfigured(ctx, s.logger, "get historical matches")
		return []match.Match{}, nil
	}

	items, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		if degradeRead(ctx, s.logger, "get historical matches", err) {
			return []match.Match{}, nil
		}
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

func (s *HistoryService) GetMatchesWithStatistics(ctx context.Context, filter match.Filter) ([]MatchWithStatistics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.GetMatchesWithStatistics")
	defer span.End()

	items, err := s.GetHistoricalMatches(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []MatchWithStatistics{}, nil
	}

	statsByMatch, err := s.statisticsFor(ctx, items)
	if err != nil {
		return nil, err
	}

	out := make([]MatchWithStatistics, 0, len(items))
	for _, item := range items {
		row := MatchWithStatistics{Match: item}
		if stats, ok := statsByMatch[item.ID]; ok {
			stats := stats
			row.Statistics = &stats
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *HistoryService) GetRecentMatches(ctx context.Context, limit int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.GetRecentMatches")
	defer span.End()

	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}
	if limit == 0 {
		limit = DefaultRecentMatchesLimit
	}
	return s.GetHistoricalMatches(ctx, match.Filter{Limit: limit})
}

func (s *HistoryService) GetMatchWithStatistics(ctx context.Context, matchID int64) (MatchWithStatistics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.GetMatchWithStatistics")
	defer span.End()

	if matchID <= 0 {
		return MatchWithStatistics{}, fmt.Errorf("%w: match id must be > 0", ErrInvalidInput)
	}
	if s.matchRepo == nil {
		warnStoreNotConfigured(ctx, s.logger, "get match with statistics")
		return MatchWithStatistics{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if degradeRead(ctx, s.logger, "get match with statistics", err) {
			return MatchWithStatistics{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
		}
		return MatchWithStatistics{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return MatchWithStatistics{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	out := MatchWithStatistics{Match: item}
	if s.statsRepo == nil {
		return out, nil
	}
	stats, ok, err := s.statsRepo.GetByMatchID(ctx, matchID)
	if err != nil {
		if degradeRead(ctx, s.logger, "get match statistics", err) {
			return out, nil
		}
		return MatchWithStatistics{}, fmt.Errorf("get match statistics: %w", err)
	}
	if ok {
		out.Statistics = &stats
	}
	return out, nil
}

func (s *HistoryService) statisticsFor(ctx context.Context, items []match.Match) (map[int64]matchstats.Statistics, error) {
	if s.statsRepo == nil {
		return map[int64]matchstats.Statistics{}, nil
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	statsByMatch, err := s.statsRepo.ListByMatchIDs(ctx, ids)
	if err != nil {
		if degradeRead(ctx, s.logger, "list match statistics", err) {
			return map[int64]matchstats.Statistics{}, nil
		}
		return nil, fmt.Errorf("list match statistics: %w", err)
	}
	return statsByMatch, nil
}

func validateMatchFilter(filter match.Filter) error {
	if filter.TeamID < 0 || filter.LeagueID < 0 {
		return fmt.Errorf("%w: team id and league id must be >= 0", ErrInvalidInput)
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return fmt.Errorf("%w: limit and offset must be >= 0", ErrInvalidInput)
	}
	return nil
}
