package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/match-stats/internal/domain/league"
	"github.com/riskibarqy/match-stats/internal/domain/team"
	"github.com/riskibarqy/match-stats/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

type FilterOptions struct {
	Teams   []team.Team
	Leagues []league.League
}

// DimensionService lists the teams and leagues that appear on stored matches.
type DimensionService struct {
	teamRepo   team.Repository
	leagueRepo league.Repository
	logger     *logging.Logger
}

func NewDimensionService(teamRepo team.Repository, leagueRepo league.Repository, logger *logging.Logger) *DimensionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DimensionService{
		teamRepo:   teamRepo,
		leagueRepo: leagueRepo,
		logger:     logger,
	}
}

// ListTeams merges the observed pairs by id. When a club appears under several names the
// first one seen wins.
func (s *DimensionService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DimensionService.ListTeams")
	defer span.End()

	if s.teamRepo == nil {
		warnStoreNotConfigured(ctx, s.logger, "list teams")
		return []team.Team{}, nil
	}

	pairs, err := s.teamRepo.ListObserved(ctx)
	if err != nil {
		if degradeRead(ctx, s.logger, "list teams", err) {
			return []team.Team{}, nil
		}
		return nil, fmt.Errorf("list observed teams: %w", err)
	}

	seen := make(map[int64]struct{}, len(pairs))
	out := make([]team.Team, 0, len(pairs))
	for _, item := range pairs {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out, nil
}

func (s *DimensionService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DimensionService.ListLeagues")
	defer span.End()

	if s.leagueRepo == nil {
		warnStoreNotConfigured(ctx, s.logger, "list leagues")
		return []league.League{}, nil
	}

	pairs, err := s.leagueRepo.ListObserved(ctx)
	if err != nil {
		if degradeRead(ctx, s.logger, "list leagues", err) {
			return []league.League{}, nil
		}
		return nil, fmt.Errorf("list observed leagues: %w", err)
	}

	seen := make(map[int64]struct{}, len(pairs))
	out := make([]league.League, 0, len(pairs))
	for _, item := range pairs {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out, nil
}

func (s *DimensionService) ListFilterOptions(ctx context.Context) (FilterOptions, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DimensionService.ListFilterOptions")
	defer span.End()

	var out FilterOptions
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		teams, err := s.ListTeams(ctx)
		if err != nil {
			return err
		}
		out.Teams = teams
		return nil
	})
	p.Go(func(ctx context.Context) error {
		leagues, err := s.ListLeagues(ctx)
		if err != nil {
			return err
		}
		out.Leagues = leagues
		return nil
	})
	if err := p.Wait(); err != nil {
		return FilterOptions{}, err
	}
	return out, nil
}
