package cache

import (
	"context"

	"github.com/riskibarqy/match-stats/internal/domain/league"
	"github.com/riskibarqy/match-stats/internal/domain/match"
	"github.com/riskibarqy/match-stats/internal/domain/team"
	basecache "github.com/riskibarqy/match-stats/internal/platform/cache"
)

const (
	dimensionPrefix = "dimension:"
	teamsCacheKey   = dimensionPrefix + "teams"
	leaguesCacheKey = dimensionPrefix + "leagues"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListObserved(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, teamsCacheKey, func(ctx context.Context) (any, error) {
		items, err := r.next.ListObserved(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) ListObserved(ctx context.Context) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, leaguesCacheKey, func(ctx context.Context) (any, error) {
		items, err := r.next.ListObserved(ctx)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

// MatchRepository passes every call through and drops the cached team and league
// projections after a successful upsert, since a new match can introduce either.
type MatchRepository struct {
	match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{Repository: next, cache: cache}
}

func (r *MatchRepository) Upsert(ctx context.Context, item match.Match) error {
	if err := r.Repository.Upsert(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, dimensionPrefix)
	return nil
}
