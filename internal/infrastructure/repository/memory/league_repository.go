package memory

import (
	"context"

	"github.com/riskibarqy/match-stats/internal/domain/league"
)

type LeagueRepository struct {
	store *Store
}

func NewLeagueRepository(store *Store) *LeagueRepository {
	return &LeagueRepository{store: store}
}

func (r *LeagueRepository) ListObserved(_ context.Context) ([]league.League, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[league.League]struct{})
	out := make([]league.League, 0)
	for _, id := range s.matchOrder {
		item := s.matches[id]
		l := league.League{ID: item.LeagueID, Name: item.LeagueName}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out, nil
}
