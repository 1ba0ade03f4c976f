package memory

import (
	"context"

	"github.com/riskibarqy/match-stats/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) ListObserved(_ context.Context) ([]team.Team, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[team.Team]struct{}, len(s.matchOrder)*2)
	home := make([]team.Team, 0, len(s.matchOrder))
	away := make([]team.Team, 0, len(s.matchOrder))
	for _, id := range s.matchOrder {
		item := s.matches[id]
		h := team.Team{ID: item.HomeTeamID, Name: item.HomeTeamName}
		if _, ok := seen[h]; !ok {
			seen[h] = struct{}{}
			home = append(home, h)
		}
	}
	clear(seen)
	for _, id := range s.matchOrder {
		item := s.matches[id]
		a := team.Team{ID: item.AwayTeamID, Name: item.AwayTeamName}
		if _, ok := seen[a]; !ok {
			seen[a] = struct{}{}
			away = append(away, a)
		}
	}

	return append(home, away...), nil
}
