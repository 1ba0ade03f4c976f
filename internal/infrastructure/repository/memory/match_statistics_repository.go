package memory

import (
	"context"

	"github.com/riskibarqy/match-stats/internal/domain/matchstats"
)

type MatchStatisticsRepository struct {
	store *Store
}

func NewMatchStatisticsRepository(store *Store) *MatchStatisticsRepository {
	return &MatchStatisticsRepository{store: store}
}

func (r *MatchStatisticsRepository) Upsert(_ context.Context, item matchstats.Statistics) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneStatistics(item)
	stored.LastUpdated = s.timestamp()
	if id, ok := s.statsIDByMatch[item.MatchID]; ok {
		stored.ID = id
		s.statistics[id] = stored
		return nil
	}

	s.nextStatsID++
	stored.ID = s.nextStatsID
	s.statistics[stored.ID] = stored
	s.statsIDByMatch[stored.MatchID] = stored.ID
	return nil
}

func (r *MatchStatisticsRepository) GetByMatchID(_ context.Context, matchID int64) (matchstats.Statistics, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.statsIDByMatch[matchID]
	if !ok {
		return matchstats.Statistics{}, false, nil
	}
	return cloneStatistics(s.statistics[id]), true, nil
}

func (r *MatchStatisticsRepository) ListByMatchIDs(_ context.Context, matchIDs []int64) (map[int64]matchstats.Statistics, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int64]matchstats.Statistics, len(matchIDs))
	for _, matchID := range matchIDs {
		id, ok := s.statsIDByMatch[matchID]
		if !ok {
			continue
		}
		out[matchID] = cloneStatistics(s.statistics[id])
	}
	return out, nil
}
