package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/match-stats/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) Upsert(_ context.Context, item match.Match) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	if id, ok := s.matchIDByFixture[item.FixtureID]; ok {
		existing := s.matches[id]
		existing.Status = match.NormalizeStatus(item.Status)
		existing.HomeScore = cloneIntPtr(item.HomeScore)
		existing.AwayScore = cloneIntPtr(item.AwayScore)
		existing.UpdatedAt = now
		s.matches[id] = existing
		return nil
	}

	s.nextMatchID++
	stored := cloneMatch(item)
	stored.ID = s.nextMatchID
	stored.Status = match.NormalizeStatus(item.Status)
	stored.MatchDate = item.MatchDate.UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.matches[stored.ID] = stored
	s.matchOrder = append(s.matchOrder, stored.ID)
	s.matchIDByFixture[stored.FixtureID] = stored.ID
	return nil
}

func (r *MatchRepository) List(_ context.Context, filter match.Filter) ([]match.Match, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]match.Match, 0, len(s.matches))
	for _, id := range s.matchOrder {
		item := s.matches[id]
		if filter.Matches(item) {
			out = append(out, cloneMatch(item))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return match.Less(out[i], out[j])
	})

	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *MatchRepository) GetByID(_ context.Context, id int64) (match.Match, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.matches[id]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(item), true, nil
}

func (r *MatchRepository) GetByFixtureID(ctx context.Context, fixtureID int64) (match.Match, bool, error) {
	r.store.mu.RLock()
	id, ok := r.store.matchIDByFixture[fixtureID]
	r.store.mu.RUnlock()
	if !ok {
		return match.Match{}, false, nil
	}
	return r.GetByID(ctx, id)
}

func paginate(items []match.Match, limit, offset int) []match.Match {
	if offset > 0 {
		if offset >= len(items) {
			return []match.Match{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
