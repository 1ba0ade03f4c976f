package memory

import (
	"sync"
	"time"

	"github.com/riskibarqy/match-stats/internal/domain/match"
	"github.com/riskibarqy/match-stats/internal/domain/matchstats"
)

// Store keeps matches and statistics in process memory. Repositories built on the same
// Store share its data, so a statistics row written through one is visible to the others.
type Store struct {
	mu sync.RWMutex

	nextMatchID int64
	nextStatsID int64

	matches          map[int64]match.Match
	matchOrder       []int64
	matchIDByFixture map[int64]int64

	statistics     map[int64]matchstats.Statistics
	statsIDByMatch map[int64]int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		matches:          make(map[int64]match.Match),
		matchIDByFixture: make(map[int64]int64),
		statistics:       make(map[int64]matchstats.Statistics),
		statsIDByMatch:   make(map[int64]int64),
		now:              time.Now,
	}
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneMatch(m match.Match) match.Match {
	m.HomeScore = cloneIntPtr(m.HomeScore)
	m.AwayScore = cloneIntPtr(m.AwayScore)
	return m
}

func cloneStatistics(s matchstats.Statistics) matchstats.Statistics {
	s.HomePossession = cloneIntPtr(s.HomePossession)
	s.AwayPossession = cloneIntPtr(s.AwayPossession)
	s.HomeShots = cloneIntPtr(s.HomeShots)
	s.AwayShots = cloneIntPtr(s.AwayShots)
	s.HomePassesAccurate = cloneIntPtr(s.HomePassesAccurate)
	s.AwayPassesAccurate = cloneIntPtr(s.AwayPassesAccurate)
	return s
}
