package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/match-stats/internal/domain/match"
	"github.com/riskibarqy/match-stats/internal/domain/matchstats"
)

const (
	LeagueIDPremierLeague  = 39
	LeagueIDLiga1Indonesia = 274
)

// SeedMatches returns a small fixture list for local runs against the memory store.
func SeedMatches() []match.Match {
	kickoff := time.Date(2025, time.August, 16, 14, 0, 0, 0, time.UTC)
	return []match.Match{
		{FixtureID: 1208021, HomeTeamID: 42, AwayTeamID: 49, HomeTeamName: "Arsenal", AwayTeamName: "Chelsea", LeagueID: LeagueIDPremierLeague, LeagueName: "Premier League", Season: 2025, MatchDate: kickoff, Status: match.StatusFinished, HomeScore: ptrInt(2), AwayScore: ptrInt(1)},
		{FixtureID: 1208022, HomeTeamID: 40, AwayTeamID: 42, HomeTeamName: "Liverpool", AwayTeamName: "Arsenal", LeagueID: LeagueIDPremierLeague, LeagueName: "Premier League", Season: 2025, MatchDate: kickoff.Add(7 * 24 * time.Hour), Status: match.StatusFinished, HomeScore: ptrInt(1), AwayScore: ptrInt(1)},
		{FixtureID: 1208023, HomeTeamID: 49, AwayTeamID: 40, HomeTeamName: "Chelsea", AwayTeamName: "Liverpool", LeagueID: LeagueIDPremierLeague, LeagueName: "Premier League", Season: 2025, MatchDate: kickoff.Add(14 * 24 * time.Hour), Status: match.StatusNotStarted},
		{FixtureID: 1301001, HomeTeamID: 2443, AwayTeamID: 2446, HomeTeamName: "Persija Jakarta", AwayTeamName: "Persib Bandung", LeagueID: LeagueIDLiga1Indonesia, LeagueName: "Liga 1", Season: 2025, MatchDate: kickoff.Add(3 * 24 * time.Hour), Status: match.StatusFinished, HomeScore: ptrInt(0), AwayScore: ptrInt(0)},
	}
}

// SeedStatistics returns statistics keyed by fixture id for the seeded matches that were played.
func SeedStatistics() map[int64]matchstats.Statistics {
	return map[int64]matchstats.Statistics{
		1208021: {HomeCornerKicks: 7, AwayCornerKicks: 3, HomeFouls: 10, AwayFouls: 13, HomeYellowCards: 1, AwayYellowCards: 3, HomePossession: ptrInt(58), AwayPossession: ptrInt(42), HomeShots: ptrInt(16), AwayShots: ptrInt(8), HomePassesAccurate: ptrInt(471), AwayPassesAccurate: ptrInt(322)},
		1208022: {HomeCornerKicks: 5, AwayCornerKicks: 5, HomeFouls: 9, AwayFouls: 12, HomeYellowCards: 2, AwayYellowCards: 2, AwayRedCards: 1, HomePossession: ptrInt(61), AwayPossession: ptrInt(39), HomeShots: ptrInt(18), AwayShots: ptrInt(6)},
		1301001: {HomeCornerKicks: 4, AwayCornerKicks: 6, HomeFouls: 17, AwayFouls: 15, HomeYellowCards: 4, AwayYellowCards: 3},
	}
}

// Seed writes the seeded matches and statistics into store.
func Seed(ctx context.Context, store *Store) error {
	matches := NewMatchRepository(store)
	stats := NewMatchStatisticsRepository(store)
	byFixture := SeedStatistics()

	for _, item := range SeedMatches() {
		if err := matches.Upsert(ctx, item); err != nil {
			return fmt.Errorf("seed match fixture_id=%d: %w", item.FixtureID, err)
		}
		row, ok := byFixture[item.FixtureID]
		if !ok {
			continue
		}
		stored, found, err := matches.GetByFixtureID(ctx, item.FixtureID)
		if err != nil || !found {
			return fmt.Errorf("resolve seeded fixture_id=%d: %v", item.FixtureID, err)
		}
		row.MatchID = stored.ID
		if err := stats.Upsert(ctx, row); err != nil {
			return fmt.Errorf("seed statistics fixture_id=%d: %w", item.FixtureID, err)
		}
	}
	return nil
}

func ptrInt(v int) *int {
	return &v
}
