package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/match-stats/internal/domain/match"
	"github.com/riskibarqy/match-stats/internal/domain/matchstats"
)

func newTestMatch(fixtureID, home, away int64, date time.Time) match.Match {
	return match.Match{
		FixtureID:    fixtureID,
		HomeTeamID:   home,
		AwayTeamID:   away,
		HomeTeamName: "Team " + string(rune('A'+home)),
		AwayTeamName: "Team " + string(rune('A'+away)),
		LeagueID:     39,
		LeagueName:   "Premier League",
		Season:       2025,
		MatchDate:    date,
		Status:       match.StatusNotStarted,
	}
}

func TestMatchRepository_UpsertKeepsImmutableFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()
	repo := NewMatchRepository(store)
	d1 := time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC)

	first := newTestMatch(100, 1, 2, d1)
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("insert match: %v", err)
	}

	update := first
	update.HomeTeamName = "Renamed"
	update.MatchDate = d1.Add(time.Hour)
	update.Status = "ft"
	update.HomeScore = ptrInt(3)
	update.AwayScore = ptrInt(0)
	if err := repo.Upsert(ctx, update); err != nil {
		t.Fatalf("update match: %v", err)
	}

	all, err := repo.List(ctx, match.Filter{})
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly one row for fixture 100, got=%d", len(all))
	}

	got := all[0]
	if got.HomeTeamName != first.HomeTeamName || !got.MatchDate.Equal(d1) {
		t.Fatalf("immutable fields changed: %+v", got)
	}
	if got.Status != match.StatusFinished || got.HomeScore == nil || *got.HomeScore != 3 {
		t.Fatalf("mutable fields not updated: %+v", got)
	}
}

func TestMatchRepository_ListOrdersAndPaginates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMatchRepository(NewStore())
	base := time.Date(2025, 8, 1, 19, 0, 0, 0, time.UTC)

	for i := int64(0); i < 6; i++ {
		if err := repo.Upsert(ctx, newTestMatch(200+i, 1+i%2, 3+i%3, base.Add(time.Duration(i)*24*time.Hour))); err != nil {
			t.Fatalf("insert match: %v", err)
		}
	}
	// Same kickoff as fixture 205: the later insert has the higher id and must come first.
	if err := repo.Upsert(ctx, newTestMatch(300, 7, 8, base.Add(5*24*time.Hour))); err != nil {
		t.Fatalf("insert tied match: %v", err)
	}

	all, err := repo.List(ctx, match.Filter{})
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(all) != 7 {
		t.Fatalf("expected 7 matches, got=%d", len(all))
	}
	if all[0].FixtureID != 300 || all[1].FixtureID != 205 {
		t.Fatalf("unexpected tie order: first=%d second=%d", all[0].FixtureID, all[1].FixtureID)
	}
	for i := 1; i < len(all); i++ {
		if all[i].MatchDate.After(all[i-1].MatchDate) {
			t.Fatalf("matches not ordered newest first at index %d", i)
		}
	}

	page, err := repo.List(ctx, match.Filter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 2 || page[0].ID != all[2].ID || page[1].ID != all[3].ID {
		t.Fatalf("page does not match slice [2,4) of full result")
	}

	beyond, err := repo.List(ctx, match.Filter{Limit: 5, Offset: 50})
	if err != nil {
		t.Fatalf("list beyond: %v", err)
	}
	if len(beyond) != 0 {
		t.Fatalf("expected empty page beyond result, got=%d", len(beyond))
	}
}

func TestMatchStatisticsRepository_UpsertReplacesCounters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()
	store.now = func() time.Time { return time.Date(2025, 8, 16, 16, 0, 0, 0, time.UTC) }
	repo := NewMatchStatisticsRepository(store)

	if err := repo.Upsert(ctx, matchstats.Statistics{MatchID: 1, HomeCornerKicks: 2, HomeShots: ptrInt(5)}); err != nil {
		t.Fatalf("insert statistics: %v", err)
	}
	store.now = func() time.Time { return time.Date(2025, 8, 16, 17, 0, 0, 0, time.UTC) }
	if err := repo.Upsert(ctx, matchstats.Statistics{MatchID: 1, HomeCornerKicks: 6, AwayCornerKicks: 4}); err != nil {
		t.Fatalf("update statistics: %v", err)
	}

	got, ok, err := repo.GetByMatchID(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("get statistics: ok=%v err=%v", ok, err)
	}
	if got.ID != 1 || got.HomeCornerKicks != 6 || got.AwayCornerKicks != 4 {
		t.Fatalf("unexpected statistics: %+v", got)
	}
	if got.HomeShots != nil {
		t.Fatalf("expected shots to be replaced with nil, got=%d", *got.HomeShots)
	}
	if got.LastUpdated.Hour() != 17 {
		t.Fatalf("expected last updated refreshed, got=%s", got.LastUpdated)
	}

	batch, err := repo.ListByMatchIDs(ctx, []int64{1, 2})
	if err != nil {
		t.Fatalf("list by match ids: %v", err)
	}
	if _, ok := batch[2]; ok || len(batch) != 1 {
		t.Fatalf("expected only match 1 in batch, got=%v", batch)
	}
}

func TestDimensionRepositories(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()
	matches := NewMatchRepository(store)
	d := time.Date(2025, 8, 16, 14, 0, 0, 0, time.UTC)

	a := newTestMatch(1, 1, 2, d)
	b := newTestMatch(2, 2, 1, d.Add(time.Hour))
	b.LeagueID = 140
	b.LeagueName = "La Liga"
	c := newTestMatch(3, 1, 3, d.Add(2*time.Hour))
	for _, item := range []match.Match{a, b, c} {
		if err := matches.Upsert(ctx, item); err != nil {
			t.Fatalf("insert match: %v", err)
		}
	}

	teams, err := NewTeamRepository(store).ListObserved(ctx)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	// home pairs: 1, 2 then away pairs: 2, 1, 3
	if len(teams) != 5 || teams[0].ID != 1 || teams[1].ID != 2 || teams[4].ID != 3 {
		t.Fatalf("unexpected observed teams: %+v", teams)
	}

	leagues, err := NewLeagueRepository(store).ListObserved(ctx)
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	if len(leagues) != 2 || leagues[0].ID != 39 || leagues[1].ID != 140 {
		t.Fatalf("unexpected observed leagues: %+v", leagues)
	}
}

func TestSeed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()
	if err := Seed(ctx, store); err != nil {
		t.Fatalf("seed: %v", err)
	}

	all, err := NewMatchRepository(store).List(ctx, match.Filter{})
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(all) != len(SeedMatches()) {
		t.Fatalf("unexpected seeded match count: %d", len(all))
	}

	ids := make([]int64, 0, len(all))
	for _, item := range all {
		ids = append(ids, item.ID)
	}
	stats, err := NewMatchStatisticsRepository(store).ListByMatchIDs(ctx, ids)
	if err != nil {
		t.Fatalf("list statistics: %v", err)
	}
	if len(stats) != len(SeedStatistics()) {
		t.Fatalf("unexpected seeded statistics count: %d", len(stats))
	}
}
