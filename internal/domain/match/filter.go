package match

import "time"

// Filter narrows the historical match set. Zero values impose no constraint.
// A zero Limit returns every matching row.
type Filter struct {
	TeamID    int64
	LeagueID  int64
	StartDate time.Time
	EndDate   time.Time
	Limit     int
	Offset    int
}

// Matches applies the filter predicates (not pagination) to a single match.
func (f Filter) Matches(m Match) bool {
	if f.TeamID > 0 && !m.InvolvesTeam(f.TeamID) {
		return false
	}
	if f.LeagueID > 0 && m.LeagueID != f.LeagueID {
		return false
	}
	if !f.StartDate.IsZero() && m.MatchDate.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && m.MatchDate.After(f.EndDate) {
		return false
	}
	return true
}

// Less orders matches newest first, breaking equal dates by id descending.
func Less(a, b Match) bool {
	if !a.MatchDate.Equal(b.MatchDate) {
		return a.MatchDate.After(b.MatchDate)
	}
	return a.ID > b.ID
}
