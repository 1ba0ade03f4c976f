package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/match-stats/internal/domain/match"
)

// matchTableModel maps the matches table. Readonly columns are assigned by the database
// and left out of inserts.
type matchTableModel struct {
	ID           int64         `db:"id,readonly"`
	FixtureID    int64         `db:"fixture_id"`
	HomeTeamID   int64         `db:"home_team_id"`
	HomeTeamName string        `db:"home_team_name"`
	AwayTeamID   int64         `db:"away_team_id"`
	AwayTeamName string        `db:"away_team_name"`
	LeagueID     int64         `db:"league_id"`
	LeagueName   string        `db:"league_name"`
	Season       int           `db:"season"`
	MatchDate    time.Time     `db:"match_date"`
	Status       string        `db:"status"`
	HomeScore    sql.NullInt64 `db:"home_score"`
	AwayScore    sql.NullInt64 `db:"away_score"`
	CreatedAt    time.Time     `db:"created_at,readonly"`
	UpdatedAt    time.Time     `db:"updated_at,readonly"`
}

func matchModelFromDomain(item match.Match) matchTableModel {
	return matchTableModel{
		FixtureID:    item.FixtureID,
		HomeTeamID:   item.HomeTeamID,
		HomeTeamName: item.HomeTeamName,
		AwayTeamID:   item.AwayTeamID,
		AwayTeamName: item.AwayTeamName,
		LeagueID:     item.LeagueID,
		LeagueName:   item.LeagueName,
		Season:       item.Season,
		MatchDate:    item.MatchDate.UTC(),
		Status:       match.NormalizeStatus(item.Status),
		HomeScore:    ptrToNullInt(item.HomeScore),
		AwayScore:    ptrToNullInt(item.AwayScore),
	}
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:           m.ID,
		FixtureID:    m.FixtureID,
		HomeTeamID:   m.HomeTeamID,
		HomeTeamName: m.HomeTeamName,
		AwayTeamID:   m.AwayTeamID,
		AwayTeamName: m.AwayTeamName,
		LeagueID:     m.LeagueID,
		LeagueName:   m.LeagueName,
		Season:       m.Season,
		MatchDate:    m.MatchDate.UTC(),
		Status:       m.Status,
		HomeScore:    nullIntToPtr(m.HomeScore),
		AwayScore:    nullIntToPtr(m.AwayScore),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func nullIntToPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func ptrToNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
