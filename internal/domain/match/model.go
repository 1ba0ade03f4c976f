package match

import (
	"fmt"
	"strings"
	"time"
)

// Provider short status codes.
const (
	StatusNotStarted = "NS"
	StatusTBD        = "TBD"
	StatusLive       = "LIVE"
	StatusFirstHalf  = "1H"
	StatusHalfTime   = "HT"
	StatusSecondHalf = "2H"
	StatusExtraTime  = "ET"
	StatusBreakTime  = "BT"
	StatusPenalties  = "P"
	StatusFinished   = "FT"
	StatusAfterExtra = "AET"
	StatusAfterPens  = "PEN"
	StatusPostponed  = "PST"
	StatusCancelled  = "CANC"
	StatusAbandoned  = "ABD"
	StatusSuspended  = "SUSP"
)

// Match is one fixture as stored by the record store.
type Match struct {
	ID           int64
	FixtureID    int64
	HomeTeamID   int64
	AwayTeamID   int64
	HomeTeamName string
	AwayTeamName string
	LeagueID     int64
	LeagueName   string
	Season       int
	MatchDate    time.Time
	Status       string
	HomeScore    *int
	AwayScore    *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (m Match) Validate() error {
	if m.FixtureID <= 0 {
		return fmt.Errorf("fixture id is required")
	}
	if m.HomeTeamID <= 0 {
		return fmt.Errorf("home team id is required")
	}
	if m.AwayTeamID <= 0 {
		return fmt.Errorf("away team id is required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("home team id and away team id must differ")
	}
	if strings.TrimSpace(m.HomeTeamName) == "" || strings.TrimSpace(m.AwayTeamName) == "" {
		return fmt.Errorf("team names are required")
	}
	if m.LeagueID <= 0 {
		return fmt.Errorf("league id is required")
	}
	if m.MatchDate.IsZero() {
		return fmt.Errorf("match date is required")
	}
	if m.HomeScore != nil && *m.HomeScore < 0 {
		return fmt.Errorf("home score must be >= 0")
	}
	if m.AwayScore != nil && *m.AwayScore < 0 {
		return fmt.Errorf("away score must be >= 0")
	}

	return nil
}

// InvolvesTeam reports whether teamID played on either side.
func (m Match) InvolvesTeam(teamID int64) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusNotStarted
	}
	return status
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusLive, StatusFirstHalf, StatusHalfTime, StatusSecondHalf, StatusExtraTime, StatusBreakTime, StatusPenalties:
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, StatusAfterExtra, StatusAfterPens:
		return true
	default:
		return false
	}
}

// HasStarted reports whether the provider can have statistics for the match.
func HasStarted(status string) bool {
	return IsLiveStatus(status) || IsFinishedStatus(status)
}
