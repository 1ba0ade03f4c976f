package teamstats

import "time"

// Filter narrows the match set aggregated for a team.
type Filter struct {
	LeagueID  int64
	StartDate time.Time
	EndDate   time.Time
}

// Summary aggregates a team's side of every match that has recorded statistics.
// MatchCount counts matches with available statistics, not matches played.
type Summary struct {
	TeamID             int64
	MatchCount         int
	TotalCorners       int
	TotalFouls         int
	TotalYellowCards   int
	TotalRedCards      int
	TotalShots         int
	TotalPossession    int
	AverageCorners     float64
	AverageFouls       float64
	AverageYellowCards float64
	AverageRedCards    float64
	AverageShots       float64
	AveragePossession  float64
}
