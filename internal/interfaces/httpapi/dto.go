package httpapi

import (
	"time"

	"github.com/riskibarqy/match-stats/internal/domain/league"
	"github.com/riskibarqy/match-stats/internal/domain/match"
	"github.com/riskibarqy/match-stats/internal/domain/matchstats"
	"github.com/riskibarqy/match-stats/internal/domain/team"
	"github.com/riskibarqy/match-stats/internal/domain/teamstats"
	"github.com/riskibarqy/match-stats/internal/usecase"
)

type healthDTO struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

type matchDTO struct {
	ID           int64  `json:"id"`
	FixtureID    int64  `json:"fixtureId"`
	HomeTeamID   int64  `json:"homeTeamId"`
	AwayTeamID   int64  `json:"awayTeamId"`
	HomeTeamName string `json:"homeTeamName"`
	AwayTeamName string `json:"awayTeamName"`
	LeagueID     int64  `json:"leagueId"`
	LeagueName   string `json:"leagueName"`
	Season       int    `json:"season"`
	MatchDate    string `json:"matchDate"`
	Status       string `json:"status"`
	HomeScore    *int   `json:"homeScore"`
	AwayScore    *int   `json:"awayScore"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

type statisticsDTO struct {
	ID                 int64  `json:"id"`
	MatchID            int64  `json:"matchId"`
	HomeCornerKicks    int    `json:"homeCornerKicks"`
	AwayCornerKicks    int    `json:"awayCornerKicks"`
	HomeFouls          int    `json:"homeFouls"`
	AwayFouls          int    `json:"awayFouls"`
	HomeYellowCards    int    `json:"homeYellowCards"`
	AwayYellowCards    int    `json:"awayYellowCards"`
	HomeRedCards       int    `json:"homeRedCards"`
	AwayRedCards       int    `json:"awayRedCards"`
	HomePossession     *int   `json:"homePossession"`
	AwayPossession     *int   `json:"awayPossession"`
	HomeShots          *int   `json:"homeShots"`
	AwayShots          *int   `json:"awayShots"`
	HomePassesAccurate *int   `json:"homePassesAccurate"`
	AwayPassesAccurate *int   `json:"awayPassesAccurate"`
	LastUpdated        string `json:"lastUpdated,omitempty"`
}

type matchWithStatisticsDTO struct {
	Match      matchDTO       `json:"match"`
	Statistics *statisticsDTO `json:"statistics"`
}

type teamDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type leagueDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type filterOptionsDTO struct {
	Teams   []teamDTO   `json:"teams"`
	Leagues []leagueDTO `json:"leagues"`
}

type teamStatisticsDTO struct {
	TeamID             int64   `json:"teamId"`
	MatchCount         int     `json:"matchCount"`
	TotalCorners       int     `json:"totalCorners"`
	TotalFouls         int     `json:"totalFouls"`
	TotalYellowCards   int     `json:"totalYellowCards"`
	TotalRedCards      int     `json:"totalRedCards"`
	TotalShots         int     `json:"totalShots"`
	TotalPossession    int     `json:"totalPossession"`
	AverageCorners     float64 `json:"avgCorners"`
	AverageFouls       float64 `json:"avgFouls"`
	AverageYellowCards float64 `json:"avgYellowCards"`
	AverageRedCards    float64 `json:"avgRedCards"`
	AverageShots       float64 `json:"avgShots"`
	AveragePossession  float64 `json:"avgPossession"`
}

type upsertResultDTO struct {
	FixtureID int64 `json:"fixtureId,omitempty"`
	MatchID   int64 `json:"matchId,omitempty"`
	Updated   bool  `json:"updated"`
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:           v.ID,
		FixtureID:    v.FixtureID,
		HomeTeamID:   v.HomeTeamID,
		AwayTeamID:   v.AwayTeamID,
		HomeTeamName: v.HomeTeamName,
		AwayTeamName: v.AwayTeamName,
		LeagueID:     v.LeagueID,
		LeagueName:   v.LeagueName,
		Season:       v.Season,
		MatchDate:    v.MatchDate.UTC().Format(time.RFC3339),
		Status:       v.Status,
		HomeScore:    v.HomeScore,
		AwayScore:    v.AwayScore,
		CreatedAt:    formatOptionalTime(v.CreatedAt),
		UpdatedAt:    formatOptionalTime(v.UpdatedAt),
	}
}

func statisticsToDTO(v *matchstats.Statistics) *statisticsDTO {
	if v == nil {
		return nil
	}
	return &statisticsDTO{
		ID:                 v.ID,
		MatchID:            v.MatchID,
		HomeCornerKicks:    v.HomeCornerKicks,
		AwayCornerKicks:    v.AwayCornerKicks,
		HomeFouls:          v.HomeFouls,
		AwayFouls:          v.AwayFouls,
		HomeYellowCards:    v.HomeYellowCards,
		AwayYellowCards:    v.AwayYellowCards,
		HomeRedCards:       v.HomeRedCards,
		AwayRedCards:       v.AwayRedCards,
		HomePossession:     v.HomePossession,
		AwayPossession:     v.AwayPossession,
		HomeShots:          v.HomeShots,
		AwayShots:          v.AwayShots,
		HomePassesAccurate: v.HomePassesAccurate,
		AwayPassesAccurate: v.AwayPassesAccurate,
		LastUpdated:        formatOptionalTime(v.LastUpdated),
	}
}

func matchWithStatisticsToDTO(v usecase.MatchWithStatistics) matchWithStatisticsDTO {
	return matchWithStatisticsDTO{
		Match:      matchToDTO(v.Match),
		Statistics: statisticsToDTO(v.Statistics),
	}
}

func teamsToDTO(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamDTO{ID: item.ID, Name: item.Name})
	}
	return out
}

func leaguesToDTO(items []league.League) []leagueDTO {
	out := make([]leagueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, leagueDTO{ID: item.ID, Name: item.Name})
	}
	return out
}

// teamStatisticsToDTO keeps a nil summary nil so the response carries "data": null.
func teamStatisticsToDTO(v *teamstats.Summary) *teamStatisticsDTO {
	if v == nil {
		return nil
	}
	return &teamStatisticsDTO{
		TeamID:             v.TeamID,
		MatchCount:         v.MatchCount,
		TotalCorners:       v.TotalCorners,
		TotalFouls:         v.TotalFouls,
		TotalYellowCards:   v.TotalYellowCards,
		TotalRedCards:      v.TotalRedCards,
		TotalShots:         v.TotalShots,
		TotalPossession:    v.TotalPossession,
		AverageCorners:     v.AverageCorners,
		AverageFouls:       v.AverageFouls,
		AverageYellowCards: v.AverageYellowCards,
		AverageRedCards:    v.AverageRedCards,
		AverageShots:       v.AverageShots,
		AveragePossession:  v.AveragePossession,
	}
}

func formatOptionalTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
