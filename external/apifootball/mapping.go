package apifootball

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/match-stats/internal/usecase"
)

const (
	statCornerKicks    = "corner kicks"
	statFouls          = "fouls"
	statYellowCards    = "yellow cards"
	statRedCards       = "red cards"
	statBallPossession = "ball possession"
	statTotalShots     = "total shots"
	statPassesAccurate = "passes accurate"
)

func mapFixture(item fixtureItem) (usecase.ExternalFixture, bool) {
	if item.Fixture.ID <= 0 {
		return usecase.ExternalFixture{}, false
	}
	kickoff, ok := parseFixtureDate(item.Fixture.Date, item.Fixture.Timestamp)
	if !ok {
		return usecase.ExternalFixture{}, false
	}

	return usecase.ExternalFixture{
		FixtureID:    item.Fixture.ID,
		LeagueID:     item.League.ID,
		LeagueName:   strings.TrimSpace(item.League.Name),
		Season:       item.League.Season,
		MatchDate:    kickoff,
		Status:       strings.ToUpper(strings.TrimSpace(item.Fixture.Status.Short)),
		HomeTeamID:   item.Teams.Home.ID,
		HomeTeamName: strings.TrimSpace(item.Teams.Home.Name),
		AwayTeamID:   item.Teams.Away.ID,
		AwayTeamName: strings.TrimSpace(item.Teams.Away.Name),
		HomeScore:    item.Goals.Home,
		AwayScore:    item.Goals.Away,
	}, true
}

func parseFixtureDate(raw string, unix int64) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			return parsed.UTC(), true
		}
	}
	if unix > 0 {
		return time.Unix(unix, 0).UTC(), true
	}
	return time.Time{}, false
}

// mapTeamStatistics picks the tracked counters out of a team's statistics block. Counters
// the provider leaves null stay 0; optional values stay nil.
func mapTeamStatistics(item teamStatisticsItem) usecase.ExternalTeamStatistics {
	out := usecase.ExternalTeamStatistics{
		TeamID:   item.Team.ID,
		TeamName: strings.TrimSpace(item.Team.Name),
	}

	for _, stat := range item.Statistics {
		value, ok := parseStatValue(stat.Value)
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(stat.Type)) {
		case statCornerKicks:
			out.CornerKicks = value
		case statFouls:
			out.Fouls = value
		case statYellowCards:
			out.YellowCards = value
		case statRedCards:
			out.RedCards = value
		case statBallPossession:
			out.Possession = &value
		case statTotalShots:
			out.Shots = &value
		case statPassesAccurate:
			out.PassesAccurate = &value
		}
	}
	return out
}

func parseStatValue(raw any) (int, bool) {
	switch v := raw.(type) {
	case float64:
		return int(math.Round(v)), true
	case int64:
		return int(v), true
	case int:
		return v, true
	case string:
		text := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%"))
		if text == "" {
			return 0, false
		}
		if n, err := strconv.Atoi(text); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return int(math.Round(f)), true
		}
	}
	return 0, false
}
