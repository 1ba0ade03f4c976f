package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/match-stats/internal/domain/match"
	"github.com/riskibarqy/match-stats/internal/domain/teamstats"
)

type matchHistoryReader interface {
	GetMatchesWithStatistics(ctx context.Context, filter match.Filter) ([]MatchWithStatistics, error)
}

// TeamStatisticsService derives per-team summaries on every call. Nothing is persisted.
type TeamStatisticsService struct {
	history matchHistoryReader
}

func NewTeamStatisticsService(history matchHistoryReader) *TeamStatisticsService {
	return &TeamStatisticsService{history: history}
}

// GetTeamStatistics returns nil when the team has no matches in range, or none of them
// has statistics recorded.
func (s *TeamStatisticsService) GetTeamStatistics(ctx context.Context, teamID int64, filter teamstats.Filter) (*teamstats.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamStatisticsService.GetTeamStatistics")
	defer span.End()

	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be > 0", ErrInvalidInput)
	}

	rows, err := s.history.GetMatchesWithStatistics(ctx, match.Filter{
		TeamID:    teamID,
		LeagueID:  filter.LeagueID,
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("load team matches: %w", err)
	}

	return summarize(teamID, rows), nil
}

func summarize(teamID int64, rows []MatchWithStatistics) *teamstats.Summary {
	if len(rows) == 0 {
		return nil
	}

	summary := teamstats.Summary{TeamID: teamID}
	for _, row := range rows {
		if row.Statistics == nil {
			continue
		}

		side := row.Statistics.ForSide(row.Match.HomeTeamID == teamID)
		summary.MatchCount++
		summary.TotalCorners += side.CornerKicks
		summary.TotalFouls += side.Fouls
		summary.TotalYellowCards += side.YellowCards
		summary.TotalRedCards += side.RedCards
		summary.TotalShots += valueOrZero(side.Shots)
		summary.TotalPossession += valueOrZero(side.Possession)
	}
	if summary.MatchCount == 0 {
		return nil
	}

	n := float64(summary.MatchCount)
	summary.AverageCorners = float64(summary.TotalCorners) / n
	summary.AverageFouls = float64(summary.TotalFouls) / n
	summary.AverageYellowCards = float64(summary.TotalYellowCards) / n
	summary.AverageRedCards = float64(summary.TotalRedCards) / n
	summary.AverageShots = float64(summary.TotalShots) / n
	summary.AveragePossession = float64(summary.TotalPossession) / n
	return &summary
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
