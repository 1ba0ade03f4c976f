package httpapi

import (
	"net/http"

	"github.com/riskibarqy/match-stats/internal/domain/teamstats"
	"go.opentelemetry.io/otel/attribute"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.dimensionService.ListTeams(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(teams))
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.dimensionService.ListLeagues(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaguesToDTO(leagues))
}

func (h *Handler) ListFilterOptions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFilterOptions")
	defer span.End()

	options, err := h.dimensionService.ListFilterOptions(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list filter options failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, filterOptionsDTO{
		Teams:   teamsToDTO(options.Teams),
		Leagues: leaguesToDTO(options.Leagues),
	})
}

func (h *Handler) GetTeamStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStatistics")
	defer span.End()

	teamID, err := parsePathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	annotate(span, attribute.Int64("team.id", teamID))
	query, err := h.parseRangeQuery(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.teamStatsService.GetTeamStatistics(ctx, teamID, teamstats.Filter{
		LeagueID:  query.LeagueID,
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get team statistics failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamStatisticsToDTO(summary))
}
