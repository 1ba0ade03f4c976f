package httpapi

import (
	"net/http"

	"github.com/riskibarqy/match-stats/internal/domain/match"
	"go.opentelemetry.io/otel/attribute"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	filter, err := h.parseMatchFilter(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.historyService.GetHistoricalMatches(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) ListMatchesWithStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesWithStatistics")
	defer span.End()

	filter, err := h.parseMatchFilter(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.historyService.GetMatchesWithStatistics(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches with statistics failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchWithStatisticsDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchWithStatisticsToDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListRecentMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRecentMatches")
	defer span.End()

	limit, err := h.parseRecentLimit(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.historyService.GetRecentMatches(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list recent matches failed", "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := parsePathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	annotate(span, attribute.Int64("match.id", matchID))

	row, err := h.historyService.GetMatchWithStatistics(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchWithStatisticsToDTO(row))
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}
