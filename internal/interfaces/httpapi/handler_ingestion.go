package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/match-stats/internal/domain/match"
	"github.com/riskibarqy/match-stats/internal/domain/matchstats"
	"github.com/riskibarqy/match-stats/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

type upsertMatchRequest struct {
	FixtureID    int64     `json:"fixtureId" validate:"required,gt=0"`
	HomeTeamID   int64     `json:"homeTeamId" validate:"required,gt=0"`
	AwayTeamID   int64     `json:"awayTeamId" validate:"required,gt=0,nefield=HomeTeamID"`
	HomeTeamName string    `json:"homeTeamName" validate:"required,max=255"`
	AwayTeamName string    `json:"awayTeamName" validate:"required,max=255"`
	LeagueID     int64     `json:"leagueId" validate:"required,gt=0"`
	LeagueName   string    `json:"leagueName" validate:"omitempty,max=255"`
	Season       int       `json:"season" validate:"gte=0"`
	MatchDate    time.Time `json:"matchDate" validate:"required"`
	Status       string    `json:"status" validate:"omitempty,max=16"`
	HomeScore    *int      `json:"homeScore" validate:"omitempty,gte=0"`
	AwayScore    *int      `json:"awayScore" validate:"omitempty,gte=0"`
}

type upsertMatchStatisticsRequest struct {
	MatchID            int64 `json:"matchId" validate:"required,gt=0"`
	HomeCornerKicks    int   `json:"homeCornerKicks" validate:"gte=0"`
	AwayCornerKicks    int   `json:"awayCornerKicks" validate:"gte=0"`
	HomeFouls          int   `json:"homeFouls" validate:"gte=0"`
	AwayFouls          int   `json:"awayFouls" validate:"gte=0"`
	HomeYellowCards    int   `json:"homeYellowCards" validate:"gte=0"`
	AwayYellowCards    int   `json:"awayYellowCards" validate:"gte=0"`
	HomeRedCards       int   `json:"homeRedCards" validate:"gte=0"`
	AwayRedCards       int   `json:"awayRedCards" validate:"gte=0"`
	HomePossession     *int  `json:"homePossession" validate:"omitempty,gte=0,lte=100"`
	AwayPossession     *int  `json:"awayPossession" validate:"omitempty,gte=0,lte=100"`
	HomeShots          *int  `json:"homeShots" validate:"omitempty,gte=0"`
	AwayShots          *int  `json:"awayShots" validate:"omitempty,gte=0"`
	HomePassesAccurate *int  `json:"homePassesAccurate" validate:"omitempty,gte=0"`
	AwayPassesAccurate *int  `json:"awayPassesAccurate" validate:"omitempty,gte=0"`
}

type syncLiveRequest struct {
	LeagueID int64 `json:"leagueId" validate:"required,gt=0"`
	Season   int   `json:"season" validate:"required,gt=0"`
}

type syncDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type syncFixtureRequest struct {
	FixtureID int64 `json:"fixtureId" validate:"required,gt=0"`
}

func (h *Handler) UpsertMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertMatch")
	defer span.End()

	var req upsertMatchRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item := match.Match{
		FixtureID:    req.FixtureID,
		HomeTeamID:   req.HomeTeamID,
		AwayTeamID:   req.AwayTeamID,
		HomeTeamName: req.HomeTeamName,
		AwayTeamName: req.AwayTeamName,
		LeagueID:     req.LeagueID,
		LeagueName:   req.LeagueName,
		Season:       req.Season,
		MatchDate:    req.MatchDate.UTC(),
		Status:       req.Status,
		HomeScore:    req.HomeScore,
		AwayScore:    req.AwayScore,
	}
	if err := h.upsertService.UpsertMatch(ctx, item); err != nil {
		h.logger.WarnContext(ctx, "upsert match failed", "fixture_id", req.FixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, upsertResultDTO{
		FixtureID: req.FixtureID,
		Updated:   true,
	})
}

func (h *Handler) UpsertMatchStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertMatchStatistics")
	defer span.End()

	var req upsertMatchStatisticsRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item := matchstats.Statistics{
		MatchID:            req.MatchID,
		HomeCornerKicks:    req.HomeCornerKicks,
		AwayCornerKicks:    req.AwayCornerKicks,
		HomeFouls:          req.HomeFouls,
		AwayFouls:          req.AwayFouls,
		HomeYellowCards:    req.HomeYellowCards,
		AwayYellowCards:    req.AwayYellowCards,
		HomeRedCards:       req.HomeRedCards,
		AwayRedCards:       req.AwayRedCards,
		HomePossession:     req.HomePossession,
		AwayPossession:     req.AwayPossession,
		HomeShots:          req.HomeShots,
		AwayShots:          req.AwayShots,
		HomePassesAccurate: req.HomePassesAccurate,
		AwayPassesAccurate: req.AwayPassesAccurate,
	}
	if err := h.upsertService.UpsertMatchStatistics(ctx, item); err != nil {
		h.logger.WarnContext(ctx, "upsert match statistics failed", "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, upsertResultDTO{
		MatchID: req.MatchID,
		Updated: true,
	})
}

func (h *Handler) SyncLive(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncLive")
	defer span.End()

	if h.ingestionService == nil {
		writeError(ctx, w, fmt.Errorf("%w: football provider is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req syncLiveRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.ingestionService.SyncLive(ctx, req.LeagueID, req.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "sync live fixtures failed", "league_id", req.LeagueID, "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) SyncDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncDate")
	defer span.End()

	if h.ingestionService == nil {
		writeError(ctx, w, fmt.Errorf("%w: football provider is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req syncDateRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid date %q", usecase.ErrInvalidInput, req.Date))
		return
	}

	result, err := h.ingestionService.SyncByDate(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "sync fixtures by date failed", "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) SyncFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncFixture")
	defer span.End()

	if h.ingestionService == nil {
		writeError(ctx, w, fmt.Errorf("%w: football provider is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req syncFixtureRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	annotate(span, attribute.Int64("fixture.id", req.FixtureID))
	result, err := h.ingestionService.SyncFixture(ctx, req.FixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "sync fixture failed", "fixture_id", req.FixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
