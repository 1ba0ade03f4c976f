package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-stats/internal/domain/storage"
	"github.com/riskibarqy/match-stats/internal/infrastructure/repository/memory"
	matchmock "github.com/riskibarqy/match-stats/internal/mocks/domain/match"
	"github.com/riskibarqy/match-stats/internal/platform/logging"
	"github.com/riskibarqy/match-stats/internal/usecase"
	"github.com/stretchr/testify/mock"
)

const testJobToken = "job-secret"

type envelope struct {
	APIVersion string `json:"apiVersion"`
	Data       any    `json:"data"`
	Error      *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func newSeededRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	if err := memory.Seed(context.Background(), store); err != nil {
		t.Fatalf("seed memory store: %v", err)
	}

	logger := logging.NewNop()
	matchRepo := memory.NewMatchRepository(store)
	statsRepo := memory.NewMatchStatisticsRepository(store)
	history := usecase.NewHistoryService(matchRepo, statsRepo, logger)
	handler := NewHandler(
		history,
		usecase.NewTeamStatisticsService(history),
		usecase.NewDimensionService(memory.NewTeamRepository(store), memory.NewLeagueRepository(store), logger),
		usecase.NewUpsertService(matchRepo, statsRepo, logger),
		nil,
		"memory",
		PageLimits{Default: 50, Max: 100},
		logger,
	)
	return NewRouter(handler, logger, RouterConfig{InternalJobToken: testJobToken})
}

func newDegradedRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	history := usecase.NewHistoryService(nil, nil, logger)
	handler := NewHandler(
		history,
		usecase.NewTeamStatisticsService(history),
		usecase.NewDimensionService(nil, nil, logger),
		usecase.NewUpsertService(nil, nil, logger),
		nil,
		"degraded",
		PageLimits{},
		logger,
	)
	return NewRouter(handler, logger, RouterConfig{InternalJobToken: testJobToken})
}

func serve(t *testing.T, router http.Handler, method, target, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var out envelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	return rec, out
}

func TestHealthz_ReportsStoreMode(t *testing.T) {
	t.Parallel()

	rec, body := serve(t, newDegradedRouter(t), http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, _ := body.Data.(map[string]any)
	if data["status"] != "ok" || data["store"] != "degraded" {
		t.Fatalf("unexpected health payload: %+v", body.Data)
	}
}

func TestListMatches_NewestFirst(t *testing.T) {
	t.Parallel()

	rec, body := serve(t, newSeededRouter(t), http.MethodGet, "/v1/matches?leagueId=39", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	items, _ := body.Data.([]any)
	if len(items) != 3 {
		t.Fatalf("expected 3 premier league matches, got %d", len(items))
	}
	wantFixtures := []float64{1208023, 1208022, 1208021}
	for i, raw := range items {
		item, _ := raw.(map[string]any)
		if item["fixtureId"] != wantFixtures[i] {
			t.Fatalf("position %d: expected fixture %v, got %v", i, wantFixtures[i], item["fixtureId"])
		}
	}
}

func TestListMatches_DateOnlyEndDateCoversWholeDay(t *testing.T) {
	t.Parallel()

	rec, body := serve(t, newSeededRouter(t), http.MethodGet, "/v1/matches?startDate=2025-08-16&endDate=2025-08-16", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	items, _ := body.Data.([]any)
	if len(items) != 1 {
		t.Fatalf("expected the 14:00 kickoff to be included, got %d matches", len(items))
	}
}

func TestListMatches_RejectsInvalidQuery(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)
	targets := []string{
		"/v1/matches?limit=0",
		"/v1/matches?limit=101",
		"/v1/matches?limit=abc",
		"/v1/matches?offset=-1",
		"/v1/matches?teamId=x",
		"/v1/matches?startDate=yesterday",
	}
	for _, target := range targets {
		rec, body := serve(t, router, http.MethodGet, target, "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", target, rec.Code)
		}
		if body.Error == nil || body.Error.Status != "INVALID_ARGUMENT" {
			t.Fatalf("%s: expected INVALID_ARGUMENT error, got %+v", target, body.Error)
		}
	}
}

func TestListMatches_InvertedRangeIsEmpty(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)
	rec, body := serve(t, router, http.MethodGet, "/v1/matches?startDate=2025-09-01&endDate=2025-08-01", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if items, ok := body.Data.([]any); !ok || len(items) != 0 {
		t.Fatalf("expected empty list, got %+v", body.Data)
	}

	rec, body = serve(t, router, http.MethodGet, "/v1/teams/42/statistics?startDate=2025-09-01&endDate=2025-08-01", "", nil)
	if rec.Code != http.StatusOK || body.Data != nil {
		t.Fatalf("expected 200 with null summary, got %d %+v", rec.Code, body.Data)
	}
}

func TestListMatchesWithStatistics_PairsRows(t *testing.T) {
	t.Parallel()

	rec, body := serve(t, newSeededRouter(t), http.MethodGet, "/v1/matches/statistics?teamId=49", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	rows, _ := body.Data.([]any)
	if len(rows) != 2 {
		t.Fatalf("expected 2 chelsea matches, got %d", len(rows))
	}
	upcoming, _ := rows[0].(map[string]any)
	if upcoming["statistics"] != nil {
		t.Fatalf("expected null statistics for the unplayed match, got %v", upcoming["statistics"])
	}
	played, _ := rows[1].(map[string]any)
	stats, _ := played["statistics"].(map[string]any)
	if stats["homeCornerKicks"] != float64(7) {
		t.Fatalf("expected homeCornerKicks=7, got %v", stats["homeCornerKicks"])
	}
}

func TestListRecentMatches_DefaultsAndLimit(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)
	_, body := serve(t, router, http.MethodGet, "/v1/matches/recent", "", nil)
	if items, _ := body.Data.([]any); len(items) != 4 {
		t.Fatalf("expected all 4 seeded matches, got %d", len(items))
	}

	_, body = serve(t, router, http.MethodGet, "/v1/matches/recent?limit=1", "", nil)
	items, _ := body.Data.([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 match, got %d", len(items))
	}
	if item, _ := items[0].(map[string]any); item["fixtureId"] != float64(1208023) {
		t.Fatalf("expected the latest fixture, got %v", item["fixtureId"])
	}
}

func TestGetMatch(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)

	rec, body := serve(t, router, http.MethodGet, "/v1/matches/1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, _ := body.Data.(map[string]any)
	m, _ := data["match"].(map[string]any)
	if m["homeTeamName"] != "Arsenal" {
		t.Fatalf("unexpected match payload: %+v", data)
	}

	rec, body = serve(t, router, http.MethodGet, "/v1/matches/999", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if body.Error == nil || body.Error.Status != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND error, got %+v", body.Error)
	}

	rec, _ = serve(t, router, http.MethodGet, "/v1/matches/abc", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for non numeric id, got %d", rec.Code)
	}
}

func TestGetTeamStatistics(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)

	rec, body := serve(t, router, http.MethodGet, "/v1/teams/42/statistics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data, _ := body.Data.(map[string]any)
	if data["matchCount"] != float64(2) {
		t.Fatalf("expected matchCount=2, got %v", data["matchCount"])
	}
	// 7 corners at home against Chelsea, 5 away at Liverpool.
	if data["totalCorners"] != float64(12) || data["avgCorners"] != float64(6) {
		t.Fatalf("unexpected corner aggregates: %+v", data)
	}

	rec, body = serve(t, router, http.MethodGet, "/v1/teams/9999/statistics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for unknown team, got %d", rec.Code)
	}
	if body.Data != nil {
		t.Fatalf("expected null data for unknown team, got %v", body.Data)
	}
}

func TestDimensions(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)

	_, body := serve(t, router, http.MethodGet, "/v1/teams", "", nil)
	if teams, _ := body.Data.([]any); len(teams) != 5 {
		t.Fatalf("expected 5 distinct teams, got %d", len(teams))
	}

	_, body = serve(t, router, http.MethodGet, "/v1/leagues", "", nil)
	if leagues, _ := body.Data.([]any); len(leagues) != 2 {
		t.Fatalf("expected 2 distinct leagues, got %d", len(leagues))
	}

	_, body = serve(t, router, http.MethodGet, "/v1/filters", "", nil)
	data, _ := body.Data.(map[string]any)
	if teams, _ := data["teams"].([]any); len(teams) != 5 {
		t.Fatalf("expected 5 teams in filter options, got %v", data["teams"])
	}
}

func TestUpsertMatch_ThenReadBack(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)
	headers := map[string]string{internalJobTokenHeader: testJobToken}
	payload := `{
		"fixtureId": 1208021,
		"homeTeamId": 42,
		"awayTeamId": 49,
		"homeTeamName": "Arsenal",
		"awayTeamName": "Chelsea",
		"leagueId": 39,
		"leagueName": "Premier League",
		"season": 2025,
		"matchDate": "2025-08-16T14:00:00Z",
		"status": "FT",
		"homeScore": 3,
		"awayScore": 1
	}`

	rec, body := serve(t, router, http.MethodPut, "/v1/internal/matches", payload, headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if data, _ := body.Data.(map[string]any); data["updated"] != true {
		t.Fatalf("unexpected upsert payload: %+v", body.Data)
	}

	_, body = serve(t, router, http.MethodGet, "/v1/matches/1", "", nil)
	data, _ := body.Data.(map[string]any)
	m, _ := data["match"].(map[string]any)
	if m["homeScore"] != float64(3) {
		t.Fatalf("expected merged home score 3, got %v", m["homeScore"])
	}
}

func TestUpsertMatch_RejectsBadRequests(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)
	headers := map[string]string{internalJobTokenHeader: testJobToken}

	tests := []struct {
		name    string
		payload string
		headers map[string]string
		want    int
	}{
		{name: "missing token", payload: `{}`, headers: nil, want: http.StatusUnauthorized},
		{name: "unknown field", payload: `{"fixtureId":1,"bogus":true}`, headers: headers, want: http.StatusBadRequest},
		{name: "malformed json", payload: `{"fixtureId":`, headers: headers, want: http.StatusBadRequest},
		{name: "same teams", payload: `{"fixtureId":1,"homeTeamId":5,"awayTeamId":5,"homeTeamName":"A","awayTeamName":"B","leagueId":1,"matchDate":"2025-01-01T00:00:00Z"}`, headers: headers, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec, _ := serve(t, router, http.MethodPut, "/v1/internal/matches", tt.payload, tt.headers)
		if rec.Code != tt.want {
			t.Fatalf("%s: expected status %d, got %d", tt.name, tt.want, rec.Code)
		}
	}
}

func TestUpsertMatch_UnreachableStoreIs503(t *testing.T) {
	t.Parallel()

	logger := logging.NewNop()
	matchRepo := matchmock.NewRepository(t)
	matchRepo.On("Upsert", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: upsert match: connection refused", storage.ErrUnavailable)).
		Once()

	history := usecase.NewHistoryService(matchRepo, nil, logger)
	handler := NewHandler(
		history,
		usecase.NewTeamStatisticsService(history),
		usecase.NewDimensionService(nil, nil, logger),
		usecase.NewUpsertService(matchRepo, nil, logger),
		nil,
		"postgres",
		PageLimits{Default: 50, Max: 100},
		logger,
	)
	router := NewRouter(handler, logger, RouterConfig{InternalJobToken: testJobToken})

	payload := `{"fixtureId":1208021,"homeTeamId":42,"awayTeamId":49,"homeTeamName":"Arsenal","awayTeamName":"Chelsea","leagueId":39,"leagueName":"Premier League","season":2025,"matchDate":"2025-08-16T14:00:00Z","status":"FT"}`
	rec, body := serve(t, router, http.MethodPut, "/v1/internal/matches", payload, map[string]string{internalJobTokenHeader: testJobToken})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d body=%s", rec.Code, rec.Body.String())
	}
	if body.Error == nil || body.Error.Status != "UNAVAILABLE" {
		t.Fatalf("expected UNAVAILABLE error, got %+v", body)
	}
	if body.Data != nil {
		t.Fatalf("expected no success payload, got %+v", body.Data)
	}
}

func TestUpsertMatchStatistics(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)
	headers := map[string]string{internalJobTokenHeader: testJobToken}

	rec, _ := serve(t, router, http.MethodPut, "/v1/internal/matches/statistics", `{"matchId":3,"homeCornerKicks":2,"awayCornerKicks":9}`, headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	_, body := serve(t, router, http.MethodGet, "/v1/matches/3", "", nil)
	data, _ := body.Data.(map[string]any)
	stats, _ := data["statistics"].(map[string]any)
	if stats["awayCornerKicks"] != float64(9) {
		t.Fatalf("expected stored statistics, got %v", data["statistics"])
	}

	rec, _ = serve(t, router, http.MethodPut, "/v1/internal/matches/statistics", `{"matchId":3,"homePossession":101}`, headers)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for possession over 100, got %d", rec.Code)
	}
}

func TestSyncRoutes_ProviderNotConfigured(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)
	headers := map[string]string{internalJobTokenHeader: testJobToken}
	routes := map[string]string{
		"/v1/internal/sync/live":    `{"leagueId":39,"season":2025}`,
		"/v1/internal/sync/date":    `{"date":"2025-08-16"}`,
		"/v1/internal/sync/fixture": `{"fixtureId":1208021}`,
	}
	for target, payload := range routes {
		rec, body := serve(t, router, http.MethodPost, target, payload, headers)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s: expected status 503, got %d", target, rec.Code)
		}
		if body.Error == nil || body.Error.Status != "UNAVAILABLE" {
			t.Fatalf("%s: expected UNAVAILABLE error, got %+v", target, body.Error)
		}
	}
}

func TestDegradedStore_ReadsEmpty(t *testing.T) {
	t.Parallel()

	router := newDegradedRouter(t)

	for _, target := range []string{"/v1/matches", "/v1/matches/statistics", "/v1/matches/recent", "/v1/teams", "/v1/leagues"} {
		rec, body := serve(t, router, http.MethodGet, target, "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", target, rec.Code)
		}
		if items, ok := body.Data.([]any); !ok || len(items) != 0 {
			t.Fatalf("%s: expected empty list, got %v", target, body.Data)
		}
	}

	rec, _ := serve(t, router, http.MethodGet, "/v1/matches/1", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 when degraded, got %d", rec.Code)
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/v1/matches", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}
