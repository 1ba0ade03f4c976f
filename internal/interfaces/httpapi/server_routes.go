package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerQueryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/filters", handler.ListFilterOptions)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/statistics", handler.ListMatchesWithStatistics)
	mux.HandleFunc("GET /v1/matches/recent", handler.ListRecentMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/teams/{teamID}/statistics", handler.GetTeamStatistics)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("PUT /v1/internal/matches", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.UpsertMatch)))
	mux.Handle("PUT /v1/internal/matches/statistics", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.UpsertMatchStatistics)))
	mux.Handle("POST /v1/internal/sync/live", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SyncLive)))
	mux.Handle("POST /v1/internal/sync/date", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SyncDate)))
	mux.Handle("POST /v1/internal/sync/fixture", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SyncFixture)))
}
