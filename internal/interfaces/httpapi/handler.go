package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/match-stats/internal/platform/logging"
	"github.com/riskibarqy/match-stats/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// PageLimits bounds the limit query parameter of the match listing routes.
type PageLimits struct {
	Default int
	Max     int
}

type Handler struct {
	historyService   *usecase.HistoryService
	teamStatsService *usecase.TeamStatisticsService
	dimensionService *usecase.DimensionService
	upsertService    *usecase.UpsertService
	ingestionService *usecase.IngestionService
	storeMode        string
	pageLimits       PageLimits
	logger           *logging.Logger
	validator        *validator.Validate
}

// NewHandler wires the HTTP surface. ingestionService may be nil when no provider is
// configured; the sync routes then answer 503.
func NewHandler(
	historyService *usecase.HistoryService,
	teamStatsService *usecase.TeamStatisticsService,
	dimensionService *usecase.DimensionService,
	upsertService *usecase.UpsertService,
	ingestionService *usecase.IngestionService,
	storeMode string,
	pageLimits PageLimits,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if pageLimits.Default <= 0 {
		pageLimits.Default = 50
	}
	if pageLimits.Max < pageLimits.Default {
		pageLimits.Max = pageLimits.Default
	}

	return &Handler{
		historyService:   historyService,
		teamStatsService: teamStatsService,
		dimensionService: dimensionService,
		upsertService:    upsertService,
		ingestionService: ingestionService,
		storeMode:        storeMode,
		pageLimits:       pageLimits,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, healthDTO{
		Status: "ok",
		Store:  h.storeMode,
	})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSONBody(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
