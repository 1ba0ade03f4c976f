package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/match-stats/internal/domain/match"
	"github.com/riskibarqy/match-stats/internal/usecase"
)

type rangeQuery struct {
	TeamID    int64     `validate:"gte=0"`
	LeagueID  int64     `validate:"gte=0"`
	StartDate time.Time
	EndDate   time.Time
}

type pageQuery struct {
	Limit  int `validate:"gte=1"`
	Offset int `validate:"gte=0"`
}

func (h *Handler) parseRangeQuery(ctx context.Context, values url.Values) (rangeQuery, error) {
	var (
		out rangeQuery
		err error
	)
	if out.TeamID, err = parseInt64Query(values, "teamId"); err != nil {
		return rangeQuery{}, err
	}
	if out.LeagueID, err = parseInt64Query(values, "leagueId"); err != nil {
		return rangeQuery{}, err
	}
	if out.StartDate, err = parseTimeQuery(values, "startDate", false); err != nil {
		return rangeQuery{}, err
	}
	if out.EndDate, err = parseTimeQuery(values, "endDate", true); err != nil {
		return rangeQuery{}, err
	}
	if err := h.validateRequest(ctx, out); err != nil {
		return rangeQuery{}, err
	}
	return out, nil
}

func (h *Handler) parsePageQuery(ctx context.Context, values url.Values, defaultLimit int) (pageQuery, error) {
	out := pageQuery{Limit: defaultLimit}
	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return pageQuery{}, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput)
		}
		out.Limit = limit
	}
	if raw := strings.TrimSpace(values.Get("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return pageQuery{}, fmt.Errorf("%w: offset must be an integer", usecase.ErrInvalidInput)
		}
		out.Offset = offset
	}

	if err := h.validateRequest(ctx, out); err != nil {
		return pageQuery{}, err
	}
	if err := h.validator.VarCtx(ctx, out.Limit, "max="+strconv.Itoa(h.pageLimits.Max)); err != nil {
		return pageQuery{}, fmt.Errorf("%w: limit must be <= %d", usecase.ErrInvalidInput, h.pageLimits.Max)
	}
	return out, nil
}

func (h *Handler) parseMatchFilter(ctx context.Context, values url.Values) (match.Filter, error) {
	rng, err := h.parseRangeQuery(ctx, values)
	if err != nil {
		return match.Filter{}, err
	}
	page, err := h.parsePageQuery(ctx, values, h.pageLimits.Default)
	if err != nil {
		return match.Filter{}, err
	}

	return match.Filter{
		TeamID:    rng.TeamID,
		LeagueID:  rng.LeagueID,
		StartDate: rng.StartDate,
		EndDate:   rng.EndDate,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}, nil
}

func (h *Handler) parseRecentLimit(ctx context.Context, values url.Values) (int, error) {
	page, err := h.parsePageQuery(ctx, values, usecase.DefaultRecentMatchesLimit)
	if err != nil {
		return 0, err
	}
	return page.Limit, nil
}

func parseInt64Query(values url.Values, key string) (int64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

// parseTimeQuery accepts RFC 3339 instants and plain dates. A plain date used as an upper
// bound covers the whole day.
func parseTimeQuery(values url.Values, key string, endOfDay bool) (time.Time, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return time.Time{}, nil
	}
	if v, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return v.UTC(), nil
	}
	v, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be an RFC 3339 timestamp or YYYY-MM-DD date", usecase.ErrInvalidInput, key)
	}
	if endOfDay {
		v = v.Add(24*time.Hour - time.Nanosecond)
	}
	return v, nil
}

func parsePathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}
