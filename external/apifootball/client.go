package apifootball

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-stats/internal/platform/logging"
	"github.com/riskibarqy/match-stats/internal/platform/resilience"
	"github.com/riskibarqy/match-stats/internal/usecase"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL      = "https://v3.football.api-sports.io"
	defaultRetryBackoff = time.Second
	apiKeyHeader        = "x-apisports-key"
	maxResponseBytes    = 6 << 20
)

var errTransient = crerr.New("api-football transient failure")

type ClientConfig struct {
	HTTPClient        *http.Client
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	MaxRetries        int
	RetryBackoff      time.Duration
	RequestsPerSecond float64
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
}

// Client talks to the API-Football v3 REST API. Requests are rate limited, identical
// in-flight requests are collapsed, and repeated transient failures open a circuit breaker.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	maxRetries   int
	retryBackoff time.Duration
	limiter      *rate.Limiter
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}

	breakerCfg := cfg.CircuitBreaker
	if breakerCfg.Name == "" {
		breakerCfg.Name = "api-football"
	}
	breaker := resilience.NewCircuitBreaker(breakerCfg)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "dependency", breaker.Name(), "from", string(from), "to", string(to))
	})

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: retryBackoff,
		limiter:      rate.NewLimiter(limit, 1),
		logger:       logger,
		breaker:      breaker,
	}
}

func (c *Client) FetchLiveFixtures(ctx context.Context, leagueID int64, season int) ([]usecase.ExternalFixture, error) {
	if leagueID <= 0 || season <= 0 {
		return nil, fmt.Errorf("league id and season must be greater than zero")
	}

	query := url.Values{}
	query.Set("live", "all")
	query.Set("league", strconv.FormatInt(leagueID, 10))
	query.Set("season", strconv.Itoa(season))
	return c.fetchFixtures(ctx, query)
}

func (c *Client) FetchFixturesByDate(ctx context.Context, date time.Time) ([]usecase.ExternalFixture, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}

	query := url.Values{}
	query.Set("date", date.UTC().Format(time.DateOnly))
	return c.fetchFixtures(ctx, query)
}

func (c *Client) FetchFixture(ctx context.Context, fixtureID int64) (usecase.ExternalFixture, bool, error) {
	if fixtureID <= 0 {
		return usecase.ExternalFixture{}, false, fmt.Errorf("fixture id must be greater than zero")
	}

	query := url.Values{}
	query.Set("id", strconv.FormatInt(fixtureID, 10))
	items, err := c.fetchFixtures(ctx, query)
	if err != nil {
		return usecase.ExternalFixture{}, false, err
	}
	for _, item := range items {
		if item.FixtureID == fixtureID {
			return item, true, nil
		}
	}
	return usecase.ExternalFixture{}, false, nil
}

func (c *Client) FetchFixtureStatistics(ctx context.Context, fixtureID int64) ([]usecase.ExternalTeamStatistics, error) {
	if fixtureID <= 0 {
		return nil, fmt.Errorf("fixture id must be greater than zero")
	}

	query := url.Values{}
	query.Set("fixture", strconv.FormatInt(fixtureID, 10))

	var payload envelope[teamStatisticsItem]
	if err := c.doJSON(ctx, "/fixtures/statistics", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch statistics fixture_id=%d: %w", fixtureID, err)
	}

	out := make([]usecase.ExternalTeamStatistics, 0, len(payload.Response))
	for _, item := range payload.Response {
		if item.Team.ID <= 0 {
			continue
		}
		out = append(out, mapTeamStatistics(item))
	}
	return out, nil
}

func (c *Client) fetchFixtures(ctx context.Context, query url.Values) ([]usecase.ExternalFixture, error) {
	var payload envelope[fixtureItem]
	if err := c.doJSON(ctx, "/fixtures", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch fixtures %s: %w", query.Encode(), err)
	}

	out := make([]usecase.ExternalFixture, 0, len(payload.Response))
	for _, item := range payload.Response {
		mapped, ok := mapFixture(item)
		if !ok {
			c.logger.WarnContext(ctx, "skip unparseable api-football fixture", "fixture_id", item.Fixture.ID, "date", item.Fixture.Date)
			continue
		}
		out = append(out, mapped)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var raw []byte
	err := c.breaker.Execute(func() error {
		out, err, _ := c.flight.Do(fullURL, func() (any, error) {
			return c.executeRequest(ctx, fullURL)
		})
		if err != nil {
			return err
		}
		body, ok := out.([]byte)
		if !ok {
			return fmt.Errorf("unexpected response payload type %T", out)
		}
		raw = body
		return nil
	}, isCircuitFailure)
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "api-football circuit breaker rejected request", "path", path, "state", string(c.breaker.State()))
			return fmt.Errorf("%w: football provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	if env, ok := target.(interface{ providerErrors() string }); ok {
		if msg := env.providerErrors(); msg != "" {
			return fmt.Errorf("provider rejected request: %s", c.sanitize(msg))
		}
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set(apiKeyHeader, c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errTransient, "send request: %s", c.sanitize(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errTransient, "provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "api-football request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	if c.apiKey != "" {
		value = strings.ReplaceAll(value, c.apiKey, "REDACTED")
	}
	return value
}

func (e *envelope[T]) providerErrors() string {
	switch v := e.Errors.(type) {
	case map[string]any:
		if len(v) == 0 {
			return ""
		}
		parts := make([]string, 0, len(v))
		for key, msg := range v {
			parts = append(parts, fmt.Sprintf("%s: %v", key, msg))
		}
		return strings.Join(parts, "; ")
	case []any:
		if len(v) == 0 {
			return ""
		}
		return fmt.Sprint(v...)
	case string:
		return v
	}
	return ""
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
