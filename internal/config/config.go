package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/match-stats/internal/platform/logging"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
	StoreDriverNone     = "none"
)

// IngestionTarget is one league/season pair polled for live fixtures.
type IngestionTarget struct {
	LeagueID int64
	Season   int
}

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                           string
	ServiceName                      string
	ServiceVersion                   string
	HTTPAddr                         string
	StoreDriver                      string
	StoreSeed                        bool
	DBURL                            string
	DBDisablePreparedBinary          bool
	DBMaxOpenConns                   int
	DBMaxIdleConns                   int
	DBConnMaxLifetime                time.Duration
	DBConnMaxIdleTime                time.Duration
	DBPingTimeout                    time.Duration
	CacheEnabled                     bool
	CacheTTL                         time.Duration
	CORSAllowedOrigins               []string
	ReadTimeout                      time.Duration
	WriteTimeout                     time.Duration
	ShutdownTimeout                  time.Duration
	PprofEnabled                     bool
	PprofAddr                        string
	SwaggerEnabled                   bool
	UptraceEnabled                   bool
	UptraceDSN                       string
	PyroscopeEnabled                 bool
	PyroscopeServerAddress           string
	PyroscopeAppName                 string
	PyroscopeAuthToken               string
	PyroscopeBasicAuthUser           string
	PyroscopeBasicAuthPassword       string
	PyroscopeUploadRate              time.Duration
	APIFootballEnabled               bool
	APIFootballBaseURL               string
	APIFootballKey                   string
	APIFootballTimeout               time.Duration
	APIFootballMaxRetries            int
	APIFootballRetryBackoff          time.Duration
	APIFootballRequestsPerSecond     float64
	APIFootballCircuitEnabled        bool
	APIFootballCircuitFailureCount   int
	APIFootballCircuitOpenTimeout    time.Duration
	APIFootballCircuitHalfOpenMaxReq int
	IngestionMaxWorkers              int
	IngestionPollEnabled             bool
	IngestionPollInterval            time.Duration
	IngestionRunTimeout              time.Duration
	IngestionTargets                 []IngestionTarget
	InternalJobToken                 string
	DefaultPageLimit                 int
	MaxPageLimit                     int
	LogLevel                         logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", getEnv("DATABASE_URL", "")))
	storeDriver, err := parseStoreDriver(getEnv("STORE_DRIVER", ""), dbURL)
	if err != nil {
		return Config{}, err
	}
	if storeDriver == StoreDriverPostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORE_DRIVER=postgres")
	}
	storeSeed, err := strconv.ParseBool(getEnv("STORE_SEED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STORE_SEED: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	dbMaxOpenConns, err := getEnvAsInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	if dbMaxOpenConns < 1 {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS must be >= 1")
	}
	dbMaxIdleConns, err := getEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}
	if dbMaxIdleConns < 0 {
		return Config{}, fmt.Errorf("DB_MAX_IDLE_CONNS must be >= 0")
	}
	dbConnMaxLifetime, err := time.ParseDuration(getEnv("DB_CONN_MAX_LIFETIME", "30m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_CONN_MAX_LIFETIME: %w", err)
	}
	dbConnMaxIdleTime, err := time.ParseDuration(getEnv("DB_CONN_MAX_IDLE_TIME", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_CONN_MAX_IDLE_TIME: %w", err)
	}
	dbPingTimeout, err := time.ParseDuration(getEnv("DB_PING_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_PING_TIMEOUT: %w", err)
	}
	if dbPingTimeout <= 0 {
		return Config{}, fmt.Errorf("DB_PING_TIMEOUT must be > 0")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	apiFootballEnabled, err := strconv.ParseBool(getEnv("APIFOOTBALL_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_ENABLED: %w", err)
	}
	apiFootballKey := strings.TrimSpace(getEnv("APIFOOTBALL_KEY", getEnv("FOOTBALL_API_KEY", "")))
	if apiFootballEnabled && apiFootballKey == "" {
		return Config{}, fmt.Errorf("APIFOOTBALL_KEY is required when APIFOOTBALL_ENABLED=true")
	}
	apiFootballTimeout, err := time.ParseDuration(getEnv("APIFOOTBALL_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_TIMEOUT: %w", err)
	}
	if apiFootballTimeout <= 0 {
		return Config{}, fmt.Errorf("APIFOOTBALL_TIMEOUT must be > 0")
	}
	apiFootballMaxRetries, err := getEnvAsInt("APIFOOTBALL_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_MAX_RETRIES: %w", err)
	}
	if apiFootballMaxRetries < 0 {
		return Config{}, fmt.Errorf("APIFOOTBALL_MAX_RETRIES must be >= 0")
	}
	apiFootballRetryBackoff, err := time.ParseDuration(getEnv("APIFOOTBALL_RETRY_BACKOFF", "1s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_RETRY_BACKOFF: %w", err)
	}
	if apiFootballRetryBackoff <= 0 {
		return Config{}, fmt.Errorf("APIFOOTBALL_RETRY_BACKOFF must be > 0")
	}
	apiFootballRPS, err := strconv.ParseFloat(getEnv("APIFOOTBALL_REQUESTS_PER_SECOND", "5"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_REQUESTS_PER_SECOND: %w", err)
	}
	if apiFootballRPS < 0 {
		return Config{}, fmt.Errorf("APIFOOTBALL_REQUESTS_PER_SECOND must be >= 0")
	}
	apiFootballCircuitEnabled, err := strconv.ParseBool(getEnv("APIFOOTBALL_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_ENABLED: %w", err)
	}
	apiFootballCircuitFailureCount, err := getEnvAsInt("APIFOOTBALL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if apiFootballCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("APIFOOTBALL_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	apiFootballCircuitOpenTimeout, err := time.ParseDuration(getEnv("APIFOOTBALL_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if apiFootballCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("APIFOOTBALL_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	apiFootballCircuitHalfOpenMaxReq, err := getEnvAsInt("APIFOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse APIFOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if apiFootballCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("APIFOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	ingestionMaxWorkers, err := getEnvAsInt("INGESTION_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse INGESTION_MAX_WORKERS: %w", err)
	}
	if ingestionMaxWorkers < 1 {
		return Config{}, fmt.Errorf("INGESTION_MAX_WORKERS must be >= 1")
	}
	ingestionPollEnabled, err := strconv.ParseBool(getEnv("INGESTION_POLL_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse INGESTION_POLL_ENABLED: %w", err)
	}
	ingestionPollInterval, err := time.ParseDuration(getEnv("INGESTION_POLL_INTERVAL", "1m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse INGESTION_POLL_INTERVAL: %w", err)
	}
	if ingestionPollInterval <= 0 {
		return Config{}, fmt.Errorf("INGESTION_POLL_INTERVAL must be > 0")
	}
	ingestionRunTimeout, err := time.ParseDuration(getEnv("INGESTION_RUN_TIMEOUT", "45s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse INGESTION_RUN_TIMEOUT: %w", err)
	}
	if ingestionRunTimeout <= 0 {
		return Config{}, fmt.Errorf("INGESTION_RUN_TIMEOUT must be > 0")
	}
	ingestionTargets, err := parseIngestionTargets(getEnv("INGESTION_TARGETS", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse INGESTION_TARGETS: %w", err)
	}
	if ingestionPollEnabled {
		if !apiFootballEnabled {
			return Config{}, fmt.Errorf("APIFOOTBALL_ENABLED must be true when INGESTION_POLL_ENABLED=true")
		}
		if len(ingestionTargets) == 0 {
			return Config{}, fmt.Errorf("INGESTION_TARGETS is required when INGESTION_POLL_ENABLED=true")
		}
	}

	defaultPageLimit, err := getEnvAsInt("DEFAULT_PAGE_LIMIT", 50)
	if err != nil {
		return Config{}, fmt.Errorf("parse DEFAULT_PAGE_LIMIT: %w", err)
	}
	maxPageLimit, err := getEnvAsInt("MAX_PAGE_LIMIT", 500)
	if err != nil {
		return Config{}, fmt.Errorf("parse MAX_PAGE_LIMIT: %w", err)
	}
	if defaultPageLimit < 1 || maxPageLimit < defaultPageLimit {
		return Config{}, fmt.Errorf("page limits must satisfy 1 <= DEFAULT_PAGE_LIMIT <= MAX_PAGE_LIMIT")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(getEnv("APP_SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_SHUTDOWN_TIMEOUT: %w", err)
	}

	logLevel, err := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}

	cfg := Config{
		AppEnv:                           appEnv,
		ServiceName:                      getEnv("APP_SERVICE_NAME", "match-stats-api"),
		ServiceVersion:                   getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                         getEnv("APP_HTTP_ADDR", ":8080"),
		StoreDriver:                      storeDriver,
		StoreSeed:                        storeSeed,
		DBURL:                            dbURL,
		DBDisablePreparedBinary:          dbDisablePreparedBinary,
		DBMaxOpenConns:                   dbMaxOpenConns,
		DBMaxIdleConns:                   dbMaxIdleConns,
		DBConnMaxLifetime:                dbConnMaxLifetime,
		DBConnMaxIdleTime:                dbConnMaxIdleTime,
		DBPingTimeout:                    dbPingTimeout,
		CacheEnabled:                     cacheEnabled,
		CacheTTL:                         cacheTTL,
		CORSAllowedOrigins:               splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                      readTimeout,
		WriteTimeout:                     writeTimeout,
		ShutdownTimeout:                  shutdownTimeout,
		PprofEnabled:                     pprofEnabled,
		PprofAddr:                        pprofAddr,
		SwaggerEnabled:                   swaggerEnabled,
		UptraceEnabled:                   uptraceEnabled,
		UptraceDSN:                       uptraceDSN,
		PyroscopeEnabled:                 pyroscopeEnabled,
		PyroscopeServerAddress:           pyroscopeServerAddress,
		PyroscopeAuthToken:               strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:           strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:       strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:              pyroscopeUploadRate,
		APIFootballEnabled:               apiFootballEnabled,
		APIFootballBaseURL:               strings.TrimSpace(getEnv("APIFOOTBALL_BASE_URL", "https://v3.football.api-sports.io")),
		APIFootballKey:                   apiFootballKey,
		APIFootballTimeout:               apiFootballTimeout,
		APIFootballMaxRetries:            apiFootballMaxRetries,
		APIFootballRetryBackoff:          apiFootballRetryBackoff,
		APIFootballRequestsPerSecond:     apiFootballRPS,
		APIFootballCircuitEnabled:        apiFootballCircuitEnabled,
		APIFootballCircuitFailureCount:   apiFootballCircuitFailureCount,
		APIFootballCircuitOpenTimeout:    apiFootballCircuitOpenTimeout,
		APIFootballCircuitHalfOpenMaxReq: apiFootballCircuitHalfOpenMaxReq,
		IngestionMaxWorkers:              ingestionMaxWorkers,
		IngestionPollEnabled:             ingestionPollEnabled,
		IngestionPollInterval:            ingestionPollInterval,
		IngestionRunTimeout:              ingestionRunTimeout,
		IngestionTargets:                 ingestionTargets,
		InternalJobToken:                 strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		DefaultPageLimit:                 defaultPageLimit,
		MaxPageLimit:                     maxPageLimit,
		LogLevel:                         logLevel,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

// parseStoreDriver resolves STORE_DRIVER. When unset, a configured DB_URL selects postgres and
// anything else runs without a store.
func parseStoreDriver(raw, dbURL string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		if dbURL != "" {
			return StoreDriverPostgres, nil
		}
		return StoreDriverNone, nil
	}

	switch value {
	case StoreDriverPostgres, StoreDriverMemory, StoreDriverNone:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORE_DRIVER %q: valid values are %s, %s, %s", raw, StoreDriverPostgres, StoreDriverMemory, StoreDriverNone)
	}
}

// parseIngestionTargets reads "league:season" pairs separated by commas, e.g. "39:2025,140:2025".
func parseIngestionTargets(raw string) ([]IngestionTarget, error) {
	var out []IngestionTarget
	seen := make(map[IngestionTarget]struct{})
	for _, part := range strings.Split(raw, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid target %q, expected league_id:season", item)
		}
		leagueID, err := strconv.ParseInt(strings.TrimSpace(segments[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid league id in target %q: %w", item, err)
		}
		season, err := strconv.Atoi(strings.TrimSpace(segments[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid season in target %q: %w", item, err)
		}
		if leagueID <= 0 || season <= 0 {
			return nil, fmt.Errorf("league id and season must be > 0 in target %q", item)
		}

		target := IngestionTarget{LeagueID: leagueID, Season: season}
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
