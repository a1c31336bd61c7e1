package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/foxsportsgoon/goonbot/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	// Xpert Eleven scraping credentials and league locations.
	X11Username     string
	X11Password     string
	X11BaseURL      string
	X11Timeout      time.Duration
	GoondesligaURL  string
	SpoondesligaURL string
	StatsLeagueID   int
	GoondesligaLnr  int
	SpoondesligaLnr int

	GroupMeBotID   string
	GroupMeBaseURL string
	GroupMeTimeout time.Duration

	GeminiAPIKey                 string
	GeminiBaseURL                string
	GeminiModel                  string
	GeminiTimeout                time.Duration
	GeminiCircuitEnabled         bool
	GeminiCircuitFailureCount    int
	GeminiCircuitOpenTimeout     time.Duration
	GeminiCircuitHalfOpenMaxReq  int

	ProfilesPath string

	// DBURL is optional. When empty the bot keeps its page archive in
	// memory only.
	DBURL                   string
	DBDisablePreparedBinary bool

	UptraceEnabled             bool
	UptraceDSN                 string
	PprofEnabled               bool
	PprofAddr                  string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	x11Username := strings.TrimSpace(getEnv("X11_USERNAME", ""))
	if x11Username == "" {
		return Config{}, fmt.Errorf("X11_USERNAME is required")
	}
	x11Password := strings.TrimSpace(getEnv("X11_PASSWORD", ""))
	if x11Password == "" {
		return Config{}, fmt.Errorf("X11_PASSWORD is required")
	}
	x11Timeout, err := time.ParseDuration(getEnv("X11_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse X11_TIMEOUT: %w", err)
	}
	if x11Timeout <= 0 {
		return Config{}, fmt.Errorf("X11_TIMEOUT must be > 0")
	}

	statsLeagueID, err := getEnvAsInt("X11_STATS_LEAGUE_ID", 460905)
	if err != nil {
		return Config{}, fmt.Errorf("parse X11_STATS_LEAGUE_ID: %w", err)
	}
	if statsLeagueID <= 0 {
		return Config{}, fmt.Errorf("X11_STATS_LEAGUE_ID must be > 0")
	}
	goondesligaLnr, err := getEnvAsInt("GOONDESLIGA_LNR", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse GOONDESLIGA_LNR: %w", err)
	}
	spoondesligaLnr, err := getEnvAsInt("SPOONDESLIGA_LNR", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPOONDESLIGA_LNR: %w", err)
	}

	groupMeBotID := strings.TrimSpace(getEnv("GROUPME_BOT_ID", ""))
	if groupMeBotID == "" {
		return Config{}, fmt.Errorf("GROUPME_BOT_ID is required")
	}
	groupMeTimeout, err := time.ParseDuration(getEnv("GROUPME_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GROUPME_TIMEOUT: %w", err)
	}
	if groupMeTimeout <= 0 {
		return Config{}, fmt.Errorf("GROUPME_TIMEOUT must be > 0")
	}

	geminiAPIKey := strings.TrimSpace(getEnv("GEMINI_API_KEY", ""))
	if geminiAPIKey == "" {
		return Config{}, fmt.Errorf("GEMINI_API_KEY is required")
	}
	geminiTimeout, err := time.ParseDuration(getEnv("GEMINI_TIMEOUT", "45s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_TIMEOUT: %w", err)
	}
	if geminiTimeout <= 0 {
		return Config{}, fmt.Errorf("GEMINI_TIMEOUT must be > 0")
	}
	geminiCircuitEnabled, err := strconv.ParseBool(getEnv("GEMINI_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_ENABLED: %w", err)
	}
	geminiCircuitFailureCount, err := getEnvAsInt("GEMINI_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if geminiCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("GEMINI_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	geminiCircuitOpenTimeout, err := time.ParseDuration(getEnv("GEMINI_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if geminiCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("GEMINI_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	geminiCircuitHalfOpenMaxReq, err := getEnvAsInt("GEMINI_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if geminiCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("GEMINI_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
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

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "120s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	x11BaseURL := strings.TrimRight(strings.TrimSpace(getEnv("X11_BASE_URL", "https://www.xperteleven.com")), "/")

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("APP_SERVICE_NAME", "goonbot"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("APP_HTTP_ADDR", ":10000"),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		LogLevel:       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		X11Username: x11Username,
		X11Password: x11Password,
		X11BaseURL:  x11BaseURL,
		X11Timeout:  x11Timeout,
		GoondesligaURL: getEnv("GOONDESLIGA_URL",
			fmt.Sprintf("%s/series.aspx?Lid=%d&Lnr=%d&dh=2", x11BaseURL, statsLeagueID, goondesligaLnr)),
		SpoondesligaURL: getEnv("SPOONDESLIGA_URL",
			fmt.Sprintf("%s/series.aspx?Lid=%d&Lnr=%d&dh=2", x11BaseURL, statsLeagueID, spoondesligaLnr)),
		StatsLeagueID:   statsLeagueID,
		GoondesligaLnr:  goondesligaLnr,
		SpoondesligaLnr: spoondesligaLnr,

		GroupMeBotID:   groupMeBotID,
		GroupMeBaseURL: strings.TrimRight(strings.TrimSpace(getEnv("GROUPME_BASE_URL", "https://api.groupme.com")), "/"),
		GroupMeTimeout: groupMeTimeout,

		GeminiAPIKey:                geminiAPIKey,
		GeminiBaseURL:               strings.TrimRight(strings.TrimSpace(getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")), "/"),
		GeminiModel:                 getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTimeout:               geminiTimeout,
		GeminiCircuitEnabled:        geminiCircuitEnabled,
		GeminiCircuitFailureCount:   geminiCircuitFailureCount,
		GeminiCircuitOpenTimeout:    geminiCircuitOpenTimeout,
		GeminiCircuitHalfOpenMaxReq: geminiCircuitHalfOpenMaxReq,

		ProfilesPath: getEnv("PROFILES_PATH", "profiles.json"),

		DBURL:                   strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary: dbDisablePreparedBinary,

		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
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
