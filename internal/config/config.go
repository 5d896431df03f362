package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Backoffice struct {
		BaseURL   string
		Timeout   time.Duration
		RateLimit int
	}
	API struct {
		Port     string
		BasePath string
	}
	Logging struct {
		Dir   string
		Level string
	}
	Console struct {
		AIGeneration     bool
		BulkDispatch     bool
		MaxWSConnections int
		KBPageSize       int
	}
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function. Load uses os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	var cfg Config

	// Back-office API settings
	cfg.Backoffice.BaseURL = strings.TrimRight(getenv("BACKOFFICE_BASE_URL"), "/")
	if s, err := strconv.Atoi(getenv("BACKOFFICE_TIMEOUT_SECONDS")); err == nil {
		cfg.Backoffice.Timeout = time.Duration(s) * time.Second
	}
	if rl, err := strconv.Atoi(getenv("BACKOFFICE_RATE_LIMIT")); err == nil {
		cfg.Backoffice.RateLimit = rl
	}

	// API settings
	cfg.API.Port = getenv("API_PORT")
	cfg.API.BasePath = getenv("API_BASE_PATH")

	// Logging
	cfg.Logging.Dir = getenv("LOG_DIR")
	cfg.Logging.Level = strings.ToLower(getenv("LOG_LEVEL"))

	// Console capabilities
	cfg.Console.AIGeneration = parseBool(getenv("CONSOLE_AI_GENERATION"), true)
	cfg.Console.BulkDispatch = parseBool(getenv("CONSOLE_BULK_DISPATCH"), true)
	if mc, err := strconv.Atoi(getenv("WS_MAX_CONNECTIONS")); err == nil {
		cfg.Console.MaxWSConnections = mc
	}
	if ps, err := strconv.Atoi(getenv("KB_PAGE_SIZE")); err == nil {
		cfg.Console.KBPageSize = ps
	}

	// Apply defaults
	if cfg.Backoffice.BaseURL == "" {
		cfg.Backoffice.BaseURL = "http://localhost:5000"
	}
	if cfg.Backoffice.Timeout <= 0 {
		cfg.Backoffice.Timeout = 30 * time.Second
	}
	if cfg.Backoffice.RateLimit <= 0 {
		cfg.Backoffice.RateLimit = 20
	}
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v0"
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Console.MaxWSConnections <= 0 {
		cfg.Console.MaxWSConnections = 10
	}
	if cfg.Console.KBPageSize <= 0 {
		cfg.Console.KBPageSize = 15
	}

	// Validate settings
	u, err := url.Parse(cfg.Backoffice.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("invalid BACKOFFICE_BASE_URL %q", cfg.Backoffice.BaseURL)
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("invalid LOG_LEVEL %q", cfg.Logging.Level)
	}

	return cfg, nil
}

func parseBool(v string, def bool) bool {
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
