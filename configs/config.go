package configs

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration values.
type Config struct {
	ServerHost    string
	ServerPort    string
	ServerMode    string
	ServiceName   string
	CheckTimeout  time.Duration
	MaxWorkers    int
	UserAgent     string
	ChromeBin     string
	BrowserSettle time.Duration
	RespectRobots bool
	FetchRPS      float64
}

// Load reads configuration exclusively from environment variables (optionally .env file).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.ServerHost = getEnv("HOST", "0.0.0.0")
	cfg.ServerPort = getEnv("PORT", "8080")
	cfg.ServerMode = getEnv("GIN_MODE", "debug")
	cfg.ServiceName = getEnv("SERVICE_NAME", "jobcull-api")

	// Classification
	timeoutSec := getEnv("CHECK_TIMEOUT_SECONDS", "60")
	ts, err := strconv.Atoi(timeoutSec)
	if err != nil || ts <= 0 {
		return nil, fmt.Errorf("invalid CHECK_TIMEOUT_SECONDS: %q", timeoutSec)
	}
	cfg.CheckTimeout = time.Duration(ts) * time.Second

	maxWorkers := getEnv("MAX_WORKERS", "20")
	mw, err := strconv.Atoi(maxWorkers)
	if err != nil || mw <= 0 {
		return nil, fmt.Errorf("invalid MAX_WORKERS: %q", maxWorkers)
	}
	cfg.MaxWorkers = mw

	// Fetching
	cfg.UserAgent = getEnv("USER_AGENT", "Mozilla/5.0")
	cfg.RespectRobots = getEnv("RESPECT_ROBOTS", "false") == "true"

	rps := getEnv("FETCH_RPS", "0")
	r, err := strconv.ParseFloat(rps, 64)
	if err != nil || r < 0 {
		return nil, fmt.Errorf("invalid FETCH_RPS: %q", rps)
	}
	cfg.FetchRPS = r

	// Browser tier
	cfg.ChromeBin = getEnv("CHROME_BIN", "")
	settleMs := getEnv("BROWSER_SETTLE_MS", "1500")
	sm, err := strconv.Atoi(settleMs)
	if err != nil || sm < 0 {
		return nil, fmt.Errorf("invalid BROWSER_SETTLE_MS: %q", settleMs)
	}
	cfg.BrowserSettle = time.Duration(sm) * time.Millisecond

	return cfg, nil
}

// getEnv returns env var or default.
func getEnv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}
