package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	LogLevel        slog.Level
	CatalogFile     string
	RateLimit       int
	RateWindow      time.Duration
	IdempotencyTTL  time.Duration
	SweepInterval   time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

const (
	defaultRunAddress      = ":5001"
	defaultLogLevel        = "info"
	defaultRateLimit       = 50
	defaultRateWindow      = 15 * time.Minute
	defaultIdempotencyTTL  = 24 * time.Hour
	defaultSweepInterval   = time.Minute
	defaultShutdownTimeout = 10 * time.Second
	defaultCORSOrigins     = "*"
)

// Load parses configuration from .env, environment variables and flags.
func Load() (*Config, error) {
	// A missing .env file is fine; real environment variables win over it.
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	runAddress := getString(lookup, "RUN_ADDRESS", "")
	if runAddress == "" {
		if port := getString(lookup, "PORT", ""); port != "" {
			runAddress = ":" + port
		} else {
			runAddress = defaultRunAddress
		}
	}

	rateLimit, err := getInt(lookup, "RATE_LIMIT", defaultRateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit: %w", err)
	}

	cfg := &Config{
		RunAddress:  runAddress,
		CatalogFile: getString(lookup, "CATALOG_FILE", ""),
		RateLimit:   rateLimit,
	}

	fs := flag.NewFlagSet("coffeeshop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		logLevelStr        = getString(lookup, "LOG_LEVEL", defaultLogLevel)
		corsOriginsStr     = getString(lookup, "CORS_ORIGINS", defaultCORSOrigins)
		rateWindowStr      = getString(lookup, "RATE_WINDOW", defaultRateWindow.String())
		idempotencyTTLStr  = getString(lookup, "IDEMPOTENCY_TTL", defaultIdempotencyTTL.String())
		sweepIntervalStr   = getString(lookup, "SWEEP_INTERVAL", defaultSweepInterval.String())
		shutdownTimeoutStr = getString(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout.String())
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&logLevelStr, "log-level", logLevelStr, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.CatalogFile, "catalog", cfg.CatalogFile, "JSON drink catalog, builtin menu when empty")
	fs.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Requests allowed per client within rate window")
	fs.StringVar(&rateWindowStr, "rate-window", rateWindowStr, "Rate limiting window")
	fs.StringVar(&idempotencyTTLStr, "idempotency-ttl", idempotencyTTLStr, "How long idempotency keys are remembered")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between expired idempotency key sweeps")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&corsOriginsStr, "cors-origins", corsOriginsStr, "Comma separated list of allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err = cfg.LogLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if cfg.RateWindow, err = time.ParseDuration(rateWindowStr); err != nil {
		return nil, fmt.Errorf("invalid rate window: %w", err)
	}

	if cfg.IdempotencyTTL, err = time.ParseDuration(idempotencyTTLStr); err != nil {
		return nil, fmt.Errorf("invalid idempotency ttl: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	cfg.CORSOrigins = splitList(corsOriginsStr)
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{defaultCORSOrigins}
	}

	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}

	if cfg.RateWindow <= 0 {
		cfg.RateWindow = defaultRateWindow
	}

	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = defaultIdempotencyTTL
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.RunAddress == "" {
		return nil, fmt.Errorf("run address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) (int, error) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
