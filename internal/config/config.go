package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName         = "WalletNotify"
	defaultAppEnv          = "development"
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultSeedBalance     = 1000
	defaultFeeBps          = 100
	defaultTransferRate    = 60
	defaultSendBuffer      = 32
	defaultShutdownDelay   = 10 * time.Second
	defaultIdempotencyTTL  = 24 * time.Hour
	idemTTLSecondsEnvVar   = "IDEMPOTENCY_TTL_SECONDS"
	idemTTLDurEnvVar       = "IDEMPOTENCY_TTL"
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName            string
	AppEnv             string
	Port               string
	LogLevel           string
	RedisURL           string
	SeedBalance        int64
	FeeBps             int64
	TransferRatePerMin int
	SendBuffer         int
	ShutdownPeriod     time.Duration
	IdempotencyTTL     time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
// REDIS_URL is optional; the redis-backed middleware is disabled when it is absent.
func Load() (Config, error) {
	cfg := Config{
		AppName:            getEnv("APP_NAME", defaultAppName),
		AppEnv:             getEnv("APP_ENV", defaultAppEnv),
		Port:               getEnv("PORT", defaultPort),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		RedisURL:           os.Getenv("REDIS_URL"),
		SeedBalance:        defaultSeedBalance,
		FeeBps:             defaultFeeBps,
		TransferRatePerMin: defaultTransferRate,
		SendBuffer:         defaultSendBuffer,
		ShutdownPeriod:     defaultShutdownDelay,
		IdempotencyTTL:     defaultIdempotencyTTL,
	}

	if v := os.Getenv("SEED_BALANCE"); v != "" {
		amount, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SEED_BALANCE: %w", err)
		}
		if amount < 0 {
			return Config{}, fmt.Errorf("SEED_BALANCE must not be negative")
		}
		cfg.SeedBalance = amount
	}

	if v := os.Getenv("FEE_BPS"); v != "" {
		bps, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FEE_BPS: %w", err)
		}
		if bps < 0 || bps > 10_000 {
			return Config{}, fmt.Errorf("FEE_BPS must be between 0 and 10000")
		}
		cfg.FeeBps = bps
	}

	if v := os.Getenv("TRANSFER_RATE_PER_MIN"); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TRANSFER_RATE_PER_MIN: %w", err)
		}
		cfg.TransferRatePerMin = rate
	}

	if v := os.Getenv("WS_SEND_BUFFER"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WS_SEND_BUFFER: %w", err)
		}
		if size < 1 {
			return Config{}, fmt.Errorf("WS_SEND_BUFFER must be at least 1")
		}
		cfg.SendBuffer = size
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv(idemTTLSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", idemTTLSecondsEnvVar, err)
		}
		cfg.IdempotencyTTL = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(idemTTLDurEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", idemTTLDurEnvVar, err)
		}
		cfg.IdempotencyTTL = d
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
