package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment, optionally seeded from a
// .env file. A missing .env file is not an error; the process environment
// always wins.
func Load() (*App, error) {
	logger := slog.Default()

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("App config loaded",
		"env", cfg.Env,
		"db", maskValue(cfg.DB.Url),
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"exchange_api_url", cfg.Exchange.ApiUrl,
		"exchange_api_key", maskValue(cfg.Exchange.ApiKey),
		"exchange_reference_currency", cfg.Exchange.ReferenceCurrency,
		"exchange_fallback_rate", cfg.Exchange.FallbackRate,
		"upload_max_bytes", cfg.Upload.MaxBytes,
	)
	return &cfg, nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
