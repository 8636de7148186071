package config

import (
	"os"
)

type Config struct {
	AppEnv   string
	LogLevel string

	// CatalogDSN selects the Postgres catalog source. Empty means the
	// compiled-in dataset.
	CatalogDSN string
	Currency   string
}

func Load() Config {
	return Config{
		AppEnv:     getEnv("APP_ENV", "dev"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		CatalogDSN: getEnv("CATALOG_DSN", ""),
		Currency:   getEnv("CART_CURRENCY", "USD"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
