package config_test

import (
	"testing"

	"github.com/nikolayk812/cartctx-demo/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "LOG_LEVEL", "CATALOG_DSN", "CART_CURRENCY"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()

	assert.Equal(t, config.Config{
		AppEnv:   "dev",
		LogLevel: "info",
		Currency: "USD",
	}, cfg)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CATALOG_DSN", "postgres://localhost/shop")
	t.Setenv("CART_CURRENCY", "EUR")

	cfg := config.Load()

	assert.Equal(t, "prod", cfg.AppEnv)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgres://localhost/shop", cfg.CatalogDSN)
	assert.Equal(t, "EUR", cfg.Currency)
}
