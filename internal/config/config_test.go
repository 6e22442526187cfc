package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CATALOG_BASE_URL", "http://catalog.local")
	t.Setenv("ORDERS_BASE_URL", "http://orders.local")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
	require.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	require.Equal(t, 1200, cfg.VATRateBPS)
	require.Equal(t, "₱", cfg.CurrencySymbol)
	// Voucher endpoint defaults to the orders host.
	require.Equal(t, "http://orders.local", cfg.VoucherBaseURL)
}

func TestLoadMissingRedis(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("CATALOG_BASE_URL", "http://catalog.local")
	t.Setenv("ORDERS_BASE_URL", "http://orders.local")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("PRICING_VAT_RATE_BPS", "1000")
	t.Setenv("VOUCHER_BASE_URL", "http://vouchers.local")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, 1000, cfg.VATRateBPS)
	require.Equal(t, "http://vouchers.local", cfg.VoucherBaseURL)
}
