package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{"server": {"host": "127.0.0.1"}, "redis": {"host": "localhost", "port": 6379}}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Address())
	assert.Equal(t, "storefront_session", cfg.Server.SessionCookie)
	assert.Equal(t, CartStoreRedis, cfg.Cart.Store)
	assert.Equal(t, 30*24*time.Hour, cfg.Cart.TTL())
	assert.Equal(t, 2*time.Second, cfg.Checkout.SubmitWindow())
	assert.Equal(t, 3*time.Second, cfg.Checkout.ToastDismiss())
	assert.Equal(t, CatalogSourceFile, cfg.Catalog.Source)
	assert.Equal(t, time.Minute, cfg.Catalog.RefreshInterval())
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
	assert.Equal(t, "storefronts.yaml", cfg.Storefronts)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `{"cart": {"store": "redis"}, "redis": {"host": "localhost", "port": 6379}}`)

	t.Setenv("STOREFRONT_REDIS_HOST", "cache.internal")
	t.Setenv("STOREFRONT_CART_STORE", "memory")
	t.Setenv("STOREFRONT_CART_TTL_HOURS", "-1")
	t.Setenv("STOREFRONT_CHECKOUT_SUBMIT_WINDOW_MS", "-1")
	t.Setenv("STOREFRONT_DATABASE_DBNAME", "storefront")
	t.Setenv("STOREFRONT_SERVER_SESSION_COOKIE", "sid")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "cache.internal", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, CartStoreMemory, cfg.Cart.Store)
	assert.Equal(t, time.Duration(0), cfg.Cart.TTL())
	assert.Equal(t, time.Duration(0), cfg.Checkout.SubmitWindow())
	assert.Equal(t, "storefront", cfg.Database.DBName)
	assert.Equal(t, "sid", cfg.Server.SessionCookie)
}

func TestLoadConfigRejectsUnknownStore(t *testing.T) {
	path := writeConfig(t, `{"cart": {"store": "cookie"}}`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "shop", Password: "secret", DBName: "storefront", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=shop password=secret dbname=storefront sslmode=disable", db.GetDSN())
}
