package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.APIPort)
	assert.Equal(t, 20, cfg.MaxPerCategory)
	assert.Equal(t, 10, cfg.MaxFeatured)
	assert.Equal(t, "catalog-sync-events", cfg.KafkaTopic)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("MENU_MAX_FEATURED", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.APIPort)
	assert.Equal(t, 3, cfg.MaxFeatured)
}

func TestProviders(t *testing.T) {
	providers := Providers()
	require.Len(t, providers, 3)

	byID := map[string]bool{}
	for _, conn := range providers {
		byID[conn.ID] = true
		assert.NotEmpty(t, conn.Name)
		assert.NotEmpty(t, conn.BaseURL)
		assert.NotEmpty(t, conn.ProductsPath)
		assert.NotEmpty(t, conn.Categories)
		assert.Greater(t, conn.SyncInterval, time.Duration(0))
		assert.Greater(t, conn.MaxRetries, 0)
	}
	assert.True(t, byID["payzone"])
	assert.True(t, byID["ezivend"])
	assert.True(t, byID["mobiconnect"])
}

func TestProviderEnvOverrides(t *testing.T) {
	t.Setenv("PAYZONE_BASE_URL", "http://localhost:9001")
	t.Setenv("PAYZONE_SYNC_INTERVAL", "30s")

	for _, conn := range Providers() {
		if conn.ID == "payzone" {
			assert.Equal(t, "http://localhost:9001", conn.BaseURL)
			assert.Equal(t, 30*time.Second, conn.SyncInterval)
		}
	}
}
