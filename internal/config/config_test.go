package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/events/internal/config"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL.Std())
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.Equal(t, 50, cfg.Aggregator.MaxResultsPerProvider)
	assert.Equal(t, 5*time.Second, cfg.Aggregator.ProviderTimeout.Std())
	assert.True(t, cfg.Aggregator.Dedup())
	assert.True(t, cfg.Aggregator.Parallel())
}

func TestLoad_File(t *testing.T) {
	raw := `
server:
  addr: ":9090"
cache:
  ttl: 2m
aggregator:
  max_results_per_provider: 20
  enable_deduplication: false
  provider_timeout: 1s
providers:
  base_urls:
    Ticketmaster: "http://localhost:9001"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL.Std())
	assert.Equal(t, 20, cfg.Aggregator.MaxResultsPerProvider)
	assert.Equal(t, time.Second, cfg.Aggregator.ProviderTimeout.Std())
	assert.False(t, cfg.Aggregator.Dedup())
	assert.True(t, cfg.Aggregator.Parallel(), "unset parallel keeps its default")
	assert.Equal(t, "http://localhost:9001", cfg.Providers.BaseURLs["Ticketmaster"])

	// Unset values fall back to defaults
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout.Std())
	assert.Equal(t, 10, cfg.RateLimit.Requests)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}
