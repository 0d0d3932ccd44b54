package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("PAGE_WIDTH", "")
	t.Setenv("HISTORY_LIMIT", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("EXPORT_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, 794.0, cfg.PageWidth)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, 24*time.Hour, cfg.RedisTTL())
	assert.Equal(t, 2*time.Hour, cfg.SessionIdle())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.ExportTimeoutDuration())
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("STORE_DRIVER", "file")
	t.Setenv("FILE_STORE_ROOT", "/tmp/docs")
	t.Setenv("HISTORY_LIMIT", "80")
	t.Setenv("PAGE_WIDTH", "612")
	t.Setenv("REDIS_TTL_HOURS", "not-a-number")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://cv.example.com,")

	cfg := Load()

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, StoreFile, cfg.StoreDriver)
	assert.Equal(t, "/tmp/docs", cfg.FileStoreRoot)
	assert.Equal(t, 80, cfg.HistoryLimit)
	assert.Equal(t, 612.0, cfg.PageWidth)
	assert.Equal(t, 24, cfg.RedisTTLHours)
	assert.Equal(t, []string{"http://localhost:5173", "https://cv.example.com"}, cfg.CORSOrigins)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Port: "3000", StoreDriver: StoreNone, PageWidth: 794, PageHeight: 1123, HistoryLimit: 100, ExportTimeout: 30}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(c *Config){
		"PORT is required":         func(c *Config) { c.Port = "" },
		"unknown STORE_DRIVER":     func(c *Config) { c.StoreDriver = "mongo" },
		"DB_PATH is required":      func(c *Config) { c.StoreDriver = StoreSQLite },
		"FILE_STORE_ROOT":          func(c *Config) { c.StoreDriver = StoreFile },
		"REDIS_ADDR is required":   func(c *Config) { c.StoreDriver = StoreRedis },
		"must be positive":         func(c *Config) { c.PageHeight = 0 },
		"HISTORY_LIMIT must be at": func(c *Config) { c.HistoryLimit = 1 },
		"EXPORT_TIMEOUT must be":   func(c *Config) { c.ExportTimeout = 0 },
	}
	for want, mutate := range cases {
		c := valid()
		mutate(c)
		assert.ErrorContains(t, c.Validate(), want)
	}
}
