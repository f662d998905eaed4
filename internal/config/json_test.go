package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"store_driver":   "redis",
		"redis_addr":     "cache:6379",
		"redis_db":       2,
		"seed_demo_data": false,
		"s3_bucket":      "senior-photos",
	})
	pathEnv := writeTempJSON(t, dir, "env.json", map[string]any{
		"log_format": "zap",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, DriverRedis, cfg.StoreDriver)
		assert.Equal(t, "cache:6379", cfg.RedisAddr)
		assert.Equal(t, 2, cfg.RedisDB)
		assert.False(t, cfg.SeedDemoData)
		assert.Equal(t, "senior-photos", cfg.S3Bucket)
		// absent keys keep defaults
		assert.Equal(t, "mapatag.db", cfg.StoreDSN)
		assert.Equal(t, "mapatag:", cfg.RedisKeyPrefix)
	})

	t.Run("loads from environment", func(t *testing.T) {
		t.Setenv("MAPATAG_CONFIG", pathEnv)
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "zap", cfg.LogFormat)
		assert.True(t, cfg.SeedDemoData)
	})

	t.Run("no config source, no changes", func(t *testing.T) {
		t.Setenv("MAPATAG_CONFIG", "")
		os.Args = []string{"testbin"}

		cfg := &Config{StoreDriver: "defaults", RedisDB: 5}
		parseJson(cfg)

		assert.Equal(t, "defaults", cfg.StoreDriver)
		assert.Equal(t, 5, cfg.RedisDB)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
