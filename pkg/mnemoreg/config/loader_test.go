package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte("overwrite_policy: warn\nmetrics: true\n"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.String("overwrite_policy", ""))
	assert.True(t, cfg.Bool("metrics", false))
}

func TestFromYAMLKeepsUnrecognizedKeys(t *testing.T) {
	cfg, err := FromYAML([]byte("overwrite_policy: allow\ncustom_limit: 7\n"))
	require.NoError(t, err)

	assert.True(t, cfg.Has("custom_limit"))
	assert.Equal(t, 7, cfg.Int("custom_limit", 0))
}

func TestFromYAMLMalformed(t *testing.T) {
	_, err := FromYAML([]byte("key: [unclosed"))
	assert.Error(t, err)
}

func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"store": "sqlite", "store_path": "/tmp/r.db"}`))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.String("store", ""))
	assert.Equal(t, "/tmp/r.db", cfg.String("store_path", ""))
}

func TestFromJSONMalformed(t *testing.T) {
	_, err := FromJSON([]byte(`{"key": `))
	assert.Error(t, err)
}

func TestFromFile(t *testing.T) {
	t.Run("yaml extension", func(t *testing.T) {
		path := writeTempConfig(t, "registry.yaml", "log_level: debug\n")
		cfg, err := FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.String("log_level", ""))
	})

	t.Run("yml extension", func(t *testing.T) {
		path := writeTempConfig(t, "registry.yml", "store: memory\n")
		cfg, err := FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "memory", cfg.String("store", ""))
	})

	t.Run("json extension", func(t *testing.T) {
		path := writeTempConfig(t, "registry.json", `{"tracing": true}`)
		cfg, err := FromFile(path)
		require.NoError(t, err)
		assert.True(t, cfg.Bool("tracing", false))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeTempConfig(t, "registry.toml", "store = 'memory'")
		_, err := FromFile(path)
		assert.ErrorContains(t, err, "unsupported config file extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
