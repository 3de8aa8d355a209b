package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIProvider(t *testing.T) {
	t.Run("Should map flag names to config paths", func(t *testing.T) {
		provider := NewCLIProvider(map[string]any{
			"page-size": 25,
			"view":      "virtualized",
			"unknown":   true,
		})
		data, err := provider.Load()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"table": map[string]any{"page_size": 25, "view_mode": "virtualized"},
		}, data)
		assert.Equal(t, SourceCLI, provider.Type())
	})
	t.Run("Should return an empty map for nil flags", func(t *testing.T) {
		data, err := NewCLIProvider(nil).Load()
		require.NoError(t, err)
		assert.Empty(t, data)
	})
}

func TestYAMLProvider(t *testing.T) {
	t.Run("Should treat a missing file as empty", func(t *testing.T) {
		data, err := NewYAMLProvider(filepath.Join(t.TempDir(), "missing.yaml")).Load()
		require.NoError(t, err)
		assert.Empty(t, data)
	})
	t.Run("Should drop nil values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("table:\n  page_size:\n  view_mode: paginated\n"), 0o600))
		data, err := NewYAMLProvider(path).Load()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"table": map[string]any{"view_mode": "paginated"}}, data)
	})
	t.Run("Should fail on malformed YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("table: [unclosed"), 0o600))
		_, err := NewYAMLProvider(path).Load()
		assert.Error(t, err)
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("Should load variables without overriding existing ones", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("API_BASE_URL=https://env.example.com\nSOURCE_KIND=http\n"), 0o600))
		t.Setenv("SOURCE_KIND", "mock")
		t.Setenv("API_BASE_URL", "")
		require.NoError(t, os.Unsetenv("API_BASE_URL"))

		loaded, err := LoadEnvFile(path)
		require.NoError(t, err)
		assert.Equal(t, path, loaded)
		assert.Equal(t, "https://env.example.com", os.Getenv("API_BASE_URL"))
		assert.Equal(t, "mock", os.Getenv("SOURCE_KIND"))
	})
	t.Run("Should ignore a missing file", func(t *testing.T) {
		loaded, err := LoadEnvFile(filepath.Join(t.TempDir(), ".env"))
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})
	t.Run("Should reject a directory", func(t *testing.T) {
		_, err := LoadEnvFile(t.TempDir())
		assert.Error(t, err)
	})
}

func TestEnvMappings(t *testing.T) {
	t.Run("Should expose the API base URL variable", func(t *testing.T) {
		assert.Equal(t, "API_BASE_URL", GetEnvVarForConfigPath("source.base_url"))
		assert.Equal(t, "table.page_sizes", GenerateEnvToConfigMap()["TABLE_PAGE_SIZES"])
		assert.Empty(t, GetEnvVarForConfigPath("table.missing"))
	})
}

func TestFromContext(t *testing.T) {
	t.Run("Should return the attached config", func(t *testing.T) {
		cfg := Default()
		cfg.Table.PageSize = 50
		ctx := ContextWithConfig(context.Background(), cfg)
		assert.Same(t, cfg, FromContext(ctx))
	})
	t.Run("Should fall back to defaults", func(t *testing.T) {
		assert.Equal(t, 10, FromContext(context.Background()).Table.PageSize)
	})
}
