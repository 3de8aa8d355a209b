package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	data       map[string]any
	sourceType SourceType
	err        error
}

func (m *mockSource) Load() (map[string]any, error) {
	return m.data, m.err
}

func (m *mockSource) Type() SourceType {
	return m.sourceType
}

func TestLoader_Load(t *testing.T) {
	t.Run("Should load default configuration when no sources provided", func(t *testing.T) {
		// Arrange
		loader := NewService()

		// Act
		cfg, err := loader.Load(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "mock", cfg.Source.Kind)
		assert.Equal(t, 106, cfg.Source.MockCount)
		assert.Equal(t, 30*time.Second, cfg.Source.Timeout)
		assert.Equal(t, 10, cfg.Table.PageSize)
		assert.Equal(t, []int{10, 25, 50, 100}, cfg.Table.PageSizes)
		assert.Equal(t, "paginated", cfg.Table.ViewMode)
		assert.Equal(t, "auto", cfg.CLI.Format)
		assert.Equal(t, SourceDefault, loader.GetSource("table.page_size"))
	})

	t.Run("Should apply sources in precedence order", func(t *testing.T) {
		// Arrange
		loader := NewService()
		yamlSource := &mockSource{
			data: map[string]any{
				"table": map[string]any{"page_size": 25, "view_mode": "virtualized"},
			},
			sourceType: SourceYAML,
		}
		cliSource := &mockSource{
			data:       map[string]any{"table": map[string]any{"page_size": 50}},
			sourceType: SourceCLI,
		}

		// Act
		cfg, err := loader.Load(context.Background(), yamlSource, cliSource)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 50, cfg.Table.PageSize)
		assert.Equal(t, "virtualized", cfg.Table.ViewMode)
		assert.Equal(t, SourceCLI, loader.GetSource("table.page_size"))
		assert.Equal(t, SourceYAML, loader.GetSource("table.view_mode"))
	})

	t.Run("Should read mapped environment variables", func(t *testing.T) {
		// Arrange
		t.Setenv("API_BASE_URL", "https://api.example.com")
		t.Setenv("SOURCE_KIND", "http")
		t.Setenv("SOURCE_TIMEOUT", "5s")
		t.Setenv("TABLE_PAGE_SIZES", "5,15")
		loader := NewService()

		// Act
		cfg, err := loader.Load(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "http", cfg.Source.Kind)
		assert.Equal(t, "https://api.example.com", cfg.Source.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
		assert.Equal(t, []int{5, 15}, cfg.Table.PageSizes)
		assert.Equal(t, SourceEnv, loader.GetSource("source.base_url"))
	})

	t.Run("Should split a comma list into integer page sizes", func(t *testing.T) {
		// Arrange
		t.Setenv("TABLE_PAGE_SIZES", "20,40,80")
		t.Setenv("TABLE_PAGE_SIZE", "40")
		loader := NewService()

		// Act
		cfg, err := loader.Load(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []int{20, 40, 80}, cfg.Table.PageSizes)
		assert.Equal(t, 40, cfg.Table.PageSize)
		assert.Equal(t, SourceEnv, loader.GetSource("table.page_sizes"))
	})

	t.Run("Should let CLI flags override the environment", func(t *testing.T) {
		// Arrange
		t.Setenv("TABLE_PAGE_SIZE", "25")
		loader := NewService()

		// Act
		cfg, err := loader.Load(context.Background(), NewCLIProvider(map[string]any{"page-size": 100}))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.Table.PageSize)
	})

	t.Run("Should merge a YAML file", func(t *testing.T) {
		// Arrange
		path := filepath.Join(t.TempDir(), "usertable.yaml")
		content := "source:\n  kind: sqlite\n  sqlite_path: users.db\ntable:\n  page_sizes: [5, 10]\n  fold_case_sort: true\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		loader := NewService()

		// Act
		cfg, err := loader.Load(context.Background(), NewYAMLProvider(path))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Source.Kind)
		assert.Equal(t, "users.db", cfg.Source.SQLitePath)
		assert.Equal(t, []int{5, 10}, cfg.Table.PageSizes)
		assert.True(t, cfg.Table.FoldCaseSort)
		assert.Equal(t, "users", cfg.Source.SQLiteTable)
	})

	t.Run("Should surface source errors", func(t *testing.T) {
		loader := NewService()
		_, err := loader.Load(context.Background(), &mockSource{sourceType: SourceYAML, err: assert.AnError})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestLoader_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown source kind", func(c *Config) { c.Source.Kind = "ftp" }},
		{"zero page size", func(c *Config) { c.Table.PageSize = 0 }},
		{"empty page sizes", func(c *Config) { c.Table.PageSizes = nil }},
		{"negative page size option", func(c *Config) { c.Table.PageSizes = []int{10, -1} }},
		{"unknown view mode", func(c *Config) { c.Table.ViewMode = "grid" }},
		{"zero timeout", func(c *Config) { c.Source.Timeout = 0 }},
		{"unsafe table name", func(c *Config) { c.Source.SQLiteTable = "users; drop" }},
		{"http without base url", func(c *Config) { c.Source.Kind = "http" }},
		{"sqlite without path", func(c *Config) { c.Source.Kind = "sqlite" }},
		{"unknown format", func(c *Config) { c.CLI.Format = "xml" }},
		{"unknown theme default", func(c *Config) { c.Theme.Default = "blue" }},
	}
	for _, tc := range cases {
		t.Run("Should reject "+tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, NewService().Validate(cfg))
		})
	}
	t.Run("Should accept the defaults", func(t *testing.T) {
		assert.NoError(t, NewService().Validate(Default()))
	})
	t.Run("Should reject nil", func(t *testing.T) {
		assert.Error(t, NewService().Validate(nil))
	})
}
