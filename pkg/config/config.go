package config

import (
	"context"
	"time"

	"github.com/compozy/usertable/pkg/config/definition"
)

// Config represents the complete configuration for the users browser.
type Config struct {
	Runtime RuntimeConfig `koanf:"runtime" validate:"required"`
	Source  SourceConfig  `koanf:"source"  validate:"required"`
	Table   TableConfig   `koanf:"table"   validate:"required"`
	Theme   ThemeConfig   `koanf:"theme"`
	CLI     CLIConfig     `koanf:"cli"`
}

// RuntimeConfig contains process-wide settings.
type RuntimeConfig struct {
	Environment string `koanf:"environment" env:"RUNTIME_ENVIRONMENT"`
	LogLevel    string `koanf:"log_level"   env:"RUNTIME_LOG_LEVEL"   validate:"oneof=debug info warn error disabled"`
	LogJSON     bool   `koanf:"log_json"    env:"RUNTIME_LOG_JSON"`
	LogSource   bool   `koanf:"log_source"  env:"RUNTIME_LOG_SOURCE"`
}

// SourceConfig selects and configures the record source.
type SourceConfig struct {
	Kind        string        `koanf:"kind"         env:"SOURCE_KIND"         validate:"oneof=mock http sqlite"`
	MockCount   int           `koanf:"mock_count"   env:"SOURCE_MOCK_COUNT"   validate:"min=0"`
	MockSeed    uint64        `koanf:"mock_seed"    env:"SOURCE_MOCK_SEED"`
	BaseURL     string        `koanf:"base_url"     env:"API_BASE_URL"        validate:"omitempty,url"`
	Timeout     time.Duration `koanf:"timeout"      env:"SOURCE_TIMEOUT"      validate:"gt=0"`
	SQLitePath  string        `koanf:"sqlite_path"  env:"SOURCE_SQLITE_PATH"`
	SQLiteTable string        `koanf:"sqlite_table" env:"SOURCE_SQLITE_TABLE" validate:"table_name"`
}

// TableConfig seeds the presentation controller.
type TableConfig struct {
	PageSize       int    `koanf:"page_size"       env:"TABLE_PAGE_SIZE"       validate:"min=1"`
	PageSizes      []int  `koanf:"page_sizes"      env:"TABLE_PAGE_SIZES"      validate:"page_sizes"`
	ViewMode       string `koanf:"view_mode"       env:"TABLE_VIEW_MODE"       validate:"oneof=paginated virtualized"`
	RowHeight      int    `koanf:"row_height"      env:"TABLE_ROW_HEIGHT"      validate:"min=1"`
	ViewportHeight int    `koanf:"viewport_height" env:"TABLE_VIEWPORT_HEIGHT" validate:"min=0"`
	Overscan       int    `koanf:"overscan"        env:"TABLE_OVERSCAN"        validate:"min=0"`
	FoldCaseSort   bool   `koanf:"fold_case_sort"  env:"TABLE_FOLD_CASE_SORT"`
}

// ThemeConfig locates the persisted theme preference.
type ThemeConfig struct {
	Path    string `koanf:"path"    env:"THEME_PATH"`
	Default string `koanf:"default" env:"THEME_DEFAULT" validate:"oneof=auto dark light"`
}

// CLIConfig contains command line behavior.
type CLIConfig struct {
	Format  string `koanf:"format"   env:"USERTABLE_FORMAT"   validate:"oneof=auto tui json"`
	EnvFile string `koanf:"env_file" env:"USERTABLE_ENV_FILE"`
}

// Service defines the configuration loading service.
type Service interface {
	// Load loads configuration from the specified sources with precedence order.
	Load(ctx context.Context, sources ...Source) (*Config, error)
	// Validate checks if the configuration meets all validation requirements.
	Validate(config *Config) error
	// GetSource returns the source type that provided a configuration key.
	GetSource(key string) SourceType
}

// Source is one layer of configuration data.
type Source interface {
	Load() (map[string]any, error)
	Type() SourceType
}

// SourceType identifies the type of configuration source.
type SourceType string

const (
	SourceCLI     SourceType = "cli"
	SourceYAML    SourceType = "yaml"
	SourceEnv     SourceType = "env"
	SourceDefault SourceType = "default"
)

// Metadata contains metadata about configuration sources.
type Metadata struct {
	Sources  map[string]SourceType `json:"sources"`
	LoadedAt time.Time             `json:"loaded_at"`
}

// Load loads configuration from defaults and the environment.
func Load() (*Config, error) {
	return NewService().Load(context.Background())
}

// Default returns a Config with the registry defaults.
func Default() *Config {
	registry := definition.CreateRegistry()
	return &Config{
		Runtime: RuntimeConfig{
			Environment: getString(registry, "runtime.environment"),
			LogLevel:    getString(registry, "runtime.log_level"),
			LogJSON:     getBool(registry, "runtime.log_json"),
			LogSource:   getBool(registry, "runtime.log_source"),
		},
		Source: SourceConfig{
			Kind:        getString(registry, "source.kind"),
			MockCount:   getInt(registry, "source.mock_count"),
			MockSeed:    getUint64(registry, "source.mock_seed"),
			BaseURL:     getString(registry, "source.base_url"),
			Timeout:     getDuration(registry, "source.timeout"),
			SQLitePath:  getString(registry, "source.sqlite_path"),
			SQLiteTable: getString(registry, "source.sqlite_table"),
		},
		Table: TableConfig{
			PageSize:       getInt(registry, "table.page_size"),
			PageSizes:      getInts(registry, "table.page_sizes"),
			ViewMode:       getString(registry, "table.view_mode"),
			RowHeight:      getInt(registry, "table.row_height"),
			ViewportHeight: getInt(registry, "table.viewport_height"),
			Overscan:       getInt(registry, "table.overscan"),
			FoldCaseSort:   getBool(registry, "table.fold_case_sort"),
		},
		Theme: ThemeConfig{
			Path:    getString(registry, "theme.path"),
			Default: getString(registry, "theme.default"),
		},
		CLI: CLIConfig{
			Format:  getString(registry, "cli.format"),
			EnvFile: getString(registry, "cli.env_file"),
		},
	}
}

func getString(registry *definition.Registry, path string) string {
	if s, ok := registry.GetDefault(path).(string); ok {
		return s
	}
	return ""
}

func getInt(registry *definition.Registry, path string) int {
	if i, ok := registry.GetDefault(path).(int); ok {
		return i
	}
	return 0
}

func getUint64(registry *definition.Registry, path string) uint64 {
	if i, ok := registry.GetDefault(path).(uint64); ok {
		return i
	}
	return 0
}

func getBool(registry *definition.Registry, path string) bool {
	if b, ok := registry.GetDefault(path).(bool); ok {
		return b
	}
	return false
}

func getDuration(registry *definition.Registry, path string) time.Duration {
	if d, ok := registry.GetDefault(path).(time.Duration); ok {
		return d
	}
	return 0
}

func getInts(registry *definition.Registry, path string) []int {
	if s, ok := registry.GetDefault(path).([]int); ok {
		return append([]int(nil), s...)
	}
	return nil
}
