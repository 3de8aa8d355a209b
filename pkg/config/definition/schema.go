package definition

import (
	"reflect"
	"time"
)

var (
	stringType   = reflect.TypeOf("")
	intType      = reflect.TypeOf(0)
	boolType     = reflect.TypeOf(false)
	uint64Type   = reflect.TypeOf(uint64(0))
	durationType = reflect.TypeOf(time.Duration(0))
	intsType     = reflect.TypeOf([]int{})
)

// CreateRegistry creates and populates the configuration registry. Every
// default lives here.
func CreateRegistry() *Registry {
	registry := NewRegistry()
	registerRuntimeFields(registry)
	registerSourceFields(registry)
	registerTableFields(registry)
	registerThemeFields(registry)
	registerCLIFields(registry)
	return registry
}

func registerRuntimeFields(registry *Registry) {
	registry.Register(&FieldDef{
		Path:    "runtime.environment",
		Default: "development",
		EnvVar:  "RUNTIME_ENVIRONMENT",
		Type:    stringType,
		Help:    "Runtime environment",
	})
	registry.Register(&FieldDef{
		Path:    "runtime.log_level",
		Default: "info",
		CLIFlag: "log-level",
		EnvVar:  "RUNTIME_LOG_LEVEL",
		Type:    stringType,
		Help:    "Log level (debug, info, warn, error, disabled)",
	})
	registry.Register(&FieldDef{
		Path:    "runtime.log_json",
		Default: false,
		CLIFlag: "log-json",
		EnvVar:  "RUNTIME_LOG_JSON",
		Type:    boolType,
		Help:    "Emit logs as JSON",
	})
	registry.Register(&FieldDef{
		Path:    "runtime.log_source",
		Default: false,
		CLIFlag: "log-source",
		EnvVar:  "RUNTIME_LOG_SOURCE",
		Type:    boolType,
		Help:    "Include caller location in logs",
	})
}

func registerSourceFields(registry *Registry) {
	registry.Register(&FieldDef{
		Path:    "source.kind",
		Default: "mock",
		CLIFlag: "source",
		EnvVar:  "SOURCE_KIND",
		Type:    stringType,
		Help:    "Record source (mock, http, sqlite)",
	})
	registry.Register(&FieldDef{
		Path:    "source.mock_count",
		Default: 106,
		CLIFlag: "mock-count",
		EnvVar:  "SOURCE_MOCK_COUNT",
		Type:    intType,
		Help:    "Number of generated users for the mock source",
	})
	registry.Register(&FieldDef{
		Path:    "source.mock_seed",
		Default: uint64(1),
		CLIFlag: "mock-seed",
		EnvVar:  "SOURCE_MOCK_SEED",
		Type:    uint64Type,
		Help:    "Seed for the mock source",
	})
	registry.Register(&FieldDef{
		Path:    "source.base_url",
		Default: "",
		CLIFlag: "base-url",
		EnvVar:  "API_BASE_URL",
		Type:    stringType,
		Help:    "Base URL of the users API for the http source",
	})
	registry.Register(&FieldDef{
		Path:    "source.timeout",
		Default: 30 * time.Second,
		CLIFlag: "timeout",
		EnvVar:  "SOURCE_TIMEOUT",
		Type:    durationType,
		Help:    "Fetch timeout",
	})
	registry.Register(&FieldDef{
		Path:    "source.sqlite_path",
		Default: "",
		CLIFlag: "db",
		EnvVar:  "SOURCE_SQLITE_PATH",
		Type:    stringType,
		Help:    "SQLite database file for the sqlite source",
	})
	registry.Register(&FieldDef{
		Path:    "source.sqlite_table",
		Default: "users",
		CLIFlag: "db-table",
		EnvVar:  "SOURCE_SQLITE_TABLE",
		Type:    stringType,
		Help:    "Table read by the sqlite source",
	})
}

func registerTableFields(registry *Registry) {
	registry.Register(&FieldDef{
		Path:    "table.page_size",
		Default: 10,
		CLIFlag: "page-size",
		EnvVar:  "TABLE_PAGE_SIZE",
		Type:    intType,
		Help:    "Rows per page",
	})
	registry.Register(&FieldDef{
		Path:    "table.page_sizes",
		Default: []int{10, 25, 50, 100},
		EnvVar:  "TABLE_PAGE_SIZES",
		Type:    intsType,
		Help:    "Page size options, comma separated",
	})
	registry.Register(&FieldDef{
		Path:    "table.view_mode",
		Default: "paginated",
		CLIFlag: "view",
		EnvVar:  "TABLE_VIEW_MODE",
		Type:    stringType,
		Help:    "Initial view mode (paginated, virtualized)",
	})
	registry.Register(&FieldDef{
		Path:    "table.row_height",
		Default: 1,
		EnvVar:  "TABLE_ROW_HEIGHT",
		Type:    intType,
		Help:    "Row height in the virtualized view",
	})
	registry.Register(&FieldDef{
		Path:    "table.viewport_height",
		Default: 20,
		CLIFlag: "viewport",
		EnvVar:  "TABLE_VIEWPORT_HEIGHT",
		Type:    intType,
		Help:    "Viewport height in the virtualized view",
	})
	registry.Register(&FieldDef{
		Path:    "table.overscan",
		Default: 2,
		EnvVar:  "TABLE_OVERSCAN",
		Type:    intType,
		Help:    "Rows rendered beyond each edge of the viewport",
	})
	registry.Register(&FieldDef{
		Path:    "table.fold_case_sort",
		Default: false,
		EnvVar:  "TABLE_FOLD_CASE_SORT",
		Type:    boolType,
		Help:    "Sort names and emails case-insensitively",
	})
}

func registerThemeFields(registry *Registry) {
	registry.Register(&FieldDef{
		Path:    "theme.path",
		Default: "",
		EnvVar:  "THEME_PATH",
		Type:    stringType,
		Help:    "Theme preference file (defaults to the user config dir)",
	})
	registry.Register(&FieldDef{
		Path:    "theme.default",
		Default: "auto",
		EnvVar:  "THEME_DEFAULT",
		Type:    stringType,
		Help:    "Theme used when no preference is stored (auto, dark, light)",
	})
}

func registerCLIFields(registry *Registry) {
	registry.Register(&FieldDef{
		Path:    "cli.format",
		Default: "auto",
		CLIFlag: "format",
		EnvVar:  "USERTABLE_FORMAT",
		Type:    stringType,
		Help:    "Output format (auto, tui, json)",
	})
	registry.Register(&FieldDef{
		Path:    "cli.env_file",
		Default: ".env",
		CLIFlag: "env-file",
		EnvVar:  "USERTABLE_ENV_FILE",
		Type:    stringType,
		Help:    "Environment file loaded before configuration",
	})
}
