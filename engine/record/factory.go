package record

import (
	"fmt"

	"github.com/compozy/usertable/pkg/config"
)

const (
	KindMock   = "mock"
	KindHTTP   = "http"
	KindSQLite = "sqlite"
)

// NewSource builds the Source selected by cfg.Kind.
func NewSource(cfg *config.SourceConfig) (Source, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source configuration is required")
	}
	switch cfg.Kind {
	case KindMock, "":
		return NewMockSource(cfg.MockCount, WithMockSeed(cfg.MockSeed)), nil
	case KindHTTP:
		return NewHTTPSource(cfg.BaseURL, cfg.Timeout)
	case KindSQLite:
		return NewSQLiteSource(cfg.SQLitePath, cfg.SQLiteTable)
	default:
		return nil, fmt.Errorf("unsupported source kind: %s", cfg.Kind)
	}
}
