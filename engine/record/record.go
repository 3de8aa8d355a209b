package record

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one user row as handed over by a Source. Records are treated as
// immutable once fetched.
type Record struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Balance      decimal.Decimal `json:"balance"`
	RegisteredAt time.Time       `json:"registered_at"`
	Active       bool            `json:"active"`
}

// Source supplies the full, unsorted collection of records. Implementations
// normalize payload fields before returning.
type Source interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context) ([]Record, error)

func (f SourceFunc) Fetch(ctx context.Context) ([]Record, error) {
	return f(ctx)
}

// IDs returns the identifiers of records in order.
func IDs(records []Record) []string {
	ids := make([]string, len(records))
	for i := range records {
		ids[i] = records[i].ID
	}
	return ids
}
