package record

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	sq "github.com/Masterminds/squirrel"
	"github.com/compozy/usertable/pkg/logger"
	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const DefaultSQLiteTable = "users"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type userRow struct {
	ID         string              `db:"id"`
	Name       sql.NullString      `db:"name"`
	Email      sql.NullString      `db:"email"`
	Balance    decimal.NullDecimal `db:"balance"`
	RegisterAt sql.NullString      `db:"register_at"`
	Active     sql.NullBool        `db:"active"`
}

// SQLiteSource reads every row of a users table, in rowid order.
type SQLiteSource struct {
	path  string
	table string
}

func NewSQLiteSource(path, table string) (*SQLiteSource, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite source requires a database path")
	}
	if table == "" {
		table = DefaultSQLiteTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid sqlite table name %q", table)
	}
	return &SQLiteSource{path: path, table: table}, nil
}

func (s *SQLiteSource) query() (string, []any, error) {
	return sq.Select("id", "name", "email", "balance", "register_at", "active").
		From(s.table).
		OrderBy("rowid").
		ToSql()
}

func (s *SQLiteSource) Fetch(ctx context.Context) ([]Record, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, newFetchError("sqlite", err)
	}
	defer db.Close()
	query, args, err := s.query()
	if err != nil {
		return nil, newFetchError("sqlite", fmt.Errorf("failed to build query: %w", err))
	}
	var rows []userRow
	if err := sqlscan.Select(ctx, db, &rows, query, args...); err != nil {
		return nil, newFetchError("sqlite", err)
	}
	records := make([]Record, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].toRecord()
		if err != nil {
			return nil, newFetchError("sqlite", fmt.Errorf("row %q: %w", rows[i].ID, err))
		}
		records = append(records, rec)
	}
	logger.FromContext(ctx).Debug("read users from sqlite", "count", len(records), "table", s.table)
	return records, nil
}

func (r *userRow) toRecord() (Record, error) {
	registeredAt, err := ParseTimestamp(r.RegisterAt.String)
	if err != nil {
		return Record{}, err
	}
	balance := decimal.Zero
	if r.Balance.Valid {
		balance = r.Balance.Decimal
	}
	return Record{
		ID:           r.ID,
		Name:         r.Name.String,
		Email:        r.Email.String,
		Balance:      balance,
		RegisteredAt: registeredAt,
		Active:       r.Active.Valid && r.Active.Bool,
	}, nil
}
