package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/throughput/internal/db"
)

// sqliteRepo is the base shared by the SQLite repositories. Statements are
// built with squirrel and run through the DBTX so they join the caller's
// transaction.
type sqliteRepo struct {
	db db.DBTX
	sq sq.StatementBuilderType
}

func newSQLiteRepo(q db.DBTX) sqliteRepo {
	return sqliteRepo{db: q, sq: sq.StatementBuilder}
}

// insert runs b and returns the id SQLite assigned to the new row.
func (r sqliteRepo) insert(ctx context.Context, b sq.InsertBuilder) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building insert: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	return id, nil
}

func (r sqliteRepo) query(ctx context.Context, b sq.SelectBuilder) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}
	return r.db.QueryContext(ctx, query, args...)
}

func (r sqliteRepo) queryRow(ctx context.Context, b sq.SelectBuilder) (*sql.Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}
	return r.db.QueryRowContext(ctx, query, args...), nil
}

// nullableString converts an optional text value for SQLite storage.
func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
