package db

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// DBTX is what repositories run their statements against. Both *sql.DB and
// *sql.Tx satisfy it, so a repository built inside WithinTx joins that
// transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// TxFunc is the body of a transaction.
type TxFunc func(ctx context.Context, tx DBTX) error

// UnitOfWork runs fn in one transaction: committed when fn returns nil,
// rolled back when it returns an error or panics.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// SQLiteUnitOfWork implements UnitOfWork over database/sql.
type SQLiteUnitOfWork struct {
	db  *sql.DB
	log *zap.Logger
}

// NewSQLiteUnitOfWork creates a UnitOfWork backed by db. A nil logger
// disables rollback logging.
func NewSQLiteUnitOfWork(db *sql.DB, log *zap.Logger) *SQLiteUnitOfWork {
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLiteUnitOfWork{db: db, log: log}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn TxFunc) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			u.log.Error("transaction rolled back after panic", zap.Any("panic", p))
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		u.log.Debug("transaction rolled back", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
