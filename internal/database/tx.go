package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Querier is the subset of *sql.DB and *sql.Tx the repositories use.
// Passing a transaction makes a repository call part of that atomic unit.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// WithTx runs fn inside a transaction with all-or-nothing visibility.
// The transaction is rolled back if fn returns an error or panics.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Serializable is the isolation level used for settlement creation:
// concurrent settlements against the same pair must serialize so the
// second one validates against the first one's effect.
var Serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}
