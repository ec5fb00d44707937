package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TxManager runs a function inside a single database transaction. Every
// operation that touches more than one record (edge + counters, comment +
// counters, like row + counter) goes through here so the effects are
// all-or-nothing. Services depend on this interface rather than *sqlx.DB
// directly, which lets unit tests substitute a fake that runs the closure
// without a database.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type txManager struct {
	db *sqlx.DB
}

// NewTxManager creates a TxManager backed by db.
func NewTxManager(db *sqlx.DB) TxManager {
	return &txManager{db: db}
}

func (m *txManager) RunInTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
