// Package dbx содержит общие для репозиториев абстракции над database/sql.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX: общее подмножество методов *sql.DB и *sql.Tx,
// которое используют запросы репозитория.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx выполняет fn внутри транзакции. При успехе транзакция фиксируется,
// при ошибке или панике откатывается. Паника пробрасывается дальше.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	const op = "dbx.WithTx"

	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("%s: %w", op, cerr)
		}
	}()

	err = fn(ctx, tx)
	return err
}
