package database

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

type txKey struct{}

// WithTx binds a request's transaction to ctx.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func TxFrom(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok
}

type rollbackKey struct{}

// RollbackHooks undo side effects outside the database, such as stored
// objects, when the request's transaction does not commit.
type RollbackHooks struct {
	mu  sync.Mutex
	fns []func()
}

func WithRollbackHooks(ctx context.Context) (context.Context, *RollbackHooks) {
	h := &RollbackHooks{}
	return context.WithValue(ctx, rollbackKey{}, h), h
}

// OnRollback registers fn with the hooks bound to ctx. It reports false when
// ctx carries none; the caller then cleans up on its own.
func OnRollback(ctx context.Context, fn func()) bool {
	h, ok := ctx.Value(rollbackKey{}).(*RollbackHooks)
	if !ok {
		return false
	}
	h.mu.Lock()
	h.fns = append(h.fns, fn)
	h.mu.Unlock()
	return true
}

// Run calls the registered hooks, latest first, at most once.
func (h *RollbackHooks) Run() {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// Conn returns the transaction bound to ctx, or db when there is none.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := TxFrom(ctx); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// UniqueViolation reports the violated constraint when err is a postgres
// unique violation, whether raised by a statement or by a deferred check at commit.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
