package repository

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// dbFrom returns the transaction stashed in ctx by GormTxManager, or the
// repository's own handle when no transaction is running.
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

// GormTxManager runs a function inside one database transaction. The
// transaction handle rides in the context, so every repository call made
// within fn shares it.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new transaction manager
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// Do executes fn inside a transaction, rolling back when it errors.
func (m *GormTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
