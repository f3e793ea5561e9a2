package repository

import (
	"context"

	"gorm.io/gorm"
)

// conn picks the transaction when one is running, the pool otherwise.
func conn(ctx context.Context, db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
