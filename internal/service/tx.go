package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/daterange"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TxOptions configures every mutating transaction of the services.
type TxOptions struct {
	// Serializable requests SERIALIZABLE isolation on PostgreSQL, so that two
	// concurrent writers validating against the same rows cannot both commit.
	Serializable bool
	MaxRetries   int
}

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
// Serialization failures and unique violations are retried: the next attempt
// re-reads the committed state and turns the conflict into a domain error.
func runTx(ctx context.Context, db *gorm.DB, opts TxOptions, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}

	var txOpts []*sql.TxOptions
	if opts.Serializable && db.Dialector.Name() == "postgres" {
		txOpts = append(txOpts, &sql.TxOptions{Isolation: sql.LevelSerializable})
	}

	attempts := opts.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		err = db.WithContext(ctx).Transaction(fn, txOpts...)
		if err == nil || !retryable(err) || ctx.Err() != nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i).Msg("transaction conflict, retrying")
	}
	return translatePgError(err)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func retryable(err error) bool {
	switch pgCode(err) {
	case pgSerializationFailure, pgDeadlockDetected, pgUniqueViolation:
		return true
	}
	return false
}

// translatePgError maps constraint violations that survived the retries.
func translatePgError(err error) error {
	switch pgCode(err) {
	case pgExclusionViolation:
		return daterange.ErrOverlapDetected
	case pgSerializationFailure, pgDeadlockDetected, pgUniqueViolation:
		return ErrConflit
	}
	return err
}
