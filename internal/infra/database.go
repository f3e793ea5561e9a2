package infra

import (
	"fmt"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and brings the
// schema up to date (see Migrate).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs AutoMigrate for every model, then the PostgreSQL-only patches.
// Tests call it on SQLite, where the patches are skipped.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := applyPreMigrationPatches(db); err != nil {
			return fmt.Errorf("pre-migration patches: %w", err)
		}
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if db.Dialector.Name() == "postgres" {
		if err := applySchemaPatches(db); err != nil {
			return fmt.Errorf("schema patches: %w", err)
		}
	}
	return nil
}

// applyPreMigrationPatches installs what the tables themselves depend on.
func applyPreMigrationPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// gist operator classes for uuid/varchar equality in the exclusion constraint
		{"btree_gist extension", `CREATE EXTENSION IF NOT EXISTS btree_gist`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("pre-patch %q: %w", p.descr, err)
		}
	}
	return nil
}

// applySchemaPatches runs idempotent DDL statements that GORM AutoMigrate cannot
// express. Each statement is guarded so re-running on a patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Two pricing windows of the same (building, type) never share a day.
		// A NULL date_fin is an unbounded upper end for daterange().
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'excl_periodes_prix_chevauchement') THEN
		    ALTER TABLE periodes_prix
		      ADD CONSTRAINT excl_periodes_prix_chevauchement
		      EXCLUDE USING gist (
		        batiment_id WITH =,
		        type_prix   WITH =,
		        daterange(date_debut, date_fin, '[]') WITH &&
		      );
		  END IF;
		END $$`,
		// At most one open-ended window per owner, whatever its start date.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_periodes_prix_ouverte
		    ON periodes_prix (batiment_id, type_prix)
		    WHERE date_fin IS NULL`,
		// Row lookups by (convention, version) when rebuilding a snapshot.
		`CREATE INDEX IF NOT EXISTS idx_convention_versions_derniere
		    ON convention_versions (convention_id, version DESC)`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
