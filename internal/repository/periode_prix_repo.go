package repository

import (
	"context"
	"errors"
	"time"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnerKey identifies the pricing windows that must not overlap each other.
type OwnerKey struct {
	CompanyID  uuid.UUID
	BatimentID uuid.UUID
	TypePrix   model.TypePrix
}

type PeriodePrixRepository interface {
	DB() *gorm.DB
	// ListByOwner returns every window of the owner, lines not loaded.
	ListByOwner(ctx context.Context, tx *gorm.DB, key OwnerKey) ([]model.PeriodePrix, error)
	FindByID(ctx context.Context, tx *gorm.DB, key OwnerKey, id uuid.UUID) (*model.PeriodePrix, error)
	Create(ctx context.Context, tx *gorm.DB, p *model.PeriodePrix) error
	UpdateRange(ctx context.Context, tx *gorm.DB, p *model.PeriodePrix) error
	// UpsertLigne updates the line of (periode, ug) or inserts it.
	UpsertLigne(ctx context.Context, tx *gorm.DB, l *model.PrixUG) error
	ListActive(ctx context.Context, key OwnerKey, asOf time.Time) ([]model.PeriodePrix, error)
	// ListHistory pages windows newest first; the bool reports whether more remain.
	ListHistory(ctx context.Context, key OwnerKey, offset, limit int) ([]model.PeriodePrix, bool, error)
}

type periodePrixRepo struct{ db *gorm.DB }

func NewPeriodePrixRepository(db *gorm.DB) PeriodePrixRepository { return &periodePrixRepo{db: db} }

func (r *periodePrixRepo) DB() *gorm.DB { return r.db }

func ownerScope(key OwnerKey) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("company_id = ? AND batiment_id = ? AND type_prix = ?", key.CompanyID, key.BatimentID, key.TypePrix)
	}
}

func orderLignes(q *gorm.DB) *gorm.DB { return q.Order("ug_id ASC") }

func (r *periodePrixRepo) ListByOwner(ctx context.Context, tx *gorm.DB, key OwnerKey) ([]model.PeriodePrix, error) {
	var out []model.PeriodePrix
	err := conn(ctx, r.db, tx).Scopes(ownerScope(key)).Order("date_debut ASC").Find(&out).Error
	return out, err
}

func (r *periodePrixRepo) FindByID(ctx context.Context, tx *gorm.DB, key OwnerKey, id uuid.UUID) (*model.PeriodePrix, error) {
	var p model.PeriodePrix
	err := conn(ctx, r.db, tx).
		Scopes(ownerScope(key)).
		Preload("Lignes", orderLignes).
		Where("id = ?", id).
		First(&p).Error
	return &p, err
}

func (r *periodePrixRepo) Create(ctx context.Context, tx *gorm.DB, p *model.PeriodePrix) error {
	return conn(ctx, r.db, tx).Create(p).Error
}

func (r *periodePrixRepo) UpdateRange(ctx context.Context, tx *gorm.DB, p *model.PeriodePrix) error {
	return conn(ctx, r.db, tx).
		Model(&model.PeriodePrix{ID: p.ID}).
		Select("date_debut", "date_fin", "updated_at").
		Updates(map[string]interface{}{
			"date_debut": p.DateDebut,
			"date_fin":   p.DateFin,
			"updated_at": time.Now(),
		}).Error
}

func (r *periodePrixRepo) UpsertLigne(ctx context.Context, tx *gorm.DB, l *model.PrixUG) error {
	db := conn(ctx, r.db, tx)
	var existing model.PrixUG
	err := db.Where("periode_id = ? AND ug_id = ?", l.PeriodeID, l.UGID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(l).Error
	case err != nil:
		return err
	}
	l.ID = existing.ID
	return db.Model(&existing).
		Select("prix_m2_an1", "prix_m2_an2", "prix_m2_an3", "prix_m2", "charges_m2", "updated_at").
		Updates(l).Error
}

func (r *periodePrixRepo) ListActive(ctx context.Context, key OwnerKey, asOf time.Time) ([]model.PeriodePrix, error) {
	d := model.Date(asOf)
	var out []model.PeriodePrix
	err := r.db.WithContext(ctx).
		Scopes(ownerScope(key)).
		Preload("Lignes", orderLignes).
		Where("date_debut <= ? AND (date_fin IS NULL OR date_fin >= ?)", d, d).
		Order("date_debut DESC").
		Find(&out).Error
	return out, err
}

func (r *periodePrixRepo) ListHistory(ctx context.Context, key OwnerKey, offset, limit int) ([]model.PeriodePrix, bool, error) {
	var out []model.PeriodePrix
	err := r.db.WithContext(ctx).
		Scopes(ownerScope(key)).
		Preload("Lignes", orderLignes).
		Order("date_debut DESC").
		Offset(offset).
		Limit(limit + 1).
		Find(&out).Error
	if err != nil {
		return nil, false, err
	}
	if len(out) > limit {
		return out[:limit], true, nil
	}
	return out, false, nil
}
