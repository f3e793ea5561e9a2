package repository

import (
	"context"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BatimentRepository interface {
	Create(ctx context.Context, b *model.Batiment) error
	List(ctx context.Context, companyID uuid.UUID) ([]model.Batiment, error)
	FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.Batiment, error)
	CreateUG(ctx context.Context, u *model.UG) error
	ListUGs(ctx context.Context, companyID, batimentID uuid.UUID) ([]model.UG, error)
	// FindUGs returns the requested units that belong to the company; missing
	// ids are simply absent from the result.
	FindUGs(ctx context.Context, tx *gorm.DB, companyID uuid.UUID, ids []uuid.UUID) ([]model.UG, error)
}

type batimentRepo struct{ db *gorm.DB }

func NewBatimentRepository(db *gorm.DB) BatimentRepository { return &batimentRepo{db: db} }

func (r *batimentRepo) Create(ctx context.Context, b *model.Batiment) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *batimentRepo) List(ctx context.Context, companyID uuid.UUID) ([]model.Batiment, error) {
	var out []model.Batiment
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Order("nom ASC").Find(&out).Error
	return out, err
}

func (r *batimentRepo) FindByID(ctx context.Context, companyID, id uuid.UUID) (*model.Batiment, error) {
	var b model.Batiment
	err := r.db.WithContext(ctx).Where("company_id = ? AND id = ?", companyID, id).First(&b).Error
	return &b, err
}

func (r *batimentRepo) CreateUG(ctx context.Context, u *model.UG) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *batimentRepo) ListUGs(ctx context.Context, companyID, batimentID uuid.UUID) ([]model.UG, error) {
	var out []model.UG
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND batiment_id = ?", companyID, batimentID).
		Order("nom ASC").
		Find(&out).Error
	return out, err
}

func (r *batimentRepo) FindUGs(ctx context.Context, tx *gorm.DB, companyID uuid.UUID, ids []uuid.UUID) ([]model.UG, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []model.UG
	err := conn(ctx, r.db, tx).Where("company_id = ? AND id IN ?", companyID, ids).Find(&out).Error
	return out, err
}
