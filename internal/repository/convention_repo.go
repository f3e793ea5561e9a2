package repository

import (
	"context"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConventionRepository interface {
	DB() *gorm.DB
	Create(ctx context.Context, tx *gorm.DB, c *model.Convention) error
	FindByID(ctx context.Context, tx *gorm.DB, companyID, id uuid.UUID) (*model.Convention, error)
	NumeroExists(ctx context.Context, tx *gorm.DB, companyID uuid.UUID, numero string) (bool, error)

	LatestVersion(ctx context.Context, tx *gorm.DB, conventionID uuid.UUID) (*model.ConventionVersion, error)
	FindVersion(ctx context.Context, tx *gorm.DB, conventionID uuid.UUID, version int) (*model.ConventionVersion, error)
	ListVersions(ctx context.Context, conventionID uuid.UUID) ([]model.ConventionVersion, error)
	// CreateVersion writes a header and its rows; rows must already carry the
	// header's (convention_id, version).
	CreateVersion(ctx context.Context, tx *gorm.DB, v *model.ConventionVersion, ugs []model.ConventionUG, equipements []model.ConventionEquipement) error

	ListUGs(ctx context.Context, tx *gorm.DB, conventionID uuid.UUID, version int) ([]model.ConventionUG, error)
	ListEquipements(ctx context.Context, tx *gorm.DB, conventionID uuid.UUID, version int) ([]model.ConventionEquipement, error)
	// ListOtherAssignments returns the unit rows of the latest version of every
	// other convention of the company that references one of ugIDs.
	ListOtherAssignments(ctx context.Context, tx *gorm.DB, companyID, exclude uuid.UUID, ugIDs []uuid.UUID) ([]model.ConventionUG, error)
}

type conventionRepo struct{ db *gorm.DB }

func NewConventionRepository(db *gorm.DB) ConventionRepository { return &conventionRepo{db: db} }

func (r *conventionRepo) DB() *gorm.DB { return r.db }

func (r *conventionRepo) Create(ctx context.Context, tx *gorm.DB, c *model.Convention) error {
	return conn(ctx, r.db, tx).Create(c).Error
}

func (r *conventionRepo) FindByID(ctx context.Context, tx *gorm.DB, companyID, id uuid.UUID) (*model.Convention, error) {
	var c model.Convention
	err := conn(ctx, r.db, tx).Where("company_id = ? AND id = ?", companyID, id).First(&c).Error
	return &c, err
}

func (r *conventionRepo) NumeroExists(ctx context.Context, tx *gorm.DB, companyID uuid.UUID, numero string) (bool, error) {
	var n int64
	err := conn(ctx, r.db, tx).Model(&model.Convention{}).
		Where("company_id = ? AND numero = ?", companyID, numero).
		Count(&n).Error
	return n > 0, err
}

func (r *conventionRepo) LatestVersion(ctx context.Context, tx *gorm.DB, conventionID uuid.UUID) (*model.ConventionVersion, error) {
	var v model.ConventionVersion
	err := conn(ctx, r.db, tx).
		Where("convention_id = ?", conventionID).
		Order("version DESC").
		First(&v).Error
	return &v, err
}

func (r *conventionRepo) FindVersion(ctx context.Context, tx *gorm.DB, conventionID uuid.UUID, version int) (*model.ConventionVersion, error) {
	var v model.ConventionVersion
	err := conn(ctx, r.db, tx).
		Where("convention_id = ? AND version = ?", conventionID, version).
		First(&v).Error
	return &v, err
}

func (r *conventionRepo) ListVersions(ctx context.Context, conventionID uuid.UUID) ([]model.ConventionVersion, error) {
	var out []model.ConventionVersion
	err := r.db.WithContext(ctx).
		Where("convention_id = ?", conventionID).
		Order("version ASC").
		Find(&out).Error
	return out, err
}

func (r *conventionRepo) CreateVersion(ctx context.Context, tx *gorm.DB, v *model.ConventionVersion, ugs []model.ConventionUG, equipements []model.ConventionEquipement) error {
	db := conn(ctx, r.db, tx)
	if err := db.Create(v).Error; err != nil {
		return err
	}
	if len(ugs) > 0 {
		if err := db.Create(&ugs).Error; err != nil {
			return err
		}
	}
	if len(equipements) > 0 {
		if err := db.Create(&equipements).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *conventionRepo) ListUGs(ctx context.Context, tx *gorm.DB, conventionID uuid.UUID, version int) ([]model.ConventionUG, error) {
	var out []model.ConventionUG
	err := conn(ctx, r.db, tx).
		Where("convention_id = ? AND version = ?", conventionID, version).
		Order("date_debut ASC, ug_id ASC").
		Find(&out).Error
	return out, err
}

func (r *conventionRepo) ListEquipements(ctx context.Context, tx *gorm.DB, conventionID uuid.UUID, version int) ([]model.ConventionEquipement, error) {
	var out []model.ConventionEquipement
	err := conn(ctx, r.db, tx).
		Where("convention_id = ? AND version = ?", conventionID, version).
		Order("date_debut ASC, libelle ASC").
		Find(&out).Error
	return out, err
}

func (r *conventionRepo) ListOtherAssignments(ctx context.Context, tx *gorm.DB, companyID, exclude uuid.UUID, ugIDs []uuid.UUID) ([]model.ConventionUG, error) {
	if len(ugIDs) == 0 {
		return nil, nil
	}
	var out []model.ConventionUG
	err := conn(ctx, r.db, tx).
		Table("convention_ugs AS cu").
		Select("cu.*").
		Joins("JOIN conventions c ON c.id = cu.convention_id").
		Where("c.company_id = ? AND cu.convention_id <> ? AND cu.ug_id IN ?", companyID, exclude, ugIDs).
		Where("cu.version = (SELECT MAX(v.version) FROM convention_versions v WHERE v.convention_id = cu.convention_id)").
		Find(&out).Error
	return out, err
}
