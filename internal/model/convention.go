package model

import (
	"time"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/daterange"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StatutVersion labels what produced a convention version.
type StatutVersion string

const (
	StatutInitial                StatutVersion = "INITIAL"
	StatutAvenantLocal           StatutVersion = "AVENANT LOCAL"
	StatutAvenantEquipement      StatutVersion = "AVENANT EQUIPEMENT"
	StatutAvenantStatutJuridique StatutVersion = "AVENANT STATUT JURIDIQUE"
	StatutAvenantEntite          StatutVersion = "AVENANT ENTITE"
	StatutResiliation            StatutVersion = "RÉSILIATION"
)

// Convention is the stable identity of a lease agreement. Everything that can
// change over its life lives in ConventionVersion and its period rows.
// TypeLocataire: "PM" (personne morale) | "PP" (personne physique)
type Convention struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_conventions_numero,priority:1"`
	Numero         string         `gorm:"not null;uniqueIndex:idx_conventions_numero,priority:2"`
	TypeConvention TypePrix       `gorm:"type:varchar(20);not null"`
	TypeLocataire  string         `gorm:"type:varchar(2);not null"`
	DateDebut      datatypes.Date `gorm:"not null"`
	CreatedBy      uuid.UUID      `gorm:"type:uuid"`
	CreatedAt      time.Time
}

func (Convention) TableName() string { return "conventions" }

func (c *Convention) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// ConventionVersion is an immutable snapshot header. Versions of a convention
// are dense from 1; the highest one is the legally active state.
type ConventionVersion struct {
	ConventionID    uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Version         int            `gorm:"primaryKey;autoIncrement:false"`
	Statut          StatutVersion  `gorm:"type:varchar(40);not null"`
	RaisonSociale   string         `gorm:"not null"`
	StatutJuridique string
	DateEffet       datatypes.Date `gorm:"not null"`
	DateFin         *datatypes.Date
	Terminale       bool           `gorm:"not null;default:false"`
	// Delta records the amendment that produced this version.
	Delta     datatypes.JSON
	CreatedBy uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}

func (ConventionVersion) TableName() string { return "convention_versions" }

// ConventionUG assigns a unit to a convention version over a period.
// LigneID is stable across versions and identifies the same assignment.
type ConventionUG struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LigneID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ConventionID uuid.UUID       `gorm:"type:uuid;not null;index:idx_convention_ugs_version,priority:1"`
	Version      int             `gorm:"not null;index:idx_convention_ugs_version,priority:2"`
	UGID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Surface      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DateDebut    datatypes.Date  `gorm:"not null"`
	DateFin      *datatypes.Date
}

func (ConventionUG) TableName() string { return "convention_ugs" }

func (r *ConventionUG) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	ensureID(&r.LigneID)
	return nil
}

func (r ConventionUG) Range() daterange.Range {
	return daterange.New(time.Time(r.DateDebut), DatePtr(r.DateFin))
}

// ConventionEquipement is a billed equipment line of a convention version.
type ConventionEquipement struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LigneID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ConventionID uuid.UUID       `gorm:"type:uuid;not null;index:idx_convention_equipements_version,priority:1"`
	Version      int             `gorm:"not null;index:idx_convention_equipements_version,priority:2"`
	Libelle      string          `gorm:"not null"`
	Quantite     int             `gorm:"not null;default:1"`
	PrixUnitaire decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DateDebut    datatypes.Date  `gorm:"not null"`
	DateFin      *datatypes.Date
}

func (ConventionEquipement) TableName() string { return "convention_equipements" }

func (r *ConventionEquipement) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	ensureID(&r.LigneID)
	return nil
}

func (r ConventionEquipement) Range() daterange.Range {
	return daterange.New(time.Time(r.DateDebut), DatePtr(r.DateFin))
}

// All lists the models owned by this service, in dependency order.
func All() []interface{} {
	return []interface{}{
		&Batiment{},
		&UG{},
		&PeriodePrix{},
		&PrixUG{},
		&Convention{},
		&ConventionVersion{},
		&ConventionUG{},
		&ConventionEquipement{},
	}
}
