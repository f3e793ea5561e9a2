package model

import (
	"time"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/daterange"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TypePrix is the pricing category of a building; together with the building
// it forms the owner key of a pricing period.
type TypePrix string

const (
	TypePrixPepiniere TypePrix = "pepiniere"
	TypePrixCentre    TypePrix = "centre"
	TypePrixCoworking TypePrix = "coworking"
)

// TypesPrix lists every price category exposed by the admin API.
var TypesPrix = []TypePrix{TypePrixPepiniere, TypePrixCentre, TypePrixCoworking}

func (t TypePrix) Valid() bool {
	for _, v := range TypesPrix {
		if v == t {
			return true
		}
	}
	return false
}

// PeriodePrix is one pricing window [DateDebut, DateFin] for a (building, type).
// DateFin nil means the window is the current open-ended one.
// Windows of the same owner never overlap; on PostgreSQL an exclusion
// constraint backs this (see infra.applySchemaPatches).
type PeriodePrix struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatimentID uuid.UUID       `gorm:"type:uuid;not null;index:idx_periodes_prix_owner,priority:1"`
	TypePrix   TypePrix        `gorm:"type:varchar(20);not null;index:idx_periodes_prix_owner,priority:2"`
	DateDebut  datatypes.Date  `gorm:"not null"`
	DateFin    *datatypes.Date
	CreatedBy  uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Lignes []PrixUG `gorm:"foreignKey:PeriodeID"`
}

func (PeriodePrix) TableName() string { return "periodes_prix" }

func (p *PeriodePrix) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// Range returns the window as a calendar-date interval.
func (p PeriodePrix) Range() daterange.Range {
	return daterange.New(time.Time(p.DateDebut), DatePtr(p.DateFin))
}

// PrixUG is the price of one unit inside a pricing window.
// Pépinière windows use the progressive yearly rates (An1..An3);
// centre and coworking windows use PrixM2.
type PrixUG struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	PeriodeID uuid.UUID        `gorm:"type:uuid;not null;index"`
	UGID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	PrixM2An1 *decimal.Decimal `gorm:"type:decimal(10,2)"`
	PrixM2An2 *decimal.Decimal `gorm:"type:decimal(10,2)"`
	PrixM2An3 *decimal.Decimal `gorm:"type:decimal(10,2)"`
	PrixM2    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	ChargesM2 decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`
	UpdatedAt time.Time
}

func (PrixUG) TableName() string { return "prix_ugs" }

func (l *PrixUG) BeforeCreate(*gorm.DB) error {
	ensureID(&l.ID)
	return nil
}

// Date converts a calendar day into its column type.
func Date(t time.Time) datatypes.Date { return datatypes.Date(daterange.Day(t)) }

// DateOrNil is Date for nullable columns.
func DateOrNil(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := Date(*t)
	return &d
}

// DatePtr converts a nullable column back to a nullable day.
func DatePtr(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := daterange.Day(time.Time(*d))
	return &t
}
