package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Batiment is a building operated by a company (pépinière, centre d'affaires, coworking).
type Batiment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nom       string    `gorm:"not null"`
	Adresse   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Batiment) TableName() string { return "batiments" }

func (b *Batiment) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	return nil
}

// UG (unité de gestion) is a rentable unit inside a building.
// Nature: "bureau" | "atelier" | "coworking" | "salle"
type UG struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatimentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Nom        string          `gorm:"not null"`
	Nature     string          `gorm:"type:varchar(20);not null"`
	Surface    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (UG) TableName() string { return "ugs" }

func (u *UG) BeforeCreate(*gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

// ensureID assigns a random id unless the caller already chose one.
// Ids are generated client-side so the same models work on SQLite.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
