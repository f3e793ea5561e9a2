package service

import "github.com/google/uuid"

// Acteur is the authenticated caller of an operation. Every read and write is
// scoped to Acteur.CompanyID; UserID is stamped on created rows.
type Acteur struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
	Role      string
}
