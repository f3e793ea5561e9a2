package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LignePrixRequest prices one UG of the building for the window.
// Pépinière windows need the three yearly rates, the others need prix_m2.
type LignePrixRequest struct {
	UGID      string           `json:"ug_id"       validate:"required,uuid"`
	PrixM2An1 *decimal.Decimal `json:"prix_m2_an1" validate:"omitempty,min=0"`
	PrixM2An2 *decimal.Decimal `json:"prix_m2_an2" validate:"omitempty,min=0"`
	PrixM2An3 *decimal.Decimal `json:"prix_m2_an3" validate:"omitempty,min=0"`
	PrixM2    *decimal.Decimal `json:"prix_m2"     validate:"omitempty,min=0"`
	ChargesM2 decimal.Decimal  `json:"charges_m2"  validate:"min=0"`
}

// PeriodePrixRequest is the body of both POST and PUT on /admin/prix-*-ugs.
// Dates are YYYY-MM-DD; an empty date_fin opens the window indefinitely.
// date_debut is checked by the service so the caller gets the domain message.
type PeriodePrixRequest struct {
	DateDebut string             `json:"date_debut" validate:"omitempty,datetime=2006-01-02"`
	DateFin   string             `json:"date_fin"   validate:"omitempty,datetime=2006-01-02"`
	Lignes    []LignePrixRequest `json:"lignes"     validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LignePrixResponse struct {
	ID        string           `json:"id"`
	UGID      string           `json:"ug_id"`
	PrixM2An1 *decimal.Decimal `json:"prix_m2_an1,omitempty"`
	PrixM2An2 *decimal.Decimal `json:"prix_m2_an2,omitempty"`
	PrixM2An3 *decimal.Decimal `json:"prix_m2_an3,omitempty"`
	PrixM2    *decimal.Decimal `json:"prix_m2,omitempty"`
	ChargesM2 decimal.Decimal  `json:"charges_m2"`
}

// PeriodePrixResponse is one (type_prix, date_debut, date_fin) window.
type PeriodePrixResponse struct {
	ID         string              `json:"id"`
	BatimentID string              `json:"batiment_id"`
	TypePrix   string              `json:"type_prix"`
	DateDebut  string              `json:"date_debut"`
	DateFin    *string             `json:"date_fin"`
	Lignes     []LignePrixResponse `json:"lignes"`
}

// PeriodePrixListResponse is returned by GET /admin/prix-*-ugs/:batiment/historique.
// NextCursor is the offset of the next page, null on the last page.
type PeriodePrixListResponse struct {
	Data       []PeriodePrixResponse `json:"data"`
	Offset     int                   `json:"offset"`
	Limit      int                   `json:"limit"`
	NextCursor *int                  `json:"next_cursor"`
}
