package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreerBatimentRequest struct {
	Nom     string `json:"nom"     validate:"required,min=2"`
	Adresse string `json:"adresse"`
}

type CreerUGRequest struct {
	Nom     string          `json:"nom"     validate:"required"`
	Nature  string          `json:"nature"  validate:"required,oneof=bureau atelier coworking salle"`
	Surface decimal.Decimal `json:"surface" validate:"required,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BatimentResponse struct {
	ID      string `json:"id"`
	Nom     string `json:"nom"`
	Adresse string `json:"adresse"`
}

type UGResponse struct {
	ID         string          `json:"id"`
	BatimentID string          `json:"batiment_id"`
	Nom        string          `json:"nom"`
	Nature     string          `json:"nature"`
	Surface    decimal.Decimal `json:"surface"`
}
