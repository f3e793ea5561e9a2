package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AffectationUGRequest struct {
	UGID      string          `json:"ug_id"      validate:"required,uuid"`
	Surface   decimal.Decimal `json:"surface"    validate:"required,gt=0"`
	DateDebut string          `json:"date_debut" validate:"required,datetime=2006-01-02"`
	DateFin   string          `json:"date_fin"   validate:"omitempty,datetime=2006-01-02"`
}

type CreerConventionRequest struct {
	Numero          string                 `json:"numero"           validate:"required"`
	TypeConvention  string                 `json:"type_convention"  validate:"required,oneof=pepiniere centre coworking"`
	TypeLocataire   string                 `json:"type_locataire"   validate:"required,oneof=PM PP"`
	RaisonSociale   string                 `json:"raison_sociale"   validate:"required"`
	StatutJuridique string                 `json:"statut_juridique"`
	DateDebut       string                 `json:"date_debut"       validate:"required,datetime=2006-01-02"`
	UGs             []AffectationUGRequest `json:"ugs"              validate:"required,min=1,dive"`
}

// AvenantLocalRequest adds a unit (action "ajout": ug_id, surface, date_debut,
// optional date_fin) or ends a unit assignment (action "retrait": ug_id, date_fin).
type AvenantLocalRequest struct {
	Action    string          `json:"action"     validate:"required,oneof=ajout retrait"`
	UGID      string          `json:"ug_id"      validate:"required,uuid"`
	Surface   decimal.Decimal `json:"surface"    validate:"min=0"`
	DateDebut string          `json:"date_debut" validate:"omitempty,datetime=2006-01-02"`
	DateFin   string          `json:"date_fin"   validate:"omitempty,datetime=2006-01-02"`
}

// AvenantEquipementRequest adds a billed equipment line (action "ajout") or
// ends one identified by ligne_id (action "retrait").
type AvenantEquipementRequest struct {
	Action       string          `json:"action"        validate:"required,oneof=ajout retrait"`
	LigneID      string          `json:"ligne_id"      validate:"omitempty,uuid"`
	Libelle      string          `json:"libelle"`
	Quantite     int             `json:"quantite"      validate:"min=0"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire" validate:"min=0"`
	DateDebut    string          `json:"date_debut"    validate:"omitempty,datetime=2006-01-02"`
	DateFin      string          `json:"date_fin"      validate:"omitempty,datetime=2006-01-02"`
}

type AvenantStatutJuridiqueRequest struct {
	StatutJuridique string `json:"statut_juridique" validate:"required"`
	DateEffet       string `json:"date_effet"       validate:"required,datetime=2006-01-02"`
}

type AvenantEntiteRequest struct {
	RaisonSociale string `json:"raison_sociale" validate:"required"`
	DateEffet     string `json:"date_effet"     validate:"required,datetime=2006-01-02"`
}

type ResiliationRequest struct {
	DateResiliation string `json:"date_resiliation" validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// AvenantResponse is returned by every operation that writes a version.
type AvenantResponse struct {
	Message      string `json:"message"`
	ConventionID string `json:"convention_id"`
	Version      int    `json:"version"`
}

type ConventionResponse struct {
	ID             string `json:"id"`
	Numero         string `json:"numero"`
	TypeConvention string `json:"type_convention"`
	TypeLocataire  string `json:"type_locataire"`
	DateDebut      string `json:"date_debut"`
}

type ConventionVersionResponse struct {
	ConventionID    string  `json:"convention_id"`
	Version         int     `json:"version"`
	Statut          string  `json:"statut"`
	RaisonSociale   string  `json:"raison_sociale"`
	StatutJuridique string  `json:"statut_juridique"`
	DateEffet       string  `json:"date_effet"`
	DateFin         *string `json:"date_fin"`
	Terminale       bool    `json:"terminale"`
	Derniere        bool    `json:"derniere"`
	CreatedAt       string  `json:"created_at"`
}

type ConventionUGResponse struct {
	ID        string          `json:"id"`
	LigneID   string          `json:"ligne_id"`
	UGID      string          `json:"ug_id"`
	Surface   decimal.Decimal `json:"surface"`
	DateDebut string          `json:"date_debut"`
	DateFin   *string         `json:"date_fin"`
}

type ConventionEquipementResponse struct {
	ID           string          `json:"id"`
	LigneID      string          `json:"ligne_id"`
	Libelle      string          `json:"libelle"`
	Quantite     int             `json:"quantite"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	DateDebut    string          `json:"date_debut"`
	DateFin      *string         `json:"date_fin"`
}

// ConventionInfosResponse is the full snapshot returned by GET /convention/infos/:id/:version.
type ConventionInfosResponse struct {
	Convention  ConventionResponse             `json:"convention"`
	Version     ConventionVersionResponse      `json:"version"`
	UGs         []ConventionUGResponse         `json:"ugs"`
	Equipements []ConventionEquipementResponse `json:"equipements"`
}
