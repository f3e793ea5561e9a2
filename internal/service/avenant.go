package service

import (
	"encoding/json"
	"time"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/daterange"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/dto"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Delta is one amendment applied on top of the current version of a
// convention. The concrete types below are the only ones accepted.
type Delta interface {
	Statut() model.StatutVersion
	// Effet is the date from which the amendment applies. It cannot precede
	// the start of the convention.
	Effet() time.Time
	apply(s *snapshot) error
}

// snapshot is the mutable copy of a version that a Delta rewrites.
type snapshot struct {
	debut       time.Time
	header      model.ConventionVersion
	ugs         []model.ConventionUG
	equipements []model.ConventionEquipement
	touched     map[uuid.UUID]bool // ug ids whose rows changed
}

// ── Units ─────────────────────────────────────────────────────────────────────

type AjoutUG struct {
	UGID      uuid.UUID       `json:"ug_id"`
	Surface   decimal.Decimal `json:"surface"`
	DateDebut time.Time       `json:"date_debut"`
	DateFin   *time.Time      `json:"date_fin,omitempty"`
}

func (AjoutUG) Statut() model.StatutVersion { return model.StatutAvenantLocal }
func (d AjoutUG) Effet() time.Time          { return d.DateDebut }

func (d AjoutUG) apply(s *snapshot) error {
	candidate := daterange.New(d.DateDebut, d.DateFin)
	if err := candidate.Check(); err != nil {
		return err
	}
	if !d.Surface.IsPositive() {
		return missingField("surface")
	}
	if candidate.Start.Before(s.debut) {
		return daterange.ErrInvalidRange
	}
	if err := daterange.Validate(s.rangesOf(d.UGID), candidate); err != nil {
		return err
	}
	s.ugs = append(s.ugs, model.ConventionUG{
		UGID:      d.UGID,
		Surface:   d.Surface,
		DateDebut: model.Date(candidate.Start),
		DateFin:   model.DateOrNil(candidate.End),
	})
	s.touched[d.UGID] = true
	return nil
}

// RetraitUG ends the assignment of a unit on DateFin.
type RetraitUG struct {
	UGID    uuid.UUID `json:"ug_id"`
	DateFin time.Time `json:"date_fin"`
}

func (RetraitUG) Statut() model.StatutVersion { return model.StatutAvenantLocal }
func (d RetraitUG) Effet() time.Time          { return d.DateFin }

func (d RetraitUG) apply(s *snapshot) error {
	for i := range s.ugs {
		row := &s.ugs[i]
		if row.UGID != d.UGID || !runsPast(row.Range(), d.DateFin) {
			continue
		}
		fin := model.Date(d.DateFin)
		row.DateFin = &fin
		s.touched[d.UGID] = true
		return nil
	}
	return ErrUGNonAffectee
}

// ── Equipment ─────────────────────────────────────────────────────────────────

type AjoutEquipement struct {
	Libelle      string          `json:"libelle"`
	Quantite     int             `json:"quantite"`
	PrixUnitaire decimal.Decimal `json:"prix_unitaire"`
	DateDebut    time.Time       `json:"date_debut"`
	DateFin      *time.Time      `json:"date_fin,omitempty"`
}

func (AjoutEquipement) Statut() model.StatutVersion { return model.StatutAvenantEquipement }
func (d AjoutEquipement) Effet() time.Time          { return d.DateDebut }

func (d AjoutEquipement) apply(s *snapshot) error {
	candidate := daterange.New(d.DateDebut, d.DateFin)
	if err := candidate.Check(); err != nil {
		return err
	}
	s.equipements = append(s.equipements, model.ConventionEquipement{
		Libelle:      d.Libelle,
		Quantite:     d.Quantite,
		PrixUnitaire: d.PrixUnitaire,
		DateDebut:    model.Date(candidate.Start),
		DateFin:      model.DateOrNil(candidate.End),
	})
	return nil
}

// RetraitEquipement ends the equipment line LigneID on DateFin.
type RetraitEquipement struct {
	LigneID uuid.UUID `json:"ligne_id"`
	DateFin time.Time `json:"date_fin"`
}

func (RetraitEquipement) Statut() model.StatutVersion { return model.StatutAvenantEquipement }
func (d RetraitEquipement) Effet() time.Time          { return d.DateFin }

func (d RetraitEquipement) apply(s *snapshot) error {
	for i := range s.equipements {
		row := &s.equipements[i]
		if row.LigneID != d.LigneID {
			continue
		}
		if !runsPast(row.Range(), d.DateFin) {
			return ErrEquipementNonActif
		}
		fin := model.Date(d.DateFin)
		row.DateFin = &fin
		return nil
	}
	return ErrEquipementInconnu
}

// ── Header ────────────────────────────────────────────────────────────────────

type ChangementStatutJuridique struct {
	StatutJuridique string    `json:"statut_juridique"`
	DateEffet       time.Time `json:"date_effet"`
}

func (ChangementStatutJuridique) Statut() model.StatutVersion {
	return model.StatutAvenantStatutJuridique
}
func (d ChangementStatutJuridique) Effet() time.Time { return d.DateEffet }

func (d ChangementStatutJuridique) apply(s *snapshot) error {
	s.header.StatutJuridique = d.StatutJuridique
	return nil
}

type ChangementEntite struct {
	RaisonSociale string    `json:"raison_sociale"`
	DateEffet     time.Time `json:"date_effet"`
}

func (ChangementEntite) Statut() model.StatutVersion { return model.StatutAvenantEntite }
func (d ChangementEntite) Effet() time.Time          { return d.DateEffet }

func (d ChangementEntite) apply(s *snapshot) error {
	s.header.RaisonSociale = d.RaisonSociale
	return nil
}

// ── Termination ───────────────────────────────────────────────────────────────

// Resiliation closes every row still running on Date and makes the version
// terminal. Rows that would only start after Date are dropped.
type Resiliation struct {
	Date time.Time `json:"date_resiliation"`
}

func (Resiliation) Statut() model.StatutVersion { return model.StatutResiliation }
func (d Resiliation) Effet() time.Time          { return d.Date }

func (d Resiliation) apply(s *snapshot) error {
	if d.Date.Before(s.debut) {
		return ErrTerminationBeforeStart
	}
	fin := model.Date(d.Date)

	ugs := s.ugs[:0]
	for _, row := range s.ugs {
		if time.Time(row.DateDebut).After(d.Date) {
			continue
		}
		if row.DateFin == nil || time.Time(*row.DateFin).After(d.Date) {
			f := fin
			row.DateFin = &f
		}
		ugs = append(ugs, row)
	}
	s.ugs = ugs

	equipements := s.equipements[:0]
	for _, row := range s.equipements {
		if time.Time(row.DateDebut).After(d.Date) {
			continue
		}
		if row.DateFin == nil || time.Time(*row.DateFin).After(d.Date) {
			f := fin
			row.DateFin = &f
		}
		equipements = append(equipements, row)
	}
	s.equipements = equipements

	s.header.DateFin = &fin
	s.header.Terminale = true
	return nil
}

// runsPast reports whether a row is in place on d and still running the day
// after, so that ending it on d actually shortens it.
func runsPast(r daterange.Range, d time.Time) bool {
	return r.Contains(d) && (r.End == nil || daterange.Day(*r.End).After(daterange.Day(d)))
}

// rangesOf lists the assignment periods of one unit inside the snapshot.
func (s *snapshot) rangesOf(ugID uuid.UUID) []daterange.Range {
	var out []daterange.Range
	for _, row := range s.ugs {
		if row.UGID == ugID {
			out = append(out, row.Range())
		}
	}
	return out
}

// encodeDelta records the amendment alongside its version.
func encodeDelta(d Delta) ([]byte, error) {
	return json.Marshal(struct {
		Statut model.StatutVersion `json:"statut"`
		Data   Delta               `json:"data"`
	}{d.Statut(), d})
}

// ── Request decoding ──────────────────────────────────────────────────────────
// HTTP payloads become typed deltas here; nothing loosely typed goes further.

func parseDate(s, field string) (time.Time, error) {
	if s == "" {
		return time.Time{}, missingField(field)
	}
	t, err := daterange.Parse(s)
	if err != nil {
		return time.Time{}, ErrDateInvalide
	}
	return t, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	t, err := daterange.ParseOptional(s)
	if err != nil {
		return nil, ErrDateInvalide
	}
	return t, nil
}

func DeltaFromAvenantLocal(req dto.AvenantLocalRequest) (Delta, error) {
	ugID, err := uuid.Parse(req.UGID)
	if err != nil {
		return nil, ErrUGInconnue
	}
	switch req.Action {
	case "ajout":
		if req.DateDebut == "" {
			return nil, daterange.ErrMissingStartDate
		}
		debut, err := parseDate(req.DateDebut, "date_debut")
		if err != nil {
			return nil, err
		}
		fin, err := parseOptionalDate(req.DateFin)
		if err != nil {
			return nil, err
		}
		return AjoutUG{UGID: ugID, Surface: req.Surface, DateDebut: debut, DateFin: fin}, nil
	case "retrait":
		fin, err := parseDate(req.DateFin, "date_fin")
		if err != nil {
			return nil, err
		}
		return RetraitUG{UGID: ugID, DateFin: fin}, nil
	}
	return nil, missingField("action")
}

func DeltaFromAvenantEquipement(req dto.AvenantEquipementRequest) (Delta, error) {
	switch req.Action {
	case "ajout":
		if req.Libelle == "" {
			return nil, missingField("libelle")
		}
		if req.Quantite <= 0 {
			return nil, missingField("quantite")
		}
		if req.DateDebut == "" {
			return nil, daterange.ErrMissingStartDate
		}
		debut, err := parseDate(req.DateDebut, "date_debut")
		if err != nil {
			return nil, err
		}
		fin, err := parseOptionalDate(req.DateFin)
		if err != nil {
			return nil, err
		}
		return AjoutEquipement{
			Libelle:      req.Libelle,
			Quantite:     req.Quantite,
			PrixUnitaire: req.PrixUnitaire,
			DateDebut:    debut,
			DateFin:      fin,
		}, nil
	case "retrait":
		ligneID, err := uuid.Parse(req.LigneID)
		if err != nil {
			return nil, missingField("ligne_id")
		}
		fin, err := parseDate(req.DateFin, "date_fin")
		if err != nil {
			return nil, err
		}
		return RetraitEquipement{LigneID: ligneID, DateFin: fin}, nil
	}
	return nil, missingField("action")
}

func DeltaFromStatutJuridique(req dto.AvenantStatutJuridiqueRequest) (Delta, error) {
	if req.StatutJuridique == "" {
		return nil, missingField("statut_juridique")
	}
	effet, err := parseDate(req.DateEffet, "date_effet")
	if err != nil {
		return nil, err
	}
	return ChangementStatutJuridique{StatutJuridique: req.StatutJuridique, DateEffet: effet}, nil
}

func DeltaFromEntite(req dto.AvenantEntiteRequest) (Delta, error) {
	if req.RaisonSociale == "" {
		return nil, missingField("raison_sociale")
	}
	effet, err := parseDate(req.DateEffet, "date_effet")
	if err != nil {
		return nil, err
	}
	return ChangementEntite{RaisonSociale: req.RaisonSociale, DateEffet: effet}, nil
}
