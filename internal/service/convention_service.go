package service

import (
	"context"
	"time"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/daterange"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/dto"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/model"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/repository"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ConventionService interface {
	CreateConvention(ctx context.Context, a Acteur, req dto.CreerConventionRequest) (*dto.AvenantResponse, error)
	// CreateAmendment appends version fromVersion+1; fromVersion must be the current version.
	CreateAmendment(ctx context.Context, a Acteur, id uuid.UUID, fromVersion int, delta Delta) (int, error)
	Terminate(ctx context.Context, a Acteur, id uuid.UUID, fromVersion int, date string) (int, error)
	GetVersion(ctx context.Context, a Acteur, id uuid.UUID, version int) (*dto.ConventionInfosResponse, error)
	ListVersions(ctx context.Context, a Acteur, id uuid.UUID) ([]dto.ConventionVersionResponse, error)
}

type conventionService struct {
	repo         repository.ConventionRepository
	batimentRepo repository.BatimentRepository
	dispatcher   *worker.Dispatcher
	txOpts       TxOptions
}

func NewConventionService(repo repository.ConventionRepository, batimentRepo repository.BatimentRepository, dispatcher *worker.Dispatcher, txOpts TxOptions) ConventionService {
	return &conventionService{repo: repo, batimentRepo: batimentRepo, dispatcher: dispatcher, txOpts: txOpts}
}

// ── CreateConvention ──────────────────────────────────────────────────────────

func (s *conventionService) CreateConvention(ctx context.Context, a Acteur, req dto.CreerConventionRequest) (*dto.AvenantResponse, error) {
	typeConvention := model.TypePrix(req.TypeConvention)
	if !typeConvention.Valid() {
		return nil, ErrTypePrixInvalide
	}
	debut, err := parseDate(req.DateDebut, "date_debut")
	if err != nil {
		return nil, err
	}
	if req.RaisonSociale == "" {
		return nil, missingField("raison_sociale")
	}

	snap := &snapshot{debut: debut, touched: map[uuid.UUID]bool{}}
	for _, u := range req.UGs {
		ugID, err := uuid.Parse(u.UGID)
		if err != nil {
			return nil, ErrUGInconnue
		}
		ugDebut, err := parseDate(u.DateDebut, "date_debut")
		if err != nil {
			return nil, err
		}
		ugFin, err := parseOptionalDate(u.DateFin)
		if err != nil {
			return nil, err
		}
		ajout := AjoutUG{UGID: ugID, Surface: u.Surface, DateDebut: ugDebut, DateFin: ugFin}
		if err := ajout.apply(snap); err != nil {
			return nil, err
		}
	}

	conv := model.Convention{
		CompanyID:      a.CompanyID,
		Numero:         req.Numero,
		TypeConvention: typeConvention,
		TypeLocataire:  req.TypeLocataire,
		DateDebut:      model.Date(debut),
		CreatedBy:      a.UserID,
	}

	err = runTx(ctx, s.repo.DB(), s.txOpts, func(tx *gorm.DB) error {
		exists, err := s.repo.NumeroExists(ctx, tx, a.CompanyID, req.Numero)
		if err != nil {
			return err
		}
		if exists {
			return ErrNumeroExistant
		}
		conv.ID = uuid.Nil
		if err := s.repo.Create(ctx, tx, &conv); err != nil {
			return err
		}
		if err := s.checkAvailability(ctx, tx, a, conv.ID, snap); err != nil {
			return err
		}

		header := model.ConventionVersion{
			ConventionID:    conv.ID,
			Version:         1,
			Statut:          model.StatutInitial,
			RaisonSociale:   req.RaisonSociale,
			StatutJuridique: req.StatutJuridique,
			DateEffet:       model.Date(debut),
			CreatedBy:       a.UserID,
		}
		ugs := stampUGs(snap.ugs, conv.ID, 1)
		return s.repo.CreateVersion(ctx, tx, &header, ugs, nil)
	})
	if err != nil {
		return nil, err
	}

	s.enqueueDocument(ctx, a, conv.ID, 1, model.StatutInitial)
	return &dto.AvenantResponse{
		Message:      "Convention créée avec succès",
		ConventionID: conv.ID.String(),
		Version:      1,
	}, nil
}

// ── CreateAmendment ───────────────────────────────────────────────────────────
// Copy forward the current version, apply the delta, validate, write
// header and rows in the same transaction.

func (s *conventionService) CreateAmendment(ctx context.Context, a Acteur, id uuid.UUID, fromVersion int, delta Delta) (int, error) {
	var next int
	err := runTx(ctx, s.repo.DB(), s.txOpts, func(tx *gorm.DB) error {
		conv, err := s.repo.FindByID(ctx, tx, a.CompanyID, id)
		if err != nil {
			return notFound(err)
		}
		current, err := s.repo.LatestVersion(ctx, tx, conv.ID)
		if err != nil {
			return notFound(err)
		}
		if current.Terminale {
			return ErrAgreementTerminated
		}
		if fromVersion != current.Version {
			return ErrStaleVersion
		}

		snap, err := s.carryForward(ctx, tx, conv, current)
		if err != nil {
			return err
		}
		if err := delta.apply(snap); err != nil {
			return err
		}
		if daterange.Day(delta.Effet()).Before(snap.debut) {
			return ErrEffetAvantDebut
		}
		if err := s.checkAvailability(ctx, tx, a, conv.ID, snap); err != nil {
			return err
		}

		raw, err := encodeDelta(delta)
		if err != nil {
			return err
		}
		next = current.Version + 1
		header := snap.header
		header.Version = next
		header.Statut = delta.Statut()
		header.DateEffet = model.Date(delta.Effet())
		header.Delta = raw
		header.CreatedBy = a.UserID
		header.CreatedAt = time.Time{}

		return s.repo.CreateVersion(ctx, tx, &header,
			stampUGs(snap.ugs, conv.ID, next),
			stampEquipements(snap.equipements, conv.ID, next))
	})
	if err != nil {
		return 0, err
	}

	s.enqueueDocument(ctx, a, id, next, delta.Statut())
	return next, nil
}

// ── Terminate ─────────────────────────────────────────────────────────────────

func (s *conventionService) Terminate(ctx context.Context, a Acteur, id uuid.UUID, fromVersion int, date string) (int, error) {
	if date == "" {
		return 0, ErrMissingTerminationDate
	}
	d, err := daterange.Parse(date)
	if err != nil {
		return 0, ErrDateInvalide
	}
	return s.CreateAmendment(ctx, a, id, fromVersion, Resiliation{Date: d})
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *conventionService) GetVersion(ctx context.Context, a Acteur, id uuid.UUID, version int) (*dto.ConventionInfosResponse, error) {
	conv, err := s.repo.FindByID(ctx, nil, a.CompanyID, id)
	if err != nil {
		return nil, notFound(err)
	}
	v, err := s.repo.FindVersion(ctx, nil, conv.ID, version)
	if err != nil {
		return nil, notFound(err)
	}
	latest, err := s.repo.LatestVersion(ctx, nil, conv.ID)
	if err != nil {
		return nil, err
	}
	ugs, err := s.repo.ListUGs(ctx, nil, conv.ID, version)
	if err != nil {
		return nil, err
	}
	equipements, err := s.repo.ListEquipements(ctx, nil, conv.ID, version)
	if err != nil {
		return nil, err
	}

	resp := &dto.ConventionInfosResponse{
		Convention:  conventionToResponse(conv),
		Version:     versionToResponse(v, latest.Version),
		UGs:         make([]dto.ConventionUGResponse, 0, len(ugs)),
		Equipements: make([]dto.ConventionEquipementResponse, 0, len(equipements)),
	}
	for _, u := range ugs {
		r := u.Range()
		resp.UGs = append(resp.UGs, dto.ConventionUGResponse{
			ID:        u.ID.String(),
			LigneID:   u.LigneID.String(),
			UGID:      u.UGID.String(),
			Surface:   u.Surface,
			DateDebut: r.Start.Format(daterange.Layout),
			DateFin:   formatFin(r.End),
		})
	}
	for _, e := range equipements {
		r := e.Range()
		resp.Equipements = append(resp.Equipements, dto.ConventionEquipementResponse{
			ID:           e.ID.String(),
			LigneID:      e.LigneID.String(),
			Libelle:      e.Libelle,
			Quantite:     e.Quantite,
			PrixUnitaire: e.PrixUnitaire,
			DateDebut:    r.Start.Format(daterange.Layout),
			DateFin:      formatFin(r.End),
		})
	}
	return resp, nil
}

func (s *conventionService) ListVersions(ctx context.Context, a Acteur, id uuid.UUID) ([]dto.ConventionVersionResponse, error) {
	conv, err := s.repo.FindByID(ctx, nil, a.CompanyID, id)
	if err != nil {
		return nil, notFound(err)
	}
	versions, err := s.repo.ListVersions(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	derniere := 0
	for _, v := range versions {
		if v.Version > derniere {
			derniere = v.Version
		}
	}
	out := make([]dto.ConventionVersionResponse, 0, len(versions))
	for i := range versions {
		out = append(out, versionToResponse(&versions[i], derniere))
	}
	return out, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// carryForward copies every row of the current version. Ended rows stay:
// they still hold their unit for the period they cover.
func (s *conventionService) carryForward(ctx context.Context, tx *gorm.DB, conv *model.Convention, current *model.ConventionVersion) (*snapshot, error) {
	ugs, err := s.repo.ListUGs(ctx, tx, conv.ID, current.Version)
	if err != nil {
		return nil, err
	}
	equipements, err := s.repo.ListEquipements(ctx, tx, conv.ID, current.Version)
	if err != nil {
		return nil, err
	}

	return &snapshot{
		debut:       daterange.Day(time.Time(conv.DateDebut)),
		header:      *current,
		ugs:         ugs,
		equipements: equipements,
		touched:     map[uuid.UUID]bool{},
	}, nil
}

// checkAvailability checks that every touched unit exists in the company and
// is free against the current version of every other convention.
func (s *conventionService) checkAvailability(ctx context.Context, tx *gorm.DB, a Acteur, conventionID uuid.UUID, snap *snapshot) error {
	if len(snap.touched) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(snap.touched))
	for id := range snap.touched {
		ids = append(ids, id)
	}
	units, err := s.batimentRepo.FindUGs(ctx, tx, a.CompanyID, ids)
	if err != nil {
		return err
	}
	if len(units) != len(ids) {
		return ErrUGInconnue
	}
	others, err := s.repo.ListOtherAssignments(ctx, tx, a.CompanyID, conventionID, ids)
	if err != nil {
		return err
	}

	for _, unit := range units {
		var taken []daterange.Range
		for _, o := range others {
			if o.UGID == unit.ID {
				taken = append(taken, o.Range())
			}
		}
		for _, r := range snap.rangesOf(unit.ID) {
			if err := daterange.Validate(taken, r); err != nil {
				return ugIndisponible(unit.Nom, err)
			}
		}
	}
	return nil
}

func (s *conventionService) enqueueDocument(ctx context.Context, a Acteur, id uuid.UUID, version int, statut model.StatutVersion) {
	if s.dispatcher == nil {
		return
	}
	job := worker.DocumentJob{CompanyID: a.CompanyID, ConventionID: id, Version: version, Statut: string(statut)}
	if err := s.dispatcher.EnqueueDocument(ctx, job); err != nil {
		log.Error().Err(err).
			Str("convention_id", id.String()).
			Int("version", version).
			Msg("document job enqueue failed")
	}
}

// stampUGs prepares carried and new rows for insertion under a new version.
// Row ids are regenerated; LigneID survives.
func stampUGs(rows []model.ConventionUG, conventionID uuid.UUID, version int) []model.ConventionUG {
	out := make([]model.ConventionUG, len(rows))
	for i, r := range rows {
		r.ID = uuid.Nil
		r.ConventionID = conventionID
		r.Version = version
		out[i] = r
	}
	return out
}

func stampEquipements(rows []model.ConventionEquipement, conventionID uuid.UUID, version int) []model.ConventionEquipement {
	out := make([]model.ConventionEquipement, len(rows))
	for i, r := range rows {
		r.ID = uuid.Nil
		r.ConventionID = conventionID
		r.Version = version
		out[i] = r
	}
	return out
}

func formatFin(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := daterange.Format(t)
	return &s
}

func conventionToResponse(c *model.Convention) dto.ConventionResponse {
	return dto.ConventionResponse{
		ID:             c.ID.String(),
		Numero:         c.Numero,
		TypeConvention: string(c.TypeConvention),
		TypeLocataire:  c.TypeLocataire,
		DateDebut:      time.Time(c.DateDebut).Format(daterange.Layout),
	}
}

func versionToResponse(v *model.ConventionVersion, latest int) dto.ConventionVersionResponse {
	return dto.ConventionVersionResponse{
		ConventionID:    v.ConventionID.String(),
		Version:         v.Version,
		Statut:          string(v.Statut),
		RaisonSociale:   v.RaisonSociale,
		StatutJuridique: v.StatutJuridique,
		DateEffet:       time.Time(v.DateEffet).Format(daterange.Layout),
		DateFin:         formatFin(model.DatePtr(v.DateFin)),
		Terminale:       v.Terminale,
		Derniere:        v.Version == latest,
		CreatedAt:       v.CreatedAt.UTC().Format(time.RFC3339),
	}
}
