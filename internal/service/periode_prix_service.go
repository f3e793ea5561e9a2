package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/daterange"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/dto"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/infra"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/model"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	historiqueDefaultLimit = 20
	historiqueMaxLimit     = 100
)

// PrixCache is the read-through cache of active pricing windows. Get reports
// the owner's generation; Set writes under that generation only, so a fill
// that raced a write is never served after Invalidate.
type PrixCache interface {
	Get(ctx context.Context, owner, field string) (payload []byte, gen int64, hit bool)
	Set(ctx context.Context, owner string, gen int64, field string, payload []byte)
	Invalidate(ctx context.Context, owner string)
}

type PeriodePrixService interface {
	InsertPeriod(ctx context.Context, a Acteur, batimentID uuid.UUID, typePrix model.TypePrix, req dto.PeriodePrixRequest) (uuid.UUID, error)
	UpdatePeriodRange(ctx context.Context, a Acteur, batimentID uuid.UUID, typePrix model.TypePrix, periodeID uuid.UUID, req dto.PeriodePrixRequest) error
	ListActivePeriods(ctx context.Context, a Acteur, batimentID uuid.UUID, typePrix model.TypePrix, asOf time.Time) ([]dto.PeriodePrixResponse, error)
	ListHistory(ctx context.Context, a Acteur, batimentID uuid.UUID, typePrix model.TypePrix, offset, limit int) (*dto.PeriodePrixListResponse, error)
	ExportHistory(ctx context.Context, a Acteur, batimentID uuid.UUID, typePrix model.TypePrix) ([]byte, error)
}

type periodePrixService struct {
	repo         repository.PeriodePrixRepository
	batimentRepo repository.BatimentRepository
	cache        PrixCache
	txOpts       TxOptions
}

// NewPeriodePrixService wires the pricing registry. cache may be nil.
func NewPeriodePrixService(repo repository.PeriodePrixRepository, batimentRepo repository.BatimentRepository, cache PrixCache, txOpts TxOptions) PeriodePrixService {
	return &periodePrixService{repo: repo, batimentRepo: batimentRepo, cache: cache, txOpts: txOpts}
}

func ownerKey(a Acteur, batimentID uuid.UUID, typePrix model.TypePrix) repository.OwnerKey {
	return repository.OwnerKey{CompanyID: a.CompanyID, BatimentID: batimentID, TypePrix: typePrix}
}

func cacheOwner(key repository.OwnerKey) string {
	return key.CompanyID.String() + ":" + key.BatimentID.String() + ":" + string(key.TypePrix)
}

// ── InsertPeriod ──────────────────────────────────────────────────────────────

func (s *periodePrixService) InsertPeriod(ctx context.Context, a Acteur, batimentID uuid.UUID, typePrix model.TypePrix, req dto.PeriodePrixRequest) (uuid.UUID, error) {
	key := ownerKey(a, batimentID, typePrix)
	candidate, lignes, err := s.prepare(ctx, key, req)
	if err != nil {
		return uuid.Nil, err
	}

	periode := model.PeriodePrix{
		CompanyID:  a.CompanyID,
		BatimentID: batimentID,
		TypePrix:   typePrix,
		DateDebut:  model.Date(candidate.Start),
		DateFin:    model.DateOrNil(candidate.End),
		CreatedBy:  a.UserID,
		Lignes:     lignes,
	}

	err = runTx(ctx, s.repo.DB(), s.txOpts, func(tx *gorm.DB) error {
		if err := s.checkUGs(ctx, tx, key, lignes); err != nil {
			return err
		}
		if err := s.validateAgainstOwner(ctx, tx, key, uuid.Nil, candidate); err != nil {
			return err
		}
		periode.ID = uuid.Nil
		for i := range periode.Lignes {
			periode.Lignes[i].ID = uuid.Nil
		}
		return s.repo.Create(ctx, tx, &periode)
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.invalidate(ctx, key)
	return periode.ID, nil
}

// ── UpdatePeriodRange ─────────────────────────────────────────────────────────
// The window and all its lines change together or not at all. Lines of units
// absent from the request are kept.

func (s *periodePrixService) UpdatePeriodRange(ctx context.Context, a Acteur, batimentID uuid.UUID, typePrix model.TypePrix, periodeID uuid.UUID, req dto.PeriodePrixRequest) error {
	key := ownerKey(a, batimentID, typePrix)
	candidate, lignes, err := s.prepare(ctx, key, req)
	if err != nil {
		return err
	}

	err = runTx(ctx, s.repo.DB(), s.txOpts, func(tx *gorm.DB) error {
		periode, err := s.repo.FindByID(ctx, tx, key, periodeID)
		if err != nil {
			return notFound(err)
		}
		if err := s.validateAgainstOwner(ctx, tx, key, periode.ID, candidate); err != nil {
			return err
		}

		periode.DateDebut = model.Date(candidate.Start)
		periode.DateFin = model.DateOrNil(candidate.End)
		if err := s.repo.UpdateRange(ctx, tx, periode); err != nil {
			return err
		}

		ugs, err := s.ugsOfBatiment(ctx, tx, key, lignes)
		if err != nil {
			return err
		}
		for i := range lignes {
			l := lignes[i]
			// Checked line by line: a bad line aborts the batch after the
			// earlier ones were written, and the rollback discards them.
			if err := checkUG(ugs, key.BatimentID, l.UGID); err != nil {
				return err
			}
			l.PeriodeID = periode.ID
			if err := s.repo.UpsertLigne(ctx, tx, &l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, key)
	return nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *periodePrixService) ListActivePeriods(ctx context.Context, a Acteur, batimentID uuid.UUID, typePrix model.TypePrix, asOf time.Time) ([]dto.PeriodePrixResponse, error) {
	if !typePrix.Valid() {
		return nil, ErrTypePrixInvalide
	}
	key := ownerKey(a, batimentID, typePrix)
	asOf = daterange.Day(asOf)
	field := asOf.Format(daterange.Layout)

	gen := int64(-1)
	if s.cache != nil {
		cached, g, ok := s.cache.Get(ctx, cacheOwner(key), field)
		gen = g
		if ok {
			var resp []dto.PeriodePrixResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return resp, nil
			}
		}
	}

	periodes, err := s.repo.ListActive(ctx, key, asOf)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PeriodePrixResponse, 0, len(periodes))
	for i := range periodes {
		resp = append(resp, periodeToResponse(&periodes[i]))
	}

	if s.cache != nil && gen >= 0 {
		if b, err := json.Marshal(resp); err == nil {
			s.cache.Set(ctx, cacheOwner(key), gen, field, b)
		}
	}
	return resp, nil
}

func (s *periodePrixService) ListHistory(ctx context.Context, a Acteur, batimentID uuid.UUID, typePrix model.TypePrix, offset, limit int) (*dto.PeriodePrixListResponse, error) {
	if !typePrix.Valid() {
		return nil, ErrTypePrixInvalide
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = historiqueDefaultLimit
	}
	if limit > historiqueMaxLimit {
		limit = historiqueMaxLimit
	}

	periodes, more, err := s.repo.ListHistory(ctx, ownerKey(a, batimentID, typePrix), offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.PeriodePrixListResponse{
		Data:   make([]dto.PeriodePrixResponse, 0, len(periodes)),
		Offset: offset,
		Limit:  limit,
	}
	for i := range periodes {
		resp.Data = append(resp.Data, periodeToResponse(&periodes[i]))
	}
	if more {
		next := offset + limit
		resp.NextCursor = &next
	}
	return resp, nil
}

func (s *periodePrixService) ExportHistory(ctx context.Context, a Acteur, batimentID uuid.UUID, typePrix model.TypePrix) ([]byte, error) {
	if _, err := s.batimentRepo.FindByID(ctx, a.CompanyID, batimentID); err != nil {
		return nil, notFound(err)
	}

	var all []dto.PeriodePrixResponse
	for offset := 0; ; offset += historiqueMaxLimit {
		page, err := s.ListHistory(ctx, a, batimentID, typePrix, offset, historiqueMaxLimit)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
		if page.NextCursor == nil {
			break
		}
	}

	ugs, err := s.batimentRepo.ListUGs(ctx, a.CompanyID, batimentID)
	if err != nil {
		return nil, err
	}
	noms := make(map[string]string, len(ugs))
	for _, u := range ugs {
		noms[u.ID.String()] = u.Nom
	}
	return infra.PrixHistoriqueXLSX(all, noms)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// prepare runs every check that needs no lock: price type, building, dates on
// their own and the shape of each line.
func (s *periodePrixService) prepare(ctx context.Context, key repository.OwnerKey, req dto.PeriodePrixRequest) (daterange.Range, []model.PrixUG, error) {
	if !key.TypePrix.Valid() {
		return daterange.Range{}, nil, ErrTypePrixInvalide
	}
	start, err := daterange.Parse(req.DateDebut)
	if err != nil {
		return daterange.Range{}, nil, ErrDateInvalide
	}
	end, err := daterange.ParseOptional(req.DateFin)
	if err != nil {
		return daterange.Range{}, nil, ErrDateInvalide
	}
	candidate := daterange.New(start, end)
	if err := candidate.Check(); err != nil {
		return daterange.Range{}, nil, err
	}

	if _, err := s.batimentRepo.FindByID(ctx, key.CompanyID, key.BatimentID); err != nil {
		return daterange.Range{}, nil, notFound(err)
	}

	lignes, err := lignesFromRequest(key.TypePrix, req.Lignes)
	if err != nil {
		return daterange.Range{}, nil, err
	}
	return candidate, lignes, nil
}

func lignesFromRequest(typePrix model.TypePrix, in []dto.LignePrixRequest) ([]model.PrixUG, error) {
	if len(in) == 0 {
		return nil, missingField("lignes")
	}
	seen := make(map[uuid.UUID]bool, len(in))
	out := make([]model.PrixUG, 0, len(in))
	for _, l := range in {
		ugID, err := uuid.Parse(l.UGID)
		if err != nil {
			return nil, ErrUGInconnue
		}
		if seen[ugID] {
			return nil, ErrUGDupliquee
		}
		seen[ugID] = true

		if typePrix == model.TypePrixPepiniere {
			switch {
			case l.PrixM2An1 == nil:
				return nil, missingField("prix_m2_an1")
			case l.PrixM2An2 == nil:
				return nil, missingField("prix_m2_an2")
			case l.PrixM2An3 == nil:
				return nil, missingField("prix_m2_an3")
			}
		} else if l.PrixM2 == nil {
			return nil, missingField("prix_m2")
		}

		out = append(out, model.PrixUG{
			UGID:      ugID,
			PrixM2An1: l.PrixM2An1,
			PrixM2An2: l.PrixM2An2,
			PrixM2An3: l.PrixM2An3,
			PrixM2:    l.PrixM2,
			ChargesM2: l.ChargesM2,
		})
	}
	return out, nil
}

// validateAgainstOwner checks the candidate against every other window of the
// owner, read inside the transaction.
func (s *periodePrixService) validateAgainstOwner(ctx context.Context, tx *gorm.DB, key repository.OwnerKey, self uuid.UUID, candidate daterange.Range) error {
	periodes, err := s.repo.ListByOwner(ctx, tx, key)
	if err != nil {
		return err
	}
	existing := make([]daterange.Range, 0, len(periodes))
	for _, p := range periodes {
		if p.ID == self {
			continue
		}
		existing = append(existing, p.Range())
	}
	return daterange.Validate(existing, candidate)
}

func (s *periodePrixService) ugsOfBatiment(ctx context.Context, tx *gorm.DB, key repository.OwnerKey, lignes []model.PrixUG) (map[uuid.UUID]model.UG, error) {
	ids := make([]uuid.UUID, 0, len(lignes))
	for _, l := range lignes {
		ids = append(ids, l.UGID)
	}
	ugs, err := s.batimentRepo.FindUGs(ctx, tx, key.CompanyID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.UG, len(ugs))
	for _, u := range ugs {
		byID[u.ID] = u
	}
	return byID, nil
}

func (s *periodePrixService) checkUGs(ctx context.Context, tx *gorm.DB, key repository.OwnerKey, lignes []model.PrixUG) error {
	ugs, err := s.ugsOfBatiment(ctx, tx, key, lignes)
	if err != nil {
		return err
	}
	for _, l := range lignes {
		if err := checkUG(ugs, key.BatimentID, l.UGID); err != nil {
			return err
		}
	}
	return nil
}

func checkUG(ugs map[uuid.UUID]model.UG, batimentID, ugID uuid.UUID) error {
	u, ok := ugs[ugID]
	if !ok {
		return ErrUGInconnue
	}
	if u.BatimentID != batimentID {
		return ErrUGHorsBatiment
	}
	return nil
}

func (s *periodePrixService) invalidate(ctx context.Context, key repository.OwnerKey) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, cacheOwner(key))
	}
}

func periodeToResponse(p *model.PeriodePrix) dto.PeriodePrixResponse {
	r := p.Range()
	resp := dto.PeriodePrixResponse{
		ID:         p.ID.String(),
		BatimentID: p.BatimentID.String(),
		TypePrix:   string(p.TypePrix),
		DateDebut:  r.Start.Format(daterange.Layout),
		Lignes:     make([]dto.LignePrixResponse, 0, len(p.Lignes)),
	}
	if r.End != nil {
		fin := daterange.Format(r.End)
		resp.DateFin = &fin
	}
	for _, l := range p.Lignes {
		resp.Lignes = append(resp.Lignes, dto.LignePrixResponse{
			ID:        l.ID.String(),
			UGID:      l.UGID.String(),
			PrixM2An1: l.PrixM2An1,
			PrixM2An2: l.PrixM2An2,
			PrixM2An3: l.PrixM2An3,
			PrixM2:    l.PrixM2,
			ChargesM2: l.ChargesM2,
		})
	}
	return resp
}
