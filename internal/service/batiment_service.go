package service

import (
	"context"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/dto"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/model"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/repository"

	"github.com/google/uuid"
)

type BatimentService interface {
	Create(ctx context.Context, a Acteur, req dto.CreerBatimentRequest) (*dto.BatimentResponse, error)
	List(ctx context.Context, a Acteur) ([]dto.BatimentResponse, error)
	CreateUG(ctx context.Context, a Acteur, batimentID uuid.UUID, req dto.CreerUGRequest) (*dto.UGResponse, error)
	ListUGs(ctx context.Context, a Acteur, batimentID uuid.UUID) ([]dto.UGResponse, error)
}

type batimentService struct {
	repo repository.BatimentRepository
}

func NewBatimentService(repo repository.BatimentRepository) BatimentService {
	return &batimentService{repo: repo}
}

func (s *batimentService) Create(ctx context.Context, a Acteur, req dto.CreerBatimentRequest) (*dto.BatimentResponse, error) {
	b := &model.Batiment{CompanyID: a.CompanyID, Nom: req.Nom, Adresse: req.Adresse}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	resp := batimentToResponse(b)
	return &resp, nil
}

func (s *batimentService) List(ctx context.Context, a Acteur) ([]dto.BatimentResponse, error) {
	batiments, err := s.repo.List(ctx, a.CompanyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatimentResponse, 0, len(batiments))
	for i := range batiments {
		out = append(out, batimentToResponse(&batiments[i]))
	}
	return out, nil
}

func (s *batimentService) CreateUG(ctx context.Context, a Acteur, batimentID uuid.UUID, req dto.CreerUGRequest) (*dto.UGResponse, error) {
	if _, err := s.repo.FindByID(ctx, a.CompanyID, batimentID); err != nil {
		return nil, notFound(err)
	}
	u := &model.UG{
		CompanyID:  a.CompanyID,
		BatimentID: batimentID,
		Nom:        req.Nom,
		Nature:     req.Nature,
		Surface:    req.Surface,
	}
	if err := s.repo.CreateUG(ctx, u); err != nil {
		return nil, err
	}
	resp := ugToResponse(u)
	return &resp, nil
}

func (s *batimentService) ListUGs(ctx context.Context, a Acteur, batimentID uuid.UUID) ([]dto.UGResponse, error) {
	if _, err := s.repo.FindByID(ctx, a.CompanyID, batimentID); err != nil {
		return nil, notFound(err)
	}
	ugs, err := s.repo.ListUGs(ctx, a.CompanyID, batimentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UGResponse, 0, len(ugs))
	for i := range ugs {
		out = append(out, ugToResponse(&ugs[i]))
	}
	return out, nil
}

func batimentToResponse(b *model.Batiment) dto.BatimentResponse {
	return dto.BatimentResponse{ID: b.ID.String(), Nom: b.Nom, Adresse: b.Adresse}
}

func ugToResponse(u *model.UG) dto.UGResponse {
	return dto.UGResponse{
		ID:         u.ID.String(),
		BatimentID: u.BatimentID.String(),
		Nom:        u.Nom,
		Nature:     u.Nature,
		Surface:    u.Surface,
	}
}
