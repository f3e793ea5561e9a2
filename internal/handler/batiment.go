package handler

import (
	"net/http"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/dto"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/service"

	"github.com/gin-gonic/gin"
)

type BatimentHandler struct{ svc service.BatimentService }

func NewBatimentHandler(svc service.BatimentService) *BatimentHandler {
	return &BatimentHandler{svc: svc}
}

// List godoc
// @Summary  Bâtiments de la société
// @Tags     batiments
// @Security BearerAuth
// @Success  200 {array} dto.BatimentResponse
// @Router   /admin/batiments [get]
func (h *BatimentHandler) List(c *gin.Context) {
	a, ok := acteur(c)
	if !ok {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary  Crée un bâtiment
// @Tags     batiments
// @Accept   json
// @Security BearerAuth
// @Param    body body dto.CreerBatimentRequest true "Bâtiment"
// @Success  201 {object} dto.BatimentResponse
// @Failure  422 {object} apierror.ValidationError
// @Router   /admin/batiments [post]
func (h *BatimentHandler) Create(c *gin.Context) {
	a, ok := acteur(c)
	if !ok {
		return
	}
	var req dto.CreerBatimentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), a, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListUGs godoc
// @Summary  UG d'un bâtiment
// @Tags     batiments
// @Security BearerAuth
// @Param    id path string true "UUID du bâtiment"
// @Success  200 {array} dto.UGResponse
// @Failure  404 {object} apierror.APIError
// @Router   /admin/batiments/{id}/ugs [get]
func (h *BatimentHandler) ListUGs(c *gin.Context) {
	a, ok := acteur(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListUGs(c.Request.Context(), a, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateUG godoc
// @Summary  Ajoute une UG à un bâtiment
// @Tags     batiments
// @Accept   json
// @Security BearerAuth
// @Param    id   path string true "UUID du bâtiment"
// @Param    body body dto.CreerUGRequest true "UG"
// @Success  201 {object} dto.UGResponse
// @Failure  404 {object} apierror.APIError
// @Router   /admin/batiments/{id}/ugs [post]
func (h *BatimentHandler) CreateUG(c *gin.Context) {
	a, ok := acteur(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.CreerUGRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateUG(c.Request.Context(), a, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
