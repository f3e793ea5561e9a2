package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/apierror"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/daterange"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/dto"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/model"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PrixHandler serves the pricing windows of one price type. The router mounts
// one instance per type under /admin/prix-{type}-ugs.
type PrixHandler struct {
	svc      service.PeriodePrixService
	typePrix model.TypePrix
}

func NewPrixHandler(svc service.PeriodePrixService, typePrix model.TypePrix) *PrixHandler {
	return &PrixHandler{svc: svc, typePrix: typePrix}
}

// ListActive godoc
// @Summary      Prix en vigueur d'un bâtiment
// @Description  Périodes de prix dont l'intervalle contient la date (aujourd'hui par défaut).
// @Tags         prix
// @Security     BearerAuth
// @Param        type      path   string true  "pepiniere | centre | coworking"
// @Param        batiment  path   string true  "UUID du bâtiment"
// @Param        date      query  string false "AAAA-MM-JJ"
// @Success      200 {array}  dto.PeriodePrixResponse
// @Failure      400 {object} apierror.APIError
// @Router       /admin/prix-{type}-ugs/{batiment} [get]
func (h *PrixHandler) ListActive(c *gin.Context) {
	a, ok := acteur(c)
	if !ok {
		return
	}
	batimentID, ok := uuidParam(c, "batiment")
	if !ok {
		return
	}
	asOf := time.Now()
	if q := c.Query("date"); q != "" {
		d, err := daterange.Parse(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New(service.ErrDateInvalide.Error()))
			return
		}
		asOf = d
	}

	resp, err := h.svc.ListActivePeriods(c.Request.Context(), a, batimentID, h.typePrix, asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListHistory godoc
// @Summary      Historique des périodes de prix
// @Description  Périodes les plus récentes d'abord. next_cursor vaut null sur la dernière page.
// @Tags         prix
// @Security     BearerAuth
// @Param        type      path   string true  "pepiniere | centre | coworking"
// @Param        batiment  path   string true  "UUID du bâtiment"
// @Param        offset    query  int    false "Décalage (défaut 0)"
// @Param        limit     query  int    false "Taille de page (défaut 20, max 100)"
// @Success      200 {object} dto.PeriodePrixListResponse
// @Router       /admin/prix-{type}-ugs/{batiment}/historique [get]
func (h *PrixHandler) ListHistory(c *gin.Context) {
	a, ok := acteur(c)
	if !ok {
		return
	}
	batimentID, ok := uuidParam(c, "batiment")
	if !ok {
		return
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, err := h.svc.ListHistory(c.Request.Context(), a, batimentID, h.typePrix, offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export godoc
// @Summary      Export Excel de l'historique des prix
// @Tags         prix
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        type      path   string true  "pepiniere | centre | coworking"
// @Param        batiment  path   string true  "UUID du bâtiment"
// @Success      200 {file} file
// @Failure      404 {object} apierror.APIError
// @Router       /admin/prix-{type}-ugs/{batiment}/export [get]
func (h *PrixHandler) Export(c *gin.Context) {
	a, ok := acteur(c)
	if !ok {
		return
	}
	batimentID, ok := uuidParam(c, "batiment")
	if !ok {
		return
	}

	data, err := h.svc.ExportHistory(c.Request.Context(), a, batimentID, h.typePrix)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("prix-%s-%s.xlsx", h.typePrix, time.Now().Format(daterange.Layout))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Create godoc
// @Summary      Crée une période de prix
// @Description  Refusée si elle chevauche une période existante ou si une période sans fin existe déjà et que la nouvelle n'a pas de fin.
// @Tags         prix
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        type      path   string true "pepiniere | centre | coworking"
// @Param        batiment  path   string true "UUID du bâtiment"
// @Param        body      body   dto.PeriodePrixRequest true "Période et prix par UG"
// @Success      201 {object} dto.MessageResponse
// @Failure      400 {object} apierror.APIError
// @Failure      422 {object} apierror.ValidationError
// @Router       /admin/prix-{type}-ugs/{batiment} [post]
func (h *PrixHandler) Create(c *gin.Context) {
	a, ok := acteur(c)
	if !ok {
		return
	}
	batimentID, ok := uuidParam(c, "batiment")
	if !ok {
		return
	}
	var req dto.PeriodePrixRequest
	if !bindAndValidate(c, &req) {
		return
	}

	id, err := h.svc.InsertPeriod(c.Request.Context(), a, batimentID, h.typePrix, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{
		Message: "Les prix ont été ajoutés avec succès",
		ID:      id.String(),
	})
}

// Update godoc
// @Summary      Modifie une période de prix et ses lignes
// @Description  Toutes les lignes sont appliquées ou aucune.
// @Tags         prix
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        type      path   string true "pepiniere | centre | coworking"
// @Param        batiment  path   string true "UUID du bâtiment"
// @Param        periode   path   string true "UUID de la période"
// @Param        body      body   dto.PeriodePrixRequest true "Nouvelles dates et prix"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /admin/prix-{type}-ugs/{batiment}/{periode} [put]
func (h *PrixHandler) Update(c *gin.Context) {
	a, ok := acteur(c)
	if !ok {
		return
	}
	batimentID, ok := uuidParam(c, "batiment")
	if !ok {
		return
	}
	periodeID, ok := uuidParam(c, "periode")
	if !ok {
		return
	}
	var req dto.PeriodePrixRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.svc.UpdatePeriodRange(c.Request.Context(), a, batimentID, h.typePrix, periodeID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Les prix ont été mis à jour avec succès",
		ID:      periodeID.String(),
	})
}
