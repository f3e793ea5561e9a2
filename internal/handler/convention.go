package handler

import (
	"net/http"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/dto"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ConventionHandler struct{ svc service.ConventionService }

func NewConventionHandler(svc service.ConventionService) *ConventionHandler {
	return &ConventionHandler{svc: svc}
}

// Create godoc
// @Summary      Crée une convention (version 1, INITIAL)
// @Tags         conventions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreerConventionRequest true "Convention et UG affectées"
// @Success      201 {object} dto.AvenantResponse
// @Failure      400 {object} apierror.APIError
// @Failure      422 {object} apierror.ValidationError
// @Router       /convention [post]
func (h *ConventionHandler) Create(c *gin.Context) {
	a, ok := acteur(c)
	if !ok {
		return
	}
	var req dto.CreerConventionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateConvention(c.Request.Context(), a, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// amend runs an amendment on /:id/:version once the body became a delta.
func (h *ConventionHandler) amend(c *gin.Context, message string, build func() (service.Delta, error)) {
	a, ok := acteur(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	version, ok := versionParam(c)
	if !ok {
		return
	}
	delta, err := build()
	if err != nil {
		respondError(c, err)
		return
	}
	next, err := h.svc.CreateAmendment(c.Request.Context(), a, id, version, delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, avenantResponse(message, id, next))
}

// AvenantLocal godoc
// @Summary      Avenant local : ajout ou retrait d'une UG
// @Tags         conventions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string true "UUID de la convention"
// @Param        version path int    true "Version courante"
// @Param        body    body dto.AvenantLocalRequest true "Ajout ou retrait"
// @Success      201 {object} dto.AvenantResponse
// @Failure      400 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /convention/avenant-local/{id}/{version} [post]
func (h *ConventionHandler) AvenantLocal(c *gin.Context) {
	var req dto.AvenantLocalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.amend(c, "L'avenant local a été enregistré", func() (service.Delta, error) {
		return service.DeltaFromAvenantLocal(req)
	})
}

// AvenantEquipement godoc
// @Summary      Avenant équipement : ajout ou retrait d'un équipement facturé
// @Tags         conventions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string true "UUID de la convention"
// @Param        version path int    true "Version courante"
// @Param        body    body dto.AvenantEquipementRequest true "Ajout ou retrait"
// @Success      201 {object} dto.AvenantResponse
// @Failure      400 {object} apierror.APIError
// @Router       /convention/avenant-equipement/{id}/{version} [post]
func (h *ConventionHandler) AvenantEquipement(c *gin.Context) {
	var req dto.AvenantEquipementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.amend(c, "L'avenant équipement a été enregistré", func() (service.Delta, error) {
		return service.DeltaFromAvenantEquipement(req)
	})
}

// AvenantStatutJuridique godoc
// @Summary      Avenant statut juridique
// @Tags         conventions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string true "UUID de la convention"
// @Param        version path int    true "Version courante"
// @Param        body    body dto.AvenantStatutJuridiqueRequest true "Nouveau statut"
// @Success      201 {object} dto.AvenantResponse
// @Failure      400 {object} apierror.APIError
// @Router       /convention/avenant-statut-juridique/{id}/{version} [post]
func (h *ConventionHandler) AvenantStatutJuridique(c *gin.Context) {
	var req dto.AvenantStatutJuridiqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.amend(c, "L'avenant statut juridique a été enregistré", func() (service.Delta, error) {
		return service.DeltaFromStatutJuridique(req)
	})
}

// AvenantEntite godoc
// @Summary      Avenant entité : changement de raison sociale
// @Tags         conventions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string true "UUID de la convention"
// @Param        version path int    true "Version courante"
// @Param        body    body dto.AvenantEntiteRequest true "Nouvelle raison sociale"
// @Success      201 {object} dto.AvenantResponse
// @Failure      400 {object} apierror.APIError
// @Router       /convention/avenant-entite/{id}/{version} [post]
func (h *ConventionHandler) AvenantEntite(c *gin.Context) {
	var req dto.AvenantEntiteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.amend(c, "L'avenant entité a été enregistré", func() (service.Delta, error) {
		return service.DeltaFromEntite(req)
	})
}

// Resiliation godoc
// @Summary      Résilie la convention
// @Description  Ferme toutes les lignes en cours à la date de résiliation. Plus aucun avenant n'est possible ensuite.
// @Tags         conventions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string true "UUID de la convention"
// @Param        version path int    true "Version courante"
// @Param        body    body dto.ResiliationRequest true "Date de résiliation"
// @Success      201 {object} dto.AvenantResponse
// @Failure      400 {object} apierror.APIError
// @Router       /convention/resiliation/{id}/{version} [post]
func (h *ConventionHandler) Resiliation(c *gin.Context) {
	a, ok := acteur(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	version, ok := versionParam(c)
	if !ok {
		return
	}
	var req dto.ResiliationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	next, err := h.svc.Terminate(c.Request.Context(), a, id, version, req.DateResiliation)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, avenantResponse("La convention a été résiliée", id, next))
}

// Infos godoc
// @Summary      Contenu d'une version de convention
// @Tags         conventions
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string true "UUID de la convention"
// @Param        version path int    true "Numéro de version"
// @Success      200 {object} dto.ConventionInfosResponse
// @Failure      404 {object} apierror.APIError
// @Router       /convention/infos/{id}/{version} [get]
func (h *ConventionHandler) Infos(c *gin.Context) {
	a, ok := acteur(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	version, ok := versionParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetVersion(c.Request.Context(), a, id, version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Versions godoc
// @Summary      Versions d'une convention, la dernière marquée "derniere"
// @Tags         conventions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la convention"
// @Success      200 {array}  dto.ConventionVersionResponse
// @Failure      404 {object} apierror.APIError
// @Router       /convention/versions/{id} [get]
func (h *ConventionHandler) Versions(c *gin.Context) {
	a, ok := acteur(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListVersions(c.Request.Context(), a, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func avenantResponse(message string, id uuid.UUID, version int) dto.AvenantResponse {
	return dto.AvenantResponse{Message: message, ConventionID: id.String(), Version: version}
}
