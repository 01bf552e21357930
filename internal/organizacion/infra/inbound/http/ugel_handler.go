package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ugelhub/convocatorias/internal/organizacion/application"
	"github.com/ugelhub/convocatorias/internal/organizacion/domain"
	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
	"github.com/ugelhub/convocatorias/pkg/utils"
)

type UgelHandler struct {
	service *application.OrganizacionService
}

func NewUgelHandler(service *application.OrganizacionService) *UgelHandler {
	return &UgelHandler{service: service}
}

// ListUgels endpoint GET /ugels
func (h *UgelHandler) ListUgels(c *gin.Context) {
	var criterias []shared.Criteria

	if regionID, ok := utils.FilterParam(c, "region_id"); ok {
		if id, err := uuid.Parse(regionID); err == nil {
			criterias = append(criterias, domain.RegionIDCriteria{ID: id})
		}
	}
	if estado, ok := utils.FilterParam(c, "status"); ok {
		criterias = append(criterias, domain.EstadoCriteria{Column: "u.estado", Estado: domain.Estado(estado)})
	}
	if term, ok := utils.SearchParam(c); ok {
		criterias = append(criterias, domain.UgelSearch(term))
	}

	page, perPage := utils.PageParams(c)
	result, err := h.service.ListUgels(c.Request.Context(), shared.And(criterias...), page, perPage)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	// Regiones activas para el dropdown de filtro.
	regiones, err := h.service.RegionesActivas(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ugels":    result,
		"regiones": regiones,
		"filtros": gin.H{
			"search":    c.Query("search"),
			"region_id": utils.EchoFilter(c, "region_id"),
			"status":    utils.EchoFilter(c, "status"),
		},
	})
}

// CreateUgel endpoint POST /ugels
func (h *UgelHandler) CreateUgel(c *gin.Context) {
	var req struct {
		RegionID  string `json:"region_id" binding:"required,uuid"`
		Nombre    string `json:"nombre" binding:"required"`
		Codigo    string `json:"codigo" binding:"required"`
		Direccion string `json:"direccion"`
		Telefono  string `json:"telefono"`
		Email     string `json:"email" binding:"omitempty,email"`
		Estado    string `json:"estado" binding:"omitempty,oneof=activo inactivo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if req.Estado == "" {
		req.Estado = string(domain.EstadoActivo)
	}

	ugel := &domain.Ugel{
		RegionID:  uuid.MustParse(req.RegionID),
		Nombre:    req.Nombre,
		Codigo:    req.Codigo,
		Direccion: req.Direccion,
		Telefono:  req.Telefono,
		Email:     req.Email,
		Estado:    domain.Estado(req.Estado),
	}

	ugel, err := h.service.CreateUgel(c.Request.Context(), ugel)
	if err != nil {
		if errors.Is(err, domain.ErrRegionNotFound) {
			utils.SendBadRequest(c, "la región indicada no existe")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusCreated, utils.FlashSuccess, "UGEL creada correctamente", ugel)
}

// GetUgel endpoint GET /ugels/:id
func (h *UgelHandler) GetUgel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid ugel id")
		return
	}

	ugel, err := h.service.GetUgel(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUgelNotFound) {
			utils.SendNotFound(c, "UGEL no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, ugel)
}

// UpdateUgel endpoint PUT /ugels/:id
func (h *UgelHandler) UpdateUgel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid ugel id")
		return
	}

	var req struct {
		RegionID  *string `json:"region_id,omitempty" binding:"omitempty,uuid"`
		Nombre    *string `json:"nombre,omitempty"`
		Codigo    *string `json:"codigo,omitempty"`
		Direccion *string `json:"direccion,omitempty"`
		Telefono  *string `json:"telefono,omitempty"`
		Email     *string `json:"email,omitempty" binding:"omitempty,email"`
		Estado    *string `json:"estado,omitempty" binding:"omitempty,oneof=activo inactivo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	ugel, err := h.service.GetUgel(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUgelNotFound) {
			utils.SendNotFound(c, "UGEL no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	if req.RegionID != nil {
		ugel.RegionID = uuid.MustParse(*req.RegionID)
	}
	if req.Nombre != nil {
		ugel.Nombre = *req.Nombre
	}
	if req.Codigo != nil {
		ugel.Codigo = *req.Codigo
	}
	if req.Direccion != nil {
		ugel.Direccion = *req.Direccion
	}
	if req.Telefono != nil {
		ugel.Telefono = *req.Telefono
	}
	if req.Email != nil {
		ugel.Email = *req.Email
	}
	if req.Estado != nil {
		ugel.Estado = domain.Estado(*req.Estado)
	}

	if err := h.service.UpdateUgel(c.Request.Context(), ugel); err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "UGEL actualizada correctamente", ugel)
}

// DeleteUgel endpoint DELETE /ugels/:id
func (h *UgelHandler) DeleteUgel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid ugel id")
		return
	}

	outcome, err := h.service.DeleteUgel(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUgelNotFound) {
			utils.SendNotFound(c, "UGEL no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}
	if outcome.Blocked {
		utils.SendFlash(c, http.StatusConflict, utils.FlashError, outcome.BlockedMessage(), nil)
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "UGEL eliminada correctamente", nil)
}
