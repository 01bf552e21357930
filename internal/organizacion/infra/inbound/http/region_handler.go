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

// RegionHandler encapsula los endpoints HTTP de regiones.
type RegionHandler struct {
	service *application.OrganizacionService
}

func NewRegionHandler(service *application.OrganizacionService) *RegionHandler {
	return &RegionHandler{service: service}
}

// ListRegiones endpoint GET /regiones
func (h *RegionHandler) ListRegiones(c *gin.Context) {
	var criterias []shared.Criteria

	if estado, ok := utils.FilterParam(c, "status"); ok {
		criterias = append(criterias, domain.EstadoCriteria{Column: "r.estado", Estado: domain.Estado(estado)})
	}
	if term, ok := utils.SearchParam(c); ok {
		criterias = append(criterias, domain.RegionSearch(term))
	}

	page, perPage := utils.PageParams(c)
	result, err := h.service.ListRegiones(c.Request.Context(), shared.And(criterias...), page, perPage)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"regiones": result,
		"filtros": gin.H{
			"search": c.Query("search"),
			"status": utils.EchoFilter(c, "status"),
		},
	})
}

// CreateRegion endpoint POST /regiones
func (h *RegionHandler) CreateRegion(c *gin.Context) {
	var req struct {
		Nombre string `json:"nombre" binding:"required"`
		Codigo string `json:"codigo" binding:"required"`
		Estado string `json:"estado" binding:"omitempty,oneof=activo inactivo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if req.Estado == "" {
		req.Estado = string(domain.EstadoActivo)
	}

	region, err := h.service.CreateRegion(c.Request.Context(), req.Nombre, req.Codigo, domain.Estado(req.Estado))
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusCreated, utils.FlashSuccess, "Región creada correctamente", region)
}

// GetRegion endpoint GET /regiones/:id
func (h *RegionHandler) GetRegion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid region id")
		return
	}

	region, err := h.service.GetRegion(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRegionNotFound) {
			utils.SendNotFound(c, "región no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, region)
}

// UpdateRegion endpoint PUT /regiones/:id
func (h *RegionHandler) UpdateRegion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid region id")
		return
	}

	var req struct {
		Nombre *string `json:"nombre,omitempty"`
		Codigo *string `json:"codigo,omitempty"`
		Estado *string `json:"estado,omitempty" binding:"omitempty,oneof=activo inactivo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	region, err := h.service.GetRegion(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRegionNotFound) {
			utils.SendNotFound(c, "región no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	if req.Nombre != nil {
		region.Nombre = *req.Nombre
	}
	if req.Codigo != nil {
		region.Codigo = *req.Codigo
	}
	if req.Estado != nil {
		region.Estado = domain.Estado(*req.Estado)
	}

	if err := h.service.UpdateRegion(c.Request.Context(), region); err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Región actualizada correctamente", region)
}

// DeleteRegion endpoint DELETE /regiones/:id
func (h *RegionHandler) DeleteRegion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid region id")
		return
	}

	outcome, err := h.service.DeleteRegion(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRegionNotFound) {
			utils.SendNotFound(c, "región no encontrada")
			return
		}
		// Un fallo inesperado deja la fila intacta; nunca se fuerza el borrado.
		utils.SendInternalServerError(c, err.Error())
		return
	}
	if outcome.Blocked {
		utils.SendFlash(c, http.StatusConflict, utils.FlashError, outcome.BlockedMessage(), nil)
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Región eliminada correctamente", nil)
}
