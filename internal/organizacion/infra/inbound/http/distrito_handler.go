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

type DistritoHandler struct {
	service *application.OrganizacionService
}

func NewDistritoHandler(service *application.OrganizacionService) *DistritoHandler {
	return &DistritoHandler{service: service}
}

// ListDistritos endpoint GET /distritos
func (h *DistritoHandler) ListDistritos(c *gin.Context) {
	var criterias []shared.Criteria

	if ugelID, ok := utils.FilterParam(c, "ugel_id"); ok {
		if id, err := uuid.Parse(ugelID); err == nil {
			criterias = append(criterias, domain.UgelIDCriteria{ID: id})
		}
	}
	if estado, ok := utils.FilterParam(c, "status"); ok {
		criterias = append(criterias, domain.EstadoCriteria{Column: "d.estado", Estado: domain.Estado(estado)})
	}
	if term, ok := utils.SearchParam(c); ok {
		criterias = append(criterias, domain.DistritoSearch(term))
	}

	page, perPage := utils.PageParams(c)
	result, err := h.service.ListDistritos(c.Request.Context(), shared.And(criterias...), page, perPage)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	ugels, err := h.service.UgelsActivas(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"distritos": result,
		"ugels":     ugels,
		"filtros": gin.H{
			"search":  c.Query("search"),
			"ugel_id": utils.EchoFilter(c, "ugel_id"),
			"status":  utils.EchoFilter(c, "status"),
		},
	})
}

// CreateDistrito endpoint POST /distritos
func (h *DistritoHandler) CreateDistrito(c *gin.Context) {
	var req struct {
		UgelID string `json:"ugel_id" binding:"required,uuid"`
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

	distrito := &domain.Distrito{
		UgelID: uuid.MustParse(req.UgelID),
		Nombre: req.Nombre,
		Codigo: req.Codigo,
		Estado: domain.Estado(req.Estado),
	}

	distrito, err := h.service.CreateDistrito(c.Request.Context(), distrito)
	if err != nil {
		if errors.Is(err, domain.ErrUgelNotFound) {
			utils.SendBadRequest(c, "la UGEL indicada no existe")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusCreated, utils.FlashSuccess, "Distrito creado correctamente", distrito)
}

// GetDistrito endpoint GET /distritos/:id
func (h *DistritoHandler) GetDistrito(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid distrito id")
		return
	}

	distrito, err := h.service.GetDistrito(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDistritoNotFound) {
			utils.SendNotFound(c, "Distrito no encontrado")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, distrito)
}

// UpdateDistrito endpoint PUT /distritos/:id
func (h *DistritoHandler) UpdateDistrito(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid distrito id")
		return
	}

	var req struct {
		UgelID *string `json:"ugel_id,omitempty" binding:"omitempty,uuid"`
		Nombre *string `json:"nombre,omitempty"`
		Codigo *string `json:"codigo,omitempty"`
		Estado *string `json:"estado,omitempty" binding:"omitempty,oneof=activo inactivo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	distrito, err := h.service.GetDistrito(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDistritoNotFound) {
			utils.SendNotFound(c, "Distrito no encontrado")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	if req.UgelID != nil {
		distrito.UgelID = uuid.MustParse(*req.UgelID)
	}
	if req.Nombre != nil {
		distrito.Nombre = *req.Nombre
	}
	if req.Codigo != nil {
		distrito.Codigo = *req.Codigo
	}
	if req.Estado != nil {
		distrito.Estado = domain.Estado(*req.Estado)
	}

	if err := h.service.UpdateDistrito(c.Request.Context(), distrito); err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Distrito actualizado correctamente", distrito)
}

// DeleteDistrito endpoint DELETE /distritos/:id
func (h *DistritoHandler) DeleteDistrito(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid distrito id")
		return
	}

	outcome, err := h.service.DeleteDistrito(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDistritoNotFound) {
			utils.SendNotFound(c, "Distrito no encontrado")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}
	if outcome.Blocked {
		utils.SendFlash(c, http.StatusConflict, utils.FlashError, outcome.BlockedMessage(), nil)
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Distrito eliminado correctamente", nil)
}
