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

type InstitucionHandler struct {
	service *application.OrganizacionService
}

func NewInstitucionHandler(service *application.OrganizacionService) *InstitucionHandler {
	return &InstitucionHandler{service: service}
}

// ListInstituciones endpoint GET /instituciones
func (h *InstitucionHandler) ListInstituciones(c *gin.Context) {
	var criterias []shared.Criteria

	if distritoID, ok := utils.FilterParam(c, "distrito_id"); ok {
		if id, err := uuid.Parse(distritoID); err == nil {
			criterias = append(criterias, domain.DistritoIDCriteria{ID: id})
		}
	}
	if nivel, ok := utils.FilterParam(c, "nivel"); ok {
		criterias = append(criterias, domain.NivelCriteria{Nivel: domain.Nivel(nivel)})
	}
	if modalidad, ok := utils.FilterParam(c, "modalidad"); ok {
		criterias = append(criterias, domain.ModalidadCriteria{Modalidad: domain.Modalidad(modalidad)})
	}
	if estado, ok := utils.FilterParam(c, "status"); ok {
		criterias = append(criterias, domain.EstadoCriteria{Column: "i.estado", Estado: domain.Estado(estado)})
	}
	if term, ok := utils.SearchParam(c); ok {
		criterias = append(criterias, domain.InstitucionSearch(term))
	}

	page, perPage := utils.PageParams(c)
	result, err := h.service.ListInstituciones(c.Request.Context(), shared.And(criterias...), page, perPage)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	distritos, err := h.service.DistritosActivos(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"instituciones": result,
		"distritos":     distritos,
		"filtros": gin.H{
			"search":      c.Query("search"),
			"distrito_id": utils.EchoFilter(c, "distrito_id"),
			"nivel":       utils.EchoFilter(c, "nivel"),
			"modalidad":   utils.EchoFilter(c, "modalidad"),
			"status":      utils.EchoFilter(c, "status"),
		},
	})
}

// CreateInstitucion endpoint POST /instituciones
func (h *InstitucionHandler) CreateInstitucion(c *gin.Context) {
	var req struct {
		DistritoID string `json:"distrito_id" binding:"required,uuid"`
		Nombre     string `json:"nombre" binding:"required"`
		Codigo     string `json:"codigo" binding:"required"`
		Nivel      string `json:"nivel" binding:"required,oneof=inicial primaria secundaria"`
		Modalidad  string `json:"modalidad" binding:"required,oneof=EBR EBA EBE"`
		Direccion  string `json:"direccion"`
		Estado     string `json:"estado" binding:"omitempty,oneof=activo inactivo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if req.Estado == "" {
		req.Estado = string(domain.EstadoActivo)
	}

	inst := &domain.Institucion{
		DistritoID: uuid.MustParse(req.DistritoID),
		Nombre:     req.Nombre,
		Codigo:     req.Codigo,
		Nivel:      domain.Nivel(req.Nivel),
		Modalidad:  domain.Modalidad(req.Modalidad),
		Direccion:  req.Direccion,
		Estado:     domain.Estado(req.Estado),
	}

	inst, err := h.service.CreateInstitucion(c.Request.Context(), inst)
	if err != nil {
		if errors.Is(err, domain.ErrDistritoNotFound) {
			utils.SendBadRequest(c, "el distrito indicado no existe")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusCreated, utils.FlashSuccess, "Institución educativa creada correctamente", inst)
}

// GetInstitucion endpoint GET /instituciones/:id
func (h *InstitucionHandler) GetInstitucion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid institucion id")
		return
	}

	inst, err := h.service.GetInstitucion(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrInstitucionNotFound) {
			utils.SendNotFound(c, "Institución no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, inst)
}

// UpdateInstitucion endpoint PUT /instituciones/:id
func (h *InstitucionHandler) UpdateInstitucion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid institucion id")
		return
	}

	var req struct {
		DistritoID *string `json:"distrito_id,omitempty" binding:"omitempty,uuid"`
		Nombre     *string `json:"nombre,omitempty"`
		Codigo     *string `json:"codigo,omitempty"`
		Nivel      *string `json:"nivel,omitempty" binding:"omitempty,oneof=inicial primaria secundaria"`
		Modalidad  *string `json:"modalidad,omitempty" binding:"omitempty,oneof=EBR EBA EBE"`
		Direccion  *string `json:"direccion,omitempty"`
		Estado     *string `json:"estado,omitempty" binding:"omitempty,oneof=activo inactivo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	inst, err := h.service.GetInstitucion(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrInstitucionNotFound) {
			utils.SendNotFound(c, "Institución no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	if req.DistritoID != nil {
		inst.DistritoID = uuid.MustParse(*req.DistritoID)
	}
	if req.Nombre != nil {
		inst.Nombre = *req.Nombre
	}
	if req.Codigo != nil {
		inst.Codigo = *req.Codigo
	}
	if req.Nivel != nil {
		inst.Nivel = domain.Nivel(*req.Nivel)
	}
	if req.Modalidad != nil {
		inst.Modalidad = domain.Modalidad(*req.Modalidad)
	}
	if req.Direccion != nil {
		inst.Direccion = *req.Direccion
	}
	if req.Estado != nil {
		inst.Estado = domain.Estado(*req.Estado)
	}

	if err := h.service.UpdateInstitucion(c.Request.Context(), inst); err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Institución educativa actualizada correctamente", inst)
}

// DeleteInstitucion endpoint DELETE /instituciones/:id
func (h *InstitucionHandler) DeleteInstitucion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid institucion id")
		return
	}

	outcome, err := h.service.DeleteInstitucion(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrInstitucionNotFound) {
			utils.SendNotFound(c, "Institución no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}
	if outcome.Blocked {
		utils.SendFlash(c, http.StatusConflict, utils.FlashError, outcome.BlockedMessage(), nil)
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Institución educativa eliminada correctamente", nil)
}
