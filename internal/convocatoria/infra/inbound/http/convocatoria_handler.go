package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ugelhub/convocatorias/internal/convocatoria/application"
	"github.com/ugelhub/convocatorias/internal/convocatoria/domain"
	orgApplication "github.com/ugelhub/convocatorias/internal/organizacion/application"
	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
	"github.com/ugelhub/convocatorias/pkg/utils"
)

type ConvocatoriaHandler struct {
	service *application.ConvocatoriaService
	// organizacion alimenta las listas de padres activos de los filtros.
	organizacion *orgApplication.OrganizacionService
}

func NewConvocatoriaHandler(service *application.ConvocatoriaService, organizacion *orgApplication.OrganizacionService) *ConvocatoriaHandler {
	return &ConvocatoriaHandler{service: service, organizacion: organizacion}
}

// ListConvocatorias endpoint GET /convocatorias
func (h *ConvocatoriaHandler) ListConvocatorias(c *gin.Context) {
	var criterias []shared.Criteria

	if ugelID, ok := utils.FilterParam(c, "ugel_id"); ok {
		if id, err := uuid.Parse(ugelID); err == nil {
			criterias = append(criterias, domain.UgelIDCriteria{ID: id})
		}
	}
	if year, ok := utils.FilterParam(c, "year"); ok {
		if anio, err := strconv.Atoi(year); err == nil {
			criterias = append(criterias, domain.AnioCriteria{Anio: anio})
		}
	}
	if tipo, ok := utils.FilterParam(c, "process_type"); ok {
		criterias = append(criterias, domain.TipoProcesoCriteria{Tipo: domain.TipoProceso(tipo)})
	}
	if estado, ok := utils.FilterParam(c, "status"); ok {
		criterias = append(criterias, domain.EstadoCriteria{Column: "c.estado", Estado: estado})
	}
	if term, ok := utils.SearchParam(c); ok {
		criterias = append(criterias, domain.ConvocatoriaSearch(term))
	}

	page, perPage := utils.PageParams(c)
	result, err := h.service.ListConvocatorias(c.Request.Context(), shared.And(criterias...), page, perPage)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	ugels, err := h.organizacion.UgelsActivas(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"convocatorias": result,
		"ugels":         ugels,
		"filtros": gin.H{
			"search":       c.Query("search"),
			"ugel_id":      utils.EchoFilter(c, "ugel_id"),
			"year":         utils.EchoFilter(c, "year"),
			"process_type": utils.EchoFilter(c, "process_type"),
			"status":       utils.EchoFilter(c, "status"),
		},
	})
}

type convocatoriaRequest struct {
	UgelID           string    `json:"ugel_id" binding:"required,uuid"`
	CreatedBy        string    `json:"created_by" binding:"required,uuid"`
	Titulo           string    `json:"titulo" binding:"required"`
	Descripcion      string    `json:"descripcion"`
	Anio             int       `json:"anio" binding:"required"`
	TipoProceso      string    `json:"tipo_proceso" binding:"required,oneof=contratacion nombramiento"`
	FechaInicio      time.Time `json:"fecha_inicio" binding:"required"`
	FechaFin         time.Time `json:"fecha_fin" binding:"required"`
	InscripcionDesde time.Time `json:"inscripcion_desde" binding:"required"`
	InscripcionHasta time.Time `json:"inscripcion_hasta" binding:"required"`
	TotalPlazas      int       `json:"total_plazas" binding:"min=0"`
}

// CreateConvocatoria endpoint POST /convocatorias
func (h *ConvocatoriaHandler) CreateConvocatoria(c *gin.Context) {
	var req convocatoriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	conv := &domain.Convocatoria{
		UgelID:           uuid.MustParse(req.UgelID),
		CreatedBy:        uuid.MustParse(req.CreatedBy),
		Titulo:           req.Titulo,
		Descripcion:      req.Descripcion,
		Anio:             req.Anio,
		TipoProceso:      domain.TipoProceso(req.TipoProceso),
		FechaInicio:      req.FechaInicio,
		FechaFin:         req.FechaFin,
		InscripcionDesde: req.InscripcionDesde,
		InscripcionHasta: req.InscripcionHasta,
		Estado:           domain.ConvocatoriaBorrador,
		TotalPlazas:      req.TotalPlazas,
	}

	conv, err := h.service.CreateConvocatoria(c.Request.Context(), conv)
	if err != nil {
		if errors.Is(err, domain.ErrConvocatoriaUgelInvalida) {
			utils.SendBadRequest(c, "la UGEL indicada no existe")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusCreated, utils.FlashSuccess, "Convocatoria creada correctamente", conv)
}

// GetConvocatoria endpoint GET /convocatorias/:id
func (h *ConvocatoriaHandler) GetConvocatoria(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid convocatoria id")
		return
	}

	conv, err := h.service.GetConvocatoria(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrConvocatoriaNotFound) {
			utils.SendNotFound(c, "Convocatoria no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, conv)
}

// UpdateConvocatoria endpoint PUT /convocatorias/:id
func (h *ConvocatoriaHandler) UpdateConvocatoria(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid convocatoria id")
		return
	}

	var req struct {
		UgelID           *string    `json:"ugel_id,omitempty" binding:"omitempty,uuid"`
		Titulo           *string    `json:"titulo,omitempty"`
		Descripcion      *string    `json:"descripcion,omitempty"`
		Anio             *int       `json:"anio,omitempty"`
		TipoProceso      *string    `json:"tipo_proceso,omitempty" binding:"omitempty,oneof=contratacion nombramiento"`
		FechaInicio      *time.Time `json:"fecha_inicio,omitempty"`
		FechaFin         *time.Time `json:"fecha_fin,omitempty"`
		InscripcionDesde *time.Time `json:"inscripcion_desde,omitempty"`
		InscripcionHasta *time.Time `json:"inscripcion_hasta,omitempty"`
		TotalPlazas      *int       `json:"total_plazas,omitempty" binding:"omitempty,min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	conv, err := h.service.GetConvocatoria(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrConvocatoriaNotFound) {
			utils.SendNotFound(c, "Convocatoria no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	if req.UgelID != nil {
		conv.UgelID = uuid.MustParse(*req.UgelID)
	}
	if req.Titulo != nil {
		conv.Titulo = *req.Titulo
	}
	if req.Descripcion != nil {
		conv.Descripcion = *req.Descripcion
	}
	if req.Anio != nil {
		conv.Anio = *req.Anio
	}
	if req.TipoProceso != nil {
		conv.TipoProceso = domain.TipoProceso(*req.TipoProceso)
	}
	if req.FechaInicio != nil {
		conv.FechaInicio = *req.FechaInicio
	}
	if req.FechaFin != nil {
		conv.FechaFin = *req.FechaFin
	}
	if req.InscripcionDesde != nil {
		conv.InscripcionDesde = *req.InscripcionDesde
	}
	if req.InscripcionHasta != nil {
		conv.InscripcionHasta = *req.InscripcionHasta
	}
	if req.TotalPlazas != nil {
		conv.TotalPlazas = *req.TotalPlazas
	}

	if err := h.service.UpdateConvocatoria(c.Request.Context(), conv); err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Convocatoria actualizada correctamente", conv)
}

// Endpoints de ciclo de vida: POST /convocatorias/:id/{publicar,activar,cerrar,cancelar}

func (h *ConvocatoriaHandler) Publicar(c *gin.Context) {
	h.transicion(c, (*domain.Convocatoria).Publicar, "Convocatoria publicada")
}

func (h *ConvocatoriaHandler) Activar(c *gin.Context) {
	h.transicion(c, (*domain.Convocatoria).Activar, "Convocatoria activada")
}

func (h *ConvocatoriaHandler) Cerrar(c *gin.Context) {
	h.transicion(c, (*domain.Convocatoria).Cerrar, "Convocatoria cerrada")
}

func (h *ConvocatoriaHandler) Cancelar(c *gin.Context) {
	h.transicion(c, (*domain.Convocatoria).Cancelar, "Convocatoria cancelada")
}

func (h *ConvocatoriaHandler) transicion(c *gin.Context, fn func(*domain.Convocatoria) error, mensaje string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid convocatoria id")
		return
	}

	conv, err := h.service.CambiarEstado(c.Request.Context(), id, fn)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConvocatoriaNotFound):
			utils.SendNotFound(c, "Convocatoria no encontrada")
		case errors.Is(err, domain.ErrTransicionInvalida):
			utils.SendFlash(c, http.StatusConflict, utils.FlashError, err.Error(), nil)
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, mensaje, conv)
}

// DeleteConvocatoria endpoint DELETE /convocatorias/:id
func (h *ConvocatoriaHandler) DeleteConvocatoria(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid convocatoria id")
		return
	}

	outcome, err := h.service.DeleteConvocatoria(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrConvocatoriaNotFound) {
			utils.SendNotFound(c, "Convocatoria no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}
	if outcome.Blocked {
		utils.SendFlash(c, http.StatusConflict, utils.FlashError, outcome.BlockedMessage(), nil)
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Convocatoria eliminada correctamente", nil)
}
