package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ugelhub/convocatorias/internal/convocatoria/application"
	"github.com/ugelhub/convocatorias/internal/convocatoria/domain"
	orgApplication "github.com/ugelhub/convocatorias/internal/organizacion/application"
	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
	"github.com/ugelhub/convocatorias/pkg/utils"
)

type PlazaHandler struct {
	service      *application.ConvocatoriaService
	organizacion *orgApplication.OrganizacionService
}

func NewPlazaHandler(service *application.ConvocatoriaService, organizacion *orgApplication.OrganizacionService) *PlazaHandler {
	return &PlazaHandler{service: service, organizacion: organizacion}
}

// ListPlazas endpoint GET /plazas
func (h *PlazaHandler) ListPlazas(c *gin.Context) {
	var criterias []shared.Criteria

	if convID, ok := utils.FilterParam(c, "convocatoria_id"); ok {
		if id, err := uuid.Parse(convID); err == nil {
			criterias = append(criterias, domain.ConvocatoriaIDCriteria{ID: id})
		}
	}
	if instID, ok := utils.FilterParam(c, "institucion_id"); ok {
		if id, err := uuid.Parse(instID); err == nil {
			criterias = append(criterias, domain.InstitucionIDCriteria{ID: id})
		}
	}
	if nivel, ok := utils.FilterParam(c, "nivel"); ok {
		criterias = append(criterias, domain.NivelCriteria{Nivel: nivel})
	}
	if jornada, ok := utils.FilterParam(c, "jornada"); ok {
		if horas, err := strconv.Atoi(jornada); err == nil {
			criterias = append(criterias, domain.JornadaCriteria{Jornada: domain.Jornada(horas)})
		}
	}
	if estado, ok := utils.FilterParam(c, "status"); ok {
		criterias = append(criterias, domain.EstadoCriteria{Column: "p.estado", Estado: estado})
	}
	if term, ok := utils.SearchParam(c); ok {
		criterias = append(criterias, domain.PlazaSearch(term))
	}

	page, perPage := utils.PageParams(c)
	result, err := h.service.ListPlazas(c.Request.Context(), shared.And(criterias...), page, perPage)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	// Convocatorias abiertas (con cupo restante) e instituciones activas
	// para los filtros del formulario de creación.
	convocatorias, err := h.service.ConvocatoriasAbiertas(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}
	instituciones, err := h.organizacion.InstitucionesActivas(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plazas":        result,
		"convocatorias": convocatorias,
		"instituciones": instituciones,
		"filtros": gin.H{
			"search":          c.Query("search"),
			"convocatoria_id": utils.EchoFilter(c, "convocatoria_id"),
			"institucion_id":  utils.EchoFilter(c, "institucion_id"),
			"nivel":           utils.EchoFilter(c, "nivel"),
			"jornada":         utils.EchoFilter(c, "jornada"),
			"status":          utils.EchoFilter(c, "status"),
		},
	})
}

// CreatePlaza endpoint POST /plazas
func (h *PlazaHandler) CreatePlaza(c *gin.Context) {
	var req struct {
		ConvocatoriaID string  `json:"convocatoria_id" binding:"required,uuid"`
		InstitucionID  string  `json:"institucion_id" binding:"required,uuid"`
		CodigoPlaza    string  `json:"codigo_plaza" binding:"required"`
		Cargo          string  `json:"cargo" binding:"required"`
		Nivel          string  `json:"nivel" binding:"required,oneof=inicial primaria secundaria"`
		Especialidad   string  `json:"especialidad"`
		Jornada        int     `json:"jornada" binding:"required,oneof=25 30 40"`
		MontoPago      float64 `json:"monto_pago" binding:"min=0"`
		Vacantes       int     `json:"vacantes" binding:"required,min=1"`
		MotivoVacante  string  `json:"motivo_vacante"`
		Requisitos     string  `json:"requisitos"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	plaza := &domain.Plaza{
		ConvocatoriaID: uuid.MustParse(req.ConvocatoriaID),
		InstitucionID:  uuid.MustParse(req.InstitucionID),
		CodigoPlaza:    req.CodigoPlaza,
		Cargo:          req.Cargo,
		Nivel:          req.Nivel,
		Especialidad:   req.Especialidad,
		Jornada:        domain.Jornada(req.Jornada),
		MontoPago:      req.MontoPago,
		Vacantes:       req.Vacantes,
		MotivoVacante:  req.MotivoVacante,
		Requisitos:     req.Requisitos,
		Estado:         domain.PlazaActiva,
	}

	plaza, err := h.service.CreatePlaza(c.Request.Context(), plaza)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConvocatoriaNotFound):
			utils.SendBadRequest(c, "la convocatoria indicada no existe")
		case errors.Is(err, domain.ErrPlazaInstitucionInvalida):
			utils.SendBadRequest(c, "la institución indicada no existe")
		case errors.Is(err, domain.ErrJornadaInvalida):
			utils.SendBadRequest(c, err.Error())
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	utils.SendFlash(c, http.StatusCreated, utils.FlashSuccess, "Plaza creada correctamente", plaza)
}

// GetPlaza endpoint GET /plazas/:id
func (h *PlazaHandler) GetPlaza(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid plaza id")
		return
	}

	plaza, err := h.service.GetPlaza(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPlazaNotFound) {
			utils.SendNotFound(c, "Plaza no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, plaza)
}

// UpdatePlaza endpoint PUT /plazas/:id
func (h *PlazaHandler) UpdatePlaza(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid plaza id")
		return
	}

	var req struct {
		InstitucionID *string  `json:"institucion_id,omitempty" binding:"omitempty,uuid"`
		CodigoPlaza   *string  `json:"codigo_plaza,omitempty"`
		Cargo         *string  `json:"cargo,omitempty"`
		Nivel         *string  `json:"nivel,omitempty" binding:"omitempty,oneof=inicial primaria secundaria"`
		Especialidad  *string  `json:"especialidad,omitempty"`
		Jornada       *int     `json:"jornada,omitempty" binding:"omitempty,oneof=25 30 40"`
		MontoPago     *float64 `json:"monto_pago,omitempty" binding:"omitempty,min=0"`
		Vacantes      *int     `json:"vacantes,omitempty" binding:"omitempty,min=1"`
		MotivoVacante *string  `json:"motivo_vacante,omitempty"`
		Requisitos    *string  `json:"requisitos,omitempty"`
		Estado        *string  `json:"estado,omitempty" binding:"omitempty,oneof=active filled cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	plaza, err := h.service.GetPlaza(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPlazaNotFound) {
			utils.SendNotFound(c, "Plaza no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	if req.InstitucionID != nil {
		plaza.InstitucionID = uuid.MustParse(*req.InstitucionID)
	}
	if req.CodigoPlaza != nil {
		plaza.CodigoPlaza = *req.CodigoPlaza
	}
	if req.Cargo != nil {
		plaza.Cargo = *req.Cargo
	}
	if req.Nivel != nil {
		plaza.Nivel = *req.Nivel
	}
	if req.Especialidad != nil {
		plaza.Especialidad = *req.Especialidad
	}
	if req.Jornada != nil {
		plaza.Jornada = domain.Jornada(*req.Jornada)
	}
	if req.MontoPago != nil {
		plaza.MontoPago = *req.MontoPago
	}
	if req.Vacantes != nil {
		plaza.Vacantes = *req.Vacantes
	}
	if req.MotivoVacante != nil {
		plaza.MotivoVacante = *req.MotivoVacante
	}
	if req.Requisitos != nil {
		plaza.Requisitos = *req.Requisitos
	}
	if req.Estado != nil {
		plaza.Estado = domain.EstadoPlaza(*req.Estado)
	}

	if err := h.service.UpdatePlaza(c.Request.Context(), plaza); err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Plaza actualizada correctamente", plaza)
}

// DeletePlaza endpoint DELETE /plazas/:id
func (h *PlazaHandler) DeletePlaza(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid plaza id")
		return
	}

	outcome, err := h.service.DeletePlaza(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPlazaNotFound) {
			utils.SendNotFound(c, "Plaza no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}
	if outcome.Blocked {
		utils.SendFlash(c, http.StatusConflict, utils.FlashError, outcome.BlockedMessage(), nil)
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Plaza eliminada correctamente", nil)
}
