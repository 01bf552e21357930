package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ugelhub/convocatorias/internal/postulacion/application"
	"github.com/ugelhub/convocatorias/internal/postulacion/domain"
	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
	"github.com/ugelhub/convocatorias/pkg/utils"
)

type PostulacionHandler struct {
	service *application.PostulacionService
}

func NewPostulacionHandler(service *application.PostulacionService) *PostulacionHandler {
	return &PostulacionHandler{service: service}
}

// ListPostulaciones endpoint GET /postulaciones
func (h *PostulacionHandler) ListPostulaciones(c *gin.Context) {
	var criterias []shared.Criteria

	if convID, ok := utils.FilterParam(c, "convocatoria_id"); ok {
		if id, err := uuid.Parse(convID); err == nil {
			criterias = append(criterias, domain.ConvocatoriaIDCriteria{ID: id})
		}
	}
	if plazaID, ok := utils.FilterParam(c, "plaza_id"); ok {
		if id, err := uuid.Parse(plazaID); err == nil {
			criterias = append(criterias, domain.PlazaIDCriteria{ID: id})
		}
	}
	if userID, ok := utils.FilterParam(c, "user_id"); ok {
		if id, err := uuid.Parse(userID); err == nil {
			criterias = append(criterias, domain.UserIDCriteria{ID: id})
		}
	}
	if estado, ok := utils.FilterParam(c, "status"); ok {
		criterias = append(criterias, domain.EstadoCriteria{Estado: domain.EstadoPostulacion(estado)})
	}
	if term, ok := utils.SearchParam(c); ok {
		criterias = append(criterias, domain.PostulacionSearch(term))
	}

	page, perPage := utils.PageParams(c)
	result, err := h.service.ListPostulaciones(c.Request.Context(), shared.And(criterias...), page, perPage)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"postulaciones": result,
		"filtros": gin.H{
			"search":          c.Query("search"),
			"convocatoria_id": utils.EchoFilter(c, "convocatoria_id"),
			"plaza_id":        utils.EchoFilter(c, "plaza_id"),
			"user_id":         utils.EchoFilter(c, "user_id"),
			"status":          utils.EchoFilter(c, "status"),
		},
	})
}

type postulacionRequest struct {
	UserID           string `json:"user_id" binding:"required,uuid"`
	PlazaID          string `json:"plaza_id" binding:"required,uuid"`
	OrdenPreferencia int    `json:"orden_preferencia" binding:"omitempty,min=1"`
}

// CreatePostulacion endpoint POST /postulaciones
func (h *PostulacionHandler) CreatePostulacion(c *gin.Context) {
	var req postulacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if req.OrdenPreferencia == 0 {
		req.OrdenPreferencia = 1
	}

	p, err := h.service.CrearPostulacion(c.Request.Context(),
		uuid.MustParse(req.UserID), uuid.MustParse(req.PlazaID), req.OrdenPreferencia)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPlazaNotFound):
			utils.SendBadRequest(c, "la plaza indicada no existe")
		case errors.Is(err, domain.ErrInscripcionCerrada):
			utils.SendFlash(c, http.StatusConflict, utils.FlashError, "La inscripción no está abierta para esta plaza", nil)
		case errors.Is(err, domain.ErrPostulacionDuplicada):
			utils.SendFlash(c, http.StatusConflict, utils.FlashError, "Ya existe una postulación activa a esta plaza", nil)
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	utils.SendFlash(c, http.StatusCreated, utils.FlashSuccess, "Postulación registrada: "+p.Numero, p)
}

// GetPostulacion endpoint GET /postulaciones/:id
func (h *PostulacionHandler) GetPostulacion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid postulacion id")
		return
	}

	p, err := h.service.GetPostulacion(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPostulacionNotFound) {
			utils.SendNotFound(c, "Postulación no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, p)
}

// RetirarPostulacion endpoint POST /postulaciones/:id/retirar
func (h *PostulacionHandler) RetirarPostulacion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid postulacion id")
		return
	}

	p, err := h.service.RetirarPostulacion(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPostulacionNotFound):
			utils.SendNotFound(c, "Postulación no encontrada")
		case errors.Is(err, domain.ErrTransicionInvalida):
			utils.SendFlash(c, http.StatusConflict, utils.FlashError, err.Error(), nil)
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Postulación retirada", p)
}

type seleccionRequest struct {
	Posicion     int  `json:"posicion_merito" binding:"required,min=1"`
	Seleccionado bool `json:"seleccionado"`
}

// SeleccionarPostulacion endpoint POST /postulaciones/:id/seleccionar
func (h *PostulacionHandler) SeleccionarPostulacion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid postulacion id")
		return
	}

	var req seleccionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	p, err := h.service.SeleccionarPostulacion(c.Request.Context(), id, req.Posicion, req.Seleccionado)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPostulacionNotFound):
			utils.SendNotFound(c, "Postulación no encontrada")
		case errors.Is(err, domain.ErrTransicionInvalida):
			utils.SendFlash(c, http.StatusConflict, utils.FlashError, err.Error(), nil)
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	mensaje := "Resultado de selección registrado"
	if req.Seleccionado {
		mensaje = "Postulación seleccionada"
	}
	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, mensaje, p)
}
