package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ugelhub/convocatorias/internal/postulacion/application"
	"github.com/ugelhub/convocatorias/internal/postulacion/domain"
	"github.com/ugelhub/convocatorias/pkg/utils"
)

type RecomendacionHandler struct {
	service *application.PostulacionService
}

func NewRecomendacionHandler(service *application.PostulacionService) *RecomendacionHandler {
	return &RecomendacionHandler{service: service}
}

type recomendacionRequest struct {
	UserID                   string     `json:"user_id" binding:"required,uuid"`
	PlazaID                  string     `json:"plaza_id" binding:"required,uuid"`
	PuntuacionCompatibilidad float64    `json:"puntuacion_compatibilidad" binding:"min=0,max=100"`
	NivelConfianza           float64    `json:"nivel_confianza" binding:"min=0,max=1"`
	MatchEspecialidad        bool       `json:"match_especialidad"`
	MatchUbicacion           bool       `json:"match_ubicacion"`
	MatchExperiencia         bool       `json:"match_experiencia"`
	FechaExpiracion          *time.Time `json:"fecha_expiracion,omitempty"`
}

// CreateRecomendacion endpoint POST /recomendaciones
func (h *RecomendacionHandler) CreateRecomendacion(c *gin.Context) {
	var req recomendacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	r := &domain.RecomendacionIa{
		UserID:                   uuid.MustParse(req.UserID),
		PlazaID:                  uuid.MustParse(req.PlazaID),
		PuntuacionCompatibilidad: req.PuntuacionCompatibilidad,
		NivelConfianza:           req.NivelConfianza,
		MatchEspecialidad:        req.MatchEspecialidad,
		MatchUbicacion:           req.MatchUbicacion,
		MatchExperiencia:         req.MatchExperiencia,
	}
	if req.FechaExpiracion != nil {
		r.FechaExpiracion = *req.FechaExpiracion
	}

	r, err := h.service.CrearRecomendacion(c.Request.Context(), r)
	if err != nil {
		if errors.Is(err, domain.ErrPlazaNotFound) {
			utils.SendBadRequest(c, "la plaza indicada no existe o no está activa")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusCreated, utils.FlashSuccess, "Recomendación registrada", r)
}

// ListRecomendaciones endpoint GET /recomendaciones?usuario_id=...
func (h *RecomendacionHandler) ListRecomendaciones(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("usuario_id"))
	if err != nil {
		utils.SendBadRequest(c, "usuario_id es obligatorio")
		return
	}

	recomendaciones, err := h.service.ListRecomendaciones(c.Request.Context(), userID)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, recomendaciones)
}

// Endpoints de ciclo de vida: POST /recomendaciones/:id/{vista,aplicar,descartar}

func (h *RecomendacionHandler) MarcarVista(c *gin.Context) {
	h.transicion(c, (*domain.RecomendacionIa).MarcarVista, "Recomendación marcada como vista")
}

func (h *RecomendacionHandler) Aplicar(c *gin.Context) {
	h.transicion(c, (*domain.RecomendacionIa).Aplicar, "Recomendación aplicada")
}

func (h *RecomendacionHandler) Descartar(c *gin.Context) {
	h.transicion(c, (*domain.RecomendacionIa).Descartar, "Recomendación descartada")
}

func (h *RecomendacionHandler) transicion(c *gin.Context, fn func(*domain.RecomendacionIa, time.Time) error, mensaje string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid recomendacion id")
		return
	}

	r, err := h.service.TransicionarRecomendacion(c.Request.Context(), id, fn)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecomendacionNotFound):
			utils.SendNotFound(c, "Recomendación no encontrada")
		case errors.Is(err, domain.ErrRecomendacionExpirada), errors.Is(err, domain.ErrTransicionInvalida):
			utils.SendFlash(c, http.StatusConflict, utils.FlashError, err.Error(), nil)
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, mensaje, r)
}
