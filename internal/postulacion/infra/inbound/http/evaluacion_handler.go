package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ugelhub/convocatorias/internal/postulacion/application"
	"github.com/ugelhub/convocatorias/internal/postulacion/domain"
	"github.com/ugelhub/convocatorias/pkg/utils"
)

type EvaluacionHandler struct {
	service *application.PostulacionService
}

func NewEvaluacionHandler(service *application.PostulacionService) *EvaluacionHandler {
	return &EvaluacionHandler{service: service}
}

type evaluacionRequest struct {
	EvaluadorID          string  `json:"evaluador_id" binding:"required,uuid"`
	PuntajeCurriculo     float64 `json:"puntaje_curriculo" binding:"min=0"`
	PuntajeConocimientos float64 `json:"puntaje_conocimientos" binding:"min=0"`
	PuntajeEntrevista    float64 `json:"puntaje_entrevista" binding:"min=0"`
	Observaciones        string  `json:"observaciones"`
}

// RegistrarEvaluacion endpoint POST /postulaciones/:id/evaluacion
func (h *EvaluacionHandler) RegistrarEvaluacion(c *gin.Context) {
	postulacionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid postulacion id")
		return
	}

	var req evaluacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	e := &domain.Evaluacion{
		PostulacionID:        postulacionID,
		EvaluadorID:          uuid.MustParse(req.EvaluadorID),
		PuntajeCurriculo:     req.PuntajeCurriculo,
		PuntajeConocimientos: req.PuntajeConocimientos,
		PuntajeEntrevista:    req.PuntajeEntrevista,
		Observaciones:        req.Observaciones,
	}

	e, err = h.service.RegistrarEvaluacion(c.Request.Context(), e)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPostulacionNotFound):
			utils.SendNotFound(c, "Postulación no encontrada")
		case errors.Is(err, domain.ErrEvaluacionDuplicada):
			utils.SendFlash(c, http.StatusConflict, utils.FlashError, "La postulación ya fue evaluada", nil)
		case errors.Is(err, domain.ErrTransicionInvalida):
			utils.SendFlash(c, http.StatusConflict, utils.FlashError, err.Error(), nil)
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	utils.SendFlash(c, http.StatusCreated, utils.FlashSuccess, "Evaluación registrada", e)
}

// GetEvaluacion endpoint GET /postulaciones/:id/evaluacion
func (h *EvaluacionHandler) GetEvaluacion(c *gin.Context) {
	postulacionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid postulacion id")
		return
	}

	e, err := h.service.GetEvaluacion(c.Request.Context(), postulacionID)
	if err != nil {
		if errors.Is(err, domain.ErrEvaluacionNotFound) {
			utils.SendNotFound(c, "La postulación aún no tiene evaluación")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, e)
}
