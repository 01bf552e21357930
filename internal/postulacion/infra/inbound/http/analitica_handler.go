package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ugelhub/convocatorias/internal/postulacion/application"
	"github.com/ugelhub/convocatorias/pkg/utils"
)

type AnaliticaHandler struct {
	service *application.PostulacionService
}

func NewAnaliticaHandler(service *application.PostulacionService) *AnaliticaHandler {
	return &AnaliticaHandler{service: service}
}

// TendenciaDiaria endpoint GET /analitica/convocatorias/:id/tendencia?desde=&hasta=
// Sin rango, devuelve los últimos treinta días.
func (h *AnaliticaHandler) TendenciaDiaria(c *gin.Context) {
	convocatoriaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid convocatoria id")
		return
	}

	hasta := time.Now().UTC()
	desde := hasta.AddDate(0, 0, -30)
	if v := c.Query("desde"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			desde = t
		}
	}
	if v := c.Query("hasta"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			hasta = t
		}
	}

	puntos, err := h.service.TendenciaDiaria(c.Request.Context(), convocatoriaID, desde, hasta)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"convocatoria_id": convocatoriaID,
		"desde":           desde.Format("2006-01-02"),
		"hasta":           hasta.Format("2006-01-02"),
		"tendencia":       puntos,
	})
}

// TiempoMedioEvaluacion endpoint GET /analitica/convocatorias/:id/tiempo-medio
func (h *AnaliticaHandler) TiempoMedioEvaluacion(c *gin.Context) {
	convocatoriaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid convocatoria id")
		return
	}

	horas, err := h.service.TiempoMedioEvaluacion(c.Request.Context(), convocatoriaID)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"convocatoria_id": convocatoriaID,
		"horas_promedio":  horas,
	})
}
