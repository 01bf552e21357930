package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ugelhub/convocatorias/internal/usuario/application"
	"github.com/ugelhub/convocatorias/internal/usuario/domain"
	"github.com/ugelhub/convocatorias/pkg/utils"
)

type NotificacionHandler struct {
	service *application.UsuarioService
}

func NewNotificacionHandler(service *application.UsuarioService) *NotificacionHandler {
	return &NotificacionHandler{service: service}
}

// ListNotificaciones endpoint GET /notificaciones?usuario_id=...&solo_no_leidas=true
func (h *NotificacionHandler) ListNotificaciones(c *gin.Context) {
	usuarioID, err := uuid.Parse(c.Query("usuario_id"))
	if err != nil {
		utils.SendBadRequest(c, "missing or invalid usuario_id")
		return
	}
	soloNoLeidas := c.Query("solo_no_leidas") == "true"

	page, perPage := utils.PageParams(c)
	result, err := h.service.ListNotificaciones(c.Request.Context(), usuarioID, soloNoLeidas, page, perPage)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	noLeidas, err := h.service.NotificacionesNoLeidas(c.Request.Context(), usuarioID)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notificaciones": result,
		"no_leidas":      noLeidas,
	})
}

// MarcarLeida endpoint POST /notificaciones/:id/leer
func (h *NotificacionHandler) MarcarLeida(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid notificacion id")
		return
	}

	if err := h.service.MarcarNotificacionLeida(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotificacionNotFound) {
			utils.SendNotFound(c, "Notificación no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, nil)
}

// MarcarTodasLeidas endpoint POST /notificaciones/leer-todas?usuario_id=...
func (h *NotificacionHandler) MarcarTodasLeidas(c *gin.Context) {
	usuarioID, err := uuid.Parse(c.Query("usuario_id"))
	if err != nil {
		utils.SendBadRequest(c, "missing or invalid usuario_id")
		return
	}

	if err := h.service.MarcarTodasLeidas(c.Request.Context(), usuarioID); err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, nil)
}
