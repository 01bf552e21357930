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

type DocumentoHandler struct {
	service *application.PostulacionService
}

func NewDocumentoHandler(service *application.PostulacionService) *DocumentoHandler {
	return &DocumentoHandler{service: service}
}

type documentoRequest struct {
	Nombre        string `json:"nombre" binding:"required"`
	TipoDocumento string `json:"tipo_documento" binding:"required"`
}

// AdjuntarDocumento endpoint POST /postulaciones/:id/documentos
func (h *DocumentoHandler) AdjuntarDocumento(c *gin.Context) {
	postulacionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid postulacion id")
		return
	}

	var req documentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	d := &domain.Documento{
		PostulacionID: postulacionID,
		Nombre:        req.Nombre,
		TipoDocumento: req.TipoDocumento,
	}

	d, err = h.service.AdjuntarDocumento(c.Request.Context(), d)
	if err != nil {
		if errors.Is(err, domain.ErrPostulacionNotFound) {
			utils.SendNotFound(c, "Postulación no encontrada")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusCreated, utils.FlashSuccess, "Documento adjuntado", d)
}

// ListDocumentos endpoint GET /postulaciones/:id/documentos
func (h *DocumentoHandler) ListDocumentos(c *gin.Context) {
	postulacionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid postulacion id")
		return
	}

	documentos, err := h.service.ListDocumentos(c.Request.Context(), postulacionID)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, documentos)
}

type revisionRequest struct {
	Estado      string `json:"estado" binding:"required,oneof=aprobado rechazado"`
	Observacion string `json:"observacion"`
}

// RevisarDocumento endpoint PUT /documentos/:id
func (h *DocumentoHandler) RevisarDocumento(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid documento id")
		return
	}

	var req revisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	d, err := h.service.RevisarDocumento(c.Request.Context(), id,
		domain.EstadoDocumento(req.Estado), req.Observacion)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentoNotFound) {
			utils.SendNotFound(c, "Documento no encontrado")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Documento revisado", d)
}

// DeleteDocumento endpoint DELETE /documentos/:id
func (h *DocumentoHandler) DeleteDocumento(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid documento id")
		return
	}

	if err := h.service.EliminarDocumento(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrDocumentoNotFound) {
			utils.SendNotFound(c, "Documento no encontrado")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Documento eliminado", nil)
}
