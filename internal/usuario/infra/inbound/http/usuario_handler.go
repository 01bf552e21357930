package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
	"github.com/ugelhub/convocatorias/internal/usuario/application"
	"github.com/ugelhub/convocatorias/internal/usuario/domain"
	"github.com/ugelhub/convocatorias/pkg/utils"
)

type UsuarioHandler struct {
	service *application.UsuarioService
}

func NewUsuarioHandler(service *application.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{service: service}
}

// ListUsuarios endpoint GET /usuarios
func (h *UsuarioHandler) ListUsuarios(c *gin.Context) {
	var criterias []shared.Criteria

	if tipo, ok := utils.FilterParam(c, "user_type"); ok {
		criterias = append(criterias, domain.TipoUsuarioCriteria{Tipo: domain.TipoUsuario(tipo)})
	}
	if estado, ok := utils.FilterParam(c, "status"); ok {
		criterias = append(criterias, domain.EstadoCriteria{Estado: domain.EstadoUsuario(estado)})
	}
	if term, ok := utils.SearchParam(c); ok {
		criterias = append(criterias, domain.UsuarioSearch(term))
	}

	page, perPage := utils.PageParams(c)
	result, err := h.service.ListUsuarios(c.Request.Context(), shared.And(criterias...), page, perPage)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"usuarios": result,
		"filtros": gin.H{
			"search":    c.Query("search"),
			"user_type": utils.EchoFilter(c, "user_type"),
			"status":    utils.EchoFilter(c, "status"),
		},
	})
}

// CreateUsuario endpoint POST /usuarios
func (h *UsuarioHandler) CreateUsuario(c *gin.Context) {
	var req struct {
		Nombres       string `json:"nombres" binding:"required"`
		Apellidos     string `json:"apellidos" binding:"required"`
		DNI           string `json:"dni" binding:"required,len=8,numeric"`
		Email         string `json:"email" binding:"required,email"`
		Password      string `json:"password" binding:"required,min=8"`
		Tipo          string `json:"user_type" binding:"required,oneof=admin docente"`
		Estado        string `json:"estado" binding:"omitempty,oneof=activo pendiente inactivo"`
		InstitucionID string `json:"institucion_id" binding:"omitempty,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	usuario := &domain.Usuario{
		Nombres:   req.Nombres,
		Apellidos: req.Apellidos,
		DNI:       req.DNI,
		Email:     req.Email,
		Tipo:      domain.TipoUsuario(req.Tipo),
		Estado:    domain.EstadoUsuario(req.Estado),
	}
	if req.InstitucionID != "" {
		id := uuid.MustParse(req.InstitucionID)
		usuario.InstitucionID = &id
	}

	usuario, err := h.service.CreateUsuario(c.Request.Context(), usuario, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDNIInvalido), errors.Is(err, domain.ErrDNIEnUso), errors.Is(err, domain.ErrEmailEnUso):
			utils.SendBadRequest(c, err.Error())
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	utils.SendFlash(c, http.StatusCreated, utils.FlashSuccess, "Usuario creado correctamente", usuario)
}

// GetUsuario endpoint GET /usuarios/:id
func (h *UsuarioHandler) GetUsuario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid usuario id")
		return
	}

	usuario, err := h.service.GetUsuario(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) {
			utils.SendNotFound(c, "Usuario no encontrado")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, usuario)
}

// UpdateUsuario endpoint PUT /usuarios/:id
func (h *UsuarioHandler) UpdateUsuario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid usuario id")
		return
	}

	var req struct {
		Nombres       *string `json:"nombres,omitempty"`
		Apellidos     *string `json:"apellidos,omitempty"`
		Email         *string `json:"email,omitempty" binding:"omitempty,email"`
		Tipo          *string `json:"user_type,omitempty" binding:"omitempty,oneof=admin docente"`
		Estado        *string `json:"estado,omitempty" binding:"omitempty,oneof=activo pendiente inactivo"`
		InstitucionID *string `json:"institucion_id,omitempty" binding:"omitempty,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	usuario, err := h.service.GetUsuario(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) {
			utils.SendNotFound(c, "Usuario no encontrado")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	if req.Nombres != nil {
		usuario.Nombres = *req.Nombres
	}
	if req.Apellidos != nil {
		usuario.Apellidos = *req.Apellidos
	}
	if req.Email != nil {
		usuario.Email = *req.Email
	}
	if req.Tipo != nil {
		usuario.Tipo = domain.TipoUsuario(*req.Tipo)
	}
	if req.Estado != nil {
		usuario.Estado = domain.EstadoUsuario(*req.Estado)
	}
	if req.InstitucionID != nil {
		instID := uuid.MustParse(*req.InstitucionID)
		usuario.InstitucionID = &instID
	}

	if err := h.service.UpdateUsuario(c.Request.Context(), usuario); err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Usuario actualizado correctamente", usuario)
}

// DeleteUsuario endpoint DELETE /usuarios/:id
// El actor va en la cabecera X-Usuario-ID; el auto-borrado se rechaza
// siempre, antes de mirar dependencias.
func (h *UsuarioHandler) DeleteUsuario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid usuario id")
		return
	}
	actorID, err := uuid.Parse(c.GetHeader("X-Usuario-ID"))
	if err != nil {
		utils.SendBadRequest(c, "missing or invalid X-Usuario-ID header")
		return
	}

	outcome, err := h.service.DeleteUsuario(c.Request.Context(), actorID, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAutoBorrado):
			utils.SendFlash(c, http.StatusConflict, utils.FlashError, err.Error(), nil)
		case errors.Is(err, domain.ErrUsuarioNotFound):
			utils.SendNotFound(c, "Usuario no encontrado")
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}
	if outcome.Blocked {
		utils.SendFlash(c, http.StatusConflict, utils.FlashError, outcome.BlockedMessage(), nil)
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Usuario eliminado correctamente", nil)
}

// GetPerfil endpoint GET /usuarios/:id/perfil
func (h *UsuarioHandler) GetPerfil(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid usuario id")
		return
	}

	perfil, err := h.service.GetPerfil(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPerfilNotFound) {
			utils.SendNotFound(c, "El usuario aún no tiene perfil")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, perfil)
}

// SavePerfil endpoint PUT /usuarios/:id/perfil
func (h *UsuarioHandler) SavePerfil(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid usuario id")
		return
	}

	var req struct {
		Especialidad       string   `json:"especialidad"`
		ExperienciaAnios   int      `json:"experiencia_anios" binding:"min=0"`
		NivelesExperiencia []string `json:"niveles_experiencia"`
		Ubicacion          string   `json:"ubicacion"`
		Disponibilidad     string   `json:"disponibilidad"`
		TipoContrato       string   `json:"tipo_contrato"`
		Telefono           string   `json:"telefono"`
		SobreMi            string   `json:"sobre_mi"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	perfil := &domain.PerfilDocente{
		UsuarioID:          id,
		Especialidad:       req.Especialidad,
		ExperienciaAnios:   req.ExperienciaAnios,
		NivelesExperiencia: req.NivelesExperiencia,
		Ubicacion:          req.Ubicacion,
		Disponibilidad:     req.Disponibilidad,
		TipoContrato:       req.TipoContrato,
		Telefono:           req.Telefono,
		SobreMi:            req.SobreMi,
	}

	perfil, err = h.service.GuardarPerfil(c.Request.Context(), perfil)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) {
			utils.SendNotFound(c, "Usuario no encontrado")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendFlash(c, http.StatusOK, utils.FlashSuccess, "Perfil guardado correctamente", perfil)
}
