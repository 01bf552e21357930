package domain

import (
	"time"

	"github.com/google/uuid"
)

// TipoUsuario distingue administradores de UGEL y docentes postulantes.
type TipoUsuario string

const (
	TipoAdmin   TipoUsuario = "admin"
	TipoDocente TipoUsuario = "docente"
)

// EstadoUsuario es el estado de la cuenta.
type EstadoUsuario string

const (
	UsuarioActivo    EstadoUsuario = "activo"
	UsuarioPendiente EstadoUsuario = "pendiente"
	UsuarioInactivo  EstadoUsuario = "inactivo"
)

type Usuario struct {
	ID        uuid.UUID `json:"id"`
	Nombres   string    `json:"nombres"`
	Apellidos string    `json:"apellidos"`
	DNI       string    `json:"dni"`
	Email     string    `json:"email"`

	// PasswordHash es el hash bcrypt, nunca la contraseña en claro.
	PasswordHash string        `json:"-"`
	Tipo         TipoUsuario   `json:"user_type"`
	Estado       EstadoUsuario `json:"estado"`

	// InstitucionID es el centro de trabajo del docente; opcional.
	InstitucionID *uuid.UUID `json:"institucion_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (u *Usuario) EsAdmin() bool   { return u.Tipo == TipoAdmin }
func (u *Usuario) EsDocente() bool { return u.Tipo == TipoDocente }
func (u *Usuario) Activo() bool    { return u.Estado == UsuarioActivo }

func (u *Usuario) NombreCompleto() string {
	return u.Nombres + " " + u.Apellidos
}

// UsuarioListado adjunta el nombre de la institución de trabajo.
type UsuarioListado struct {
	Usuario
	InstitucionNombre string `json:"institucion_nombre,omitempty"`
}
