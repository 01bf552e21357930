package domain

import (
	"time"

	"github.com/google/uuid"
)

// TipoNotificacion es la severidad visual de la notificación.
type TipoNotificacion string

const (
	NotifSuccess TipoNotificacion = "success"
	NotifWarning TipoNotificacion = "warning"
	NotifError   TipoNotificacion = "error"
	NotifInfo    TipoNotificacion = "info"
)

type Notificacion struct {
	ID         uuid.UUID        `json:"id"`
	UsuarioID  uuid.UUID        `json:"usuario_id"`
	Tipo       TipoNotificacion `json:"tipo"`
	Titulo     string           `json:"titulo"`
	Mensaje    string           `json:"mensaje"`
	Leida      bool             `json:"leida"`
	FechaLeida *time.Time       `json:"fecha_leida,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// MarcarLeida fija la fecha de lectura la primera vez; releer no la mueve.
func (n *Notificacion) MarcarLeida(now time.Time) {
	if n.Leida {
		return
	}
	n.Leida = true
	n.FechaLeida = &now
}
