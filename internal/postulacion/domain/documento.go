package domain

import (
	"time"

	"github.com/google/uuid"
)

// EstadoDocumento es el estado de revisión del documento adjunto.
type EstadoDocumento string

const (
	DocumentoPendiente EstadoDocumento = "pendiente"
	DocumentoAprobado  EstadoDocumento = "aprobado"
	DocumentoRechazado EstadoDocumento = "rechazado"
)

// Documento es la metadata de un archivo adjunto a una postulación. El
// archivo en sí vive fuera del sistema; aquí solo se gestiona su ficha
// y su estado de revisión.
type Documento struct {
	ID            uuid.UUID       `json:"id"`
	PostulacionID uuid.UUID       `json:"postulacion_id"`
	Nombre        string          `json:"nombre"`
	TipoDocumento string          `json:"tipo_documento"`
	Estado        EstadoDocumento `json:"estado"`
	Observacion   string          `json:"observacion"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
