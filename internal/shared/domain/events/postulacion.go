package events

import "github.com/google/uuid"

// Topic del flujo de postulaciones. Los contratos viven aquí porque los
// consume otro contexto (notificaciones) además del emisor.
const TopicPostulaciones = "postulaciones"

const (
	PostulacionRegistradaType = "postulacion.registrada"
	PostulacionRetiradaType   = "postulacion.retirada"
	EvaluacionRegistradaType  = "evaluacion.registrada"
	SeleccionPublicadaType    = "postulacion.seleccionada"
)

// PostulacionRegistrada se emite al registrar una postulación a una plaza.
type PostulacionRegistrada struct {
	PostulacionID  uuid.UUID `json:"postulacion_id"`
	UsuarioID      uuid.UUID `json:"usuario_id"`
	ConvocatoriaID uuid.UUID `json:"convocatoria_id"`
	PlazaID        uuid.UUID `json:"plaza_id"`
	Numero         string    `json:"numero_postulacion"`
}

func (e PostulacionRegistrada) PartitionKey() string { return e.UsuarioID.String() }

// PostulacionRetirada se emite cuando el docente retira su postulación.
type PostulacionRetirada struct {
	PostulacionID uuid.UUID `json:"postulacion_id"`
	UsuarioID     uuid.UUID `json:"usuario_id"`
	PlazaID       uuid.UUID `json:"plaza_id"`
}

func (e PostulacionRetirada) PartitionKey() string { return e.UsuarioID.String() }

// EvaluacionRegistrada se emite al registrar la evaluación de una
// postulación; la marca como evaluada.
type EvaluacionRegistrada struct {
	EvaluacionID  uuid.UUID `json:"evaluacion_id"`
	PostulacionID uuid.UUID `json:"postulacion_id"`
	UsuarioID     uuid.UUID `json:"usuario_id"`
	PuntajeTotal  float64   `json:"puntaje_total"`
}

func (e EvaluacionRegistrada) PartitionKey() string { return e.UsuarioID.String() }

// SeleccionPublicada se emite cuando una postulación pasa a seleccionada.
type SeleccionPublicada struct {
	PostulacionID uuid.UUID `json:"postulacion_id"`
	UsuarioID     uuid.UUID `json:"usuario_id"`
	PlazaID       uuid.UUID `json:"plaza_id"`
	Posicion      int       `json:"posicion_merito"`
}

func (e SeleccionPublicada) PartitionKey() string { return e.UsuarioID.String() }
