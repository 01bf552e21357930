package domain

import (
	"time"

	"github.com/google/uuid"
)

// Evaluacion es la calificación 1:1 de una postulación. El total es la
// suma de los tres puntajes parciales y se calcula al registrarla.
type Evaluacion struct {
	ID                   uuid.UUID `json:"id"`
	PostulacionID        uuid.UUID `json:"postulacion_id"`
	EvaluadorID          uuid.UUID `json:"evaluador_id"`
	PuntajeCurriculo     float64   `json:"puntaje_curriculo"`
	PuntajeConocimientos float64   `json:"puntaje_conocimientos"`
	PuntajeEntrevista    float64   `json:"puntaje_entrevista"`
	PuntajeTotal         float64   `json:"puntaje_total"`
	Observaciones        string    `json:"observaciones"`
	FechaEvaluacion      time.Time `json:"fecha_evaluacion"`
}

func (e *Evaluacion) CalcularTotal() float64 {
	e.PuntajeTotal = e.PuntajeCurriculo + e.PuntajeConocimientos + e.PuntajeEntrevista
	return e.PuntajeTotal
}
