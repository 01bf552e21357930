package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EstadoRecomendacion es el ciclo de vida de una recomendación generada
// para un docente.
type EstadoRecomendacion string

const (
	RecomendacionPendiente  EstadoRecomendacion = "pendiente"
	RecomendacionVista      EstadoRecomendacion = "vista"
	RecomendacionAplicada   EstadoRecomendacion = "aplicada"
	RecomendacionDescartada EstadoRecomendacion = "descartada"
)

// RecomendacionIa sugiere una plaza a un docente según la afinidad de su
// perfil; expira si no se atiende a tiempo.
type RecomendacionIa struct {
	ID                       uuid.UUID           `json:"id"`
	UserID                   uuid.UUID           `json:"user_id"`
	PlazaID                  uuid.UUID           `json:"plaza_id"`
	PuntuacionCompatibilidad float64             `json:"puntuacion_compatibilidad"`
	NivelConfianza           float64             `json:"nivel_confianza"`
	MatchEspecialidad        bool                `json:"match_especialidad"`
	MatchUbicacion           bool                `json:"match_ubicacion"`
	MatchExperiencia         bool                `json:"match_experiencia"`
	Estado                   EstadoRecomendacion `json:"estado"`
	FechaGeneracion          time.Time           `json:"fecha_generacion"`
	FechaExpiracion          time.Time           `json:"fecha_expiracion"`
}

func (r *RecomendacionIa) Expirada(now time.Time) bool {
	return now.After(r.FechaExpiracion)
}

func (r *RecomendacionIa) MarcarVista(now time.Time) error {
	if err := r.transicionable(now); err != nil {
		return err
	}
	if r.Estado != RecomendacionPendiente {
		return fmt.Errorf("%w: de %s a %s", ErrTransicionInvalida, r.Estado, RecomendacionVista)
	}
	r.Estado = RecomendacionVista
	return nil
}

func (r *RecomendacionIa) Aplicar(now time.Time) error {
	if err := r.transicionable(now); err != nil {
		return err
	}
	if r.Estado != RecomendacionPendiente && r.Estado != RecomendacionVista {
		return fmt.Errorf("%w: de %s a %s", ErrTransicionInvalida, r.Estado, RecomendacionAplicada)
	}
	r.Estado = RecomendacionAplicada
	return nil
}

func (r *RecomendacionIa) Descartar(now time.Time) error {
	if err := r.transicionable(now); err != nil {
		return err
	}
	if r.Estado != RecomendacionPendiente && r.Estado != RecomendacionVista {
		return fmt.Errorf("%w: de %s a %s", ErrTransicionInvalida, r.Estado, RecomendacionDescartada)
	}
	r.Estado = RecomendacionDescartada
	return nil
}

func (r *RecomendacionIa) transicionable(now time.Time) error {
	if r.Expirada(now) {
		return ErrRecomendacionExpirada
	}
	return nil
}
