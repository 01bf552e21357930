package domain

import (
	"time"

	"github.com/google/uuid"
)

// PerfilDocente es el perfil profesional del docente. ScorePerfil y
// PerfilCompleto son derivados: se recalculan y persisten juntos en cada
// guardado para que nunca se observen desfasados.
type PerfilDocente struct {
	ID                 uuid.UUID `json:"id"`
	UsuarioID          uuid.UUID `json:"usuario_id"`
	Especialidad       string    `json:"especialidad"`
	ExperienciaAnios   int       `json:"experiencia_anios"`
	NivelesExperiencia []string  `json:"niveles_experiencia"`
	Ubicacion          string    `json:"ubicacion"`
	Disponibilidad     string    `json:"disponibilidad"`
	TipoContrato       string    `json:"tipo_contrato"`
	Telefono           string    `json:"telefono"`
	SobreMi            string    `json:"sobre_mi"`
	ScorePerfil        int       `json:"score_perfil"`
	PerfilCompleto     bool      `json:"perfil_completo"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Pesos del score de completitud del perfil; suman 100.
const (
	pesoEspecialidad   = 25
	pesoExperiencia    = 20
	pesoNiveles        = 15
	pesoUbicacion      = 15
	pesoDisponibilidad = 10
	pesoContrato       = 5
	pesoTelefono       = 5
	pesoSobreMi        = 5

	// ScoreCompleto es el umbral a partir del cual el perfil se considera
	// completo.
	ScoreCompleto = 80
)

// CalcularScore es una función pura sobre los campos del perfil: cada
// peso cuenta solo si su campo está informado (para NivelesExperiencia,
// si tiene al menos un elemento).
func CalcularScore(p *PerfilDocente) (score int, completo bool) {
	if p.Especialidad != "" {
		score += pesoEspecialidad
	}
	if p.ExperienciaAnios > 0 {
		score += pesoExperiencia
	}
	if len(p.NivelesExperiencia) > 0 {
		score += pesoNiveles
	}
	if p.Ubicacion != "" {
		score += pesoUbicacion
	}
	if p.Disponibilidad != "" {
		score += pesoDisponibilidad
	}
	if p.TipoContrato != "" {
		score += pesoContrato
	}
	if p.Telefono != "" {
		score += pesoTelefono
	}
	if p.SobreMi != "" {
		score += pesoSobreMi
	}
	return score, score >= ScoreCompleto
}
