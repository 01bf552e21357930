package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
)

// ---------- Errores de dominio ----------

var (
	ErrPostulacionNotFound   = errors.New("postulacion not found")
	ErrPlazaNotFound         = errors.New("plaza not found")
	ErrConvocatoriaNotFound  = errors.New("convocatoria not found")
	ErrEvaluacionNotFound    = errors.New("evaluacion not found")
	ErrDocumentoNotFound     = errors.New("documento not found")
	ErrRecomendacionNotFound = errors.New("recomendacion not found")
	ErrTransicionInvalida    = errors.New("transicion de estado invalida")
	ErrRecomendacionExpirada = errors.New("la recomendacion ya expiro")
	ErrPostulacionDuplicada  = errors.New("el docente ya postulo a esta plaza")
	ErrInscripcionCerrada    = errors.New("la ventana de inscripcion esta cerrada")
	ErrEvaluacionDuplicada   = errors.New("la postulacion ya tiene evaluacion")
)

// ---------- Interfaces (Ports) ----------
// Las escrituras de estado llevan su evento de outbox en la misma
// transacción; el relayer lo publica después.

type PostulacionRepository interface {
	// ProximaSecuencia devuelve el siguiente correlativo de la
	// convocatoria; el índice único sobre numero_postulacion resuelve la
	// carrera entre dos registros simultáneos.
	ProximaSecuencia(ctx context.Context, convocatoriaID uuid.UUID) (int64, error)
	// CreateConEvento inserta la postulación y su evento de outbox en una
	// transacción.
	CreateConEvento(ctx context.Context, p *Postulacion, evt *shared.OutboxEvent) error
	// UpdateConEvento persiste el nuevo estado; evt puede ser nil cuando
	// el cambio no publica evento.
	UpdateConEvento(ctx context.Context, p *Postulacion, evt *shared.OutboxEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*Postulacion, error)
	ExistsActiva(ctx context.Context, userID, plazaID uuid.UUID) (bool, error)
	List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*PostulacionListado], error)
}

type EvaluacionRepository interface {
	// Registrar inserta la evaluación, actualiza la postulación y escribe
	// el evento de outbox en una sola transacción.
	Registrar(ctx context.Context, e *Evaluacion, p *Postulacion, evt *shared.OutboxEvent) error
	GetByPostulacion(ctx context.Context, postulacionID uuid.UUID) (*Evaluacion, error)
}

type DocumentoRepository interface {
	Create(ctx context.Context, d *Documento) error
	GetByID(ctx context.Context, id uuid.UUID) (*Documento, error)
	ListByPostulacion(ctx context.Context, postulacionID uuid.UUID) ([]*Documento, error)
	Update(ctx context.Context, d *Documento) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RecomendacionRepository interface {
	Create(ctx context.Context, r *RecomendacionIa) error
	GetByID(ctx context.Context, id uuid.UUID) (*RecomendacionIa, error)
	ListByUsuario(ctx context.Context, userID uuid.UUID) ([]*RecomendacionIa, error)
	Update(ctx context.Context, r *RecomendacionIa) error
}

// PlazaInfo y ConvocatoriaInfo son puertos mínimos hacia el contexto de
// convocatorias: lo justo para validar una postulación entrante.

type PlazaInfo struct {
	ID             uuid.UUID
	ConvocatoriaID uuid.UUID
	Activa         bool
}

type PlazaDirectory interface {
	GetPlazaInfo(ctx context.Context, id uuid.UUID) (*PlazaInfo, error)
}

type ConvocatoriaInfo struct {
	ID               uuid.UUID
	Anio             int
	Estado           string
	InscripcionDesde time.Time
	InscripcionHasta time.Time
}

// InscripcionAbierta replica la regla de la ventana de inscripción sobre
// la instantánea mínima.
func (c *ConvocatoriaInfo) InscripcionAbierta(now time.Time) bool {
	if c.Estado != "published" && c.Estado != "active" {
		return false
	}
	return !now.Before(c.InscripcionDesde) && !now.After(c.InscripcionHasta)
}

type ConvocatoriaDirectory interface {
	GetConvocatoriaInfo(ctx context.Context, id uuid.UUID) (*ConvocatoriaInfo, error)
}

// ---------- Analítica ----------

// PuntoTendencia es un día de la serie de postulaciones por convocatoria.
type PuntoTendencia struct {
	Fecha time.Time `json:"fecha"`
	Total uint64    `json:"total"`
}

// EventoAnalitica es la fila que se registra en el almacén analítico por
// cada hito del flujo (postulación, evaluación, selección).
type EventoAnalitica struct {
	ConvocatoriaID uuid.UUID
	PlazaID        uuid.UUID
	UserID         uuid.UUID
	Tipo           string
	Fecha          time.Time
}

type AnalyticsRepository interface {
	RegistrarEvento(ctx context.Context, e EventoAnalitica) error
	// TendenciaDiaria devuelve las postulaciones por día de una
	// convocatoria dentro del rango dado.
	TendenciaDiaria(ctx context.Context, convocatoriaID uuid.UUID, desde, hasta time.Time) ([]PuntoTendencia, error)
	// TiempoMedioEvaluacion devuelve las horas promedio entre la
	// postulación y su evaluación para una convocatoria.
	TiempoMedioEvaluacion(ctx context.Context, convocatoriaID uuid.UUID) (float64, error)
}
