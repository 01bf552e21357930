package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"

	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
)

// ---------- Errores de dominio ----------

var (
	ErrConvocatoriaNotFound     = errors.New("convocatoria not found")
	ErrPlazaNotFound            = errors.New("plaza not found")
	ErrTransicionInvalida       = errors.New("transicion de estado invalida")
	ErrConvocatoriaUgelInvalida = errors.New("la ugel de la convocatoria no existe")
	ErrPlazaInstitucionInvalida = errors.New("la institucion de la plaza no existe")
	ErrJornadaInvalida          = errors.New("jornada invalida")
)

// ---------- Interfaces (Ports) ----------

type ConvocatoriaRepository interface {
	Create(ctx context.Context, c *Convocatoria) error
	Update(ctx context.Context, c *Convocatoria) error
	GetByID(ctx context.Context, id uuid.UUID) (*Convocatoria, error)
	// List calcula plazas_disponibles por fila en la misma consulta.
	List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*ConvocatoriaListado], error)
	// ListAbiertas devuelve published/active ordenadas por año y título,
	// con plazas_disponibles, para el filtro de creación de plazas.
	ListAbiertas(ctx context.Context) ([]*ConvocatoriaListado, error)
	Delete(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error)
}

type PlazaRepository interface {
	Create(ctx context.Context, p *Plaza) error
	Update(ctx context.Context, p *Plaza) error
	GetByID(ctx context.Context, id uuid.UUID) (*Plaza, error)
	List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*PlazaListado], error)
	Delete(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error)
}

// UgelDirectory e InstitucionDirectory son puertos mínimos hacia el
// contexto de organización: solo la existencia del padre, sin acoplar
// los repositorios completos.

type UgelDirectory interface {
	UgelExiste(ctx context.Context, id uuid.UUID) (bool, error)
}

type InstitucionDirectory interface {
	InstitucionExiste(ctx context.Context, id uuid.UUID) (bool, error)
}
