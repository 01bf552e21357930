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
	ErrRegionNotFound      = errors.New("region not found")
	ErrUgelNotFound        = errors.New("ugel not found")
	ErrDistritoNotFound    = errors.New("distrito not found")
	ErrInstitucionNotFound = errors.New("institucion not found")
)

// ---------- Interfaces (Ports) ----------
// Delete devuelve un DeleteOutcome etiquetado: la implementación cuenta
// las filas dependientes y borra en una sola transacción (§ guard).

type RegionRepository interface {
	Create(ctx context.Context, r *Region) error
	Update(ctx context.Context, r *Region) error
	GetByID(ctx context.Context, id uuid.UUID) (*Region, error)
	List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*Region], error)
	ListActivas(ctx context.Context) ([]*Region, error)
	Delete(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error)
}

type UgelRepository interface {
	Create(ctx context.Context, u *Ugel) error
	Update(ctx context.Context, u *Ugel) error
	GetByID(ctx context.Context, id uuid.UUID) (*Ugel, error)
	List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*UgelListado], error)
	ListActivas(ctx context.Context) ([]*Ugel, error)
	Delete(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error)
}

type DistritoRepository interface {
	Create(ctx context.Context, d *Distrito) error
	Update(ctx context.Context, d *Distrito) error
	GetByID(ctx context.Context, id uuid.UUID) (*Distrito, error)
	List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*DistritoListado], error)
	ListActivos(ctx context.Context) ([]*Distrito, error)
	Delete(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error)
}

type InstitucionRepository interface {
	Create(ctx context.Context, i *Institucion) error
	Update(ctx context.Context, i *Institucion) error
	GetByID(ctx context.Context, id uuid.UUID) (*Institucion, error)
	List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*InstitucionListado], error)
	ListActivas(ctx context.Context) ([]*Institucion, error)
	Delete(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error)
}
