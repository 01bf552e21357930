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
	ErrUsuarioNotFound      = errors.New("usuario not found")
	ErrPerfilNotFound       = errors.New("perfil not found")
	ErrNotificacionNotFound = errors.New("notificacion not found")
	ErrDNIEnUso             = errors.New("el dni ya esta registrado")
	ErrEmailEnUso           = errors.New("el email ya esta registrado")
	ErrDNIInvalido          = errors.New("el dni debe tener 8 digitos")
	// ErrAutoBorrado: un administrador nunca puede eliminar su propia
	// cuenta, sin importar los conteos de dependientes.
	ErrAutoBorrado = errors.New("no puedes eliminar tu propia cuenta")
)

// ---------- Interfaces (Ports) ----------

type UsuarioRepository interface {
	Create(ctx context.Context, u *Usuario) error
	Update(ctx context.Context, u *Usuario) error
	GetByID(ctx context.Context, id uuid.UUID) (*Usuario, error)
	GetByDNI(ctx context.Context, dni string) (*Usuario, error)
	List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*UsuarioListado], error)
	Delete(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error)
}

type PerfilRepository interface {
	GetByUsuario(ctx context.Context, usuarioID uuid.UUID) (*PerfilDocente, error)
	// Save inserta o reemplaza el perfil del usuario junto con sus campos
	// derivados (score y completitud) en una sola escritura.
	Save(ctx context.Context, p *PerfilDocente) error
}

type NotificacionRepository interface {
	Create(ctx context.Context, n *Notificacion) error
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID, soloNoLeidas bool, p sharedQuery.OffsetPagination) (*sharedQuery.Page[*Notificacion], error)
	CountNoLeidas(ctx context.Context, usuarioID uuid.UUID) (int64, error)
	MarcarLeida(ctx context.Context, id uuid.UUID) error
	MarcarTodasLeidas(ctx context.Context, usuarioID uuid.UUID) error
}
