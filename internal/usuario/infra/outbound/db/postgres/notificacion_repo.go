package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
	userDomain "github.com/ugelhub/convocatorias/internal/usuario/domain"
)

type NotificacionRepoPostgres struct {
	db *sql.DB
}

var _ userDomain.NotificacionRepository = (*NotificacionRepoPostgres)(nil)

func NewNotificacionRepoPostgres(db *sql.DB) *NotificacionRepoPostgres {
	return &NotificacionRepoPostgres{db: db}
}

func (r *NotificacionRepoPostgres) Create(ctx context.Context, n *userDomain.Notificacion) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notificaciones (id, user_id, tipo, titulo, mensaje, leida, fecha_leida, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.UsuarioID, n.Tipo, n.Titulo, n.Mensaje, n.Leida, n.FechaLeida, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *NotificacionRepoPostgres) ListByUsuario(ctx context.Context, usuarioID uuid.UUID, soloNoLeidas bool, p sharedQuery.OffsetPagination) (*sharedQuery.Page[*userDomain.Notificacion], error) {
	where := ` WHERE user_id=$1`
	args := []interface{}{usuarioID}
	if soloNoLeidas {
		where += ` AND leida=false`
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notificaciones`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	q := `SELECT id, user_id, tipo, titulo, mensaje, leida, fecha_leida, created_at
		 FROM notificaciones` + where + ` ORDER BY created_at DESC, id ASC ` +
		sharedQuery.Paginate(p, sharedQuery.Postgres, &args)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]*userDomain.Notificacion, 0, p.Limit)
	for rows.Next() {
		var n userDomain.Notificacion
		if err := rows.Scan(&n.ID, &n.UsuarioID, &n.Tipo, &n.Titulo, &n.Mensaje, &n.Leida, &n.FechaLeida, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sharedQuery.NewPage(items, total, pageNumber(p), p.Limit), nil
}

func (r *NotificacionRepoPostgres) CountNoLeidas(ctx context.Context, usuarioID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notificaciones WHERE user_id=$1 AND leida=false`, usuarioID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// MarcarLeida fija fecha_leida solo la primera vez.
func (r *NotificacionRepoPostgres) MarcarLeida(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notificaciones SET leida=true, fecha_leida=COALESCE(fecha_leida, $1) WHERE id=$2`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return userDomain.ErrNotificacionNotFound
	}
	return nil
}

func (r *NotificacionRepoPostgres) MarcarTodasLeidas(ctx context.Context, usuarioID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notificaciones SET leida=true, fecha_leida=COALESCE(fecha_leida, $1) WHERE user_id=$2 AND leida=false`,
		time.Now().UTC(), usuarioID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
