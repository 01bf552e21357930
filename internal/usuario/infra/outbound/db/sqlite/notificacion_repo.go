package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
	userDomain "github.com/ugelhub/convocatorias/internal/usuario/domain"
)

type NotificacionRepoSQLite struct {
	db *sql.DB
}

var _ userDomain.NotificacionRepository = (*NotificacionRepoSQLite)(nil)

func NewNotificacionRepoSQLite(db *sql.DB) *NotificacionRepoSQLite {
	return &NotificacionRepoSQLite{db: db}
}

func (r *NotificacionRepoSQLite) Create(ctx context.Context, n *userDomain.Notificacion) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notificaciones (id, user_id, tipo, titulo, mensaje, leida, fecha_leida, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID.String(), n.UsuarioID.String(), n.Tipo, n.Titulo, n.Mensaje, n.Leida, n.FechaLeida, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *NotificacionRepoSQLite) ListByUsuario(ctx context.Context, usuarioID uuid.UUID, soloNoLeidas bool, p sharedQuery.OffsetPagination) (*sharedQuery.Page[*userDomain.Notificacion], error) {
	where := ` WHERE user_id=?`
	args := []interface{}{usuarioID.String()}
	if soloNoLeidas {
		where += ` AND leida=0`
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notificaciones`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	q := `SELECT id, user_id, tipo, titulo, mensaje, leida, fecha_leida, created_at
		 FROM notificaciones` + where + ` ORDER BY created_at DESC, id ASC ` +
		sharedQuery.Paginate(p, sharedQuery.SQLite, &args)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]*userDomain.Notificacion, 0, p.Limit)
	for rows.Next() {
		var n userDomain.Notificacion
		var idStr, userStr string
		if err := rows.Scan(&idStr, &userStr, &n.Tipo, &n.Titulo, &n.Mensaje, &n.Leida, &n.FechaLeida, &n.CreatedAt); err != nil {
			return nil, err
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid UUID in notificaciones row: %w", err)
		}
		n.ID = id
		uid, err := uuid.Parse(userStr)
		if err != nil {
			return nil, fmt.Errorf("invalid user_id in notificaciones row: %w", err)
		}
		n.UsuarioID = uid
		items = append(items, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sharedQuery.NewPage(items, total, pageNumber(p), p.Limit), nil
}

func (r *NotificacionRepoSQLite) CountNoLeidas(ctx context.Context, usuarioID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notificaciones WHERE user_id=? AND leida=0`, usuarioID.String()).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *NotificacionRepoSQLite) MarcarLeida(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notificaciones SET leida=1, fecha_leida=COALESCE(fecha_leida, ?) WHERE id=?`,
		time.Now().UTC(), id.String(),
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

func (r *NotificacionRepoSQLite) MarcarTodasLeidas(ctx context.Context, usuarioID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notificaciones SET leida=1, fecha_leida=COALESCE(fecha_leida, ?) WHERE user_id=? AND leida=0`,
		time.Now().UTC(), usuarioID.String(),
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
