package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
	sharedDB "github.com/ugelhub/convocatorias/internal/shared/platform/db"
	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
	userDomain "github.com/ugelhub/convocatorias/internal/usuario/domain"
)

// UsuarioRepoSQLite es el backend de despliegue local. Los UUID se
// guardan como TEXT y los ILIKE se traducen a LIKE (colación por defecto
// de SQLite, sensible a mayúsculas solo para no-ASCII).
type UsuarioRepoSQLite struct {
	db *sql.DB
}

var _ userDomain.UsuarioRepository = (*UsuarioRepoSQLite)(nil)

func NewUsuarioRepoSQLite(db *sql.DB) *UsuarioRepoSQLite {
	return &UsuarioRepoSQLite{db: db}
}

func pageNumber(p sharedQuery.OffsetPagination) int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Offset/p.Limit + 1
}

const usuarioColumns = `us.id, us.nombres, us.apellidos, us.dni, us.email, us.password_hash, us.user_type,
	us.estado, us.institucion_id, us.created_at, us.updated_at`

const usuarioListadoFrom = ` FROM usuarios us LEFT JOIN instituciones i ON i.id = us.institucion_id`

func scanUsuario(row interface{ Scan(...interface{}) error }) (*userDomain.Usuario, error) {
	var u userDomain.Usuario
	var idStr string
	var instStr sql.NullString
	if err := row.Scan(&idStr, &u.Nombres, &u.Apellidos, &u.DNI, &u.Email, &u.PasswordHash, &u.Tipo,
		&u.Estado, &instStr, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in usuarios row: %w", err)
	}
	u.ID = id

	if instStr.Valid {
		instID, err := uuid.Parse(instStr.String)
		if err != nil {
			return nil, fmt.Errorf("invalid institucion_id in usuarios row: %w", err)
		}
		u.InstitucionID = &instID
	}
	return &u, nil
}

func institucionArg(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return id.String()
}

func (r *UsuarioRepoSQLite) Create(ctx context.Context, u *userDomain.Usuario) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO usuarios (id, nombres, apellidos, dni, email, password_hash, user_type, estado, institucion_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID.String(), u.Nombres, u.Apellidos, u.DNI, u.Email, u.PasswordHash, u.Tipo, u.Estado,
		institucionArg(u.InstitucionID), u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *UsuarioRepoSQLite) Update(ctx context.Context, u *userDomain.Usuario) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE usuarios SET nombres=?, apellidos=?, dni=?, email=?, password_hash=?, user_type=?,
		 estado=?, institucion_id=?, updated_at=?
		 WHERE id=?`,
		u.Nombres, u.Apellidos, u.DNI, u.Email, u.PasswordHash, u.Tipo,
		u.Estado, institucionArg(u.InstitucionID), u.UpdatedAt, u.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return userDomain.ErrUsuarioNotFound
	}
	return nil
}

func (r *UsuarioRepoSQLite) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.Usuario, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+usuarioColumns+` FROM usuarios us WHERE us.id=?`, id.String())
	return r.one(row)
}

func (r *UsuarioRepoSQLite) GetByDNI(ctx context.Context, dni string) (*userDomain.Usuario, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+usuarioColumns+` FROM usuarios us WHERE us.dni=?`, dni)
	return r.one(row)
}

func (r *UsuarioRepoSQLite) one(row *sql.Row) (*userDomain.Usuario, error) {
	u, err := scanUsuario(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userDomain.ErrUsuarioNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *UsuarioRepoSQLite) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*userDomain.UsuarioListado], error) {
	where, args := sharedQuery.Translate(criteria, sharedQuery.SQLite)
	whereSQL := ""
	if where != "" {
		whereSQL = " WHERE " + where
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+usuarioListadoFrom+whereSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	q := `SELECT ` + usuarioColumns + `, COALESCE(i.nombre, '') AS institucion_nombre` +
		usuarioListadoFrom + whereSQL +
		" " + sharedQuery.OrderBy(s, "us.id") +
		" " + sharedQuery.Paginate(p, sharedQuery.SQLite, &args)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]*userDomain.UsuarioListado, 0, p.Limit)
	for rows.Next() {
		var item userDomain.UsuarioListado
		var idStr string
		var instStr sql.NullString
		if err := rows.Scan(&idStr, &item.Nombres, &item.Apellidos, &item.DNI, &item.Email,
			&item.PasswordHash, &item.Tipo, &item.Estado, &instStr,
			&item.CreatedAt, &item.UpdatedAt, &item.InstitucionNombre); err != nil {
			return nil, err
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid UUID in usuarios row: %w", err)
		}
		item.ID = id
		if instStr.Valid {
			instID, err := uuid.Parse(instStr.String)
			if err != nil {
				return nil, fmt.Errorf("invalid institucion_id in usuarios row: %w", err)
			}
			item.InstitucionID = &instID
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sharedQuery.NewPage(items, total, pageNumber(p), p.Limit), nil
}

func (r *UsuarioRepoSQLite) Delete(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error) {
	outcome, err := sharedDB.GuardedDelete(ctx, r.db, sharedQuery.SQLite, "usuarios", id, []shared.DependencyGuard{
		{Relation: "postulaciones", Table: "postulaciones", FKColumn: "user_id"},
	})
	if errors.Is(err, sharedDB.ErrNotFound) {
		return outcome, userDomain.ErrUsuarioNotFound
	}
	return outcome, err
}
