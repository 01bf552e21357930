package postgres

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

type UsuarioRepoPostgres struct {
	db *sql.DB
}

var _ userDomain.UsuarioRepository = (*UsuarioRepoPostgres)(nil)

func NewUsuarioRepoPostgres(db *sql.DB) *UsuarioRepoPostgres {
	return &UsuarioRepoPostgres{db: db}
}

func pageNumber(p sharedQuery.OffsetPagination) int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Offset/p.Limit + 1
}

const usuarioColumns = `us.id, us.nombres, us.apellidos, us.dni, us.email, us.password_hash, us.user_type,
	us.estado, us.institucion_id, us.created_at, us.updated_at`

// La institución de trabajo es opcional, de ahí el LEFT JOIN.
const usuarioListadoFrom = ` FROM usuarios us LEFT JOIN instituciones i ON i.id = us.institucion_id`

func scanUsuario(row interface{ Scan(...interface{}) error }) (*userDomain.Usuario, error) {
	var u userDomain.Usuario
	if err := row.Scan(&u.ID, &u.Nombres, &u.Apellidos, &u.DNI, &u.Email, &u.PasswordHash, &u.Tipo,
		&u.Estado, &u.InstitucionID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UsuarioRepoPostgres) Create(ctx context.Context, u *userDomain.Usuario) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO usuarios (id, nombres, apellidos, dni, email, password_hash, user_type, estado, institucion_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.Nombres, u.Apellidos, u.DNI, u.Email, u.PasswordHash, u.Tipo, u.Estado, u.InstitucionID,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *UsuarioRepoPostgres) Update(ctx context.Context, u *userDomain.Usuario) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE usuarios SET nombres=$1, apellidos=$2, dni=$3, email=$4, password_hash=$5, user_type=$6,
		 estado=$7, institucion_id=$8, updated_at=$9
		 WHERE id=$10`,
		u.Nombres, u.Apellidos, u.DNI, u.Email, u.PasswordHash, u.Tipo,
		u.Estado, u.InstitucionID, u.UpdatedAt, u.ID,
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

func (r *UsuarioRepoPostgres) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.Usuario, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+usuarioColumns+` FROM usuarios us WHERE us.id=$1`, id)
	return r.one(row)
}

func (r *UsuarioRepoPostgres) GetByDNI(ctx context.Context, dni string) (*userDomain.Usuario, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+usuarioColumns+` FROM usuarios us WHERE us.dni=$1`, dni)
	return r.one(row)
}

func (r *UsuarioRepoPostgres) one(row *sql.Row) (*userDomain.Usuario, error) {
	u, err := scanUsuario(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userDomain.ErrUsuarioNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *UsuarioRepoPostgres) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*userDomain.UsuarioListado], error) {
	where, args := sharedQuery.Translate(criteria, sharedQuery.Postgres)
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
		" " + sharedQuery.Paginate(p, sharedQuery.Postgres, &args)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]*userDomain.UsuarioListado, 0, p.Limit)
	for rows.Next() {
		var item userDomain.UsuarioListado
		if err := rows.Scan(&item.ID, &item.Nombres, &item.Apellidos, &item.DNI, &item.Email,
			&item.PasswordHash, &item.Tipo, &item.Estado, &item.InstitucionID,
			&item.CreatedAt, &item.UpdatedAt, &item.InstitucionNombre); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sharedQuery.NewPage(items, total, pageNumber(p), p.Limit), nil
}

// Delete bloquea mientras el usuario tenga postulaciones registradas.
func (r *UsuarioRepoPostgres) Delete(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error) {
	outcome, err := sharedDB.GuardedDelete(ctx, r.db, sharedQuery.Postgres, "usuarios", id, []shared.DependencyGuard{
		{Relation: "postulaciones", Table: "postulaciones", FKColumn: "user_id"},
	})
	if errors.Is(err, sharedDB.ErrNotFound) {
		return outcome, userDomain.ErrUsuarioNotFound
	}
	return outcome, err
}
