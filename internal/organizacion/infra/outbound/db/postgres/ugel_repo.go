package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	orgDomain "github.com/ugelhub/convocatorias/internal/organizacion/domain"
	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
	sharedDB "github.com/ugelhub/convocatorias/internal/shared/platform/db"
	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
)

type UgelRepoPostgres struct {
	db *sql.DB
}

var _ orgDomain.UgelRepository = (*UgelRepoPostgres)(nil)

func NewUgelRepoPostgres(db *sql.DB) *UgelRepoPostgres {
	return &UgelRepoPostgres{db: db}
}

const ugelColumns = `u.id, u.region_id, u.nombre, u.codigo, u.direccion, u.telefono, u.email, u.estado, u.created_at, u.updated_at`

// El listado une la región para la búsqueda por campos del padre y para
// mostrar su nombre.
const ugelListadoFrom = ` FROM ugels u JOIN regiones r ON r.id = u.region_id`

func scanUgel(row interface{ Scan(...interface{}) error }) (*orgDomain.Ugel, error) {
	var u orgDomain.Ugel
	if err := row.Scan(&u.ID, &u.RegionID, &u.Nombre, &u.Codigo, &u.Direccion, &u.Telefono, &u.Email, &u.Estado, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UgelRepoPostgres) Create(ctx context.Context, u *orgDomain.Ugel) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ugels (id, region_id, nombre, codigo, direccion, telefono, email, estado, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.RegionID, u.Nombre, u.Codigo, u.Direccion, u.Telefono, u.Email, u.Estado, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *UgelRepoPostgres) Update(ctx context.Context, u *orgDomain.Ugel) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE ugels SET region_id=$1, nombre=$2, codigo=$3, direccion=$4, telefono=$5, email=$6, estado=$7, updated_at=$8
		 WHERE id=$9`,
		u.RegionID, u.Nombre, u.Codigo, u.Direccion, u.Telefono, u.Email, u.Estado, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return orgDomain.ErrUgelNotFound
	}
	return nil
}

func (r *UgelRepoPostgres) GetByID(ctx context.Context, id uuid.UUID) (*orgDomain.Ugel, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ugelColumns+` FROM ugels u WHERE u.id=$1`, id)

	u, err := scanUgel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orgDomain.ErrUgelNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *UgelRepoPostgres) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*orgDomain.UgelListado], error) {
	where, args := sharedQuery.Translate(criteria, sharedQuery.Postgres)
	whereSQL := ""
	if where != "" {
		whereSQL = " WHERE " + where
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+ugelListadoFrom+whereSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	q := `SELECT ` + ugelColumns + `, r.nombre AS region_nombre` + ugelListadoFrom + whereSQL +
		" " + sharedQuery.OrderBy(s, "u.id") +
		" " + sharedQuery.Paginate(p, sharedQuery.Postgres, &args)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]*orgDomain.UgelListado, 0, p.Limit)
	for rows.Next() {
		var item orgDomain.UgelListado
		if err := rows.Scan(&item.ID, &item.RegionID, &item.Nombre, &item.Codigo, &item.Direccion,
			&item.Telefono, &item.Email, &item.Estado, &item.CreatedAt, &item.UpdatedAt,
			&item.RegionNombre); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sharedQuery.NewPage(items, total, pageNumber(p), p.Limit), nil
}

func (r *UgelRepoPostgres) ListActivas(ctx context.Context) ([]*orgDomain.Ugel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+ugelColumns+` FROM ugels u WHERE u.estado=$1 ORDER BY u.nombre, u.id`,
		orgDomain.EstadoActivo,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var ugels []*orgDomain.Ugel
	for rows.Next() {
		u, err := scanUgel(rows)
		if err != nil {
			return nil, err
		}
		ugels = append(ugels, u)
	}
	return ugels, rows.Err()
}

// Delete bloquea mientras existan distritos o convocatorias de la UGEL.
func (r *UgelRepoPostgres) Delete(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error) {
	outcome, err := sharedDB.GuardedDelete(ctx, r.db, sharedQuery.Postgres, "ugels", id, []shared.DependencyGuard{
		{Relation: "distritos", Table: "distritos", FKColumn: "ugel_id"},
		{Relation: "convocatorias", Table: "convocatorias", FKColumn: "ugel_id"},
	})
	if errors.Is(err, sharedDB.ErrNotFound) {
		return outcome, orgDomain.ErrUgelNotFound
	}
	return outcome, err
}
