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

type DistritoRepoPostgres struct {
	db *sql.DB
}

var _ orgDomain.DistritoRepository = (*DistritoRepoPostgres)(nil)

func NewDistritoRepoPostgres(db *sql.DB) *DistritoRepoPostgres {
	return &DistritoRepoPostgres{db: db}
}

const distritoColumns = `d.id, d.ugel_id, d.nombre, d.codigo, d.estado, d.created_at, d.updated_at`

const distritoListadoFrom = ` FROM distritos d JOIN ugels u ON u.id = d.ugel_id`

func scanDistrito(row interface{ Scan(...interface{}) error }) (*orgDomain.Distrito, error) {
	var d orgDomain.Distrito
	if err := row.Scan(&d.ID, &d.UgelID, &d.Nombre, &d.Codigo, &d.Estado, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DistritoRepoPostgres) Create(ctx context.Context, d *orgDomain.Distrito) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO distritos (id, ugel_id, nombre, codigo, estado, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.UgelID, d.Nombre, d.Codigo, d.Estado, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *DistritoRepoPostgres) Update(ctx context.Context, d *orgDomain.Distrito) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE distritos SET ugel_id=$1, nombre=$2, codigo=$3, estado=$4, updated_at=$5 WHERE id=$6`,
		d.UgelID, d.Nombre, d.Codigo, d.Estado, d.UpdatedAt, d.ID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return orgDomain.ErrDistritoNotFound
	}
	return nil
}

func (r *DistritoRepoPostgres) GetByID(ctx context.Context, id uuid.UUID) (*orgDomain.Distrito, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+distritoColumns+` FROM distritos d WHERE d.id=$1`, id)

	d, err := scanDistrito(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orgDomain.ErrDistritoNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

func (r *DistritoRepoPostgres) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*orgDomain.DistritoListado], error) {
	where, args := sharedQuery.Translate(criteria, sharedQuery.Postgres)
	whereSQL := ""
	if where != "" {
		whereSQL = " WHERE " + where
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+distritoListadoFrom+whereSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	q := `SELECT ` + distritoColumns + `, u.nombre AS ugel_nombre` + distritoListadoFrom + whereSQL +
		" " + sharedQuery.OrderBy(s, "d.id") +
		" " + sharedQuery.Paginate(p, sharedQuery.Postgres, &args)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]*orgDomain.DistritoListado, 0, p.Limit)
	for rows.Next() {
		var item orgDomain.DistritoListado
		if err := rows.Scan(&item.ID, &item.UgelID, &item.Nombre, &item.Codigo, &item.Estado,
			&item.CreatedAt, &item.UpdatedAt, &item.UgelNombre); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sharedQuery.NewPage(items, total, pageNumber(p), p.Limit), nil
}

func (r *DistritoRepoPostgres) ListActivos(ctx context.Context) ([]*orgDomain.Distrito, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+distritoColumns+` FROM distritos d WHERE d.estado=$1 ORDER BY d.nombre, d.id`,
		orgDomain.EstadoActivo,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var distritos []*orgDomain.Distrito
	for rows.Next() {
		d, err := scanDistrito(rows)
		if err != nil {
			return nil, err
		}
		distritos = append(distritos, d)
	}
	return distritos, rows.Err()
}

// Delete bloquea mientras existan instituciones del distrito.
func (r *DistritoRepoPostgres) Delete(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error) {
	outcome, err := sharedDB.GuardedDelete(ctx, r.db, sharedQuery.Postgres, "distritos", id, []shared.DependencyGuard{
		{Relation: "instituciones", Table: "instituciones", FKColumn: "distrito_id"},
	})
	if errors.Is(err, sharedDB.ErrNotFound) {
		return outcome, orgDomain.ErrDistritoNotFound
	}
	return outcome, err
}
