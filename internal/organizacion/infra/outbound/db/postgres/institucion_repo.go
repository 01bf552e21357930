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

type InstitucionRepoPostgres struct {
	db *sql.DB
}

var _ orgDomain.InstitucionRepository = (*InstitucionRepoPostgres)(nil)

func NewInstitucionRepoPostgres(db *sql.DB) *InstitucionRepoPostgres {
	return &InstitucionRepoPostgres{db: db}
}

const institucionColumns = `i.id, i.distrito_id, i.nombre, i.codigo, i.nivel, i.modalidad, i.direccion, i.estado, i.created_at, i.updated_at`

// La búsqueda de instituciones sube hasta la región, así que el listado
// une toda la cadena de padres.
const institucionListadoFrom = ` FROM instituciones i
	JOIN distritos d ON d.id = i.distrito_id
	JOIN ugels u ON u.id = d.ugel_id
	JOIN regiones r ON r.id = u.region_id`

func scanInstitucion(row interface{ Scan(...interface{}) error }) (*orgDomain.Institucion, error) {
	var i orgDomain.Institucion
	if err := row.Scan(&i.ID, &i.DistritoID, &i.Nombre, &i.Codigo, &i.Nivel, &i.Modalidad,
		&i.Direccion, &i.Estado, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InstitucionRepoPostgres) Create(ctx context.Context, i *orgDomain.Institucion) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO instituciones (id, distrito_id, nombre, codigo, nivel, modalidad, direccion, estado, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		i.ID, i.DistritoID, i.Nombre, i.Codigo, i.Nivel, i.Modalidad, i.Direccion, i.Estado, i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *InstitucionRepoPostgres) Update(ctx context.Context, i *orgDomain.Institucion) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE instituciones SET distrito_id=$1, nombre=$2, codigo=$3, nivel=$4, modalidad=$5, direccion=$6, estado=$7, updated_at=$8
		 WHERE id=$9`,
		i.DistritoID, i.Nombre, i.Codigo, i.Nivel, i.Modalidad, i.Direccion, i.Estado, i.UpdatedAt, i.ID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return orgDomain.ErrInstitucionNotFound
	}
	return nil
}

func (r *InstitucionRepoPostgres) GetByID(ctx context.Context, id uuid.UUID) (*orgDomain.Institucion, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+institucionColumns+` FROM instituciones i WHERE i.id=$1`, id)

	inst, err := scanInstitucion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orgDomain.ErrInstitucionNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return inst, nil
}

func (r *InstitucionRepoPostgres) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*orgDomain.InstitucionListado], error) {
	where, args := sharedQuery.Translate(criteria, sharedQuery.Postgres)
	whereSQL := ""
	if where != "" {
		whereSQL = " WHERE " + where
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+institucionListadoFrom+whereSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	q := `SELECT ` + institucionColumns + `, d.nombre, u.nombre, r.nombre` + institucionListadoFrom + whereSQL +
		" " + sharedQuery.OrderBy(s, "i.id") +
		" " + sharedQuery.Paginate(p, sharedQuery.Postgres, &args)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]*orgDomain.InstitucionListado, 0, p.Limit)
	for rows.Next() {
		var item orgDomain.InstitucionListado
		if err := rows.Scan(&item.ID, &item.DistritoID, &item.Nombre, &item.Codigo, &item.Nivel,
			&item.Modalidad, &item.Direccion, &item.Estado, &item.CreatedAt, &item.UpdatedAt,
			&item.DistritoNombre, &item.UgelNombre, &item.RegionNombre); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sharedQuery.NewPage(items, total, pageNumber(p), p.Limit), nil
}

func (r *InstitucionRepoPostgres) ListActivas(ctx context.Context) ([]*orgDomain.Institucion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+institucionColumns+` FROM instituciones i WHERE i.estado=$1 ORDER BY i.nombre, i.id`,
		orgDomain.EstadoActivo,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var instituciones []*orgDomain.Institucion
	for rows.Next() {
		i, err := scanInstitucion(rows)
		if err != nil {
			return nil, err
		}
		instituciones = append(instituciones, i)
	}
	return instituciones, rows.Err()
}

// Delete bloquea mientras existan plazas o usuarios ligados a la institución.
func (r *InstitucionRepoPostgres) Delete(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error) {
	outcome, err := sharedDB.GuardedDelete(ctx, r.db, sharedQuery.Postgres, "instituciones", id, []shared.DependencyGuard{
		{Relation: "plazas", Table: "plazas", FKColumn: "institucion_id"},
		{Relation: "usuarios", Table: "usuarios", FKColumn: "institucion_id"},
	})
	if errors.Is(err, sharedDB.ErrNotFound) {
		return outcome, orgDomain.ErrInstitucionNotFound
	}
	return outcome, err
}
