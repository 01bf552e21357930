package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	convDomain "github.com/ugelhub/convocatorias/internal/convocatoria/domain"
	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
	sharedDB "github.com/ugelhub/convocatorias/internal/shared/platform/db"
	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
)

type ConvocatoriaRepoPostgres struct {
	db *sql.DB
}

var _ convDomain.ConvocatoriaRepository = (*ConvocatoriaRepoPostgres)(nil)

func NewConvocatoriaRepoPostgres(db *sql.DB) *ConvocatoriaRepoPostgres {
	return &ConvocatoriaRepoPostgres{db: db}
}

func pageNumber(p sharedQuery.OffsetPagination) int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Offset/p.Limit + 1
}

const convocatoriaColumns = `c.id, c.ugel_id, c.created_by, c.titulo, c.descripcion, c.anio, c.tipo_proceso,
	c.fecha_inicio, c.fecha_fin, c.inscripcion_desde, c.inscripcion_hasta, c.estado, c.total_plazas,
	c.created_at, c.updated_at`

const convocatoriaListadoFrom = ` FROM convocatorias c JOIN ugels u ON u.id = c.ugel_id`

// plazas_disponibles = meta declarada menos plazas hijas registradas.
// Se calcula por listado; no existe como columna.
const plazasDisponiblesExpr = `c.total_plazas - (SELECT COUNT(*) FROM plazas p2 WHERE p2.convocatoria_id = c.id)`

func scanConvocatoria(row interface{ Scan(...interface{}) error }) (*convDomain.Convocatoria, error) {
	var c convDomain.Convocatoria
	if err := row.Scan(&c.ID, &c.UgelID, &c.CreatedBy, &c.Titulo, &c.Descripcion, &c.Anio, &c.TipoProceso,
		&c.FechaInicio, &c.FechaFin, &c.InscripcionDesde, &c.InscripcionHasta, &c.Estado, &c.TotalPlazas,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanConvocatoriaListado(rows *sql.Rows) (*convDomain.ConvocatoriaListado, error) {
	var item convDomain.ConvocatoriaListado
	if err := rows.Scan(&item.ID, &item.UgelID, &item.CreatedBy, &item.Titulo, &item.Descripcion, &item.Anio,
		&item.TipoProceso, &item.FechaInicio, &item.FechaFin, &item.InscripcionDesde, &item.InscripcionHasta,
		&item.Estado, &item.TotalPlazas, &item.CreatedAt, &item.UpdatedAt,
		&item.UgelNombre, &item.PlazasDisponibles); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ConvocatoriaRepoPostgres) Create(ctx context.Context, c *convDomain.Convocatoria) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO convocatorias (id, ugel_id, created_by, titulo, descripcion, anio, tipo_proceso,
		 fecha_inicio, fecha_fin, inscripcion_desde, inscripcion_hasta, estado, total_plazas, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		c.ID, c.UgelID, c.CreatedBy, c.Titulo, c.Descripcion, c.Anio, c.TipoProceso,
		c.FechaInicio, c.FechaFin, c.InscripcionDesde, c.InscripcionHasta, c.Estado, c.TotalPlazas,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *ConvocatoriaRepoPostgres) Update(ctx context.Context, c *convDomain.Convocatoria) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE convocatorias SET ugel_id=$1, titulo=$2, descripcion=$3, anio=$4, tipo_proceso=$5,
		 fecha_inicio=$6, fecha_fin=$7, inscripcion_desde=$8, inscripcion_hasta=$9, estado=$10,
		 total_plazas=$11, updated_at=$12
		 WHERE id=$13`,
		c.UgelID, c.Titulo, c.Descripcion, c.Anio, c.TipoProceso,
		c.FechaInicio, c.FechaFin, c.InscripcionDesde, c.InscripcionHasta, c.Estado,
		c.TotalPlazas, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return convDomain.ErrConvocatoriaNotFound
	}
	return nil
}

func (r *ConvocatoriaRepoPostgres) GetByID(ctx context.Context, id uuid.UUID) (*convDomain.Convocatoria, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+convocatoriaColumns+` FROM convocatorias c WHERE c.id=$1`, id)

	c, err := scanConvocatoria(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, convDomain.ErrConvocatoriaNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *ConvocatoriaRepoPostgres) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*convDomain.ConvocatoriaListado], error) {
	where, args := sharedQuery.Translate(criteria, sharedQuery.Postgres)
	whereSQL := ""
	if where != "" {
		whereSQL = " WHERE " + where
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+convocatoriaListadoFrom+whereSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	q := `SELECT ` + convocatoriaColumns + `, u.nombre AS ugel_nombre, ` + plazasDisponiblesExpr + ` AS plazas_disponibles` +
		convocatoriaListadoFrom + whereSQL +
		" " + sharedQuery.OrderBy(s, "c.id") +
		" " + sharedQuery.Paginate(p, sharedQuery.Postgres, &args)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]*convDomain.ConvocatoriaListado, 0, p.Limit)
	for rows.Next() {
		item, err := scanConvocatoriaListado(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sharedQuery.NewPage(items, total, pageNumber(p), p.Limit), nil
}

func (r *ConvocatoriaRepoPostgres) ListAbiertas(ctx context.Context) ([]*convDomain.ConvocatoriaListado, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+convocatoriaColumns+`, u.nombre AS ugel_nombre, `+plazasDisponiblesExpr+` AS plazas_disponibles`+
			convocatoriaListadoFrom+
			` WHERE c.estado IN ($1, $2) ORDER BY c.anio DESC, c.titulo, c.id`,
		convDomain.ConvocatoriaPublicada, convDomain.ConvocatoriaActiva,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*convDomain.ConvocatoriaListado
	for rows.Next() {
		item, err := scanConvocatoriaListado(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Delete bloquea mientras existan plazas o postulaciones de la convocatoria.
func (r *ConvocatoriaRepoPostgres) Delete(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error) {
	outcome, err := sharedDB.GuardedDelete(ctx, r.db, sharedQuery.Postgres, "convocatorias", id, []shared.DependencyGuard{
		{Relation: "plazas", Table: "plazas", FKColumn: "convocatoria_id"},
		{Relation: "postulaciones", Table: "postulaciones", FKColumn: "convocatoria_id"},
	})
	if errors.Is(err, sharedDB.ErrNotFound) {
		return outcome, convDomain.ErrConvocatoriaNotFound
	}
	return outcome, err
}
