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

	_ "github.com/jackc/pgx/v5/stdlib"
)

type RegionRepoPostgres struct {
	db *sql.DB
}

var _ orgDomain.RegionRepository = (*RegionRepoPostgres)(nil)

func NewRegionRepoPostgres(db *sql.DB) *RegionRepoPostgres {
	return &RegionRepoPostgres{db: db}
}

const regionColumns = `r.id, r.nombre, r.codigo, r.estado, r.created_at, r.updated_at`

func scanRegion(row interface{ Scan(...interface{}) error }) (*orgDomain.Region, error) {
	var r orgDomain.Region
	if err := row.Scan(&r.ID, &r.Nombre, &r.Codigo, &r.Estado, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *RegionRepoPostgres) Create(ctx context.Context, region *orgDomain.Region) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO regiones (id, nombre, codigo, estado, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		region.ID, region.Nombre, region.Codigo, region.Estado, region.CreatedAt, region.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *RegionRepoPostgres) Update(ctx context.Context, region *orgDomain.Region) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE regiones SET nombre=$1, codigo=$2, estado=$3, updated_at=$4 WHERE id=$5`,
		region.Nombre, region.Codigo, region.Estado, region.UpdatedAt, region.ID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return orgDomain.ErrRegionNotFound
	}
	return nil
}

func (r *RegionRepoPostgres) GetByID(ctx context.Context, id uuid.UUID) (*orgDomain.Region, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+regionColumns+` FROM regiones r WHERE r.id=$1`, id)

	region, err := scanRegion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, orgDomain.ErrRegionNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return region, nil
}

func (r *RegionRepoPostgres) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*orgDomain.Region], error) {
	where, args := sharedQuery.Translate(criteria, sharedQuery.Postgres)
	whereSQL := ""
	if where != "" {
		whereSQL = " WHERE " + where
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM regiones r`+whereSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	q := `SELECT ` + regionColumns + ` FROM regiones r` + whereSQL +
		" " + sharedQuery.OrderBy(s, "r.id") +
		" " + sharedQuery.Paginate(p, sharedQuery.Postgres, &args)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	regiones := make([]*orgDomain.Region, 0, p.Limit)
	for rows.Next() {
		region, err := scanRegion(rows)
		if err != nil {
			return nil, err
		}
		regiones = append(regiones, region)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sharedQuery.NewPage(regiones, total, pageNumber(p), p.Limit), nil
}

func (r *RegionRepoPostgres) ListActivas(ctx context.Context) ([]*orgDomain.Region, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+regionColumns+` FROM regiones r WHERE r.estado=$1 ORDER BY r.nombre, r.id`,
		orgDomain.EstadoActivo,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var regiones []*orgDomain.Region
	for rows.Next() {
		region, err := scanRegion(rows)
		if err != nil {
			return nil, err
		}
		regiones = append(regiones, region)
	}
	return regiones, rows.Err()
}

// Delete cuenta UGELs dependientes y borra dentro de una transacción.
func (r *RegionRepoPostgres) Delete(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error) {
	outcome, err := sharedDB.GuardedDelete(ctx, r.db, sharedQuery.Postgres, "regiones", id, []shared.DependencyGuard{
		{Relation: "ugels", Table: "ugels", FKColumn: "region_id"},
	})
	if errors.Is(err, sharedDB.ErrNotFound) {
		return outcome, orgDomain.ErrRegionNotFound
	}
	return outcome, err
}

// pageNumber recupera la página 1-indexada de la paginación por offset.
func pageNumber(p sharedQuery.OffsetPagination) int {
	if p.Limit <= 0 {
		return 1
	}
	return (p.Offset / p.Limit) + 1
}
