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

type PlazaRepoPostgres struct {
	db *sql.DB
}

var _ convDomain.PlazaRepository = (*PlazaRepoPostgres)(nil)

func NewPlazaRepoPostgres(db *sql.DB) *PlazaRepoPostgres {
	return &PlazaRepoPostgres{db: db}
}

const plazaColumns = `p.id, p.convocatoria_id, p.institucion_id, p.codigo_plaza, p.cargo, p.nivel,
	p.especialidad, p.jornada, p.monto_pago, p.vacantes, p.motivo_vacante, p.requisitos, p.estado,
	p.created_at, p.updated_at`

const plazaListadoFrom = ` FROM plazas p
	JOIN convocatorias c ON c.id = p.convocatoria_id
	JOIN instituciones i ON i.id = p.institucion_id`

func scanPlaza(row interface{ Scan(...interface{}) error }) (*convDomain.Plaza, error) {
	var p convDomain.Plaza
	if err := row.Scan(&p.ID, &p.ConvocatoriaID, &p.InstitucionID, &p.CodigoPlaza, &p.Cargo, &p.Nivel,
		&p.Especialidad, &p.Jornada, &p.MontoPago, &p.Vacantes, &p.MotivoVacante, &p.Requisitos, &p.Estado,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlazaRepoPostgres) Create(ctx context.Context, p *convDomain.Plaza) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plazas (id, convocatoria_id, institucion_id, codigo_plaza, cargo, nivel, especialidad,
		 jornada, monto_pago, vacantes, motivo_vacante, requisitos, estado, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		p.ID, p.ConvocatoriaID, p.InstitucionID, p.CodigoPlaza, p.Cargo, p.Nivel, p.Especialidad,
		p.Jornada, p.MontoPago, p.Vacantes, p.MotivoVacante, p.Requisitos, p.Estado, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PlazaRepoPostgres) Update(ctx context.Context, p *convDomain.Plaza) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE plazas SET convocatoria_id=$1, institucion_id=$2, codigo_plaza=$3, cargo=$4, nivel=$5,
		 especialidad=$6, jornada=$7, monto_pago=$8, vacantes=$9, motivo_vacante=$10, requisitos=$11,
		 estado=$12, updated_at=$13
		 WHERE id=$14`,
		p.ConvocatoriaID, p.InstitucionID, p.CodigoPlaza, p.Cargo, p.Nivel,
		p.Especialidad, p.Jornada, p.MontoPago, p.Vacantes, p.MotivoVacante, p.Requisitos,
		p.Estado, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return convDomain.ErrPlazaNotFound
	}
	return nil
}

func (r *PlazaRepoPostgres) GetByID(ctx context.Context, id uuid.UUID) (*convDomain.Plaza, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+plazaColumns+` FROM plazas p WHERE p.id=$1`, id)

	p, err := scanPlaza(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, convDomain.ErrPlazaNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PlazaRepoPostgres) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*convDomain.PlazaListado], error) {
	where, args := sharedQuery.Translate(criteria, sharedQuery.Postgres)
	whereSQL := ""
	if where != "" {
		whereSQL = " WHERE " + where
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+plazaListadoFrom+whereSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	q := `SELECT ` + plazaColumns + `, c.titulo AS convocatoria_titulo, i.nombre AS institucion_nombre` +
		plazaListadoFrom + whereSQL +
		" " + sharedQuery.OrderBy(s, "p.id") +
		" " + sharedQuery.Paginate(p, sharedQuery.Postgres, &args)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]*convDomain.PlazaListado, 0, p.Limit)
	for rows.Next() {
		var item convDomain.PlazaListado
		if err := rows.Scan(&item.ID, &item.ConvocatoriaID, &item.InstitucionID, &item.CodigoPlaza, &item.Cargo,
			&item.Nivel, &item.Especialidad, &item.Jornada, &item.MontoPago, &item.Vacantes, &item.MotivoVacante,
			&item.Requisitos, &item.Estado, &item.CreatedAt, &item.UpdatedAt,
			&item.ConvocatoriaTitulo, &item.InstitucionNombre); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sharedQuery.NewPage(items, total, pageNumber(p), p.Limit), nil
}

// Delete bloquea mientras existan postulaciones a la plaza.
func (r *PlazaRepoPostgres) Delete(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error) {
	outcome, err := sharedDB.GuardedDelete(ctx, r.db, sharedQuery.Postgres, "plazas", id, []shared.DependencyGuard{
		{Relation: "postulaciones", Table: "postulaciones", FKColumn: "plaza_id"},
	})
	if errors.Is(err, sharedDB.ErrNotFound) {
		return outcome, convDomain.ErrPlazaNotFound
	}
	return outcome, err
}
