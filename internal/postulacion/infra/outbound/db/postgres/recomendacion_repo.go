package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	postDomain "github.com/ugelhub/convocatorias/internal/postulacion/domain"
)

type RecomendacionRepoPostgres struct {
	db *sql.DB
}

var _ postDomain.RecomendacionRepository = (*RecomendacionRepoPostgres)(nil)

func NewRecomendacionRepoPostgres(db *sql.DB) *RecomendacionRepoPostgres {
	return &RecomendacionRepoPostgres{db: db}
}

const recomendacionColumns = `id, user_id, plaza_id, puntuacion_compatibilidad, nivel_confianza,
	match_especialidad, match_ubicacion, match_experiencia, estado, fecha_generacion, fecha_expiracion`

func scanRecomendacion(row interface{ Scan(...interface{}) error }) (*postDomain.RecomendacionIa, error) {
	var r postDomain.RecomendacionIa
	if err := row.Scan(&r.ID, &r.UserID, &r.PlazaID, &r.PuntuacionCompatibilidad, &r.NivelConfianza,
		&r.MatchEspecialidad, &r.MatchUbicacion, &r.MatchExperiencia, &r.Estado,
		&r.FechaGeneracion, &r.FechaExpiracion); err != nil {
		return nil, err
	}
	return &r, nil
}

func (rp *RecomendacionRepoPostgres) Create(ctx context.Context, r *postDomain.RecomendacionIa) error {
	_, err := rp.db.ExecContext(ctx,
		`INSERT INTO recomendaciones_ia (id, user_id, plaza_id, puntuacion_compatibilidad, nivel_confianza,
		 match_especialidad, match_ubicacion, match_experiencia, estado, fecha_generacion, fecha_expiracion)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		r.ID, r.UserID, r.PlazaID, r.PuntuacionCompatibilidad, r.NivelConfianza,
		r.MatchEspecialidad, r.MatchUbicacion, r.MatchExperiencia, r.Estado,
		r.FechaGeneracion, r.FechaExpiracion,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (rp *RecomendacionRepoPostgres) GetByID(ctx context.Context, id uuid.UUID) (*postDomain.RecomendacionIa, error) {
	row := rp.db.QueryRowContext(ctx, `SELECT `+recomendacionColumns+` FROM recomendaciones_ia WHERE id=$1`, id)

	r, err := scanRecomendacion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, postDomain.ErrRecomendacionNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r, nil
}

func (rp *RecomendacionRepoPostgres) ListByUsuario(ctx context.Context, userID uuid.UUID) ([]*postDomain.RecomendacionIa, error) {
	rows, err := rp.db.QueryContext(ctx,
		`SELECT `+recomendacionColumns+` FROM recomendaciones_ia
		 WHERE user_id=$1 ORDER BY fecha_generacion DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*postDomain.RecomendacionIa
	for rows.Next() {
		r, err := scanRecomendacion(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

func (rp *RecomendacionRepoPostgres) Update(ctx context.Context, r *postDomain.RecomendacionIa) error {
	res, err := rp.db.ExecContext(ctx,
		`UPDATE recomendaciones_ia SET estado=$1 WHERE id=$2`, r.Estado, r.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return postDomain.ErrRecomendacionNotFound
	}
	return nil
}
