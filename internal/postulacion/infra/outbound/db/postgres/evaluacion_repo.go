package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	postDomain "github.com/ugelhub/convocatorias/internal/postulacion/domain"
	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
)

type EvaluacionRepoPostgres struct {
	db *sql.DB
}

var _ postDomain.EvaluacionRepository = (*EvaluacionRepoPostgres)(nil)

func NewEvaluacionRepoPostgres(db *sql.DB) *EvaluacionRepoPostgres {
	return &EvaluacionRepoPostgres{db: db}
}

// Registrar inserta la evaluación, marca la postulación y escribe el
// evento de outbox en una sola transacción: o se observa todo o nada.
func (r *EvaluacionRepoPostgres) Registrar(ctx context.Context, e *postDomain.Evaluacion, p *postDomain.Postulacion, evt *shared.OutboxEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO evaluaciones (id, postulacion_id, evaluador_id, puntaje_curriculo, puntaje_conocimientos,
		 puntaje_entrevista, puntaje_total, observaciones, fecha_evaluacion)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.PostulacionID, e.EvaluadorID, e.PuntajeCurriculo, e.PuntajeConocimientos,
		e.PuntajeEntrevista, e.PuntajeTotal, e.Observaciones, e.FechaEvaluacion,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE postulaciones SET estado=$1, puntaje_final=$2, updated_at=$3 WHERE id=$4`,
		p.Estado, p.PuntajeFinal, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return postDomain.ErrPostulacionNotFound
	}

	if evt != nil {
		if err := insertOutbox(ctx, tx, evt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *EvaluacionRepoPostgres) GetByPostulacion(ctx context.Context, postulacionID uuid.UUID) (*postDomain.Evaluacion, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, postulacion_id, evaluador_id, puntaje_curriculo, puntaje_conocimientos,
		 puntaje_entrevista, puntaje_total, observaciones, fecha_evaluacion
		 FROM evaluaciones WHERE postulacion_id=$1`, postulacionID)

	var e postDomain.Evaluacion
	if err := row.Scan(&e.ID, &e.PostulacionID, &e.EvaluadorID, &e.PuntajeCurriculo, &e.PuntajeConocimientos,
		&e.PuntajeEntrevista, &e.PuntajeTotal, &e.Observaciones, &e.FechaEvaluacion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, postDomain.ErrEvaluacionNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &e, nil
}
