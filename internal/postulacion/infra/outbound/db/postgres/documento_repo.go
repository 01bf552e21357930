package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	postDomain "github.com/ugelhub/convocatorias/internal/postulacion/domain"
)

// DocumentoRepoPostgres es la alternativa relacional al repositorio de
// documentos en MongoDB, para despliegues sin ese servicio.
type DocumentoRepoPostgres struct {
	db *sql.DB
}

var _ postDomain.DocumentoRepository = (*DocumentoRepoPostgres)(nil)

func NewDocumentoRepoPostgres(db *sql.DB) *DocumentoRepoPostgres {
	return &DocumentoRepoPostgres{db: db}
}

const documentoColumns = `id, postulacion_id, nombre, tipo_documento, estado, observacion, created_at, updated_at`

func scanDocumento(row interface{ Scan(...interface{}) error }) (*postDomain.Documento, error) {
	var d postDomain.Documento
	if err := row.Scan(&d.ID, &d.PostulacionID, &d.Nombre, &d.TipoDocumento,
		&d.Estado, &d.Observacion, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentoRepoPostgres) Create(ctx context.Context, d *postDomain.Documento) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documentos (id, postulacion_id, nombre, tipo_documento, estado, observacion, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		d.ID, d.PostulacionID, d.Nombre, d.TipoDocumento, d.Estado, d.Observacion, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *DocumentoRepoPostgres) GetByID(ctx context.Context, id uuid.UUID) (*postDomain.Documento, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+documentoColumns+` FROM documentos WHERE id=$1`, id)

	d, err := scanDocumento(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, postDomain.ErrDocumentoNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

func (r *DocumentoRepoPostgres) ListByPostulacion(ctx context.Context, postulacionID uuid.UUID) ([]*postDomain.Documento, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+documentoColumns+` FROM documentos WHERE postulacion_id=$1 ORDER BY created_at, id`,
		postulacionID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var documentos []*postDomain.Documento
	for rows.Next() {
		d, err := scanDocumento(rows)
		if err != nil {
			return nil, err
		}
		documentos = append(documentos, d)
	}
	return documentos, rows.Err()
}

func (r *DocumentoRepoPostgres) Update(ctx context.Context, d *postDomain.Documento) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE documentos SET estado=$1, observacion=$2, updated_at=$3 WHERE id=$4`,
		d.Estado, d.Observacion, d.UpdatedAt, d.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return postDomain.ErrDocumentoNotFound
	}
	return nil
}

func (r *DocumentoRepoPostgres) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documentos WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return postDomain.ErrDocumentoNotFound
	}
	return nil
}
