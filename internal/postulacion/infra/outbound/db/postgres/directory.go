package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	postDomain "github.com/ugelhub/convocatorias/internal/postulacion/domain"
)

// ConvocatoriaDirectoryPostgres lee lo mínimo del contexto de convocatorias
// para validar postulaciones sin acoplar los repositorios de ese contexto.
type ConvocatoriaDirectoryPostgres struct {
	db *sql.DB
}

var (
	_ postDomain.PlazaDirectory        = (*ConvocatoriaDirectoryPostgres)(nil)
	_ postDomain.ConvocatoriaDirectory = (*ConvocatoriaDirectoryPostgres)(nil)
)

func NewConvocatoriaDirectoryPostgres(db *sql.DB) *ConvocatoriaDirectoryPostgres {
	return &ConvocatoriaDirectoryPostgres{db: db}
}

func (d *ConvocatoriaDirectoryPostgres) GetPlazaInfo(ctx context.Context, id uuid.UUID) (*postDomain.PlazaInfo, error) {
	var info postDomain.PlazaInfo
	var estado string
	err := d.db.QueryRowContext(ctx,
		`SELECT id, convocatoria_id, estado FROM plazas WHERE id=$1`, id).
		Scan(&info.ID, &info.ConvocatoriaID, &estado)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, postDomain.ErrPlazaNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	info.Activa = estado == "active"
	return &info, nil
}

func (d *ConvocatoriaDirectoryPostgres) GetConvocatoriaInfo(ctx context.Context, id uuid.UUID) (*postDomain.ConvocatoriaInfo, error) {
	var info postDomain.ConvocatoriaInfo
	err := d.db.QueryRowContext(ctx,
		`SELECT id, anio, estado, inscripcion_desde, inscripcion_hasta FROM convocatorias WHERE id=$1`, id).
		Scan(&info.ID, &info.Anio, &info.Estado, &info.InscripcionDesde, &info.InscripcionHasta)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, postDomain.ErrConvocatoriaNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &info, nil
}
