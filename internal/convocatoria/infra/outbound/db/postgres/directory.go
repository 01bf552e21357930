package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	convDomain "github.com/ugelhub/convocatorias/internal/convocatoria/domain"
)

// OrganizacionDirectory consulta la existencia de entidades del contexto
// de organización sin acoplar sus repositorios completos.
type OrganizacionDirectory struct {
	db *sql.DB
}

var (
	_ convDomain.UgelDirectory        = (*OrganizacionDirectory)(nil)
	_ convDomain.InstitucionDirectory = (*OrganizacionDirectory)(nil)
)

func NewOrganizacionDirectory(db *sql.DB) *OrganizacionDirectory {
	return &OrganizacionDirectory{db: db}
}

func (d *OrganizacionDirectory) UgelExiste(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.existe(ctx, "ugels", id)
}

func (d *OrganizacionDirectory) InstitucionExiste(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.existe(ctx, "instituciones", id)
}

func (d *OrganizacionDirectory) existe(ctx context.Context, table string, id uuid.UUID) (bool, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+` WHERE id=$1`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}
