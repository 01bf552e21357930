package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	sharedDomain "github.com/ugelhub/convocatorias/internal/shared/domain"
	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
)

// ErrNotFound lo devuelve GuardedDelete cuando la fila a borrar no existe;
// cada repo lo mapea a su error de dominio.
var ErrNotFound = errors.New("row not found")

// GuardedDelete ejecuta el borrado protegido de §4.2: cuenta las filas
// dependientes de cada relación y borra, todo dentro de UNA transacción,
// para que una inserción concurrente no pueda colarse entre la
// comprobación y el borrado. Cualquier fallo devuelve error y deja la fila
// intacta; jamás se reintenta el borrado ignorando las guardas.
func GuardedDelete(
	ctx context.Context,
	dbc *sql.DB,
	dialect sharedQuery.Dialect,
	table string,
	id uuid.UUID,
	guards []sharedDomain.DependencyGuard,
) (sharedDomain.DeleteOutcome, error) {
	tx, err := dbc.BeginTx(ctx, nil)
	if err != nil {
		return sharedDomain.DeleteOutcome{}, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, g := range guards {
		var count int64
		countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = %s",
			g.Table, g.FKColumn, dialect.Placeholder(1))
		if err = tx.QueryRowContext(ctx, countSQL, idArg(dialect, id)).Scan(&count); err != nil {
			return sharedDomain.DeleteOutcome{}, fmt.Errorf("failed to count %s: %w", g.Relation, err)
		}
		if count > 0 {
			tx.Rollback()
			return sharedDomain.DeleteBlocked(g.Relation, count), nil
		}
	}

	res, execErr := tx.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = %s", table, dialect.Placeholder(1)),
		idArg(dialect, id),
	)
	if execErr != nil {
		err = execErr
		return sharedDomain.DeleteOutcome{}, fmt.Errorf("db error: %w", execErr)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		err = ErrNotFound
		return sharedDomain.DeleteOutcome{}, ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		return sharedDomain.DeleteOutcome{}, fmt.Errorf("failed to commit: %w", err)
	}
	return sharedDomain.DeleteDone(), nil
}

// idArg serializa el UUID según el backend: SQLite guarda TEXT.
func idArg(d sharedQuery.Dialect, id uuid.UUID) interface{} {
	if d == sharedQuery.SQLite {
		return id.String()
	}
	return id
}
