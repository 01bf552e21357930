package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	postDomain "github.com/ugelhub/convocatorias/internal/postulacion/domain"
	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
)

type PostulacionRepoPostgres struct {
	db *sql.DB
}

var _ postDomain.PostulacionRepository = (*PostulacionRepoPostgres)(nil)

func NewPostulacionRepoPostgres(db *sql.DB) *PostulacionRepoPostgres {
	return &PostulacionRepoPostgres{db: db}
}

func pageNumber(p sharedQuery.OffsetPagination) int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Offset/p.Limit + 1
}

// insertOutbox escribe el evento dentro de la transacción de la mutación.
func insertOutbox(ctx context.Context, tx *sql.Tx, evt *shared.OutboxEvent) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, processed, created_at)
		 VALUES ($1, $2, $3, $4, $5, false, $6)`,
		evt.ID, evt.AggregateType, evt.AggregateID, evt.EventType, payload, evt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert outbox: %w", err)
	}
	return nil
}

const postulacionColumns = `po.id, po.user_id, po.plaza_id, po.convocatoria_id, po.numero_postulacion,
	po.fecha_postulacion, po.orden_preferencia, po.puntaje_final, po.posicion_merito, po.estado,
	po.created_at, po.updated_at`

const postulacionListadoFrom = ` FROM postulaciones po
	JOIN usuarios us ON us.id = po.user_id
	JOIN plazas pl ON pl.id = po.plaza_id
	JOIN convocatorias c ON c.id = po.convocatoria_id`

func scanPostulacion(row interface{ Scan(...interface{}) error }) (*postDomain.Postulacion, error) {
	var p postDomain.Postulacion
	if err := row.Scan(&p.ID, &p.UserID, &p.PlazaID, &p.ConvocatoriaID, &p.Numero,
		&p.FechaPostulacion, &p.OrdenPreferencia, &p.PuntajeFinal, &p.PosicionMerito, &p.Estado,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostulacionRepoPostgres) ProximaSecuencia(ctx context.Context, convocatoriaID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) + 1 FROM postulaciones WHERE convocatoria_id=$1`, convocatoriaID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostulacionRepoPostgres) CreateConEvento(ctx context.Context, p *postDomain.Postulacion, evt *shared.OutboxEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO postulaciones (id, user_id, plaza_id, convocatoria_id, numero_postulacion,
		 fecha_postulacion, orden_preferencia, puntaje_final, posicion_merito, estado, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.UserID, p.PlazaID, p.ConvocatoriaID, p.Numero,
		p.FechaPostulacion, p.OrdenPreferencia, p.PuntajeFinal, p.PosicionMerito, p.Estado,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if evt != nil {
		if err := insertOutbox(ctx, tx, evt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PostulacionRepoPostgres) UpdateConEvento(ctx context.Context, p *postDomain.Postulacion, evt *shared.OutboxEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE postulaciones SET orden_preferencia=$1, puntaje_final=$2, posicion_merito=$3, estado=$4, updated_at=$5
		 WHERE id=$6`,
		p.OrdenPreferencia, p.PuntajeFinal, p.PosicionMerito, p.Estado, p.UpdatedAt, p.ID,
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

func (r *PostulacionRepoPostgres) GetByID(ctx context.Context, id uuid.UUID) (*postDomain.Postulacion, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postulacionColumns+` FROM postulaciones po WHERE po.id=$1`, id)

	p, err := scanPostulacion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, postDomain.ErrPostulacionNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostulacionRepoPostgres) ExistsActiva(ctx context.Context, userID, plazaID uuid.UUID) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM postulaciones WHERE user_id=$1 AND plaza_id=$2 AND estado IN ($3, $4)`,
		userID, plazaID, postDomain.Postulado, postDomain.Evaluado).Scan(&n); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostulacionRepoPostgres) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*postDomain.PostulacionListado], error) {
	where, args := sharedQuery.Translate(criteria, sharedQuery.Postgres)
	whereSQL := ""
	if where != "" {
		whereSQL = " WHERE " + where
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+postulacionListadoFrom+whereSQL, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	q := `SELECT ` + postulacionColumns + `, us.nombres || ' ' || us.apellidos AS usuario_nombre,
		pl.codigo_plaza, c.titulo AS convocatoria_titulo` +
		postulacionListadoFrom + whereSQL +
		" " + sharedQuery.OrderBy(s, "po.id") +
		" " + sharedQuery.Paginate(p, sharedQuery.Postgres, &args)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	items := make([]*postDomain.PostulacionListado, 0, p.Limit)
	for rows.Next() {
		var item postDomain.PostulacionListado
		if err := rows.Scan(&item.ID, &item.UserID, &item.PlazaID, &item.ConvocatoriaID, &item.Numero,
			&item.FechaPostulacion, &item.OrdenPreferencia, &item.PuntajeFinal, &item.PosicionMerito,
			&item.Estado, &item.CreatedAt, &item.UpdatedAt,
			&item.UsuarioNombre, &item.PlazaCodigo, &item.ConvocatoriaTitulo); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sharedQuery.NewPage(items, total, pageNumber(p), p.Limit), nil
}
