package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"

	postDomain "github.com/ugelhub/convocatorias/internal/postulacion/domain"
)

// AnalyticsRepo implementa AnalyticsRepository sobre ClickHouse. Guarda un
// registro por hito de cada postulación y responde las consultas agregadas
// que alimentan los reportes de convocatoria.
type AnalyticsRepo struct {
	db *sql.DB
}

var _ postDomain.AnalyticsRepository = (*AnalyticsRepo)(nil)

// NewAnalyticsRepo abre la conexión y verifica que el servidor responda.
func NewAnalyticsRepo(addr string, dbName string) (*AnalyticsRepo, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}

	return &AnalyticsRepo{db: conn}, nil
}

// InitSchema crea la tabla de eventos si no existe. Particionada por mes y
// ordenada por los campos más consultados.
func (r *AnalyticsRepo) InitSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS postulaciones_log (
			convocatoria_id UUID,
			plaza_id        UUID,
			user_id         UUID,
			event_type      String,
			event_time      DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(event_time)
		ORDER BY (convocatoria_id, event_type, event_time);
	`
	_, err := r.db.Exec(query)
	return err
}

func (r *AnalyticsRepo) RegistrarEvento(ctx context.Context, e postDomain.EventoAnalitica) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO postulaciones_log (convocatoria_id, plaza_id, user_id, event_type, event_time)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ConvocatoriaID, e.PlazaID, e.UserID, e.Tipo, e.Fecha,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analytics event: %w", err)
	}
	return nil
}

// TendenciaDiaria agrupa las postulaciones registradas por día dentro del
// rango pedido.
func (r *AnalyticsRepo) TendenciaDiaria(ctx context.Context, convocatoriaID uuid.UUID, desde, hasta time.Time) ([]postDomain.PuntoTendencia, error) {
	query := `
		SELECT
			toStartOfDay(event_time) AS day,
			count() AS total
		FROM postulaciones_log
		WHERE convocatoria_id = ?
		  AND event_type = 'postulacion.registrada'
		  AND event_time BETWEEN ? AND ?
		GROUP BY day
		ORDER BY day
	`
	rows, err := r.db.QueryContext(ctx, query, convocatoriaID, desde, hasta)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var puntos []postDomain.PuntoTendencia
	for rows.Next() {
		var p postDomain.PuntoTendencia
		if err := rows.Scan(&p.Fecha, &p.Total); err != nil {
			return nil, err
		}
		puntos = append(puntos, p)
	}
	return puntos, rows.Err()
}

// TiempoMedioEvaluacion calcula, por usuario, la distancia entre su
// postulación y su evaluación, y promedia sobre la convocatoria. El
// resultado está en horas.
func (r *AnalyticsRepo) TiempoMedioEvaluacion(ctx context.Context, convocatoriaID uuid.UUID) (float64, error) {
	query := `
		SELECT
			avg(evaluated_time - applied_time) / 3600 AS avg_hours
		FROM (
			SELECT
				user_id,
				minIf(toUnixTimestamp(event_time), event_type = 'postulacion.registrada') AS applied_time,
				maxIf(toUnixTimestamp(event_time), event_type = 'evaluacion.registrada') AS evaluated_time
			FROM postulaciones_log
			WHERE convocatoria_id = ?
			GROUP BY user_id
		)
		WHERE applied_time > 0 AND evaluated_time > 0
	`
	var avgHours sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, query, convocatoriaID).Scan(&avgHours); err != nil {
		return 0, err
	}
	if !avgHours.Valid {
		return 0, nil
	}
	return avgHours.Float64, nil
}
