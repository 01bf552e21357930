package postgres

import "database/sql"

// InitPostgres crea las tablas de convocatorias y plazas.
func InitPostgres(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS convocatorias (
			id UUID PRIMARY KEY,
			ugel_id UUID NOT NULL REFERENCES ugels(id),
			created_by UUID NOT NULL,
			titulo TEXT NOT NULL,
			descripcion TEXT NOT NULL DEFAULT '',
			anio INTEGER NOT NULL,
			tipo_proceso TEXT NOT NULL,
			fecha_inicio TIMESTAMP NOT NULL,
			fecha_fin TIMESTAMP NOT NULL,
			inscripcion_desde TIMESTAMP NOT NULL,
			inscripcion_hasta TIMESTAMP NOT NULL,
			estado TEXT NOT NULL,
			total_plazas INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS plazas (
			id UUID PRIMARY KEY,
			convocatoria_id UUID NOT NULL REFERENCES convocatorias(id),
			institucion_id UUID NOT NULL REFERENCES instituciones(id),
			codigo_plaza TEXT NOT NULL,
			cargo TEXT NOT NULL,
			nivel TEXT NOT NULL,
			especialidad TEXT NOT NULL DEFAULT '',
			jornada INTEGER NOT NULL,
			monto_pago NUMERIC(10,2) NOT NULL DEFAULT 0,
			vacantes INTEGER NOT NULL DEFAULT 1,
			motivo_vacante TEXT NOT NULL DEFAULT '',
			requisitos TEXT NOT NULL DEFAULT '',
			estado TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_plazas_convocatoria ON plazas(convocatoria_id)`,
		`CREATE INDEX IF NOT EXISTS idx_convocatorias_ugel ON convocatorias(ugel_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
