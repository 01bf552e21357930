package postgres

import (
	"database/sql"
	"fmt"
)

// InitPostgres crea las tablas del contexto de postulaciones si no existen.
func InitPostgres(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS postulaciones (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES usuarios(id),
			plaza_id UUID NOT NULL REFERENCES plazas(id),
			convocatoria_id UUID NOT NULL REFERENCES convocatorias(id),
			numero_postulacion TEXT NOT NULL UNIQUE,
			fecha_postulacion TIMESTAMPTZ NOT NULL,
			orden_preferencia INTEGER NOT NULL DEFAULT 1,
			estado TEXT NOT NULL,
			puntaje_final DOUBLE PRECISION,
			posicion_merito INTEGER,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_postulaciones_convocatoria ON postulaciones(convocatoria_id);`,
		`CREATE INDEX IF NOT EXISTS idx_postulaciones_usuario ON postulaciones(user_id);`,
		`CREATE TABLE IF NOT EXISTS evaluaciones (
			id UUID PRIMARY KEY,
			postulacion_id UUID NOT NULL UNIQUE REFERENCES postulaciones(id),
			evaluador_id UUID NOT NULL,
			puntaje_curriculo DOUBLE PRECISION NOT NULL,
			puntaje_conocimientos DOUBLE PRECISION NOT NULL,
			puntaje_entrevista DOUBLE PRECISION NOT NULL,
			puntaje_total DOUBLE PRECISION NOT NULL,
			observaciones TEXT NOT NULL DEFAULT '',
			fecha_evaluacion TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS documentos (
			id UUID PRIMARY KEY,
			postulacion_id UUID NOT NULL REFERENCES postulaciones(id),
			nombre TEXT NOT NULL,
			tipo_documento TEXT NOT NULL,
			estado TEXT NOT NULL,
			observacion TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_documentos_postulacion ON documentos(postulacion_id);`,
		`CREATE TABLE IF NOT EXISTS recomendaciones_ia (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			plaza_id UUID NOT NULL,
			puntuacion_compatibilidad DOUBLE PRECISION NOT NULL,
			nivel_confianza DOUBLE PRECISION NOT NULL,
			match_especialidad BOOLEAN NOT NULL DEFAULT false,
			match_ubicacion BOOLEAN NOT NULL DEFAULT false,
			match_experiencia BOOLEAN NOT NULL DEFAULT false,
			estado TEXT NOT NULL,
			fecha_generacion TIMESTAMPTZ NOT NULL,
			fecha_expiracion TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_recomendaciones_user ON recomendaciones_ia(user_id);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init postulaciones schema: %w", err)
		}
	}
	return nil
}
