package postgres

import "database/sql"

// InitPostgres crea las tablas de usuarios, perfiles y notificaciones.
func InitPostgres(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS usuarios (
			id UUID PRIMARY KEY,
			nombres TEXT NOT NULL,
			apellidos TEXT NOT NULL,
			dni TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			user_type TEXT NOT NULL,
			estado TEXT NOT NULL,
			institucion_id UUID REFERENCES instituciones(id),
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS perfiles_docentes (
			id UUID PRIMARY KEY,
			usuario_id UUID UNIQUE NOT NULL REFERENCES usuarios(id),
			especialidad TEXT NOT NULL DEFAULT '',
			experiencia_anios INTEGER NOT NULL DEFAULT 0,
			niveles_experiencia JSONB NOT NULL DEFAULT '[]',
			ubicacion TEXT NOT NULL DEFAULT '',
			disponibilidad TEXT NOT NULL DEFAULT '',
			tipo_contrato TEXT NOT NULL DEFAULT '',
			telefono TEXT NOT NULL DEFAULT '',
			sobre_mi TEXT NOT NULL DEFAULT '',
			score_perfil INTEGER NOT NULL DEFAULT 0,
			perfil_completo BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notificaciones (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			tipo TEXT NOT NULL,
			titulo TEXT NOT NULL,
			mensaje TEXT NOT NULL,
			leida BOOLEAN NOT NULL DEFAULT false,
			fecha_leida TIMESTAMP,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notificaciones_user ON notificaciones(user_id, leida)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
