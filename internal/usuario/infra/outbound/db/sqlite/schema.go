package sqlite

import "database/sql"

// InitSQLite crea las tablas del contexto de usuarios para el despliegue
// local. Se ejecuta tras los esquemas de organización y antes del de
// postulaciones: el LEFT JOIN del listado y el guard de borrado
// consultan tablas de esos contextos.
func InitSQLite(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS usuarios (
			id TEXT PRIMARY KEY,
			nombres TEXT NOT NULL,
			apellidos TEXT NOT NULL,
			dni TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			user_type TEXT NOT NULL,
			estado TEXT NOT NULL,
			institucion_id TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS perfiles_docentes (
			id TEXT PRIMARY KEY,
			usuario_id TEXT UNIQUE NOT NULL,
			especialidad TEXT NOT NULL DEFAULT '',
			experiencia_anios INTEGER NOT NULL DEFAULT 0,
			niveles_experiencia TEXT NOT NULL DEFAULT '[]',
			ubicacion TEXT NOT NULL DEFAULT '',
			disponibilidad TEXT NOT NULL DEFAULT '',
			tipo_contrato TEXT NOT NULL DEFAULT '',
			telefono TEXT NOT NULL DEFAULT '',
			sobre_mi TEXT NOT NULL DEFAULT '',
			score_perfil INTEGER NOT NULL DEFAULT 0,
			perfil_completo INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notificaciones (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			tipo TEXT NOT NULL,
			titulo TEXT NOT NULL,
			mensaje TEXT NOT NULL,
			leida INTEGER NOT NULL DEFAULT 0,
			fecha_leida TIMESTAMP,
			created_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
