package postgres

import "database/sql"

// InitPostgres crea las tablas de la jerarquía organizativa.
func InitPostgres(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS regiones (
			id UUID PRIMARY KEY,
			nombre TEXT NOT NULL,
			codigo TEXT UNIQUE NOT NULL,
			estado TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ugels (
			id UUID PRIMARY KEY,
			region_id UUID NOT NULL REFERENCES regiones(id),
			nombre TEXT NOT NULL,
			codigo TEXT UNIQUE NOT NULL,
			direccion TEXT NOT NULL DEFAULT '',
			telefono TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			estado TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS distritos (
			id UUID PRIMARY KEY,
			ugel_id UUID NOT NULL REFERENCES ugels(id),
			nombre TEXT NOT NULL,
			codigo TEXT UNIQUE NOT NULL,
			estado TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS instituciones (
			id UUID PRIMARY KEY,
			distrito_id UUID NOT NULL REFERENCES distritos(id),
			nombre TEXT NOT NULL,
			codigo TEXT UNIQUE NOT NULL,
			nivel TEXT NOT NULL,
			modalidad TEXT NOT NULL,
			direccion TEXT NOT NULL DEFAULT '',
			estado TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
