package postgres

import "database/sql"

// InitOutbox crea la tabla outbox usada por el relayer.
func InitOutbox(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS outbox (
		id UUID PRIMARY KEY,
		aggregate_type TEXT NOT NULL,
		aggregate_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		payload JSONB NOT NULL,
		processed BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMP NOT NULL
	)`)
	return err
}
