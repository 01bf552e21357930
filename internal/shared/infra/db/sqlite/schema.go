package sqlite

import "database/sql"

// InitOutbox crea la tabla outbox usada por el relayer.
func InitOutbox(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		aggregate_type TEXT NOT NULL,
		aggregate_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		processed INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`)
	return err
}
