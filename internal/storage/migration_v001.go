package storage

import "database/sql"

// migrateV001 creates the snapshot schema. Every statement uses IF NOT EXISTS
// for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		// ── Tables ──────────────────────────────────────────────

		`CREATE TABLE IF NOT EXISTS snapshots (
			id            TEXT PRIMARY KEY,
			taken_at      TEXT NOT NULL,
			taken_unix    INTEGER NOT NULL,
			source        TEXT NOT NULL DEFAULT '',
			service_count INTEGER NOT NULL DEFAULT 0,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS services (
			snapshot_id   TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			fmri          TEXT NOT NULL,
			state         TEXT NOT NULL,
			transitioning BOOLEAN NOT NULL DEFAULT 0,
			stime         TEXT NOT NULL,
			ctid          INTEGER,
			members_known BOOLEAN NOT NULL DEFAULT 0,
			PRIMARY KEY (snapshot_id, fmri)
		)`,

		`CREATE TABLE IF NOT EXISTS contract_members (
			snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			fmri        TEXT NOT NULL,
			pid         INTEGER NOT NULL,
			PRIMARY KEY (snapshot_id, fmri, pid)
		)`,

		// ── Indexes ────────────────────────────────────────────

		`CREATE INDEX IF NOT EXISTS idx_snapshots_taken ON snapshots(taken_unix)`,
		`CREATE INDEX IF NOT EXISTS idx_services_state  ON services(snapshot_id, state)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
