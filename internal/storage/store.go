package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/runnerr0/smf/internal/svc"
)

// ErrNoSnapshots is returned when the database holds no snapshot yet.
var ErrNoSnapshots = errors.New("no snapshots stored")

// Store defines the interface for snapshot data operations.
type Store interface {
	SaveSnapshot(ctx context.Context, snap *Snapshot) error
	LatestSnapshot(ctx context.Context) (*Snapshot, error)
	GetSnapshot(ctx context.Context, id string) (*Snapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]SnapshotInfo, error)
	CountSnapshotsBefore(ctx context.Context, before time.Time) (int64, error)
	PruneSnapshots(ctx context.Context, before time.Time) (int64, error)
	PurgeAll(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	getSnapshot    *sql.Stmt
	latestSnapshot *sql.Stmt
	getServices    *sql.Stmt
	getMembers     *sql.Stmt
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLiteStore from an already-opened and migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.getSnapshot, err = s.db.Prepare(`
		SELECT id, taken_at, source, service_count FROM snapshots WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.latestSnapshot, err = s.db.Prepare(`
		SELECT id, taken_at, source, service_count FROM snapshots
		ORDER BY taken_unix DESC, created_at DESC LIMIT 1
	`)
	if err != nil {
		return err
	}

	s.getServices, err = s.db.Prepare(`
		SELECT fmri, state, transitioning, stime, ctid, members_known
		FROM services WHERE snapshot_id = ? ORDER BY fmri
	`)
	if err != nil {
		return err
	}

	s.getMembers, err = s.db.Prepare(`
		SELECT fmri, pid FROM contract_members WHERE snapshot_id = ? ORDER BY fmri, pid
	`)
	if err != nil {
		return err
	}

	return nil
}

// generateID creates a snapshot ID: SNP- + a random UUID.
func generateID() string {
	return "SNP-" + uuid.NewString()
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// SaveSnapshot stores a snapshot and all of its records in one transaction.
// The snapshot's ID is generated, and TakenAt defaults to the current time.
// TakenAt keeps its UTC offset so start times resolve in the zone svcs used.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	if snap.TakenAt.IsZero() {
		snap.TakenAt = time.Now()
	}
	snap.ID = generateID()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, taken_at, taken_unix, source, service_count) VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.TakenAt.Format(time.RFC3339Nano), snap.TakenAt.Unix(), snap.Source, len(snap.Records),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	insertService, err := tx.PrepareContext(ctx, `
		INSERT INTO services (snapshot_id, fmri, state, transitioning, stime, ctid, members_known)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare service insert: %w", err)
	}
	defer insertService.Close()

	insertMember, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO contract_members (snapshot_id, fmri, pid) VALUES (?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare member insert: %w", err)
	}
	defer insertMember.Close()

	for _, rec := range snap.Records {
		var ctid sql.NullInt64
		if rec.ContractID != nil {
			ctid = sql.NullInt64{Int64: int64(*rec.ContractID), Valid: true}
		}

		if _, err := insertService.ExecContext(ctx,
			snap.ID, rec.FMRI, rec.State.String(), rec.Transitioning, rec.STime, ctid, rec.MembersKnown(),
		); err != nil {
			return fmt.Errorf("insert service %s: %w", rec.FMRI, err)
		}

		for _, pid := range rec.Members {
			if _, err := insertMember.ExecContext(ctx, snap.ID, rec.FMRI, pid); err != nil {
				return fmt.Errorf("insert member %d of %s: %w", pid, rec.FMRI, err)
			}
		}
	}

	return tx.Commit()
}

// LatestSnapshot returns the most recently taken snapshot with its records.
func (s *SQLiteStore) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	snap, err := s.scanSnapshot(s.latestSnapshot.QueryRowContext(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshots
		}
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}
	if err := s.loadRecords(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// GetSnapshot retrieves a snapshot and its records by ID.
func (s *SQLiteStore) GetSnapshot(ctx context.Context, id string) (*Snapshot, error) {
	snap, err := s.scanSnapshot(s.getSnapshot.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot %s not found", id)
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	if err := s.loadRecords(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *SQLiteStore) scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var snap Snapshot
	var takenAt string
	var count int
	if err := row.Scan(&snap.ID, &takenAt, &snap.Source, &count); err != nil {
		return nil, err
	}

	t, err := parseTimestamp(takenAt)
	if err != nil {
		return nil, err
	}
	snap.TakenAt = t
	snap.Records = make([]svc.Record, 0, count)
	return &snap, nil
}

// loadRecords fills snap.Records from the services and contract_members
// tables. Rows are fully drained before the next query is issued.
func (s *SQLiteStore) loadRecords(ctx context.Context, snap *Snapshot) error {
	rows, err := s.getServices.QueryContext(ctx, snap.ID)
	if err != nil {
		return fmt.Errorf("query services: %w", err)
	}

	index := make(map[string]int)
	for rows.Next() {
		var rec svc.Record
		var state string
		var ctid sql.NullInt64
		var membersKnown bool
		if err := rows.Scan(&rec.FMRI, &state, &rec.Transitioning, &rec.STime, &ctid, &membersKnown); err != nil {
			rows.Close()
			return fmt.Errorf("scan service: %w", err)
		}

		st, err := svc.ParseState(state)
		if err != nil {
			rows.Close()
			return fmt.Errorf("service %s: %w", rec.FMRI, err)
		}
		rec.State = st

		if ctid.Valid {
			id := int(ctid.Int64)
			rec.ContractID = &id
		}
		if membersKnown {
			rec.Members = []int{}
		}

		index[rec.FMRI] = len(snap.Records)
		snap.Records = append(snap.Records, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	mrows, err := s.getMembers.QueryContext(ctx, snap.ID)
	if err != nil {
		return fmt.Errorf("query members: %w", err)
	}
	defer mrows.Close()

	for mrows.Next() {
		var fmri string
		var pid int
		if err := mrows.Scan(&fmri, &pid); err != nil {
			return fmt.Errorf("scan member: %w", err)
		}
		if i, ok := index[fmri]; ok {
			snap.Records[i].Members = append(snap.Records[i].Members, pid)
		}
	}

	return mrows.Err()
}

// ListSnapshots returns snapshot summaries, newest first. A limit <= 0
// returns all of them.
func (s *SQLiteStore) ListSnapshots(ctx context.Context, limit int) ([]SnapshotInfo, error) {
	query := `SELECT id, taken_at, source, service_count FROM snapshots ORDER BY taken_unix DESC, created_at DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	infos := []SnapshotInfo{}
	for rows.Next() {
		var info SnapshotInfo
		var takenAt string
		if err := rows.Scan(&info.ID, &takenAt, &info.Source, &info.ServiceCount); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		info.TakenAt, _ = parseTimestamp(takenAt)
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

// CountSnapshotsBefore counts snapshots taken strictly before the given time.
func (s *SQLiteStore) CountSnapshotsBefore(ctx context.Context, before time.Time) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM snapshots WHERE taken_unix < ?", before.Unix(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}

// PruneSnapshots deletes snapshots taken strictly before the given time,
// along with their records.
func (s *SQLiteStore) PruneSnapshots(ctx context.Context, before time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	cutoff := before.Unix()
	for _, table := range []string{"contract_members", "services"} {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE snapshot_id IN (
				SELECT id FROM snapshots WHERE taken_unix < ?
			)`, cutoff,
		)
		if err != nil {
			return 0, fmt.Errorf("prune %s: %w", table, err)
		}
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM snapshots WHERE taken_unix < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return n, tx.Commit()
}

// PurgeAll deletes every snapshot.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	stmts := []string{
		"DELETE FROM contract_members",
		"DELETE FROM services",
		"DELETE FROM snapshots",
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("purge (%s): %w", stmt, err)
		}
	}
	return nil
}

// GetStats returns aggregate statistics about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots").Scan(&stats.TotalSnapshots)
	if err != nil {
		return nil, fmt.Errorf("count snapshots: %w", err)
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM services").Scan(&stats.TotalServices)
	if err != nil {
		return nil, fmt.Errorf("count services: %w", err)
	}

	if stats.TotalSnapshots > 0 {
		var oldest, newest int64
		err = s.db.QueryRowContext(ctx, "SELECT MIN(taken_unix), MAX(taken_unix) FROM snapshots").Scan(&oldest, &newest)
		if err != nil {
			return nil, fmt.Errorf("snapshot time range: %w", err)
		}
		stats.OldestSnapshot = time.Unix(oldest, 0).UTC()
		stats.NewestSnapshot = time.Unix(newest, 0).UTC()
	}

	return stats, nil
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{
		s.getSnapshot, s.latestSnapshot, s.getServices, s.getMembers,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
