package storage

import (
	"time"

	"github.com/runnerr0/smf/internal/svc"
)

// Snapshot is one capture of svcs output. TakenAt is the moment svcs ran;
// the truncated start times in Records are relative to it.
type Snapshot struct {
	ID      string
	TakenAt time.Time
	Source  string // file name, "stdin", "import"
	Records []svc.Record
}

// SnapshotInfo summarizes a stored snapshot without its records.
type SnapshotInfo struct {
	ID           string
	TakenAt      time.Time
	Source       string
	ServiceCount int
}

// Stats holds aggregate statistics about the snapshot database.
type Stats struct {
	TotalSnapshots int64
	TotalServices  int64
	OldestSnapshot time.Time
	NewestSnapshot time.Time
}
