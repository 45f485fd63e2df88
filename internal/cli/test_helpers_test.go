package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/runnerr0/smf/internal/config"
	"github.com/runnerr0/smf/internal/storage"
	"github.com/runnerr0/smf/internal/svc"
)

var testNow = time.Date(2023, time.October, 9, 12, 30, 0, 0, time.UTC)

const sampleSvcs = `online         Oct_08     63 svc:/network/ssh:default
online*      12:01:44    101 svc:/system/filesystem/local:default
disabled         2021      - svc:/network/nfs/server:default
maintenance    Jan_12     88 svc:/application/nginx:default
legacy_run       2022      - lrc:/etc/rc2_d/S20sysetup
`

const sampleMembers = `# ctid pids
63 601 512
88
`

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// openTestStore creates a migrated in-memory store for testing.
func openTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	runner := storage.NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

// testDeps wires a command to store, a fixed clock and a buffer for stdout.
func testDeps(t *testing.T, store storage.Store) (deps, *bytes.Buffer) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Display.Color = "never"
	cfg.Display.Timezone = "UTC"

	var out bytes.Buffer
	return deps{
		cfg:    cfg,
		log:    zap.NewNop(),
		store:  store,
		stdin:  bytes.NewReader(nil),
		stdout: &out,
		now:    testNow,
		loc:    time.UTC,
	}, &out
}

// writeFile writes content into a temp file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// seedSnapshot stores the sample svcs output taken at takenAt.
func seedSnapshot(t *testing.T, store storage.Store, takenAt time.Time) *storage.Snapshot {
	t.Helper()

	records, err := svc.ParseSvcs(bytes.NewReader([]byte(sampleSvcs)))
	require.NoError(t, err)

	snap := &storage.Snapshot{TakenAt: takenAt, Source: "seed", Records: records}
	require.NoError(t, store.SaveSnapshot(context.Background(), snap))
	return snap
}
