package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/runnerr0/smf/internal/config"
	"github.com/runnerr0/smf/internal/logging"
	"github.com/runnerr0/smf/internal/report"
	"github.com/runnerr0/smf/internal/storage"
	"github.com/runnerr0/smf/internal/svc"
)

// deps holds what a command would otherwise open itself. Tests set the
// fields directly; setup fills in the rest.
type deps struct {
	cfg    *config.Config
	log    *zap.Logger
	store  storage.Store
	stdin  io.Reader
	stdout io.Writer
	now    time.Time
	loc    *time.Location

	closers []func()
}

// setup loads config and logging, then captures now once in the configured
// timezone.
func (d *deps) setup(g *GlobalFlags) error {
	if g == nil {
		g = &GlobalFlags{}
	}

	if d.cfg == nil {
		cfg, err := loadConfig(g)
		if err != nil {
			return err
		}
		d.cfg = cfg
	}

	if d.loc == nil {
		loc, err := d.cfg.Location()
		if err != nil {
			return err
		}
		d.loc = loc
	}

	if d.log == nil {
		logFile, err := d.cfg.LogFile()
		if err != nil {
			return err
		}
		logger, closeLog, err := logging.New(logging.Options{
			Level:   d.cfg.Logging.Level,
			File:    logFile,
			Verbose: g.Verbose,
		})
		if err != nil {
			return err
		}
		d.log = logger
		d.closers = append(d.closers, closeLog)
	}

	if d.stdout == nil {
		d.stdout = os.Stdout
	}
	if d.stdin == nil {
		d.stdin = os.Stdin
	}
	if d.now.IsZero() {
		d.now = time.Now()
	}
	d.now = d.now.In(d.loc)

	return nil
}

// close releases everything setup and openStore opened, newest first.
func (d *deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

// loadConfig reads --config when given, otherwise the default config file,
// creating it on first use.
func loadConfig(g *GlobalFlags) (*config.Config, error) {
	if g.Config != "" {
		cfg, err := config.Load(g.Config)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openStore returns the injected store or opens the configured database.
func (d *deps) openStore() (storage.Store, error) {
	if d.store != nil {
		return d.store, nil
	}

	store, db, err := openSQLiteStore(d.cfg)
	if err != nil {
		return nil, err
	}
	d.closers = append(d.closers, func() {
		store.Close()
		db.Close()
	})
	d.log.Debug("opened snapshot database")
	return store, nil
}

// openSQLiteStore opens the database named by cfg, runs migrations, and
// returns a ready-to-use store and the underlying *sql.DB.
func openSQLiteStore(cfg *config.Config) (*storage.SQLiteStore, *sql.DB, error) {
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db).WithJournalMode(cfg.Storage.SQLiteJournalMode)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create store: %w", err)
	}

	return store, db, nil
}

// renderer binds report styles to stdout. --color overrides the config.
func (d *deps) renderer(g *GlobalFlags) (*report.Renderer, error) {
	mode := d.cfg.Display.Color
	if g != nil && g.Color != "" {
		mode = g.Color
	}
	m, err := report.ParseColorMode(mode)
	if err != nil {
		return nil, err
	}
	return &report.Renderer{
		Styles:    report.NewStyles(d.stdout, m),
		Now:       d.now,
		CellWidth: d.cfg.Display.CellWidth,
	}, nil
}

// source says where a command's records come from: an svcs file, a stored
// snapshot by ID, or the latest stored snapshot.
type source struct {
	input    string
	members  string
	snapshot string
}

// loadSnapshot resolves src into a snapshot. Records read from a file are
// taken to be captured now.
func (d *deps) loadSnapshot(ctx context.Context, src source) (*storage.Snapshot, error) {
	if src.input != "" {
		records, err := d.readRecords(src.input, src.members)
		if err != nil {
			return nil, err
		}
		return &storage.Snapshot{
			TakenAt: d.now,
			Source:  sourceName(src.input),
			Records: records,
		}, nil
	}

	store, err := d.openStore()
	if err != nil {
		return nil, err
	}

	var snap *storage.Snapshot
	if src.snapshot != "" {
		snap, err = store.GetSnapshot(ctx, src.snapshot)
	} else {
		snap, err = store.LatestSnapshot(ctx)
	}
	if errors.Is(err, storage.ErrNoSnapshots) {
		return nil, fmt.Errorf("%w: run 'smf import' or pass --input", err)
	}
	if err != nil {
		return nil, err
	}

	if src.members != "" {
		if err := d.attachMembers(snap.Records, src.members); err != nil {
			return nil, err
		}
	}

	snap.TakenAt = snap.TakenAt.In(d.loc)
	d.log.Debug("loaded snapshot",
		zap.String("id", snap.ID),
		zap.Time("taken_at", snap.TakenAt),
		zap.Int("services", len(snap.Records)),
	)
	return snap, nil
}

// readRecords parses svcs output from path ("-" for stdin) and attaches
// contract membership when a members file is given.
func (d *deps) readRecords(path, members string) ([]svc.Record, error) {
	r, err := d.openInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	records, err := svc.ParseSvcs(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", sourceName(path), err)
	}
	d.log.Debug("parsed svcs output", zap.String("source", sourceName(path)), zap.Int("services", len(records)))

	if members != "" {
		if err := d.attachMembers(records, members); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (d *deps) attachMembers(records []svc.Record, path string) error {
	r, err := d.openInput(path)
	if err != nil {
		return err
	}
	defer r.Close()

	members, err := svc.ParseMembers(r)
	if err != nil {
		return fmt.Errorf("parse %s: %w", sourceName(path), err)
	}
	svc.AttachMembers(records, members)
	d.log.Debug("attached contract members", zap.Int("contracts", len(members)))
	return nil
}

func (d *deps) openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(d.stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func sourceName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return filepath.Base(path)
}

// parseDuration parses a human-friendly duration string like "30d", "7d", "24h", "2w".
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("invalid duration: empty string")
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	switch suffix {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, fmt.Errorf("invalid duration: %q (use d, h, w, or m suffix)", s)
	}
}

// formatDurationHuman formats a duration into a human-readable string like "30 days".
func formatDurationHuman(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	hours := int(d.Hours())
	if hours > 0 {
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return d.String()
}

// printJSON writes v as indented JSON to stdout.
func (d *deps) printJSON(v any) error {
	enc := json.NewEncoder(d.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
