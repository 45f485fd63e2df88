package cli

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/runnerr0/smf/internal/report"
	"github.com/runnerr0/smf/internal/storage"
)

// Execute implements the go-flags Commander interface for ImportCommand.
func (c *ImportCommand) Execute(args []string) error {
	if c.Args.File == "" {
		return fmt.Errorf("import requires an svcs output file ('-' for stdin)")
	}
	if err := c.setup(c.globals); err != nil {
		return err
	}
	defer c.close()

	return c.run(context.Background())
}

func (c *ImportCommand) run(ctx context.Context) error {
	takenAt := c.now
	if c.TakenAt != "" {
		t, err := time.Parse(time.RFC3339, c.TakenAt)
		if err != nil {
			return fmt.Errorf("invalid --taken-at %q: %w", c.TakenAt, err)
		}
		if t.After(c.now) {
			return fmt.Errorf("invalid --taken-at %q: in the future", c.TakenAt)
		}
		takenAt = t.In(c.loc)
	}

	records, err := c.readRecords(c.Args.File, c.Members)
	if err != nil {
		return err
	}

	// Reject snapshots whose dates cannot be resolved now rather than on
	// every later report.
	if _, err := report.BuildRows(takenAt, records); err != nil {
		return err
	}

	store, err := c.openStore()
	if err != nil {
		return err
	}

	snap := &storage.Snapshot{
		TakenAt: takenAt,
		Source:  sourceName(c.Args.File),
		Records: records,
	}
	if err := store.SaveSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("storing snapshot: %w", err)
	}
	c.log.Info("imported snapshot", zap.String("id", snap.ID), zap.Int("services", len(records)))

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(map[string]interface{}{
			"id":       snap.ID,
			"taken_at": snap.TakenAt.Format(time.RFC3339),
			"source":   snap.Source,
			"services": len(records),
		})
	}

	fmt.Fprintf(c.stdout, "Imported snapshot %s (%s)\n", snap.ID, snap.TakenAt.Format(time.RFC3339))
	fmt.Fprintf(c.stdout, "  Source: %s\n", snap.Source)
	fmt.Fprintf(c.stdout, "  Services: %d\n", len(records))
	return nil
}
