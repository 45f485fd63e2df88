package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/smf/internal/storage"
)

// snapshotsJSON is the JSON output structure for the snapshots command.
type snapshotsJSON struct {
	TotalSnapshots int64          `json:"total_snapshots"`
	TotalServices  int64          `json:"total_services"`
	OldestSnapshot string         `json:"oldest_snapshot,omitempty"`
	NewestSnapshot string         `json:"newest_snapshot,omitempty"`
	Snapshots      []snapshotJSON `json:"snapshots"`
}

type snapshotJSON struct {
	ID       string `json:"id"`
	TakenAt  string `json:"taken_at"`
	Source   string `json:"source"`
	Services int    `json:"services"`
}

// Execute implements the go-flags Commander interface for SnapshotsCommand.
func (c *SnapshotsCommand) Execute(args []string) error {
	if err := c.setup(c.globals); err != nil {
		return err
	}
	defer c.close()

	return c.run(context.Background())
}

func (c *SnapshotsCommand) run(ctx context.Context) error {
	store, err := c.openStore()
	if err != nil {
		return err
	}

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	infos, err := store.ListSnapshots(ctx, c.Limit)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	for i := range infos {
		infos[i].TakenAt = infos[i].TakenAt.In(c.loc)
	}

	if c.globals != nil && c.globals.JSON {
		return c.printSnapshotsJSON(stats, infos)
	}

	if stats.TotalSnapshots == 0 {
		fmt.Fprintln(c.stdout, "No snapshots stored. Run 'smf import' to add one.")
		return nil
	}

	r, err := c.renderer(c.globals)
	if err != nil {
		return err
	}
	if err := r.WriteSnapshots(c.stdout, infos); err != nil {
		return err
	}

	fmt.Fprintln(c.stdout)
	fmt.Fprintf(c.stdout, "Snapshots:     %d\n", stats.TotalSnapshots)
	fmt.Fprintf(c.stdout, "Services:      %d\n", stats.TotalServices)
	fmt.Fprintf(c.stdout, "Oldest:        %s\n", stats.OldestSnapshot.In(c.loc).Format("2006-01-02"))
	fmt.Fprintf(c.stdout, "Newest:        %s\n", stats.NewestSnapshot.In(c.loc).Format("2006-01-02"))
	return nil
}

func (c *SnapshotsCommand) printSnapshotsJSON(stats *storage.Stats, infos []storage.SnapshotInfo) error {
	out := snapshotsJSON{
		TotalSnapshots: stats.TotalSnapshots,
		TotalServices:  stats.TotalServices,
		Snapshots:      make([]snapshotJSON, len(infos)),
	}

	if stats.TotalSnapshots > 0 {
		out.OldestSnapshot = stats.OldestSnapshot.UTC().Format(time.RFC3339)
		out.NewestSnapshot = stats.NewestSnapshot.UTC().Format(time.RFC3339)
	}

	for i, info := range infos {
		out.Snapshots[i] = snapshotJSON{
			ID:       info.ID,
			TakenAt:  info.TakenAt.Format(time.RFC3339),
			Source:   info.Source,
			Services: info.ServiceCount,
		}
	}

	return c.printJSON(out)
}
