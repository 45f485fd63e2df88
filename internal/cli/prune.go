package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	if err := c.setup(c.globals); err != nil {
		return err
	}
	defer c.close()

	return c.run(context.Background())
}

func (c *PruneCommand) run(ctx context.Context) error {
	retention := time.Duration(c.cfg.Retention.Days) * 24 * time.Hour
	if c.OlderThan != "" {
		d, err := parseDuration(c.OlderThan)
		if err != nil {
			return fmt.Errorf("invalid --older-than value: %w", err)
		}
		retention = d
	}
	if retention <= 0 {
		return fmt.Errorf("retention is disabled (retention.days is 0); pass --older-than")
	}
	cutoff := c.now.Add(-retention)

	store, err := c.openStore()
	if err != nil {
		return err
	}

	count, err := store.CountSnapshotsBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	jsonOut := c.globals != nil && c.globals.JSON
	result := map[string]interface{}{
		"older_than": formatDurationHuman(retention),
		"cutoff":     cutoff.Format(time.RFC3339),
		"count":      count,
		"dry_run":    c.DryRun,
	}

	if count == 0 {
		if jsonOut {
			return c.printJSON(result)
		}
		fmt.Fprintf(c.stdout, "Nothing to prune: no snapshots older than %s.\n", formatDurationHuman(retention))
		return nil
	}

	if c.DryRun {
		if jsonOut {
			return c.printJSON(result)
		}
		fmt.Fprintf(c.stdout, "Would prune %d snapshots older than %s (before %s).\n",
			count, formatDurationHuman(retention), cutoff.Format("2006-01-02 15:04"))
		return nil
	}

	if !c.Force && !jsonOut {
		fmt.Fprintf(c.stdout, "Prune %d snapshots older than %s? Proceed? [y/N] ", count, formatDurationHuman(retention))
		scanner := bufio.NewScanner(c.stdin)
		answer := ""
		if scanner.Scan() {
			answer = strings.ToLower(strings.TrimSpace(scanner.Text()))
		}
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(c.stdout, "Aborted.")
			return nil
		}
	}

	pruned, err := store.PruneSnapshots(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}
	c.log.Info("pruned snapshots", zap.Int64("count", pruned), zap.Time("cutoff", cutoff))

	if jsonOut {
		result["count"] = pruned
		return c.printJSON(result)
	}
	fmt.Fprintf(c.stdout, "Pruned %d snapshots older than %s.\n", pruned, formatDurationHuman(retention))
	return nil
}
