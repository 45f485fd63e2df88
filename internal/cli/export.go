package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/runnerr0/smf/internal/config"
	"github.com/runnerr0/smf/internal/metrics"
)

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	if err := c.setup(c.globals); err != nil {
		return err
	}
	defer c.close()

	return c.run(context.Background())
}

func (c *ExportCommand) run(ctx context.Context) error {
	snap, err := c.loadSnapshot(ctx, source{input: c.Input, members: c.Members, snapshot: c.Snapshot})
	if err != nil {
		return err
	}

	exp := metrics.NewExporter()
	if err := exp.Observe(snap.TakenAt, snap.Records); err != nil {
		return err
	}

	output := c.Output
	if output == "" {
		output = c.cfg.Export.Textfile
	}
	if output == "-" {
		return exp.Write(c.stdout)
	}

	path, err := config.ExpandPath(output)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create textfile directory: %w", err)
	}
	if err := exp.WriteTextfile(path); err != nil {
		return err
	}
	c.log.Info("wrote textfile", zap.String("path", path), zap.Int("services", len(snap.Records)))

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(map[string]interface{}{
			"path":     path,
			"taken_at": snap.TakenAt.Format(time.RFC3339),
			"services": len(snap.Records),
		})
	}
	fmt.Fprintf(c.stdout, "Wrote metrics for %d services to %s\n", len(snap.Records), path)
	return nil
}
