package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/runnerr0/smf/internal/report"
)

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	if err := c.setup(c.globals); err != nil {
		return err
	}
	defer c.close()

	return c.run(context.Background())
}

func (c *StatusCommand) run(ctx context.Context) error {
	if len(c.Args.Services) == 0 {
		return fmt.Errorf("status requires at least one service")
	}

	snap, err := c.loadSnapshot(ctx, source{input: c.Input, members: c.Members, snapshot: c.Snapshot})
	if err != nil {
		return err
	}

	matched := report.MatchRecords(snap.Records, c.Args.Services)
	if len(matched) == 0 {
		return fmt.Errorf("no services match %s", strings.Join(c.Args.Services, ", "))
	}
	rows, err := report.BuildRows(snap.TakenAt, matched)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return report.WriteJSON(c.stdout, snap.TakenAt, c.now, rows, c.Long)
	}

	r, err := c.renderer(c.globals)
	if err != nil {
		return err
	}
	return r.WriteStatus(c.stdout, rows, c.Long)
}
