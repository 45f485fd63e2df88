package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/runnerr0/smf/internal/report"
)

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(args []string) error {
	if err := c.setup(c.globals); err != nil {
		return err
	}
	defer c.close()

	return c.run(context.Background())
}

func (c *ListCommand) run(ctx context.Context) error {
	sortValues := c.Sort
	if len(sortValues) == 0 {
		sortValues = c.cfg.Display.Sort
	}
	keys, err := report.ParseSortKeys(sortValues)
	if err != nil {
		return err
	}

	snap, err := c.loadSnapshot(ctx, source{input: c.Input, members: c.Members, snapshot: c.Snapshot})
	if err != nil {
		return err
	}

	opts := report.ListOptions{
		All:          c.All,
		ContractOnly: c.ContractOnly,
		Filter:       c.Args.Filter,
		Sort:         keys,
	}
	rows, err := report.BuildRows(snap.TakenAt, report.FilterRecords(snap.Records, opts))
	if err != nil {
		return err
	}
	report.SortRows(rows, opts.Sort)
	c.log.Debug("listing services", zap.Int("shown", len(rows)), zap.Int("total", len(snap.Records)))

	if c.globals != nil && c.globals.JSON {
		return report.WriteJSON(c.stdout, snap.TakenAt, c.now, rows, false)
	}

	r, err := c.renderer(c.globals)
	if err != nil {
		return err
	}
	if err := r.WriteList(c.stdout, rows); err != nil {
		return fmt.Errorf("render list: %w", err)
	}
	return nil
}
