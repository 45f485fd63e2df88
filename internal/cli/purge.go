package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}
	if err := c.setup(c.globals); err != nil {
		return err
	}
	defer c.close()

	return c.run(context.Background())
}

func (c *PurgeCommand) run(ctx context.Context) error {
	// Confirmation prompt unless --force
	if !c.Force {
		fmt.Fprintln(c.stdout, "⚠ WARNING: This will permanently delete ALL stored snapshots.")
		fmt.Fprintln(c.stdout, "  - All service records")
		fmt.Fprintln(c.stdout, "  - All contract memberships")
		fmt.Fprintln(c.stdout)
		fmt.Fprintln(c.stdout, "This action cannot be undone.")
		fmt.Fprintln(c.stdout)
		fmt.Fprint(c.stdout, `Type "PURGE" to confirm: `)

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		input := strings.TrimSpace(scanner.Text())
		if input != "PURGE" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	store, err := c.openStore()
	if err != nil {
		return err
	}

	if err := store.PurgeAll(ctx); err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}
	c.log.Info("purged all snapshots")

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(map[string]interface{}{
			"purged":  true,
			"message": "all snapshots deleted",
		})
	}

	fmt.Fprintln(c.stdout, "Purged all snapshots.")
	return nil
}
