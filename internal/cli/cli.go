// Package cli implements the smf command line.
package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	List      *ListCommand
	Status    *StatusCommand
	Import    *ImportCommand
	Snapshots *SnapshotsCommand
	Export    *ExportCommand
	Prune     *PruneCommand
	Purge     *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "smf"
	parser.LongDescription = "Status viewer for illumos SMF services: aligned, colorized reports from svcs output and stored snapshots."

	cmds := &commands{
		List:      &ListCommand{globals: &globals, version: version},
		Status:    &StatusCommand{globals: &globals, version: version},
		Import:    &ImportCommand{globals: &globals, version: version},
		Snapshots: &SnapshotsCommand{globals: &globals, version: version},
		Export:    &ExportCommand{globals: &globals, version: version},
		Prune:     &PruneCommand{globals: &globals, version: version},
		Purge:     &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("list", "List services", "List services with state, contract, process count and time since start.", cmds.List)
	parser.AddCommand("status", "Show service details", "Show the detail view of every service matching a pattern.", cmds.Status)
	parser.AddCommand("import", "Store svcs output as a snapshot", "Parse `svcs -H -o state,stime,ctid,fmri` output and store it as a snapshot.", cmds.Import)
	parser.AddCommand("snapshots", "List stored snapshots", "List stored snapshots with when they were taken and how many services they hold.", cmds.Snapshots)
	parser.AddCommand("export", "Write Prometheus textfile metrics", "Write service metrics for the node_exporter textfile collector.", cmds.Export)
	parser.AddCommand("prune", "Apply retention pruning", "Remove snapshots older than the retention period.", cmds.Prune)
	parser.AddCommand("purge", "Delete ALL snapshots", "Delete ALL stored snapshots. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the smf CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("smf %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
