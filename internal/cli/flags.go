package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable debug logging"`
	Version bool   `long:"version" description:"Show version and exit"`
	Color   string `long:"color" description:"Colorize output: auto | always | never (default from config)"`
}

// ListCommand renders the service table.
type ListCommand struct {
	All          bool     `short:"a" long:"all" description:"Include disabled services"`
	ContractOnly bool     `short:"c" long:"contract" description:"Only services running under a contract"`
	Sort         []string `short:"s" long:"sort" description:"Sort keys: fmri, state, time, contract (comma-separated or repeatable)"`
	Input        string   `short:"i" long:"input" description:"Read svcs output from file ('-' for stdin) instead of the latest snapshot"`
	Members      string   `short:"m" long:"members" description:"Contract membership file ('<ctid> <pid>...' per line)"`
	Snapshot     string   `long:"snapshot" description:"Render a stored snapshot by ID"`

	Args struct {
		Filter string `positional-arg-name:"filter" description:"Only services whose FMRI contains this text"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	version string
	deps `no-flag:"true"`
}

// StatusCommand prints the detail view of matching services.
type StatusCommand struct {
	Long     bool   `short:"l" long:"long" description:"Include contract member PIDs"`
	Input    string `short:"i" long:"input" description:"Read svcs output from file ('-' for stdin) instead of the latest snapshot"`
	Members  string `short:"m" long:"members" description:"Contract membership file"`
	Snapshot string `long:"snapshot" description:"Use a stored snapshot by ID"`

	Args struct {
		Services []string `positional-arg-name:"service" required:"1" description:"FMRI substring or glob"`
	} `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
	deps `no-flag:"true"`
}

// ImportCommand stores svcs output as a snapshot.
type ImportCommand struct {
	Members string `short:"m" long:"members" description:"Contract membership file"`
	TakenAt string `long:"taken-at" description:"When the svcs output was captured (RFC3339, default now)"`

	Args struct {
		File string `positional-arg-name:"file" required:"yes" description:"svcs output ('-' for stdin)"`
	} `positional-args:"yes" required:"yes"`

	globals *GlobalFlags
	version string
	deps `no-flag:"true"`
}

// SnapshotsCommand lists stored snapshots.
type SnapshotsCommand struct {
	Limit int `long:"limit" description:"Maximum snapshots to show (0 for all)" default:"20"`

	globals *GlobalFlags
	version string
	deps `no-flag:"true"`
}

// ExportCommand writes Prometheus textfile metrics.
type ExportCommand struct {
	Output   string `short:"o" long:"output" description:"Textfile path ('-' for stdout, default from config)"`
	Input    string `short:"i" long:"input" description:"Read svcs output from file ('-' for stdin) instead of the latest snapshot"`
	Members  string `short:"m" long:"members" description:"Contract membership file"`
	Snapshot string `long:"snapshot" description:"Export a stored snapshot by ID"`

	globals *GlobalFlags
	version string
	deps `no-flag:"true"`
}

// PruneCommand removes snapshots older than the retention period.
type PruneCommand struct {
	OlderThan string `long:"older-than" description:"Override retention period (e.g., 30d, 2w, 12h)"`
	DryRun    bool   `long:"dry-run" description:"Show what would be pruned without deleting"`
	Force     bool   `long:"force" description:"Skip confirmation prompt"`

	globals *GlobalFlags
	version string
	deps `no-flag:"true"`
}

// PurgeCommand deletes every stored snapshot after a typed confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	deps `no-flag:"true"`
}
