package config

// DefaultSort is the list ordering used when neither flags nor config set one.
var DefaultSort = []string{"time", "fmri"}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:              "~/.config/smf",
			SQLiteFile:        "snapshots.db",
			SQLiteJournalMode: "wal",
		},
		Display: DisplayConfig{
			Color:     "auto",
			Sort:      append([]string(nil), DefaultSort...),
			CellWidth: false,
			Timezone:  "local",
		},
		Retention: RetentionConfig{
			Days: 30,
		},
		Logging: LoggingConfig{
			Level: "warn",
			File:  "",
		},
		Export: ExportConfig{
			Textfile: "/var/lib/node_exporter/textfile/smf.prom",
		},
	}
}
