package config

import "flag"

// flagFields maps flag names to the config fields they set.
var flagFields = map[string]string{
	"data-dir":       "data_dir",
	"key":            "storage_key",
	"schema":         "schema_file",
	"id-scheme":      "id_scheme",
	"notice-seconds": "notice_seconds",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlagsHelper defines the config flags on fs and parses args.
// If sources is non-nil, it tracks the source of each value.
func parseFlagsHelper(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource, source ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("kanban", flag.ContinueOnError)
	}

	// Board storage
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Board data directory")
	fs.StringVar(&cfg.StorageKey, "key", cfg.StorageKey, "Storage key the board is saved under")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "Board schema file (default: embedded)")
	fs.StringVar(&cfg.IDScheme, "id-scheme", cfg.IDScheme, "Id scheme for new tasks (timestamp|uuid)")
	fs.IntVar(&cfg.NoticeSeconds, "notice-seconds", cfg.NoticeSeconds, "Seconds the empty-task notice stays visible")

	// Logging
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = source
			}
		})
	}
	return nil
}
