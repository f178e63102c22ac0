package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Kanban configuration file
# Values can be overridden by KANBAN_* environment variables or CLI flags

# Board data directory (relative to project root)
data_dir = ".kanban"

# Storage key; the board is saved as <data_dir>/<storage_key>.json
storage_key = "kanbanTasks"

# Board schema file (empty uses the built-in schema)
# schema_file = ".kanban/board.schema.json"

# Id scheme for new tasks: "timestamp" (Unix milliseconds) or "uuid" (UUIDv7)
id_scheme = "timestamp"

# Seconds the "Task cannot be empty!" notice stays visible
notice_seconds = 2

# Log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.kanban/logs"

# Logging: debug, info, warn or error; text, json or logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
