package config

import (
	"fmt"
	"os"
	"strings"
)

// loadFromEnvHelper overrides config from KANBAN_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnvHelper(cfg *Config, sources map[string]ConfigSource, source ConfigSource) {
	mark := func(field string) {
		if sources != nil {
			sources[field] = source
		}
	}

	if v := os.Getenv("KANBAN_DATA_DIR"); v != "" {
		cfg.DataDir = v
		mark("data_dir")
	}
	if v := os.Getenv("KANBAN_STORAGE_KEY"); v != "" {
		cfg.StorageKey = v
		mark("storage_key")
	}
	if v := os.Getenv("KANBAN_SCHEMA"); v != "" {
		cfg.SchemaFile = v
		mark("schema_file")
	}
	if v := os.Getenv("KANBAN_ID_SCHEME"); v != "" {
		cfg.IDScheme = v
		mark("id_scheme")
	}
	if v := os.Getenv("KANBAN_NOTICE_SECONDS"); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			cfg.NoticeSeconds = i
			mark("notice_seconds")
		}
	}

	// Logging configuration
	if v := os.Getenv("KANBAN_LOG_DIR"); v != "" {
		cfg.LogDir = v
		mark("log_dir")
	}
	if v := os.Getenv("KANBAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		mark("log_level")
	}
	if v := os.Getenv("KANBAN_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		mark("log_format")
	}
	if v := os.Getenv("KANBAN_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		mark("log_timestamps")
	}
	if v := os.Getenv("KANBAN_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		mark("log_caller")
	}
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
