// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/kanban-go/internal/board"
	"github.com/nibzard/kanban-go/internal/kanbandir"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
	// Undecoded lists keys present in config files that no field consumed.
	Undecoded []string
}

// Default values.
const (
	DefaultDataDir       = kanbandir.Dir
	DefaultStorageKey    = kanbandir.DefaultStorageKey
	DefaultIDScheme      = board.IDSchemeTimestamp
	DefaultNoticeSeconds = 2
	DefaultLogDir        = "~/.kanban/logs"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

// Config holds the full configuration for kanban.
type Config struct {
	// Board storage
	DataDir    string `toml:"data_dir"`
	StorageKey string `toml:"storage_key"`
	SchemaFile string `toml:"schema_file"`

	// Id scheme for new tasks: timestamp or uuid
	IDScheme string `toml:"id_scheme"`

	// How long the "Task cannot be empty!" notice stays up
	NoticeSeconds int `toml:"notice_seconds"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// FieldValue is a configurable field and its current value.
type FieldValue struct {
	Name  string
	Value string
}

// Fields lists the configurable fields in display order, keyed by their
// config file names.
func (c *Config) Fields() []FieldValue {
	return []FieldValue{
		{"data_dir", c.DataDir},
		{"storage_key", c.StorageKey},
		{"schema_file", c.SchemaFile},
		{"id_scheme", c.IDScheme},
		{"notice_seconds", strconv.Itoa(c.NoticeSeconds)},
		{"log_dir", c.LogDir},
		{"log_level", c.LogLevel},
		{"log_format", c.LogFormat},
		{"log_timestamps", strconv.FormatBool(c.LogTimestamps)},
		{"log_caller", strconv.FormatBool(c.LogCaller)},
	}
}

// NoticeDuration returns NoticeSeconds as a duration.
func (c *Config) NoticeDuration() time.Duration {
	return time.Duration(c.NoticeSeconds) * time.Second
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("storage_key must not be empty")
	}
	if strings.ContainsAny(c.StorageKey, `/\`) {
		return fmt.Errorf("storage_key %q must not contain path separators", c.StorageKey)
	}
	if _, err := board.NewIDGenerator(c.IDScheme); err != nil {
		return err
	}
	if c.NoticeSeconds < 1 {
		return fmt.Errorf("notice_seconds must be >= 1, got %d", c.NoticeSeconds)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log_format %q, must be one of: text, json, logfmt", c.LogFormat)
	}
	return nil
}
