package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// LoadWithSources loads configuration from multiple sources in priority order
// and records where each value came from:
// 1. Defaults
// 2. User config file (~/.kanban/kanban.toml or OS-specific config dir)
// 3. Project config file (kanban.toml, .kanban.toml or .kanban/kanban.toml)
// 4. Environment variables
// 5. CLI flags
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cfg := &Config{}
	cws := &ConfigWithSources{Config: cfg, Sources: make(map[string]ConfigSource)}

	// 1. Set defaults
	setDefaults(cfg)
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFileInto(cws, userConfigFile, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFileInto(cws, projectConfigFile, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnvHelper(cfg, cws.Sources, SourceEnv)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlagsHelper(cfg, fs, args, cws.Sources, SourceFlag); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	fields := (&Config{}).Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// loadConfigFileInto decodes a config file over cws.Config and records which
// keys the file defined.
func loadConfigFileInto(cws *ConfigWithSources, path string, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cws.Config)
	if err != nil {
		return err
	}
	cws.Files = append(cws.Files, path)

	if cws.Sources != nil {
		for _, key := range md.Keys() {
			if len(key) == 1 {
				cws.Sources[key[0]] = source
			}
		}
	}
	for _, key := range md.Undecoded() {
		cws.Undecoded = append(cws.Undecoded, fmt.Sprintf("%s: %s", path, key.String()))
	}
	sort.Strings(cws.Undecoded)
	return nil
}

// finalizeConfig computes derived values and validates paths.
func finalizeConfig(cfg *Config) error {
	// Expand ~ in paths
	cfg.LogDir = expandPath(cfg.LogDir)
	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.SchemaFile = expandPath(cfg.SchemaFile)

	// Determine project root
	if cfg.ProjectRoot == "" {
		// Use current working directory
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	// Make paths absolute if they're relative
	if !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(cfg.ProjectRoot, cfg.DataDir)
	}
	if cfg.SchemaFile != "" && !filepath.IsAbs(cfg.SchemaFile) {
		cfg.SchemaFile = filepath.Join(cfg.ProjectRoot, cfg.SchemaFile)
	}

	return cfg.Validate()
}
