// Package kanbandir provides constants and utilities for the .kanban directory structure.
package kanbandir

import "path/filepath"

const (
	// Dir is the name of the per-project board directory.
	Dir = ".kanban"

	// DefaultStorageKey is the storage key the board is persisted under.
	DefaultStorageKey = "kanbanTasks"

	// DefaultSchemaFile is the board schema file name (inside .kanban).
	DefaultSchemaFile = "board.schema.json"

	// DefaultConfigFile is the project config file name (inside .kanban).
	DefaultConfigFile = "kanban.toml"
)

// DirPath returns the full path to the .kanban directory within a work directory.
func DirPath(workDir string) string {
	if workDir == "." || workDir == "" {
		return Dir
	}
	return filepath.Join(workDir, Dir)
}

// BoardPath returns the file that holds the given storage key inside dataDir.
func BoardPath(dataDir, key string) string {
	if key == "" {
		key = DefaultStorageKey
	}
	return filepath.Join(dataDir, key+".json")
}

// SchemaPath returns the full path to the schema file within a work directory.
func SchemaPath(workDir string) string {
	return filepath.Join(DirPath(workDir), DefaultSchemaFile)
}

// ConfigPath returns the full path to the project config file within a work directory.
func ConfigPath(workDir string) string {
	return filepath.Join(DirPath(workDir), DefaultConfigFile)
}
