package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/kanban-go/internal/board"
	"github.com/nibzard/kanban-go/internal/config"
	"github.com/nibzard/kanban-go/internal/kanbandir"
)

// initCommand creates the project's .kanban directory with an example
// config and the board schema. The board itself is left alone.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("kanban init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	force := fs.Bool("force", false, "Overwrite existing files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	dir := kanbandir.DirPath(cfg.ProjectRoot)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	files := []struct {
		path string
		data []byte
	}{
		{kanbandir.ConfigPath(cfg.ProjectRoot), []byte(config.ExampleConfig())},
		{kanbandir.SchemaPath(cfg.ProjectRoot), board.SchemaJSON()},
	}
	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil && !*force {
			fmt.Fprintf(stdout, "Exists:  %s\n", f.path)
			continue
		}
		if err := os.WriteFile(f.path, f.data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", f.path, err)
		}
		fmt.Fprintf(stdout, "Created: %s\n", f.path)
	}
	return nil
}
