package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/kanban-go/internal/board"
	"github.com/nibzard/kanban-go/internal/config"
	"github.com/nibzard/kanban-go/internal/storage"
)

// doctorCommand checks config, the board file, the schema file and the log
// directory.
func doctorCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("kanban doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	cfg := cws.Config

	fmt.Fprintln(stdout, "Kanban Doctor")
	fmt.Fprintln(stdout, "=============")
	fmt.Fprintln(stdout)

	allOK := true

	fmt.Fprintf(stdout, "Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(stdout, "  ✅ OK")
	}
	fmt.Fprintln(stdout)

	// Load already rejected invalid settings, so this section is informational.
	fmt.Fprintln(stdout, "Config:")
	if len(cws.Files) == 0 {
		fmt.Fprintln(stdout, "  ✅ No config file (using defaults)")
	}
	for _, f := range cws.Files {
		fmt.Fprintf(stdout, "  ✅ File: %s\n", f)
	}
	for _, key := range cws.Undecoded {
		fmt.Fprintf(stdout, "  ⚠️  Unknown key %s\n", key)
	}
	if *verbose {
		for _, f := range cfg.Fields() {
			fmt.Fprintf(stdout, "    %-15s = %-30q (%s)\n", f.Name, f.Value, cws.Sources[f.Name])
		}
	}
	fmt.Fprintln(stdout)

	opts := board.ValidationOptions{SchemaPath: cfg.SchemaFile}
	st := storage.NewFile(cfg.DataDir, cfg.StorageKey)
	fmt.Fprintf(stdout, "Board: %s\n", st.Path())
	data, err := st.Read()
	switch {
	case errors.Is(err, storage.ErrNotFound):
		fmt.Fprintln(stdout, "  ⚠️  Not found (starts empty)")
	case err != nil:
		fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
		allOK = false
	default:
		result := board.Validate(data, opts)
		for _, w := range result.Warnings {
			fmt.Fprintf(stdout, "  ⚠️  %s\n", w)
		}
		if result.Valid {
			fmt.Fprintln(stdout, "  ✅ Valid")
		} else {
			fmt.Fprintln(stdout, "  ❌ Validation failed (the board will load empty):")
			for _, e := range result.Errors {
				fmt.Fprintf(stdout, "     - %v\n", e)
			}
			allOK = false
		}
		if *verbose && result.Valid {
			if tasks, err := board.Decode(data, opts); err == nil {
				counts := map[board.Status]int{}
				for _, t := range tasks {
					counts[t.Status]++
				}
				for _, column := range board.Columns {
					fmt.Fprintf(stdout, "    %-12s %d\n", column.Title()+":", counts[column])
				}
			}
		}
	}
	fmt.Fprintln(stdout)

	if cfg.SchemaFile == "" {
		fmt.Fprintln(stdout, "Schema file: (built-in)")
		fmt.Fprintln(stdout, "  ✅ OK")
	} else {
		fmt.Fprintf(stdout, "Schema file: %s\n", cfg.SchemaFile)
		if info, err := os.Stat(cfg.SchemaFile); err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintln(stdout, "  ⚠️  Not found (built-in schema is used)")
			} else {
				fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
				allOK = false
			}
		} else if info.IsDir() {
			fmt.Fprintln(stdout, "  ❌ Error: path is a directory")
			allOK = false
		} else if result := board.Validate([]byte("[]"), opts); len(result.Warnings) > 0 {
			for _, w := range result.Warnings {
				fmt.Fprintf(stdout, "  ❌ %s\n", w)
			}
			allOK = false
		} else {
			fmt.Fprintln(stdout, "  ✅ OK")
		}
	}
	fmt.Fprintln(stdout)

	fmt.Fprintf(stdout, "Log directory: %s\n", cfg.LogDir)
	if info, err := os.Stat(cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(stdout, "  ⚠️  Not found (created by the first TUI session)")
		} else {
			fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(stdout, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Fprintln(stdout, "  ✅ OK")
	}
	fmt.Fprintln(stdout)

	if allOK {
		fmt.Fprintln(stdout, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(stdout, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}
