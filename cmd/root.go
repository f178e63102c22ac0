// Package cmd implements the CLI command structure for kanban.
package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/kanban-go/internal/board"
	"github.com/nibzard/kanban-go/internal/config"
	"github.com/nibzard/kanban-go/internal/logging"
	"github.com/nibzard/kanban-go/internal/storage"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the kanban CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("kanban", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// With no subcommand the board opens.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "add":
		return addCommand(cfg, remainingArgs)
	case "edit":
		return editCommand(cfg, remainingArgs)
	case "mv", "move":
		return moveCommand(cfg, remainingArgs)
	case "rm", "delete":
		return removeCommand(cfg, remainingArgs)
	case "clear":
		return clearCommand(cfg, remainingArgs)
	case "ls", "list":
		return lsCommand(cfg, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cws, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// logOptions maps the logging settings of cfg.
func logOptions(cfg *config.Config) logging.Options {
	return logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		ReportTimestamp: cfg.LogTimestamps,
		ReportCaller:    cfg.LogCaller,
		Prefix:          "kanban",
	}
}

// openStore loads the board configured by cfg from st.
func openStore(cfg *config.Config, st storage.Storage, logger *log.Logger) (*board.Store, error) {
	ids, err := board.NewIDGenerator(cfg.IDScheme)
	if err != nil {
		return nil, err
	}
	store := board.New(st,
		board.WithIDGenerator(ids),
		board.WithLogger(logger),
		board.WithSchemaFile(cfg.SchemaFile),
	)
	store.Load()
	return store, nil
}

// openFileStore loads the board from the project's data directory, logging
// to stderr.
func openFileStore(cfg *config.Config) (*board.Store, error) {
	logger := logging.New(stderr, logOptions(cfg))
	return openStore(cfg, storage.NewFile(cfg.DataDir, cfg.StorageKey), logger)
}

// confirm asks a yes/no question on stdin. Anything but y or yes is a no.
func confirm(question string) bool {
	fmt.Fprintf(stdout, "%s [y/N] ", question)
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(stdout)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "kanban version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Kanban - a three-column task board for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  kanban [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                       Open the interactive board (default command)")
	fmt.Fprintln(w, "  add <column> <content>    Add a task to todo, in-progress or done")
	fmt.Fprintln(w, "  edit <id> <content>       Replace a task's content")
	fmt.Fprintln(w, "  mv <id> <column>          Move a task to another column")
	fmt.Fprintln(w, "  rm [-y] <id>              Delete a task")
	fmt.Fprintln(w, "  clear [-y]                Delete every task")
	fmt.Fprintln(w, "  ls [column]               List tasks by column")
	fmt.Fprintln(w, "  init [-force]             Create .kanban with an example config and schema")
	fmt.Fprintln(w, "  doctor [-v]               Check config, board file and log directory")
	fmt.Fprintln(w, "  tail [-f] [-n N]          Tail the latest TUI session log")
	fmt.Fprintln(w, "  version                   Show version information")
	fmt.Fprintln(w, "  help                      Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "TUI Options (use with 'tui' command):")
	fmt.Fprintln(w, "  -ephemeral")
	fmt.Fprintln(w, "        Keep the board in memory; nothing is saved")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
