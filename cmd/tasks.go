package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/nibzard/kanban-go/internal/board"
	"github.com/nibzard/kanban-go/internal/config"
	"github.com/nibzard/kanban-go/internal/logging"
	"github.com/nibzard/kanban-go/internal/storage"
	"github.com/nibzard/kanban-go/internal/ui"
)

// tuiCommand opens the interactive board. Logs go to a session file so
// they do not tear the screen.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("kanban tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	ephemeral := fs.Bool("ephemeral", false, "Keep the board in memory; nothing is saved")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	session, err := logging.NewSessionLog(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("creating session log: %w", err)
	}
	defer session.Close()

	opts := logOptions(cfg)
	opts.ReportTimestamp = true
	logger := logging.New(session.Writer(), opts)

	var st storage.Storage = storage.NewFile(cfg.DataDir, cfg.StorageKey)
	if *ephemeral {
		st = storage.NewMemory()
	}
	store, err := openStore(cfg, st, logger)
	if err != nil {
		return err
	}
	logger.Info("session started", "tasks", store.Len(), "ephemeral", *ephemeral)

	err = ui.RunTUI(ctx, store,
		ui.WithLogger(logger),
		ui.WithNoticeDuration(cfg.NoticeDuration()),
	)
	logger.Info("session ended", "tasks", store.Len())
	return err
}

// addCommand creates a task and prints its id.
func addCommand(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: kanban add <column> <content>")
	}
	column, err := board.ParseStatus(args[0])
	if err != nil {
		return err
	}
	store, err := openFileStore(cfg)
	if err != nil {
		return err
	}
	task, err := store.AddTask(column, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, task.ID)
	return nil
}

// editCommand replaces a task's content. Blank content is allowed.
func editCommand(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: kanban edit <id> <content>")
	}
	store, err := openFileStore(cfg)
	if err != nil {
		return err
	}
	id := args[0]
	ok, err := store.EditTask(id, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(stdout, "task %s not found\n", id)
	}
	return nil
}

// moveCommand reassigns a task's column.
func moveCommand(cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: kanban mv <id> <column>")
	}
	column, err := board.ParseStatus(args[1])
	if err != nil {
		return err
	}
	store, err := openFileStore(cfg)
	if err != nil {
		return err
	}
	ok, err := store.MoveTask(args[0], column)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(stdout, "task %s not found\n", args[0])
	}
	return nil
}

// removeCommand deletes a task after confirmation.
func removeCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("kanban rm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	yes := fs.Bool("y", false, "Do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: kanban rm [-y] <id>")
	}
	id := fs.Arg(0)

	store, err := openFileStore(cfg)
	if err != nil {
		return err
	}
	task, ok := store.Get(id)
	if !ok {
		fmt.Fprintf(stdout, "task %s not found\n", id)
		return nil
	}
	if !*yes && !confirm(fmt.Sprintf("Are you sure to delete this task? %q", task.Content)) {
		fmt.Fprintln(stdout, "Aborted.")
		return nil
	}
	if _, err := store.DeleteTask(id); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Deleted %s\n", id)
	return nil
}

// clearCommand deletes every task after confirmation.
func clearCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("kanban clear", flag.ContinueOnError)
	fs.SetOutput(stderr)
	yes := fs.Bool("y", false, "Do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	store, err := openFileStore(cfg)
	if err != nil {
		return err
	}
	if !*yes && !confirm("Are you sure you want to clear all tasks?") {
		fmt.Fprintln(stdout, "Aborted.")
		return nil
	}
	n := store.Len()
	if err := store.ClearAll(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Cleared %d tasks\n", n)
	return nil
}

// lsCommand lists tasks by column in board order.
func lsCommand(cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	columns := board.Columns
	if len(args) == 1 {
		column, err := board.ParseStatus(args[0])
		if err != nil {
			return err
		}
		columns = []board.Status{column}
	}

	store, err := openFileStore(cfg)
	if err != nil {
		return err
	}
	for i, column := range columns {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		printColumn(column, store.TasksByStatus(column))
	}
	return nil
}

func printColumn(column board.Status, tasks []board.Task) {
	fmt.Fprintf(stdout, "%s (%d)\n", column.Title(), len(tasks))
	if len(tasks) == 0 {
		fmt.Fprintln(stdout, "  (none)")
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(stdout, "  [%s] %s\n", t.ID, t.Content)
	}
}
