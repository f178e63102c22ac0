package board

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the column a task sits in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Columns lists the statuses in display order.
var Columns = []Status{StatusTodo, StatusInProgress, StatusDone}

var (
	// ErrEmptyContent is returned when a task is created with blank content.
	ErrEmptyContent = errors.New("task cannot be empty")
	// ErrInvalidStatus is returned for a column outside Columns.
	ErrInvalidStatus = errors.New("invalid status")
)

// Valid reports whether s is one of the three columns.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Title returns the column heading, e.g. "IN PROGRESS".
func (s Status) Title() string {
	return strings.ToUpper(strings.ReplaceAll(string(s), "-", " "))
}

// Index returns the position of s in Columns, or -1.
func (s Status) Index() int {
	for i, c := range Columns {
		if c == s {
			return i
		}
	}
	return -1
}

// ParseStatus converts user input into a Status.
// "in progress" and "in_progress" are accepted for in-progress.
func ParseStatus(input string) (Status, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch s {
	case "todo":
		return StatusTodo, nil
	case "in-progress", "in progress", "in_progress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	}
	return "", fmt.Errorf("%w %q, must be one of: todo, in-progress, done", ErrInvalidStatus, input)
}

// Task is a single card on the board.
type Task struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Status  Status `json:"status"`
}
