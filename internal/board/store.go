package board

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/kanban-go/internal/storage"
)

// Store owns the task list and mirrors it to storage after every mutation.
// It is not safe for concurrent use.
type Store struct {
	storage storage.Storage
	ids     IDGenerator
	logger  *log.Logger
	schema  string
	tasks   []Task
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator sets the id source. The default is NewTimestampIDs(nil).
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSchemaFile validates loaded boards against a schema file instead of
// the embedded schema.
func WithSchemaFile(path string) Option {
	return func(s *Store) {
		s.schema = path
	}
}

// New creates an empty store backed by st. Call Load to read persisted state.
func New(st storage.Storage, opts ...Option) *Store {
	s := &Store{
		storage: st,
		ids:     NewTimestampIDs(nil),
		logger:  log.New(io.Discard),
		tasks:   []Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted one and returns a copy.
// Absent or malformed state yields an empty board.
func (s *Store) Load() []Task {
	s.tasks = []Task{}

	data, err := s.storage.Read()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("board unreadable, starting empty", "err", err)
		} else {
			s.logger.Debug("no saved board, starting empty")
		}
		return s.Tasks()
	}

	tasks, err := Decode(data, ValidationOptions{SchemaPath: s.schema})
	if err != nil {
		s.logger.Warn("saved board is malformed, starting empty", "err", err)
		return s.Tasks()
	}

	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			s.logger.Warn("dropping task with duplicate id", "id", t.ID)
			continue
		}
		seen[t.ID] = true
		s.tasks = append(s.tasks, t)
	}
	s.logger.Debug("board loaded", "tasks", len(s.tasks))
	return s.Tasks()
}

// AddTask appends a task with the given column and content.
// Blank content is rejected with ErrEmptyContent and changes nothing.
func (s *Store) AddTask(column Status, content string) (Task, error) {
	if strings.TrimSpace(content) == "" {
		return Task{}, ErrEmptyContent
	}
	if !column.Valid() {
		return Task{}, fmt.Errorf("%w %q", ErrInvalidStatus, column)
	}

	task := Task{
		ID:      s.ids.NewID(s.has),
		Content: content,
		Status:  column,
	}
	s.tasks = append(s.tasks, task)
	s.logger.Debug("task added", "id", task.ID, "status", task.Status)
	return task, s.persist()
}

// EditTask replaces the content of task id. Blank content is allowed.
// It reports whether the task exists.
func (s *Store) EditTask(id, content string) (bool, error) {
	i := s.index(id)
	if i >= 0 {
		s.tasks[i].Content = content
		s.logger.Debug("task edited", "id", id)
	}
	return i >= 0, s.persist()
}

// DeleteTask removes task id and reports whether it existed.
func (s *Store) DeleteTask(id string) (bool, error) {
	i := s.index(id)
	if i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		s.logger.Debug("task deleted", "id", id)
	}
	return i >= 0, s.persist()
}

// MoveTask sets the status of task id and reports whether it exists.
// Moving a task to the column it is already in is allowed.
func (s *Store) MoveTask(id string, status Status) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w %q", ErrInvalidStatus, status)
	}
	i := s.index(id)
	if i >= 0 {
		from := s.tasks[i].Status
		s.tasks[i].Status = status
		s.logger.Debug("task moved", "id", id, "from", from, "to", status)
	}
	return i >= 0, s.persist()
}

// ClearAll empties the board and deletes the persisted value.
func (s *Store) ClearAll() error {
	s.tasks = []Task{}
	if err := s.storage.Remove(); err != nil {
		return fmt.Errorf("clear board: %w", err)
	}
	s.logger.Debug("board cleared")
	return nil
}

// TasksByStatus returns the tasks in column status, in board order.
func (s *Store) TasksByStatus(status Status) []Task {
	result := make([]Task, 0)
	for _, t := range s.tasks {
		if t.Status == status {
			result = append(result, t)
		}
	}
	return result
}

// Tasks returns a copy of the whole list.
func (s *Store) Tasks() []Task {
	result := make([]Task, len(s.tasks))
	copy(result, s.tasks)
	return result
}

// Get returns task id.
func (s *Store) Get(id string) (Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// Counts returns the number of tasks in each column.
func (s *Store) Counts() map[Status]int {
	counts := make(map[Status]int, len(Columns))
	for _, c := range Columns {
		counts[c] = 0
	}
	for _, t := range s.tasks {
		counts[t.Status]++
	}
	return counts
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) has(id string) bool {
	return s.index(id) >= 0
}

func (s *Store) persist() error {
	data, err := Encode(s.tasks)
	if err != nil {
		return err
	}
	if err := s.storage.Write(data); err != nil {
		s.logger.Error("board not saved", "err", err)
		return fmt.Errorf("write board: %w", err)
	}
	return nil
}
