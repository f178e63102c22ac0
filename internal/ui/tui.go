// Package ui provides the interactive terminal board.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/kanban-go/internal/board"
)

// EmptyTaskNotice is shown when a new task is submitted without content.
const EmptyTaskNotice = "Task cannot be empty!"

const defaultNoticeDuration = 2 * time.Second

// addCharLimit caps new task content typed in the TUI. Edits are unlimited
// so content added elsewhere is never cut.
const addCharLimit = 500

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	noticeDuration time.Duration
	logger         *log.Logger
	drag           DragDrop
}

// WithNoticeDuration sets how long transient notices stay visible.
func WithNoticeDuration(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.noticeDuration = d
		}
	}
}

// WithLogger sets the logger for UI events.
func WithLogger(l *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDragDrop replaces the keyboard drag implementation.
func WithDragDrop(d DragDrop) TUIOption {
	return func(c *tuiConfig) {
		if d != nil {
			c.drag = d
		}
	}
}

// RunTUI runs the board on the terminal until the user quits or ctx ends.
// The store should already be loaded.
func RunTUI(ctx context.Context, store *board.Store, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(store, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

type mode int

const (
	modeBoard mode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
	modeConfirmClear
	modeDrag
)

type tuiModel struct {
	store  *board.Store
	logger *log.Logger
	keys   KeyMap
	help   help.Model
	input  textinput.Model
	drag   DragDrop

	mode mode
	col  int
	rows [3]int // selected row per column

	editID    string
	editFrom  string // stored content of the task being edited
	editShown string // editFrom as the single-line input shows it
	deleteID  string
	dropCol   int
	notice    string
	noticeSeq int
	noticeFor time.Duration

	width  int
	height int
}

// clearNoticeMsg expires the notice with the matching sequence number.
type clearNoticeMsg struct {
	seq int
}

func newTUIModel(store *board.Store, opts ...TUIOption) *tuiModel {
	c := &tuiConfig{
		noticeDuration: defaultNoticeDuration,
		logger:         log.New(io.Discard),
		drag:           &KeyboardDrag{},
	}
	for _, opt := range opts {
		opt(c)
	}

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = addCharLimit

	return &tuiModel{
		store:     store,
		logger:    c.logger,
		keys:      DefaultKeyMap,
		help:      help.New(),
		input:     input,
		drag:      c.drag,
		noticeFor: c.noticeDuration,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirmDelete, modeConfirmClear:
			return m.updateConfirm(msg)
		case modeDrag:
			return m.updateDrag(msg)
		default:
			return m.updateBoard(msg)
		}
	}

	if m.mode == modeAdd || m.mode == modeEdit {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *tuiModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}
		m.clampRow()
	case key.Matches(msg, m.keys.Right):
		if m.col < len(board.Columns)-1 {
			m.col++
		}
		m.clampRow()
	case key.Matches(msg, m.keys.Up):
		if m.rows[m.col] > 0 {
			m.rows[m.col]--
		}
	case key.Matches(msg, m.keys.Down):
		m.rows[m.col]++
		m.clampRow()
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.Reset()
		m.input.CharLimit = addCharLimit
		m.input.Placeholder = "Add a task..."
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Edit):
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeEdit
		m.editID = task.ID
		m.input.Placeholder = ""
		m.input.CharLimit = 0
		m.input.SetValue(task.Content)
		m.input.CursorEnd()
		m.editFrom = task.Content
		m.editShown = m.input.Value()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
			m.deleteID = task.ID
		}
	case key.Matches(msg, m.keys.Clear):
		m.mode = modeConfirmClear
	case key.Matches(msg, m.keys.Drag):
		if task, ok := m.selected(); ok {
			m.drag.BeginDrag(task.ID)
			m.mode = modeDrag
			m.dropCol = m.col
		}
	}
	return m, nil
}

func (m *tuiModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeInput()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		column := board.Columns[m.col]
		task, err := m.store.AddTask(column, m.input.Value())
		if errors.Is(err, board.ErrEmptyContent) {
			return m, m.setNotice(EmptyTaskNotice)
		}
		m.closeInput()
		if err != nil {
			m.logger.Error("add task", "column", column, "err", err)
			return m, m.setNotice(err.Error())
		}
		m.logger.Info("task added", "id", task.ID, "column", column)
		m.selectTask(task.ID)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateEdit commits whenever the field loses focus; blank content is kept.
// An untouched field commits the stored content, not its single-line form.
func (m *tuiModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit, m.keys.Cancel, m.keys.Blur) {
		id := m.editID
		content := m.input.Value()
		if content == m.editShown {
			content = m.editFrom
		}
		m.closeInput()
		if _, err := m.store.EditTask(id, content); err != nil {
			m.logger.Error("edit task", "id", id, "err", err)
			return m, m.setNotice(err.Error())
		}
		m.logger.Info("task edited", "id", id)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		id := m.deleteID
		clearing := m.mode == modeConfirmClear
		m.mode = modeBoard
		m.deleteID = ""
		if clearing {
			err := m.store.ClearAll()
			m.clampRow()
			if err != nil {
				m.logger.Error("clear board", "err", err)
				return m, m.setNotice(err.Error())
			}
			m.logger.Info("board cleared")
			return m, nil
		}
		found, err := m.store.DeleteTask(id)
		m.clampRow()
		if err != nil {
			m.logger.Error("delete task", "id", id, "found", found, "err", err)
			return m, m.setNotice(err.Error())
		}
		m.logger.Info("task deleted", "id", id, "found", found)
	case key.Matches(msg, m.keys.Deny):
		m.mode = modeBoard
		m.deleteID = ""
	}
	return m, nil
}

func (m *tuiModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.drag.Cancel()
		m.mode = modeBoard
	case key.Matches(msg, m.keys.Left):
		if m.dropCol > 0 {
			m.dropCol--
		}
	case key.Matches(msg, m.keys.Right):
		if m.dropCol < len(board.Columns)-1 {
			m.dropCol++
		}
	case key.Matches(msg, m.keys.Drag, m.keys.Submit):
		column := board.Columns[m.dropCol]
		id, ok := m.drag.Drop(column)
		m.mode = modeBoard
		if !ok {
			return m, nil
		}
		m.col = m.dropCol
		if _, err := m.store.MoveTask(id, column); err != nil {
			m.logger.Error("move task", "id", id, "err", err)
			m.clampRow()
			return m, m.setNotice(err.Error())
		}
		m.logger.Info("task moved", "id", id, "status", column)
		m.selectTask(id)
	}
	return m, nil
}

func (m *tuiModel) closeInput() {
	m.input.Blur()
	m.input.Reset()
	m.editID = ""
	m.editFrom = ""
	m.editShown = ""
	m.mode = modeBoard
}

// setNotice shows text until the notice duration passes or a newer notice
// replaces it.
func (m *tuiModel) setNotice(text string) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	seq := m.noticeSeq
	return tea.Tick(m.noticeFor, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

func (m *tuiModel) selected() (board.Task, bool) {
	tasks := m.store.TasksByStatus(board.Columns[m.col])
	row := m.rows[m.col]
	if row < 0 || row >= len(tasks) {
		return board.Task{}, false
	}
	return tasks[row], true
}

func (m *tuiModel) selectTask(id string) {
	task, ok := m.store.Get(id)
	if !ok {
		m.clampRow()
		return
	}
	m.col = task.Status.Index()
	for i, t := range m.store.TasksByStatus(task.Status) {
		if t.ID == id {
			m.rows[m.col] = i
			return
		}
	}
}

func (m *tuiModel) clampRow() {
	for i, status := range board.Columns {
		n := len(m.store.TasksByStatus(status))
		if m.rows[i] >= n {
			m.rows[i] = n - 1
		}
		if m.rows[i] < 0 {
			m.rows[i] = 0
		}
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
