package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/kanban-go/internal/board"
	"github.com/nibzard/kanban-go/internal/storage"
)

var (
	enterKey     = tea.KeyMsg{Type: tea.KeyEnter}
	escKey       = tea.KeyMsg{Type: tea.KeyEsc}
	tabKey       = tea.KeyMsg{Type: tea.KeyTab}
	spaceKey     = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	backspaceKey = tea.KeyMsg{Type: tea.KeyBackspace}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// testModel builds a model over an in-memory board holding the given
// tasks, added to their columns in order.
func testModel(t *testing.T, tasks ...board.Task) (*tuiModel, *board.Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	store := board.New(mem)
	for _, task := range tasks {
		if _, err := store.AddTask(task.Status, task.Content); err != nil {
			t.Fatalf("AddTask(%q) error = %v", task.Content, err)
		}
	}
	return newTUIModel(store), store, mem
}

func send(m *tuiModel, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestAddTaskToFocusedColumn(t *testing.T) {
	m, store, _ := testModel(t)

	send(m, runes("l"), runes("a"))
	if m.mode != modeAdd {
		t.Fatalf("mode = %v, want add", m.mode)
	}
	if !strings.Contains(m.View(), "Add Task to IN PROGRESS") {
		t.Errorf("dialog title missing from view:\n%s", m.View())
	}

	send(m, runes("Write spec"), enterKey)

	tasks := store.TasksByStatus(board.StatusInProgress)
	if len(tasks) != 1 || tasks[0].Content != "Write spec" {
		t.Fatalf("in-progress tasks = %+v", tasks)
	}
	if m.mode != modeBoard {
		t.Errorf("mode = %v, want board after save", m.mode)
	}
	if got, ok := m.selected(); !ok || got.ID != tasks[0].ID {
		t.Errorf("selected = %+v, want the new task", got)
	}
}

func TestAddTaskCancel(t *testing.T) {
	m, store, _ := testModel(t)
	send(m, runes("a"), runes("draft"), escKey)
	if store.Len() != 0 {
		t.Errorf("Len() = %d after cancel", store.Len())
	}
	if m.mode != modeBoard {
		t.Errorf("mode = %v, want board", m.mode)
	}
}

func TestAddEmptyTaskShowsNotice(t *testing.T) {
	m, store, mem := testModel(t)

	cmd := send(m, runes("a"), runes("   "), enterKey)
	if store.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", store.Len())
	}
	if mem.Writes != 0 {
		t.Errorf("Writes = %d, want no persistence", mem.Writes)
	}
	if m.notice != EmptyTaskNotice {
		t.Errorf("notice = %q, want %q", m.notice, EmptyTaskNotice)
	}
	if cmd == nil {
		t.Fatal("expected a timer command to expire the notice")
	}
	if m.mode != modeAdd {
		t.Errorf("mode = %v, want the add dialog to stay open", m.mode)
	}
	if !strings.Contains(m.View(), EmptyTaskNotice) {
		t.Error("notice missing from view")
	}

	// A stale timer must not clear a newer notice.
	send(m, clearNoticeMsg{seq: m.noticeSeq - 1})
	if m.notice == "" {
		t.Error("stale timer cleared the notice")
	}
	send(m, clearNoticeMsg{seq: m.noticeSeq})
	if m.notice != "" {
		t.Errorf("notice = %q after expiry", m.notice)
	}
}

func TestNoticeDurationOption(t *testing.T) {
	store := board.New(storage.NewMemory())
	m := newTUIModel(store, WithNoticeDuration(5*time.Second))
	if m.noticeFor != 5*time.Second {
		t.Errorf("noticeFor = %v", m.noticeFor)
	}
	m = newTUIModel(store, WithNoticeDuration(0))
	if m.noticeFor != defaultNoticeDuration {
		t.Errorf("noticeFor = %v, want default", m.noticeFor)
	}
}

func TestEditCommitsOnBlur(t *testing.T) {
	tests := []struct {
		name    string
		keys    []tea.Msg
		leave   tea.KeyMsg
		content string
	}{
		{"enter", []tea.Msg{runes("!")}, enterKey, "Buy milk!"},
		{"esc", []tea.Msg{runes("?")}, escKey, "Buy milk?"},
		{"tab", []tea.Msg{runes(" now")}, tabKey, "Buy milk now"},
		{"blank allowed", repeat(backspaceKey, len("Buy milk")), enterKey, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store, _ := testModel(t, board.Task{Content: "Buy milk", Status: board.StatusTodo})
			id := store.Tasks()[0].ID

			send(m, runes("e"))
			if m.mode != modeEdit || m.input.Value() != "Buy milk" {
				t.Fatalf("mode = %v, input = %q", m.mode, m.input.Value())
			}
			send(m, tt.keys...)
			send(m, tt.leave)

			got, _ := store.Get(id)
			if got.Content != tt.content {
				t.Errorf("content = %q, want %q", got.Content, tt.content)
			}
			if m.mode != modeBoard {
				t.Errorf("mode = %v, want board", m.mode)
			}
		})
	}
}

func TestEditLeftUntouchedKeepsContent(t *testing.T) {
	long := strings.Repeat("abcdefghij", 60)
	tests := []struct {
		name    string
		content string
	}{
		{"long", long},
		{"newlines", "line1\nline2"},
		{"long with newlines", long + "\n" + long},
	}

	for _, tt := range tests {
		for _, leave := range []tea.KeyMsg{escKey, enterKey, tabKey} {
			t.Run(tt.name+"/"+leave.String(), func(t *testing.T) {
				m, store, _ := testModel(t, board.Task{Content: tt.content, Status: board.StatusTodo})
				id := store.Tasks()[0].ID

				send(m, runes("e"), leave)

				got, _ := store.Get(id)
				if got.Content != tt.content {
					t.Errorf("content changed: len %d -> %d", len(tt.content), len(got.Content))
				}
			})
		}
	}
}

func TestEditLongContentNotTruncated(t *testing.T) {
	long := strings.Repeat("x", 600)
	m, store, _ := testModel(t, board.Task{Content: long, Status: board.StatusTodo})
	id := store.Tasks()[0].ID

	send(m, runes("e"), runes("!"), enterKey)

	got, _ := store.Get(id)
	if got.Content != long+"!" {
		t.Errorf("len(content) = %d, want %d", len(got.Content), len(long)+1)
	}

	// the add dialog keeps its limit after an edit
	send(m, runes("a"), runes(strings.Repeat("y", 600)))
	if n := len(m.input.Value()); n != addCharLimit {
		t.Errorf("add input len = %d, want %d", n, addCharLimit)
	}
}

func repeat(msg tea.Msg, n int) []tea.Msg {
	out := make([]tea.Msg, n)
	for i := range out {
		out[i] = msg
	}
	return out
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	tests := []struct {
		name    string
		answer  tea.KeyMsg
		deleted bool
	}{
		{"yes", runes("y"), true},
		{"enter", enterKey, true},
		{"no", runes("n"), false},
		{"esc", escKey, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store, _ := testModel(t,
				board.Task{Content: "keep", Status: board.StatusTodo},
				board.Task{Content: "target", Status: board.StatusTodo},
			)
			send(m, runes("j"), runes("d"))
			if m.mode != modeConfirmDelete {
				t.Fatalf("mode = %v, want confirm", m.mode)
			}
			if !strings.Contains(m.View(), "Are you sure to delete this task?") {
				t.Error("confirmation prompt missing")
			}
			send(m, tt.answer)

			wantLen := 2
			if tt.deleted {
				wantLen = 1
			}
			if store.Len() != wantLen {
				t.Fatalf("Len() = %d, want %d", store.Len(), wantLen)
			}
			if tt.deleted && store.Tasks()[0].Content != "keep" {
				t.Errorf("wrong task deleted: %+v", store.Tasks())
			}
			if m.mode != modeBoard {
				t.Errorf("mode = %v, want board", m.mode)
			}
		})
	}
}

func TestDeleteOnEmptyColumnDoesNothing(t *testing.T) {
	m, _, _ := testModel(t)
	send(m, runes("d"))
	if m.mode != modeBoard {
		t.Errorf("mode = %v, want board", m.mode)
	}
}

func TestClearAllRequiresConfirmation(t *testing.T) {
	m, store, mem := testModel(t,
		board.Task{Content: "a", Status: board.StatusTodo},
		board.Task{Content: "b", Status: board.StatusDone},
	)

	send(m, runes("C"), escKey)
	if store.Len() != 2 {
		t.Fatalf("Len() = %d after declining", store.Len())
	}

	send(m, runes("C"))
	if !strings.Contains(m.View(), "Are you sure you want to clear all tasks?") {
		t.Error("clear prompt missing")
	}
	send(m, runes("y"))
	if store.Len() != 0 {
		t.Errorf("Len() = %d after clear", store.Len())
	}
	if mem.Exists() {
		t.Error("storage key still present after clear")
	}
}

func TestDragDropMovesTask(t *testing.T) {
	m, store, _ := testModel(t,
		board.Task{Content: "Write spec", Status: board.StatusTodo},
		board.Task{Content: "Review", Status: board.StatusTodo},
	)
	id := store.TasksByStatus(board.StatusTodo)[0].ID

	send(m, spaceKey)
	if got, ok := m.drag.Dragging(); !ok || got != id {
		t.Fatalf("Dragging() = %q, %v", got, ok)
	}
	send(m, runes("l"), runes("l"), runes("l"))
	if m.dropCol != 2 {
		t.Errorf("dropCol = %d, want clamped to 2", m.dropCol)
	}
	send(m, spaceKey)

	got, _ := store.Get(id)
	if got.Status != board.StatusDone {
		t.Errorf("status = %s, want done", got.Status)
	}
	if _, ok := m.drag.Dragging(); ok {
		t.Error("drag still active after drop")
	}
	if m.col != 2 {
		t.Errorf("focus column = %d, want 2", m.col)
	}
	if sel, _ := m.selected(); sel.ID != id {
		t.Errorf("selected = %+v, want moved task", sel)
	}
}

func TestDragDropWithEnterAndCancel(t *testing.T) {
	m, store, _ := testModel(t, board.Task{Content: "x", Status: board.StatusDone})
	id := store.Tasks()[0].ID
	send(m, runes("l"), runes("l"))

	send(m, spaceKey, runes("h"), escKey)
	if got, _ := store.Get(id); got.Status != board.StatusDone {
		t.Fatalf("cancelled drag moved task to %s", got.Status)
	}
	if m.mode != modeBoard {
		t.Errorf("mode = %v after cancel", m.mode)
	}

	send(m, spaceKey, runes("h"), enterKey)
	if got, _ := store.Get(id); got.Status != board.StatusInProgress {
		t.Errorf("status = %s, want in-progress", got.Status)
	}
}

func TestDragDropSameColumn(t *testing.T) {
	m, store, mem := testModel(t, board.Task{Content: "x", Status: board.StatusTodo})
	before := mem.Writes
	send(m, spaceKey, spaceKey)
	if got := store.Tasks()[0]; got.Status != board.StatusTodo {
		t.Errorf("status = %s", got.Status)
	}
	if mem.Writes != before+1 {
		t.Errorf("Writes = %d, want one persist for the drop", mem.Writes)
	}
}

type recordingDrag struct {
	KeyboardDrag
	begun []string
}

func (r *recordingDrag) BeginDrag(id string) {
	r.begun = append(r.begun, id)
	r.KeyboardDrag.BeginDrag(id)
}

func TestWithDragDrop(t *testing.T) {
	store := board.New(storage.NewMemory())
	task, _ := store.AddTask(board.StatusTodo, "x")
	rec := &recordingDrag{}
	m := newTUIModel(store, WithDragDrop(rec))
	send(m, spaceKey)
	if len(rec.begun) != 1 || rec.begun[0] != task.ID {
		t.Errorf("begun = %v", rec.begun)
	}
}

func TestKeyboardDrag(t *testing.T) {
	var d KeyboardDrag
	if _, ok := d.Drop(board.StatusDone); ok {
		t.Error("Drop without a drag succeeded")
	}

	d.BeginDrag("1")
	if _, ok := d.Drop(board.Status("archived")); ok {
		t.Error("Drop on unknown column succeeded")
	}
	if id, ok := d.Dragging(); !ok || id != "1" {
		t.Errorf("drag lost after rejected drop: %q %v", id, ok)
	}
	if id, ok := d.Drop(board.StatusDone); !ok || id != "1" {
		t.Errorf("Drop() = %q, %v", id, ok)
	}

	d.BeginDrag("2")
	d.Cancel()
	if _, ok := d.Dragging(); ok {
		t.Error("Dragging after Cancel")
	}
}

func TestNavigationClamps(t *testing.T) {
	m, _, _ := testModel(t,
		board.Task{Content: "a", Status: board.StatusTodo},
		board.Task{Content: "b", Status: board.StatusTodo},
	)
	send(m, runes("j"), runes("j"), runes("j"))
	if m.rows[0] != 1 {
		t.Errorf("row = %d, want 1", m.rows[0])
	}
	send(m, runes("k"), runes("k"))
	if m.rows[0] != 0 {
		t.Errorf("row = %d, want 0", m.rows[0])
	}
	send(m, runes("h"))
	if m.col != 0 {
		t.Errorf("col = %d, want 0", m.col)
	}
	send(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	if m.col != 2 {
		t.Errorf("col = %d, want 2", m.col)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _, _ := testModel(t)
	send(m, runes("?"))
	if !m.help.ShowAll {
		t.Fatal("help not expanded")
	}
	if !strings.Contains(m.View(), "clear all") {
		t.Error("full help missing clear binding")
	}
	send(m, runes("?"))
	if m.help.ShowAll {
		t.Error("help still expanded")
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := testModel(t)
	cmd := send(m, runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}

	// q is text while typing.
	send(m, runes("a"))
	send(m, runes("q"))
	if m.input.Value() != "q" {
		t.Errorf("input = %q", m.input.Value())
	}
}

func TestViewShowsColumnsWithCounts(t *testing.T) {
	m, _, _ := testModel(t,
		board.Task{Content: "Write spec", Status: board.StatusTodo},
		board.Task{Content: "Ship", Status: board.StatusDone},
		board.Task{Content: "Celebrate", Status: board.StatusDone},
	)
	send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	for _, want := range []string{"TODO (1)", "IN PROGRESS (0)", "DONE (2)", "Write spec", "Celebrate", "no tasks"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

type failingStorage struct {
	*storage.Memory
}

func (f failingStorage) Write([]byte) error { return errors.New("disk full") }

func TestPersistErrorShowsNotice(t *testing.T) {
	store := board.New(failingStorage{storage.NewMemory()})
	m := newTUIModel(store)

	send(m, runes("a"), runes("x"), enterKey)
	if !strings.Contains(m.notice, "disk full") {
		t.Errorf("notice = %q", m.notice)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, in-memory add should survive a failed write", store.Len())
	}
}

func TestDeleteLogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	mem := storage.NewMemory()
	store := board.New(mem)
	if _, err := store.AddTask(board.StatusTodo, "target"); err != nil {
		t.Fatal(err)
	}
	m := newTUIModel(store, WithLogger(log.New(&buf)))

	send(m, runes("d"), runes("y"))
	out := buf.String()
	if !strings.Contains(out, "task deleted") || !strings.Contains(out, "found=true") {
		t.Errorf("log = %q", out)
	}
}

func TestDeleteFailureNotLoggedAsDeleted(t *testing.T) {
	var buf bytes.Buffer
	store := board.New(failingStorage{storage.NewMemory()})
	store.AddTask(board.StatusTodo, "target")
	m := newTUIModel(store, WithLogger(log.New(&buf)))

	send(m, runes("d"), runes("y"))
	out := buf.String()
	if strings.Contains(out, "task deleted") {
		t.Errorf("failed delete logged as success: %q", out)
	}
	if !strings.Contains(out, "delete task") || !strings.Contains(m.notice, "disk full") {
		t.Errorf("log = %q, notice = %q", out, m.notice)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"two\nlines", 20, "two lines"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
