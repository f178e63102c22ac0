package ui

import "github.com/nibzard/kanban-go/internal/board"

// DragDrop is the capability to pick a card up and drop it onto a column.
// The board moves the task to the drop column; implementations only track
// which task is in flight.
type DragDrop interface {
	// BeginDrag picks up the task with the given id, replacing any task
	// already in flight.
	BeginDrag(taskID string)
	// Drop releases the task in flight over column and reports its id.
	// ok is false when nothing is being dragged or column is not a board
	// column; in the latter case the drag stays active.
	Drop(column board.Status) (taskID string, ok bool)
	// Dragging reports the task in flight.
	Dragging() (taskID string, ok bool)
	// Cancel abandons the drag without moving anything.
	Cancel()
}

// KeyboardDrag is a DragDrop driven by key presses.
type KeyboardDrag struct {
	taskID string
}

// BeginDrag implements DragDrop.
func (d *KeyboardDrag) BeginDrag(taskID string) {
	d.taskID = taskID
}

// Drop implements DragDrop.
func (d *KeyboardDrag) Drop(column board.Status) (string, bool) {
	if d.taskID == "" || !column.Valid() {
		return "", false
	}
	id := d.taskID
	d.taskID = ""
	return id, true
}

// Dragging implements DragDrop.
func (d *KeyboardDrag) Dragging() (string, bool) {
	return d.taskID, d.taskID != ""
}

// Cancel implements DragDrop.
func (d *KeyboardDrag) Cancel() {
	d.taskID = ""
}
