package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/kanban-go/internal/board"
)

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Kanban Board"))
	b.WriteString("\n")
	m.writeColumns(&b)
	b.WriteString("\n")
	m.writeDialog(&b)
	m.writeNotice(&b)
	m.writeHelp(&b)
	return b.String()
}

func (m *tuiModel) columnWidth() int {
	if m.width <= 0 {
		return defaultColumnWidth
	}
	// Borders and padding take four cells per column.
	w := m.width/len(board.Columns) - 4
	if w < 12 {
		return 12
	}
	return w
}

func (m *tuiModel) writeColumns(b *strings.Builder) {
	width := m.columnWidth()
	dragged, dragging := m.drag.Dragging()

	rendered := make([]string, 0, len(board.Columns))
	for i, status := range board.Columns {
		tasks := m.store.TasksByStatus(status)

		var col strings.Builder
		col.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", status.Title(), len(tasks))))
		col.WriteString("\n")
		if len(tasks) == 0 {
			col.WriteString(emptyColumnStyle.Render("no tasks"))
		}
		for row, task := range tasks {
			line := truncate(task.Content, width-2)
			if line == "" {
				line = "(empty)"
			}
			switch {
			case dragging && task.ID == dragged:
				col.WriteString(draggedCardStyle.Width(width).Render("↕ " + line))
			case i == m.col && row == m.rows[i] && m.mode != modeDrag:
				col.WriteString(selectedCardStyle.Width(width).Render(line))
			default:
				col.WriteString(cardStyle.Width(width).Render(line))
			}
			col.WriteString("\n")
		}

		style := columnStyle
		switch {
		case m.mode == modeDrag && i == m.dropCol:
			style = dropTargetStyle
		case m.mode != modeDrag && i == m.col:
			style = focusedColumnStyle
		}
		rendered = append(rendered, style.Width(width+2).Render(strings.TrimRight(col.String(), "\n")))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")
}

func (m *tuiModel) writeDialog(b *strings.Builder) {
	var body string
	switch m.mode {
	case modeAdd:
		body = fmt.Sprintf("Add Task to %s\n%s", board.Columns[m.col].Title(), m.input.View())
	case modeEdit:
		body = "Edit Task\n" + m.input.View()
	case modeConfirmDelete:
		body = "Are you sure to delete this task? (y/n)"
	case modeConfirmClear:
		body = "Are you sure you want to clear all tasks? (y/n)"
	case modeDrag:
		body = fmt.Sprintf("Drop into %s (←/→ to choose, space to drop, esc to cancel)",
			board.Columns[m.dropCol].Title())
	default:
		return
	}
	b.WriteString(dialogStyle.Render(body))
	b.WriteString("\n")
}

func (m *tuiModel) writeNotice(b *strings.Builder) {
	if m.notice == "" {
		return
	}
	b.WriteString(noticeStyle.Render(m.notice))
	b.WriteString("\n")
}

func (m *tuiModel) writeHelp(b *strings.Builder) {
	switch m.mode {
	case modeAdd:
		b.WriteString(m.help.View(dialogKeys{[]key.Binding{m.keys.Submit, m.keys.Cancel}}))
	case modeEdit:
		b.WriteString(m.help.View(dialogKeys{[]key.Binding{m.keys.Submit, m.keys.Blur}}))
	case modeConfirmDelete, modeConfirmClear:
		b.WriteString(m.help.View(dialogKeys{[]key.Binding{m.keys.Confirm, m.keys.Deny}}))
	case modeDrag:
		b.WriteString(m.help.View(dialogKeys{[]key.Binding{m.keys.Left, m.keys.Right, m.keys.Drag, m.keys.Cancel}}))
	default:
		b.WriteString(m.help.View(m.keys))
	}
	b.WriteString("\n")
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if max <= 3 || len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
