package ui

import "github.com/charmbracelet/lipgloss"

const defaultColumnWidth = 32

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	focusedColumnStyle = columnStyle.
				BorderForeground(lipgloss.Color("#7D56F4"))

	dropTargetStyle = columnStyle.
			BorderForeground(lipgloss.Color("#04B575"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	selectedCardStyle = cardStyle.
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#5A4FCF"))

	draggedCardStyle = cardStyle.
				Foreground(lipgloss.Color("#04B575")).
				Italic(true)

	emptyColumnStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Italic(true)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")).
			Bold(true)
)
