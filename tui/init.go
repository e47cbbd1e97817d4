package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (b *playerBubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.startSession())
}
