// Package ui provides internal state management and rendering utilities for ephemeral terminal notifications.
package ui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fastvideo-cli/fastvideo/playback"
)

// NoticeDuration is how long a notice stays on screen.
const NoticeDuration = 3 * time.Second

// Model encapsulates the state for displaying non-blocking terminal alerts.
type Model struct {
	notification string
	notifiedAt   time.Time
	generation   uint64
}

// NoticeMsg carries the text of a notice.
type NoticeMsg string

// ClearNotificationMsg is a Bubbletea message used to reset the visual notification state.
type ClearNotificationMsg struct {
	generation uint64
}

// Notify returns a tea.Cmd that shows text as a notice.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NoticeMsg(text)
	}
}

// NotifyError turns a failed playback command into a notice.
// Stale events are not worth showing and yield nil.
func NotifyError(err error) tea.Cmd {
	switch {
	case err == nil, errors.Is(err, playback.ErrStaleEvent):
		return nil
	case errors.Is(err, playback.ErrNotReady):
		return Notify("Surface not ready - queued until it loads")
	case errors.Is(err, playback.ErrClosed):
		return Notify("Player closed")
	default:
		return Notify(err.Error())
	}
}

// clearNotification returns a delayed tea.Cmd that clears the notice of the given generation.
func clearNotification(generation uint64) tea.Cmd {
	return tea.Tick(NoticeDuration, func(time.Time) tea.Msg {
		return ClearNotificationMsg{generation: generation}
	})
}

// Update processes incoming messages to modify the notification state.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NoticeMsg:
		m.generation++
		m.notification = string(msg)
		m.notifiedAt = time.Now()
		return clearNotification(m.generation)
	case ClearNotificationMsg:
		// a newer notice owns the slot
		if msg.generation == m.generation {
			m.notification = ""
		}
		return nil
	}
	return nil
}

// Notice returns the notice on screen, empty when there is none.
func (m *Model) Notice() string {
	return m.notification
}

// View injects the current notification message into the terminal view buffer.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	notifier := "\033[90m" + m.notification + "\033[0m"

	if len(lines) > 0 {
		lines[len(lines)-1] = lines[len(lines)-1] + "  " + notifier
	}
	return strings.Join(lines, "\n")
}
