package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fastvideo-cli/fastvideo/log"
	"github.com/fastvideo-cli/fastvideo/playback"
)

// runMsg is a scheduler callback delivered onto the event loop.
type runMsg func()

type startedMsg struct {
	err error
}

type eventMsg struct {
	event playback.Event
}

// exitedMsg is sent once a surface window is gone.
type exitedMsg struct{}

// startSession launches the surface processes off the loop. They are
// attached in Update once startedMsg arrives.
func (b *playerBubble) startSession() tea.Cmd {
	return func() tea.Msg {
		return startedMsg{err: b.session.Launch(b.ctx)}
	}
}

// waitForEvent blocks on the controller inbox. It must be re-issued after
// every eventMsg.
func (b *playerBubble) waitForEvent() tea.Cmd {
	c := b.controller()
	return func() tea.Msg {
		select {
		case ev := <-c.Inbox():
			return eventMsg{event: ev}
		case <-c.Done():
			return nil
		}
	}
}

func (b *playerBubble) waitForExit() tea.Cmd {
	wait := b.session.Wait()
	return func() tea.Msg {
		<-wait
		return exitedMsg{}
	}
}

// applyEvent applies ev and whatever queued up behind it.
func (b *playerBubble) applyEvent(ev playback.Event) error {
	c := b.controller()
	err := c.Apply(ev)
	if n := c.Drain(); n > 0 {
		log.Debugf("drained %d queued events", n)
	}

	return err
}
