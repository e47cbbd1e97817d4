package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fastvideo-cli/fastvideo/internal/ui"
	"github.com/fastvideo-cli/fastvideo/log"
	"github.com/fastvideo-cli/fastvideo/overlay"
)

func (b *playerBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if cmd := b.notifier.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case runMsg:
		msg()
	case startedMsg:
		err := msg.err
		if err == nil {
			err = b.session.Attach()
		}

		if err != nil {
			log.Error(err)
			b.lastError = err
			b.newState(errorState)
			break
		}

		b.newState(playingState)
		cmds = append(cmds, b.waitForEvent(), b.waitForExit())
	case eventMsg:
		if err := b.applyEvent(msg.event); err != nil {
			cmds = append(cmds, ui.NotifyError(err))
		}
		cmds = append(cmds, b.waitForEvent())
	case exitedMsg:
		return b, tea.Quit
	case spinner.TickMsg:
		if b.state == startingState {
			var cmd tea.Cmd
			b.spinnerC, cmd = b.spinnerC.Update(msg)
			cmds = append(cmds, cmd)
		}
	case progress.FrameMsg:
		model, cmd := b.progressC.Update(msg)
		b.progressC = model.(progress.Model)
		cmds = append(cmds, cmd)
	case tea.KeyMsg:
		cmds = append(cmds, b.handleKey(msg))
	case tea.MouseMsg:
		if b.state == playingState {
			cmds = append(cmds, b.handleMouse(msg))
		}
	}

	if b.state == playingState {
		b.keymap.full = b.fullscreen()
	}

	return b, tea.Batch(cmds...)
}

func (b *playerBubble) resize(width, height int) {
	b.width, b.height = width, height
	b.helpC.Width = width
}

func (b *playerBubble) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.keymap.forceQuit):
		return tea.Quit
	case key.Matches(msg, b.keymap.quit) && b.state != startingState:
		return tea.Quit
	case key.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
		return nil
	}

	if b.state != playingState {
		return nil
	}

	return ui.NotifyError(b.gesture(msg))
}

// gesture translates a key into an overlay gesture.
func (b *playerBubble) gesture(msg tea.KeyMsg) error {
	engine := b.engine()

	switch {
	case key.Matches(msg, b.keymap.playPause):
		return engine.Press(overlay.ButtonPlayPause)
	case key.Matches(msg, b.keymap.tapLeft):
		return b.tap(overlay.Left)
	case key.Matches(msg, b.keymap.tapRight):
		return b.tap(overlay.Right)
	case key.Matches(msg, b.keymap.tapCenter):
		return b.tap(overlay.Center)
	case key.Matches(msg, b.keymap.iconBack):
		return b.tapIcon(overlay.IconSeekBack)
	case key.Matches(msg, b.keymap.iconPlayPause):
		return b.tapIcon(overlay.IconPlayPause)
	case key.Matches(msg, b.keymap.iconForward):
		return b.tapIcon(overlay.IconSeekForward)
	case key.Matches(msg, b.keymap.mute):
		return engine.Press(overlay.ButtonMute)
	case key.Matches(msg, b.keymap.fullscreen):
		return engine.Press(b.fullscreenButton())
	case key.Matches(msg, b.keymap.exitFullscreen):
		if b.fullscreen() {
			return engine.Press(overlay.ButtonExitFullscreen)
		}
	case key.Matches(msg, b.keymap.replay):
		return engine.TapReplay()
	}

	return nil
}

// tapIcon only reveals when the cluster is gone.
func (b *playerBubble) tapIcon(icon overlay.ClusterIcon) error {
	err := b.engine().TapIcon(icon)
	if errors.Is(err, overlay.ErrIconHidden) {
		return b.tap(overlay.Center)
	}

	return err
}

func (b *playerBubble) fullscreenButton() overlay.Button {
	if b.fullscreen() {
		return overlay.ButtonExitFullscreen
	}

	return overlay.ButtonFullscreen
}
