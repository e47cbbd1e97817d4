package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// playerKeymap maps keys onto overlay gestures. Side keys are taps, so
// pressing one twice quickly is a double tap.
type playerKeymap struct {
	state state
	full  bool

	quit, forceQuit,
	playPause,
	tapLeft, tapRight, tapCenter,
	iconBack, iconPlayPause, iconForward,
	mute,
	fullscreen, exitFullscreen,
	replay,
	showHelp key.Binding
}

func (k *playerKeymap) setState(newState state) {
	k.state = newState
}

func newPlayerKeymap() *playerKeymap {
	return &playerKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" ", "k"),
			key.WithHelp("space", "play/pause"),
		),
		tapLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "tap left"),
		),
		tapRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "tap right"),
		),
		tapCenter: key.NewBinding(
			key.WithKeys("enter", "t"),
			key.WithHelp("enter", "tap"),
		),
		iconBack: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "cluster back"),
		),
		iconPlayPause: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "cluster play"),
		),
		iconForward: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "cluster forward"),
		),
		mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		exitFullscreen: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "exit fullscreen"),
		),
		replay: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replay"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *playerKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	switch k.state {
	case startingState:
		return h(k.forceQuit), h(k.forceQuit)
	case errorState:
		return h(k.quit), h(k.quit, k.forceQuit)
	default:
		exit := k.fullscreen
		if k.full {
			exit = k.exitFullscreen
		}

		return h(k.playPause, k.tapLeft, k.tapRight, exit, k.showHelp, k.quit),
			h(k.playPause, k.tapLeft, k.tapRight, k.tapCenter, k.iconBack, k.iconPlayPause, k.iconForward, k.mute, exit, k.replay, k.quit)
	}
}

// ShortHelp implements help.KeyMap.
func (k *playerKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

// FullHelp implements help.KeyMap.
func (k *playerKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}
