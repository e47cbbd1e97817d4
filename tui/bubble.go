package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/fastvideo-cli/fastvideo/internal/ui"
	"github.com/fastvideo-cli/fastvideo/key"
	"github.com/fastvideo-cli/fastvideo/overlay"
	"github.com/fastvideo-cli/fastvideo/playback"
	"github.com/fastvideo-cli/fastvideo/session"
	"github.com/fastvideo-cli/fastvideo/style"
	"github.com/spf13/viper"
)

// playerBubble is the overlay of one running session.
type playerBubble struct {
	state  state
	keymap *playerKeymap

	ctx     context.Context
	session *session.Session
	now     func() time.Time

	// components
	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model

	// dragging is set while the scrub bar is held with the mouse
	dragging    bool
	showPreview bool
	lastError   error

	width, height int
	notifier      *ui.Model
}

func newBubble(ctx context.Context, s *session.Session) *playerBubble {
	keymap := newPlayerKeymap()

	b := &playerBubble{
		state:       startingState,
		keymap:      keymap,
		ctx:         ctx,
		session:     s,
		now:         time.Now,
		showPreview: viper.GetBool(key.TUIShowPreview),
		width:       80,
		height:      24,
		notifier:    &ui.Model{},
	}

	b.spinnerC = spinner.New()
	b.spinnerC.Spinner = spinner.Dot
	b.spinnerC.Style = style.New().Foreground(style.Mauve)

	b.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	b.helpC = help.New()

	return b
}

func (b *playerBubble) newState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *playerBubble) controller() *playback.Controller {
	return b.session.Controller()
}

// engine is the overlay of the active surface. It is nil until the session
// has started.
func (b *playerBubble) engine() *overlay.Engine {
	return b.session.Engine()
}

func (b *playerBubble) fullscreen() bool {
	return b.controller().Mode() == playback.Fullscreen
}

func (b *playerBubble) tap(zone overlay.Zone) error {
	return b.engine().Tap(overlay.Tap{Zone: zone, At: b.now().UnixMilli()})
}
