package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fastvideo-cli/fastvideo/internal/ui"
	"github.com/fastvideo-cli/fastvideo/overlay"
	"github.com/samber/lo"
)

// handleMouse turns clicks into gestures. The surface box is split into a
// left and a right tap zone, its middle row holds the icon cluster, and the
// control bar has buttons and a scrub bar that can be dragged.
func (b *playerBubble) handleMouse(msg tea.MouseMsg) tea.Cmd {
	g := b.geometry()

	switch msg.Action {
	case tea.MouseActionMotion:
		if b.dragging {
			b.engine().SlideMove(b.scrubValue(g, msg.X))
		}
		return nil
	case tea.MouseActionRelease:
		if !b.dragging {
			return nil
		}
		b.dragging = false
		return ui.NotifyError(b.engine().SlideEnd(b.scrubValue(g, msg.X)))
	}

	if msg.Button != tea.MouseButtonLeft {
		return nil
	}

	switch {
	case g.preview.contains(msg.X, msg.Y):
		return ui.NotifyError(b.clickSurface(g, msg.X, msg.Y))
	case msg.Y == g.bar:
		return ui.NotifyError(b.clickBar(g, msg.X))
	}

	return nil
}

func (b *playerBubble) clickSurface(g geometry, x, y int) error {
	engine := b.engine()
	view := engine.View()
	onMiddle := y == g.preview.middle()

	if view.Ended {
		if onMiddle {
			return engine.TapReplay()
		}
		return b.tap(overlay.Center)
	}

	if onMiddle && view.Cluster.IsPresent() {
		third := lo.Clamp((x-g.preview.x)*3/g.preview.w, 0, 2)
		return engine.TapIcon([]overlay.ClusterIcon{
			overlay.IconSeekBack,
			overlay.IconPlayPause,
			overlay.IconSeekForward,
		}[third])
	}

	if x < g.preview.x+g.preview.w/2 {
		return b.tap(overlay.Left)
	}
	return b.tap(overlay.Right)
}

func (b *playerBubble) clickBar(g geometry, x int) error {
	engine := b.engine()

	// a hidden bar only reveals
	if !engine.View().Interactive() {
		return engine.Press(overlay.ButtonPlayPause)
	}

	hits := spans(b.barSegments(g))
	switch {
	case hits[targetPlay].contains(x):
		if engine.View().Ended {
			return engine.TapReplay()
		}
		return engine.Press(overlay.ButtonPlayPause)
	case hits[targetMute].contains(x):
		return engine.Press(overlay.ButtonMute)
	case hits[targetFullscreen].contains(x):
		return engine.Press(b.fullscreenButton())
	case hits[targetProgress].contains(x):
		if engine.SlideStart() {
			b.dragging = true
			engine.SlideMove(b.scrubValue(g, x))
		}
	}

	return nil
}

// scrubValue maps a column of the scrub bar onto a playback time.
func (b *playerBubble) scrubValue(g geometry, x int) float64 {
	bar := spans(b.barSegments(g))[targetProgress]
	width := bar.to - bar.from
	if width <= 1 {
		return 0
	}

	ratio := float64(lo.Clamp(x-bar.from, 0, width-1)) / float64(width-1)
	return ratio * b.controller().State().Duration
}
