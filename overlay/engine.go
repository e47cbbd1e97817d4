// Package overlay implements the per-surface interaction state machine of the
// tappable control overlay: visibility and auto-hide, single and double tap
// disambiguation, transient icons and scrubbing.
package overlay

import (
	"errors"
	"math"
	"time"

	"github.com/fastvideo-cli/fastvideo/log"
	"github.com/fastvideo-cli/fastvideo/playback"
	"github.com/fastvideo-cli/fastvideo/schedule"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ErrIconHidden is returned by TapIcon when the cluster is not on screen.
var ErrIconHidden = errors.New("icon cluster is not shown")

// Transport is the playback surface the engine drives.
type Transport interface {
	State() playback.State
	TogglePlay() error
	Seek(t float64) error
	Replay() error
	ToggleMute() error
	EnterFullscreen() error
	ExitFullscreen() error
}

// Engine is the interaction state machine of one surface.
// It must only be used from the event loop its scheduler posts to.
type Engine struct {
	transport Transport
	sched     schedule.Scheduler
	timing    Timing
	entry     log.Entry

	view    View
	lastTap mo.Option[Tap]

	pendingTap  schedule.Task
	hideTask    schedule.Task
	phaseTask   schedule.Task
	clusterTask schedule.Task
	flashTask   schedule.Task

	disposed bool
}

// New returns an engine with the controls revealed and the hide timer armed.
func New(surface playback.Mode, transport Transport, sched schedule.Scheduler, timing Timing) *Engine {
	st := transport.State()
	e := &Engine{
		transport: transport,
		sched:     sched,
		timing:    timing,
		entry:     log.With(log.Fields{"surface": surface.String()}),
		view: View{
			Paused: st.Paused,
			Ended:  st.Ended,
		},
	}

	e.reveal()
	return e
}

// View returns a copy of what should be drawn.
func (e *Engine) View() View {
	return e.view
}

// Tap handles a tap on the surface. A side tap within the double tap window
// of the previous tap seeks; anything else becomes a single tap once the
// window passes, which flashes the icon cluster without acting.
func (e *Engine) Tap(t Tap) error {
	if e.disposed {
		return nil
	}

	e.reveal()

	if e.view.Ended {
		e.lastTap = mo.None[Tap]()
		return nil
	}

	last, hadLast := e.lastTap.Get()
	// every tap opens a new window, so a run of quick taps keeps seeking
	e.lastTap = mo.Some(t)
	schedule.Cancel(e.pendingTap)

	if hadLast && t.Zone.Side() && t.At-last.At < e.timing.DoubleTapWindow.Milliseconds() {
		return e.doubleTap(t.Zone)
	}

	e.pendingTap = e.sched.After(e.timing.DoubleTapWindow, func() {
		if e.disposed {
			return
		}
		e.showCluster()
	})

	return nil
}

func (e *Engine) doubleTap(zone Zone) error {
	st := e.transport.State()

	delta := e.timing.SeekStep
	if zone == Left {
		delta = -delta
	}

	target := math.Max(st.CurrentTime+delta, 0)
	e.entry.Debugf("double tap %s: seek %.1f -> %.1f", zone, st.CurrentTime, target)

	e.flashSeek(zone)
	return e.transport.Seek(target)
}

func (e *Engine) flashSeek(zone Zone) {
	schedule.Cancel(e.flashTask)
	e.view.SeekFlash = mo.Some(SeekFlash{Direction: zone})

	e.flashTask = e.sched.After(e.timing.SeekFlash, func() {
		e.view.SeekFlash = mo.Some(SeekFlash{Direction: zone, Fading: true})
		e.flashTask = e.sched.After(e.timing.IconFade, func() {
			e.view.SeekFlash = mo.None[SeekFlash]()
		})
	})
}

func (e *Engine) showCluster() {
	if e.view.Ended {
		return
	}

	schedule.Cancel(e.clusterTask)
	e.view.Cluster = mo.Some(Cluster{Paused: e.view.Paused})

	e.clusterTask = e.sched.After(e.timing.ClusterFlash, func() {
		e.view.Cluster = mo.Some(Cluster{Paused: e.view.Paused, Fading: true})
		e.clusterTask = e.sched.After(e.timing.IconFade, func() {
			e.view.Cluster = mo.None[Cluster]()
		})
	})
}

// TapIcon acts on a cluster icon. It fails with ErrIconHidden unless the
// cluster is currently shown.
func (e *Engine) TapIcon(icon ClusterIcon) error {
	if e.disposed {
		return nil
	}

	if e.view.Cluster.IsAbsent() || e.view.Ended {
		return ErrIconHidden
	}

	e.reveal()

	switch icon {
	case IconSeekBack:
		return e.transport.Seek(math.Max(e.transport.State().CurrentTime-e.timing.SeekStep, 0))
	case IconSeekForward:
		return e.transport.Seek(e.transport.State().CurrentTime + e.timing.SeekStep)
	default:
		return e.transport.TogglePlay()
	}
}

// TapReplay restarts playback from the replay affordance shown while ended.
func (e *Engine) TapReplay() error {
	if e.disposed || !e.view.Ended {
		return nil
	}

	e.reveal()
	return e.transport.Replay()
}

// Press handles a control bar button. While the bar is hidden a press only
// reveals it.
func (e *Engine) Press(b Button) error {
	if e.disposed {
		return nil
	}

	interactive := e.view.Interactive()
	e.reveal()
	if !interactive {
		return nil
	}

	switch b {
	case ButtonPlayPause:
		return e.transport.TogglePlay()
	case ButtonMute:
		return e.transport.ToggleMute()
	case ButtonFullscreen:
		return e.transport.EnterFullscreen()
	case ButtonExitFullscreen:
		return e.transport.ExitFullscreen()
	}

	return nil
}

// SlideStart begins a scrub. The bar stays visible until SlideEnd.
// It reports false when the bar was hidden, in which case it only reveals.
func (e *Engine) SlideStart() bool {
	if e.disposed {
		return false
	}

	interactive := e.view.Interactive()
	if interactive {
		e.view.Sliding = true
		e.view.ScrubValue = e.transport.State().CurrentTime
	}

	e.reveal()
	return interactive
}

// SlideMove previews the scrub position.
func (e *Engine) SlideMove(value float64) {
	if e.disposed || !e.view.Sliding {
		return
	}

	e.view.ScrubValue = e.clamp(value)
}

// SlideEnd releases the scrub, re-arms auto-hide and seeks to value.
func (e *Engine) SlideEnd(value float64) error {
	if e.disposed || !e.view.Sliding {
		return nil
	}

	e.view.Sliding = false
	e.view.ScrubValue = e.clamp(value)
	e.reveal()
	return e.transport.Seek(e.view.ScrubValue)
}

func (e *Engine) clamp(value float64) float64 {
	if d := e.transport.State().Duration; d > 0 {
		return lo.Clamp(value, 0, d)
	}

	return math.Max(value, 0)
}

// OnPlaybackChange reveals the controls whenever paused or ended flips.
// It has the signature of a playback.Controller subscriber.
func (e *Engine) OnPlaybackChange(prev, next playback.State) {
	if e.disposed {
		return
	}

	e.view.Paused = next.Paused
	e.view.Ended = next.Ended
	if c, ok := e.view.Cluster.Get(); ok {
		c.Paused = next.Paused
		e.view.Cluster = mo.Some(c)
	}

	if prev.Paused == next.Paused && prev.Ended == next.Ended {
		return
	}

	if next.Ended {
		e.lastTap = mo.None[Tap]()
		schedule.Cancel(e.pendingTap)
		schedule.Cancel(e.clusterTask)
		e.view.Cluster = mo.None[Cluster]()
	}

	e.reveal()
}

// reveal shows the controls under a fresh fade token and arms the hide
// timer unless scrubbing or ended.
func (e *Engine) reveal() {
	e.view.FadeToken++
	token := e.view.FadeToken

	schedule.Cancel(e.hideTask)
	e.hideTask = nil

	e.view.ControlsVisible = true
	if e.view.Phase != Visible {
		schedule.Cancel(e.phaseTask)
		e.view.Phase = Revealing
		e.phaseTask = e.after(e.timing.RevealFade, token, func() {
			e.view.Phase = Visible
		})
	}

	if e.view.Sliding || e.view.Ended {
		return
	}

	e.hideTask = e.after(e.timing.HideDelay, token, e.fadeOut)
}

func (e *Engine) fadeOut() {
	token := e.view.FadeToken

	schedule.Cancel(e.phaseTask)
	e.view.Phase = FadingOut
	e.phaseTask = e.after(e.timing.HideFade, token, func() {
		e.view.Phase = Hidden
		e.view.ControlsVisible = false
	})
}

// after schedules fn guarded by the fade token: a newer reveal makes it a no-op.
func (e *Engine) after(d time.Duration, token uint64, fn func()) schedule.Task {
	return e.sched.After(d, func() {
		if e.disposed || token != e.view.FadeToken {
			return
		}
		fn()
	})
}

// Dispose cancels every timer. The engine ignores all input afterwards.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}

	e.disposed = true
	for _, t := range []schedule.Task{e.pendingTap, e.hideTask, e.phaseTask, e.clusterTask, e.flashTask} {
		schedule.Cancel(t)
	}
	e.entry.Debugf("overlay disposed")
}

// Disposed reports whether Dispose was called.
func (e *Engine) Disposed() bool {
	return e.disposed
}
