package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fastvideo-cli/fastvideo/device"
	"github.com/fastvideo-cli/fastvideo/media"
	"github.com/fastvideo-cli/fastvideo/overlay"
	"github.com/fastvideo-cli/fastvideo/playback"
	"github.com/fastvideo-cli/fastvideo/schedule"
	"github.com/fastvideo-cli/fastvideo/session"
	"github.com/fastvideo-cli/fastvideo/watermark"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

type fakeSurface struct {
	mode     playback.Mode
	startErr error
	calls    []string
	wait     chan struct{}
	closed   bool
}

func (f *fakeSurface) Start(context.Context) error { return f.startErr }
func (f *fakeSurface) Wait() <-chan struct{}       { return f.wait }
func (f *fakeSurface) Socket() string              { return "fake-" + f.mode.String() }

func (f *fakeSurface) record(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return nil
}

func (f *fakeSurface) Load(source string) error    { return f.record("load %s", source) }
func (f *fakeSurface) Pause() error                { return f.record("pause") }
func (f *fakeSurface) Resume() error               { return f.record("resume") }
func (f *fakeSurface) Seek(seconds float64) error  { return f.record("seek %g", seconds) }
func (f *fakeSurface) SetMute(muted bool) error    { return f.record("mute %t", muted) }
func (f *fakeSurface) ClearOverlay(int) error      { return nil }
func (f *fakeSurface) ShowLabel(int, media.Label, float64, float64) error { return nil }

func (f *fakeSurface) Close() error {
	if !f.closed {
		f.closed = true
		close(f.wait)
	}
	return nil
}

type fakeListener struct{}

func (fakeListener) Start() error { return nil }
func (fakeListener) Stop()        {}

type harness struct {
	bubble   *playerBubble
	clock    *schedule.Manual
	surfaces map[playback.Mode]*fakeSurface
	origins  map[playback.Mode]playback.Origin
}

func newHarness(startErr error) *harness {
	h := &harness{
		clock:    schedule.NewManual(time.Unix(1000, 0)),
		surfaces: make(map[playback.Mode]*fakeSurface),
		origins:  make(map[playback.Mode]playback.Origin),
	}

	s := session.New(session.Config{
		Source: "clip.mp4",
		Title:  "clip.mp4",
		Watermark: session.Watermark{
			Text:     "fastvideo-mark",
			Position: watermark.TopLeft,
			Offsets:  watermark.Offsets{Top: 10, Left: 10},
		},
		Decoration: "LIVE",
		Timing:     overlay.DefaultTiming(),
		Geometry:   "640x360",
	}, session.Deps{
		NewSurface: func(opts media.Options) session.Surface {
			f := &fakeSurface{mode: opts.Surface, wait: make(chan struct{})}
			if opts.Surface == playback.Fullscreen {
				f.startErr = startErr
			}
			h.surfaces[opts.Surface] = f
			return f
		},
		NewListener: func(_ string, origin playback.Origin, _ media.Poster) session.Listener {
			h.origins[origin.Mode] = origin
			return fakeListener{}
		},
		Orientation: &device.Noop{},
		Viewport:    device.NewStatic(800, 800),
		Scheduler:   h.clock,
	})

	h.bubble = newBubble(context.Background(), s)
	h.bubble.now = h.clock.Now
	h.bubble.resize(80, 24)
	return h
}

// start runs the start command synchronously instead of through a program.
func (h *harness) start() {
	h.bubble.Update(h.bubble.startSession()())
}

func (h *harness) load(duration, current float64) {
	c := h.bubble.controller()
	origin := h.origins[playback.Inline]
	So(c.Apply(playback.LoadEvent{Origin: origin, Duration: duration, Natural: watermark.NaturalSize{Width: 1920, Height: 1080}}), ShouldBeNil)
	So(c.Apply(playback.ProgressEvent{Origin: origin, CurrentTime: current}), ShouldBeNil)
}

func (h *harness) key(k tea.KeyMsg) {
	h.bubble.Update(k)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (h *harness) click(x, y int) {
	h.bubble.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
}

func TestPlayerBubble(t *testing.T) {
	defer goleak.VerifyNone(t)

	Convey("Given a started player", t, func() {
		h := newHarness(nil)
		h.start()
		b := h.bubble
		defer b.session.Close()

		So(b.state, ShouldEqual, playingState)
		h.load(120, 50)

		Convey("Space toggles playback", func() {
			h.key(tea.KeyMsg{Type: tea.KeySpace})
			So(b.controller().State().Paused, ShouldBeTrue)
			So(h.surfaces[playback.Inline].calls, ShouldContain, "pause")

			h.key(tea.KeyMsg{Type: tea.KeySpace})
			So(b.controller().State().Paused, ShouldBeFalse)
		})

		Convey("Quick left taps keep seeking back", func() {
			h.key(tea.KeyMsg{Type: tea.KeyLeft})
			h.clock.Advance(100 * time.Millisecond)
			h.key(tea.KeyMsg{Type: tea.KeyLeft})
			So(b.controller().State().CurrentTime, ShouldEqual, 40)
			So(b.engine().View().SeekFlash.IsPresent(), ShouldBeTrue)

			h.clock.Advance(100 * time.Millisecond)
			h.key(tea.KeyMsg{Type: tea.KeyLeft})
			So(b.controller().State().CurrentTime, ShouldEqual, 30)
		})

		Convey("A click on the surface is a tap on its half", func() {
			g := b.geometry()
			h.click(g.preview.x+g.preview.w-2, g.preview.y)
			So(b.engine().View().Cluster.IsPresent(), ShouldBeFalse)

			h.clock.Advance(300 * time.Millisecond)
			So(b.engine().View().Cluster.IsPresent(), ShouldBeTrue)

			Convey("and the cluster icons act while shown", func() {
				h.click(g.preview.x+g.preview.w-2, g.preview.middle())
				So(b.controller().State().CurrentTime, ShouldEqual, 60)

				h.click(g.preview.x+1, g.preview.middle())
				So(b.controller().State().CurrentTime, ShouldEqual, 50)
			})
		})

		Convey("Cluster keys without a cluster only tap", func() {
			h.key(runes("3"))
			So(b.controller().State().CurrentTime, ShouldEqual, 50)

			h.clock.Advance(300 * time.Millisecond)
			h.key(runes("3"))
			So(b.controller().State().CurrentTime, ShouldEqual, 60)
		})

		Convey("Dragging the scrub bar seeks on release", func() {
			g := b.geometry()
			bar := spans(b.barSegments(g))[targetProgress]

			h.click(bar.from, g.bar)
			So(b.dragging, ShouldBeTrue)
			So(b.engine().View().Sliding, ShouldBeTrue)

			b.Update(tea.MouseMsg{X: bar.to - 1, Y: g.bar, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
			So(b.engine().View().ScrubValue, ShouldEqual, 120)
			So(b.controller().State().CurrentTime, ShouldEqual, 50)

			b.Update(tea.MouseMsg{X: bar.to - 1, Y: g.bar, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
			So(b.dragging, ShouldBeFalse)
			So(b.controller().State().CurrentTime, ShouldEqual, 120)
		})

		Convey("Fullscreen and back", func() {
			h.key(runes("f"))
			So(b.fullscreen(), ShouldBeTrue)
			So(b.keymap.full, ShouldBeTrue)
			So(h.surfaces[playback.Fullscreen].calls, ShouldContain, "load clip.mp4")

			h.key(tea.KeyMsg{Type: tea.KeyEsc})
			So(b.fullscreen(), ShouldBeFalse)
			So(b.keymap.full, ShouldBeFalse)
		})

		Convey("The mute key flips mute", func() {
			h.key(runes("m"))
			So(b.controller().State().Muted, ShouldBeTrue)
		})

		Convey("Scheduler callbacks run on the loop", func() {
			called := false
			b.Update(runMsg(func() { called = true }))
			So(called, ShouldBeTrue)
		})

		Convey("Surface events are applied", func() {
			origin := h.origins[playback.Inline]
			_, cmd := b.Update(eventMsg{event: playback.EndEvent{Origin: origin}})
			So(cmd, ShouldNotBeNil)
			So(b.controller().State().Ended, ShouldBeTrue)

			Convey("and r replays", func() {
				h.key(runes("r"))
				So(b.controller().State().Ended, ShouldBeFalse)
				So(b.controller().State().CurrentTime, ShouldEqual, 0)
			})
		})

		Convey("A closed surface quits", func() {
			_, cmd := b.Update(exitedMsg{})
			So(cmd(), ShouldResemble, tea.QuitMsg{})
		})

		Convey("The view shows the surface and the bar", func() {
			b.showPreview = true
			out := b.View()
			So(out, ShouldContainSubstring, "fastvideo-mark")
			So(out, ShouldContainSubstring, "LIVE")
			So(out, ShouldContainSubstring, "0:50")
			So(out, ShouldContainSubstring, "2:00")
		})

		Convey("The bar disappears once hidden", func() {
			h.clock.Advance(5 * time.Second)
			So(b.engine().View().Phase, ShouldEqual, overlay.Hidden)
			So(b.View(), ShouldNotContainSubstring, "2:00")

			Convey("and a click on it only reveals", func() {
				h.click(0, b.geometry().bar)
				So(b.controller().State().Paused, ShouldBeFalse)
				So(b.engine().View().Phase, ShouldEqual, overlay.Revealing)
			})
		})
	})

	Convey("Given a player quit while its surfaces launch", t, func() {
		h := newHarness(nil)
		launch := h.bubble.startSession()
		So(h.bubble.session.Close(), ShouldBeNil)

		h.bubble.Update(launch())
		So(h.bubble.state, ShouldEqual, errorState)
		So(errors.Is(h.bubble.lastError, playback.ErrClosed), ShouldBeTrue)
		So(h.bubble.engine(), ShouldBeNil)
	})

	Convey("Given a player whose surfaces fail", t, func() {
		h := newHarness(errors.New("mpv is missing"))
		h.start()
		defer h.bubble.session.Close()

		So(h.bubble.state, ShouldEqual, errorState)
		So(h.bubble.View(), ShouldContainSubstring, "mpv is missing")

		_, cmd := h.bubble.Update(runes("q"))
		So(cmd(), ShouldResemble, tea.QuitMsg{})
	})
}

func TestPlaceLabel(t *testing.T) {
	Convey("Given a label anchored bottom right", t, func() {
		l := media.Label{
			Text:   "mark",
			Anchor: watermark.Anchor{Vertical: watermark.EdgeBottom, Horizontal: watermark.EdgeRight, Y: 36, X: 64},
		}

		row, m := placeLabel(l, 640, 360, 40, 10)
		So(row, ShouldEqual, 8)
		So(m.indent, ShouldEqual, 4)

		line := renderRow([]mark{m}, 40)
		So(line, ShouldEndWith, "mark    ")
	})

	Convey("Rows are always the full width", t, func() {
		line := renderRow([]mark{{text: "left", pos: 0}, {text: "mid", pos: 0.5}}, 20)
		So(len([]rune(line)), ShouldEqual, 20)
	})
}
