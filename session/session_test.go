package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fastvideo-cli/fastvideo/constant"
	"github.com/fastvideo-cli/fastvideo/device"
	"github.com/fastvideo-cli/fastvideo/media"
	"github.com/fastvideo-cli/fastvideo/overlay"
	"github.com/fastvideo-cli/fastvideo/playback"
	"github.com/fastvideo-cli/fastvideo/schedule"
	"github.com/fastvideo-cli/fastvideo/watermark"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

type fakeSurface struct {
	opts     media.Options
	startErr error

	calls  []string
	labels map[int]media.Label
	sizes  map[int][2]float64

	wait chan struct{}
	once sync.Once
}

func newFakeSurface(opts media.Options) *fakeSurface {
	return &fakeSurface{
		opts:   opts,
		labels: make(map[int]media.Label),
		sizes:  make(map[int][2]float64),
		wait:   make(chan struct{}),
	}
}

func (f *fakeSurface) Start(context.Context) error { return f.startErr }
func (f *fakeSurface) Wait() <-chan struct{}       { return f.wait }
func (f *fakeSurface) Socket() string              { return "fake-" + f.opts.Surface.String() }

func (f *fakeSurface) Load(source string) error {
	f.calls = append(f.calls, "load "+source)
	return nil
}

func (f *fakeSurface) Pause() error {
	f.calls = append(f.calls, "pause")
	return nil
}

func (f *fakeSurface) Resume() error {
	f.calls = append(f.calls, "resume")
	return nil
}

func (f *fakeSurface) Seek(seconds float64) error {
	f.calls = append(f.calls, fmt.Sprintf("seek %g", seconds))
	return nil
}

func (f *fakeSurface) SetMute(bool) error { return nil }

func (f *fakeSurface) ShowLabel(id int, l media.Label, width, height float64) error {
	f.labels[id] = l
	f.sizes[id] = [2]float64{width, height}
	return nil
}

func (f *fakeSurface) ClearOverlay(id int) error {
	delete(f.labels, id)
	return nil
}

func (f *fakeSurface) Close() error {
	f.once.Do(func() { close(f.wait) })
	return nil
}

type fakeListener struct {
	origin  playback.Origin
	started bool
	stopped bool
}

func (l *fakeListener) Start() error { l.started = true; return nil }
func (l *fakeListener) Stop()        { l.stopped = true }

type harness struct {
	session   *Session
	surfaces  map[playback.Mode]*fakeSurface
	listeners map[playback.Mode]*fakeListener
	clock     *schedule.Manual
}

func newHarness(cfg Config, startErr error) *harness {
	h := &harness{
		surfaces:  make(map[playback.Mode]*fakeSurface),
		listeners: make(map[playback.Mode]*fakeListener),
		clock:     schedule.NewManual(time.Unix(0, 0)),
	}

	h.session = New(cfg, Deps{
		NewSurface: func(opts media.Options) Surface {
			s := newFakeSurface(opts)
			if opts.Surface == playback.Fullscreen {
				s.startErr = startErr
			}
			h.surfaces[opts.Surface] = s
			return s
		},
		NewListener: func(_ string, origin playback.Origin, _ media.Poster) Listener {
			l := &fakeListener{origin: origin}
			h.listeners[origin.Mode] = l
			return l
		},
		Orientation: &device.Noop{},
		Viewport:    device.NewStatic(800, 800),
		Scheduler:   h.clock,
	})
	return h
}

func testConfig() Config {
	return Config{
		Source: "clip.mp4",
		Title:  "clip.mp4",
		Watermark: Watermark{
			Text:     "fastvideo",
			Position: watermark.TopLeft,
			Offsets:  watermark.Offsets{Top: 10},
			Color:    "FFFFFF",
			FontSize: 20,
		},
		Decoration: "LIVE",
		Timing:     overlay.DefaultTiming(),
		Geometry:   "640x360",
	}
}

func TestSession(t *testing.T) {
	defer goleak.VerifyNone(t)

	Convey("Given a started session", t, func() {
		h := newHarness(testConfig(), nil)
		s := h.session
		So(s.Start(context.Background()), ShouldBeNil)
		defer s.Close()

		inline := h.surfaces[playback.Inline]
		fs := h.surfaces[playback.Fullscreen]

		Convey("Both surfaces are mounted and listened to", func() {
			So(h.listeners[playback.Inline].started, ShouldBeTrue)
			So(h.listeners[playback.Fullscreen].started, ShouldBeTrue)
			So(inline.calls, ShouldResemble, []string{"load clip.mp4", "resume"})
			So(fs.calls, ShouldBeEmpty)
			So(inline.opts.Geometry, ShouldEqual, "640x360")
		})

		Convey("Only the inline surface has an engine", func() {
			So(s.Engine(), ShouldNotBeNil)
			So(s.EngineFor(playback.Fullscreen), ShouldBeNil)
		})

		Convey("Watermark and decoration are drawn on both surfaces", func() {
			So(inline.labels[constant.OsdWatermarkID].Text, ShouldEqual, "fastvideo")
			So(inline.labels[constant.OsdDecorationID].Text, ShouldEqual, "LIVE")
			So(inline.sizes[constant.OsdWatermarkID], ShouldResemble, [2]float64{640, 360})
			So(inline.labels[constant.OsdWatermarkID].Anchor.Y, ShouldEqual, 10)
			So(fs.labels, ShouldContainKey, constant.OsdWatermarkID)
		})

		Convey("Entering fullscreen through the overlay", func() {
			So(s.Engine().Press(overlay.ButtonFullscreen), ShouldBeNil)
			So(s.Controller().Mode(), ShouldEqual, playback.Fullscreen)

			fsEngine := s.EngineFor(playback.Fullscreen)
			So(fsEngine, ShouldNotBeNil)
			So(s.Engine(), ShouldEqual, fsEngine)

			Convey("The fullscreen label follows the letterbox", func() {
				origin := h.listeners[playback.Fullscreen].origin
				So(s.Controller().Apply(playback.LoadEvent{
					Origin:   origin,
					Duration: 60,
					Natural:  watermark.NaturalSize{Width: 1920, Height: 1080},
				}), ShouldBeNil)

				So(s.Anchor(playback.Fullscreen).Y, ShouldEqual, 185)
				So(fs.labels[constant.OsdWatermarkID].Anchor.Y, ShouldEqual, 185)
				So(fs.sizes[constant.OsdWatermarkID], ShouldResemble, [2]float64{800, 800})
			})

			Convey("Exiting disposes the fullscreen engine", func() {
				h.clock.Advance(300 * time.Millisecond)
				So(fsEngine.Press(overlay.ButtonExitFullscreen), ShouldBeNil)
				So(s.Controller().Mode(), ShouldEqual, playback.Inline)
				So(fsEngine.Disposed(), ShouldBeTrue)
				So(s.EngineFor(playback.Fullscreen), ShouldBeNil)
			})
		})

		Convey("Closing stops everything", func() {
			So(s.Close(), ShouldBeNil)
			So(h.listeners[playback.Inline].stopped, ShouldBeTrue)
			So(h.clock.Pending(), ShouldEqual, 0)

			select {
			case <-s.Wait():
			case <-time.After(time.Second):
				t.Fatal("session did not report exit")
			}
		})
	})

	Convey("Given a session closed right after it started", t, func() {
		h := newHarness(testConfig(), nil)
		So(h.session.Start(context.Background()), ShouldBeNil)
		So(h.session.Close(), ShouldBeNil)

		select {
		case <-h.session.Wait():
		case <-time.After(time.Second):
			t.Fatal("session did not report exit")
		}

		for _, surface := range h.surfaces {
			select {
			case <-surface.Wait():
			default:
				t.Fatal("surface left running")
			}
		}
	})

	Convey("Given a session closed while its surfaces launch", t, func() {
		h := newHarness(testConfig(), nil)
		So(h.session.Close(), ShouldBeNil)

		err := h.session.Launch(context.Background())
		So(errors.Is(err, playback.ErrClosed), ShouldBeTrue)
		So(h.surfaces, ShouldHaveLength, 2)
		for _, surface := range h.surfaces {
			select {
			case <-surface.Wait():
			default:
				t.Fatal("surface left running")
			}
		}
	})

	Convey("Given surfaces that were never launched", t, func() {
		h := newHarness(testConfig(), nil)
		defer h.session.Close()

		So(errors.Is(h.session.Attach(), playback.ErrNotReady), ShouldBeTrue)
	})

	Convey("Given a surface that fails to start", t, func() {
		h := newHarness(testConfig(), errors.New("no mpv"))

		err := h.session.Start(context.Background())
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "no mpv")

		select {
		case <-h.surfaces[playback.Inline].Wait():
		default:
			t.Fatal("inline surface left running")
		}
	})
}

func TestParseGeometry(t *testing.T) {
	Convey("Given mpv geometry strings", t, func() {
		w, h, ok := ParseGeometry("1280x720+10+10")
		So(ok, ShouldBeTrue)
		So(w, ShouldEqual, 1280)
		So(h, ShouldEqual, 720)

		_, _, ok = ParseGeometry("50%")
		So(ok, ShouldBeFalse)

		_, _, ok = ParseGeometry("0x10")
		So(ok, ShouldBeFalse)
	})
}
