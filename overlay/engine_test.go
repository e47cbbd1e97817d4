package overlay

import (
	"testing"
	"time"

	"github.com/fastvideo-cli/fastvideo/playback"
	"github.com/fastvideo-cli/fastvideo/schedule"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeTransport struct {
	state    playback.State
	seeks    []float64
	toggles  int
	mutes    int
	replays  int
	enters   int
	exits    int
	onChange func(prev, next playback.State)
}

func (f *fakeTransport) set(next playback.State) {
	prev := f.state
	f.state = next
	if f.onChange != nil {
		f.onChange(prev, next)
	}
}

func (f *fakeTransport) State() playback.State { return f.state }

func (f *fakeTransport) TogglePlay() error {
	f.toggles++
	next := f.state
	next.Paused = !next.Paused
	f.set(next)
	return nil
}

func (f *fakeTransport) Seek(t float64) error {
	next := f.state
	next.CurrentTime = f.state.Clamp(t)
	f.seeks = append(f.seeks, next.CurrentTime)
	f.set(next)
	return nil
}

func (f *fakeTransport) Replay() error {
	f.replays++
	next := f.state
	next.CurrentTime, next.Ended, next.Paused = 0, false, false
	f.set(next)
	return nil
}

func (f *fakeTransport) ToggleMute() error      { f.mutes++; return nil }
func (f *fakeTransport) EnterFullscreen() error { f.enters++; return nil }
func (f *fakeTransport) ExitFullscreen() error  { f.exits++; return nil }

func newEngine() (*Engine, *fakeTransport, *schedule.Manual) {
	m := schedule.NewManual(time.Unix(1_700_000_000, 0))
	tr := &fakeTransport{state: playback.State{Duration: 120, CurrentTime: 50}}
	e := New(playback.Inline, tr, m, DefaultTiming())
	tr.onChange = e.OnPlaybackChange
	return e, tr, m
}

func tap(m *schedule.Manual, zone Zone) Tap {
	return Tap{Zone: zone, At: m.Now().UnixMilli()}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func TestVisibility(t *testing.T) {
	Convey("Given a fresh engine", t, func() {
		e, _, m := newEngine()

		Convey("Controls reveal, stay, fade out and hide", func() {
			So(e.View().Phase, ShouldEqual, Revealing)
			So(e.View().ControlsVisible, ShouldBeTrue)

			m.Advance(ms(200))
			So(e.View().Phase, ShouldEqual, Visible)

			m.Advance(ms(2800))
			So(e.View().Phase, ShouldEqual, FadingOut)
			So(e.View().ControlsVisible, ShouldBeTrue)

			m.Advance(ms(400))
			So(e.View().Phase, ShouldEqual, Hidden)
			So(e.View().ControlsVisible, ShouldBeFalse)
		})

		Convey("A newer tap supersedes the pending hide timer", func() {
			m.Advance(ms(2900))
			before := e.View().FadeToken
			So(e.Tap(tap(m, Center)), ShouldBeNil)
			So(e.View().FadeToken, ShouldBeGreaterThan, before)

			m.Advance(ms(2999))
			So(e.View().Phase, ShouldEqual, Visible)

			m.Advance(ms(1))
			So(e.View().Phase, ShouldEqual, FadingOut)
		})

		Convey("A tap during the fade brings the controls back", func() {
			m.Advance(ms(3100))
			So(e.View().Phase, ShouldEqual, FadingOut)

			So(e.Tap(tap(m, Center)), ShouldBeNil)
			m.Advance(ms(400))
			So(e.View().Phase, ShouldEqual, Visible)
		})

		Convey("Fade tokens only grow", func() {
			var last uint64
			for i := 0; i < 5; i++ {
				So(e.Tap(tap(m, Zone(i%3))), ShouldBeNil)
				So(e.View().FadeToken, ShouldBeGreaterThan, last)
				last = e.View().FadeToken
				m.Advance(ms(450))
			}
		})
	})
}

func TestTaps(t *testing.T) {
	Convey("Given an engine at 50s of 120s", t, func() {
		e, tr, m := newEngine()

		Convey("Two quick taps seek once and flash no cluster", func() {
			So(e.Tap(tap(m, Left)), ShouldBeNil)
			m.Advance(ms(120))
			So(e.Tap(tap(m, Left)), ShouldBeNil)

			So(tr.seeks, ShouldResemble, []float64{40})
			So(e.View().SeekFlash.MustGet().Direction, ShouldEqual, Left)

			m.Advance(ms(1000))
			So(e.View().Cluster.IsAbsent(), ShouldBeTrue)
		})

		Convey("Double taps read the position fresh every time", func() {
			So(e.Tap(tap(m, Left)), ShouldBeNil)
			m.Advance(ms(100))
			So(e.Tap(tap(m, Left)), ShouldBeNil)
			m.Advance(ms(100))
			So(e.Tap(tap(m, Left)), ShouldBeNil)

			So(tr.seeks, ShouldResemble, []float64{40, 30})

			m.Advance(ms(2000))
			So(e.View().Cluster.IsAbsent(), ShouldBeTrue)
		})

		Convey("A tap after a seek pair but outside the window is a single tap", func() {
			So(e.Tap(tap(m, Left)), ShouldBeNil)
			m.Advance(ms(100))
			So(e.Tap(tap(m, Left)), ShouldBeNil)
			m.Advance(ms(300))
			So(e.Tap(tap(m, Left)), ShouldBeNil)

			So(tr.seeks, ShouldResemble, []float64{40})
			m.Advance(ms(300))
			So(e.View().Cluster.IsPresent(), ShouldBeTrue)
		})

		Convey("A right double tap seeks forward", func() {
			So(e.Tap(tap(m, Center)), ShouldBeNil)
			m.Advance(ms(299))
			So(e.Tap(tap(m, Right)), ShouldBeNil)
			So(tr.seeks, ShouldResemble, []float64{60})
		})

		Convey("Seeking back never goes below zero", func() {
			tr.state.CurrentTime = 4
			So(e.Tap(tap(m, Left)), ShouldBeNil)
			So(e.Tap(tap(m, Left)), ShouldBeNil)
			So(tr.seeks, ShouldResemble, []float64{0})
		})

		Convey("A center tap never forms a double tap", func() {
			So(e.Tap(tap(m, Left)), ShouldBeNil)
			m.Advance(ms(50))
			So(e.Tap(tap(m, Center)), ShouldBeNil)
			So(tr.seeks, ShouldBeEmpty)
		})

		Convey("The seek flash lasts 800ms and fades for 500ms", func() {
			So(e.Tap(tap(m, Right)), ShouldBeNil)
			So(e.Tap(tap(m, Right)), ShouldBeNil)

			m.Advance(ms(799))
			So(e.View().SeekFlash.MustGet().Fading, ShouldBeFalse)
			m.Advance(ms(1))
			So(e.View().SeekFlash.MustGet().Fading, ShouldBeTrue)
			m.Advance(ms(500))
			So(e.View().SeekFlash.IsAbsent(), ShouldBeTrue)
		})

		Convey("Spaced taps flash the cluster twice and never seek", func() {
			flashes := 0
			for i := 0; i < 2; i++ {
				So(e.Tap(tap(m, Left)), ShouldBeNil)
				So(e.View().Cluster.IsAbsent(), ShouldBeTrue)
				m.Advance(ms(300))
				if e.View().Cluster.IsPresent() {
					flashes++
				}
				m.Advance(ms(1500))
			}
			So(flashes, ShouldEqual, 2)
			So(tr.seeks, ShouldBeEmpty)
			So(tr.toggles, ShouldEqual, 0)
		})
	})
}

func TestCluster(t *testing.T) {
	Convey("Given an engine after a single tap", t, func() {
		e, tr, m := newEngine()

		So(e.TapIcon(IconPlayPause), ShouldEqual, ErrIconHidden)
		So(e.Tap(tap(m, Center)), ShouldBeNil)
		m.Advance(ms(300))

		cluster, ok := e.View().Cluster.Get()
		So(ok, ShouldBeTrue)
		So(cluster.Paused, ShouldBeFalse)

		Convey("The play icon toggles playback", func() {
			So(e.TapIcon(IconPlayPause), ShouldBeNil)
			So(tr.toggles, ShouldEqual, 1)
			So(e.View().Cluster.MustGet().Paused, ShouldBeTrue)
		})

		Convey("The seek icons step by ten seconds", func() {
			So(e.TapIcon(IconSeekBack), ShouldBeNil)
			So(e.TapIcon(IconSeekForward), ShouldBeNil)
			So(e.TapIcon(IconSeekForward), ShouldBeNil)
			So(tr.seeks, ShouldResemble, []float64{40, 50, 60})
		})

		Convey("The cluster fades after a second and then disappears", func() {
			m.Advance(ms(1000))
			So(e.View().Cluster.MustGet().Fading, ShouldBeTrue)
			So(e.TapIcon(IconSeekBack), ShouldBeNil)

			m.Advance(ms(500))
			So(e.View().Cluster.IsAbsent(), ShouldBeTrue)
			So(e.TapIcon(IconSeekBack), ShouldEqual, ErrIconHidden)
		})
	})
}

func TestEnded(t *testing.T) {
	Convey("Given playback that ended", t, func() {
		e, tr, m := newEngine()
		m.Advance(ms(5000))
		So(e.View().Phase, ShouldEqual, Hidden)

		tr.set(playback.State{Duration: 120, CurrentTime: 120, Paused: true, Ended: true})

		Convey("Controls come back and stay", func() {
			So(e.View().ControlsVisible, ShouldBeTrue)
			m.Advance(ms(60_000))
			So(e.View().Phase, ShouldEqual, Visible)
		})

		Convey("Taps neither seek nor flash the cluster", func() {
			So(e.Tap(tap(m, Left)), ShouldBeNil)
			So(e.Tap(tap(m, Left)), ShouldBeNil)
			m.Advance(ms(1000))
			So(tr.seeks, ShouldBeEmpty)
			So(e.View().Cluster.IsAbsent(), ShouldBeTrue)
		})

		Convey("Replay restarts and re-arms auto-hide", func() {
			So(e.TapReplay(), ShouldBeNil)
			So(tr.replays, ShouldEqual, 1)
			So(e.View().Ended, ShouldBeFalse)

			m.Advance(ms(3400))
			So(e.View().Phase, ShouldEqual, Hidden)
		})
	})
}

func TestSlider(t *testing.T) {
	Convey("Given a visible engine", t, func() {
		e, tr, m := newEngine()

		Convey("Scrubbing suspends auto-hide until release", func() {
			So(e.SlideStart(), ShouldBeTrue)
			So(e.View().ScrubValue, ShouldEqual, 50)

			m.Advance(ms(10_000))
			So(e.View().Phase, ShouldEqual, Visible)

			e.SlideMove(500)
			So(e.View().ScrubValue, ShouldEqual, 120)

			So(e.SlideEnd(75), ShouldBeNil)
			So(tr.seeks, ShouldResemble, []float64{75})
			So(e.View().Sliding, ShouldBeFalse)

			m.Advance(ms(3400))
			So(e.View().Phase, ShouldEqual, Hidden)
		})

		Convey("A hidden bar only reveals on slide start", func() {
			m.Advance(ms(3400))
			So(e.SlideStart(), ShouldBeFalse)
			So(e.View().Sliding, ShouldBeFalse)
			So(e.SlideEnd(10), ShouldBeNil)
			So(tr.seeks, ShouldBeEmpty)
		})
	})
}

func TestButtons(t *testing.T) {
	Convey("Given a hidden control bar", t, func() {
		e, tr, m := newEngine()
		m.Advance(ms(3400))

		Convey("The first press only reveals", func() {
			So(e.Press(ButtonPlayPause), ShouldBeNil)
			So(tr.toggles, ShouldEqual, 0)
			So(e.View().Phase, ShouldEqual, Revealing)

			Convey("Later presses act", func() {
				So(e.Press(ButtonPlayPause), ShouldBeNil)
				So(e.Press(ButtonMute), ShouldBeNil)
				So(e.Press(ButtonFullscreen), ShouldBeNil)
				So(e.Press(ButtonExitFullscreen), ShouldBeNil)
				So(tr.toggles, ShouldEqual, 1)
				So(tr.mutes, ShouldEqual, 1)
				So(tr.enters, ShouldEqual, 1)
				So(tr.exits, ShouldEqual, 1)
			})
		})

		Convey("A pause from elsewhere reveals the bar", func() {
			So(tr.TogglePlay(), ShouldBeNil)
			So(e.View().ControlsVisible, ShouldBeTrue)
			So(e.View().Paused, ShouldBeTrue)
		})
	})
}

func TestDispose(t *testing.T) {
	Convey("Given a disposed engine with armed timers", t, func() {
		e, tr, m := newEngine()
		So(e.Tap(tap(m, Left)), ShouldBeNil)
		So(m.Pending(), ShouldBeGreaterThan, 0)

		e.Dispose()

		Convey("No timer remains and input is ignored", func() {
			So(m.Pending(), ShouldEqual, 0)
			So(e.Tap(tap(m, Left)), ShouldBeNil)
			So(e.Press(ButtonPlayPause), ShouldBeNil)
			So(tr.seeks, ShouldBeEmpty)
			So(tr.toggles, ShouldEqual, 0)

			view := e.View()
			m.Advance(ms(10_000))
			So(e.View(), ShouldResemble, view)
			So(e.Disposed(), ShouldBeTrue)
		})

		Convey("Disposing twice is harmless", func() {
			So(e.Dispose, ShouldNotPanic)
		})
	})
}
