package media

import (
	"testing"
	"time"

	"github.com/fastvideo-cli/fastvideo/playback"
	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

func collect(ch chan playback.Event, n int) []playback.Event {
	var events []playback.Event
	timeout := time.After(2 * time.Second)
	for len(events) < n {
		select {
		case ev := <-ch:
			events = append(events, ev)
		case <-timeout:
			return events
		}
	}
	return events
}

func TestListener(t *testing.T) {
	defer goleak.VerifyNone(t)

	Convey("Given a listener on a fullscreen surface", t, func() {
		server := newFakeMPV(t)
		defer server.close()

		origin := playback.Origin{Mode: playback.Fullscreen, Handle: uuid.New()}
		events := make(chan playback.Event, 32)
		l := NewListener(server.path, origin, func(ev playback.Event) bool {
			events <- ev
			return true
		})

		So(l.Start(), ShouldBeNil)
		defer l.Stop()

		// observers are registered on the listener's own connection
		So(collectCommands(server, len(observed)), ShouldHaveLength, len(observed))

		Convey("A load is reported once metadata is complete", func() {
			server.push(`{"event":"property-change","id":2,"name":"duration","data":120.5}`)
			server.push(`{"event":"file-loaded"}`)
			server.push(`{"event":"property-change","id":4,"name":"dwidth","data":1920}`)
			server.push(`{"event":"property-change","id":5,"name":"dheight","data":1080}`)

			got := collect(events, 1)
			So(got, ShouldHaveLength, 1)
			load := got[0].(playback.LoadEvent)
			So(load.Origin, ShouldResemble, origin)
			So(load.Duration, ShouldEqual, 120.5)
			So(load.Natural.Width, ShouldEqual, 1920)
			So(load.Natural.Height, ShouldEqual, 1080)
		})

		Convey("Progress is throttled", func() {
			for _, line := range []string{
				`{"event":"property-change","name":"time-pos","data":1.0}`,
				`{"event":"property-change","name":"time-pos","data":1.1}`,
				`{"event":"property-change","name":"time-pos","data":1.3}`,
				`{"event":"property-change","name":"time-pos","data":0.2}`,
			} {
				server.push(line)
			}

			got := collect(events, 3)
			So(got, ShouldHaveLength, 3)
			So(got[0].(playback.ProgressEvent).CurrentTime, ShouldEqual, 1.0)
			So(got[1].(playback.ProgressEvent).CurrentTime, ShouldEqual, 1.3)
			So(got[2].(playback.ProgressEvent).CurrentTime, ShouldEqual, 0.2)
		})

		Convey("End of file and display size are forwarded", func() {
			server.push(`{"event":"property-change","name":"eof-reached","data":false}`)
			server.push(`{"event":"property-change","name":"eof-reached","data":true}`)
			server.push(`{"event":"property-change","name":"osd-dimensions","data":{"w":1920,"h":1080}}`)

			got := collect(events, 2)
			So(got, ShouldHaveLength, 2)
			So(got[0], ShouldHaveSameTypeAs, playback.EndEvent{})
			So(got[1], ShouldResemble, playback.ViewportEvent{Width: 1920, Height: 1080})
		})
	})
}

func collectCommands(server *fakeMPV, n int) []any {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cmds := server.recorded(); len(cmds) >= n {
			return cmds
		}
		time.Sleep(10 * time.Millisecond)
	}
	return server.recorded()
}
