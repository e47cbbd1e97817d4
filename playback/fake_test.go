package playback

import (
	"fmt"

	"github.com/fastvideo-cli/fastvideo/watermark"
	"github.com/google/uuid"
)

type fakeHandle struct {
	calls   []string
	muted   bool
	paused  bool
	fail    error
	visible bool
}

func (f *fakeHandle) record(call string) error {
	f.calls = append(f.calls, call)
	return f.fail
}

func (f *fakeHandle) Load(source string) error {
	f.paused = true
	return f.record("load " + source)
}

func (f *fakeHandle) Pause() error {
	f.paused = true
	return f.record("pause")
}

func (f *fakeHandle) Resume() error {
	f.paused = false
	return f.record("resume")
}

func (f *fakeHandle) Seek(seconds float64) error {
	return f.record(fmt.Sprintf("seek %g", seconds))
}

func (f *fakeHandle) SetMute(muted bool) error {
	f.muted = muted
	return f.record(fmt.Sprintf("mute %t", muted))
}

func (f *fakeHandle) Present(visible bool) error {
	f.visible = visible
	return f.record(fmt.Sprintf("present %t", visible))
}

func (f *fakeHandle) reset() {
	f.calls = nil
}

type fakeOrientation struct {
	locked bool
	calls  int
}

func (o *fakeOrientation) LockLandscape() error {
	o.locked = true
	o.calls++
	return nil
}

func (o *fakeOrientation) UnlockAll() error {
	o.locked = false
	o.calls++
	return nil
}

type fakeViewport struct {
	width, height float64
}

func (v *fakeViewport) Size() (float64, float64) {
	return v.width, v.height
}

func loaded(mode Mode, id uuid.UUID, duration, w, h float64) LoadEvent {
	return LoadEvent{
		Origin:   Origin{Mode: mode, Handle: id},
		Duration: duration,
		Natural:  watermark.NaturalSize{Width: w, Height: h},
	}
}

func progress(mode Mode, id uuid.UUID, t float64) ProgressEvent {
	return ProgressEvent{Origin: Origin{Mode: mode, Handle: id}, CurrentTime: t}
}
