package playback

import "errors"

var (
	// ErrNotReady is returned when the target surface has no mounted handle.
	// The command is queued and replayed once that surface mounts.
	ErrNotReady = errors.New("media surface not ready")

	// ErrStaleEvent is returned for events from an inactive or disposed handle.
	ErrStaleEvent = errors.New("stale media event")

	// ErrClosed is returned by every command after Close.
	ErrClosed = errors.New("controller closed")
)

// Handle is a mounted media surface.
// Load must leave the surface paused; the controller resumes it explicitly.
type Handle interface {
	Load(source string) error
	Pause() error
	Resume() error
	Seek(seconds float64) error
	SetMute(muted bool) error
}

// Presenter is implemented by handles that can show or hide their surface.
type Presenter interface {
	Present(visible bool) error
}

// Orientation locks the display orientation while fullscreen.
type Orientation interface {
	LockLandscape() error
	UnlockAll() error
}

// Viewport reports the current display size.
type Viewport interface {
	Size() (width, height float64)
}
