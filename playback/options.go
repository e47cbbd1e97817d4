package playback

import "github.com/samber/mo"

// Options configure a Controller.
type Options struct {
	// Source is the media locator loaded into every surface.
	Source string

	// ResumeOnExit resumes playback when leaving fullscreen even if the
	// user had paused. Off by default, which preserves the paused state.
	ResumeOnExit bool

	// AutoRotate locks landscape while fullscreen.
	AutoRotate bool

	// Muted is the initial mute flag.
	Muted bool

	Orientation Orientation
	Viewport    Viewport

	OnEnterFullscreen mo.Option[func()]
	OnExitFullscreen  mo.Option[func()]
}

type noOrientation struct{}

func (noOrientation) LockLandscape() error { return nil }
func (noOrientation) UnlockAll() error     { return nil }

type noViewport struct{}

func (noViewport) Size() (float64, float64) { return 0, 0 }
