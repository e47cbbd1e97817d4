package overlay

import (
	"fmt"

	"github.com/samber/mo"
)

// Phase is the visibility phase of the control bar.
type Phase int

const (
	Hidden Phase = iota
	Revealing
	Visible
	FadingOut
)

func (p Phase) String() string {
	switch p {
	case Hidden:
		return "hidden"
	case Revealing:
		return "revealing"
	case Visible:
		return "visible"
	case FadingOut:
		return "fading-out"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Zone is a region of the surface that accepts taps.
type Zone int

const (
	Center Zone = iota
	Left
	Right
)

func (z Zone) String() string {
	switch z {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "center"
	}
}

// Side reports whether taps in the zone can form a double tap.
func (z Zone) Side() bool {
	return z == Left || z == Right
}

// Tap is a single tap. At is a timestamp in milliseconds.
type Tap struct {
	Zone Zone
	At   int64
}

// ClusterIcon is one of the three big icons shown after a single tap.
type ClusterIcon int

const (
	IconSeekBack ClusterIcon = iota
	IconPlayPause
	IconSeekForward
)

func (i ClusterIcon) String() string {
	switch i {
	case IconSeekBack:
		return "seek-back"
	case IconPlayPause:
		return "play-pause"
	default:
		return "seek-forward"
	}
}

// Button is a control bar button.
type Button int

const (
	ButtonPlayPause Button = iota
	ButtonMute
	ButtonFullscreen
	ButtonExitFullscreen
)

func (b Button) String() string {
	switch b {
	case ButtonPlayPause:
		return "play-pause"
	case ButtonMute:
		return "mute"
	case ButtonFullscreen:
		return "fullscreen"
	case ButtonExitFullscreen:
		return "exit-fullscreen"
	default:
		return fmt.Sprintf("Button(%d)", int(b))
	}
}

// Cluster is the three-icon cluster. Paused selects the play glyph over
// the pause glyph for the middle icon.
type Cluster struct {
	Paused bool
	Fading bool
}

// SeekFlash is the directional icon shown after a double tap.
type SeekFlash struct {
	Direction Zone
	Fading    bool
}

// View is what the renderer draws for one surface.
type View struct {
	Phase           Phase
	ControlsVisible bool
	FadeToken       uint64

	Cluster   mo.Option[Cluster]
	SeekFlash mo.Option[SeekFlash]

	Sliding    bool
	ScrubValue float64

	Paused bool
	Ended  bool
}

// Interactive reports whether bar buttons act on press.
func (v View) Interactive() bool {
	return v.Phase != Hidden
}
