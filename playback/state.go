// Package playback owns the authoritative playback state and arbitrates
// transport commands between the inline and fullscreen media surfaces.
package playback

import (
	"fmt"
	"math"

	"github.com/fastvideo-cli/fastvideo/util"
	"github.com/samber/lo"
)

// Mode identifies a media surface.
type Mode int

const (
	Inline Mode = iota
	Fullscreen
)

func (m Mode) String() string {
	switch m {
	case Inline:
		return "inline"
	case Fullscreen:
		return "fullscreen"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Other returns the opposite surface.
func (m Mode) Other() Mode {
	if m == Inline {
		return Fullscreen
	}

	return Inline
}

// State is a snapshot of playback. Times are seconds; Duration 0 means unknown.
type State struct {
	Paused      bool
	Muted       bool
	CurrentTime float64
	Duration    float64
	Ended       bool
}

// Clamp bounds t to [0, Duration], or to [0, ∞) while the duration is unknown.
func (s State) Clamp(t float64) float64 {
	if math.IsNaN(t) {
		return 0
	}

	if s.Duration > 0 {
		return lo.Clamp(t, 0, s.Duration)
	}

	return math.Max(t, 0)
}

// Progress returns CurrentTime / Duration in [0, 1].
func (s State) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}

	return s.Clamp(s.CurrentTime) / s.Duration
}

func (s State) String() string {
	return fmt.Sprintf("%s / %s paused=%t muted=%t ended=%t",
		util.FormatTime(s.CurrentTime),
		util.FormatTime(s.Duration),
		s.Paused, s.Muted, s.Ended,
	)
}
