package overlay

import "time"

// Timing holds every delay the engine uses.
type Timing struct {
	HideDelay       time.Duration
	RevealFade      time.Duration
	HideFade        time.Duration
	DoubleTapWindow time.Duration
	SeekFlash       time.Duration
	ClusterFlash    time.Duration
	IconFade        time.Duration

	// SeekStep is the double tap seek distance in seconds.
	SeekStep float64
}

// DefaultTiming returns the stock delays.
func DefaultTiming() Timing {
	return Timing{
		HideDelay:       3000 * time.Millisecond,
		RevealFade:      200 * time.Millisecond,
		HideFade:        400 * time.Millisecond,
		DoubleTapWindow: 300 * time.Millisecond,
		SeekFlash:       800 * time.Millisecond,
		ClusterFlash:    1000 * time.Millisecond,
		IconFade:        500 * time.Millisecond,
		SeekStep:        10,
	}
}
