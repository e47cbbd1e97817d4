// Package device provides the orientation and viewport collaborators of the
// playback controller on a desktop host.
package device

import (
	"sync"

	"github.com/fastvideo-cli/fastvideo/log"
	"github.com/fastvideo-cli/fastvideo/util"
)

// Noop is an orientation service for hosts that cannot rotate.
// It only remembers whether landscape was requested.
type Noop struct {
	mu     sync.Mutex
	locked bool
}

func (n *Noop) LockLandscape() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.locked = true
	log.Debugf("orientation: landscape requested")
	return nil
}

func (n *Noop) UnlockAll() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.locked = false
	log.Debugf("orientation: unlocked")
	return nil
}

// Locked reports whether landscape is currently requested.
func (n *Noop) Locked() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.locked
}

// Static is a fixed viewport size, updated explicitly with Set.
type Static struct {
	mu            sync.RWMutex
	width, height float64
}

// NewStatic returns a viewport of the given size.
func NewStatic(width, height float64) *Static {
	return &Static{width: width, height: height}
}

func (s *Static) Size() (float64, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// Set replaces the size. It reports whether the size changed.
func (s *Static) Set(width, height float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.width == width && s.height == height {
		return false
	}

	s.width, s.height = width, height
	return true
}

// Terminal measures the controlling terminal in cells, scaled to pixels
// with an assumed cell size. It is used until mpv reports its OSD size.
type Terminal struct {
	CellWidth, CellHeight float64
	Fallback              *Static
}

// NewTerminal returns a terminal viewport with 8x16 cells and a 1280x720 fallback.
func NewTerminal() *Terminal {
	return &Terminal{
		CellWidth:  8,
		CellHeight: 16,
		Fallback:   NewStatic(1280, 720),
	}
}

func (t *Terminal) Size() (float64, float64) {
	cols, rows, err := util.TerminalSize()
	if err != nil || cols <= 0 || rows <= 0 {
		return t.Fallback.Size()
	}

	return float64(cols) * t.CellWidth, float64(rows) * t.CellHeight
}
