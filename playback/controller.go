package playback

import (
	"errors"
	"fmt"

	"github.com/fastvideo-cli/fastvideo/log"
	"github.com/fastvideo-cli/fastvideo/watermark"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const inboxSize = 64

// Layout is the fullscreen geometry derived from the natural video size and
// the viewport.
type Layout struct {
	Mode           Mode
	Natural        watermark.NaturalSize
	ViewportWidth  float64
	ViewportHeight float64
	Landscape      bool
	Letterbox      watermark.Rect
}

type surface struct {
	id     uuid.UUID
	handle Handle
	loaded bool
}

// Controller is the single writer of playback State.
//
// Every method except Post, Inbox and Done must be called from the owning
// event loop. Media listeners running elsewhere hand events over with Post.
type Controller struct {
	opts Options

	state State
	mode  Mode

	surfaces [2]*surface
	pending  [2][]func() error

	// syncOnLoad is set while the fullscreen surface loads for the first time.
	syncOnLoad bool

	natural    watermark.NaturalSize
	viewportW  float64
	viewportH  float64
	letterbox  watermark.Rect
	stateSubs  subscribers[func(prev, next State)]
	modeSubs   subscribers[func(from, to Mode)]
	layoutSubs subscribers[func(Layout)]

	inbox  chan Event
	done   chan struct{}
	closed bool
}

// New returns a Controller in Inline mode with no surfaces mounted.
func New(opts Options) *Controller {
	if opts.Orientation == nil {
		opts.Orientation = noOrientation{}
	}

	if opts.Viewport == nil {
		opts.Viewport = noViewport{}
	}

	c := &Controller{
		opts:  opts,
		mode:  Inline,
		inbox: make(chan Event, inboxSize),
		done:  make(chan struct{}),
	}
	c.state.Muted = opts.Muted
	c.viewportW, c.viewportH = opts.Viewport.Size()
	return c
}

func (c *Controller) logger() log.Entry {
	return log.With(log.Fields{"mode": c.mode.String()})
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Mode returns the active surface.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Letterbox returns the last computed fullscreen rectangle.
func (c *Controller) Letterbox() watermark.Rect {
	return c.letterbox
}

// NaturalSize returns the natural video size, zero until media has loaded.
func (c *Controller) NaturalSize() watermark.NaturalSize {
	return c.natural
}

// Layout returns the current fullscreen geometry.
func (c *Controller) Layout() Layout {
	return Layout{
		Mode:           c.mode,
		Natural:        c.natural,
		ViewportWidth:  c.viewportW,
		ViewportHeight: c.viewportH,
		Landscape:      c.landscape(),
		Letterbox:      c.letterbox,
	}
}

// Subscribe registers fn for every state change. It returns an unsubscribe func.
func (c *Controller) Subscribe(fn func(prev, next State)) func() {
	return c.stateSubs.add(fn)
}

// SubscribeMode registers fn for surface switches.
func (c *Controller) SubscribeMode(fn func(from, to Mode)) func() {
	return c.modeSubs.add(fn)
}

// SubscribeLayout registers fn for natural size, viewport and letterbox changes.
func (c *Controller) SubscribeLayout(fn func(Layout)) func() {
	return c.layoutSubs.add(fn)
}

// Mount registers h as the handle of the given surface and returns its
// identity. Events must carry this identity to be applied. Mounting the
// inline surface loads the source into it. Commands that failed with
// ErrNotReady for this surface are replayed.
func (c *Controller) Mount(mode Mode, h Handle) uuid.UUID {
	s := &surface{id: uuid.New(), handle: h}
	c.surfaces[mode] = s

	entry := log.With(log.Fields{"surface": mode.String(), "handle": s.id.String()})
	entry.Debugf("mounted")

	if err := h.SetMute(c.state.Muted); err != nil {
		entry.Warnf("sync mute: %s", err)
	}

	if mode == Inline && c.opts.Source != "" {
		if err := h.Load(c.opts.Source); err != nil {
			entry.Errorf("load: %s", err)
		} else if mode == c.mode && !c.state.Paused {
			c.warn(h.Resume(), "resume")
		}
	}

	queued := c.pending[mode]
	c.pending[mode] = nil
	for _, cmd := range queued {
		if err := cmd(); err != nil {
			entry.Warnf("replay queued command: %s", err)
		}
	}

	return s.id
}

// Unmount forgets the handle of a surface. Later events from it are stale.
func (c *Controller) Unmount(mode Mode) {
	if c.surfaces[mode] == nil {
		return
	}

	log.With(log.Fields{"surface": mode.String()}).Debugf("unmounted")
	c.surfaces[mode] = nil
	if mode == Fullscreen {
		c.syncOnLoad = false
	}
}

func (c *Controller) surface(mode Mode, retry func() error) (*surface, error) {
	if c.closed {
		return nil, ErrClosed
	}

	s := c.surfaces[mode]
	if s == nil {
		if retry != nil {
			c.pending[mode] = append(c.pending[mode], retry)
		}
		c.logger().Debugf("%s surface not mounted, command queued", mode)
		return nil, ErrNotReady
	}

	return s, nil
}

// TogglePlay resumes a paused surface or pauses a playing one.
func (c *Controller) TogglePlay() error {
	s, err := c.surface(c.mode, c.TogglePlay)
	if err != nil {
		return err
	}

	next := c.state
	if c.state.Paused {
		err = s.handle.Resume()
	} else {
		err = s.handle.Pause()
	}
	if err != nil {
		return fmt.Errorf("toggle play: %w", err)
	}

	next.Paused = !next.Paused
	c.commit(next)
	return nil
}

// Seek moves the active surface to t, clamped to the known duration.
// The state is updated before the handle confirms.
func (c *Controller) Seek(t float64) error {
	s, err := c.surface(c.mode, func() error { return c.Seek(t) })
	if err != nil {
		return err
	}

	next := c.state
	next.CurrentTime = c.state.Clamp(t)
	c.commit(next)

	if err := s.handle.Seek(next.CurrentTime); err != nil {
		return fmt.Errorf("seek to %.2f: %w", next.CurrentTime, err)
	}

	return nil
}

// SeekBy seeks relative to the current position.
func (c *Controller) SeekBy(delta float64) error {
	return c.Seek(c.state.CurrentTime + delta)
}

// Replay restarts the active surface from the beginning.
func (c *Controller) Replay() error {
	s, err := c.surface(c.mode, c.Replay)
	if err != nil {
		return err
	}

	next := c.state
	next.CurrentTime = 0
	next.Ended = false
	next.Paused = false
	c.commit(next)

	if err := s.handle.Seek(0); err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	if err := s.handle.Resume(); err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	return nil
}

// ToggleMute flips the mute flag and pushes it to every mounted surface,
// so the inactive one resumes with the same setting.
func (c *Controller) ToggleMute() error {
	if c.closed {
		return ErrClosed
	}

	next := c.state
	next.Muted = !next.Muted
	c.commit(next)

	var errs []error
	for _, s := range c.surfaces {
		if s == nil {
			continue
		}
		if err := s.handle.SetMute(next.Muted); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// EnterFullscreen pauses the inline surface and makes the fullscreen surface
// active. A fullscreen surface that never loaded is loaded now and synced on
// its load event; otherwise it is synced immediately.
func (c *Controller) EnterFullscreen() error {
	if c.mode == Fullscreen && !c.closed {
		return nil
	}

	fs, err := c.surface(Fullscreen, c.EnterFullscreen)
	if err != nil {
		return err
	}

	if inline := c.surfaces[Inline]; inline != nil {
		c.warn(inline.handle.Pause(), "pause inline")
	}

	if c.opts.AutoRotate {
		c.warn(c.opts.Orientation.LockLandscape(), "lock landscape")
		c.viewportW, c.viewportH = c.opts.Viewport.Size()
	}

	c.switchMode(Fullscreen)
	c.present(fs, true)

	if fn, ok := c.opts.OnEnterFullscreen.Get(); ok {
		fn()
	}

	if !fs.loaded {
		c.syncOnLoad = true
		if err := fs.handle.Load(c.opts.Source); err != nil {
			c.syncOnLoad = false
			return fmt.Errorf("load fullscreen: %w", err)
		}
		return nil
	}

	return c.syncFullscreen(fs)
}

func (c *Controller) syncFullscreen(fs *surface) error {
	c.syncOnLoad = false
	c.relayout()

	if err := fs.handle.Seek(c.state.CurrentTime); err != nil {
		return fmt.Errorf("sync fullscreen: %w", err)
	}

	if c.state.Paused {
		return nil
	}

	if err := fs.handle.Resume(); err != nil {
		return fmt.Errorf("sync fullscreen: %w", err)
	}

	return nil
}

// ExitFullscreen releases the orientation lock and makes the inline surface
// active at the current position. Playback resumes only if it was playing,
// unless Options.ResumeOnExit is set.
func (c *Controller) ExitFullscreen() error {
	if c.closed {
		return ErrClosed
	}

	if c.mode != Fullscreen {
		return nil
	}

	if c.opts.AutoRotate {
		c.warn(c.opts.Orientation.UnlockAll(), "unlock orientation")
		c.viewportW, c.viewportH = c.opts.Viewport.Size()
	}

	c.syncOnLoad = false
	if fs := c.surfaces[Fullscreen]; fs != nil {
		c.warn(fs.handle.Pause(), "pause fullscreen")
		c.present(fs, false)
	}

	c.switchMode(Inline)

	if fn, ok := c.opts.OnExitFullscreen.Get(); ok {
		fn()
	}

	if c.opts.ResumeOnExit && !c.state.Ended {
		next := c.state
		next.Paused = false
		c.commit(next)
	}

	return c.resumeInline()
}

func (c *Controller) resumeInline() error {
	inline, err := c.surface(Inline, c.resumeInline)
	if err != nil {
		return err
	}

	if err := inline.handle.Seek(c.state.CurrentTime); err != nil {
		return fmt.Errorf("sync inline: %w", err)
	}

	if c.state.Paused {
		return nil
	}

	if err := inline.handle.Resume(); err != nil {
		return fmt.Errorf("sync inline: %w", err)
	}

	return nil
}

// Resize records a new viewport size and recomputes the letterbox.
func (c *Controller) Resize(width, height float64) {
	if width == c.viewportW && height == c.viewportH {
		return
	}

	c.viewportW, c.viewportH = width, height
	c.relayout()
}

func (c *Controller) landscape() bool {
	return c.viewportW > c.viewportH
}

func (c *Controller) relayout() {
	c.letterbox = watermark.Letterbox(c.natural, c.viewportW, c.viewportH, c.landscape())

	layout := c.Layout()
	c.layoutSubs.each(func(fn func(Layout)) {
		fn(layout)
	})
}

func (c *Controller) switchMode(to Mode) {
	from := c.mode
	c.mode = to
	c.logger().Infof("switched from %s", from)

	c.modeSubs.each(func(fn func(from, to Mode)) {
		fn(from, to)
	})
}

func (c *Controller) present(s *surface, visible bool) {
	if p, ok := s.handle.(Presenter); ok {
		c.warn(p.Present(visible), "present")
	}
}

func (c *Controller) commit(next State) {
	if next.Duration > 0 {
		next.CurrentTime = lo.Clamp(next.CurrentTime, 0, next.Duration)
	}

	prev := c.state
	if prev == next {
		return
	}

	c.state = next
	c.stateSubs.each(func(fn func(prev, next State)) {
		fn(prev, next)
	})
}

func (c *Controller) warn(err error, action string) {
	if err != nil {
		c.logger().Warnf("%s: %s", action, err)
	}
}

// Close stops the controller. The exit hook fires if fullscreen was active.
// Further commands fail with ErrClosed and Post drops events.
func (c *Controller) Close() {
	if c.closed {
		return
	}

	if c.mode == Fullscreen {
		if fn, ok := c.opts.OnExitFullscreen.Get(); ok {
			fn()
		}
	}

	c.closed = true
	close(c.done)
	c.surfaces = [2]*surface{}
	c.pending = [2][]func() error{}
	c.logger().Debugf("closed")
}
