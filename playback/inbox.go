package playback

import (
	"errors"
	"fmt"

	"github.com/fastvideo-cli/fastvideo/log"
)

// Post hands an event to the controller from any goroutine. It blocks while
// the inbox is full and reports false once the controller is closed.
func (c *Controller) Post(ev Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.inbox <- ev:
		return true
	case <-c.done:
		return false
	}
}

// Inbox exposes posted events so the event loop can wait for them.
// Received events must be passed to Apply.
func (c *Controller) Inbox() <-chan Event {
	return c.inbox
}

// Done is closed by Close.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Drain applies every event currently queued without blocking and returns
// how many were applied. Stale events are logged and skipped.
func (c *Controller) Drain() int {
	var applied int
	for {
		select {
		case ev := <-c.inbox:
			if err := c.Apply(ev); err != nil {
				if !errors.Is(err, ErrStaleEvent) {
					log.Warnf("apply %T: %s", ev, err)
				}
				continue
			}
			applied++
		default:
			return applied
		}
	}
}

// Apply folds a media or viewport event into the controller state.
func (c *Controller) Apply(ev Event) error {
	if c.closed {
		return ErrClosed
	}

	switch e := ev.(type) {
	case ViewportEvent:
		c.Resize(e.Width, e.Height)
		return nil
	case LoadEvent:
		return c.onLoad(e)
	case ProgressEvent:
		if _, err := c.origin(e.Origin); err != nil {
			return err
		}

		next := c.state
		next.CurrentTime = c.state.Clamp(e.CurrentTime)
		c.commit(next)
		return nil
	case EndEvent:
		if _, err := c.origin(e.Origin); err != nil {
			return err
		}

		next := c.state
		next.Ended = true
		next.Paused = true
		c.commit(next)
		return nil
	default:
		return fmt.Errorf("unknown event %T", ev)
	}
}

// lookup returns the surface the origin refers to, or nil if it was
// unmounted or replaced.
func (c *Controller) lookup(o Origin) *surface {
	if o.Mode != Inline && o.Mode != Fullscreen {
		return nil
	}

	s := c.surfaces[o.Mode]
	if s == nil || s.id != o.Handle {
		return nil
	}

	return s
}

// origin returns the surface when it is mounted and active.
func (c *Controller) origin(o Origin) (*surface, error) {
	s := c.lookup(o)
	if s == nil || o.Mode != c.mode {
		log.With(log.Fields{
			"surface": o.Mode.String(),
			"handle":  o.Handle.String(),
			"active":  c.mode.String(),
		}).Debugf("discarding stale event")
		return nil, ErrStaleEvent
	}

	return s, nil
}

func (c *Controller) onLoad(e LoadEvent) error {
	if s := c.lookup(e.Origin); s != nil {
		s.loaded = true
	}

	s, err := c.origin(e.Origin)
	if err != nil {
		return err
	}

	if e.Natural.Known() && e.Natural != c.natural {
		c.natural = e.Natural
		c.relayout()
	}

	if e.Duration > 0 {
		next := c.state
		next.Duration = e.Duration
		c.commit(next)
	}

	if e.Mode == Fullscreen && c.syncOnLoad {
		return c.syncFullscreen(s)
	}

	return nil
}
