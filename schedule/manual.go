package schedule

import (
	"sort"
	"time"
)

// Manual is a deterministic scheduler driven by a virtual clock.
// Nothing fires until Advance is called.
type Manual struct {
	now     time.Time
	seq     uint64
	pending []*manualTask
}

type manualTask struct {
	owner *Manual
	due   time.Time
	seq   uint64
	fn    func()
	done  bool
}

func (t *manualTask) Cancel() bool {
	if t.done {
		return false
	}
	t.done = true
	t.owner.remove(t)
	return true
}

// NewManual returns a Manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// After implements Scheduler.
func (m *Manual) After(d time.Duration, fn func()) Task {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTask{owner: m, due: m.now.Add(d), seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

// Pending returns the number of armed callbacks.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Advance moves the clock forward by d, firing every callback that falls due
// in order of due time, then arming order. Callbacks armed while advancing
// fire too if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		next := m.next()
		if next == nil || next.due.After(target) {
			break
		}
		m.remove(next)
		next.done = true
		m.now = next.due
		next.fn()
	}
	m.now = target
}

func (m *Manual) next() *manualTask {
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		a, b := m.pending[i], m.pending[j]
		if a.due.Equal(b.due) {
			return a.seq < b.seq
		}
		return a.due.Before(b.due)
	})
	return m.pending[0]
}

func (m *Manual) remove(t *manualTask) {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}
