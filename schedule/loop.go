package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

// Loop schedules callbacks on wall-clock timers and delivers them through
// post, which must run the function on the owning event loop.
type Loop struct {
	post func(func())

	mu     sync.Mutex
	tasks  map[*loopTask]struct{}
	closed bool
}

type loopTask struct {
	owner     *Loop
	timer     *time.Timer
	cancelled atomic.Bool
}

// NewLoop returns a Loop scheduler that forwards fired callbacks to post.
func NewLoop(post func(func())) *Loop {
	return &Loop{
		post:  post,
		tasks: make(map[*loopTask]struct{}),
	}
}

// After implements Scheduler. After Close it returns an inert task.
func (l *Loop) After(d time.Duration, fn func()) Task {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return noopTask{}
	}

	t := &loopTask{owner: l}
	t.timer = time.AfterFunc(d, func() {
		l.post(func() {
			// The timer may have fired before a Cancel issued on the loop.
			if t.cancelled.Load() {
				return
			}
			l.forget(t)
			fn()
		})
	})
	l.tasks[t] = struct{}{}
	return t
}

func (t *loopTask) Cancel() bool {
	if t.cancelled.Swap(true) {
		return false
	}
	t.owner.forget(t)
	return t.timer.Stop()
}

func (l *Loop) forget(t *loopTask) {
	l.mu.Lock()
	delete(l.tasks, t)
	l.mu.Unlock()
}

// Len returns the number of tasks that have not fired or been cancelled.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Close cancels every outstanding task and refuses new ones.
func (l *Loop) Close() {
	l.mu.Lock()
	tasks := make([]*loopTask, 0, len(l.tasks))
	for t := range l.tasks {
		tasks = append(tasks, t)
	}
	l.closed = true
	l.mu.Unlock()

	for _, t := range tasks {
		t.Cancel()
	}
}
