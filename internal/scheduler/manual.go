package scheduler

import (
	"sync"
	"time"
)

// Manual is a deterministic Scheduler and clock. Jobs fire only when the
// clock is moved forward with Advance.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	queue jobQueue
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start, queue: newJobQueue()}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Schedule(job Job) error {
	if job.ID == "" {
		return ErrInvalidJobID
	}
	if job.DueAt.IsZero() {
		return ErrInvalidDueTime
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue.push(job)
	return nil
}

func (m *Manual) Cancel(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.cancel(id)
}

func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.size()
}

// Advance moves the clock by d and returns the jobs that became due, in
// firing order.
func (m *Manual) Advance(d time.Duration) []Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.queue.popDue(m.now)
}
