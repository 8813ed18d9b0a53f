package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	ErrInvalidDueTime = errors.New("scheduler: invalid due time")
	ErrInvalidJobID   = errors.New("scheduler: job id is required")
	ErrStopped        = errors.New("scheduler: engine stopped")
)

type JobKind string

const (
	KindTimerTick   JobKind = "timer_tick"
	KindMentorReply JobKind = "mentor_reply"
)

// Job is a one-shot deferred callback identified by ID.
type Job struct {
	ID      string
	Kind    JobKind
	Payload string
	DueAt   time.Time
}

// Scheduler is implemented by Engine and by the Manual test double.
type Scheduler interface {
	Schedule(job Job) error
	Cancel(id string) bool
}

type queueItem struct {
	job Job
	seq uint64
}

type priorityQueue []queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].job.DueAt.Equal(pq[j].job.DueAt) {
		return pq[i].seq < pq[j].seq
	}
	return pq[i].job.DueAt.Before(pq[j].job.DueAt)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(queueItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

// jobQueue is a heap with lazy removal: an item is live only while
// pending[id] still holds its sequence number.
type jobQueue struct {
	items   priorityQueue
	pending map[string]uint64
	seq     uint64
}

func newJobQueue() jobQueue {
	return jobQueue{items: make(priorityQueue, 0), pending: make(map[string]uint64)}
}

func (q *jobQueue) push(job Job) {
	q.seq++
	q.pending[job.ID] = q.seq
	heap.Push(&q.items, queueItem{job: job, seq: q.seq})
}

func (q *jobQueue) cancel(id string) bool {
	if _, ok := q.pending[id]; !ok {
		return false
	}
	delete(q.pending, id)
	return true
}

func (q *jobQueue) live(item queueItem) bool {
	seq, ok := q.pending[item.job.ID]
	return ok && seq == item.seq
}

// peek drops dead items from the top and returns the next live job.
func (q *jobQueue) peek() (Job, bool) {
	for len(q.items) > 0 {
		if q.live(q.items[0]) {
			return q.items[0].job, true
		}
		heap.Pop(&q.items)
	}
	return Job{}, false
}

func (q *jobQueue) popDue(now time.Time) []Job {
	out := make([]Job, 0)
	for {
		next, ok := q.peek()
		if !ok || next.DueAt.After(now) {
			return out
		}
		item := heap.Pop(&q.items).(queueItem)
		delete(q.pending, item.job.ID)
		out = append(out, item.job)
	}
}

func (q *jobQueue) size() int { return len(q.pending) }

type Engine struct {
	mu      sync.Mutex
	queue   jobQueue
	out     chan Job
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
	log     *zap.Logger
}

func NewEngine(bufferSize int, log *zap.Logger) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		queue:  newJobQueue(),
		out:    make(chan Job, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		log:    log,
	}
}

// C delivers fired jobs. It is closed when the engine stops.
func (e *Engine) C() <-chan Job {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule queues job, replacing any pending job with the same ID.
func (e *Engine) Schedule(job Job) error {
	if job.ID == "" {
		return ErrInvalidJobID
	}
	if job.DueAt.IsZero() {
		return ErrInvalidDueTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	e.queue.push(job)
	e.signalWakeup()
	return nil
}

// Cancel removes a pending job. It reports whether one was pending.
func (e *Engine) Cancel(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	ok := e.queue.cancel(id)
	if ok {
		e.signalWakeup()
	}
	return ok
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.size()
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				stopTimer(timer)
				return
			}
		}

		wait := time.Until(next.DueAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now())
			if !e.deliver(due) {
				stopTimer(timer)
				return
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

// deliver blocks until every job is handed to the consumer. Jobs still
// undelivered when the engine stops are counted as dropped.
func (e *Engine) deliver(jobs []Job) bool {
	for i, job := range jobs {
		select {
		case e.out <- job:
		case <-e.stopCh:
			for _, lost := range jobs[i:] {
				atomic.AddUint64(&e.dropped, 1)
				e.log.Warn("scheduler dropped job", zap.String("id", lost.ID), zap.String("kind", string(lost.Kind)))
			}
			return false
		}
	}
	return true
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Job, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.peek()
}

func (e *Engine) popDue(now time.Time) []Job {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.popDue(now)
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
