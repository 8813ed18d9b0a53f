// Package app wires the session store, the countdown, the mentor and the
// scheduler together. Every mutation goes through App so that scheduled
// jobs stay in step with the state they refer to.
package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandeepkv93/focusnova/internal/clock"
	"github.com/sandeepkv93/focusnova/internal/mentor"
	"github.com/sandeepkv93/focusnova/internal/model"
	"github.com/sandeepkv93/focusnova/internal/scheduler"
	"github.com/sandeepkv93/focusnova/internal/state"
	"github.com/sandeepkv93/focusnova/internal/timer"
)

const (
	TimerJobID      = "timer-tick"
	mentorJobPrefix = "mentor-"

	DefaultTickInterval     = time.Second
	DefaultMentorReplyDelay = 800 * time.Millisecond
)

// Notifier delivers a completion notice outside the terminal.
type Notifier interface {
	Notify(title, body string) error
}

type Options struct {
	DurationMinutes  int
	TickInterval     time.Duration
	MentorReplyDelay time.Duration
	Clock            clock.Clock
	Logger           *zap.Logger
	Responder        *mentor.Responder
	Notifier         Notifier
	NewID            func() string
}

type App struct {
	store    *state.Store
	timer    *timer.Countdown
	mentor   *mentor.Responder
	sched    scheduler.Scheduler
	clock    clock.Clock
	log      *zap.Logger
	notifier Notifier
	newID    func() string

	tickInterval time.Duration
	replyDelay   time.Duration
	pending      map[string]struct{}
}

func New(store *state.Store, sched scheduler.Scheduler, opts Options) *App {
	a := &App{
		store:        store,
		timer:        timer.New(opts.DurationMinutes),
		mentor:       opts.Responder,
		sched:        sched,
		clock:        opts.Clock,
		log:          opts.Logger,
		notifier:     opts.Notifier,
		newID:        opts.NewID,
		tickInterval: opts.TickInterval,
		replyDelay:   opts.MentorReplyDelay,
		pending:      make(map[string]struct{}),
	}
	if a.mentor == nil {
		a.mentor = mentor.NewDefaultResponder()
	}
	if a.clock == nil {
		a.clock = clock.System{}
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	if a.newID == nil {
		a.newID = func() string { return uuid.New().String() }
	}
	if a.tickInterval <= 0 {
		a.tickInterval = DefaultTickInterval
	}
	if a.replyDelay <= 0 {
		a.replyDelay = DefaultMentorReplyDelay
	}
	return a
}

func (a *App) Store() *state.Store { return a.store }

// TimerSnapshot is a read-only view of the countdown.
type TimerSnapshot struct {
	DurationMinutes int
	SecondsLeft     int
	TotalSeconds    int
	Running         bool
	Expired         bool
	Progress        float64
}

func (a *App) Timer() TimerSnapshot {
	return TimerSnapshot{
		DurationMinutes: a.timer.DurationMinutes(),
		SecondsLeft:     a.timer.SecondsLeft(),
		TotalSeconds:    a.timer.TotalSeconds(),
		Running:         a.timer.Running(),
		Expired:         a.timer.State() == timer.StateExpired,
		Progress:        a.timer.Progress(),
	}
}

// StartTimer begins or resumes the countdown. It is a no-op while running.
func (a *App) StartTimer() error {
	if a.timer.Running() {
		return nil
	}
	run := a.timer.Start()
	if err := a.scheduleTick(run); err != nil {
		a.timer.Pause()
		return err
	}
	a.log.Debug("timer started", zap.Uint64("run", run), zap.Int("seconds_left", a.timer.SecondsLeft()))
	return nil
}

func (a *App) PauseTimer() {
	a.timer.Pause()
	a.sched.Cancel(TimerJobID)
	a.log.Debug("timer paused", zap.Int("seconds_left", a.timer.SecondsLeft()))
}

func (a *App) ToggleTimer() error {
	if a.timer.Running() {
		a.PauseTimer()
		return nil
	}
	return a.StartTimer()
}

func (a *App) ResetTimer() {
	a.timer.Reset()
	a.sched.Cancel(TimerJobID)
}

func (a *App) SetDuration(minutes int) error {
	if err := a.timer.SetDuration(minutes); err != nil {
		return fmt.Errorf("set duration %d: %w", minutes, err)
	}
	return nil
}

// CycleDuration moves to the next allowed duration and returns it.
func (a *App) CycleDuration() int {
	next := model.NextDuration(a.timer.DurationMinutes())
	_ = a.timer.SetDuration(next)
	return next
}

func (a *App) scheduleTick(run uint64) error {
	err := a.sched.Schedule(scheduler.Job{
		ID:      TimerJobID,
		Kind:    scheduler.KindTimerTick,
		Payload: strconv.FormatUint(run, 10),
		DueAt:   a.clock.Now().Add(a.tickInterval),
	})
	if err != nil {
		return fmt.Errorf("schedule timer tick: %w", err)
	}
	return nil
}

func (a *App) SwitchMode(ctx context.Context, m model.Mode) error {
	if err := a.store.SetMode(ctx, m); err != nil {
		return fmt.Errorf("switch mode %q: %w", m, err)
	}
	return nil
}

// Ask records the question and schedules the mentor's reply. Blank
// questions are ignored.
func (a *App) Ask(_ context.Context, question string) (bool, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return false, nil
	}
	a.store.AppendChat(model.SenderUser, question)
	id := mentorJobPrefix + a.newID()
	err := a.sched.Schedule(scheduler.Job{
		ID:      id,
		Kind:    scheduler.KindMentorReply,
		Payload: question,
		DueAt:   a.clock.Now().Add(a.replyDelay),
	})
	if err != nil {
		return true, fmt.Errorf("schedule mentor reply: %w", err)
	}
	a.pending[id] = struct{}{}
	return true, nil
}

// PendingReplies is the number of mentor replies not yet delivered.
func (a *App) PendingReplies() int { return len(a.pending) }

// Outcome describes the effect of a fired job.
type Outcome struct {
	Completed bool
	Message   *model.ChatMessage
}

// HandleJob applies a fired job. Unknown or stale jobs are ignored.
func (a *App) HandleJob(ctx context.Context, job scheduler.Job) Outcome {
	switch job.Kind {
	case scheduler.KindTimerTick:
		return a.handleTick(ctx, job)
	case scheduler.KindMentorReply:
		if _, ok := a.pending[job.ID]; !ok {
			return Outcome{}
		}
		delete(a.pending, job.ID)
		reply, rule := a.mentor.Reply(job.Payload)
		msg := a.store.AppendChat(model.SenderMentor, reply)
		a.log.Debug("mentor replied", zap.String("job", job.ID), zap.String("rule", rule))
		return Outcome{Message: &msg}
	default:
		a.log.Warn("unknown job kind", zap.String("job", job.ID), zap.String("kind", string(job.Kind)))
		return Outcome{}
	}
}

func (a *App) handleTick(ctx context.Context, job scheduler.Job) Outcome {
	run, err := strconv.ParseUint(job.Payload, 10, 64)
	if err != nil {
		a.log.Warn("malformed tick payload", zap.String("payload", job.Payload))
		return Outcome{}
	}
	if run != a.timer.RunID() || !a.timer.Running() {
		return Outcome{}
	}
	if !a.timer.Tick(run) {
		if err := a.scheduleTick(run); err != nil {
			a.log.Error("reschedule tick failed", zap.Error(err))
			a.timer.Pause()
		}
		return Outcome{}
	}
	msg := a.store.CompleteFocusSession(ctx)
	a.log.Info("focus session completed", zap.Int("minutes", a.timer.DurationMinutes()))
	if a.notifier != nil {
		if err := a.notifier.Notify("FocusNova", msg.Text); err != nil {
			a.log.Warn("desktop notification failed", zap.Error(err))
		}
	}
	return Outcome{Completed: true, Message: &msg}
}

// Reset wipes persisted data and drops replies still in flight. The timer
// keeps its state.
func (a *App) Reset(ctx context.Context) error {
	a.cancelReplies()
	if err := a.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	return nil
}

func (a *App) cancelReplies() {
	for id := range a.pending {
		a.sched.Cancel(id)
		delete(a.pending, id)
	}
}

// Close cancels every job this App scheduled.
func (a *App) Close() {
	a.sched.Cancel(TimerJobID)
	a.cancelReplies()
}
