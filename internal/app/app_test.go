package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/focusnova/internal/clock"
	"github.com/sandeepkv93/focusnova/internal/mentor"
	"github.com/sandeepkv93/focusnova/internal/model"
	"github.com/sandeepkv93/focusnova/internal/scheduler"
	"github.com/sandeepkv93/focusnova/internal/state"
	"github.com/sandeepkv93/focusnova/internal/storage"
)

type recordingNotifier struct {
	calls []string
	err   error
}

func (n *recordingNotifier) Notify(title, body string) error {
	n.calls = append(n.calls, title+": "+body)
	return n.err
}

type harness struct {
	app      *App
	sched    *scheduler.Manual
	kv       *storage.MemoryStore
	notifier *recordingNotifier
}

func newHarness(t *testing.T, minutes int) harness {
	t.Helper()
	sched := scheduler.NewManual(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	clk := clock.Func(sched.Now)
	kv := storage.NewMemoryStore()
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	store := state.Load(context.Background(), kv, state.WithClock(clk), state.WithIDGenerator(ids))
	notifier := &recordingNotifier{}
	a := New(store, sched, Options{
		DurationMinutes: minutes,
		Clock:           clk,
		Notifier:        notifier,
		NewID:           ids,
	})
	return harness{app: a, sched: sched, kv: kv, notifier: notifier}
}

// run advances the manual clock step by step, feeding fired jobs back into
// the app, and collects the outcomes.
func (h harness) run(t *testing.T, total, step time.Duration) []Outcome {
	t.Helper()
	var out []Outcome
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		for _, job := range h.sched.Advance(step) {
			res := h.app.HandleJob(context.Background(), job)
			if res.Completed || res.Message != nil {
				out = append(out, res)
			}
		}
	}
	return out
}

func TestWriteReportFocusSession(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 50)
	store := h.app.Store()

	task, ok := store.AddTask(ctx, "Write report")
	require.True(t, ok)
	require.True(t, store.SelectTask(task.ID))
	require.NoError(t, h.app.SetDuration(25))
	require.NoError(t, h.app.StartTimer())

	outcomes := h.run(t, 25*time.Minute, time.Second)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Completed)
	require.NotNil(t, outcomes[0].Message)
	assert.Equal(t, model.SenderSystem, outcomes[0].Message.From)

	got, _ := store.Task(task.ID)
	assert.True(t, got.Done)
	assert.Equal(t, 15, store.Points())
	assert.Empty(t, store.Stats())

	snap := h.app.Timer()
	assert.False(t, snap.Running)
	assert.True(t, snap.Expired)
	assert.Equal(t, 0, snap.SecondsLeft)

	chat := store.Chat()
	assert.Equal(t, model.TimerCompletedText, chat[len(chat)-1].Text)
	assert.Equal(t, 0, h.sched.Pending(), "no tick after expiry")
	assert.Len(t, h.notifier.calls, 1)
}

func TestCompletionOutsidePomodoroOnlyNotifies(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 25)
	store := h.app.Store()
	task, _ := store.AddTask(ctx, "Write report")
	store.SelectTask(task.ID)
	require.NoError(t, h.app.SwitchMode(ctx, model.ModeMission))
	h.notifier.err = errors.New("no display")

	require.NoError(t, h.app.StartTimer())
	outcomes := h.run(t, 25*time.Minute, time.Second)
	require.Len(t, outcomes, 1)
	assert.Equal(t, 0, store.Points())
	got, _ := store.Task(task.ID)
	assert.False(t, got.Done)
}

func TestMissionComplete(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 50)
	store := h.app.Store()
	second, _ := store.AddTask(ctx, "Call bank")
	first, _ := store.AddTask(ctx, "Write report")
	require.NoError(t, h.app.SwitchMode(ctx, model.ModeMission))

	require.True(t, store.ToggleTaskDone(ctx, first.ID))
	assert.Equal(t, 10, store.Points())
	assert.Equal(t, 1, store.TodayCount())
	got, _ := store.Task(second.ID)
	assert.False(t, got.Done)
}

func TestPauseCancelsTickAndResumeContinues(t *testing.T) {
	h := newHarness(t, 25)
	require.NoError(t, h.app.StartTimer())
	h.run(t, 10*time.Second, time.Second)
	assert.Equal(t, 25*60-10, h.app.Timer().SecondsLeft)

	h.app.PauseTimer()
	assert.Equal(t, 0, h.sched.Pending())
	h.run(t, 10*time.Second, time.Second)
	assert.Equal(t, 25*60-10, h.app.Timer().SecondsLeft)

	require.NoError(t, h.app.ToggleTimer())
	require.NoError(t, h.app.StartTimer(), "start while running is a no-op")
	h.run(t, 5*time.Second, time.Second)
	assert.Equal(t, 25*60-15, h.app.Timer().SecondsLeft)

	h.app.ResetTimer()
	assert.Equal(t, 25*60, h.app.Timer().SecondsLeft)
	assert.False(t, h.app.Timer().Running)
	assert.Equal(t, 0, h.sched.Pending())
}

func TestStaleTickIsIgnored(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 25)
	require.NoError(t, h.app.StartTimer())
	stale := scheduler.Job{ID: TimerJobID, Kind: scheduler.KindTimerTick, Payload: "0"}
	h.app.HandleJob(ctx, stale)
	assert.Equal(t, 25*60, h.app.Timer().SecondsLeft)

	h.app.HandleJob(ctx, scheduler.Job{ID: TimerJobID, Kind: scheduler.KindTimerTick, Payload: "junk"})
	assert.Equal(t, 25*60, h.app.Timer().SecondsLeft)
}

func TestCycleAndSetDuration(t *testing.T) {
	h := newHarness(t, 0)
	assert.Equal(t, model.DefaultDurationMinutes, h.app.Timer().DurationMinutes)
	assert.Equal(t, 90, h.app.CycleDuration())
	assert.Equal(t, 90*60, h.app.Timer().SecondsLeft)
	assert.ErrorIs(t, h.app.SetDuration(45), model.ErrInvalidDuration)
}

func TestAskSchedulesDelayedReply(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 50)
	store := h.app.Store()

	asked, err := h.app.Ask(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, asked)

	asked, err = h.app.Ask(ctx, "Me distraigo con el celular")
	require.NoError(t, err)
	require.True(t, asked)
	asked, err = h.app.Ask(ctx, "Tengo que escribir un informe")
	require.NoError(t, err)
	require.True(t, asked)
	assert.Equal(t, 2, h.app.PendingReplies())
	assert.Len(t, store.Chat(), 3)

	assert.Empty(t, h.sched.Advance(700*time.Millisecond))
	outcomes := h.run(t, 100*time.Millisecond, 100*time.Millisecond)
	require.Len(t, outcomes, 2)
	assert.Equal(t, mentor.FocusRedirectReply, outcomes[0].Message.Text)
	assert.Equal(t, mentor.ScheduleOfferReply, outcomes[1].Message.Text)
	assert.Equal(t, 0, h.app.PendingReplies())

	chat := store.Chat()
	require.Len(t, chat, 5)
	assert.Equal(t, model.SenderUser, chat[1].From)
	assert.Equal(t, model.SenderMentor, chat[3].From)
}

func TestResetDropsPendingReplies(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 50)
	store := h.app.Store()
	task, _ := store.AddTask(ctx, "Write report")
	store.ToggleTaskDone(ctx, task.ID)
	_, err := h.app.Ask(ctx, "hola")
	require.NoError(t, err)

	require.NoError(t, h.app.Reset(ctx))
	assert.Empty(t, store.Tasks())
	assert.Equal(t, 0, store.Points())
	assert.Empty(t, store.Stats())
	require.Len(t, store.Chat(), 1)
	assert.Equal(t, model.Greeting(model.DefaultUserName), store.Chat()[0].Text)

	assert.Empty(t, h.run(t, time.Second, 100*time.Millisecond))
	assert.Len(t, store.Chat(), 1)
}

func TestResetReportsStoreFailure(t *testing.T) {
	h := newHarness(t, 50)
	h.kv.FailWrites = errors.New("read-only")
	assert.Error(t, h.app.Reset(context.Background()))
}

func TestCloseCancelsEverything(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 25)
	require.NoError(t, h.app.StartTimer())
	_, err := h.app.Ask(ctx, "hola")
	require.NoError(t, err)
	assert.Equal(t, 2, h.sched.Pending())
	h.app.Close()
	assert.Equal(t, 0, h.sched.Pending())
	assert.Equal(t, 0, h.app.PendingReplies())
}
