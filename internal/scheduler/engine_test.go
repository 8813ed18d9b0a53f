package scheduler

import (
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEngineEmitsInDueOrder(t *testing.T) {
	engine := NewEngine(8, nil)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Job{ID: "later", DueAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Job{ID: "sooner", DueAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitJob(t, engine.C(), time.Second)
	second := waitJob(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineCancelAndReplace(t *testing.T) {
	engine := NewEngine(8, nil)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Job{ID: "tick", Payload: "1", DueAt: now.Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(Job{ID: "tick", Payload: "2", DueAt: now.Add(40 * time.Millisecond)}); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if err := engine.Schedule(Job{ID: "gone", DueAt: now.Add(10 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule gone: %v", err)
	}
	if !engine.Cancel("gone") {
		t.Fatal("expected cancel to report a pending job")
	}
	if engine.Cancel("gone") {
		t.Fatal("expected second cancel to be a no-op")
	}

	got := waitJob(t, engine.C(), time.Second)
	if got.ID != "tick" || got.Payload != "2" {
		t.Fatalf("expected replaced tick job, got %+v", got)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("unexpected extra job: %+v", extra)
	case <-time.After(80 * time.Millisecond):
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected no pending jobs, got %d", engine.Pending())
	}
}

func TestEngineHoldsJobsForSlowConsumer(t *testing.T) {
	engine := NewEngine(1, nil)
	engine.Start()
	defer engine.Stop()

	due := time.Now().Add(20 * time.Millisecond)
	ids := []string{"mentor-a", "mentor-b", "timer-tick", "mentor-c"}
	for _, id := range ids {
		if err := engine.Schedule(Job{ID: id, DueAt: due}); err != nil {
			t.Fatalf("schedule job: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	for _, want := range ids {
		got := waitJob(t, engine.C(), time.Second)
		if got.ID != want {
			t.Fatalf("expected %s, got %s", want, got.ID)
		}
	}
	if engine.Dropped() != 0 {
		t.Fatalf("expected no drops with a slow consumer, got %d", engine.Dropped())
	}
}

func TestEngineStopCountsUndeliveredJobs(t *testing.T) {
	engine := NewEngine(1, nil)
	engine.Start()

	due := time.Now().Add(10 * time.Millisecond)
	for _, id := range []string{"a", "b", "c"} {
		if err := engine.Schedule(Job{ID: id, DueAt: due}); err != nil {
			t.Fatalf("schedule job: %v", err)
		}
	}
	time.Sleep(80 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		engine.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop blocked on an unread job")
	}
	if engine.Dropped() != 2 {
		t.Fatalf("expected 2 dropped jobs, got %d", engine.Dropped())
	}
}

func TestScheduleValidation(t *testing.T) {
	engine := NewEngine(1, nil)
	if err := engine.Schedule(Job{ID: "bad"}); err != ErrInvalidDueTime {
		t.Fatalf("expected ErrInvalidDueTime, got %v", err)
	}
	if err := engine.Schedule(Job{DueAt: time.Now()}); err != ErrInvalidJobID {
		t.Fatalf("expected ErrInvalidJobID, got %v", err)
	}
	engine.Stop()
	if err := engine.Schedule(Job{ID: "late", DueAt: time.Now()}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestManualAdvanceFiresInOrder(t *testing.T) {
	start := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	m := NewManual(start)
	_ = m.Schedule(Job{ID: "b", DueAt: start.Add(800 * time.Millisecond)})
	_ = m.Schedule(Job{ID: "a", DueAt: start.Add(800 * time.Millisecond)})
	_ = m.Schedule(Job{ID: "tick", DueAt: start.Add(time.Second)})

	if got := m.Advance(500 * time.Millisecond); len(got) != 0 {
		t.Fatalf("expected nothing due, got %+v", got)
	}
	got := m.Advance(300 * time.Millisecond)
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("expected b then a, got %+v", got)
	}
	m.Cancel("tick")
	if got := m.Advance(time.Second); len(got) != 0 {
		t.Fatalf("expected cancelled tick not to fire, got %+v", got)
	}
	if !m.Now().Equal(start.Add(1800 * time.Millisecond)) {
		t.Fatalf("unexpected manual clock: %v", m.Now())
	}
}

func waitJob(t *testing.T, ch <-chan Job, timeout time.Duration) Job {
	t.Helper()
	select {
	case job := <-ch:
		return job
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for job")
		return Job{}
	}
}
