package state

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sandeepkv93/focusnova/internal/model"
)

// AddTask prepends a new task. Blank text is ignored.
func (s *Store) AddTask(ctx context.Context, text string) (model.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, false
	}
	task := model.Task{
		ID:        s.newID(),
		Text:      text,
		Done:      false,
		CreatedAt: s.clock.Now(),
	}
	s.tasks = append([]model.Task{task}, s.tasks...)
	s.saveTasks(ctx)
	s.log.Debug("task added", zap.String("id", task.ID))
	return task, true
}

// ToggleTaskDone flips the done flag. Only the false to true transition
// awards points and counts towards today's stats; undoing gives nothing back.
func (s *Store) ToggleTaskDone(ctx context.Context, id string) bool {
	i := model.FindTask(s.tasks, id)
	if i < 0 {
		return false
	}
	wasDone := s.tasks[i].Done
	s.tasks[i].Done = !wasDone
	s.saveTasks(ctx)
	if !wasDone {
		s.points += model.TaskReward
		s.savePoints(ctx)
		s.stats[model.DayKey(s.clock.Now())]++
		s.saveStats(ctx)
	}
	s.log.Debug("task toggled", zap.String("id", id), zap.Bool("done", !wasDone))
	return true
}

// RemoveTask deletes the task. The selection is not touched.
func (s *Store) RemoveTask(ctx context.Context, id string) bool {
	i := model.FindTask(s.tasks, id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.saveTasks(ctx)
	s.log.Debug("task removed", zap.String("id", id))
	return true
}

func (s *Store) SelectTask(id string) bool {
	if model.FindTask(s.tasks, id) < 0 {
		return false
	}
	s.selectedID = id
	return true
}

func (s *Store) ClearSelection() { s.selectedID = "" }

// SelectedTaskID may refer to a task that has since been removed.
func (s *Store) SelectedTaskID() string { return s.selectedID }

func (s *Store) SelectedTask() (model.Task, bool) {
	return s.Task(s.selectedID)
}

// NextCleanTask selects the first pending task other than the current one.
func (s *Store) NextCleanTask() bool {
	next, ok := model.FirstPending(s.tasks, s.selectedID)
	if !ok {
		return false
	}
	s.selectedID = next.ID
	return true
}

// CompleteFocusSession is the timer completion hook. In pomodoro mode with
// a selection it awards the session reward and marks the task done without
// touching stats. The completion notice is always appended.
func (s *Store) CompleteFocusSession(ctx context.Context) model.ChatMessage {
	if s.mode == model.ModePomodoro && s.selectedID != "" {
		s.points += model.SessionReward
		s.savePoints(ctx)
		if i := model.FindTask(s.tasks, s.selectedID); i >= 0 {
			s.tasks[i].Done = true
			s.saveTasks(ctx)
		}
		s.log.Info("focus session rewarded", zap.String("task_id", s.selectedID), zap.Int("points", s.points))
	}
	return s.AppendChat(model.SenderSystem, model.TimerCompletedText)
}
