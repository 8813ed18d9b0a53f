package model

import (
	"errors"
	"strings"
	"time"
)

type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task createdAt is required")
	}
	return nil
}

// FindTask returns the index of the task with the given id, or -1.
func FindTask(tasks []Task, id string) int {
	if id == "" {
		return -1
	}
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// FirstPending returns the first task that is not done and whose id differs from skipID.
func FirstPending(tasks []Task, skipID string) (Task, bool) {
	for _, t := range tasks {
		if !t.Done && t.ID != skipID {
			return t, true
		}
	}
	return Task{}, false
}

// SanitizeTasks drops invalid records and duplicate ids, keeping the first occurrence.
func SanitizeTasks(in []Task) ([]Task, int) {
	out := make([]Task, 0, len(in))
	seen := make(map[string]bool, len(in))
	dropped := 0
	for _, t := range in {
		if err := t.Validate(); err != nil || seen[t.ID] {
			dropped++
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out, dropped
}

func CountDone(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Done {
			n++
		}
	}
	return n
}
