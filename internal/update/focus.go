package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusnova/internal/model"
	"github.com/sandeepkv93/focusnova/internal/views"
)

func (m Model) handleFocusKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case " ":
		if err := m.app.ToggleTimer(); err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		if m.app.Timer().Running {
			m.Status = StatusBar{Text: "focus running"}
		} else {
			m.Status = StatusBar{Text: "focus paused"}
		}
	case "r":
		m.app.ResetTimer()
		m.Status = StatusBar{Text: "focus reset"}
	case "m":
		next := m.app.CycleDuration()
		m.Status = StatusBar{Text: fmt.Sprintf("duración: %d min", next)}
	}
	return m
}

func (m Model) renderFocusView() string {
	snap := m.app.Timer()
	title := ""
	if task, ok := m.app.Store().SelectedTask(); ok {
		title = task.Text
	}
	return views.RenderPomodoroPanel(m.theme, views.PomodoroPanelData{
		TaskTitle:    title,
		Clock:        formatDuration(snap.SecondsLeft),
		ProgressView: m.focusProgress.ViewAs(snap.Progress),
		Duration:     snap.DurationMinutes,
		Durations:    model.AllowedDurations,
		Running:      snap.Running,
		Expired:      snap.Expired,
	})
}
