package update

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"github.com/sandeepkv93/focusnova/internal/model"
	"github.com/sandeepkv93/focusnova/internal/views"
)

func (m Model) renderHeader() string {
	tabs := make([]views.ModeTab, 0, len(model.Modes))
	keys := []string{m.Keys.Pomodoro, m.Keys.Mission, m.Keys.Clean, m.Keys.Mentor}
	current := m.Mode()
	for i, mode := range model.Modes {
		tabs = append(tabs, views.ModeTab{
			Key:     keys[i],
			Title:   mode.Title(),
			Tagline: mode.Tagline(),
			Active:  mode == current,
		})
	}
	return views.RenderHeader(m.theme, views.HeaderData{
		Points: m.app.Store().Points(),
		Tabs:   tabs,
		Theme:  m.theme.Name,
	})
}

func (m Model) renderModePanel() string {
	switch m.Mode() {
	case model.ModeMission:
		return m.renderMissionView()
	case model.ModeClean:
		return m.renderCleanView()
	case model.ModeMentor:
		return m.renderMentorView()
	default:
		return m.renderFocusView()
	}
}

func (m Model) taskItems() []views.TaskItemData {
	tasks := m.app.Store().Tasks()
	selected := m.app.Store().SelectedTaskID()
	out := make([]views.TaskItemData, 0, len(tasks))
	for i, task := range tasks {
		out = append(out, views.TaskItemData{
			Index:    i + 1,
			ID:       task.ID,
			Text:     task.Text,
			Done:     task.Done,
			Selected: task.ID == selected,
			Cursor:   i == m.Cursor,
		})
	}
	return out
}

func (m Model) renderTaskPanel() string {
	return views.RenderTaskPanel(m.theme, views.TaskPanelData{
		Items:     m.taskItems(),
		InputView: m.taskInput.View(),
		Adding:    m.Adding,
	})
}

func (m Model) renderAside() string {
	summary := m.app.Store().Summary()
	stats := ""
	if len(m.statsTable.Rows()) > 0 {
		stats = m.statsTable.View()
	}
	return views.RenderAside(m.theme, views.AsideData{
		Total:     summary.Total,
		Done:      summary.Done,
		TipView:   m.tipView,
		StatsView: stats,
	})
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, m.Palette.Input)
}

func statsRows(stats model.DailyStats) []table.Row {
	days := stats.Days()
	rows := make([]table.Row, 0, len(days))
	for _, day := range days {
		rows = append(rows, table.Row{day, strconv.Itoa(stats[day])})
	}
	return rows
}

// syncBubbleData pushes store state into the bubbles components after
// every update.
func (m *Model) syncBubbleData() {
	if m.app == nil {
		return
	}
	m.moveCursor(0)
	m.statsTable.SetRows(statsRows(m.app.Store().Stats()))
	m.transcript.SetContent(m.transcriptContent())
	m.transcript.GotoBottom()
}
