package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusnova/internal/views"
)

func (m Model) handleMissionKey(msg tea.KeyMsg) Model {
	if msg.String() == "c" {
		return m.toggleCursorTask()
	}
	return m
}

func (m Model) handleCleanKey(msg tea.KeyMsg) Model {
	store := m.app.Store()
	switch msg.String() {
	case "c":
		task, ok := store.SelectedTask()
		if !ok {
			return m
		}
		return m.toggleTask(task)
	case "n":
		if store.NextCleanTask() {
			task, _ := store.SelectedTask()
			m.Status = StatusBar{Text: "siguiente: " + task.Text}
		} else {
			m.Status = StatusBar{Text: "no hay otra tarea pendiente"}
		}
	}
	return m
}

func (m Model) handleMentorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "i", "enter":
		m.Typing = true
		m.mentorInput.SetValue("")
		m.mentorInput.Focus()
	case "pgup", "pgdown":
		m.transcript, _ = m.transcript.Update(msg)
	}
	return m, nil
}

func (m Model) handleMentorInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Typing = false
		m.mentorInput.Blur()
		return m, nil
	case "enter":
		question := m.mentorInput.Value()
		m.mentorInput.SetValue("")
		return m.ask(question)
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.mentorInput.SetValue(m.mentorInput.Value() + typedText(msg))
		return m, nil
	}
	m.mentorInput, _ = m.mentorInput.Update(msg)
	return m, nil
}

// ask sends the question and starts the typing spinner.
func (m Model) ask(question string) (Model, tea.Cmd) {
	asked, err := m.app.Ask(m.ctx, question)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	if !asked || m.spinnerActive {
		return m, nil
	}
	m.spinnerActive = true
	return m, m.replySpinner.Tick
}

func (m Model) renderMissionView() string {
	return views.RenderMissionPanel(m.theme, views.MissionPanelData{Items: m.taskItems()})
}

func (m Model) renderCleanView() string {
	task, ok := m.app.Store().SelectedTask()
	if !ok {
		return views.RenderCleanPanel(m.theme, views.CleanPanelData{})
	}
	return views.RenderCleanPanel(m.theme, views.CleanPanelData{
		HasTask: true,
		Task:    views.TaskItemData{ID: task.ID, Text: task.Text, Done: task.Done, Selected: true},
	})
}

func (m Model) renderMentorView() string {
	return views.RenderMentorPanel(m.theme, views.MentorPanelData{
		TranscriptView: m.transcript.View(),
		InputView:      m.mentorInput.View(),
		Typing:         m.Typing,
		Pending:        m.app.PendingReplies(),
		SpinnerView:    m.replySpinner.View(),
	})
}

func (m Model) transcriptContent() string {
	chat := m.app.Store().Chat()
	lines := make([]views.ChatLine, 0, len(chat))
	for _, msg := range chat {
		lines = append(lines, views.ChatLine{From: string(msg.From), Text: strings.TrimSpace(msg.Text)})
	}
	return views.RenderTranscript(m.theme, lines)
}
