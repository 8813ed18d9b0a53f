package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusnova/internal/model"
	"github.com/sandeepkv93/focusnova/internal/scheduler"
	"github.com/sandeepkv93/focusnova/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForJobCmd(m.jobs)
}

// waitForJobCmd blocks on the scheduler channel and delivers the next job
// as a message. It returns nil once the channel is closed.
func waitForJobCmd(ch <-chan scheduler.Job) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		job, ok := <-ch
		if !ok {
			return nil
		}
		return JobFiredMsg{Job: job}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case JobFiredMsg:
		return m.onJobFired(typed.Job)
	case spinner.TickMsg:
		if !m.spinnerActive {
			return m, nil
		}
		if m.app.PendingReplies() == 0 {
			m.spinnerActive = false
			return m, nil
		}
		var cmd tea.Cmd
		m.replySpinner, cmd = m.replySpinner.Update(typed)
		return m, cmd
	case SwitchModeMsg:
		return m.switchMode(typed.Mode), nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.transcript.Width = max(20, typed.Width/2-6)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Palette.Active {
		if keyStr == m.Keys.Help {
			m.HelpVisible = !m.HelpVisible
			return m, nil
		}
		return m.handlePaletteKey(msg)
	}
	if m.Adding {
		return m.handleTaskInputKey(msg), nil
	}
	if m.Typing {
		return m.handleMentorInputKey(msg)
	}

	switch keyStr {
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Pomodoro:
		return m.switchMode(model.ModePomodoro), nil
	case m.Keys.Mission:
		return m.switchMode(model.ModeMission), nil
	case m.Keys.Clean:
		return m.switchMode(model.ModeClean), nil
	case m.Keys.Mentor:
		return m.switchMode(model.ModeMentor), nil
	case m.Keys.Add:
		m.Adding = true
		m.taskInput.SetValue("")
		m.taskInput.Focus()
		return m, nil
	case m.Keys.Down, "down":
		m.moveCursor(1)
		return m, nil
	case m.Keys.Up, "up":
		m.moveCursor(-1)
		return m, nil
	case m.Keys.Select:
		return m.selectCursorTask(), nil
	case m.Keys.Toggle:
		return m.toggleCursorTask(), nil
	case m.Keys.Delete:
		return m.deleteCursorTask(), nil
	case m.Keys.Theme:
		m.theme = m.theme.Toggle()
		m.applyTheme()
		m.Status = StatusBar{Text: "tema: " + m.theme.Name}
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case m.Keys.Reset:
		return m.resetPrototype(), nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.Mode() {
	case model.ModePomodoro:
		return m.handleFocusKey(msg), nil
	case model.ModeMission:
		return m.handleMissionKey(msg), nil
	case model.ModeClean:
		return m.handleCleanKey(msg), nil
	case model.ModeMentor:
		return m.handleMentorKey(msg)
	}
	return m, nil
}

func (m Model) onJobFired(job scheduler.Job) (Model, tea.Cmd) {
	out := m.app.HandleJob(m.ctx, job)
	if out.Completed {
		m.Status = StatusBar{Text: "focus block complete"}
		m = m.reportPersistError()
	}
	return m, waitForJobCmd(m.jobs)
}

func (m Model) switchMode(mode model.Mode) Model {
	if err := m.app.SwitchMode(m.ctx, mode); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Typing = false
	m.mentorInput.Blur()
	m.Status = StatusBar{Text: "modo: " + mode.Title()}
	return m.reportPersistError()
}

func (m Model) resetPrototype() Model {
	if err := m.app.Reset(m.ctx); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Cursor = 0
	m.Status = StatusBar{Text: "prototipo reiniciado"}
	return m
}

// reportPersistError surfaces the last failed write, if any.
func (m Model) reportPersistError() Model {
	if err := m.app.Store().LastPersistError(); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("persist failed: %v", err), IsError: true}
	}
	return m
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	rightParts := []string{m.renderTaskPanel(), m.renderAside()}
	if palette := m.renderCommandPalette(); palette != "" {
		rightParts = append(rightParts, palette)
	}
	if helpView := m.renderHelpIfVisible(); helpView != "" {
		rightParts = append(rightParts, helpView)
	}

	return views.RenderApp(views.AppData{
		Theme:         m.theme,
		Header:        m.renderHeader(),
		LeftPane:      m.renderModePanel(),
		RightPane:     strings.Join(rightParts, "\n\n"),
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Footer: fmt.Sprintf("keys: %s-%s modos | %s agregar | %s/%s mover | %s elegir | %s hecha | %s borrar | %s cmd | %s tema | %s help | %s quit",
			m.Keys.Pomodoro, m.Keys.Mentor, m.Keys.Add, m.Keys.Down, m.Keys.Up, m.Keys.Select, m.Keys.Toggle,
			m.Keys.Delete, m.Keys.Palette, m.Keys.Theme, m.Keys.Help, m.Keys.Quit),
	})
}
