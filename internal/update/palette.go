package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusnova/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.commandInput.SetValue(m.commandInput.Value() + typedText(msg))
		m.Palette.Input = m.commandInput.Value()
		return m, nil
	}
	m.commandInput, _ = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, nil
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	m.Status = StatusBar{}
	var follow tea.Cmd
	store := m.app.Store()
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m = m.addTask(a.Text)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Mode: func(a commands.ModeArgs) (commands.Result, error) {
			m = m.switchMode(a.Mode)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Duration: func(a commands.DurationArgs) (commands.Result, error) {
			if err := m.app.SetDuration(a.Minutes); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			return commands.Result{Message: fmt.Sprintf("duración: %d min", a.Minutes)}, nil
		},
		Ask: func(a commands.AskArgs) (commands.Result, error) {
			m, follow = m.ask(a.Question)
			return commands.Result{Message: "pregunta enviada al mentor"}, nil
		},
		Select: func(a commands.SelectArgs) (commands.Result, error) {
			tasks := store.Tasks()
			if a.Index > len(tasks) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task #%d", a.Index)}
			}
			m.Cursor = a.Index - 1
			m = m.selectCursorTask()
			return commands.Result{Message: m.Status.Text}, nil
		},
		Reset: func() (commands.Result, error) {
			m = m.resetPrototype()
			if m.Status.IsError {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, follow
	}
	if !m.Status.IsError {
		m.Status = StatusBar{Text: res.Message}
	}
	return m, follow
}
