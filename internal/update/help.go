package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/focusnova/internal/model"
	"github.com/sandeepkv93/focusnova/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     string(m.Mode()),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Pomodoro, Action: "focus blocks"},
		{Key: m.Keys.Mission, Action: "daily mission"},
		{Key: m.Keys.Clean, Action: "clean mode"},
		{Key: m.Keys.Mentor, Action: "mentor"},
		{Key: m.Keys.Add, Action: "add task"},
		{Key: m.Keys.Down + "/" + m.Keys.Up, Action: "move cursor"},
		{Key: m.Keys.Select, Action: "select task"},
		{Key: m.Keys.Toggle, Action: "toggle done"},
		{Key: m.Keys.Delete, Action: "delete task"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Theme, Action: "toggle theme"},
		{Key: m.Keys.Reset, Action: "reset prototype"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) modeBindings() []KeyBinding {
	switch m.Mode() {
	case model.ModePomodoro:
		return []KeyBinding{
			{Key: "space", Action: "start/pause timer"},
			{Key: "r", Action: "reset timer"},
			{Key: "m", Action: "cycle duration"},
		}
	case model.ModeMission:
		return []KeyBinding{
			{Key: "c", Action: "complete task under cursor (+10)"},
		}
	case model.ModeClean:
		return []KeyBinding{
			{Key: "c", Action: "complete selected task"},
			{Key: "n", Action: "next pending task"},
		}
	case model.ModeMentor:
		return []KeyBinding{
			{Key: "i/enter", Action: "write to mentor"},
			{Key: "enter", Action: "send"},
			{Key: "esc", Action: "stop writing"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.modeBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.modeBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
