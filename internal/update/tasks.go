package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusnova/internal/model"
)

func (m Model) handleTaskInputKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Adding = false
		m.taskInput.SetValue("")
		m.taskInput.Blur()
		return m
	case "enter":
		text := m.taskInput.Value()
		m.Adding = false
		m.taskInput.SetValue("")
		m.taskInput.Blur()
		return m.addTask(text)
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.taskInput.SetValue(m.taskInput.Value() + typedText(msg))
		return m
	}
	m.taskInput, _ = m.taskInput.Update(msg)
	return m
}

func (m Model) addTask(text string) Model {
	task, ok := m.app.Store().AddTask(m.ctx, text)
	if !ok {
		m.Status = StatusBar{Text: "tarea vacía, no se agregó"}
		return m
	}
	m.Cursor = 0
	m.Status = StatusBar{Text: fmt.Sprintf("tarea agregada: %s", task.Text)}
	return m.reportPersistError()
}

func (m *Model) moveCursor(delta int) {
	n := len(m.app.Store().Tasks())
	if n == 0 {
		m.Cursor = 0
		return
	}
	m.Cursor = clamp(m.Cursor+delta, 0, n-1)
}

func (m Model) cursorTask() (model.Task, bool) {
	tasks := m.app.Store().Tasks()
	if m.Cursor < 0 || m.Cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.Cursor], true
}

func (m Model) selectCursorTask() Model {
	task, ok := m.cursorTask()
	if !ok {
		return m
	}
	m.app.Store().SelectTask(task.ID)
	m.Status = StatusBar{Text: fmt.Sprintf("tarea seleccionada: %s", task.Text)}
	return m
}

func (m Model) toggleCursorTask() Model {
	task, ok := m.cursorTask()
	if !ok {
		return m
	}
	return m.toggleTask(task)
}

func (m Model) toggleTask(task model.Task) Model {
	store := m.app.Store()
	before := store.Points()
	store.ToggleTaskDone(m.ctx, task.ID)
	if gained := store.Points() - before; gained > 0 {
		m.Status = StatusBar{Text: fmt.Sprintf("completada: %s (+%d)", task.Text, gained)}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("reabierta: %s", task.Text)}
	}
	return m.reportPersistError()
}

func (m Model) deleteCursorTask() Model {
	task, ok := m.cursorTask()
	if !ok {
		return m
	}
	m.app.Store().RemoveTask(m.ctx, task.ID)
	m.moveCursor(0)
	m.Status = StatusBar{Text: fmt.Sprintf("tarea borrada: %s", task.Text)}
	return m.reportPersistError()
}
