package views

import (
	"fmt"
	"strings"
)

const (
	EmptyTasksText   = "No hay tareas aún, agregá la primera."
	NoSelectionText  = "No hay tareas seleccionadas."
	EmptyStatsText   = "Sin registros aún"
	TipMarkdown      = "**Consejo**\n\nSi te cuesta terminar una tarea, reducíla a 15-25 minutos y arrancá. El momentum hará el resto."
	placeholderTitle = "—"
	completedLabel   = "Completada"
	completeLabel    = "Completar +10"
)

type ModeTab struct {
	Key     string
	Title   string
	Tagline string
	Active  bool
}

type HeaderData struct {
	Points int
	Tabs   []ModeTab
	Theme  string
}

type TaskItemData struct {
	Index    int
	ID       string
	Text     string
	Done     bool
	Selected bool
	Cursor   bool
}

type TaskPanelData struct {
	Items     []TaskItemData
	InputView string
	Adding    bool
}

type PomodoroPanelData struct {
	TaskTitle    string
	Clock        string
	ProgressView string
	Duration     int
	Durations    []int
	Running      bool
	Expired      bool
}

type MissionPanelData struct {
	Items []TaskItemData
}

type CleanPanelData struct {
	Task    TaskItemData
	HasTask bool
}

type ChatLine struct {
	From string
	Text string
}

type MentorPanelData struct {
	TranscriptView string
	InputView      string
	Typing         bool
	Pending        int
	SpinnerView    string
}

type AsideData struct {
	Total     int
	Done      int
	TipView   string
	StatsView string
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
}

func RenderHeader(t Theme, data HeaderData) string {
	tabs := make([]string, 0, len(data.Tabs))
	for _, tab := range data.Tabs {
		label := fmt.Sprintf("%s %s", tab.Key, tab.Title)
		if tab.Active {
			tabs = append(tabs, t.ActiveTab.Render(label))
			continue
		}
		tabs = append(tabs, t.Tab.Render(label))
	}
	title := t.Header.Render("FocusNova")
	points := t.Accent.Render(fmt.Sprintf("Puntos: %d", data.Points))
	return fmt.Sprintf("%s  %s  %s\n%s", title, points, t.Muted.Render("tema: "+data.Theme), strings.Join(tabs, " "))
}

func RenderTaskPanel(t Theme, data TaskPanelData) string {
	var b strings.Builder
	b.WriteString(t.Header.Render("Tareas") + "\n")
	if data.Adding {
		b.WriteString(data.InputView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString(t.Muted.Render(EmptyTasksText))
		return b.String()
	}
	for _, item := range data.Items {
		b.WriteString(renderTaskLine(t, item) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderTaskLine(t Theme, item TaskItemData) string {
	cursor := " "
	if item.Cursor {
		cursor = ">"
	}
	check := "[ ]"
	text := item.Text
	if item.Done {
		check = "[x]"
		text = t.Done.Render(text)
	}
	marker := ""
	if item.Selected {
		marker = t.Accent.Render(" *")
	}
	return fmt.Sprintf("%s %d. %s %s%s", cursor, item.Index, check, text, marker)
}

func RenderPomodoroPanel(t Theme, data PomodoroPanelData) string {
	var b strings.Builder
	b.WriteString(t.Header.Render("Bloques de Enfoque") + "\n")
	b.WriteString(t.Muted.Render("Elegí duración y tarea, presioná iniciar y trabajá sin interrupciones.") + "\n\n")

	durations := make([]string, 0, len(data.Durations))
	for _, d := range data.Durations {
		label := fmt.Sprintf("%d min", d)
		if d == data.Duration {
			label = t.Accent.Render("[" + label + "]")
		}
		durations = append(durations, label)
	}
	b.WriteString("Duración: " + strings.Join(durations, " ") + "\n")

	title := data.TaskTitle
	if title == "" {
		title = placeholderTitle
	}
	b.WriteString("Tarea seleccionada: " + title + "\n\n")
	b.WriteString(t.Header.Render(data.Clock) + "\n")
	b.WriteString(data.ProgressView + "\n\n")

	action := "[space] Iniciar"
	if data.Running {
		action = "[space] Pausar"
	}
	b.WriteString(action + "  [r] Reiniciar  [m] duración")
	if data.Expired {
		b.WriteString("\n" + t.Status.Render("Bloque terminado. Tomá un descanso."))
	}
	return b.String()
}

func RenderMissionPanel(t Theme, data MissionPanelData) string {
	var b strings.Builder
	b.WriteString(t.Header.Render("Misión del Día") + "\n")
	b.WriteString(t.Muted.Render("Transformá tareas en misiones y ganá puntos al completar.") + "\n\n")
	if len(data.Items) == 0 {
		b.WriteString(t.Muted.Render(EmptyTasksText))
		return b.String()
	}
	for _, item := range data.Items {
		label := completeLabel
		if item.Done {
			label = completedLabel
		}
		cursor := " "
		if item.Cursor {
			cursor = ">"
		}
		text := item.Text
		if item.Done {
			text = t.Done.Render(text)
		}
		b.WriteString(fmt.Sprintf("%s %s  %s\n", cursor, text, t.Accent.Render("["+label+"]")))
	}
	b.WriteString("\n[c] completar")
	return b.String()
}

func RenderCleanPanel(t Theme, data CleanPanelData) string {
	var b strings.Builder
	b.WriteString(t.Header.Render("Entorno Limpio") + "\n")
	b.WriteString(t.Muted.Render("Solo una tarea visible a la vez, hacela y listo.") + "\n\n")
	if !data.HasTask {
		b.WriteString(t.Muted.Render(NoSelectionText))
		return b.String()
	}
	text := data.Task.Text
	if data.Task.Done {
		text = t.Done.Render(text)
	}
	b.WriteString(t.Header.Render(text) + "\n\n")
	b.WriteString("[c] " + completedLabel + "  [n] Siguiente")
	return b.String()
}

// RenderTranscript formats chat lines for the mentor viewport.
func RenderTranscript(t Theme, lines []ChatLine) string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		switch line.From {
		case "user":
			out = append(out, t.Accent.Render("vos: ")+line.Text)
		case "system":
			out = append(out, t.Status.Render("• "+line.Text))
		default:
			out = append(out, t.Header.Render("mentor: ")+line.Text)
		}
	}
	return strings.Join(out, "\n")
}

func RenderMentorPanel(t Theme, data MentorPanelData) string {
	var b strings.Builder
	b.WriteString(t.Header.Render("Mentor Personal") + "\n")
	b.WriteString(t.Muted.Render("Un coach amigable que te da empujones y recordatorios suaves.") + "\n\n")
	b.WriteString(data.TranscriptView + "\n")
	if data.Pending > 0 {
		b.WriteString(data.SpinnerView + " " + t.Muted.Render("el mentor está escribiendo...") + "\n")
	}
	if data.Typing {
		b.WriteString(data.InputView)
	} else {
		b.WriteString(t.Muted.Render("[i] escribir  [enter] enviar"))
	}
	return b.String()
}

func RenderAside(t Theme, data AsideData) string {
	var b strings.Builder
	b.WriteString(t.Header.Render("Resumen rápido") + "\n")
	b.WriteString(fmt.Sprintf("Tareas: %d\nCompletadas: %d\n\n", data.Total, data.Done))
	if data.TipView != "" {
		b.WriteString(data.TipView + "\n\n")
	}
	b.WriteString(t.Header.Render("Estadísticas") + "\n")
	if strings.TrimSpace(data.StatsView) == "" {
		b.WriteString(t.Muted.Render(EmptyStatsText))
	} else {
		b.WriteString(data.StatsView)
	}
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s mode:\n%s\n%s",
		strings.ToLower(data.Mode),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
