package views

import (
	"strings"
	"testing"
)

func TestRenderTaskPanelEmptyAndItems(t *testing.T) {
	theme := DarkTheme()
	if out := RenderTaskPanel(theme, TaskPanelData{}); !strings.Contains(out, EmptyTasksText) {
		t.Fatalf("expected empty text, got %q", out)
	}

	out := RenderTaskPanel(theme, TaskPanelData{Items: []TaskItemData{
		{Index: 1, Text: "Write report", Cursor: true, Selected: true},
		{Index: 2, Text: "Call bank", Done: true},
	}})
	if !strings.Contains(out, "> 1. [ ] Write report") {
		t.Fatalf("expected cursor line, got %q", out)
	}
	if !strings.Contains(out, "2. [x]") || !strings.Contains(out, "Call bank") {
		t.Fatalf("expected done line, got %q", out)
	}
}

func TestRenderHeaderShowsPointsAndTabs(t *testing.T) {
	out := RenderHeader(LightTheme(), HeaderData{
		Points: 25,
		Theme:  "light",
		Tabs: []ModeTab{
			{Key: "1", Title: "Bloques de Enfoque", Active: true},
			{Key: "2", Title: "Misión del Día"},
		},
	})
	for _, want := range []string{"FocusNova", "Puntos: 25", "1 Bloques de Enfoque", "2 Misión del Día", "tema: light"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in header, got %q", want, out)
		}
	}
}

func TestRenderPomodoroPanel(t *testing.T) {
	out := RenderPomodoroPanel(DarkTheme(), PomodoroPanelData{
		Clock:     "25:00",
		Duration:  25,
		Durations: []int{25, 50, 90},
	})
	if !strings.Contains(out, "Tarea seleccionada: "+placeholderTitle) {
		t.Fatalf("expected placeholder title, got %q", out)
	}
	if !strings.Contains(out, "[25 min]") || !strings.Contains(out, "[space] Iniciar") {
		t.Fatalf("unexpected panel %q", out)
	}

	out = RenderPomodoroPanel(DarkTheme(), PomodoroPanelData{TaskTitle: "Write report", Running: true, Expired: true})
	if !strings.Contains(out, "Write report") || !strings.Contains(out, "[space] Pausar") {
		t.Fatalf("expected running panel, got %q", out)
	}
	if !strings.Contains(out, "Bloque terminado") {
		t.Fatalf("expected expired notice, got %q", out)
	}
}

func TestRenderMissionPanelLabels(t *testing.T) {
	out := RenderMissionPanel(DarkTheme(), MissionPanelData{Items: []TaskItemData{
		{Text: "Write report"},
		{Text: "Call bank", Done: true},
	}})
	if !strings.Contains(out, completeLabel) || !strings.Contains(out, completedLabel) {
		t.Fatalf("expected both labels, got %q", out)
	}
	if out := RenderMissionPanel(DarkTheme(), MissionPanelData{}); !strings.Contains(out, EmptyTasksText) {
		t.Fatalf("expected empty text, got %q", out)
	}
}

func TestRenderCleanPanel(t *testing.T) {
	if out := RenderCleanPanel(DarkTheme(), CleanPanelData{}); !strings.Contains(out, NoSelectionText) {
		t.Fatalf("expected no-selection text, got %q", out)
	}
	out := RenderCleanPanel(DarkTheme(), CleanPanelData{HasTask: true, Task: TaskItemData{Text: "Call bank"}})
	if !strings.Contains(out, "Call bank") || !strings.Contains(out, "[n] Siguiente") {
		t.Fatalf("unexpected clean panel %q", out)
	}
}

func TestRenderTranscriptAndMentorPanel(t *testing.T) {
	transcript := RenderTranscript(DarkTheme(), []ChatLine{
		{From: "mentor", Text: "Hola"},
		{From: "user", Text: "ayuda"},
		{From: "system", Text: "listo"},
	})
	for _, want := range []string{"mentor: Hola", "vos: ayuda", "• listo"} {
		if !strings.Contains(transcript, want) {
			t.Fatalf("expected %q in transcript, got %q", want, transcript)
		}
	}

	out := RenderMentorPanel(DarkTheme(), MentorPanelData{TranscriptView: transcript, Pending: 1, SpinnerView: "*"})
	if !strings.Contains(out, "el mentor está escribiendo") {
		t.Fatalf("expected typing indicator, got %q", out)
	}
	out = RenderMentorPanel(DarkTheme(), MentorPanelData{Typing: true, InputView: "> hola"})
	if !strings.Contains(out, "> hola") || strings.Contains(out, "escribiendo") {
		t.Fatalf("unexpected mentor panel %q", out)
	}
}

func TestRenderAsideStats(t *testing.T) {
	out := RenderAside(DarkTheme(), AsideData{Total: 3, Done: 1})
	if !strings.Contains(out, "Tareas: 3") || !strings.Contains(out, "Completadas: 1") {
		t.Fatalf("expected summary, got %q", out)
	}
	if !strings.Contains(out, EmptyStatsText) {
		t.Fatalf("expected empty stats text, got %q", out)
	}
	out = RenderAside(DarkTheme(), AsideData{StatsView: "2026-03-14 2"})
	if strings.Contains(out, EmptyStatsText) || !strings.Contains(out, "2026-03-14 2") {
		t.Fatalf("expected stats view, got %q", out)
	}
}

func TestRenderCommandPalette(t *testing.T) {
	if out := RenderCommandPalette(false, "add x"); out != "" {
		t.Fatalf("expected empty palette, got %q", out)
	}
	if out := RenderCommandPalette(true, "add x"); out != "command: /add x" {
		t.Fatalf("unexpected palette %q", out)
	}
}

func TestThemeToggle(t *testing.T) {
	if got := ThemeByName("light").Name; got != "light" {
		t.Fatalf("expected light, got %s", got)
	}
	if got := ThemeByName("unknown").Name; got != "dark" {
		t.Fatalf("expected dark fallback, got %s", got)
	}
	if got := DarkTheme().Toggle().Toggle().Name; got != "dark" {
		t.Fatalf("expected dark after two toggles, got %s", got)
	}
}
