package views

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name      string
	Markdown  string
	Header    lipgloss.Style
	Accent    lipgloss.Style
	Muted     lipgloss.Style
	Done      lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Panel     lipgloss.Style
	Footer    lipgloss.Style
	ActiveTab lipgloss.Style
	Tab       lipgloss.Style
}

func DarkTheme() Theme {
	return Theme{
		Name:      "dark",
		Markdown:  "dark",
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Done:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Padding(0, 1),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Padding(0, 1),
	}
}

func LightTheme() Theme {
	return Theme{
		Name:      "light",
		Markdown:  "light",
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Done:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Strikethrough(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("250")).Padding(0, 1),
		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")).Padding(0, 1),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Padding(0, 1),
	}
}

// ThemeByName falls back to the dark theme.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

func (t Theme) Toggle() Theme {
	if t.Name == "light" {
		return DarkTheme()
	}
	return LightTheme()
}
