package update

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/focusnova/internal/app"
	"github.com/sandeepkv93/focusnova/internal/model"
	"github.com/sandeepkv93/focusnova/internal/scheduler"
	"github.com/sandeepkv93/focusnova/internal/views"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Pomodoro string
	Mission  string
	Clean    string
	Mentor   string
	Add      string
	Down     string
	Up       string
	Select   string
	Toggle   string
	Delete   string
	Palette  string
	Theme    string
	Help     string
	Reset    string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	app  *app.App
	jobs <-chan scheduler.Job
	ctx  context.Context

	Cursor      int
	Adding      bool
	Typing      bool
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	theme         views.Theme
	tipView       string
	taskInput     textinput.Model
	mentorInput   textinput.Model
	commandInput  textinput.Model
	focusProgress progress.Model
	replySpinner  spinner.Model
	spinnerActive bool
	statsTable    table.Model
	transcript    viewport.Model
	helpModel     help.Model
}

type Options struct {
	// Jobs carries fired scheduler jobs into the Update loop. Nil disables
	// job delivery.
	Jobs    <-chan scheduler.Job
	Theme   string
	Context context.Context
}

type SwitchModeMsg struct {
	Mode model.Mode
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type JobFiredMsg struct {
	Job scheduler.Job
}

func NewModel(application *app.App, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		app:  application,
		jobs: opts.Jobs,
		ctx:  ctx,
		Keys: GlobalKeyMap{
			Pomodoro: "1",
			Mission:  "2",
			Clean:    "3",
			Mentor:   "4",
			Add:      "a",
			Down:     "j",
			Up:       "k",
			Select:   "s",
			Toggle:   "x",
			Delete:   "d",
			Palette:  "/",
			Theme:    "t",
			Help:     "?",
			Reset:    "ctrl+r",
			Quit:     "q",
		},
		theme: views.ThemeByName(opts.Theme),
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Placeholder = "Nueva tarea..."
	m.taskInput.CharLimit = 200
	m.taskInput.Width = 40

	m.mentorInput = textinput.New()
	m.mentorInput.Placeholder = "Contale al mentor..."
	m.mentorInput.CharLimit = 300
	m.mentorInput.Width = 40

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "add|mode|duration|ask|select|reset"
	m.commandInput.Prompt = "/"
	m.commandInput.Width = 40

	m.focusProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	m.replySpinner = spinner.New(spinner.WithSpinner(spinner.Dot))

	m.statsTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "Día", Width: 12},
			{Title: "Completadas", Width: 12},
		}),
		table.WithHeight(6),
	)
	m.transcript = viewport.New(54, 10)
	m.helpModel = help.New()
	m.applyTheme()
}

func (m *Model) applyTheme() {
	m.tipView = views.RenderMarkdown(views.TipMarkdown, m.theme.Markdown)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = lipgloss.NewStyle()
	m.statsTable.SetStyles(styles)
}

// Mode is the active mode held by the store.
func (m Model) Mode() model.Mode {
	return m.app.Store().Mode()
}

// App exposes the application for tests and the CLI.
func (m Model) App() *app.App { return m.app }

func (m Model) Theme() string { return m.theme.Name }
