package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vencode/internal/session"
)

// DefaultPollInterval is how often the model drains session events.
const DefaultPollInterval = 100 * time.Millisecond

const (
	defaultWidth  = 80
	defaultHeight = 40
)

type pollTickMsg struct {
	at time.Time
}

// Model is the bubbletea model for one interactive session.
type Model struct {
	session  *session.Session
	interval time.Duration
	title    string

	spinner  spinner.Model
	spinning bool
	gauge    progress.Model

	width  int
	height int
}

// Option customizes a Model.
type Option func(*Model)

// WithPollInterval overrides the event poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithTitle overrides the header text.
func WithTitle(title string) Option {
	return func(m *Model) {
		if title != "" {
			m.title = title
		}
	}
}

// New builds a model over s. The caller owns s and closes it after the
// program exits.
func New(s *session.Session, opts ...Option) Model {
	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = lipgloss.NewStyle().Foreground(accentSecondary)

	gauge := progress.New(
		progress.WithSolidFill(string(accentPrimary)),
		progress.WithoutPercentage(),
	)

	m := Model{
		session:  s,
		interval: DefaultPollInterval,
		title:    "VENCODE VIDEO ENCODER",
		spinner:  spin,
		gauge:    gauge,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Session returns the wrapped session.
func (m Model) Session() *session.Session { return m.session }

func (m Model) Init() tea.Cmd {
	return m.pollTickCmd()
}

func (m Model) pollTickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(at time.Time) tea.Msg {
		return pollTickMsg{at: at}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.session.Encoding() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pollTickMsg:
		m.session.Poll()
		if m.session.ShouldQuit() {
			return m, tea.Quit
		}
		spin := m.startSpinner()
		return m, tea.Batch(m.pollTickCmd(), spin)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.session.Quit()
		return m, tea.Quit
	case "tab", "down":
		m.session.FocusNext()
	case "shift+tab", "up":
		m.session.FocusPrev()
	case "right":
		m.session.OptionNext()
	case "left":
		m.session.OptionPrev()
	case "enter":
		m.session.Activate()
		spin := m.startSpinner()
		return m, spin
	}
	return m, nil
}

// startSpinner returns the spinner's first tick when a run is in flight and
// the spinner is idle.
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning || !m.session.Encoding() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}
