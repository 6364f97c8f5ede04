// Package terminal renders the timer in a terminal with bubbletea.
package terminal

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"eyecare/internal/core/service"
	"eyecare/internal/core/timekeeper"
)

const maxProgressWidth = 60

// Controller is the part of the timer service the terminal screen needs.
type Controller interface {
	Start()
	Stop()
	Subscribe() *service.Subscription
}

type keyMap struct {
	Start key.Binding
	Stop  key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Start, k.Stop, k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var keys = keyMap{
	Start: key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "start")),
	Stop:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type eventMsg timekeeper.Event

type closedMsg struct{}

// Model is the bubbletea model of the timer screen.
type Model struct {
	controller   Controller
	subscription *service.Subscription
	state        timekeeper.State
	progress     progress.Model
	help         help.Model
	warning      string
}

// New subscribes to the controller and returns the screen model. The warning,
// if any, is shown above the timer.
func New(controller Controller, warning string) Model {
	return Model{
		controller:   controller,
		subscription: controller.Subscribe(),
		state:        timekeeper.StoppedState(),
		progress:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:         help.New(),
		warning:      warning,
	}
}

// State returns the last state the screen rendered.
func (m Model) State() timekeeper.State { return m.state }

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.subscription)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.state = msg.State
		return m, waitForEvent(m.subscription)
	case closedMsg:
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - docStyle.GetHorizontalFrameSize()
		if m.progress.Width > maxProgressWidth {
			m.progress.Width = maxProgressWidth
		}
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			// Leaving the screen only detaches; the service decides the timer's fate.
			m.subscription.Close()
			return m, tea.Quit
		case key.Matches(msg, keys.Start):
			m.controller.Start()
		case key.Matches(msg, keys.Stop):
			m.controller.Stop()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("20-20-20"))
	b.WriteString("\n\n")
	if m.warning != "" {
		b.WriteString(warningStyle.Render("! " + m.warning))
		b.WriteString("\n\n")
	}

	b.WriteString(timeStyle.Render(timekeeper.FormatRemaining(m.remaining())))
	b.WriteString("  ")
	b.WriteString(phaseText(m.state))
	b.WriteString("\n\n")
	b.WriteString(m.progress.ViewAs(m.state.Progress()))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(keys))

	return docStyle.Render(b.String())
}

func (m Model) remaining() time.Duration {
	if !m.state.Running {
		return 0
	}
	return m.state.Remaining
}

func phaseText(state timekeeper.State) string {
	switch {
	case !state.Running:
		return stoppedStyle.Render("Stopped")
	case state.Phase == timekeeper.PhaseBreak:
		return breakStyle.Render(state.Phase.Label())
	default:
		return continuousStyle.Render(state.Phase.Label())
	}
}

func waitForEvent(subscription *service.Subscription) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-subscription.Events()
		if !ok {
			return closedMsg{}
		}
		return eventMsg(event)
	}
}
