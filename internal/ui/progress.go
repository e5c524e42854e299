package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/Cyclone1070/sandboxagent/internal/workflow"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// DotSpinner is the spinner used on terminals.
func DotSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Dot))
}

type eventMsg struct {
	event workflow.Event
}

type eventsClosedMsg struct{}

func listenForEvents(events <-chan workflow.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event: e}
	}
}

// ProgressModel shows a spinner while the model thinks or a tool runs and
// prints the console lines for each event above it.
type ProgressModel struct {
	console *Console
	events  <-chan workflow.Event
	spinner spinner.Model
	status  string
}

func NewProgressModel(console *Console, events <-chan workflow.Event, spinnerFactory SpinnerFactory) ProgressModel {
	return ProgressModel{
		console: console,
		events:  events,
		spinner: spinnerFactory(),
	}
}

func (m ProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, listenForEvents(m.events))
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		switch ev := msg.event.(type) {
		case workflow.ThinkingEvent:
			m.status = fmt.Sprintf("Thinking (round %d)", ev.Round)
		case workflow.ToolStartEvent:
			m.status = "Running " + ev.ToolName
		case workflow.ToolEndEvent, workflow.DoneEvent:
			m.status = ""
		}

		next := listenForEvents(m.events)
		if lines := m.console.lines(msg.event); len(lines) > 0 {
			// Printed lines must land before the next event is handled.
			return m, tea.Sequence(tea.Println(strings.Join(lines, "\n")), next)
		}
		return m, next

	case eventsClosedMsg:
		m.status = ""
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m ProgressModel) View() string {
	if m.status == "" {
		return ""
	}
	return m.spinner.View() + " " + StatusStyle.Render(m.status)
}

// RunProgress drives events through a ProgressModel until the channel is
// closed. Input and signal handling stay with the caller. If the program
// stops early the remaining events are printed plainly.
func RunProgress(console *Console, events <-chan workflow.Event, out io.Writer, spinnerFactory SpinnerFactory) error {
	p := tea.NewProgram(
		NewProgressModel(console, events, spinnerFactory),
		tea.WithInput(nil),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)
	_, err := p.Run()
	console.Consume(events)
	return err
}
