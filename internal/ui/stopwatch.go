package ui

import (
	"fmt"
	"time"

	"go-stopwatch/internal/timeparse"

	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
)

type stopwatchModel struct {
	issueKey string
	base     time.Duration
	sw       stopwatch.Model
	quitting bool
}

func newStopwatchModel(issueKey string, base time.Duration) stopwatchModel {
	return stopwatchModel{
		issueKey: issueKey,
		base:     base,
		sw:       stopwatch.NewWithInterval(time.Second),
	}
}

func (m stopwatchModel) Init() tea.Cmd {
	return m.sw.Init()
}

func (m stopwatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case " ", "p":
			return m, m.sw.Toggle()
		}
	}
	var cmd tea.Cmd
	m.sw, cmd = m.sw.Update(msg)
	return m, cmd
}

func (m stopwatchModel) total() time.Duration {
	return m.base + m.sw.Elapsed()
}

func (m stopwatchModel) View() string {
	state := pterm.FgGreen.Sprint("running")
	if !m.sw.Running() {
		state = pterm.FgYellow.Sprint("paused")
	}
	t := m.total()
	clock := fmt.Sprintf("%02d:%02d:%02d", int(t.Hours()), int(t.Minutes())%60, int(t.Seconds())%60)
	view := fmt.Sprintf("%s  %s  %s  (%s)\n",
		pterm.Bold.Sprint(pterm.Cyan(m.issueKey)),
		pterm.Bold.Sprint(clock),
		state,
		timeparse.FormatDuration(t))
	if !m.quitting {
		view += pterm.Gray("space: pause/resume  enter: stop") + "\n"
	}
	return view
}

// RunStopwatch shows a running stopwatch for issueKey starting from base and
// returns the accumulated time when the user stops it.
func RunStopwatch(issueKey string, base time.Duration) (time.Duration, error) {
	p := tea.NewProgram(newStopwatchModel(issueKey, base))
	finalModel, err := p.Run()
	if err != nil {
		return base, fmt.Errorf("stopwatch: %w", err)
	}
	return finalModel.(stopwatchModel).total(), nil
}
