package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go-stopwatch/internal/config"
	"go-stopwatch/internal/jira"
	"go-stopwatch/internal/timeparse"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
)

type inputModel struct {
	textInput textinput.Model
	submitted bool
	cancelled bool
}

func newInputModel(prompt string) inputModel {
	ti := textinput.New()
	ti.Prompt = pterm.Bold.Sprint(pterm.Cyan(prompt))
	ti.Focus()
	ti.SetSuggestions(CommandNames())
	ti.ShowSuggestions = true
	return inputModel{textInput: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	return m.textInput.View()
}

// ReadInput reads one line with command completion. ok is false on Ctrl+C.
func ReadInput(prompt string) (line string, ok bool) {
	m := newInputModel(prompt)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return "", false
	}
	result := finalModel.(inputModel)
	if result.cancelled {
		return "", false
	}
	return strings.TrimSpace(result.textInput.Value()), true
}

func ConfirmYesNo(question string) bool {
	s := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s [Y/n]: ", pterm.Bold.Sprint(question))
		if !s.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(s.Text()))
		switch answer {
		case "", "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}

func IsExitCommand(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "exit", "quit", "/exit", "/quit":
		return true
	}
	return false
}

func validateDuration(s string) error {
	d, ok := timeparse.Parse(s)
	if !ok {
		return fmt.Errorf("use Jira format, e.g. 1d 2h 30m")
	}
	if d < time.Minute {
		return fmt.Errorf("must be at least 1m")
	}
	return nil
}

// validateEstimateValue checks the value field of "new" and "manual" adjustments.
// "new" may set the estimate to zero.
func validateEstimateValue(method, s string) error {
	switch method {
	case "new":
		if _, ok := timeparse.Parse(s); !ok {
			return fmt.Errorf("use Jira format, e.g. 1d 2h 30m")
		}
	case "manual":
		return validateDuration(s)
	}
	return nil
}

type WorklogInput struct {
	TimeSpent  time.Duration
	Comment    string
	Adjustment jira.EstimateAdjustment
}

// ReadWorklog asks for the worklog details, prefilled with timeSpent and the configured estimate policy.
func ReadWorklog(issueKey string, timeSpent time.Duration, method jira.EstimateMethod) (*WorklogInput, error) {
	spent := ""
	if timeSpent >= time.Minute {
		spent = timeparse.FormatDuration(timeSpent)
	}
	methodName := method.String()
	var comment, estimateValue string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Time spent on "+issueKey).
				Value(&spent).
				Validate(validateDuration),
			huh.NewText().
				Title("Comment").
				Value(&comment),
			huh.NewSelect[string]().
				Title("Remaining estimate").
				Options(config.EstimateOptions()...).
				Value(&methodName),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Estimate value").
				Description("New remaining estimate, or the amount to reduce it by").
				Value(&estimateValue).
				Validate(func(s string) error { return validateEstimateValue(methodName, s) }),
		).WithHideFunc(func() bool { return methodName != "new" && methodName != "manual" }),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}

	d, _ := timeparse.Parse(spent)
	m, err := jira.ParseEstimateMethod(methodName)
	if err != nil {
		return nil, err
	}
	return &WorklogInput{
		TimeSpent:  d,
		Comment:    strings.TrimSpace(comment),
		Adjustment: jira.EstimateAdjustment{Method: m, Value: strings.TrimSpace(estimateValue)},
	}, nil
}

func ReadCredentials(username string) (user, token string, err error) {
	user = username
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Jira Username").
				Value(&user),
			huh.NewInput().
				Title("Jira API Token").
				EchoMode(huh.EchoModePassword).
				Value(&token),
		).Title("Jira rejected the credentials"),
	)
	if err := form.Run(); err != nil {
		return "", "", fmt.Errorf("read credentials: %w", err)
	}
	return strings.TrimSpace(user), token, nil
}

func ReadText(title string) (string, error) {
	var text string
	if err := huh.NewText().Title(title).Value(&text).Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func SelectFilter(filters []jira.Filter) (*jira.Filter, error) {
	options := make([]huh.Option[int], len(filters))
	for i, f := range filters {
		options[i] = huh.NewOption(f.Name, i)
	}
	var idx int
	if err := huh.NewSelect[int]().Title("Favourite filter").Options(options...).Value(&idx).Run(); err != nil {
		return nil, err
	}
	return &filters[idx], nil
}

func SelectIssue(issues []jira.Issue) (string, error) {
	options := make([]huh.Option[string], len(issues))
	for i, issue := range issues {
		options[i] = huh.NewOption(issue.Key+"  "+issue.Summary, issue.Key)
	}
	var key string
	if err := huh.NewSelect[string]().Title("Issue").Options(options...).Value(&key).Run(); err != nil {
		return "", err
	}
	return key, nil
}

func SelectTransition(transitions []jira.Transition) (*jira.Transition, error) {
	options := make([]huh.Option[int], len(transitions))
	for i, tr := range transitions {
		options[i] = huh.NewOption(tr.Name+" → "+tr.To.Name, i)
	}
	var idx int
	if err := huh.NewSelect[int]().Title("Transition").Options(options...).Value(&idx).Run(); err != nil {
		return nil, err
	}
	return &transitions[idx], nil
}
