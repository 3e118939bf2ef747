package ui

import (
	"fmt"
	"time"

	"go-stopwatch/internal/gemini"
	"go-stopwatch/internal/jira"
	"go-stopwatch/internal/timeparse"

	"github.com/pterm/pterm"
)

func PrintWelcome(user string) {
	pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack, pterm.Bold)).
		Println("Jira StopWatch")
	pterm.Println(pterm.Gray("Logged in as " + user + ". Type /help for commands."))
	pterm.Println()
}

// seconds renders a Jira seconds field, or "-" when unset.
func seconds(s int) string {
	if s <= 0 {
		return "-"
	}
	return timeparse.FormatDuration(time.Duration(s) * time.Second)
}

func PrintIssuesTable(issues []jira.Issue) {
	pterm.Success.Printfln("Found %d issues", len(issues))
	pterm.Println()

	tableData := pterm.TableData{
		{"#", "Key", "Summary", "Spent", "Remaining"},
	}
	for i, issue := range issues {
		tableData = append(tableData, []string{
			fmt.Sprintf("%d", i+1),
			issue.Key,
			issue.Summary,
			seconds(issue.TimeSpent),
			seconds(issue.RemainingEstimate),
		})
	}

	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(tableData).Render()
	pterm.Println()
}

func PrintIssue(issue *jira.Issue, tt *jira.TimeTracking) {
	pterm.Println()
	pterm.DefaultSection.WithStyle(pterm.NewStyle(pterm.FgCyan, pterm.Bold)).Println(issue.Key)
	pterm.Println(issue.Summary)

	if tt != nil {
		tableData := pterm.TableData{
			{"Original", "Spent", "Remaining"},
			{
				valueOrDash(tt.OriginalEstimate),
				valueOrDash(tt.TimeSpent),
				pterm.FgYellow.Sprint(valueOrDash(tt.RemainingEstimate)),
			},
		}
		pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(tableData).Render()
	}
	pterm.Println()
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func PrintDrafts(drafts []gemini.Draft) {
	pterm.Println()
	pterm.DefaultSection.WithStyle(pterm.NewStyle(pterm.FgCyan, pterm.Bold)).Println("Proposed worklogs")

	tableData := pterm.TableData{
		{"Issue", "Time", "Comment"},
	}

	var total time.Duration
	for _, d := range drafts {
		total += d.TimeSpent
		tableData = append(tableData, []string{
			pterm.FgCyan.Sprint(d.IssueKey),
			pterm.FgYellow.Sprint(timeparse.FormatDuration(d.TimeSpent)),
			d.Comment,
		})
	}

	tableData = append(tableData, []string{
		pterm.Bold.Sprint("TOTAL"),
		pterm.Bold.Sprint(pterm.FgYellow.Sprint(timeparse.FormatDuration(total))),
		"",
	})

	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(tableData).Render()
	pterm.Println()
}

func PrintTransitions(transitions []jira.Transition) {
	tableData := pterm.TableData{{"ID", "Transition", "To status"}}
	for _, tr := range transitions {
		tableData = append(tableData, []string{tr.ID, tr.Name, tr.To.Name})
	}
	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(tableData).Render()
	pterm.Println()
}

func PrintConfiguration(cfg *jira.Configuration) {
	ttc := cfg.TimeTrackingConfiguration
	enabled := pterm.FgRed.Sprint("disabled")
	if cfg.TimeTrackingEnabled {
		enabled = pterm.FgGreen.Sprint("enabled")
	}
	tableData := pterm.TableData{
		{"Time tracking", enabled},
		{"Hours per day", fmt.Sprintf("%g", ttc.WorkingHoursPerDay)},
		{"Days per week", fmt.Sprintf("%g", ttc.WorkingDaysPerWeek)},
		{"Format", ttc.TimeFormat},
		{"Default unit", ttc.DefaultUnit},
	}
	pterm.DefaultTable.WithBoxed().WithData(tableData).Render()
	pterm.Println()
}

func PrintElapsed(key string, elapsed time.Duration) {
	label := "no issue selected"
	if key != "" {
		label = key
	}
	pterm.Println(pterm.Gray("Stopwatch (" + label + "): ") + pterm.FgYellow.Sprint(timeparse.FormatDuration(elapsed)))
}

func PrintLogResult(issueKey string, timeSpent time.Duration, err error) {
	if err == nil {
		pterm.Success.Printfln("%s  %s logged", issueKey, timeparse.FormatDuration(timeSpent))
	} else {
		pterm.Error.Printfln("%s  %s", issueKey, err.Error())
	}
}

func PrintCancelled() {
	pterm.Warning.Println("Cancelled.")
}

func PrintFarewell() {
	pterm.Println()
	pterm.Println(pterm.Gray("Bye!"))
	pterm.Println()
}

func PrintError(msg string) {
	pterm.Println(pterm.Gray("⚠ " + msg))
}

func PrintStatus(msg string) {
	pterm.Println(pterm.Gray(msg))
}
