package ui

import (
	"strings"

	"github.com/pterm/pterm"
)

type Command struct {
	Name string
	Args string
}

type CommandDef struct {
	Name        string
	Description string
}

var AvailableCommands = []CommandDef{
	{Name: "/issue", Description: "Select an issue by key or pasted URL"},
	{Name: "/search", Description: "Search issues with JQL (default search when empty)"},
	{Name: "/filters", Description: "Pick one of your favourite filters"},
	{Name: "/start", Description: "Start the stopwatch for the selected issue"},
	{Name: "/add", Description: "Add time to the stopwatch, e.g. /add 1h 15m"},
	{Name: "/reset", Description: "Reset the stopwatch"},
	{Name: "/log", Description: "Post a worklog (stopwatch time or /log 2h 30m)"},
	{Name: "/comment", Description: "Comment on the selected issue"},
	{Name: "/transition", Description: "Move the selected issue to another status"},
	{Name: "/ai", Description: "Draft worklogs from a free-form note with Gemini"},
	{Name: "/info", Description: "Show the server time tracking configuration"},
	{Name: "/login", Description: "Enter new Jira credentials"},
	{Name: "/help", Description: "Show this list"},
	{Name: "/clear", Description: "Clear the screen"},
	{Name: "/exit", Description: "Quit"},
}

func CommandNames() []string {
	names := make([]string, len(AvailableCommands))
	for i, cmd := range AvailableCommands {
		names[i] = cmd.Name
	}
	return names
}

func ParseCommand(input string) (Command, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return Command{}, false
	}
	parts := strings.SplitN(input, " ", 2)
	cmd := Command{Name: strings.ToLower(parts[0])}
	if len(parts) > 1 {
		cmd.Args = strings.TrimSpace(parts[1])
	}
	return cmd, true
}

func PrintCommands() {
	pterm.Println(pterm.Gray("Available commands:"))
	for _, cmd := range AvailableCommands {
		pterm.Println(pterm.Cyan("  "+cmd.Name) + pterm.Gray("  "+cmd.Description))
	}
	pterm.Println()
}
