package gemini

import (
	"strings"
	"testing"
	"time"

	"go-stopwatch/internal/jira"
)

func TestExtractDrafts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Draft
	}{
		{
			name: "plain json",
			text: `{"work_logs": [{"issue_key": "FOO-1", "time_spent": "1h 30m", "comment": " Fixed login "}]}`,
			want: []Draft{{IssueKey: "FOO-1", TimeSpent: 90 * time.Minute, Comment: "Fixed login"}},
		},
		{
			name: "fenced json with prose",
			text: "Here you go:\n```json\n{\"work_logs\": [{\"issue_key\": \"foo-2\", \"time_spent\": \"2.5h\", \"comment\": \"x\"}]}\n```",
			want: []Draft{{IssueKey: "FOO-2", TimeSpent: 150 * time.Minute, Comment: "x"}},
		},
		{
			name: "invalid entries dropped",
			text: `{"work_logs": [
				{"issue_key": "meeting", "time_spent": "1h"},
				{"issue_key": "FOO-3", "time_spent": "a while"},
				{"issue_key": "FOO-4", "time_spent": "0"},
				{"issue_key": "https://jira/browse/FOO-5", "time_spent": "20m", "comment": "c"}
			]}`,
			want: []Draft{{IssueKey: "FOO-5", TimeSpent: 20 * time.Minute, Comment: "c"}},
		},
		{name: "no json", text: "I could not find anything to log.", want: nil},
		{name: "broken json", text: `{"work_logs": [`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDrafts(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractDrafts() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("draft %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	issues := []jira.Issue{{Key: "FOO-1", Summary: "Fix login"}}

	prompt := buildSystemPrompt(issues, 2*time.Hour+5*time.Minute)
	if !strings.Contains(prompt, "- FOO-1: Fix login") {
		t.Errorf("prompt does not list issues:\n%s", prompt)
	}
	if !strings.Contains(prompt, "2h 5m") {
		t.Errorf("prompt does not mention elapsed time:\n%s", prompt)
	}

	prompt = buildSystemPrompt(nil, 0)
	if !strings.Contains(prompt, "no unlogged stopwatch time") {
		t.Errorf("prompt should say there is no elapsed time:\n%s", prompt)
	}
}
