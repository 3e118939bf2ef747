package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go-stopwatch/internal/issuekey"
	"go-stopwatch/internal/jira"
	"go-stopwatch/internal/timeparse"

	"google.golang.org/genai"
)

// Assistant turns free-form notes like "spent the morning on the login bug" into worklog drafts.
type Assistant struct {
	client *genai.Client
	model  string
}

func NewAssistant(ctx context.Context, apiKey, model string) (*Assistant, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Assistant{client: client, model: model}, nil
}

func (a *Assistant) Model() string {
	return a.model
}

// DraftWorklogs asks the model to split note into worklogs for the given issues.
// elapsed is the stopwatch time not yet logged; it is offered as a hint.
func (a *Assistant) DraftWorklogs(ctx context.Context, issues []jira.Issue, elapsed time.Duration, note string) ([]Draft, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(buildSystemPrompt(issues, elapsed), genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}

	resp, err := a.generateWithRetry(ctx, note, cfg)
	if err != nil {
		return nil, fmt.Errorf("draft worklogs: %w", err)
	}
	return ExtractDrafts(extractText(resp)), nil
}

func (a *Assistant) generateWithRetry(ctx context.Context, text string, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	const maxRetries = 3
	for attempt := range maxRetries {
		resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(text), cfg)
		if err == nil {
			return resp, nil
		}
		if !strings.Contains(err.Error(), "429") && !strings.Contains(err.Error(), "RESOURCE_EXHAUSTED") {
			return nil, err
		}
		wait := time.Duration(10*(attempt+1)) * time.Second
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return a.client.Models.GenerateContent(ctx, a.model, genai.Text(text), cfg)
}

// ExtractDrafts pulls the work_logs JSON out of a model reply. Entries without a
// parseable issue key or time are dropped; nil means nothing usable was found.
func ExtractDrafts(text string) []Draft {
	jsonStr := ""

	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+7:]
		if end := strings.Index(rest, "```"); end >= 0 {
			jsonStr = strings.TrimSpace(rest[:end])
		}
	} else if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		jsonStr = text[start : end+1]
	}

	if jsonStr == "" {
		return nil
	}

	var result draftResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil
	}

	var drafts []Draft
	for _, wl := range result.WorkLogs {
		if !issuekey.Valid(wl.IssueKey) {
			continue
		}
		d, ok := timeparse.Parse(wl.TimeSpent)
		if !ok || d < time.Minute {
			continue
		}
		drafts = append(drafts, Draft{
			IssueKey:  strings.ToUpper(issuekey.Extract(wl.IssueKey)),
			TimeSpent: d,
			Comment:   strings.TrimSpace(wl.Comment),
		})
	}
	return drafts
}

func buildSystemPrompt(issues []jira.Issue, elapsed time.Duration) string {
	var sb strings.Builder
	for _, issue := range issues {
		fmt.Fprintf(&sb, "- %s: %s\n", issue.Key, issue.Summary)
	}

	timeInfo := "The user has no unlogged stopwatch time."
	if elapsed >= time.Minute {
		timeInfo = "The user's stopwatch shows " + timeparse.FormatDuration(elapsed) +
			" not yet logged; unless the note says otherwise the worklogs should add up to it."
	}

	return fmt.Sprintf(`You convert a developer's note about their work into Jira worklogs.

%s

KNOWN ISSUES:
%s
RULES:
- Only use issue keys from the list above, or keys the user writes explicitly (like PROJ-456).
- Write time_spent in Jira format: "1d 2h 30m", "2h", "45m", "1.5h".
- Write a short comment in the user's language describing what was done.
- Skip activities you cannot map to an issue.
- Reply with JSON only, in this shape:
{"work_logs": [{"issue_key": "PROJ-123", "time_spent": "2h 30m", "comment": "Reviewed login fix"}]}
`, timeInfo, sb.String())
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	return resp.Text()
}
