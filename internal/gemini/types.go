package gemini

import "time"

type draftJSON struct {
	IssueKey  string `json:"issue_key"`
	TimeSpent string `json:"time_spent"`
	Comment   string `json:"comment"`
}

type draftResult struct {
	WorkLogs []draftJSON `json:"work_logs"`
}

// Draft is a worklog proposed by the model, already validated.
type Draft struct {
	IssueKey  string
	TimeSpent time.Duration
	Comment   string
}
