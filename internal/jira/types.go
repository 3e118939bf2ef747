package jira

type Issue struct {
	Key     string
	Summary string
	Project string

	// Seconds, zero when Jira reports no value.
	OriginalEstimate  int
	RemainingEstimate int
	TimeSpent         int
}

type Session struct {
	Name      string `json:"name"`
	LoginInfo struct {
		FailedLoginCount int    `json:"failedLoginCount"`
		LoginCount       int    `json:"loginCount"`
		LastFailedLogin  string `json:"lastFailedLoginTime"`
		PreviousLogin    string `json:"previousLoginTime"`
	} `json:"loginInfo"`
}

type Filter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	JQL  string `json:"jql"`
}

type TimeTracking struct {
	OriginalEstimate         string `json:"originalEstimate"`
	RemainingEstimate        string `json:"remainingEstimate"`
	TimeSpent                string `json:"timeSpent"`
	OriginalEstimateSeconds  int    `json:"originalEstimateSeconds"`
	RemainingEstimateSeconds int    `json:"remainingEstimateSeconds"`
	TimeSpentSeconds         int    `json:"timeSpentSeconds"`
}

// Configuration is the subset of /rest/api/3/configuration the stopwatch cares about.
type Configuration struct {
	TimeTrackingEnabled       bool `json:"timeTrackingEnabled"`
	TimeTrackingConfiguration struct {
		WorkingHoursPerDay float64 `json:"workingHoursPerDay"`
		WorkingDaysPerWeek float64 `json:"workingDaysPerWeek"`
		TimeFormat         string  `json:"timeFormat"`
		DefaultUnit        string  `json:"defaultUnit"`
	} `json:"timeTrackingConfiguration"`
}

type Worklog struct {
	ID               string `json:"id"`
	TimeSpent        string `json:"timeSpent"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
	Started          string `json:"started"`
}

type Comment struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

type Transition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	To   struct {
		Name string `json:"name"`
	} `json:"to"`
}

type searchResponse struct {
	Issues        []searchIssue `json:"issues"`
	NextPageToken string        `json:"nextPageToken"`
	IsLast        bool          `json:"isLast"`
}

type searchIssue struct {
	Key    string      `json:"key"`
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Summary      string        `json:"summary"`
	Project      *issueProject `json:"project"`
	TimeTracking *TimeTracking `json:"timetracking"`
}

type issueProject struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type transitionsResponse struct {
	Transitions []Transition `json:"transitions"`
}

type worklogPayload struct {
	TimeSpent string `json:"timeSpent"`
	Started   string `json:"started"`
	Comment   string `json:"comment"`
}

type commentPayload struct {
	Body string `json:"body"`
}

type transitionPayload struct {
	Transition transitionRef `json:"transition"`
}

type transitionRef struct {
	ID int `json:"id"`
}

func (si searchIssue) toIssue() Issue {
	issue := Issue{Key: si.Key, Summary: si.Fields.Summary}
	if si.Fields.Project != nil {
		issue.Project = si.Fields.Project.Key
	}
	if tt := si.Fields.TimeTracking; tt != nil {
		issue.OriginalEstimate = tt.OriginalEstimateSeconds
		issue.RemainingEstimate = tt.RemainingEstimateSeconds
		issue.TimeSpent = tt.TimeSpentSeconds
	}
	return issue
}
