package jira

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Client is the typed Jira API used by the stopwatch session.
type Client struct {
	*Requester
}

// NewClient creates a client for baseURL authenticated as username.
func NewClient(baseURL, username, apiToken string, allowUntrustedCerts bool) *Client {
	c := &Client{Requester: NewRequester(NewRestClient(baseURL, allowUntrustedCerts))}
	c.SetAuthentication(username, apiToken)
	return c
}

func NewClientWithExecutor(exec Executor) *Client {
	return &Client{Requester: NewRequester(exec)}
}

func (c *Client) ValidateSession(ctx context.Context) (*Session, error) {
	var s Session
	if err := c.Do(ctx, ValidateSession(), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) FavoriteFilters(ctx context.Context) ([]Filter, error) {
	var filters []Filter
	if err := c.Do(ctx, GetFavoriteFilters(), &filters); err != nil {
		return nil, err
	}
	return filters, nil
}

// SearchIssues runs a raw (unencoded) JQL query; it is escaped here before building the request.
func (c *Client) SearchIssues(ctx context.Context, jql string) ([]Issue, error) {
	var sr searchResponse
	if err := c.Do(ctx, SearchByJQL(url.QueryEscape(jql)), &sr); err != nil {
		return nil, err
	}

	issues := make([]Issue, 0, len(sr.Issues))
	for _, si := range sr.Issues {
		issues = append(issues, si.toIssue())
	}
	return issues, nil
}

func (c *Client) IssueSummary(ctx context.Context, key string) (*Issue, error) {
	var si searchIssue
	if err := c.Do(ctx, GetIssueSummary(key), &si); err != nil {
		return nil, err
	}
	issue := si.toIssue()
	return &issue, nil
}

func (c *Client) IssueTimetracking(ctx context.Context, key string) (*TimeTracking, error) {
	var si searchIssue
	if err := c.Do(ctx, GetIssueTimetracking(key), &si); err != nil {
		return nil, err
	}
	if si.Fields.TimeTracking == nil {
		return &TimeTracking{}, nil
	}
	return si.Fields.TimeTracking, nil
}

func (c *Client) PostWorklog(ctx context.Context, key string, started time.Time, timeSpent time.Duration, comment string, adj EstimateAdjustment) (*Worklog, error) {
	if timeSpent < time.Minute {
		return nil, fmt.Errorf("time spent must be at least one minute, got %s", timeSpent)
	}
	var wl Worklog
	if err := c.Do(ctx, PostWorklog(key, started, timeSpent, comment, adj), &wl); err != nil {
		return nil, err
	}
	return &wl, nil
}

func (c *Client) Configuration(ctx context.Context) (*Configuration, error) {
	var cfg Configuration
	if err := c.Do(ctx, GetConfiguration(), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Client) PostComment(ctx context.Context, key, comment string) (*Comment, error) {
	var cm Comment
	if err := c.Do(ctx, PostComment(key, comment), &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

func (c *Client) Transitions(ctx context.Context, key string) ([]Transition, error) {
	var tr transitionsResponse
	if err := c.Do(ctx, GetTransitions(key), &tr); err != nil {
		return nil, err
	}
	return tr.Transitions, nil
}

func (c *Client) DoTransition(ctx context.Context, key string, transitionID int) error {
	return c.Do(ctx, DoTransition(key, transitionID), nil)
}
