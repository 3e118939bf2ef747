package jira

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-stopwatch/internal/timeparse"
)

// Request describes a single Jira REST call relative to the server base URL.
// Path may already carry a pre-encoded query string; Query is appended after it.
type Request struct {
	Method string
	Path   string
	Query  []QueryParam
	Body   any
}

type QueryParam struct {
	Key   string
	Value string
}

// URL joins base and the request path, appending Query in order.
func (r Request) URL(base string) string {
	u := strings.TrimRight(base, "/") + r.Path
	if len(r.Query) == 0 {
		return u
	}
	sep := "?"
	if strings.Contains(r.Path, "?") {
		sep = "&"
	}
	var sb strings.Builder
	sb.WriteString(u)
	for _, p := range r.Query {
		sb.WriteString(sep)
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
		sep = "&"
	}
	return sb.String()
}

func (r *Request) addQuery(key, value string) {
	r.Query = append(r.Query, QueryParam{Key: key, Value: value})
}

type EstimateMethod int

const (
	EstimateLeave EstimateMethod = iota
	EstimateSetTo
	EstimateManualDecrease
	EstimateAuto
)

// EstimateAdjustment controls how posting a worklog changes the issue's remaining estimate.
// Value is a Jira duration string and is only used by SetTo and ManualDecrease.
type EstimateAdjustment struct {
	Method EstimateMethod
	Value  string
}

func Leave() EstimateAdjustment { return EstimateAdjustment{Method: EstimateLeave} }
func Auto() EstimateAdjustment { return EstimateAdjustment{Method: EstimateAuto} }

func SetTo(value string) EstimateAdjustment {
	return EstimateAdjustment{Method: EstimateSetTo, Value: value}
}

func ManualDecrease(value string) EstimateAdjustment {
	return EstimateAdjustment{Method: EstimateManualDecrease, Value: value}
}

// ParseEstimateMethod maps the adjustEstimate wire names ("leave", "new", "manual", "auto").
func ParseEstimateMethod(s string) (EstimateMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return EstimateAuto, nil
	case "leave":
		return EstimateLeave, nil
	case "new":
		return EstimateSetTo, nil
	case "manual":
		return EstimateManualDecrease, nil
	}
	return 0, fmt.Errorf("unknown estimate adjustment %q", s)
}

func (m EstimateMethod) String() string {
	switch m {
	case EstimateLeave:
		return "leave"
	case EstimateSetTo:
		return "new"
	case EstimateManualDecrease:
		return "manual"
	default:
		return "auto"
	}
}

func ValidateSession() Request {
	return Request{Method: http.MethodGet, Path: "/rest/auth/1/session"}
}

func GetFavoriteFilters() Request {
	return Request{Method: http.MethodGet, Path: "/rest/api/2/filter/favourite"}
}

// SearchByJQL expects jql to be URL-encoded by the caller.
func SearchByJQL(jql string) Request {
	return Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/rest/api/2/search/jql?jql=%s&maxResults=200&fields=key,summary,project,timetracking", jql),
	}
}

func GetIssueSummary(key string) Request {
	return Request{Method: http.MethodGet, Path: issuePath(key, "")}
}

func GetIssueTimetracking(key string) Request {
	return Request{Method: http.MethodGet, Path: issuePath(key, "") + "?fields=timetracking"}
}

func PostWorklog(key string, started time.Time, timeSpent time.Duration, comment string, adj EstimateAdjustment) Request {
	req := Request{
		Method: http.MethodPost,
		Path:   issuePath(key, "/worklog"),
		Body: worklogPayload{
			TimeSpent: timeparse.FormatDuration(timeSpent),
			Started:   timeparse.FormatTimestamp(started),
			Comment:   comment,
		},
	}
	switch adj.Method {
	case EstimateLeave:
		req.addQuery("adjustEstimate", "leave")
	case EstimateSetTo:
		req.addQuery("adjustEstimate", "new")
		req.addQuery("newEstimate", adj.Value)
	case EstimateManualDecrease:
		req.addQuery("adjustEstimate", "manual")
		req.addQuery("reduceBy", adj.Value)
	case EstimateAuto:
		req.addQuery("adjustEstimate", "auto")
	}
	return req
}

func GetConfiguration() Request {
	return Request{Method: http.MethodGet, Path: "/rest/api/3/configuration"}
}

func PostComment(key, comment string) Request {
	return Request{
		Method: http.MethodPost,
		Path:   issuePath(key, "/comment"),
		Body:   commentPayload{Body: comment},
	}
}

func GetTransitions(key string) Request {
	return Request{Method: http.MethodGet, Path: issuePath(key, "/transitions")}
}

func DoTransition(key string, transitionID int) Request {
	return Request{
		Method: http.MethodPost,
		Path:   issuePath(key, "/transitions"),
		Body:   transitionPayload{Transition: transitionRef{ID: transitionID}},
	}
}

func issuePath(key, suffix string) string {
	return "/rest/api/2/issue/" + strings.TrimSpace(key) + suffix
}
