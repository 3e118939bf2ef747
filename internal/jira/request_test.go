package jira

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBuilders(t *testing.T) {
	started := time.Date(2016, 7, 26, 1, 44, 15, 0, time.UTC)

	tests := []struct {
		name   string
		req    Request
		method string
		path   string
	}{
		{"validate session", ValidateSession(), http.MethodGet, "/rest/auth/1/session"},
		{"favourite filters", GetFavoriteFilters(), http.MethodGet, "/rest/api/2/filter/favourite"},
		{"search", SearchByJQL("status%3Dopen"), http.MethodGet,
			"/rest/api/2/search/jql?jql=status%3Dopen&maxResults=200&fields=key,summary,project,timetracking"},
		{"issue summary", GetIssueSummary("FOO-42"), http.MethodGet, "/rest/api/2/issue/FOO-42"},
		{"timetracking", GetIssueTimetracking("FOO-42"), http.MethodGet, "/rest/api/2/issue/FOO-42?fields=timetracking"},
		{"worklog", PostWorklog("FOO-42", started, time.Hour, "", Auto()), http.MethodPost, "/rest/api/2/issue/FOO-42/worklog"},
		{"configuration", GetConfiguration(), http.MethodGet, "/rest/api/3/configuration"},
		{"comment", PostComment("FOO-42", "hi"), http.MethodPost, "/rest/api/2/issue/FOO-42/comment"},
		{"transitions", GetTransitions("TST-1"), http.MethodGet, "/rest/api/2/issue/TST-1/transitions"},
		{"do transition", DoTransition("TST-1", 5), http.MethodPost, "/rest/api/2/issue/TST-1/transitions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.method, tt.req.Method)
			assert.Equal(t, tt.path, tt.req.Path)
		})
	}
}

func TestRequestBuildersTrimKey(t *testing.T) {
	const key = "   FOO-42   "
	started := time.Now()

	tests := []struct {
		name string
		req  Request
		path string
	}{
		{"issue summary", GetIssueSummary(key), "/rest/api/2/issue/FOO-42"},
		{"timetracking", GetIssueTimetracking(key), "/rest/api/2/issue/FOO-42?fields=timetracking"},
		{"worklog", PostWorklog(key, started, time.Hour, "", Leave()), "/rest/api/2/issue/FOO-42/worklog"},
		{"comment", PostComment(key, "x"), "/rest/api/2/issue/FOO-42/comment"},
		{"transitions", GetTransitions(key), "/rest/api/2/issue/FOO-42/transitions"},
		{"do transition", DoTransition(key, 1), "/rest/api/2/issue/FOO-42/transitions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.path, tt.req.Path)
		})
	}
}

func TestPostWorklogBody(t *testing.T) {
	started := time.Date(2016, 7, 26, 1, 44, 15, 0, time.UTC)
	req := PostWorklog("FOO-42", started, time.Hour+2*time.Minute, "Sorry for the inconvenience...", Auto())

	data, err := json.Marshal(req.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"timeSpent": "1h 2m",
		"started": "2016-07-26T01:44:15.000+0000",
		"comment": "Sorry for the inconvenience..."
	}`, string(data))
}

func TestPostWorklogEstimateAdjustment(t *testing.T) {
	tests := []struct {
		name string
		adj  EstimateAdjustment
		want []QueryParam
	}{
		{"leave", Leave(), []QueryParam{{"adjustEstimate", "leave"}}},
		{"set to", SetTo("3h"), []QueryParam{{"adjustEstimate", "new"}, {"newEstimate", "3h"}}},
		{"manual", ManualDecrease("30m"), []QueryParam{{"adjustEstimate", "manual"}, {"reduceBy", "30m"}}},
		{"auto", Auto(), []QueryParam{{"adjustEstimate", "auto"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := PostWorklog("FOO-1", time.Now(), time.Hour, "", tt.adj)
			assert.Equal(t, tt.want, req.Query)
		})
	}
}

func TestCommentAndTransitionBodies(t *testing.T) {
	data, err := json.Marshal(PostComment("FOO-42", "Sorry for the inconvenience...").Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"body": "Sorry for the inconvenience..."}`, string(data))

	data, err = json.Marshal(DoTransition("TST-1", 5).Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"transition": {"id": 5}}`, string(data))
}

func TestRequestURL(t *testing.T) {
	req := PostWorklog("FOO-1", time.Now(), time.Hour, "", SetTo("1d 2h"))
	assert.Equal(t,
		"https://jira.example.com/rest/api/2/issue/FOO-1/worklog?adjustEstimate=new&newEstimate=1d+2h",
		req.URL("https://jira.example.com/"))

	req = GetIssueTimetracking("FOO-1")
	req.Query = []QueryParam{{"expand", "names"}}
	assert.Equal(t,
		"https://jira.example.com/rest/api/2/issue/FOO-1?fields=timetracking&expand=names",
		req.URL("https://jira.example.com"))

	assert.Equal(t, "https://jira.example.com/rest/auth/1/session", ValidateSession().URL("https://jira.example.com"))
}

func TestParseEstimateMethod(t *testing.T) {
	for in, want := range map[string]EstimateMethod{
		"":       EstimateAuto,
		"auto":   EstimateAuto,
		"Leave":  EstimateLeave,
		"new":    EstimateSetTo,
		"manual": EstimateManualDecrease,
	} {
		got, err := ParseEstimateMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		if in != "" {
			assert.Equal(t, want.String(), got.String())
		}
	}

	_, err := ParseEstimateMethod("sometimes")
	assert.Error(t, err)
}
