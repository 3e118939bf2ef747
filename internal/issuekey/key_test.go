package issuekey

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"KEY-123", "KEY-123"},
		{"http://jira.test.local/browse/KEY-123", "KEY-123"},
		{"browse/KEY-123", "KEY-123"},
		{"http://jira.test.local/browse/KEY-123?foo=bar&key=FOO-555", "KEY-123"},
		{"http://jira.test.local/browse/KEY-123/somefoo/qwe?foo=bar&key=FOO-555", "KEY-123"},
		{"http://jira.test.local/bwse/KEY-123", "KEY-123"},
		{"see key-7 please", "key-7"},
		{"MY_PROJ2-9", "MY_PROJ2-9"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Extract(tt.input); got != tt.want {
				t.Errorf("Extract(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractNoMatch(t *testing.T) {
	for _, input := range []string{
		"ABC",
		"http://jira.test.local/bwse/",
		"http://jira.test.local/browse/KEY-",
		"",
	} {
		t.Run(input, func(t *testing.T) {
			if got := Extract(input); got != input {
				t.Errorf("Extract(%q) = %q, want input unchanged", input, got)
			}
			if Valid(input) {
				t.Errorf("Valid(%q) = true", input)
			}
		})
	}
}
