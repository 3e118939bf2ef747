package ui

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input  string
		want   Command
		wantOK bool
	}{
		{"/log", Command{Name: "/log"}, true},
		{"  /LOG 2h 30m  ", Command{Name: "/log", Args: "2h 30m"}, true},
		{"/issue https://jira/browse/FOO-1", Command{Name: "/issue", Args: "https://jira/browse/FOO-1"}, true},
		{"FOO-1", Command{}, false},
		{"", Command{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseCommand(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseCommand(%q) = %+v, %v; want %+v, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCommandNames(t *testing.T) {
	names := CommandNames()
	if len(names) != len(AvailableCommands) {
		t.Fatalf("got %d names, want %d", len(names), len(AvailableCommands))
	}
	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate command %s", n)
		}
		seen[n] = true
	}
}
