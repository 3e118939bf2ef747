package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-stopwatch/internal/config"

	"github.com/zalando/go-keyring"
)

func TestResolveTimeSpent(t *testing.T) {
	tests := []struct {
		name          string
		args          string
		elapsed       time.Duration
		want          time.Duration
		fromStopwatch bool
		wantErr       bool
	}{
		{"explicit", "2h 30m", time.Hour, 150 * time.Minute, false, false},
		{"stopwatch truncated", "", 65*time.Minute + 59*time.Second, 65 * time.Minute, true, false},
		{"bad input", "2 h", time.Hour, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fromStopwatch, err := resolveTimeSpent(tt.args, tt.elapsed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want || fromStopwatch != tt.fromStopwatch {
				t.Errorf("resolveTimeSpent(%q, %v) = %v, %v; want %v, %v",
					tt.args, tt.elapsed, got, fromStopwatch, tt.want, tt.fromStopwatch)
			}
		})
	}
}

func TestRemainingAfterLog(t *testing.T) {
	tests := []struct {
		elapsed, logged, want time.Duration
	}{
		{65*time.Minute + 20*time.Second, 65 * time.Minute, 20 * time.Second},
		{time.Hour, 30 * time.Minute, 30 * time.Minute},
		{time.Hour, 2 * time.Hour, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := remainingAfterLog(tt.elapsed, tt.logged); got != tt.want {
			t.Errorf("remainingAfterLog(%v, %v) = %v, want %v", tt.elapsed, tt.logged, got, tt.want)
		}
	}
}

func TestStoreCredentials(t *testing.T) {
	keyring.MockInit()
	dir := t.TempDir()
	t.Setenv("STOPWATCH_CONFIG_DIR", dir)

	cfg := &config.Config{JiraURL: "https://jira.example.com", JiraUsername: "dave"}
	if err := storeCredentials(cfg, "dave", "t1"); err != nil {
		t.Fatalf("storeCredentials: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); !os.IsNotExist(err) {
		t.Errorf("config.json written for unchanged username: %v", err)
	}
	if got, _ := keyring.Get("go-stopwatch", "dave"); got != "t1" {
		t.Errorf("keychain token = %q, want t1", got)
	}

	if err := storeCredentials(cfg, "erin", "t2"); err != nil {
		t.Fatalf("storeCredentials: %v", err)
	}
	if cfg.JiraUsername != "erin" || cfg.JiraAPIToken != "t2" {
		t.Errorf("cfg = %q/%q, want erin/t2", cfg.JiraUsername, cfg.JiraAPIToken)
	}
	got, err := config.LoadFromFile()
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if got.JiraUsername != "erin" || got.JiraAPIToken != "t2" {
		t.Errorf("loaded = %q/%q, want erin/t2", got.JiraUsername, got.JiraAPIToken)
	}
}
