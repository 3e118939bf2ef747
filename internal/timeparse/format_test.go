package timeparse

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{12*time.Hour + 7*time.Minute, "12h 7m"},
		{9*time.Hour + 15*time.Minute, "9h 15m"},
		{26*time.Hour + 5*time.Minute, "1d 2h 5m"},
		{21*24*time.Hour + 4*time.Hour, "21d 4h 0m"},
		{2 * time.Hour, "2h 0m"},
		{45 * time.Minute, "45m"},
		{45*time.Minute + 59*time.Second, "45m"},
		{0, "0m"},
		{-time.Hour, "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDuration(tt.in); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		offset int
		want   string
	}{
		{0, "2015-09-20T16:40:51.000+0000"},
		{60 * 60, "2015-09-20T16:40:51.000+0100"},
		{(9*60 + 30) * 60, "2015-09-20T16:40:51.000+0930"},
		{-5 * 60 * 60, "2015-09-20T16:40:51.000-0500"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			loc := time.FixedZone("", tt.offset)
			ts := time.Date(2015, 9, 20, 16, 40, 51, 0, loc)
			if got := FormatTimestamp(ts); got != tt.want {
				t.Errorf("FormatTimestamp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTimestampMilliseconds(t *testing.T) {
	ts := time.Date(2016, 7, 26, 1, 44, 15, 123456789, time.UTC)
	if got, want := FormatTimestamp(ts), "2016-07-26T01:44:15.123+0000"; got != want {
		t.Errorf("FormatTimestamp() = %q, want %q", got, want)
	}
}

func TestFormatTimestampIgnoresLocale(t *testing.T) {
	t.Setenv("LANG", "bn_BD.UTF-8")
	t.Setenv("LC_ALL", "bn_BD.UTF-8")

	ts := time.Date(2015, 9, 20, 16, 40, 51, 0, time.FixedZone("", 3600))
	if got, want := FormatTimestamp(ts), "2015-09-20T16:40:51.000+0100"; got != want {
		t.Errorf("FormatTimestamp() = %q, want %q", got, want)
	}
}
