package timeparse

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const day = 24 * time.Hour

// Parse converts a Jira-style time string like "1d 2h 5m", "2.5h" or "5m2h" into a duration.
// Units may come in any order and any case; when a unit repeats, the last one wins.
// The result is truncated to whole minutes. ok is false for malformed input or
// quantities too large for a time.Duration.
func Parse(input string) (d time.Duration, ok bool) {
	s := strings.TrimSpace(input)
	if s == "0" {
		return 0, true
	}
	if s == "" {
		return 0, false
	}

	units := map[byte]time.Duration{}
	for s != "" {
		n := numberPrefix(s)
		if n == 0 || n == len(s) {
			return 0, false
		}
		value, err := strconv.ParseFloat(s[:n], 64)
		if err != nil {
			return 0, false
		}

		unit := byte(unicode.ToLower(rune(s[n])))
		var v time.Duration
		switch unit {
		case 'd':
			v, ok = component(value, day)
		case 'h':
			v, ok = component(value, time.Hour)
		case 'm':
			v, ok = component(math.Trunc(value), time.Minute)
		default:
			return 0, false
		}
		if !ok {
			return 0, false
		}
		units[unit] = v

		s = strings.TrimLeftFunc(s[n+1:], unicode.IsSpace)
	}

	for _, v := range units {
		if d > math.MaxInt64-v {
			return 0, false
		}
		d += v
	}
	return d.Truncate(time.Minute), true
}

// maxSeconds is the largest whole number of seconds a time.Duration can hold.
const maxSeconds = float64(math.MaxInt64 / int64(time.Second))

// component converts value units into a duration rounded to the second, so
// decimal quantities like 2.3h land on exact minutes. ok is false on overflow.
func component(value float64, unit time.Duration) (time.Duration, bool) {
	secs := math.Round(value * unit.Seconds())
	if math.IsNaN(secs) || secs < 0 || secs > maxSeconds {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// numberPrefix returns the length of the leading "123" or "1.5" in s.
func numberPrefix(s string) int {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == 0 {
		return 0
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > i+1 {
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
