package issuekey

import "regexp"

var reKey = regexp.MustCompile(`(?i)[A-Z0-9_]+-\d+`)

// Extract returns the first issue key found in text, e.g. "KEY-123" from a browse URL.
// If text contains no key it is returned unchanged.
func Extract(text string) string {
	if key := reKey.FindString(text); key != "" {
		return key
	}
	return text
}

// Valid reports whether text contains an issue key.
func Valid(text string) bool {
	return reKey.MatchString(text)
}
