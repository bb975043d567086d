package analytics

import (
	"regexp"
	"strconv"
)

var (
	durHours   = regexp.MustCompile(`(\d+)H`)
	durMinutes = regexp.MustCompile(`(\d+)M`)
	durSeconds = regexp.MustCompile(`(\d+)S`)
)

// ParseDuration converts a compact ISO-8601 duration such as "PT15M30S"
// into total seconds. Any component may be absent and contributes 0;
// input with no recognizable components yields 0, so a transcription
// error degrades a single metric instead of aborting the run. Values
// beyond typical video lengths are accepted as-is.
func ParseDuration(s string) int {
	total := 0
	if m := durHours.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n * 3600
	}
	if m := durMinutes.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n * 60
	}
	if m := durSeconds.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n
	}
	return total
}
