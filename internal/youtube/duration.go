package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

// minutesPerDay converts the day component of a duration to minutes.
const minutesPerDay = 1440

// durationPattern matches the ISO-8601-style durations returned by the
// videos.list endpoint: P[nD]T[nH][nM][nS], any component optional.
var durationPattern = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// MalformedDurationError reports a duration string that does not match the
// expected grammar. A string with zero matched components is malformed too,
// it is not a zero-length duration.
type MalformedDurationError struct {
	Input string
}

func (e *MalformedDurationError) Error() string {
	return fmt.Sprintf("malformed duration %q", e.Input)
}

// ParseDuration converts a playlist item duration to total whole minutes:
// days*1440 + hours*60 + minutes + seconds/60 (seconds truncated).
func ParseDuration(raw string) (int, error) {
	match := durationPattern.FindStringSubmatch(raw)
	if match == nil {
		return 0, &MalformedDurationError{Input: raw}
	}

	if match[1] == "" && match[2] == "" && match[3] == "" && match[4] == "" {
		return 0, &MalformedDurationError{Input: raw}
	}

	days := componentValue(match[1])
	hours := componentValue(match[2])
	minutes := componentValue(match[3])
	seconds := componentValue(match[4])

	return days*minutesPerDay + hours*60 + minutes + seconds/60, nil
}

// componentValue converts a matched digit group to an int, absent = 0.
func componentValue(group string) int {
	if group == "" {
		return 0
	}
	// The pattern only matches digits, so this cannot fail.
	n, _ := strconv.Atoi(group)
	return n
}
