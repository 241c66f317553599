// Package analytics computes trend statistics over the daily playlist series.
// Everything here is pure; persistence and guarding against empty data are the
// caller's job.
package analytics

import (
	"math"

	"github.com/jonesrussell/playlist-pulse/internal/domain"
)

// Trailing window lengths in days.
const (
	weekWindow  = 7
	monthWindow = 28
)

// Changes computes the windowed change report for one metric of the series,
// oldest value first. It returns nil for an empty series; a nil report means
// "no data" and must not be read as a zero-filled one.
func Changes(values []int) *domain.ChangeReport {
	if len(values) == 0 {
		return nil
	}

	diffs := dayDeltas(values)
	weekDiffs := trailing(diffs, weekWindow)
	monthDiffs := trailing(diffs, monthWindow)

	report := &domain.ChangeReport{
		TotalDifference: values[len(values)-1] - values[0],
		ChangeIndicator: Indicator(values),
	}

	report.LastWeekAdded, report.LastWeekRemoved = splitSigns(weekDiffs)
	report.LastMonthAdded, report.LastMonthRemoved = splitSigns(monthDiffs)
	report.TotalAdded, report.TotalRemoved = splitSigns(diffs)

	report.LastWeekAverageChange = average(weekDiffs)
	report.LastMonthAverageChange = average(monthDiffs)
	report.TotalAverageChange = average(diffs)

	if n := len(values); n > 1 {
		report.LastDayDifference = values[n-1] - values[n-2]
	}
	if n := len(values); n > weekWindow {
		report.LastWeekDifference = values[n-1] - values[n-weekWindow]
	}
	if n := len(values); n > monthWindow {
		report.LastMonthDifference = values[n-1] - values[n-monthWindow]
	}

	return report
}

// Indicator returns the single-glyph direction of the most recent change, or
// an empty string when the series has fewer than two points.
func Indicator(values []int) string {
	if len(values) < 2 {
		return ""
	}

	last, previous := values[len(values)-1], values[len(values)-2]
	switch {
	case last > previous:
		return domain.IndicatorUp
	case last < previous:
		return domain.IndicatorDown
	default:
		return domain.IndicatorFlat
	}
}

// dayDeltas returns the n-1 day-to-day differences of the series.
func dayDeltas(values []int) []int {
	if len(values) < 2 {
		return nil
	}

	diffs := make([]int, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		diffs = append(diffs, values[i]-values[i-1])
	}
	return diffs
}

// trailing returns the last n deltas, or all of them if there are fewer.
func trailing(diffs []int, n int) []int {
	if len(diffs) <= n {
		return diffs
	}
	return diffs[len(diffs)-n:]
}

// splitSigns sums the positive deltas into added and the negative deltas,
// kept negative, into removed.
func splitSigns(diffs []int) (added, removed int) {
	for _, d := range diffs {
		if d > 0 {
			added += d
		} else {
			removed += d
		}
	}
	return added, removed
}

// average returns the mean of diffs rounded to two decimal places, 0 for an
// empty list.
func average(diffs []int) float64 {
	if len(diffs) == 0 {
		return 0
	}

	sum := 0
	for _, d := range diffs {
		sum += d
	}

	mean := float64(sum) / float64(len(diffs))
	return math.Round(mean*100) / 100
}
