package analytics

import "github.com/jonesrussell/playlist-pulse/internal/domain"

// SplitViews projects the chronological daily series into chart point views:
// full covers the whole series, recent the trailing monthWindow days (or the
// whole series when it is shorter). The input is never mutated.
func SplitViews(series []domain.DailyPoint) (full, recent domain.SeriesViews) {
	videoPoints := make([]domain.Point, 0, len(series))
	minutePoints := make([]domain.Point, 0, len(series))

	for _, p := range series {
		videoPoints = append(videoPoints, domain.Point{X: p.Date, Y: p.VideoCount})
		minutePoints = append(minutePoints, domain.Point{X: p.Date, Y: p.TotalMinutes})
	}

	full = domain.SeriesViews{
		VideoCountPoints:   videoPoints,
		TotalMinutesPoints: minutePoints,
	}

	recent = domain.SeriesViews{
		VideoCountPoints:   trailingPoints(videoPoints, monthWindow),
		TotalMinutesPoints: trailingPoints(minutePoints, monthWindow),
	}

	return full, recent
}

// trailingPoints returns the last n points, or all of them if there are fewer.
func trailingPoints(points []domain.Point, n int) []domain.Point {
	if len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}
