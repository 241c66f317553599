// Package domain contains the core domain models for the playlist tracker.
package domain

// DailyPoint is one day's measurement of the tracked playlist. The date is
// the natural key; exactly one point may exist per calendar day.
type DailyPoint struct {
	Date         string `json:"date"`
	VideoCount   int    `json:"video_count"`
	TotalMinutes int    `json:"total_minutes"`
}

// DayKeyFormat is the layout of DailyPoint.Date and of document keys in the
// playlist_data collection.
const DayKeyFormat = "2006-01-02"

// Point is a single chart point: x is a day key, y a measured value.
type Point struct {
	X string `json:"x"`
	Y int    `json:"y"`
}

// SeriesViews holds the chart-ready projection of a daily series, one point
// list per tracked metric.
type SeriesViews struct {
	VideoCountPoints   []Point `json:"video_count_points"`
	TotalMinutesPoints []Point `json:"total_minutes_points"`
}

// Change indicator glyphs, compared over the last two values of a series.
const (
	IndicatorUp   = "↑"
	IndicatorDown = "↓"
	IndicatorFlat = "●"
)

// ChangeReport holds the windowed trend statistics for one metric of the
// daily series. A nil *ChangeReport stands for "no data" and is distinct
// from a zero-filled report.
type ChangeReport struct {
	LastDayDifference   int `json:"last_day_difference"`
	LastWeekDifference  int `json:"last_week_difference"`
	LastMonthDifference int `json:"last_month_difference"`
	TotalDifference     int `json:"total_difference"`

	LastWeekAdded    int `json:"last_week_added"`
	LastWeekRemoved  int `json:"last_week_removed"`
	LastMonthAdded   int `json:"last_month_added"`
	LastMonthRemoved int `json:"last_month_removed"`
	TotalAdded       int `json:"total_added"`
	TotalRemoved     int `json:"total_removed"`

	LastWeekAverageChange  float64 `json:"last_week_average_change"`
	LastMonthAverageChange float64 `json:"last_month_average_change"`
	TotalAverageChange     float64 `json:"total_average_change"`

	ChangeIndicator string `json:"change_indicator"`
}

// VideoChanges is the video-count change report plus the current absolute
// numbers folded in for display.
type VideoChanges struct {
	ChangeReport
	CurrentVideos  int `json:"current_videos"`
	CurrentHours   int `json:"current_hours"`
	CurrentMinutes int `json:"current_minutes"`
}

// MinuteChanges is the total-minutes change report plus the minutes-per-video
// ratio of the latest day. The ratio is nil when the latest video count is
// zero, so readers can tell "undefined" from an actual zero.
type MinuteChanges struct {
	ChangeReport
	MinutesPerVideo *int `json:"minutes_per_video"`
}

// Calcs is the full contents of the parsed_data/calcs document.
type Calcs struct {
	VideoChanges  VideoChanges  `json:"video_changes"`
	MinuteChanges MinuteChanges `json:"minute_changes"`
}
