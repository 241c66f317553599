package pipeline

import (
	"context"
	"fmt"
	"math"

	"github.com/jonesrussell/playlist-pulse/internal/analytics"
	"github.com/jonesrussell/playlist-pulse/internal/domain"
	"github.com/jonesrussell/playlist-pulse/internal/logger"
	"github.com/jonesrussell/playlist-pulse/internal/status"
)

// RefreshAnalytics recomputes the derived records from the stored daily
// series: the trailing-month chart views and both change reports. It runs
// after a fresh ingest; reports are recomputed from scratch, never merged
// with their previous values.
func (s *Service) RefreshAnalytics(ctx context.Context) error {
	series, listErr := s.storage.ListDailyPoints(ctx)
	if listErr != nil {
		message := fmt.Sprintf("Failed to read stored data: %v", listErr)
		s.log.Error("Analytics refresh failed", logger.Error(listErr))
		s.reporter.Report(ctx, status.TitleFinalResult, message, false)
		return listErr
	}

	if len(series) == 0 {
		s.log.Info("No stored data, skipping analytics refresh")
		return nil
	}

	full, recent := analytics.SplitViews(series)

	// Only the trailing-month views are persisted; the full views feed the
	// change reports below.
	if saveErr := s.storage.SaveMonthViews(ctx, recent); saveErr != nil {
		s.log.Error("Failed to save month views", logger.Error(saveErr))
	}

	videoCounts := pointValues(full.VideoCountPoints)
	minuteTotals := pointValues(full.TotalMinutesPoints)

	calcs := domain.Calcs{
		VideoChanges:  foldVideoChanges(analytics.Changes(videoCounts), videoCounts, minuteTotals),
		MinuteChanges: foldMinuteChanges(analytics.Changes(minuteTotals), videoCounts, minuteTotals),
	}

	if saveErr := s.storage.SaveCalcs(ctx, calcs); saveErr != nil {
		s.log.Error("Failed to save change reports", logger.Error(saveErr))
		return nil
	}

	s.log.Info("Analytics refreshed",
		logger.Int("series_length", len(series)),
		logger.String("indicator", calcs.VideoChanges.ChangeIndicator),
	)
	return nil
}

// pointValues extracts the y values of a point view.
func pointValues(points []domain.Point) []int {
	values := make([]int, 0, len(points))
	for _, p := range points {
		values = append(values, p.Y)
	}
	return values
}

// foldVideoChanges folds the current absolute numbers into the video-count
// report: the latest count and the latest total duration split into hours and
// remaining minutes.
func foldVideoChanges(report *domain.ChangeReport, videoCounts, minuteTotals []int) domain.VideoChanges {
	if report == nil {
		return domain.VideoChanges{}
	}

	latestMinutes := lastValue(minuteTotals)
	return domain.VideoChanges{
		ChangeReport:   *report,
		CurrentVideos:  lastValue(videoCounts),
		CurrentHours:   latestMinutes / 60,
		CurrentMinutes: latestMinutes % 60,
	}
}

// foldMinuteChanges folds the minutes-per-video ratio of the latest day into
// the total-minutes report. The ratio is undefined on a zero video count and
// stays nil rather than dividing by zero.
func foldMinuteChanges(report *domain.ChangeReport, videoCounts, minuteTotals []int) domain.MinuteChanges {
	if report == nil {
		return domain.MinuteChanges{}
	}

	changes := domain.MinuteChanges{ChangeReport: *report}
	if latestCount := lastValue(videoCounts); latestCount > 0 {
		ratio := int(math.Round(float64(lastValue(minuteTotals)) / float64(latestCount)))
		changes.MinutesPerVideo = &ratio
	}
	return changes
}

// lastValue returns the final element of values, 0 for an empty slice.
func lastValue(values []int) int {
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}
