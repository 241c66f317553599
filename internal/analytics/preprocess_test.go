package analytics

import (
	"fmt"
	"testing"

	"github.com/jonesrussell/playlist-pulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSeries(days int) []domain.DailyPoint {
	series := make([]domain.DailyPoint, 0, days)
	for i := range days {
		series = append(series, domain.DailyPoint{
			Date:         fmt.Sprintf("2026-07-%02d", i+1),
			VideoCount:   100 + i,
			TotalMinutes: 1000 + i*10,
		})
	}
	return series
}

func TestSplitViews_LongSeries(t *testing.T) {
	series := buildSeries(40)

	full, recent := SplitViews(series)

	require.Len(t, full.VideoCountPoints, 40)
	require.Len(t, full.TotalMinutesPoints, 40)
	require.Len(t, recent.VideoCountPoints, 28)
	require.Len(t, recent.TotalMinutesPoints, 28)

	// The recent view is the trailing 28 points, ending on the last day.
	assert.Equal(t, full.VideoCountPoints[12], recent.VideoCountPoints[0])
	assert.Equal(t, full.VideoCountPoints[39], recent.VideoCountPoints[27])
	assert.Equal(t, 139, recent.VideoCountPoints[27].Y)
}

func TestSplitViews_ShortSeries(t *testing.T) {
	series := buildSeries(10)

	full, recent := SplitViews(series)

	assert.Equal(t, full, recent)
	require.Len(t, recent.VideoCountPoints, 10)
	assert.Equal(t, domain.Point{X: "2026-07-01", Y: 100}, full.VideoCountPoints[0])
	assert.Equal(t, domain.Point{X: "2026-07-01", Y: 1000}, full.TotalMinutesPoints[0])
}

func TestSplitViews_EmptySeries(t *testing.T) {
	full, recent := SplitViews(nil)

	assert.Empty(t, full.VideoCountPoints)
	assert.Empty(t, full.TotalMinutesPoints)
	assert.Empty(t, recent.VideoCountPoints)
	assert.Empty(t, recent.TotalMinutesPoints)
}

func TestSplitViews_DoesNotMutateInput(t *testing.T) {
	series := buildSeries(5)
	original := buildSeries(5)

	SplitViews(series)

	assert.Equal(t, original, series)
}
