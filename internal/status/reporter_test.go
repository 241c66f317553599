package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonesrussell/playlist-pulse/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func (c fixedClock) Today() string { return c.now.Format("2006-01-02") }

type captureWriter struct {
	fields map[string]any
	err    error
}

func (w *captureWriter) SaveStatusFields(_ context.Context, fields map[string]any) error {
	w.fields = fields
	return w.err
}

func TestReporter_Report(t *testing.T) {
	writer := &captureWriter{}
	clk := fixedClock{now: time.Date(2026, 8, 29, 3, 15, 42, 0, time.UTC)}

	reporter := NewReporter(writer, clk, logger.Nop())
	reporter.Report(context.Background(), TitleFinalResult, "Data for 2026-08-29 saved: 120 videos, 5400 minutes.", true)

	require.NotNil(t, writer.fields)
	assert.Equal(t, "Data for 2026-08-29 saved: 120 videos, 5400 minutes.", writer.fields[TitleFinalResult])
	assert.Equal(t, "29/08/2026 03:15:42", writer.fields["final_result_timestamp"])
	assert.Equal(t, true, writer.fields["success"])
}

func TestReporter_Report_Failure(t *testing.T) {
	writer := &captureWriter{}
	clk := fixedClock{now: time.Date(2026, 8, 29, 3, 15, 42, 0, time.UTC)}

	reporter := NewReporter(writer, clk, logger.Nop())
	reporter.Report(context.Background(), TitleFinalResult, "Authentication error: missing API key", false)

	require.NotNil(t, writer.fields)
	assert.Equal(t, false, writer.fields["success"])
}

func TestReporter_Report_WriteErrorIsSwallowed(t *testing.T) {
	writer := &captureWriter{err: errors.New("connection refused")}
	clk := fixedClock{now: time.Now()}

	reporter := NewReporter(writer, clk, logger.Nop())

	// Must not panic or propagate: status is best-effort telemetry.
	reporter.Report(context.Background(), TitleFinalResult, "whatever", false)
}
