// Package status records run outcomes in the shared run status document.
package status

import (
	"context"

	"github.com/jonesrussell/playlist-pulse/internal/clock"
	"github.com/jonesrussell/playlist-pulse/internal/logger"
)

// TitleFinalResult is the status name written at the end of every collector run.
const TitleFinalResult = "final_result"

// timestampFormat is the display format of status timestamps, in the service
// timezone.
const timestampFormat = "02/01/2006 15:04:05"

// Writer persists named status fields with merge semantics.
type Writer interface {
	SaveStatusFields(ctx context.Context, fields map[string]any) error
}

// Reporter writes one named status (message, timestamp, success flag) per
// call. Several named statuses coexist in the same document because the
// underlying write merges fields.
type Reporter struct {
	writer Writer
	clk    clock.Clock
	log    logger.Logger
}

// NewReporter creates a status reporter.
func NewReporter(writer Writer, clk clock.Clock, log logger.Logger) *Reporter {
	return &Reporter{
		writer: writer,
		clk:    clk,
		log:    log,
	}
}

// Report merge-writes the named status with its companion timestamp field and
// the overall success flag. A failed write is logged and swallowed: the run
// being reported on is already terminating and must not crash over telemetry.
func (r *Reporter) Report(ctx context.Context, title, message string, success bool) {
	fields := map[string]any{
		title:                message,
		title + "_timestamp": r.clk.Now().Format(timestampFormat),
		"success":            success,
	}

	if writeErr := r.writer.SaveStatusFields(ctx, fields); writeErr != nil {
		r.log.Error("Failed to save run status",
			logger.String("title", title),
			logger.Error(writeErr),
		)
		return
	}

	r.log.Info("Run status saved",
		logger.String("title", title),
		logger.Bool("success", success),
	)
}
