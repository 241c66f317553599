// Package pipeline orchestrates the daily collection run: check whether
// today's point exists, fetch the playlist measurements from the source port,
// persist the daily point, and record the terminal outcome. Exactly one
// status is reported per run, success or not.
package pipeline

import (
	"context"
	"fmt"

	"github.com/jonesrussell/playlist-pulse/internal/clock"
	"github.com/jonesrussell/playlist-pulse/internal/domain"
	"github.com/jonesrussell/playlist-pulse/internal/logger"
	"github.com/jonesrussell/playlist-pulse/internal/status"
	"github.com/jonesrussell/playlist-pulse/internal/youtube"
)

// durationBatchSize is the largest ID batch sent to one duration lookup.
const durationBatchSize = 50

// Source is the playlist listing port consumed by the pipeline.
type Source interface {
	// Authenticate verifies the source is usable before any data is fetched.
	Authenticate(ctx context.Context) error
	// ListPage returns one page of item IDs and the next page token, empty
	// when the listing is exhausted.
	ListPage(ctx context.Context, playlistID, pageToken string) ([]string, string, error)
	// Durations maps up to 50 item IDs to their raw duration strings.
	Durations(ctx context.Context, ids []string) (map[string]string, error)
}

// Storage is the data access interface for daily points and derived records.
type Storage interface {
	GetDailyPoint(ctx context.Context, date string) (*domain.DailyPoint, bool, error)
	SaveDailyPoint(ctx context.Context, point domain.DailyPoint) error
	ListDailyPoints(ctx context.Context) ([]domain.DailyPoint, error)
	SaveMonthViews(ctx context.Context, recent domain.SeriesViews) error
	SaveCalcs(ctx context.Context, calcs domain.Calcs) error
}

// Reporter records a named run status.
type Reporter interface {
	Report(ctx context.Context, title, message string, success bool)
}

// Outcome is the terminal state of one collection run.
type Outcome string

// Terminal outcomes. AlreadyIngested is a success: the day's point exists and
// nothing was fetched or written.
const (
	OutcomeIngested        Outcome = "ingested"
	OutcomeAlreadyIngested Outcome = "already_ingested"
	OutcomeFailed          Outcome = "failed"
)

// RunResult is the reported end state of a run.
type RunResult struct {
	Outcome Outcome
	Message string
}

// Service runs the daily collection.
type Service struct {
	source     Source
	storage    Storage
	reporter   Reporter
	clk        clock.Clock
	playlistID string
	log        logger.Logger
}

// NewService creates a collection pipeline.
func NewService(
	source Source,
	storage Storage,
	reporter Reporter,
	clk clock.Clock,
	playlistID string,
	log logger.Logger,
) *Service {
	return &Service{
		source:     source,
		storage:    storage,
		reporter:   reporter,
		clk:        clk,
		playlistID: playlistID,
		log:        log,
	}
}

// Run executes one collection for the current day. Every terminal transition
// reports exactly once through the status reporter; Run itself never returns
// an error.
func (s *Service) Run(ctx context.Context) RunResult {
	today := s.clk.Today()
	s.log.Info("Starting collection run", logger.String("date", today))

	existing, found, checkErr := s.storage.GetDailyPoint(ctx, today)
	if checkErr != nil {
		return s.fail(ctx, fmt.Sprintf("Failed to check existing data for %s: %v", today, checkErr))
	}
	if found {
		message := fmt.Sprintf("Data for %s already saved.", today)
		s.log.Info("Day already ingested",
			logger.String("date", today),
			logger.Int("video_count", existing.VideoCount),
		)
		s.reporter.Report(ctx, status.TitleFinalResult, message, true)
		return RunResult{Outcome: OutcomeAlreadyIngested, Message: message}
	}

	if authErr := s.source.Authenticate(ctx); authErr != nil {
		return s.fail(ctx, fmt.Sprintf("Authentication error: %v", authErr))
	}

	videoCount, totalMinutes, fetchErr := s.fetchCounts(ctx)
	if fetchErr != nil {
		return s.fail(ctx, fmt.Sprintf("Failed to fetch playlist data: %v", fetchErr))
	}

	point := domain.DailyPoint{
		Date:         today,
		VideoCount:   videoCount,
		TotalMinutes: totalMinutes,
	}
	if storeErr := s.storage.SaveDailyPoint(ctx, point); storeErr != nil {
		return s.fail(ctx, fmt.Sprintf("Failed to save data for %s: %v", today, storeErr))
	}

	message := fmt.Sprintf("Data for %s saved: %d videos, %d minutes.", today, videoCount, totalMinutes)
	s.log.Info("Daily point saved",
		logger.String("date", today),
		logger.Int("video_count", videoCount),
		logger.Int("total_minutes", totalMinutes),
	)
	s.reporter.Report(ctx, status.TitleFinalResult, message, true)

	return RunResult{Outcome: OutcomeIngested, Message: message}
}

// fetchCounts lists the whole playlist and sums the parsed durations. An
// empty playlist is a valid result, not a fetch failure. A malformed duration
// aborts the run instead of silently under-counting.
func (s *Service) fetchCounts(ctx context.Context) (videoCount, totalMinutes int, err error) {
	var ids []string
	pageToken := ""
	for {
		pageIDs, nextToken, pageErr := s.source.ListPage(ctx, s.playlistID, pageToken)
		if pageErr != nil {
			return 0, 0, pageErr
		}
		ids = append(ids, pageIDs...)

		if nextToken == "" {
			break
		}
		pageToken = nextToken
	}

	if len(ids) == 0 {
		s.log.Info("Playlist is empty", logger.String("playlist_id", s.playlistID))
		return 0, 0, nil
	}

	for start := 0; start < len(ids); start += durationBatchSize {
		end := min(start+durationBatchSize, len(ids))
		batch := ids[start:end]

		durations, durationsErr := s.source.Durations(ctx, batch)
		if durationsErr != nil {
			return 0, 0, durationsErr
		}

		for _, id := range batch {
			raw, ok := durations[id]
			if !ok {
				// Deleted or private videos have no duration entry.
				continue
			}

			minutes, parseErr := youtube.ParseDuration(raw)
			if parseErr != nil {
				return 0, 0, fmt.Errorf("video %s: %w", id, parseErr)
			}
			totalMinutes += minutes
		}
	}

	return len(ids), totalMinutes, nil
}

// fail reports the terminal failure and returns the failed result.
func (s *Service) fail(ctx context.Context, message string) RunResult {
	s.log.Error("Collection run failed", logger.String("reason", message))
	s.reporter.Report(ctx, status.TitleFinalResult, message, false)
	return RunResult{Outcome: OutcomeFailed, Message: message}
}
