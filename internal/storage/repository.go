package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonesrussell/playlist-pulse/internal/domain"
)

// Repository layers the typed documents of this service over the raw
// document store.
type Repository struct {
	store Store
}

// NewRepository creates a repository over a document store.
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// dailyPointFields is the stored shape of a DailyPoint; the date lives in the
// document key, not in the document body.
type dailyPointFields struct {
	VideoCount   int `json:"video_count"`
	TotalMinutes int `json:"total_minutes"`
}

// GetDailyPoint returns the measurement stored for the given day key.
func (r *Repository) GetDailyPoint(ctx context.Context, date string) (*domain.DailyPoint, bool, error) {
	data, found, getErr := r.store.Get(ctx, CollectionPlaylistData, date)
	if getErr != nil {
		return nil, false, getErr
	}
	if !found {
		return nil, false, nil
	}

	var fields dailyPointFields
	if unmarshalErr := json.Unmarshal(data, &fields); unmarshalErr != nil {
		return nil, false, fmt.Errorf("decode daily point %s: %w", date, unmarshalErr)
	}

	return &domain.DailyPoint{
		Date:         date,
		VideoCount:   fields.VideoCount,
		TotalMinutes: fields.TotalMinutes,
	}, true, nil
}

// SaveDailyPoint merge-writes one day's measurement. Unrelated fields already
// stored under the same day key are preserved.
func (r *Repository) SaveDailyPoint(ctx context.Context, point domain.DailyPoint) error {
	fields := dailyPointFields{
		VideoCount:   point.VideoCount,
		TotalMinutes: point.TotalMinutes,
	}
	return r.store.Set(ctx, CollectionPlaylistData, point.Date, fields)
}

// ListDailyPoints returns the whole daily series in chronological order.
func (r *Repository) ListDailyPoints(ctx context.Context) ([]domain.DailyPoint, error) {
	docs, listErr := r.store.List(ctx, CollectionPlaylistData)
	if listErr != nil {
		return nil, listErr
	}

	points := make([]domain.DailyPoint, 0, len(docs))
	for _, doc := range docs {
		var fields dailyPointFields
		if unmarshalErr := json.Unmarshal(doc.Data, &fields); unmarshalErr != nil {
			return nil, fmt.Errorf("decode daily point %s: %w", doc.Key, unmarshalErr)
		}
		points = append(points, domain.DailyPoint{
			Date:         doc.Key,
			VideoCount:   fields.VideoCount,
			TotalMinutes: fields.TotalMinutes,
		})
	}

	return points, nil
}

// monthDataDoc is the stored shape of the points_array document.
type monthDataDoc struct {
	MonthData domain.SeriesViews `json:"month_data"`
}

// SaveMonthViews persists the trailing-month chart views.
func (r *Repository) SaveMonthViews(ctx context.Context, recent domain.SeriesViews) error {
	return r.store.Set(ctx, CollectionParsedData, KeyPointsArray, monthDataDoc{MonthData: recent})
}

// GetMonthViews returns the persisted trailing-month chart views.
func (r *Repository) GetMonthViews(ctx context.Context) (*domain.SeriesViews, bool, error) {
	data, found, getErr := r.store.Get(ctx, CollectionParsedData, KeyPointsArray)
	if getErr != nil || !found {
		return nil, found, getErr
	}

	var doc monthDataDoc
	if unmarshalErr := json.Unmarshal(data, &doc); unmarshalErr != nil {
		return nil, false, fmt.Errorf("decode month views: %w", unmarshalErr)
	}

	return &doc.MonthData, true, nil
}

// SaveCalcs persists both change reports into the calcs document.
func (r *Repository) SaveCalcs(ctx context.Context, calcs domain.Calcs) error {
	return r.store.Set(ctx, CollectionParsedData, KeyCalcs, calcs)
}

// GetCalcs returns the persisted change reports.
func (r *Repository) GetCalcs(ctx context.Context) (*domain.Calcs, bool, error) {
	data, found, getErr := r.store.Get(ctx, CollectionParsedData, KeyCalcs)
	if getErr != nil || !found {
		return nil, found, getErr
	}

	var calcs domain.Calcs
	if unmarshalErr := json.Unmarshal(data, &calcs); unmarshalErr != nil {
		return nil, false, fmt.Errorf("decode calcs: %w", unmarshalErr)
	}

	return &calcs, true, nil
}

// SaveStatusFields merge-writes named status fields into the single run
// status document, leaving other named statuses in place.
func (r *Repository) SaveStatusFields(ctx context.Context, fields map[string]any) error {
	return r.store.Set(ctx, CollectionStatus, KeyPlaylistStatus, fields)
}

// GetStatus returns the raw run status document.
func (r *Repository) GetStatus(ctx context.Context) (map[string]any, bool, error) {
	data, found, getErr := r.store.Get(ctx, CollectionStatus, KeyPlaylistStatus)
	if getErr != nil || !found {
		return nil, found, getErr
	}

	var status map[string]any
	if unmarshalErr := json.Unmarshal(data, &status); unmarshalErr != nil {
		return nil, false, fmt.Errorf("decode status: %w", unmarshalErr)
	}

	return status, true, nil
}
