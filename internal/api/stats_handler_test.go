package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/playlist-pulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	views  *domain.SeriesViews
	calcs  *domain.Calcs
	status map[string]any
	err    error
}

func (f *fakeReader) GetMonthViews(_ context.Context) (*domain.SeriesViews, bool, error) {
	return f.views, f.views != nil, f.err
}

func (f *fakeReader) GetCalcs(_ context.Context) (*domain.Calcs, bool, error) {
	return f.calcs, f.calcs != nil, f.err
}

func (f *fakeReader) GetStatus(_ context.Context) (map[string]any, bool, error) {
	return f.status, f.status != nil, f.err
}

func newTestRouter(reader StatsReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, NewStatsHandler(reader))
	return router
}

func doRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestGetPoints(t *testing.T) {
	reader := &fakeReader{
		views: &domain.SeriesViews{
			VideoCountPoints:   []domain.Point{{X: "2026-08-29", Y: 120}},
			TotalMinutesPoints: []domain.Point{{X: "2026-08-29", Y: 5400}},
		},
	}

	recorder := doRequest(newTestRouter(reader), "/api/v1/points")

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		MonthData domain.SeriesViews `json:"month_data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, *reader.views, body.MonthData)
}

func TestGetPoints_NotFound(t *testing.T) {
	recorder := doRequest(newTestRouter(&fakeReader{}), "/api/v1/points")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetChanges(t *testing.T) {
	ratio := 45
	reader := &fakeReader{
		calcs: &domain.Calcs{
			VideoChanges: domain.VideoChanges{
				ChangeReport:  domain.ChangeReport{TotalDifference: 4, ChangeIndicator: domain.IndicatorUp},
				CurrentVideos: 120,
			},
			MinuteChanges: domain.MinuteChanges{
				ChangeReport:    domain.ChangeReport{TotalDifference: 200},
				MinutesPerVideo: &ratio,
			},
		},
	}

	recorder := doRequest(newTestRouter(reader), "/api/v1/changes")

	require.Equal(t, http.StatusOK, recorder.Code)

	var body domain.Calcs
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, *reader.calcs, body)
}

func TestGetChanges_NotFound(t *testing.T) {
	recorder := doRequest(newTestRouter(&fakeReader{}), "/api/v1/changes")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetStatus(t *testing.T) {
	reader := &fakeReader{
		status: map[string]any{
			"final_result":           "Data for 2026-08-29 saved: 120 videos, 5400 minutes.",
			"final_result_timestamp": "29/08/2026 03:00:00",
			"success":                true,
		},
	}

	recorder := doRequest(newTestRouter(reader), "/api/v1/status")

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, reader.status["final_result"], body["final_result"])
	assert.Equal(t, true, body["success"])
}

func TestReaderErrorsReturn500(t *testing.T) {
	reader := &fakeReader{err: errors.New("connection refused")}
	router := newTestRouter(reader)

	for _, path := range []string{"/api/v1/points", "/api/v1/changes", "/api/v1/status"} {
		recorder := doRequest(router, path)
		assert.Equal(t, http.StatusInternalServerError, recorder.Code, path)
	}
}
