// Package api provides the read-only HTTP handlers of the stats server. The
// chart frontend fetches the persisted views and change reports from here.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/playlist-pulse/internal/domain"
)

// StatsReader defines the read operations needed by the handler.
type StatsReader interface {
	GetMonthViews(ctx context.Context) (*domain.SeriesViews, bool, error)
	GetCalcs(ctx context.Context) (*domain.Calcs, bool, error)
	GetStatus(ctx context.Context) (map[string]any, bool, error)
}

// StatsHandler serves the persisted playlist statistics.
type StatsHandler struct {
	reader StatsReader
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(reader StatsReader) *StatsHandler {
	return &StatsHandler{reader: reader}
}

// GetPoints handles GET /api/v1/points.
func (h *StatsHandler) GetPoints(c *gin.Context) {
	views, found, err := h.reader.GetMonthViews(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no points recorded yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"month_data": views})
}

// GetChanges handles GET /api/v1/changes.
func (h *StatsHandler) GetChanges(c *gin.Context) {
	calcs, found, err := h.reader.GetCalcs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no change reports recorded yet"})
		return
	}

	c.JSON(http.StatusOK, calcs)
}

// GetStatus handles GET /api/v1/status.
func (h *StatsHandler) GetStatus(c *gin.Context) {
	runStatus, found, err := h.reader.GetStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no runs recorded yet"})
		return
	}

	c.JSON(http.StatusOK, runStatus)
}
