package api

import "github.com/gin-gonic/gin"

// SetupRoutes configures the read-only API routes. All endpoints are public;
// the service exposes no write surface over HTTP.
func SetupRoutes(router *gin.Engine, statsHandler *StatsHandler) {
	v1 := router.Group("/api/v1")

	v1.GET("/points", statsHandler.GetPoints)
	v1.GET("/changes", statsHandler.GetChanges)
	v1.GET("/status", statsHandler.GetStatus)
}
