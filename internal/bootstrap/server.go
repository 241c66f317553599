package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/playlist-pulse/internal/api"
	"github.com/jonesrussell/playlist-pulse/internal/config"
	"github.com/jonesrussell/playlist-pulse/internal/logger"
	"github.com/jonesrussell/playlist-pulse/internal/metrics"
	"github.com/jonesrussell/playlist-pulse/internal/storage"
)

const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 60 * time.Second
	defaultIdleTimeout  = 120 * time.Second
	healthCheckTimeout  = 2 * time.Second
)

// SetupHTTPServer creates the stats API server with all handlers wired.
func SetupHTTPServer(
	cfg *config.Config,
	store *storage.DocumentStore,
	log logger.Logger,
) *http.Server {
	if !cfg.Service.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())
	router.Use(corsMiddleware(cfg))

	router.GET("/health", healthHandler(store, cfg))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	repo := storage.NewRepository(store)
	api.SetupRoutes(router, api.NewStatsHandler(repo))

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}
}

// corsMiddleware allows the static chart frontend to call the API from
// another origin.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodOptions}

	return cors.New(corsCfg)
}

// healthHandler reports service health including database connectivity.
func healthHandler(store *storage.DocumentStore, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		if pingErr := store.Ping(ctx); pingErr != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  pingErr.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": cfg.Service.Name,
			"version": cfg.Service.Version,
		})
	}
}
