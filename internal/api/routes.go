package api

import (
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/optcg-tools/catalog/backend/internal/api/handlers"
	"github.com/optcg-tools/catalog/backend/internal/catalog"
	"github.com/optcg-tools/catalog/backend/internal/metrics"
)

func SetupRouter(catalogService *catalog.Service) *gin.Engine {
	router := gin.Default()

	// CORS configuration - the catalog is public read-only data, all origins allowed
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(config))

	router.Use(observeRequests())

	catalogHandler := handlers.NewCatalogHandler(catalogService)

	router.GET("/sets", catalogHandler.GetSets)
	router.GET("/cards", catalogHandler.GetCards)
	router.GET("/cards/:id", catalogHandler.GetCard)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

func observeRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
