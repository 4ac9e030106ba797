package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opensight/sift/api/handler"
	"github.com/opensight/sift/api/middleware"
	"github.com/opensight/sift/cleaner"
	"github.com/opensight/sift/config"
	"github.com/opensight/sift/llm"
	"github.com/opensight/sift/models"
	"github.com/opensight/sift/scraper"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → RequestID → Logger → CORS
//	API:     RateLimit (if enabled)
//
// Health stays outside the rate limit so monitoring probes always work.
func NewRouter(sc *scraper.Scraper, cl *cleaner.Cleaner, sum *llm.Summarizer, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.CustomRecovery(recoverJSON))
	r.Use(middleware.RequestID())
	r.Use(gin.Logger())
	r.Use(middleware.CORS(cfg.CORS))

	api := r.Group("/api")

	api.GET("/health", handler.Health())

	limited := api.Group("")
	if cfg.RateLimit.Enabled {
		limited.Use(middleware.RateLimit(cfg.RateLimit))
	}

	limited.POST("/summarize", handler.Summarize(sc, cl, sum))
	limited.POST("/extract-actions", handler.ExtractActions(sc))

	return r
}

// recoverJSON turns a handler panic into 500 {"error": ...}.
func recoverJSON(c *gin.Context, recovered any) {
	slog.Error("handler panic",
		"request_id", c.GetString(middleware.RequestIDKey),
		"path", c.Request.URL.Path,
		"panic", recovered,
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: fmt.Sprint(recovered),
	})
}
