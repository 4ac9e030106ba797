package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opensight/sift/api/middleware"
	"github.com/opensight/sift/cleaner"
	"github.com/opensight/sift/llm"
	"github.com/opensight/sift/models"
	"github.com/opensight/sift/scraper"
)

// Client-facing messages for /api/summarize.
const (
	msgNoURL          = "No URL provided"
	msgCouldNotAccess = "Could not access website"
)

// Summarize returns a handler for POST /api/summarize.
//
// Orchestration flow:
//  1. Bind {"url"}; a missing body or empty url is a 400.
//  2. Scraper.Fetch   → raw markup            (records fetch_ms)
//  3. Cleaner.Text    → bounded plain text    (records clean_ms)
//  4. Summarizer.Summarize → summary + actions (never fails)
//
// Fetch and extraction failures collapse to one generic 400; the specific
// cause is only logged.
func Summarize(sc *scraper.Scraper, cl *cleaner.Cleaner, sum *llm.Summarizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.URLRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgNoURL})
			return
		}

		fetchStart := time.Now()
		page, err := sc.Fetch(c.Request.Context(), req.URL)
		fetchMs := time.Since(fetchStart).Milliseconds()
		if err != nil {
			respondSummarizeError(c, err)
			return
		}

		cleanStart := time.Now()
		text, err := cl.Text(page.HTML, page.URL)
		cleanMs := time.Since(cleanStart).Milliseconds()
		if err != nil {
			if page.ClientRendered {
				slog.Warn("no text in client-rendered page",
					"request_id", c.GetString(middleware.RequestIDKey),
					"url", page.URL,
				)
			}
			respondSummarizeError(c, err)
			return
		}

		result := sum.Summarize(c.Request.Context(), text)

		slog.Info("summarize done",
			"request_id", c.GetString(middleware.RequestIDKey),
			"url", page.URL,
			"client_rendered", page.ClientRendered,
			"fetch_ms", fetchMs,
			"clean_ms", cleanMs,
			"total_ms", time.Since(totalStart).Milliseconds(),
		)
		c.JSON(http.StatusOK, result)
	}
}

// respondSummarizeError maps a pipeline error to the route's status and
// message: fetch and extraction failures are the caller's problem (400),
// anything else is reported verbatim as a 500.
func respondSummarizeError(c *gin.Context, err error) {
	code := models.CodeOf(err)
	if models.IsFetchFailure(code) || code == models.ErrCodeExtraction {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgCouldNotAccess})
		return
	}
	slog.Error("summarize failed",
		"request_id", c.GetString(middleware.RequestIDKey),
		"code", code,
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
}
