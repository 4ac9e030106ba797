package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opensight/sift/api/middleware"
	"github.com/opensight/sift/cleaner"
	"github.com/opensight/sift/models"
	"github.com/opensight/sift/scraper"
)

const (
	msgInvalidURL    = "Invalid URL"
	msgExtractFailed = "Failed to extract actions."
)

// ExtractActions returns a handler for POST /api/extract-actions.
//
// The url must already carry an http or https scheme; no prefix is added
// on this route. Any fetch or parse failure is a 500 with a fixed message.
func ExtractActions(sc *scraper.Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.URLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidURL})
			return
		}
		target, err := scraper.ValidateURL(req.URL)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidURL})
			return
		}

		page, err := sc.Fetch(c.Request.Context(), target)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: msgExtractFailed})
			return
		}

		actions, err := cleaner.ExtractActions(page.HTML, target)
		if err != nil {
			slog.Error("action extraction failed",
				"request_id", c.GetString(middleware.RequestIDKey),
				"url", target,
				"code", models.CodeOf(err),
				"error", err,
			)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: msgExtractFailed})
			return
		}

		slog.Info("extracted actions",
			"request_id", c.GetString(middleware.RequestIDKey),
			"url", target,
			"count", len(actions),
			"client_rendered", page.ClientRendered,
		)
		c.JSON(http.StatusOK, actions)
	}
}
