package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/opensight/sift/engine"
	"github.com/opensight/sift/models"
)

// Scraper turns a user-supplied URL into a fetched page. It owns the URL
// policy and failure logging; the network work is delegated to an Engine.
// It is safe for concurrent use.
type Scraper struct {
	engine engine.Engine
}

// NewScraper creates a Scraper backed by eng.
func NewScraper(eng engine.Engine) *Scraper {
	return &Scraper{engine: eng}
}

// Fetch normalises rawURL (see NormalizeURL) and downloads it once.
//
// Errors are *models.PipelineError values carrying one of the FETCH_*
// codes. Each failure kind is logged under its own code so operators can
// tell timeouts, refused connections and bad statuses apart even though
// callers only report a generic message.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (*engine.FetchResult, error) {
	target := NormalizeURL(rawURL)

	start := time.Now()
	result, err := s.engine.Fetch(ctx, &engine.FetchRequest{URL: target})
	elapsed := time.Since(start)

	if err != nil {
		code := models.CodeOf(err)
		if !models.IsFetchFailure(code) {
			code = models.ErrCodeFetchFailed
			err = models.NewPipelineError(code, "request failed", err)
		}
		slog.Warn("fetch failed",
			"url", target,
			"engine", s.engine.Name(),
			"code", code,
			"elapsed_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	result.ClientRendered = LooksClientRendered([]byte(result.HTML))
	slog.Info("fetched page",
		"url", target,
		"final_url", result.FinalURL,
		"status", result.StatusCode,
		"bytes", len(result.HTML),
		"client_rendered", result.ClientRendered,
		"elapsed_ms", elapsed.Milliseconds(),
	)

	return result, nil
}
