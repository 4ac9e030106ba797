package engine

import (
	"context"
	"time"
)

// Engine is the interface that all fetch engines must implement.
type Engine interface {
	// Name returns the engine identifier (e.g. "http").
	Name() string

	// Fetch retrieves the page content for the given request.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error)
}

// FetchRequest contains everything an engine needs to fetch a page.
type FetchRequest struct {
	// URL must already carry a scheme.
	URL string

	// Headers override the engine's default request headers.
	Headers map[string]string

	// Timeout overrides the engine's default deadline when positive.
	Timeout time.Duration
}

// FetchResult is the output of a successful engine fetch. It lives for a
// single request.
type FetchResult struct {
	HTML string

	// URL is the URL that was requested. Relative links on the page are
	// resolved against it.
	URL string

	// FinalURL is where the transport ended up after redirects.
	FinalURL string

	StatusCode int
	EngineName string

	// ClientRendered is set by the scraper when the markup looks like a
	// JavaScript shell whose content never reaches a plain GET.
	ClientRendered bool
}
