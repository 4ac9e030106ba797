package models

// URLRequest is the payload for POST /api/summarize and
// POST /api/extract-actions.
type URLRequest struct {
	// URL is the page to process. Required.
	URL string `json:"url" binding:"required"`
}
