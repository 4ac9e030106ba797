package models

// SummaryResult is the response for POST /api/summarize.
//
// KeyActions are free-text phrases written by the language model. They are
// unrelated to the Action records produced by the DOM scan.
type SummaryResult struct {
	Summary    string   `json:"summary"`
	KeyActions []string `json:"keyActions"`
}

// ErrorResponse is the JSON body of every non-200 response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the response for GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
}
