package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/opensight/sift/config"
	"github.com/opensight/sift/models"
)

// Fixed answers used when the backend cannot be asked.
const (
	noKeySummary = "No API key configured"
	noKeyAction  = "Add an API key to the server environment"

	failureSummary = "AI service error"
	failureAction  = "Please try again"
)

// Summarizer turns extracted page text into a SummaryResult using a chat
// completion backend. It holds no per-request state and is safe for
// concurrent use.
type Summarizer struct {
	client ChatClient
	cfg    config.LLMConfig
}

// NewSummarizer creates a Summarizer. client may be nil when cfg carries
// no API key; the summarizer then never calls out.
func NewSummarizer(cfg config.LLMConfig, client ChatClient) *Summarizer {
	return &Summarizer{client: client, cfg: cfg}
}

// Enabled reports whether a backend credential and client are configured.
func (s *Summarizer) Enabled() bool {
	return s.cfg.APIKey != "" && s.client != nil
}

// Summarize asks the backend for a short summary and key actions.
//
// It never fails: without a credential it returns a fixed notice, and any
// backend error degrades to a fixed "try again" result. Both cases are
// logged with their classified cause.
func (s *Summarizer) Summarize(ctx context.Context, text string) models.SummaryResult {
	if !s.Enabled() {
		slog.Warn("summarizer disabled", "code", models.ErrCodeBackendUnavailable)
		return models.SummaryResult{Summary: noKeySummary, KeyActions: []string{noKeyAction}}
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(text)},
		},
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	elapsed := time.Since(start)

	if err == nil && len(resp.Choices) == 0 {
		err = errors.New("backend returned no choices")
	}
	if err != nil {
		berr := classifyBackendError(err)
		slog.Error("summarizer call failed",
			"code", berr.Code,
			"cause", berr.Message,
			"model", s.cfg.Model,
			"elapsed_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return models.SummaryResult{Summary: failureSummary, KeyActions: []string{failureAction}}
	}

	summary, keyActions := ParseReply(resp.Choices[0].Message.Content)
	slog.Info("summarized page",
		"model", s.cfg.Model,
		"elapsed_ms", elapsed.Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"has_summary", summary != "",
		"key_actions", len(keyActions),
	)
	return models.SummaryResult{Summary: summary, KeyActions: keyActions}
}

// classifyBackendError names the cause of a failed backend call for the
// logs: auth failure, rate limit, other HTTP status, timeout or transport.
func classifyBackendError(err error) *models.PipelineError {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return models.NewPipelineError(models.ErrCodeBackendFailure, "auth failure", err)
	case status == http.StatusTooManyRequests:
		return models.NewPipelineError(models.ErrCodeBackendFailure, "rate limited", err)
	case status != 0:
		return models.NewPipelineError(models.ErrCodeBackendFailure, fmt.Sprintf("HTTP %d", status), err)
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewPipelineError(models.ErrCodeBackendFailure, "timeout", err)
	default:
		return models.NewPipelineError(models.ErrCodeBackendFailure, "transport", err)
	}
}
