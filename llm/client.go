package llm

import (
	"context"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/opensight/sift/config"
)

// ChatClient is the one capability the summarizer needs from a backend.
// *openai.Client satisfies it; tests substitute a stub.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewOpenAIClient builds a client for any OpenAI-compatible endpoint
// (OpenRouter by default). The returned client is safe for concurrent use
// and should be created once per process.
func NewOpenAIClient(cfg config.LLMConfig) *openai.Client {
	transportCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		transportCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	transportCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return openai.NewClientWithConfig(transportCfg)
}
