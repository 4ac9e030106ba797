package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	Cleaner   CleanerConfig
	LLM       LLMConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 5000
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls how pages are downloaded.
type FetchConfig struct {
	// Timeout bounds the whole page request, body included.
	Timeout time.Duration // default: 10s

	// UserAgent is sent with every page request.
	UserAgent string

	// TLSFingerprint dials HTTPS with a Chrome ClientHello (utls).
	TLSFingerprint bool // default: true

	// Proxy is an optional http(s) proxy URL for outbound page requests.
	Proxy string

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64 // default: 10 MiB
}

// CleanerConfig controls text extraction.
type CleanerConfig struct {
	// MaxTextChars is the cap, in characters, on extracted text.
	MaxTextChars int // default: 8000

	// TextMode selects the extraction strategy: "text", "readability"
	// or "markdown"; default: "text".
	TextMode string
}

// LLMConfig controls the summarization backend.
type LLMConfig struct {
	// APIKey is the backend credential. Empty disables the backend; the
	// summarizer then answers with a fixed notice.
	APIKey string

	// BaseURL is the OpenAI-compatible API root.
	BaseURL string // default: "https://openrouter.ai/api/v1"

	Model       string        // default: "openai/gpt-3.5-turbo"
	Timeout     time.Duration // default: 30s
	Temperature float32       // default: 0.5
	MaxTokens   int           // default: 300
}

// CORSConfig controls cross-origin access for the browser client.
type CORSConfig struct {
	// AllowOrigins lists permitted origins; "*" allows any.
	AllowOrigins []string // default: ["*"]
}

// RateLimitConfig controls per-client rate limiting.
type RateLimitConfig struct {
	// Enabled toggles the limiter.
	Enabled bool // default: false

	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per client IP.
	Burst int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// DefaultUserAgent is a desktop Chrome user agent. Some sites refuse
// requests that do not look like they come from a browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SIFT_HOST", "0.0.0.0"),
			Port: envIntOr("SIFT_PORT", 5000),
			Mode: envOr("SIFT_MODE", "release"),
		},
		Fetch: FetchConfig{
			Timeout:        envDurationOr("SIFT_FETCH_TIMEOUT", 10*time.Second),
			UserAgent:      envOr("SIFT_USER_AGENT", DefaultUserAgent),
			TLSFingerprint: envBoolOr("SIFT_TLS_FINGERPRINT", true),
			Proxy:          os.Getenv("SIFT_PROXY"),
			MaxBodyBytes:   int64(envIntOr("SIFT_MAX_BODY_BYTES", 10<<20)),
		},
		Cleaner: CleanerConfig{
			MaxTextChars: envIntOr("SIFT_MAX_TEXT_CHARS", 8000),
			TextMode:     envOr("SIFT_TEXT_MODE", "text"),
		},
		LLM: LLMConfig{
			APIKey:      strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			BaseURL:     envOr("SIFT_LLM_BASE_URL", "https://openrouter.ai/api/v1"),
			Model:       envOr("SIFT_LLM_MODEL", "openai/gpt-3.5-turbo"),
			Timeout:     envDurationOr("SIFT_LLM_TIMEOUT", 30*time.Second),
			Temperature: float32(envFloatOr("SIFT_LLM_TEMPERATURE", 0.5)),
			MaxTokens:   envIntOr("SIFT_LLM_MAX_TOKENS", 300),
		},
		CORS: CORSConfig{
			AllowOrigins: envSliceOr("SIFT_CORS_ORIGINS", []string{"*"}),
		},
		RateLimit: RateLimitConfig{
			Enabled:           envBoolOr("SIFT_RATE_LIMIT", false),
			RequestsPerSecond: envFloatOr("SIFT_RATE_RPS", 5.0),
			Burst:             envIntOr("SIFT_RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  envOr("SIFT_LOG_LEVEL", "info"),
			Format: envOr("SIFT_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
