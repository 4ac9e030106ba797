package scraper

import (
	"net/url"
	"strings"

	"github.com/opensight/sift/models"
)

// NormalizeURL trims surrounding whitespace and prefixes "https://" when
// the input carries no scheme. Nothing else is checked; an unusable URL
// surfaces later as a fetch failure.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || hasScheme(raw) {
		return raw
	}
	return "https://" + raw
}

// ValidateURL is the strict entry check: raw must parse, use http or
// https, and name a host.
func ValidateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", models.NewPipelineError(models.ErrCodeInvalidInput, "url is required", nil)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", models.NewPipelineError(models.ErrCodeInvalidInput, "url does not parse", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", models.NewPipelineError(models.ErrCodeInvalidInput, "url scheme must be http or https", nil)
	}
	if u.Host == "" {
		return "", models.NewPipelineError(models.ErrCodeInvalidInput, "url has no host", nil)
	}
	return raw, nil
}

// hasScheme reports whether s starts with "<scheme>://".
func hasScheme(s string) bool {
	i := strings.Index(s, "://")
	if i <= 0 {
		return false
	}
	for j, r := range s[:i] {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case j > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
