package cleaner

import (
	"log/slog"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"

	"github.com/opensight/sift/config"
	"github.com/opensight/sift/models"
)

// DefaultMaxChars is the text cap used when the configured one is unusable.
const DefaultMaxChars = 8000

// Text extraction modes.
const (
	ModeText        = "text"
	ModeReadability = "readability"
	ModeMarkdown    = "markdown"
)

// Cleaner reduces raw page markup to the bounded plain text that is handed
// to the summarizer.
//
// The Markdown converter is created once and reused across all requests
// (goroutine-safe), so a single Cleaner is shared by every handler.
type Cleaner struct {
	mdConverter *converter.Converter
	maxChars    int
	mode        string
}

// NewCleaner initialises the Cleaner from the cleaner configuration.
func NewCleaner(cfg config.CleanerConfig) *Cleaner {
	mode := cfg.TextMode
	switch mode {
	case ModeText, ModeReadability, ModeMarkdown:
	default:
		if mode != "" {
			slog.Warn("unknown text mode, using text", "mode", mode)
		}
		mode = ModeText
	}
	maxChars := cfg.MaxTextChars
	if maxChars <= 0 {
		slog.Warn("text cap must be positive, using default",
			"max_text_chars", maxChars, "default", DefaultMaxChars,
		)
		maxChars = DefaultMaxChars
	}
	return &Cleaner{
		mdConverter: newMarkdownConverter(),
		maxChars:    maxChars,
		mode:        mode,
	}
}

// MaxChars returns the configured character cap.
func (c *Cleaner) MaxChars() int { return c.maxChars }

// Text extracts the page text from rawHTML.
//
// Flow (default "text" mode):
//  1. Parse markup (tolerant HTML5 parser).
//  2. Remove all script and style subtrees.
//  3. Concatenate remaining text nodes in document order.
//  4. NormalizeText.
//  5. Truncate to MaxChars characters.
//
// "readability" first narrows the document to its main article and then
// runs the same steps; "markdown" converts the whole page to Markdown and
// only trims and truncates it. A parse failure or an empty result is
// returned as an EXTRACTION_FAILED error.
func (c *Cleaner) Text(rawHTML string, sourceURL string) (string, error) {
	var (
		text string
		err  error
	)

	switch c.mode {
	case ModeReadability:
		article, ok := ExtractContent(rawHTML, sourceURL)
		if ok {
			text, err = plainText(article.Content)
		} else {
			text, err = plainText(rawHTML)
		}
	case ModeMarkdown:
		text, err = ToMarkdown(c.mdConverter, rawHTML, sourceURL)
		text = strings.TrimSpace(text)
	default:
		text, err = plainText(rawHTML)
	}
	if err != nil {
		return "", models.NewPipelineError(models.ErrCodeExtraction, "failed to extract page text", err)
	}

	text = Truncate(text, c.maxChars)
	if text == "" {
		return "", models.NewPipelineError(models.ErrCodeExtraction, "page has no visible text", nil)
	}

	slog.Debug("extracted page text",
		"url", sourceURL,
		"mode", c.mode,
		"chars", len([]rune(text)),
		"tokens_est", EstimateTokens(text),
	)
	return text, nil
}

// plainText runs parse, script/style removal and normalisation.
func plainText(rawHTML string) (string, error) {
	doc, err := parseDocument(rawHTML)
	if err != nil {
		return "", err
	}
	return NormalizeText(visibleText(doc)), nil
}
