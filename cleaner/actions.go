package cleaner

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/opensight/sift/models"
)

var (
	buttonSel = cascadia.MustCompile("button")
	linkSel   = cascadia.MustCompile("a[href]")
	submitSel = cascadia.MustCompile(`input[type="submit"]`)
)

// linkKeywords decide whether a hyperlink counts as an action.
var linkKeywords = []string{"apply", "submit", "register", "contact"}

// ExtractActions scans rawHTML for interactive elements and classifies them.
//
// The scan order is fixed: every <button>, then every <a href> whose label
// mentions apply, submit, register or contact, then every
// <input type="submit">. Duplicates are kept. Link targets are resolved
// against pageURL; buttons and submit inputs report pageURL itself.
//
// An element that cannot be processed (for example an unparsable href) is
// skipped. Only an unusable page URL or document fails the whole scan.
func ExtractActions(rawHTML string, pageURL string) ([]models.Action, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, models.NewPipelineError(models.ErrCodeExtraction, "invalid page URL", err)
	}

	doc, err := parseDocument(rawHTML)
	if err != nil {
		return nil, models.NewPipelineError(models.ErrCodeExtraction, "failed to parse document", err)
	}

	actions := []models.Action{}

	// ── 1. Buttons ──────────────────────────────────────────────────
	doc.FindMatcher(buttonSel).Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Text())
		actions = append(actions, models.Action{
			Label: label,
			URL:   pageURL,
			Type:  Classify(label, pageURL),
		})
	})

	// ── 2. Action-like links ────────────────────────────────────────
	doc.FindMatcher(linkSel).Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Text())
		if !containsAny(strings.ToLower(label), linkKeywords) {
			return
		}
		href, _ := s.Attr("href")
		resolved, err := base.Parse(strings.TrimSpace(href))
		if err != nil {
			slog.Debug("skipping link with bad href", "href", href, "error", err)
			return
		}
		actions = append(actions, models.Action{
			Label: label,
			URL:   resolved.String(),
			Type:  Classify(label, href),
		})
	})

	// ── 3. Submit inputs ────────────────────────────────────────────
	doc.FindMatcher(submitSel).Each(func(_ int, s *goquery.Selection) {
		label, ok := s.Attr("value")
		if !ok {
			label = "Submit"
		}
		actions = append(actions, models.Action{
			Label: label,
			URL:   pageURL,
			Type:  models.ActionFormSubmit,
		})
	})

	return actions, nil
}

// Classify maps a control label to an ActionType by case-insensitive
// keyword match, first hit wins: apply, contact, register, submit.
//
// href is part of the signature but does not influence the result.
func Classify(label, href string) models.ActionType {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "apply"):
		return models.ActionJobApplication
	case strings.Contains(l, "contact"):
		return models.ActionContact
	case strings.Contains(l, "register"):
		return models.ActionRegister
	case strings.Contains(l, "submit"):
		return models.ActionFormSubmit
	default:
		return models.ActionOther
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
