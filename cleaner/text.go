package cleaner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// parseDocument parses markup the way a non-scripting user agent would, so
// <noscript> children become elements instead of one raw text blob.
func parseDocument(rawHTML string) (*goquery.Document, error) {
	root, err := html.ParseWithOptions(strings.NewReader(rawHTML), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(root), nil
}

// visibleText drops every script and style subtree from doc and returns
// the remaining text nodes concatenated in document order.
func visibleText(doc *goquery.Document) string {
	doc.Find("script, style").Remove()
	return doc.Text()
}

// NormalizeText collapses page text into dense prose.
//
// Each line is trimmed, then split on runs of exactly two spaces; every
// fragment is trimmed and empty ones are dropped. The surviving fragments
// are joined with single spaces. Single spaces inside a fragment are left
// alone.
func NormalizeText(text string) string {
	var b strings.Builder
	for _, line := range strings.FieldsFunc(text, isLineBreak) {
		line = strings.TrimSpace(line)
		for _, phrase := range strings.Split(line, "  ") {
			phrase = strings.TrimSpace(phrase)
			if phrase == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(phrase)
		}
	}
	return b.String()
}

// isLineBreak matches the line boundaries recognised when splitting text
// into lines: LF, CR, VT, FF, the file/group/record separators, NEL and
// the Unicode line and paragraph separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// Truncate returns the first n characters (runes) of s. It does not look
// for word boundaries. n <= 0 disables the cap.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
