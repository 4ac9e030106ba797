package cleaner

import "unicode/utf8"

// EstimateTokens gives a rough token count for diagnostics: rune count / 3,
// a middle ground between English (~4 chars/token) and CJK (~1.5).
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	est := n / 3
	if est < 1 {
		return 1
	}
	return est
}
