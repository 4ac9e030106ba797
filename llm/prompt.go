package llm

import (
	"fmt"
	"strings"
)

// Reply line prefixes the model is instructed to use.
const (
	summaryPrefix    = "SUMMARY:"
	keyActionsPrefix = "KEY_ACTIONS:"
)

const promptTemplate = `You are helping someone with impaired vision navigate a website.

Website content:
%s

Please provide:
1. A SHORT summary (2-3 sentences max) of what this website is about and what the user can do here
2. A list of the 3-5 most important actions/buttons the user should know about (e.g., "Click Apply Button", "Fill Contact Form", etc.)

Focus on:
- Clear simple language suitable for users with neurodivergent/ADHD conditions
- Only information that helps the user take action
- The purpose of the website

Ignore:
- Visual layout.
- Advertisements or information irrelevant to the website. Try to focus on information that relate to the actions/buttons the user should know.

Format your response EXACTLY like this:
SUMMARY: [your 2-3 sentence summary here]
KEY_ACTIONS: [action 1]|[action 2]|[action 3]`

// BuildPrompt embeds the extracted page text verbatim in the fixed
// instruction template.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}

// ParseReply reads the model's semi-structured answer.
//
// The first line starting with "SUMMARY:" gives the summary and the first
// line starting with "KEY_ACTIONS:" gives the pipe-separated actions (each
// trimmed, empties dropped). Any other line is ignored. A missing line
// yields "" or an empty, non-nil slice.
func ParseReply(raw string) (summary string, keyActions []string) {
	keyActions = []string{}
	var haveSummary, haveActions bool

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case !haveSummary && strings.HasPrefix(line, summaryPrefix):
			summary = strings.TrimSpace(strings.TrimPrefix(line, summaryPrefix))
			haveSummary = true
		case !haveActions && strings.HasPrefix(line, keyActionsPrefix):
			for _, part := range strings.Split(strings.TrimPrefix(line, keyActionsPrefix), "|") {
				if part = strings.TrimSpace(part); part != "" {
					keyActions = append(keyActions, part)
				}
			}
			haveActions = true
		}
		if haveSummary && haveActions {
			break
		}
	}
	return summary, keyActions
}
