package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_EmbedsTextVerbatim(t *testing.T) {
	text := "Cat Facts 100% real {braces} and %s verbs"
	prompt := BuildPrompt(text)

	assert.Contains(t, prompt, text)
	assert.Contains(t, prompt, "SUMMARY: [your 2-3 sentence summary here]")
	assert.Contains(t, prompt, "KEY_ACTIONS: [action 1]|[action 2]|[action 3]")
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantSummary string
		wantActions []string
	}{
		{
			name:        "well formed with noise",
			raw:         "Hello\nSUMMARY: Short site about cats.\nKEY_ACTIONS: Apply Now|Contact Us|\nExtra line",
			wantSummary: "Short site about cats.",
			wantActions: []string{"Apply Now", "Contact Us"},
		},
		{
			name:        "actions trimmed",
			raw:         "SUMMARY:A job board.\nKEY_ACTIONS:  Search jobs | Upload CV |  | Sign in ",
			wantSummary: "A job board.",
			wantActions: []string{"Search jobs", "Upload CV", "Sign in"},
		},
		{
			name:        "missing summary",
			raw:         "KEY_ACTIONS: Apply",
			wantSummary: "",
			wantActions: []string{"Apply"},
		},
		{
			name:        "missing actions",
			raw:         "SUMMARY: Only a summary.",
			wantSummary: "Only a summary.",
			wantActions: []string{},
		},
		{
			name:        "nothing recognisable",
			raw:         "I cannot help with that.",
			wantSummary: "",
			wantActions: []string{},
		},
		{
			name:        "empty",
			raw:         "",
			wantSummary: "",
			wantActions: []string{},
		},
		{
			name:        "first lines win",
			raw:         "SUMMARY: first\nKEY_ACTIONS: a|b\nSUMMARY: second\nKEY_ACTIONS: c",
			wantSummary: "first",
			wantActions: []string{"a", "b"},
		},
		{
			name:        "prefix must start the line",
			raw:         "  SUMMARY: indented\nNote SUMMARY: inline",
			wantSummary: "",
			wantActions: []string{},
		},
		{
			name:        "crlf line endings",
			raw:         "SUMMARY: Windows reply.\r\nKEY_ACTIONS: Apply|Contact\r\n",
			wantSummary: "Windows reply.",
			wantActions: []string{"Apply", "Contact"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, actions := ParseReply(tt.raw)
			assert.Equal(t, tt.wantSummary, summary)
			assert.Equal(t, tt.wantActions, actions)
		})
	}
}
