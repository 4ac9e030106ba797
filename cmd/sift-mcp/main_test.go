package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/summarize", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		if req["url"] == "down.example" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Could not access website"}`))
			return
		}
		_, _ = w.Write([]byte(`{"summary":"A careers page.","keyActions":["Apply Now","Contact Us"]}`))
	})
	mux.HandleFunc("/api/extract-actions", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		if req["url"] == "https://empty.example" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`[{"label":"Apply Now","url":"https://x.example/apply","type":"job_application"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func callTool(name, url string) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = map[string]any{"url": url}
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestSummarizePage(t *testing.T) {
	srv := fakeAPI(t)
	h := handleSummarizePage(srv.URL, srv.Client())

	res, err := h(context.Background(), callTool("summarize_page", "x.example"))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "Summary: A careers page.")
	assert.Contains(t, text, "- Apply Now")
	assert.Contains(t, text, "- Contact Us")
}

func TestSummarizePage_APIError(t *testing.T) {
	srv := fakeAPI(t)
	h := handleSummarizePage(srv.URL, srv.Client())

	res, err := h(context.Background(), callTool("summarize_page", "down.example"))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "HTTP 400: Could not access website", resultText(t, res))
}

func TestSummarizePage_MissingURL(t *testing.T) {
	h := handleSummarizePage("http://127.0.0.1:1", http.DefaultClient)

	var req mcp.CallToolRequest
	req.Params.Name = "summarize_page"
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestExtractActions(t *testing.T) {
	srv := fakeAPI(t)
	h := handleExtractActions(srv.URL, srv.Client())

	res, err := h(context.Background(), callTool("extract_actions", "https://x.example"))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "[job_application] Apply Now")
	assert.Contains(t, text, "https://x.example/apply")

	res, err = h(context.Background(), callTool("extract_actions", "https://empty.example"))
	require.NoError(t, err)
	assert.Equal(t, "No actions found on https://empty.example", resultText(t, res))
}

func TestExtractActions_Unreachable(t *testing.T) {
	h := handleExtractActions("http://127.0.0.1:1", http.DefaultClient)

	res, err := h(context.Background(), callTool("extract_actions", "https://x.example"))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
