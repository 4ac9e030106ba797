package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// summaryResponse mirrors the sift /api/summarize response.
type summaryResponse struct {
	Summary    string   `json:"summary"`
	KeyActions []string `json:"keyActions"`
}

// actionResponse mirrors one element of the /api/extract-actions response.
type actionResponse struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// errorResponse mirrors the sift error body.
type errorResponse struct {
	Error string `json:"error"`
}

func main() {
	apiURL := strings.TrimRight(os.Getenv("SIFT_API_URL"), "/")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:5000"
	}

	s := newServer(apiURL, &http.Client{Timeout: 60 * time.Second})

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "mcp server error: %v\n", err)
		os.Exit(1)
	}
}

// newServer registers the sift tools on a fresh MCP server.
func newServer(apiURL string, client *http.Client) *server.MCPServer {
	s := server.NewMCPServer(
		"sift",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	summarizeTool := mcp.NewTool("summarize_page",
		mcp.WithDescription("Fetch a web page and return a short plain-language summary plus the 3-5 most important actions a visitor can take. Suited to readers who want the gist of a page without its layout."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The page to summarize. A missing scheme defaults to https://"),
		),
	)
	s.AddTool(summarizeTool, handleSummarizePage(apiURL, client))

	actionsTool := mcp.NewTool("extract_actions",
		mcp.WithDescription("List the actionable elements of a web page (buttons, apply/contact/register/submit links, submit inputs) with absolute URLs and a coarse type."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Absolute http or https URL of the page"),
		),
	)
	s.AddTool(actionsTool, handleExtractActions(apiURL, client))

	return s
}

// apiPost sends a POST request to the sift API and returns the status code
// and response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, path string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// apiError extracts the {"error"} message from a non-200 response.
func apiError(status int, body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return fmt.Sprintf("HTTP %d: %s", status, e.Error)
	}
	return fmt.Sprintf("HTTP %d", status)
}

func handleSummarizePage(apiURL string, client *http.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		status, respBody, err := apiPost(ctx, client, apiURL, "/api/summarize", map[string]string{"url": url})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if status != http.StatusOK {
			return mcp.NewToolResultError(apiError(status, respBody)), nil
		}

		var resp summaryResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Summary: %s\n", resp.Summary)
		if len(resp.KeyActions) > 0 {
			sb.WriteString("\nKey actions:\n")
			for _, a := range resp.KeyActions {
				fmt.Fprintf(&sb, "- %s\n", a)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleExtractActions(apiURL string, client *http.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		status, respBody, err := apiPost(ctx, client, apiURL, "/api/extract-actions", map[string]string{"url": url})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if status != http.StatusOK {
			return mcp.NewToolResultError(apiError(status, respBody)), nil
		}

		var actions []actionResponse
		if err := json.Unmarshal(respBody, &actions); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if len(actions) == 0 {
			return mcp.NewToolResultText("No actions found on " + url), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Actions on %s (%d):\n\n", url, len(actions))
		for i, a := range actions {
			fmt.Fprintf(&sb, "%d. [%s] %s\n   %s\n", i+1, a.Type, a.Label, a.URL)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}
