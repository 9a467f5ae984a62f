package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/trailtools/trail/internal/config"
	"github.com/trailtools/trail/internal/errors"
	"github.com/trailtools/trail/internal/ops"
	"github.com/trailtools/trail/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	st  *store.Store
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st *store.Store, cfg *config.Config) *Handlers {
	return &Handlers{st: st, cfg: cfg}
}

// Request types for each tool

// CaptureRequest represents the arguments for trail_capture.
type CaptureRequest struct {
	CWD       string `json:"cwd,omitempty"`
	Command   string `json:"command,omitempty"`
	ExitCode  int    `json:"exit_code,omitempty"`
	Stderr    string `json:"stderr,omitempty"`
	GitBranch string `json:"git_branch,omitempty"`
}

// SearchRequest represents the arguments for trail_search.
type SearchRequest struct {
	Query string `json:"query"`
}

// RecentFixesRequest represents the arguments for trail_recent_fixes.
type RecentFixesRequest struct {
	Project string `json:"project,omitempty"`
	CWD     string `json:"cwd,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// Handler implementations

// HandleCapture handles the trail_capture tool call.
func (h *Handlers) HandleCapture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CaptureRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Capture(ctx, h.st, h.cfg, ops.CaptureInput{
		CWD:       input.CWD,
		Command:   input.Command,
		ExitCode:  input.ExitCode,
		Stderr:    input.Stderr,
		GitBranch: input.GitBranch,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSearch handles the trail_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Search(ctx, h.st, ops.SearchInput{Query: input.Query})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRecentFixes handles the trail_recent_fixes tool call.
func (h *Handlers) HandleRecentFixes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RecentFixesRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fixes(ctx, h.st, ops.FixesInput{
		Project: input.Project,
		CWD:     input.CWD,
		Limit:   input.Limit,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleProjects handles the trail_projects tool call.
func (h *Handlers) HandleProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Projects(ctx, h.st)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleStats handles the trail_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Stats(ctx, h.st)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if tErr, ok := err.(*errors.TrailError); ok {
		errorObj := map[string]any{
			"code":    tErr.Code,
			"message": tErr.Message,
			"status":  tErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths
		if tErr.Code != errors.ErrInternal && tErr.Details != nil {
			errorObj["details"] = tErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
