// Package mcp exposes the trail memory over the Model Context Protocol so
// coding agents can record and query the same history the CLI does.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/trailtools/trail/internal/config"
	"github.com/trailtools/trail/internal/store"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"trail_capture": {
		def: mcp.NewTool("trail_capture",
			mcp.WithDescription("Record a shell command execution: its working directory, exit code, and stderr. Significant executions (errors, important tools) are kept as episodes."),
			mcp.WithString("cwd", mcp.Description("Working directory the command ran in")),
			mcp.WithString("command", mcp.Description("Full command text")),
			mcp.WithNumber("exit_code", mcp.Description("Exit code of the command (default 0)")),
			mcp.WithString("stderr", mcp.Description("Captured stderr output")),
			mcp.WithString("git_branch", mcp.Description("Git branch at capture time, if known")),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCapture },
	},
	"trail_search": {
		def: mcp.NewTool("trail_search",
			mcp.WithDescription("Search remembered episodes by substring across summary, problem, and fix. Returns at most the 10 most recent matches, newest first."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search text")),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearch },
	},
	"trail_recent_fixes": {
		def: mcp.NewTool("trail_recent_fixes",
			mcp.WithDescription("List a project's most recent remembered fixes, in capture order. Address the project by hash or by working directory."),
			mcp.WithString("project", mcp.Description("Project hash")),
			mcp.WithString("cwd", mcp.Description("Working directory, used when project is not given")),
			mcp.WithNumber("limit", mcp.Description("Maximum fixes to return (default 3, max 50)")),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRecentFixes },
	},
	"trail_projects": {
		def: mcp.NewTool("trail_projects",
			mcp.WithDescription("List every tracked project with its event and episode counts, most recently seen first."),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleProjects },
	},
	"trail_stats": {
		def: mcp.NewTool("trail_stats",
			mcp.WithDescription("Aggregate counts of events, episodes, and projects, with a per-project breakdown."),
		),
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStats },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with trail tools registered. Tools
// listed in cfg.DisabledTools are excluded from registration.
func NewServer(st *store.Store, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"trail",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(st, cfg)

	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(st *store.Store, cfg *config.Config, version string) error {
	s := NewServer(st, cfg, version)
	return server.ServeStdio(s)
}
