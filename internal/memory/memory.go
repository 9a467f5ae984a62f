// Package memory implements the terminal-history memory model: raw command
// events, the projects they belong to, and the derived episodes that are
// worth remembering. All operations are pure transforms over a Document
// value; persistence lives elsewhere.
package memory

import "time"

// Event is one raw captured command execution. Events are append-only and
// immutable after creation. Field names match the on-disk JSON document.
type Event struct {
	// ID uniquely identifies this event
	ID string `json:"id"`

	// Timestamp is the ISO-8601 creation time
	Timestamp string `json:"timestamp"`

	// CWD is the working directory at capture time, stored verbatim
	CWD string `json:"cwd"`

	// GitBranch is the branch at capture time, absent outside a repository
	GitBranch string `json:"gitBranch,omitempty"`

	// Command is the full command text, untruncated
	Command string `json:"command"`

	// ExitCode is the command's exit status (0 when unspecified)
	ExitCode int `json:"exitCode"`

	// Stderr is the captured error output, possibly empty
	Stderr string `json:"stderr"`

	// ProjectHash links the event to a Project in the same document
	ProjectHash string `json:"projectHash"`

	// IsError is computed once at creation and never recomputed
	IsError bool `json:"isError"`
}

// Project is a tracked working directory. Projects are upserted by hash:
// at most one record per hash, created on first capture and touched on
// every later capture from the same directory.
type Project struct {
	// Hash is the 8-character digest of the cwd string. The digest is
	// deterministic, not normalized: two spellings of the same directory
	// (trailing slash, symlink) are distinct projects.
	Hash string `json:"hash"`

	// Name is the last path segment of the cwd at first capture
	Name string `json:"name"`

	// Root is the cwd string at first capture, never updated
	Root string `json:"root"`

	// FirstSeen is the timestamp of the first capture for this hash
	FirstSeen string `json:"firstSeen"`

	// LastSeen is updated on every capture for this hash
	LastSeen string `json:"lastSeen"`
}

// Episode is a derived, retained memory entry summarizing a significant
// event: an error, or an invocation of a recognized important tool.
// Episodes are append-only and immutable after creation.
type Episode struct {
	// ID uniquely identifies this episode
	ID string `json:"id"`

	// ProjectHash links the episode to a Project
	ProjectHash string `json:"projectHash"`

	// Timestamp equals the triggering event's timestamp
	Timestamp string `json:"timestamp"`

	// Summary is "<firstToken> - error" or "<firstToken> - success"
	Summary string `json:"summary"`

	// Problem holds the first 200 characters of stderr when the triggering
	// event was an error, and is absent otherwise
	Problem string `json:"problem,omitempty"`

	// Fix is the full command text. The captured command is stored as its
	// own fix, even when it is the command that failed; recentFixes later
	// surfaces these verbatim.
	Fix string `json:"fix,omitempty"`

	// Keywords is the command's first token joined with the project's
	// directory name, e.g. "npm, app"
	Keywords string `json:"keywords"`
}

// FormatTime renders t in the document's timestamp format: UTC with
// millisecond precision, e.g. "2026-08-21T17:03:09.214Z".
func FormatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
