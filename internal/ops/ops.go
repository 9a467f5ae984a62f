// Package ops implements the operations the CLI, MCP server, and web viewer
// share. Each operation loads the memory document through the store, applies
// pure transforms from internal/memory, and (for mutating operations) saves
// the whole document back. One file per operation.
package ops

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Limits for list-style operations.
const (
	DefaultLogLimit   = 20
	MaxLogLimit       = 100
	DefaultFixesLimit = 3
	MaxFixesLimit     = 50
)

// NewID generates a ULID for a new event or episode.
func NewID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// clampLimit applies default and maximum bounds to a caller-supplied limit.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
