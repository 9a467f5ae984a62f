package ops

import (
	"context"

	"github.com/trailtools/trail/internal/errors"
	"github.com/trailtools/trail/internal/memory"
	"github.com/trailtools/trail/internal/store"
)

// FixesInput contains parameters for the Fixes operation. The project is
// addressed either by its hash or by a working directory (hashed here);
// hash wins when both are set.
type FixesInput struct {
	Project string // project hash
	CWD     string // working directory, used when Project is empty
	Limit   int    // default: 3, max: 50
}

// FixesOutput contains the result of the Fixes operation.
type FixesOutput struct {
	Project memory.Project   `json:"project"`
	Items   []memory.Episode `json:"items"`
	Count   int              `json:"count"`
}

// Fixes surfaces a project's most recent fixes, oldest first: the order
// they were captured in.
func Fixes(ctx context.Context, st *store.Store, input FixesInput) (*FixesOutput, error) {
	hash := input.Project
	if hash == "" {
		if input.CWD == "" {
			return nil, errors.NewInvalidRequest("must specify either project or cwd")
		}
		hash = memory.HashOf(input.CWD)
	}

	limit := clampLimit(input.Limit, DefaultFixesLimit, MaxFixesLimit)

	doc, err := st.Load()
	if err != nil {
		return nil, err
	}

	project, ok := doc.Project(hash)
	if !ok {
		return nil, errors.NewNotFound(hash)
	}

	items := memory.RecentFixes(doc.Episodes, hash, limit)
	if items == nil {
		items = []memory.Episode{}
	}

	return &FixesOutput{
		Project: project,
		Items:   items,
		Count:   len(items),
	}, nil
}
