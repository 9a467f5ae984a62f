package ops

import (
	"context"
	"strings"

	"github.com/trailtools/trail/internal/errors"
	"github.com/trailtools/trail/internal/memory"
	"github.com/trailtools/trail/internal/store"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query string // required
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Items []memory.Episode `json:"items"`
	Count int              `json:"count"`
}

// Search finds episodes matching the query, most recent first. At most the
// ten most recent matches are returned; older matches are dropped, not
// paginated.
func Search(ctx context.Context, st *store.Store, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}

	doc, err := st.Load()
	if err != nil {
		return nil, err
	}

	items := memory.SearchEpisodes(doc.Episodes, query)
	if items == nil {
		items = []memory.Episode{}
	}

	return &SearchOutput{
		Items: items,
		Count: len(items),
	}, nil
}
