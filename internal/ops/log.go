package ops

import (
	"context"

	"github.com/trailtools/trail/internal/memory"
	"github.com/trailtools/trail/internal/store"
)

// LogInput contains parameters for the Log operation.
type LogInput struct {
	Project string // optional project hash filter
	Limit   int    // default: 20, max: 100
}

// LogOutput contains the result of the Log operation.
type LogOutput struct {
	Items []memory.Event `json:"items"`
	Total int            `json:"total"`
}

// Log returns the most recent raw events, newest last, optionally filtered
// to one project. Total counts all events that passed the filter, before the
// limit was applied.
func Log(ctx context.Context, st *store.Store, input LogInput) (*LogOutput, error) {
	limit := clampLimit(input.Limit, DefaultLogLimit, MaxLogLimit)

	doc, err := st.Load()
	if err != nil {
		return nil, err
	}

	items := make([]memory.Event, 0, len(doc.Events))
	for _, ev := range doc.Events {
		if input.Project != "" && ev.ProjectHash != input.Project {
			continue
		}
		items = append(items, ev)
	}

	total := len(items)
	if len(items) > limit {
		items = items[len(items)-limit:]
	}

	return &LogOutput{
		Items: items,
		Total: total,
	}, nil
}
