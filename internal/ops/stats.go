package ops

import (
	"context"

	"github.com/trailtools/trail/internal/store"
)

// StatsOutput contains the result of the Stats operation.
type StatsOutput struct {
	Events     int              `json:"events"`
	Episodes   int              `json:"episodes"`
	Projects   int              `json:"projects"`
	PerProject []ProjectSummary `json:"per_project"`
}

// Stats reports the document's aggregate counts plus a per-project breakdown.
func Stats(ctx context.Context, st *store.Store) (*StatsOutput, error) {
	doc, err := st.Load()
	if err != nil {
		return nil, err
	}

	events, episodes, projects := doc.Counts()
	return &StatsOutput{
		Events:     events,
		Episodes:   episodes,
		Projects:   projects,
		PerProject: summarizeProjects(doc),
	}, nil
}
