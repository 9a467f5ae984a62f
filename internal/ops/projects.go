package ops

import (
	"context"
	"sort"

	"github.com/trailtools/trail/internal/memory"
	"github.com/trailtools/trail/internal/store"
)

// ProjectSummary is a project record plus its event and episode counts.
type ProjectSummary struct {
	memory.Project
	Events   int `json:"events"`
	Episodes int `json:"episodes"`
}

// ProjectsOutput contains the result of the Projects operation.
type ProjectsOutput struct {
	Items []ProjectSummary `json:"items"`
	Count int              `json:"count"`
}

// Projects lists every tracked project with its counts, most recently seen
// first.
func Projects(ctx context.Context, st *store.Store) (*ProjectsOutput, error) {
	doc, err := st.Load()
	if err != nil {
		return nil, err
	}

	items := summarizeProjects(doc)
	return &ProjectsOutput{
		Items: items,
		Count: len(items),
	}, nil
}

// summarizeProjects builds per-project summaries ordered by lastSeen
// descending. Timestamps sort lexicographically because they share a fixed
// UTC format.
func summarizeProjects(doc memory.Document) []ProjectSummary {
	events := make(map[string]int, len(doc.Projects))
	for _, ev := range doc.Events {
		events[ev.ProjectHash]++
	}
	episodes := make(map[string]int, len(doc.Projects))
	for _, ep := range doc.Episodes {
		episodes[ep.ProjectHash]++
	}

	items := make([]ProjectSummary, 0, len(doc.Projects))
	for _, p := range doc.Projects {
		items = append(items, ProjectSummary{
			Project:  p,
			Events:   events[p.Hash],
			Episodes: episodes[p.Hash],
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].LastSeen > items[j].LastSeen
	})
	return items
}
