package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/trailtools/trail/internal/config"
	"github.com/trailtools/trail/internal/errors"
	"github.com/trailtools/trail/internal/memory"
	"github.com/trailtools/trail/internal/store"
)

// ReviewInput contains parameters for the Review operation.
type ReviewInput struct {
	Project string // optional project hash; empty reviews every project
}

// ReviewOutput contains the result of the Review operation.
type ReviewOutput struct {
	Markdown string `json:"markdown"`
	Projects int    `json:"projects"`
	Episodes int    `json:"episodes"`
}

// Review renders a markdown digest of recent episodes: one section per
// project, most recently seen project first, episodes most recent first,
// capped per project by configuration. The digest is deterministic for a
// given document.
func Review(ctx context.Context, st *store.Store, cfg *config.Config, input ReviewInput) (*ReviewOutput, error) {
	doc, err := st.Load()
	if err != nil {
		return nil, err
	}

	projects := summarizeProjects(doc)
	if input.Project != "" {
		if _, ok := doc.Project(input.Project); !ok {
			return nil, errors.NewNotFound(input.Project)
		}
		filtered := projects[:0]
		for _, p := range projects {
			if p.Hash == input.Project {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}

	perProject := cfg.ReviewEpisodes
	if perProject <= 0 {
		perProject = config.DefaultConfig().ReviewEpisodes
	}

	var sb strings.Builder
	sb.WriteString("# Trail review\n")

	shown := 0
	for _, p := range projects {
		episodes := projectEpisodes(doc.Episodes, p.Hash, perProject)
		if len(episodes) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "\n## %s\n\n", p.Name)
		fmt.Fprintf(&sb, "`%s`: %d events, %d episodes, last seen %s\n", p.Root, p.Events, p.Episodes, p.LastSeen)

		for _, ep := range episodes {
			fmt.Fprintf(&sb, "\n- **%s** (%s)\n", ep.Summary, ep.Timestamp)
			if ep.Problem != "" {
				fmt.Fprintf(&sb, "  - problem: %s\n", ep.Problem)
			}
			if ep.Fix != "" {
				fmt.Fprintf(&sb, "  - fix: `%s`\n", ep.Fix)
			}
			shown++
		}
	}

	if shown == 0 {
		sb.WriteString("\nNothing to review yet.\n")
	}

	return &ReviewOutput{
		Markdown: sb.String(),
		Projects: len(projects),
		Episodes: shown,
	}, nil
}

// projectEpisodes returns up to limit of the project's episodes, most recent
// first.
func projectEpisodes(episodes []memory.Episode, hash string, limit int) []memory.Episode {
	var out []memory.Episode
	for i := len(episodes) - 1; i >= 0 && len(out) < limit; i-- {
		if episodes[i].ProjectHash == hash {
			out = append(out, episodes[i])
		}
	}
	return out
}
