package ops

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trailtools/trail/internal/config"
	"github.com/trailtools/trail/internal/store"
)

// TestFullWorkflow exercises the complete memory lifecycle:
// capture (error) → capture (success) → search → fixes → stats → review →
// export → import into a fresh store.
func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()

	st, err := store.Init(t.TempDir())
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.AllowUnsafePaths = true

	cwd := "/home/u/app"

	// 1. Failing build: event + episode, no past fixes yet.
	capOut, err := Capture(ctx, st, cfg, CaptureInput{
		CWD:      cwd,
		Command:  "npm run build",
		ExitCode: 1,
		Stderr:   "Error: build failed",
		Now:      at(0),
	})
	require.NoError(t, err)
	require.True(t, capOut.IsError)
	require.True(t, capOut.EpisodeStored)
	require.Equal(t, "npm - error", capOut.Episode.Summary)
	require.Equal(t, "Error: build failed", capOut.Episode.Problem)
	require.Empty(t, capOut.PastFixes)

	// 2. The same command succeeding: episode via the important-tool rule.
	capOut, err = Capture(ctx, st, cfg, CaptureInput{
		CWD:     cwd,
		Command: "npm run build",
		Now:     at(1),
	})
	require.NoError(t, err)
	require.False(t, capOut.IsError)
	require.True(t, capOut.EpisodeStored)
	require.Equal(t, "npm - success", capOut.Episode.Summary)

	// 3. Search finds both, most recent first.
	searchOut, err := Search(ctx, st, SearchInput{Query: "npm"})
	require.NoError(t, err)
	require.Equal(t, 2, searchOut.Count)
	require.Equal(t, "npm - success", searchOut.Items[0].Summary)
	require.Equal(t, "npm - error", searchOut.Items[1].Summary)

	// 4. Fixes in capture order.
	fixesOut, err := Fixes(ctx, st, FixesInput{CWD: cwd})
	require.NoError(t, err)
	require.Len(t, fixesOut.Items, 2)
	require.Equal(t, "npm - error", fixesOut.Items[0].Summary)
	require.Equal(t, "npm - success", fixesOut.Items[1].Summary)

	// 5. Stats sees one project with two of each.
	statsOut, err := Stats(ctx, st)
	require.NoError(t, err)
	require.Equal(t, 2, statsOut.Events)
	require.Equal(t, 2, statsOut.Episodes)
	require.Equal(t, 1, statsOut.Projects)

	// 6. Review digest covers the project.
	reviewOut, err := Review(ctx, st, cfg, ReviewInput{})
	require.NoError(t, err)
	require.Contains(t, reviewOut.Markdown, "## app")
	require.Contains(t, reviewOut.Markdown, "npm - error")

	// 7. Export, then restore into a fresh store.
	backup := filepath.Join(t.TempDir(), "backup.json")
	_, err = Export(ctx, st, cfg, ExportInput{Path: backup})
	require.NoError(t, err)

	st2, err := store.Init(t.TempDir())
	require.NoError(t, err)
	importOut, err := Import(ctx, st2, cfg, ImportInput{Path: backup})
	require.NoError(t, err)
	require.Equal(t, 2, importOut.Events)

	searchOut, err = Search(ctx, st2, SearchInput{Query: "build failed"})
	require.NoError(t, err)
	require.Equal(t, 1, searchOut.Count)
}
