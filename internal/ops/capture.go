package ops

import (
	"context"
	"time"

	"github.com/trailtools/trail/internal/config"
	"github.com/trailtools/trail/internal/memory"
	"github.com/trailtools/trail/internal/store"
)

// CaptureInput contains parameters for the Capture operation.
type CaptureInput struct {
	CWD       string // working directory, stored verbatim (empty is legal)
	Command   string // full command text (empty is legal)
	ExitCode  int    // default 0
	Stderr    string
	GitBranch string // empty when not in a repository

	// Now overrides the capture timestamp; zero means time.Now().
	Now time.Time
}

// CaptureOutput contains the result of the Capture operation.
type CaptureOutput struct {
	EventID       string           `json:"event_id"`
	ProjectHash   string           `json:"project_hash"`
	ProjectName   string           `json:"project_name"`
	IsError       bool             `json:"is_error"`
	EpisodeStored bool             `json:"episode_stored"`
	Episode       *memory.Episode  `json:"episode,omitempty"`
	PastFixes     []memory.Episode `json:"past_fixes,omitempty"`
}

// Capture records one command execution: it folds the capture into the
// document and persists the result. When the execution was an error, the
// output carries the project's most recent past fixes so the caller can
// surface remedies that worked before. Classification never fails; the only
// error sources are loading and saving the document.
func Capture(ctx context.Context, st *store.Store, cfg *config.Config, input CaptureInput) (*CaptureOutput, error) {
	doc, err := st.Load()
	if err != nil {
		return nil, err
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	doc, res := doc.RecordCapture(memory.Capture{
		CWD:        input.CWD,
		Command:    input.Command,
		ExitCode:   input.ExitCode,
		Stderr:     input.Stderr,
		GitBranch:  input.GitBranch,
		Time:       now,
		ExtraTools: cfg.ExtraImportantTools,
	}, NewID)

	if err := st.Save(doc); err != nil {
		return nil, err
	}

	return &CaptureOutput{
		EventID:       res.Event.ID,
		ProjectHash:   res.Project.Hash,
		ProjectName:   res.Project.Name,
		IsError:       res.Event.IsError,
		EpisodeStored: res.Episode != nil,
		Episode:       res.Episode,
		PastFixes:     res.PastFixes,
	}, nil
}
