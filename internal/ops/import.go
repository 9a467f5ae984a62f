package ops

import (
	"context"
	"io"

	"github.com/trailtools/trail/internal/config"
	"github.com/trailtools/trail/internal/errors"
	"github.com/trailtools/trail/internal/store"
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string // required
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Path     string `json:"path"`
	Events   int    `json:"events"`
	Episodes int    `json:"episodes"`
	Projects int    `json:"projects"`
}

// Import restores a backup as the live memory document. The file must be a
// well-formed document: malformed JSON or invariant violations abort the
// import with nothing written. The restored document replaces the current
// one wholesale; last write wins, same as every other save.
func Import(ctx context.Context, st *store.Store, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	if err := ValidatePath(input.Path, PathCheckRead, cfg); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(input.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewIO(input.Path, err)
	}

	doc, err := store.Decode(data)
	if err != nil {
		return nil, errors.NewMalformedDocument(input.Path, err)
	}

	if err := st.Save(doc); err != nil {
		return nil, err
	}

	events, episodes, projects := doc.Counts()
	return &ImportOutput{
		Path:     input.Path,
		Events:   events,
		Episodes: episodes,
		Projects: projects,
	}, nil
}
