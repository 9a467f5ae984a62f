package ops

import (
	"context"
	"strings"

	"github.com/trailtools/trail/internal/errors"
	"github.com/trailtools/trail/internal/memory"
	"github.com/trailtools/trail/internal/store"
)

// ShowInput contains parameters for the Show operation.
type ShowInput struct {
	ID string // required: event or episode id
}

// ShowOutput contains the result of the Show operation. Exactly one of Event
// and Episode is set; Kind names which.
type ShowOutput struct {
	Kind    string          `json:"kind"` // "event" or "episode"
	Event   *memory.Event   `json:"event,omitempty"`
	Episode *memory.Episode `json:"episode,omitempty"`
	Project *memory.Project `json:"project,omitempty"`
}

// Show fetches a single event or episode by id, with its project attached.
func Show(ctx context.Context, st *store.Store, input ShowInput) (*ShowOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	doc, err := st.Load()
	if err != nil {
		return nil, err
	}

	for i := range doc.Events {
		if doc.Events[i].ID == id {
			out := &ShowOutput{Kind: "event", Event: &doc.Events[i]}
			if p, ok := doc.Project(doc.Events[i].ProjectHash); ok {
				out.Project = &p
			}
			return out, nil
		}
	}
	for i := range doc.Episodes {
		if doc.Episodes[i].ID == id {
			out := &ShowOutput{Kind: "episode", Episode: &doc.Episodes[i]}
			if p, ok := doc.Project(doc.Episodes[i].ProjectHash); ok {
				out.Project = &p
			}
			return out, nil
		}
	}

	return nil, errors.NewNotFound(id)
}
