package memory

import (
	"slices"
	"time"
)

// errorFixContext is how many past fixes a capture result surfaces when the
// captured event is an error.
const errorFixContext = 3

// Capture describes one command execution to record.
type Capture struct {
	// CWD is the working directory, stored verbatim
	CWD string

	// Command is the full command text
	Command string

	// ExitCode is the command's exit status
	ExitCode int

	// Stderr is the captured error output
	Stderr string

	// GitBranch is the current branch; leave empty when unknown
	GitBranch string

	// Time is the capture instant
	Time time.Time

	// ExtraTools are additional first tokens that count as important,
	// merged from configuration; the built-in set always applies
	ExtraTools []string
}

// CaptureResult reports what RecordCapture did with one capture.
type CaptureResult struct {
	// Project is the effective project record after the upsert
	Project Project

	// Event is the appended raw event
	Event Event

	// Episode is the appended episode, nil when the capture was not
	// significant
	Episode *Episode

	// PastFixes holds the project's prior fixes (up to three, oldest
	// first), filled only when the event was an error so the caller can
	// surface remedies that worked before
	PastFixes []Episode
}

// RecordCapture folds one command execution into the document: upserts the
// project, appends the raw event, and appends a derived episode when the
// execution was an error or invoked an important tool. The receiver is not
// mutated; the updated document is returned alongside the result. newID
// supplies record identifiers so the transform stays deterministic under
// test. RecordCapture never fails, including on empty command or cwd.
func (d Document) RecordCapture(c Capture, newID func() string) (Document, CaptureResult) {
	ts := FormatTime(c.Time)
	isErr := IsError(c.ExitCode, c.Stderr)

	project, out := d.upsertProject(c.CWD, ts)

	ev := Event{
		ID:          newID(),
		Timestamp:   ts,
		CWD:         c.CWD,
		GitBranch:   c.GitBranch,
		Command:     c.Command,
		ExitCode:    c.ExitCode,
		Stderr:      c.Stderr,
		ProjectHash: project.Hash,
		IsError:     isErr,
	}
	out.Events = append(slices.Clip(out.Events), ev)

	res := CaptureResult{Project: project, Event: ev}
	if isErr {
		// Fixes that predate this capture; the episode about to be
		// appended would only echo the failing command back.
		res.PastFixes = RecentFixes(d.Episodes, project.Hash, errorFixContext)
	}

	if isErr || isImportantWith(c.Command, c.ExtraTools) {
		ep := Episode{
			ID:          newID(),
			ProjectHash: project.Hash,
			Timestamp:   ts,
			Summary:     Summary(c.Command, isErr),
			Fix:         c.Command,
			Keywords:    Keywords(c.Command, c.CWD),
		}
		if isErr {
			ep.Problem = truncateChars(c.Stderr, maxProblemChars)
		}
		out.Episodes = append(slices.Clip(out.Episodes), ep)
		res.Episode = &ep
	}

	return out, res
}
