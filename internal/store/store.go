// Package store persists the memory document as a single JSON file. The
// whole document is read and written as a unit; there is no locking and no
// merge: when two processes race, the last writer wins.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trailtools/trail/internal/errors"
	"github.com/trailtools/trail/internal/memory"
)

// DocumentFile is the name of the memory document inside the base directory.
const DocumentFile = "memory.json"

// Store owns the on-disk location of the memory document.
type Store struct {
	path       string
	exportsDir string
}

// Init prepares baseDir (created with restricted permissions if missing) and
// returns a Store rooted there. The baseDir parameter allows tests to use
// t.TempDir() instead of ~/.trail.
func Init(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.NewIO(baseDir, fmt.Errorf("failed to create base directory: %w", err))
	}
	// Explicit chmod (best-effort, may not work on all platforms)
	_ = os.Chmod(baseDir, 0700)

	exportsDir := filepath.Join(baseDir, "exports")
	if err := os.MkdirAll(exportsDir, 0700); err != nil {
		return nil, errors.NewIO(exportsDir, fmt.Errorf("failed to create exports directory: %w", err))
	}
	_ = os.Chmod(exportsDir, 0700)

	return &Store{
		path:       filepath.Join(baseDir, DocumentFile),
		exportsDir: exportsDir,
	}, nil
}

// Path returns the location of the memory document.
func (s *Store) Path() string {
	return s.path
}

// ExportsDir returns the directory backups are written to by default.
func (s *Store) ExportsDir() string {
	return s.exportsDir
}

// Load reads the memory document. A missing file is a valid initial state
// and yields a fresh empty document; content that cannot be parsed or fails
// schema validation is a fatal condition, propagated without any attempt to
// repair or reset the history.
func (s *Store) Load() (memory.Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return memory.NewDocument(), nil
	}
	if err != nil {
		return memory.Document{}, errors.NewIO(s.path, err)
	}

	doc, err := Decode(data)
	if err != nil {
		return memory.Document{}, errors.NewMalformedDocument(s.path, err)
	}
	return doc, nil
}

// Save serializes the full document and overwrites the prior content as one
// unit. The document is written to a temporary file first and moved into
// place, so a failed write never leaves a half-written document behind.
func (s *Store) Save(doc memory.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return errors.NewInternal(err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return errors.NewIO(s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.NewIO(s.path, err)
	}
	return nil
}

// Decode parses and validates document bytes. Unknown top-level or record
// fields are rejected: the schema is explicit, and a document some other
// tool scribbled extra state into is treated as malformed rather than
// silently re-saved without that state. Null arrays are upgraded to empty
// ones, and the project index is rebuilt.
func Decode(data []byte) (memory.Document, error) {
	var doc memory.Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return memory.Document{}, err
	}
	if dec.More() {
		return memory.Document{}, fmt.Errorf("trailing data after document")
	}

	if doc.Events == nil {
		doc.Events = []memory.Event{}
	}
	if doc.Episodes == nil {
		doc.Episodes = []memory.Episode{}
	}
	if doc.Projects == nil {
		doc.Projects = []memory.Project{}
	}

	if err := doc.Validate(); err != nil {
		return memory.Document{}, err
	}
	doc.Reindex()
	return doc, nil
}

// Encode renders the document in its on-disk form: indented JSON with a
// trailing newline, friendly to hand inspection and diffs.
func Encode(doc memory.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
