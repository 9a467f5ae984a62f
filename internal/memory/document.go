package memory

import (
	"fmt"
	"maps"
	"time"
)

// Document is the full persisted aggregate: every event, every episode, and
// every project, in insertion order. On disk it is a single JSON object with
// three arrays; in memory it additionally carries a keyed project index so
// lookups stay O(1) as the history grows. Transforms take a Document by
// value and return the updated value; the caller decides when to persist.
type Document struct {
	Events   []Event   `json:"events"`
	Episodes []Episode `json:"episodes"`
	Projects []Project `json:"projects"`

	// byHash maps project hash to its position in Projects. Maintained by
	// Reindex and RecordCapture; nil on hand-assembled documents, in which
	// case lookups fall back to a scan.
	byHash map[string]int
}

// NewDocument returns an empty document. The slices are non-nil so a fresh
// document serializes as {"events":[],"episodes":[],"projects":[]}.
func NewDocument() Document {
	return Document{
		Events:   []Event{},
		Episodes: []Episode{},
		Projects: []Project{},
		byHash:   map[string]int{},
	}
}

// Reindex rebuilds the keyed project index from the Projects slice.
// Called after load and after any direct manipulation of Projects.
func (d *Document) Reindex() {
	m := make(map[string]int, len(d.Projects))
	for i, p := range d.Projects {
		m[p.Hash] = i
	}
	d.byHash = m
}

// findProject returns the position of the project with the given hash.
func (d Document) findProject(hash string) (int, bool) {
	if i, ok := d.byHash[hash]; ok && i < len(d.Projects) && d.Projects[i].Hash == hash {
		return i, true
	}
	if d.byHash == nil {
		for i, p := range d.Projects {
			if p.Hash == hash {
				return i, true
			}
		}
	}
	return 0, false
}

// Project returns the project with the given hash, if present.
func (d Document) Project(hash string) (Project, bool) {
	i, ok := d.findProject(hash)
	if !ok {
		return Project{}, false
	}
	return d.Projects[i], true
}

// Counts reports the document's aggregate sizes for stats views.
func (d Document) Counts() (events, episodes, projects int) {
	return len(d.Events), len(d.Episodes), len(d.Projects)
}

// cloneIndex returns a private copy of the index with hash mapped to pos,
// so diverging document values never share index writes.
func (d Document) cloneIndex(hash string, pos int) map[string]int {
	if d.byHash == nil {
		return nil
	}
	m := maps.Clone(d.byHash)
	m[hash] = pos
	return m
}

// Validate checks the document against its schema: required fields present,
// timestamps parseable, project hashes unique, and every event and episode
// pointing at a project that exists. A document that fails validation is
// malformed and must not be accepted.
func (d Document) Validate() error {
	seen := make(map[string]bool, len(d.Projects))
	for i, p := range d.Projects {
		if p.Hash == "" {
			return fmt.Errorf("project %d: empty hash", i)
		}
		if seen[p.Hash] {
			return fmt.Errorf("project %d: duplicate hash %q", i, p.Hash)
		}
		seen[p.Hash] = true
		if err := checkTimestamp(p.FirstSeen); err != nil {
			return fmt.Errorf("project %q: firstSeen: %w", p.Hash, err)
		}
		if err := checkTimestamp(p.LastSeen); err != nil {
			return fmt.Errorf("project %q: lastSeen: %w", p.Hash, err)
		}
	}
	for i, ev := range d.Events {
		if ev.ID == "" {
			return fmt.Errorf("event %d: empty id", i)
		}
		if err := checkTimestamp(ev.Timestamp); err != nil {
			return fmt.Errorf("event %q: %w", ev.ID, err)
		}
		if !seen[ev.ProjectHash] {
			return fmt.Errorf("event %q: unknown project %q", ev.ID, ev.ProjectHash)
		}
	}
	for i, ep := range d.Episodes {
		if ep.ID == "" {
			return fmt.Errorf("episode %d: empty id", i)
		}
		if err := checkTimestamp(ep.Timestamp); err != nil {
			return fmt.Errorf("episode %q: %w", ep.ID, err)
		}
		if !seen[ep.ProjectHash] {
			return fmt.Errorf("episode %q: unknown project %q", ep.ID, ep.ProjectHash)
		}
	}
	return nil
}

func checkTimestamp(ts string) error {
	if ts == "" {
		return fmt.Errorf("empty timestamp")
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		return fmt.Errorf("bad timestamp %q", ts)
	}
	return nil
}
