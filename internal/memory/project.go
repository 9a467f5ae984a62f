package memory

import (
	"crypto/sha256"
	"fmt"
	"slices"
	"strings"
)

// HashOf derives the stable 8-character project identifier for a working
// directory: a truncated SHA-256 of the cwd string exactly as given. No
// normalization happens here; "/a/b" and "/a/b/" are distinct inputs and
// may hash differently. Stable across platforms and restarts.
func HashOf(cwd string) string {
	sum := sha256.Sum256([]byte(cwd))
	return fmt.Sprintf("%x", sum[:4])
}

// lastSegment returns the part of cwd after the final slash: the directory's
// own name. A cwd without separators is its own segment; the empty string
// yields the empty segment.
func lastSegment(cwd string) string {
	if i := strings.LastIndexByte(cwd, '/'); i >= 0 {
		return cwd[i+1:]
	}
	return cwd
}

// upsertProject returns the effective project for cwd at ts, inserting a new
// record or refreshing lastSeen on the existing one. The receiver is not
// mutated: the updated Projects slice and index are returned through doc.
func (d Document) upsertProject(cwd, ts string) (Project, Document) {
	hash := HashOf(cwd)
	if i, ok := d.findProject(hash); ok {
		ps := slices.Clone(d.Projects)
		ps[i].LastSeen = ts
		d.Projects = ps
		return ps[i], d
	}
	p := Project{
		Hash:      hash,
		Name:      lastSegment(cwd),
		Root:      cwd,
		FirstSeen: ts,
		LastSeen:  ts,
	}
	d.Projects = append(slices.Clip(d.Projects), p)
	d.byHash = d.cloneIndex(hash, len(d.Projects)-1)
	return p, d
}
