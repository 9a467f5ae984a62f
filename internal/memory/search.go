package memory

import (
	"slices"
	"strings"
)

// MaxSearchResults caps how many episodes a search returns. Matches older
// than the newest MaxSearchResults matches are dropped, not paginated.
const MaxSearchResults = 10

// SearchEpisodes finds episodes whose summary, problem, or fix contains the
// query, case-insensitively. Absent fields are skipped, never matched. Of
// the matches, only the most recent MaxSearchResults survive, and they are
// returned most recent first.
func SearchEpisodes(episodes []Episode, query string) []Episode {
	q := strings.ToLower(query)
	var matches []Episode
	for _, e := range episodes {
		if episodeMatches(e, q) {
			matches = append(matches, e)
		}
	}
	if len(matches) > MaxSearchResults {
		matches = matches[len(matches)-MaxSearchResults:]
	}
	slices.Reverse(matches)
	return matches
}

func episodeMatches(e Episode, q string) bool {
	if strings.Contains(strings.ToLower(e.Summary), q) {
		return true
	}
	if e.Problem != "" && strings.Contains(strings.ToLower(e.Problem), q) {
		return true
	}
	if e.Fix != "" && strings.Contains(strings.ToLower(e.Fix), q) {
		return true
	}
	return false
}

// RecentFixes returns the project's last limit episodes that carry a fix,
// oldest first, the order they were captured in, not reversed. A limit of
// zero or less returns nothing.
func RecentFixes(episodes []Episode, projectHash string, limit int) []Episode {
	if limit <= 0 {
		return nil
	}
	var fixes []Episode
	for _, e := range episodes {
		if e.ProjectHash == projectHash && e.Fix != "" {
			fixes = append(fixes, e)
		}
	}
	if len(fixes) > limit {
		fixes = fixes[len(fixes)-limit:]
	}
	return fixes
}
