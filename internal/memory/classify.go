package memory

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// errorPatterns are the stderr substrings (matched case-insensitively) that
// mark an execution as an error even when the exit code is zero.
var errorPatterns = []string{"error", "fail", "exception", "not found", "cannot"}

// importantTools are the first tokens whose invocation always produces an
// episode, success or not.
var importantTools = map[string]struct{}{
	"npm": {}, "yarn": {}, "pnpm": {}, "git": {}, "docker": {}, "kubectl": {},
	"python": {}, "cargo": {}, "go": {}, "make": {}, "gradle": {}, "mvn": {},
}

// maxProblemChars caps the stderr excerpt stored on an error episode.
const maxProblemChars = 200

// IsError reports whether an execution counts as an error: a non-zero exit
// code, or stderr containing one of the known error patterns. Empty stderr
// with exit code 0 is never an error.
func IsError(exitCode int, stderr string) bool {
	if exitCode != 0 {
		return true
	}
	s := strings.ToLower(stderr)
	for _, pat := range errorPatterns {
		if strings.Contains(s, pat) {
			return true
		}
	}
	return false
}

// FirstToken returns the first whitespace-delimited token of command, or ""
// for an empty or all-whitespace command.
func FirstToken(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// IsImportant reports whether the command's first token exactly equals one
// of the recognized important tools.
func IsImportant(command string) bool {
	return isImportantWith(command, nil)
}

// isImportantWith extends the built-in tool set with extra names, used when
// the configuration adds tools of its own.
func isImportantWith(command string, extra []string) bool {
	tok := FirstToken(command)
	if tok == "" {
		return false
	}
	if _, ok := importantTools[tok]; ok {
		return true
	}
	return slices.Contains(extra, tok)
}

// Keywords builds the episode keyword string: the command's first token,
// joined with the cwd's last segment when that segment is non-empty.
func Keywords(command, cwd string) string {
	tok := FirstToken(command)
	if seg := lastSegment(cwd); seg != "" {
		return tok + ", " + seg
	}
	return tok
}

// Summary renders the one-line episode summary for a command outcome.
func Summary(command string, isError bool) string {
	if isError {
		return FirstToken(command) + " - error"
	}
	return FirstToken(command) + " - success"
}

// truncateChars returns the first max characters of s, UTF-8 safe.
func truncateChars(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
