package note

import "strings"

// NormalizeLabels splits comma-separated label text into trimmed tokens.
// Empty and whitespace-only tokens are dropped. Duplicates and order are
// kept as typed; matching does not care, display does.
func NormalizeLabels(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// JoinLabels is the inverse used when loading a note back into the draft.
func JoinLabels(labels []string) string {
	return strings.Join(labels, ", ")
}

// MatchesFilter reports whether the note passes the label filter. An
// empty or whitespace-only filter matches every note; otherwise at least
// one label must contain the filter as a case-insensitive substring.
func MatchesFilter(n Note, filter string) bool {
	if strings.TrimSpace(filter) == "" {
		return true
	}
	f := strings.ToLower(filter)
	for _, l := range n.Labels {
		if strings.Contains(strings.ToLower(l), f) {
			return true
		}
	}
	return false
}
