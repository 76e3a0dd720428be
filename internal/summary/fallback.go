package summary

import "strings"

// Fallback derives a deterministic summary when the backend is
// unavailable: the first two period-separated segments of the content,
// rejoined and closed with a period.
func Fallback(content string) string {
	segs := strings.Split(content, ".")
	if len(segs) > 2 {
		segs = segs[:2]
	}
	return strings.Join(segs, ".") + "."
}
