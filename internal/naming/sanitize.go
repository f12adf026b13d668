package naming

import (
	"regexp"
	"strings"
)

// reAnnotations matches a single bracketed annotation such as [Group],
// (BD), {v2} or <1080p>. One alternation, non-greedy, non-recursive: a
// nested span of the same kind is only partly removed ("[a [b] c]" leaves
// " c]") and unbalanced brackets are left alone.
var reAnnotations = regexp.MustCompile(`\(.*?\)|\{.*?\}|\[.*?\]|<.*?>`)

// stripAnnotations removes every annotation span in one left-to-right pass
// and trims surrounding whitespace.
func stripAnnotations(s string) string {
	return strings.TrimSpace(reAnnotations.ReplaceAllString(s, ""))
}

// Sanitize turns a raw folder name into a series name by removing all
// bracketed annotations. The result may be empty when the whole name was
// bracketed, e.g. "[Group][1080p]".
func Sanitize(raw string) string {
	return stripAnnotations(raw)
}
