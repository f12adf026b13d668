package naming

import (
	"regexp"
	"strings"
)

var (
	// reBracketDigits matches an episode written only as "[07]".
	reBracketDigits = regexp.MustCompile(`\[(\p{Nd}+)\]`)

	// reDigitRun matches a maximal run of decimal digits, including
	// full-width forms such as "０７".
	reDigitRun = regexp.MustCompile(`\p{Nd}+`)
)

// ExtractEpisode isolates the episode token in a file name (without
// extension) once the series name is known.
//
// The first occurrence of series is removed as a literal substring, then
// annotations are stripped. If text remains, its first digit run is the
// episode ("Show - 07" → "07"). If nothing remains, the episode must have
// been bracketed, so the first "[digits]" group of the unstripped remainder
// is used ("Show[01]" → "01"). The token is returned verbatim, leading
// zeros included. ok is false when no episode can be found.
func ExtractEpisode(fileNameNoExt, series string) (episode string, ok bool) {
	rest := strings.Replace(fileNameNoExt, series, "", 1)

	core := stripAnnotations(rest)
	if core == "" {
		m := reBracketDigits.FindStringSubmatch(rest)
		if m == nil {
			return "", false
		}
		return m[1], true
	}

	episode = reDigitRun.FindString(core)
	if episode == "" {
		return "", false
	}
	return episode, true
}
