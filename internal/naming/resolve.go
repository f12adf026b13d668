package naming

import (
	"path/filepath"
	"strings"
)

// Resolution is the outcome of mapping one source file into the target
// library.
type Resolution struct {
	Source  string // Source file path as given.
	RelPath string // Source path relative to the scan root.
	Series  string // Sanitized name of the folder containing the file.
	Episode string // Episode token, verbatim.
	Target  string // Canonical target path.
}

// ResolveTarget computes where source belongs under targetRoot.
//
// The folder that contains the file names the series; everything above
// that folder (downPath) is preserved:
//
//	<scanRoot>/Anime/[Group] Show (BD)/Show - 01.mkv
//	  → <targetRoot>/Anime/Show/01.mkv
//
// ok is false when source is not below scanRoot, when the file sits
// directly in scanRoot (no folder to name the series), when the series
// name sanitizes to "." or "..", or when no episode can be found. Identical
// inputs always give identical results.
func ResolveTarget(source, scanRoot, targetRoot string) (r Resolution, ok bool) {
	rel, err := filepath.Rel(scanRoot, source)
	if err != nil || !isBelow(rel) {
		return Resolution{}, false
	}

	releaseDir, file := filepath.Split(rel)
	releaseDir = filepath.Clean(releaseDir)
	if releaseDir == "." || file == "" {
		return Resolution{}, false
	}

	// An all-bracket folder gives an empty series; the episode then lands
	// directly in downPath.
	series := Sanitize(filepath.Base(releaseDir))
	if series == "." || series == ".." {
		return Resolution{}, false
	}

	ext := Ext(file)
	episode, ok := ExtractEpisode(strings.TrimSuffix(file, ext), series)
	if !ok {
		return Resolution{}, false
	}

	downPath := filepath.Dir(releaseDir)
	if downPath == "." {
		downPath = ""
	}

	return Resolution{
		Source:  source,
		RelPath: rel,
		Series:  series,
		Episode: episode,
		Target:  filepath.Join(targetRoot, downPath, series, episode+ext),
	}, true
}

// isBelow reports whether a filepath.Rel result points strictly inside the
// base directory.
func isBelow(rel string) bool {
	if rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Ext returns the extension of name including the dot. Leading dots do not
// start an extension, so ".mkv" and "..mkv" have none while "a.b.mkv" has
// ".mkv".
func Ext(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	if strings.TrimLeft(name[:len(name)-len(ext)], ".") == "" {
		return ""
	}
	return ext
}
