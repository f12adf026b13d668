// Package naming infers a series name and episode token from a media file's
// location and maps the file to its canonical place in the target library.
//
// Everything here is pure: no filesystem access, no logging, no shared
// state. Callers may resolve files concurrently.
//
// Functions:
//   - Sanitize(raw) → series name with (), {}, [] and <> annotations removed
//   - ExtractEpisode(stem, series) → episode token, or absent
//   - ResolveTarget(source, scanRoot, targetRoot) → Resolution, or absent
//   - Ext(name) → file extension, ignoring leading dots
//
// Layout convention:
//
//	<scanRoot>/<downPath>/<releaseFolder>/<file>.<ext>
//	  → <targetRoot>/<downPath>/<Sanitize(releaseFolder)>/<episode>.<ext>
package naming
