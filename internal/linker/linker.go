package linker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// IgnoreMarker is the file name that suppresses linking into the directory
// containing it.
const IgnoreMarker = "link.ignore"

// markerCacheSize bounds the number of target directories whose marker
// state is remembered.
const markerCacheSize = 4096

// Outcome is the result category of one link attempt.
type Outcome int

const (
	Created Outcome = iota
	SkippedExists
	SkippedIgnored
	FailedIO
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case SkippedExists:
		return "skipped (exists)"
	case SkippedIgnored:
		return "skipped (ignored)"
	case FailedIO:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result describes what Link did for one (source, target) pair.
type Result struct {
	Source  string
	Target  string
	Outcome Outcome
	DryRun  bool   // No filesystem change was made.
	Owner   string // For SkippedExists: the source that claimed target first, if any.
	Size    int64  // Source size in bytes when Outcome is Created.
	Err     error  // Set only for FailedIO.
}

// Materializer creates hard links for one run. It remembers which source
// claimed each target and which target directories carry an ignore marker.
type Materializer struct {
	claims  *claims
	markers *lru.Cache[string, bool]
}

// New returns a Materializer with empty claim and marker state.
func New() *Materializer {
	// lru.New only fails for a non-positive size.
	markers, _ := lru.New[string, bool](markerCacheSize)
	return &Materializer{
		claims:  newClaims(),
		markers: markers,
	}
}

// Link hard-links target to source unless target exists, is claimed by
// another source, or is suppressed by an ignore marker. Missing parent
// directories of target are created. With dryRun set, nothing is written
// and the would-be outcome is returned.
func (m *Materializer) Link(source, target string, dryRun bool) Result {
	res := Result{Source: source, Target: target, DryRun: dryRun}

	if owner, ok := m.claims.claim(source, target); !ok {
		res.Outcome = SkippedExists
		res.Owner = owner
		return res
	}

	if _, err := os.Lstat(target); err == nil {
		res.Outcome = SkippedExists
		return res
	} else if !errors.Is(err, fs.ErrNotExist) {
		return m.fail(res, classify("stat", source, target, err))
	}

	dir := filepath.Dir(target)
	if m.ignored(dir) {
		res.Outcome = SkippedIgnored
		return res
	}

	info, err := os.Stat(source)
	if err != nil {
		return m.fail(res, classify("stat", source, target, err))
	}
	res.Size = info.Size()

	if dryRun {
		res.Outcome = Created
		return res
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return m.fail(res, classify("mkdir", source, target, err))
	}
	if err := os.Link(source, target); err != nil {
		if errors.Is(err, fs.ErrExist) {
			res.Outcome = SkippedExists
			res.Size = 0
			return res
		}
		return m.fail(res, classify("link", source, target, err))
	}

	res.Outcome = Created
	return res
}

// fail records an I/O failure and gives up the claim so a later source
// for the same target may still try.
func (m *Materializer) fail(res Result, err error) Result {
	m.claims.release(res.Source, res.Target)
	res.Outcome = FailedIO
	res.Size = 0
	res.Err = err
	return res
}

// ignored reports whether dir holds an ignore marker. Answers are cached
// per directory for the lifetime of the Materializer.
func (m *Materializer) ignored(dir string) bool {
	if v, ok := m.markers.Get(dir); ok {
		return v
	}
	_, err := os.Stat(filepath.Join(dir, IgnoreMarker))
	present := err == nil
	m.markers.Add(dir, present)
	return present
}
