package linker

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Sentinel errors wrapped into FailedIO results so callers can tell the
// common link failures apart with errors.Is.
var (
	ErrCrossDevice  = errors.New("source and target are on different filesystems")
	ErrNotPermitted = errors.New("hard link not permitted")
	ErrTooManyLinks = errors.New("source has too many links")
)

// classify wraps a link error with a sentinel describing its cause. The
// original error stays in the chain.
func classify(op, source, target string, err error) error {
	var kind error
	switch {
	case errors.Is(err, syscall.EXDEV):
		kind = ErrCrossDevice
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.EPERM):
		kind = ErrNotPermitted
	case errors.Is(err, syscall.EMLINK):
		kind = ErrTooManyLinks
	}
	if kind == nil {
		return fmt.Errorf("%s %s <- %s: %w", op, target, source, err)
	}
	return fmt.Errorf("%s %s <- %s: %w: %w", op, target, source, kind, err)
}
