// Package check provides link diagnostics (--check mode) and the
// pre-batch validation (Preflight) for the source and target directories.
package check

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/backmassage/hardlinker/internal/config"
	"github.com/backmassage/hardlinker/internal/linker"
)

// Sentinel errors returned by Preflight.
var (
	ErrSourceNotFound = errors.New("source directory not found")
	ErrSourceNotDir   = errors.New("source path is not a directory")
	ErrTargetNotDir   = errors.New("target path is not a directory")
)

// Logger is the subset of *logging.Logger that RunCheck writes to.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: source and target
// accessibility, shared filesystem, and a live hard-link probe in the
// target. It reports every finding and returns false if any check failed.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Link Check ===")

	ok := true
	if cfg.SourceDir == "" || cfg.TargetDir == "" {
		log.Warn("Source or target not configured; nothing to check")
		return false
	}

	if err := checkSource(cfg.SourceDir); err != nil {
		log.Error("Source: %v", err)
		ok = false
	} else {
		log.Success("Source: %s", cfg.SourceDir)
	}

	targetExists, err := checkTarget(cfg.TargetDir)
	switch {
	case err != nil:
		log.Error("Target: %v", err)
		ok = false
	case targetExists:
		log.Success("Target: %s", cfg.TargetDir)
	default:
		log.Warn("Target does not exist yet (created on first run): %s", cfg.TargetDir)
	}

	if !ok || !targetExists {
		return ok
	}

	if same, known := sameDevice(cfg.SourceDir, cfg.TargetDir); !known {
		log.Warn("Cannot compare filesystems on this platform")
	} else if same {
		log.Success("Source and target share a filesystem")
	} else {
		log.Error("%v", crossDevice(cfg))
		ok = false
	}

	if err := probeLink(cfg.TargetDir); err != nil {
		log.Error("Hard links not supported in target: %v", err)
		ok = false
	} else {
		log.Success("Hard links work in target")
	}
	return ok
}

// Preflight is the pre-batch validation: the source must be an existing
// directory, the target must be a directory if it exists, and both must
// share a filesystem. A missing target is accepted (it is created on demand).
func Preflight(cfg *config.Config) error {
	if err := checkSource(cfg.SourceDir); err != nil {
		return err
	}
	targetExists, err := checkTarget(cfg.TargetDir)
	if err != nil {
		return err
	}
	if !targetExists {
		return nil
	}
	if same, known := sameDevice(cfg.SourceDir, cfg.TargetDir); known && !same {
		return crossDevice(cfg)
	}
	return nil
}

// crossDevice wraps the linker's sentinel so errors.Is matches preflight
// and per-link failures alike.
func crossDevice(cfg *config.Config) error {
	return fmt.Errorf("%s and %s: %w", cfg.SourceDir, cfg.TargetDir, linker.ErrCrossDevice)
}

// --- internal helpers ---

func checkSource(dir string) error {
	fi, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, dir)
	}
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceNotDir, dir)
	}
	if _, err := os.ReadDir(dir); err != nil {
		return fmt.Errorf("source not readable: %w", err)
	}
	return nil
}

// checkTarget reports whether the target exists; an existing non-directory
// is an error.
func checkTarget(dir string) (bool, error) {
	fi, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !fi.IsDir() {
		return false, fmt.Errorf("%w: %s", ErrTargetNotDir, dir)
	}
	return true, nil
}

// probeLink creates a scratch file in dir, hard-links it, and removes both.
func probeLink(dir string) error {
	f, err := os.CreateTemp(dir, ".hardlinker-check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	defer os.Remove(name)

	linked := name + ".link"
	if err := os.Link(name, linked); err != nil {
		return err
	}
	return os.Remove(linked)
}

// sameDevice reports whether a and b live on the same filesystem. known is
// false when the platform does not expose device numbers.
func sameDevice(a, b string) (same, known bool) {
	da, okA := deviceOf(filepath.Clean(a))
	db, okB := deviceOf(filepath.Clean(b))
	if !okA || !okB {
		return false, false
	}
	return da == db, true
}
