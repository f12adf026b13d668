// Command hardlinker mirrors an anime download tree into a clean
// "Series/Episode.ext" library using hard links.
//
// It parses flags, validates configuration and paths, and either runs
// link diagnostics (--check) or the linking pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/hardlinker/internal/check"
	"github.com/backmassage/hardlinker/internal/config"
	"github.com/backmassage/hardlinker/internal/display"
	"github.com/backmassage/hardlinker/internal/logging"
	"github.com/backmassage/hardlinker/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Bootstrap: no logger yet, so errors go straight to stderr.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		fmt.Fprintf(os.Stderr, "hardlinker: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "hardlinker: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hardlinker: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	// Source must exist; target is created unless this is a dry run. The
	// target must not sit inside the source.
	sourceAbs, err := absPath(cfg.SourceDir)
	if err != nil {
		log.Error("Source not found: %s", cfg.SourceDir)
		return 1
	}
	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.TargetDir, 0o755); err != nil {
			log.Error("Cannot create target directory: %s", cfg.TargetDir)
			return 1
		}
	}
	targetAbs, err := absPath(cfg.TargetDir)
	if err != nil {
		log.Error("Cannot resolve target path: %s", cfg.TargetDir)
		return 1
	}
	if err := cfg.ValidatePaths(sourceAbs, targetAbs); err != nil {
		log.Error("%v", err)
		log.Error("Choose a target path outside: %s", cfg.SourceDir)
		return 1
	}

	log.Info("=== hardlinker v%s (%s) ===", version, commit)
	if p := log.Path(); p != "" {
		log.Info("Log file: %s", p)
	}
	if err := check.Preflight(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	// Cancel on SIGINT/SIGTERM; workers stop taking new files.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats := pipeline.Run(ctx, &cfg, log)

	if stats.Failed > 0 || stats.Interrupted {
		return 1
	}
	return 0
}

// absPath returns the absolute, symlink-resolved path so source and target
// hierarchies compare reliably. A target that does not exist yet (dry run)
// resolves through its nearest existing ancestor.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	parent := filepath.Dir(abs)
	if parent == abs {
		return "", err
	}
	base, perr := absPath(parent)
	if perr != nil {
		return "", perr
	}
	return filepath.Join(base, filepath.Base(abs)), nil
}
