package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/backmassage/hardlinker/internal/config"
	"github.com/backmassage/hardlinker/internal/display"
	"github.com/backmassage/hardlinker/internal/linker"
	"github.com/backmassage/hardlinker/internal/logging"
	"github.com/backmassage/hardlinker/internal/naming"
)

// phase is one discover-resolve-link pass.
type phase struct {
	name     string
	scanRoot string
	exts     []string
	optional bool // A missing scanRoot is not an error.
}

func phases(cfg *config.Config) []phase {
	ps := []phase{
		{name: "anime", scanRoot: cfg.SourceDir, exts: cfg.VideoExtensions},
		{name: "source subtitles", scanRoot: cfg.SourceDir, exts: cfg.SubtitleExtensions},
	}
	if cfg.LinkTargetSubtitles {
		ps = append(ps, phase{name: "target subtitles", scanRoot: cfg.TargetDir, exts: cfg.SubtitleExtensions, optional: true})
	}
	return ps
}

// Run is the top-level batch entry point. It runs each phase in order and
// returns aggregate stats. Cancelling ctx stops new files from being picked
// up; links already in flight finish.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	var t tally
	t.stats.RunID = uuid.NewString()
	m := linker.New()
	start := time.Now()

	logBatchHeader(cfg, log, t.stats.RunID)

	for _, p := range phases(cfg) {
		if ctx.Err() != nil {
			break
		}
		runPhase(ctx, cfg, log, m, p, &t)
	}

	stats := t.snapshot()
	if ctx.Err() != nil {
		stats.Interrupted = true
		log.Warn("Interrupted")
	}
	logSummary(cfg, log, &stats, time.Since(start))
	return stats
}

func runPhase(ctx context.Context, cfg *config.Config, log *logging.Logger, m *linker.Materializer, p phase, t *tally) {
	if p.optional {
		if _, err := os.Stat(p.scanRoot); errors.Is(err, fs.ErrNotExist) {
			log.Debug(cfg.Verbose, "Phase %s: %s does not exist yet", p.name, p.scanRoot)
			return
		}
	}

	files, err := Discover(p.scanRoot, p.exts, cfg.Exclude, cfg.MaxDepth)
	if err != nil {
		for _, e := range splitErrors(err) {
			log.Error("Scan: %v", e)
			t.failed(e)
		}
	}
	t.discovered(len(files))
	log.Info("Phase %s: %s in %s", p.name, display.FormatCount(len(files), "file", "files"), p.scanRoot)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, src := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			linkOne(cfg, log, m, p, src, t)
			return nil
		})
	}
	_ = g.Wait()
}

// linkOne resolves and links a single file.
func linkOne(cfg *config.Config, log *logging.Logger, m *linker.Materializer, p phase, src string, t *tally) {
	r, ok := naming.ResolveTarget(src, p.scanRoot, cfg.TargetDir)
	if !ok {
		log.Debug(cfg.Verbose, "Unresolved (no series or episode): %s", src)
		t.unresolved()
		return
	}
	log.Debug(cfg.Verbose, "%s -> series %q, episode %q", r.RelPath, r.Series, r.Episode)

	// A subtitle already in its canonical place resolves to itself.
	if r.Target == src {
		log.Debug(cfg.Verbose, "Already in place: %s", src)
		t.record(linker.Result{Source: src, Target: src, Outcome: linker.SkippedExists})
		return
	}

	res := m.Link(src, r.Target, cfg.DryRun)
	t.record(res)

	switch res.Outcome {
	case linker.Created:
		if res.DryRun {
			log.Success("[DRY] Would link: %s -> %s", r.RelPath, rel(cfg.TargetDir, res.Target))
		} else {
			log.Success("Linked: %s -> %s", r.RelPath, rel(cfg.TargetDir, res.Target))
		}
	case linker.SkippedExists:
		if res.Owner != "" {
			log.Skip("Exists (claimed by %s): %s", res.Owner, res.Target)
		} else {
			log.Skip("Exists: %s", res.Target)
		}
	case linker.SkippedIgnored:
		log.Skip("Ignored (%s): %s", linker.IgnoreMarker, res.Target)
	case linker.FailedIO:
		log.Error("%v", res.Err)
	}
}

// rel shortens path for display; it falls back to path itself.
func rel(base, path string) string {
	if r, err := filepath.Rel(base, path); err == nil {
		return r
	}
	return path
}

// splitErrors unwraps an errors.Join result into its parts.
func splitErrors(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, runID string) {
	log.Info("Run %s", runID)
	log.Info("Source: %s", cfg.SourceDir)
	log.Info("Target: %s", cfg.TargetDir)
	log.Info("Depth: %d, workers: %d", cfg.MaxDepth, cfg.Workers)
	if len(cfg.Exclude) > 0 {
		log.Info("Excluding: %v", cfg.Exclude)
	}
	if !cfg.LinkTargetSubtitles {
		log.Info("Target subtitles: not relinked")
	}
	if cfg.DryRun {
		log.Warn("Dry run: no links will be created")
	}
	fmt.Println()
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats, elapsed time.Duration) {
	fmt.Println()
	log.Info("==============================")
	created := "linked"
	if cfg.DryRun {
		created = "would link"
	}
	log.Info("Done: %d %s, %d skipped, %d unresolved, %d failed",
		stats.Created, created, stats.Skipped(), stats.Unresolved, stats.Failed)
	log.Info("Summary report:")
	log.Info("  Files found: %d", stats.Total)
	log.Info("  Existing targets: %d", stats.SkippedExists)
	log.Info("  Ignored by %s: %d", linker.IgnoreMarker, stats.SkippedIgnored)
	log.Info("  Data shared by new links: %s", display.FormatBytes(stats.LinkedBytes))
	log.Info("  Elapsed: %s", elapsed.Round(time.Millisecond))

	for _, err := range stats.Failures {
		log.Error("  %v", err)
	}
}
