package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/hardlinker/internal/config"
	"github.com/backmassage/hardlinker/internal/linker"
	"github.com/backmassage/hardlinker/internal/logging"
)

// --- Discover tests ---

func TestDiscover_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mkv")
	touch(t, dir, "b.mp4")
	touch(t, dir, "c.MKV")
	touch(t, dir, "notes.txt")
	touch(t, dir, ".mkv")

	files, err := Discover(dir, []string{".mkv", ".mp4"}, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.mkv", "b.mp4"}, basenames(files))
}

func TestDiscover_Depth(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "root.mkv")
	touch(t, filepath.Join(dir, "one"), "one.mkv")
	touch(t, filepath.Join(dir, "one", "two"), "two.mkv")

	tests := []struct {
		depth int
		want  []string
	}{
		{0, []string{"root.mkv"}},
		{1, []string{"one.mkv", "root.mkv"}},
		{2, []string{"one.mkv", "two.mkv", "root.mkv"}},
	}
	for _, tt := range tests {
		files, err := Discover(dir, []string{".mkv"}, nil, tt.depth)
		require.NoError(t, err)
		assert.Equal(t, tt.want, basenames(files), "depth %d", tt.depth)
	}
}

func TestDiscover_Exclude(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Show"), "01.mkv")
	touch(t, filepath.Join(dir, "Show [Extras]"), "NCOP.mkv")

	files, err := Discover(dir, []string{".mkv"}, []string{"Extras"}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"01.mkv"}, basenames(files))

	// A root path matching an exclude yields nothing.
	files, err = Discover(dir, []string{".mkv"}, []string{filepath.Base(dir)}, 1)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscover_BrokenSymlinkKeepsGoing(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "good.mkv")
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling.mkv")))

	files, err := Discover(dir, []string{".mkv"}, nil, 0)
	assert.Error(t, err)
	assert.Equal(t, []string{"good.mkv"}, basenames(files))
}

func TestDiscover_BrokenSymlinkUnwantedExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "good.mkv")
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "info.nfo")))

	files, err := Discover(dir, []string{".mkv"}, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"good.mkv"}, basenames(files))
}

func TestRun_StrayBrokenLinkIsNotAFailure(t *testing.T) {
	cfg, log := testConfig(t)
	dir := filepath.Join(cfg.SourceDir, "Anime", "[Group] Show")
	touch(t, dir, "Show - 01.mkv")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "Show.nfo")))

	stats := Run(context.Background(), cfg, log)

	assert.Equal(t, 1, stats.Created)
	assert.Zero(t, stats.Failed)
}

func TestDiscover_MissingRoot(t *testing.T) {
	files, err := Discover(filepath.Join(t.TempDir(), "nope"), []string{".mkv"}, nil, 1)
	assert.Error(t, err)
	assert.Nil(t, files)
}

// --- Run tests ---

func TestRun_LinksIntoLibrary(t *testing.T) {
	cfg, log := testConfig(t)
	src := touch(t, filepath.Join(cfg.SourceDir, "Anime", "[Group] Show (BD)"), "Show - 01.mkv")

	stats := Run(context.Background(), cfg, log)

	want := filepath.Join(cfg.TargetDir, "Anime", "Show", "01.mkv")
	assertSameFile(t, src, want)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, int64(len("data")), stats.LinkedBytes)
	assert.Zero(t, stats.Failed)
	assert.NoError(t, stats.Err())
	assert.NotEmpty(t, stats.RunID)
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	cfg, log := testConfig(t)
	cfg.DryRun = true
	touch(t, filepath.Join(cfg.SourceDir, "Anime", "[Group] Show (BD)"), "Show - 01.mkv")

	stats := Run(context.Background(), cfg, log)

	assert.Equal(t, 1, stats.Created)
	entries, err := os.ReadDir(cfg.TargetDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_SecondRunSkipsEverything(t *testing.T) {
	cfg, log := testConfig(t)
	dir := filepath.Join(cfg.SourceDir, "Anime", "[Group] Show (BD)")
	touch(t, dir, "Show - 01.mkv")
	touch(t, dir, "Show - 02.mkv")

	first := Run(context.Background(), cfg, log)
	require.Equal(t, 2, first.Created)

	second := Run(context.Background(), cfg, log)
	assert.Zero(t, second.Created)
	assert.Equal(t, 2, second.SkippedExists)
	assert.Zero(t, second.Failed)
}

func TestRun_UnresolvedFiles(t *testing.T) {
	cfg, log := testConfig(t)
	touch(t, cfg.SourceDir, "Loose - 01.mkv")
	touch(t, filepath.Join(cfg.SourceDir, "Show"), "Show.mkv")

	stats := Run(context.Background(), cfg, log)

	assert.Equal(t, 2, stats.Unresolved)
	assert.Zero(t, stats.Created)
	assert.Zero(t, stats.Failed)
}

func TestRun_CollidingSourcesLinkOnce(t *testing.T) {
	cfg, log := testConfig(t)
	touch(t, filepath.Join(cfg.SourceDir, "Anime", "[A] Show"), "Show - 01.mkv")
	touch(t, filepath.Join(cfg.SourceDir, "Anime", "[B] Show"), "Show - 01.mkv")

	stats := Run(context.Background(), cfg, log)

	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, 1, stats.SkippedExists)
	assert.FileExists(t, filepath.Join(cfg.TargetDir, "Anime", "Show", "01.mkv"))
}

func TestRun_IgnoreMarker(t *testing.T) {
	cfg, log := testConfig(t)
	touch(t, filepath.Join(cfg.SourceDir, "Anime", "[Group] Show"), "Show - 01.mkv")
	touch(t, filepath.Join(cfg.TargetDir, "Anime", "Show"), linker.IgnoreMarker)

	stats := Run(context.Background(), cfg, log)

	assert.Equal(t, 1, stats.SkippedIgnored)
	assert.NoFileExists(t, filepath.Join(cfg.TargetDir, "Anime", "Show", "01.mkv"))
}

func TestRun_Subtitles(t *testing.T) {
	cfg, log := testConfig(t)
	touch(t, filepath.Join(cfg.SourceDir, "Anime", "[Group] Show"), "Show - 01.ass")
	dropped := touch(t, filepath.Join(cfg.TargetDir, "Anime", "[Sub] Show"), "Show - 02.srt")

	stats := Run(context.Background(), cfg, log)

	assert.FileExists(t, filepath.Join(cfg.TargetDir, "Anime", "Show", "01.ass"))
	assertSameFile(t, dropped, filepath.Join(cfg.TargetDir, "Anime", "Show", "02.srt"))
	// The target pass also finds 01.ass already in place.
	assert.Equal(t, 2, stats.Created)
	assert.Equal(t, 1, stats.SkippedExists)
	assert.Zero(t, stats.Failed)
}

func TestRun_TargetSubtitlesDisabled(t *testing.T) {
	cfg, log := testConfig(t)
	cfg.LinkTargetSubtitles = false
	touch(t, filepath.Join(cfg.TargetDir, "Anime", "[Sub] Show"), "Show - 02.srt")

	stats := Run(context.Background(), cfg, log)

	assert.Zero(t, stats.Total)
	assert.NoFileExists(t, filepath.Join(cfg.TargetDir, "Anime", "Show", "02.srt"))
}

func TestRun_MissingTargetIsNotAnError(t *testing.T) {
	cfg, log := testConfig(t)
	cfg.DryRun = true
	cfg.TargetDir = filepath.Join(cfg.TargetDir, "not-yet")
	touch(t, filepath.Join(cfg.SourceDir, "Anime", "[Group] Show"), "Show - 01.mkv")

	stats := Run(context.Background(), cfg, log)

	assert.Equal(t, 1, stats.Created)
	assert.Zero(t, stats.Failed)
}

func TestRun_CancelledContext(t *testing.T) {
	cfg, log := testConfig(t)
	touch(t, filepath.Join(cfg.SourceDir, "Anime", "[Group] Show"), "Show - 01.mkv")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats := Run(ctx, cfg, log)

	assert.True(t, stats.Interrupted)
	assert.Zero(t, stats.Created)
	assert.NoFileExists(t, filepath.Join(cfg.TargetDir, "Anime", "Show", "01.mkv"))
}

func TestRunStats_Err(t *testing.T) {
	var s RunStats
	assert.NoError(t, s.Err())

	s.Failures = append(s.Failures, os.ErrPermission)
	assert.ErrorIs(t, s.Err(), os.ErrPermission)
}

// --- helpers ---

func testConfig(t *testing.T) (*config.Config, *logging.Logger) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.SourceDir = t.TempDir()
	cfg.TargetDir = t.TempDir()
	cfg.MaxDepth = 2
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = ""
	log, err := logging.NewLogger(&cfg)
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return &cfg, log
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	return path
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func assertSameFile(t *testing.T, a, b string) {
	t.Helper()
	ai, err := os.Stat(a)
	require.NoError(t, err)
	bi, err := os.Stat(b)
	require.NoError(t, err)
	assert.True(t, os.SameFile(ai, bi), "%s and %s are not the same file", a, b)
}
