package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/hardlinker/internal/config"
	"github.com/backmassage/hardlinker/internal/linker"
)

// recordLogger captures log lines by level for assertions.
type recordLogger struct {
	lines []string
}

func (r *recordLogger) add(level, format string, args ...interface{}) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func (r *recordLogger) Info(f string, a ...interface{})    { r.add("INFO", f, a...) }
func (r *recordLogger) Success(f string, a ...interface{}) { r.add("SUCCESS", f, a...) }
func (r *recordLogger) Warn(f string, a ...interface{})    { r.add("WARN", f, a...) }
func (r *recordLogger) Error(f string, a ...interface{})   { r.add("ERROR", f, a...) }
func (r *recordLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		r.add("DEBUG", f, a...)
	}
}

func (r *recordLogger) count(level string) int {
	n := 0
	for _, l := range r.lines {
		if strings.HasPrefix(l, level+" ") {
			n++
		}
	}
	return n
}

func TestPreflight(t *testing.T) {
	src := t.TempDir()
	file := filepath.Join(src, "file.mkv")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		source  string
		target  string
		wantErr error
	}{
		{"both exist", src, t.TempDir(), nil},
		{"target missing", src, filepath.Join(t.TempDir(), "new"), nil},
		{"source missing", filepath.Join(src, "nope"), t.TempDir(), ErrSourceNotFound},
		{"source is file", file, t.TempDir(), ErrSourceNotDir},
		{"target is file", src, file, ErrTargetNotDir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.SourceDir, cfg.TargetDir = tt.source, tt.target
			err := Preflight(&cfg)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCrossDeviceMatchesLinkerSentinel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SourceDir, cfg.TargetDir = "/mnt/a", "/mnt/b"

	err := crossDevice(&cfg)
	if !errors.Is(err, linker.ErrCrossDevice) {
		t.Errorf("errors.Is(%v, linker.ErrCrossDevice) = false", err)
	}
	if !strings.Contains(err.Error(), "/mnt/a") || !strings.Contains(err.Error(), "/mnt/b") {
		t.Errorf("error should name both directories: %v", err)
	}
}

func TestRunCheck_Healthy(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SourceDir, cfg.TargetDir = t.TempDir(), t.TempDir()
	log := &recordLogger{}

	if !RunCheck(&cfg, log) {
		t.Fatalf("RunCheck failed: %v", log.lines)
	}
	if log.count("ERROR") != 0 {
		t.Errorf("unexpected errors: %v", log.lines)
	}

	// The link probe cleans up after itself.
	entries, _ := os.ReadDir(cfg.TargetDir)
	if len(entries) != 0 {
		t.Errorf("target not clean after check: %v", entries)
	}
}

func TestRunCheck_MissingSource(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SourceDir = filepath.Join(t.TempDir(), "missing")
	cfg.TargetDir = t.TempDir()
	log := &recordLogger{}

	if RunCheck(&cfg, log) {
		t.Error("RunCheck should fail for a missing source")
	}
	if log.count("ERROR") == 0 {
		t.Errorf("expected an error line: %v", log.lines)
	}
}

func TestRunCheck_Unconfigured(t *testing.T) {
	cfg := config.DefaultConfig()
	log := &recordLogger{}
	if RunCheck(&cfg, log) {
		t.Error("RunCheck should fail without directories")
	}
}
