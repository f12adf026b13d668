// Package config holds runtime configuration: defaults, the JSON config
// file, environment overrides, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultLogFile is appended to unless debug is on or another file is
// configured.
const DefaultLogFile = "main.log"

// DefaultConfigFile is read from the working directory when --config is
// not given. Unlike an explicit --config path, it may be absent.
const DefaultConfigFile = "config.json"

// Default extension sets. Matching is case-sensitive, so the upper-case
// spellings are listed explicitly.
var (
	DefaultVideoExtensions = []string{
		".mp4", ".avi", ".rmvb", ".wmv", ".mov", ".mkv", ".flv", ".ts", ".webm", ".iso",
		".MP4", ".AVI", ".RMVB", ".WMV", ".MOV", ".MKV", ".FLV", ".TS", ".WEBM", ".ISO",
	}
	DefaultSubtitleExtensions = []string{".srt", ".ass", ".SRT", ".ASS"}
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then [LoadFile], [ApplyEnv] and [ParseFlags] in that order, and finally
// checked by [Config.Validate] before being passed (by pointer) to the
// packages that need it. JSON keys follow the config.json format.
type Config struct {
	// Paths.
	SourceDir string `json:"sourceDir"`
	TargetDir string `json:"targetDir"`

	// Behavior.
	Debug               bool     `json:"debug"`  // Implies DryRun and Verbose.
	DryRun              bool     `json:"dryRun"` // Report links without creating them.
	MaxDepth            int      `json:"maxDepth"`
	Exclude             []string `json:"exclude"`
	VideoExtensions     []string `json:"videoExtensions"`
	SubtitleExtensions  []string `json:"subtitleExtensions"`
	LinkTargetSubtitles bool     `json:"linkTargetSubtitles"` // Default: true.
	Workers             int      `json:"workers"`             // Default: 4.

	// Display and logging.
	Verbose   bool      `json:"verbose"`
	ColorMode ColorMode `json:"color"`   // Default: "auto".
	LogFile   string    `json:"logFile"` // Appended to; "" logs to the console only. Default: main.log.

	// Set from the command line only.
	ConfigFile string `json:"-"`
	CheckOnly  bool   `json:"-"`
}

// DefaultConfig returns a Config with every default applied. MaxDepth 1
// scans the source root and one level of folders below it.
func DefaultConfig() Config {
	return Config{
		MaxDepth:            1,
		VideoExtensions:     append([]string(nil), DefaultVideoExtensions...),
		SubtitleExtensions:  append([]string(nil), DefaultSubtitleExtensions...),
		LinkTargetSubtitles: true,
		Workers:             4,
		ColorMode:           ColorAuto,
		LogFile:             DefaultLogFile,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum and numeric fields and applies Debug. When not in
// CheckOnly mode it also requires both directories.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative (got %d)", c.MaxDepth)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1 (got %d)", c.Workers)
	}
	if len(c.VideoExtensions) == 0 && len(c.SubtitleExtensions) == 0 {
		return errors.New("no video or subtitle extensions configured")
	}
	for _, ext := range append(append([]string(nil), c.VideoExtensions...), c.SubtitleExtensions...) {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("invalid extension %q (must start with '.')", ext)
		}
	}

	if c.Debug {
		c.DryRun = true
		c.Verbose = true
		// Debug output stays on the console.
		if c.LogFile == DefaultLogFile {
			c.LogFile = ""
		}
	}

	c.SourceDir = NormalizeDirArg(c.SourceDir)
	c.TargetDir = NormalizeDirArg(c.TargetDir)

	if c.CheckOnly {
		return nil
	}
	if c.SourceDir == "" || c.TargetDir == "" {
		return errors.New("need source_dir and target_dir (arguments, config file or environment)")
	}
	return nil
}

// ValidatePaths ensures the resolved target directory is not inside (or
// equal to) the resolved source directory, which would make the scan pick
// up its own links. Both arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(sourceAbs, targetAbs string) error {
	sep := string(filepath.Separator)
	if targetAbs == sourceAbs || strings.HasPrefix(targetAbs+sep, sourceAbs+sep) {
		return errors.New("target directory must not be inside source directory")
	}
	return nil
}
