// Package logging provides the leveled console logger with an optional
// append-only file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/hardlinker/internal/config"
	"github.com/backmassage/hardlinker/internal/term"
)

// Logger writes timestamped, level-tagged lines to the console and, when a
// log file is configured, a plain copy of each line to that file. Safe for
// concurrent use by pipeline workers.
type Logger struct {
	mu      sync.Mutex
	console io.Writer // INFO and below.
	errOut  io.Writer // ERROR lines.
	sink    *os.File
	path    string
}

// NewLogger pins the color mode and opens cfg.LogFile in append mode so
// successive runs accumulate in one file. Close releases the file.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	l := &Logger{console: os.Stdout, errOut: os.Stderr}
	if cfg.LogFile == "" {
		return l, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, fmt.Errorf("log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.sink, l.path = f, cfg.LogFile
	return l, nil
}

// Path returns the log file path, or "" when logging to the console only.
func (l *Logger) Path() string { return l.path }

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sink == nil {
		return nil
	}
	err := l.sink.Close()
	l.sink = nil
	return err
}

func (l *Logger) write(level string, style lipgloss.Style, msg string) {
	stamp := time.Now().Format("2006-01-02 15:04:05")
	w := l.console
	if level == "ERROR" {
		w = l.errOut
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(w, "%s %s %s\n", stamp, style.Render("["+level+"]"), msg)
	if l.sink != nil {
		_, _ = fmt.Fprintf(l.sink, "%s [%s] %s\n", stamp, level, msg)
	}
}

// Info reports progress.
func (l *Logger) Info(format string, args ...interface{}) {
	l.write("INFO", term.Blue, fmt.Sprintf(format, args...))
}

// Success reports a link made (or one that would be made in a dry run).
func (l *Logger) Success(format string, args ...interface{}) {
	l.write("SUCCESS", term.Green, fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.write("WARN", term.Yellow, fmt.Sprintf(format, args...))
}

// Error goes to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.write("ERROR", term.Red, fmt.Sprintf(format, args...))
}

// Skip reports a link deliberately not made.
func (l *Logger) Skip(format string, args ...interface{}) {
	l.write("SKIP", term.Orange, fmt.Sprintf(format, args...))
}

// Debug is a no-op unless verbose.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if verbose {
		l.write("DEBUG", term.Cyan, fmt.Sprintf(format, args...))
	}
}
