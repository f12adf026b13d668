// Package term provides color styles and terminal detection.
//
// Styles are package-level variables because multiple packages (logging,
// display) need them for output formatting. They all share one lipgloss
// renderer; [Configure] pins that renderer's color profile once during
// startup. Until then, and whenever colors are disabled, the profile is
// plain ASCII and Render returns its input unchanged.
package term

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/backmassage/hardlinker/internal/config"
)

var renderer = func() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(os.Stdout)
	r.SetColorProfile(termenv.Ascii)
	return r
}()

// Level and accent styles.
var (
	Red     = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	Green   = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	Yellow  = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	Orange  = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	Blue    = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	Cyan    = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	Magenta = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
)

var enabled bool

// Configure resolves the color mode and pins the shared renderer's profile.
// Call once during startup (from [logging.NewLogger]).
func Configure(mode config.ColorMode) {
	enabled = resolve(mode)
	if enabled {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
}

// Enabled reports whether colors are currently active.
func Enabled() bool { return enabled }

// resolve determines whether colors should be enabled based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY (character device).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
