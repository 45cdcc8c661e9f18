package ui

import (
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"supportdesk/internal/theme"
)

// Styled color functions for CLI output. NO_COLOR and FORCE_COLOR are
// applied once at init, see IsRich.
var (
	noColor    = os.Getenv("NO_COLOR") != ""
	forceColor = isForceColor()

	styleMu      sync.RWMutex
	active       = NewPalette(theme.DefaultBrandColor)
	accent       = rgb(active.Accent)
	accentBold   = rgb(active.AccentBright).Add(color.Bold)
	accentDim    = rgb(active.AccentDim)
	clrDim       = color.New(color.FgHiBlack)
	clrSubtle    = color.New(color.FgWhite)
	clrSuccess   = color.New(color.FgGreen)
	clrError     = color.New(color.FgRed)
	clrWarning   = color.New(color.FgYellow)
	clrInfo      = color.New(color.FgBlue)
	clrSecondary = color.New(color.FgCyan)
)

func isForceColor() bool {
	fc := strings.TrimSpace(os.Getenv("FORCE_COLOR"))
	return fc != "" && fc != "0"
}

func init() {
	color.NoColor = !IsRich()
}

// IsRich returns true if the terminal supports rich output (colors).
// FORCE_COLOR wins over NO_COLOR and over a non-TTY stdout.
func IsRich() bool {
	if forceColor {
		return true
	}
	if noColor {
		return false
	}
	return !color.NoColor
}

// SetBrand tints accent output with the configured brand color
func SetBrand(brand string) {
	p := NewPalette(brand)

	styleMu.Lock()
	defer styleMu.Unlock()
	active = p
	accent = rgb(p.Accent)
	accentBold = rgb(p.AccentBright).Add(color.Bold)
	accentDim = rgb(p.AccentDim)
}

// ActivePalette returns the palette set by SetBrand
func ActivePalette() Palette {
	styleMu.RLock()
	defer styleMu.RUnlock()
	return active
}

// rgb returns a 24-bit foreground color, falling back to red for malformed input
func rgb(hex string) *color.Color {
	c, ok := theme.HexToRGB(hex)
	if !ok {
		return color.New(color.FgHiRed)
	}
	return color.RGB(int(c.R), int(c.G), int(c.B))
}

// Accent returns brand-colored text
func Accent(format string, a ...interface{}) string {
	styleMu.RLock()
	defer styleMu.RUnlock()
	return accent.Sprintf(format, a...)
}

// Heading returns bold bright accent text for section headers
func Heading(format string, a ...interface{}) string {
	styleMu.RLock()
	defer styleMu.RUnlock()
	return accentBold.Sprintf(format, a...)
}

// AccentDim returns muted accent text
func AccentDim(format string, a ...interface{}) string {
	styleMu.RLock()
	defer styleMu.RUnlock()
	return accentDim.Sprintf(format, a...)
}

// Success returns success-styled text
func Success(format string, a ...interface{}) string {
	return clrSuccess.Sprintf(format, a...)
}

// Warn returns warning-styled text
func Warn(format string, a ...interface{}) string {
	return clrWarning.Sprintf(format, a...)
}

// Error returns error-styled text
func Error(format string, a ...interface{}) string {
	return clrError.Sprintf(format, a...)
}

// Muted returns secondary/hint text
func Muted(format string, a ...interface{}) string {
	return clrDim.Sprintf(format, a...)
}

// Subtle returns subtle white text
func Subtle(format string, a ...interface{}) string {
	return clrSubtle.Sprintf(format, a...)
}
