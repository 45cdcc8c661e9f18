package theme

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// hexPattern matches a 6-digit hex color with an optional leading '#'
var hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)

// Color is an RGB triplet, each channel in [0,255]
type Color struct {
	R, G, B uint8
}

// HexToRGB parses a color like "#1890ff" or "1890FF".
// The second return value is false for anything that is not exactly
// six hex digits; callers should then leave the color unchanged.
func HexToRGB(hex string) (Color, bool) {
	m := hexPattern.FindStringSubmatch(hex)
	if m == nil {
		return Color{}, false
	}
	return Color{R: parseChannel(m[1]), G: parseChannel(m[2]), B: parseChannel(m[3])}, true
}

// Hex returns the lowercase "#rrggbb" form of the color
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lighten moves each channel toward 255 by percent of the remaining distance.
// Malformed input is returned as-is.
func Lighten(hex string, percent float64) string {
	c, ok := HexToRGB(hex)
	if !ok {
		return hex
	}
	p := clampPercent(percent)
	lift := func(v uint8) uint8 {
		return clampChannel(math.Round(float64(v) + (255-float64(v))*p))
	}
	return Color{R: lift(c.R), G: lift(c.G), B: lift(c.B)}.Hex()
}

// Darken scales each channel toward 0 by percent.
// Malformed input is returned as-is.
func Darken(hex string, percent float64) string {
	c, ok := HexToRGB(hex)
	if !ok {
		return hex
	}
	p := clampPercent(percent)
	drop := func(v uint8) uint8 {
		return clampChannel(math.Round(float64(v) * (1 - p)))
	}
	return Color{R: drop(c.R), G: drop(c.G), B: drop(c.B)}.Hex()
}

// Tint appends a two-digit alpha suffix, e.g. Tint("#1890ff", 0x10) = "#1890ff10".
// Malformed input is returned as-is.
func Tint(hex string, alpha uint8) string {
	c, ok := HexToRGB(hex)
	if !ok {
		return hex
	}
	return fmt.Sprintf("%s%02x", c.Hex(), alpha)
}

func parseChannel(s string) uint8 {
	v, _ := strconv.ParseUint(s, 16, 8) // pattern guarantees two hex digits
	return uint8(v)
}

func clampPercent(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
