package ui

import "supportdesk/internal/theme"

// Palette holds the terminal accent shades, derived from the brand color
type Palette struct {
	Accent       string // brand color
	AccentBright string // highlighted/active state
	AccentDim    string // muted accent
}

// NewPalette derives terminal colors the same way the web theme does
func NewPalette(brand string) Palette {
	return Palette{
		Accent:       brand,
		AccentBright: theme.Lighten(brand, 0.2),
		AccentDim:    theme.Darken(brand, 0.2),
	}
}
