package theme

import (
	"fmt"
	"strings"
)

// DefaultBrandColor is used when no brand color is configured
const DefaultBrandColor = "#1890ff"

// Variable is one named CSS custom property
type Variable struct {
	Name  string
	Value string
}

// Palette holds the brand color and the shades derived from it
type Palette struct {
	Brand string

	Hover   string // lighten 20%
	Active  string // darken 20%
	Light   string // lighten 70%
	Lighter string // lighten 50%
	Dark    string // darken 92%
	Darker  string // darken 87%
}

// NewPalette derives every shade from a single brand color. A well-formed
// brand is normalized to lowercase #rrggbb so Brand matches the derived
// shades. A malformed brand color yields a palette where every shade equals it.
func NewPalette(brand string) Palette {
	if c, ok := HexToRGB(brand); ok {
		brand = c.Hex()
	}
	return Palette{
		Brand:   brand,
		Hover:   Lighten(brand, 0.2),
		Active:  Darken(brand, 0.2),
		Light:   Lighten(brand, 0.7),
		Lighter: Lighten(brand, 0.5),
		Dark:    Darken(brand, 0.92),
		Darker:  Darken(brand, 0.87),
	}
}

// Variables returns the custom properties in declaration order
func (p Palette) Variables() []Variable {
	return []Variable{
		{Name: "--brand-color", Value: p.Brand},
		{Name: "--brand-color-hover", Value: p.Hover},
		{Name: "--brand-color-active", Value: p.Active},
		{Name: "--brand-color-light", Value: p.Light},
		{Name: "--brand-color-lighter", Value: p.Lighter},
		{Name: "--brand-color-dark", Value: p.Dark},
		{Name: "--brand-color-darker", Value: p.Darker},
	}
}

// CSS renders the palette as a :root rule that overrides earlier values
func (p Palette) CSS() string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, v := range p.Variables() {
		fmt.Fprintf(&b, "  %s: %s !important;\n", v.Name, v.Value)
	}
	b.WriteString("}\n")
	return b.String()
}
