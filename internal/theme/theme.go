// Package theme maps theme identifiers to fixed colour palettes.
//
// The registry is a package-level table built at init and never mutated, so
// concurrent lookups need no locking. Unknown identifiers silently resolve to
// the default palette.
package theme

import (
	"fmt"
	"strings"
)

// DefaultID is the palette used for empty or unknown identifiers.
const DefaultID = "blue"

// Color is an sRGB colour.
type Color struct {
	R, G, B int
}

// Hex returns the colour as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MustHex parses "#rrggbb". It panics on malformed input and is meant for static tables.
func MustHex(s string) Color {
	var c Color
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		panic(fmt.Sprintf("theme: invalid colour %q: %v", s, err))
	}
	return c
}

// Fixed colours shared by every theme.
var (
	White = Color{255, 255, 255}
	Black = Color{0, 0, 0}
	Grey  = Color{128, 128, 128}
	Red   = MustHex("#e74c3c")
	Green = MustHex("#27ae60")
	Grid  = MustHex("#b2bec3")
)

// Palette is the named set of colours bound to a theme.
type Palette struct {
	ID               string
	Primary          Color
	Secondary        Color
	Accent           Color
	Background       Color
	HeaderBackground Color
}

var order = []string{"blue", "green", "red", "purple", "orange", "black"}

var palettes = map[string]Palette{
	"blue": {
		ID:               "blue",
		Primary:          MustHex("#2c3e50"),
		Secondary:        MustHex("#34495e"),
		Accent:           MustHex("#3498db"),
		Background:       MustHex("#ecf0f1"),
		HeaderBackground: MustHex("#2d3436"),
	},
	"green": {
		ID:               "green",
		Primary:          MustHex("#27ae60"),
		Secondary:        MustHex("#2d5016"),
		Accent:           MustHex("#58d68d"),
		Background:       MustHex("#e8f8f5"),
		HeaderBackground: MustHex("#1e8449"),
	},
	"red": {
		ID:               "red",
		Primary:          MustHex("#e74c3c"),
		Secondary:        MustHex("#922b21"),
		Accent:           MustHex("#f1948a"),
		Background:       MustHex("#fadbd8"),
		HeaderBackground: MustHex("#c0392b"),
	},
	"purple": {
		ID:               "purple",
		Primary:          MustHex("#9b59b6"),
		Secondary:        MustHex("#6c3483"),
		Accent:           MustHex("#d7bde2"),
		Background:       MustHex("#f4ecf7"),
		HeaderBackground: MustHex("#8e44ad"),
	},
	"orange": {
		ID:               "orange",
		Primary:          MustHex("#e67e22"),
		Secondary:        MustHex("#a04000"),
		Accent:           MustHex("#f5b041"),
		Background:       MustHex("#fdeaa7"),
		HeaderBackground: MustHex("#d35400"),
	},
	"black": {
		ID:               "black",
		Primary:          MustHex("#2c3e50"),
		Secondary:        MustHex("#34495e"),
		Accent:           MustHex("#95a5a6"),
		Background:       MustHex("#ecf0f1"),
		HeaderBackground: MustHex("#2c3e50"),
	},
}

// French identifiers accepted by earlier clients.
var aliases = map[string]string{
	"bleu":   "blue",
	"vert":   "green",
	"rouge":  "red",
	"violet": "purple",
	"noir":   "black",
}

// Resolve returns the palette for id, or the default palette when id is unknown.
func Resolve(id string) Palette {
	key := strings.ToLower(strings.TrimSpace(id))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	if p, ok := palettes[key]; ok {
		return p
	}
	return palettes[DefaultID]
}

// Known reports whether id names a palette, directly or through an alias.
func Known(id string) bool {
	key := strings.ToLower(strings.TrimSpace(id))
	if _, ok := aliases[key]; ok {
		return true
	}
	_, ok := palettes[key]
	return ok
}

// IDs lists the canonical identifiers in registry order.
func IDs() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}
