package presets

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// DefaultStyle is the map style used when none is named.
const DefaultStyle = "standard"

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	c, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// RGBA converts a terminal color to an opaque image color.
func RGBA(c tcell.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xFF}
}

// StyleDef is a map color scheme as stored in JSON.
type StyleDef struct {
	ID       string `json:"id"`
	Fill     string `json:"fill"`
	Open     string `json:"open"`
	Grid     string `json:"grid"`
	Wall     string `json:"wall"`
	Door     string `json:"door"`
	Stair    string `json:"stair"`
	Label    string `json:"label"`
	Corridor string `json:"corridor"`
}

// Palette is a parsed map style.
type Palette struct {
	Fill     tcell.Color
	Open     tcell.Color
	Grid     tcell.Color
	Wall     tcell.Color
	Door     tcell.Color
	Stair    tcell.Color
	Label    tcell.Color
	Corridor tcell.Color
}

// Palette parses every color of the style.
func (s StyleDef) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		name string
		hex  string
		dst  *tcell.Color
	}{
		{"fill", s.Fill, &p.Fill},
		{"open", s.Open, &p.Open},
		{"grid", s.Grid, &p.Grid},
		{"wall", s.Wall, &p.Wall},
		{"door", s.Door, &p.Door},
		{"stair", s.Stair, &p.Stair},
		{"label", s.Label, &p.Label},
		{"corridor", s.Corridor, &p.Corridor},
	}

	for _, f := range fields {
		c, err := ParseHexColor(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("style %s %s: %w", s.ID, f.name, err)
		}
		*f.dst = c
	}
	return p, nil
}

// LoadStyles loads the embedded styles.json.
func LoadStyles() ([]StyleDef, error) {
	return Load[[]StyleDef]("styles.json")
}

// LoadPalette loads and parses a named style.
func LoadPalette(id string) (Palette, error) {
	if id == "" {
		id = DefaultStyle
	}

	styles, err := LoadStyles()
	if err != nil {
		return Palette{}, err
	}
	for _, s := range styles {
		if s.ID == id {
			return s.Palette()
		}
	}
	return Palette{}, fmt.Errorf("%w: %q", errUnknownStyle, id)
}

// MustLoadPalette loads a palette, panicking on error.
func MustLoadPalette(id string) Palette {
	p, err := LoadPalette(id)
	if err != nil {
		panic(err)
	}
	return p
}

var errUnknownStyle = errors.New("unknown map style")
