package shape

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Def is the YAML definition for one spawn palette entry
// (e.g. assets/shapes.yaml). Color is a hex string like "4ecdc4".
type Def struct {
	Type  string `yaml:"type"`
	Color string `yaml:"color,omitempty"`
}

// Palette holds the spawn cycle: each create takes the next entry.
// The default palette covers every shape with a distinct color.
type Palette struct {
	entries []Entry
	next    int
}

// Entry is one resolved palette slot.
type Entry struct {
	Shape Shape
	Color uint32
}

var defaultEntries = []Entry{
	{Box, 0x4ecdc4},
	{Sphere, 0xff6b6b},
	{Cylinder, 0xffe66d},
	{Cone, 0x95e1d3},
}

// DefaultPalette returns the built-in spawn palette.
func DefaultPalette() *Palette {
	entries := make([]Entry, len(defaultEntries))
	copy(entries, defaultEntries)
	return &Palette{entries: entries}
}

// LoadPalette reads a YAML palette file. A missing file returns the default
// palette and no error; a malformed file or entry is an error so a broken
// palette is noticed rather than silently shrunk.
func LoadPalette(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPalette(), nil
		}
		return nil, fmt.Errorf("palette: %w", err)
	}
	var defs []Def
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	if len(defs) == 0 {
		return DefaultPalette(), nil
	}
	entries := make([]Entry, 0, len(defs))
	for i, d := range defs {
		color, err := parseHexColor(d.Color)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		entries = append(entries, Entry{Shape: Parse(d.Type), Color: color})
	}
	return &Palette{entries: entries}, nil
}

// Next returns the next spawn entry, cycling through the palette.
func (p *Palette) Next() Entry {
	e := p.entries[p.next%len(p.entries)]
	p.next++
	return e
}

// parseHexColor parses "4ecdc4" or "#4ecdc4" into a 24-bit RGB value.
// Empty input means white.
func parseHexColor(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return 0xffffff, nil
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || v > 0xffffff {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	return uint32(v), nil
}
