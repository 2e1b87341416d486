package ascii

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ironsheep/textart-server/internal/domain"
)

// DefaultPalette is the name of the palette used when a request names none.
const DefaultPalette = "standard"

// builtinPalettes are ordered darkest/densest first.
var builtinPalettes = map[string]string{
	"standard": "@#$%&*+=-:.",
	"detailed": "@#W&8%B$O0QLCJUYXzvucxnrjft/\\|()1{}[]?-=+~:,.",
	"blocks":   "█▓▒░·",
	"binary":   "#.",
}

// Palette is an ordered, fixed sequence of glyphs from visually darkest
// (index 0) to lightest (index Len()-1). It is never re-sorted.
type Palette struct {
	name  string
	chars []rune
}

// NewPalette builds a palette from chars, darkest first. It needs at least
// two characters.
func NewPalette(name, chars string) (Palette, error) {
	if !utf8.ValidString(chars) {
		return Palette{}, domain.Errorf("ascii.palette", domain.KindInvalidInput,
			"palette %q is not valid UTF-8", name)
	}
	runes := []rune(chars)
	if len(runes) < 2 {
		return Palette{}, domain.Errorf("ascii.palette", domain.KindInvalidInput,
			"palette %q needs at least 2 characters, got %d", name, len(runes))
	}
	return Palette{name: name, chars: runes}, nil
}

// Name returns the palette's registered name.
func (p Palette) Name() string { return p.name }

// Len returns the number of glyphs.
func (p Palette) Len() int { return len(p.chars) }

// At returns the glyph at index i.
func (p Palette) At(i int) rune { return p.chars[i] }

// String returns the glyphs in order.
func (p Palette) String() string { return string(p.chars) }

// Contains reports whether r is one of the palette's glyphs.
func (p Palette) Contains(r rune) bool {
	for _, c := range p.chars {
		if c == r {
			return true
		}
	}
	return false
}

// Catalog is a read-only set of named palettes, safe for concurrent use.
type Catalog struct {
	palettes map[string]Palette
}

// NewCatalog returns the built-in palettes plus the custom ones given,
// keyed by lower-cased name. A custom palette may replace a built-in.
func NewCatalog(custom map[string]string) (*Catalog, error) {
	c := &Catalog{palettes: make(map[string]Palette, len(builtinPalettes)+len(custom))}

	for name, chars := range builtinPalettes {
		p, err := NewPalette(name, chars)
		if err != nil {
			return nil, err
		}
		c.palettes[name] = p
	}
	for name, chars := range custom {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return nil, domain.Errorf("ascii.catalog", domain.KindInvalidInput, "palette name must not be empty")
		}
		p, err := NewPalette(key, chars)
		if err != nil {
			return nil, err
		}
		c.palettes[key] = p
	}

	return c, nil
}

// Lookup returns the palette registered under name. The empty name selects
// DefaultPalette. Unknown names are domain.KindInvalidInput.
func (c *Catalog) Lookup(name string) (Palette, error) {
	if name == "" {
		name = DefaultPalette
	}
	p, ok := c.palettes[strings.ToLower(name)]
	if !ok {
		return Palette{}, domain.Errorf("ascii.catalog", domain.KindInvalidInput, "unknown palette %q", name)
	}
	return p, nil
}

// Names returns the registered palette names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.palettes))
	for name := range c.palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns a copy of the catalog as name → glyphs.
func (c *Catalog) All() map[string]string {
	out := make(map[string]string, len(c.palettes))
	for name, p := range c.palettes {
		out[name] = p.String()
	}
	return out
}
