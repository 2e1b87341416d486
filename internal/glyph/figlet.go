package glyph

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mbndr/figlet4go"
)

// builtinFiglet are the fonts compiled into figlet4go.
var builtinFiglet = []string{"standard", "larry3d"}

// figletEngine wraps a figlet4go renderer and remembers which font names
// it can serve. Keys are lower-cased; values are the names figlet4go uses.
type figletEngine struct {
	render *figlet4go.AsciiRender
	fonts  map[string]string
}

func newFigletEngine() *figletEngine {
	e := &figletEngine{
		render: figlet4go.NewAsciiRender(),
		fonts:  make(map[string]string, len(builtinFiglet)),
	}
	for _, name := range builtinFiglet {
		e.fonts[name] = name
	}
	return e
}

// loadDir registers every *.flf file in dir and returns the names added.
func (e *figletEngine) loadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read font directory: %w", err)
	}

	var added []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".flf" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.render.LoadFont(path); err != nil {
			return added, fmt.Errorf("failed to load font %s: %w", entry.Name(), err)
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		e.fonts[strings.ToLower(name)] = name
		added = append(added, name)
	}
	sort.Strings(added)
	return added, nil
}

func (e *figletEngine) has(key string) bool {
	_, ok := e.fonts[key]
	return ok
}

// renderLine renders a single line of text. figlet4go lays out one line
// per call, so multi-line input is split by the caller.
func (e *figletEngine) renderLine(text, key string) (string, error) {
	opts := figlet4go.NewRenderOptions()
	opts.FontName = e.fonts[key]

	out, err := e.render.RenderOpts(printableASCII(text), opts)
	if err != nil {
		return "", fmt.Errorf("failed to render with font %s: %w", opts.FontName, err)
	}
	return strings.TrimRight(out, "\n"), nil
}

// tabWidth is the number of spaces a tab expands to.
const tabWidth = 4

// printableASCII maps text onto the 32..126 range figlet fonts cover.
// Tabs become spaces, other control characters are dropped and anything
// outside ASCII becomes '?'.
func printableASCII(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t':
			b.WriteString(strings.Repeat(" ", tabWidth))
		case r < ' ' || r == 0x7f:
		case r > '~':
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
