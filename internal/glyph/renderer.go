package glyph

import (
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/font"

	"github.com/ironsheep/textart-server/internal/domain"
)

// DefaultFont is the font a request gets when it names none.
const DefaultFont = "standard"

// Renderer turns text into banner art. Rendering is serialized because
// neither figlet4go's font cache nor opentype faces are safe for
// concurrent use.
type Renderer struct {
	mu     sync.Mutex
	figlet *figletEngine
	raster map[string]font.Face
	logger *slog.Logger
}

// New builds a Renderer with the built-in fonts plus every *.flf file in
// fontDir. An empty fontDir loads only the built-ins. A nil logger
// discards output.
func New(fontDir string, logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	faces, err := loadRasterFaces()
	if err != nil {
		return nil, domain.NewError("glyph.new", domain.KindInternal, err)
	}

	r := &Renderer{
		figlet: newFigletEngine(),
		raster: faces,
		logger: logger,
	}

	if fontDir != "" {
		added, err := r.figlet.loadDir(fontDir)
		if err != nil {
			return nil, domain.NewError("glyph.new", domain.KindInvalidInput, err)
		}
		for _, name := range added {
			if _, clash := r.raster[strings.ToLower(name)]; clash {
				logger.Warn("figlet font shadows raster font", "font", name)
			}
		}
		logger.Info("loaded figlet fonts", "dir", fontDir, "count", len(added))
	}

	return r, nil
}

// Fonts returns every font name the renderer accepts, sorted.
func (r *Renderer) Fonts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(r.figlet.fonts)+len(r.raster))
	for key := range r.figlet.fonts {
		seen[key] = struct{}{}
	}
	for key := range r.raster {
		seen[key] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for key := range seen {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// Render draws text in the named font. An empty font name selects
// DefaultFont. Empty text yields "" once the font has been validated.
// Embedded newlines start a new banner line.
func (r *Renderer) Render(text, fontName string) (string, error) {
	const op = "glyph.render"

	if fontName == "" {
		fontName = DefaultFont
	}
	key := strings.ToLower(strings.TrimSpace(fontName))

	r.mu.Lock()
	defer r.mu.Unlock()

	useFiglet := r.figlet.has(key)
	face, useRaster := r.raster[key]
	if !useFiglet && !useRaster {
		return "", domain.Errorf(op, domain.KindInvalidFont, "unknown font %q", fontName)
	}

	if text == "" {
		return "", nil
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	blocks := make([]string, 0, len(lines))
	for _, line := range lines {
		if useFiglet {
			out, err := r.figlet.renderLine(line, key)
			if err != nil {
				return "", domain.NewError(op, domain.KindInternal, err)
			}
			blocks = append(blocks, out)
			continue
		}
		blocks = append(blocks, renderRaster(line, face))
	}

	r.logger.Debug("glyph.render", "font", key, "lines", len(lines), "chars", len(text))
	return strings.Join(blocks, "\n"), nil
}
