package ascii

import (
	"strings"

	"github.com/ironsheep/textart-server/internal/domain"
)

// Grid is an assembled block of character art. Every row holds exactly
// Width runes and there are Height rows.
type Grid struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
}

// String joins the rows with "\n", without a trailing newline.
func (g *Grid) String() string {
	return strings.Join(g.Rows, "\n")
}

// Assemble cuts a flat, row-major rune stream into rows of rowWidth runes.
//
// rowWidth must be positive and len(flat) a positive multiple of it;
// anything else is domain.KindInvalidInput.
func Assemble(flat []rune, rowWidth int) ([]string, error) {
	const op = "ascii.assemble"

	if rowWidth <= 0 {
		return nil, domain.Errorf(op, domain.KindInvalidInput, "row width must be positive, got %d", rowWidth)
	}
	if len(flat) == 0 {
		return nil, domain.Errorf(op, domain.KindInvalidInput, "no characters to assemble")
	}
	if len(flat)%rowWidth != 0 {
		return nil, domain.Errorf(op, domain.KindInvalidInput,
			"%d characters do not split into rows of %d", len(flat), rowWidth)
	}

	rows := make([]string, 0, len(flat)/rowWidth)
	for i := 0; i < len(flat); i += rowWidth {
		rows = append(rows, string(flat[i:i+rowWidth]))
	}
	return rows, nil
}

// NewGrid assembles flat into a Grid of the given width.
func NewGrid(flat []rune, width int) (*Grid, error) {
	rows, err := Assemble(flat, width)
	if err != nil {
		return nil, err
	}
	return &Grid{Width: width, Height: len(rows), Rows: rows}, nil
}
