package imaging

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/ironsheep/textart-server/internal/domain"
)

func TestRenderPNG(t *testing.T) {
	rows := []string{"@@##", "..::", "@.@."}

	data, err := RenderPNG(rows, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}

	// 4 columns of 7px, 3 rows of 13px
	if img.Bounds().Dx() != 28 || img.Bounds().Dy() != 39 {
		t.Errorf("dimensions: got %dx%d, want 28x39", img.Bounds().Dx(), img.Bounds().Dy())
	}

	// Top-left corner is background
	r, g, b, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != 0x0B || uint8(g>>8) != 0x0B || uint8(b>>8) != 0x0B {
		t.Errorf("background at (0,0): got (%d,%d,%d), want (11,11,11)", r>>8, g>>8, b>>8)
	}

	// Some pixel in the first row must carry ink
	inked := false
	for y := 0; y < 13 && !inked; y++ {
		for x := 0; x < 28; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if uint8(r>>8) > 0x80 {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("first row should contain foreground pixels")
	}
}

func TestRenderPNG_RaggedRows(t *testing.T) {
	data, err := RenderPNG([]string{"ab", "abcdef"}, RenderOptions{Foreground: "#000000", Background: "#FFFFFF"})
	if err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 42 {
		t.Errorf("width: got %d, want 42", img.Bounds().Dx())
	}
}

func TestRenderPNG_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		opts RenderOptions
	}{
		{"no rows", nil, RenderOptions{}},
		{"only empty rows", []string{"", ""}, RenderOptions{}},
		{"bad foreground", []string{"x"}, RenderOptions{Foreground: "nope"}},
		{"bad background", []string{"x"}, RenderOptions{Background: "#12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RenderPNG(tt.rows, tt.opts)
			if !domain.IsKind(err, domain.KindInvalidInput) {
				t.Errorf("kind: got %s, want %s", domain.KindOf(err), domain.KindInvalidInput)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		wantR   uint8
		wantG   uint8
		wantB   uint8
		wantA   uint8
		wantErr bool
	}{
		{"#FF0000", 255, 0, 0, 255, false},
		{"#00FF00", 0, 255, 0, 255, false},
		{"#0000FF", 0, 0, 255, 255, false},
		{"#FFFFFF", 255, 255, 255, 255, false},
		{"#000000", 0, 0, 0, 255, false},
		{"FF0000", 255, 0, 0, 255, false},    // without #
		{"#FF000080", 255, 0, 0, 128, false}, // with alpha
		{"FF000080", 255, 0, 0, 128, false},  // without # with alpha
		{"", 0, 0, 0, 0, true},               // empty
		{"#FFF", 0, 0, 0, 0, true},           // invalid length
		{"#GGGGGG", 0, 0, 0, 0, true},        // invalid hex
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			c, err := parseHexColor(tt.hex)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if c.R != tt.wantR || c.G != tt.wantG || c.B != tt.wantB || c.A != tt.wantA {
				t.Errorf("got (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					c.R, c.G, c.B, c.A, tt.wantR, tt.wantG, tt.wantB, tt.wantA)
			}
		})
	}
}
