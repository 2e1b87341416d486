package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/textart-server/internal/domain"
)

func TestTargetSize(t *testing.T) {
	tests := []struct {
		name                string
		srcW, srcH, targetW int
		wantW, wantH        int
	}{
		{"portrait 200x330", 200, 330, 100, 100, 100},
		{"square", 100, 100, 100, 100, 61},
		{"landscape", 400, 200, 80, 80, 24},
		{"wide banner rounds up to one row", 1000, 5, 50, 50, 1},
		{"tiny source upscaled", 2, 2, 33, 33, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := TargetSize(tt.srcW, tt.srcH, tt.targetW, DefaultAspectCorrection, 0)
			if err != nil {
				t.Fatalf("TargetSize failed: %v", err)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestTargetSize_Degenerate(t *testing.T) {
	tests := []struct {
		name                string
		srcW, srcH, targetW int
		correction          float64
		maxHeight           int
	}{
		{"zero source width", 0, 100, 100, DefaultAspectCorrection, 0},
		{"zero source height", 100, 0, 100, DefaultAspectCorrection, 0},
		{"zero target width", 100, 100, 0, DefaultAspectCorrection, 0},
		{"negative target width", 100, 100, -5, DefaultAspectCorrection, 0},
		{"zero correction", 100, 100, 10, 0, 0},
		{"exceeds max height", 10, 10000, 100, DefaultAspectCorrection, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := TargetSize(tt.srcW, tt.srcH, tt.targetW, tt.correction, tt.maxHeight)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !domain.IsKind(err, domain.KindDegenerateGeometry) {
				t.Errorf("kind: got %s, want %s", domain.KindOf(err), domain.KindDegenerateGeometry)
			}
		})
	}
}

func TestResize(t *testing.T) {
	img := createInMemoryImage(200, 330, color.RGBA{128, 128, 128, 255})

	for _, filter := range Filters() {
		t.Run(filter, func(t *testing.T) {
			resized, err := Resize(img, 100, ResizeOptions{Filter: filter})
			if err != nil {
				t.Fatalf("Resize failed: %v", err)
			}
			b := resized.Bounds()
			if b.Dx() != 100 || b.Dy() != 100 {
				t.Errorf("dimensions: got %dx%d, want 100x100", b.Dx(), b.Dy())
			}
		})
	}
}

func TestResize_WidthAlwaysExact(t *testing.T) {
	sizes := []image.Point{{1, 1}, {3, 7}, {640, 480}, {480, 640}, {1000, 3}}
	widths := []int{1, 2, 17, 100}

	for _, sz := range sizes {
		img := createInMemoryImage(sz.X, sz.Y, color.White)
		for _, w := range widths {
			resized, err := Resize(img, w, ResizeOptions{})
			if err != nil {
				t.Fatalf("Resize(%v, %d) failed: %v", sz, w, err)
			}
			b := resized.Bounds()
			if b.Dx() != w {
				t.Errorf("Resize(%v, %d): width %d", sz, w, b.Dx())
			}
			if b.Dy() < 1 {
				t.Errorf("Resize(%v, %d): height %d", sz, w, b.Dy())
			}
		}
	}
}

func TestResize_DoesNotMutateInput(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{10, 20, 30, 255})
	before := append([]uint8(nil), img.Pix...)

	if _, err := Resize(img, 5, ResizeOptions{}); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	for i := range before {
		if img.Pix[i] != before[i] {
			t.Fatal("Resize modified its input")
		}
	}
}

func TestResize_UnknownFilter(t *testing.T) {
	img := createInMemoryImage(10, 10, color.White)
	_, err := Resize(img, 5, ResizeOptions{Filter: "bogus"})
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Errorf("kind: got %s, want %s", domain.KindOf(err), domain.KindInvalidInput)
	}
}

func TestResize_ZeroSizedSource(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 10))
	_, err := Resize(img, 5, ResizeOptions{})
	if !domain.IsKind(err, domain.KindDegenerateGeometry) {
		t.Errorf("kind: got %s, want %s", domain.KindOf(err), domain.KindDegenerateGeometry)
	}
}
