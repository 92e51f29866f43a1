package imgii

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

// solidCell builds a w x h cell filled with one color.
func solidCell(w, h int, c color.RGBA) *image.RGBA {
	cell := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(cell, cell.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return cell
}

// TestStitchGridPixelMapping checks the round-trip dimension law: the
// canvas is (W*cw, H*ch) and every canvas pixel equals the corresponding
// cell pixel under the direct index mapping.
func TestStitchGridPixelMapping(t *testing.T) {
	const cw, ch = 4, 8
	colors := []color.RGBA{
		{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255},
		{255, 255, 0, 255}, {0, 255, 255, 255}, {255, 0, 255, 255},
	}
	grid := &Grid{Width: 3, Height: 2}
	for _, c := range colors {
		grid.Cells = append(grid.Cells, solidCell(cw, ch, c))
	}

	canvas, err := StitchGrid(grid)
	if err != nil {
		t.Fatalf("StitchGrid failed: %v", err)
	}

	if canvas.Bounds().Dx() != 3*cw || canvas.Bounds().Dy() != 2*ch {
		t.Fatalf("Expected a %dx%d canvas, got %dx%d",
			3*cw, 2*ch, canvas.Bounds().Dx(), canvas.Bounds().Dy())
	}
	for y := 0; y < 2*ch; y++ {
		for x := 0; x < 3*cw; x++ {
			want := grid.Cell(x/cw, y/ch).RGBAAt(x%cw, y%ch)
			if got := canvas.RGBAAt(x, y); got != want {
				t.Fatalf("Pixel (%d,%d): expected %+v, got %+v", x, y, want, got)
			}
		}
	}
}

// TestStitchGridEndToEnd runs the canonical scenario: a 2x2 grid of 8x16
// cells composites into a 16x32 canvas with each cell's color filling its
// pixel block.
func TestStitchGridEndToEnd(t *testing.T) {
	opts := NewOptions(WithFontSize(16))
	conv, _ := newStubConverter(t, opts)

	text := span(255, 0, 0, "A") + span(0, 255, 0, "B") + "\n" +
		span(0, 0, 255, "C") + span(255, 255, 0, "D")
	grid, err := conv.RenderGrid(text)
	if err != nil {
		t.Fatalf("RenderGrid failed: %v", err)
	}
	canvas, err := StitchGrid(grid)
	if err != nil {
		t.Fatalf("StitchGrid failed: %v", err)
	}

	if canvas.Bounds().Dx() != 16 || canvas.Bounds().Dy() != 32 {
		t.Fatalf("Expected a 16x32 canvas, got %dx%d",
			canvas.Bounds().Dx(), canvas.Bounds().Dy())
	}

	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, color.RGBA{255, 0, 0, 255}},
		{7, 15, color.RGBA{255, 0, 0, 255}},
		{8, 0, color.RGBA{0, 255, 0, 255}},
		{15, 15, color.RGBA{0, 255, 0, 255}},
		{0, 16, color.RGBA{0, 0, 255, 255}},
		{7, 31, color.RGBA{0, 0, 255, 255}},
		{8, 16, color.RGBA{255, 255, 0, 255}},
		{15, 31, color.RGBA{255, 255, 0, 255}},
	}
	for _, c := range checks {
		if got := canvas.RGBAAt(c.x, c.y); got != c.want {
			t.Errorf("Pixel (%d,%d): expected %+v, got %+v", c.x, c.y, c.want, got)
		}
	}
}

// TestStitchGridEmpty checks the empty-grid guard.
func TestStitchGridEmpty(t *testing.T) {
	if _, err := StitchGrid(&Grid{}); !IsKind(err, KindEmptyInput) {
		t.Errorf("Expected an empty-input error, got %v", err)
	}
	if _, err := StitchGrid(nil); !IsKind(err, KindEmptyInput) {
		t.Errorf("Expected an empty-input error for a nil grid, got %v", err)
	}
}
