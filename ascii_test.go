package imgii

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"github.com/Stattek/imgii/imageutil"
)

// solidImage builds a w x h source image filled with one color.
func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// TestRenderAsciiImageGrid checks that the output has the configured
// character dimensions and that every cell parses back into a token.
func TestRenderAsciiImageGrid(t *testing.T) {
	opts := NewOptions(WithWidth(4), WithHeight(3))
	text, err := RenderAsciiImage(solidImage(16, 16, color.RGBA{200, 100, 50, 255}), opts)
	if err != nil {
		t.Fatalf("RenderAsciiImage failed: %v", err)
	}

	lines := strings.Split(text, "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}

	p := mustParser(t)
	for i, line := range lines {
		tokens, err := p.ParseLine(line)
		if err != nil {
			t.Fatalf("Line %d failed to parse: %v", i, err)
		}
		if len(tokens) != 4 {
			t.Fatalf("Line %d: expected 4 tokens, got %d", i, len(tokens))
		}
		for _, tok := range tokens {
			if tok.R != 200 || tok.G != 100 || tok.B != 50 {
				t.Errorf("Line %d: expected sampled color (200,100,50), got (%d,%d,%d)",
					i, tok.R, tok.G, tok.B)
			}
		}
	}
}

// TestRenderAsciiImageLuminance checks charset selection at the luminance
// extremes, with and without inversion.
func TestRenderAsciiImageLuminance(t *testing.T) {
	charset := CharsetByName("minimal")
	dark := solidImage(8, 8, color.RGBA{0, 0, 0, 255})
	bright := solidImage(8, 8, color.RGBA{255, 255, 255, 255})

	opts := NewOptions(WithWidth(1), WithHeight(1))
	darkText, err := RenderAsciiImage(dark, opts)
	if err != nil {
		t.Fatalf("RenderAsciiImage failed: %v", err)
	}
	if !strings.HasSuffix(darkText, charset[0]) {
		t.Errorf("Expected a black cell to use the lightest character %q, got %q",
			charset[0], darkText)
	}

	brightText, err := RenderAsciiImage(bright, opts)
	if err != nil {
		t.Fatalf("RenderAsciiImage failed: %v", err)
	}
	if !strings.HasSuffix(brightText, charset[len(charset)-1]) {
		t.Errorf("Expected a white cell to use the densest character %q, got %q",
			charset[len(charset)-1], brightText)
	}

	inverted := NewOptions(WithWidth(1), WithHeight(1), WithInvert(true))
	invText, err := RenderAsciiImage(bright, inverted)
	if err != nil {
		t.Fatalf("RenderAsciiImage failed: %v", err)
	}
	if !strings.HasSuffix(invText, charset[0]) {
		t.Errorf("Expected inversion to flip a white cell to %q, got %q",
			charset[0], invText)
	}
}

// TestRenderAsciiImageCharOverride checks that override characters act as
// a custom charset: picked by luminance, with cells of equal brightness
// always rendering the same character.
func TestRenderAsciiImageCharOverride(t *testing.T) {
	opts := NewOptions(WithWidth(4), WithHeight(1), WithCharOverride([]string{"a", "b"}))
	p := mustParser(t)

	renderChars := func(img image.Image) string {
		text, err := RenderAsciiImage(img, opts)
		if err != nil {
			t.Fatalf("RenderAsciiImage failed: %v", err)
		}
		tokens, err := p.ParseLine(text)
		if err != nil {
			t.Fatalf("ParseLine failed: %v", err)
		}
		got := ""
		for _, tok := range tokens {
			got += tok.Text
		}
		return got
	}

	if got := renderChars(solidImage(8, 8, color.RGBA{0, 0, 0, 255})); got != "aaaa" {
		t.Errorf("Expected a dark image to use the first override character, got %q", got)
	}
	if got := renderChars(solidImage(8, 8, color.RGBA{255, 255, 255, 255})); got != "bbbb" {
		t.Errorf("Expected a bright image to use the last override character, got %q", got)
	}
}

// TestGridDimensions checks default width and aspect-ratio derivation.
func TestGridDimensions(t *testing.T) {
	cases := []struct {
		name         string
		srcW, srcH   int
		optWidth     int
		optHeight    int
		wantW, wantH int
	}{
		{"both set", 100, 100, 10, 5, 10, 5},
		{"default width", 256, 256, 0, 0, DefaultWidth, DefaultWidth / 2},
		{"derived height", 200, 100, 40, 0, 40, 10},
		{"derived width", 100, 100, 0, 10, 20, 10},
		{"never zero", 100, 1, 2, 0, 2, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := NewOptions(WithWidth(tc.optWidth), WithHeight(tc.optHeight))
			cols, rows := gridDimensions(tc.srcW, tc.srcH, opts)
			if cols != tc.wantW || rows != tc.wantH {
				t.Errorf("Expected %dx%d, got %dx%d", tc.wantW, tc.wantH, cols, rows)
			}
		})
	}
}

// TestCharsetByName checks lookup and the fallback for unknown names.
func TestCharsetByName(t *testing.T) {
	if got := CharsetByName("block"); got[len(got)-1] != "█" {
		t.Errorf("Expected the block charset to end with a full block, got %q", got)
	}
	if got := CharsetByName("no-such-charset"); got[0] != " " {
		t.Errorf("Expected the minimal fallback charset, got %q", got)
	}
}

// TestCharsetIndexBounds checks that the luminance mapping stays in range.
func TestCharsetIndexBounds(t *testing.T) {
	charset := CharsetByName("default")
	for _, c := range []imageutil.RGB{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 128, G: 128, B: 128},
	} {
		idx := charsetIndex(c, charset, false)
		if idx < 0 || idx >= len(charset) {
			t.Errorf("Index %d out of range for color %+v", idx, c)
		}
		inv := charsetIndex(c, charset, true)
		if inv != len(charset)-1-idx {
			t.Errorf("Expected inversion to mirror the index, got %d and %d", idx, inv)
		}
	}
}
