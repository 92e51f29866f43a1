package imgii

import (
	"fmt"
	"image"
	"strings"

	"github.com/Stattek/imgii/imageutil"
)

// Built-in charsets, ordered from transparent to opaque.
var charsets = map[string][]string{
	"minimal": {" ", ".", "*", "#"},
	"slight":  {" ", ".", ",", "-", "~", "+"},
	"default": {" ", ".", ",", "-", "~", "+", "=", "@"},
	"block":   {" ", "░", "▒", "▓", "█"},
	"russian": {" ", "г", "и", "ы", "п", "д", "Ж", "Ш"},
	"emoji":   {"🌑", "🌘", "🌗", "🌖", "🌕"},
}

// CharsetByName returns the built-in charset with the given name, or the
// minimal charset when the name is unknown.
func CharsetByName(name string) []string {
	if cs, ok := charsets[strings.ToLower(name)]; ok {
		return cs
	}
	return charsets["minimal"]
}

// RenderAsciiImage converts a decoded image into colorized ASCII text. The
// image is downscaled to the configured character grid and every cell is
// emitted as one truecolor escape span, one character per span, in the
// cell's sampled color. Lines are separated by newlines.
func RenderAsciiImage(img image.Image, opts *Options) (string, error) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return "", newError(KindRender, "source image is empty")
	}

	cols, rows := gridDimensions(bounds.Dx(), bounds.Dy(), opts)
	small := imageutil.Resize(
		imageutil.RGBAImageFromImage(img), cols, rows, imageutil.InterpolationArea)

	charset := opts.Charset()
	var out strings.Builder
	// One escape span is ~20 bytes per cell.
	out.Grow(rows * (cols*20 + 1))

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := small.GetRGB(x, y)
			ch := charset[charsetIndex(c, charset, opts.Invert())]
			fmt.Fprintf(&out, "%s[38;2;%d;%d;%dm%s", ESC, c.R, c.G, c.B, ch)
		}
		if y != rows-1 {
			out.WriteByte('\n')
		}
	}
	return out.String(), nil
}

// gridDimensions derives the character grid size from the configuration and
// the source image size. A missing dimension is derived from the other to
// keep the source aspect ratio, halving vertically because a character cell
// is twice as tall as it is wide.
func gridDimensions(srcW, srcH int, opts *Options) (cols, rows int) {
	cols, rows = opts.Width(), opts.Height()
	if cols == 0 && rows == 0 {
		cols = DefaultWidth
	}
	if rows == 0 {
		rows = cols * srcH / (srcW * 2)
	}
	if cols == 0 {
		cols = rows * srcW * 2 / srcH
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// charsetIndex maps a cell color to a charset index by luminance.
func charsetIndex(c imageutil.RGB, charset []string, invert bool) int {
	// Rec. 709 luma weights.
	luma := 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
	idx := int(luma * float64(len(charset)) / 256)
	if idx >= len(charset) {
		idx = len(charset) - 1
	}
	if invert {
		idx = len(charset) - 1 - idx
	}
	return idx
}
