package imgii

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// backgroundPixel is the fill used when the background option is set.
var backgroundPixel = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// CharDimensions returns the pixel size of one character cell for the
// given font size. The width is half the height, assuming a monospace font
// with a roughly 1:2 glyph aspect ratio; no glyph measurement is done.
func CharDimensions(fontSize int) (width, height int) {
	return fontSize / 2, fontSize
}

// renderCharImage rasterizes one color token into a fresh cell image. The
// glyph is drawn at the cell origin in the token's color at full opacity,
// over an opaque black fill when the background option is set, otherwise
// over transparency.
func renderCharImage(tok ColorToken, fnt *Font, opts *Options) (*image.RGBA, error) {
	w, h := CharDimensions(opts.FontSize())
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if opts.Background() {
		fillBackground(img)
	}

	size := float64(opts.FontSize())
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(fnt.ttf)
	ctx.SetFontSize(size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(color.RGBA{R: tok.R, G: tok.G, B: tok.B, A: 255}))
	ctx.SetHinting(font.HintingFull)

	// DrawString positions text on the baseline, so push it down by the
	// face ascent to anchor the glyph at the top of the cell.
	face := truetype.NewFace(fnt.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	ascent := int(face.Metrics().Ascent >> 6)
	face.Close()

	if _, err := ctx.DrawString(tok.Text, freetype.Pt(0, ascent)); err != nil {
		return nil, wrapError(KindRender, err, "could not draw %q", tok.Text)
	}
	return img, nil
}

// blankCellImage creates the cell used for whitespace tokens: fully
// transparent, or solid black when the background option is set. It depends
// on the configuration alone, so one blank cell can be computed per run and
// shared by every blank position.
func blankCellImage(opts *Options) *image.RGBA {
	w, h := CharDimensions(opts.FontSize())
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if opts.Background() {
		fillBackground(img)
	}
	return img
}

// fillBackground fills the whole image with the opaque background pixel.
func fillBackground(img *image.RGBA) {
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundPixel), image.Point{}, draw.Src)
}
