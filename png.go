package imgii

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/Stattek/imgii/imageutil"
)

// ConvertImageToAsciiPNG converts a still image into an ASCII-art PNG: the
// input is rendered to colorized ASCII text, the text is rendered back into
// a grid of glyph images, and the grid is stitched into one canvas saved at
// outputPath. Any failure aborts this conversion.
func ConvertImageToAsciiPNG(inputPath, outputPath string, fnt *Font, opts *Options) error {
	img, err := readStillImage(inputPath)
	if err != nil {
		return err
	}

	asciiText, err := RenderAsciiImage(img, opts)
	if err != nil {
		return err
	}

	conv, err := NewConverter(fnt, opts)
	if err != nil {
		return err
	}
	grid, err := conv.RenderGrid(asciiText)
	if err != nil {
		return err
	}

	canvas, err := StitchGrid(grid)
	if err != nil {
		return err
	}

	if err := imageutil.SavePNG(canvas, outputPath); err != nil {
		return wrapError(KindIO, err, "could not save image %s", outputPath)
	}
	return nil
}

// readStillImage decodes a still image from disk. OpenCV handles the format
// sniffing, so any format it understands works as input; when it reads
// nothing (a missing codec, or a build without one) the standard library
// decoders get a second try.
func readStillImage(path string) (image.Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		img, err := imageutil.LoadImage(path)
		if err != nil {
			return nil, wrapError(KindDecode, err, "could not decode image %s", path)
		}
		return img, nil
	}
	defer mat.Close()

	img, err := mat.ToImage()
	if err != nil {
		return nil, wrapError(KindDecode, err, "could not convert image %s", path)
	}
	return img, nil
}
