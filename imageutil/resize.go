package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom, the best choice for the heavy
	// downscaling done when sampling an image to a character grid.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation. Fastest
	// but lowest quality.
	InterpolationNearest
)

// Resize resizes an RGBA image to the specified dimensions using the given
// interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)

	var scaler draw.Scaler
	switch interp {
	case InterpolationLinear:
		scaler = draw.BiLinear
	case InterpolationNearest:
		scaler = draw.NearestNeighbor
	default:
		scaler = draw.CatmullRom
	}

	scaler.Scale(dst.RGBA, image.Rect(0, 0, width, height),
		img.RGBA, img.Bounds(), draw.Over, nil)
	return dst
}
