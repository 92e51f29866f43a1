package imgii

import (
	"image"
	"image/color/palette"
	"image/gif"
	"log"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Stattek/imgii/quant"
)

// FrameMetadata carries per-frame placement and timing through the
// pipeline. It stays attached to its frame's data through every stage, so
// reassembly never depends on worker completion order.
type FrameMetadata struct {
	// Left and Top are the frame's offset on the shared canvas, in pixels.
	Left, Top int
	// Delay is the display delay in 100ths of a second, as stored in the
	// GIF container.
	Delay int
}

// sourceFrame is one decoded input frame with its metadata.
type sourceFrame struct {
	img  image.Image
	meta FrameMetadata
}

// renderedFrame is one fully stitched output frame with its metadata.
type renderedFrame struct {
	canvas *image.RGBA
	meta   FrameMetadata
}

// asciiRenderFunc converts one decoded frame to colorized ASCII text.
type asciiRenderFunc func(image.Image, *Options) (string, error)

// ConvertGIFToAsciiGIF converts an animated GIF into an ASCII-art GIF.
// Per-frame conversion is best-effort: a frame that fails ASCII conversion
// or grid rendering is dropped with a warning while the rest of the
// animation proceeds. Decode and encode failures abort the whole operation.
func ConvertGIFToAsciiGIF(inputPath, outputPath string, fnt *Font, opts *Options) error {
	frames, err := decodeGIF(inputPath)
	if err != nil {
		return err
	}

	conv, err := NewConverter(fnt, opts)
	if err != nil {
		return err
	}

	rendered := renderFrames(frames, conv, RenderAsciiImage)
	kept := make([]renderedFrame, 0, len(rendered))
	for _, frame := range rendered {
		if frame != nil {
			kept = append(kept, *frame)
		}
	}
	if len(kept) == 0 {
		return newError(KindRender, "every frame of %s failed to render", inputPath)
	}
	if dropped := len(frames) - len(kept); dropped > 0 {
		log.Printf("WARNING: dropped %d of %d frames of %s", dropped, len(frames), inputPath)
	}

	return encodeGIF(outputPath, kept)
}

// decodeGIF reads every frame of a GIF along with its placement offset and
// delay.
func decodeGIF(path string) ([]sourceFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapError(KindIO, err, "could not open %s", path)
	}
	defer f.Close()

	decoded, err := gif.DecodeAll(f)
	if err != nil {
		return nil, wrapError(KindDecode, err, "could not decode GIF %s", path)
	}

	frames := make([]sourceFrame, len(decoded.Image))
	for i, img := range decoded.Image {
		frames[i] = sourceFrame{
			img: img,
			meta: FrameMetadata{
				Left:  img.Rect.Min.X,
				Top:   img.Rect.Min.Y,
				Delay: decoded.Delay[i],
			},
		}
	}
	return frames, nil
}

// renderFrames fans the per-frame pipeline out across a worker pool sized
// to the CPU count. Each result lands in the slot belonging to its source
// frame with the metadata still attached; a frame that fails any stage
// leaves a nil slot behind instead of failing the animation.
func renderFrames(frames []sourceFrame, conv *Converter, renderAscii asciiRenderFunc) []*renderedFrame {
	results := make([]*renderedFrame, len(frames))

	group := new(errgroup.Group)
	group.SetLimit(runtime.NumCPU())
	for i, frame := range frames {
		group.Go(func() error {
			asciiText, err := renderAscii(frame.img, conv.opts)
			if err != nil {
				log.Printf("WARNING: dropping frame at offset (%d,%d): %v",
					frame.meta.Left, frame.meta.Top, err)
				return nil
			}

			grid, err := conv.RenderGrid(asciiText)
			if err != nil {
				log.Printf("WARNING: dropping frame at offset (%d,%d): %v",
					frame.meta.Left, frame.meta.Top, err)
				return nil
			}

			canvas, err := StitchGrid(grid)
			if err != nil {
				log.Printf("WARNING: dropping frame at offset (%d,%d): %v",
					frame.meta.Left, frame.meta.Top, err)
				return nil
			}

			results[i] = &renderedFrame{canvas: canvas, meta: frame.meta}
			return nil
		})
	}
	// Workers only ever return nil; the group is used for its bounded pool
	// and join.
	_ = group.Wait()

	return results
}

// encodeGIF palettizes the surviving frames and writes an infinitely
// repeating GIF, reattaching each frame's source offset and delay.
func encodeGIF(path string, frames []renderedFrame) error {
	out := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		paletted := quant.Palettize(frame.canvas, palette.Plan9)
		paletted.Rect = paletted.Rect.Add(image.Pt(frame.meta.Left, frame.meta.Top))
		out.Image = append(out.Image, paletted)
		out.Delay = append(out.Delay, frame.meta.Delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return wrapError(KindIO, err, "could not create %s", path)
	}
	defer f.Close()

	if err := gif.EncodeAll(f, out); err != nil {
		return wrapError(KindEncode, err, "could not encode GIF %s", path)
	}
	return nil
}
