// Package imgii converts raster images and animated GIFs into colorized
// ASCII art, then renders that ASCII text back into a bitmap where every
// character cell is drawn as a small glyph image in its sampled color.
//
// The pipeline: an image is rendered to ASCII text made of truecolor
// escape spans, a Parser tokenizes each line, a Converter rasterizes each
// token into a glyph cell (memoized per run), StitchGrid composites the
// cell grid into one canvas, and for animations the frame orchestrator in
// ConvertGIFToAsciiGIF runs this per frame on a worker pool with
// best-effort frame isolation.
package imgii

import (
	"log"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// BatchResult summarizes a batch conversion: how many units succeeded and
// how many were skipped after failing.
type BatchResult struct {
	Succeeded int
	Failed    int
}

// ConvertImageBatch converts a numbered sequence of still images, indices 1
// through finalIndex, substituting each index for every "%d" in the input
// and output templates. Files are converted on a worker pool; one failing
// file is logged and counted but does not cancel its siblings. Batch mode
// exists for the PNG pipeline only.
func ConvertImageBatch(inputTemplate, outputTemplate string, finalIndex int, fnt *Font, opts *Options) BatchResult {
	var mu sync.Mutex
	var res BatchResult

	group := new(errgroup.Group)
	group.SetLimit(runtime.NumCPU())
	for i := 1; i <= finalIndex; i++ {
		group.Go(func() error {
			in := expandIndex(inputTemplate, i)
			out := expandIndex(outputTemplate, i)
			err := ConvertImageToAsciiPNG(in, out, fnt, opts)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("WARNING: could not convert %s: %v", in, err)
				res.Failed++
			} else {
				res.Succeeded++
			}
			return nil
		})
	}
	_ = group.Wait()

	return res
}

// expandIndex substitutes index for every "%d" in the template. A template
// without "%d" names the same file for every index.
func expandIndex(template string, index int) string {
	return strings.ReplaceAll(template, "%d", strconv.Itoa(index))
}
