package imgii

import (
	"image"
	"runtime"
	"sync"
)

// StitchGrid composites a completed Grid into one canvas image. The cell
// size is read from the first cell; every cell in a grid shares it, since
// all cells of a run are rendered from one font size. For output pixel
// (x, y) the source is cell (x/cw, y/ch), pixel (x%cw, y%ch) — a pure
// gather with no blending, parallelized across cell rows.
func StitchGrid(grid *Grid) (*image.RGBA, error) {
	if grid == nil || len(grid.Cells) == 0 {
		return nil, newError(KindEmptyInput, "grid has no cells to stitch")
	}

	ref := grid.Cells[0].Bounds()
	cw, ch := ref.Dx(), ref.Dy()
	canvas := image.NewRGBA(image.Rect(0, 0, cw*grid.Width, ch*grid.Height))

	rowCh := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < runtime.NumCPU(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range rowCh {
				stitchRow(canvas, grid, row, cw, ch)
			}
		}()
	}
	for row := 0; row < grid.Height; row++ {
		rowCh <- row
	}
	close(rowCh)
	wg.Wait()

	return canvas, nil
}

// stitchRow copies one row of cells into the canvas. Each cell contributes
// cw contiguous pixels per scanline, so whole scanline segments are copied
// at once.
func stitchRow(canvas *image.RGBA, grid *Grid, row, cw, ch int) {
	for innerY := 0; innerY < ch; innerY++ {
		y := row*ch + innerY
		for col := 0; col < grid.Width; col++ {
			cell := grid.Cell(col, row)
			srcOff := cell.PixOffset(0, innerY)
			dstOff := canvas.PixOffset(col*cw, y)
			copy(canvas.Pix[dstOff:dstOff+cw*4], cell.Pix[srcOff:srcOff+cw*4])
		}
	}
}
