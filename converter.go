package imgii

import (
	"image"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Grid is the rectangular arrangement of rendered character cells for one
// frame. Cells are stored row-major; cells with identical content may be
// shared pointers, never deep copies.
type Grid struct {
	Cells  []*image.RGBA
	Width  int
	Height int
}

// Cell returns the cell at column x, row y.
func (g *Grid) Cell(x, y int) *image.RGBA {
	return g.Cells[y*g.Width+x]
}

// Converter renders colorized ASCII text into a Grid of glyph images. It
// drives the token parser over every line and the glyph renderer over every
// token, memoizing rendered cells so repeated (character, color) pairs are
// rasterized only once.
type Converter struct {
	font   *Font
	opts   *Options
	parser *Parser

	// rasterize is the glyph rendering hook; tests substitute it to
	// observe rasterization without a real font.
	rasterize func(ColorToken) (*image.RGBA, error)
}

// NewConverter creates a Converter for one conversion run. The font handle
// and options are shared read-only across all workers.
func NewConverter(fnt *Font, opts *Options) (*Converter, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	c := &Converter{font: fnt, opts: opts, parser: p}
	c.rasterize = func(tok ColorToken) (*image.RGBA, error) {
		return renderCharImage(tok, c.font, c.opts)
	}
	return c, nil
}

// RenderGrid parses and rasterizes a whole ASCII text block into a Grid.
// Lines are processed on a worker pool sized to the CPU count, each writing
// to its own stable row index so completion order never reorders rows. The
// first line establishes the authoritative width; any later line with a
// different token count fails the whole grid. A single bad token also fails
// the whole grid; per-frame tolerance lives one level up, in the frame
// orchestrator.
func (c *Converter) RenderGrid(asciiText string) (*Grid, error) {
	lines := splitLines(asciiText)
	if len(lines) == 0 {
		return nil, newError(KindEmptyInput, "no ASCII text to render")
	}

	// The blank cell depends only on the options, so render it once up
	// front; the whitespace fast path then never touches the memo lock.
	blank := blankCellImage(c.opts)

	var mu sync.Mutex
	memo := make(map[ColorToken]*image.RGBA)

	rows := make([][]*image.RGBA, len(lines))
	group := new(errgroup.Group)
	group.SetLimit(runtime.NumCPU())
	for i, line := range lines {
		group.Go(func() error {
			tokens, err := c.parser.ParseLine(line)
			if err != nil {
				return err
			}
			cells := make([]*image.RGBA, 0, len(tokens))
			for _, tok := range tokens {
				if tok.IsBlank() {
					cells = append(cells, blank)
					continue
				}
				mu.Lock()
				cell, ok := memo[tok]
				mu.Unlock()
				if !ok {
					// Two workers may race to render the same token; both
					// renders are pixel-identical, so last write wins.
					cell, err = c.rasterize(tok)
					if err != nil {
						return err
					}
					mu.Lock()
					memo[tok] = cell
					mu.Unlock()
				}
				cells = append(cells, cell)
			}
			rows[i] = cells
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	width := len(rows[0])
	cells := make([]*image.RGBA, 0, width*len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, newError(KindWidthMismatch,
				"line %d produced %d cells, expected %d", i, len(row), width)
		}
		cells = append(cells, row...)
	}
	return &Grid{Cells: cells, Width: width, Height: len(rows)}, nil
}

// splitLines splits ASCII text into lines, dropping a single trailing
// newline so it does not read as an empty final row.
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
