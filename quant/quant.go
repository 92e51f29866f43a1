// Package quant maps truecolor images onto fixed palettes for GIF output.
// Nearest-color lookup uses a KD-tree over the palette, which keeps
// per-pixel lookups cheap even for 256-entry palettes.
package quant

import (
	"image"
	"image/color"
	"sort"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// rgbFromColor converts a color.Color to RGB, dropping alpha.
func rgbFromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// distanceSquared returns the squared Euclidean distance between two colors
// in RGB space. The square root is never needed for ordering candidates.
func (c RGB) distanceSquared(other RGB) int {
	dr := int(c.R) - int(other.R)
	dg := int(c.G) - int(other.G)
	db := int(c.B) - int(other.B)
	return dr*dr + dg*dg + db*db
}

// component returns the color component along the given axis (0=R, 1=G, 2=B).
func (c RGB) component(axis int) uint8 {
	switch axis {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

// colorNode is a node in a KD-tree of palette colors. Each node stores a
// palette color, its palette index, and the axis along which its subtrees
// are split.
type colorNode struct {
	color       RGB
	index       int
	splitAxis   int
	left, right *colorNode
}

// Tree is a KD-tree over a fixed palette, supporting nearest-color lookup.
type Tree struct {
	root *colorNode
}

// paletteEntry pairs a palette color with its index during tree building.
type paletteEntry struct {
	color RGB
	index int
}

// NewTree builds a KD-tree from a palette. The tree holds palette indices,
// so lookups return positions directly usable in a paletted image.
func NewTree(pal color.Palette) *Tree {
	entries := make([]paletteEntry, len(pal))
	for i, c := range pal {
		entries[i] = paletteEntry{color: rgbFromColor(c), index: i}
	}
	return &Tree{root: buildTree(entries, 0)}
}

// buildTree recursively builds the KD-tree, cycling the split axis by depth
// and splitting each level at the median along that axis.
func buildTree(entries []paletteEntry, depth int) *colorNode {
	if len(entries) == 0 {
		return nil
	}

	axis := depth % 3
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].color.component(axis) < entries[j].color.component(axis)
	})

	median := len(entries) / 2
	return &colorNode{
		color:     entries[median].color,
		index:     entries[median].index,
		splitAxis: axis,
		left:      buildTree(entries[:median], depth+1),
		right:     buildTree(entries[median+1:], depth+1),
	}
}

// Nearest returns the palette index of the color closest to c.
func (t *Tree) Nearest(c RGB) int {
	best := t.root
	bestDist := t.root.color.distanceSquared(c)
	t.root.nearest(c, &best, &bestDist)
	return best.index
}

// nearest walks the tree toward c, backtracking into the far subtree only
// when the splitting plane is closer than the best match found so far.
func (node *colorNode) nearest(c RGB, best **colorNode, bestDist *int) {
	if node == nil {
		return
	}

	if d := node.color.distanceSquared(c); d < *bestDist {
		*best = node
		*bestDist = d
	}

	planeDelta := int(c.component(node.splitAxis)) - int(node.color.component(node.splitAxis))
	near, far := node.left, node.right
	if planeDelta > 0 {
		near, far = far, near
	}

	near.nearest(c, best, bestDist)
	if planeDelta*planeDelta < *bestDist {
		far.nearest(c, best, bestDist)
	}
}

// Palettize converts an RGBA image into a paletted image over pal, mapping
// every pixel to its nearest palette color. The output keeps the source
// bounds.
func Palettize(img *image.RGBA, pal color.Palette) *image.Paletted {
	tree := NewTree(pal)
	bounds := img.Bounds()
	dst := image.NewPaletted(bounds, pal)

	// Consecutive pixels are frequently identical in stitched glyph
	// canvases, so remember the last lookup.
	var lastColor RGB
	lastIndex := -1

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		srcOff := img.PixOffset(bounds.Min.X, y)
		dstOff := dst.PixOffset(bounds.Min.X, y)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := RGB{
				R: img.Pix[srcOff],
				G: img.Pix[srcOff+1],
				B: img.Pix[srcOff+2],
			}
			if lastIndex < 0 || c != lastColor {
				lastColor = c
				lastIndex = tree.Nearest(c)
			}
			dst.Pix[dstOff] = uint8(lastIndex)
			srcOff += 4
			dstOff++
		}
	}
	return dst
}
