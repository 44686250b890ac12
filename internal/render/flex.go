package render

import (
	"github.com/tdewolff/canvas"
)

// The vector backend authors the card as an explicit flexbox-style node
// tree. A node either paints leaf content (text, bar) sized by measure,
// or stacks children in a column / places them in a row. Coordinates are
// top-left origin with y growing downward (the context is switched to
// CartesianIV before painting).

type flexDirection int

const (
	column flexDirection = iota
	row
)

type rect struct {
	x, y, w, h float64
}

type edges struct {
	top, right, bottom, left float64
}

func pad(vertical, horizontal float64) edges {
	return edges{top: vertical, right: horizontal, bottom: vertical, left: horizontal}
}

type flexNode struct {
	dir     flexDirection
	gap     float64
	padding edges

	width  float64 // fixed width; 0 means fill (column child) or natural (row child)
	height float64 // fixed content height; 0 means derived from children/measure
	grow   bool    // row child: absorb the remaining row width

	// measure reports the natural content size for a given available
	// width. Only leaf nodes set it.
	measure func(maxWidth float64) (w, h float64)

	// paint draws this node's own content into its laid-out rect,
	// before any children are painted.
	paint func(gc *canvas.Context, r rect)

	children []*flexNode
}

// measureNode returns the total height of the node at width w,
// including padding.
func (n *flexNode) measureNode(w float64) float64 {
	if n.height > 0 {
		return n.height + n.padding.top + n.padding.bottom
	}
	innerW := w - n.padding.left - n.padding.right

	var h float64
	switch {
	case n.measure != nil:
		_, h = n.measure(innerW)
	case n.dir == column:
		for i, c := range n.children {
			if i > 0 {
				h += n.gap
			}
			h += c.measureNode(c.childWidth(innerW))
		}
	default: // row: height of the tallest child
		for _, c := range n.children {
			if ch := c.measureNode(c.naturalWidth(innerW)); ch > h {
				h = ch
			}
		}
	}
	return h + n.padding.top + n.padding.bottom
}

// childWidth resolves a column child's width within an inner width:
// fixed if set, otherwise fill.
func (n *flexNode) childWidth(innerW float64) float64 {
	if n.width > 0 {
		return n.width
	}
	return innerW
}

// naturalWidth resolves a row child's width: fixed if set, measured
// otherwise. Grow children are resolved by the row itself.
func (n *flexNode) naturalWidth(innerW float64) float64 {
	if n.width > 0 {
		return n.width
	}
	if n.measure != nil {
		w, _ := n.measure(innerW)
		return w
	}
	return 0
}

// paintNode lays the node out at (x, y) with width w, paints it and its
// children, and returns the height consumed.
func (n *flexNode) paintNode(gc *canvas.Context, x, y, w float64) float64 {
	h := n.measureNode(w)
	if n.paint != nil {
		n.paint(gc, rect{x: x, y: y, w: w, h: h})
	}

	innerX := x + n.padding.left
	innerY := y + n.padding.top
	innerW := w - n.padding.left - n.padding.right

	switch n.dir {
	case column:
		cy := innerY
		for i, c := range n.children {
			if i > 0 {
				cy += n.gap
			}
			cw := c.childWidth(innerW)
			cx := innerX + (innerW-cw)/2 // fixed-width children are centered
			cy += c.paintNode(gc, cx, cy, cw)
		}
	case row:
		remaining := innerW
		if len(n.children) > 1 {
			remaining -= n.gap * float64(len(n.children)-1)
		}
		for _, c := range n.children {
			if !c.grow {
				remaining -= c.naturalWidth(innerW)
			}
		}

		rowH := h - n.padding.top - n.padding.bottom
		cx := innerX
		for i, c := range n.children {
			if i > 0 {
				cx += n.gap
			}
			cw := c.naturalWidth(innerW)
			if c.grow {
				cw = remaining
			}
			ch := c.measureNode(cw)
			c.paintNode(gc, cx, innerY+(rowH-ch)/2, cw)
			cx += cw
		}
	}
	return h
}
