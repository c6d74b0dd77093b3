package tui

import (
	"math"
	"strings"
)

// Unbounded is the max of an unconstrained axis.
const Unbounded = math.MaxInt32

// Constraints bound a node's size. Max >= Min >= 0 on both axes.
type Constraints struct {
	MinW, MaxW int
	MinH, MaxH int
}

// Loose allows any size up to w by h.
func Loose(w, h int) Constraints {
	return Constraints{MaxW: nonNeg(w), MaxH: nonNeg(h)}
}

// Tight forces exactly w by h.
func Tight(w, h int) Constraints {
	w, h = nonNeg(w), nonNeg(h)
	return Constraints{MinW: w, MaxW: w, MinH: h, MaxH: h}
}

func nonNeg(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func (c Constraints) clampW(w int) int { return clampInt(w, c.MinW, c.MaxW) }
func (c Constraints) clampH(h int) int { return clampInt(h, c.MinH, c.MaxH) }

// shrink removes dw, dh of overhead from both bounds, never going
// below zero. Unbounded stays unbounded.
func (c Constraints) shrink(dw, dh int) Constraints {
	sub := func(v, d int) int {
		if v == Unbounded {
			return v
		}
		return nonNeg(v - d)
	}
	return Constraints{
		MinW: sub(c.MinW, dw), MaxW: sub(c.MaxW, dw),
		MinH: sub(c.MinH, dh), MaxH: sub(c.MaxH, dh),
	}
}

// loosen drops the minimums.
func (c Constraints) loosen() Constraints {
	return Constraints{MaxW: c.MaxW, MaxH: c.MaxH}
}

// Rect is a rectangle in terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of r and o, empty if they are disjoint.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Inset shrinks r by e on each side, clamping at zero size.
func (r Rect) Inset(e Edges) Rect {
	return Rect{
		X: r.X + e.Left,
		Y: r.Y + e.Top,
		W: nonNeg(r.W - e.Horizontal()),
		H: nonNeg(r.H - e.Vertical()),
	}
}

// LayoutNode is a document node placed on screen. Rect is in absolute
// cells and includes the node's margin.
type LayoutNode struct {
	Node     Node
	Rect     Rect
	Children []*LayoutNode
	Lines    []string // wrapped content of text nodes
}

// Box returns the node's rectangle without its margin: the area its
// border and background cover.
func (ln *LayoutNode) Box() Rect {
	return ln.Rect.Inset(ln.Node.nodeProps().Margin)
}

// Content returns the area inside margin, border and padding.
func (ln *LayoutNode) Content() Rect {
	p := ln.Node.nodeProps()
	r := ln.Box()
	if p.Border != nil {
		r = r.Inset(Edges{1, 1, 1, 1})
	}
	return r.Inset(p.Padding)
}

// Walk calls fn for ln and every descendant, parents first.
func (ln *LayoutNode) Walk(fn func(*LayoutNode)) {
	fn(ln)
	for _, c := range ln.Children {
		c.Walk(fn)
	}
}

// translate moves the subtree by dx, dy.
func (ln *LayoutNode) translate(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	ln.Walk(func(n *LayoutNode) {
		n.Rect.X += dx
		n.Rect.Y += dy
	})
}

// Layout places doc within a width by height terminal.
func Layout(doc Node, width, height int) *LayoutNode {
	if doc == nil {
		doc = EmptyNode{}
	}
	return layout(doc, Loose(width, height))
}

// layout sizes n within c. The result sits at the origin; callers move it.
func layout(n Node, c Constraints) *LayoutNode {
	switch n := n.(type) {
	case TextNode:
		return layoutText(n, c)
	case SpacerNode:
		return layoutSpacer(n, c)
	case BlockNode:
		return layoutBox(n, n.Props, c, func(inner Constraints) []*LayoutNode {
			child := n.Child
			if child == nil {
				child = EmptyNode{}
			}
			return []*LayoutNode{layoutAligned(child, inner, n.Props)}
		})
	case RowNode:
		return layoutBox(n, n.Props, c, func(inner Constraints) []*LayoutNode {
			return layoutFlex(n.Children, inner, n.Props, true)
		})
	case ColumnNode:
		return layoutBox(n, n.Props, c, func(inner Constraints) []*LayoutNode {
			return layoutFlex(n.Children, inner, n.Props, false)
		})
	case OverlayNode:
		return layoutBox(n, n.Props, c, func(inner Constraints) []*LayoutNode {
			kids := make([]*LayoutNode, 0, len(n.Children))
			for _, child := range n.Children {
				if child != nil {
					kids = append(kids, layout(child, inner))
				}
			}
			return kids
		})
	}
	return &LayoutNode{Node: EmptyNode{}, Rect: Rect{W: c.MinW, H: c.MinH}}
}

// explicitSize applies Width/Height overrides, still within c.
func explicitSize(p Props, c Constraints, w, h int) (int, int) {
	if p.Width > 0 {
		w = p.Width + p.Margin.Horizontal()
	}
	if p.Height > 0 {
		h = p.Height + p.Margin.Vertical()
	}
	return c.clampW(w), c.clampH(h)
}

func layoutText(n TextNode, c Constraints) *LayoutNode {
	w := c.clampW(TextWidth(n.Content))
	if n.Props.Width > 0 {
		w = c.clampW(n.Props.Width)
	}

	var lines []string
	if n.Props.NoWrap {
		if n.Content != "" {
			lines = strings.Split(n.Content, "\n")
		}
	} else {
		lines = Wrap(n.Content, w)
	}

	h := c.clampH(len(lines))
	if n.Props.Height > 0 {
		h = c.clampH(n.Props.Height)
	}
	if len(lines) > h {
		lines = lines[:h]
	}
	return &LayoutNode{Node: n, Rect: Rect{W: w, H: h}, Lines: lines}
}

func layoutSpacer(n SpacerNode, c Constraints) *LayoutNode {
	w, h := c.MinW, c.MinH
	if n.Props.Width > 0 {
		w = n.Props.Width
	}
	if n.Props.Height > 0 {
		h = n.Props.Height
	}
	return &LayoutNode{Node: n, Rect: Rect{W: c.clampW(w), H: c.clampH(h)}}
}

// layoutBox handles margin, border, padding and explicit sizes for
// container nodes. inside lays out the children within the content
// constraint; their rects come back relative to the content origin.
func layoutBox(n Node, p Props, c Constraints, inside func(Constraints) []*LayoutNode) *LayoutNode {
	ow, oh := p.boxOverhead()

	inner := c.shrink(ow, oh)
	if p.Width > 0 {
		w := c.clampW(p.Width + p.Margin.Horizontal())
		inner.MinW, inner.MaxW = nonNeg(w-ow), nonNeg(w-ow)
	}
	if p.Height > 0 {
		h := c.clampH(p.Height + p.Margin.Vertical())
		inner.MinH, inner.MaxH = nonNeg(h-oh), nonNeg(h-oh)
	}

	kids := inside(inner)
	cw, ch := 0, 0
	for _, k := range kids {
		cw = max(cw, k.Rect.X+k.Rect.W)
		ch = max(ch, k.Rect.Y+k.Rect.H)
	}
	w, h := explicitSize(p, c, cw+ow, ch+oh)

	ox := p.Margin.Left + p.Padding.Left
	oy := p.Margin.Top + p.Padding.Top
	if p.Border != nil {
		ox++
		oy++
	}
	// children of an overfull box stay within its rect
	ox, oy = min(ox, w), min(oy, h)
	for _, k := range kids {
		k.translate(ox, oy)
	}
	return &LayoutNode{Node: n, Rect: Rect{W: w, H: h}, Children: kids}
}

// layoutAligned lays out the single child of a block. A start-aligned
// child is held to the block's minimum inner size, a stretched one fills
// the inner space, and centered or end-aligned children keep their
// natural size and are offset into the free space.
func layoutAligned(child Node, inner Constraints, p Props) *LayoutNode {
	cc := inner.loosen()
	cc.MinW = alignedMin(p.Align, inner.MinW, inner.MaxW)
	cc.MinH = alignedMin(p.VAlign, inner.MinH, inner.MaxH)
	ln := layout(child, cc)
	ln.translate(p.Align.offset(inner.MinW, ln.Rect.W), p.VAlign.offset(inner.MinH, ln.Rect.H))
	return ln
}

func alignedMin(a Align, lo, hi int) int {
	switch a {
	case AlignStart:
		return lo
	case AlignStretch:
		if hi == Unbounded {
			return lo
		}
		return hi
	}
	return 0
}

// axis helpers let row and column share one flex implementation.
type axis struct {
	horizontal bool
}

func (a axis) main(r Rect) int {
	if a.horizontal {
		return r.W
	}
	return r.H
}

func (a axis) cross(r Rect) int {
	if a.horizontal {
		return r.H
	}
	return r.W
}

// constraints builds child constraints from main and cross bounds.
func (a axis) constraints(minMain, maxMain, minCross, maxCross int) Constraints {
	if a.horizontal {
		return Constraints{MinW: minMain, MaxW: maxMain, MinH: minCross, MaxH: maxCross}
	}
	return Constraints{MinW: minCross, MaxW: maxCross, MinH: minMain, MaxH: maxMain}
}

func (a axis) bounds(c Constraints) (minMain, maxMain, minCross, maxCross int) {
	if a.horizontal {
		return c.MinW, c.MaxW, c.MinH, c.MaxH
	}
	return c.MinH, c.MaxH, c.MinW, c.MaxW
}

func (a axis) place(ln *LayoutNode, mainPos, crossPos int) {
	if a.horizontal {
		ln.translate(mainPos, crossPos)
	} else {
		ln.translate(crossPos, mainPos)
	}
}

// layoutFlex is the two-pass flex algorithm. Pass one measures every
// child's basis under a loose constraint; pass two hands leftover main
// space to growing children in proportion to their grow factors and
// lays each child out again at its final size.
func layoutFlex(children []Node, c Constraints, p Props, horizontal bool) []*LayoutNode {
	ax := axis{horizontal}
	kids := make([]Node, 0, len(children))
	for _, ch := range children {
		if ch != nil {
			kids = append(kids, ch)
		}
	}
	if len(kids) == 0 {
		return nil
	}

	minMain, maxMain, minCross, maxCross := ax.bounds(c)
	crossAlign, mainAlign := p.VAlign, p.Align
	if !horizontal {
		crossAlign, mainAlign = p.Align, p.VAlign
	}

	gaps := p.Gap * (len(kids) - 1)
	bases := make([]int, len(kids))
	used := gaps
	var totalGrow float64
	for i, k := range kids {
		kp := k.nodeProps()
		if kp.Basis > 0 {
			bases[i] = kp.Basis
		} else {
			measured := layout(k, ax.constraints(0, maxMain, 0, maxCross))
			bases[i] = ax.main(measured.Rect)
		}
		used += bases[i]
		if kp.Grow > 0 {
			totalGrow += kp.Grow
		}
	}

	sizes := append([]int(nil), bases...)
	if maxMain != Unbounded && totalGrow > 0 {
		remaining := nonNeg(maxMain - used)
		distributed := 0
		for i, k := range kids {
			if g := k.nodeProps().Grow; g > 0 {
				extra := int(float64(remaining) * g / totalGrow)
				sizes[i] += extra
				distributed += extra
			}
		}
		// rounding leftovers go one cell at a time to growing children
		for i := 0; distributed < remaining; i = (i + 1) % len(kids) {
			if kids[i].nodeProps().Grow > 0 {
				sizes[i]++
				distributed++
			}
		}
	}

	// children past the available space are squeezed, never negative
	if maxMain != Unbounded {
		left := nonNeg(maxMain - gaps)
		for i := range sizes {
			sizes[i] = min(sizes[i], left)
			left -= sizes[i]
		}
	}

	// pass two at final main size, natural cross size
	out := make([]*LayoutNode, len(kids))
	crossExtent := minCross
	for i, k := range kids {
		minC := 0
		if crossAlign == AlignStretch {
			minC = minCross
		}
		out[i] = layout(k, ax.constraints(sizes[i], sizes[i], minC, maxCross))
		crossExtent = max(crossExtent, ax.cross(out[i].Rect))
	}
	crossExtent = min(crossExtent, maxCross)

	if crossAlign == AlignStretch {
		for i, k := range kids {
			if ax.cross(out[i].Rect) != crossExtent {
				out[i] = layout(k, ax.constraints(sizes[i], sizes[i], crossExtent, crossExtent))
			}
		}
	}

	total := gaps
	for _, s := range sizes {
		total += s
	}
	pos := mainAlign.offset(max(total, minMain), total)
	for i, ln := range out {
		ax.place(ln, pos, crossAlign.offset(crossExtent, ax.cross(ln.Rect)))
		pos += sizes[i] + p.Gap
	}
	return out
}
