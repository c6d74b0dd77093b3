package tui

// Paint draws a laid out tree into buf. Styles inherit from parent to
// child, containers with a background fill their box first, and children
// are painted in order so later overlay children cover earlier ones.
// Nothing is drawn outside the parent's content area.
func Paint(buf *Buffer, root *LayoutNode) {
	if root == nil {
		return
	}
	paint(buf, root, Style{}, Rect{W: buf.width, H: buf.height})
}

func paint(buf *Buffer, ln *LayoutNode, parent Style, clip Rect) {
	p := ln.Node.nodeProps()
	style := p.Style.Inherit(parent)
	box := ln.Box()

	switch ln.Node.(type) {
	case EmptyNode:
		return
	case TextNode:
		paintText(buf, ln, p, style, clip)
		return
	case SpacerNode:
		if !style.BG.IsDefault() {
			fillClipped(buf, box.Intersect(clip), style)
		}
		return
	}

	if !p.Style.BG.IsDefault() {
		fillClipped(buf, box.Intersect(clip), style)
	}
	if p.Border != nil {
		bs := style
		if !p.BorderColor.IsDefault() {
			bs.FG = p.BorderColor
		}
		drawBorderClipped(buf, box, *p.Border, bs, clip)
	}

	inner := ln.Content().Intersect(clip)
	for _, c := range ln.Children {
		paint(buf, c, style, inner)
	}
}

func paintText(buf *Buffer, ln *LayoutNode, p Props, style Style, clip Rect) {
	r := ln.Rect
	area := r.Intersect(clip)
	if area.W == 0 || area.H == 0 {
		return
	}
	if !p.Style.BG.IsDefault() {
		fillClipped(buf, area, style)
	}

	top := r.Y + p.VAlign.offset(r.H, len(ln.Lines))
	right := area.X + area.W
	for i, line := range ln.Lines {
		y := top + i
		if y < area.Y || y >= area.Y+area.H {
			continue
		}
		x := r.X + p.Align.offset(r.W, TextWidth(line))
		if x < area.X {
			line = ClipLeft(line, area.X-x)
			x = area.X
		}
		buf.WriteStringClipped(x, y, line, style, right-x)
	}
}

func fillClipped(buf *Buffer, r Rect, style Style) {
	buf.FillRect(r.X, r.Y, r.W, r.H, Cell{Char: " ", Style: style})
}

// drawBorderClipped is DrawBorder limited to the cells inside clip.
func drawBorderClipped(buf *Buffer, r Rect, bs BorderStyle, style Style, clip Rect) {
	if r.W < 2 || r.H < 2 {
		return
	}
	if clip.Intersect(r) == r {
		buf.DrawBorder(r.X, r.Y, r.W, r.H, bs, style)
		return
	}
	set := func(x, y int, ch string) {
		if clip.Contains(x, y) {
			buf.Set(x, y, NewCell(ch, style))
		}
	}
	x1, y1 := r.X+r.W-1, r.Y+r.H-1
	set(r.X, r.Y, bs.TopLeft)
	set(x1, r.Y, bs.TopRight)
	set(r.X, y1, bs.BottomLeft)
	set(x1, y1, bs.BottomRight)
	for x := r.X + 1; x < x1; x++ {
		set(x, r.Y, bs.Horizontal)
		set(x, y1, bs.Horizontal)
	}
	for y := r.Y + 1; y < y1; y++ {
		set(r.X, y, bs.Vertical)
		set(x1, y, bs.Vertical)
	}
}
