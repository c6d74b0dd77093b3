package tui

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Buffer is a 2D grid of cells representing a drawable surface.
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a buffer of blank cells. Negative sizes are treated
// as zero.
func NewBuffer(width, height int) *Buffer {
	width, height = nonNeg(width), nonNeg(height)
	b := &Buffer{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
	b.Clear()
	return b
}

// Width returns the buffer width.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height.
func (b *Buffer) Height() int {
	return b.height
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// InBounds returns true if the given coordinates are within the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) index(x, y int) int {
	return y*b.width + x
}

// Get returns the cell at the given coordinates, or a blank cell if they
// are out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if !b.InBounds(x, y) {
		return EmptyCell()
	}
	return b.cells[b.index(x, y)]
}

// Set stores c at (x, y). Out of bounds writes are dropped. Overwriting
// either half of a wide glyph blanks the other half so no orphaned
// halves remain. When both the old and new glyphs are box-drawing
// characters they are merged into the matching junction.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	idx := b.index(x, y)
	old := b.cells[idx]

	if old.IsContinuation() && !c.IsContinuation() && x > 0 {
		b.cells[idx-1] = Cell{Char: " ", Style: b.cells[idx-1].Style}
	}
	if !old.IsContinuation() && x+1 < b.width && b.cells[idx+1].IsContinuation() {
		b.cells[idx+1] = Cell{Char: " ", Style: b.cells[idx+1].Style}
	}

	if merged, ok := mergeBorders(old.Char, c.Char); ok {
		c.Char = merged
	}
	b.cells[idx] = c
}

// Fill fills the entire buffer with the given cell.
func (b *Buffer) Fill(c Cell) {
	for i := range b.cells {
		b.cells[i] = c
	}
}

// Clear resets every cell to a blank with default style.
func (b *Buffer) Clear() {
	b.Fill(EmptyCell())
}

// FillRect fills a rectangular region with the given cell.
func (b *Buffer) FillRect(x, y, width, height int, c Cell) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			b.Set(x+dx, y+dy, c)
		}
	}
}

// WriteString writes s starting at (x, y) and returns the number of
// columns advanced. Escape sequences are stripped first. Each grapheme
// takes as many cells as its display width; a wide glyph is followed by
// a continuation cell in the same style. Zero-width graphemes attach to
// the preceding cell. Writing stops at the right edge, and a wide glyph
// that would straddle it is replaced by a space.
func (b *Buffer) WriteString(x, y int, s string, style Style) int {
	return b.WriteStringClipped(x, y, s, style, b.width-x)
}

// WriteStringClipped is WriteString limited to maxWidth columns.
func (b *Buffer) WriteStringClipped(x, y int, s string, style Style, maxWidth int) int {
	if y < 0 || y >= b.height || maxWidth <= 0 {
		return 0
	}
	s = StripANSI(s)
	limit := min(x+maxWidth, b.width)
	start := x
	state := -1
	for len(s) > 0 && x < limit {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if isControlCluster(cluster) {
			continue
		}
		if w == 0 {
			if x > start && x-1 >= 0 {
				prev := b.index(x-1, y)
				if b.cells[prev].IsContinuation() && x-2 >= 0 {
					prev--
				}
				b.cells[prev].Char += cluster
			}
			continue
		}
		if w > 1 && x+1 >= limit {
			b.Set(x, y, Cell{Char: " ", Style: style})
			x++
			break
		}
		b.Set(x, y, Cell{Char: cluster, Style: style})
		for i := 1; i < w; i++ {
			b.Set(x+i, y, Cell{Style: style})
		}
		x += w
	}
	return x - start
}

func isControlCluster(s string) bool {
	return len(s) == 1 && (s[0] < 0x20 || s[0] == 0x7f)
}

// HLine draws a horizontal line of the given glyph.
func (b *Buffer) HLine(x, y, length int, ch string, style Style) {
	for i := 0; i < length; i++ {
		b.Set(x+i, y, NewCell(ch, style))
	}
}

// VLine draws a vertical line of the given glyph.
func (b *Buffer) VLine(x, y, length int, ch string, style Style) {
	for i := 0; i < length; i++ {
		b.Set(x, y+i, NewCell(ch, style))
	}
}

// Box drawing characters for borders.
const (
	BoxHorizontal         = "─"
	BoxVertical           = "│"
	BoxTopLeft            = "┌"
	BoxTopRight           = "┐"
	BoxBottomLeft         = "└"
	BoxBottomRight        = "┘"
	BoxRoundedTopLeft     = "╭"
	BoxRoundedTopRight    = "╮"
	BoxRoundedBottomLeft  = "╰"
	BoxRoundedBottomRight = "╯"
	BoxDoubleHorizontal   = "═"
	BoxDoubleVertical     = "║"
	BoxDoubleTopLeft      = "╔"
	BoxDoubleTopRight     = "╗"
	BoxDoubleBottomLeft   = "╚"
	BoxDoubleBottomRight  = "╝"
	BoxThickHorizontal    = "━"
	BoxThickVertical      = "┃"
	BoxThickTopLeft       = "┏"
	BoxThickTopRight      = "┓"
	BoxThickBottomLeft    = "┗"
	BoxThickBottomRight   = "┛"

	BoxTeeDown  = "┬"
	BoxTeeUp    = "┴"
	BoxTeeRight = "├"
	BoxTeeLeft  = "┤"
	BoxCross    = "┼"
)

// borderEdges maps single-line glyphs to the sides they connect.
// Bits: 1=top, 2=right, 4=bottom, 8=left.
var borderEdges = map[string]uint8{
	BoxHorizontal:  0b1010,
	BoxVertical:    0b0101,
	BoxTopLeft:     0b0110,
	BoxTopRight:    0b1100,
	BoxBottomLeft:  0b0011,
	BoxBottomRight: 0b1001,
	BoxTeeDown:     0b1110,
	BoxTeeUp:       0b1011,
	BoxTeeRight:    0b0111,
	BoxTeeLeft:     0b1101,
	BoxCross:       0b1111,

	BoxRoundedTopLeft:     0b0110,
	BoxRoundedTopRight:    0b1100,
	BoxRoundedBottomLeft:  0b0011,
	BoxRoundedBottomRight: 0b1001,
}

var edgesToBorder = map[uint8]string{
	0b1010: BoxHorizontal,
	0b0101: BoxVertical,
	0b0110: BoxTopLeft,
	0b1100: BoxTopRight,
	0b0011: BoxBottomLeft,
	0b1001: BoxBottomRight,
	0b1110: BoxTeeDown,
	0b1011: BoxTeeUp,
	0b0111: BoxTeeRight,
	0b1101: BoxTeeLeft,
	0b1111: BoxCross,
}

// mergeBorders combines two touching border glyphs into a junction.
// Straight lines drawn over each other in the same direction stay as is.
func mergeBorders(existing, next string) (string, bool) {
	a, ok1 := borderEdges[existing]
	n, ok2 := borderEdges[next]
	if !ok1 || !ok2 || a == n {
		return next, false
	}
	if merged, ok := edgesToBorder[a|n]; ok {
		return merged, true
	}
	return next, false
}

// BorderStyle defines the glyphs used for drawing borders.
type BorderStyle struct {
	Horizontal  string
	Vertical    string
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
}

// Standard border styles.
var (
	BorderSingle = BorderStyle{
		Horizontal:  BoxHorizontal,
		Vertical:    BoxVertical,
		TopLeft:     BoxTopLeft,
		TopRight:    BoxTopRight,
		BottomLeft:  BoxBottomLeft,
		BottomRight: BoxBottomRight,
	}
	BorderRounded = BorderStyle{
		Horizontal:  BoxHorizontal,
		Vertical:    BoxVertical,
		TopLeft:     BoxRoundedTopLeft,
		TopRight:    BoxRoundedTopRight,
		BottomLeft:  BoxRoundedBottomLeft,
		BottomRight: BoxRoundedBottomRight,
	}
	BorderDouble = BorderStyle{
		Horizontal:  BoxDoubleHorizontal,
		Vertical:    BoxDoubleVertical,
		TopLeft:     BoxDoubleTopLeft,
		TopRight:    BoxDoubleTopRight,
		BottomLeft:  BoxDoubleBottomLeft,
		BottomRight: BoxDoubleBottomRight,
	}
	BorderThick = BorderStyle{
		Horizontal:  BoxThickHorizontal,
		Vertical:    BoxThickVertical,
		TopLeft:     BoxThickTopLeft,
		TopRight:    BoxThickTopRight,
		BottomLeft:  BoxThickBottomLeft,
		BottomRight: BoxThickBottomRight,
	}
	BorderASCII = BorderStyle{
		Horizontal:  "-",
		Vertical:    "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}
)

// DrawBorder draws a border around the given rectangle.
func (b *Buffer) DrawBorder(x, y, width, height int, border BorderStyle, style Style) {
	if width < 2 || height < 2 {
		return
	}

	b.Set(x, y, NewCell(border.TopLeft, style))
	b.Set(x+width-1, y, NewCell(border.TopRight, style))
	b.Set(x, y+height-1, NewCell(border.BottomLeft, style))
	b.Set(x+width-1, y+height-1, NewCell(border.BottomRight, style))

	for i := 1; i < width-1; i++ {
		b.Set(x+i, y, NewCell(border.Horizontal, style))
		b.Set(x+i, y+height-1, NewCell(border.Horizontal, style))
	}
	for i := 1; i < height-1; i++ {
		b.Set(x, y+i, NewCell(border.Vertical, style))
		b.Set(x+width-1, y+i, NewCell(border.Vertical, style))
	}
}

// Line returns row y as text with trailing blanks trimmed.
func (b *Buffer) Line(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < b.width; x++ {
		sb.WriteString(b.cells[b.index(x, y)].Char)
	}
	return strings.TrimRight(sb.String(), " ")
}

// String returns the buffer's text, rows separated by newlines, with
// trailing blanks and empty trailing rows trimmed. Used by tests.
func (b *Buffer) String() string {
	lines := make([]string, b.height)
	for y := range lines {
		lines[y] = b.Line(y)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		cells:  append([]Cell(nil), b.cells...),
		width:  b.width,
		height: b.height,
	}
}

// Equal reports whether two buffers have the same size and cells.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Resize resizes the buffer, keeping the overlapping top-left region.
func (b *Buffer) Resize(width, height int) {
	width, height = nonNeg(width), nonNeg(height)
	if width == b.width && height == b.height {
		return
	}

	cells := make([]Cell, width*height)
	empty := EmptyCell()
	for i := range cells {
		cells[i] = empty
	}
	w, h := min(b.width, width), min(b.height, height)
	for y := 0; y < h; y++ {
		copy(cells[y*width:y*width+w], b.cells[y*b.width:y*b.width+w])
		// a wide glyph cut in half at the new right edge
		if w > 0 && w < b.width && b.cells[y*b.width+w].IsContinuation() {
			cells[y*width+w-1] = Cell{Char: " ", Style: cells[y*width+w-1].Style}
		}
	}

	b.cells = cells
	b.width = width
	b.height = height
}
