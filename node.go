package tui

import "fmt"

// Node is an element of a document tree. The set of node kinds is closed:
// EmptyNode, TextNode, SpacerNode, BlockNode, RowNode, ColumnNode and
// OverlayNode. Trees are values, rebuilt from the model every frame.
type Node interface {
	nodeProps() Props
}

// Align positions a child along an axis with leftover space.
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

// offset returns where content of size used starts within size total.
func (a Align) offset(total, used int) int {
	if used >= total {
		return 0
	}
	switch a {
	case AlignCenter:
		return (total - used) / 2
	case AlignEnd:
		return total - used
	}
	return 0
}

// Edges holds per-side spacing in cells.
type Edges struct {
	Top, Right, Bottom, Left int
}

// Pad builds Edges from CSS-style shorthand: one value for all sides,
// two for vertical and horizontal, four for top, right, bottom, left.
// Any other count panics.
func Pad(v ...int) Edges {
	switch len(v) {
	case 1:
		return Edges{v[0], v[0], v[0], v[0]}
	case 2:
		return Edges{v[0], v[1], v[0], v[1]}
	case 4:
		return Edges{v[0], v[1], v[2], v[3]}
	}
	panic(fmt.Sprintf("tui: Pad takes 1, 2 or 4 values, got %d", len(v)))
}

// Horizontal returns Left+Right.
func (e Edges) Horizontal() int { return e.Left + e.Right }

// Vertical returns Top+Bottom.
func (e Edges) Vertical() int { return e.Top + e.Bottom }

// Props are the layout and style attributes shared by all nodes. Not every
// node uses every field: text and spacers ignore box spacing and borders.
type Props struct {
	Padding Edges
	Margin  Edges
	Border  *BorderStyle // nil for no border
	// BorderColor colors the border; default inherits Style.FG.
	BorderColor Color

	Width, Height int // explicit size including border and padding; 0 = auto
	Grow          float64
	Basis         int // main-axis size before growing; 0 = natural size

	Align  Align // horizontal
	VAlign Align // vertical
	Gap    int   // cells between row/column children

	Style  Style
	NoWrap bool // text: clip long lines instead of wrapping
}

// boxOverhead is the space margin, border and padding take on each axis.
func (p Props) boxOverhead() (w, h int) {
	w = p.Margin.Horizontal() + p.Padding.Horizontal()
	h = p.Margin.Vertical() + p.Padding.Vertical()
	if p.Border != nil {
		w += 2
		h += 2
	}
	return w, h
}

// EmptyNode renders nothing and takes no space.
type EmptyNode struct{}

// TextNode displays text, wrapped to the width it is given.
type TextNode struct {
	Content string
	Props
}

// SpacerNode is blank space. Without an explicit size it takes only what
// its parent's flex distribution gives it.
type SpacerNode struct {
	Props
}

// BlockNode wraps a single child in margin, border and padding.
type BlockNode struct {
	Child Node
	Props
}

// RowNode lays children out left to right.
type RowNode struct {
	Children []Node
	Props
}

// ColumnNode lays children out top to bottom.
type ColumnNode struct {
	Children []Node
	Props
}

// OverlayNode stacks children at the same origin; later children are
// drawn over earlier ones.
type OverlayNode struct {
	Children []Node
	Props
}

func (EmptyNode) nodeProps() Props     { return Props{} }
func (n TextNode) nodeProps() Props    { return n.Props }
func (n SpacerNode) nodeProps() Props  { return n.Props }
func (n BlockNode) nodeProps() Props   { return n.Props }
func (n RowNode) nodeProps() Props     { return n.Props }
func (n ColumnNode) nodeProps() Props  { return n.Props }
func (n OverlayNode) nodeProps() Props { return n.Props }

// Empty returns the empty node.
func Empty() EmptyNode { return EmptyNode{} }

// Text creates a text node. Escape sequences in s are stripped.
func Text(s string) TextNode { return TextNode{Content: StripANSI(s)} }

// Textf creates a text node with printf-style formatting.
func Textf(format string, args ...any) TextNode {
	return Text(fmt.Sprintf(format, args...))
}

// Spacer creates a flexible spacer that grows to fill free space.
func Spacer() SpacerNode { return SpacerNode{Props{Grow: 1}} }

// FixedSpacer creates a spacer of an exact size.
func FixedSpacer(w, h int) SpacerNode { return SpacerNode{Props{Width: w, Height: h}} }

// Block wraps child in a box.
func Block(child Node) BlockNode { return BlockNode{Child: child} }

// Row arranges children horizontally.
func Row(children ...Node) RowNode { return RowNode{Children: children} }

// Column arranges children vertically.
func Column(children ...Node) ColumnNode { return ColumnNode{Children: children} }

// Overlay stacks children.
func Overlay(children ...Node) OverlayNode { return OverlayNode{Children: children} }

// Chainable modifiers for TextNode

func (n TextNode) Style(s Style) TextNode  { n.Props.Style = s; return n }
func (n TextNode) Fg(c Color) TextNode     { n.Props.Style.FG = c; return n }
func (n TextNode) Bg(c Color) TextNode     { n.Props.Style.BG = c; return n }
func (n TextNode) Bold() TextNode          { n.Props.Style = n.Props.Style.Bold(); return n }
func (n TextNode) Dim() TextNode           { n.Props.Style = n.Props.Style.Dim(); return n }
func (n TextNode) Width(w int) TextNode    { n.Props.Width = w; return n }
func (n TextNode) Height(h int) TextNode   { n.Props.Height = h; return n }
func (n TextNode) Grow(g float64) TextNode { n.Props.Grow = g; return n }
func (n TextNode) Basis(b int) TextNode    { n.Props.Basis = b; return n }
func (n TextNode) Align(a Align) TextNode  { n.Props.Align = a; return n }
func (n TextNode) VAlign(a Align) TextNode { n.Props.VAlign = a; return n }
func (n TextNode) NoWrap() TextNode        { n.Props.NoWrap = true; return n }

// Chainable modifiers for SpacerNode

func (n SpacerNode) Width(w int) SpacerNode    { n.Props.Width = w; return n }
func (n SpacerNode) Height(h int) SpacerNode   { n.Props.Height = h; return n }
func (n SpacerNode) Grow(g float64) SpacerNode { n.Props.Grow = g; return n }
func (n SpacerNode) Bg(c Color) SpacerNode     { n.Props.Style.BG = c; return n }

// Chainable modifiers for BlockNode

func (n BlockNode) Padding(v ...int) BlockNode     { n.Props.Padding = Pad(v...); return n }
func (n BlockNode) Margin(v ...int) BlockNode      { n.Props.Margin = Pad(v...); return n }
func (n BlockNode) Border(b BorderStyle) BlockNode { n.Props.Border = &b; return n }
func (n BlockNode) BorderFg(c Color) BlockNode     { n.Props.BorderColor = c; return n }
func (n BlockNode) Style(s Style) BlockNode        { n.Props.Style = s; return n }
func (n BlockNode) Bg(c Color) BlockNode           { n.Props.Style.BG = c; return n }
func (n BlockNode) Width(w int) BlockNode          { n.Props.Width = w; return n }
func (n BlockNode) Height(h int) BlockNode         { n.Props.Height = h; return n }
func (n BlockNode) Grow(g float64) BlockNode       { n.Props.Grow = g; return n }
func (n BlockNode) Basis(b int) BlockNode          { n.Props.Basis = b; return n }
func (n BlockNode) Align(a Align) BlockNode        { n.Props.Align = a; return n }
func (n BlockNode) VAlign(a Align) BlockNode       { n.Props.VAlign = a; return n }

// Chainable modifiers for RowNode

func (n RowNode) Gap(g int) RowNode            { n.Props.Gap = g; return n }
func (n RowNode) Padding(v ...int) RowNode     { n.Props.Padding = Pad(v...); return n }
func (n RowNode) Margin(v ...int) RowNode      { n.Props.Margin = Pad(v...); return n }
func (n RowNode) Border(b BorderStyle) RowNode { n.Props.Border = &b; return n }
func (n RowNode) Style(s Style) RowNode        { n.Props.Style = s; return n }
func (n RowNode) Width(w int) RowNode          { n.Props.Width = w; return n }
func (n RowNode) Height(h int) RowNode         { n.Props.Height = h; return n }
func (n RowNode) Grow(g float64) RowNode       { n.Props.Grow = g; return n }
func (n RowNode) Basis(b int) RowNode          { n.Props.Basis = b; return n }
func (n RowNode) Align(a Align) RowNode        { n.Props.Align = a; return n }
func (n RowNode) VAlign(a Align) RowNode       { n.Props.VAlign = a; return n }

// Chainable modifiers for ColumnNode

func (n ColumnNode) Gap(g int) ColumnNode            { n.Props.Gap = g; return n }
func (n ColumnNode) Padding(v ...int) ColumnNode     { n.Props.Padding = Pad(v...); return n }
func (n ColumnNode) Margin(v ...int) ColumnNode      { n.Props.Margin = Pad(v...); return n }
func (n ColumnNode) Border(b BorderStyle) ColumnNode { n.Props.Border = &b; return n }
func (n ColumnNode) Style(s Style) ColumnNode        { n.Props.Style = s; return n }
func (n ColumnNode) Width(w int) ColumnNode          { n.Props.Width = w; return n }
func (n ColumnNode) Height(h int) ColumnNode         { n.Props.Height = h; return n }
func (n ColumnNode) Grow(g float64) ColumnNode       { n.Props.Grow = g; return n }
func (n ColumnNode) Basis(b int) ColumnNode          { n.Props.Basis = b; return n }
func (n ColumnNode) Align(a Align) ColumnNode        { n.Props.Align = a; return n }
func (n ColumnNode) VAlign(a Align) ColumnNode       { n.Props.VAlign = a; return n }

// Chainable modifiers for OverlayNode

func (n OverlayNode) Width(w int) OverlayNode    { n.Props.Width = w; return n }
func (n OverlayNode) Height(h int) OverlayNode   { n.Props.Height = h; return n }
func (n OverlayNode) Grow(g float64) OverlayNode { n.Props.Grow = g; return n }
