package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func render(doc Node, w, h int) *Buffer {
	buf := NewBuffer(w, h)
	Paint(buf, Layout(doc, w, h))
	return buf
}

func TestPaint(t *testing.T) {
	t.Run("row with spacer", func(t *testing.T) {
		buf := render(Row(Text("ab"), Spacer(), Text("c")).Width(6), 6, 1)
		assert.Equal(t, "ab   c", buf.String())
	})

	t.Run("bordered block", func(t *testing.T) {
		buf := render(Block(Text("hi")).Border(BorderRounded), 6, 3)
		assert.Equal(t, "╭──╮\n│hi│\n╰──╯", buf.String())
	})

	t.Run("text is clipped to the content box", func(t *testing.T) {
		buf := render(Block(Text("hello world").NoWrap()).Border(BorderSingle).Width(7), 10, 3)
		assert.Equal(t, "┌─────┐\n│hello│\n└─────┘", buf.String())
	})

	t.Run("wrapped text", func(t *testing.T) {
		buf := render(Column(Text("hello world")).Width(5), 10, 3)
		assert.Equal(t, "hello\nworld", buf.String())
	})

	t.Run("wide glyph cut at the edge", func(t *testing.T) {
		buf := render(Block(Text("中文").NoWrap()).Width(3), 10, 1)
		assert.Equal(t, "中", buf.String())
	})

	t.Run("aligned text", func(t *testing.T) {
		buf := render(Text("ab").Width(6).Align(AlignCenter), 10, 1)
		assert.Equal(t, "  ab", buf.String())
		buf = render(Text("ab").Width(6).Align(AlignEnd), 10, 1)
		assert.Equal(t, "    ab", buf.String())
	})

	t.Run("vertical alignment in a block", func(t *testing.T) {
		buf := render(Block(Text("a")).Height(3).VAlign(AlignEnd), 5, 5)
		assert.Equal(t, "\n\na", buf.String())
	})

	t.Run("overlay draws later children on top", func(t *testing.T) {
		buf := render(Overlay(Text("abc"), Text("X")), 5, 1)
		assert.Equal(t, "Xbc", buf.String())
	})

	t.Run("nil tree", func(t *testing.T) {
		buf := NewBuffer(3, 1)
		Paint(buf, nil)
		assert.Equal(t, "", buf.String())
	})
}

func TestPaintStyles(t *testing.T) {
	t.Run("children inherit", func(t *testing.T) {
		buf := render(Column(Text("x"), Text("y").Fg(Blue)).Style(Style{FG: Red, Attr: AttrBold}), 3, 2)
		assert.Equal(t, Style{FG: Red, Attr: AttrBold}, buf.Get(0, 0).Style)
		assert.Equal(t, Style{FG: Blue, Attr: AttrBold}, buf.Get(0, 1).Style)
	})

	t.Run("background fills the box", func(t *testing.T) {
		buf := render(Block(Text("a")).Width(3).Bg(Blue), 5, 1)
		assert.Equal(t, Cell{Char: "a", Style: Style{BG: Blue}}, buf.Get(0, 0))
		assert.Equal(t, Cell{Char: " ", Style: Style{BG: Blue}}, buf.Get(2, 0))
		assert.Equal(t, EmptyCell(), buf.Get(3, 0))
	})

	t.Run("border color", func(t *testing.T) {
		buf := render(Block(Text("a")).Border(BorderSingle).BorderFg(Green).Style(Style{FG: Red}), 5, 3)
		assert.Equal(t, Green, buf.Get(0, 0).Style.FG)
		assert.Equal(t, Red, buf.Get(1, 1).Style.FG)
	})

	t.Run("spacer background", func(t *testing.T) {
		buf := render(Row(Text("a"), Spacer().Height(1).Bg(Red)).Width(4), 4, 1)
		assert.Equal(t, Red, buf.Get(3, 0).Style.BG)
		assert.True(t, buf.Get(0, 0).Style.BG.IsDefault())
	})
}
