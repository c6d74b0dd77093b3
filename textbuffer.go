package tui

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// wordPunct are the non-space characters that end a word.
const wordPunct = ".,;:!?'\"`()[]{}<>/\\|-+=*&^%$#@~"

// isBoundary reports whether r separates words.
func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(wordPunct, r)
}

// Selection is a half-open range of rune offsets, Start < End.
type Selection struct {
	Start, End int
}

// Len returns the number of selected runes.
func (s Selection) Len() int {
	return s.End - s.Start
}

// TextBuffer is an editable string with a cursor and an optional
// selection. It is a value: every operation returns a new buffer and
// leaves the receiver untouched, so old states can be kept for undo.
//
// Offsets count runes. The cursor lies in [0, Len()].
type TextBuffer struct {
	text   []rune // never modified after construction
	cursor int
	sel    Selection
	hasSel bool
}

// NewTextBuffer returns a buffer holding text with the cursor at the end.
func NewTextBuffer(text string) TextBuffer {
	r := []rune(text)
	return TextBuffer{text: r, cursor: len(r)}
}

// NewTextBufferAt returns a buffer holding text with the cursor at pos,
// clamped into range.
func NewTextBufferAt(text string, pos int) TextBuffer {
	return build([]rune(text), pos, Selection{}, false)
}

// build normalizes state so cursor and selection lie inside the text and
// empty selections disappear.
func build(text []rune, cursor int, sel Selection, hasSel bool) TextBuffer {
	n := len(text)
	cursor = clampInt(cursor, 0, n)
	if hasSel {
		sel.Start = clampInt(sel.Start, 0, n)
		sel.End = clampInt(sel.End, 0, n)
		if sel.Start > sel.End {
			sel.Start, sel.End = sel.End, sel.Start
		}
		if sel.Start == sel.End {
			hasSel = false
			sel = Selection{}
		}
	}
	return TextBuffer{text: text, cursor: cursor, sel: sel, hasSel: hasSel}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// splice returns a fresh slice with text[from:to] replaced by ins.
func splice(text []rune, from, to int, ins []rune) []rune {
	out := make([]rune, 0, len(text)-(to-from)+len(ins))
	out = append(out, text[:from]...)
	out = append(out, ins...)
	return append(out, text[to:]...)
}

// --- queries ---

// Text returns the buffer contents.
func (b TextBuffer) Text() string { return string(b.text) }

// Cursor returns the cursor offset.
func (b TextBuffer) Cursor() int { return b.cursor }

// Len returns the length in runes.
func (b TextBuffer) Len() int { return len(b.text) }

// Selection returns the active selection, if any.
func (b TextBuffer) Selection() (Selection, bool) { return b.sel, b.hasSel }

// SelectedText returns the selected text, or "" without a selection.
func (b TextBuffer) SelectedText() string {
	if !b.hasSel {
		return ""
	}
	return string(b.text[b.sel.Start:b.sel.End])
}

// lineStarts returns the offset of the first rune of every line.
func (b TextBuffer) lineStarts() []int {
	starts := []int{0}
	for i, r := range b.text {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// LineCount returns the number of lines; an empty buffer has one.
func (b TextBuffer) LineCount() int {
	return len(b.lineStarts())
}

// position converts an offset to a line index and rune column.
func (b TextBuffer) position(off int) (line, col int) {
	starts := b.lineStarts()
	for i := len(starts) - 1; i >= 0; i-- {
		if starts[i] <= off {
			return i, off - starts[i]
		}
	}
	return 0, off
}

// Line returns the index of the cursor's line.
func (b TextBuffer) Line() int {
	line, _ := b.position(b.cursor)
	return line
}

// Column returns the cursor's rune offset within its line.
func (b TextBuffer) Column() int {
	_, col := b.position(b.cursor)
	return col
}

// VisualColumn returns the display width between the start of the
// cursor's line and the cursor, which is where a terminal cursor goes.
func (b TextBuffer) VisualColumn() int {
	return b.visualColumn(b.cursor)
}

// LineStart returns the offset where the cursor's line begins.
func (b TextBuffer) LineStart() int {
	return b.lineStart(b.cursor)
}

// LineEnd returns the offset of the cursor line's newline, or Len() on
// the last line.
func (b TextBuffer) LineEnd() int {
	return b.lineEnd(b.cursor)
}

func (b TextBuffer) lineStart(off int) int {
	for off > 0 && b.text[off-1] != '\n' {
		off--
	}
	return off
}

func (b TextBuffer) lineEnd(off int) int {
	for off < len(b.text) && b.text[off] != '\n' {
		off++
	}
	return off
}

// visualColumn is the display width of the text between the start of
// the line and off, measured per grapheme cluster as the buffer paints it.
func (b TextBuffer) visualColumn(off int) int {
	return uniseg.StringWidth(string(b.text[b.lineStart(off):off]))
}

// offsetAtColumn finds the offset on the line starting at start whose
// visual column is the largest not exceeding col. The result always lies
// on a grapheme cluster boundary.
func (b TextBuffer) offsetAtColumn(start, col int) int {
	end := b.lineEnd(start)
	off, w := start, 0
	g := uniseg.NewGraphemes(string(b.text[start:end]))
	for g.Next() {
		gw := g.Width()
		if w+gw > col {
			return off
		}
		w += gw
		off += len(g.Runes())
	}
	return end
}

// --- motion ---

func (b TextBuffer) moved(pos int) TextBuffer {
	return build(b.text, pos, Selection{}, false)
}

// MoveTo places the cursor at pos and clears the selection.
func (b TextBuffer) MoveTo(pos int) TextBuffer { return b.moved(pos) }

// Left moves one rune left. With a selection it collapses to its start.
func (b TextBuffer) Left() TextBuffer {
	if b.hasSel {
		return b.moved(b.sel.Start)
	}
	return b.moved(b.cursor - 1)
}

// Right moves one rune right. With a selection it collapses to its end.
func (b TextBuffer) Right() TextBuffer {
	if b.hasSel {
		return b.moved(b.sel.End)
	}
	return b.moved(b.cursor + 1)
}

func (b TextBuffer) wordLeftOf(pos int) int {
	for pos > 0 && isBoundary(b.text[pos-1]) {
		pos--
	}
	for pos > 0 && !isBoundary(b.text[pos-1]) {
		pos--
	}
	return pos
}

func (b TextBuffer) wordRightOf(pos int) int {
	n := len(b.text)
	for pos < n && isBoundary(b.text[pos]) {
		pos++
	}
	for pos < n && !isBoundary(b.text[pos]) {
		pos++
	}
	return pos
}

// WordLeft moves to the start of the previous word.
func (b TextBuffer) WordLeft() TextBuffer { return b.moved(b.wordLeftOf(b.cursor)) }

// WordRight moves to the end of the next word.
func (b TextBuffer) WordRight() TextBuffer { return b.moved(b.wordRightOf(b.cursor)) }

// Home moves to the start of the current line.
func (b TextBuffer) Home() TextBuffer { return b.moved(b.LineStart()) }

// End moves to the end of the current line.
func (b TextBuffer) End() TextBuffer { return b.moved(b.LineEnd()) }

// LineUp moves to the previous line keeping the visual column, clamped
// to that line's length. On the first line it moves to the start.
func (b TextBuffer) LineUp() TextBuffer {
	start := b.LineStart()
	if start == 0 {
		return b.moved(0)
	}
	col := b.visualColumn(b.cursor)
	prev := b.lineStart(start - 1)
	return b.moved(b.offsetAtColumn(prev, col))
}

// LineDown moves to the next line keeping the visual column, clamped to
// that line's length. On the last line it moves to the end.
func (b TextBuffer) LineDown() TextBuffer {
	end := b.LineEnd()
	if end == len(b.text) {
		return b.moved(end)
	}
	col := b.visualColumn(b.cursor)
	return b.moved(b.offsetAtColumn(end+1, col))
}

// --- edits ---

// Insert inserts s at the cursor, replacing the selection if any.
func (b TextBuffer) Insert(s string) TextBuffer {
	ins := []rune(s)
	from, to := b.cursor, b.cursor
	if b.hasSel {
		from, to = b.sel.Start, b.sel.End
	}
	return build(splice(b.text, from, to, ins), from+len(ins), Selection{}, false)
}

// ReplaceSelection replaces the selection with s. Without a selection it
// inserts at the cursor.
func (b TextBuffer) ReplaceSelection(s string) TextBuffer {
	return b.Insert(s)
}

// DeleteSelection removes the selected text. Without a selection it
// returns the buffer unchanged.
func (b TextBuffer) DeleteSelection() TextBuffer {
	if !b.hasSel {
		return b
	}
	return b.deleteRange(b.sel.Start, b.sel.End)
}

func (b TextBuffer) deleteRange(from, to int) TextBuffer {
	if from >= to {
		return b.moved(b.cursor)
	}
	return build(splice(b.text, from, to, nil), from, Selection{}, false)
}

// DeleteBack removes the rune before the cursor.
func (b TextBuffer) DeleteBack() TextBuffer {
	if b.hasSel {
		return b.DeleteSelection()
	}
	if b.cursor == 0 {
		return b
	}
	return b.deleteRange(b.cursor-1, b.cursor)
}

// DeleteForward removes the rune under the cursor.
func (b TextBuffer) DeleteForward() TextBuffer {
	if b.hasSel {
		return b.DeleteSelection()
	}
	if b.cursor == len(b.text) {
		return b
	}
	return b.deleteRange(b.cursor, b.cursor+1)
}

// DeleteWord removes from the start of the previous word to the cursor.
func (b TextBuffer) DeleteWord() TextBuffer {
	if b.hasSel {
		return b.DeleteSelection()
	}
	if b.cursor == 0 {
		return b
	}
	return b.deleteRange(b.wordLeftOf(b.cursor), b.cursor)
}

// DeleteToLineEnd removes from the cursor to the end of its line. At the
// end of a line it joins the next line.
func (b TextBuffer) DeleteToLineEnd() TextBuffer {
	if b.hasSel {
		return b.DeleteSelection()
	}
	end := b.LineEnd()
	if end == b.cursor {
		if end == len(b.text) {
			return b
		}
		end++
	}
	return b.deleteRange(b.cursor, end)
}

// DeleteToLineStart removes from the start of the line to the cursor.
func (b TextBuffer) DeleteToLineStart() TextBuffer {
	if b.hasSel {
		return b.DeleteSelection()
	}
	start := b.LineStart()
	if start == b.cursor {
		return b
	}
	return b.deleteRange(start, b.cursor)
}

// --- selection ---

// SelectAll selects the whole text and moves the cursor to the end.
func (b TextBuffer) SelectAll() TextBuffer {
	return build(b.text, len(b.text), Selection{0, len(b.text)}, true)
}

// SelectWord selects the word under or just before the cursor.
func (b TextBuffer) SelectWord() TextBuffer {
	start, end := b.cursor, b.cursor
	for start > 0 && !isBoundary(b.text[start-1]) {
		start--
	}
	for end < len(b.text) && !isBoundary(b.text[end]) {
		end++
	}
	return build(b.text, end, Selection{start, end}, true)
}

// SelectTo extends the selection from its anchor to pos and moves the
// cursor there. Without a selection the anchor is the cursor.
func (b TextBuffer) SelectTo(pos int) TextBuffer {
	anchor := b.cursor
	if b.hasSel {
		anchor = b.sel.Start
		if b.cursor == b.sel.Start {
			anchor = b.sel.End
		}
	}
	return build(b.text, pos, Selection{anchor, pos}, true)
}

// ClearSelection drops the selection, leaving the cursor in place.
func (b TextBuffer) ClearSelection() TextBuffer {
	return build(b.text, b.cursor, Selection{}, false)
}

// --- key handling ---

// Paste inserts pasted text, replacing any selection.
func (b TextBuffer) Paste(ev PasteEvent) TextBuffer {
	return b.Insert(ev.Text)
}

// HandleKey applies the usual line-editor binding for ev. It reports
// false for keys it does not bind, returning the buffer unchanged.
func (b TextBuffer) HandleKey(ev KeyEvent) (TextBuffer, bool) {
	shift := ev.Mod.Has(ModShift)
	word := ev.Mod.Has(ModCtrl) || ev.Mod.Has(ModAlt)

	switch ev.Key {
	case KeyRune:
		switch {
		case ev.Mod.Has(ModCtrl):
			return b.ctrlKey(ev.Rune)
		case ev.Mod.Has(ModAlt):
			switch ev.Rune {
			case 'b':
				return b.WordLeft(), true
			case 'f':
				return b.WordRight(), true
			}
			return b, false
		}
		return b.Insert(string(ev.Rune)), true
	case KeyEnter:
		return b.Insert("\n"), true
	case KeyBackspace:
		if word {
			return b.DeleteWord(), true
		}
		return b.DeleteBack(), true
	case KeyDelete:
		return b.DeleteForward(), true
	case KeyLeft:
		target := b.cursor - 1
		if word {
			target = b.wordLeftOf(b.cursor)
		}
		if shift {
			return b.SelectTo(target), true
		}
		if word {
			return b.moved(target), true
		}
		return b.Left(), true
	case KeyRight:
		target := b.cursor + 1
		if word {
			target = b.wordRightOf(b.cursor)
		}
		if shift {
			return b.SelectTo(target), true
		}
		if word {
			return b.moved(target), true
		}
		return b.Right(), true
	case KeyHome:
		if shift {
			return b.SelectTo(b.LineStart()), true
		}
		return b.Home(), true
	case KeyEnd:
		if shift {
			return b.SelectTo(b.LineEnd()), true
		}
		return b.End(), true
	case KeyUp:
		if shift {
			return b.SelectTo(b.LineUp().cursor), true
		}
		return b.LineUp(), true
	case KeyDown:
		if shift {
			return b.SelectTo(b.LineDown().cursor), true
		}
		return b.LineDown(), true
	}
	return b, false
}

func (b TextBuffer) ctrlKey(r rune) (TextBuffer, bool) {
	switch r {
	case 'a':
		return b.Home(), true
	case 'e':
		return b.End(), true
	case 'b':
		return b.Left(), true
	case 'f':
		return b.Right(), true
	case 'd':
		return b.DeleteForward(), true
	case 'h':
		return b.DeleteBack(), true
	case 'w':
		return b.DeleteWord(), true
	case 'k':
		return b.DeleteToLineEnd(), true
	case 'u':
		return b.DeleteToLineStart(), true
	case 'p':
		return b.LineUp(), true
	case 'n':
		return b.LineDown(), true
	}
	return b, false
}
