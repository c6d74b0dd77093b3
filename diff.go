package tui

import (
	"io"

	"github.com/muesli/termenv"
)

// ChangeRun is a contiguous span of cells on one row that differ between
// two frames.
type ChangeRun struct {
	Row, Col int
	Cells    []Cell
}

// End returns the column just past the run.
func (r ChangeRun) End() int { return r.Col + len(r.Cells) }

// Diff returns the change runs that turn old into next, ordered by row and
// then column. Cells of next that lie outside old's bounds always count as
// changed. A run touching either half of a wide glyph is widened to cover
// both halves, since a terminal cannot draw half of one.
func Diff(old, next *Buffer) []ChangeRun {
	var runs []ChangeRun
	changed := make([]bool, next.width)

	for y := 0; y < next.height; y++ {
		row := next.cells[y*next.width : (y+1)*next.width]
		dirty := false
		for x := range row {
			changed[x] = !old.InBounds(x, y) || old.cells[old.index(x, y)] != row[x]
			dirty = dirty || changed[x]
		}
		if !dirty {
			continue
		}

		for x := range row {
			if !changed[x] {
				continue
			}
			if row[x].IsContinuation() && x > 0 {
				changed[x-1] = true
			}
		}
		for x := len(row) - 2; x >= 0; x-- {
			if changed[x] && row[x+1].IsContinuation() {
				changed[x+1] = true
			}
		}

		for x := 0; x < len(row); {
			if !changed[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && changed[x] {
				x++
			}
			runs = append(runs, ChangeRun{
				Row:   y,
				Col:   start,
				Cells: append([]Cell(nil), row[start:x]...),
			})
		}
	}
	return runs
}

// Apply copies the cells of each run into the buffer. Cells falling
// outside the buffer are dropped.
func (b *Buffer) Apply(runs []ChangeRun) {
	for _, r := range runs {
		for i, c := range r.Cells {
			if x := r.Col + i; b.InBounds(x, r.Row) {
				b.cells[b.index(x, r.Row)] = c
			}
		}
	}
}

// appendRuns serializes runs: a cursor move per run, then the run's
// cells with only the style changes between neighbours, then one reset
// if the run ended styled.
func appendRuns(b []byte, runs []ChangeRun, p termenv.Profile) []byte {
	for _, r := range runs {
		b = appendCursorPos(b, r.Col, r.Row)
		var cur Style
		for _, c := range r.Cells {
			if c.IsContinuation() {
				continue
			}
			st := degradeStyle(c.Style, p)
			b = appendTransition(b, cur, st)
			cur = st
			b = append(b, c.Char...)
		}
		if cur != (Style{}) {
			b = append(b, sgrReset...)
		}
	}
	return b
}

// appendFrame serializes the whole buffer: clear screen, then every row
// after a cursor move to its first column.
func appendFrame(b []byte, buf *Buffer, p termenv.Profile) []byte {
	b = append(b, "\x1b[2J"...)
	var cur Style
	for y := 0; y < buf.height; y++ {
		b = appendCursorPos(b, 0, y)
		for _, c := range buf.cells[y*buf.width : (y+1)*buf.width] {
			if c.IsContinuation() {
				continue
			}
			st := degradeStyle(c.Style, p)
			b = appendTransition(b, cur, st)
			cur = st
			b = append(b, c.Char...)
		}
	}
	if cur != (Style{}) {
		b = append(b, sgrReset...)
	}
	return b
}

// appendCursorPos writes CUP for the 0-based position (x, y).
func appendCursorPos(b []byte, x, y int) []byte {
	b = append(b, "\x1b["...)
	b = appendInt(b, y+1)
	b = append(b, ';')
	b = appendInt(b, x+1)
	return append(b, 'H')
}

// RenderDiff writes the escape output for runs in a single write.
func RenderDiff(w io.Writer, runs []ChangeRun, p termenv.Profile) error {
	if len(runs) == 0 {
		return nil
	}
	_, err := w.Write(appendRuns(nil, runs, p))
	return err
}

// RenderFull writes a complete redraw of buf in a single write.
func RenderFull(w io.Writer, buf *Buffer, p termenv.Profile) error {
	_, err := w.Write(appendFrame(nil, buf, p))
	return err
}
