package tui

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scene fills a buffer with a mix of styles, wide glyphs and borders.
func scene(w, h, seed int) *Buffer {
	buf := NewBuffer(w, h)
	styles := []Style{{}, {FG: Red}, {BG: Blue, Attr: AttrBold}, {FG: RGB(10, 20, 30)}}
	words := []string{"alpha", "中文", "β", "x", "日本語"}
	for y := 0; y < h; y++ {
		x := (y * seed) % 3
		for i := 0; x < w; i++ {
			n := buf.WriteString(x, y, words[(i+y+seed)%len(words)], styles[(i*seed+y)%len(styles)])
			x += n + 1 + (i+seed)%2
		}
	}
	buf.DrawBorder(1, 1, w/2, h/2, BorderSingle, styles[seed%len(styles)])
	return buf
}

func TestDiff(t *testing.T) {
	t.Run("identical buffers", func(t *testing.T) {
		a := scene(20, 6, 1)
		assert.Empty(t, Diff(a, a.Clone()))
	})

	t.Run("one changed cell", func(t *testing.T) {
		a := NewBuffer(10, 3)
		b := a.Clone()
		c := NewCell("x", Style{FG: Red})
		b.Set(4, 1, c)
		assert.Equal(t, []ChangeRun{{Row: 1, Col: 4, Cells: []Cell{c}}}, Diff(a, b))
	})

	t.Run("adjacent and separate changes", func(t *testing.T) {
		a := NewBuffer(10, 1)
		b := a.Clone()
		b.WriteString(1, 0, "ab", Style{})
		b.WriteString(6, 0, "c", Style{})
		runs := Diff(a, b)
		require.Len(t, runs, 2)
		assert.Equal(t, 1, runs[0].Col)
		assert.Equal(t, 3, runs[0].End())
		assert.Equal(t, 6, runs[1].Col)
		assert.Equal(t, 7, runs[1].End())
	})

	t.Run("continuation change widens to the lead", func(t *testing.T) {
		a := NewBuffer(6, 1)
		a.WriteString(2, 0, "中", Style{})
		b := a.Clone()
		b.Set(3, 0, Cell{Style: Style{BG: Red}})
		runs := Diff(a, b)
		require.Len(t, runs, 1)
		assert.Equal(t, 2, runs[0].Col)
		assert.Len(t, runs[0].Cells, 2)
		assert.Equal(t, "中", runs[0].Cells[0].Char)
	})

	t.Run("new glyph includes its continuation", func(t *testing.T) {
		a := NewBuffer(6, 1)
		b := a.Clone()
		b.WriteString(0, 0, "日", Style{})
		runs := Diff(a, b)
		require.Len(t, runs, 1)
		assert.Equal(t, 0, runs[0].Col)
		assert.Equal(t, 2, runs[0].End())
	})

	t.Run("cells outside the old buffer changed", func(t *testing.T) {
		runs := Diff(NewBuffer(2, 1), NewBuffer(3, 2))
		require.Len(t, runs, 2)
		assert.Equal(t, ChangeRun{Row: 0, Col: 2, Cells: []Cell{EmptyCell()}}, runs[0])
		assert.Equal(t, 0, runs[1].Col)
		assert.Equal(t, 3, runs[1].End())
	})

	t.Run("runs are copies", func(t *testing.T) {
		a := NewBuffer(3, 1)
		b := a.Clone()
		b.Set(0, 0, NewCell("q", Style{}))
		runs := Diff(a, b)
		b.Set(0, 0, NewCell("r", Style{}))
		assert.Equal(t, "q", runs[0].Cells[0].Char)
	})
}

func TestDiffApply(t *testing.T) {
	for seed := 1; seed <= 5; seed++ {
		old := scene(30, 8, seed)
		next := scene(30, 8, seed+1)
		got := old.Clone()
		got.Apply(Diff(old, next))
		assert.True(t, got.Equal(next), "seed %d:\n%s\nwant:\n%s", seed, got, next)
	}

	t.Run("from blank", func(t *testing.T) {
		next := scene(12, 4, 2)
		got := NewBuffer(12, 4)
		got.Apply(Diff(NewBuffer(0, 0), next))
		assert.True(t, got.Equal(next))
	})
}

func TestRenderDiff(t *testing.T) {
	t.Run("moves then writes styled cells", func(t *testing.T) {
		var out bytes.Buffer
		runs := []ChangeRun{{Row: 1, Col: 4, Cells: []Cell{{Char: "x", Style: Style{FG: Red}}}}}
		require.NoError(t, RenderDiff(&out, runs, termenv.TrueColor))
		assert.Equal(t, "\x1b[2;5H\x1b[31mx\x1b[0m", out.String())
	})

	t.Run("style only changes between cells", func(t *testing.T) {
		var out bytes.Buffer
		red := Style{FG: Red}
		runs := []ChangeRun{{Row: 0, Col: 0, Cells: []Cell{
			{Char: "a", Style: red}, {Char: "b", Style: red}, {Char: "c"},
		}}}
		require.NoError(t, RenderDiff(&out, runs, termenv.TrueColor))
		assert.Equal(t, "\x1b[1;1H\x1b[31mab\x1b[0mc", out.String())
	})

	t.Run("continuation cells are not written", func(t *testing.T) {
		var out bytes.Buffer
		runs := []ChangeRun{{Row: 0, Col: 3, Cells: []Cell{{Char: "中"}, {}}}}
		require.NoError(t, RenderDiff(&out, runs, termenv.TrueColor))
		assert.Equal(t, "\x1b[1;4H中", out.String())
	})

	t.Run("no runs writes nothing", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RenderDiff(&out, nil, termenv.TrueColor))
		assert.Zero(t, out.Len())
	})
}

func TestRenderFull(t *testing.T) {
	buf := NewBuffer(2, 2)
	buf.Set(0, 0, NewCell("x", Style{FG: Red}))
	var out bytes.Buffer
	require.NoError(t, RenderFull(&out, buf, termenv.TrueColor))
	assert.Equal(t, "\x1b[2J\x1b[1;1H\x1b[31mx\x1b[0m \x1b[2;1H  ", out.String())
}
