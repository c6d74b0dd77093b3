package tui

import (
	"strconv"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name     string
		from, to Style
		want     string
	}{
		{"same", Style{FG: Red}, Style{FG: Red}, ""},
		{"to default resets", Style{FG: Red, Attr: AttrBold}, Style{}, "\x1b[0m"},
		{"bold on", Style{}, Style{Attr: AttrBold}, "\x1b[1m"},
		{"several attributes and a color", Style{}, Style{FG: Green, Attr: AttrBold | AttrUnderline}, "\x1b[1;4;32m"},
		{"drop bold keep dim", Style{Attr: AttrBold | AttrDim}, Style{Attr: AttrDim}, "\x1b[22;2m"},
		{"drop dim", Style{FG: Red, Attr: AttrDim}, Style{FG: Red}, "\x1b[22m"},
		{"italic off", Style{FG: Red, Attr: AttrItalic}, Style{FG: Red}, "\x1b[23m"},
		{"reverse swap for strike", Style{FG: Red, Attr: AttrReverse}, Style{FG: Red, Attr: AttrStrikethrough}, "\x1b[27;9m"},
		{"foreground only", Style{FG: Red, Attr: AttrBold}, Style{FG: Blue, Attr: AttrBold}, "\x1b[34m"},
		{"bright background", Style{}, Style{BG: BrightRed}, "\x1b[101m"},
		{"bright foreground", Style{}, Style{FG: BrightCyan}, "\x1b[96m"},
		{"palette", Style{}, Style{FG: PaletteColor(208)}, "\x1b[38;5;208m"},
		{"true color background", Style{}, Style{BG: RGB(1, 2, 3)}, "\x1b[48;2;1;2;3m"},
		{"back to default foreground", Style{FG: Red}, Style{BG: Blue}, "\x1b[39;44m"},
		{"default background", Style{FG: Red, BG: Blue}, Style{FG: Red}, "\x1b[49m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(appendTransition(nil, tt.from, tt.to)))
		})
	}
}

func TestAppendInt(t *testing.T) {
	for _, n := range []int{0, 7, 10, 38, 255, 1000} {
		assert.Equal(t, strconv.Itoa(n), string(appendInt(nil, n)))
	}
}

func TestDegradeStyle(t *testing.T) {
	rich := Style{FG: RGB(255, 0, 0), BG: PaletteColor(9), Attr: AttrBold}

	t.Run("true color keeps everything", func(t *testing.T) {
		assert.Equal(t, rich, degradeStyle(rich, termenv.TrueColor))
	})

	t.Run("256 colors", func(t *testing.T) {
		got := degradeStyle(rich, termenv.ANSI256)
		assert.Equal(t, PaletteColor(196), got.FG)
		assert.Equal(t, PaletteColor(9), got.BG)
		assert.Equal(t, AttrBold, got.Attr)
	})

	t.Run("16 colors", func(t *testing.T) {
		got := degradeStyle(rich, termenv.ANSI)
		assert.Equal(t, BrightRed, got.FG)
		assert.Equal(t, BrightRed, got.BG)
		assert.Equal(t, Red, degradeStyle(Style{FG: Red}, termenv.ANSI).FG)
	})

	t.Run("no color keeps attributes", func(t *testing.T) {
		assert.Equal(t, Style{Attr: AttrBold}, degradeStyle(rich, termenv.Ascii))
	})
}
