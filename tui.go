// Package tui is the core of a terminal UI toolkit: an input parser, a flex
// layout engine, a double-buffered diffing renderer, an editable text buffer
// and an Elm-style program runtime that ties them together.
package tui

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Attribute represents text styling attributes that can be combined.
type Attribute uint8

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << (iota - 1)
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrStrikethrough
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// ColorMode selects how a Color value is interpreted.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota // terminal default
	Color16                       // basic 16 colors (0-15)
	Color256                      // 256 color palette
	ColorRGB                      // 24-bit true color
)

// Color is a terminal color. The zero value is the terminal default.
type Color struct {
	Mode    ColorMode
	R, G, B uint8 // ColorRGB
	Index   uint8 // Color16, Color256
}

// DefaultColor returns the terminal's default color.
func DefaultColor() Color {
	return Color{Mode: ColorDefault}
}

// BasicColor returns one of the 16 basic terminal colors.
func BasicColor(index uint8) Color {
	return Color{Mode: Color16, Index: index & 0x0f}
}

// PaletteColor returns one of the 256 palette colors.
func PaletteColor(index uint8) Color {
	return Color{Mode: Color256, Index: index}
}

// RGB returns a 24-bit true color.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, R: r, G: g, B: b}
}

// Hex parses a "#RRGGBB" (or "#RGB") string into a true color.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		// colorful only accepts the long form
		if len(s) == 4 && s[0] == '#' {
			long := []byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]}
			if c, err = colorful.Hex(string(long)); err == nil {
				r, g, b := c.RGB255()
				return RGB(r, g, b), nil
			}
		}
		return Color{}, errors.Wrapf(err, "parse hex color %q", s)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// MustHex is Hex for package-level color literals.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Standard basic colors for convenience.
var (
	Black   = BasicColor(0)
	Red     = BasicColor(1)
	Green   = BasicColor(2)
	Yellow  = BasicColor(3)
	Blue    = BasicColor(4)
	Magenta = BasicColor(5)
	Cyan    = BasicColor(6)
	White   = BasicColor(7)

	BrightBlack   = BasicColor(8)
	BrightRed     = BasicColor(9)
	BrightGreen   = BasicColor(10)
	BrightYellow  = BasicColor(11)
	BrightBlue    = BasicColor(12)
	BrightMagenta = BasicColor(13)
	BrightCyan    = BasicColor(14)
	BrightWhite   = BasicColor(15)
)

var colorNames = []string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
}

// NamedColor looks up one of the 16 named colors. Bright variants accept
// "bright-red", "bright_red" and "brightred"; "gray"/"grey" is bright black.
func NamedColor(name string) (Color, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "default", "":
		return DefaultColor(), true
	case "gray", "grey":
		return BrightBlack, true
	}
	bright := false
	for _, prefix := range []string{"bright-", "bright_", "bright"} {
		if strings.HasPrefix(n, prefix) {
			bright = true
			n = n[len(prefix):]
			break
		}
	}
	for i, cn := range colorNames {
		if cn == n {
			if bright {
				return BasicColor(uint8(i + 8)), true
			}
			return BasicColor(uint8(i)), true
		}
	}
	return Color{}, false
}

// IsDefault reports whether the color is the terminal default.
func (c Color) IsDefault() bool {
	return c.Mode == ColorDefault
}

// Style combines foreground, background colors and attributes.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// DefaultStyle returns a style with default colors and no attributes.
func DefaultStyle() Style {
	return Style{}
}

// Foreground returns a new style with the given foreground color.
func (s Style) Foreground(c Color) Style {
	s.FG = c
	return s
}

// Background returns a new style with the given background color.
func (s Style) Background(c Color) Style {
	s.BG = c
	return s
}

func (s Style) Bold() Style          { s.Attr = s.Attr.With(AttrBold); return s }
func (s Style) Dim() Style           { s.Attr = s.Attr.With(AttrDim); return s }
func (s Style) Italic() Style        { s.Attr = s.Attr.With(AttrItalic); return s }
func (s Style) Underline() Style     { s.Attr = s.Attr.With(AttrUnderline); return s }
func (s Style) Blink() Style         { s.Attr = s.Attr.With(AttrBlink); return s }
func (s Style) Reverse() Style       { s.Attr = s.Attr.With(AttrReverse); return s }
func (s Style) Strikethrough() Style { s.Attr = s.Attr.With(AttrStrikethrough); return s }

// Inherit fills unset colors from parent and merges attributes.
func (s Style) Inherit(parent Style) Style {
	if s.FG.IsDefault() {
		s.FG = parent.FG
	}
	if s.BG.IsDefault() {
		s.BG = parent.BG
	}
	s.Attr |= parent.Attr
	return s
}

// Cell is a single character cell on the terminal.
//
// Char holds at most one grapheme. The right half of a double-width
// glyph is a continuation cell whose Char is empty.
type Cell struct {
	Char  string
	Style Style
}

// EmptyCell returns a cell with a space and default style.
func EmptyCell() Cell {
	return Cell{Char: " "}
}

// NewCell creates a cell with the given glyph and style.
func NewCell(ch string, style Style) Cell {
	return Cell{Char: ch, Style: style}
}

// IsContinuation reports whether c is the trailing half of a wide glyph.
func (c Cell) IsContinuation() bool {
	return c.Char == ""
}

// Size is a terminal size in cells.
type Size struct {
	Width  int
	Height int
}
