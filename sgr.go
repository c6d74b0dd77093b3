package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

const sgrReset = "\x1b[0m"

// appendTransition appends the SGR sequence that moves the terminal from
// style from to style to. Only the components that differ are emitted.
// Dropping bold or dim goes through 22, which clears both, so whichever
// of the two the target keeps is re-enabled afterwards.
func appendTransition(b []byte, from, to Style) []byte {
	if from == to {
		return b
	}
	if to == (Style{}) {
		return append(b, sgrReset...)
	}

	start := len(b)
	b = append(b, "\x1b["...)
	n := 0
	code := func(c int) {
		if n > 0 {
			b = append(b, ';')
		}
		b = appendInt(b, c)
		n++
	}

	removed := from.Attr &^ to.Attr
	added := to.Attr &^ from.Attr

	if removed.Has(AttrBold) || removed.Has(AttrDim) {
		code(22)
		added |= to.Attr & (AttrBold | AttrDim)
	}
	if removed.Has(AttrItalic) {
		code(23)
	}
	if removed.Has(AttrUnderline) {
		code(24)
	}
	if removed.Has(AttrBlink) {
		code(25)
	}
	if removed.Has(AttrReverse) {
		code(27)
	}
	if removed.Has(AttrStrikethrough) {
		code(29)
	}

	if added.Has(AttrBold) {
		code(1)
	}
	if added.Has(AttrDim) {
		code(2)
	}
	if added.Has(AttrItalic) {
		code(3)
	}
	if added.Has(AttrUnderline) {
		code(4)
	}
	if added.Has(AttrBlink) {
		code(5)
	}
	if added.Has(AttrReverse) {
		code(7)
	}
	if added.Has(AttrStrikethrough) {
		code(9)
	}

	if from.FG != to.FG {
		b = appendColorCodes(b, to.FG, true, n > 0)
		n++
	}
	if from.BG != to.BG {
		b = appendColorCodes(b, to.BG, false, n > 0)
		n++
	}

	if n == 0 {
		return b[:start]
	}
	return append(b, 'm')
}

// appendColorCodes writes the parameter list selecting c as the
// foreground or background color.
func appendColorCodes(b []byte, c Color, fg, sep bool) []byte {
	if sep {
		b = append(b, ';')
	}
	switch c.Mode {
	case Color16:
		base := 30
		if !fg {
			base = 40
		}
		idx := int(c.Index & 0x0f)
		if idx >= 8 {
			base += 60
			idx -= 8
		}
		return appendInt(b, base+idx)
	case Color256:
		if fg {
			b = append(b, "38;5;"...)
		} else {
			b = append(b, "48;5;"...)
		}
		return appendInt(b, int(c.Index))
	case ColorRGB:
		if fg {
			b = append(b, "38;2;"...)
		} else {
			b = append(b, "48;2;"...)
		}
		b = appendInt(b, int(c.R))
		b = append(b, ';')
		b = appendInt(b, int(c.G))
		b = append(b, ';')
		return appendInt(b, int(c.B))
	}
	if fg {
		return append(b, "39"...)
	}
	return append(b, "49"...)
}

// appendInt appends a non-negative decimal without allocating.
func appendInt(b []byte, n int) []byte {
	if n < 0 {
		b = append(b, '-')
		n = -n
	}
	if n < 10 {
		return append(b, byte('0'+n))
	}
	var scratch [20]byte
	i := len(scratch)
	for n > 0 {
		i--
		scratch[i] = byte('0' + n%10)
		n /= 10
	}
	return append(b, scratch[i:]...)
}

// degradeStyle maps a style's colors onto what the profile can display.
// Attributes are kept under every profile.
func degradeStyle(s Style, p termenv.Profile) Style {
	if p == termenv.TrueColor {
		return s
	}
	s.FG = degradeColor(s.FG, p)
	s.BG = degradeColor(s.BG, p)
	return s
}

func degradeColor(c Color, p termenv.Profile) Color {
	var tc termenv.Color
	switch c.Mode {
	case Color16:
		tc = termenv.ANSIColor(c.Index & 0x0f)
	case Color256:
		tc = termenv.ANSI256Color(c.Index)
	case ColorRGB:
		tc = termenv.RGBColor(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	default:
		return c
	}
	switch v := p.Convert(tc).(type) {
	case termenv.NoColor:
		return DefaultColor()
	case termenv.ANSIColor:
		return BasicColor(uint8(v))
	case termenv.ANSI256Color:
		return PaletteColor(uint8(v))
	}
	return c
}
