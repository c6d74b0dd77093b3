package teacompat

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	tui "github.com/kungfusheep/tuicore"
)

// Style converts the colors and attributes of a lipgloss style.
// Layout properties such as padding and borders are ignored.
func Style(s lipgloss.Style) tui.Style {
	st := tui.Style{
		FG: Color(s.GetForeground()),
		BG: Color(s.GetBackground()),
	}
	attrs := []struct {
		on   bool
		attr tui.Attribute
	}{
		{s.GetBold(), tui.AttrBold},
		{s.GetFaint(), tui.AttrDim},
		{s.GetItalic(), tui.AttrItalic},
		{s.GetUnderline(), tui.AttrUnderline},
		{s.GetBlink(), tui.AttrBlink},
		{s.GetReverse(), tui.AttrReverse},
		{s.GetStrikethrough(), tui.AttrStrikethrough},
	}
	for _, a := range attrs {
		if a.on {
			st.Attr = st.Attr.With(a.attr)
		}
	}
	return st
}

// Color converts a lipgloss color. Adaptive colors use their dark
// variant; complete colors use the truecolor value.
func Color(c lipgloss.TerminalColor) tui.Color {
	switch c := c.(type) {
	case nil, lipgloss.NoColor:
		return tui.DefaultColor()
	case lipgloss.Color:
		return colorString(string(c))
	case lipgloss.ANSIColor:
		return colorIndex(int(c))
	case lipgloss.AdaptiveColor:
		return colorString(c.Dark)
	case lipgloss.CompleteColor:
		return colorString(c.TrueColor)
	case lipgloss.CompleteAdaptiveColor:
		return colorString(c.Dark.TrueColor)
	}
	r, g, b, _ := c.RGBA()
	return tui.RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// colorString parses the string forms lipgloss accepts: "#RRGGBB" hex
// or a decimal ANSI index.
func colorString(s string) tui.Color {
	s = strings.TrimSpace(s)
	if s == "" {
		return tui.DefaultColor()
	}
	if strings.HasPrefix(s, "#") {
		if c, err := tui.Hex(s); err == nil {
			return c
		}
		return tui.DefaultColor()
	}
	if n, err := strconv.Atoi(s); err == nil {
		return colorIndex(n)
	}
	return tui.DefaultColor()
}

func colorIndex(n int) tui.Color {
	switch {
	case n < 0 || n > 255:
		return tui.DefaultColor()
	case n < 16:
		return tui.BasicColor(uint8(n))
	}
	return tui.PaletteColor(uint8(n))
}
