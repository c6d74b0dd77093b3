package tui

import (
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Theme provides a set of styles for consistent UI appearance. The five
// fixed roles cover most screens; Styles holds any extra named ones.
type Theme struct {
	Base   Style // default text style
	Muted  Style // de-emphasized text
	Accent Style // highlighted/important text
	Error  Style // error messages
	Border Style // border/divider style

	Styles map[string]Style
}

// ThemeDark is a dark theme with light text on dark background.
var ThemeDark = Theme{
	Base:   Style{FG: White},
	Muted:  Style{FG: BrightBlack},
	Accent: Style{FG: BrightCyan},
	Error:  Style{FG: BrightRed},
	Border: Style{FG: BrightBlack},
}

// ThemeLight is a light theme with dark text on light background.
var ThemeLight = Theme{
	Base:   Style{FG: Black},
	Muted:  Style{FG: BrightBlack},
	Accent: Style{FG: Blue},
	Error:  Style{FG: Red},
	Border: Style{FG: White},
}

// ThemeMonochrome is a minimal theme using only attributes.
var ThemeMonochrome = Theme{
	Base:   Style{},
	Muted:  Style{Attr: AttrDim},
	Accent: Style{Attr: AttrBold},
	Error:  Style{Attr: AttrBold | AttrUnderline},
	Border: Style{Attr: AttrDim},
}

var builtinThemes = map[string]Theme{
	"dark":       ThemeDark,
	"light":      ThemeLight,
	"monochrome": ThemeMonochrome,
}

// BuiltinTheme returns one of the predefined themes by name.
func BuiltinTheme(name string) (Theme, bool) {
	t, ok := builtinThemes[strings.ToLower(name)]
	return t, ok
}

// Style returns the style for a role or extra name. Unknown names get
// the base style.
func (t Theme) Style(name string) Style {
	switch strings.ToLower(name) {
	case "base":
		return t.Base
	case "muted":
		return t.Muted
	case "accent":
		return t.Accent
	case "error":
		return t.Error
	case "border":
		return t.Border
	}
	if s, ok := t.Styles[name]; ok {
		return s
	}
	return t.Base
}

// styleSpec is a style as written in a theme file.
type styleSpec struct {
	FG            any  `toml:"fg"`
	BG            any  `toml:"bg"`
	Bold          bool `toml:"bold"`
	Dim           bool `toml:"dim"`
	Italic        bool `toml:"italic"`
	Underline     bool `toml:"underline"`
	Blink         bool `toml:"blink"`
	Reverse       bool `toml:"reverse"`
	Strikethrough bool `toml:"strikethrough"`
}

type themeFile struct {
	Extends string               `toml:"extends"`
	Base    *styleSpec           `toml:"base"`
	Muted   *styleSpec           `toml:"muted"`
	Accent  *styleSpec           `toml:"accent"`
	Error   *styleSpec           `toml:"error"`
	Border  *styleSpec           `toml:"border"`
	Styles  map[string]styleSpec `toml:"styles"`
}

// LoadTheme decodes a TOML theme. Roles the file leaves out come from the
// theme named by "extends", or the dark theme.
//
//	extends = "dark"
//
//	[accent]
//	fg = "#ff8800"
//	bold = true
//
//	[styles.status]
//	fg = "bright-white"
//	bg = 236
func LoadTheme(r io.Reader) (Theme, error) {
	var f themeFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return Theme{}, errors.Wrap(err, "decode theme")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Theme{}, errors.Errorf("unknown theme key %q", undecoded[0].String())
	}

	t := ThemeDark
	if f.Extends != "" {
		base, ok := BuiltinTheme(f.Extends)
		if !ok {
			return Theme{}, errors.Errorf("unknown base theme %q", f.Extends)
		}
		t = base
	}

	roles := []struct {
		name string
		spec *styleSpec
		dst  *Style
	}{
		{"base", f.Base, &t.Base},
		{"muted", f.Muted, &t.Muted},
		{"accent", f.Accent, &t.Accent},
		{"error", f.Error, &t.Error},
		{"border", f.Border, &t.Border},
	}
	for _, role := range roles {
		if role.spec == nil {
			continue
		}
		s, err := role.spec.style()
		if err != nil {
			return Theme{}, errors.Wrapf(err, "theme %s", role.name)
		}
		*role.dst = s
	}

	if len(f.Styles) > 0 {
		names := make([]string, 0, len(f.Styles))
		for name := range f.Styles {
			names = append(names, name)
		}
		sort.Strings(names)
		styles := make(map[string]Style, len(f.Styles)+len(t.Styles))
		for k, v := range t.Styles {
			styles[k] = v
		}
		for _, name := range names {
			spec := f.Styles[name]
			s, err := spec.style()
			if err != nil {
				return Theme{}, errors.Wrapf(err, "theme style %s", name)
			}
			styles[name] = s
		}
		t.Styles = styles
	}
	return t, nil
}

// ParseTheme is LoadTheme on a string.
func ParseTheme(s string) (Theme, error) {
	return LoadTheme(strings.NewReader(s))
}

func (s styleSpec) style() (Style, error) {
	fg, err := ParseColor(s.FG)
	if err != nil {
		return Style{}, errors.Wrap(err, "fg")
	}
	bg, err := ParseColor(s.BG)
	if err != nil {
		return Style{}, errors.Wrap(err, "bg")
	}
	st := Style{FG: fg, BG: bg}
	flags := []struct {
		on   bool
		attr Attribute
	}{
		{s.Bold, AttrBold},
		{s.Dim, AttrDim},
		{s.Italic, AttrItalic},
		{s.Underline, AttrUnderline},
		{s.Blink, AttrBlink},
		{s.Reverse, AttrReverse},
		{s.Strikethrough, AttrStrikethrough},
	}
	for _, f := range flags {
		if f.on {
			st.Attr = st.Attr.With(f.attr)
		}
	}
	return st, nil
}

// ParseColor converts a theme value into a Color: nil or "default" is the
// terminal default, "#RRGGBB" or "#RGB" is truecolor, one of the 16 names
// ("red", "bright-red") is a basic color, and an integer 0-255 is a
// palette index.
func ParseColor(v any) (Color, error) {
	switch c := v.(type) {
	case nil:
		return DefaultColor(), nil
	case string:
		if strings.HasPrefix(c, "#") {
			return Hex(c)
		}
		if named, ok := NamedColor(c); ok {
			return named, nil
		}
		return Color{}, errors.Errorf("unknown color %q", c)
	case int64:
		return paletteIndex(int(c))
	case int:
		return paletteIndex(c)
	}
	return Color{}, errors.Errorf("unsupported color value %v (%T)", v, v)
}

func paletteIndex(i int) (Color, error) {
	if i < 0 || i > 255 {
		return Color{}, errors.Errorf("palette index %d out of range", i)
	}
	return PaletteColor(uint8(i)), nil
}
