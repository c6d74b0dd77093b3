package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAll(inputs ...string) []Event {
	p := NewParser()
	var events []Event
	for _, in := range inputs {
		events = append(events, p.Parse([]byte(in))...)
	}
	return events
}

func key(k Key, mod Modifier, raw string) KeyEvent {
	return KeyEvent{Key: k, Mod: mod, Raw: []byte(raw)}
}

func runeKey(r rune, mod Modifier, raw string) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r, Mod: mod, Raw: []byte(raw)}
}

func TestParserKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Event
	}{
		{"printable", "q", []Event{runeKey('q', 0, "q")}},
		{"utf8", "中", []Event{runeKey('中', 0, "中")}},
		{"ctrl+c", "\x03", []Event{runeKey('c', ModCtrl, "\x03")}},
		{"ctrl+space", "\x00", []Event{runeKey(' ', ModCtrl, "\x00")}},
		{"ctrl+backslash", "\x1c", []Event{runeKey('\\', ModCtrl, "\x1c")}},
		{"enter", "\r", []Event{key(KeyEnter, 0, "\r")}},
		{"newline", "\n", []Event{key(KeyEnter, 0, "\n")}},
		{"tab", "\t", []Event{key(KeyTab, 0, "\t")}},
		{"backspace del", "\x7f", []Event{key(KeyBackspace, 0, "\x7f")}},
		{"backspace bs", "\x08", []Event{key(KeyBackspace, 0, "\x08")}},
		{"arrow", "\x1b[A", []Event{key(KeyUp, 0, "\x1b[A")}},
		{"ctrl+up", "\x1b[1;5A", []Event{key(KeyUp, ModCtrl, "\x1b[1;5A")}},
		{"shift+alt+right", "\x1b[1;4C", []Event{key(KeyRight, ModShift|ModAlt, "\x1b[1;4C")}},
		{"meta+up", "\x1b[1;9A", []Event{key(KeyUp, ModMeta, "\x1b[1;9A")}},
		{"all modifiers", "\x1b[1;16B", []Event{key(KeyDown, ModShift|ModAlt|ModCtrl|ModMeta, "\x1b[1;16B")}},
		{"home", "\x1b[H", []Event{key(KeyHome, 0, "\x1b[H")}},
		{"end", "\x1b[F", []Event{key(KeyEnd, 0, "\x1b[F")}},
		{"ss3 f1", "\x1bOP", []Event{key(KeyF1, 0, "\x1bOP")}},
		{"ss3 arrow", "\x1bOB", []Event{key(KeyDown, 0, "\x1bOB")}},
		{"f4", "\x1b[S", []Event{key(KeyF4, 0, "\x1b[S")}},
		{"backtab", "\x1b[Z", []Event{key(KeyBacktab, ModShift, "\x1b[Z")}},
		{"delete", "\x1b[3~", []Event{key(KeyDelete, 0, "\x1b[3~")}},
		{"shift+delete", "\x1b[3;2~", []Event{key(KeyDelete, ModShift, "\x1b[3;2~")}},
		{"insert", "\x1b[2~", []Event{key(KeyInsert, 0, "\x1b[2~")}},
		{"pgup", "\x1b[5~", []Event{key(KeyPageUp, 0, "\x1b[5~")}},
		{"pgdown", "\x1b[6~", []Event{key(KeyPageDown, 0, "\x1b[6~")}},
		{"urxvt home", "\x1b[7~", []Event{key(KeyHome, 0, "\x1b[7~")}},
		{"f5", "\x1b[15~", []Event{key(KeyF5, 0, "\x1b[15~")}},
		{"f12", "\x1b[24~", []Event{key(KeyF12, 0, "\x1b[24~")}},
		{"alt+a", "\x1ba", []Event{runeKey('a', ModAlt, "\x1ba")}},
		{"alt+ctrl+c", "\x1b\x03", []Event{runeKey('c', ModAlt|ModCtrl, "\x1b\x03")}},
		{"alt+esc", "\x1b\x1b", []Event{key(KeyEscape, ModAlt, "\x1b\x1b")}},
		{"kitty rune", "\x1b[97;5u", []Event{runeKey('a', ModCtrl, "\x1b[97;5u")}},
		{"kitty enter", "\x1b[13u", []Event{key(KeyEnter, 0, "\x1b[13u")}},
		{"kitty escape", "\x1b[27u", []Event{key(KeyEscape, 0, "\x1b[27u")}},
		{"kitty backspace", "\x1b[127;3u", []Event{key(KeyBackspace, ModAlt, "\x1b[127;3u")}},
		{"kitty caps lock", "\x1b[57358u", []Event{key(KeyCapsLock, 0, "\x1b[57358u")}},
		{"kitty f13", "\x1b[57376u", []Event{key(KeyF13, 0, "\x1b[57376u")}},
		{"kitty keypad 0", "\x1b[57399u", []Event{key(KeyKP0, 0, "\x1b[57399u")}},
		{"kitty left shift", "\x1b[57441;2u", []Event{key(KeyLeftShift, ModShift, "\x1b[57441;2u")}},
		{"kitty event subparam", "\x1b[97;5:1u", []Event{runeKey('a', ModCtrl, "\x1b[97;5:1u")}},
		{"modify other keys", "\x1b[27;5;13~", []Event{key(KeyEnter, ModCtrl, "\x1b[27;5;13~")}},
		{"focus in", "\x1b[I", []Event{FocusEvent{Focused: true}}},
		{"focus out", "\x1b[O", []Event{FocusEvent{Focused: false}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAll(tt.in))
		})
	}
}

func TestParserMouse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want MouseEvent
	}{
		{"sgr press", "\x1b[<0;10;5M", MouseEvent{X: 9, Y: 4, Button: MouseLeft, Action: MousePress}},
		{"sgr release", "\x1b[<0;10;5m", MouseEvent{X: 9, Y: 4, Button: MouseLeft, Action: MouseRelease}},
		{"sgr right", "\x1b[<2;1;1M", MouseEvent{Button: MouseRight, Action: MousePress}},
		{"sgr motion", "\x1b[<32;3;4M", MouseEvent{X: 2, Y: 3, Button: MouseLeft, Action: MouseMotion}},
		{"sgr wheel up", "\x1b[<64;1;1M", MouseEvent{Button: MouseWheelUp, Action: MousePress}},
		{"sgr wheel down", "\x1b[<65;1;1M", MouseEvent{Button: MouseWheelDown, Action: MousePress}},
		{"sgr ctrl click", "\x1b[<16;1;1M", MouseEvent{Button: MouseLeft, Action: MousePress, Mod: ModCtrl}},
		{"x10 press", "\x1b[M" + string(rune(32)) + string(rune(33+5)) + string(rune(33+2)),
			MouseEvent{X: 5, Y: 2, Button: MouseLeft, Action: MousePress}},
		{"x10 release", "\x1b[M" + string(rune(32+3)) + "!!", MouseEvent{Button: MouseNone, Action: MouseRelease}},
		{"x10 clamps", "\x1b[M" + string(rune(32+1)) + "  ", MouseEvent{Button: MouseMiddle, Action: MousePress}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []Event{tt.want}, parseAll(tt.in))
		})
	}
}

func TestParserEscapeDeferral(t *testing.T) {
	t.Run("lone escape waits", func(t *testing.T) {
		p := NewParser()
		assert.Empty(t, p.Parse([]byte("\x1b")))
		assert.True(t, p.Pending())
		assert.Equal(t, []Event{key(KeyEscape, 0, "\x1b")}, p.Flush())
		assert.False(t, p.Pending())
	})

	t.Run("escape completes later", func(t *testing.T) {
		p := NewParser()
		assert.Empty(t, p.Parse([]byte("\x1b")))
		assert.Equal(t, []Event{key(KeyUp, 0, "\x1b[A")}, p.Parse([]byte("[A")))
	})

	t.Run("flush of bare csi introducer", func(t *testing.T) {
		p := NewParser()
		assert.Empty(t, p.Parse([]byte("\x1b[")))
		assert.Equal(t, []Event{runeKey('[', ModAlt, "\x1b[")}, p.Flush())
	})

	t.Run("flush with nothing pending", func(t *testing.T) {
		assert.Empty(t, NewParser().Flush())
	})

	t.Run("partial utf8 waits", func(t *testing.T) {
		p := NewParser()
		b := []byte("中")
		assert.Empty(t, p.Parse(b[:1]))
		assert.Empty(t, p.Parse(b[1:2]))
		assert.Equal(t, []Event{runeKey('中', 0, "中")}, p.Parse(b[2:]))
	})

	t.Run("reset drops pending", func(t *testing.T) {
		p := NewParser()
		p.Parse([]byte("\x1b[1;"))
		p.Reset()
		assert.False(t, p.Pending())
		assert.Equal(t, []Event{runeKey('x', 0, "x")}, p.Parse([]byte("x")))
	})
}

func TestParserMalformed(t *testing.T) {
	t.Run("invalid utf8", func(t *testing.T) {
		assert.Equal(t, []Event{UnknownEvent{Raw: []byte{0xff}}}, parseAll("\xff"))
	})

	t.Run("bad continuation", func(t *testing.T) {
		got := parseAll("\xe4a")
		require.Len(t, got, 2)
		assert.Equal(t, UnknownEvent{Raw: []byte{0xe4}}, got[0])
		assert.Equal(t, runeKey('a', 0, "a"), got[1])
	})

	t.Run("overlong csi", func(t *testing.T) {
		in := "\x1b[" + strings.Repeat("1", 25)
		got := parseAll(in)
		require.NotEmpty(t, got)
		u, ok := got[0].(UnknownEvent)
		require.True(t, ok, "first event is %T", got[0])
		assert.Len(t, u.Raw, 2+csiMaxLen)
		assert.Len(t, got, 1+25-csiMaxLen)
	})

	t.Run("unknown final byte", func(t *testing.T) {
		assert.Equal(t, []Event{UnknownEvent{Raw: []byte("\x1b[5x")}}, parseAll("\x1b[5x"))
	})

	t.Run("unknown tilde code", func(t *testing.T) {
		assert.Equal(t, []Event{UnknownEvent{Raw: []byte("\x1b[99~")}}, parseAll("\x1b[99~"))
	})

	t.Run("stray paste end", func(t *testing.T) {
		assert.Equal(t, []Event{UnknownEvent{Raw: []byte("\x1b[201~")}}, parseAll("\x1b[201~"))
	})

	t.Run("always progresses", func(t *testing.T) {
		inputs := []string{"\x1b[<1;2", "\x1b[M!", "\xf0\x9f", "\x1bO", "\x1b[", "\x1b"}
		for _, in := range inputs {
			p := NewParser()
			p.Parse([]byte(in))
			p.Flush()
			assert.False(t, p.Pending(), "input %q left bytes after flush", in)
		}
	})
}

func TestParserPaste(t *testing.T) {
	t.Run("whole", func(t *testing.T) {
		got := parseAll("\x1b[200~hello\x1b[201~")
		assert.Equal(t, []Event{PasteEvent{Text: "hello"}}, got)
	})

	t.Run("escape sequences inside are literal", func(t *testing.T) {
		got := parseAll("\x1b[200~a\x1b[Ab\r\x1b[201~x")
		assert.Equal(t, []Event{PasteEvent{Text: "a\x1b[Ab\r"}, runeKey('x', 0, "x")}, got)
	})

	t.Run("split end marker", func(t *testing.T) {
		p := NewParser()
		assert.Empty(t, p.Parse([]byte("\x1b[200~hello\x1b[2")))
		assert.True(t, p.InPaste())
		assert.Equal(t, []Event{PasteEvent{Text: "hello"}}, p.Parse([]byte("01~")))
		assert.False(t, p.InPaste())
	})

	t.Run("near miss of end marker", func(t *testing.T) {
		got := parseAll("\x1b[200~a\x1b[20", "0~b\x1b[201~")
		assert.Equal(t, []Event{PasteEvent{Text: "a\x1b[200~b"}}, got)
	})

	t.Run("flush keeps unfinished paste", func(t *testing.T) {
		p := NewParser()
		p.Parse([]byte("\x1b[200~abc"))
		assert.Empty(t, p.Flush())
		assert.True(t, p.InPaste())
		assert.Equal(t, []Event{PasteEvent{Text: "abcd"}}, p.Parse([]byte("d\x1b[201~")))
	})

	t.Run("empty paste", func(t *testing.T) {
		assert.Equal(t, []Event{PasteEvent{Text: ""}}, parseAll("\x1b[200~\x1b[201~"))
	})
}

// Every way of splitting the input must decode to the same events as
// feeding it at once.
func TestParserChunkingInvariance(t *testing.T) {
	input := "ab\x1b[1;5A中\x1b[<0;10;5M\x1b[200~pa\x1b[20st\x1b[201~\x1bOP\x1b[3~" +
		"\x1b[I\x1b[97;5u\x1bx\x03\x1b[M !!é\x1b\x1b\x1b[15;2~\r"
	data := []byte(input)
	want := parseAll(input)
	require.NotEmpty(t, want)

	for i := 0; i <= len(data); i++ {
		p := NewParser()
		got := p.Parse(data[:i])
		got = append(got, p.Parse(data[i:])...)
		assert.Equal(t, want, got, "split at %d", i)
		assert.False(t, p.Pending(), "split at %d", i)
	}

	t.Run("byte at a time", func(t *testing.T) {
		p := NewParser()
		var got []Event
		for i := range data {
			got = append(got, p.Parse(data[i:i+1])...)
		}
		assert.Equal(t, want, got)
	})

	t.Run("three way", func(t *testing.T) {
		for i := 0; i <= len(data); i += 3 {
			for j := i; j <= len(data); j += 5 {
				p := NewParser()
				got := p.Parse(data[:i])
				got = append(got, p.Parse(data[i:j])...)
				got = append(got, p.Parse(data[j:])...)
				assert.Equal(t, want, got, "split at %d,%d", i, j)
			}
		}
	})
}

func TestKeyEventString(t *testing.T) {
	tests := []struct {
		ev   KeyEvent
		want string
	}{
		{KeyEvent{Key: KeyRune, Rune: 'a'}, "a"},
		{KeyEvent{Key: KeyRune, Rune: 'c', Mod: ModCtrl}, "ctrl+c"},
		{KeyEvent{Key: KeyRune, Rune: ' '}, "space"},
		{KeyEvent{Key: KeyUp, Mod: ModCtrl | ModAlt}, "ctrl+alt+up"},
		{KeyEvent{Key: KeyTab, Mod: ModShift}, "shift+tab"},
		{KeyEvent{Key: KeyF5}, "f5"},
		{KeyEvent{Key: KeyKP7}, "kp7"},
		{KeyEvent{Key: KeyEscape}, "esc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ev.String())
	}

	assert.True(t, KeyEvent{Key: KeyRune, Rune: 'Q', Mod: ModShift}.IsRune('Q'))
	assert.False(t, KeyEvent{Key: KeyRune, Rune: 'q', Mod: ModCtrl}.IsRune('q'))
	assert.True(t, KeyEvent{Key: KeyUp, Mod: ModCtrl}.Is(KeyUp, ModCtrl))
	assert.False(t, KeyEvent{Key: KeyUp, Mod: ModCtrl | ModShift}.Is(KeyUp, ModCtrl))
}
