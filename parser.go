package tui

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// csiMaxLen bounds how far past "ESC [" we look for a final byte before
	// giving up on a sequence as malformed.
	csiMaxLen = 20

	pasteEndMarker = "\x1b[201~"
)

// pasteBegin is returned by decode when a paste start marker is seen.
type pasteBegin struct{}

func (pasteBegin) isEvent() {}

// Parser turns raw terminal input into events. It keeps undecoded bytes
// between calls so sequences split across reads decode the same as if
// they had arrived together. A Parser is not safe for concurrent use;
// give each input stream its own.
type Parser struct {
	pending []byte
	inPaste bool
	paste   []byte
}

// NewParser returns a parser in its initial state.
func NewParser() *Parser {
	return &Parser{}
}

// Reset discards buffered input and leaves paste mode.
func (p *Parser) Reset() {
	p.pending = nil
	p.inPaste = false
	p.paste = nil
}

// Pending reports whether bytes are buffered awaiting more input.
func (p *Parser) Pending() bool {
	return len(p.pending) > 0
}

// InPaste reports whether a bracketed paste is being accumulated.
func (p *Parser) InPaste() bool {
	return p.inPaste
}

// Parse feeds data and returns the events it completes, in order.
func (p *Parser) Parse(data []byte) []Event {
	p.pending = append(p.pending, data...)
	return p.drain(false)
}

// Flush decodes whatever is buffered as if no more input will follow:
// a deferred lone ESC becomes the escape key and truncated sequences
// become UnknownEvents. Input readers call it after the escape timeout.
// An unfinished paste stays buffered.
func (p *Parser) Flush() []Event {
	return p.drain(true)
}

func (p *Parser) drain(final bool) []Event {
	var events []Event
	buf := p.pending
	for len(buf) > 0 {
		if p.inPaste {
			idx := bytes.Index(buf, []byte(pasteEndMarker))
			if idx < 0 {
				keep := partialSuffix(buf, pasteEndMarker)
				p.paste = append(p.paste, buf[:len(buf)-keep]...)
				buf = buf[len(buf)-keep:]
				break
			}
			p.paste = append(p.paste, buf[:idx]...)
			events = append(events, PasteEvent{Text: string(p.paste)})
			p.paste = nil
			p.inPaste = false
			buf = buf[idx+len(pasteEndMarker):]
			continue
		}

		n, ev := decode(buf, final)
		if n == 0 {
			break
		}
		buf = buf[n:]
		if _, ok := ev.(pasteBegin); ok {
			p.inPaste = true
			p.paste = p.paste[:0]
			continue
		}
		events = append(events, ev)
	}
	if len(buf) == 0 {
		p.pending = p.pending[:0]
	} else {
		p.pending = append([]byte(nil), buf...)
	}
	return events
}

// partialSuffix returns the length of the longest suffix of b that is a
// proper prefix of marker.
func partialSuffix(b []byte, marker string) int {
	k := len(marker) - 1
	if k > len(b) {
		k = len(b)
	}
	for ; k > 0; k-- {
		if string(b[len(b)-k:]) == marker[:k] {
			return k
		}
	}
	return 0
}

// decode decodes one event from the front of data and returns the number
// of bytes consumed. Zero means data holds an incomplete sequence; with
// final set it never returns zero for non-empty data.
func decode(data []byte, final bool) (int, Event) {
	b := data[0]
	switch {
	case b == 0x1b:
		return decodeEscape(data, final)
	case b < 0x20 || b == 0x7f:
		ev := controlKey(b)
		ev.Raw = copyRaw(data[:1])
		return 1, ev
	case b < 0x80:
		return 1, KeyEvent{Key: KeyRune, Rune: rune(b), Raw: copyRaw(data[:1])}
	}
	return decodeUTF8(data, final)
}

func copyRaw(b []byte) []byte {
	return append([]byte(nil), b...)
}

func unknown(data []byte, n int) (int, Event) {
	return n, UnknownEvent{Raw: copyRaw(data[:n])}
}

// controlKey maps a C0 control byte or DEL to a key.
func controlKey(b byte) KeyEvent {
	switch b {
	case 0x00:
		return KeyEvent{Key: KeyRune, Rune: ' ', Mod: ModCtrl}
	case 0x08, 0x7f:
		return KeyEvent{Key: KeyBackspace}
	case 0x09:
		return KeyEvent{Key: KeyTab}
	case 0x0a, 0x0d:
		return KeyEvent{Key: KeyEnter}
	case 0x1b:
		return KeyEvent{Key: KeyEscape}
	}
	if b >= 0x1c {
		// ctrl+\ ctrl+] ctrl+^ ctrl+_
		return KeyEvent{Key: KeyRune, Rune: rune(b + 0x40), Mod: ModCtrl}
	}
	return KeyEvent{Key: KeyRune, Rune: rune(b + 0x60), Mod: ModCtrl}
}

// utf8SeqLen returns the sequence length implied by a lead byte, or 0 if
// b cannot start a sequence.
func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	}
	return 0
}

func decodeUTF8(data []byte, final bool) (int, Event) {
	need := utf8SeqLen(data[0])
	if need == 0 {
		return unknown(data, 1)
	}
	have := len(data)
	if have > need {
		have = need
	}
	for i := 1; i < have; i++ {
		if data[i]&0xc0 != 0x80 {
			return unknown(data, 1)
		}
	}
	if have < need {
		if final {
			return unknown(data, have)
		}
		return 0, nil
	}
	r, size := utf8.DecodeRune(data[:need])
	if r == utf8.RuneError && size <= 1 {
		return unknown(data, 1)
	}
	return size, KeyEvent{Key: KeyRune, Rune: r, Raw: copyRaw(data[:size])}
}

func decodeEscape(data []byte, final bool) (int, Event) {
	if len(data) == 1 {
		if final {
			return 1, KeyEvent{Key: KeyEscape, Raw: copyRaw(data[:1])}
		}
		return 0, nil
	}

	switch data[1] {
	case '[':
		if len(data) < 3 {
			if !final {
				return 0, nil
			}
			return 2, KeyEvent{Key: KeyRune, Rune: '[', Mod: ModAlt, Raw: copyRaw(data[:2])}
		}
		return decodeCSI(data, final)
	case 'O':
		if len(data) < 3 {
			if !final {
				return 0, nil
			}
			return 2, KeyEvent{Key: KeyRune, Rune: 'O', Mod: ModAlt, Raw: copyRaw(data[:2])}
		}
		return decodeSS3(data)
	case 0x1b:
		return 2, KeyEvent{Key: KeyEscape, Mod: ModAlt, Raw: copyRaw(data[:2])}
	}

	// alt+key: decode the next byte as a plain key and tag it
	n, ev := decode(data[1:], final)
	if n == 0 {
		return 0, nil
	}
	key, ok := ev.(KeyEvent)
	if !ok {
		// ESC followed by an invalid byte
		return 1, KeyEvent{Key: KeyEscape, Raw: copyRaw(data[:1])}
	}
	key.Mod |= ModAlt
	key.Raw = copyRaw(data[:1+n])
	return 1 + n, key
}

func decodeSS3(data []byte) (int, Event) {
	c := data[2]
	if c < 0x20 || c >= 0x7f {
		return 2, KeyEvent{Key: KeyRune, Rune: 'O', Mod: ModAlt, Raw: copyRaw(data[:2])}
	}
	if key, ok := letterKeys[c]; ok {
		ev := KeyEvent{Key: key, Raw: copyRaw(data[:3])}
		if key == KeyBacktab {
			ev.Mod = ModShift
		}
		return 3, ev
	}
	if c == 'M' {
		return 3, KeyEvent{Key: KeyKPEnter, Raw: copyRaw(data[:3])}
	}
	return unknown(data, 3)
}

// decodeCSI handles "ESC [ ..." with at least one byte after the
// introducer. A zero count means wait for more input.
func decodeCSI(data []byte, final bool) (int, Event) {
	// X10 mouse: ESC [ M Cb Cx Cy, raw bytes
	if data[2] == 'M' {
		if len(data) < 6 {
			if final {
				return unknown(data, len(data))
			}
			return 0, nil
		}
		return 6, x10Mouse(data[3], data[4], data[5])
	}

	limit := 2 + csiMaxLen
	end := -1
	for i := 2; i < len(data) && i < limit; i++ {
		c := data[i]
		if c >= 0x40 && c <= 0x7e {
			end = i
			break
		}
		if c < 0x20 || c > 0x3f {
			// not a parameter or intermediate byte
			return unknown(data, i)
		}
	}
	if end < 0 {
		if len(data) >= limit {
			return unknown(data, limit)
		}
		if final {
			return unknown(data, len(data))
		}
		return 0, nil
	}

	n := end + 1
	params := string(data[2:end])
	term := data[end]
	raw := data[:n]

	if strings.HasPrefix(params, "<") && (term == 'M' || term == 'm') {
		if ev, ok := sgrMouse(params[1:], term == 'm'); ok {
			return n, ev
		}
		return unknown(data, n)
	}

	switch term {
	case '~':
		return n, tildeKey(params, raw)
	case 'u':
		return n, kittyKey(params, raw)
	case 'I', 'O':
		if params == "" {
			return n, FocusEvent{Focused: term == 'I'}
		}
	}

	if key, ok := letterKeys[term]; ok {
		fields := splitParams(params)
		if fields == nil && params != "" {
			return unknown(data, n)
		}
		mod := ModNone
		if len(fields) >= 2 {
			mod = decodeModifier(fields[1])
		}
		if key == KeyBacktab {
			mod |= ModShift
		}
		return n, KeyEvent{Key: key, Mod: mod, Raw: copyRaw(raw)}
	}
	return unknown(data, n)
}

// splitParams parses ";"-separated decimal parameters, ignoring ":"
// sub-parameters. It returns nil if any field is not a number. Empty
// fields read as 1, the CSI default.
func splitParams(params string) []int {
	if params == "" {
		return nil
	}
	parts := strings.Split(params, ";")
	out := make([]int, len(parts))
	for i, part := range parts {
		if j := strings.IndexByte(part, ':'); j >= 0 {
			part = part[:j]
		}
		if part == "" {
			out[i] = 1
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return nil
		}
		out[i] = v
	}
	return out
}

func tildeKey(params string, raw []byte) Event {
	fields := splitParams(params)
	if len(fields) == 0 {
		return UnknownEvent{Raw: copyRaw(raw)}
	}
	switch fields[0] {
	case 200:
		return pasteBegin{}
	case 27:
		// xterm modifyOtherKeys: CSI 27 ; mod ; code ~
		if len(fields) == 3 {
			ev, ok := codepointKey(fields[2], decodeModifier(fields[1]))
			if ok {
				ev.Raw = copyRaw(raw)
				return ev
			}
		}
		return UnknownEvent{Raw: copyRaw(raw)}
	}
	key, ok := tildeKeys[fields[0]]
	if !ok {
		// includes a stray paste end marker outside a paste
		return UnknownEvent{Raw: copyRaw(raw)}
	}
	mod := ModNone
	if len(fields) >= 2 {
		mod = decodeModifier(fields[1])
	}
	return KeyEvent{Key: key, Mod: mod, Raw: copyRaw(raw)}
}

// kittyKey decodes "CSI code[:alts] [; mods[:event] [; text]] u".
func kittyKey(params string, raw []byte) Event {
	fields := splitParams(params)
	if len(fields) == 0 {
		return UnknownEvent{Raw: copyRaw(raw)}
	}
	mod := ModNone
	if len(fields) >= 2 {
		mod = decodeModifier(fields[1])
	}
	ev, ok := codepointKey(fields[0], mod)
	if !ok {
		return UnknownEvent{Raw: copyRaw(raw)}
	}
	ev.Raw = copyRaw(raw)
	return ev
}

// codepointKey maps a key codepoint from the kitty or modifyOtherKeys
// protocols to a key event.
func codepointKey(code int, mod Modifier) (KeyEvent, bool) {
	switch code {
	case 9:
		return KeyEvent{Key: KeyTab, Mod: mod}, true
	case 13:
		return KeyEvent{Key: KeyEnter, Mod: mod}, true
	case 27:
		return KeyEvent{Key: KeyEscape, Mod: mod}, true
	case 8, 127:
		return KeyEvent{Key: KeyBackspace, Mod: mod}, true
	}
	if code >= kittyPrivateBase && code <= kittyPrivateLast {
		key, ok := kittyPrivateKey(code)
		if !ok {
			return KeyEvent{}, false
		}
		return KeyEvent{Key: key, Mod: mod}, true
	}
	if code < 0x20 || code == 0x7f || code > utf8.MaxRune || !utf8.ValidRune(rune(code)) {
		return KeyEvent{}, false
	}
	return KeyEvent{Key: KeyRune, Rune: rune(code), Mod: mod}, true
}

// mouseButton decodes the shared button byte of X10 and SGR reports.
func mouseButton(cb int) (MouseButton, MouseAction, Modifier) {
	var mod Modifier
	if cb&4 != 0 {
		mod |= ModShift
	}
	if cb&8 != 0 {
		mod |= ModAlt
	}
	if cb&16 != 0 {
		mod |= ModCtrl
	}

	low := cb & 3
	if cb&64 != 0 {
		if low == 1 {
			return MouseWheelDown, MousePress, mod
		}
		return MouseWheelUp, MousePress, mod
	}

	action := MousePress
	if cb&32 != 0 {
		action = MouseMotion
	}
	switch low {
	case 0:
		return MouseLeft, action, mod
	case 1:
		return MouseMiddle, action, mod
	case 2:
		return MouseRight, action, mod
	}
	if action == MouseMotion {
		return MouseNone, MouseMotion, mod
	}
	return MouseNone, MouseRelease, mod
}

func x10Mouse(cb, cx, cy byte) MouseEvent {
	button, action, mod := mouseButton(int(cb) - 32)
	return MouseEvent{
		X:      clampMin(int(cx)-33, 0),
		Y:      clampMin(int(cy)-33, 0),
		Button: button,
		Action: action,
		Mod:    mod,
	}
}

func sgrMouse(params string, release bool) (MouseEvent, bool) {
	fields := splitParams(params)
	if len(fields) != 3 {
		return MouseEvent{}, false
	}
	button, action, mod := mouseButton(fields[0])
	if release && button != MouseWheelUp && button != MouseWheelDown {
		action = MouseRelease
	}
	return MouseEvent{
		X:      clampMin(fields[1]-1, 0),
		Y:      clampMin(fields[2]-1, 0),
		Button: button,
		Action: action,
		Mod:    mod,
	}, true
}

func clampMin(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}
