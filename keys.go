package tui

import "strconv"

// Key identifies a non-printable key, or KeyRune for printable input.
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // printable character, see KeyEvent.Rune

	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // shift+tab as reported by CSI Z
	KeyBackspace
	KeyDelete
	KeyInsert

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyBegin // keypad 5 with numlock off

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24
	KeyF25
	KeyF26
	KeyF27
	KeyF28
	KeyF29
	KeyF30
	KeyF31
	KeyF32
	KeyF33
	KeyF34
	KeyF35

	// Locks and system keys, reported only by the kitty protocol.
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPrintScreen
	KeyPause
	KeyMenu

	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPDecimal
	KeyKPDivide
	KeyKPMultiply
	KeyKPSubtract
	KeyKPAdd
	KeyKPEnter
	KeyKPEqual
	KeyKPSeparator
	KeyKPLeft
	KeyKPRight
	KeyKPUp
	KeyKPDown
	KeyKPPageUp
	KeyKPPageDown
	KeyKPHome
	KeyKPEnd
	KeyKPInsert
	KeyKPDelete
	KeyKPBegin

	KeyMediaPlay
	KeyMediaPause
	KeyMediaPlayPause
	KeyMediaReverse
	KeyMediaStop
	KeyMediaFastForward
	KeyMediaRewind
	KeyMediaNext
	KeyMediaPrev
	KeyMediaRecord
	KeyVolumeDown
	KeyVolumeUp
	KeyVolumeMute

	KeyLeftShift
	KeyLeftCtrl
	KeyLeftAlt
	KeyLeftSuper
	KeyLeftHyper
	KeyLeftMeta
	KeyRightShift
	KeyRightCtrl
	KeyRightAlt
	KeyRightSuper
	KeyRightHyper
	KeyRightMeta
	KeyISOLevel3Shift
	KeyISOLevel5Shift
)

// Modifier is a set of held modifier keys. The bit layout matches the
// xterm/kitty modifier parameter after subtracting one.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
	ModMeta  Modifier = 1 << 3
)

// Has reports whether all of m2 are held.
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2
}

// String renders held modifiers as "ctrl+alt+shift+meta+" in a fixed order.
func (m Modifier) String() string {
	s := ""
	if m.Has(ModCtrl) {
		s += "ctrl+"
	}
	if m.Has(ModAlt) {
		s += "alt+"
	}
	if m.Has(ModShift) {
		s += "shift+"
	}
	if m.Has(ModMeta) {
		s += "meta+"
	}
	return s
}

// decodeModifier converts a 1-based CSI modifier parameter into a set.
func decodeModifier(param int) Modifier {
	if param <= 1 {
		return ModNone
	}
	return Modifier(param-1) & (ModShift | ModAlt | ModCtrl | ModMeta)
}

var keyNames = map[Key]string{
	KeyEscape:    "esc",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyBegin:     "begin",

	KeyCapsLock:    "capslock",
	KeyScrollLock:  "scrolllock",
	KeyNumLock:     "numlock",
	KeyPrintScreen: "printscreen",
	KeyPause:       "pause",
	KeyMenu:        "menu",

	KeyKPDecimal:   "kp.",
	KeyKPDivide:    "kp/",
	KeyKPMultiply:  "kp*",
	KeyKPSubtract:  "kp-",
	KeyKPAdd:       "kp+",
	KeyKPEnter:     "kpenter",
	KeyKPEqual:     "kp=",
	KeyKPSeparator: "kpsep",
	KeyKPLeft:      "kpleft",
	KeyKPRight:     "kpright",
	KeyKPUp:        "kpup",
	KeyKPDown:      "kpdown",
	KeyKPPageUp:    "kppgup",
	KeyKPPageDown:  "kppgdown",
	KeyKPHome:      "kphome",
	KeyKPEnd:       "kpend",
	KeyKPInsert:    "kpinsert",
	KeyKPDelete:    "kpdelete",
	KeyKPBegin:     "kpbegin",

	KeyMediaPlay:        "play",
	KeyMediaPause:       "mediapause",
	KeyMediaPlayPause:   "playpause",
	KeyMediaReverse:     "reverse",
	KeyMediaStop:        "stop",
	KeyMediaFastForward: "fastforward",
	KeyMediaRewind:      "rewind",
	KeyMediaNext:        "next",
	KeyMediaPrev:        "prev",
	KeyMediaRecord:      "record",
	KeyVolumeDown:       "volumedown",
	KeyVolumeUp:         "volumeup",
	KeyVolumeMute:       "mute",

	KeyLeftShift:      "leftshift",
	KeyLeftCtrl:       "leftctrl",
	KeyLeftAlt:        "leftalt",
	KeyLeftSuper:      "leftsuper",
	KeyLeftHyper:      "lefthyper",
	KeyLeftMeta:       "leftmeta",
	KeyRightShift:     "rightshift",
	KeyRightCtrl:      "rightctrl",
	KeyRightAlt:       "rightalt",
	KeyRightSuper:     "rightsuper",
	KeyRightHyper:     "righthyper",
	KeyRightMeta:      "rightmeta",
	KeyISOLevel3Shift: "isolevel3shift",
	KeyISOLevel5Shift: "isolevel5shift",
}

// String returns the lower-case key name ("up", "f5", "kp7").
func (k Key) String() string {
	switch {
	case k == KeyNone:
		return "none"
	case k == KeyRune:
		return "rune"
	case k >= KeyF1 && k <= KeyF35:
		return "f" + strconv.Itoa(int(k-KeyF1)+1)
	case k >= KeyKP0 && k <= KeyKP9:
		return "kp" + strconv.Itoa(int(k-KeyKP0))
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "key(" + strconv.Itoa(int(k)) + ")"
}

// Kitty keyboard protocol functional keys live in the Unicode private use
// area starting at kittyPrivateBase.
const (
	kittyPrivateBase = 57344
	kittyPrivateLast = 57471
)

// kittyPrivateKey maps a private-use codepoint to a named key.
func kittyPrivateKey(code int) (Key, bool) {
	switch {
	case code >= 57358 && code <= 57363:
		return KeyCapsLock + Key(code-57358), true
	case code >= 57364 && code <= 57398:
		// F1 through F35; terminals only use this form from F13 up
		return KeyF1 + Key(code-57364), true
	case code >= 57399 && code <= 57427:
		return KeyKP0 + Key(code-57399), true
	case code >= 57428 && code <= 57440:
		return KeyMediaPlay + Key(code-57428), true
	case code >= 57441 && code <= 57454:
		return KeyLeftShift + Key(code-57441), true
	}
	return KeyNone, false
}

// tildeKeys maps the numeric parameter of "CSI n ~" to a key.
var tildeKeys = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
	25: KeyF13,
	26: KeyF14,
	28: KeyF15,
	29: KeyF16,
	31: KeyF17,
	32: KeyF18,
	33: KeyF19,
	34: KeyF20,
}

// letterKeys maps the final byte of "CSI [1;mod] X" and "SS3 X" to a key.
var letterKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'E': KeyBegin,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
	'Z': KeyBacktab,
}
