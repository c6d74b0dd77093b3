package teacompat

import (
	tea "github.com/charmbracelet/bubbletea"

	tui "github.com/kungfusheep/tuicore"
)

type modKey struct {
	key tui.Key
	mod tui.Modifier
}

// namedKeys holds keys whose modified forms have their own bubbletea
// type. Anything else maps through plainKeys with Alt carried on the key.
var namedKeys = map[modKey]tea.KeyType{
	{tui.KeyUp, tui.ModShift}:                  tea.KeyShiftUp,
	{tui.KeyDown, tui.ModShift}:                tea.KeyShiftDown,
	{tui.KeyLeft, tui.ModShift}:                tea.KeyShiftLeft,
	{tui.KeyRight, tui.ModShift}:               tea.KeyShiftRight,
	{tui.KeyUp, tui.ModCtrl}:                   tea.KeyCtrlUp,
	{tui.KeyDown, tui.ModCtrl}:                 tea.KeyCtrlDown,
	{tui.KeyLeft, tui.ModCtrl}:                 tea.KeyCtrlLeft,
	{tui.KeyRight, tui.ModCtrl}:                tea.KeyCtrlRight,
	{tui.KeyUp, tui.ModCtrl | tui.ModShift}:    tea.KeyCtrlShiftUp,
	{tui.KeyDown, tui.ModCtrl | tui.ModShift}:  tea.KeyCtrlShiftDown,
	{tui.KeyLeft, tui.ModCtrl | tui.ModShift}:  tea.KeyCtrlShiftLeft,
	{tui.KeyRight, tui.ModCtrl | tui.ModShift}: tea.KeyCtrlShiftRight,
	{tui.KeyHome, tui.ModShift}:                tea.KeyShiftHome,
	{tui.KeyEnd, tui.ModShift}:                 tea.KeyShiftEnd,
	{tui.KeyHome, tui.ModCtrl}:                 tea.KeyCtrlHome,
	{tui.KeyEnd, tui.ModCtrl}:                  tea.KeyCtrlEnd,
	{tui.KeyPageUp, tui.ModCtrl}:               tea.KeyCtrlPgUp,
	{tui.KeyPageDown, tui.ModCtrl}:             tea.KeyCtrlPgDown,
	{tui.KeyTab, tui.ModShift}:                 tea.KeyShiftTab,
}

var plainKeys = map[tui.Key]tea.KeyType{
	tui.KeyEscape:    tea.KeyEscape,
	tui.KeyEnter:     tea.KeyEnter,
	tui.KeyTab:       tea.KeyTab,
	tui.KeyBacktab:   tea.KeyShiftTab,
	tui.KeyBackspace: tea.KeyBackspace,
	tui.KeyDelete:    tea.KeyDelete,
	tui.KeyInsert:    tea.KeyInsert,
	tui.KeyUp:        tea.KeyUp,
	tui.KeyDown:      tea.KeyDown,
	tui.KeyLeft:      tea.KeyLeft,
	tui.KeyRight:     tea.KeyRight,
	tui.KeyHome:      tea.KeyHome,
	tui.KeyEnd:       tea.KeyEnd,
	tui.KeyPageUp:    tea.KeyPgUp,
	tui.KeyPageDown:  tea.KeyPgDown,
	tui.KeyF1:        tea.KeyF1,
	tui.KeyF2:        tea.KeyF2,
	tui.KeyF3:        tea.KeyF3,
	tui.KeyF4:        tea.KeyF4,
	tui.KeyF5:        tea.KeyF5,
	tui.KeyF6:        tea.KeyF6,
	tui.KeyF7:        tea.KeyF7,
	tui.KeyF8:        tea.KeyF8,
	tui.KeyF9:        tea.KeyF9,
	tui.KeyF10:       tea.KeyF10,
	tui.KeyF11:       tea.KeyF11,
	tui.KeyF12:       tea.KeyF12,
	tui.KeyF13:       tea.KeyF13,
	tui.KeyF14:       tea.KeyF14,
	tui.KeyF15:       tea.KeyF15,
	tui.KeyF16:       tea.KeyF16,
	tui.KeyF17:       tea.KeyF17,
	tui.KeyF18:       tea.KeyF18,
	tui.KeyF19:       tea.KeyF19,
	tui.KeyF20:       tea.KeyF20,
}

// Key converts a key event to a bubbletea key. Keys bubbletea cannot
// represent, such as kitty-only keys, report false.
func Key(ev tui.KeyEvent) (tea.Key, bool) {
	alt := ev.Mod.Has(tui.ModAlt)
	mod := ev.Mod &^ (tui.ModAlt | tui.ModMeta)

	if ev.Key == tui.KeyRune {
		switch {
		case mod.Has(tui.ModCtrl) && ev.Rune >= 'a' && ev.Rune <= 'z':
			return tea.Key{Type: tea.KeyCtrlA + tea.KeyType(ev.Rune-'a'), Alt: alt}, true
		case mod.Has(tui.ModCtrl) && ev.Rune == ' ':
			return tea.Key{Type: tea.KeyCtrlAt, Alt: alt}, true
		case mod.Has(tui.ModCtrl):
			if t, ok := ctrlPunct[ev.Rune]; ok {
				return tea.Key{Type: t, Alt: alt}, true
			}
			return tea.Key{}, false
		case ev.Rune == ' ':
			return tea.Key{Type: tea.KeySpace, Runes: []rune{' '}, Alt: alt}, true
		}
		return tea.Key{Type: tea.KeyRunes, Runes: []rune{ev.Rune}, Alt: alt}, true
	}

	if t, ok := namedKeys[modKey{ev.Key, mod}]; ok {
		return tea.Key{Type: t, Alt: alt}, true
	}
	if t, ok := plainKeys[ev.Key]; ok {
		return tea.Key{Type: t, Alt: alt}, true
	}
	return tea.Key{}, false
}

var ctrlPunct = map[rune]tea.KeyType{
	'[':  tea.KeyEscape,
	'\\': tea.KeyCtrlBackslash,
	']':  tea.KeyCtrlCloseBracket,
	'^':  tea.KeyCtrlCaret,
	'_':  tea.KeyCtrlUnderscore,
	'@':  tea.KeyCtrlAt,
}

var mouseButtons = map[tui.MouseButton]tea.MouseButton{
	tui.MouseNone:      tea.MouseButtonNone,
	tui.MouseLeft:      tea.MouseButtonLeft,
	tui.MouseMiddle:    tea.MouseButtonMiddle,
	tui.MouseRight:     tea.MouseButtonRight,
	tui.MouseWheelUp:   tea.MouseButtonWheelUp,
	tui.MouseWheelDown: tea.MouseButtonWheelDown,
}

var mouseActions = map[tui.MouseAction]tea.MouseAction{
	tui.MousePress:   tea.MouseActionPress,
	tui.MouseRelease: tea.MouseActionRelease,
	tui.MouseMotion:  tea.MouseActionMotion,
}

// Mouse converts a mouse event to a bubbletea mouse message.
func Mouse(ev tui.MouseEvent) tea.MouseMsg {
	return tea.MouseMsg{
		X:      ev.X,
		Y:      ev.Y,
		Shift:  ev.Mod.Has(tui.ModShift),
		Alt:    ev.Mod.Has(tui.ModAlt),
		Ctrl:   ev.Mod.Has(tui.ModCtrl),
		Action: mouseActions[ev.Action],
		Button: mouseButtons[ev.Button],
	}
}
