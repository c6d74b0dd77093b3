package tui

import (
	"fmt"
	"strconv"
)

// Msg is anything delivered to a program's Update function. Input events
// produced by the parser and runtime are Msgs, and so is any value an
// application command sends.
type Msg interface{}

// Event is an input event produced by the parser or the runtime.
type Event interface {
	Msg
	isEvent()
}

// KeyEvent is a key press.
type KeyEvent struct {
	Key  Key
	Rune rune // set when Key == KeyRune
	Mod  Modifier
	Raw  []byte
}

// MouseButton identifies the button involved in a mouse event.
type MouseButton uint8

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseMiddle:
		return "middle"
	case MouseRight:
		return "right"
	case MouseWheelUp:
		return "wheelup"
	case MouseWheelDown:
		return "wheeldown"
	}
	return "none"
}

// MouseAction is what the mouse did.
type MouseAction uint8

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
)

func (a MouseAction) String() string {
	switch a {
	case MouseRelease:
		return "release"
	case MouseMotion:
		return "motion"
	}
	return "press"
}

// MouseEvent is a mouse report. X and Y are 0-based cell coordinates.
type MouseEvent struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
	Mod    Modifier
}

// PasteEvent carries bracketed-paste text verbatim.
type PasteEvent struct {
	Text string
}

// FocusEvent reports the terminal window gaining or losing focus.
type FocusEvent struct {
	Focused bool
}

// UnknownEvent carries input the parser could not classify.
type UnknownEvent struct {
	Raw []byte
}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width, Height int
}

// QuitEvent stops the program's main loop.
type QuitEvent struct{}

func (KeyEvent) isEvent()     {}
func (MouseEvent) isEvent()   {}
func (PasteEvent) isEvent()   {}
func (FocusEvent) isEvent()   {}
func (UnknownEvent) isEvent() {}
func (ResizeEvent) isEvent()  {}
func (QuitEvent) isEvent()    {}

// String renders the key the way bindings are usually written:
// "a", "ctrl+c", "alt+enter", "shift+up", "space".
func (k KeyEvent) String() string {
	if k.Key == KeyRune {
		if k.Rune == ' ' {
			return k.Mod.String() + "space"
		}
		return k.Mod.String() + string(k.Rune)
	}
	return k.Mod.String() + k.Key.String()
}

// Is reports whether the event is the given key with exactly mods held.
func (k KeyEvent) Is(key Key, mods Modifier) bool {
	return k.Key == key && k.Mod == mods
}

// IsRune reports whether the event is the printable rune r with no
// modifiers other than shift.
func (k KeyEvent) IsRune(r rune) bool {
	return k.Key == KeyRune && k.Rune == r && k.Mod&^ModShift == 0
}

func (m MouseEvent) String() string {
	return fmt.Sprintf("%s%s %s (%d,%d)", m.Mod, m.Button, m.Action, m.X, m.Y)
}

func (u UnknownEvent) String() string {
	return "unknown " + strconv.Quote(string(u.Raw))
}
