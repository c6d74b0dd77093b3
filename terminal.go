package tui

import (
	"io"
	"os"

	"github.com/muesli/cancelreader"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Terminal is the byte-level device a program runs on.
type Terminal interface {
	io.Reader
	io.Writer
	Size() (Size, error)
	EnterRaw() error
	ExitRaw() error
	// CancelRead unblocks a pending Read, which then returns io.EOF.
	CancelRead()
}

// ResizeNotifier is implemented by terminals that can signal size changes.
// The returned channel fires after a change; stop releases it. A nil
// channel means notifications are unavailable and the size is polled.
type ResizeNotifier interface {
	NotifyResize() (ch <-chan struct{}, stop func())
}

// ProcessTerminal is the controlling terminal of this process.
type ProcessTerminal struct {
	in     *os.File
	out    *os.File
	reader cancelreader.CancelReader
	state  *term.State
}

// NewProcessTerminal opens the process's stdin and stdout as a terminal.
func NewProcessTerminal() (*ProcessTerminal, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, ErrNotTerminal
	}
	r, err := cancelreader.NewReader(os.Stdin)
	if err != nil {
		return nil, errors.Wrap(err, "stdin reader")
	}
	return &ProcessTerminal{in: os.Stdin, out: os.Stdout, reader: r}, nil
}

func (t *ProcessTerminal) Read(p []byte) (int, error) {
	n, err := t.reader.Read(p)
	if errors.Is(err, cancelreader.ErrCanceled) {
		return n, io.EOF
	}
	return n, err
}

func (t *ProcessTerminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Size queries the terminal dimensions.
func (t *ProcessTerminal) Size() (Size, error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return Size{}, errors.Wrap(err, "terminal size")
	}
	return Size{Width: w, Height: h}, nil
}

// EnterRaw switches stdin to raw mode. Calling it twice is a no-op.
func (t *ProcessTerminal) EnterRaw() error {
	if t.state != nil {
		return nil
	}
	st, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return errors.Wrap(err, "enter raw mode")
	}
	t.state = st
	return nil
}

// ExitRaw restores the mode saved by EnterRaw.
func (t *ProcessTerminal) ExitRaw() error {
	if t.state == nil {
		return nil
	}
	st := t.state
	t.state = nil
	return errors.Wrap(term.Restore(int(t.in.Fd()), st), "restore terminal")
}

func (t *ProcessTerminal) CancelRead() {
	t.reader.Cancel()
}

// Close releases the input reader.
func (t *ProcessTerminal) Close() error {
	return t.reader.Close()
}

// Terminal mode switches. Each pair is sent on setup and undone in
// reverse order on teardown.
const (
	seqAltScreenOn   = "\x1b[?1049h"
	seqAltScreenOff  = "\x1b[?1049l"
	seqHideCursor    = "\x1b[?25l"
	seqShowCursor    = "\x1b[?25h"
	seqMouseOn       = "\x1b[?1000h\x1b[?1002h\x1b[?1006h"
	seqMouseOff      = "\x1b[?1006l\x1b[?1002l\x1b[?1000l"
	seqPasteOn       = "\x1b[?2004h"
	seqPasteOff      = "\x1b[?2004l"
	seqFocusOn       = "\x1b[?1004h"
	seqFocusOff      = "\x1b[?1004l"
	seqKittyKeysOn   = "\x1b[>1u"
	seqKittyKeysOff  = "\x1b[<u"
	seqResetStyle    = "\x1b[0m"
	seqClearScreen   = "\x1b[2J\x1b[H"
	seqCursorDefault = "\x1b[0 q"
)

type modeSwitch struct {
	name    string
	on, off string
}

// modeSwitches returns the switches opts asks for in setup order.
func modeSwitches(opts Options) []modeSwitch {
	var m []modeSwitch
	if opts.AltScreen {
		m = append(m, modeSwitch{"alt-screen", seqAltScreenOn + seqClearScreen, seqAltScreenOff})
	}
	m = append(m, modeSwitch{"cursor", seqHideCursor, seqResetStyle + seqCursorDefault + seqShowCursor})
	if opts.Mouse {
		m = append(m, modeSwitch{"mouse", seqMouseOn, seqMouseOff})
	}
	if opts.BracketedPaste {
		m = append(m, modeSwitch{"bracketed-paste", seqPasteOn, seqPasteOff})
	}
	if opts.ReportFocus {
		m = append(m, modeSwitch{"focus", seqFocusOn, seqFocusOff})
	}
	if opts.KittyKeyboard {
		m = append(m, modeSwitch{"kitty-keyboard", seqKittyKeysOn, seqKittyKeysOff})
	}
	return m
}
