package tui

import (
	"io"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
)

// Screen manages the terminal display with double buffering and diff-based
// updates. The front buffer mirrors what the terminal shows; drawing goes
// to the back buffer, and Swap sends only the difference.
type Screen struct {
	front *Buffer // what's currently displayed
	back  *Buffer // what we're drawing to
	out   io.Writer

	profile termenv.Profile

	cursorX, cursorY int
	cursorVisible    bool
	cursorShape      CursorShape
	cursorShown      bool // visibility last sent to the terminal

	// next swap redraws everything instead of diffing
	fullRedraw bool

	buf []byte // reused between frames
}

// NewScreen creates a screen of the given size writing to w. The first
// Swap performs a full redraw.
func NewScreen(w io.Writer, width, height int, profile termenv.Profile) *Screen {
	return &Screen{
		front:      NewBuffer(width, height),
		back:       NewBuffer(width, height),
		out:        w,
		profile:    profile,
		fullRedraw: true,
	}
}

// Size returns the current screen dimensions.
func (s *Screen) Size() Size {
	return Size{Width: s.back.width, Height: s.back.height}
}

// Back returns the buffer to draw the next frame into.
func (s *Screen) Back() *Buffer {
	return s.back
}

// Front returns the buffer last sent to the terminal.
func (s *Screen) Front() *Buffer {
	return s.front
}

// Profile returns the color profile output is degraded to.
func (s *Screen) Profile() termenv.Profile {
	return s.profile
}

// Swap flushes the back buffer to the terminal and makes it the front
// buffer. The returned runs are what was sent; after a full redraw they
// cover every row. The new back buffer is cleared for the next frame.
func (s *Screen) Swap() ([]ChangeRun, error) {
	var runs []ChangeRun
	b := s.buf[:0]
	if s.fullRedraw {
		b = appendFrame(b, s.back, s.profile)
		runs = Diff(NewBuffer(0, 0), s.back)
	} else {
		runs = Diff(s.front, s.back)
		b = appendRuns(b, runs, s.profile)
	}
	b = s.appendCursor(b)
	s.buf = b

	if len(b) > 0 {
		if _, err := s.out.Write(b); err != nil {
			// keep the frame so the next swap retries it whole
			s.fullRedraw = true
			return nil, errors.Wrap(err, "screen write")
		}
	}

	s.fullRedraw = false
	s.front, s.back = s.back, s.front
	if s.back.width != s.front.width || s.back.height != s.front.height {
		s.back.Resize(s.front.width, s.front.height)
	}
	s.back.Clear()
	return runs, nil
}

func (s *Screen) appendCursor(b []byte) []byte {
	if !s.cursorVisible {
		if s.cursorShown {
			s.cursorShown = false
			b = append(b, "\x1b[?25l"...)
		}
		return b
	}
	s.cursorShown = true
	b = append(b, "\x1b["...)
	b = appendInt(b, int(s.cursorShape))
	b = append(b, " q"...)
	b = appendCursorPos(b, s.cursorX, s.cursorY)
	return append(b, "\x1b[?25h"...)
}

// Redraw makes the next Swap repaint the whole screen.
func (s *Screen) Redraw() {
	s.fullRedraw = true
}

// Resize changes both buffers to the new size, keeping the top-left
// region, clamps the cursor and requests a full redraw.
func (s *Screen) Resize(width, height int) {
	width, height = nonNeg(width), nonNeg(height)
	s.front.Resize(width, height)
	s.back.Resize(width, height)
	s.cursorX = clampInt(s.cursorX, 0, max(width-1, 0))
	s.cursorY = clampInt(s.cursorY, 0, max(height-1, 0))
	s.fullRedraw = true
}

// SetCursor places the terminal cursor at (x, y) after each frame. An
// invisible cursor stays hidden wherever the last write left it.
func (s *Screen) SetCursor(x, y int, visible bool) {
	s.cursorX = clampInt(x, 0, max(s.back.width-1, 0))
	s.cursorY = clampInt(y, 0, max(s.back.height-1, 0))
	s.cursorVisible = visible
}

// SetCursorShape picks the shape used while the cursor is visible.
func (s *Screen) SetCursorShape(shape CursorShape) {
	s.cursorShape = shape
}

// Cursor returns the cursor position and visibility.
func (s *Screen) Cursor() (x, y int, visible bool) {
	return s.cursorX, s.cursorY, s.cursorVisible
}

// CursorShape represents the terminal cursor shape (DECSCUSR).
type CursorShape int

const (
	CursorDefault        CursorShape = 0 // Terminal default
	CursorBlockBlink     CursorShape = 1 // Blinking block
	CursorBlock          CursorShape = 2 // Steady block
	CursorUnderlineBlink CursorShape = 3 // Blinking underline
	CursorUnderline      CursorShape = 4 // Steady underline
	CursorBarBlink       CursorShape = 5 // Blinking bar (line)
	CursorBar            CursorShape = 6 // Steady bar (line)
)
