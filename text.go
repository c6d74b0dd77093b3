package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended by Truncate when text is cut short.
const Ellipsis = "…"

// StripANSI removes escape sequences from s.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// TextWidth returns the display width of s in cells: the width of its
// widest line, ignoring escape sequences. Wide (CJK, emoji) characters
// count 2, combining marks and control characters count 0.
func TextWidth(s string) int {
	if !strings.Contains(s, "\n") {
		return ansi.StringWidth(s)
	}
	w := 0
	for _, line := range strings.Split(s, "\n") {
		if lw := ansi.StringWidth(line); lw > w {
			w = lw
		}
	}
	return w
}

// TextHeight returns the number of lines in s. The empty string is 0 lines.
func TextHeight(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// RuneWidth returns the cell width of a single rune.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// Truncate shortens s to at most width cells. When text is dropped the
// result ends in an ellipsis, which counts against the budget.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, Ellipsis)
}

// Clip shortens s to at most width cells without an ellipsis.
func Clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "")
}

// ClipLeft drops the first n cells of s. A wide character cut in half
// is dropped whole.
func ClipLeft(s string, n int) string {
	if n <= 0 {
		return s
	}
	return ansi.TruncateLeft(s, n, "")
}

// Wrap word-wraps s to lines of at most width cells. Words longer than the
// width are broken. Existing newlines are kept.
func Wrap(s string, width int) []string {
	if s == "" {
		return nil
	}
	if width <= 0 {
		return strings.Split(s, "\n")
	}
	wrapped := ansi.Wrap(s, width, "")
	lines := strings.Split(wrapped, "\n")
	for i, l := range lines {
		// the wrapper may leave a trailing space that pushes past the limit
		if ansi.StringWidth(l) > width {
			lines[i] = strings.TrimRight(l, " ")
		}
	}
	return lines
}

// PadRight pads s with spaces to exactly width cells, truncating if longer.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		return Clip(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// PadLeft pads s on the left with spaces to width cells.
func PadLeft(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		return Clip(s, width)
	}
	return strings.Repeat(" ", width-w) + s
}

// Center pads s on both sides to width cells. An odd leftover cell goes
// on the right.
func Center(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return Clip(s, width)
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
