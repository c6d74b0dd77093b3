package teacompat

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tui "github.com/kungfusheep/tuicore"
)

func TestMsg(t *testing.T) {
	tests := []struct {
		name string
		in   tui.Msg
		want tea.Msg
	}{
		{"rune", tui.KeyEvent{Key: tui.KeyRune, Rune: 'a'}, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}},
		{"alt rune", tui.KeyEvent{Key: tui.KeyRune, Rune: 'x', Mod: tui.ModAlt}, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}},
		{"space", tui.KeyEvent{Key: tui.KeyRune, Rune: ' '}, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}},
		{"ctrl+c", tui.KeyEvent{Key: tui.KeyRune, Rune: 'c', Mod: tui.ModCtrl}, tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"ctrl+space", tui.KeyEvent{Key: tui.KeyRune, Rune: ' ', Mod: tui.ModCtrl}, tea.KeyMsg{Type: tea.KeyCtrlAt}},
		{"ctrl+backslash", tui.KeyEvent{Key: tui.KeyRune, Rune: '\\', Mod: tui.ModCtrl}, tea.KeyMsg{Type: tea.KeyCtrlBackslash}},
		{"enter", tui.KeyEvent{Key: tui.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter}},
		{"shift+up", tui.KeyEvent{Key: tui.KeyUp, Mod: tui.ModShift}, tea.KeyMsg{Type: tea.KeyShiftUp}},
		{"ctrl+shift+left", tui.KeyEvent{Key: tui.KeyLeft, Mod: tui.ModCtrl | tui.ModShift}, tea.KeyMsg{Type: tea.KeyCtrlShiftLeft}},
		{"alt+up", tui.KeyEvent{Key: tui.KeyUp, Mod: tui.ModAlt}, tea.KeyMsg{Type: tea.KeyUp, Alt: true}},
		{"backtab", tui.KeyEvent{Key: tui.KeyBacktab}, tea.KeyMsg{Type: tea.KeyShiftTab}},
		{"f12", tui.KeyEvent{Key: tui.KeyF12}, tea.KeyMsg{Type: tea.KeyF12}},
		{"kitty only key", tui.KeyEvent{Key: tui.KeyLeftShift}, nil},
		{"ctrl+digit", tui.KeyEvent{Key: tui.KeyRune, Rune: '1', Mod: tui.ModCtrl}, nil},
		{"paste", tui.PasteEvent{Text: "hi"}, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi"), Paste: true}},
		{"resize", tui.ResizeEvent{Width: 80, Height: 24}, tea.WindowSizeMsg{Width: 80, Height: 24}},
		{"focus", tui.FocusEvent{Focused: true}, tea.FocusMsg{}},
		{"blur", tui.FocusEvent{Focused: false}, tea.BlurMsg{}},
		{"unknown", tui.UnknownEvent{Raw: []byte("\x1b[99~")}, nil},
		{"app message", "custom", "custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Msg(tt.in))
		})
	}
}

func TestKeyString(t *testing.T) {
	k, ok := Key(tui.KeyEvent{Key: tui.KeyRune, Rune: 'c', Mod: tui.ModCtrl})
	require.True(t, ok)
	assert.Equal(t, "ctrl+c", k.String())

	k, ok = Key(tui.KeyEvent{Key: tui.KeyRune, Rune: 'x', Mod: tui.ModAlt})
	require.True(t, ok)
	assert.Equal(t, "alt+x", k.String())
}

func TestMouse(t *testing.T) {
	got := Mouse(tui.MouseEvent{
		X: 3, Y: 4,
		Button: tui.MouseWheelUp,
		Action: tui.MousePress,
		Mod:    tui.ModCtrl,
	})
	assert.Equal(t, tea.MouseMsg{
		X: 3, Y: 4,
		Ctrl:   true,
		Button: tea.MouseButtonWheelUp,
		Action: tea.MouseActionPress,
	}, got)
}

type collect struct {
	mu   sync.Mutex
	msgs []tui.Msg
}

func (c *collect) Send(m tui.Msg) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, m)
}

func TestDeliver(t *testing.T) {
	send := func(m tea.Msg) tea.Cmd { return func() tea.Msg { return m } }

	t.Run("quit", func(t *testing.T) {
		var c collect
		deliver(&c, tea.Quit())
		assert.Equal(t, []tui.Msg{tui.QuitEvent{}}, c.msgs)
	})

	t.Run("nil", func(t *testing.T) {
		var c collect
		deliver(&c, nil)
		assert.Empty(t, c.msgs)
	})

	t.Run("batch", func(t *testing.T) {
		var c collect
		deliver(&c, tea.Batch(send("a"), nil, send("b"))())
		assert.ElementsMatch(t, []tui.Msg{"a", "b"}, c.msgs)
	})

	t.Run("sequence keeps order", func(t *testing.T) {
		var c collect
		slow := func() tea.Msg {
			time.Sleep(10 * time.Millisecond)
			return "first"
		}
		deliver(&c, tea.Sequence(slow, send("second"), send("third"))())
		assert.Equal(t, []tui.Msg{"first", "second", "third"}, c.msgs)
	})

	t.Run("sequence ending in quit", func(t *testing.T) {
		var c collect
		deliver(&c, tea.Sequence(send("bye"), tea.Quit)())
		assert.Equal(t, []tui.Msg{"bye", tui.QuitEvent{}}, c.msgs)
	})
}

func TestStyle(t *testing.T) {
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ff0000")).
		Background(lipgloss.Color("4")).
		Bold(true).
		Underline(true)
	assert.Equal(t, tui.Style{
		FG:   tui.RGB(255, 0, 0),
		BG:   tui.BasicColor(4),
		Attr: tui.AttrBold | tui.AttrUnderline,
	}, Style(s))

	assert.Equal(t, tui.Style{}, Style(lipgloss.NewStyle()))
}

func TestColor(t *testing.T) {
	tests := []struct {
		in   lipgloss.TerminalColor
		want tui.Color
	}{
		{nil, tui.DefaultColor()},
		{lipgloss.NoColor{}, tui.DefaultColor()},
		{lipgloss.Color("200"), tui.PaletteColor(200)},
		{lipgloss.Color("9"), tui.BrightRed},
		{lipgloss.Color("not a color"), tui.DefaultColor()},
		{lipgloss.ANSIColor(3), tui.Yellow},
		{lipgloss.AdaptiveColor{Light: "1", Dark: "2"}, tui.Green},
		{lipgloss.CompleteColor{TrueColor: "#010203", ANSI256: "1", ANSI: "1"}, tui.RGB(1, 2, 3)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Color(tt.in), "%#v", tt.in)
	}
}

// pipeTerminal feeds scripted input and then blocks until canceled.
type pipeTerminal struct {
	input  chan []byte
	cancel chan struct{}
	once   sync.Once
}

func newPipeTerminal(chunks ...string) *pipeTerminal {
	pt := &pipeTerminal{input: make(chan []byte, len(chunks)), cancel: make(chan struct{})}
	for _, c := range chunks {
		pt.input <- []byte(c)
	}
	close(pt.input)
	return pt
}

func (pt *pipeTerminal) Read(p []byte) (int, error) {
	select {
	case b, ok := <-pt.input:
		if ok {
			return copy(p, b), nil
		}
	case <-pt.cancel:
		return 0, io.EOF
	}
	<-pt.cancel
	return 0, io.EOF
}

func (pt *pipeTerminal) Write(p []byte) (int, error) { return len(p), nil }
func (pt *pipeTerminal) Size() (tui.Size, error)     { return tui.Size{Width: 40, Height: 10}, nil }
func (pt *pipeTerminal) EnterRaw() error             { return nil }
func (pt *pipeTerminal) ExitRaw() error              { return nil }
func (pt *pipeTerminal) CancelRead()                 { pt.once.Do(func() { close(pt.cancel) }) }

type counter struct {
	width int
	typed string
	ticks int
}

type tickMsg struct{}

func (m counter) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg{} }
}

func (m counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		m.ticks++
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			return m, tea.Quit
		}
		m.typed += msg.String()
	}
	return m, nil
}

func (m counter) View() string { return "typed: " + m.typed }

func TestProgram(t *testing.T) {
	pt := newPipeTerminal("hi")
	p := Program(counter{}, tui.Options{})
	assert.True(t, p.Options.InitialResize)

	inner := p.Update
	var sent bool
	p.Update = func(m tui.Model, msg tui.Msg) (tui.Model, tui.Cmd) {
		next, cmd := inner(m, msg)
		if c := next.(counter); !sent && c.typed == "hi" && c.ticks == 1 && c.width == 40 {
			sent = true
			return next, tui.Send(tui.KeyEvent{Key: tui.KeyEnter})
		}
		return next, cmd
	}

	done := make(chan tui.Model, 1)
	go func() {
		m, err := tui.Run(context.Background(), p, tui.WithTerminal(pt), tui.WithColorProfile(termenv.Ascii))
		assert.NoError(t, err)
		done <- m
	}()

	select {
	case m := <-done:
		c := m.(counter)
		assert.Equal(t, 40, c.width)
		assert.Equal(t, "hi", c.typed)
		assert.Equal(t, 1, c.ticks)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "program did not stop")
	}
}
