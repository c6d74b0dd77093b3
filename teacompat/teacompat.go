// Package teacompat runs bubbletea v1 models on the tui runtime.
//
// Terminal events become the corresponding tea messages, tea commands run
// as tui commands and their messages are fed back through Update, and
// tea.Quit stops the program. Styling in the model's View output is not
// preserved: the runtime draws View as plain text.
package teacompat

import (
	"reflect"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	tui "github.com/kungfusheep/tuicore"
)

// Program wraps a bubbletea model as a tui program. The model receives a
// tea.WindowSizeMsg with the starting size before any input, as it would
// under bubbletea.
func Program(m tea.Model, opts tui.Options) tui.Program {
	opts.InitialResize = true
	return tui.Program{
		Init: func() (tui.Model, tui.Cmd) {
			return m, command(m.Init())
		},
		Update: func(state tui.Model, msg tui.Msg) (tui.Model, tui.Cmd) {
			tm := state.(tea.Model)
			tmsg := Msg(msg)
			if tmsg == nil {
				return tm, tui.None
			}
			next, cmd := tm.Update(tmsg)
			return next, command(cmd)
		},
		View: func(state tui.Model, _ tui.Size) string {
			return state.(tea.Model).View()
		},
		Options: opts,
	}
}

// Msg translates a tui message into the bubbletea message a model expects.
// Non-event messages, such as those produced by tea commands, pass through
// unchanged. Events without a bubbletea counterpart translate to nil.
func Msg(msg tui.Msg) tea.Msg {
	switch ev := msg.(type) {
	case tui.KeyEvent:
		k, ok := Key(ev)
		if !ok {
			return nil
		}
		return tea.KeyMsg(k)
	case tui.PasteEvent:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(ev.Text), Paste: true}
	case tui.MouseEvent:
		return Mouse(ev)
	case tui.ResizeEvent:
		return tea.WindowSizeMsg{Width: ev.Width, Height: ev.Height}
	case tui.FocusEvent:
		if ev.Focused {
			return tea.FocusMsg{}
		}
		return tea.BlurMsg{}
	case tui.UnknownEvent, tui.QuitEvent:
		return nil
	}
	return msg
}

// command runs a tea command as a tui command.
func command(cmd tea.Cmd) tui.Cmd {
	if cmd == nil {
		return tui.None
	}
	return tui.Command(func(s tui.Sink) {
		deliver(s, cmd())
	})
}

var cmdType = reflect.TypeOf((tea.Cmd)(nil))

// deliver sends what a tea command produced. Batches fan out
// concurrently; sequences, whose message type bubbletea keeps private,
// are recognised by shape and run in order.
func deliver(s tui.Sink, msg tea.Msg) {
	switch m := msg.(type) {
	case nil:
		return
	case tea.QuitMsg:
		s.Send(tui.QuitEvent{})
		return
	case tea.BatchMsg:
		var wg sync.WaitGroup
		for _, c := range m {
			if c == nil {
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				deliver(s, c())
			}()
		}
		wg.Wait()
		return
	}

	if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice && v.Type().Elem() == cmdType {
		for i := 0; i < v.Len(); i++ {
			if c, _ := v.Index(i).Interface().(tea.Cmd); c != nil {
				deliver(s, c())
			}
		}
		return
	}
	s.Send(msg)
}
