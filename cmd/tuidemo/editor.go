package main

import (
	"fmt"

	"github.com/spf13/cobra"

	tui "github.com/kungfusheep/tuicore"
)

type editorModel struct {
	buf     tui.TextBuffer
	theme   tui.Theme
	focused bool
	last    string
}

func editorCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "editor [text]",
		Short: "Edit text in a bordered box; esc or ctrl+c exits",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, err := cfg.theme()
			if err != nil {
				return err
			}
			initial := ""
			if len(args) == 1 {
				initial = args[0]
			}
			final, err := run(cmd.Context(), cfg, editorProgram(cfg.options(), theme, initial))
			if err != nil {
				return err
			}
			if m, ok := final.(editorModel); ok {
				printResult(cmd.OutOrStdout(), "%s\n", m.buf.Text())
			}
			return nil
		},
	}
}

func editorProgram(opts tui.Options, theme tui.Theme, text string) tui.Program {
	return tui.Program{
		Init: func() (tui.Model, tui.Cmd) {
			return editorModel{buf: tui.NewTextBuffer(text), theme: theme, focused: true}, tui.None
		},
		Update:   updateEditor,
		Document: editorDocument,
		Cursor: func(m tui.Model, size tui.Size) (int, int, bool) {
			em := m.(editorModel)
			// inside the one-cell border; lines do not wrap, so a long
			// line pins the cursor to the right edge
			x := min(1+em.buf.VisualColumn(), max(size.Width-2, 1))
			return x, 1 + em.buf.Line(), em.focused
		},
		Options: opts,
	}
}

func updateEditor(m tui.Model, msg tui.Msg) (tui.Model, tui.Cmd) {
	em := m.(editorModel)
	switch ev := msg.(type) {
	case tui.KeyEvent:
		em.last = ev.String()
		if ev.Is(tui.KeyEscape, 0) || (ev.Is(tui.KeyRune, tui.ModCtrl) && ev.Rune == 'c') {
			return em, tui.Quit()
		}
		if next, ok := em.buf.HandleKey(ev); ok {
			em.buf = next
		}
	case tui.PasteEvent:
		em.last = fmt.Sprintf("paste (%d bytes)", len(ev.Text))
		em.buf = em.buf.Paste(ev)
	case tui.FocusEvent:
		em.focused = ev.Focused
	}
	return em, tui.None
}

func editorDocument(m tui.Model, size tui.Size) tui.Node {
	em := m.(editorModel)
	pos := fmt.Sprintf("%d:%d", em.buf.Line()+1, em.buf.Column()+1)
	if sel, ok := em.buf.Selection(); ok {
		pos = fmt.Sprintf("%s sel %d", pos, sel.Len())
	}

	borderColor := em.theme.Border.FG
	if em.focused {
		borderColor = em.theme.Accent.FG
	}

	return tui.Column(
		tui.Block(tui.Text(em.buf.Text()).NoWrap().Style(em.theme.Base)).
			Border(tui.BorderRounded).
			BorderFg(borderColor).
			Grow(1),
		tui.Row(
			tui.Text(" "+em.last).Style(em.theme.Muted),
			tui.Spacer(),
			tui.Text(pos+" ").Style(em.theme.Accent),
		),
	).Width(size.Width).Height(size.Height)
}
