package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	tui "github.com/kungfusheep/tuicore"
)

const keysHistory = 200

type keysModel struct {
	theme  tui.Theme
	events []string
	clock  time.Time
}

type tickMsg time.Time

func keysCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Show decoded input events; press q twice or ctrl+c to exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, err := cfg.theme()
			if err != nil {
				return err
			}
			opts := cfg.options()
			opts.KittyKeyboard = true
			_, err = run(cmd.Context(), cfg, keysProgram(opts, theme))
			return err
		},
	}
}

func tick() tui.Cmd {
	return tui.Tick(time.Second, func(t time.Time) tui.Msg { return tickMsg(t) })
}

func keysProgram(opts tui.Options, theme tui.Theme) tui.Program {
	return tui.Program{
		Init: func() (tui.Model, tui.Cmd) {
			return keysModel{theme: theme, clock: time.Now()}, tick()
		},
		Update:   updateKeys,
		Document: keysDocument,
		Options:  opts,
	}
}

func describe(msg tui.Msg) string {
	switch ev := msg.(type) {
	case tui.KeyEvent:
		return fmt.Sprintf("key   %-20s raw %q", ev.String(), ev.Raw)
	case tui.MouseEvent:
		return fmt.Sprintf("mouse %s", ev)
	case tui.PasteEvent:
		return fmt.Sprintf("paste %q", ev.Text)
	case tui.FocusEvent:
		return fmt.Sprintf("focus %v", ev.Focused)
	case tui.ResizeEvent:
		return fmt.Sprintf("size  %dx%d", ev.Width, ev.Height)
	case tui.UnknownEvent:
		return fmt.Sprintf("unknown %q", ev.Raw)
	}
	return fmt.Sprintf("%T", msg)
}

func updateKeys(m tui.Model, msg tui.Msg) (tui.Model, tui.Cmd) {
	km := m.(keysModel)
	if t, ok := msg.(tickMsg); ok {
		km.clock = time.Time(t)
		return km, tick()
	}
	if ev, ok := msg.(tui.KeyEvent); ok && ev.Is(tui.KeyRune, tui.ModCtrl) && ev.Rune == 'c' {
		return km, tui.Quit()
	}
	line := describe(msg)
	if ev, ok := msg.(tui.KeyEvent); ok && ev.IsRune('q') && len(km.events) > 0 &&
		km.events[len(km.events)-1] == line {
		return km, tui.Quit()
	}
	km.events = append(km.events, line)
	if len(km.events) > keysHistory {
		km.events = km.events[len(km.events)-keysHistory:]
	}
	return km, tui.None
}

func keysDocument(m tui.Model, size tui.Size) tui.Node {
	km := m.(keysModel)

	rows := max(size.Height-3, 0)
	shown := km.events
	if len(shown) > rows {
		shown = shown[len(shown)-rows:]
	}
	lines := make([]tui.Node, 0, len(shown))
	for _, e := range shown {
		lines = append(lines, tui.Text(e).NoWrap().Style(km.theme.Base))
	}

	header := tui.Row(
		tui.Text(" input events").Style(km.theme.Accent.Bold()),
		tui.Spacer(),
		tui.Text(km.clock.Format(time.TimeOnly)+" ").Style(km.theme.Muted),
	)
	return tui.Column(
		header,
		tui.Block(tui.Column(lines...)).Border(tui.BorderSingle).BorderFg(km.theme.Border.FG).Grow(1),
	).Width(size.Width).Height(size.Height)
}
