// Command tuidemo exercises the tui toolkit: a small editor, an input
// event inspector and a bubbletea model running on the tui runtime.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	tui "github.com/kungfusheep/tuicore"
)

// Config holds the flags shared by every subcommand.
type Config struct {
	AltScreen bool
	Mouse     bool
	Paste     bool
	Theme     string
	LogFile   string
	Debug     bool
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "tuidemo",
		Short: "Demos for the tui toolkit",
		Example: `  # Edit text in a bordered box
  tuidemo editor

  # Show every decoded input event, with mouse reporting
  tuidemo keys --mouse

  # Run a bubbles text input through the compatibility layer
  tuidemo tea --log /tmp/tuidemo.log --debug`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&cfg.AltScreen, "alt-screen", true, "Draw on the alternate screen")
	flags.BoolVar(&cfg.Mouse, "mouse", false, "Enable mouse reporting")
	flags.BoolVar(&cfg.Paste, "paste", true, "Enable bracketed paste")
	flags.StringVar(&cfg.Theme, "theme", "", "Theme name (dark, light, monochrome) or TOML file")
	flags.StringVar(&cfg.LogFile, "log", "", "Write logs to this file")
	flags.BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(editorCmd(&cfg), keysCmd(&cfg), teaCmd(&cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func (c Config) options() tui.Options {
	return tui.Options{
		AltScreen:      c.AltScreen,
		Mouse:          c.Mouse,
		BracketedPaste: c.Paste,
		ReportFocus:    true,
	}
}

// logger returns a logger writing to the --log file, or one that discards
// everything. Logging to the terminal would corrupt the display.
func (c Config) logger() (*slog.Logger, func(), error) {
	if c.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open log file")
	}
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler), func() { f.Close() }, nil
}

// theme resolves --theme as a built-in name first, then as a file.
func (c Config) theme() (tui.Theme, error) {
	if c.Theme == "" {
		return tui.ThemeDark, nil
	}
	if t, ok := tui.BuiltinTheme(c.Theme); ok {
		return t, nil
	}
	f, err := os.Open(c.Theme)
	if err != nil {
		return tui.Theme{}, errors.Wrap(err, "open theme")
	}
	defer f.Close()
	return tui.LoadTheme(f)
}

// run starts p with the shared flags applied.
func run(ctx context.Context, cfg *Config, p tui.Program) (tui.Model, error) {
	logger, closeLog, err := cfg.logger()
	if err != nil {
		return nil, err
	}
	defer closeLog()

	logger.Info("starting", "alt-screen", cfg.AltScreen, "mouse", cfg.Mouse, "paste", cfg.Paste)
	model, err := tui.Run(ctx, p, tui.WithLogger(logger))
	if err != nil {
		logger.Error("run failed", "err", err)
		return model, err
	}
	logger.Info("stopped")
	return model, nil
}

func printResult(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
