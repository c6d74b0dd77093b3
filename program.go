package tui

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Model is the application state. The runtime only passes it between
// Init, Update and View.
type Model = any

// Program describes an Elm-style application.
type Program struct {
	Init   func() (Model, Cmd)
	Update func(Model, Msg) (Model, Cmd)
	// View renders the model as plain text. Escape sequences are stripped.
	View func(Model, Size) string
	// Document, when set, is used instead of View.
	Document func(Model, Size) Node
	// Cursor, when set, places the terminal cursor after each frame.
	Cursor func(Model, Size) (x, y int, visible bool)

	Options Options
}

// Options are the terminal modes a program runs under.
type Options struct {
	AltScreen      bool
	Mouse          bool
	BracketedPaste bool
	ReportFocus    bool
	KittyKeyboard  bool
	// InitialResize delivers the starting size as a ResizeEvent before
	// any input.
	InitialResize bool
}

const (
	defaultResizeInterval = 250 * time.Millisecond
	defaultEscapeTimeout  = 50 * time.Millisecond
	teardownGrace         = 100 * time.Millisecond
	messageQueueSize      = 64
)

type runConfig struct {
	term           Terminal
	logger         *slog.Logger
	resizeInterval time.Duration
	escapeTimeout  time.Duration
	profile        termenv.Profile
	profileSet     bool
}

// RunOption configures Run.
type RunOption func(*runConfig)

// WithTerminal runs on t instead of the process terminal.
func WithTerminal(t Terminal) RunOption {
	return func(c *runConfig) { c.term = t }
}

// WithLogger sets the logger for runtime diagnostics. The default
// discards everything, since the terminal is busy drawing the UI.
func WithLogger(l *slog.Logger) RunOption {
	return func(c *runConfig) { c.logger = l }
}

// WithResizeInterval sets how often the size is polled on terminals
// without resize notifications.
func WithResizeInterval(d time.Duration) RunOption {
	return func(c *runConfig) { c.resizeInterval = d }
}

// WithEscapeTimeout sets how long a lone ESC waits for the rest of a
// sequence before it is reported as the escape key.
func WithEscapeTimeout(d time.Duration) RunOption {
	return func(c *runConfig) { c.escapeTimeout = d }
}

// WithColorProfile overrides the color profile detected from the
// environment.
func WithColorProfile(p termenv.Profile) RunOption {
	return func(c *runConfig) {
		c.profile = p
		c.profileSet = true
	}
}

// Run runs p until a QuitEvent is delivered or ctx is done, and returns
// the final model. The terminal is restored on every exit path, panics
// included. Run returns an error only when setup fails or the terminal
// stops delivering input for a reason other than end of file.
func Run(ctx context.Context, p Program, opts ...RunOption) (Model, error) {
	cfg := runConfig{
		logger:         slog.New(slog.DiscardHandler),
		resizeInterval: defaultResizeInterval,
		escapeTimeout:  defaultEscapeTimeout,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.term == nil {
		pt, err := NewProcessTerminal()
		if err != nil {
			return nil, err
		}
		defer pt.Close()
		cfg.term = pt
	}
	if !cfg.profileSet {
		cfg.profile = termenv.EnvColorProfile()
	}

	r := &runner{
		prog: p,
		cfg:  cfg,
		term: cfg.term,
		log:  cfg.logger,
		msgs: make(chan Msg, messageQueueSize),
		done: make(chan struct{}),
	}
	return r.run(ctx)
}

type runner struct {
	prog Program
	cfg  runConfig
	term Terminal
	log  *slog.Logger

	screen *Screen
	msgs   chan Msg
	done   chan struct{}

	cancel   context.CancelFunc
	group    *errgroup.Group
	applied  []modeSwitch
	rawMode  bool
	stopOnce sync.Once

	mu      sync.Mutex
	readErr error
}

// Send queues msg for Update. It drops msg once the program has stopped.
func (r *runner) Send(msg Msg) {
	select {
	case r.msgs <- msg:
	case <-r.done:
	}
}

// Done is closed when the program stops.
func (r *runner) Done() <-chan struct{} {
	return r.done
}

func (r *runner) run(ctx context.Context) (model Model, err error) {
	defer func() {
		rec := recover()
		r.teardown()
		if rec != nil {
			panic(rec)
		}
	}()

	if err := r.setup(ctx); err != nil {
		return nil, err
	}

	var cmd Cmd
	if r.prog.Init != nil {
		model, cmd = r.prog.Init()
	}
	r.execute(cmd)
	r.render(model)

	for {
		var msg Msg
		select {
		case msg = <-r.msgs:
		case <-ctx.Done():
			r.log.Debug("context done", "err", ctx.Err())
			msg = QuitEvent{}
		}
		if _, ok := msg.(QuitEvent); ok {
			break
		}
		if rs, ok := msg.(ResizeEvent); ok && (Size{Width: rs.Width, Height: rs.Height}) != r.screen.Size() {
			r.log.Debug("resize", "width", rs.Width, "height", rs.Height)
			r.screen.Resize(rs.Width, rs.Height)
		}
		if r.prog.Update != nil {
			model, cmd = r.prog.Update(model, msg)
			r.execute(cmd)
		}
		r.render(model)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return model, errors.Wrap(r.readErr, "terminal read")
	}
	return model, nil
}

func (r *runner) setup(ctx context.Context) error {
	if err := r.term.EnterRaw(); err != nil {
		return err
	}
	r.rawMode = true
	r.log.Debug("raw mode on")

	for _, m := range modeSwitches(r.prog.Options) {
		if _, err := io.WriteString(r.term, m.on); err != nil {
			return errors.Wrapf(err, "enable %s", m.name)
		}
		r.applied = append(r.applied, m)
		r.log.Debug("mode on", "mode", m.name)
	}

	size, err := r.term.Size()
	if err != nil {
		r.log.Warn("terminal size unavailable, assuming 80x24", "err", err)
		size = Size{Width: 80, Height: 24}
	}
	r.screen = NewScreen(r.term, size.Width, size.Height, r.cfg.profile)
	if r.prog.Options.InitialResize {
		r.msgs <- ResizeEvent{Width: size.Width, Height: size.Height}
	}

	gctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	g, gctx := errgroup.WithContext(gctx)
	r.group = g

	input := make(chan []byte, 16)
	g.Go(func() error { return r.readInput(gctx, input) })
	g.Go(func() error { return r.decodeInput(gctx, input) })
	g.Go(func() error { return r.watchResize(gctx, size) })
	return nil
}

// teardown undoes setup in reverse order. It runs once however many
// times it is called.
func (r *runner) teardown() {
	r.stopOnce.Do(func() {
		close(r.done)
		if r.cancel != nil {
			r.cancel()
		}
		r.term.CancelRead()

		for i := len(r.applied) - 1; i >= 0; i-- {
			m := r.applied[i]
			if _, err := io.WriteString(r.term, m.off); err != nil {
				r.log.Error("disable mode", "mode", m.name, "err", err)
			}
		}
		if r.rawMode {
			if err := r.term.ExitRaw(); err != nil {
				r.log.Error("exit raw mode", "err", err)
			}
		}

		if r.group == nil {
			return
		}
		waited := make(chan struct{})
		go func() {
			r.group.Wait()
			close(waited)
		}()
		select {
		case <-waited:
		case <-time.After(teardownGrace):
			r.log.Warn("input tasks still running after teardown")
		}
		r.log.Debug("teardown complete")
	})
}

// readInput copies terminal bytes to out and closes it when input ends.
// A failure other than end of file is kept for Run to return.
func (r *runner) readInput(ctx context.Context, out chan<- []byte) error {
	defer close(out)
	buf := make([]byte, 4096)
	for {
		n, err := r.term.Read(buf)
		if n > 0 {
			select {
			case out <- append([]byte(nil), buf[:n]...):
			case <-ctx.Done():
				return nil
			}
		}
		if err == nil {
			continue
		}
		if ctx.Err() == nil && !errors.Is(err, io.EOF) {
			r.log.Error("terminal read failed", "err", err)
			r.mu.Lock()
			r.readErr = err
			r.mu.Unlock()
		}
		return nil
	}
}

// decodeInput parses byte chunks into events. A sequence left incomplete
// for longer than the escape timeout is flushed, which is how a lone ESC
// key press is told apart from the start of an escape sequence. Once the
// input ends, everything decoded so far is delivered and then a quit.
func (r *runner) decodeInput(ctx context.Context, in <-chan []byte) error {
	p := NewParser()
	for {
		var timeout <-chan time.Time
		if p.Pending() && !p.InPaste() {
			timeout = time.After(r.cfg.escapeTimeout)
		}
		select {
		case data, ok := <-in:
			if !ok {
				r.deliver(p.Flush())
				if ctx.Err() == nil {
					r.Send(QuitEvent{})
				}
				return nil
			}
			r.deliver(p.Parse(data))
		case <-timeout:
			r.deliver(p.Flush())
		case <-ctx.Done():
			return nil
		}
	}
}

func (r *runner) deliver(events []Event) {
	for _, ev := range events {
		r.Send(ev)
	}
}

// watchResize reports size changes, from notifications when the terminal
// offers them and by polling otherwise.
func (r *runner) watchResize(ctx context.Context, last Size) error {
	var notify <-chan struct{}
	if rn, ok := r.term.(ResizeNotifier); ok {
		ch, stop := rn.NotifyResize()
		defer stop()
		notify = ch
	}
	var poll <-chan time.Time
	if notify == nil {
		t := time.NewTicker(r.cfg.resizeInterval)
		defer t.Stop()
		poll = t.C
	}

	for {
		select {
		case <-notify:
		case <-poll:
		case <-ctx.Done():
			return nil
		}
		size, err := r.term.Size()
		if err != nil {
			r.log.Debug("size query failed", "err", err)
			continue
		}
		if size != last {
			last = size
			r.Send(ResizeEvent{Width: size.Width, Height: size.Height})
		}
	}
}

func (r *runner) execute(cmd Cmd) {
	if cmd.IsNone() {
		return
	}
	cmd.execute(r, func(fn func()) { go fn() })
}

// render draws model into the back buffer and flushes the difference.
// A failed write is logged; the next frame redraws in full.
func (r *runner) render(model Model) {
	size := r.screen.Size()
	var doc Node
	switch {
	case r.prog.Document != nil:
		doc = r.prog.Document(model, size)
	case r.prog.View != nil:
		doc = Text(r.prog.View(model, size)).NoWrap()
	default:
		doc = Empty()
	}
	Paint(r.screen.Back(), Layout(doc, size.Width, size.Height))

	if r.prog.Cursor != nil {
		x, y, visible := r.prog.Cursor(model, size)
		r.screen.SetCursor(x, y, visible)
	}
	runs, err := r.screen.Swap()
	if err != nil {
		r.log.Warn("render", "err", err)
		return
	}
	r.log.Debug("frame", "runs", len(runs))
}
