package tui

import (
	"sync"
	"time"
)

// Sink receives messages produced by commands.
type Sink interface {
	Send(Msg)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Msg)

func (f SinkFunc) Send(m Msg) { f(m) }

// Cmd is a deferred effect returned from Update. A command never touches
// the model; it reports back only by sending messages. The zero value is
// None and does nothing.
type Cmd struct {
	run   func(Sink)
	batch []Cmd
	seq   bool
}

// None is the command that does nothing.
var None Cmd

// IsNone reports whether c does nothing.
func (c Cmd) IsNone() bool {
	return c.run == nil && len(c.batch) == 0
}

// Command wraps fn as a command. fn runs on its own goroutine and may send
// any number of messages.
func Command(fn func(Sink)) Cmd {
	return Cmd{run: fn}
}

// Func wraps fn as a command that sends fn's result, unless it is nil.
func Func(fn func() Msg) Cmd {
	return Command(func(s Sink) {
		if m := fn(); m != nil {
			s.Send(m)
		}
	})
}

// Batch runs cmds concurrently.
func Batch(cmds ...Cmd) Cmd {
	return group(cmds, false)
}

// Sequence runs cmds one after another on a single goroutine, so the
// messages of each arrive before those of the next.
func Sequence(cmds ...Cmd) Cmd {
	return group(cmds, true)
}

func group(cmds []Cmd, seq bool) Cmd {
	var kept []Cmd
	for _, c := range cmds {
		if !c.IsNone() {
			kept = append(kept, c)
		}
	}
	switch len(kept) {
	case 0:
		return None
	case 1:
		return kept[0]
	}
	return Cmd{batch: kept, seq: seq}
}

// Send returns a command that delivers msg.
func Send(msg Msg) Cmd {
	return Command(func(s Sink) { s.Send(msg) })
}

// Quit returns a command that stops the program.
func Quit() Cmd {
	return Send(QuitEvent{})
}

// Tick sends fn(t) once, d after the command starts. A tick pending when
// the program exits is dropped.
func Tick(d time.Duration, fn func(time.Time) Msg) Cmd {
	return Command(func(s Sink) {
		var done <-chan struct{}
		if ds, ok := s.(interface{ Done() <-chan struct{} }); ok {
			done = ds.Done()
		}
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case t := <-timer.C:
			if m := fn(t); m != nil {
				s.Send(m)
			}
		case <-done:
		}
	})
}

// execute starts c. Each single command gets its own goroutine via spawn;
// a sequence gets one goroutine for all its steps.
func (c Cmd) execute(s Sink, spawn func(func())) {
	switch {
	case c.run != nil:
		spawn(func() { c.run(s) })
	case c.seq:
		spawn(func() { c.runNow(s) })
	default:
		for _, sub := range c.batch {
			sub.execute(s, spawn)
		}
	}
}

// runNow runs c on the calling goroutine and returns once it and all of
// its children are finished.
func (c Cmd) runNow(s Sink) {
	switch {
	case c.run != nil:
		c.run(s)
	case c.seq:
		for _, sub := range c.batch {
			sub.runNow(s)
		}
	default:
		var wg sync.WaitGroup
		for _, sub := range c.batch {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sub.runNow(s)
			}()
		}
		wg.Wait()
	}
}
