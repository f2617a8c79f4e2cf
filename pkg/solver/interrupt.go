package solver

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Interrupt is the should-interrupt flag of §5: a relaxed atomic set
// asynchronously by a signal handler (installed only by the CLI) and
// polled by the outer loop once per iteration.
type Interrupt struct {
	flag atomic.Bool
}

// Trigger sets the flag. Safe to call from a signal handler.
func (i *Interrupt) Trigger() { i.flag.Store(true) }

// Triggered reports whether Trigger has been called.
func (i *Interrupt) Triggered() bool { return i.flag.Load() }

// Reset clears the flag, for reuse across repeated runs in the same process.
func (i *Interrupt) Reset() { i.flag.Store(false) }

// shutdownSignals are the signals that flip an Interrupt: SIGINT and
// SIGTERM always, plus SIGXCPU where the platform defines it (§6).
var shutdownSignals = append([]os.Signal{os.Interrupt, syscall.SIGTERM}, xcpuSignal()...)

// WatchSignals registers i to be triggered on SIGINT/SIGTERM/SIGXCPU and
// returns a function that stops watching.
func WatchSignals(i *Interrupt) (stop func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, shutdownSignals...)
	done := make(chan struct{})
	go func() {
		select {
		case <-c:
			i.Trigger()
		case <-done:
		}
	}()
	return func() {
		close(done)
		signal.Stop(c)
	}
}
