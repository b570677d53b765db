package timing

import (
	"context"
	"errors"
	"time"

	"github.com/sarchlab/monstercatch/idgen"
)

// ErrEngineStopped is returned by Invoke when the engine's Run loop is no
// longer accepting work.
var ErrEngineStopped = errors.New("timing: engine stopped")

// RealTimeEngine dispatches events when the wall clock reaches their time.
//
// All handlers run on the goroutine that called Run. Other goroutines (input
// readers, HTTP handlers) reach the handlers only through Inject and Invoke,
// so handlers never need locks.
type RealTimeEngine struct {
	*timeline

	inbox   chan func()
	done    chan struct{}
	nowFunc func() time.Time

	start       time.Time
	paused      bool
	pausedAt    time.Time
	pausedTotal time.Duration
}

// NewRealTimeEngine creates an engine whose clock starts when Run is called.
func NewRealTimeEngine() *RealTimeEngine {
	return &RealTimeEngine{
		timeline: newTimeline(),
		inbox:    make(chan func(), 64),
		done:     make(chan struct{}),
		nowFunc:  time.Now,
	}
}

// Schedule registers an event. It must only be called from handlers or from
// functions passed to Invoke.
func (e *RealTimeEngine) Schedule(evt ScheduledEvent) idgen.ID {
	return e.schedule(evt)
}

// Cancel drops a pending event.
func (e *RealTimeEngine) Cancel(id idgen.ID) bool {
	return e.cancel(id)
}

// CurrentTime returns the game-clock time seen by the running handler.
func (e *RealTimeEngine) CurrentTime() VTimeInMs {
	return e.currentTime()
}

// Inject delivers an event to a handler as soon as the engine loop is free.
// It is safe to call from any goroutine.
func (e *RealTimeEngine) Inject(event any, handler Handler) {
	e.post(func() {
		e.schedule(ScheduledEvent{
			Event:   event,
			Time:    e.currentTime(),
			Handler: handler,
		})
	})
}

// Invoke runs fn on the engine loop and waits for it to return. It is meant
// for reading handler state from other goroutines.
func (e *RealTimeEngine) Invoke(ctx context.Context, fn func()) error {
	finished := make(chan struct{})

	wrapped := func() {
		defer close(finished)
		fn()
	}

	select {
	case e.inbox <- wrapped:
	case <-e.done:
		return ErrEngineStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-e.done:
		return ErrEngineStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pause freezes the game clock. Injected events queue up until Continue.
func (e *RealTimeEngine) Pause() {
	e.post(func() {
		if e.paused {
			return
		}

		e.paused = true
		e.pausedAt = e.nowFunc()
	})
}

// Continue unfreezes the game clock.
func (e *RealTimeEngine) Continue() {
	e.post(func() {
		if !e.paused {
			return
		}

		e.paused = false
		e.pausedTotal += e.nowFunc().Sub(e.pausedAt)
	})
}

func (e *RealTimeEngine) post(fn func()) {
	select {
	case e.inbox <- fn:
	case <-e.done:
	}
}

// Run dispatches events until ctx is cancelled or a handler fails. A
// cancelled context is a normal shutdown and returns nil.
func (e *RealTimeEngine) Run(ctx context.Context) error {
	defer close(e.done)

	e.start = e.nowFunc()

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		if err := e.dispatchDue(); err != nil {
			return err
		}

		var wake <-chan time.Time
		if next, ok := e.nextTime(); ok && !e.paused {
			wait := next.Duration() - e.elapsed()
			if wait < 0 {
				wait = 0
			}
			resetTimer(timer, wait)
			wake = timer.C
		}

		select {
		case <-ctx.Done():
			return nil
		case fn := <-e.inbox:
			// Events that came due while waiting run first, so the clock
			// never passes a pending event.
			if err := e.dispatchDue(); err != nil {
				return err
			}

			fn()
		case <-wake:
		}
	}
}

func (e *RealTimeEngine) dispatchDue() error {
	if e.paused {
		return nil
	}

	limit := e.wallTime()

	for {
		evt, ok := e.popDue(limit)
		if !ok {
			break
		}

		if err := e.dispatch(e, evt); err != nil {
			return err
		}
	}

	e.advanceTo(limit)

	return nil
}

// elapsed is the wall time since Run started, minus time spent paused.
func (e *RealTimeEngine) elapsed() time.Duration {
	now := e.nowFunc()
	if e.paused {
		now = e.pausedAt
	}

	return now.Sub(e.start) - e.pausedTotal
}

func (e *RealTimeEngine) wallTime() VTimeInMs {
	return Ms(e.elapsed())
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}

	t.Reset(d)
}

var _ Engine = (*RealTimeEngine)(nil)
