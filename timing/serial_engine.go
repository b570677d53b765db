package timing

import (
	"sync"
	"time"

	"github.com/sarchlab/monstercatch/idgen"
)

// SerialEngine processes scheduled events sequentially on a virtual clock.
// Time only moves when Run, RunUntil or Advance is called, which makes game
// sessions fully reproducible.
type SerialEngine struct {
	*timeline

	singleRunLock sync.Mutex
}

// NewSerialEngine creates a SerialEngine whose clock starts at 0.
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{timeline: newTimeline()}
}

// Schedule registers an event to be handled in the future.
func (e *SerialEngine) Schedule(evt ScheduledEvent) idgen.ID {
	return e.schedule(evt)
}

// Cancel drops a pending event.
func (e *SerialEngine) Cancel(id idgen.ID) bool {
	return e.cancel(id)
}

// CurrentTime returns the time of the most recently executed event, or the
// time the clock was last advanced to.
func (e *SerialEngine) CurrentTime() VTimeInMs {
	return e.currentTime()
}

// Pending returns the number of events that will still fire.
func (e *SerialEngine) Pending() int {
	return e.numPending()
}

// Run processes all scheduled events until the queue drains. The first
// handler error stops the run and is returned.
func (e *SerialEngine) Run() error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	for {
		evt, ok := e.popDue(^VTimeInMs(0))
		if !ok {
			return nil
		}

		if err := e.dispatch(e, evt); err != nil {
			return err
		}
	}
}

// RunUntil processes every event scheduled at or before t, then moves the
// clock to t.
func (e *SerialEngine) RunUntil(t VTimeInMs) error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	for {
		evt, ok := e.popDue(t)
		if !ok {
			break
		}

		if err := e.dispatch(e, evt); err != nil {
			return err
		}
	}

	e.advanceTo(t)

	return nil
}

// Advance runs the clock forward by d.
func (e *SerialEngine) Advance(d time.Duration) error {
	return e.RunUntil(e.CurrentTime() + Ms(d))
}

var _ Engine = (*SerialEngine)(nil)
