// Package timing provides the discrete-event engines that drive the game
// clock. Every timer in the game is a ScheduledEvent; engines hand events to
// their Handler one at a time, in time order.
package timing

import (
	"time"

	"github.com/sarchlab/monstercatch/hooking"
	"github.com/sarchlab/monstercatch/idgen"
)

// VTimeInMs is a point on the game clock, in milliseconds since the engine
// started.
type VTimeInMs uint64

// Ms converts a duration to game-clock milliseconds, truncating any
// sub-millisecond remainder. Negative durations convert to zero.
func Ms(d time.Duration) VTimeInMs {
	if d <= 0 {
		return 0
	}

	return VTimeInMs(d / time.Millisecond)
}

// Duration converts a game-clock time back to a duration since the start.
func (t VTimeInMs) Duration() time.Duration {
	return time.Duration(t) * time.Millisecond
}

// Handler processes events of various types.
// Events are plain data structs. Handlers use type switching:
//
//	func (h *MyHandler) Handle(event any) error {
//	    switch e := event.(type) {
//	    case *MyEvent:
//	        // handle MyEvent
//	    default:
//	        return fmt.Errorf("unknown event type: %T", event)
//	    }
//	    return nil
//	}
type Handler interface {
	Handle(event any) error
}

// TimeTeller exposes the current game-clock time.
type TimeTeller interface {
	CurrentTime() VTimeInMs
}

// EventScheduler schedules and cancels events on the timeline.
type EventScheduler interface {
	TimeTeller

	// Schedule registers an event and returns the ID that can cancel it.
	Schedule(event ScheduledEvent) idgen.ID

	// Cancel drops a pending event. It returns false if the event already
	// fired, was already cancelled, or was never scheduled.
	Cancel(id idgen.ID) bool
}

// Engine is an EventScheduler that observers can hook into.
type Engine interface {
	hooking.Hookable
	EventScheduler
}

// ScheduledEvent is the engine-facing wrapper for user-defined events.
type ScheduledEvent struct {
	// ID is assigned by the engine when the event is scheduled.
	ID idgen.ID

	// Event is the data payload to be delivered to the handler, typically a
	// pointer to a struct defined by the handler's package.
	Event any

	// Time is when the event should be processed.
	Time VTimeInMs

	// Handler is the component that will process this event.
	Handler Handler

	// IsSecondary events are processed after all primary events of the same
	// time.
	IsSecondary bool
}

// Named is implemented by handlers that want a readable name in logs.
type Named interface {
	Name() string
}

// HookPosBeforeEvent is a hook position that triggers before handling an
// event. The hook item is the *ScheduledEvent.
var HookPosBeforeEvent = &hooking.HookPos{Name: "BeforeEvent"}

// HookPosAfterEvent is a hook position that triggers after handling an event.
var HookPosAfterEvent = &hooking.HookPos{Name: "AfterEvent"}
