package timing

import (
	"log"
	"reflect"

	"github.com/sarchlab/monstercatch/hooking"
)

// EventLogger is a hook that prints every dispatched event.
type EventLogger struct {
	*log.Logger
}

// NewEventLogger returns an EventLogger which will write in to the logger.
func NewEventLogger(logger *log.Logger) *EventLogger {
	return &EventLogger{Logger: logger}
}

// Func writes the event information into the logger.
func (h *EventLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(*ScheduledEvent)
	if !ok {
		return
	}

	if named, ok := evt.Handler.(Named); ok {
		h.Printf("%8d ms, %s -> %s", evt.Time, reflect.TypeOf(evt.Event), named.Name())
		return
	}

	h.Printf("%8d ms, %s", evt.Time, reflect.TypeOf(evt.Event))
}
