package timing

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/sarchlab/monstercatch/hooking"
	"github.com/sarchlab/monstercatch/idgen"
)

// timeline is the bookkeeping shared by both engines: the primary and
// secondary queues, the current time and the set of events that are still
// allowed to fire.
type timeline struct {
	*hooking.HookableBase

	lock sync.Mutex
	now  VTimeInMs
	seq  uint64
	ids  idgen.Generator

	queue          *eventQueue
	secondaryQueue *eventQueue
	pending        map[idgen.ID]struct{}
}

func newTimeline() *timeline {
	return &timeline{
		HookableBase:   hooking.NewHookableBase(),
		ids:            idgen.New(),
		queue:          newEventQueue(),
		secondaryQueue: newEventQueue(),
		pending:        make(map[idgen.ID]struct{}),
	}
}

func (t *timeline) schedule(evt ScheduledEvent) idgen.ID {
	t.lock.Lock()
	defer t.lock.Unlock()

	if evt.Time < t.now {
		panic(fmt.Sprintf(
			"timing: cannot schedule event in the past, evt %s @ %d, now %d",
			reflect.TypeOf(evt.Event), evt.Time, t.now,
		))
	}

	evt.ID = t.ids.Generate()
	t.seq++
	p := &pendingEvent{ScheduledEvent: evt, seq: t.seq}
	t.pending[evt.ID] = struct{}{}

	if evt.IsSecondary {
		t.secondaryQueue.Push(p)
	} else {
		t.queue.Push(p)
	}

	return evt.ID
}

func (t *timeline) cancel(id idgen.ID) bool {
	t.lock.Lock()
	defer t.lock.Unlock()

	if _, ok := t.pending[id]; !ok {
		return false
	}

	delete(t.pending, id)

	return true
}

func (t *timeline) currentTime() VTimeInMs {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.now
}

// advanceTo moves the clock forward. It never moves the clock back.
func (t *timeline) advanceTo(now VTimeInMs) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if now > t.now {
		t.now = now
	}
}

// numPending reports how many events are still allowed to fire.
func (t *timeline) numPending() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return len(t.pending)
}

// nextTime returns the time of the earliest live event.
func (t *timeline) nextTime() (VTimeInMs, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.dropCancelledHeads()

	p := t.peekLocked()
	if p == nil {
		return 0, false
	}

	return p.Time, true
}

// popDue removes and returns the earliest live event whose time is not later
// than limit. Cancelled events are discarded on the way.
func (t *timeline) popDue(limit VTimeInMs) (*ScheduledEvent, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.dropCancelledHeads()

	p := t.peekLocked()
	if p == nil || p.Time > limit {
		return nil, false
	}

	if p == t.queue.Peek() {
		t.queue.Pop()
	} else {
		t.secondaryQueue.Pop()
	}

	delete(t.pending, p.ID)

	if p.Time < t.now {
		panic(fmt.Sprintf(
			"timing: cannot run event in the past, evt %s @ %d, now %d",
			reflect.TypeOf(p.Event), p.Time, t.now,
		))
	}

	t.now = p.Time
	evt := p.ScheduledEvent

	return &evt, true
}

func (t *timeline) dropCancelledHeads() {
	for _, q := range []*eventQueue{t.queue, t.secondaryQueue} {
		for q.Len() > 0 {
			if _, ok := t.pending[q.Peek().ID]; ok {
				break
			}
			q.Pop()
		}
	}
}

func (t *timeline) peekLocked() *pendingEvent {
	primary := t.queue.Peek()
	secondary := t.secondaryQueue.Peek()

	switch {
	case primary == nil:
		return secondary
	case secondary == nil:
		return primary
	case primary.Time <= secondary.Time:
		return primary
	default:
		return secondary
	}
}

// dispatch hands one event to its handler, surrounded by the hooks.
func (t *timeline) dispatch(domain hooking.Hookable, evt *ScheduledEvent) error {
	hookCtx := hooking.HookCtx{
		Domain: domain,
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	t.InvokeHook(hookCtx)

	var err error
	if evt.Handler != nil {
		err = evt.Handler.Handle(evt.Event)
	}

	hookCtx.Pos = HookPosAfterEvent
	hookCtx.Detail = err
	t.InvokeHook(hookCtx)

	if err != nil {
		return fmt.Errorf("timing: handling %s @ %d: %w",
			reflect.TypeOf(evt.Event), evt.Time, err)
	}

	return nil
}
