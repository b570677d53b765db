package timing

import (
	"container/heap"
)

// pendingEvent is a scheduled event plus the sequence number that keeps
// same-time events in scheduling order.
type pendingEvent struct {
	ScheduledEvent
	seq uint64
}

type eventQueue struct {
	events pendingHeap
}

func newEventQueue() *eventQueue {
	q := &eventQueue{}
	q.events = make([]*pendingEvent, 0)
	heap.Init(&q.events)

	return q
}

func (q *eventQueue) Push(evt *pendingEvent) {
	heap.Push(&q.events, evt)
}

func (q *eventQueue) Pop() *pendingEvent {
	if q.events.Len() == 0 {
		return nil
	}

	return heap.Pop(&q.events).(*pendingEvent)
}

func (q *eventQueue) Peek() *pendingEvent {
	if q.events.Len() == 0 {
		return nil
	}

	return q.events[0]
}

func (q *eventQueue) Len() int {
	return q.events.Len()
}

type pendingHeap []*pendingEvent

func (h pendingHeap) Len() int { return len(h) }

func (h pendingHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}

	return h[i].seq < h[j].seq
}

func (h pendingHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *pendingHeap) Push(x any) {
	*h = append(*h, x.(*pendingEvent))
}

func (h *pendingHeap) Pop() any {
	old := *h
	n := len(old)
	evt := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]

	return evt
}
