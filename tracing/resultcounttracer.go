package tracing

import "sync"

// ResultCountTracer counts how selected tasks ended.
type ResultCountTracer struct {
	filter      TaskFilter
	lock        sync.Mutex
	resultNames []string
	resultCount map[string]uint64
}

// NewResultCountTracer creates a new ResultCountTracer.
func NewResultCountTracer(filter TaskFilter) *ResultCountTracer {
	return &ResultCountTracer{
		filter:      filter,
		resultCount: make(map[string]uint64),
	}
}

// ResultNames returns the results seen so far, in the order they first
// appeared.
func (t *ResultCountTracer) ResultNames() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	return append([]string(nil), t.resultNames...)
}

// Count returns how many tasks ended with result.
func (t *ResultCountTracer) Count(result string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.resultCount[result]
}

// StartTask does nothing.
func (t *ResultCountTracer) StartTask(_ Task) {
	// Do nothing
}

// EndTask counts the result of the task.
func (t *ResultCountTracer) EndTask(task Task) {
	if !t.filter(task) {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	if _, ok := t.resultCount[task.Result]; !ok {
		t.resultNames = append(t.resultNames, task.Result)
	}

	t.resultCount[task.Result]++
}
