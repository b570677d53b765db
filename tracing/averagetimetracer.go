package tracing

import (
	"sync"

	"github.com/sarchlab/monstercatch/timing"
)

// AverageTimeTracer collects the average duration of a certain type of task.
// The filter sees the finished task, so it can select on the result.
type AverageTimeTracer struct {
	timeTeller    timing.TimeTeller
	filter        TaskFilter
	lock          sync.Mutex
	totalTime     timing.VTimeInMs
	inflightTasks map[string]Task
	taskCount     uint64
}

// NewAverageTimeTracer creates a new AverageTimeTracer.
func NewAverageTimeTracer(
	timeTeller timing.TimeTeller,
	filter TaskFilter,
) *AverageTimeTracer {
	return &AverageTimeTracer{
		timeTeller:    timeTeller,
		filter:        filter,
		inflightTasks: make(map[string]Task),
	}
}

// AverageTime returns the average duration of the selected tasks.
func (t *AverageTimeTracer) AverageTime() timing.VTimeInMs {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.taskCount == 0 {
		return 0
	}

	return t.totalTime / timing.VTimeInMs(t.taskCount)
}

// TotalCount returns the number of selected tasks.
func (t *AverageTimeTracer) TotalCount() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.taskCount
}

// StartTask records the task start time.
func (t *AverageTimeTracer) StartTask(task Task) {
	task.StartTime = t.timeTeller.CurrentTime()

	t.lock.Lock()
	t.inflightTasks[task.ID] = task
	t.lock.Unlock()
}

// EndTask records the end of the task.
func (t *AverageTimeTracer) EndTask(task Task) {
	t.lock.Lock()
	defer t.lock.Unlock()

	original, ok := t.inflightTasks[task.ID]
	if !ok {
		return
	}

	delete(t.inflightTasks, task.ID)

	original.EndTime = t.timeTeller.CurrentTime()
	original.Result = task.Result
	original.Value = task.Value

	if !t.filter(original) {
		return
	}

	t.totalTime += original.Duration()
	t.taskCount++
}
