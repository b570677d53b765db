package tracing

import (
	"cmp"
	"slices"
	"sync"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/monstercatch/datarecording"
	"github.com/sarchlab/monstercatch/timing"
)

// TaskTable is the table DBTracer writes finished tasks to.
const TaskTable = "task"

// ResultUnfinished marks tasks still open when the tracer terminated.
const ResultUnfinished = "unfinished"

type taskTableEntry struct {
	ID       string
	ParentID string
	Kind     string
	What     string
	Location string
	Result   string
	Value    int
	StartMs  uint64
	EndMs    uint64
}

// DBTracer is a tracer that stores tasks into a database.
type DBTracer struct {
	mu         sync.Mutex
	timeTeller timing.TimeTeller
	backend    datarecording.DataRecorder

	tracingTasks map[string]Task
}

// NewDBTracer creates a new DBTracer. Open tasks are written when the program
// exits through atexit.
func NewDBTracer(
	timeTeller timing.TimeTeller,
	dataRecorder datarecording.DataRecorder,
) *DBTracer {
	dataRecorder.CreateTable(TaskTable, taskTableEntry{})

	t := &DBTracer{
		timeTeller:   timeTeller,
		backend:      dataRecorder,
		tracingTasks: make(map[string]Task),
	}

	atexit.Register(t.Terminate)

	return t
}

// StartTask marks the start of a task.
func (t *DBTracer) StartTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	startingTaskMustBeValid(task)

	task.StartTime = t.timeTeller.CurrentTime()
	t.tracingTasks[task.ID] = task
}

func startingTaskMustBeValid(task Task) {
	if task.ID == "" {
		panic("task ID must be set")
	}

	if task.Kind == "" {
		panic("task kind must be set")
	}

	if task.What == "" {
		panic("task what must be set")
	}
}

// EndTask marks the end of a task and writes it.
func (t *DBTracer) EndTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	original, ok := t.tracingTasks[task.ID]
	if !ok {
		return
	}

	original.EndTime = t.timeTeller.CurrentTime()
	original.Result = task.Result
	original.Value = task.Value

	t.write(original)
	delete(t.tracingTasks, task.ID)
}

// Terminate writes the tasks that are still open, ending them now, and
// flushes the backend.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.timeTeller.CurrentTime()

	open := make([]Task, 0, len(t.tracingTasks))
	for _, task := range t.tracingTasks {
		open = append(open, task)
	}

	slices.SortFunc(open, func(a, b Task) int {
		return cmp.Or(
			cmp.Compare(a.StartTime, b.StartTime),
			cmp.Compare(a.ID, b.ID),
		)
	})

	for _, task := range open {
		task.EndTime = now
		task.Result = ResultUnfinished
		t.write(task)
	}

	t.tracingTasks = make(map[string]Task)
	t.backend.Flush()
}

func (t *DBTracer) write(task Task) {
	t.backend.InsertData(TaskTable, taskTableEntry{
		ID:       task.ID,
		ParentID: task.ParentID,
		Kind:     task.Kind,
		What:     task.What,
		Location: task.Location,
		Result:   task.Result,
		Value:    task.Value,
		StartMs:  uint64(task.StartTime),
		EndMs:    uint64(task.EndTime),
	})
}
