package tracing

import (
	"context"
	"strings"

	"github.com/sarchlab/monstercatch/datarecording"
	"github.com/sarchlab/monstercatch/timing"
)

// TaskQuery is used to define the tasks to be queried. Not all the field has to
// be set. If the fields are empty, the criteria is ignored.
type TaskQuery struct {
	// Use ID to select a single task by its ID.
	ID string

	// Use ParentID to select all the tasks that are children of a task.
	ParentID string

	// Use Kind to select all the tasks that are of a kind.
	Kind string

	// Use Result to select the tasks that ended a certain way.
	Result string

	// Enable time range selection.
	EnableTimeRange bool

	// Use StartTime to select tasks that overlaps with the given task range.
	StartTime, EndTime timing.VTimeInMs
}

// TraceReader can parse a trace file.
type TraceReader interface {
	// ListTasks returns the matching tasks ordered by start time.
	ListTasks(ctx context.Context, query TaskQuery) ([]Task, error)

	Close() error
}

// DBTraceReader reads tasks written by DBTracer.
type DBTraceReader struct {
	reader *datarecording.Reader
}

// NewDBTraceReader opens a trace file.
func NewDBTraceReader(filename string) (*DBTraceReader, error) {
	reader, err := datarecording.OpenReader(filename)
	if err != nil {
		return nil, err
	}

	return NewDBTraceReaderWithReader(reader), nil
}

// NewDBTraceReaderWithReader reads tasks through an open recording.
func NewDBTraceReaderWithReader(reader *datarecording.Reader) *DBTraceReader {
	return &DBTraceReader{reader: reader}
}

// ListTasks queries tasks.
func (r *DBTraceReader) ListTasks(
	ctx context.Context,
	query TaskQuery,
) ([]Task, error) {
	rows, err := datarecording.Select[taskTableEntry](
		ctx, r.reader, TaskTable, taskQueryFilter(query))
	if err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(rows))
	for _, e := range rows {
		tasks = append(tasks, Task{
			ID:        e.ID,
			ParentID:  e.ParentID,
			Kind:      e.Kind,
			What:      e.What,
			Location:  e.Location,
			Result:    e.Result,
			Value:     e.Value,
			StartTime: timing.VTimeInMs(e.StartMs),
			EndTime:   timing.VTimeInMs(e.EndMs),
		})
	}

	return tasks, nil
}

// RunInfo returns the properties of the run that wrote the trace.
func (r *DBTraceReader) RunInfo(
	ctx context.Context,
) ([]datarecording.RunInfo, error) {
	return r.reader.RunInfos(ctx)
}

// Close closes the trace file.
func (r *DBTraceReader) Close() error {
	return r.reader.Close()
}

func taskQueryFilter(query TaskQuery) datarecording.Filter {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		conds = append(conds, cond)
		args = append(args, arg)
	}

	if query.ID != "" {
		add("ID = ?", query.ID)
	}

	if query.ParentID != "" {
		add("ParentID = ?", query.ParentID)
	}

	if query.Kind != "" {
		add("Kind = ?", query.Kind)
	}

	if query.Result != "" {
		add("Result = ?", query.Result)
	}

	if query.EnableTimeRange {
		add("EndMs > ?", uint64(query.StartTime))
		add("StartMs < ?", uint64(query.EndTime))
	}

	return datarecording.Filter{
		Where:   strings.Join(conds, " AND "),
		Args:    args,
		OrderBy: "StartMs, ID",
	}
}
