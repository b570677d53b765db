package datarecording

import (
	"os"
	"strings"
	"time"
)

// RunInfo is one property of a program run.
type RunInfo struct {
	Property string
	Value    string
}

// RunTable is the table RunRecorder writes to.
const RunTable = "run_info"

const runTimeLayout = "2006-01-02 15:04:05.000"

// RunRecorder records how and when the program was run.
type RunRecorder struct {
	recorder DataRecorder
	entries  []RunInfo
	now      func() time.Time
}

// NewRunRecorder creates the run table on recorder.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	recorder.CreateTable(RunTable, RunInfo{})

	return &RunRecorder{
		recorder: recorder,
		now:      time.Now,
	}
}

// Start remembers the start time and the command line.
func (r *RunRecorder) Start() {
	r.entries = append(r.entries,
		RunInfo{"Start Time", r.now().Format(runTimeLayout)},
		RunInfo{"Command", strings.Join(os.Args, " ")},
	)

	if wd, err := os.Getwd(); err == nil {
		r.entries = append(r.entries, RunInfo{"Working Directory", wd})
	}
}

// Set adds a free-form property, such as the seed.
func (r *RunRecorder) Set(property, value string) {
	r.entries = append(r.entries, RunInfo{property, value})
}

// End writes the collected properties and the end time.
func (r *RunRecorder) End() {
	r.entries = append(r.entries,
		RunInfo{"End Time", r.now().Format(runTimeLayout)})

	for _, entry := range r.entries {
		r.recorder.InsertData(RunTable, entry)
	}

	r.entries = nil

	r.recorder.Flush()
}
