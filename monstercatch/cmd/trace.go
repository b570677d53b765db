package cmd

import (
	"log"
	"strconv"
	"sync"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/monstercatch/datarecording"
	"github.com/sarchlab/monstercatch/timing"
	"github.com/sarchlab/monstercatch/tracing"
)

// gameTrace records sessions and entities into a trace file.
type gameTrace struct {
	*tracing.GameTracer

	once     sync.Once
	db       *tracing.DBTracer
	run      *datarecording.RunRecorder
	recorder datarecording.DataRecorder
}

// openTrace creates the trace database at path. The extra tracers see the
// same tasks. The trace is closed at exit unless Close runs first.
func openTrace(
	timeTeller timing.TimeTeller,
	path string,
	seed uint64,
	extra ...tracing.Tracer,
) (*gameTrace, error) {
	recorder, err := datarecording.New(path)
	if err != nil {
		return nil, err
	}

	run := datarecording.NewRunRecorder(recorder)
	run.Start()
	run.Set("Seed", strconv.FormatUint(seed, 10))

	db := tracing.NewDBTracer(timeTeller, recorder)

	t := &gameTrace{
		GameTracer: tracing.NewGameTracer(append(extra, db)...),
		db:         db,
		run:        run,
		recorder:   recorder,
	}
	atexit.Register(t.Close)

	log.Printf("Tracing to %s", datarecording.Filename(path))

	return t, nil
}

// Close writes open tasks and the run properties, then closes the file.
func (t *gameTrace) Close() {
	t.once.Do(func() {
		t.db.Terminate()
		t.run.End()

		if err := t.recorder.Close(); err != nil {
			log.Printf("close trace: %v", err)
		}
	})
}
