package tracing

import (
	"fmt"

	"github.com/sarchlab/monstercatch/game"
	"github.com/sarchlab/monstercatch/idgen"
)

// SessionSource is the part of the controller the tracer reads.
type SessionSource interface {
	Name() string
	Session() game.Session
}

// GameTracer turns controller notifications into tasks. A session task opens
// with the first notification of a running session and closes when the
// session ends. An entity task opens at spawn and closes at catch, escape or
// clearing.
type GameTracer struct {
	game.NopListener

	tracers []Tracer
	source  SessionSource

	session Task
	open    map[idgen.ID]Task
}

// NewGameTracer creates a tracer that feeds tracers.
func NewGameTracer(tracers ...Tracer) *GameTracer {
	return &GameTracer{
		tracers: tracers,
		open:    make(map[idgen.ID]Task),
	}
}

// Attach sets the controller whose sessions are traced.
func (t *GameTracer) Attach(source SessionSource) {
	t.source = source
}

// OnScoreChanged may open a session task.
func (t *GameTracer) OnScoreChanged(int) {
	t.syncSession()
}

// OnTimeChanged may open a session task.
func (t *GameTracer) OnTimeChanged(int) {
	t.syncSession()
}

// OnLivesChanged may open a session task.
func (t *GameTracer) OnLivesChanged(int) {
	t.syncSession()
}

// OnEntitySpawned opens an entity task.
func (t *GameTracer) OnEntitySpawned(e game.Entity) {
	t.syncSession()

	task := Task{
		ID:       t.session.ID + "/" + e.ID.String(),
		ParentID: t.session.ID,
		Kind:     KindEntity,
		What:     e.Kind.Tag,
		Location: fmt.Sprintf("%.0f,%.0f", e.Position.X, e.Position.Y),
	}

	t.open[e.ID] = task
	t.start(task)
}

// OnEntityCaught closes the entity task at the moment of the catch.
func (t *GameTracer) OnEntityCaught(e game.Entity, points int) {
	t.close(e.ID, "caught", points)
}

// OnEntityRemoved closes escaped and cleared entity tasks.
func (t *GameTracer) OnEntityRemoved(id idgen.ID, reason game.RemovalReason) {
	t.close(id, reason.String(), 0)
}

// OnSessionEnded closes the session task.
func (t *GameTracer) OnSessionEnded(outcome game.Outcome, finalScore int) {
	if t.session.ID == "" {
		return
	}

	task := t.session
	task.Result = outcome.String()
	task.Value = finalScore

	t.end(task)
	t.session = Task{}
}

func (t *GameTracer) syncSession() {
	if t.source == nil {
		return
	}

	s := t.source.Session()
	if s.Status != game.StatusRunning || s.ID == t.session.ID {
		return
	}

	t.session = Task{
		ID:       s.ID,
		Kind:     KindSession,
		What:     KindSession,
		Location: t.source.Name(),
	}
	t.start(t.session)
}

func (t *GameTracer) close(id idgen.ID, result string, value int) {
	task, ok := t.open[id]
	if !ok {
		return
	}

	delete(t.open, id)

	task.Result = result
	task.Value = value
	t.end(task)
}

func (t *GameTracer) start(task Task) {
	for _, tracer := range t.tracers {
		tracer.StartTask(task)
	}
}

func (t *GameTracer) end(task Task) {
	for _, tracer := range t.tracers {
		tracer.EndTask(task)
	}
}

var _ game.Listener = (*GameTracer)(nil)
