package tracing

import "github.com/sarchlab/monstercatch/timing"

// Task kinds recorded by GameTracer.
const (
	KindSession = "session"
	KindEntity  = "entity"
)

// A Task is a span of game time: a whole session, or the life of one entity
// from spawn to catch or escape.
type Task struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id"`
	Kind     string `json:"kind"`
	What     string `json:"what"`
	Location string `json:"location"`

	// Result is how the task ended: the removal reason of an entity or the
	// outcome of a session.
	Result string `json:"result"`

	// Value is the points of a caught entity or the final score of a session.
	Value int `json:"value"`

	StartTime timing.VTimeInMs `json:"start_time"`
	EndTime   timing.VTimeInMs `json:"end_time"`
}

// Duration returns how long the task lasted.
func (t Task) Duration() timing.VTimeInMs {
	return t.EndTime - t.StartTime
}

// TaskFilter is a function that can filter interesting tasks. If this function
// returns true, the task is considered useful.
type TaskFilter func(t Task) bool

// CaughtEntities selects the entities the player caught.
func CaughtEntities(t Task) bool {
	return t.Kind == KindEntity && t.Result == "caught"
}
