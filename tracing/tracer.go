package tracing

// A Tracer can collect task traces.
type Tracer interface {
	StartTask(task Task)
	EndTask(task Task)
}
