package game

import "github.com/sarchlab/monstercatch/idgen"

// Timer events. Each is one atomic transition of the controller.
type (
	countdownTickEvent struct{}
	spawnEvent         struct{}
	expireEvent        struct{ entityID idgen.ID }
	fadeDoneEvent      struct{ entityID idgen.ID }
)

// Commands carry user input into the controller when it runs on an engine
// owned by another goroutine. Deliver them with RealTimeEngine.Inject.
type (
	StartCommand       struct{}
	PauseCommand       struct{}
	ResumeCommand      struct{}
	TogglePauseCommand struct{}
	RestartCommand     struct{}
	CatchCommand       struct{ ID idgen.ID }
)
