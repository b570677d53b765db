package game

import (
	"github.com/sarchlab/monstercatch/idgen"
	"github.com/sarchlab/monstercatch/timing"
)

// Status is the lifecycle state of a session.
type Status int

// Session statuses. Idle and Ended are the only statuses without timers.
const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Outcome classifies how a session ended.
type Outcome int

// Outcomes. OutcomeAbandoned is only produced by Restart on a live session.
const (
	OutcomeNone Outcome = iota
	OutcomeSurvived
	OutcomeOutOfLives
	OutcomeAbandoned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeSurvived:
		return "survived"
	case OutcomeOutOfLives:
		return "out of lives"
	case OutcomeAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// RemovalReason tells the presentation why an entity left the arena.
type RemovalReason int

// Removal reasons.
const (
	RemovalCaught RemovalReason = iota
	RemovalExpired
	RemovalCleared
)

func (r RemovalReason) String() string {
	switch r {
	case RemovalCaught:
		return "caught"
	case RemovalExpired:
		return "expired"
	case RemovalCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Session is the mutable per-playthrough state.
type Session struct {
	ID            string
	Score         int
	Lives         int
	TimeRemaining int
	Status        Status
	Outcome       Outcome
}

// Entity is a spawned, catchable instance of a kind.
type Entity struct {
	ID        idgen.ID
	Kind      EntityKind
	Position  Position
	SpawnTime timing.VTimeInMs
}

// ExpiresAt is the game-clock time at which the entity escapes.
func (e Entity) ExpiresAt() timing.VTimeInMs {
	return e.SpawnTime + timing.Ms(e.Kind.Lifetime)
}
