package game

import (
	"log"

	"github.com/sarchlab/monstercatch/idgen"
)

// Listener receives data-only notifications after every state change. All
// calls happen on the engine goroutine, in the order the changes happen.
type Listener interface {
	OnScoreChanged(score int)
	OnTimeChanged(timeRemaining int)
	OnLivesChanged(lives int)
	OnEntitySpawned(entity Entity)
	OnEntityCaught(entity Entity, points int)
	OnEntityRemoved(id idgen.ID, reason RemovalReason)
	OnSessionEnded(outcome Outcome, finalScore int)
	OnMessage(title, body string, showPrompt bool)
	OnMessageHidden()
}

// NopListener ignores every notification. Embed it to implement only the
// notifications you care about.
type NopListener struct{}

func (NopListener) OnScoreChanged(int)                      {}
func (NopListener) OnTimeChanged(int)                       {}
func (NopListener) OnLivesChanged(int)                      {}
func (NopListener) OnEntitySpawned(Entity)                  {}
func (NopListener) OnEntityCaught(Entity, int)              {}
func (NopListener) OnEntityRemoved(idgen.ID, RemovalReason) {}
func (NopListener) OnSessionEnded(Outcome, int)             {}
func (NopListener) OnMessage(string, string, bool)          {}
func (NopListener) OnMessageHidden()                        {}

// Listeners fans every notification out to each listener in order.
type Listeners []Listener

func (ls Listeners) OnScoreChanged(score int) {
	for _, l := range ls {
		l.OnScoreChanged(score)
	}
}

func (ls Listeners) OnTimeChanged(timeRemaining int) {
	for _, l := range ls {
		l.OnTimeChanged(timeRemaining)
	}
}

func (ls Listeners) OnLivesChanged(lives int) {
	for _, l := range ls {
		l.OnLivesChanged(lives)
	}
}

func (ls Listeners) OnEntitySpawned(entity Entity) {
	for _, l := range ls {
		l.OnEntitySpawned(entity)
	}
}

func (ls Listeners) OnEntityCaught(entity Entity, points int) {
	for _, l := range ls {
		l.OnEntityCaught(entity, points)
	}
}

func (ls Listeners) OnEntityRemoved(id idgen.ID, reason RemovalReason) {
	for _, l := range ls {
		l.OnEntityRemoved(id, reason)
	}
}

func (ls Listeners) OnSessionEnded(outcome Outcome, finalScore int) {
	for _, l := range ls {
		l.OnSessionEnded(outcome, finalScore)
	}
}

func (ls Listeners) OnMessage(title, body string, showPrompt bool) {
	for _, l := range ls {
		l.OnMessage(title, body, showPrompt)
	}
}

func (ls Listeners) OnMessageHidden() {
	for _, l := range ls {
		l.OnMessageHidden()
	}
}

// LogListener writes a line per notification.
type LogListener struct {
	*log.Logger
}

// NewLogListener returns a LogListener writing into logger.
func NewLogListener(logger *log.Logger) *LogListener {
	return &LogListener{Logger: logger}
}

func (l *LogListener) OnScoreChanged(score int) {
	l.Printf("score=%d", score)
}

func (l *LogListener) OnTimeChanged(timeRemaining int) {
	l.Printf("time=%d", timeRemaining)
}

func (l *LogListener) OnLivesChanged(lives int) {
	l.Printf("lives=%d", lives)
}

func (l *LogListener) OnEntitySpawned(e Entity) {
	l.Printf("spawned id=%s kind=%s at=(%.0f,%.0f) t=%d",
		e.ID, e.Kind.Tag, e.Position.X, e.Position.Y, e.SpawnTime)
}

func (l *LogListener) OnEntityCaught(e Entity, points int) {
	l.Printf("caught id=%s kind=%s +%d", e.ID, e.Kind.Tag, points)
}

func (l *LogListener) OnEntityRemoved(id idgen.ID, reason RemovalReason) {
	l.Printf("removed id=%s reason=%s", id, reason)
}

func (l *LogListener) OnSessionEnded(outcome Outcome, finalScore int) {
	l.Printf("session ended outcome=%s score=%d", outcome, finalScore)
}

func (l *LogListener) OnMessage(title, body string, showPrompt bool) {
	l.Printf("message %q %q prompt=%t", title, body, showPrompt)
}

func (l *LogListener) OnMessageHidden() {
	l.Printf("message hidden")
}

var (
	_ Listener = NopListener{}
	_ Listener = Listeners(nil)
	_ Listener = (*LogListener)(nil)
)
