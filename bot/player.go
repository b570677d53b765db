// Package bot provides a scripted player that plays sessions on the
// virtual-time engine.
package bot

import (
	"fmt"
	"time"

	"github.com/sarchlab/monstercatch/game"
	"github.com/sarchlab/monstercatch/idgen"
	"github.com/sarchlab/monstercatch/timing"
)

// Catcher is the part of the controller the player uses.
type Catcher interface {
	Catch(id idgen.ID)
}

// Stats counts what the player did and what happened to the entities.
type Stats struct {
	Spawned  int
	Attempts int
	Caught   int
	Expired  int
	Points   int
}

type clickEvent struct {
	entityID idgen.ID
}

// Player reacts to every spawn. With probability Accuracy it clicks the
// entity after a reaction delay drawn from [ReactionMin, ReactionMax).
// Clicks that arrive after the entity escaped are wasted, like a real
// player's. Clicks on entities cleared by the end of a session are dropped.
type Player struct {
	game.NopListener

	engine  timing.EventScheduler
	rng     game.Rand
	target  Catcher
	stats   Stats
	pending map[idgen.ID]bool
	endedAt timing.VTimeInMs

	Accuracy    float64
	ReactionMin time.Duration
	ReactionMax time.Duration
}

// NewPlayer creates a player that schedules its clicks on engine.
func NewPlayer(engine timing.EventScheduler, rng game.Rand) *Player {
	return &Player{
		engine:      engine,
		rng:         rng,
		pending:     make(map[idgen.ID]bool),
		Accuracy:    0.8,
		ReactionMin: 400 * time.Millisecond,
		ReactionMax: 2200 * time.Millisecond,
	}
}

// Name is used by the event logger.
func (p *Player) Name() string {
	return "Bot"
}

// Attach sets the controller the player clicks on.
func (p *Player) Attach(target Catcher) {
	p.target = target
}

// Stats returns the counters since the last Reset.
func (p *Player) Stats() Stats {
	return p.stats
}

// Reset clears the counters.
func (p *Player) Reset() {
	p.stats = Stats{}
}

// OnEntitySpawned decides whether and when to click the new entity.
func (p *Player) OnEntitySpawned(e game.Entity) {
	p.stats.Spawned++

	if p.rng.Float64() >= p.Accuracy {
		return
	}

	spread := p.ReactionMax - p.ReactionMin
	delay := p.ReactionMin + time.Duration(p.rng.Float64()*float64(spread))

	p.pending[e.ID] = true
	p.engine.Schedule(timing.ScheduledEvent{
		Event:   &clickEvent{entityID: e.ID},
		Time:    p.engine.CurrentTime() + timing.Ms(delay),
		Handler: p,
	})
}

// OnEntityCaught counts successful clicks.
func (p *Player) OnEntityCaught(_ game.Entity, points int) {
	p.stats.Caught++
	p.stats.Points += points
}

// OnEntityRemoved counts escapes.
func (p *Player) OnEntityRemoved(id idgen.ID, reason game.RemovalReason) {
	if reason == game.RemovalExpired {
		p.stats.Expired++
	}

	if reason == game.RemovalCleared {
		delete(p.pending, id)
	}
}

// OnSessionEnded remembers when the session finished.
func (p *Player) OnSessionEnded(game.Outcome, int) {
	p.endedAt = p.engine.CurrentTime()
}

// EndedAt returns the game-clock time of the last session end.
func (p *Player) EndedAt() timing.VTimeInMs {
	return p.endedAt
}

// Handle fires a scheduled click.
func (p *Player) Handle(event any) error {
	click, ok := event.(*clickEvent)
	if !ok {
		return fmt.Errorf("unknown event type: %T", event)
	}

	if !p.pending[click.entityID] {
		return nil
	}

	delete(p.pending, click.entityID)
	p.stats.Attempts++

	if p.target != nil {
		p.target.Catch(click.entityID)
	}

	return nil
}

var (
	_ game.Listener  = (*Player)(nil)
	_ timing.Handler = (*Player)(nil)
)
