// Package game implements the monster-catching session controller.
//
// The controller is a timing.Handler. The countdown, the spawn loop, entity
// expiry and the catch animation are all events on the engine, so every timer
// firing is one guarded state transition. User input arrives either as direct
// method calls from the goroutine that drives the engine, or as command
// events injected into a real-time engine.
package game

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/sarchlab/monstercatch/idgen"
	"github.com/sarchlab/monstercatch/timing"
)

// Controller owns one game: the session, the live entities and the two
// recurring timers.
type Controller struct {
	name     string
	engine   timing.EventScheduler
	cfg      Config
	catalog  Catalog
	rng      Rand
	ids      idgen.Generator
	listener Listener

	session Session

	live    map[idgen.ID]*Entity
	order   []idgen.ID
	fading  map[idgen.ID]*Entity
	overdue map[idgen.ID]bool

	countdownEvt idgen.ID
	spawnEvt     idgen.ID
}

// Name returns the name given at build time.
func (c *Controller) Name() string {
	return c.name
}

// Session returns a copy of the current session.
func (c *Controller) Session() Session {
	return c.session
}

// Config returns the rules the controller was built with.
func (c *Controller) Config() Config {
	return c.cfg
}

// LiveEntities returns the catchable entities in arrival order. Entities
// playing their catch animation are not included.
func (c *Controller) LiveEntities() []Entity {
	entities := make([]Entity, 0, len(c.order))
	for _, id := range c.order {
		entities = append(entities, *c.live[id])
	}

	return entities
}

// NumLiveEntities returns the number of catchable entities.
func (c *Controller) NumLiveEntities() int {
	return len(c.live)
}

// CanPause reports whether Pause or Resume would have an effect.
func (c *Controller) CanPause() bool {
	return c.session.Status == StatusRunning || c.session.Status == StatusPaused
}

// Handle processes timer events and injected commands.
func (c *Controller) Handle(event any) error {
	switch e := event.(type) {
	case *countdownTickEvent:
		c.tick()
	case *spawnEvent:
		c.spawn()
	case *expireEvent:
		c.expire(e.entityID)
	case *fadeDoneEvent:
		c.finishFade(e.entityID)
	case *StartCommand:
		c.Start()
	case *PauseCommand:
		c.Pause()
	case *ResumeCommand:
		c.Resume()
	case *TogglePauseCommand:
		c.TogglePause()
	case *RestartCommand:
		c.Restart()
	case *CatchCommand:
		c.Catch(e.ID)
	default:
		return fmt.Errorf("unknown event type: %T", event)
	}

	return nil
}

// Start begins a new session from Idle or Ended. On a live session it only
// re-sends the scoreboard.
func (c *Controller) Start() {
	switch c.session.Status {
	case StatusRunning, StatusPaused:
		c.notifyScoreboard()
		return
	}

	c.clearEntities()
	c.session = c.freshSession(StatusRunning)

	c.notifyScoreboard()
	c.listener.OnMessageHidden()

	c.scheduleTick()
	c.scheduleSpawn()
}

// Pause suspends the countdown and the spawn loop.
func (c *Controller) Pause() {
	if c.session.Status != StatusRunning {
		return
	}

	c.session.Status = StatusPaused
	c.cancelTimers()

	c.listener.OnMessage(PausedTitle, PausedBody, false)
}

// Resume restarts the countdown and the spawn loop. Entities whose lifetime
// ran out during the pause escape now, in arrival order.
func (c *Controller) Resume() {
	if c.session.Status != StatusPaused {
		return
	}

	c.session.Status = StatusRunning
	c.listener.OnMessageHidden()

	for _, id := range append([]idgen.ID(nil), c.order...) {
		if c.overdue[id] {
			c.expire(id)
		}
	}

	if c.session.Status != StatusRunning {
		return
	}

	c.scheduleTick()
	c.scheduleSpawn()
}

// TogglePause pauses a running session or resumes a paused one.
func (c *Controller) TogglePause() {
	switch c.session.Status {
	case StatusRunning:
		c.Pause()
	case StatusPaused:
		c.Resume()
	}
}

// Restart abandons a live session, then returns to Idle with the start
// prompt.
func (c *Controller) Restart() {
	switch c.session.Status {
	case StatusRunning, StatusPaused:
		c.end(OutcomeAbandoned)
	}

	c.session = c.freshSession(StatusIdle)

	c.notifyScoreboard()
	c.listener.OnMessage(WelcomeTitle, WelcomeBody, true)
}

// Catch awards the entity's points if it is still live. Catching an entity
// that already expired or was caught is a no-op.
func (c *Controller) Catch(id idgen.ID) {
	if c.session.Status != StatusRunning {
		return
	}

	e, ok := c.live[id]
	if !ok {
		return
	}

	c.removeLive(id)
	c.session.Score += e.Kind.Points

	c.listener.OnScoreChanged(c.session.Score)
	c.listener.OnEntityCaught(*e, e.Kind.Points)

	if c.cfg.CatchFade <= 0 {
		c.listener.OnEntityRemoved(id, RemovalCaught)
		return
	}

	// The fade ends after every other event of the same millisecond.
	c.fading[id] = e
	c.engine.Schedule(timing.ScheduledEvent{
		Event:       &fadeDoneEvent{entityID: id},
		Time:        c.later(c.cfg.CatchFade),
		Handler:     c,
		IsSecondary: true,
	})
}

func (c *Controller) tick() {
	c.countdownEvt = 0

	if c.session.Status != StatusRunning {
		return
	}

	c.session.TimeRemaining--
	c.listener.OnTimeChanged(c.session.TimeRemaining)

	if c.session.TimeRemaining <= 0 {
		c.end(OutcomeSurvived)
		return
	}

	c.scheduleTick()
}

func (c *Controller) spawn() {
	c.spawnEvt = 0

	if c.session.Status != StatusRunning {
		return
	}

	kind := c.catalog[c.rng.IntN(len(c.catalog))]
	e := &Entity{
		ID:        c.ids.Generate(),
		Kind:      kind,
		Position:  c.cfg.Arena.RandomPosition(c.rng),
		SpawnTime: c.engine.CurrentTime(),
	}

	c.live[e.ID] = e
	c.order = append(c.order, e.ID)

	c.engine.Schedule(timing.ScheduledEvent{
		Event:   &expireEvent{entityID: e.ID},
		Time:    e.ExpiresAt(),
		Handler: c,
	})

	c.listener.OnEntitySpawned(*e)

	c.scheduleSpawn()
}

// expire is guarded by presence, so it loses every race against Catch and
// against the clearing done by end.
func (c *Controller) expire(id idgen.ID) {
	if _, ok := c.live[id]; !ok {
		return
	}

	if c.session.Status == StatusPaused {
		c.overdue[id] = true
		return
	}

	if c.session.Status != StatusRunning {
		return
	}

	c.removeLive(id)
	c.session.Lives--

	c.listener.OnEntityRemoved(id, RemovalExpired)
	c.listener.OnLivesChanged(c.session.Lives)

	if c.session.Lives <= 0 {
		c.end(OutcomeOutOfLives)
	}
}

func (c *Controller) finishFade(id idgen.ID) {
	if _, ok := c.fading[id]; !ok {
		return
	}

	delete(c.fading, id)
	c.listener.OnEntityRemoved(id, RemovalCaught)
}

func (c *Controller) end(outcome Outcome) {
	c.session.Status = StatusEnded
	c.session.Outcome = outcome

	c.cancelTimers()
	c.clearEntities()

	c.listener.OnSessionEnded(outcome, c.session.Score)

	title, body := EndMessage(outcome, c.session.Score)
	c.listener.OnMessage(title, body, true)
}

func (c *Controller) scheduleTick() {
	if c.countdownEvt != 0 {
		return
	}

	c.countdownEvt = c.engine.Schedule(timing.ScheduledEvent{
		Event:   &countdownTickEvent{},
		Time:    c.later(c.cfg.TickInterval),
		Handler: c,
	})
}

func (c *Controller) scheduleSpawn() {
	if c.spawnEvt != 0 {
		return
	}

	spread := c.cfg.SpawnDelayMax - c.cfg.SpawnDelayMin
	delay := c.cfg.SpawnDelayMin +
		time.Duration(c.rng.Float64()*float64(spread))

	c.spawnEvt = c.engine.Schedule(timing.ScheduledEvent{
		Event:   &spawnEvent{},
		Time:    c.later(delay),
		Handler: c,
	})
}

func (c *Controller) cancelTimers() {
	if c.countdownEvt != 0 {
		c.engine.Cancel(c.countdownEvt)
		c.countdownEvt = 0
	}

	if c.spawnEvt != 0 {
		c.engine.Cancel(c.spawnEvt)
		c.spawnEvt = 0
	}
}

// clearEntities drops live and fading entities without any expiry side
// effects. Their pending expiry and fade events become no-ops.
func (c *Controller) clearEntities() {
	for _, id := range c.order {
		c.listener.OnEntityRemoved(id, RemovalCleared)
	}

	for _, id := range slices.Sorted(maps.Keys(c.fading)) {
		c.listener.OnEntityRemoved(id, RemovalCleared)
	}

	c.live = make(map[idgen.ID]*Entity)
	c.order = nil
	c.fading = make(map[idgen.ID]*Entity)
	c.overdue = make(map[idgen.ID]bool)
}

func (c *Controller) removeLive(id idgen.ID) {
	delete(c.live, id)
	delete(c.overdue, id)

	for i, other := range c.order {
		if other == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Controller) freshSession(status Status) Session {
	return Session{
		ID:            idgen.NewSessionName(),
		Lives:         c.cfg.StartLives,
		TimeRemaining: c.cfg.SessionSeconds,
		Status:        status,
	}
}

func (c *Controller) notifyScoreboard() {
	c.listener.OnScoreChanged(c.session.Score)
	c.listener.OnTimeChanged(c.session.TimeRemaining)
	c.listener.OnLivesChanged(c.session.Lives)
}

func (c *Controller) later(d time.Duration) timing.VTimeInMs {
	return c.engine.CurrentTime() + timing.Ms(d)
}

var (
	_ timing.Handler = (*Controller)(nil)
	_ timing.Named   = (*Controller)(nil)
)
