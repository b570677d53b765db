package bot

import (
	"time"

	"github.com/sarchlab/monstercatch/game"
	"github.com/sarchlab/monstercatch/timing"
)

// Result describes one finished session.
type Result struct {
	Session  game.Session
	Stats    Stats
	Duration time.Duration
}

// Simulation wires a controller and a player onto a virtual-time engine.
type Simulation struct {
	Engine     *timing.SerialEngine
	Controller *game.Controller
	Player     *Player
}

// NewSimulation builds a simulation on the given engine. The player is
// notified before any extra listeners.
func NewSimulation(
	engine *timing.SerialEngine,
	cfg game.Config,
	seed uint64,
	listeners ...game.Listener,
) (*Simulation, error) {
	player := NewPlayer(engine, game.NewRand(seed^0x5bd1e995))

	b := game.MakeBuilder().
		WithEngine(engine).
		WithConfig(cfg).
		WithSeed(seed).
		WithListener(player)
	for _, l := range listeners {
		b = b.WithListener(l)
	}

	c, err := b.Build("Game")
	if err != nil {
		return nil, err
	}

	player.Attach(c)

	return &Simulation{Engine: engine, Controller: c, Player: player}, nil
}

// PlaySession starts a session and runs the engine until every event of the
// session has drained.
func (s *Simulation) PlaySession() (Result, error) {
	s.Player.Reset()
	start := s.Engine.CurrentTime()

	s.Controller.Start()

	if err := s.Engine.Run(); err != nil {
		return Result{}, err
	}

	session := s.Controller.Session()

	return Result{
		Session:  session,
		Stats:    s.Player.Stats(),
		Duration: (s.Player.EndedAt() - start).Duration(),
	}, nil
}
