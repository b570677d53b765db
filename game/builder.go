package game

import (
	"time"

	"github.com/sarchlab/monstercatch/idgen"
	"github.com/sarchlab/monstercatch/timing"
)

// Builder can help building a Controller.
type Builder struct {
	engine    timing.EventScheduler
	cfg       Config
	catalog   Catalog
	rng       Rand
	ids       idgen.Generator
	listeners Listeners
}

// MakeBuilder creates a builder with the default rules and catalog.
func MakeBuilder() Builder {
	return Builder{
		cfg:     DefaultConfig(),
		catalog: DefaultCatalog(),
	}
}

// WithEngine sets the engine that drives the controller's timers.
func (b Builder) WithEngine(e timing.EventScheduler) Builder {
	b.engine = e
	return b
}

// WithConfig sets the session rules.
func (b Builder) WithConfig(cfg Config) Builder {
	b.cfg = cfg
	return b
}

// WithCatalog sets the kinds that can spawn.
func (b Builder) WithCatalog(catalog Catalog) Builder {
	b.catalog = catalog
	return b
}

// WithRand sets the source of randomness.
func (b Builder) WithRand(rng Rand) Builder {
	b.rng = rng
	return b
}

// WithSeed seeds a fresh random source.
func (b Builder) WithSeed(seed uint64) Builder {
	b.rng = NewRand(seed)
	return b
}

// WithIDGenerator sets the generator for entity IDs.
func (b Builder) WithIDGenerator(ids idgen.Generator) Builder {
	b.ids = ids
	return b
}

// WithListener adds a listener. Listeners are notified in the order they are
// added.
func (b Builder) WithListener(l Listener) Builder {
	b.listeners = append(append(Listeners(nil), b.listeners...), l)
	return b
}

// Build creates the controller. The session starts Idle with the initial
// scoreboard; nothing is notified until the first command.
func (b Builder) Build(name string) (*Controller, error) {
	if b.engine == nil {
		panic("game: engine is required")
	}

	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	if err := b.catalog.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		name:     name,
		engine:   b.engine,
		cfg:      b.cfg,
		catalog:  append(Catalog(nil), b.catalog...),
		rng:      b.rng,
		ids:      b.ids,
		listener: b.listeners,
	}

	if c.rng == nil {
		c.rng = NewRand(uint64(time.Now().UnixNano()))
	}

	if c.ids == nil {
		c.ids = idgen.New()
	}

	c.clearEntities()
	c.session = c.freshSession(StatusIdle)

	return c, nil
}
