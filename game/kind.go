package game

import (
	"fmt"
	"time"
)

// EntityKind is an immutable template from which entities are spawned.
type EntityKind struct {
	Tag      string
	Glyph    string
	Points   int
	Lifetime time.Duration
}

// Catalog is the read-only list of kinds the spawner picks from.
type Catalog []EntityKind

// DefaultCatalog returns the four monsters of the original game. Faster
// monsters are worth more.
func DefaultCatalog() Catalog {
	return Catalog{
		{Tag: "ogre", Glyph: "👹", Points: 10, Lifetime: 3000 * time.Millisecond},
		{Tag: "tengu", Glyph: "👺", Points: 15, Lifetime: 2500 * time.Millisecond},
		{Tag: "dragon", Glyph: "🐉", Points: 20, Lifetime: 2000 * time.Millisecond},
		{Tag: "ghost", Glyph: "👻", Points: 25, Lifetime: 1500 * time.Millisecond},
	}
}

// Validate checks that the catalog can be spawned from.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: empty catalog", ErrInvalidConfig)
	}

	for i, k := range c {
		if k.Points <= 0 {
			return fmt.Errorf("%w: kind %d (%s) has non-positive points",
				ErrInvalidConfig, i, k.Tag)
		}

		if k.Lifetime <= 0 {
			return fmt.Errorf("%w: kind %d (%s) has non-positive lifetime",
				ErrInvalidConfig, i, k.Tag)
		}
	}

	return nil
}
