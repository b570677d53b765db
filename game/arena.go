package game

import (
	"math/rand/v2"
)

// Position is the top-left corner of an entity's footprint, in arena units.
type Position struct {
	X, Y float64
}

// Arena is the bounded play field. Every entity occupies a square footprint
// of EntitySize.
type Arena struct {
	Width      float64
	Height     float64
	EntitySize float64
}

// DefaultArena matches the play field of the original page.
func DefaultArena() Arena {
	return Arena{Width: 800, Height: 500, EntitySize: 60}
}

// RandomPosition picks a position uniformly such that the whole footprint
// stays inside the arena. An arena smaller than the footprint pins the entity
// to that axis' origin.
func (a Arena) RandomPosition(rng Rand) Position {
	return Position{
		X: rng.Float64() * a.maxX(),
		Y: rng.Float64() * a.maxY(),
	}
}

// Hit reports whether the point (x, y) lies on the footprint at p.
func (a Arena) Hit(p Position, x, y float64) bool {
	return x >= p.X && x < p.X+a.EntitySize &&
		y >= p.Y && y < p.Y+a.EntitySize
}

func (a Arena) maxX() float64 {
	return max(0, a.Width-a.EntitySize)
}

func (a Arena) maxY() float64 {
	return max(0, a.Height-a.EntitySize)
}

// Rand is the source of randomness for spawn delays, positions and kinds.
type Rand interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64

	// IntN returns a number in [0, n).
	IntN(n int) int
}

// NewRand returns a seeded PCG source. Equal seeds produce equal games on the
// virtual-time engine.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
