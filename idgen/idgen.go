// Package idgen provides the identifiers used for entities, events and game
// sessions.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// ID is a unique identifier represented as a uint64. Zero is never generated.
type ID uint64

// String formats the ID in decimal.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Generator produces unique identifiers.
type Generator interface {
	Generate() ID
}

// New returns a sequential generator whose first emitted ID is 1.
func New() Generator {
	return &sequentialGenerator{}
}

type sequentialGenerator struct {
	next uint64
}

func (g *sequentialGenerator) Generate() ID {
	return ID(atomic.AddUint64(&g.next, 1))
}

// NewSessionName returns a globally unique, sortable name for a play-through
// or a trace file. Names are not deterministic.
func NewSessionName() string {
	return xid.New().String()
}
