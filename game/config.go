package game

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("game: invalid config")

// Config holds the tunables of a session.
type Config struct {
	StartLives     int
	SessionSeconds int
	TickInterval   time.Duration
	SpawnDelayMin  time.Duration
	SpawnDelayMax  time.Duration
	CatchFade      time.Duration
	Arena          Arena
}

// DefaultConfig returns the rules of the original game: 3 lives, 60 seconds,
// a spawn every 1 to 3 seconds and a half-second catch animation.
func DefaultConfig() Config {
	return Config{
		StartLives:     3,
		SessionSeconds: 60,
		TickInterval:   time.Second,
		SpawnDelayMin:  time.Second,
		SpawnDelayMax:  3 * time.Second,
		CatchFade:      500 * time.Millisecond,
		Arena:          DefaultArena(),
	}
}

// Validate reports the first problem found in c.
func (c Config) Validate() error {
	switch {
	case c.StartLives <= 0:
		return fmt.Errorf("%w: start lives must be positive", ErrInvalidConfig)
	case c.SessionSeconds <= 0:
		return fmt.Errorf("%w: session seconds must be positive", ErrInvalidConfig)
	case c.TickInterval < time.Millisecond:
		return fmt.Errorf("%w: tick interval must be at least 1ms", ErrInvalidConfig)
	case c.SpawnDelayMin < time.Millisecond:
		return fmt.Errorf("%w: spawn delay min must be at least 1ms", ErrInvalidConfig)
	case c.SpawnDelayMax < c.SpawnDelayMin:
		return fmt.Errorf("%w: spawn delay max %s is below min %s",
			ErrInvalidConfig, c.SpawnDelayMax, c.SpawnDelayMin)
	case c.CatchFade < 0:
		return fmt.Errorf("%w: catch fade must not be negative", ErrInvalidConfig)
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("%w: arena must have a positive size", ErrInvalidConfig)
	case c.Arena.EntitySize <= 0:
		return fmt.Errorf("%w: entity size must be positive", ErrInvalidConfig)
	}

	return nil
}
