// Package config loads the game rules and the frontend options from the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/sarchlab/monstercatch/game"
)

// Prefix is prepended to every environment key.
const Prefix = "MONSTERCATCH_"

// Settings holds everything that can be set from the environment or a .env
// file. Command-line flags override these values.
type Settings struct {
	Lives          int           `env:"LIVES"           envDefault:"3"`
	SessionSeconds int           `env:"SESSION_SECONDS" envDefault:"60"`
	Tick           time.Duration `env:"TICK"            envDefault:"1s"`
	SpawnMin       time.Duration `env:"SPAWN_MIN"       envDefault:"1s"`
	SpawnMax       time.Duration `env:"SPAWN_MAX"       envDefault:"3s"`
	CatchFade      time.Duration `env:"CATCH_FADE"      envDefault:"500ms"`

	ArenaWidth  float64 `env:"ARENA_WIDTH"  envDefault:"800"`
	ArenaHeight float64 `env:"ARENA_HEIGHT" envDefault:"500"`
	EntitySize  float64 `env:"ENTITY_SIZE"  envDefault:"60"`

	Seed        uint64 `env:"SEED"`
	Mute        bool   `env:"MUTE"`
	MonitorPort int    `env:"MONITOR_PORT"`
	TraceFile   string `env:"TRACE"`
	LogFile     string `env:"LOG"           envDefault:"monstercatch.log"`
}

// Load reads the optional .env files, then the process environment. A
// missing file is not an error; a malformed one is.
func Load(files ...string) (Settings, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var s Settings
	err := env.ParseWithOptions(&s, env.Options{Prefix: Prefix})
	if err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}

	return s, nil
}

// GameConfig converts the settings into controller rules and validates them.
func (s Settings) GameConfig() (game.Config, error) {
	cfg := game.Config{
		StartLives:     s.Lives,
		SessionSeconds: s.SessionSeconds,
		TickInterval:   s.Tick,
		SpawnDelayMin:  s.SpawnMin,
		SpawnDelayMax:  s.SpawnMax,
		CatchFade:      s.CatchFade,
		Arena: game.Arena{
			Width:      s.ArenaWidth,
			Height:     s.ArenaHeight,
			EntitySize: s.EntitySize,
		},
	}

	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}

	return cfg, nil
}
