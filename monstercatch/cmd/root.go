// Package cmd provides the command-line interface of monstercatch.
package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/monstercatch/config"
)

// settings is filled before any subcommand runs.
var settings config.Settings

var (
	envFiles    []string
	flagLives   int
	flagSeconds int
	flagSeed    uint64
	flagLog     string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "monstercatch",
	Short: "Catch the monsters before they escape.",
	Long: `Monsters appear at random spots of the arena and run away after a ` +
		`few seconds. Click them for points; every escape costs a life. A ` +
		`session lasts until the clock or your lives run out.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		s, err := config.Load(envFiles...)
		if err != nil {
			return err
		}

		applyFlags(cmd, &s)
		settings = s

		return redirectLog(settings.LogFile)
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringSliceVar(&envFiles, "env-file", nil,
		"Files to read settings from (default .env)")
	f.IntVar(&flagLives, "lives", 3, "Lives at the start of a session")
	f.IntVar(&flagSeconds, "seconds", 60, "Length of a session in seconds")
	f.Uint64Var(&flagSeed, "seed", 0,
		"Seed of the spawn randomness, 0 picks one from the clock")
	f.StringVar(&flagLog, "log", "",
		"File that receives the log, empty keeps stderr")
}

// applyFlags lets explicitly given flags win over the environment.
func applyFlags(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()

	if flags.Changed("lives") {
		s.Lives = flagLives
	}

	if flags.Changed("seconds") {
		s.SessionSeconds = flagSeconds
	}

	if flags.Changed("seed") {
		s.Seed = flagSeed
	}

	if flags.Changed("log") {
		s.LogFile = flagLog
	}
}

func redirectLog(path string) error {
	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}

	log.SetOutput(f)
	atexit.Register(func() { _ = f.Close() })

	return nil
}

func seedOrNow(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}

	return uint64(time.Now().UnixNano())
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Exit handlers, such as the trace flush, run before the
// process ends.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
