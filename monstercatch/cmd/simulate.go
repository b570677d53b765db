package cmd

import (
	"fmt"
	"io"
	"log"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarchlab/monstercatch/bot"
	"github.com/sarchlab/monstercatch/game"
	"github.com/sarchlab/monstercatch/timing"
	"github.com/sarchlab/monstercatch/tracing"
)

type simulateOptions struct {
	sessions    int
	accuracy    float64
	reactionMin time.Duration
	reactionMax time.Duration
	trace       string
	verbose     bool
}

var simOpts simulateOptions

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let a bot play sessions on a virtual clock.",
	Long: "`simulate` plays sessions with a simulated player. No time " +
		"passes on the wall clock, so a full session takes milliseconds. " +
		"The same seed always gives the same sessions.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return simulate(cmd.OutOrStdout(), simOpts)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	f := simulateCmd.Flags()
	f.IntVar(&simOpts.sessions, "sessions", 10, "Number of sessions to play")
	f.Float64Var(&simOpts.accuracy, "accuracy", 0.8,
		"Probability that the bot tries to catch a monster")
	f.DurationVar(&simOpts.reactionMin, "reaction-min",
		400*time.Millisecond, "Fastest reaction of the bot")
	f.DurationVar(&simOpts.reactionMax, "reaction-max",
		2200*time.Millisecond, "Slowest reaction of the bot")
	f.StringVar(&simOpts.trace, "trace", "",
		"Record sessions into this SQLite file")
	f.BoolVar(&simOpts.verbose, "verbose", false,
		"Log every event and notification")
}

func simulate(out io.Writer, opts simulateOptions) error {
	if opts.sessions <= 0 {
		return fmt.Errorf("sessions must be positive, got %d", opts.sessions)
	}

	if opts.reactionMax < opts.reactionMin {
		return fmt.Errorf("reaction-max %v is below reaction-min %v",
			opts.reactionMax, opts.reactionMin)
	}

	cfg, err := settings.GameConfig()
	if err != nil {
		return err
	}

	seed := seedOrNow(settings.Seed)
	fmt.Fprintf(out, "Seed: %d\n", seed)

	engine := timing.NewSerialEngine()
	catchTime := tracing.NewAverageTimeTracer(engine, tracing.CaughtEntities)
	results := tracing.NewResultCountTracer(isEntity)

	gameTracer := tracing.NewGameTracer(catchTime, results)
	if opts.trace != "" {
		trace, err := openTrace(engine, opts.trace, seed, catchTime, results)
		if err != nil {
			return err
		}
		defer trace.Close()

		gameTracer = trace.GameTracer
	}

	listeners := []game.Listener{gameTracer}
	if opts.verbose {
		engine.AcceptHook(timing.NewEventLogger(log.Default()))
		listeners = append(listeners, game.NewLogListener(log.Default()))
	}

	sim, err := bot.NewSimulation(engine, cfg, seed, listeners...)
	if err != nil {
		return err
	}

	sim.Player.Accuracy = opts.accuracy
	sim.Player.ReactionMin = opts.reactionMin
	sim.Player.ReactionMax = opts.reactionMax
	gameTracer.Attach(sim.Controller)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tOUTCOME\tSCORE\tLIVES\tSPAWNED\tCAUGHT\tEXPIRED\tDURATION")

	for i := range opts.sessions {
		res, err := sim.PlaySession()
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%v\n",
			i+1,
			res.Session.Outcome,
			res.Session.Score,
			res.Session.Lives,
			res.Stats.Spawned,
			res.Stats.Caught,
			res.Stats.Expired,
			res.Duration,
		)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Average catch time: %v over %d catches\n",
		catchTime.AverageTime().Duration(), catchTime.TotalCount())

	counts := make([]string, 0, len(results.ResultNames()))
	for _, name := range results.ResultNames() {
		counts = append(counts,
			fmt.Sprintf("%s %d", name, results.Count(name)))
	}

	fmt.Fprintf(out, "Monsters: %s\n", strings.Join(counts, ", "))

	return nil
}

func isEntity(t tracing.Task) bool {
	return t.Kind == tracing.KindEntity
}
