package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/sarchlab/monstercatch/game"
	"github.com/sarchlab/monstercatch/monitoring"
	"github.com/sarchlab/monstercatch/timing"
	"github.com/sarchlab/monstercatch/tui"
)

var (
	flagMute        bool
	flagTrace       string
	flagMonitor     bool
	flagMonitorPort int
	flagNoBrowser   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal.",
	Long: "`play` opens the arena in the terminal. Click monsters with the " +
		"mouse, [p] pauses, [r] restarts and [q] quits.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()

		if flags.Changed("mute") {
			settings.Mute = flagMute
		}

		if flags.Changed("trace") {
			settings.TraceFile = flagTrace
		}

		if flags.Changed("monitor-port") {
			settings.MonitorPort = flagMonitorPort
		}

		return play(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	f := playCmd.Flags()
	f.BoolVar(&flagMute, "mute", false, "Play without sound")
	f.StringVar(&flagTrace, "trace", "",
		"Record sessions into this SQLite file")
	f.BoolVar(&flagMonitor, "monitor", false,
		"Serve the web monitor while playing")
	f.IntVar(&flagMonitorPort, "monitor-port", 0,
		"Port of the web monitor, 0 picks a free one")
	f.BoolVar(&flagNoBrowser, "no-browser", false,
		"Do not open the web monitor in a browser")
}

func play(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	return playOn(ctx, screen)
}

// playOn runs the game on screen until the user quits. The screen is
// initialized here and finalized on return.
func playOn(parent context.Context, screen tcell.Screen) error {
	cfg, err := settings.GameConfig()
	if err != nil {
		return err
	}

	seed := seedOrNow(settings.Seed)
	engine := timing.NewRealTimeEngine()

	if err := screen.Init(); err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer screen.Fini()

	speaker := tui.NewSpeaker(settings.Mute)
	if err := speaker.Init(); err != nil {
		log.Printf("sound disabled: %v", err)
	}
	defer speaker.Close()

	view := tui.NewView(screen, cfg.Arena, speaker)

	b := game.MakeBuilder().
		WithEngine(engine).
		WithConfig(cfg).
		WithSeed(seed).
		WithListener(view)

	var trace *gameTrace
	if settings.TraceFile != "" {
		trace, err = openTrace(engine, settings.TraceFile, seed)
		if err != nil {
			return err
		}
		defer trace.Close()

		b = b.WithListener(trace)
	}

	controller, err := b.Build("Game")
	if err != nil {
		return err
	}

	if trace != nil {
		trace.Attach(controller)
	}

	view.Attach(engine, controller)

	if flagMonitor || settings.MonitorPort != 0 {
		startMonitor(engine, controller)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	engineErr := make(chan error, 1)
	go func() {
		engineErr <- engine.Run(ctx)
		cancel()
	}()

	engine.Inject(&game.RestartCommand{}, controller)
	view.Run(ctx)
	cancel()

	return <-engineErr
}

func startMonitor(engine *timing.RealTimeEngine, controller *game.Controller) {
	m := monitoring.NewMonitor().WithPortNumber(settings.MonitorPort)
	m.RegisterEngine(engine)
	m.RegisterController(controller)

	url, err := m.StartServer()
	if err != nil {
		log.Printf("monitor disabled: %v", err)
		return
	}

	if flagNoBrowser {
		return
	}

	if err := monitoring.OpenInBrowser(url); err != nil {
		log.Printf("open %s: %v", url, err)
	}
}
