package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bensonlsp/reiki-timer/history"
	"github.com/bensonlsp/reiki-timer/internal/audio"
	"github.com/bensonlsp/reiki-timer/internal/config"
	internalstrings "github.com/bensonlsp/reiki-timer/internal/strings"
	"github.com/bensonlsp/reiki-timer/internal/tui"
	"github.com/bensonlsp/reiki-timer/internal/ui"
	"github.com/bensonlsp/reiki-timer/position"
	"github.com/bensonlsp/reiki-timer/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a healing session",
	Long: `Run a healing session.

Without --plain this opens the interactive timer. Settings come from
~/.config/reiki-timer/config.toml, then ./reiki.toml, then REIKI_*
environment variables, then flags.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var (
	runSequence   string
	runMinutes    int
	runSeconds    int
	runBell       bool
	runNoBell     bool
	runVolume     int
	runMusic      bool
	runPlain      bool
	runLogFile    string
	runTickPeriod time.Duration
)

var runHistoryOpen = history.Open

func init() {
	rootCmd.AddCommand(runCmd)

	addDurationFlagAliases(runCmd)
	runCmd.Flags().StringVar(&runSequence, "sequence", "", "Position sequence (full, chakra)")
	runCmd.Flags().IntVar(&runMinutes, "minutes", 0, "Minutes per position (0-10)")
	runCmd.Flags().IntVar(&runSeconds, "seconds", 0, "Seconds per position (0-50 in steps of 10)")
	runCmd.Flags().BoolVar(&runBell, "bell", true, "Ring a bell between positions")
	runCmd.Flags().BoolVar(&runNoBell, "no-bell", false, "Do not ring a bell between positions")
	runCmd.Flags().IntVar(&runVolume, "volume", 0, "Bell volume (0-100)")
	runCmd.Flags().BoolVar(&runMusic, "music", false, "Play background music")
	runCmd.Flags().BoolVar(&runPlain, "plain", false, "Print progress lines instead of the interactive timer")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "Write session events to this file")
	runCmd.Flags().DurationVar(&runTickPeriod, "tick-period", session.DefaultTickPeriod, "Countdown tick period")
	_ = runCmd.Flags().MarkHidden("tick-period")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if runTickPeriod <= 0 {
		return fmt.Errorf("tick period must be positive, got %s", runTickPeriod)
	}

	seq, err := position.Lookup(cfg.Session.Sequence)
	if err != nil {
		return err
	}

	store, err := runHistoryOpen()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	plain := runPlain || !interactiveTerminal()
	logOut := io.Discard
	if plain {
		logOut = cmd.ErrOrStderr()
	}
	if runLogFile != "" {
		logFile, err := os.OpenFile(runLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close()
		logOut = logFile
	}
	logger := session.NewConsoleLogger(logOut)

	if plain {
		return runPlainSession(ctx, cmd, cfg, seq, store, logger)
	}
	return runInteractiveSession(ctx, cfg, seq, store, logger)
}

// applyRunFlags lets explicit flags win over file and environment settings.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("sequence") {
		cfg.Session.Sequence = internalstrings.NormalizeLowerTrimSpace(runSequence)
	}
	if flags.Changed("minutes") {
		cfg.Session.Minutes = runMinutes
	}
	if flags.Changed("seconds") {
		cfg.Session.Seconds = runSeconds
	}
	if flags.Changed("bell") {
		cfg.Bell.Enabled = runBell
	}
	if flags.Changed("no-bell") && runNoBell {
		cfg.Bell.Enabled = false
	}
	if flags.Changed("volume") {
		cfg.Bell.Volume = runVolume
	}
	if flags.Changed("music") {
		cfg.Music.Enabled = runMusic
	}
}

func interactiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// sessionRuntime wires a controller to its loop, audio and history.
type sessionRuntime struct {
	driver *session.Driver
	bell   *audio.Bell
	music  *audio.Music
	ended  chan session.Summary
	cancel context.CancelFunc
	done   chan struct{}
}

type runtimeOptions struct {
	config   *config.Config
	display  session.DisplaySink
	feedback func()
	terminal io.Writer
	logger   session.Logger
	store    *history.Store
}

func startRuntime(opts runtimeOptions) *sessionRuntime {
	cfg := opts.config
	rt := &sessionRuntime{
		bell: audio.NewBell(audio.BellOptions{
			Enabled:  cfg.Bell.Enabled,
			Volume:   cfg.Bell.Volume,
			File:     cfg.Bell.File,
			Feedback: opts.feedback,
			Terminal: opts.terminal,
			Logger:   opts.logger,
		}),
		music: audio.NewMusic(audio.MusicOptions{
			Enabled: cfg.Music.Enabled,
			Files:   cfg.Music.Files,
			URL:     cfg.Music.URL,
			Volume:  cfg.Music.Volume,
			Logger:  opts.logger,
		}),
		ended: make(chan session.Summary, 1),
		done:  make(chan struct{}),
	}

	loop := session.NewLoop()
	controller := session.NewController(session.Options{
		Bell:       rt.bell,
		Display:    opts.display,
		Clock:      loop,
		Logger:     opts.logger,
		TickPeriod: runTickPeriod,
		OnEnd: func(summary session.Summary) {
			if _, err := opts.store.Append(summary); err != nil {
				opts.logger.Failure(session.FailureLog{Component: "history", Action: "record session", Err: err})
			}
			select {
			case rt.ended <- summary:
			default:
			}
		},
	})
	rt.driver = session.NewDriver(loop, controller)

	ctx, cancel := context.WithCancel(context.Background())
	rt.cancel = cancel
	go func() {
		defer close(rt.done)
		loop.Run(ctx)
	}()
	return rt
}

// Close abandons any session in progress, which records it, and releases
// audio resources.
func (rt *sessionRuntime) Close() error {
	_ = rt.driver.Abort()
	rt.music.Stop()
	rt.cancel()
	<-rt.done
	return rt.bell.Close()
}

func runPlainSession(ctx context.Context, cmd *cobra.Command, cfg *config.Config, seq position.Sequence, store *history.Store, logger session.Logger) error {
	live := ui.IsTerminal(os.Stdout)
	renderer := newPlainRenderer(cmd.OutOrStdout(), ui.TerminalWidth(os.Stdout, 80), live)

	rt := startRuntime(runtimeOptions{
		config:   cfg,
		display:  renderer,
		terminal: cmd.ErrOrStderr(),
		logger:   logger,
		store:    store,
	})
	defer rt.Close()

	if err := rt.driver.Configure(seq, cfg.PositionSeconds()); err != nil {
		return err
	}
	if err := rt.driver.Start(); err != nil {
		return err
	}
	rt.music.Start(ctx)

	var summary session.Summary
	select {
	case summary = <-rt.ended:
	case <-ctx.Done():
		if err := rt.driver.Abort(); err != nil {
			return err
		}
		summary = <-rt.ended
	}

	renderer.Summary(summary)
	return nil
}

func runInteractiveSession(ctx context.Context, cfg *config.Config, seq position.Sequence, store *history.Store, logger session.Logger) error {
	sink := tui.NewSink()
	rt := startRuntime(runtimeOptions{
		config:   cfg,
		display:  sink,
		feedback: sink.Flash,
		terminal: os.Stderr,
		logger:   logger,
		store:    store,
	})
	defer rt.Close()

	return tui.Run(ctx, tui.Options{
		Session: rt.driver,
		Sink:    sink,
		Setup: tui.Setup{
			Sequence: seq.Name(),
			Minutes:  cfg.Session.Minutes,
			Seconds:  cfg.Session.Seconds,
		},
		Bell:  rt.bell,
		Music: rt.music,
	})
}
