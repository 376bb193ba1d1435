// Command showcase renders the portfolio fireworks in a desktop window, or
// simulates a session headlessly.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/aurora-portfolio/internal/audio"
	"github.com/Zachkp/aurora-portfolio/internal/clock"
	"github.com/Zachkp/aurora-portfolio/internal/config"
	"github.com/Zachkp/aurora-portfolio/internal/device"
	"github.com/Zachkp/aurora-portfolio/internal/engagement"
	"github.com/Zachkp/aurora-portfolio/internal/fireworks"
	"github.com/Zachkp/aurora-portfolio/internal/random"
	"github.com/Zachkp/aurora-portfolio/internal/render"
	"github.com/Zachkp/aurora-portfolio/internal/report"
	"github.com/Zachkp/aurora-portfolio/internal/session"
	"github.com/Zachkp/aurora-portfolio/internal/theme"
)

var (
	cfg       config.Showcase
	logger    *zap.Logger
	mobile    bool
	seed      uint64
	themeName string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Portfolio fireworks in a desktop window",
	Long: `Runs the portfolio's background sky and click-triggered fireworks show.

Click anywhere ten times (three on the mobile profile) to launch a show.
Keys: Space stops a show, Escape hides notifications, Up/Down jump sections,
M mutes, +/- change volume, Enter starts a show now, T toggles the theme, Q quits.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = config.NewLogger(level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runWindow,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Drive a session in real time without a window",
	Long: `Simulates a visitor clicking through the engagement threshold, lets the
show run to completion on the wall clock and prints what happened.`,
	RunE: runSimulate,
}

var (
	simClicks   int
	simInterval time.Duration
	simTimeout  time.Duration
)

func init() {
	var err error
	if cfg, err = config.LoadShowcase(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&cfg.Width, "width", cfg.Width, "viewport width in pixels")
	flags.IntVar(&cfg.Height, "height", cfg.Height, "viewport height in pixels")
	flags.BoolVar(&mobile, "mobile", false, "force the mobile profile")
	flags.StringVar(&cfg.Audio, "audio", cfg.Audio, "mp3 soundtrack; missing files play silently")
	flags.StringVar(&cfg.ReportURL, "report", cfg.ReportURL, "portfolio server base URL to report finished shows to")
	flags.Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	flags.StringVar(&themeName, "theme", string(theme.Default), "light or dark")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	simulateCmd.Flags().IntVar(&simClicks, "clicks", 0, "clicks to send (0 uses the profile threshold)")
	simulateCmd.Flags().DurationVar(&simInterval, "interval", 300*time.Millisecond, "time between clicks")
	simulateCmd.Flags().DurationVar(&simTimeout, "timeout", 2*time.Minute, "give up after this long")

	rootCmd.AddCommand(simulateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newSession(m *clock.Manual, player audio.Player) (*session.Session, error) {
	if seed == 0 {
		var err error
		if seed, err = random.NewSeed(); err != nil {
			return nil, err
		}
	}
	sc := session.Config{
		Clock:     m,
		UserAgent: "showcase",
		Width:     float64(cfg.Width),
		Height:    float64(cfg.Height),
		Player:    player,
		Rand:      random.New(seed),
		Logger:    logger,
	}
	if mobile {
		p := device.Mobile()
		sc.Profile = &p
	}
	s := session.New(sc)
	logger.Info("session ready", zap.String("profile", s.ProfileName()), zap.Uint64("seed", seed))
	return s, nil
}

// reporter wires show reporting when a server URL is configured.
func reporter(s *session.Session) *report.Reporter {
	if cfg.ReportURL == "" {
		return nil
	}
	r := report.New(cfg.ReportURL, s, logger.Named("report"))
	s.Observe(r)
	return r
}

func runWindow(cmd *cobra.Command, args []string) error {
	t, err := theme.Parse(themeName)
	if err != nil {
		return err
	}

	var player audio.Player
	if track, err := render.LoadTrack(cfg.Audio); err != nil {
		logger.Warn("soundtrack unavailable, continuing silently", zap.Error(err))
	} else {
		player = track
	}

	s, err := newSession(clock.NewManual(time.Now()), player)
	if err != nil {
		return err
	}
	rep := reporter(s)
	s.Start()
	defer s.Close()

	err = render.Run(render.NewGame(s, t, logger.Named("render")), "Aurora Portfolio")
	if rep != nil {
		rep.Wait()
	}
	return err
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, simTimeout)
	defer cancel()

	m := clock.NewManual(time.Now())
	s, err := newSession(m, nil)
	if err != nil {
		return err
	}
	rep := reporter(s)

	done := make(chan struct{})
	s.Observe(&endWatcher{done: done})

	// The loop is not running yet, so the session can be touched directly.
	s.Start()
	clicks := simClicks
	if clicks <= 0 {
		clicks = s.Counter().Threshold()
	}
	scheduleClicks(m, s, clicks, simInterval, logger)

	loop := clock.NewLoop(m, time.Second/60)
	loop.OnFrame(s.Frame)

	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()

	select {
	case <-done:
		cancel()
		<-errc
	case err := <-errc:
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("no show finished within %s", simTimeout)
		}
		return err
	}
	if rep != nil {
		rep.Wait()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "profile=%s launched=%d\n", s.ProfileName(), s.Launched())
	return nil
}

// scheduleClicks queues n page clicks on m, interval apart.
func scheduleClicks(m *clock.Manual, s *session.Session, n int, interval time.Duration, log *zap.Logger) {
	page := engagement.Target{Tags: []string{"main"}}
	w, h := s.Size()
	for i := 0; i < n; i++ {
		m.AfterFunc(time.Duration(i+1)*interval, func() {
			counted := s.Pointer(w/2, h/2, page)
			log.Debug("click", zap.Int("n", i+1), zap.Bool("counted", counted))
		})
	}
}

type endWatcher struct {
	done chan struct{}
	once sync.Once
}

func (w *endWatcher) ShowStarted(time.Time) {
	logger.Info("show started")
}

func (w *endWatcher) ShowEnded(at time.Time, reason fireworks.Reason, ran time.Duration) {
	logger.Info("show ended", zap.String("reason", string(reason)), zap.Duration("ran", ran))
	w.once.Do(func() { close(w.done) })
}
