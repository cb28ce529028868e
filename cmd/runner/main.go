// Command runner plays the corridor runner in a window, or headless with an
// autopilot that holds forward.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sirupsen/logrus"

	"corridor/internal/audio"
	"corridor/internal/game"
	"corridor/internal/physics"
	"corridor/internal/render"
	"corridor/internal/telemetry"
)

const volume = 0.6

type options struct {
	seed       uint64
	headless   bool
	debug      bool
	difficulty float64
	substeps   int
	telemetry  string
	statsview  string
	sentryDSN  string
}

func parseOptions(args []string) (options, error) {
	opts := options{
		seed:       uint64(time.Now().UnixNano()),
		difficulty: game.DifficultyMultiplier,
		substeps:   game.PhysicsSubsteps,
		telemetry:  os.Getenv("RUNNER_TELEMETRY_ADDR"),
		statsview:  os.Getenv("RUNNER_STATSVIEW"),
		sentryDSN:  os.Getenv("RUNNER_SENTRY_DSN"),
	}
	if s := os.Getenv("RUNNER_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			opts.seed = v
		}
	}
	if s := os.Getenv("RUNNER_DEBUG"); s != "" {
		opts.debug, _ = strconv.ParseBool(s)
	}

	fs := newFlagSet(&opts)
	err := fs.Parse(args)
	return opts, err
}

func newFlagSet(opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("runner", flag.ContinueOnError)
	fs.Uint64Var(&opts.seed, "seed", opts.seed, "random seed for obstacle streaming")
	fs.BoolVar(&opts.headless, "headless", opts.headless, "run without a window, holding forward")
	fs.BoolVar(&opts.debug, "debug", opts.debug, "debug logging")
	fs.Float64Var(&opts.difficulty, "difficulty", opts.difficulty, "spawn budget multiplier applied after every spawn (>= 1)")
	fs.IntVar(&opts.substeps, "substeps", opts.substeps, "physics sub-steps per tick")
	fs.StringVar(&opts.telemetry, "telemetry", opts.telemetry, "address for the websocket snapshot feed, empty to disable")
	return fs
}

func newLogger(debug bool) *logrus.Logger {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}
	if debug {
		log.Level = logrus.DebugLevel
	}
	return log
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	log := newLogger(opts.debug)

	if opts.sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: opts.sentryDSN}); err != nil {
			log.WithError(err).Warn("sentry init failed")
		} else {
			defer sentry.Flush(5 * time.Second)
		}
	}
	defer report(log)

	cfg := game.DefaultConfig()
	cfg.Seed = opts.seed
	cfg.Substeps = opts.substeps
	cfg.Episode.DifficultyMultiplier = opts.difficulty
	if err := cfg.Validate(); err != nil {
		panic(fmt.Errorf("config: %w", err))
	}

	level, err := game.DefaultLevel()
	if err != nil {
		panic(fmt.Errorf("level: %w", err))
	}

	if opts.statsview != "" {
		telemetry.StartStatsView(opts.statsview)
		log.WithField("addr", opts.statsview).Info("statsview started")
	}

	bus := game.NewEventBus()
	sound, err := audio.New(volume, log)
	if err != nil {
		log.WithError(err).Warn("audio init failed, continuing without sound")
	} else {
		sound.Attach(bus)
	}

	var hub *telemetry.Hub
	if opts.telemetry != "" {
		hub = telemetry.NewHub(log)
		srv := telemetry.Serve(opts.telemetry, hub)
		defer srv.Close()
		log.WithField("addr", opts.telemetry).Info("telemetry listening on /ws")
	}

	deps := game.LoopDeps{
		Physics: physics.New(cfg.Gravity, log),
		Level:   level,
		Bus:     bus,
		Log:     log,
	}
	log.WithFields(logrus.Fields{"seed": cfg.Seed, "headless": opts.headless}).Info("starting")

	if opts.headless {
		err = runHeadless(cfg, deps, hub)
	} else {
		err = runWindow(cfg, deps, hub)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		panic(err)
	}
}

// report turns a panic into a log line and a sentry event, then exits.
func report(log *logrus.Logger) {
	err := recover()
	if err == nil {
		return
	}
	log.Errorf("runner panic: %v", err)
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("component", "runner")
	})
	hub.Recover(err)
	hub.Flush(5 * time.Second)
	os.Exit(1)
}

func runHeadless(cfg game.Config, deps game.LoopDeps, hub *telemetry.Hub) error {
	queue := game.NewFrameQueue()
	deps.Scene = game.NewNopScene()
	deps.Input = game.HeldActions{game.ActionForward: true}
	deps.Scheduler = queue

	loop, err := game.NewFrameLoop(cfg, deps)
	if err != nil {
		return err
	}
	if hub != nil {
		loop.AddObserver(hub)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop.Start()
	defer loop.Stop()
	err = game.RunTicker(ctx, queue, cfg.TickRate)
	deps.Log.WithFields(logrus.Fields{
		"episodes": loop.Episode().Episodes(),
		"score":    loop.World().Score.Points,
		"tick":     loop.World().Tick,
	}).Info("headless run finished")
	return err
}

func runWindow(cfg game.Config, deps game.LoopDeps, hub *telemetry.Hub) error {
	runtime.LockOSThread()

	window, err := render.OpenWindow("corridor", game.WindowWidth, game.WindowHeight)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	overlay := render.NewOverlay()
	rend, err := render.NewRenderer(cfg, overlay)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	queue := game.NewFrameQueue()
	deps.Scene = rend
	keys := render.NewKeyboard(window)
	deps.Input = keys
	deps.Overlay = overlay
	deps.Scheduler = queue

	loop, err := game.NewFrameLoop(cfg, deps)
	if err != nil {
		return err
	}
	if hub != nil {
		loop.AddObserver(hub)
	}
	loop.Start()
	defer loop.Stop()

	shown := -1
	for !window.ShouldClose() {
		glfw.PollEvents()
		if keys.JustPressed(glfw.KeyEscape) {
			window.SetShouldClose(true)
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		rend.SetViewport(fbW, fbH)
		drawn := loop.Frames()
		queue.Flush()
		if loop.Frames() == drawn {
			// Reset tick: the back buffer holds nothing new.
			continue
		}

		if score := loop.World().Score.Points; score != shown {
			shown = score
			window.SetTitle(fmt.Sprintf("corridor  score %d", score))
		}
		window.SwapBuffers()
	}
	return nil
}
