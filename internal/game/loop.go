package game

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// IntroOverlay is the overlay faded out on the first directional input.
const IntroOverlay = "intro"

// LoopDeps are the collaborators a FrameLoop drives.
type LoopDeps struct {
	Physics   Physics
	Scene     Scene
	Input     Input
	Overlay   Overlay
	Scheduler Scheduler
	Level     Level
	Rand      *Rand
	Bus       *EventBus
	Log       *logrus.Logger
}

// FrameLoop runs one tick per display refresh: physics first, gameplay
// next, rendering last.
type FrameLoop struct {
	cfg Config
	log *logrus.Logger
	bus *EventBus

	physics   Physics
	scene     Scene
	input     Input
	overlay   Overlay
	sched     Scheduler
	observers []Observer

	world      *World
	locomotion *LocomotionController
	stabilizer *OrientationStabilizer
	camera     *CameraTracker
	streaming  *StreamingManager
	scoring    *ScoringTracker
	episode    *EpisodeLifecycle

	pending        FrameID
	frames         uint64
	running        bool
	introDismissed bool
	resetHeld      bool
}

func NewFrameLoop(cfg Config, deps LoopDeps) (*FrameLoop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if deps.Physics == nil || deps.Scene == nil || deps.Scheduler == nil {
		return nil, errors.New("frame loop needs physics, scene and scheduler")
	}
	if deps.Level.Permanent() == 0 {
		return nil, errors.New("level has no permanent base")
	}
	if deps.Bus == nil {
		deps.Bus = NewEventBus()
	}
	if deps.Rand == nil {
		deps.Rand = NewRand(cfg.Seed)
	}
	log := orDiscard(deps.Log)

	return &FrameLoop{
		cfg:        cfg,
		log:        log,
		bus:        deps.Bus,
		physics:    deps.Physics,
		scene:      deps.Scene,
		input:      deps.Input,
		overlay:    deps.Overlay,
		sched:      deps.Scheduler,
		world:      NewWorld(),
		locomotion: NewLocomotionController(cfg, deps.Bus),
		stabilizer: NewOrientationStabilizer(cfg),
		camera:     NewCameraTracker(cfg),
		streaming:  NewStreamingManager(cfg, deps.Rand, log, deps.Bus),
		scoring:    NewScoringTracker(cfg, deps.Bus),
		episode:    NewEpisodeLifecycle(cfg, deps.Level, log, deps.Bus),
	}, nil
}

func (l *FrameLoop) World() *World { return l.world }

func (l *FrameLoop) Episode() *EpisodeLifecycle { return l.episode }

func (l *FrameLoop) Bus() *EventBus { return l.bus }

func (l *FrameLoop) Running() bool { return l.running }

// Frames counts ticks that reached the scene's Render. A tick that resets
// the episode renders nothing.
func (l *FrameLoop) Frames() uint64 { return l.frames }

// AddObserver registers o for per-tick snapshots. Call before Start.
func (l *FrameLoop) AddObserver(o Observer) {
	l.observers = append(l.observers, o)
}

// Start builds the first episode and requests the first frame.
func (l *FrameLoop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.physics.Reset()
	l.scene.Reset()
	l.episode.Build(l.world, l.physics, l.scene)
	l.log.WithFields(logrus.Fields{
		"episode":   l.world.Episode,
		"obstacles": l.world.Obstacles.Len(),
		"config":    fmt.Sprintf("%016x", l.episode.Fingerprint()),
	}).Info("episode started")
	l.pending = l.sched.RequestFrame(l.Tick)
}

// Stop cancels the pending frame. The world is left as it is.
func (l *FrameLoop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	l.sched.CancelFrame(l.pending)
}

// Tick advances the game by one display refresh.
func (l *FrameLoop) Tick() {
	if !l.running {
		return
	}
	l.pending = l.sched.RequestFrame(l.Tick)

	w := l.world
	in := ReadControls(l.input)
	l.dismissIntro(in)

	dt := l.cfg.StepDuration()
	for i := 0; i < l.cfg.Substeps; i++ {
		l.physics.Step(dt)
		l.stabilizer.PostStep(w, l.physics)
	}
	w.Body.sync(l.physics)

	l.locomotion.Update(w, l.physics, in)
	l.scene.SetCamera(l.camera.Update(w))

	manual := in.Reset && !l.resetHeld
	l.resetHeld = in.Reset
	if manual || l.episode.Terminal(w) {
		l.reset()
		return
	}

	l.scoring.Update(w)
	l.streaming.Update(w, l.physics, l.scene)
	l.scene.Render(l.physics)
	l.frames++

	w.Tick++
	if len(l.observers) > 0 {
		snap := w.Snapshot()
		for _, o := range l.observers {
			o.Observe(snap)
		}
	}
}

// reset swaps the pending frame for a fresh one around the rebuild so no
// tick sees a half-built world.
func (l *FrameLoop) reset() {
	l.sched.CancelFrame(l.pending)
	l.episode.Reset(l.world, l.physics, l.scene)
	l.pending = l.sched.RequestFrame(l.Tick)
}

func (l *FrameLoop) dismissIntro(in Controls) {
	if l.introDismissed || !in.Directional() {
		return
	}
	l.introDismissed = true
	if l.overlay != nil {
		l.overlay.FadeOut(IntroOverlay)
	}
	l.bus.Emit(Event{Type: EventIntroDismissed, Pos: l.world.Body.Position})
}
