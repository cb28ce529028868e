package game

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

type EpisodeState int

const (
	EpisodeRunning EpisodeState = iota
	EpisodeResetting
)

// InitialConfig is everything an episode is rebuilt from. It is captured
// once and only ever handed out as deep copies.
type InitialConfig struct {
	Player     PlayerConfig
	Level      Level
	Budget     float64
	Multiplier float64
}

func (c InitialConfig) clone() InitialConfig {
	c.Level = c.Level.Clone()
	return c
}

// Fingerprint hashes the configuration so accidental mutation between
// episodes is detectable.
func (c InitialConfig) Fingerprint() uint64 {
	buf := make([]byte, 0, 64+len(c.Level.Obstacles)*80)
	f := func(v float64) {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	vec := func(v mgl64.Vec3) {
		f(v[0])
		f(v[1])
		f(v[2])
	}
	f(c.Player.Mass)
	vec(c.Player.Start)
	vec(c.Player.HalfExtents)
	f(c.Player.JumpVelocity)
	f(c.Player.ProbeLength)
	f(c.Budget)
	f(c.Multiplier)
	buf = append(buf, c.Level.Name...)
	for _, o := range c.Level.Obstacles {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(o.Kind))
		vec(o.Position)
		vec(o.HalfExtents)
		f(o.Color.R)
		f(o.Color.G)
		f(o.Color.B)
	}
	return xxh3.Hash(buf)
}

// EpisodeLifecycle detects the terminal condition and rebuilds the world.
type EpisodeLifecycle struct {
	initial     InitialConfig
	fingerprint uint64
	floorZ      float64
	state       EpisodeState
	episodes    int

	log *logrus.Logger
	bus *EventBus
}

func NewEpisodeLifecycle(cfg Config, level Level, log *logrus.Logger, bus *EventBus) *EpisodeLifecycle {
	initial := InitialConfig{
		Player:     cfg.Player,
		Level:      level.Clone(),
		Budget:     cfg.Episode.InitialBudget,
		Multiplier: cfg.Episode.DifficultyMultiplier,
	}
	return &EpisodeLifecycle{
		initial:     initial,
		fingerprint: initial.Fingerprint(),
		floorZ:      cfg.Episode.FloorZ,
		log:         orDiscard(log),
		bus:         bus,
	}
}

// Initial returns a copy of the captured configuration.
func (e *EpisodeLifecycle) Initial() InitialConfig { return e.initial.clone() }

func (e *EpisodeLifecycle) Fingerprint() uint64 { return e.fingerprint }

func (e *EpisodeLifecycle) State() EpisodeState { return e.state }

// Episodes counts builds, including the first.
func (e *EpisodeLifecycle) Episodes() int { return e.episodes }

// Terminal reports whether the body fell to or below the floor threshold.
func (e *EpisodeLifecycle) Terminal(w *World) bool {
	return w.Body.Position.Z() <= e.floorZ
}

// Build populates an empty physics world and scene from the snapshot and
// returns the world state to its defaults.
func (e *EpisodeLifecycle) Build(w *World, ph Physics, scene Scene) {
	snap := e.initial.clone()
	if fp := snap.Fingerprint(); fp != e.fingerprint {
		panic(fmt.Sprintf("initial configuration changed: %x != %x", fp, e.fingerprint))
	}

	w.Episode = uuid.NewString()
	w.Tick = 0
	w.Motion = LocomotionState{}
	w.Ground = GroundContact{}
	w.Score = NewScoreState()
	w.Difficulty = DifficultyState{Budget: snap.Budget, Multiplier: snap.Multiplier}
	w.Obstacles.Clear()
	w.Camera = Camera{}

	shape := Box(snap.Player.HalfExtents)
	id := ph.AddBody(BodyDesc{
		Shape:       shape,
		Mass:        snap.Player.Mass,
		Position:    snap.Player.Start,
		Orientation: mgl64.QuatIdent(),
	})
	w.Body = ControlledBody{
		ID:          id,
		Mesh:        scene.AddMesh(id, shape, ColorGreen),
		Mass:        snap.Player.Mass,
		HalfExtents: snap.Player.HalfExtents,
	}
	w.Body.sync(ph)
	w.Attitude = attitudeOf(w.Body.Orientation)

	for _, o := range snap.Level.Obstacles {
		spawnObstacle(w.Obstacles, ph, scene, o.Kind, o.Position, Box(o.HalfExtents), 0, o.Color)
	}
	e.episodes++
	e.state = EpisodeRunning
}

// Reset tears the physics world and scene down and rebuilds them.
func (e *EpisodeLifecycle) Reset(w *World, ph Physics, scene Scene) {
	e.state = EpisodeResetting
	prev, score, ticks := w.Episode, w.Score.Points, w.Tick
	at := w.Body.Position

	ph.Reset()
	scene.Reset()
	e.Build(w, ph, scene)

	e.log.WithFields(logrus.Fields{
		"episode":  w.Episode,
		"previous": prev,
		"score":    score,
		"ticks":    ticks,
		"config":   fmt.Sprintf("%016x", e.fingerprint),
	}).Info("episode reset")
	e.bus.Emit(Event{Type: EventEpisodeReset, Pos: at, Data: score})
}
