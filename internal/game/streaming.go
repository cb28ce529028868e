package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// StreamingManager spawns obstacles ahead of the body inside the streaming
// band and evicts the ones it has left behind.
type StreamingManager struct {
	cfg StreamingConfig
	rng *Rand
	log *logrus.Logger
	bus *EventBus

	evict []ObstacleID
}

func NewStreamingManager(cfg Config, rng *Rand, log *logrus.Logger, bus *EventBus) *StreamingManager {
	return &StreamingManager{cfg: cfg.Streaming, rng: rng, log: orDiscard(log), bus: bus}
}

// InBand reports whether x lies strictly inside the streaming band.
func (m *StreamingManager) InBand(x float64) bool {
	return x < m.cfg.NearX && x > m.cfg.FarX
}

// RandomObstacle draws a placement and shape ahead of bodyX.
func (m *StreamingManager) RandomObstacle(bodyX float64) (mgl64.Vec3, Shape) {
	x := m.rng.RangeF(bodyX-m.cfg.AheadMax, bodyX-m.cfg.AheadMin)
	y := m.rng.RangeF(-m.cfg.LateralHalfWidth, m.cfg.LateralHalfWidth)
	size := m.rng.RangeF(m.cfg.SizeMin, m.cfg.SizeMin+m.cfg.SizeRange)

	shape := Box(mgl64.Vec3{size, size, size})
	if m.rng.Intn(2) == 1 {
		shape = Sphere(size)
	}
	return mgl64.Vec3{x, y, m.cfg.SpawnHeight}, shape
}

// Update spawns at most one obstacle and evicts every passed one.
func (m *StreamingManager) Update(w *World, ph Physics, scene Scene) {
	x := w.Body.X()
	if m.InBand(x) && float64(w.Obstacles.Streamed()) < w.Difficulty.Budget {
		m.spawn(w, ph, scene, x)
	}
	m.evictBehind(w, ph, scene, x)
}

func (m *StreamingManager) spawn(w *World, ph Physics, scene Scene, bodyX float64) {
	pos, shape := m.RandomObstacle(bodyX)
	rec := spawnObstacle(w.Obstacles, ph, scene, ObstacleStreamed, pos, shape, m.cfg.SpawnMass, ColorCyan)
	w.Difficulty.grow()

	m.log.WithFields(logrus.Fields{
		"episode": w.Episode,
		"id":      rec.ID,
		"shape":   shape.Kind,
		"x":       pos.X(),
		"budget":  w.Difficulty.Budget,
	}).Debug("obstacle spawned")
	m.bus.Emit(Event{Type: EventObstacleSpawned, Pos: pos, Data: int(rec.ID)})
}

// evictBehind removes non-permanent obstacles more than EvictMargin behind
// the body. Dynamic obstacles are judged by their current position.
func (m *StreamingManager) evictBehind(w *World, ph Physics, scene Scene, bodyX float64) {
	limit := bodyX + m.cfg.EvictMargin
	m.evict = m.evict[:0]
	w.Obstacles.Each(func(rec *ObstacleRecord) bool {
		if rec.Kind == ObstaclePermanent {
			return true
		}
		x := rec.Position.X()
		if p, ok := ph.Pose(rec.Body); ok {
			x = p.Position.X()
		}
		if x > limit {
			m.evict = append(m.evict, rec.ID)
		}
		return true
	})

	for _, id := range m.evict {
		rec, ok := w.Obstacles.Remove(id)
		if !ok {
			continue
		}
		ph.RemoveBody(rec.Body)
		scene.RemoveMesh(rec.Mesh)
		m.log.WithFields(logrus.Fields{
			"episode": w.Episode,
			"id":      rec.ID,
			"kind":    rec.Kind,
		}).Debug("obstacle evicted")
		m.bus.Emit(Event{Type: EventObstacleEvicted, Pos: rec.Position, Data: int(rec.ID)})
	}
}

// spawnObstacle creates the body and mesh and records them.
func spawnObstacle(reg *ObstacleRegistry, ph Physics, scene Scene, kind ObstacleKind, pos mgl64.Vec3, shape Shape, mass float64, color Color) *ObstacleRecord {
	body := ph.AddBody(BodyDesc{
		Shape:       shape,
		Mass:        mass,
		Position:    pos,
		Orientation: mgl64.QuatIdent(),
	})
	mesh := scene.AddMesh(body, shape, color)
	return reg.Add(ObstacleRecord{
		Kind:     kind,
		Body:     body,
		Mesh:     mesh,
		Shape:    shape,
		Position: pos,
		Color:    color,
	})
}
