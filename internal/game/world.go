package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ControlledBody is the single player-driven dynamic body. Pose is a copy
// refreshed from the physics collaborator each sub-step.
type ControlledBody struct {
	ID          BodyID
	Mesh        MeshID
	Mass        float64
	HalfExtents mgl64.Vec3
	Pose
}

// X is the longitudinal coordinate along the corridor.
func (b *ControlledBody) X() float64 { return b.Position.X() }

// sync refreshes the cached pose. A missing body is a broken invariant.
func (b *ControlledBody) sync(ph PoseSource) {
	p, ok := ph.Pose(b.ID)
	if !ok {
		panic(fmt.Sprintf("controlled body %d has no pose", b.ID))
	}
	b.Pose = p
}

// DifficultyState bounds the streamed-obstacle set.
type DifficultyState struct {
	Budget     float64
	Multiplier float64
}

// grow scales the budget after a spawn.
func (d *DifficultyState) grow() {
	d.Budget *= d.Multiplier
}

// World is the mutable simulation state owned by the frame loop.
type World struct {
	Episode    string
	Tick       uint64
	Body       ControlledBody
	Motion     LocomotionState
	Ground     GroundContact
	Attitude   Attitude
	Score      ScoreState
	Difficulty DifficultyState
	Obstacles  *ObstacleRegistry
	Camera     Camera
}

func NewWorld() *World {
	return &World{
		Score:     NewScoreState(),
		Obstacles: NewObstacleRegistry(),
	}
}

// Snapshot is a value copy of the observable world state.
type Snapshot struct {
	Episode      string     `json:"episode"`
	Tick         uint64     `json:"tick"`
	Position     [3]float64 `json:"position"`
	Velocity     [3]float64 `json:"velocity"`
	Heading      float64    `json:"heading"`
	Acceleration float64    `json:"acceleration"`
	Rotation     float64    `json:"rotation"`
	Grounded     bool       `json:"grounded"`
	Score        int        `json:"score"`
	Obstacles    int        `json:"obstacles"`
	Streamed     int        `json:"streamed"`
	Budget       float64    `json:"budget"`
}

func (w *World) Snapshot() Snapshot {
	return Snapshot{
		Episode:      w.Episode,
		Tick:         w.Tick,
		Position:     w.Body.Position,
		Velocity:     w.Body.Velocity,
		Heading:      w.Attitude.Radians.Z(),
		Acceleration: w.Motion.Acceleration,
		Rotation:     w.Motion.RotationAcceleration,
		Grounded:     w.Ground.Grounded,
		Score:        w.Score.Points,
		Obstacles:    w.Obstacles.Len(),
		Streamed:     w.Obstacles.Streamed(),
		Budget:       w.Difficulty.Budget,
	}
}
