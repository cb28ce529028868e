package game

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Window defaults.
const (
	WindowWidth  = 1280
	WindowHeight = 720
	FieldOfView  = 45.0 // degrees, vertical
	NearPlane    = 1.0
	FarPlane     = 20000.0
)

// Simulation timing.
const (
	TickRate        = 60
	PhysicsSubsteps = 1
	Gravity         = -10.0
)

// Player body.
const (
	PlayerMass   = 3.0
	PlayerStartX = 199950.0
	PlayerStartY = 0.0
	PlayerStartZ = 50.0
	PlayerHalfX  = 20.0
	PlayerHalfY  = 14.0
	PlayerHalfZ  = 14.0
	JumpVelocity = 50.0
	ProbeLength  = 50.0
)

// Translation and rotation tuning. Damping is a per-tick multiplier.
const (
	SpeedStep         = 1.5
	SpeedMax          = 500.0
	SpeedDamping      = 0.9
	RotationSpeedStep = 0.007
	RotationSpeedMax  = 0.04
	RotationDamping   = 0.8
	TiltLimitDegrees  = 90
	CameraOffsetH     = 280.0
	CameraOffsetV     = 100.0
)

// Streaming band and spawn ranges (world units along X, forward is -X).
const (
	StreamNearX      = -1000.0
	StreamFarX       = -50000.0
	SpawnAheadMin    = 5000.0
	SpawnAheadMax    = 8000.0
	LateralHalfWidth = 900.0
	SpawnHeight      = 200.0
	SpawnMass        = 5.0
	ShapeSizeMin     = 10.0
	ShapeSizeRange   = 50.0
	EvictMargin      = 500.0
)

// Difficulty.
const (
	InitialBudget        = 60.0
	DifficultyMultiplier = 1.0
)

// Scoring lattice.
const (
	CheckpointSpacing = 100
	CheckpointOffset  = 50
	CheckpointPoints  = 10
)

// Episode.
const FloorZ = -800.0

// AxisConfig tunes one acceleration axis.
type AxisConfig struct {
	Step    float64
	Max     float64
	Damping float64
}

type PlayerConfig struct {
	Mass         float64
	Start        mgl64.Vec3
	HalfExtents  mgl64.Vec3
	JumpVelocity float64
	ProbeLength  float64
}

type CameraConfig struct {
	OffsetH float64
	OffsetV float64
	FovY    float64 // degrees
	Near    float64
	Far     float64
}

type StreamingConfig struct {
	NearX            float64
	FarX             float64
	AheadMin         float64
	AheadMax         float64
	LateralHalfWidth float64
	SpawnHeight      float64
	SpawnMass        float64
	SizeMin          float64
	SizeRange        float64
	EvictMargin      float64
}

type ScoringConfig struct {
	Spacing int
	Offset  int
	Points  int
}

type EpisodeConfig struct {
	FloorZ               float64
	InitialBudget        float64
	DifficultyMultiplier float64
}

// Config is the full set of numeric constants supplied at startup.
type Config struct {
	Seed      uint64
	TickRate  int
	Substeps  int
	Gravity   float64
	TiltLimit int

	Player      PlayerConfig
	Translation AxisConfig
	Rotation    AxisConfig
	Camera      CameraConfig
	Streaming   StreamingConfig
	Scoring     ScoringConfig
	Episode     EpisodeConfig
}

// DefaultConfig assembles a Config from the package defaults.
func DefaultConfig() Config {
	return Config{
		Seed:      1,
		TickRate:  TickRate,
		Substeps:  PhysicsSubsteps,
		Gravity:   Gravity,
		TiltLimit: TiltLimitDegrees,
		Player: PlayerConfig{
			Mass:         PlayerMass,
			Start:        mgl64.Vec3{PlayerStartX, PlayerStartY, PlayerStartZ},
			HalfExtents:  mgl64.Vec3{PlayerHalfX, PlayerHalfY, PlayerHalfZ},
			JumpVelocity: JumpVelocity,
			ProbeLength:  ProbeLength,
		},
		Translation: AxisConfig{Step: SpeedStep, Max: SpeedMax, Damping: SpeedDamping},
		Rotation:    AxisConfig{Step: RotationSpeedStep, Max: RotationSpeedMax, Damping: RotationDamping},
		Camera: CameraConfig{
			OffsetH: CameraOffsetH,
			OffsetV: CameraOffsetV,
			FovY:    FieldOfView,
			Near:    NearPlane,
			Far:     FarPlane,
		},
		Streaming: StreamingConfig{
			NearX:            StreamNearX,
			FarX:             StreamFarX,
			AheadMin:         SpawnAheadMin,
			AheadMax:         SpawnAheadMax,
			LateralHalfWidth: LateralHalfWidth,
			SpawnHeight:      SpawnHeight,
			SpawnMass:        SpawnMass,
			SizeMin:          ShapeSizeMin,
			SizeRange:        ShapeSizeRange,
			EvictMargin:      EvictMargin,
		},
		Scoring: ScoringConfig{
			Spacing: CheckpointSpacing,
			Offset:  CheckpointOffset,
			Points:  CheckpointPoints,
		},
		Episode: EpisodeConfig{
			FloorZ:               FloorZ,
			InitialBudget:        InitialBudget,
			DifficultyMultiplier: DifficultyMultiplier,
		},
	}
}

// StepDuration is the fixed physics step per sub-step, in seconds.
func (c Config) StepDuration() float64 {
	return 1.0 / float64(c.TickRate*c.Substeps)
}

func (a AxisConfig) validate(name string) error {
	if a.Step <= 0 {
		return fmt.Errorf("%s: step must be positive, got %v", name, a.Step)
	}
	if a.Max <= 0 {
		return fmt.Errorf("%s: max must be positive, got %v", name, a.Max)
	}
	if a.Damping <= 0 || a.Damping >= 1 {
		return fmt.Errorf("%s: damping must be in (0,1), got %v", name, a.Damping)
	}
	return nil
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return errors.New("tick rate must be positive")
	}
	if c.Substeps <= 0 {
		return errors.New("substeps must be positive")
	}
	if err := c.Translation.validate("translation"); err != nil {
		return err
	}
	if err := c.Rotation.validate("rotation"); err != nil {
		return err
	}
	if c.Player.Mass <= 0 {
		return fmt.Errorf("player mass must be positive, got %v", c.Player.Mass)
	}
	if c.Player.ProbeLength <= c.Player.HalfExtents.Z() {
		return fmt.Errorf("probe length %v does not reach below the body (half height %v)",
			c.Player.ProbeLength, c.Player.HalfExtents.Z())
	}
	s := c.Streaming
	if s.FarX >= s.NearX {
		return fmt.Errorf("streaming band is empty: far %v >= near %v", s.FarX, s.NearX)
	}
	if s.AheadMin > s.AheadMax {
		return fmt.Errorf("spawn ahead range inverted: %v > %v", s.AheadMin, s.AheadMax)
	}
	if s.SizeMin <= 0 || s.SizeRange < 0 {
		return fmt.Errorf("shape size range invalid: min %v range %v", s.SizeMin, s.SizeRange)
	}
	if c.Scoring.Spacing <= 0 {
		return fmt.Errorf("checkpoint spacing must be positive, got %d", c.Scoring.Spacing)
	}
	if c.Episode.InitialBudget < 0 {
		return fmt.Errorf("initial budget must not be negative, got %v", c.Episode.InitialBudget)
	}
	if c.Episode.DifficultyMultiplier < 1 {
		return fmt.Errorf("difficulty multiplier must be >= 1, got %v", c.Episode.DifficultyMultiplier)
	}
	return nil
}
