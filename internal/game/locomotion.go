package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LocomotionState holds the two scalar accelerations. Positive translation
// moves towards +X at heading 0, so forward drives it negative.
type LocomotionState struct {
	Acceleration         float64
	RotationAcceleration float64
}

// Controls is the per-tick input snapshot.
type Controls struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool
	Reset    bool
}

// ReadControls samples every action once.
func ReadControls(in Input) Controls {
	if in == nil {
		return Controls{}
	}
	return Controls{
		Forward:  in.Held(ActionForward),
		Backward: in.Held(ActionBackward),
		Left:     in.Held(ActionLeft),
		Right:    in.Held(ActionRight),
		Jump:     in.Held(ActionJump),
		Reset:    in.Held(ActionReset),
	}
}

// Directional reports whether any movement key is held.
func (c Controls) Directional() bool {
	return c.Forward || c.Backward || c.Left || c.Right
}

// StepAcceleration applies one held-input update to value.
//
// dir +1 (forward/right) accumulates towards -Max, dir -1 (backward/left)
// towards +Max. While the value still sits half the maximum or more on the
// far side, as on a reversal at speed, the update snaps it to a quarter of
// the maximum on the target side instead of stepping. A step never passes the target maximum,
// and once it is reached the value is pinned to it.
func StepAcceleration(value float64, axis AxisConfig, dir int) float64 {
	half := axis.Max / 2
	quarter := axis.Max / 4
	if dir > 0 {
		if value > -axis.Max {
			if value >= half {
				return -quarter
			}
			return math.Max(value-axis.Step, -axis.Max)
		}
		return -axis.Max
	}
	if value < axis.Max {
		if value <= -half {
			return quarter
		}
		return math.Min(value+axis.Step, axis.Max)
	}
	return axis.Max
}

// LocomotionController turns held controls into body velocity and yaw.
type LocomotionController struct {
	translation AxisConfig
	rotation    AxisConfig
	jump        float64
	bus         *EventBus
}

func NewLocomotionController(cfg Config, bus *EventBus) *LocomotionController {
	return &LocomotionController{
		translation: cfg.Translation,
		rotation:    cfg.Rotation,
		jump:        cfg.Player.JumpVelocity,
		bus:         bus,
	}
}

// Update runs once per tick after physics has advanced.
func (c *LocomotionController) Update(w *World, ph Physics, in Controls) {
	id := w.Body.ID
	heading := w.Attitude.Radians.Z()

	if in.Jump {
		c.tryJump(w, ph)
	}

	if in.Forward {
		w.Motion.Acceleration = StepAcceleration(w.Motion.Acceleration, c.translation, 1)
		// Airborne: hold the last ground heading so mid-air spin cannot steer.
		if len(ph.Contacts(id)) == 0 {
			ph.SetOrientation(id, yawOnly(heading))
		}
	}
	if in.Backward {
		w.Motion.Acceleration = StepAcceleration(w.Motion.Acceleration, c.translation, -1)
	}
	if in.Right {
		w.Motion.RotationAcceleration = StepAcceleration(w.Motion.RotationAcceleration, c.rotation, 1)
	}
	if in.Left {
		w.Motion.RotationAcceleration = StepAcceleration(w.Motion.RotationAcceleration, c.rotation, -1)
	}

	c.accelerate(w, ph, in, heading)
	c.rotate(w, ph, in)
}

func (c *LocomotionController) tryJump(w *World, ph Physics) {
	if !w.Ground.Grounded || len(ph.Contacts(w.Body.ID)) == 0 {
		return
	}
	w.Ground.Grounded = false
	w.Body.sync(ph)
	v := w.Body.Velocity
	v[2] = c.jump
	ph.SetVelocity(w.Body.ID, v)
	w.Body.Velocity = v
	c.bus.Emit(Event{Type: EventJump, Pos: w.Body.Position})
}

// accelerate writes the planar velocity and leaves Z to the physics engine.
func (c *LocomotionController) accelerate(w *World, ph Physics, in Controls, heading float64) {
	w.Body.sync(ph)
	planar := polar(w.Motion.Acceleration, heading)
	v := mgl64.Vec3{planar.X(), planar.Y(), w.Body.Velocity.Z()}
	ph.SetVelocity(w.Body.ID, v)
	w.Body.Velocity = v

	if !in.Forward && !in.Backward {
		w.Motion.Acceleration *= c.translation.Damping
	}
}

// rotate turns the body about world Z by the rotation acceleration.
func (c *LocomotionController) rotate(w *World, ph Physics, in Controls) {
	w.Body.sync(ph)
	q := mgl64.QuatRotate(w.Motion.RotationAcceleration, Up).Mul(w.Body.Orientation).Normalize()
	ph.SetOrientation(w.Body.ID, q)
	w.Body.Orientation = q

	if !in.Left && !in.Right {
		w.Motion.RotationAcceleration *= c.rotation.Damping
	}
}
