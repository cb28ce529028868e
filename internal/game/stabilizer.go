package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var down = mgl64.Vec3{0, 0, -1}

// GroundContact is the grounded flag and the evidence it was derived from.
type GroundContact struct {
	Grounded bool
	Contact  Contact // last contact probed
	Probe    RayHit  // last probe result, valid when Hit
	Probed   bool
	Hit      bool
}

// Attitude is the body's Euler XYZ orientation. AngleX and AngleY are
// rounded degrees; Radians.Z is the heading used for travel and camera.
type Attitude struct {
	Radians mgl64.Vec3
	AngleX  int
	AngleY  int
}

func attitudeOf(q mgl64.Quat) Attitude {
	r := eulerXYZ(q)
	return Attitude{
		Radians: r,
		AngleX:  int(math.Round(mgl64.RadToDeg(r.X()))),
		AngleY:  int(math.Round(mgl64.RadToDeg(r.Y()))),
	}
}

// Tilted reports whether roll or pitch reached limit degrees.
func (a Attitude) Tilted(limit int) bool {
	return a.AngleX >= limit || a.AngleX <= -limit || a.AngleY >= limit || a.AngleY <= -limit
}

// OrientationStabilizer keeps the body upright and derives the grounded flag.
type OrientationStabilizer struct {
	probe float64
	limit int
}

func NewOrientationStabilizer(cfg Config) *OrientationStabilizer {
	return &OrientationStabilizer{probe: cfg.Player.ProbeLength, limit: cfg.TiltLimit}
}

// PostStep runs after every physics sub-step.
func (s *OrientationStabilizer) PostStep(w *World, ph Physics) {
	id := w.Body.ID
	w.Body.sync(ph)

	av := w.Body.AngularVelocity
	if av.Z() != 0 {
		av[2] = 0
		ph.SetAngularVelocity(id, av)
		w.Body.AngularVelocity = av
	}

	w.Attitude = attitudeOf(w.Body.Orientation)

	for _, c := range ph.Contacts(id) {
		if w.Ground.Grounded {
			break
		}
		hit, ok := ph.CastRay(w.Body.Position, down, s.probe, c.Other)
		w.Ground.Contact = c
		w.Ground.Probe = hit
		w.Ground.Probed = true
		w.Ground.Hit = ok
		w.Ground.Grounded = ok
	}

	// Approximate: the heading comes from the same tilted decomposition and
	// grounded may be stale from an earlier contact.
	if w.Ground.Grounded && w.Attitude.Tilted(s.limit) {
		q := yawOnly(w.Attitude.Radians.Z())
		ph.SetOrientation(id, q)
		w.Body.Orientation = q
	}
}
