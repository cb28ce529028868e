package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"corridor/internal/game"
)

// rayBox is the slab test. A ray starting inside the box hits at t=0.
func rayBox(from, dir mgl64.Vec3, box AABB) (t float64, n mgl64.Vec3, ok bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	axis, sign := -1, 0.0
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			if from[i] < box.Min[i] || from[i] > box.Max[i] {
				return 0, n, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (box.Min[i] - from[i]) * inv
		t2 := (box.Max[i] - from[i]) * inv
		s := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1
		}
		if t1 > tmin {
			tmin, axis, sign = t1, i, s
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, n, false
		}
	}
	if tmax < 0 {
		return 0, n, false
	}
	if tmin < 0 {
		return 0, n, true
	}
	if axis >= 0 {
		n[axis] = sign
	}
	return tmin, n, true
}

func raySphere(from, dir, center mgl64.Vec3, r float64) (t float64, n mgl64.Vec3, ok bool) {
	oc := from.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - r*r
	disc := b*b - c
	if disc < 0 {
		return 0, n, false
	}
	sq := math.Sqrt(disc)
	t = -b - sq
	if t < 0 {
		t = -b + sq
		if t < 0 {
			return 0, n, false
		}
		if c <= 0 {
			return 0, n, true
		}
	}
	n = from.Add(dir.Mul(t)).Sub(center).Normalize()
	return t, n, true
}

// CastRay intersects the ray from+dir*[0,length] with target only.
func (w *World) CastRay(from, dir mgl64.Vec3, length float64, target game.BodyID) (game.RayHit, bool) {
	b, ok := w.bodies.Get(target)
	if !ok || dir.LenSqr() == 0 {
		return game.RayHit{}, false
	}
	dir = dir.Normalize()

	var t float64
	var n mgl64.Vec3
	switch b.shape.Kind {
	case game.ShapeSphere:
		t, n, ok = raySphere(from, dir, b.pose.Position, b.shape.Radius)
	default:
		t, n, ok = rayBox(from, dir, b.bounds())
	}
	if !ok || t > length {
		return game.RayHit{}, false
	}
	return game.RayHit{Point: from.Add(dir.Mul(t)), Normal: n, Distance: t}, true
}
