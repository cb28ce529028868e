package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl64.Vec3
}

// Around returns the box of half extents he centred on c.
func Around(c, he mgl64.Vec3) AABB {
	return AABB{Min: c.Sub(he), Max: c.Add(he)}
}

func (a AABB) Translate(v mgl64.Vec3) AABB {
	return AABB{Min: a.Min.Add(v), Max: a.Max.Add(v)}
}

// Grow expands every face outwards by d.
func (a AABB) Grow(d float64) AABB {
	g := mgl64.Vec3{d, d, d}
	return AABB{Min: a.Min.Sub(g), Max: a.Max.Add(g)}
}

// Extend stretches the box along v, covering a sweep by v.
func (a AABB) Extend(v mgl64.Vec3) AABB {
	out := a
	for i := 0; i < 3; i++ {
		if v[i] < 0 {
			out.Min[i] += v[i]
		} else {
			out.Max[i] += v[i]
		}
	}
	return out
}

// Intersects reports strict overlap; touching faces do not count.
func (a AABB) Intersects(o AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Max[i] <= o.Min[i] || a.Min[i] >= o.Max[i] {
			return false
		}
	}
	return true
}

// clipEpsilon absorbs rounding left over from an earlier clip so a resting
// body does not sink through the face it rests on.
const clipEpsilon = 1e-7

// clipAxis limits the movement d of moving along axis so it stops at the
// face of stationary. Boxes that do not overlap on the other two axes, or
// that already interpenetrate, do not clip.
func clipAxis(stationary, moving AABB, d float64, axis int) float64 {
	for i := 0; i < 3; i++ {
		if i == axis {
			continue
		}
		if moving.Max[i] <= stationary.Min[i]+clipEpsilon || moving.Min[i] >= stationary.Max[i]-clipEpsilon {
			return d
		}
	}
	switch {
	case d > 0 && moving.Max[axis] <= stationary.Min[axis]+clipEpsilon:
		if gap := stationary.Min[axis] - moving.Max[axis]; gap < d {
			d = gap
		}
	case d < 0 && moving.Min[axis] >= stationary.Max[axis]-clipEpsilon:
		if gap := stationary.Max[axis] - moving.Min[axis]; gap > d {
			d = gap
		}
	}
	return d
}

// contactNormal is the axis of least overlap between a and b, pointing
// from b towards a.
func contactNormal(a, b AABB) mgl64.Vec3 {
	best, axis, sign := math.MaxFloat64, 2, 1.0
	for i := 0; i < 3; i++ {
		up := b.Max[i] - a.Min[i]   // a resting on b's max face
		down := a.Max[i] - b.Min[i] // a pressing into b's min face
		if up < best {
			best, axis, sign = up, i, 1
		}
		if down < best {
			best, axis, sign = down, i, -1
		}
	}
	var n mgl64.Vec3
	n[axis] = sign
	return n
}
