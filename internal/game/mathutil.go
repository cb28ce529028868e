package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world vertical axis. The corridor is Z-up.
var Up = mgl64.Vec3{0, 0, 1}

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// floorMod is the Euclidean remainder of a by b (b > 0).
func floorMod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// polar returns the planar vector of the given length at angle radians.
func polar(length, angle float64) mgl64.Vec2 {
	return mgl64.Vec2{length * math.Cos(angle), length * math.Sin(angle)}
}

// yawOnly is a pure rotation about the vertical axis.
func yawOnly(yaw float64) mgl64.Quat {
	return mgl64.QuatRotate(yaw, Up)
}

// eulerXYZ decomposes q into intrinsic X-Y-Z angles (radians).
// Near gimbal lock the X angle absorbs the Z rotation and Z is reported as 0.
func eulerXYZ(q mgl64.Quat) mgl64.Vec3 {
	m := q.Normalize().Mat4()
	m11, m12, m13 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m22, m23 := m.At(1, 1), m.At(1, 2)
	m32, m33 := m.At(2, 1), m.At(2, 2)

	y := math.Asin(clampF(m13, -1, 1))
	if math.Abs(m13) < 0.9999999 {
		return mgl64.Vec3{math.Atan2(-m23, m33), y, math.Atan2(-m12, m11)}
	}
	return mgl64.Vec3{math.Atan2(m32, m22), y, 0}
}

// Rand is a tiny deterministic RNG (xorshift64*).
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	seed = splitmix64(seed)
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: seed}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

// Float64 returns a value in [0,1).
func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}

func (r *Rand) RangeF(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + (max-min)*r.Float64()
}
