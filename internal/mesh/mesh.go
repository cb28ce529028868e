// Package mesh builds the vertex data the renderer uploads: unit primitives
// scaled per instance, the floor grid and model matrices.
package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Stride is the float count of one lit vertex: position(3) + normal(3).
const Stride = 6

// Cube returns 36 vertices of the cube spanning [-1,1] on every axis.
func Cube() []float32 {
	faces := [6]struct {
		n    mgl32.Vec3
		u, v mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
	}
	out := make([]float32, 0, 36*Stride)
	for _, f := range faces {
		corner := func(su, sv float32) mgl32.Vec3 {
			return f.n.Add(f.u.Mul(su)).Add(f.v.Mul(sv))
		}
		quad := [6]mgl32.Vec3{
			corner(-1, -1), corner(1, -1), corner(1, 1),
			corner(-1, -1), corner(1, 1), corner(-1, 1),
		}
		for _, p := range quad {
			out = append(out, p[0], p[1], p[2], f.n[0], f.n[1], f.n[2])
		}
	}
	return out
}

// Sphere returns a unit UV sphere as a triangle list.
func Sphere(stacks, slices int) []float32 {
	if stacks < 2 {
		stacks = 2
	}
	if slices < 3 {
		slices = 3
	}
	point := func(i, j int) mgl32.Vec3 {
		theta := math32.Pi * float32(i) / float32(stacks)
		phi := 2 * math32.Pi * float32(j) / float32(slices)
		st, ct := math32.Sincos(theta)
		sp, cp := math32.Sincos(phi)
		return mgl32.Vec3{st * cp, st * sp, ct}
	}
	out := make([]float32, 0, stacks*slices*6*Stride)
	push := func(p mgl32.Vec3) {
		// On a unit sphere the normal is the position.
		out = append(out, p[0], p[1], p[2], p[0], p[1], p[2])
	}
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a, b := point(i, j), point(i+1, j)
			c, d := point(i+1, j+1), point(i, j+1)
			push(a)
			push(b)
			push(c)
			push(a)
			push(c)
			push(d)
		}
	}
	return out
}

// Grid returns line-segment endpoints (x,y,z) on the z=0 plane covering
// [-halfX,halfX] by [-halfY,halfY] every step units.
func Grid(halfX, halfY, step float32) []float32 {
	if step <= 0 {
		return nil
	}
	var out []float32
	nx := int(math32.Floor(halfX / step))
	ny := int(math32.Floor(halfY / step))
	for i := -nx; i <= nx; i++ {
		x := float32(i) * step
		out = append(out, x, -halfY, 0, x, halfY, 0)
	}
	for j := -ny; j <= ny; j++ {
		y := float32(j) * step
		out = append(out, -halfX, y, 0, halfX, y, 0)
	}
	return out
}

// Model composes translate * rotate * scale for a body pose.
func Model(pos mgl64.Vec3, q mgl64.Quat, scale mgl64.Vec3) mgl32.Mat4 {
	m := mgl64.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl64.Scale3D(scale.X(), scale.Y(), scale.Z()))
	return F32(m)
}

// F32 narrows a matrix for upload.
func F32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}
