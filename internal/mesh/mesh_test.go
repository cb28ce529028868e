package mesh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

func TestCubeFacesPointOutwards(t *testing.T) {
	v := Cube()
	if len(v) != 36*Stride {
		t.Fatalf("expected 36 vertices, got %d floats", len(v))
	}
	for tri := 0; tri < 12; tri++ {
		at := func(k int) mgl32.Vec3 {
			o := (tri*3 + k) * Stride
			return mgl32.Vec3{v[o], v[o+1], v[o+2]}
		}
		o := tri * 3 * Stride
		n := mgl32.Vec3{v[o+3], v[o+4], v[o+5]}
		face := at(1).Sub(at(0)).Cross(at(2).Sub(at(0)))
		if face.Dot(n) <= 0 {
			t.Fatalf("triangle %d winds against its normal %v", tri, n)
		}
		for k := 0; k < 3; k++ {
			p := at(k)
			for _, c := range p {
				if c != 1 && c != -1 {
					t.Fatalf("triangle %d vertex %v is not a cube corner", tri, p)
				}
			}
		}
	}
}

func TestSphereOnUnitRadius(t *testing.T) {
	v := Sphere(8, 12)
	if len(v) != 8*12*6*Stride {
		t.Fatalf("unexpected float count %d", len(v))
	}
	for i := 0; i < len(v); i += Stride {
		p := mgl32.Vec3{v[i], v[i+1], v[i+2]}
		if math.Abs(float64(p.Len())-1) > 1e-5 {
			t.Fatalf("vertex %d at radius %v", i/Stride, p.Len())
		}
	}
	if got := len(Sphere(0, 0)); got != 2*3*6*Stride {
		t.Fatalf("expected degenerate input clamped, got %d floats", got)
	}
}

func TestGridLines(t *testing.T) {
	g := Grid(3000, 1000, 1000)
	// 7 lines across X, 3 across Y, two endpoints of 3 floats each.
	if len(g) != (7+3)*6 {
		t.Fatalf("unexpected float count %d", len(g))
	}
	if Grid(10, 10, 0) != nil {
		t.Fatal("expected no grid for a zero step")
	}
}

func TestModelPlacesCorner(t *testing.T) {
	m := Model(mgl64.Vec3{10, 0, 5}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}), mgl64.Vec3{2, 1, 1})
	got := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	want := mgl32.Vec4{10, 2, 5, 1}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
