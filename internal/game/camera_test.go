package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTrackCamera(t *testing.T) {
	cfg := DefaultConfig().Camera
	pos := mgl64.Vec3{1000, 20, 14}
	cases := []struct {
		yaw float64
		eye mgl64.Vec3
	}{
		{0, mgl64.Vec3{1280, 20, 114}},
		{math.Pi / 2, mgl64.Vec3{1000, 300, 114}},
		{math.Pi, mgl64.Vec3{720, 20, 114}},
		{-math.Pi / 2, mgl64.Vec3{1000, -260, 114}},
	}
	for _, c := range cases {
		cam := TrackCamera(pos, c.yaw, cfg)
		if !near(cam.Eye, c.eye, 1e-9) {
			t.Errorf("yaw %v: expected eye %v, got %v", c.yaw, c.eye, cam.Eye)
		}
		if cam.Target != pos {
			t.Errorf("yaw %v: expected target %v, got %v", c.yaw, pos, cam.Target)
		}
	}
}

func TestCameraViewLooksAtBody(t *testing.T) {
	cfg := DefaultConfig().Camera
	pos := mgl64.Vec3{500, 0, 14}
	cam := TrackCamera(pos, 0.4, cfg)

	// The target ends up on the view axis in front of the camera.
	v := cam.View().Mul4x1(pos.Vec4(1))
	if math.Abs(v.X()) > 1e-6 || math.Abs(v.Y()) > 1e-6 || v.Z() >= 0 {
		t.Fatalf("expected the body straight ahead, got %v", v)
	}
	dist := cam.Eye.Sub(pos).Len()
	if math.Abs(-v.Z()-dist) > 1e-6 {
		t.Fatalf("expected depth %v, got %v", dist, -v.Z())
	}
}

func TestProjectionFallsBackOnBadAspect(t *testing.T) {
	cfg := DefaultConfig().Camera
	if Projection(cfg, 0) != Projection(cfg, 1) {
		t.Fatal("expected aspect 0 to behave like 1")
	}
}

func TestCameraTrackerWritesWorld(t *testing.T) {
	w := NewWorld()
	w.Body.Position = mgl64.Vec3{10, 0, 0}
	cam := NewCameraTracker(DefaultConfig()).Update(w)
	if w.Camera != cam {
		t.Fatal("expected world camera updated")
	}
}
