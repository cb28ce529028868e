package game

import "github.com/go-gl/mathgl/mgl64"

// Camera is a look-at camera in world space.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3
}

// TrackCamera places the camera behind the body along its heading and aims
// it at the body. There is no smoothing: the camera snaps every tick.
func TrackCamera(pos mgl64.Vec3, yaw float64, cfg CameraConfig) Camera {
	off := polar(cfg.OffsetH, yaw)
	return Camera{
		Eye:    pos.Add(mgl64.Vec3{off.X(), off.Y(), cfg.OffsetV}),
		Target: pos,
		Up:     Up,
	}
}

// View is the world-to-camera matrix.
func (c Camera) View() mgl64.Mat4 {
	up := c.Up
	if up.LenSqr() == 0 {
		up = Up
	}
	return mgl64.LookAtV(c.Eye, c.Target, up)
}

// Projection is a perspective matrix for the given aspect ratio.
func Projection(cfg CameraConfig, aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(cfg.FovY), aspect, cfg.Near, cfg.Far)
}

// CameraTracker applies TrackCamera to the world each tick.
type CameraTracker struct {
	cfg CameraConfig
}

func NewCameraTracker(cfg Config) *CameraTracker {
	return &CameraTracker{cfg: cfg.Camera}
}

func (t *CameraTracker) Update(w *World) Camera {
	w.Camera = TrackCamera(w.Body.Position, w.Attitude.Radians.Z(), t.cfg)
	return w.Camera
}
