package game

import "github.com/go-gl/mathgl/mgl64"

// BodyID identifies a rigid body inside the physics collaborator.
type BodyID uint32

// MeshID identifies a visual mesh inside the scene collaborator.
type MeshID uint32

// FrameID identifies a pending frame request.
type FrameID uint64

// ShapeKind tags the Shape variant.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	}
	return "unknown"
}

// Shape is Box{HalfExtents} or Sphere{Radius}, selected by Kind.
type Shape struct {
	Kind        ShapeKind
	HalfExtents mgl64.Vec3
	Radius      float64
}

func Box(halfExtents mgl64.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents}
}

func Sphere(radius float64) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

// Extents returns the half extents of the shape's axis-aligned bounds.
func (s Shape) Extents() mgl64.Vec3 {
	if s.Kind == ShapeSphere {
		return mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	}
	return s.HalfExtents
}

// Color is an RGB triple in [0,1].
type Color struct {
	R, G, B float64
}

var (
	ColorBlack = Color{0.05, 0.05, 0.06}
	ColorRed   = Color{0.86, 0.16, 0.16}
	ColorCyan  = Color{0.16, 0.82, 0.86}
	ColorGreen = Color{0.30, 0.85, 0.35}
	ColorWhite = Color{1, 1, 1}
)

// BodyDesc describes a rigid body to create. Mass 0 is static.
type BodyDesc struct {
	Shape       Shape
	Mass        float64
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Pose is the kinematic state of a body.
type Pose struct {
	Position        mgl64.Vec3
	Orientation     mgl64.Quat
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
}

// Contact is one touching pair reported for a body during the last step.
type Contact struct {
	Other  BodyID
	Normal mgl64.Vec3 // points from Other towards the queried body
}

// RayHit is the nearest intersection of a probe with a body.
type RayHit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
}

// PoseSource gives read access to body poses.
type PoseSource interface {
	Pose(id BodyID) (Pose, bool)
}

// Physics is the rigid-body collaborator.
type Physics interface {
	PoseSource
	AddBody(desc BodyDesc) BodyID
	RemoveBody(id BodyID)
	SetVelocity(id BodyID, v mgl64.Vec3)
	SetAngularVelocity(id BodyID, w mgl64.Vec3)
	SetOrientation(id BodyID, q mgl64.Quat)
	// Contacts lists the bodies touching id during the last step.
	Contacts(id BodyID) []Contact
	// CastRay intersects a ray of the given length with target only.
	CastRay(from, dir mgl64.Vec3, length float64, target BodyID) (RayHit, bool)
	Step(dt float64)
	// Reset destroys every body and starts an empty world.
	Reset()
}

// Scene is the renderer collaborator.
type Scene interface {
	AddMesh(body BodyID, shape Shape, color Color) MeshID
	RemoveMesh(id MeshID)
	SetCamera(cam Camera)
	Render(poses PoseSource)
	// Reset drops every mesh.
	Reset()
}

// Action is a logical control name, independent of key layout.
type Action string

const (
	ActionForward  Action = "forward"
	ActionBackward Action = "backward"
	ActionLeft     Action = "left"
	ActionRight    Action = "right"
	ActionJump     Action = "jump"
	ActionReset    Action = "reset"
)

// Input reports whether a named control is currently held.
type Input interface {
	Held(a Action) bool
}

// Overlay triggers one-shot UI transitions.
type Overlay interface {
	FadeOut(name string)
}

// Scheduler is the host's refresh scheduler.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Observer receives a copy of the world state after every tick.
// Implementations must not block.
type Observer interface {
	Observe(s Snapshot)
}
