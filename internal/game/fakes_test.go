package game

import (
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// fakePhysics is a scripted Physics: bodies only move when a test says so.
type fakePhysics struct {
	next     BodyID
	bodies   map[BodyID]*Pose
	descs    map[BodyID]BodyDesc
	contacts map[BodyID][]Contact
	rays     map[BodyID]RayHit
	steps    int
	resets   int
	onStep   func(p *fakePhysics)
}

func newFakePhysics() *fakePhysics {
	p := &fakePhysics{}
	p.Reset()
	p.resets = 0
	return p
}

func (p *fakePhysics) AddBody(d BodyDesc) BodyID {
	p.next++
	p.bodies[p.next] = &Pose{Position: d.Position, Orientation: d.Orientation}
	p.descs[p.next] = d
	return p.next
}

func (p *fakePhysics) RemoveBody(id BodyID) {
	delete(p.bodies, id)
	delete(p.descs, id)
	delete(p.contacts, id)
	delete(p.rays, id)
}

func (p *fakePhysics) Pose(id BodyID) (Pose, bool) {
	b, ok := p.bodies[id]
	if !ok {
		return Pose{}, false
	}
	return *b, true
}

func (p *fakePhysics) SetVelocity(id BodyID, v mgl64.Vec3) { p.bodies[id].Velocity = v }

func (p *fakePhysics) SetAngularVelocity(id BodyID, v mgl64.Vec3) {
	p.bodies[id].AngularVelocity = v
}

func (p *fakePhysics) SetOrientation(id BodyID, q mgl64.Quat) { p.bodies[id].Orientation = q }

func (p *fakePhysics) Contacts(id BodyID) []Contact { return p.contacts[id] }

func (p *fakePhysics) CastRay(_, _ mgl64.Vec3, length float64, target BodyID) (RayHit, bool) {
	hit, ok := p.rays[target]
	if !ok || hit.Distance > length {
		return RayHit{}, false
	}
	return hit, true
}

func (p *fakePhysics) Step(float64) {
	p.steps++
	if p.onStep != nil {
		p.onStep(p)
	}
}

func (p *fakePhysics) Reset() {
	p.next = 0
	p.bodies = make(map[BodyID]*Pose)
	p.descs = make(map[BodyID]BodyDesc)
	p.contacts = make(map[BodyID][]Contact)
	p.rays = make(map[BodyID]RayHit)
	p.resets++
}

func (p *fakePhysics) place(id BodyID, pos mgl64.Vec3) { p.bodies[id].Position = pos }

// ground makes body rest on other: a contact plus a probe hit.
func (p *fakePhysics) ground(body, other BodyID) {
	p.contacts[body] = []Contact{{Other: other, Normal: Up}}
	p.rays[other] = RayHit{Normal: Up, Distance: 14}
}

func (p *fakePhysics) airborne(body BodyID) {
	delete(p.contacts, body)
}

func quietLogger() *logrus.Logger {
	lg := logrus.New()
	lg.Out = io.Discard
	return lg
}

func testLevel() Level {
	return Level{
		Name: "test",
		Obstacles: []LevelObstacle{
			{Kind: ObstaclePermanent, Position: mgl64.Vec3{0, 0, -20}, HalfExtents: mgl64.Vec3{200000, 1000, 20}, Color: ColorBlack},
			{Kind: ObstaclePermanent, Position: mgl64.Vec3{0, 1000, 1000}, HalfExtents: mgl64.Vec3{200000, 20, 1000}, Color: ColorBlack},
			{Kind: ObstaclePermanent, Position: mgl64.Vec3{0, -1000, 1000}, HalfExtents: mgl64.Vec3{200000, 20, 1000}, Color: ColorBlack},
			{Kind: ObstacleLevel, Position: mgl64.Vec3{199000, 0, 50}, HalfExtents: mgl64.Vec3{20, 20, 50}, Color: ColorCyan},
		},
	}
}

// builtWorld returns a world populated by a first Build.
func builtWorld(cfg Config) (*World, *fakePhysics, *NopScene, *EpisodeLifecycle) {
	w := NewWorld()
	ph := newFakePhysics()
	scene := NewNopScene()
	ep := NewEpisodeLifecycle(cfg, testLevel(), quietLogger(), nil)
	ep.Build(w, ph, scene)
	return w, ph, scene, ep
}

// floorID is the first permanent obstacle's body in a built world.
func floorID(w *World) BodyID {
	var id BodyID
	w.Obstacles.Each(func(rec *ObstacleRecord) bool {
		id = rec.Body
		return false
	})
	return id
}

// near compares component-wise with an absolute tolerance. mgl64's
// ApproxEqualThreshold turns relative and squares the tolerance at zero.
func near(a, b mgl64.Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
