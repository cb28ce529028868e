// Package physics is a small rigid-body world for the corridor: gravity,
// per-axis AABB clipping against every other body, and a downward probe.
// Bodies never rotate from collisions; orientation only changes through
// angular velocity or SetOrientation. Collisions carry no momentum: a moving
// body stops against any other body, dynamic or not, and mass only marks a
// body as dynamic. Spheres collide as their bounding cubes.
package physics

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"corridor/internal/game"
)

// contactSkin is how far apart two faces may be and still touch.
const contactSkin = 1e-3

type body struct {
	id       game.BodyID
	shape    game.Shape
	mass     float64
	pose     game.Pose
	contacts []game.Contact
}

func (b *body) dynamic() bool { return b.mass > 0 }

func (b *body) bounds() AABB {
	return Around(b.pose.Position, b.shape.Extents())
}

// World implements game.Physics.
type World struct {
	gravity float64
	next    game.BodyID
	bodies  *orderedmap.OrderedMap[game.BodyID, *body]
	log     *logrus.Logger
}

// New returns an empty world pulling dynamic bodies along -Z by gravity.
func New(gravity float64, log *logrus.Logger) *World {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &World{
		gravity: gravity,
		bodies:  orderedmap.NewOrderedMap[game.BodyID, *body](),
		log:     log,
	}
}

// Len is the number of live bodies.
func (w *World) Len() int { return w.bodies.Len() }

func (w *World) AddBody(d game.BodyDesc) game.BodyID {
	w.next++
	q := d.Orientation
	if q.Len() == 0 {
		q = mgl64.QuatIdent()
	}
	w.bodies.Set(w.next, &body{
		id:    w.next,
		shape: d.Shape,
		mass:  d.Mass,
		pose:  game.Pose{Position: d.Position, Orientation: q.Normalize()},
	})
	return w.next
}

// RemoveBody drops id and every contact that refers to it.
func (w *World) RemoveBody(id game.BodyID) {
	if !w.bodies.Delete(id) {
		return
	}
	for el := w.bodies.Front(); el != nil; el = el.Next() {
		b := el.Value
		kept := b.contacts[:0]
		for _, c := range b.contacts {
			if c.Other != id {
				kept = append(kept, c)
			}
		}
		b.contacts = kept
	}
}

func (w *World) Pose(id game.BodyID) (game.Pose, bool) {
	b, ok := w.bodies.Get(id)
	if !ok {
		return game.Pose{}, false
	}
	return b.pose, true
}

func (w *World) SetVelocity(id game.BodyID, v mgl64.Vec3) {
	if b, ok := w.bodies.Get(id); ok && b.dynamic() {
		b.pose.Velocity = v
	}
}

func (w *World) SetAngularVelocity(id game.BodyID, v mgl64.Vec3) {
	if b, ok := w.bodies.Get(id); ok && b.dynamic() {
		b.pose.AngularVelocity = v
	}
}

func (w *World) SetOrientation(id game.BodyID, q mgl64.Quat) {
	if b, ok := w.bodies.Get(id); ok {
		b.pose.Orientation = q.Normalize()
	}
}

// Contacts returns the bodies touching id after the last Step.
func (w *World) Contacts(id game.BodyID) []game.Contact {
	b, ok := w.bodies.Get(id)
	if !ok || len(b.contacts) == 0 {
		return nil
	}
	out := make([]game.Contact, len(b.contacts))
	copy(out, b.contacts)
	return out
}

// Reset removes every body. IDs restart at 1.
func (w *World) Reset() {
	n := w.bodies.Len()
	w.bodies = orderedmap.NewOrderedMap[game.BodyID, *body]()
	w.next = 0
	w.log.WithField("bodies", n).Debug("physics world reset")
}

// Step advances every dynamic body by dt in insertion order.
func (w *World) Step(dt float64) {
	for el := w.bodies.Front(); el != nil; el = el.Next() {
		el.Value.contacts = el.Value.contacts[:0]
	}
	for el := w.bodies.Front(); el != nil; el = el.Next() {
		b := el.Value
		if !b.dynamic() {
			continue
		}
		w.move(b, dt)
		b.pose.Orientation = integrate(b.pose.Orientation, b.pose.AngularVelocity, dt)
	}
}

// move clips the body's displacement one axis at a time, vertical first,
// against every body its swept box could reach, then records contacts.
func (w *World) move(b *body, dt float64) {
	v := b.pose.Velocity
	v[2] += w.gravity * dt
	want := v.Mul(dt)

	box := b.bounds()
	reach := box.Extend(want).Grow(contactSkin)
	var near []*body
	for el := w.bodies.Front(); el != nil; el = el.Next() {
		o := el.Value
		if o.id != b.id && o.bounds().Intersects(reach) {
			near = append(near, o)
		}
	}

	var moved mgl64.Vec3
	for _, axis := range [3]int{2, 0, 1} {
		d := want[axis]
		for _, o := range near {
			d = clipAxis(o.bounds(), box, d, axis)
		}
		var step mgl64.Vec3
		step[axis] = d
		box = box.Translate(step)
		moved[axis] = d
		if d != want[axis] {
			v[axis] = 0
		}
	}
	b.pose.Position = b.pose.Position.Add(moved)
	b.pose.Velocity = v

	touch := box.Grow(contactSkin)
	for _, o := range near {
		ob := o.bounds()
		if !ob.Intersects(touch) {
			continue
		}
		n := contactNormal(box, ob)
		b.touch(o.id, n)
		o.touch(b.id, n.Mul(-1))
	}
}

// touch records a contact with other once per step.
func (b *body) touch(other game.BodyID, n mgl64.Vec3) {
	for _, c := range b.contacts {
		if c.Other == other {
			return
		}
	}
	b.contacts = append(b.contacts, game.Contact{Other: other, Normal: n})
}

// integrate applies q' = q + dt/2 * w * q.
func integrate(q mgl64.Quat, omega mgl64.Vec3, dt float64) mgl64.Quat {
	if omega.LenSqr() == 0 {
		return q
	}
	w := mgl64.Quat{W: 0, V: omega}
	dq := w.Mul(q).Scale(dt / 2)
	return q.Add(dq).Normalize()
}
