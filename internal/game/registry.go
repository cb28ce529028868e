package game

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
)

type ObstacleKind int

const (
	// ObstaclePermanent is the fixed base (floor and side walls): never evicted.
	ObstaclePermanent ObstacleKind = iota
	// ObstacleLevel is static level geometry: evicted once passed, not budgeted.
	ObstacleLevel
	// ObstacleStreamed is procedurally spawned: evicted and budgeted.
	ObstacleStreamed
)

func (k ObstacleKind) String() string {
	switch k {
	case ObstaclePermanent:
		return "permanent"
	case ObstacleLevel:
		return "level"
	case ObstacleStreamed:
		return "streamed"
	}
	return "unknown"
}

type ObstacleID uint32

type ObstacleRecord struct {
	ID       ObstacleID
	Kind     ObstacleKind
	Body     BodyID
	Mesh     MeshID
	Shape    Shape
	Position mgl64.Vec3 // placement at creation
	Color    Color
}

// ObstacleRegistry is the active-obstacle set in creation order.
type ObstacleRegistry struct {
	records  *orderedmap.OrderedMap[ObstacleID, *ObstacleRecord]
	next     ObstacleID
	streamed int
}

func NewObstacleRegistry() *ObstacleRegistry {
	return &ObstacleRegistry{
		records: orderedmap.NewOrderedMap[ObstacleID, *ObstacleRecord](),
		next:    1,
	}
}

// Add stores rec under a fresh ID and returns the stored record.
func (r *ObstacleRegistry) Add(rec ObstacleRecord) *ObstacleRecord {
	rec.ID = r.next
	r.next++
	stored := &rec
	r.records.Set(rec.ID, stored)
	if rec.Kind == ObstacleStreamed {
		r.streamed++
	}
	return stored
}

func (r *ObstacleRegistry) Get(id ObstacleID) (*ObstacleRecord, bool) {
	return r.records.Get(id)
}

// Remove drops a non-permanent record. Permanent records are refused.
func (r *ObstacleRegistry) Remove(id ObstacleID) (*ObstacleRecord, bool) {
	rec, ok := r.records.Get(id)
	if !ok || rec.Kind == ObstaclePermanent {
		return nil, false
	}
	r.records.Delete(id)
	if rec.Kind == ObstacleStreamed {
		r.streamed--
	}
	return rec, true
}

func (r *ObstacleRegistry) Len() int { return r.records.Len() }

// Streamed is the number of procedurally spawned records, the budgeted count.
func (r *ObstacleRegistry) Streamed() int { return r.streamed }

// Each visits records in creation order until fn returns false.
func (r *ObstacleRegistry) Each(fn func(rec *ObstacleRecord) bool) {
	for el := r.records.Front(); el != nil; el = el.Next() {
		if !fn(el.Value) {
			return
		}
	}
}

// Clear empties the registry and restarts ID allocation.
func (r *ObstacleRegistry) Clear() {
	r.records = orderedmap.NewOrderedMap[ObstacleID, *ObstacleRecord]()
	r.next = 1
	r.streamed = 0
}
