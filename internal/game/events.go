package game

import "github.com/go-gl/mathgl/mgl64"

type EventType int

const (
	EventJump EventType = iota
	EventCheckpoint
	EventObstacleSpawned
	EventObstacleEvicted
	EventEpisodeReset
	EventIntroDismissed
)

func (t EventType) String() string {
	switch t {
	case EventJump:
		return "jump"
	case EventCheckpoint:
		return "checkpoint"
	case EventObstacleSpawned:
		return "spawn"
	case EventObstacleEvicted:
		return "evict"
	case EventEpisodeReset:
		return "reset"
	case EventIntroDismissed:
		return "intro"
	}
	return "unknown"
}

type Event struct {
	Type EventType
	Pos  mgl64.Vec3
	Data int // Generic payload (points, obstacle id, final score).
}

type EventHandler func(Event)

// EventBus fans events out synchronously on the frame loop's goroutine.
// Handlers that do real work must hand it off.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for t := EventJump; t <= EventIntroDismissed; t++ {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
