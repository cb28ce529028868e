package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func streamingSetup(t *testing.T, cfg Config) (*World, *fakePhysics, *NopScene, *StreamingManager, *EventBus) {
	t.Helper()
	w, ph, scene, _ := builtWorld(cfg)
	bus := NewEventBus()
	return w, ph, scene, NewStreamingManager(cfg, NewRand(cfg.Seed), quietLogger(), bus), bus
}

func moveBody(w *World, ph *fakePhysics, x float64) {
	ph.place(w.Body.ID, mgl64.Vec3{x, 0, 14})
	w.Body.Position = mgl64.Vec3{x, 0, 14}
}

func TestStreamingBand(t *testing.T) {
	m := NewStreamingManager(DefaultConfig(), NewRand(1), nil, nil)
	for x, want := range map[float64]bool{
		-1000: false, -999: false, -1001: true, -49999: true, -50000: false, 0: false, 199950: false,
	} {
		if got := m.InBand(x); got != want {
			t.Errorf("x=%v: expected %v, got %v", x, want, got)
		}
	}
}

func TestNoSpawnOutsideBand(t *testing.T) {
	w, ph, scene, m, _ := streamingSetup(t, DefaultConfig())
	before := w.Obstacles.Len()
	for i := 0; i < 100; i++ {
		m.Update(w, ph, scene)
	}
	if w.Obstacles.Streamed() != 0 {
		t.Fatalf("spawned %d obstacles at the start line", w.Obstacles.Streamed())
	}
	if w.Obstacles.Len() != before {
		t.Fatalf("registry changed from %d to %d", before, w.Obstacles.Len())
	}
}

func TestRandomObstaclePlacement(t *testing.T) {
	m := NewStreamingManager(DefaultConfig(), NewRand(3), nil, nil)
	boxes, spheres := 0, 0
	for i := 0; i < 500; i++ {
		pos, shape := m.RandomObstacle(-2000)
		if pos.X() < -10000 || pos.X() > -7000 {
			t.Fatalf("x %v outside [-10000,-7000]", pos.X())
		}
		if pos.Y() < -900 || pos.Y() > 900 {
			t.Fatalf("y %v outside the corridor", pos.Y())
		}
		if pos.Z() != 200 {
			t.Fatalf("expected spawn height 200, got %v", pos.Z())
		}
		e := shape.Extents().X()
		if e < 10 || e > 60 {
			t.Fatalf("size %v outside [10,60]", e)
		}
		if shape.Kind == ShapeSphere {
			spheres++
		} else {
			boxes++
		}
	}
	if boxes == 0 || spheres == 0 {
		t.Fatalf("expected both kinds, got %d boxes and %d spheres", boxes, spheres)
	}
}

func TestSpawnRespectsBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Episode.InitialBudget = 5
	w, ph, scene, m, bus := streamingSetup(t, cfg)
	spawned := 0
	bus.Subscribe(EventObstacleSpawned, func(Event) { spawned++ })

	moveBody(w, ph, -2000)
	for i := 0; i < 50; i++ {
		m.Update(w, ph, scene)
		if float64(w.Obstacles.Streamed()) > w.Difficulty.Budget {
			t.Fatalf("tick %d: %d streamed exceeds budget %v", i, w.Obstacles.Streamed(), w.Difficulty.Budget)
		}
	}
	if w.Obstacles.Streamed() != 5 || spawned != 5 {
		t.Fatalf("expected 5 streamed, got %d (%d events)", w.Obstacles.Streamed(), spawned)
	}
	if scene.Meshes() != w.Obstacles.Len()+1 {
		t.Fatalf("expected a mesh per obstacle plus the body, got %d", scene.Meshes())
	}
}

func TestBudgetGrowsWithMultiplier(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Episode.InitialBudget = 2
	cfg.Episode.DifficultyMultiplier = 1.5
	w, ph, scene, m, _ := streamingSetup(t, cfg)
	moveBody(w, ph, -2000)

	m.Update(w, ph, scene)
	if w.Difficulty.Budget != 3 {
		t.Fatalf("expected budget 3 after one spawn, got %v", w.Difficulty.Budget)
	}
	m.Update(w, ph, scene)
	if w.Difficulty.Budget != 4.5 {
		t.Fatalf("expected budget 4.5 after two spawns, got %v", w.Difficulty.Budget)
	}
}

func TestEvictionWithinOneTick(t *testing.T) {
	w, ph, scene, m, bus := streamingSetup(t, DefaultConfig())
	evicted := map[int]bool{}
	bus.Subscribe(EventObstacleEvicted, func(e Event) { evicted[e.Data] = true })

	moveBody(w, ph, -2000)
	for i := 0; i < 10; i++ {
		m.Update(w, ph, scene)
	}
	if w.Obstacles.Streamed() != 10 {
		t.Fatalf("expected 10 streamed, got %d", w.Obstacles.Streamed())
	}

	// Leap past every streamed obstacle: they all sit at least 5000 ahead.
	moveBody(w, ph, -20000)
	permanent, level := 0, 0
	stopSpawning(w)
	m.Update(w, ph, scene)

	w.Obstacles.Each(func(rec *ObstacleRecord) bool {
		switch rec.Kind {
		case ObstacleStreamed:
			t.Errorf("streamed obstacle %d at x=%v survived", rec.ID, rec.Position.X())
		case ObstaclePermanent:
			permanent++
		case ObstacleLevel:
			level++
		}
		return true
	})
	if permanent != 3 {
		t.Fatalf("expected the permanent base kept, got %d", permanent)
	}
	if level != 0 {
		t.Fatalf("expected the passed level obstacle evicted, got %d", level)
	}
	if len(evicted) != 11 {
		t.Fatalf("expected 11 evictions, got %d", len(evicted))
	}
	for id := range ph.descs {
		if id != w.Body.ID && ph.descs[id].Mass != 0 {
			t.Fatalf("dynamic body %d left in physics", id)
		}
	}
}

func TestEvictionUsesCurrentPosition(t *testing.T) {
	w, ph, scene, m, _ := streamingSetup(t, DefaultConfig())
	moveBody(w, ph, -2000)
	m.Update(w, ph, scene)

	var rec *ObstacleRecord
	w.Obstacles.Each(func(r *ObstacleRecord) bool {
		if r.Kind == ObstacleStreamed {
			rec = r
			return false
		}
		return true
	})
	if rec == nil {
		t.Fatal("no streamed obstacle")
	}
	// Knocked back behind the body although it was placed ahead.
	ph.place(rec.Body, mgl64.Vec3{-1000, 0, 20})
	stopSpawning(w)
	m.Update(w, ph, scene)
	if _, ok := w.Obstacles.Get(rec.ID); ok {
		t.Fatal("expected an obstacle pushed behind the body to be evicted")
	}
}

// stopSpawning zeroes the budget so eviction can be observed alone.
func stopSpawning(w *World) {
	w.Difficulty.Budget = 0
}
