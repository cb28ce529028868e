package game

import (
	"strings"
	"testing"
)

func TestDefaultLevel(t *testing.T) {
	lvl, err := DefaultLevel()
	if err != nil {
		t.Fatalf("DefaultLevel: %v", err)
	}
	if lvl.Name != "corridor" {
		t.Fatalf("unexpected name %q", lvl.Name)
	}
	if lvl.Permanent() != 3 {
		t.Fatalf("expected floor and two walls, got %d permanent", lvl.Permanent())
	}
	if len(lvl.Obstacles) != 139 {
		t.Fatalf("expected 139 obstacles, got %d", len(lvl.Obstacles))
	}
	for i, o := range lvl.Obstacles[:3] {
		if o.Kind != ObstaclePermanent {
			t.Fatalf("obstacle %d: expected the base first, got %v", i, o.Kind)
		}
	}
}

func TestParseLevelErrors(t *testing.T) {
	cases := map[string]string{
		`{`: "decode level",
		`{"obstacles":[{"kind":"moving","color":"red","position":[0,0,0],"halfExtents":[1,1,1]}]}`: "unknown kind",
		`{"obstacles":[{"kind":"level","color":"pink","position":[0,0,0],"halfExtents":[1,1,1]}]}`: "unknown color",
		`{"obstacles":[{"kind":"level","color":"red","position":[0,0,0],"halfExtents":[1,0,1]}]}`:  "half extents",
	}
	for in, want := range cases {
		_, err := ParseLevel([]byte(in))
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("%s: expected error containing %q, got %v", in, want, err)
		}
	}
}

func TestLevelCloneIsDeep(t *testing.T) {
	a := testLevel()
	b := a.Clone()
	b.Obstacles[0].Position[0] = 42
	if a.Obstacles[0].Position[0] == 42 {
		t.Fatal("clone shares obstacle storage")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cases := map[string]func(c *Config){
		"tick rate":  func(c *Config) { c.TickRate = 0 },
		"substeps":   func(c *Config) { c.Substeps = -1 },
		"rotation":   func(c *Config) { c.Rotation.Max = 0 },
		"probe":      func(c *Config) { c.Player.ProbeLength = 10 },
		"band":       func(c *Config) { c.Streaming.FarX = 0 },
		"spacing":    func(c *Config) { c.Scoring.Spacing = 0 },
		"multiplier": func(c *Config) { c.Episode.DifficultyMultiplier = 0.5 },
	}
	for name, mutate := range cases {
		c := DefaultConfig()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
