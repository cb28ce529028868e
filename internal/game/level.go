package game

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

//go:embed assets/level.json
var levelJSON []byte

// LevelObstacle is one static placement in the level asset.
type LevelObstacle struct {
	Kind        ObstacleKind
	Position    mgl64.Vec3
	HalfExtents mgl64.Vec3
	Color       Color
}

// Level is the static corridor layout: the permanent base first, then the
// gates and pillar field.
type Level struct {
	Name      string
	Obstacles []LevelObstacle
}

type levelFile struct {
	Name      string `json:"name"`
	Obstacles []struct {
		Kind        string     `json:"kind"`
		Color       string     `json:"color"`
		Position    [3]float64 `json:"position"`
		HalfExtents [3]float64 `json:"halfExtents"`
	} `json:"obstacles"`
}

var levelColors = map[string]Color{
	"black": ColorBlack,
	"red":   ColorRed,
	"cyan":  ColorCyan,
	"green": ColorGreen,
	"white": ColorWhite,
}

// DefaultLevel decodes the embedded corridor layout.
func DefaultLevel() (Level, error) {
	return ParseLevel(levelJSON)
}

// ParseLevel decodes a level asset.
func ParseLevel(data []byte) (Level, error) {
	var f levelFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Level{}, fmt.Errorf("decode level: %w", err)
	}
	lvl := Level{Name: f.Name, Obstacles: make([]LevelObstacle, 0, len(f.Obstacles))}
	for i, o := range f.Obstacles {
		var kind ObstacleKind
		switch o.Kind {
		case "permanent":
			kind = ObstaclePermanent
		case "level":
			kind = ObstacleLevel
		default:
			return Level{}, fmt.Errorf("level obstacle %d: unknown kind %q", i, o.Kind)
		}
		col, ok := levelColors[o.Color]
		if !ok {
			return Level{}, fmt.Errorf("level obstacle %d: unknown color %q", i, o.Color)
		}
		he := mgl64.Vec3(o.HalfExtents)
		if he.X() <= 0 || he.Y() <= 0 || he.Z() <= 0 {
			return Level{}, fmt.Errorf("level obstacle %d: non-positive half extents %v", i, he)
		}
		lvl.Obstacles = append(lvl.Obstacles, LevelObstacle{
			Kind:        kind,
			Position:    mgl64.Vec3(o.Position),
			HalfExtents: he,
			Color:       col,
		})
	}
	return lvl, nil
}

// Clone returns a deep copy.
func (l Level) Clone() Level {
	out := Level{Name: l.Name, Obstacles: make([]LevelObstacle, len(l.Obstacles))}
	copy(out.Obstacles, l.Obstacles)
	return out
}

// Permanent counts the never-evicted base obstacles.
func (l Level) Permanent() int {
	n := 0
	for _, o := range l.Obstacles {
		if o.Kind == ObstaclePermanent {
			n++
		}
	}
	return n
}
