package game

import "math"

// ScoreState is the running score and the checkpoints already paid.
type ScoreState struct {
	Points   int
	Rewarded map[int]struct{}
}

func NewScoreState() ScoreState {
	return ScoreState{Rewarded: make(map[int]struct{})}
}

// ScoringTracker pays a fixed amount once per checkpoint on the lattice.
type ScoringTracker struct {
	cfg ScoringConfig
	bus *EventBus
}

func NewScoringTracker(cfg Config, bus *EventBus) *ScoringTracker {
	return &ScoringTracker{cfg: cfg.Scoring, bus: bus}
}

// IsCheckpoint reports whether a floored coordinate lies on the lattice.
func (t *ScoringTracker) IsCheckpoint(x int) bool {
	return floorMod(x, t.cfg.Spacing) == floorMod(t.cfg.Offset, t.cfg.Spacing)
}

// Update rewards the body's current floored X. It returns true on payout.
func (t *ScoringTracker) Update(w *World) bool {
	x := int(math.Floor(w.Body.X()))
	if _, seen := w.Score.Rewarded[x]; seen {
		return false
	}
	if !t.IsCheckpoint(x) {
		return false
	}
	w.Score.Points += t.cfg.Points
	w.Score.Rewarded[x] = struct{}{}
	t.bus.Emit(Event{Type: EventCheckpoint, Pos: w.Body.Position, Data: w.Score.Points})
	return true
}
