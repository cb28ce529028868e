package render

import (
	"math"
	"testing"

	"corridor/internal/game"
)

func TestOverlayStartsWithIntro(t *testing.T) {
	o := NewOverlay()
	if a := o.Alpha(game.IntroOverlay); a != 1 {
		t.Errorf("intro alpha = %v, want 1", a)
	}
	o.Advance(10)
	if a := o.Alpha(game.IntroOverlay); a != 1 {
		t.Errorf("intro faded without FadeOut: %v", a)
	}
}

func TestOverlayFadesOut(t *testing.T) {
	o := NewOverlay()
	o.FadeOut(game.IntroOverlay)

	o.Advance(FadeDuration / 4)
	if a := o.Alpha(game.IntroOverlay); math.Abs(a-0.75) > 1e-9 {
		t.Errorf("alpha after a quarter = %v, want 0.75", a)
	}
	for i := 0; i < 10; i++ {
		o.Advance(FadeDuration / 4)
	}
	if a := o.Alpha(game.IntroOverlay); a != 0 {
		t.Errorf("alpha after fade = %v, want 0", a)
	}

	// Fading a card that is gone is a no-op.
	o.FadeOut(game.IntroOverlay)
	o.FadeOut("missing")
	if a := o.Alpha("missing"); a != 0 {
		t.Errorf("missing card alpha = %v", a)
	}
}
