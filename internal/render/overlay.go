package render

import "corridor/internal/game"

// FadeDuration is how long a dismissed card takes to disappear, in seconds.
const FadeDuration = 1.0

type card struct {
	alpha  float64
	fading bool
}

// Overlay tracks full-screen cards and their fade-outs. It implements
// game.Overlay.
type Overlay struct {
	cards map[string]*card
}

// NewOverlay shows the intro card.
func NewOverlay() *Overlay {
	return &Overlay{cards: map[string]*card{
		game.IntroOverlay: {alpha: 1},
	}}
}

func (o *Overlay) FadeOut(name string) {
	if c, ok := o.cards[name]; ok {
		c.fading = true
	}
}

// Advance moves every fading card dt seconds along its fade.
func (o *Overlay) Advance(dt float64) {
	for name, c := range o.cards {
		if !c.fading {
			continue
		}
		c.alpha -= dt / FadeDuration
		if c.alpha <= 0 {
			delete(o.cards, name)
		}
	}
}

// Alpha is the card's opacity; 0 once it is gone.
func (o *Overlay) Alpha(name string) float64 {
	if c, ok := o.cards[name]; ok {
		return c.alpha
	}
	return 0
}
