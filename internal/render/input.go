package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"corridor/internal/game"
)

// DefaultBindings maps each action to the keys that trigger it.
var DefaultBindings = map[game.Action][]glfw.Key{
	game.ActionForward:  {glfw.KeyW, glfw.KeyUp},
	game.ActionBackward: {glfw.KeyS, glfw.KeyDown},
	game.ActionLeft:     {glfw.KeyA, glfw.KeyLeft},
	game.ActionRight:    {glfw.KeyD, glfw.KeyRight},
	game.ActionJump:     {glfw.KeySpace},
	game.ActionReset:    {glfw.KeyR},
}

// Keyboard polls the window's key state. It implements game.Input.
type Keyboard struct {
	window   *glfw.Window
	bindings map[game.Action][]glfw.Key
	edges    keyEdges
}

// keyEdges remembers the last seen state of each key.
type keyEdges map[glfw.Key]bool

// rising records down for key and reports an up-to-down transition.
func (e keyEdges) rising(key glfw.Key, down bool) bool {
	was := e[key]
	e[key] = down
	return down && !was
}

func NewKeyboard(window *glfw.Window) *Keyboard {
	return &Keyboard{
		window:   window,
		bindings: DefaultBindings,
		edges:    make(keyEdges),
	}
}

func (k *Keyboard) Held(a game.Action) bool {
	for _, key := range k.bindings[a] {
		if k.window.GetKey(key) == glfw.Press {
			return true
		}
	}
	return false
}

// JustPressed reports a key going down since the previous call for that key.
func (k *Keyboard) JustPressed(key glfw.Key) bool {
	return k.edges.rising(key, k.window.GetKey(key) == glfw.Press)
}
