package game

// HeldActions is an Input with a fixed set of held actions.
type HeldActions map[Action]bool

func (h HeldActions) Held(a Action) bool { return h[a] }

// NopScene discards rendering but hands out distinct mesh IDs.
type NopScene struct {
	next   MeshID
	meshes map[MeshID]BodyID
	Camera Camera
	Frames int
}

func NewNopScene() *NopScene {
	return &NopScene{meshes: make(map[MeshID]BodyID)}
}

func (s *NopScene) AddMesh(body BodyID, _ Shape, _ Color) MeshID {
	s.next++
	s.meshes[s.next] = body
	return s.next
}

func (s *NopScene) RemoveMesh(id MeshID) { delete(s.meshes, id) }

func (s *NopScene) SetCamera(cam Camera) { s.Camera = cam }

func (s *NopScene) Render(PoseSource) { s.Frames++ }

func (s *NopScene) Reset() {
	s.meshes = make(map[MeshID]BodyID)
	s.next = 0
}

// Meshes is the number of live meshes.
func (s *NopScene) Meshes() int { return len(s.meshes) }

// NopOverlay records fades.
type NopOverlay struct {
	Faded []string
}

func (o *NopOverlay) FadeOut(name string) { o.Faded = append(o.Faded, name) }
