// Package render draws the corridor with OpenGL 4.1 core. Every call must
// come from the goroutine that owns the GL context.
package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"corridor/internal/game"
	"corridor/internal/mesh"
)

// Lighting and backdrop.
var (
	skyColor       = mgl32.Vec3{0.62, 0.74, 0.86}
	groundColor    = mgl32.Vec3{0.18, 0.16, 0.14}
	gridColor      = mgl32.Vec3{0.35, 0.35, 0.38}
	clearColor     = mgl32.Vec4{0.70, 0.80, 0.90, 1}
	veilColor      = mgl32.Vec4{0.02, 0.02, 0.04, 0.85}
	hemiIntensity  = float32(0.6)
	pointIntensity = float32(0.5)
	lightLift      = mgl64.Vec3{0, 0, 400}
)

// Grid layout: lines every GridStep across the corridor floor.
const (
	GridStep  = 1000
	GridHalfX = 200000
	GridHalfY = 1000
	gridLift  = 0.5

	sphereStacks = 16
	sphereSlices = 24
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type instance struct {
	body  game.BodyID
	shape game.Shape
	color game.Color
}

type vertexArray struct {
	vao, vbo uint32
	count    int32
}

// Renderer implements game.Scene.
type Renderer struct {
	cam      game.CameraConfig
	camera   game.Camera
	fbW, fbH int
	frameDT  float64

	litProg     uint32
	lineProg    uint32
	overlayProg uint32

	cube   vertexArray
	sphere vertexArray
	grid   vertexArray
	quad   vertexArray

	uLitProj, uLitView, uLitModel, uLitColor int32
	uLightPos                                int32
	uLineProj, uLineView, uLineModel         int32
	uLineColor                               int32
	uOverlayRect, uOverlayColor              int32

	meshes  map[game.MeshID]instance
	next    game.MeshID
	overlay *Overlay
}

// NewRenderer compiles the programs and uploads the static geometry.
// The GL context must be current.
func NewRenderer(cfg game.Config, overlay *Overlay) (*Renderer, error) {
	litProg, err := linkProgram(litVertSrc, litFragSrc)
	if err != nil {
		return nil, fmt.Errorf("lit program: %w", err)
	}
	lineProg, err := linkProgram(lineVertSrc, lineFragSrc)
	if err != nil {
		gl.DeleteProgram(litProg)
		return nil, fmt.Errorf("line program: %w", err)
	}
	overlayProg, err := linkProgram(overlayVertSrc, overlayFragSrc)
	if err != nil {
		gl.DeleteProgram(litProg)
		gl.DeleteProgram(lineProg)
		return nil, fmt.Errorf("overlay program: %w", err)
	}

	r := &Renderer{
		cam:         cfg.Camera,
		frameDT:     1 / float64(cfg.TickRate),
		litProg:     litProg,
		lineProg:    lineProg,
		overlayProg: overlayProg,
		meshes:      make(map[game.MeshID]instance),
		overlay:     overlay,
	}

	r.cube = upload(mesh.Cube(), mesh.Stride, true)
	r.sphere = upload(mesh.Sphere(sphereStacks, sphereSlices), mesh.Stride, true)
	r.grid = upload(mesh.Grid(GridHalfX, GridHalfY, GridStep), 3, false)
	r.quad = upload([]float32{0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1}, 2, false)

	gl.UseProgram(litProg)
	r.uLitProj = uniform(litProg, "uProj")
	r.uLitView = uniform(litProg, "uView")
	r.uLitModel = uniform(litProg, "uModel")
	r.uLitColor = uniform(litProg, "uColor")
	r.uLightPos = uniform(litProg, "uLightPos")
	gl.Uniform3fv(uniform(litProg, "uSkyColor"), 1, &skyColor[0])
	gl.Uniform3fv(uniform(litProg, "uGroundColor"), 1, &groundColor[0])
	gl.Uniform1f(uniform(litProg, "uHemiIntensity"), hemiIntensity)
	gl.Uniform1f(uniform(litProg, "uLightIntensity"), pointIntensity)

	gl.UseProgram(lineProg)
	r.uLineProj = uniform(lineProg, "uProj")
	r.uLineView = uniform(lineProg, "uView")
	r.uLineModel = uniform(lineProg, "uModel")
	r.uLineColor = uniform(lineProg, "uColor")

	gl.UseProgram(overlayProg)
	r.uOverlayRect = uniform(overlayProg, "uRect")
	r.uOverlayColor = uniform(overlayProg, "uColor")

	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])
	return r, nil
}

// upload creates a VAO for interleaved vertices of the given stride. Lit
// data carries a normal after the position.
func upload(data []float32, stride int, lit bool) vertexArray {
	var va vertexArray
	gl.GenVertexArrays(1, &va.vao)
	gl.GenBuffers(1, &va.vbo)
	gl.BindVertexArray(va.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, va.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	bytes := int32(stride * 4)
	size := int32(3)
	if stride == 2 {
		size = 2
	}
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, size, gl.FLOAT, false, bytes, glOffset(0))
	if lit {
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, bytes, glOffset(3*4))
	}
	va.count = int32(len(data) / stride)
	return va
}

func (r *Renderer) Destroy() {
	for _, va := range []*vertexArray{&r.cube, &r.sphere, &r.grid, &r.quad} {
		if va.vbo != 0 {
			gl.DeleteBuffers(1, &va.vbo)
		}
		if va.vao != 0 {
			gl.DeleteVertexArrays(1, &va.vao)
		}
	}
	for _, id := range []uint32{r.litProg, r.lineProg, r.overlayProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

// SetViewport records the framebuffer size for the next Render.
func (r *Renderer) SetViewport(fbW, fbH int) {
	r.fbW, r.fbH = fbW, fbH
}

func (r *Renderer) AddMesh(body game.BodyID, shape game.Shape, color game.Color) game.MeshID {
	r.next++
	r.meshes[r.next] = instance{body: body, shape: shape, color: color}
	return r.next
}

func (r *Renderer) RemoveMesh(id game.MeshID) {
	delete(r.meshes, id)
}

func (r *Renderer) SetCamera(cam game.Camera) {
	r.camera = cam
}

// Reset drops every mesh. GL resources are shared and stay alive.
func (r *Renderer) Reset() {
	r.meshes = make(map[game.MeshID]instance)
	r.next = 0
}

// Render draws one frame from the current body poses.
func (r *Renderer) Render(poses game.PoseSource) {
	if r.fbW <= 0 || r.fbH <= 0 {
		return
	}
	gl.Viewport(0, 0, int32(r.fbW), int32(r.fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)

	proj := mesh.F32(game.Projection(r.cam, float64(r.fbW)/float64(r.fbH)))
	view := mesh.F32(r.camera.View())

	r.drawGrid(proj, view)
	r.drawMeshes(proj, view, poses)

	if r.overlay != nil {
		r.overlay.Advance(r.frameDT)
		r.drawOverlay(r.overlay.Alpha(game.IntroOverlay))
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) drawGrid(proj, view mgl32.Mat4) {
	gl.UseProgram(r.lineProg)
	model := mgl32.Translate3D(0, 0, gridLift)
	gl.UniformMatrix4fv(r.uLineProj, 1, false, &proj[0])
	gl.UniformMatrix4fv(r.uLineView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uLineModel, 1, false, &model[0])
	gl.Uniform3fv(r.uLineColor, 1, &gridColor[0])
	gl.BindVertexArray(r.grid.vao)
	gl.DrawArrays(gl.LINES, 0, r.grid.count)
}

func (r *Renderer) drawMeshes(proj, view mgl32.Mat4, poses game.PoseSource) {
	gl.UseProgram(r.litProg)
	gl.UniformMatrix4fv(r.uLitProj, 1, false, &proj[0])
	gl.UniformMatrix4fv(r.uLitView, 1, false, &view[0])
	light := r.camera.Eye.Add(lightLift)
	gl.Uniform3f(r.uLightPos, float32(light[0]), float32(light[1]), float32(light[2]))

	for _, in := range r.meshes {
		pose, ok := poses.Pose(in.body)
		if !ok {
			continue
		}
		va := &r.cube
		if in.shape.Kind == game.ShapeSphere {
			va = &r.sphere
		}
		model := mesh.Model(pose.Position, pose.Orientation, in.shape.Extents())
		gl.UniformMatrix4fv(r.uLitModel, 1, false, &model[0])
		gl.Uniform3f(r.uLitColor, float32(in.color.R), float32(in.color.G), float32(in.color.B))
		gl.BindVertexArray(va.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, va.count)
	}
}

func (r *Renderer) drawOverlay(alpha float64) {
	if alpha <= 0 {
		return
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.UseProgram(r.overlayProg)
	gl.BindVertexArray(r.quad.vao)

	veil := veilColor
	veil[3] *= float32(alpha)
	gl.Uniform4f(r.uOverlayRect, -1, -1, 1, 1)
	gl.Uniform4fv(r.uOverlayColor, 1, &veil[0])
	gl.DrawArrays(gl.TRIANGLES, 0, r.quad.count)

	// Title card band across the middle.
	card := mgl32.Vec4{0.30, 0.85, 0.35, float32(alpha)}
	gl.Uniform4f(r.uOverlayRect, -0.6, -0.08, 0.6, 0.08)
	gl.Uniform4fv(r.uOverlayColor, 1, &card[0])
	gl.DrawArrays(gl.TRIANGLES, 0, r.quad.count)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}
