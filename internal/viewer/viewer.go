// Package viewer implements the interactive mesh viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/meshforge/meshcore/internal/config"
	"github.com/meshforge/meshcore/internal/engine/camera"
	"github.com/meshforge/meshcore/internal/engine/render"
	"github.com/meshforge/meshcore/internal/engine/window"
	"github.com/meshforge/meshcore/internal/logger"
	"github.com/meshforge/meshcore/pkg/math"
	"github.com/meshforge/meshcore/pkg/mesh"
	"github.com/meshforge/meshcore/pkg/shapes"
)

// NoFace marks the absence of a picked face.
const NoFace = -1

// Viewer owns the window, renderer, camera and the displayed mesh.
type Viewer struct {
	cfg      *config.Config
	window   *window.Window
	renderer *render.Renderer
	camera   *camera.OrbitCamera

	mesh   *mesh.Mesh
	staged *render.StagedMesh

	running    bool
	pickedFace int
	dragTotal  float32
}

// New builds the viewer: window and GL context first, then the renderer,
// then the configured shape staged into GPU buffers.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:        cfg,
		pickedFace: NoFace,
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "meshview",
		Width:      cfg.Display.Width,
		Height:     cfg.Display.Height,
		Fullscreen: cfg.Display.Fullscreen,
		VSync:      cfg.Display.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	v.renderer, err = render.New()
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	v.renderer.SetWireframe(cfg.Scene.Wireframe)

	v.mesh, err = buildShape(cfg.Scene.Shape)
	if err != nil {
		v.Close()
		return nil, err
	}
	v.mesh.Faces().ShouldCache = cfg.Scene.CacheFaces

	v.staged, err = v.renderer.Stage(v.mesh)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("staging mesh: %w", err)
	}

	v.camera = camera.New()
	bounds, err := v.mesh.Bounds()
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("mesh bounds: %w", err)
	}
	v.camera.FitToBounds(bounds)
	v.camera.FOV = cfg.Camera.FOV
	v.camera.Near = cfg.Camera.Near
	v.camera.Far = cfg.Camera.Far
	if cfg.Camera.Distance > 0 {
		v.camera.Distance = cfg.Camera.Distance
	}

	logger.Info("viewer ready",
		zap.String("shape", cfg.Scene.Shape),
		zap.Int("vertices", v.mesh.VertexCount()),
		zap.Int("faces", v.mesh.Faces().FaceCount()),
	)
	return v, nil
}

// buildShape constructs the mesh named by the config.
func buildShape(name string) (*mesh.Mesh, error) {
	switch name {
	case "box":
		return shapes.Box(math.Vec3{X: 2, Y: 2, Z: 2}), nil
	case "plane":
		return shapes.Plane(4, 4, 8), nil
	case "sphere":
		return shapes.Sphere(1.5, 24, 32), nil
	default:
		return nil, fmt.Errorf("unknown shape %q", name)
	}
}

// Run drives the event and render loop until quit.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	for v.running {
		v.handleEvents()
		v.renderFrame()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("frames", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (v *Viewer) handleEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			v.running = false

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				break
			}
			switch e.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_W:
				v.cfg.Scene.Wireframe = !v.cfg.Scene.Wireframe
				v.renderer.SetWireframe(v.cfg.Scene.Wireframe)
			}

		case *sdl.MouseMotionEvent:
			if e.State&sdl.ButtonLMask() != 0 {
				v.camera.HandleDrag(float32(e.XRel), float32(e.YRel))
				v.dragTotal += abs32(float32(e.XRel)) + abs32(float32(e.YRel))
			}

		case *sdl.MouseWheelEvent:
			v.camera.HandleZoom(float32(e.Y))

		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				break
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				v.dragTotal = 0
			} else if e.Type == sdl.MOUSEBUTTONUP && v.dragTotal < 4 {
				v.pick(float32(e.X), float32(e.Y))
			}
		}
	}
}

// pick casts a ray through the clicked pixel and selects the nearest
// front-facing intersection.
func (v *Viewer) pick(x, y float32) {
	w, h := v.window.Size()
	ray := v.camera.ScreenRay(x, y, float32(w), float32(h))

	hits, err := v.mesh.FindFirstIntersections(16, ray, false, false)
	if err != nil {
		logger.Error("pick failed", zap.Error(err))
		return
	}
	if len(hits) == 0 {
		v.pickedFace = NoFace
		logger.Debug("pick missed")
		return
	}

	best := hits[0]
	for _, hit := range hits[1:] {
		if hit.Distance < best.Distance {
			best = hit
		}
	}
	v.pickedFace = best.FaceIndex

	normal, _ := v.mesh.Faces().NormalAt(best.FaceIndex)
	logger.Info("picked face",
		zap.Int("face", best.FaceIndex),
		zap.Float32("distance", best.Distance),
		zap.Any("location", best.Location),
		zap.Any("normal", normal),
	)
}

func (v *Viewer) renderFrame() {
	w, h := v.window.Size()
	v.renderer.SetViewport(w, h)
	view := v.camera.ViewMatrix()
	proj := v.camera.ProjectionMatrix(float32(w) / float32(h))
	model := math.Identity()
	mvp := proj.Mul(view).Mul(model)

	v.renderer.Clear()
	v.renderer.Draw(v.staged, mvp, model, math.Vec4{X: 0.7, Y: 0.72, Z: 0.75, W: 1})

	// Repaint the picked face on top of the base pass.
	if v.pickedFace != NoFace && v.mesh.Mode() == mesh.Triangles {
		v.renderer.DrawRange(v.staged, mvp, model,
			math.Vec4{X: 0.95, Y: 0.45, Z: 0.1, W: 1},
			v.pickedFace*3, 3)
	}
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	if v.staged != nil {
		v.renderer.Unstage(v.staged)
		v.staged = nil
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
