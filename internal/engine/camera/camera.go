// Package camera provides the orbit camera for the mesh viewer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/meshforge/meshcore/pkg/math"
	"github.com/meshforge/meshcore/pkg/mesh"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32
	RotationX float32 // pitch, radians
	RotationY float32 // yaw, radians

	// Projection
	FOV  float32 // vertical field of view, degrees
	Near float32
	Far  float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// New creates an orbit camera with defaults suited to unit-scale meshes.
func New() *OrbitCamera {
	return &OrbitCamera{
		Distance:        5.0,
		RotationX:       0.4,
		RotationY:       0.6,
		FOV:             60,
		Near:            0.1,
		Far:             100,
		MinDistance:     0.5,
		MaxDistance:     50,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * math32.Cos(c.RotationX) * math32.Sin(c.RotationY)
	y := c.Distance * math32.Sin(c.RotationX)
	z := c.Distance * math32.Cos(c.RotationX) * math32.Cos(c.RotationY)
	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for the given
// viewport aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FOV*math32.Pi/180, aspect, c.Near, c.Far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// FitToBounds centers the camera on the box and backs off far enough to
// see all of it.
func (c *OrbitCamera) FitToBounds(b mesh.Bounds) {
	c.Center = b.Center()

	size := b.Size()
	radius := size.Length() / 2
	if radius <= 0 {
		radius = 1
	}

	halfFOV := c.FOV * math32.Pi / 360
	c.Distance = radius / math32.Tan(halfFOV) * 1.2
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
}

// ScreenRay converts a pixel coordinate into a world-space picking ray.
func (c *OrbitCamera) ScreenRay(screenX, screenY, viewportW, viewportH float32) mesh.Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	viewProj := c.ProjectionMatrix(viewportW / viewportH).Mul(c.ViewMatrix())
	inv := viewProj.Inverse()

	near := inv.MulVec4(math.Vec4{X: ndcX, Y: ndcY, Z: -1, W: 1}).Vec3()
	far := inv.MulVec4(math.Vec4{X: ndcX, Y: ndcY, Z: 1, W: 1}).Vec3()

	return mesh.Ray{
		Origin:    near,
		Direction: far.Sub(near).Normalize(),
	}
}
