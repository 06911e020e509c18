// Package shapes builds procedural meshes for tools, tests, and demos.
package shapes

import (
	"github.com/chewxy/math32"

	"github.com/meshforge/meshcore/pkg/math"
	"github.com/meshforge/meshcore/pkg/mesh"
)

// Box returns an indexed box mesh centered on the origin, with per-face
// normals and texture coordinates. Faces wind counter-clockwise seen
// from outside.
func Box(size math.Vec3) *mesh.Mesh {
	h := size.Scale(0.5)
	m := mesh.New()
	m.SetContentTypes(mesh.ContentLocation | mesh.ContentNormal | mesh.ContentTexCoord)
	m.SetAllocatedCapacity(24)

	type face struct {
		normal  math.Vec3
		corners [4]math.Vec3
	}
	faces := []face{
		{math.Vec3{X: 0, Y: 0, Z: 1}, [4]math.Vec3{{X: -h.X, Y: -h.Y, Z: h.Z}, {X: h.X, Y: -h.Y, Z: h.Z}, {X: h.X, Y: h.Y, Z: h.Z}, {X: -h.X, Y: h.Y, Z: h.Z}}},
		{math.Vec3{X: 0, Y: 0, Z: -1}, [4]math.Vec3{{X: h.X, Y: -h.Y, Z: -h.Z}, {X: -h.X, Y: -h.Y, Z: -h.Z}, {X: -h.X, Y: h.Y, Z: -h.Z}, {X: h.X, Y: h.Y, Z: -h.Z}}},
		{math.Vec3{X: 1, Y: 0, Z: 0}, [4]math.Vec3{{X: h.X, Y: -h.Y, Z: h.Z}, {X: h.X, Y: -h.Y, Z: -h.Z}, {X: h.X, Y: h.Y, Z: -h.Z}, {X: h.X, Y: h.Y, Z: h.Z}}},
		{math.Vec3{X: -1, Y: 0, Z: 0}, [4]math.Vec3{{X: -h.X, Y: -h.Y, Z: -h.Z}, {X: -h.X, Y: -h.Y, Z: h.Z}, {X: -h.X, Y: h.Y, Z: h.Z}, {X: -h.X, Y: h.Y, Z: -h.Z}}},
		{math.Vec3{X: 0, Y: 1, Z: 0}, [4]math.Vec3{{X: -h.X, Y: h.Y, Z: h.Z}, {X: h.X, Y: h.Y, Z: h.Z}, {X: h.X, Y: h.Y, Z: -h.Z}, {X: -h.X, Y: h.Y, Z: -h.Z}}},
		{math.Vec3{X: 0, Y: -1, Z: 0}, [4]math.Vec3{{X: -h.X, Y: -h.Y, Z: -h.Z}, {X: h.X, Y: -h.Y, Z: -h.Z}, {X: h.X, Y: -h.Y, Z: h.Z}, {X: -h.X, Y: -h.Y, Z: h.Z}}},
	}
	uv := [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

	idx := m.AllocateIndexes(36, 23)
	v, i := 0, 0
	for _, f := range faces {
		for c := 0; c < 4; c++ {
			m.SetLocationAt(v+c, f.corners[c])
			m.SetNormalAt(v+c, f.normal)
			m.SetTexCoordAt(0, v+c, uv[c])
		}
		for _, o := range []int{0, 1, 2, 0, 2, 3} {
			idx.Set(i, v+o)
			i++
		}
		v += 4
	}
	return m
}

// Plane returns a flat grid in the XZ plane facing +Y, with segs x segs
// quads over the given width and depth.
func Plane(width, depth float32, segs int) *mesh.Mesh {
	if segs < 1 {
		segs = 1
	}
	side := segs + 1
	m := mesh.New()
	m.SetContentTypes(mesh.ContentLocation | mesh.ContentNormal | mesh.ContentTexCoord)
	m.SetAllocatedCapacity(side * side)

	for z := 0; z < side; z++ {
		for x := 0; x < side; x++ {
			i := z*side + x
			fx := float32(x) / float32(segs)
			fz := float32(z) / float32(segs)
			m.SetLocationAt(i, math.Vec3{X: (fx - 0.5) * width, Z: (fz - 0.5) * depth})
			m.SetNormalAt(i, math.Vec3{Y: 1})
			m.SetTexCoordAt(0, i, math.Vec2{X: fx, Y: fz})
		}
	}

	idx := m.AllocateIndexes(segs*segs*6, side*side-1)
	i := 0
	for z := 0; z < segs; z++ {
		for x := 0; x < segs; x++ {
			a := z*side + x
			b := a + 1
			c := a + side
			d := c + 1
			for _, v := range []int{a, c, b, b, c, d} {
				idx.Set(i, v)
				i++
			}
		}
	}
	return m
}

// Sphere returns an indexed UV sphere with the given ring and sector
// resolution.
func Sphere(radius float32, rings, sectors int) *mesh.Mesh {
	if rings < 2 {
		rings = 2
	}
	if sectors < 3 {
		sectors = 3
	}
	m := mesh.New()
	m.SetContentTypes(mesh.ContentLocation | mesh.ContentNormal | mesh.ContentTexCoord)
	vcount := (rings + 1) * (sectors + 1)
	m.SetAllocatedCapacity(vcount)

	for r := 0; r <= rings; r++ {
		phi := math32.Pi * float32(r) / float32(rings)
		for s := 0; s <= sectors; s++ {
			theta := 2 * math32.Pi * float32(s) / float32(sectors)
			n := math.Vec3{
				X: math32.Sin(phi) * math32.Cos(theta),
				Y: math32.Cos(phi),
				Z: math32.Sin(phi) * math32.Sin(theta),
			}
			i := r*(sectors+1) + s
			m.SetLocationAt(i, n.Scale(radius))
			m.SetNormalAt(i, n)
			m.SetTexCoordAt(0, i, math.Vec2{X: float32(s) / float32(sectors), Y: float32(r) / float32(rings)})
		}
	}

	idx := m.AllocateIndexes(rings*sectors*6, vcount-1)
	i := 0
	for r := 0; r < rings; r++ {
		for s := 0; s < sectors; s++ {
			a := r*(sectors+1) + s
			b := a + sectors + 1
			for _, v := range []int{a, a + 1, b, b, a + 1, b + 1} {
				idx.Set(i, v)
				i++
			}
		}
	}
	return m
}
