package mesh

import "github.com/meshforge/meshcore/pkg/math"

// Bounds is the axis-aligned bounding box of a mesh's vertex locations.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the box center.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Bounds computes the axis-aligned bounding box over the logically active
// vertices' locations. Scene nodes cache the result and must recompute it
// after any direct vertex location edit.
func (m *Mesh) Bounds() (Bounds, error) {
	if m.Attribute(SemLocation) == nil {
		return Bounds{}, ErrNoAttribute
	}
	if m.count == 0 {
		return Bounds{}, nil
	}
	first, err := m.LocationAt(0)
	if err != nil {
		return Bounds{}, err
	}
	b := Bounds{Min: first, Max: first}
	for i := 1; i < m.count; i++ {
		v, err := m.LocationAt(i)
		if err != nil {
			return Bounds{}, err
		}
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b, nil
}

// BoundingSphere computes the centroid of the active vertex locations and
// the maximum distance from it, for scene-node bounding sphere queries.
func (m *Mesh) BoundingSphere() (center math.Vec3, radius float32, err error) {
	if m.Attribute(SemLocation) == nil {
		return math.Vec3{}, 0, ErrNoAttribute
	}
	if m.count == 0 {
		return math.Vec3{}, 0, nil
	}
	var sum math.Vec3
	for i := 0; i < m.count; i++ {
		v, err := m.LocationAt(i)
		if err != nil {
			return math.Vec3{}, 0, err
		}
		sum = sum.Add(v)
	}
	center = sum.Scale(1 / float32(m.count))
	for i := 0; i < m.count; i++ {
		v, _ := m.LocationAt(i)
		if d := center.Distance(v); d > radius {
			radius = d
		}
	}
	return center, radius, nil
}
