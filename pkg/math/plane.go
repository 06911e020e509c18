package math

// Plane is a plane in normal-distance form: Dot(Normal, P) + D == 0 for
// any point P on the plane.
type Plane struct {
	Normal Vec3
	D      float32
}

// PlaneFromPoints builds the plane through three points. The normal follows
// the winding of the points: counter-clockwise as seen from the front.
func PlaneFromPoints(v0, v1, v2 Vec3) Plane {
	n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
	return Plane{Normal: n, D: -n.Dot(v0)}
}

// DistanceTo returns the signed distance from the point to the plane.
// Positive on the side the normal points toward.
func (p Plane) DistanceTo(point Vec3) float32 {
	return p.Normal.Dot(point) + p.D
}
