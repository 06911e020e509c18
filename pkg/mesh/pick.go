package mesh

import (
	"github.com/chewxy/math32"

	"github.com/meshforge/meshcore/pkg/math"
)

// Ray is a ray in the mesh's local coordinate space.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // need not be normalized; Distance scales with it
}

// PointAt returns the point at parameter t along the ray.
func (r Ray) PointAt(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Intersection is one ray-face hit.
type Intersection struct {
	FaceIndex int
	Distance  float32 // signed parameter along the ray from its origin
	Location  math.Vec3
	U, V      float32 // barycentric coordinates within the face
	Backface  bool    // the ray struck the face from behind
}

const rayEpsilon = 1e-6

// FindFirst scans faces in index order and collects up to maxHits
// ray-face intersections. Back-facing hits are skipped unless
// allowBackFaces; hits behind the ray origin are skipped unless
// allowBehind.
//
// The result is not sorted by distance: callers wanting the closest hit
// scan the returned slice, and callers that only need existence pass
// maxHits == 1.
func (f *FaceArray) FindFirst(maxHits int, ray Ray, allowBackFaces, allowBehind bool) ([]Intersection, error) {
	if maxHits <= 0 {
		return nil, nil
	}
	var hits []Intersection
	n := f.FaceCount()
	for i := 0; i < n; i++ {
		v0, v1, v2, err := f.corners(i)
		if err != nil {
			return hits, err
		}

		// Möller-Trumbore. det is the triple product of the ray
		// direction with the face's edge vectors; its sign encodes
		// facing for counter-clockwise winding.
		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		pvec := ray.Direction.Cross(edge2)
		det := edge1.Dot(pvec)
		if math32.Abs(det) < rayEpsilon {
			continue // parallel to the face plane
		}
		backface := det < 0
		if backface && !allowBackFaces {
			continue
		}

		invDet := 1.0 / det
		tvec := ray.Origin.Sub(v0)
		u := tvec.Dot(pvec) * invDet
		if u < 0 || u > 1 {
			continue
		}
		qvec := tvec.Cross(edge1)
		v := ray.Direction.Dot(qvec) * invDet
		if v < 0 || u+v > 1 {
			continue
		}
		dist := edge2.Dot(qvec) * invDet
		if dist < 0 && !allowBehind {
			continue
		}

		hits = append(hits, Intersection{
			FaceIndex: i,
			Distance:  dist,
			Location:  ray.PointAt(dist),
			U:         u,
			V:         v,
			Backface:  backface,
		})
		if len(hits) == maxHits {
			break
		}
	}
	return hits, nil
}

// FindFirstIntersections runs FindFirst against this mesh's face array.
func (m *Mesh) FindFirstIntersections(maxHits int, ray Ray, allowBackFaces, allowBehind bool) ([]Intersection, error) {
	return m.Faces().FindFirst(maxHits, ray, allowBackFaces, allowBehind)
}
