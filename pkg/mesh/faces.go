package mesh

import "github.com/meshforge/meshcore/pkg/math"

// NoNeighbour marks a face edge with no face across it.
const NoNeighbour = -1

// cacheState tracks one derived face array's lifecycle.
type cacheState uint8

const (
	cacheAbsent cacheState = iota // never computed
	cacheDirty                    // invalidated, storage dropped
	cacheClean                    // cached and current
)

// faceCache is one independently invalidatable derived array. Keeping the
// state and storage in one value prevents the flag and the data from
// drifting apart.
type faceCache[T any] struct {
	state cacheState
	items []T
}

func (c *faceCache[T]) markDirty() {
	c.items = nil
	if c.state == cacheClean {
		c.state = cacheDirty
	}
}

// FaceArray derives per-face geometry from a mesh: vertex index triples,
// centers, normals, planes, and edge adjacency. Each derived quantity is
// computed lazily and invalidated independently.
//
// When ShouldCache is false, triples, centers, normals, and planes are
// recomputed on every access unless an explicit Populate call has filled
// them. Neighbours are always cached once computed: adjacency is purely
// structural and survives vertex deformation.
type FaceArray struct {
	mesh *Mesh

	// ShouldCache retains triples, centers, normals, and planes after
	// first access.
	ShouldCache bool

	triples    faceCache[[3]int]
	centers    faceCache[math.Vec3]
	normals    faceCache[math.Vec3]
	planes     faceCache[math.Plane]
	neighbours faceCache[[3]int]
}

// NewFaceArray returns a face array deriving from m, with caching off.
func NewFaceArray(m *Mesh) *FaceArray {
	return &FaceArray{mesh: m}
}

// Mesh returns the mesh this face array derives from.
func (f *FaceArray) Mesh() *Mesh { return f.mesh }

// FaceCount returns the number of faces the mesh's active vertices (or
// indices) encode. Lines and points have no faces.
func (f *FaceArray) FaceCount() int {
	n := f.mesh.count
	if f.mesh.indexes != nil {
		n = f.mesh.indexes.Count()
	}
	switch f.mesh.mode {
	case Triangles:
		return n / 3
	case TriangleStrip:
		if n < 3 {
			return 0
		}
		return n - 2
	}
	return 0
}

// computeTriple resolves face i to its three vertex indices, honoring the
// index array and the primitive mode.
func (f *FaceArray) computeTriple(i int) ([3]int, error) {
	var raw [3]int
	switch f.mesh.mode {
	case Triangles:
		raw = [3]int{3 * i, 3*i + 1, 3*i + 2}
	case TriangleStrip:
		// Odd strip faces swap their leading corners to preserve the
		// winding of face 0.
		if i%2 == 1 {
			raw = [3]int{i + 1, i, i + 2}
		} else {
			raw = [3]int{i, i + 1, i + 2}
		}
	default:
		return raw, ErrFaceRange
	}
	if f.mesh.indexes == nil {
		return raw, nil
	}
	var out [3]int
	for c, p := range raw {
		v, err := f.mesh.indexes.At(p)
		if err != nil {
			return out, err
		}
		out[c] = v
	}
	return out, nil
}

func (f *FaceArray) computeCenter(i int) (math.Vec3, error) {
	v0, v1, v2, err := f.corners(i)
	if err != nil {
		return math.Vec3{}, err
	}
	return v0.Add(v1).Add(v2).Scale(1.0 / 3.0), nil
}

func (f *FaceArray) computeNormal(i int) (math.Vec3, error) {
	v0, v1, v2, err := f.corners(i)
	if err != nil {
		return math.Vec3{}, err
	}
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize(), nil
}

func (f *FaceArray) computePlane(i int) (math.Plane, error) {
	v0, v1, v2, err := f.corners(i)
	if err != nil {
		return math.Plane{}, err
	}
	return math.PlaneFromPoints(v0, v1, v2), nil
}

// corners returns the three vertex locations of face i.
func (f *FaceArray) corners(i int) (v0, v1, v2 math.Vec3, err error) {
	t, err := f.FaceIndicesAt(i)
	if err != nil {
		return
	}
	if v0, err = f.mesh.LocationAt(t[0]); err != nil {
		return
	}
	if v1, err = f.mesh.LocationAt(t[1]); err != nil {
		return
	}
	v2, err = f.mesh.LocationAt(t[2])
	return
}

func (f *FaceArray) checkFace(i int) error {
	if i < 0 || i >= f.FaceCount() {
		return ErrFaceRange
	}
	return nil
}

// FaceIndicesAt returns the vertex index triple of face i.
func (f *FaceArray) FaceIndicesAt(i int) ([3]int, error) {
	if err := f.checkFace(i); err != nil {
		return [3]int{}, err
	}
	if f.triples.state == cacheClean {
		return f.triples.items[i], nil
	}
	if f.ShouldCache {
		if err := f.PopulateIndices(); err != nil {
			return [3]int{}, err
		}
		return f.triples.items[i], nil
	}
	return f.computeTriple(i)
}

// CenterAt returns the arithmetic mean of face i's corner locations.
func (f *FaceArray) CenterAt(i int) (math.Vec3, error) {
	if err := f.checkFace(i); err != nil {
		return math.Vec3{}, err
	}
	if f.centers.state == cacheClean {
		return f.centers.items[i], nil
	}
	if f.ShouldCache {
		if err := f.PopulateCenters(); err != nil {
			return math.Vec3{}, err
		}
		return f.centers.items[i], nil
	}
	return f.computeCenter(i)
}

// NormalAt returns face i's unit normal. The winding order of the source
// vertices determines its sign.
func (f *FaceArray) NormalAt(i int) (math.Vec3, error) {
	if err := f.checkFace(i); err != nil {
		return math.Vec3{}, err
	}
	if f.normals.state == cacheClean {
		return f.normals.items[i], nil
	}
	if f.ShouldCache {
		if err := f.PopulateNormals(); err != nil {
			return math.Vec3{}, err
		}
		return f.normals.items[i], nil
	}
	return f.computeNormal(i)
}

// PlaneAt returns face i's plane in normal-distance form.
func (f *FaceArray) PlaneAt(i int) (math.Plane, error) {
	if err := f.checkFace(i); err != nil {
		return math.Plane{}, err
	}
	if f.planes.state == cacheClean {
		return f.planes.items[i], nil
	}
	if f.ShouldCache {
		if err := f.PopulatePlanes(); err != nil {
			return math.Plane{}, err
		}
		return f.planes.items[i], nil
	}
	return f.computePlane(i)
}

// NeighboursAt returns the indices of the faces sharing each of face i's
// three edges, NoNeighbour for boundary edges. Adjacency is computed once
// and cached regardless of ShouldCache.
func (f *FaceArray) NeighboursAt(i int) ([3]int, error) {
	if err := f.checkFace(i); err != nil {
		return [3]int{}, err
	}
	if f.neighbours.state != cacheClean {
		if err := f.PopulateNeighbours(); err != nil {
			return [3]int{}, err
		}
	}
	return f.neighbours.items[i], nil
}

// PopulateIndices eagerly computes and caches all face index triples.
func (f *FaceArray) PopulateIndices() error {
	n := f.FaceCount()
	items := make([][3]int, n)
	for i := 0; i < n; i++ {
		t, err := f.computeTriple(i)
		if err != nil {
			return err
		}
		items[i] = t
	}
	f.triples = faceCache[[3]int]{state: cacheClean, items: items}
	return nil
}

// PopulateCenters eagerly computes and caches all face centers.
func (f *FaceArray) PopulateCenters() error {
	n := f.FaceCount()
	items := make([]math.Vec3, n)
	for i := 0; i < n; i++ {
		c, err := f.computeCenter(i)
		if err != nil {
			return err
		}
		items[i] = c
	}
	f.centers = faceCache[math.Vec3]{state: cacheClean, items: items}
	return nil
}

// PopulateNormals eagerly computes and caches all face normals.
func (f *FaceArray) PopulateNormals() error {
	n := f.FaceCount()
	items := make([]math.Vec3, n)
	for i := 0; i < n; i++ {
		v, err := f.computeNormal(i)
		if err != nil {
			return err
		}
		items[i] = v
	}
	f.normals = faceCache[math.Vec3]{state: cacheClean, items: items}
	return nil
}

// PopulatePlanes eagerly computes and caches all face planes.
func (f *FaceArray) PopulatePlanes() error {
	n := f.FaceCount()
	items := make([]math.Plane, n)
	for i := 0; i < n; i++ {
		p, err := f.computePlane(i)
		if err != nil {
			return err
		}
		items[i] = p
	}
	f.planes = faceCache[math.Plane]{state: cacheClean, items: items}
	return nil
}

// edgeKey is an unordered vertex index pair.
type edgeKey struct{ a, b int }

func edgeOf(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// PopulateNeighbours builds the edge adjacency of all faces. Each edge is
// expected to join at most two faces; on non-manifold geometry the first
// two faces registering an edge keep it and later ones see NoNeighbour
// across it.
func (f *FaceArray) PopulateNeighbours() error {
	n := f.FaceCount()
	edges := make(map[edgeKey][2]int, n*3/2)
	triples := make([][3]int, n)
	for i := 0; i < n; i++ {
		t, err := f.FaceIndicesAt(i)
		if err != nil {
			return err
		}
		triples[i] = t
		for e := 0; e < 3; e++ {
			key := edgeOf(t[e], t[(e+1)%3])
			pair, ok := edges[key]
			if !ok {
				edges[key] = [2]int{i, NoNeighbour}
				continue
			}
			if pair[1] == NoNeighbour && pair[0] != i {
				pair[1] = i
				edges[key] = pair
			}
		}
	}

	items := make([][3]int, n)
	for i := 0; i < n; i++ {
		t := triples[i]
		for e := 0; e < 3; e++ {
			pair := edges[edgeOf(t[e], t[(e+1)%3])]
			switch i {
			case pair[0]:
				items[i][e] = pair[1]
			case pair[1]:
				items[i][e] = pair[0]
			default:
				items[i][e] = NoNeighbour
			}
		}
	}
	f.neighbours = faceCache[[3]int]{state: cacheClean, items: items}
	return nil
}

// MarkIndicesDirty drops the cached face index triples.
func (f *FaceArray) MarkIndicesDirty() { f.triples.markDirty() }

// MarkCentersDirty drops the cached face centers.
func (f *FaceArray) MarkCentersDirty() { f.centers.markDirty() }

// MarkNormalsDirty drops the cached face normals.
func (f *FaceArray) MarkNormalsDirty() { f.normals.markDirty() }

// MarkPlanesDirty drops the cached face planes.
func (f *FaceArray) MarkPlanesDirty() { f.planes.markDirty() }

// MarkNeighboursDirty drops the cached adjacency. Only needed after the
// mesh's topology (indices or vertex count) changes, not after vertex
// motion.
func (f *FaceArray) MarkNeighboursDirty() { f.neighbours.markDirty() }

// MarkDeformed drops the caches that depend on vertex locations: centers,
// normals, and planes. Call it after moving vertices. Triples and
// adjacency are structural and stay valid.
func (f *FaceArray) MarkDeformed() {
	f.centers.markDirty()
	f.normals.markDirty()
	f.planes.markDirty()
}
