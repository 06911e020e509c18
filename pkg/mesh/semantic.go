// Package mesh manages the per-vertex attribute storage of a drawable 3D
// mesh, its optional index array, and the face-level geometry (centers,
// normals, planes, adjacency) derived from it.
//
// A Mesh owns one typed AttributeArray per active vertex semantic. The
// arrays are either interleaved into one shared byte buffer or stored
// independently, and grow through an amortized capacity policy. Face-level
// queries and ray picking are served by the FaceArray attached to the mesh.
//
// All operations are synchronous and single-threaded; callers sharing a
// mesh across goroutines must serialize access themselves.
package mesh

// Semantic identifies one kind of per-vertex data.
//
// The declared order is the canonical interleaving order: when attributes
// share one buffer, each vertex record lays its attributes out in this
// order, with every absent semantic contributing no bytes.
type Semantic uint8

const (
	SemLocation Semantic = iota
	SemNormal
	SemTangent
	SemBitangent
	SemColor
	SemTexCoord
	SemBoneWeights
	SemBoneIndices
	SemPointSize

	semanticCount
)

// String returns the semantic name.
func (s Semantic) String() string {
	switch s {
	case SemLocation:
		return "location"
	case SemNormal:
		return "normal"
	case SemTangent:
		return "tangent"
	case SemBitangent:
		return "bitangent"
	case SemColor:
		return "color"
	case SemTexCoord:
		return "texcoord"
	case SemBoneWeights:
		return "bone-weights"
	case SemBoneIndices:
		return "bone-indices"
	case SemPointSize:
		return "point-size"
	}
	return "unknown"
}

// ContentType is a bitmask of vertex semantics used by
// Mesh.SetContentTypes to declare the standard attribute set in one call.
type ContentType uint16

const (
	ContentLocation ContentType = 1 << iota
	ContentNormal
	ContentTangent
	ContentBitangent
	ContentColor
	ContentTexCoord
	ContentBoneWeights
	ContentBoneIndices
	ContentPointSize
)

// Has reports whether the mask includes the given content bit.
func (c ContentType) Has(bit ContentType) bool {
	return c&bit != 0
}

// contentBit maps a semantic to its ContentType bit.
func contentBit(s Semantic) ContentType {
	return ContentType(1) << s
}

// ElemType is the scalar type of one attribute component.
type ElemType uint8

const (
	Float32 ElemType = iota
	Uint8
	Uint16
	Uint32
)

// Size returns the size of one component in bytes.
func (t ElemType) Size() int {
	switch t {
	case Uint8:
		return 1
	case Uint16:
		return 2
	case Float32, Uint32:
		return 4
	}
	return 0
}

// String returns the element type name.
func (t ElemType) String() string {
	switch t {
	case Float32:
		return "float32"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	}
	return "unknown"
}

// PrimitiveMode selects the drawing primitive the vertex stream encodes.
type PrimitiveMode uint8

const (
	Triangles PrimitiveMode = iota
	TriangleStrip
	Lines
	Points
)

// String returns the primitive mode name.
func (m PrimitiveMode) String() string {
	switch m {
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle-strip"
	case Lines:
		return "lines"
	case Points:
		return "points"
	}
	return "unknown"
}
