package mesh

import "errors"

// Mesh access errors.
var (
	// ErrReleased is returned by accessors whose attribute's host copy has
	// been released after staging. Callers that need post-staging access
	// must mark the attribute retained before releasing redundant content.
	ErrReleased = errors.New("vertex content released from host memory")

	// ErrNoAttribute is returned when the addressed semantic is not
	// present in the mesh.
	ErrNoAttribute = errors.New("attribute not present in mesh")

	// ErrNoIndexArray is returned by index accessors on a non-indexed mesh.
	ErrNoIndexArray = errors.New("mesh has no index array")

	// ErrVertexRange is returned when a vertex or index position lies
	// outside allocated storage.
	ErrVertexRange = errors.New("vertex index out of allocated range")

	// ErrFaceRange is returned when a face index is at or beyond the
	// current face count.
	ErrFaceRange = errors.New("face index out of range")

	// ErrIndexWidth is returned when an index value does not fit the
	// index array's element width.
	ErrIndexWidth = errors.New("index value exceeds index element width")

	// ErrSizeMismatch is returned by bulk population when the supplied
	// byte range is not a whole number of elements.
	ErrSizeMismatch = errors.New("data size does not match attribute layout")
)
