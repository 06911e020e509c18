package mesh

import (
	"encoding/binary"
	gomath "math"
)

// AttributeArray is one typed, strided array of per-vertex values for a
// single semantic. Its backing bytes live either in a buffer shared with
// the mesh's other attributes (interleaved) or in a private buffer.
//
// Stride and offset always reflect the layout mode: a non-interleaved
// array has stride equal to its own element size and offset zero; an
// interleaved array has the mesh-wide record stride and the cumulative
// offset of the semantics preceding it in canonical order.
type AttributeArray struct {
	semantic  Semantic
	unit      int // texture coordinate channel, 0 for other semantics
	elemType  ElemType
	elemCount int

	stride int
	offset int
	data   []byte

	staged   bool
	released bool

	// Retain keeps the host copy alive through ReleaseRedundantContent
	// even after the array has been staged to a GPU buffer.
	Retain bool

	// DoNotStage excludes the array from staging entirely. The host copy
	// is then the only copy, so DoNotStage implies retention.
	DoNotStage bool
}

func newAttributeArray(sem Semantic, unit int, t ElemType, count int) *AttributeArray {
	return &AttributeArray{
		semantic:  sem,
		unit:      unit,
		elemType:  t,
		elemCount: count,
	}
}

// Semantic returns the kind of per-vertex data this array holds.
func (a *AttributeArray) Semantic() Semantic { return a.semantic }

// Unit returns the texture coordinate channel for SemTexCoord arrays.
func (a *AttributeArray) Unit() int { return a.unit }

// ElemType returns the scalar type of one component.
func (a *AttributeArray) ElemType() ElemType { return a.elemType }

// ElemCount returns the number of components per vertex.
func (a *AttributeArray) ElemCount() int { return a.elemCount }

// ElemSize returns the byte size of one vertex's value in this array.
func (a *AttributeArray) ElemSize() int { return a.elemType.Size() * a.elemCount }

// Stride returns the byte distance between consecutive vertices.
func (a *AttributeArray) Stride() int { return a.stride }

// Offset returns the byte position of the first component within a
// vertex record. Always zero for non-interleaved arrays.
func (a *AttributeArray) Offset() int { return a.offset }

// Bytes returns the backing byte buffer, or nil if the host copy has been
// released or never allocated. For interleaved arrays this is the shared
// record buffer; use Stride and Offset to address it.
func (a *AttributeArray) Bytes() []byte { return a.data }

// IsStaged reports whether the array's bytes have been handed to a
// GPU-resident buffer by the renderer.
func (a *AttributeArray) IsStaged() bool { return a.staged }

// SetStaged records staging state. The renderer calls this after buffer
// upload (true) and after buffer deletion (false).
func (a *AttributeArray) SetStaged(staged bool) { a.staged = staged }

// Released reports whether the host copy has been released.
func (a *AttributeArray) Released() bool { return a.released }

// release drops the host copy. Accessors fail with ErrReleased afterwards.
func (a *AttributeArray) release() {
	a.data = nil
	a.released = true
}

// checkAccess validates that vertex i is addressable in host memory.
func (a *AttributeArray) checkAccess(i int) error {
	if a.released || a.data == nil {
		return ErrReleased
	}
	if i < 0 || i*a.stride+a.offset+a.ElemSize() > len(a.data) {
		return ErrVertexRange
	}
	return nil
}

// checkComponent validates vertex i and component c. The value window
// shares its backing buffer with neighbouring attributes, so an
// unchecked c would silently address their bytes.
func (a *AttributeArray) checkComponent(i, c int) error {
	if err := a.checkAccess(i); err != nil {
		return err
	}
	if c < 0 || c >= a.elemCount {
		return ErrVertexRange
	}
	return nil
}

// valueBytes returns the byte window of vertex i's value.
func (a *AttributeArray) valueBytes(i int) []byte {
	start := i*a.stride + a.offset
	return a.data[start : start+a.ElemSize()]
}

// Float32At returns component c of vertex i as a float32.
func (a *AttributeArray) Float32At(i, c int) (float32, error) {
	if err := a.checkComponent(i, c); err != nil {
		return 0, err
	}
	b := a.valueBytes(i)[c*a.elemType.Size():]
	switch a.elemType {
	case Float32:
		return gomath.Float32frombits(binary.LittleEndian.Uint32(b)), nil
	case Uint8:
		return float32(b[0]), nil
	case Uint16:
		return float32(binary.LittleEndian.Uint16(b)), nil
	case Uint32:
		return float32(binary.LittleEndian.Uint32(b)), nil
	}
	return 0, ErrNoAttribute
}

// SetFloat32At stores component c of vertex i.
func (a *AttributeArray) SetFloat32At(i, c int, v float32) error {
	if err := a.checkComponent(i, c); err != nil {
		return err
	}
	b := a.valueBytes(i)[c*a.elemType.Size():]
	switch a.elemType {
	case Float32:
		binary.LittleEndian.PutUint32(b, gomath.Float32bits(v))
	case Uint8:
		b[0] = uint8(v)
	case Uint16:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case Uint32:
		binary.LittleEndian.PutUint32(b, uint32(v))
	}
	return nil
}

// UintAt returns component c of vertex i as an unsigned integer value.
// Only meaningful for integer element types.
func (a *AttributeArray) UintAt(i, c int) (uint32, error) {
	if err := a.checkComponent(i, c); err != nil {
		return 0, err
	}
	b := a.valueBytes(i)[c*a.elemType.Size():]
	switch a.elemType {
	case Uint8:
		return uint32(b[0]), nil
	case Uint16:
		return uint32(binary.LittleEndian.Uint16(b)), nil
	case Uint32:
		return binary.LittleEndian.Uint32(b), nil
	case Float32:
		return uint32(gomath.Float32frombits(binary.LittleEndian.Uint32(b))), nil
	}
	return 0, ErrNoAttribute
}

// SetUintAt stores component c of vertex i from an unsigned integer value.
func (a *AttributeArray) SetUintAt(i, c int, v uint32) error {
	if err := a.checkComponent(i, c); err != nil {
		return err
	}
	b := a.valueBytes(i)[c*a.elemType.Size():]
	switch a.elemType {
	case Uint8:
		b[0] = uint8(v)
	case Uint16:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case Uint32:
		binary.LittleEndian.PutUint32(b, v)
	case Float32:
		binary.LittleEndian.PutUint32(b, gomath.Float32bits(float32(v)))
	}
	return nil
}

// copyValue copies vertex src's value onto vertex dst within this array.
func (a *AttributeArray) copyValue(dst, src int) {
	copy(a.valueBytes(dst), a.valueBytes(src))
}
