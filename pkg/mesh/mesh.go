package mesh

import (
	"github.com/chewxy/math32"

	"github.com/meshforge/meshcore/pkg/math"
)

// DefaultExpansionFactor is the capacity headroom multiplier applied by
// EnsureCapacity when the mesh must grow.
const DefaultExpansionFactor = 1.25

// DefaultBoneInfluences is the bones-per-vertex count used by
// SetContentTypes for skinned content.
const DefaultBoneInfluences = 4

// Mesh owns the vertex attribute arrays of one drawable mesh, an optional
// index array, and the capacity/growth policy of the underlying storage.
//
// The usual call order is: SetInterleaved and SetContentTypes (or explicit
// AddAttribute calls followed by UpdateStride), then SetAllocatedCapacity,
// then per-vertex or bulk population, then face queries or staging.
type Mesh struct {
	attrs     [semanticCount]*AttributeArray // SemTexCoord slot unused
	texCoords []*AttributeArray
	indexes   *IndexArray

	interleaved bool
	shared      []byte

	capacity  int
	count     int
	expansion float32
	mode      PrimitiveMode

	boneInfluences int

	faces *FaceArray
}

// New returns an empty interleaved triangle mesh with the default
// expansion factor.
func New() *Mesh {
	return &Mesh{
		interleaved:    true,
		expansion:      DefaultExpansionFactor,
		mode:           Triangles,
		boneInfluences: DefaultBoneInfluences,
	}
}

// Interleaved reports whether attributes share one record buffer.
func (m *Mesh) Interleaved() bool { return m.interleaved }

// SetInterleaved selects between one shared record buffer and one private
// buffer per attribute. Changing it after attributes exist requires an
// UpdateStride call before the next allocation.
func (m *Mesh) SetInterleaved(interleaved bool) { m.interleaved = interleaved }

// Mode returns the drawing primitive mode.
func (m *Mesh) Mode() PrimitiveMode { return m.mode }

// SetMode sets the drawing primitive mode.
func (m *Mesh) SetMode(mode PrimitiveMode) { m.mode = mode }

// Capacity returns the allocated vertex capacity.
func (m *Mesh) Capacity() int { return m.capacity }

// VertexCount returns the number of vertices logically in use.
func (m *Mesh) VertexCount() int { return m.count }

// SetVertexCount sets the logical vertex count, clamped to [0, capacity].
// Lowering it below capacity suppresses drawing of unpopulated tail
// vertices after a growth.
func (m *Mesh) SetVertexCount(n int) {
	if n > m.capacity {
		n = m.capacity
	}
	if n < 0 {
		n = 0
	}
	m.count = n
}

// ExpansionFactor returns the capacity growth multiplier.
func (m *Mesh) ExpansionFactor() float32 { return m.expansion }

// SetExpansionFactor sets the capacity growth multiplier. Values below 1
// are ignored.
func (m *Mesh) SetExpansionFactor(f float32) {
	if f >= 1 {
		m.expansion = f
	}
}

// SetBoneInfluences sets the bones-per-vertex count used when
// SetContentTypes creates bone weight and bone index attributes. Call it
// before SetContentTypes.
func (m *Mesh) SetBoneInfluences(n int) {
	if n > 0 {
		m.boneInfluences = n
	}
}

// BonesPerVertex returns the bone influence count per vertex, derived
// from the bone weight attribute when present.
func (m *Mesh) BonesPerVertex() int {
	if a := m.attrs[SemBoneWeights]; a != nil {
		return a.ElemCount()
	}
	return m.boneInfluences
}

// Attribute returns the array for the given semantic, or nil when absent.
// For SemTexCoord it returns channel 0; use TexCoord for other channels.
func (m *Mesh) Attribute(sem Semantic) *AttributeArray {
	if sem == SemTexCoord {
		if len(m.texCoords) == 0 {
			return nil
		}
		return m.texCoords[0]
	}
	if sem >= semanticCount {
		return nil
	}
	return m.attrs[sem]
}

// TexCoord returns the texture coordinate array for the given channel, or
// nil when absent.
func (m *Mesh) TexCoord(unit int) *AttributeArray {
	if unit < 0 || unit >= len(m.texCoords) {
		return nil
	}
	return m.texCoords[unit]
}

// TexCoordChannels returns the number of texture coordinate channels.
func (m *Mesh) TexCoordChannels() int { return len(m.texCoords) }

// Attributes returns the active attribute arrays in canonical
// interleaving order.
func (m *Mesh) Attributes() []*AttributeArray {
	out := make([]*AttributeArray, 0, int(semanticCount)+len(m.texCoords))
	for sem := Semantic(0); sem < semanticCount; sem++ {
		if sem == SemTexCoord {
			out = append(out, m.texCoords...)
			continue
		}
		if m.attrs[sem] != nil {
			out = append(out, m.attrs[sem])
		}
	}
	return out
}

// AddAttribute creates (or replaces) the array for a semantic with the
// given element type and component count, and returns it. For SemTexCoord
// a new channel is appended. When interleaving, call UpdateStride after
// the attribute set is complete and before allocating.
func (m *Mesh) AddAttribute(sem Semantic, t ElemType, count int) *AttributeArray {
	unit := 0
	if sem == SemTexCoord {
		unit = len(m.texCoords)
	}
	a := newAttributeArray(sem, unit, t, count)
	if sem == SemTexCoord {
		m.texCoords = append(m.texCoords, a)
	} else {
		m.attrs[sem] = a
	}
	return a
}

// RemoveAttribute removes the semantic's array (all channels for
// SemTexCoord). When interleaving, call UpdateStride afterwards.
func (m *Mesh) RemoveAttribute(sem Semantic) {
	if sem == SemTexCoord {
		m.texCoords = nil
		return
	}
	if sem < semanticCount {
		m.attrs[sem] = nil
	}
}

// ContentTypes returns the bitmask of currently active semantics.
func (m *Mesh) ContentTypes() ContentType {
	var mask ContentType
	for _, a := range m.Attributes() {
		mask |= contentBit(a.semantic)
	}
	return mask
}

// SetContentTypes declaratively rebuilds the attribute set from a bitmask,
// creating each present semantic with its default element layout:
//
//	location, normal, tangent, bitangent: 3 x float32
//	color:                                4 x uint8
//	texcoord (one channel):               2 x float32
//	bone weights:                         bones-per-vertex x float32
//	bone indices:                         bones-per-vertex x uint8
//	point size:                           1 x float32
//
// Any prior attribute set and its vertex values are discarded; call it
// before SetAllocatedCapacity.
func (m *Mesh) SetContentTypes(mask ContentType) {
	for sem := range m.attrs {
		m.attrs[sem] = nil
	}
	m.texCoords = nil
	m.shared = nil
	m.capacity = 0
	m.count = 0

	if mask.Has(ContentLocation) {
		m.AddAttribute(SemLocation, Float32, 3)
	}
	if mask.Has(ContentNormal) {
		m.AddAttribute(SemNormal, Float32, 3)
	}
	if mask.Has(ContentTangent) {
		m.AddAttribute(SemTangent, Float32, 3)
	}
	if mask.Has(ContentBitangent) {
		m.AddAttribute(SemBitangent, Float32, 3)
	}
	if mask.Has(ContentColor) {
		m.AddAttribute(SemColor, Uint8, 4)
	}
	if mask.Has(ContentTexCoord) {
		m.AddAttribute(SemTexCoord, Float32, 2)
	}
	if mask.Has(ContentBoneWeights) {
		m.AddAttribute(SemBoneWeights, Float32, m.boneInfluences)
	}
	if mask.Has(ContentBoneIndices) {
		m.AddAttribute(SemBoneIndices, Uint8, m.boneInfluences)
	}
	if mask.Has(ContentPointSize) {
		m.AddAttribute(SemPointSize, Float32, 1)
	}
	m.UpdateStride()
}

// UpdateStride recomputes every active attribute's byte offset and, when
// interleaving, the shared record stride, from the canonical semantic
// ordering. It returns the total per-vertex byte size and is idempotent.
func (m *Mesh) UpdateStride() int {
	attrs := m.Attributes()
	total := 0
	for _, a := range attrs {
		total += a.ElemSize()
	}
	offset := 0
	for _, a := range attrs {
		if m.interleaved {
			a.stride = total
			a.offset = offset
			offset += a.ElemSize()
		} else {
			a.stride = a.ElemSize()
			a.offset = 0
		}
	}
	return total
}

// SetAllocatedCapacity allocates, reallocates, or frees the vertex
// storage of every active attribute.
//
// n == 0 frees all storage and zeroes the vertex count. Growing preserves
// the first min(n, old) vertices' values per attribute; vertex slots
// beyond the old capacity hold unspecified values until populated. The
// vertex count is set to n either way.
func (m *Mesh) SetAllocatedCapacity(n int) {
	if n <= 0 {
		for _, a := range m.Attributes() {
			a.data = nil
			a.released = false
			a.staged = false
		}
		m.shared = nil
		m.capacity = 0
		m.count = 0
		return
	}

	attrs := m.Attributes()
	if m.layoutStale(attrs) {
		m.UpdateStride()
	}
	preserve := m.capacity
	if n < preserve {
		preserve = n
	}

	if m.interleaved {
		stride := 0
		for _, a := range attrs {
			stride += a.ElemSize()
		}
		buf := make([]byte, n*stride)
		if m.shared != nil {
			copy(buf, m.shared[:preserve*stride])
		}
		m.shared = buf
		for _, a := range attrs {
			a.data = buf
			a.released = false
			a.staged = false
		}
	} else {
		for _, a := range attrs {
			es := a.ElemSize()
			buf := make([]byte, n*es)
			if a.data != nil {
				copy(buf, a.data[:preserve*es])
			}
			a.data = buf
			a.released = false
			a.staged = false
		}
	}

	m.capacity = n
	m.count = n
}

// layoutStale reports whether any attribute still has a zero stride,
// meaning UpdateStride has not yet run for the current attribute set.
func (m *Mesh) layoutStale(attrs []*AttributeArray) bool {
	for _, a := range attrs {
		if a.stride == 0 {
			return true
		}
	}
	return false
}

// EnsureCapacity grows allocated capacity to hold at least required
// vertices, with headroom: the new capacity is ceil(required * expansion
// factor). It reports whether a reallocation happened; existing vertex
// values survive the growth.
func (m *Mesh) EnsureCapacity(required int) bool {
	if required <= m.capacity {
		return false
	}
	newCap := int(math32.Ceil(float32(required) * m.expansion))
	m.SetAllocatedCapacity(newCap)
	return true
}

// AllocateIndexes gives the mesh an index array with the given capacity,
// wide enough to hold maxIndex, and returns it.
func (m *Mesh) AllocateIndexes(capacity, maxIndex int) *IndexArray {
	m.indexes = NewIndexArray(capacity, maxIndex)
	return m.indexes
}

// SetIndexArray attaches a caller-allocated index array. The caller keeps
// ownership of its lifetime; the mesh only references it.
func (m *Mesh) SetIndexArray(a *IndexArray) { m.indexes = a }

// IndexArray returns the index array, or nil for non-indexed meshes.
func (m *Mesh) IndexArray() *IndexArray { return m.indexes }

// VertexIndexAt returns the index value at position i.
func (m *Mesh) VertexIndexAt(i int) (int, error) {
	if m.indexes == nil {
		return 0, ErrNoIndexArray
	}
	return m.indexes.At(i)
}

// SetVertexIndexAt stores an index value at position i.
func (m *Mesh) SetVertexIndexAt(i, v int) error {
	if m.indexes == nil {
		return ErrNoIndexArray
	}
	return m.indexes.Set(i, v)
}

// Faces returns the face array deriving face-level geometry from this
// mesh, creating it on first use. It shares the mesh's lifetime.
func (m *Mesh) Faces() *FaceArray {
	if m.faces == nil {
		m.faces = NewFaceArray(m)
	}
	return m.faces
}

// IsStaged reports whether every stageable array has been handed to GPU
// buffers.
func (m *Mesh) IsStaged() bool {
	staged := false
	for _, a := range m.Attributes() {
		if a.DoNotStage {
			continue
		}
		if !a.staged {
			return false
		}
		staged = true
	}
	if m.indexes != nil && !m.indexes.DoNotStage {
		if !m.indexes.staged {
			return false
		}
		staged = true
	}
	return staged
}

// ReleaseRedundantContent frees the host copy of every array that has
// been staged and is neither retained nor excluded from staging. For an
// interleaved mesh the shared buffer is freed only when every attribute
// qualifies. Accessors on released arrays fail with ErrReleased.
func (m *Mesh) ReleaseRedundantContent() {
	attrs := m.Attributes()
	if m.interleaved {
		for _, a := range attrs {
			if !releasable(a.staged, a.Retain, a.DoNotStage) {
				return
			}
		}
		for _, a := range attrs {
			a.release()
		}
		m.shared = nil
	} else {
		for _, a := range attrs {
			if releasable(a.staged, a.Retain, a.DoNotStage) {
				a.release()
			}
		}
	}
	if m.indexes != nil && releasable(m.indexes.staged, m.indexes.Retain, m.indexes.DoNotStage) {
		m.indexes.release()
	}
}

func releasable(staged, retain, doNotStage bool) bool {
	return staged && !retain && !doNotStage
}

// ShallowCopy returns a mesh sharing this mesh's attribute arrays, index
// array, and face array by reference. Deforming one deforms both.
func (m *Mesh) ShallowCopy() *Mesh {
	clone := *m
	return &clone
}

// DeepCopy returns a mesh with duplicated vertex and index storage and a
// fresh face array.
func (m *Mesh) DeepCopy() *Mesh {
	clone := New()
	clone.interleaved = m.interleaved
	clone.expansion = m.expansion
	clone.mode = m.mode
	clone.boneInfluences = m.boneInfluences

	for _, a := range m.Attributes() {
		dup := clone.AddAttribute(a.semantic, a.elemType, a.elemCount)
		dup.Retain = a.Retain
		dup.DoNotStage = a.DoNotStage
	}
	clone.UpdateStride()
	if m.capacity > 0 {
		clone.SetAllocatedCapacity(m.capacity)
		if m.interleaved && m.shared != nil {
			copy(clone.shared, m.shared)
		} else {
			src := m.Attributes()
			dst := clone.Attributes()
			for i, a := range src {
				if a.data != nil {
					copy(dst[i].data, a.data)
				}
			}
		}
	}
	clone.count = m.count

	if m.indexes != nil {
		idx := &IndexArray{
			width:      m.indexes.width,
			count:      m.indexes.count,
			Retain:     m.indexes.Retain,
			DoNotStage: m.indexes.DoNotStage,
		}
		idx.alloc(m.indexes.Capacity())
		copy(idx.u16, m.indexes.u16)
		copy(idx.u32, m.indexes.u32)
		clone.indexes = idx
	}
	return clone
}

// SetAttributeData bulk-populates a semantic from a tightly packed byte
// range, bypassing per-vertex accessors. The range must be a whole number
// of elements and fit the allocated capacity. unit selects the texture
// coordinate channel and is ignored for other semantics.
func (m *Mesh) SetAttributeData(sem Semantic, unit int, packed []byte) error {
	a := m.Attribute(sem)
	if sem == SemTexCoord {
		a = m.TexCoord(unit)
	}
	if a == nil {
		return ErrNoAttribute
	}
	es := a.ElemSize()
	if es == 0 || len(packed)%es != 0 {
		return ErrSizeMismatch
	}
	n := len(packed) / es
	if n > m.capacity {
		return ErrVertexRange
	}
	if a.released || a.data == nil {
		return ErrReleased
	}
	if a.stride == es && a.offset == 0 {
		copy(a.data, packed)
		return nil
	}
	for i := 0; i < n; i++ {
		copy(a.valueBytes(i), packed[i*es:(i+1)*es])
	}
	return nil
}

// InterleavedBytes returns the shared record buffer of an interleaved
// mesh, or nil for non-interleaved or released meshes. The slice aliases
// live storage; it is meant for staging.
func (m *Mesh) InterleavedBytes() []byte {
	if !m.interleaved {
		return nil
	}
	return m.shared
}

// vec3 reads up to three components of the semantic at vertex i, with
// missing components implicitly zero.
func (m *Mesh) vec3At(sem Semantic, i int) (math.Vec3, error) {
	a := m.Attribute(sem)
	if a == nil {
		return math.Vec3{}, ErrNoAttribute
	}
	var v math.Vec3
	comps := a.elemCount
	if comps > 3 {
		comps = 3
	}
	for c := 0; c < comps; c++ {
		f, err := a.Float32At(i, c)
		if err != nil {
			return math.Vec3{}, err
		}
		switch c {
		case 0:
			v.X = f
		case 1:
			v.Y = f
		case 2:
			v.Z = f
		}
	}
	return v, nil
}

func (m *Mesh) setVec3At(sem Semantic, i int, v math.Vec3) error {
	a := m.Attribute(sem)
	if a == nil {
		return ErrNoAttribute
	}
	comps := [3]float32{v.X, v.Y, v.Z}
	n := a.elemCount
	if n > 3 {
		n = 3
	}
	for c := 0; c < n; c++ {
		if err := a.SetFloat32At(i, c, comps[c]); err != nil {
			return err
		}
	}
	return nil
}

// LocationAt returns vertex i's location, adapting the attribute's
// declared component count: 2-component data yields Z == 0.
func (m *Mesh) LocationAt(i int) (math.Vec3, error) {
	return m.vec3At(SemLocation, i)
}

// SetLocationAt stores vertex i's location. For 4-component data the
// homogeneous W is set to 1.
func (m *Mesh) SetLocationAt(i int, v math.Vec3) error {
	a := m.Attribute(SemLocation)
	if a == nil {
		return ErrNoAttribute
	}
	if err := m.setVec3At(SemLocation, i, v); err != nil {
		return err
	}
	if a.elemCount == 4 {
		return a.SetFloat32At(i, 3, 1)
	}
	return nil
}

// HomogeneousLocationAt returns vertex i's location as a homogeneous
// vector: W is implicitly 1 for 2- and 3-component data.
func (m *Mesh) HomogeneousLocationAt(i int) (math.Vec4, error) {
	a := m.Attribute(SemLocation)
	if a == nil {
		return math.Vec4{}, ErrNoAttribute
	}
	v3, err := m.vec3At(SemLocation, i)
	if err != nil {
		return math.Vec4{}, err
	}
	w := float32(1)
	if a.elemCount == 4 {
		if w, err = a.Float32At(i, 3); err != nil {
			return math.Vec4{}, err
		}
	}
	return math.NewVec4(v3, w), nil
}

// SetHomogeneousLocationAt stores vertex i's homogeneous location. The
// components are stored verbatim, with no divide by W; components the
// attribute does not declare are dropped.
func (m *Mesh) SetHomogeneousLocationAt(i int, v math.Vec4) error {
	a := m.Attribute(SemLocation)
	if a == nil {
		return ErrNoAttribute
	}
	xyz := math.Vec3{X: v.X, Y: v.Y, Z: v.Z}
	if err := m.setVec3At(SemLocation, i, xyz); err != nil {
		return err
	}
	if a.elemCount == 4 {
		return a.SetFloat32At(i, 3, v.W)
	}
	return nil
}

// NormalAt returns vertex i's normal.
func (m *Mesh) NormalAt(i int) (math.Vec3, error) { return m.vec3At(SemNormal, i) }

// SetNormalAt stores vertex i's normal.
func (m *Mesh) SetNormalAt(i int, v math.Vec3) error { return m.setVec3At(SemNormal, i, v) }

// TangentAt returns vertex i's tangent.
func (m *Mesh) TangentAt(i int) (math.Vec3, error) { return m.vec3At(SemTangent, i) }

// SetTangentAt stores vertex i's tangent.
func (m *Mesh) SetTangentAt(i int, v math.Vec3) error { return m.setVec3At(SemTangent, i, v) }

// BitangentAt returns vertex i's bitangent.
func (m *Mesh) BitangentAt(i int) (math.Vec3, error) { return m.vec3At(SemBitangent, i) }

// SetBitangentAt stores vertex i's bitangent.
func (m *Mesh) SetBitangentAt(i int, v math.Vec3) error { return m.setVec3At(SemBitangent, i, v) }

// ColorAt returns vertex i's color with components in [0, 1]. Integer
// color storage is normalized.
func (m *Mesh) ColorAt(i int) (math.Vec4, error) {
	a := m.Attribute(SemColor)
	if a == nil {
		return math.Vec4{}, ErrNoAttribute
	}
	var out [4]float32
	out[3] = colorScale(a.elemType) // opaque alpha for 3-component colors
	for c := 0; c < a.elemCount && c < 4; c++ {
		f, err := a.Float32At(i, c)
		if err != nil {
			return math.Vec4{}, err
		}
		out[c] = f
	}
	s := colorScale(a.elemType)
	return math.Vec4{X: out[0] / s, Y: out[1] / s, Z: out[2] / s, W: out[3] / s}, nil
}

// SetColorAt stores vertex i's color from components in [0, 1].
func (m *Mesh) SetColorAt(i int, v math.Vec4) error {
	a := m.Attribute(SemColor)
	if a == nil {
		return ErrNoAttribute
	}
	s := colorScale(a.elemType)
	comps := [4]float32{v.X * s, v.Y * s, v.Z * s, v.W * s}
	for c := 0; c < a.elemCount && c < 4; c++ {
		f := comps[c]
		if a.elemType != Float32 {
			f = math32.Round(clamp(f, 0, s))
		}
		if err := a.SetFloat32At(i, c, f); err != nil {
			return err
		}
	}
	return nil
}

func colorScale(t ElemType) float32 {
	switch t {
	case Uint8:
		return 255
	case Uint16:
		return 65535
	}
	return 1
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TexCoordAt returns vertex i's texture coordinate on the given channel.
func (m *Mesh) TexCoordAt(unit, i int) (math.Vec2, error) {
	a := m.TexCoord(unit)
	if a == nil {
		return math.Vec2{}, ErrNoAttribute
	}
	u, err := a.Float32At(i, 0)
	if err != nil {
		return math.Vec2{}, err
	}
	v, err := a.Float32At(i, 1)
	if err != nil {
		return math.Vec2{}, err
	}
	return math.Vec2{X: u, Y: v}, nil
}

// SetTexCoordAt stores vertex i's texture coordinate on the given channel.
func (m *Mesh) SetTexCoordAt(unit, i int, uv math.Vec2) error {
	a := m.TexCoord(unit)
	if a == nil {
		return ErrNoAttribute
	}
	if err := a.SetFloat32At(i, 0, uv.X); err != nil {
		return err
	}
	return a.SetFloat32At(i, 1, uv.Y)
}

// PointSizeAt returns vertex i's point size.
func (m *Mesh) PointSizeAt(i int) (float32, error) {
	a := m.Attribute(SemPointSize)
	if a == nil {
		return 0, ErrNoAttribute
	}
	return a.Float32At(i, 0)
}

// SetPointSizeAt stores vertex i's point size.
func (m *Mesh) SetPointSizeAt(i int, size float32) error {
	a := m.Attribute(SemPointSize)
	if a == nil {
		return ErrNoAttribute
	}
	return a.SetFloat32At(i, 0, size)
}

// BoneWeightsAt returns vertex i's bone weights, one per influence.
func (m *Mesh) BoneWeightsAt(i int) ([]float32, error) {
	a := m.Attribute(SemBoneWeights)
	if a == nil {
		return nil, ErrNoAttribute
	}
	out := make([]float32, a.elemCount)
	for c := range out {
		f, err := a.Float32At(i, c)
		if err != nil {
			return nil, err
		}
		out[c] = f
	}
	return out, nil
}

// SetBoneWeightsAt stores vertex i's bone weights. Extra values beyond
// the influence count are ignored.
func (m *Mesh) SetBoneWeightsAt(i int, weights []float32) error {
	a := m.Attribute(SemBoneWeights)
	if a == nil {
		return ErrNoAttribute
	}
	for c := 0; c < a.elemCount && c < len(weights); c++ {
		if err := a.SetFloat32At(i, c, weights[c]); err != nil {
			return err
		}
	}
	return nil
}

// BoneIndicesAt returns vertex i's bone indices, one per influence.
func (m *Mesh) BoneIndicesAt(i int) ([]int, error) {
	a := m.Attribute(SemBoneIndices)
	if a == nil {
		return nil, ErrNoAttribute
	}
	out := make([]int, a.elemCount)
	for c := range out {
		v, err := a.UintAt(i, c)
		if err != nil {
			return nil, err
		}
		out[c] = int(v)
	}
	return out, nil
}

// SetBoneIndicesAt stores vertex i's bone indices. Extra values beyond
// the influence count are ignored.
func (m *Mesh) SetBoneIndicesAt(i int, indices []int) error {
	a := m.Attribute(SemBoneIndices)
	if a == nil {
		return ErrNoAttribute
	}
	for c := 0; c < a.elemCount && c < len(indices); c++ {
		if err := a.SetUintAt(i, c, uint32(indices[c])); err != nil {
			return err
		}
	}
	return nil
}
