package mesh

import (
	"encoding/binary"
	"errors"
	gomath "math"
	"testing"

	"github.com/meshforge/meshcore/pkg/math"
)

const epsilon = 1e-4

func near(a, b float32) bool {
	d := a - b
	return d > -epsilon && d < epsilon
}

func nearVec3(a, b math.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestInterleavedLayout(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation | ContentNormal | ContentTexCoord)

	total := m.UpdateStride()
	if total != 32 {
		t.Errorf("UpdateStride() = %d, want 32", total)
	}
	loc := m.Attribute(SemLocation)
	norm := m.Attribute(SemNormal)
	tex := m.TexCoord(0)
	if loc.Stride() != 32 || norm.Stride() != 32 || tex.Stride() != 32 {
		t.Errorf("strides = %d/%d/%d, want 32 each", loc.Stride(), norm.Stride(), tex.Stride())
	}
	if loc.Offset() != 0 {
		t.Errorf("location offset = %d, want 0", loc.Offset())
	}
	if norm.Offset() != 12 {
		t.Errorf("normal offset = %d, want 12", norm.Offset())
	}
	if tex.Offset() != 24 {
		t.Errorf("texcoord offset = %d, want 24", tex.Offset())
	}
}

func TestUpdateStrideIdempotent(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation | ContentNormal | ContentColor | ContentTexCoord)

	first := m.UpdateStride()
	offs := make([]int, 0)
	for _, a := range m.Attributes() {
		offs = append(offs, a.Offset())
	}
	second := m.UpdateStride()
	if first != second {
		t.Errorf("UpdateStride() twice = %d then %d, want equal", first, second)
	}
	for i, a := range m.Attributes() {
		if a.Offset() != offs[i] {
			t.Errorf("offset of %v changed from %d to %d", a.Semantic(), offs[i], a.Offset())
		}
	}
}

func TestNonInterleavedLayout(t *testing.T) {
	m := New()
	m.SetInterleaved(false)
	m.SetContentTypes(ContentLocation | ContentNormal)
	m.UpdateStride()

	loc := m.Attribute(SemLocation)
	if loc.Stride() != 12 || loc.Offset() != 0 {
		t.Errorf("non-interleaved location stride/offset = %d/%d, want 12/0", loc.Stride(), loc.Offset())
	}
}

func TestGrowthPreservesPrefix(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation | ContentNormal)
	m.SetAllocatedCapacity(3)

	want := []math.Vec3{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}, {X: 7, Y: 8, Z: 9}}
	for i, v := range want {
		if err := m.SetLocationAt(i, v); err != nil {
			t.Fatalf("SetLocationAt(%d): %v", i, err)
		}
	}

	for _, required := range []int{5, 9, 20} {
		if !m.EnsureCapacity(required) {
			t.Fatalf("EnsureCapacity(%d) = false, want growth", required)
		}
		if m.Capacity() < required {
			t.Fatalf("capacity %d after EnsureCapacity(%d)", m.Capacity(), required)
		}
		for i, w := range want {
			got, err := m.LocationAt(i)
			if err != nil {
				t.Fatalf("LocationAt(%d) after growth: %v", i, err)
			}
			if got != w {
				t.Errorf("vertex %d after EnsureCapacity(%d) = %v, want %v", i, required, got, w)
			}
		}
	}
}

func TestEnsureCapacityCeiling(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation)
	m.SetAllocatedCapacity(4)

	// ceil(5 * 1.25) = 7
	if !m.EnsureCapacity(5) {
		t.Fatal("EnsureCapacity(5) = false, want true")
	}
	if m.Capacity() != 7 {
		t.Errorf("Capacity() = %d, want 7", m.Capacity())
	}
	if m.EnsureCapacity(6) {
		t.Error("EnsureCapacity(6) below capacity should be a no-op")
	}
	if m.Capacity() != 7 {
		t.Errorf("Capacity() after no-op = %d, want 7", m.Capacity())
	}
}

func TestSetAllocatedCapacityZeroFrees(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation)
	m.SetAllocatedCapacity(8)
	m.SetAllocatedCapacity(0)

	if m.Capacity() != 0 || m.VertexCount() != 0 {
		t.Errorf("capacity/count = %d/%d, want 0/0", m.Capacity(), m.VertexCount())
	}
	if _, err := m.LocationAt(0); err == nil {
		t.Error("LocationAt on freed mesh should fail")
	}
}

func TestVertexCountClamped(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation)
	m.SetAllocatedCapacity(5)

	m.SetVertexCount(99)
	if m.VertexCount() != 5 {
		t.Errorf("VertexCount() = %d, want clamp to 5", m.VertexCount())
	}
	m.SetVertexCount(2)
	if m.VertexCount() != 2 {
		t.Errorf("VertexCount() = %d, want 2", m.VertexCount())
	}
}

func TestRoundTripAccessors(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation | ContentNormal | ContentTangent | ContentBitangent |
		ContentColor | ContentTexCoord | ContentBoneWeights | ContentBoneIndices | ContentPointSize)
	m.SetAllocatedCapacity(2)

	loc := math.Vec3{X: 1.5, Y: -2.25, Z: 3.75}
	if err := m.SetLocationAt(1, loc); err != nil {
		t.Fatalf("SetLocationAt: %v", err)
	}
	if got, _ := m.LocationAt(1); got != loc {
		t.Errorf("LocationAt() = %v, want %v", got, loc)
	}

	norm := math.Vec3{X: 0, Y: 0, Z: 1}
	m.SetNormalAt(1, norm)
	if got, _ := m.NormalAt(1); got != norm {
		t.Errorf("NormalAt() = %v, want %v", got, norm)
	}

	tan := math.Vec3{X: 1, Y: 0, Z: 0}
	m.SetTangentAt(1, tan)
	if got, _ := m.TangentAt(1); got != tan {
		t.Errorf("TangentAt() = %v, want %v", got, tan)
	}

	bitan := math.Vec3{X: 0, Y: 1, Z: 0}
	m.SetBitangentAt(1, bitan)
	if got, _ := m.BitangentAt(1); got != bitan {
		t.Errorf("BitangentAt() = %v, want %v", got, bitan)
	}

	// Color stored as 4 x uint8: round trip within one quantization step.
	col := math.Vec4{X: 1, Y: 0.5, Z: 0.25, W: 1}
	m.SetColorAt(1, col)
	gotCol, _ := m.ColorAt(1)
	if !near(gotCol.X, 1) || !near(gotCol.W, 1) {
		t.Errorf("ColorAt() = %v, want X and W of 1", gotCol)
	}
	if d := gotCol.Y - col.Y; d < -0.01 || d > 0.01 {
		t.Errorf("ColorAt().Y = %v, want ~%v", gotCol.Y, col.Y)
	}

	uv := math.Vec2{X: 0.125, Y: 0.875}
	m.SetTexCoordAt(0, 1, uv)
	if got, _ := m.TexCoordAt(0, 1); got != uv {
		t.Errorf("TexCoordAt() = %v, want %v", got, uv)
	}

	weights := []float32{0.5, 0.25, 0.125, 0.125}
	m.SetBoneWeightsAt(1, weights)
	gotW, _ := m.BoneWeightsAt(1)
	for c := range weights {
		if gotW[c] != weights[c] {
			t.Errorf("BoneWeightsAt()[%d] = %v, want %v", c, gotW[c], weights[c])
		}
	}

	bones := []int{3, 7, 11, 0}
	m.SetBoneIndicesAt(1, bones)
	gotB, _ := m.BoneIndicesAt(1)
	for c := range bones {
		if gotB[c] != bones[c] {
			t.Errorf("BoneIndicesAt()[%d] = %d, want %d", c, gotB[c], bones[c])
		}
	}

	m.SetPointSizeAt(1, 4.5)
	if got, _ := m.PointSizeAt(1); got != 4.5 {
		t.Errorf("PointSizeAt() = %v, want 4.5", got)
	}
}

func TestComponentOutOfRange(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation | ContentNormal)
	m.SetAllocatedCapacity(2)
	m.SetNormalAt(0, math.Vec3{X: 0, Y: 0, Z: 1})

	loc := m.Attribute(SemLocation)

	// Location declares 3 components; component 3 lands on the
	// neighbouring normal's bytes in the shared buffer and must be
	// rejected, not silently written.
	if err := loc.SetFloat32At(0, 3, 42); !errors.Is(err, ErrVertexRange) {
		t.Errorf("SetFloat32At(0, 3) error = %v, want ErrVertexRange", err)
	}
	if _, err := loc.Float32At(0, 3); !errors.Is(err, ErrVertexRange) {
		t.Errorf("Float32At(0, 3) error = %v, want ErrVertexRange", err)
	}
	if _, err := loc.UintAt(0, -1); !errors.Is(err, ErrVertexRange) {
		t.Errorf("UintAt(0, -1) error = %v, want ErrVertexRange", err)
	}
	if err := loc.SetUintAt(0, 3, 1); !errors.Is(err, ErrVertexRange) {
		t.Errorf("SetUintAt(0, 3) error = %v, want ErrVertexRange", err)
	}

	if got, _ := m.NormalAt(0); got != (math.Vec3{X: 0, Y: 0, Z: 1}) {
		t.Errorf("NormalAt() after rejected writes = %v, want {0 0 1}", got)
	}
}

func TestTwoComponentLocations(t *testing.T) {
	m := New()
	m.AddAttribute(SemLocation, Float32, 2)
	m.UpdateStride()
	m.SetAllocatedCapacity(1)

	m.SetLocationAt(0, math.Vec3{X: 3, Y: 4, Z: 9})
	got, err := m.LocationAt(0)
	if err != nil {
		t.Fatalf("LocationAt: %v", err)
	}
	if got != (math.Vec3{X: 3, Y: 4, Z: 0}) {
		t.Errorf("LocationAt() with 2 components = %v, want {3 4 0}", got)
	}

	h, _ := m.HomogeneousLocationAt(0)
	if h != (math.Vec4{X: 3, Y: 4, Z: 0, W: 1}) {
		t.Errorf("HomogeneousLocationAt() = %v, want {3 4 0 1}", h)
	}
}

func TestHomogeneousLocations(t *testing.T) {
	m := New()
	m.AddAttribute(SemLocation, Float32, 4)
	m.UpdateStride()
	m.SetAllocatedCapacity(1)

	// The stored components round-trip verbatim, with no divide by W.
	m.SetHomogeneousLocationAt(0, math.Vec4{X: 1, Y: 2, Z: 3, W: 2})
	h, err := m.HomogeneousLocationAt(0)
	if err != nil {
		t.Fatalf("HomogeneousLocationAt: %v", err)
	}
	if h != (math.Vec4{X: 1, Y: 2, Z: 3, W: 2}) {
		t.Errorf("HomogeneousLocationAt() = %v, want {1 2 3 2}", h)
	}

	// SetLocationAt on 4-component data resets W to 1.
	m.SetLocationAt(0, math.Vec3{X: 5, Y: 6, Z: 7})
	h, _ = m.HomogeneousLocationAt(0)
	if h != (math.Vec4{X: 5, Y: 6, Z: 7, W: 1}) {
		t.Errorf("HomogeneousLocationAt() after SetLocationAt = %v, want {5 6 7 1}", h)
	}
}

func TestContentTypesRebuildDiscards(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation | ContentNormal)
	m.SetAllocatedCapacity(2)
	m.SetLocationAt(0, math.Vec3{X: 1, Y: 1, Z: 1})

	m.SetContentTypes(ContentLocation)
	if m.Capacity() != 0 {
		t.Errorf("capacity after SetContentTypes = %d, want 0", m.Capacity())
	}
	if m.Attribute(SemNormal) != nil {
		t.Error("normal attribute should be removed")
	}
	if m.ContentTypes() != ContentLocation {
		t.Errorf("ContentTypes() = %v, want location only", m.ContentTypes())
	}
}

func TestReleaseRedundantContent(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation | ContentNormal)
	m.SetAllocatedCapacity(3)
	m.SetLocationAt(0, math.Vec3{X: 1, Y: 2, Z: 3})

	for _, a := range m.Attributes() {
		a.SetStaged(true)
	}
	m.ReleaseRedundantContent()

	if _, err := m.LocationAt(0); !errors.Is(err, ErrReleased) {
		t.Errorf("LocationAt after release: err = %v, want ErrReleased", err)
	}
	if err := m.SetNormalAt(0, math.Vec3{X: 0, Y: 0, Z: 1}); !errors.Is(err, ErrReleased) {
		t.Errorf("SetNormalAt after release: err = %v, want ErrReleased", err)
	}
}

func TestRetainBlocksInterleavedRelease(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation | ContentNormal)
	m.SetAllocatedCapacity(3)
	want := math.Vec3{X: 1, Y: 2, Z: 3}
	m.SetLocationAt(0, want)

	m.Attribute(SemLocation).Retain = true
	for _, a := range m.Attributes() {
		a.SetStaged(true)
	}
	m.ReleaseRedundantContent()

	// Interleaved attributes share one buffer: retaining one retains all.
	got, err := m.LocationAt(0)
	if err != nil {
		t.Fatalf("LocationAt on retained mesh: %v", err)
	}
	if got != want {
		t.Errorf("LocationAt() = %v, want %v", got, want)
	}
}

func TestReleaseSeparateBuffers(t *testing.T) {
	m := New()
	m.SetInterleaved(false)
	m.SetContentTypes(ContentLocation | ContentNormal)
	m.SetAllocatedCapacity(2)
	m.SetLocationAt(0, math.Vec3{X: 4, Y: 5, Z: 6})
	m.SetNormalAt(0, math.Vec3{X: 0, Y: 1, Z: 0})

	m.Attribute(SemLocation).Retain = true
	for _, a := range m.Attributes() {
		a.SetStaged(true)
	}
	m.ReleaseRedundantContent()

	if _, err := m.LocationAt(0); err != nil {
		t.Errorf("retained location should stay readable, got %v", err)
	}
	if _, err := m.NormalAt(0); !errors.Is(err, ErrReleased) {
		t.Errorf("NormalAt after release: err = %v, want ErrReleased", err)
	}
}

func TestDoNotStageImpliesRetention(t *testing.T) {
	m := New()
	m.SetInterleaved(false)
	m.SetContentTypes(ContentLocation)
	m.SetAllocatedCapacity(1)
	m.SetLocationAt(0, math.Vec3{X: 1, Y: 0, Z: 0})

	a := m.Attribute(SemLocation)
	a.DoNotStage = true
	a.SetStaged(true) // even if erroneously flagged as staged
	m.ReleaseRedundantContent()

	if _, err := m.LocationAt(0); err != nil {
		t.Errorf("DoNotStage attribute should never be released, got %v", err)
	}
}

func TestSetAttributeDataBulk(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation | ContentNormal)
	m.SetAllocatedCapacity(2)

	// Two tightly packed 3 x float32 locations.
	packed := make([]byte, 0, 24)
	for _, f := range []float32{1, 2, 3, 4, 5, 6} {
		packed = append(packed, float32Bytes(f)...)
	}
	if err := m.SetAttributeData(SemLocation, 0, packed); err != nil {
		t.Fatalf("SetAttributeData: %v", err)
	}
	got, _ := m.LocationAt(1)
	if got != (math.Vec3{X: 4, Y: 5, Z: 6}) {
		t.Errorf("LocationAt(1) after bulk load = %v, want {4 5 6}", got)
	}

	if err := m.SetAttributeData(SemLocation, 0, packed[:5]); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("partial element: err = %v, want ErrSizeMismatch", err)
	}
}

func TestBoundsAndSphere(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation)
	m.SetAllocatedCapacity(4)
	pts := []math.Vec3{{X: -1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: -2, Z: 0}, {X: 0, Y: 2, Z: 0}}
	for i, p := range pts {
		m.SetLocationAt(i, p)
	}

	b, err := m.Bounds()
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if b.Min != (math.Vec3{X: -1, Y: -2, Z: 0}) || b.Max != (math.Vec3{X: 1, Y: 2, Z: 0}) {
		t.Errorf("Bounds() = %v/%v, want {-1 -2 0}/{1 2 0}", b.Min, b.Max)
	}

	center, radius, err := m.BoundingSphere()
	if err != nil {
		t.Fatalf("BoundingSphere: %v", err)
	}
	if !nearVec3(center, math.Vec3{}) {
		t.Errorf("sphere center = %v, want origin", center)
	}
	if !near(radius, 2) {
		t.Errorf("sphere radius = %v, want 2", radius)
	}
}

func TestShallowCopyShares(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation)
	m.SetAllocatedCapacity(1)
	m.SetLocationAt(0, math.Vec3{X: 1, Y: 1, Z: 1})

	c := m.ShallowCopy()
	c.SetLocationAt(0, math.Vec3{X: 9, Y: 9, Z: 9})

	got, _ := m.LocationAt(0)
	if got != (math.Vec3{X: 9, Y: 9, Z: 9}) {
		t.Errorf("shallow copy should share storage, original = %v", got)
	}
}

func TestDeepCopyIsolates(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation)
	m.SetAllocatedCapacity(1)
	m.SetLocationAt(0, math.Vec3{X: 1, Y: 1, Z: 1})
	idx := m.AllocateIndexes(3, 2)
	idx.Set(0, 2)

	c := m.DeepCopy()
	c.SetLocationAt(0, math.Vec3{X: 9, Y: 9, Z: 9})
	c.SetVertexIndexAt(0, 0)

	got, _ := m.LocationAt(0)
	if got != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("deep copy should not share storage, original = %v", got)
	}
	if v, _ := m.VertexIndexAt(0); v != 2 {
		t.Errorf("deep copy should not share indices, original index = %d", v)
	}
}

func TestBonesPerVertex(t *testing.T) {
	m := New()
	m.SetBoneInfluences(3)
	m.SetContentTypes(ContentLocation | ContentBoneWeights | ContentBoneIndices)
	if got := m.BonesPerVertex(); got != 3 {
		t.Errorf("BonesPerVertex() = %d, want 3", got)
	}
}

func float32Bytes(f float32) []byte {
	bits := gomath.Float32bits(f)
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], bits)
	return b[:]
}
