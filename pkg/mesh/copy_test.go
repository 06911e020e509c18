package mesh

import (
	"errors"
	"testing"

	"github.com/meshforge/meshcore/pkg/math"
)

func TestCopyVerticesWithinMesh(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation | ContentNormal)
	m.SetAllocatedCapacity(6)
	for i := 0; i < 6; i++ {
		m.SetLocationAt(i, math.Vec3{X: float32(i), Y: 0, Z: 0})
	}

	// Compact vertices 3..5 down over 1..3.
	if err := m.CopyVertices(3, 3, 1); err != nil {
		t.Fatalf("CopyVertices: %v", err)
	}
	for i, want := range []float32{0, 3, 4, 5} {
		got, _ := m.LocationAt(i)
		if got.X != want {
			t.Errorf("LocationAt(%d).X = %v, want %v", i, got.X, want)
		}
	}
}

func TestCopyVerticesOverlapForward(t *testing.T) {
	m := New()
	m.SetInterleaved(false)
	m.SetContentTypes(ContentLocation)
	m.SetAllocatedCapacity(5)
	for i := 0; i < 5; i++ {
		m.SetLocationAt(i, math.Vec3{X: float32(i), Y: 0, Z: 0})
	}

	if err := m.CopyVertices(3, 0, 1); err != nil {
		t.Fatalf("CopyVertices: %v", err)
	}
	// memmove semantics: [0 0 1 2 4]
	for i, want := range []float32{0, 0, 1, 2, 4} {
		got, _ := m.LocationAt(i)
		if got.X != want {
			t.Errorf("LocationAt(%d).X = %v, want %v", i, got.X, want)
		}
	}
}

func TestCopyVerticesRangeChecked(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation)
	m.SetAllocatedCapacity(4)
	if err := m.CopyVertices(3, 2, 0); !errors.Is(err, ErrVertexRange) {
		t.Errorf("out-of-range copy err = %v, want ErrVertexRange", err)
	}
}

func TestCrossMeshCopyMatchesSemantics(t *testing.T) {
	src := New()
	src.SetContentTypes(ContentLocation | ContentTexCoord)
	src.SetAllocatedCapacity(2)
	src.SetLocationAt(0, math.Vec3{X: 1, Y: 2, Z: 3})
	src.SetLocationAt(1, math.Vec3{X: 4, Y: 5, Z: 6})
	src.SetTexCoordAt(0, 0, math.Vec2{X: 0.5, Y: 0.5})

	dst := New()
	dst.SetContentTypes(ContentLocation | ContentNormal | ContentColor | ContentTexCoord)
	dst.SetAllocatedCapacity(4)

	if err := dst.CopyVerticesFrom(src, 2, 0, 1); err != nil {
		t.Fatalf("CopyVerticesFrom: %v", err)
	}

	got, _ := dst.LocationAt(1)
	if got != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("copied location = %v, want {1 2 3}", got)
	}
	uv, _ := dst.TexCoordAt(0, 1)
	if uv != (math.Vec2{X: 0.5, Y: 0.5}) {
		t.Errorf("copied texcoord = %v, want {0.5 0.5}", uv)
	}

	// Semantics absent in src default rather than error.
	n, _ := dst.NormalAt(1)
	if n != (math.Vec3{X: 0, Y: 0, Z: 1}) {
		t.Errorf("defaulted normal = %v, want {0 0 1}", n)
	}
	c, _ := dst.ColorAt(2)
	if !near(c.X, 1) || !near(c.Y, 1) || !near(c.Z, 1) || !near(c.W, 1) {
		t.Errorf("defaulted color = %v, want opaque white", c)
	}
}

func TestCrossMeshCopyConvertsColorWidth(t *testing.T) {
	src := New()
	src.SetInterleaved(false)
	src.AddAttribute(SemLocation, Float32, 3)
	src.AddAttribute(SemColor, Float32, 4)
	src.UpdateStride()
	src.SetAllocatedCapacity(1)
	src.SetColorAt(0, math.Vec4{X: 0.25, Y: 0.5, Z: 0.75, W: 1})

	dst := New()
	dst.SetContentTypes(ContentLocation | ContentColor) // 4 x uint8 color
	dst.SetAllocatedCapacity(1)

	if err := dst.CopyVerticesFrom(src, 1, 0, 0); err != nil {
		t.Fatalf("CopyVerticesFrom: %v", err)
	}
	c, _ := dst.ColorAt(0)
	if d := c.Y - 0.5; d < -0.01 || d > 0.01 {
		t.Errorf("converted color Y = %v, want ~0.5", c.Y)
	}
}

func TestCopyIndicesWithOffset(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation)
	m.SetAllocatedCapacity(16)
	m.AllocateIndexes(16, 200)
	for i, v := range []int{0, 1, 2} {
		m.SetVertexIndexAt(i, v)
	}

	if err := m.CopyIndices(3, 0, 10, 100); err != nil {
		t.Fatalf("CopyIndices: %v", err)
	}
	for j, want := range []int{100, 101, 102} {
		got, _ := m.VertexIndexAt(10 + j)
		if got != want {
			t.Errorf("index at %d = %d, want %d", 10+j, got, want)
		}
	}
}

func TestCopyIndicesNoIndexArrayIsNoop(t *testing.T) {
	m := New()
	m.SetContentTypes(ContentLocation)
	m.SetAllocatedCapacity(4)
	if err := m.CopyIndices(3, 0, 1, 5); err != nil {
		t.Errorf("CopyIndices on non-indexed mesh = %v, want nil", err)
	}
}

func TestCrossMeshIndexSynthesis(t *testing.T) {
	src := New() // no index array
	src.SetContentTypes(ContentLocation)
	src.SetAllocatedCapacity(3)

	dst := New()
	dst.SetContentTypes(ContentLocation)
	dst.SetAllocatedCapacity(16)
	dst.AllocateIndexes(16, 200)

	if err := dst.CopyIndicesFrom(src, 3, 0, 4, 100); err != nil {
		t.Fatalf("CopyIndicesFrom: %v", err)
	}
	for j, want := range []int{100, 101, 102} {
		got, _ := dst.VertexIndexAt(4 + j)
		if got != want {
			t.Errorf("synthesized index at %d = %d, want %d", 4+j, got, want)
		}
	}
}

func TestCrossMeshIndexWidening(t *testing.T) {
	src := New()
	src.SetContentTypes(ContentLocation)
	src.SetAllocatedCapacity(4)
	src.AllocateIndexes(3, 100) // uint16
	for i, v := range []int{5, 6, 7} {
		src.SetVertexIndexAt(i, v)
	}

	dst := New()
	dst.SetContentTypes(ContentLocation)
	dst.SetAllocatedCapacity(4)
	dst.AllocateIndexes(8, 70000) // uint32

	if err := dst.CopyIndicesFrom(src, 3, 0, 0, 1); err != nil {
		t.Fatalf("CopyIndicesFrom: %v", err)
	}
	got, _ := dst.VertexIndexAt(2)
	if got != 8 {
		t.Errorf("widened index = %d, want 8", got)
	}
}

func TestCrossMeshIndexNarrowingOverflow(t *testing.T) {
	src := New()
	src.SetContentTypes(ContentLocation)
	src.SetAllocatedCapacity(1)
	src.AllocateIndexes(1, 70000) // uint32
	src.SetVertexIndexAt(0, 70000)

	dst := New()
	dst.SetContentTypes(ContentLocation)
	dst.SetAllocatedCapacity(1)
	dst.AllocateIndexes(4, 100) // uint16

	err := dst.CopyIndicesFrom(src, 1, 0, 0, 0)
	if !errors.Is(err, ErrIndexWidth) {
		t.Errorf("narrowing overflow err = %v, want ErrIndexWidth", err)
	}
}
