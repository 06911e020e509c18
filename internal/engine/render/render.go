// Package render stages meshes into OpenGL buffers and draws them.
package render

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/meshforge/meshcore/internal/engine/render/shaders"
	"github.com/meshforge/meshcore/internal/logger"
	"github.com/meshforge/meshcore/pkg/math"
	"github.com/meshforge/meshcore/pkg/mesh"
)

// ErrNoLocation is returned when staging a mesh without vertex locations.
var ErrNoLocation = errors.New("render: mesh has no location attribute")

// ErrEmptyMesh is returned when staging a mesh with no vertices.
var ErrEmptyMesh = errors.New("render: mesh has no vertices")

// StagedMesh holds the GPU-side buffers for one staged mesh.
type StagedMesh struct {
	src *mesh.Mesh

	vao  uint32
	vbos []uint32
	ebo  uint32

	mode        uint32
	vertexCount int32
	indexCount  int32
	indexType   uint32
	hasColor    bool
}

// Renderer owns the mesh shader program and tracks the bound mesh so
// consecutive draws of the same mesh skip redundant binds.
type Renderer struct {
	program      uint32
	locMVP       int32
	locModel     int32
	locLightDir  int32
	locBaseColor int32

	lastBound *StagedMesh
	wireframe bool
}

// New compiles the mesh shader program and sets up fixed GL state.
// Requires a current OpenGL 4.1 core context.
func New() (*Renderer, error) {
	program, err := buildProgram(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}

	r := &Renderer{
		program:      program,
		locMVP:       uniform(program, "uMVP"),
		locModel:     uniform(program, "uModel"),
		locLightDir:  uniform(program, "uLightDir"),
		locBaseColor: uniform(program, "uBaseColor"),
	}

	gl.Enable(gl.DEPTH_TEST)
	// LEQUAL lets overlay passes repaint faces at the same depth.
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	logger.Debug("renderer initialized", zap.Uint32("program", program))
	return r, nil
}

// Close releases the shader program.
func (r *Renderer) Close() {
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
	r.lastBound = nil
}

// SetWireframe toggles edge-only rendering.
func (r *Renderer) SetWireframe(on bool) { r.wireframe = on }

// SetViewport matches the GL viewport to the window size.
func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear clears the frame and depth buffers.
func (r *Renderer) Clear() {
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Stage uploads the mesh's vertex and index storage into GPU buffers
// and marks each uploaded array as staged. Arrays flagged DoNotStage
// stay host-side. The returned handle is valid until Unstage.
func (r *Renderer) Stage(m *mesh.Mesh) (*StagedMesh, error) {
	loc := m.Attribute(mesh.SemLocation)
	if loc == nil {
		return nil, ErrNoLocation
	}
	if m.VertexCount() == 0 {
		return nil, ErrEmptyMesh
	}

	sm := &StagedMesh{
		src:         m,
		mode:        glPrimitive(m.Mode()),
		vertexCount: int32(m.VertexCount()),
	}

	gl.GenVertexArrays(1, &sm.vao)
	gl.BindVertexArray(sm.vao)

	if m.Interleaved() {
		r.stageInterleaved(sm, m)
	} else {
		r.stagePrivate(sm, m)
	}

	if ia := m.IndexArray(); ia != nil && !ia.DoNotStage && ia.Count() > 0 {
		r.stageIndexes(sm, ia)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("mesh staged",
		zap.Uint32("vao", sm.vao),
		zap.Int32("vertices", sm.vertexCount),
		zap.Int32("indices", sm.indexCount),
		zap.Bool("interleaved", m.Interleaved()),
	)
	return sm, nil
}

// stageInterleaved uploads the shared record buffer as a single VBO and
// points every stageable attribute into it.
func (r *Renderer) stageInterleaved(sm *StagedMesh, m *mesh.Mesh) {
	data := m.InterleavedBytes()
	stride := m.UpdateStride()
	size := m.VertexCount() * stride
	if size > len(data) {
		size = len(data)
	}
	if size == 0 {
		return
	}

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	sm.vbos = append(sm.vbos, vbo)

	for _, a := range m.Attributes() {
		if a.DoNotStage {
			continue
		}
		enableAttribute(sm, a, int32(a.Stride()), a.Offset())
		a.SetStaged(true)
	}
}

// stagePrivate uploads one VBO per attribute buffer.
func (r *Renderer) stagePrivate(sm *StagedMesh, m *mesh.Mesh) {
	for _, a := range m.Attributes() {
		if a.DoNotStage {
			continue
		}
		data := a.Bytes()
		size := m.VertexCount() * a.ElemSize()
		if size > len(data) {
			size = len(data)
		}
		if size == 0 {
			continue
		}

		var vbo uint32
		gl.GenBuffers(1, &vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
		sm.vbos = append(sm.vbos, vbo)

		enableAttribute(sm, a, int32(a.ElemSize()), 0)
		a.SetStaged(true)
	}
}

func (r *Renderer) stageIndexes(sm *StagedMesh, ia *mesh.IndexArray) {
	data := ia.Bytes()
	if len(data) == 0 {
		return
	}
	gl.GenBuffers(1, &sm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, sm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data), unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	sm.indexCount = int32(ia.Count())
	if ia.Width() == mesh.IndexUint32 {
		sm.indexType = gl.UNSIGNED_INT
	} else {
		sm.indexType = gl.UNSIGNED_SHORT
	}
	ia.SetStaged(true)
}

// Unstage deletes the GPU buffers and clears the staged flags on the
// source mesh's arrays.
func (r *Renderer) Unstage(sm *StagedMesh) {
	if sm == nil {
		return
	}
	if sm.vao != 0 {
		gl.DeleteVertexArrays(1, &sm.vao)
	}
	for i := range sm.vbos {
		gl.DeleteBuffers(1, &sm.vbos[i])
	}
	if sm.ebo != 0 {
		gl.DeleteBuffers(1, &sm.ebo)
	}
	for _, a := range sm.src.Attributes() {
		a.SetStaged(false)
	}
	if ia := sm.src.IndexArray(); ia != nil {
		ia.SetStaged(false)
	}
	if r.lastBound == sm {
		r.lastBound = nil
	}
	sm.vao, sm.ebo = 0, 0
	sm.vbos = nil
}

// Draw renders the whole staged mesh.
func (r *Renderer) Draw(sm *StagedMesh, mvp, model math.Mat4, baseColor math.Vec4) {
	if sm.indexCount > 0 {
		r.DrawRange(sm, mvp, model, baseColor, 0, int(sm.indexCount))
	} else {
		r.DrawRange(sm, mvp, model, baseColor, 0, int(sm.vertexCount))
	}
}

// DrawRange renders count elements starting at first. For an indexed
// mesh the range is in indices, otherwise in vertices.
func (r *Renderer) DrawRange(sm *StagedMesh, mvp, model math.Mat4, baseColor math.Vec4, first, count int) {
	if count <= 0 {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locMVP, 1, false, mvp.Ptr())
	gl.UniformMatrix4fv(r.locModel, 1, false, model.Ptr())
	gl.Uniform3f(r.locLightDir, -0.4, -0.8, -0.45)
	gl.Uniform4f(r.locBaseColor, baseColor.X, baseColor.Y, baseColor.Z, baseColor.W)

	r.bind(sm)

	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	if sm.indexCount > 0 {
		offset := uintptr(first) * uintptr(indexSize(sm.indexType))
		gl.DrawElementsWithOffset(sm.mode, int32(count), sm.indexType, offset)
	} else {
		gl.DrawArrays(sm.mode, int32(first), int32(count))
	}
}

// bind makes the staged mesh current, skipping the bind when it already
// is. Generic attribute defaults are context state, so the color
// fallback is refreshed on every switch.
func (r *Renderer) bind(sm *StagedMesh) {
	if r.lastBound == sm {
		return
	}
	gl.BindVertexArray(sm.vao)
	if !sm.hasColor {
		gl.VertexAttrib4f(attribLocation(mesh.SemColor, 0), 1, 1, 1, 1)
	}
	r.lastBound = sm
}

// enableAttribute wires one attribute array into the bound VAO.
func enableAttribute(sm *StagedMesh, a *mesh.AttributeArray, stride int32, offset int) {
	loc := attribLocation(a.Semantic(), a.Unit())
	normalized := a.Semantic() == mesh.SemColor && a.ElemType() != mesh.Float32
	if a.ElemType() == mesh.Float32 || normalized {
		gl.VertexAttribPointerWithOffset(loc, int32(a.ElemCount()), glElemType(a.ElemType()), normalized, stride, uintptr(offset))
	} else {
		gl.VertexAttribIPointerWithOffset(loc, int32(a.ElemCount()), glElemType(a.ElemType()), stride, uintptr(offset))
	}
	gl.EnableVertexAttribArray(loc)
	if a.Semantic() == mesh.SemColor {
		sm.hasColor = true
	}
}

// attribLocation maps a vertex semantic to its shader attribute slot.
// Texture coordinate units occupy slots 5 through 8.
func attribLocation(sem mesh.Semantic, unit int) uint32 {
	switch sem {
	case mesh.SemTexCoord:
		return uint32(5 + unit)
	case mesh.SemBoneWeights:
		return 9
	case mesh.SemBoneIndices:
		return 10
	case mesh.SemPointSize:
		return 11
	default:
		return uint32(sem)
	}
}

func glPrimitive(mode mesh.PrimitiveMode) uint32 {
	switch mode {
	case mesh.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case mesh.Lines:
		return gl.LINES
	case mesh.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func glElemType(t mesh.ElemType) uint32 {
	switch t {
	case mesh.Uint8:
		return gl.UNSIGNED_BYTE
	case mesh.Uint16:
		return gl.UNSIGNED_SHORT
	case mesh.Uint32:
		return gl.UNSIGNED_INT
	default:
		return gl.FLOAT
	}
}

func indexSize(glType uint32) int {
	if glType == gl.UNSIGNED_INT {
		return 4
	}
	return 2
}
