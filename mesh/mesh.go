// Package mesh holds the value objects shared by the quadtree refinement
// engine: buffers, buffer views, accessors, primitives and meshes, plus
// the skirt metadata a primitive carries in its extras (§3). These mirror
// the glTF object model but are deliberately narrow: the full glTF JSON
// graph (materials, textures, animations, scenes) is out of scope — the
// core only ever produces and consumes meshes through this package.
package mesh

// Primitive render modes, as declared by glTF.
const (
	ModePoints        = 0
	ModeLines         = 1
	ModeLineLoop      = 2
	ModeLineStrip     = 3
	ModeTriangles     = 4
	ModeTriangleStrip = 5
	ModeTriangleFan   = 6
)

// Accessor component types (§3).
const (
	ComponentByte          = 5120 // i8
	ComponentUnsignedByte  = 5121 // u8
	ComponentShort         = 5122 // i16
	ComponentUnsignedShort = 5123 // u16
	ComponentUnsignedInt   = 5125 // u32
	ComponentFloat         = 5126 // f32
)

// Accessor element types (§3).
const (
	TypeScalar = "SCALAR"
	TypeVec2   = "VEC2"
	TypeVec3   = "VEC3"
	TypeVec4   = "VEC4"
	TypeMat2   = "MAT2"
	TypeMat3   = "MAT3"
	TypeMat4   = "MAT4"
)

// ComponentCount maps an accessor element type to the number of scalar
// components it holds.
var ComponentCount = map[string]int{
	TypeScalar: 1,
	TypeVec2:   2,
	TypeVec3:   3,
	TypeVec4:   4,
	TypeMat2:   4,
	TypeMat3:   9,
	TypeMat4:   16,
}

// ComponentByteSize returns the size in bytes of one scalar component of
// the given component type, or 0 if unknown.
func ComponentByteSize(componentType int) int {

	switch componentType {
	case ComponentByte, ComponentUnsignedByte:
		return 1
	case ComponentShort, ComponentUnsignedShort:
		return 2
	case ComponentUnsignedInt, ComponentFloat:
		return 4
	default:
		return 0
	}
}

// Standard attribute semantic names used by the primitives this package
// produces.
const (
	AttrPosition  = "POSITION"
	AttrNormal    = "NORMAL"
	AttrTexCoord0 = "TEXCOORD_0"
)

// BufferView target hints, as declared by glTF.
const (
	TargetArrayBuffer        = 34962 // vertex attributes
	TargetElementArrayBuffer = 34963 // indices
)

// Buffer is an owned, contiguous byte array. ByteLength is authoritative
// over len(Data): callers that resize Data must update ByteLength too.
type Buffer struct {
	Data       []byte
	ByteLength int
}

// NewBuffer wraps data in a Buffer, recording its authoritative length.
func NewBuffer(data []byte) *Buffer {

	return &Buffer{Data: data, ByteLength: len(data)}
}

// BufferView is a contiguous byte range inside a buffer.
type BufferView struct {
	BufferIndex int
	ByteOffset  int
	ByteLength  int
	ByteStride  int // 0 means "not set"
	Target      int // 0 means "not set"
}

// Bytes returns the byte slice of buf covered by this view.
func (bv *BufferView) Bytes(buf *Buffer) []byte {

	return buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
}

// Accessor is a typed view into a BufferView (§3).
type Accessor struct {
	BufferView    int
	HasBufferView bool
	ByteOffset    int
	ComponentType int
	Type          string
	Count         int
	Normalized    bool
	Min           []float64
	Max           []float64
}

// ElementByteSize returns the size in bytes of one element (e.g. one
// VEC3 of f32 is 12 bytes).
func (a *Accessor) ElementByteSize() int {

	return ComponentCount[a.Type] * ComponentByteSize(a.ComponentType)
}

// Stride returns the accessor's effective byte stride: the buffer view's
// stride if set, else the accessor's natural element size (§3).
func (a *Accessor) Stride(bv *BufferView) int {

	if bv != nil && bv.ByteStride != 0 {
		return bv.ByteStride
	}
	return a.ElementByteSize()
}

// Primitive is a renderable piece of geometry (§3).
type Primitive struct {
	Mode       int
	Attributes map[string]int // attribute semantic -> accessor index
	Indices    int
	HasIndices bool
	Extras     map[string]interface{}
}

// Mesh is a set of primitives (§3).
type Mesh struct {
	Buffers     []*Buffer
	BufferViews []*BufferView
	Accessors   []*Accessor
	Primitives  []*Primitive
}

// Accessor resolves accessor index i, or nil if out of range.
func (m *Mesh) Accessor(i int) *Accessor {

	if i < 0 || i >= len(m.Accessors) {
		return nil
	}
	return m.Accessors[i]
}

// BufferView resolves buffer-view index i, or nil if out of range.
func (m *Mesh) BufferView(i int) *BufferView {

	if i < 0 || i >= len(m.BufferViews) {
		return nil
	}
	return m.BufferViews[i]
}

// Buffer resolves buffer index i, or nil if out of range.
func (m *Mesh) Buffer(i int) *Buffer {

	if i < 0 || i >= len(m.Buffers) {
		return nil
	}
	return m.Buffers[i]
}

// AccessorBytes returns the raw bytes an accessor views, resolving its
// buffer view and buffer. Returns nil if any link is broken.
func (m *Mesh) AccessorBytes(a *Accessor) []byte {

	if a == nil || !a.HasBufferView {
		return nil
	}
	bv := m.BufferView(a.BufferView)
	if bv == nil {
		return nil
	}
	buf := m.Buffer(bv.BufferIndex)
	if buf == nil {
		return nil
	}
	return bv.Bytes(buf)
}
