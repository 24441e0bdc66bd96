package quantizedmesh

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/cesiumgo/terrain/mesh"
)

// buildFlatQuadTile assembles a minimal, hand-computed quantized-mesh
// buffer for a single flat quad (4 vertices, 2 triangles, all four
// edges populated, no extensions), used to exercise Decode end to end.
func buildFlatQuadTile(t *testing.T) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	write := func(v interface{}) {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("write %v: %v", v, err)
		}
	}

	// Header: centered at the ellipsoid center, flat at height 0.
	write(float64(0)) // center x/y/z
	write(float64(0))
	write(float64(0))
	write(float32(0)) // min/max height
	write(float32(0))
	write(float64(0)) // bounding sphere center x/y/z
	write(float64(0))
	write(float64(0))
	write(float64(0)) // bounding sphere radius
	write(float64(0)) // horizon occlusion point x/y/z
	write(float64(0))
	write(float64(0))
	write(uint32(4)) // vertex count

	// u, v, h streams: corners at (0,0) (1,0) (0,1) (1,1) in UV space,
	// zig-zag delta encoded from a running accumulator that starts at 0.
	uDeltas := []int32{0, 32767, -32767, 32767}
	vDeltas := []int32{0, 0, 32767, 0}
	hDeltas := []int32{0, 0, 0, 0}
	for _, d := range uDeltas {
		write(uint16(ZigZagEncode(d)))
	}
	for _, d := range vDeltas {
		write(uint16(ZigZagEncode(d)))
	}
	for _, d := range hDeltas {
		write(uint16(ZigZagEncode(d)))
	}

	// Two triangles covering the quad: (0,1,2) and (1,3,2).
	write(uint32(2)) // triangle count
	codes := EncodeHighWatermark([]uint32{0, 1, 2, 1, 3, 2})
	for _, c := range codes {
		write(uint16(c))
	}

	// Edges: west={0,2} south={0,1} east={1,3} north={2,3}.
	writeEdge := func(indices []uint32) {
		write(uint32(len(indices)))
		for _, idx := range indices {
			write(uint16(idx))
		}
	}
	writeEdge([]uint32{0, 2})
	writeEdge([]uint32{0, 1})
	writeEdge([]uint32{1, 3})
	writeEdge([]uint32{2, 3})

	return buf.Bytes()
}

func TestDecodeFlatQuad(t *testing.T) {

	data := buildFlatQuadTile(t)
	rectangle := GlobeRectangle{West: -0.01, South: -0.01, East: 0.01, North: 0.01}

	result, err := Decode(data, rectangle, 10, WGS84)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if result.Errors.HasErrors() {
		t.Fatalf("Decode reported warnings: %+v", result.Errors.Warnings)
	}
	if result.Mesh == nil {
		t.Fatal("Decode returned a nil mesh")
	}

	prim := result.Mesh.Primitives[0]
	posAccessor := result.Mesh.Accessor(prim.Attributes[mesh.AttrPosition])
	if posAccessor.Count <= 4 {
		t.Fatalf("position count = %d, want more than the 4 source vertices once skirts are added", posAccessor.Count)
	}

	idxAccessor := result.Mesh.Accessor(prim.Indices)
	if idxAccessor.Count <= 6 {
		t.Fatalf("index count = %d, want more than the 6 source indices once skirt triangles are added", idxAccessor.Count)
	}

	skirt, ok := mesh.SkirtFromPrimitive(prim)
	if !ok {
		t.Fatal("primitive carries no skirt metadata")
	}
	if skirt.NoSkirtVerticesCount != 4 {
		t.Fatalf("NoSkirtVerticesCount = %d, want 4", skirt.NoSkirtVerticesCount)
	}
	if skirt.NoSkirtIndicesCount != 6 {
		t.Fatalf("NoSkirtIndicesCount = %d, want 6", skirt.NoSkirtIndicesCount)
	}
}

func TestDecodeTruncatedHeaderReportsError(t *testing.T) {

	_, err := Decode(make([]byte, 10), GlobeRectangle{}, 0, WGS84)
	if err == nil {
		t.Fatal("expected an error decoding a 10-byte buffer")
	}
}

func TestSynthesizedNormalsAreUnitLength(t *testing.T) {

	positions := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}
	indices := []uint32{0, 1, 2}
	normals := synthesizeNormals(mesh.ModeTriangles, positions, indices, 3)

	for i := 0; i < 3; i++ {
		length := math.Sqrt(float64(normals[i*3])*float64(normals[i*3]) +
			float64(normals[i*3+1])*float64(normals[i*3+1]) +
			float64(normals[i*3+2])*float64(normals[i*3+2]))
		if math.Abs(length-1) > 1e-4 {
			t.Fatalf("normal %d length = %v, want ~1", i, length)
		}
	}
}
