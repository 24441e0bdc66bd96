package upsample

import (
	"math"
	"testing"

	"github.com/cesiumgo/terrain/mesh"
	"github.com/cesiumgo/terrain/quantizedmesh"
)

func TestClipTriangleFullyInsideIsPassthrough(t *testing.T) {

	uv := map[uint32][2]float64{
		0: {0.6, 0.6},
		1: {0.8, 0.6},
		2: {0.8, 0.8},
	}
	parentUV := func(idx uint32) (float64, float64) { return uv[idx][0], uv[idx][1] }

	pass1 := clipTriangleAgainstU(0, 1, 2, 0.5, true, parentUV)
	if len(pass1.Items) != 3 {
		t.Fatalf("pass1 items = %d, want 3 (fully inside, no clipping)", len(pass1.Items))
	}
	pass2 := clipTriangleAgainstV(pass1, 0, 1, 2, 0.5, true, parentUV)
	if len(pass2.Items) != 3 {
		t.Fatalf("pass2 items = %d, want 3", len(pass2.Items))
	}
	for i := range pass2.Items {
		idx, ok := resolveDirectIndex(pass2, i)
		if !ok {
			t.Fatalf("item %d did not resolve to a direct parent vertex", i)
		}
		if idx != uint32(i) {
			t.Fatalf("item %d resolved to parent vertex %d, want %d (passthrough should preserve order)", i, idx, i)
		}
	}
}

func TestClipTriangleFullyOutsideIsEmpty(t *testing.T) {

	uv := map[uint32][2]float64{
		0: {0.1, 0.1},
		1: {0.2, 0.1},
		2: {0.2, 0.2},
	}
	parentUV := func(idx uint32) (float64, float64) { return uv[idx][0], uv[idx][1] }

	pass1 := clipTriangleAgainstU(0, 1, 2, 0.5, true, parentUV)
	if len(pass1.Items) != 0 {
		t.Fatalf("pass1 items = %d, want 0 (fully outside keep-above-u region)", len(pass1.Items))
	}
}

func triangleAreaUV(a, b, c [2]float32) float64 {
	return 0.5 * math.Abs(float64(b[0]-a[0])*float64(c[1]-a[1])-float64(c[0]-a[0])*float64(b[1]-a[1]))
}

// buildSplitQuadParent builds the five-vertex, four-triangle parent mesh
// from spec §8 scenario 3: a unit quad split by its center point.
func buildSplitQuadParent(rect quantizedmesh.GlobeRectangle) *mesh.Mesh {

	uvs := [][2]float32{
		{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0.5, 0.5},
	}
	var positions, texcoords []float32
	for _, uv := range uvs {
		lon := quantizedmesh.Lerp(rect.West, rect.East, float64(uv[0]))
		lat := quantizedmesh.Lerp(rect.South, rect.North, float64(uv[1]))
		x, y, z := quantizedmesh.WGS84.CartographicToCartesian(lon, lat, 0)
		positions = append(positions, float32(x), float32(y), float32(z))
		texcoords = append(texcoords, uv[0], uv[1])
	}
	indices := []uint32{
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		3, 0, 4,
	}

	m := &mesh.Mesh{}
	posBytes := float32sToBytes(positions)
	m.Buffers = append(m.Buffers, mesh.NewBuffer(posBytes))
	m.BufferViews = append(m.BufferViews, &mesh.BufferView{BufferIndex: 0, ByteLength: len(posBytes)})
	m.Accessors = append(m.Accessors, &mesh.Accessor{BufferView: 0, HasBufferView: true, ComponentType: mesh.ComponentFloat, Type: mesh.TypeVec3, Count: len(positions) / 3})

	uvBytes := float32sToBytes(texcoords)
	m.Buffers = append(m.Buffers, mesh.NewBuffer(uvBytes))
	m.BufferViews = append(m.BufferViews, &mesh.BufferView{BufferIndex: 1, ByteLength: len(uvBytes)})
	m.Accessors = append(m.Accessors, &mesh.Accessor{BufferView: 1, HasBufferView: true, ComponentType: mesh.ComponentFloat, Type: mesh.TypeVec2, Count: len(texcoords) / 2})

	idxBytes := indicesToBytes(indices, mesh.ComponentUnsignedShort)
	m.Buffers = append(m.Buffers, mesh.NewBuffer(idxBytes))
	m.BufferViews = append(m.BufferViews, &mesh.BufferView{BufferIndex: 2, ByteLength: len(idxBytes)})
	m.Accessors = append(m.Accessors, &mesh.Accessor{BufferView: 2, HasBufferView: true, ComponentType: mesh.ComponentUnsignedShort, Type: mesh.TypeScalar, Count: len(indices)})

	m.Primitives = append(m.Primitives, &mesh.Primitive{
		Mode: mesh.ModeTriangles,
		Attributes: map[string]int{
			mesh.AttrPosition:  0,
			mesh.AttrTexCoord0: 1,
		},
		Indices:    2,
		HasIndices: true,
		Extras: map[string]interface{}{
			mesh.ExtrasKey: &mesh.SkirtMetadata{
				NoSkirtIndicesCount:  uint32(len(indices)),
				NoSkirtVerticesCount: uint32(len(uvs)),
			},
		},
	})
	return m
}

// TestUpsampleNWChildCoversQuadrant is spec §8 scenario 3: upsampling
// the split-quad parent into child (level+1, 0, 1) — the NW quadrant —
// must yield non-skirt triangles whose rescaled UV exactly tiles the
// child's own [0,1]x[0,1] space.
func TestUpsampleNWChildCoversQuadrant(t *testing.T) {

	rect := quantizedmesh.GlobeRectangle{West: 0, South: 0, East: 0.01, North: 0.01}
	parent := buildSplitQuadParent(rect)

	child, err := Upsample(parent, quantizedmesh.WGS84, rect, 6, 0, 1, Options{})
	if err != nil {
		t.Fatalf("Upsample: %v", err)
	}
	if len(child.Primitives) != 1 {
		t.Fatalf("child primitive count = %d, want 1", len(child.Primitives))
	}

	prim := child.Primitives[0]
	skirt, ok := mesh.SkirtFromPrimitive(prim)
	if !ok {
		t.Fatal("child primitive missing skirt metadata")
	}
	if skirt.NoSkirtIndicesCount != 6 {
		t.Fatalf("non-skirt index count = %d, want 6 (two triangles)", skirt.NoSkirtIndicesCount)
	}

	idxAccessor := child.Accessor(prim.Indices)
	idxBytes := child.AccessorBytes(idxAccessor)
	texAccessor := child.Accessor(prim.Attributes[mesh.AttrTexCoord0])
	texBytes := child.AccessorBytes(texAccessor)

	readIndex := func(i int) uint32 {
		if idxAccessor.ComponentType == mesh.ComponentUnsignedInt {
			return uint32(idxBytes[i*4]) | uint32(idxBytes[i*4+1])<<8 | uint32(idxBytes[i*4+2])<<16 | uint32(idxBytes[i*4+3])<<24
		}
		return uint32(idxBytes[i*2]) | uint32(idxBytes[i*2+1])<<8
	}
	readUV := func(vertex uint32) [2]float32 {
		u := math.Float32frombits(uint32(texBytes[vertex*8]) | uint32(texBytes[vertex*8+1])<<8 | uint32(texBytes[vertex*8+2])<<16 | uint32(texBytes[vertex*8+3])<<24)
		v := math.Float32frombits(uint32(texBytes[vertex*8+4]) | uint32(texBytes[vertex*8+5])<<8 | uint32(texBytes[vertex*8+6])<<16 | uint32(texBytes[vertex*8+7])<<24)
		return [2]float32{float32(u), float32(v)}
	}

	totalArea := 0.0
	for i := 0; i < int(skirt.NoSkirtIndicesCount); i += 3 {
		a, b, c := readIndex(i), readIndex(i+1), readIndex(i+2)
		totalArea += triangleAreaUV(readUV(a), readUV(b), readUV(c))
	}

	if math.Abs(totalArea-1.0) > 1e-4 {
		t.Fatalf("child non-skirt triangle area in rescaled UV = %v, want ~1.0 (the whole child tile)", totalArea)
	}
}

func TestChildQuadrant(t *testing.T) {
	cases := []struct {
		x, y                   uint32
		wantU, wantV           bool
	}{
		{0, 0, false, false},
		{1, 0, true, false},
		{0, 1, false, true},
		{1, 1, true, true},
	}
	for _, c := range cases {
		u, v := ChildQuadrant(c.x, c.y)
		if u != c.wantU || v != c.wantV {
			t.Fatalf("ChildQuadrant(%d,%d) = (%v,%v), want (%v,%v)", c.x, c.y, u, v, c.wantU, c.wantV)
		}
	}
}
