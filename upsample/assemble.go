package upsample

import (
	"github.com/cesiumgo/terrain/mesh"
	"github.com/cesiumgo/terrain/quantizedmesh"
)

// assembleUpsampledPrimitive merges a clipped primitive's vertices with
// its regenerated skirt and appends the new buffers/accessors/primitive
// directly to out, mirroring the buffer layout
// quantizedmesh.assembleMesh builds for a freshly decoded tile (§4.B.2
// step 5).
func assembleUpsampledPrimitive(out *mesh.Mesh, m *materializer, builder *quantizedmesh.SkirtBuilder, noSkirtVertexCount, noSkirtIndexCount uint32, center quantizedmesh.Vector3d, heights quantizedmesh.EdgeHeights, ancillary *mesh.OverlayMetadata) *mesh.Primitive {

	allPositions := append(append([]float32(nil), m.positions...), builder.Positions()...)
	allTexcoords := append(append([]float32(nil), m.texcoords...), builder.ExtraFloatAttr(mesh.AttrTexCoord0)...)
	allIndices := append(append([]uint32(nil), m.indices...), builder.Indices()...)

	var allNormals []float32
	if m.normals != nil {
		allNormals = append(append([]float32(nil), m.normals...), builder.ExtraFloatAttr(mesh.AttrNormal)...)
	}

	indexComponentType := mesh.ComponentUnsignedShort
	if len(allPositions)/3 > 65536 {
		indexComponentType = mesh.ComponentUnsignedInt
	}

	attrs := map[string]int{}

	addVec := func(values []float32, components string, target int) int {
		b := mesh.NewBuffer(float32sToBytes(values))
		out.Buffers = append(out.Buffers, b)
		bi := len(out.Buffers) - 1
		v := &mesh.BufferView{BufferIndex: bi, ByteLength: len(b.Data), Target: target}
		out.BufferViews = append(out.BufferViews, v)
		vi := len(out.BufferViews) - 1
		min, max := minMaxVec(values, mesh.ComponentCount[components])
		a := &mesh.Accessor{BufferView: vi, HasBufferView: true, ComponentType: mesh.ComponentFloat, Type: components, Count: len(values) / mesh.ComponentCount[components], Min: min, Max: max}
		out.Accessors = append(out.Accessors, a)
		return len(out.Accessors) - 1
	}

	attrs[mesh.AttrPosition] = addVec(allPositions, mesh.TypeVec3, mesh.TargetArrayBuffer)
	attrs[mesh.AttrTexCoord0] = addVec(allTexcoords, mesh.TypeVec2, mesh.TargetArrayBuffer)
	if allNormals != nil {
		attrs[mesh.AttrNormal] = addVec(allNormals, mesh.TypeVec3, mesh.TargetArrayBuffer)
	}

	idxBytes := indicesToBytes(allIndices, indexComponentType)
	idxBuf := mesh.NewBuffer(idxBytes)
	out.Buffers = append(out.Buffers, idxBuf)
	idxView := &mesh.BufferView{BufferIndex: len(out.Buffers) - 1, ByteLength: len(idxBytes), Target: mesh.TargetElementArrayBuffer}
	out.BufferViews = append(out.BufferViews, idxView)
	idxAccessor := &mesh.Accessor{BufferView: len(out.BufferViews) - 1, HasBufferView: true, ComponentType: indexComponentType, Type: mesh.TypeScalar, Count: len(allIndices)}
	out.Accessors = append(out.Accessors, idxAccessor)
	indicesAccessorIdx := len(out.Accessors) - 1

	skirt := &mesh.SkirtMetadata{
		NoSkirtIndicesBegin:  0,
		NoSkirtIndicesCount:  noSkirtIndexCount,
		NoSkirtVerticesBegin: 0,
		NoSkirtVerticesCount: noSkirtVertexCount,
		MeshCenter:           [3]float64{center.X, center.Y, center.Z},
		SkirtWestHeight:      heights.West,
		SkirtSouthHeight:     heights.South,
		SkirtEastHeight:      heights.East,
		SkirtNorthHeight:     heights.North,
	}

	extras := map[string]interface{}{mesh.ExtrasKey: skirt}
	if ancillary != nil {
		extras[mesh.OverlayExtrasKey] = ancillary
	}

	return &mesh.Primitive{
		Mode:       mesh.ModeTriangles,
		Attributes: attrs,
		Indices:    indicesAccessorIdx,
		HasIndices: true,
		Extras:     extras,
	}
}
