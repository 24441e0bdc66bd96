package upsample

import (
	"errors"

	"github.com/cesiumgo/terrain/internal/logger"
	"github.com/cesiumgo/terrain/mesh"
	"github.com/cesiumgo/terrain/quantizedmesh"
)

// ErrEmpty is returned when every primitive of the parent mesh is removed
// during clipping — a mesh whose last primitive is dropped causes the
// whole upsample to return "empty" (§4.B.2 step 5 failure semantics).
var ErrEmpty = errors.New("upsample: result mesh is empty")

// edgeEpsilon is the tolerance used to decide whether a freshly clipped
// vertex's rescaled UV sits on a child-tile boundary. Clip crossings are
// computed at exactly the 0.5 threshold, so after rescaling they land at
// 0 or 1 up to floating-point error.
const edgeEpsilon = 1e-6

// Options configures Upsample.
type Options struct {
	// TexCoordAttr is the attribute semantic the clip planes test
	// against. Defaults to mesh.AttrTexCoord0.
	TexCoordAttr string
}

func (o Options) texCoordAttr() string {
	if o.TexCoordAttr == "" {
		return mesh.AttrTexCoord0
	}
	return o.TexCoordAttr
}

// Upsample derives a child tile's mesh from a parent tile's mesh by
// UV-clipping the parent's non-skirt triangles to the child's quadrant
// and regenerating skirts (§4.B.2).
func Upsample(parent *mesh.Mesh, ellipsoid *quantizedmesh.Ellipsoid, parentRectangle quantizedmesh.GlobeRectangle, childLevel uint32, childX, childY uint32, opts Options) (*mesh.Mesh, error) {

	keepAboveU, keepAboveV := ChildQuadrant(childX, childY)
	childRect := childRectangle(parentRectangle, keepAboveU, keepAboveV)
	texCoordAttr := opts.texCoordAttr()

	out := &mesh.Mesh{}
	anySurvived := false

	for _, prim := range parent.Primitives {
		newPrim, ok := upsamplePrimitive(parent, prim, ellipsoid, childRect, childLevel, keepAboveU, keepAboveV, texCoordAttr, out)
		if !ok {
			continue
		}
		out.Primitives = append(out.Primitives, newPrim)
		anySurvived = true
	}

	if !anySurvived {
		return nil, ErrEmpty
	}
	return out, nil
}

func childRectangle(parent quantizedmesh.GlobeRectangle, keepAboveU, keepAboveV bool) quantizedmesh.GlobeRectangle {

	midLon := (parent.West + parent.East) / 2
	midLat := (parent.South + parent.North) / 2

	r := parent
	if keepAboveU {
		r.West = midLon
	} else {
		r.East = midLon
	}
	if keepAboveV {
		r.South = midLat
	} else {
		r.North = midLat
	}
	return r
}

// upsamplePrimitive clips one parent primitive's non-skirt triangles and
// regenerates its skirts, returning (nil, false) if the primitive cannot
// be clipped or every triangle is removed.
func upsamplePrimitive(parent *mesh.Mesh, prim *mesh.Primitive, ellipsoid *quantizedmesh.Ellipsoid, childRect quantizedmesh.GlobeRectangle, childLevel uint32, keepAboveU, keepAboveV bool, texCoordAttr string, out *mesh.Mesh) (*mesh.Primitive, bool) {
	// out accumulates cross-primitive buffers/views/accessors; see
	// assembleUpsampledPrimitive below.

	if prim.Mode != mesh.ModeTriangles || !prim.HasIndices {
		return nil, false
	}
	posIdx, hasPos := prim.Attributes[mesh.AttrPosition]
	texIdx, hasTex := prim.Attributes[texCoordAttr]
	if !hasPos || !hasTex {
		return nil, false
	}
	positions := readFloats(parent, posIdx, hasPos)
	texcoords := readFloats(parent, texIdx, hasTex)
	if positions == nil || texcoords == nil {
		return nil, false
	}
	normIdx, hasNorm := prim.Attributes[mesh.AttrNormal]
	normals := readFloats(parent, normIdx, hasNorm)

	indices := readIndices(parent, prim.Indices)
	if indices == nil {
		return nil, false
	}

	begin, count := uint32(0), uint32(len(indices))
	var center quantizedmesh.Vector3d
	var parentSkirt *mesh.SkirtMetadata
	if skirt, ok := mesh.SkirtFromPrimitive(prim); ok {
		begin, count = skirt.NoSkirtIndicesBegin, skirt.NoSkirtIndicesCount
		center = quantizedmesh.Vector3d{X: skirt.MeshCenter[0], Y: skirt.MeshCenter[1], Z: skirt.MeshCenter[2]}
		parentSkirt = skirt
	}

	m := newMaterializer(positions, texcoords, normals, keepAboveU, keepAboveV)

	parentUV := func(idx uint32) (u, v float64) {
		return float64(texcoords[idx*2]), float64(texcoords[idx*2+1])
	}

	for i := begin; i+3 <= begin+count; i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]

		pass1 := clipTriangleAgainstU(a, b, c, 0.5, keepAboveU, parentUV)
		if len(pass1.Items) < 3 {
			continue
		}

		var polys []*ClipList
		if len(pass1.Items) == 3 {
			polys = append(polys, clipTriangleAgainstV(pass1, 0, 1, 2, 0.5, keepAboveV, parentUV))
		} else {
			polys = append(polys,
				clipTriangleAgainstV(pass1, 0, 1, 2, 0.5, keepAboveV, parentUV),
				clipTriangleAgainstV(pass1, 0, 2, 3, 0.5, keepAboveV, parentUV),
			)
		}

		for _, poly := range polys {
			n := len(poly.Items)
			if n < 3 {
				continue
			}
			first := m.materialize(poly, 0)
			prevIdx := m.materialize(poly, 1)
			for k := 2; k < n; k++ {
				curIdx := m.materialize(poly, k)
				m.indices = append(m.indices, first, prevIdx, curIdx)
				prevIdx = curIdx
			}
		}
	}

	if len(m.indices) == 0 {
		return nil, false
	}

	fallbackHeight := 5 * quantizedmesh.MaxGeometricErrorAtLevel(ellipsoid, childLevel) * childRect.ComputeWidth()
	heights := childEdgeHeights(parentSkirt, keepAboveU, keepAboveV, fallbackHeight)
	noSkirtVertexCount := uint32(len(m.positions)) / 3
	noSkirtIndexCount := uint32(len(m.indices))

	minHeight, maxHeight := m.heightRange(ellipsoid, childRect, center)

	edges := classifyEdges(m.texcoords, noSkirtVertexCount)
	uvh := make([]quantizedmesh.VertexUVH, noSkirtVertexCount)
	for i := uint32(0); i < noSkirtVertexCount; i++ {
		h := ellipsoid.HeightAboveSurface(
			lerpAngle(childRect.West, childRect.East, float64(m.texcoords[i*2])),
			lerpAngle(childRect.South, childRect.North, float64(m.texcoords[i*2+1])),
			float64(m.positions[i*3])+center.X, float64(m.positions[i*3+1])+center.Y, float64(m.positions[i*3+2])+center.Z,
		)
		hRatio := 0.0
		if maxHeight > minHeight {
			hRatio = (h - minHeight) / (maxHeight - minHeight)
		}
		uvh[i] = quantizedmesh.VertexUVH{U: float64(m.texcoords[i*2]), V: float64(m.texcoords[i*2+1]), H: hRatio}
	}

	sorted := quantizedmesh.SortedEdges(edges, uvh)
	builder := quantizedmesh.NewSkirtBuilder(ellipsoid, childRect, minHeight, maxHeight, center, noSkirtVertexCount)

	copyAttrsAt := func(srcIdx uint32) map[string][]float32 {
		attrs := map[string][]float32{
			mesh.AttrTexCoord0: {m.texcoords[srcIdx*2], m.texcoords[srcIdx*2+1]},
		}
		if m.normals != nil {
			attrs[mesh.AttrNormal] = []float32{m.normals[srcIdx*3], m.normals[srcIdx*3+1], m.normals[srcIdx*3+2]}
		}
		return attrs
	}
	builder.AddEdge(sorted.West, uvh, heights.West, quantizedmesh.EdgeWest, copyAttrsAt)
	builder.AddEdge(sorted.South, uvh, heights.South, quantizedmesh.EdgeSouth, copyAttrsAt)
	builder.AddEdge(sorted.East, uvh, heights.East, quantizedmesh.EdgeEast, copyAttrsAt)
	builder.AddEdge(sorted.North, uvh, heights.North, quantizedmesh.EdgeNorth, copyAttrsAt)

	logger.Default.Debug("upsample: level %d child (keepAboveU=%v, keepAboveV=%v) produced %d skirt vertices", childLevel, keepAboveU, keepAboveV, len(builder.Positions())/3)

	ancillary := childAncillary(prim, keepAboveU, keepAboveV)
	return assembleUpsampledPrimitive(out, m, builder, noSkirtVertexCount, noSkirtIndexCount, center, heights, ancillary), true
}

// childEdgeHeights computes the four skirt heights a child tile should use,
// per §4.B.2 step 4: an edge the child shares with its parent (west child
// keeps the parent's west edge, etc.) inherits that parent edge's stored
// skirt height; the two edges newly created by clipping the parent in half
// have no corresponding parent skirt and fall back to half the smallest of
// the parent's four heights. Root tiles (no parent skirt metadata) use a
// single geometric-error-derived height on all four sides.
func childEdgeHeights(parentSkirt *mesh.SkirtMetadata, keepAboveU, keepAboveV bool, fallback float64) quantizedmesh.EdgeHeights {

	if parentSkirt == nil {
		return quantizedmesh.EdgeHeights{West: fallback, South: fallback, East: fallback, North: fallback}
	}

	minParent := parentSkirt.SkirtWestHeight
	for _, h := range []float64{parentSkirt.SkirtSouthHeight, parentSkirt.SkirtEastHeight, parentSkirt.SkirtNorthHeight} {
		if h < minParent {
			minParent = h
		}
	}
	newEdgeHeight := 0.5 * minParent

	var h quantizedmesh.EdgeHeights
	if keepAboveU {
		h.West = newEdgeHeight
		h.East = parentSkirt.SkirtEastHeight
	} else {
		h.West = parentSkirt.SkirtWestHeight
		h.East = newEdgeHeight
	}
	if keepAboveV {
		h.South = newEdgeHeight
		h.North = parentSkirt.SkirtNorthHeight
	} else {
		h.South = parentSkirt.SkirtSouthHeight
		h.North = newEdgeHeight
	}
	return h
}

func lerpAngle(a, b, t float64) float64 { return quantizedmesh.Lerp(a, b, t) }

// childAncillary computes the child primitive's water-mask carry-through
// (§4.B.2 step 6): the OnlyWater/OnlyLand flags pass straight through from
// the parent unchanged, and the shared water-mask texture's translation and
// scale are rescaled into the child's quadrant of the parent's footprint.
// Returns nil when the parent carries no overlay metadata at all.
func childAncillary(prim *mesh.Primitive, keepAboveU, keepAboveV bool) *mesh.OverlayMetadata {

	parentAncillary, ok := mesh.OverlayFromPrimitive(prim)
	if !ok {
		return nil
	}

	xOdd, yOdd := 0.0, 0.0
	if keepAboveU {
		xOdd = 1
	}
	if keepAboveV {
		yOdd = 1
	}

	return &mesh.OverlayMetadata{
		OnlyWater:             parentAncillary.OnlyWater,
		OnlyLand:              parentAncillary.OnlyLand,
		WaterMaskTranslationX: parentAncillary.WaterMaskTranslationX + 0.5*parentAncillary.WaterMaskScaleX*xOdd,
		WaterMaskTranslationY: parentAncillary.WaterMaskTranslationY + 0.5*parentAncillary.WaterMaskScaleY*yOdd,
		WaterMaskScaleX:       0.5 * parentAncillary.WaterMaskScaleX,
		WaterMaskScaleY:       0.5 * parentAncillary.WaterMaskScaleY,
	}
}

// classifyEdges finds the non-skirt vertices sitting on each of the
// child tile's four boundaries, identified by their rescaled UV landing
// on 0 or 1 (§4.B.2 step 4: skirts are regenerated on all four sides).
func classifyEdges(texcoords []float32, vertexCount uint32) quantizedmesh.EdgeIndices {

	var edges quantizedmesh.EdgeIndices
	for i := uint32(0); i < vertexCount; i++ {
		u, v := texcoords[i*2], texcoords[i*2+1]
		if u <= edgeEpsilon {
			edges.West = append(edges.West, i)
		}
		if u >= 1-edgeEpsilon {
			edges.East = append(edges.East, i)
		}
		if v <= edgeEpsilon {
			edges.South = append(edges.South, i)
		}
		if v >= 1-edgeEpsilon {
			edges.North = append(edges.North, i)
		}
	}
	return edges
}
