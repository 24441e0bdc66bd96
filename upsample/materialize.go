package upsample

import "github.com/cesiumgo/terrain/quantizedmesh"

// materializer builds the new vertex buffers for one clipped primitive.
// A parent vertex index maps to at most one new vertex (vertexMap);
// interpolated vertices are always fresh (§4.B.2 step 4c).
type materializer struct {
	parentPositions, parentTexcoords, parentNormals []float32
	keepAboveU, keepAboveV                          bool

	vertexMap map[uint32]uint32
	positions []float32
	texcoords []float32
	normals   []float32
	indices   []uint32
}

func newMaterializer(positions, texcoords, normals []float32, keepAboveU, keepAboveV bool) *materializer {
	return &materializer{
		parentPositions: positions,
		parentTexcoords: texcoords,
		parentNormals:   normals,
		keepAboveU:      keepAboveU,
		keepAboveV:      keepAboveV,
		vertexMap:       map[uint32]uint32{},
	}
}

func (m *materializer) rescale(u, v float32) (float32, float32) {

	nu, nv := u, v
	if m.keepAboveU {
		nu = (u - 0.5) * 2
	} else {
		nu = u * 2
	}
	if m.keepAboveV {
		nv = (v - 0.5) * 2
	} else {
		nv = v * 2
	}
	return clamp01(nu), clamp01(nv)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp32(a, b float32, t float64) float32 {
	return a + float32(t)*(b-a)
}

// resolveVec recursively evaluates list.Items[i] against a flat parent
// attribute stream of comps components per element, following ClipBack
// hops and blending ClipInterpolated entries without ever flattening a
// chain of two interpolations into a single wrong lerp.
func resolveVec(list *ClipList, i int, parentArr []float32, comps int) []float32 {

	cv := list.Items[i]
	switch cv.Kind {
	case ClipDirect:
		out := make([]float32, comps)
		copy(out, parentArr[int(cv.Index)*comps:int(cv.Index)*comps+comps])
		return out
	case ClipBack:
		return resolveVec(list.Parent, int(cv.Index), parentArr, comps)
	default: // ClipInterpolated
		a := resolveVec(list.Parent, int(cv.FirstItem), parentArr, comps)
		b := resolveVec(list.Parent, int(cv.SecondItem), parentArr, comps)
		out := make([]float32, comps)
		for k := range out {
			out[k] = lerp32(a[k], b[k], cv.T)
		}
		return out
	}
}

// materialize resolves clip list item i to a new vertex index. An entry
// that ultimately refers to an unmodified parent vertex is deduplicated
// through vertexMap; anything touched by an interpolation is always
// fresh (§4.B.2 step 4c).
func (m *materializer) materialize(list *ClipList, i int) uint32 {

	if parentIdx, ok := resolveDirectIndex(list, i); ok {
		if existing, seen := m.vertexMap[parentIdx]; seen {
			return existing
		}
		newIdx := uint32(len(m.positions) / 3)
		m.positions = append(m.positions, m.parentPositions[parentIdx*3:parentIdx*3+3]...)
		u, v := m.rescale(m.parentTexcoords[parentIdx*2], m.parentTexcoords[parentIdx*2+1])
		m.texcoords = append(m.texcoords, u, v)
		if m.parentNormals != nil {
			m.normals = append(m.normals, m.parentNormals[parentIdx*3:parentIdx*3+3]...)
		}
		m.vertexMap[parentIdx] = newIdx
		return newIdx
	}

	newIdx := uint32(len(m.positions) / 3)
	m.positions = append(m.positions, resolveVec(list, i, m.parentPositions, 3)...)
	uv := resolveVec(list, i, m.parentTexcoords, 2)
	ru, rv := m.rescale(uv[0], uv[1])
	m.texcoords = append(m.texcoords, ru, rv)
	if m.parentNormals != nil {
		m.normals = append(m.normals, resolveVec(list, i, m.parentNormals, 3)...)
	}
	return newIdx
}

func (m *materializer) Positions() []float32 { return m.positions }

// heightRange computes the min/max world-space height, above the
// ellipsoid surface, of every non-skirt vertex this materializer has
// produced so far — used as the height range the skirt builder and the
// per-vertex height ratios are expressed in. Accessor min/max are computed
// separately, from the packed positions.
func (m *materializer) heightRange(ellipsoid *quantizedmesh.Ellipsoid, rect quantizedmesh.GlobeRectangle, center quantizedmesh.Vector3d) (min, max float64) {

	n := len(m.positions) / 3
	if n == 0 {
		return 0, 0
	}
	for i := 0; i < n; i++ {
		lon := quantizedmesh.Lerp(rect.West, rect.East, float64(m.texcoords[i*2]))
		lat := quantizedmesh.Lerp(rect.South, rect.North, float64(m.texcoords[i*2+1]))
		h := ellipsoid.HeightAboveSurface(lon, lat,
			float64(m.positions[i*3])+center.X, float64(m.positions[i*3+1])+center.Y, float64(m.positions[i*3+2])+center.Z)
		if i == 0 || h < min {
			min = h
		}
		if i == 0 || h > max {
			max = h
		}
	}
	return min, max
}
