// Package upsample implements raster-overlay upsampling (§4.B.2): given a
// parent tile mesh with skirts and a child quadtree index, it clips the
// parent's non-skirt triangles to the child's UV quadrant and regenerates
// skirts for the smaller tile.
package upsample

// ClipVertexKind tags what a ClipVertex refers to.
type ClipVertexKind int

const (
	// ClipDirect is an unmodified vertex of the original parent mesh.
	ClipDirect ClipVertexKind = iota
	// ClipInterpolated is a fresh vertex at parameter T between the
	// entries FirstItem and SecondItem of the *parent* ClipList (the
	// list this pass clipped from) — which may themselves be direct,
	// back-referenced, or interpolated, so resolving it recurses.
	ClipInterpolated
	// ClipBack refers to index Index of the clip list one pass back,
	// rather than overloading a negative index the way the original
	// implementation does (§9 redesign note).
	ClipBack
)

// ClipVertex is one vertex of a clipped polygon.
type ClipVertex struct {
	Kind ClipVertexKind

	// Index is the parent-mesh vertex index when Kind == ClipDirect, or
	// the index into the previous pass's ClipList.Items when
	// Kind == ClipBack.
	Index uint32

	// FirstItem, SecondItem and T describe an interpolated vertex: it
	// lies at parameter T between entries FirstItem and SecondItem of
	// the *parent* list (First at T=0, Second at T=1). Only meaningful
	// when Kind == ClipInterpolated.
	FirstItem, SecondItem uint32
	T                     float64
}

// ClipList is one pass's output polygon, plus a link back to the list it
// was clipped from so ClipBack and ClipInterpolated entries can be
// resolved without flattening nested interpolations prematurely.
type ClipList struct {
	Items  []ClipVertex
	Parent *ClipList
}

// uvOf resolves entry i's (u, v), recursing through ClipBack/
// ClipInterpolated chains down to the original parent-mesh vertices.
func uvOf(list *ClipList, i int, parentUV func(idx uint32) (u, v float64)) (float64, float64) {

	cv := list.Items[i]
	switch cv.Kind {
	case ClipDirect:
		return parentUV(cv.Index)
	case ClipBack:
		return uvOf(list.Parent, int(cv.Index), parentUV)
	default: // ClipInterpolated
		u1, v1 := uvOf(list.Parent, int(cv.FirstItem), parentUV)
		u2, v2 := uvOf(list.Parent, int(cv.SecondItem), parentUV)
		return u1 + (u2-u1)*cv.T, v1 + (v2-v1)*cv.T
	}
}

// resolveDirectIndex reports the original parent-mesh vertex index entry
// i ultimately refers to, if it is an unmodified vertex (possibly passed
// through any number of ClipBack hops) rather than an interpolated one.
func resolveDirectIndex(list *ClipList, i int) (uint32, bool) {

	cv := list.Items[i]
	switch cv.Kind {
	case ClipDirect:
		return cv.Index, true
	case ClipBack:
		return resolveDirectIndex(list.Parent, int(cv.Index))
	default:
		return 0, false
	}
}

// side returns the signed distance of a value from threshold, positive
// meaning "on the keep-above side" when keepAbove is true.
func side(value, threshold float64, keepAbove bool) float64 {

	d := value - threshold
	if keepAbove {
		return d
	}
	return -d
}

// clipTriangleAgainstU clips the parent triangle (a, b, c) against the
// half-plane u=threshold, keeping the side keepAboveU indicates (§4.B.2
// step 3a). The result has 0, 3 or 4 items.
func clipTriangleAgainstU(a, b, c uint32, threshold float64, keepAboveU bool, parentUV func(idx uint32) (u, v float64)) *ClipList {

	input := &ClipList{}
	for _, idx := range []uint32{a, b, c} {
		input.Items = append(input.Items, ClipVertex{Kind: ClipDirect, Index: idx})
	}
	return clipPolygon(input, threshold, keepAboveU, true, parentUV)
}

// clipTriangleAgainstV clips a pass-one fan triangle (three items drawn
// from list at indices i0, i1, i2) against v=threshold (§4.B.2 step 3b).
func clipTriangleAgainstV(list *ClipList, i0, i1, i2 int, threshold float64, keepAboveV bool, parentUV func(idx uint32) (u, v float64)) *ClipList {

	input := &ClipList{Parent: list}
	for _, i := range []int{i0, i1, i2} {
		input.Items = append(input.Items, ClipVertex{Kind: ClipBack, Index: uint32(i)})
	}
	return clipPolygon(input, threshold, keepAboveV, false, parentUV)
}

// clipPolygon runs one Sutherland-Hodgman pass of a (2D convex, 3- or
// 4-vertex) input polygon against a single axis-aligned half-plane.
// axisU selects whether the threshold applies to u (true) or v (false).
// Output items that merely pass an input vertex through unmodified are
// encoded as ClipBack into input; crossing points are fresh
// ClipInterpolated vertices referencing the two input-list entries the
// crossing edge ran between — resolved lazily, so a crossing derived
// from an already-interpolated endpoint is never flattened or
// approximated.
func clipPolygon(input *ClipList, threshold float64, keepAbove bool, axisU bool, parentUV func(idx uint32) (u, v float64)) *ClipList {

	n := len(input.Items)
	if n == 0 {
		return &ClipList{Parent: input.Parent}
	}

	coord := func(i int) float64 {
		u, v := uvOf(input, i, parentUV)
		if axisU {
			return u
		}
		return v
	}

	out := &ClipList{Parent: input}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		di, dj := side(coord(i), threshold, keepAbove), side(coord(j), threshold, keepAbove)

		if di >= 0 {
			out.Items = append(out.Items, ClipVertex{Kind: ClipBack, Index: uint32(i)})
		}
		if (di > 0 && dj < 0) || (di < 0 && dj > 0) {
			t := di / (di - dj)
			out.Items = append(out.Items, ClipVertex{Kind: ClipInterpolated, FirstItem: uint32(i), SecondItem: uint32(j), T: t})
		}
	}
	return out
}
