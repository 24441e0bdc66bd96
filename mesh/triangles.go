package mesh

// IterateTriangles calls fn once per triangle encoded by indices under
// the given primitive mode, respecting mode-specific vertex ordering
// (§4.B.1 step 7): plain TRIANGLES triples up; TRIANGLE_STRIP reverses
// the winding of every other triangle so the whole strip stays
// consistently wound; TRIANGLE_FAN always reuses indices[0] as the first
// vertex. Any other mode calls fn zero times.
func IterateTriangles(mode int, indices []uint32, fn func(i0, i1, i2 uint32)) {

	switch mode {
	case ModeTriangles:
		for i := 0; i+2 < len(indices); i += 3 {
			fn(indices[i], indices[i+1], indices[i+2])
		}
	case ModeTriangleStrip:
		for i := 0; i+2 < len(indices); i++ {
			if i%2 == 0 {
				fn(indices[i], indices[i+1], indices[i+2])
			} else {
				fn(indices[i+1], indices[i], indices[i+2])
			}
		}
	case ModeTriangleFan:
		if len(indices) < 3 {
			return
		}
		apex := indices[0]
		for i := 1; i+1 < len(indices); i++ {
			fn(apex, indices[i], indices[i+1])
		}
	}
}
