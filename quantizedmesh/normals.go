package quantizedmesh

import (
	"github.com/cesiumgo/terrain/math32"
	"github.com/cesiumgo/terrain/mesh"
)

// octDecode decodes a unit vector from its 2-byte octahedral encoding
// (GLOSSARY: "Oct encoding").
func octDecode(x, y byte) *math32.Vector3 {

	fx := float32(x)/255*2 - 1
	fy := float32(y)/255*2 - 1

	z := 1 - (abs32(fx) + abs32(fy))
	v := math32.NewVector3(fx, fy, z)
	if z < 0 {
		nx := (1 - abs32(fy)) * sign32(fx)
		ny := (1 - abs32(fx)) * sign32(fy)
		v.X, v.Y = nx, ny
	}
	return v.Normalize()
}

func abs32(v float32) float32 {

	if v < 0 {
		return -v
	}
	return v
}

func sign32(v float32) float32 {

	if v < 0 {
		return -1
	}
	return 1
}

// decodeOctEncodedNormals decodes vertexCount 2-byte oct-encoded normals
// into a flat VEC3 f32 array.
func decodeOctEncodedNormals(buf []byte, vertexCount uint32) []float32 {

	out := make([]float32, vertexCount*3)
	for i := uint32(0); i < vertexCount; i++ {
		n := octDecode(buf[i*2], buf[i*2+1])
		out[i*3] = n.X
		out[i*3+1] = n.Y
		out[i*3+2] = n.Z
	}
	return out
}

// synthesizeNormals computes per-vertex normals for a triangle mesh when
// the tile carries no oct-encoded normal extension (§4.B.1 step 7): each
// triangle's unnormalized cross product is accumulated onto its three
// vertices, then every vertex's accumulator is normalized, with
// near-zero accumulators (degenerate/unused vertices) left at zero
// rather than amplified into a spurious unit vector.
func synthesizeNormals(mode int, positions []float32, indices []uint32, vertexCount uint32) []float32 {

	normals := make([]float32, vertexCount*3)

	p := func(i uint32) *math32.Vector3 {
		return math32.NewVector3(positions[i*3], positions[i*3+1], positions[i*3+2])
	}
	accumulate := func(i uint32, n *math32.Vector3) {
		normals[i*3] += n.X
		normals[i*3+1] += n.Y
		normals[i*3+2] += n.Z
	}

	mesh.IterateTriangles(mode, indices, func(i0, i1, i2 uint32) {
		p0, p1, p2 := p(i0), p(i1), p(i2)
		e1 := math32.NewVector3(0, 0, 0).SubVectors(p1, p0)
		e2 := math32.NewVector3(0, 0, 0).SubVectors(p2, p0)
		n := math32.NewVector3(0, 0, 0).CrossVectors(e1, e2)
		accumulate(i0, n)
		accumulate(i1, n)
		accumulate(i2, n)
	})

	for i := uint32(0); i < vertexCount; i++ {
		n := math32.NewVector3(normals[i*3], normals[i*3+1], normals[i*3+2])
		if n.Length() < 1e-8 {
			n.Set(0, 0, 0)
		} else {
			n.Normalize()
		}
		normals[i*3], normals[i*3+1], normals[i*3+2] = n.X, n.Y, n.Z
	}
	return normals
}
