package upsample

import (
	"encoding/binary"
	"math"

	"github.com/cesiumgo/terrain/mesh"
)

// readFloats decodes a VEC-N f32 accessor into a flat component stream.
func readFloats(m *mesh.Mesh, accessorIndex int, hasAccessor bool) []float32 {

	if !hasAccessor {
		return nil
	}
	a := m.Accessor(accessorIndex)
	if a == nil || a.ComponentType != mesh.ComponentFloat {
		return nil
	}
	buf := m.AccessorBytes(a)
	n := mesh.ComponentCount[a.Type] * a.Count
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out
}

// readIndices decodes an index accessor (u16 or u32) into []uint32.
func readIndices(m *mesh.Mesh, accessorIndex int) []uint32 {

	a := m.Accessor(accessorIndex)
	if a == nil {
		return nil
	}
	buf := m.AccessorBytes(a)
	out := make([]uint32, a.Count)
	switch a.ComponentType {
	case mesh.ComponentUnsignedInt:
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(buf[i*4:])
		}
	case mesh.ComponentUnsignedShort:
		for i := range out {
			out[i] = uint32(binary.LittleEndian.Uint16(buf[i*2:]))
		}
	}
	return out
}

func float32sToBytes(values []float32) []byte {

	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func indicesToBytes(values []uint32, componentType int) []byte {

	if componentType == mesh.ComponentUnsignedInt {
		out := make([]byte, len(values)*4)
		for i, v := range values {
			binary.LittleEndian.PutUint32(out[i*4:], v)
		}
		return out
	}
	out := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}

func minMaxVec(values []float32, components int) (min, max []float64) {

	if len(values) == 0 {
		return nil, nil
	}
	min = make([]float64, components)
	max = make([]float64, components)
	for k := 0; k < components; k++ {
		min[k] = float64(values[k])
		max[k] = float64(values[k])
	}
	for i := components; i < len(values); i += components {
		for k := 0; k < components; k++ {
			v := float64(values[i+k])
			if v < min[k] {
				min[k] = v
			}
			if v > max[k] {
				max[k] = v
			}
		}
	}
	return min, max
}
