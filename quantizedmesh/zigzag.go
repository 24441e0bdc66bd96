package quantizedmesh

// ZigZagEncode maps a signed integer to an unsigned one so that small
// magnitude values (positive or negative) encode to small non-negative
// codes (§8, GLOSSARY).
func ZigZagEncode(n int32) int32 {

	return (n << 1) ^ (n >> 31)
}

// ZigZagDecode reverses ZigZagEncode.
func ZigZagDecode(code int32) int32 {

	return (code >> 1) ^ -(code & 1)
}

// EncodeHighWatermark encodes a sequence of triangle indices using
// high-watermark delta coding: the highest index seen so far is tracked,
// and each index is emitted as highest-index (§4.B.1 step 4, §8 scenario
// 2). Indices must each be <= highest+1 relative to the running
// watermark, which always holds for indices produced by a correctly
// decoded or freshly built triangle mesh.
func EncodeHighWatermark(indices []uint32) []uint32 {

	encoded := make([]uint32, len(indices))
	var highest uint32
	for i, idx := range indices {
		encoded[i] = highest - idx
		if idx == highest {
			highest++
		}
	}
	return encoded
}

// DecodeHighWatermark reverses EncodeHighWatermark.
func DecodeHighWatermark(codes []uint32) []uint32 {

	decoded := make([]uint32, len(codes))
	var highest uint32
	for i, code := range codes {
		idx := highest - code
		decoded[i] = idx
		if code == 0 {
			highest++
		}
	}
	return decoded
}
