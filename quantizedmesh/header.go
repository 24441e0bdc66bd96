package quantizedmesh

import (
	"encoding/binary"
	"math"
)

// HeaderByteLength is the fixed size of the quantized-mesh tile header
// (§3, §6). It cannot be taken as sizeof(Header) in Go any more than in
// the original C++, since struct padding would disagree with the wire
// layout; it is read field by field instead.
const HeaderByteLength = 92

// extensionTLVHeaderLength is the size of one {u8 id, u32 length} tuple
// preceding each extension block's payload (§6).
const extensionTLVHeaderLength = 5

// Header is the fixed 92-byte little-endian tile header (§3).
type Header struct {
	CenterX, CenterY, CenterZ float64

	MinimumHeight, MaximumHeight float32

	BoundingSphereCenterX, BoundingSphereCenterY, BoundingSphereCenterZ float64
	BoundingSphereRadius                                                float64

	HorizonOcclusionPointX, HorizonOcclusionPointY, HorizonOcclusionPointZ float64

	VertexCount uint32
}

// parseHeader reads the fixed 92-byte header from the front of r,
// leaving r positioned just past it so the caller can continue decoding
// the vertex and index streams that follow (§7: "truncated header").
func parseHeader(r *leReader) (*Header, error) {

	if len(r.data)-r.pos < HeaderByteLength {
		return nil, errTruncated("header")
	}

	var h Header
	h.CenterX = r.f64()
	h.CenterY = r.f64()
	h.CenterZ = r.f64()
	h.MinimumHeight = r.f32()
	h.MaximumHeight = r.f32()
	h.BoundingSphereCenterX = r.f64()
	h.BoundingSphereCenterY = r.f64()
	h.BoundingSphereCenterZ = r.f64()
	h.BoundingSphereRadius = r.f64()
	h.HorizonOcclusionPointX = r.f64()
	h.HorizonOcclusionPointY = r.f64()
	h.HorizonOcclusionPointZ = r.f64()
	h.VertexCount = r.u32()
	return &h, r.err
}

// leReader sequentially decodes little-endian fields from a byte slice,
// tracking the first error encountered (mirrors the teacher's GLB chunk
// reader, generalized from io.Reader + binary.Read to an in-memory
// cursor since tiles are always decoded from a single byte buffer, never
// streamed).
type leReader struct {
	data []byte
	pos  int
	err  error
}

func newLEReader(data []byte) *leReader {

	return &leReader{data: data}
}

func (r *leReader) need(n int) bool {

	if r.err != nil {
		return false
	}
	if r.pos+n > len(r.data) {
		r.err = errTruncated("tile buffer")
		return false
	}
	return true
}

func (r *leReader) u16() uint16 {

	if !r.need(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v
}

func (r *leReader) u32() uint32 {

	if !r.need(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func (r *leReader) f32() float32 {

	return math.Float32frombits(r.u32())
}

func (r *leReader) f64() float64 {

	if !r.need(8) {
		return 0
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(r.data[r.pos:]))
	r.pos += 8
	return v
}

func (r *leReader) bytes(n int) []byte {

	if !r.need(n) {
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}
