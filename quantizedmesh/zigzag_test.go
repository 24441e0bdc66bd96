package quantizedmesh

import "testing"

func TestZigZagRoundTrip(t *testing.T) {

	values := []int32{0, 1, -1, 2, -2, 32767, -32768, 100000, -100000}
	for _, v := range values {
		encoded := ZigZagEncode(v)
		if encoded < 0 {
			t.Fatalf("ZigZagEncode(%d) = %d, want non-negative", v, encoded)
		}
		decoded := ZigZagDecode(encoded)
		if decoded != v {
			t.Fatalf("round trip of %d = %d", v, decoded)
		}
	}
}

func TestZigZagSmallMagnitudeSmallCode(t *testing.T) {

	if ZigZagEncode(0) != 0 {
		t.Fatalf("ZigZagEncode(0) = %d, want 0", ZigZagEncode(0))
	}
	if ZigZagEncode(-1) != 1 {
		t.Fatalf("ZigZagEncode(-1) = %d, want 1", ZigZagEncode(-1))
	}
	if ZigZagEncode(1) != 2 {
		t.Fatalf("ZigZagEncode(1) = %d, want 2", ZigZagEncode(1))
	}
}

func TestHighWatermarkRoundTrip(t *testing.T) {

	indices := []uint32{0, 1, 2, 1, 2, 3, 0, 2, 3}
	encoded := EncodeHighWatermark(indices)
	decoded := DecodeHighWatermark(encoded)
	if len(decoded) != len(indices) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(indices))
	}
	for i := range indices {
		if decoded[i] != indices[i] {
			t.Fatalf("index %d = %d, want %d", i, decoded[i], indices[i])
		}
	}
}

func TestHighWatermarkScenario(t *testing.T) {

	// Triangle (0,1,2) then (0,2,3): the first three indices each
	// introduce a new high watermark and encode as 0; the last three
	// reference already-seen indices and encode as the watermark's
	// distance back to them.
	indices := []uint32{0, 1, 2, 0, 2, 3}
	encoded := EncodeHighWatermark(indices)
	want := []uint32{0, 0, 0, 3, 1, 0}
	for i := range want {
		if encoded[i] != want[i] {
			t.Fatalf("code[%d] = %d, want %d", i, encoded[i], want[i])
		}
	}
}
