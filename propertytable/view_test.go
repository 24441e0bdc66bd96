package propertytable

import "testing"

func TestBooleanScalarDecode(t *testing.T) {

	class := &ClassProperty{Type: BaseBoolean}
	property := &PropertyTableProperty{Values: []byte{0b10101010}}
	view := NewView(property, class, 8)
	if view.Status() != Valid {
		t.Fatalf("status = %v, want Valid", view.Status())
	}

	want := []bool{false, true, false, true, false, true, false, true}
	for i, w := range want {
		got := view.GetRaw(i)
		if got != w {
			t.Fatalf("GetRaw(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestStringOffsetOutOfBoundsRejected(t *testing.T) {

	class := &ClassProperty{Type: BaseString}
	property := &PropertyTableProperty{
		Values:           []byte("foo"),
		HasStringOffsets: true,
		StringOffsets:    []byte{0, 3, 9}, // last offset overruns a 3-byte values buffer
		StringOffsetType: OffsetUint8,
	}
	view := NewView(property, class, 2)
	if view.Status() != StringOffsetOutOfBounds {
		t.Fatalf("status = %v, want StringOffsetOutOfBounds", view.Status())
	}
}

func TestArrayOffsetOutOfBoundsRejected(t *testing.T) {

	class := &ClassProperty{Type: BaseScalar, ComponentType: ComponentUint8, Array: true}
	property := &PropertyTableProperty{
		Values:          []byte{1, 2, 3},
		HasArrayOffsets: true,
		ArrayOffsets:    []byte{0, 2, 5}, // last offset (5 elements) overruns a 3-byte values buffer
		ArrayOffsetType: OffsetUint8,
	}
	view := NewView(property, class, 2)
	if view.Status() != ArrayOffsetOutOfBounds {
		t.Fatalf("status = %v, want ArrayOffsetOutOfBounds", view.Status())
	}
}

func TestGetRawIdempotent(t *testing.T) {

	class := &ClassProperty{Type: BaseScalar, ComponentType: ComponentUint8}
	property := &PropertyTableProperty{Values: []byte{5, 10, 15}}
	view := NewView(property, class, 3)
	if view.Status() != Valid {
		t.Fatalf("status = %v, want Valid", view.Status())
	}

	a := view.GetRaw(1)
	b := view.GetRaw(1)
	if a != b {
		t.Fatalf("GetRaw(1) not idempotent: %v != %v", a, b)
	}
}

func TestNormalizedUnsignedInteger(t *testing.T) {

	class := &ClassProperty{Type: BaseScalar, ComponentType: ComponentUint8, Normalized: true}
	property := &PropertyTableProperty{Values: []byte{255, 0, 128}}
	view := NewView(property, class, 3)

	got, ok := view.Get(0)
	if !ok || got.(float64) != 1 {
		t.Fatalf("Get(0) = %v, %v, want 1, true", got, ok)
	}
	got, ok = view.Get(1)
	if !ok || got.(float64) != 0 {
		t.Fatalf("Get(1) = %v, %v, want 0, true", got, ok)
	}
}

func TestNormalizedSignedIntegerClampsAtMinusOne(t *testing.T) {

	class := &ClassProperty{Type: BaseScalar, ComponentType: ComponentInt8, Normalized: true}
	property := &PropertyTableProperty{Values: []byte{0x80}} // -128, MAX magnitude is 127
	view := NewView(property, class, 1)

	got, ok := view.Get(0)
	if !ok || got.(float64) != -1 {
		t.Fatalf("Get(0) = %v, %v, want -1, true", got, ok)
	}
}

func TestNoDataReturnsDefault(t *testing.T) {

	class := &ClassProperty{
		Type:          BaseScalar,
		ComponentType: ComponentUint8,
		NoData:        uint64(255),
		Default:       float64(-1),
	}
	property := &PropertyTableProperty{Values: []byte{10, 255}}
	view := NewView(property, class, 2)

	got, ok := view.Get(1)
	if !ok || got.(float64) != -1 {
		t.Fatalf("Get(1) = %v, %v, want default -1, true", got, ok)
	}
}

func TestInvalidNormalizationOnNonIntegerYieldsSentinel(t *testing.T) {

	class := &ClassProperty{Type: BaseScalar, ComponentType: ComponentFloat32, Normalized: true}
	view := NewView(&PropertyTableProperty{Values: []byte{0, 0, 0, 0}}, class, 1)
	if view.Status() != InvalidNormalization {
		t.Fatalf("status = %v, want InvalidNormalization", view.Status())
	}
	if view.Size() != 0 {
		t.Fatalf("sentinel view Size() = %d, want 0", view.Size())
	}
}

func TestStringDecode(t *testing.T) {

	class := &ClassProperty{Type: BaseString}
	property := &PropertyTableProperty{
		Values:           []byte("fooBarBaz"),
		HasStringOffsets: true,
		StringOffsets:    []byte{0, 3, 6, 9},
		StringOffsetType: OffsetUint8,
	}
	view := NewView(property, class, 3)
	if view.Status() != Valid {
		t.Fatalf("status = %v, want Valid", view.Status())
	}
	if view.GetRaw(0) != "foo" || view.GetRaw(1) != "Bar" || view.GetRaw(2) != "Baz" {
		t.Fatalf("string decode mismatch: %v %v %v", view.GetRaw(0), view.GetRaw(1), view.GetRaw(2))
	}
}

func TestFixedLengthArrayDecode(t *testing.T) {

	class := &ClassProperty{Type: BaseScalar, ComponentType: ComponentUint8, Array: true, Count: 3}
	property := &PropertyTableProperty{Values: []byte{1, 2, 3, 4, 5, 6}}
	view := NewView(property, class, 2)
	if view.Status() != Valid {
		t.Fatalf("status = %v, want Valid", view.Status())
	}
	row0 := view.GetRaw(0).([]interface{})
	if row0[0] != uint64(1) || row0[1] != uint64(2) || row0[2] != uint64(3) {
		t.Fatalf("row 0 = %v", row0)
	}
}
