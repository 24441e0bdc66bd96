// Package propertytable implements a zero-copy, strongly-typed view over
// the column-oriented binary tables attached to a mesh through the
// structural-metadata extension (§4.A). Schema and property-table JSON
// are assumed already parsed by the caller — this package starts from a
// resolved ClassProperty and PropertyTableProperty plus the raw buffer
// bytes they reference, and never touches JSON itself.
package propertytable

// BaseType is the structural shape of a class property (§3).
type BaseType int

const (
	BaseScalar BaseType = iota
	BaseVec2
	BaseVec3
	BaseVec4
	BaseMat2
	BaseMat3
	BaseMat4
	BaseBoolean
	BaseString
	BaseEnum
)

// componentsPerElement maps a structural base type to how many scalar
// components make up one element. Boolean, string and enum have no entry
// (a lookup yields 0): they carry no numeric component count and decode
// by other rules.
var componentsPerElement = map[BaseType]int{
	BaseScalar: 1,
	BaseVec2:   2,
	BaseVec3:   3,
	BaseVec4:   4,
	BaseMat2:   4,
	BaseMat3:   9,
	BaseMat4:   16,
}

// ComponentType is the storage type backing a numeric base type (§3).
type ComponentType int

const (
	ComponentNone ComponentType = iota
	ComponentInt8
	ComponentUint8
	ComponentInt16
	ComponentUint16
	ComponentInt32
	ComponentUint32
	ComponentInt64
	ComponentUint64
	ComponentFloat32
	ComponentFloat64
)

// componentByteSize maps a component type to its size in bytes.
var componentByteSize = map[ComponentType]int{
	ComponentInt8:    1,
	ComponentUint8:   1,
	ComponentInt16:   2,
	ComponentUint16:  2,
	ComponentInt32:   4,
	ComponentUint32:  4,
	ComponentInt64:   8,
	ComponentUint64:  8,
	ComponentFloat32: 4,
	ComponentFloat64: 8,
}

// componentSigned reports whether a component type is a signed integer,
// used by the normalized-integer decode rule (§4.A).
func componentSigned(ct ComponentType) bool {
	switch ct {
	case ComponentInt8, ComponentInt16, ComponentInt32, ComponentInt64:
		return true
	default:
		return false
	}
}

func componentFloating(ct ComponentType) bool {
	return ct == ComponentFloat32 || ct == ComponentFloat64
}

// componentMaxMagnitude is the MAX used by the normalized-integer decode
// rule: the largest magnitude representable by the component type.
var componentMaxMagnitude = map[ComponentType]float64{
	ComponentInt8:   127,
	ComponentUint8:  255,
	ComponentInt16:  32767,
	ComponentUint16: 65535,
	ComponentInt32:  2147483647,
	ComponentUint32: 4294967295,
	ComponentInt64:  9223372036854775807,
	ComponentUint64: 18446744073709551615,
}

// OffsetType is the integer width of an array-offset or string-offset
// stream.
type OffsetType int

const (
	OffsetUint8 OffsetType = iota
	OffsetUint16
	OffsetUint32
	OffsetUint64
)

func (t OffsetType) byteSize() int {
	switch t {
	case OffsetUint8:
		return 1
	case OffsetUint16:
		return 2
	case OffsetUint32:
		return 4
	case OffsetUint64:
		return 8
	default:
		return 0
	}
}

// ClassProperty is a resolved structural-metadata class property
// descriptor (§3).
type ClassProperty struct {
	Type          BaseType
	ComponentType ComponentType
	Array         bool
	Count         int // fixed array length, 0 if variable-length
	Normalized    bool

	Default interface{}
	NoData  interface{}
	Offset  interface{}
	Scale   interface{}
}

// PropertyTableProperty describes where one property's column lives in
// a set of buffers (§3). Values/ArrayOffsets/StringOffsets hold the raw
// bytes of each stream directly; resolving them from buffer views is the
// caller's responsibility, matching the "already-parsed value trees"
// boundary this package sits behind.
type PropertyTableProperty struct {
	Values []byte

	HasArrayOffsets  bool
	ArrayOffsets     []byte
	ArrayOffsetType  OffsetType

	HasStringOffsets bool
	StringOffsets    []byte
	StringOffsetType OffsetType
}
