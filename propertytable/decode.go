package propertytable

import (
	"encoding/binary"
	"math"
)

// decodeComponent reinterprets the bytes at buf[offset:] as one scalar
// component of the given type, returning int64 for signed integers,
// uint64 for unsigned, or float64 for floating-point — the three boxed
// shapes every downstream rule (normalization, offset/scale, no-data
// comparison) switches on.
func decodeComponent(buf []byte, offset int, ct ComponentType) interface{} {

	size := componentByteSize[ct]
	if offset+size > len(buf) {
		return nil
	}
	switch ct {
	case ComponentInt8:
		return int64(int8(buf[offset]))
	case ComponentUint8:
		return uint64(buf[offset])
	case ComponentInt16:
		return int64(int16(binary.LittleEndian.Uint16(buf[offset:])))
	case ComponentUint16:
		return uint64(binary.LittleEndian.Uint16(buf[offset:]))
	case ComponentInt32:
		return int64(int32(binary.LittleEndian.Uint32(buf[offset:])))
	case ComponentUint32:
		return uint64(binary.LittleEndian.Uint32(buf[offset:]))
	case ComponentInt64:
		return int64(binary.LittleEndian.Uint64(buf[offset:]))
	case ComponentUint64:
		return binary.LittleEndian.Uint64(buf[offset:])
	case ComponentFloat32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:])))
	case ComponentFloat64:
		return math.Float64frombits(binary.LittleEndian.Uint64(buf[offset:]))
	default:
		return nil
	}
}

// decodeElement decodes one scalar, vector or matrix element at a byte
// offset (§4.A). The ~180-case closed set the visitor dispatch
// enumerates (base type × component type × array × normalized) collapses
// here to two axes handled orthogonally: componentsPerElement picks how
// many components to read, decodeComponent picks how to read each one.
// A scalar element is returned unboxed; vectors and matrices are
// returned as []interface{} in the order their components are stored.
func decodeElement(buf []byte, byteOffset int, class *ClassProperty) interface{} {

	n := componentsPerElement[class.Type]
	componentSize := componentByteSize[class.ComponentType]
	if n == 1 {
		return decodeComponent(buf, byteOffset, class.ComponentType)
	}
	out := make([]interface{}, n)
	for k := 0; k < n; k++ {
		out[k] = decodeComponent(buf, byteOffset+k*componentSize, class.ComponentType)
	}
	return out
}

// decodeBool reads bit i%8 of byte i/8 of values, the lowest-indexed
// element living in the least-significant bit of the first byte (§3).
func decodeBool(values []byte, i int) bool {

	byteIndex := i / 8
	if byteIndex >= len(values) {
		return false
	}
	return values[byteIndex]&(1<<uint(i%8)) != 0
}

// decodeString slices values[begin:end] as a UTF-8 string with no
// internal validation (§4.A).
func decodeString(values []byte, begin, end int) string {

	if begin < 0 || end > len(values) || begin > end {
		return ""
	}
	return string(values[begin:end])
}

// valuesEqual compares a decoded raw value against a NoData sentinel.
// Both sides are boxed the same way decodeComponent boxes them, so
// plain equality is almost always enough; float-vs-int sentinels
// declared loosely by the caller are coerced to float64 first.
func valuesEqual(a, b interface{}) bool {

	if a == nil || b == nil {
		return a == b
	}
	af, aIsFloat := toFloat64(a)
	bf, bIsFloat := toFloat64(b)
	if aIsFloat && bIsFloat {
		return af == bf
	}
	return a == b
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// normalizeValue applies the normalized-integer decode rule (§4.A):
// signed components map to max(x/MAX, -1), unsigned to x/MAX. Non-
// integer types and non-normalized properties pass through unchanged.
func normalizeValue(raw interface{}, class *ClassProperty) interface{} {

	if !class.Normalized {
		return raw
	}
	maxMag := componentMaxMagnitude[class.ComponentType]
	signed := componentSigned(class.ComponentType)

	normalizeOne := func(component interface{}) float64 {
		f, _ := toFloat64(component)
		if signed {
			n := f / maxMag
			if n < -1 {
				n = -1
			}
			return n
		}
		return f / maxMag
	}

	if list, ok := raw.([]interface{}); ok {
		out := make([]float64, len(list))
		for i, c := range list {
			out[i] = normalizeOne(c)
		}
		return out
	}
	return normalizeOne(raw)
}

// applyOffsetScale applies componentwise offset + scale * x (§4.A). With
// neither declared, the value passes through unchanged; so do raw
// (non-normalized) integer values.
func applyOffsetScale(value interface{}, class *ClassProperty) interface{} {

	if class.Offset == nil && class.Scale == nil {
		return value
	}

	applyOne := func(x float64, offset, scale interface{}) float64 {
		o, hasO := toFloat64(offset)
		s, hasS := toFloat64(scale)
		if !hasS {
			s = 1
		}
		if !hasO {
			o = 0
		}
		return o + s*x
	}

	switch v := value.(type) {
	case float64:
		return applyOne(v, class.Offset, class.Scale)
	case []float64:
		offsets, _ := class.Offset.([]interface{})
		scales, _ := class.Scale.([]interface{})
		out := make([]float64, len(v))
		for i, x := range v {
			var o, s interface{}
			if i < len(offsets) {
				o = offsets[i]
			} else {
				o = class.Offset
			}
			if i < len(scales) {
				s = scales[i]
			} else {
				s = class.Scale
			}
			out[i] = applyOne(x, o, s)
		}
		return out
	case []interface{}:
		floats := make([]float64, len(v))
		for i, c := range v {
			f, ok := c.(float64)
			if !ok {
				return value
			}
			floats[i] = f
		}
		return applyOffsetScale(floats, class)
	default:
		return value
	}
}
