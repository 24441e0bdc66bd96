package propertytable

import "encoding/binary"

// View is a zero-copy, strongly-typed accessor over one property-table
// column (§4.A). Construction never fails: an invalid configuration
// (missing buffers, a count mismatch, a type that can't be normalized)
// yields a sentinel view whose Size is zero and whose Status names the
// specific problem, instead of a Go error — the caller inspects Status
// once and then calls GetRaw/Get freely.
type View struct {
	status Status
	class  *ClassProperty
	count  int

	values []byte

	hasArrayOffsets bool
	arrayOffsets    []byte
	arrayOffsetType OffsetType

	hasStringOffsets bool
	stringOffsets    []byte
	stringOffsetType OffsetType

	elementSize      int // byte size of one non-array element
	emptyWithDefault bool
}

func sentinel(status Status) *View {
	return &View{status: status}
}

// Status reports the outcome of construction.
func (v *View) Status() Status { return v.status }

// Size returns the table's declared row count when Valid, else zero.
func (v *View) Size() int {
	if v.status != Valid {
		return 0
	}
	return v.count
}

func isIntegerComponent(ct ComponentType) bool {
	return ct != ComponentNone && !componentFloating(ct)
}

// elementByteSize returns the byte size of one non-array element of the
// class's structural type: componentsPerElement * componentByteSize for
// numeric shapes, 0 for boolean/string/enum (those decode by other
// rules).
func elementByteSize(class *ClassProperty) int {
	n, ok := componentsPerElement[class.Type]
	if !ok {
		return 0
	}
	size, ok := componentByteSize[class.ComponentType]
	if !ok {
		return 0
	}
	return n * size
}

// NewView validates property against class and the table's declared
// row count, per the invariants in §3 and §4.A.
func NewView(property *PropertyTableProperty, class *ClassProperty, count int) *View {

	if class == nil {
		return sentinel(InvalidPropertyTable)
	}
	if class.Normalized && !isIntegerComponent(class.ComponentType) {
		return sentinel(InvalidNormalization)
	}

	if property == nil {
		if class.Default != nil {
			return &View{status: Valid, class: class, count: count, emptyWithDefault: true}
		}
		return sentinel(NonexistentProperty)
	}

	numeric := class.Type != BaseString && class.Type != BaseBoolean && class.Type != BaseEnum
	elementSize := 0
	if numeric {
		elementSize = elementByteSize(class)
		if elementSize == 0 {
			return sentinel(ComponentTypeMismatch)
		}
	}

	if class.Array {
		if class.Count > 0 && property.HasArrayOffsets {
			return sentinel(ArrayCountAndOffsetBufferCoexist)
		}
		if class.Count == 0 && !property.HasArrayOffsets {
			return sentinel(ArrayCountAndOffsetBufferDontExist)
		}
	} else if property.HasArrayOffsets {
		return sentinel(ArrayTypeMismatch)
	}

	if class.Type == BaseString && !property.HasStringOffsets {
		return sentinel(InvalidStringOffsetBufferView)
	}
	if class.Type != BaseString && property.HasStringOffsets {
		return sentinel(TypeMismatch)
	}

	if numeric && !class.Array {
		if len(property.Values) < count*elementSize {
			return sentinel(BufferViewSizeDoesNotMatchPropertyTableCount)
		}
	}
	if class.Type == BaseBoolean && !class.Array {
		needed := (count + 7) / 8
		if len(property.Values) < needed {
			return sentinel(BufferViewSizeDoesNotMatchPropertyTableCount)
		}
	}

	if property.HasArrayOffsets {
		if !offsetsSorted(property.ArrayOffsets, property.ArrayOffsetType, count+1) {
			return sentinel(ArrayOffsetsNotSorted)
		}
		// The final array offset is the element count one past the last
		// row's array; for every class type but string that bounds the
		// values buffer directly (§3: "end <= values.length").
		if class.Type != BaseString {
			last := int(readOffset(property.ArrayOffsets, property.ArrayOffsetType, count))
			valuesLength := last
			if class.Type != BaseBoolean {
				valuesLength = last * elementSize
			} else {
				valuesLength = (last + 7) / 8
			}
			if valuesLength > len(property.Values) {
				return sentinel(ArrayOffsetOutOfBounds)
			}
		}
	}
	if property.HasStringOffsets && !class.Array {
		if !offsetsSorted(property.StringOffsets, property.StringOffsetType, count+1) {
			return sentinel(StringOffsetsNotSorted)
		}
		last := readOffset(property.StringOffsets, property.StringOffsetType, count)
		if int(last) > len(property.Values) {
			return sentinel(StringOffsetOutOfBounds)
		}
	}

	return &View{
		status:           Valid,
		class:            class,
		count:            count,
		values:           property.Values,
		hasArrayOffsets:  property.HasArrayOffsets,
		arrayOffsets:     property.ArrayOffsets,
		arrayOffsetType:  property.ArrayOffsetType,
		hasStringOffsets: property.HasStringOffsets,
		stringOffsets:    property.StringOffsets,
		stringOffsetType: property.StringOffsetType,
		elementSize:      elementSize,
	}
}

func readOffset(buf []byte, offsetType OffsetType, i int) uint64 {
	size := offsetType.byteSize()
	at := i * size
	if at+size > len(buf) {
		return 0
	}
	switch offsetType {
	case OffsetUint8:
		return uint64(buf[at])
	case OffsetUint16:
		return uint64(binary.LittleEndian.Uint16(buf[at:]))
	case OffsetUint32:
		return uint64(binary.LittleEndian.Uint32(buf[at:]))
	case OffsetUint64:
		return binary.LittleEndian.Uint64(buf[at:])
	default:
		return 0
	}
}

func offsetsSorted(buf []byte, offsetType OffsetType, n int) bool {
	prev := uint64(0)
	for i := 0; i < n; i++ {
		v := readOffset(buf, offsetType, i)
		if i > 0 && v < prev {
			return false
		}
		prev = v
	}
	return true
}

// GetRaw returns the i-th element with no offset/scale/normalization
// applied (§4.A). Preconditions (Valid status, in-range i) are the
// caller's responsibility; out-of-range or sentinel-view calls return
// nil rather than panicking.
func (v *View) GetRaw(i int) interface{} {

	if v.status != Valid || i < 0 || i >= v.count {
		return nil
	}
	if v.emptyWithDefault {
		return nil
	}

	if v.class.Array {
		return v.getRawArray(i)
	}

	switch v.class.Type {
	case BaseBoolean:
		return decodeBool(v.values, i)
	case BaseString:
		start := readOffset(v.stringOffsets, v.stringOffsetType, i)
		end := readOffset(v.stringOffsets, v.stringOffsetType, i+1)
		return decodeString(v.values, int(start), int(end))
	default:
		return decodeElement(v.values, i*v.elementSize, v.class)
	}
}

func (v *View) getRawArray(i int) interface{} {

	var begin, end int
	if v.hasArrayOffsets {
		begin = int(readOffset(v.arrayOffsets, v.arrayOffsetType, i))
		end = int(readOffset(v.arrayOffsets, v.arrayOffsetType, i+1))
	} else {
		begin = i * v.class.Count
		end = begin + v.class.Count
	}

	switch v.class.Type {
	case BaseBoolean:
		out := make([]bool, end-begin)
		for k := range out {
			out[k] = decodeBool(v.values, begin+k)
		}
		return out
	case BaseString:
		out := make([]string, end-begin)
		for k := range out {
			idx := begin + k
			s := readOffset(v.stringOffsets, v.stringOffsetType, idx)
			e := readOffset(v.stringOffsets, v.stringOffsetType, idx+1)
			out[k] = decodeString(v.values, int(s), int(e))
		}
		return out
	default:
		out := make([]interface{}, end-begin)
		for k := range out {
			out[k] = decodeElement(v.values, (begin+k)*v.elementSize, v.class)
		}
		return out
	}
}

// Get applies the no-data/default, normalization and offset/scale rules
// to the i-th element (§4.A). The boolean result reports whether a
// value is present: it is false for a sentinel view or an out-of-range i,
// and otherwise only when the raw value equals NoData and no Default was
// declared.
func (v *View) Get(i int) (interface{}, bool) {

	if v.status != Valid || i < 0 || i >= v.count {
		return nil, false
	}

	if v.emptyWithDefault {
		return v.class.Default, true
	}

	raw := v.GetRaw(i)
	if v.class.NoData != nil && valuesEqual(raw, v.class.NoData) {
		if v.class.Default != nil {
			return v.class.Default, true
		}
		return nil, false
	}

	resolved := normalizeValue(raw, v.class)
	resolved = applyOffsetScale(resolved, v.class)
	return resolved, true
}
