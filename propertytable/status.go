package propertytable

// Status is the closed set of outcomes a view construction can settle
// into (§7). Every non-Valid status yields a sentinel view.
type Status int

const (
	Valid Status = iota
	InvalidPropertyTable
	NonexistentProperty
	TypeMismatch
	ComponentTypeMismatch
	ArrayTypeMismatch
	NormalizationMismatch
	InvalidNormalization
	InvalidValueBufferView
	InvalidValueBuffer
	InvalidArrayOffsetBufferView
	InvalidArrayOffsetBuffer
	InvalidStringOffsetBufferView
	InvalidStringOffsetBuffer
	BufferViewOutOfBounds
	BufferViewSizeNotDivisibleByTypeSize
	BufferViewSizeDoesNotMatchPropertyTableCount
	ArrayCountAndOffsetBufferCoexist
	ArrayCountAndOffsetBufferDontExist
	InvalidArrayOffsetType
	InvalidStringOffsetType
	ArrayOffsetsNotSorted
	StringOffsetsNotSorted
	ArrayOffsetOutOfBounds
	StringOffsetOutOfBounds
	EmptyPropertyWithDefault
)

var statusNames = map[Status]string{
	Valid:                                 "Valid",
	InvalidPropertyTable:                  "InvalidPropertyTable",
	NonexistentProperty:                   "NonexistentProperty",
	TypeMismatch:                          "TypeMismatch",
	ComponentTypeMismatch:                 "ComponentTypeMismatch",
	ArrayTypeMismatch:                     "ArrayTypeMismatch",
	NormalizationMismatch:                 "NormalizationMismatch",
	InvalidNormalization:                  "InvalidNormalization",
	InvalidValueBufferView:                "InvalidValueBufferView",
	InvalidValueBuffer:                    "InvalidValueBuffer",
	InvalidArrayOffsetBufferView:          "InvalidArrayOffsetBufferView",
	InvalidArrayOffsetBuffer:              "InvalidArrayOffsetBuffer",
	InvalidStringOffsetBufferView:         "InvalidStringOffsetBufferView",
	InvalidStringOffsetBuffer:             "InvalidStringOffsetBuffer",
	BufferViewOutOfBounds:                 "BufferViewOutOfBounds",
	BufferViewSizeNotDivisibleByTypeSize:  "BufferViewSizeNotDivisibleByTypeSize",
	BufferViewSizeDoesNotMatchPropertyTableCount: "BufferViewSizeDoesNotMatchPropertyTableCount",
	ArrayCountAndOffsetBufferCoexist:      "ArrayCountAndOffsetBufferCoexist",
	ArrayCountAndOffsetBufferDontExist:    "ArrayCountAndOffsetBufferDontExist",
	InvalidArrayOffsetType:                "InvalidArrayOffsetType",
	InvalidStringOffsetType:               "InvalidStringOffsetType",
	ArrayOffsetsNotSorted:                 "ArrayOffsetsNotSorted",
	StringOffsetsNotSorted:                "StringOffsetsNotSorted",
	ArrayOffsetOutOfBounds:                "ArrayOffsetOutOfBounds",
	StringOffsetOutOfBounds:               "StringOffsetOutOfBounds",
	EmptyPropertyWithDefault:              "EmptyPropertyWithDefault",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}
