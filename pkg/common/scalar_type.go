package common

import (
	"fmt"
	"unsafe"
)

// ScalarType tags the fixed-width physical representation of one grouping
// column or aggregate running-state field. The set is closed and small
// enough that dispatch on it is an explicit switch, not a lookup table.
type ScalarType int

const (
	Int8 ScalarType = iota
	Int16
	Int32
	Int64
	Uint64 // pointer-width unsigned
	Float64
	DateT
	DecimalT

	Invalid ScalarType = -1
)

var scalarTypeNames = map[ScalarType]string{
	Int8:    "INT8",
	Int16:   "INT16",
	Int32:   "INT32",
	Int64:   "INT64",
	Uint64:  "UINT64",
	Float64: "FLOAT64",
	DateT:   "DATE",
	DecimalT: "DECIMAL",
}

func (t ScalarType) String() string {
	if s, ok := scalarTypeNames[t]; ok {
		return s
	}
	panic(fmt.Sprintf("unsupported scalar type %d", int(t)))
}

// decimalWidth is computed once, the way the teacher's PhyType.Size derives
// its widths from the Go type rather than a hardcoded constant.
var decimalWidth = int(unsafe.Sizeof(Decimal{}))

// Valid reports whether t is one of the scalar types this module knows how
// to size, scatter, and gather. Invalid and any other out-of-range int value
// are not; callers must check this before Width()/String() panic on them.
func (t ScalarType) Valid() bool {
	_, ok := scalarTypeNames[t]
	return ok
}

// Width returns the byte width of one value of this scalar type.
func (t ScalarType) Width() int {
	switch t {
	case Int8:
		return 1
	case Int16:
		return 2
	case Int32:
		return 4
	case Int64:
		return 8
	case Uint64:
		return 8
	case Float64:
		return 8
	case DateT:
		return 4
	case DecimalT:
		return decimalWidth
	}
	panic(fmt.Sprintf("unsupported scalar type %d", int(t)))
}

// AvgDispatchable reports whether the AVG gather's type-dispatch table (§4.4)
// carries a division routine for this scalar type. DECIMAL deliberately has
// none: it is a supplemental scalar type this module adds beyond the set
// the AVG gather was specified over.
func (t ScalarType) AvgDispatchable() bool {
	switch t {
	case Int8, Int16, Int32, Int64, Uint64, Float64, DateT:
		return true
	default:
		return false
	}
}
