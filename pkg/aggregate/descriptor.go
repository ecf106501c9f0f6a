package aggregate

import (
	"github.com/huandu/go-clone"

	"github.com/vecbase/aggtable/pkg/common"
)

// AggKind names one of the six aggregate functions this table supports.
type AggKind int

const (
	CountStar AggKind = iota
	Count
	Sum
	Avg
	Min
	Max
)

func (k AggKind) String() string {
	switch k {
	case CountStar:
		return "COUNT_STAR"
	case Count:
		return "COUNT"
	case Sum:
		return "SUM"
	case Avg:
		return "AVG"
	case Min:
		return "MIN"
	case Max:
		return "MAX"
	default:
		return "UNKNOWN"
	}
}

// Descriptor names one output aggregate: its kind and the scalar type of
// its running payload state. Typ is ignored for CountStar, which carries
// no payload bytes of its own.
type Descriptor struct {
	Kind AggKind
	Typ  common.ScalarType
}

// StateWidth is the number of payload bytes this aggregate occupies in a
// tuple. CountStar occupies none: its value is read from the tuple's
// shared COUNT field instead.
func (d Descriptor) StateWidth() int {
	switch d.Kind {
	case CountStar:
		return 0
	case Count:
		return 8
	case Sum, Avg, Min, Max:
		return d.Typ.Width()
	default:
		panic(notImplemented("unknown aggregate kind " + d.Kind.String()))
	}
}

// Validate reports whether d names a known aggregate kind with a scalar
// type that kind actually needs. NewHashTable calls this for every
// descriptor before computing the tuple layout, so an unrecognized Kind or
// Typ fails construction as NotImplemented instead of panicking later
// inside StateWidth/Width.
func (d Descriptor) Validate() error {
	switch d.Kind {
	case CountStar, Count:
		return nil
	case Sum, Avg, Min, Max:
		if !d.Typ.Valid() {
			return notImplemented("unsupported scalar type for aggregate " + d.Kind.String())
		}
		return nil
	default:
		return notImplemented("unknown aggregate kind " + d.Kind.String())
	}
}

// cloneDescriptors deep-copies descs so the table's own layout bookkeeping
// can never be disturbed by the caller mutating the slice it passed to
// NewHashTable after the fact.
func cloneDescriptors(descs []Descriptor) []Descriptor {
	return clone.Clone(descs).([]Descriptor)
}
