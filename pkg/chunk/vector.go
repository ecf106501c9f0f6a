package chunk

import (
	"github.com/vecbase/aggtable/pkg/common"
	"github.com/vecbase/aggtable/pkg/util"
)

// Vector is a column: a fixed-width array of one scalar type plus a
// logical count and an optional validity mask. There is no dictionary,
// constant, or sequence encoding here — every Vector this package deals
// with is fully materialized, because the aggregate core never needs
// anything richer than that.
type Vector struct {
	Typ   common.ScalarType
	Data  []byte
	Mask  *util.Bitmap
	count int
}

// NewVector allocates a Vector with room for cap values of typ.
func NewVector(typ common.ScalarType, cap int) *Vector {
	return &Vector{
		Typ:  typ,
		Data: util.GAlloc.Alloc(cap * typ.Width()),
		Mask: &util.Bitmap{},
	}
}

func (v *Vector) Count() int     { return v.count }
func (v *Vector) SetCount(n int) { v.count = n }

// Capacity is the number of typed values Data currently has room for.
func (v *Vector) Capacity() int {
	w := v.Typ.Width()
	if w == 0 {
		return 0
	}
	return len(v.Data) / w
}

// Slice reinterprets the Vector's backing bytes as a []T. Callers are
// responsible for T matching v.Typ; this package's own dispatch helpers
// pick T from the scalar-type switch, and other callers (cmd/aggbench,
// the tests) pair T with the vector's type themselves.
func Slice[T any](v *Vector) []T {
	return util.ToSlice[T](v.Data, v.Typ.Width())
}
