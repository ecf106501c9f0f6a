package chunk

import (
	"unsafe"

	"github.com/vecbase/aggtable/pkg/util"
)

// Cast converts a column of 64-bit hashes to the unsigned-integer address
// representation Modulo/Multiply/AddBase operate on next. On this
// representation (uint64, already address-sized) the conversion is the
// identity; the step is kept as its own function because the source
// pipeline names it as a distinct stage.
func Cast(hashes []uint64) []uint64 {
	return hashes
}

// Modulo reduces every address modulo k in place.
func Modulo(addr []uint64, k int) {
	kk := uint64(k)
	for i := range addr {
		addr[i] %= kk
	}
}

// Multiply scales every address by k in place.
func Multiply(addr []uint64, k int) {
	kk := uint64(k)
	for i := range addr {
		addr[i] *= kk
	}
}

// AddBase turns a column of byte offsets into a column of pointers into
// base, completing the Cast/Modulo/Multiply/Add home-slot pipeline.
func AddBase(addr []uint64, base unsafe.Pointer) []unsafe.Pointer {
	out := make([]unsafe.Pointer, len(addr))
	for i, off := range addr {
		out[i] = util.PointerAdd(base, int(off))
	}
	return out
}

// AdvanceAll advances every address by width bytes in place.
func AdvanceAll(addrs []unsafe.Pointer, width int) {
	for i := range addrs {
		addrs[i] = util.PointerAdd(addrs[i], width)
	}
}

// OffsetAll returns a new column of addresses, each offset bytes past the
// corresponding entry of addrs. Unlike AdvanceAll it does not mutate its
// input, so the same base address column (e.g. a row's slot start) can be
// projected to several different field addresses via a precomputed layout
// offset without clobbering the base for the next projection.
func OffsetAll(addrs []unsafe.Pointer, offset int) []unsafe.Pointer {
	out := make([]unsafe.Pointer, len(addrs))
	for i, a := range addrs {
		out[i] = util.PointerAdd(a, offset)
	}
	return out
}
