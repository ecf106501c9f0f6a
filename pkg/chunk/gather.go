package chunk

import (
	"unsafe"

	"github.com/vecbase/aggtable/pkg/common"
	"github.com/vecbase/aggtable/pkg/util"
)

// GatherSet reads n values from addrs into out, one per address, in order.
// This is the plain SUM/MIN/MAX/COUNT materialization step of a Scan.
func GatherSet[T Numeric](addrs []unsafe.Pointer, n int, out *Vector) {
	data := Slice[T](out)
	for i := 0; i < n; i++ {
		data[i] = util.Load[T](addrs[i])
	}
}

func GatherSetDecimal(addrs []unsafe.Pointer, n int, out *Vector) {
	data := Slice[common.Decimal](out)
	for i := 0; i < n; i++ {
		data[i] = util.Load[common.Decimal](addrs[i])
	}
}

// GatherSetDispatch materializes n raw aggregate states at addrs into out,
// switching on the aggregate's scalar type. Used for COUNT_STAR, COUNT,
// SUM, MIN and MAX, none of which need the divide-by-count step AVG does.
func GatherSetDispatch(typ common.ScalarType, addrs []unsafe.Pointer, n int, out *Vector) {
	switch typ {
	case common.Int8:
		GatherSet[int8](addrs, n, out)
	case common.Int16:
		GatherSet[int16](addrs, n, out)
	case common.Int32:
		GatherSet[int32](addrs, n, out)
	case common.Int64:
		GatherSet[int64](addrs, n, out)
	case common.Uint64:
		GatherSet[uint64](addrs, n, out)
	case common.Float64:
		GatherSet[float64](addrs, n, out)
	case common.DateT:
		GatherSet[common.Date](addrs, n, out)
	case common.DecimalT:
		GatherSetDecimal(addrs, n, out)
	default:
		panic("unsupported scalar type for gather set")
	}
}

// gatherAvgTemplated reads the SUM state at addrs[i] and the paired COUNT
// state at addrs[i]+offset, and writes sum/count into out using T's own
// division: integer division for integer T, real division for float64.
// out keeps the aggregate's own scalar type rather than being forced to
// float64, mirroring the templated gather the source dispatches over.
func gatherAvgTemplated[T Numeric](addrs []unsafe.Pointer, offset, n int, out *Vector) {
	data := Slice[T](out)
	for i := 0; i < n; i++ {
		sum := util.Load[T](addrs[i])
		cnt := util.Load[uint64](util.PointerAdd(addrs[i], offset))
		data[i] = sum / T(cnt)
	}
}

// GatherAverageDispatch writes sum/count into out, typed and divided the
// way the aggregate's own scalar type demands. Callers must check
// typ.AvgDispatchable() first: a type this switch doesn't list is a
// contract violation, not a runtime input to reject gracefully, so it
// panics rather than returning an error.
func GatherAverageDispatch(typ common.ScalarType, addrs []unsafe.Pointer, offset, n int, out *Vector) {
	switch typ {
	case common.Int8:
		gatherAvgTemplated[int8](addrs, offset, n, out)
	case common.Int16:
		gatherAvgTemplated[int16](addrs, offset, n, out)
	case common.Int32:
		gatherAvgTemplated[int32](addrs, offset, n, out)
	case common.Int64:
		gatherAvgTemplated[int64](addrs, offset, n, out)
	case common.Uint64:
		gatherAvgTemplated[uint64](addrs, offset, n, out)
	case common.Float64:
		gatherAvgTemplated[float64](addrs, offset, n, out)
	case common.DateT:
		gatherAvgTemplated[common.Date](addrs, offset, n, out)
	default:
		panic("scalar type is not AVG-dispatchable")
	}
}
