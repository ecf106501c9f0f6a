package chunk

import (
	"unsafe"

	"github.com/vecbase/aggtable/pkg/common"
	"github.com/vecbase/aggtable/pkg/util"
)

// Numeric is the set of scalar types whose SUM/MIN/MAX arithmetic is plain
// Go operators. DECIMAL is handled by dedicated *Decimal functions below
// since govalues.Decimal arithmetic goes through method calls, not +/</>.
type Numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint64 | ~float64
}

// ScatterSet stores col[r] at *addrs[r] for every row r in rows: the
// initial-state write for SUM/AVG/MIN/MAX on a newly claimed slot.
func ScatterSet[T Numeric](col *Vector, addrs []unsafe.Pointer, rows []int) {
	data := Slice[T](col)
	for _, r := range rows {
		util.Store[T](data[r], addrs[r])
	}
}

// ScatterAdd folds col[r] into *addrs[r] by addition, for SUM/AVG updates.
func ScatterAdd[T Numeric](col *Vector, addrs []unsafe.Pointer, rows []int) {
	data := Slice[T](col)
	for _, r := range rows {
		cur := util.Load[T](addrs[r])
		util.Store[T](cur+data[r], addrs[r])
	}
}

// ScatterMin keeps the smaller of col[r] and *addrs[r], for MIN updates.
func ScatterMin[T Numeric](col *Vector, addrs []unsafe.Pointer, rows []int) {
	data := Slice[T](col)
	for _, r := range rows {
		cur := util.Load[T](addrs[r])
		if data[r] < cur {
			util.Store[T](data[r], addrs[r])
		}
	}
}

// ScatterMax keeps the larger of col[r] and *addrs[r], for MAX updates.
func ScatterMax[T Numeric](col *Vector, addrs []unsafe.Pointer, rows []int) {
	data := Slice[T](col)
	for _, r := range rows {
		cur := util.Load[T](addrs[r])
		if data[r] > cur {
			util.Store[T](data[r], addrs[r])
		}
	}
}

func ScatterSetDecimal(col *Vector, addrs []unsafe.Pointer, rows []int) {
	data := Slice[common.Decimal](col)
	for _, r := range rows {
		util.Store[common.Decimal](data[r], addrs[r])
	}
}

func ScatterAddDecimal(col *Vector, addrs []unsafe.Pointer, rows []int) {
	data := Slice[common.Decimal](col)
	for _, r := range rows {
		cur := util.Load[common.Decimal](addrs[r])
		util.Store[common.Decimal](cur.Add(data[r]), addrs[r])
	}
}

func ScatterMinDecimal(col *Vector, addrs []unsafe.Pointer, rows []int) {
	data := Slice[common.Decimal](col)
	for _, r := range rows {
		cur := util.Load[common.Decimal](addrs[r])
		if data[r].Less(cur) {
			util.Store[common.Decimal](data[r], addrs[r])
		}
	}
}

func ScatterMaxDecimal(col *Vector, addrs []unsafe.Pointer, rows []int) {
	data := Slice[common.Decimal](col)
	for _, r := range rows {
		cur := util.Load[common.Decimal](addrs[r])
		if data[r].Greater(cur) {
			util.Store[common.Decimal](data[r], addrs[r])
		}
	}
}

// ScatterSetCount stores the vector's logical count image: 1 where the
// payload value is valid, 0 where it is null. This is the one place the
// scatter/gather layer consults a validity mask (§9's Null handling note).
func ScatterSetCount(col *Vector, addrs []unsafe.Pointer, rows []int) {
	for _, r := range rows {
		var v uint64
		if col.Mask.RowIsValid(uint64(r)) {
			v = 1
		}
		util.Store[uint64](v, addrs[r])
	}
}

// ScatterAddOne increments *addrs[r] unconditionally, for COUNT updates.
func ScatterAddOne(addrs []unsafe.Pointer, rows []int) {
	for _, r := range rows {
		cur := util.Load[uint64](addrs[r])
		util.Store[uint64](cur+1, addrs[r])
	}
}

// ScatterAddOneAll increments every address's 64-bit counter by one,
// touched once per input row regardless of new/updated classification —
// the bucket-wide COUNT field update of §4.2 step 5.
func ScatterAddOneAll(addrs []unsafe.Pointer) {
	for i := range addrs {
		cur := util.Load[uint64](addrs[i])
		util.Store[uint64](cur+1, addrs[i])
	}
}

// ScatterSetDispatch writes initial SUM/AVG/MIN/MAX state, switching on the
// aggregate's scalar type.
func ScatterSetDispatch(typ common.ScalarType, col *Vector, addrs []unsafe.Pointer, rows []int) {
	switch typ {
	case common.Int8:
		ScatterSet[int8](col, addrs, rows)
	case common.Int16:
		ScatterSet[int16](col, addrs, rows)
	case common.Int32:
		ScatterSet[int32](col, addrs, rows)
	case common.Int64:
		ScatterSet[int64](col, addrs, rows)
	case common.Uint64:
		ScatterSet[uint64](col, addrs, rows)
	case common.Float64:
		ScatterSet[float64](col, addrs, rows)
	case common.DateT:
		ScatterSet[common.Date](col, addrs, rows)
	case common.DecimalT:
		ScatterSetDecimal(col, addrs, rows)
	default:
		panic("unsupported scalar type for scatter set")
	}
}

func ScatterAddDispatch(typ common.ScalarType, col *Vector, addrs []unsafe.Pointer, rows []int) {
	switch typ {
	case common.Int8:
		ScatterAdd[int8](col, addrs, rows)
	case common.Int16:
		ScatterAdd[int16](col, addrs, rows)
	case common.Int32:
		ScatterAdd[int32](col, addrs, rows)
	case common.Int64:
		ScatterAdd[int64](col, addrs, rows)
	case common.Uint64:
		ScatterAdd[uint64](col, addrs, rows)
	case common.Float64:
		ScatterAdd[float64](col, addrs, rows)
	case common.DateT:
		ScatterAdd[common.Date](col, addrs, rows)
	case common.DecimalT:
		ScatterAddDecimal(col, addrs, rows)
	default:
		panic("unsupported scalar type for scatter add")
	}
}

func ScatterMinDispatch(typ common.ScalarType, col *Vector, addrs []unsafe.Pointer, rows []int) {
	switch typ {
	case common.Int8:
		ScatterMin[int8](col, addrs, rows)
	case common.Int16:
		ScatterMin[int16](col, addrs, rows)
	case common.Int32:
		ScatterMin[int32](col, addrs, rows)
	case common.Int64:
		ScatterMin[int64](col, addrs, rows)
	case common.Uint64:
		ScatterMin[uint64](col, addrs, rows)
	case common.Float64:
		ScatterMin[float64](col, addrs, rows)
	case common.DateT:
		ScatterMin[common.Date](col, addrs, rows)
	case common.DecimalT:
		ScatterMinDecimal(col, addrs, rows)
	default:
		panic("unsupported scalar type for scatter min")
	}
}

func ScatterMaxDispatch(typ common.ScalarType, col *Vector, addrs []unsafe.Pointer, rows []int) {
	switch typ {
	case common.Int8:
		ScatterMax[int8](col, addrs, rows)
	case common.Int16:
		ScatterMax[int16](col, addrs, rows)
	case common.Int32:
		ScatterMax[int32](col, addrs, rows)
	case common.Int64:
		ScatterMax[int64](col, addrs, rows)
	case common.Uint64:
		ScatterMax[uint64](col, addrs, rows)
	case common.Float64:
		ScatterMax[float64](col, addrs, rows)
	case common.DateT:
		ScatterMax[common.Date](col, addrs, rows)
	case common.DecimalT:
		ScatterMaxDecimal(col, addrs, rows)
	default:
		panic("unsupported scalar type for scatter max")
	}
}
