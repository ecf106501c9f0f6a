package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecbase/aggtable/pkg/chunk"
	"github.com/vecbase/aggtable/pkg/common"
)

func int64Vector(vals []int64) *chunk.Vector {
	v := chunk.NewVector(common.Int64, len(vals))
	data := chunk.Slice[int64](v)
	copy(data, vals)
	v.SetCount(len(vals))
	return v
}

func groupsChunk(keys []int64) *chunk.Chunk {
	col := int64Vector(keys)
	c := chunk.NewChunk([]*chunk.Vector{col}, len(keys))
	c.SetCount(len(keys))
	return c
}

func payloadChunk(cols ...[]int64) *chunk.Chunk {
	vecs := make([]*chunk.Vector, len(cols))
	n := 0
	for i, col := range cols {
		vecs[i] = int64Vector(col)
		n = len(col)
	}
	c := chunk.NewChunk(vecs, n)
	c.SetCount(n)
	return c
}

func newResultChunk(typs []common.ScalarType, maxSize int) *chunk.Chunk {
	vecs := make([]*chunk.Vector, len(typs))
	for i, t := range typs {
		vecs[i] = chunk.NewVector(t, maxSize)
	}
	return chunk.NewChunk(vecs, maxSize)
}

// readScalar reads row r of col as a float64 regardless of its underlying
// scalar type, so test assertions can compare values without caring which
// physical representation produced them.
func readScalar(col *chunk.Vector, r int) float64 {
	switch col.Typ {
	case common.Int64:
		return float64(chunk.Slice[int64](col)[r])
	case common.Uint64:
		return float64(chunk.Slice[uint64](col)[r])
	case common.Float64:
		return chunk.Slice[float64](col)[r]
	default:
		panic("readScalar: unsupported scalar type in test helper")
	}
}

// drain scans the table to exhaustion, returning the group keys and one
// result column per row in whatever order the table emits them.
func drain(t *testing.T, ht *HashTable, groupTyps, resultTyps []common.ScalarType) ([][]int64, [][]float64) {
	var groupRows [][]int64
	var resultRows [][]float64
	position := 0
	for {
		outGroups := newResultChunk(groupTyps, 64)
		outResult := newResultChunk(resultTyps, 64)
		err := ht.Scan(&position, outGroups, outResult)
		require.NoError(t, err)
		n := outGroups.Count()
		if n == 0 {
			break
		}
		for r := 0; r < n; r++ {
			gr := make([]int64, len(groupTyps))
			for c := 0; c < len(groupTyps); c++ {
				gr[c] = int64(readScalar(outGroups.Cols[c], r))
			}
			groupRows = append(groupRows, gr)
			rr := make([]float64, len(resultTyps))
			for c := 0; c < len(resultTyps); c++ {
				rr[c] = readScalar(outResult.Cols[c], r)
			}
			resultRows = append(resultRows, rr)
		}
	}
	return groupRows, resultRows
}

func TestAddChunk_SumGroupBy(t *testing.T) {
	descs := []Descriptor{{Kind: Sum, Typ: common.Int64}}
	ht, err := NewHashTable(64, []int{8}, 8, descs, false)
	require.NoError(t, err)

	groups := groupsChunk([]int64{1, 1, 2, 1, 3, 2})
	payload := payloadChunk([]int64{10, 20, 30, 40, 50, 60})
	require.NoError(t, ht.AddChunk(groups, payload))

	groupRows, resultRows := drain(t, ht, []common.ScalarType{common.Int64}, []common.ScalarType{common.Int64})
	got := map[int64]float64{}
	for i, g := range groupRows {
		got[g[0]] = resultRows[i][0]
	}
	assert.Equal(t, map[int64]float64{1: 70, 2: 90, 3: 50}, got)
}

func TestScan_EmptyTableReturnsEmptyChunk(t *testing.T) {
	descs := []Descriptor{{Kind: CountStar}}
	ht, err := NewHashTable(16, []int{8}, 0, descs, false)
	require.NoError(t, err)

	position := 0
	outGroups := newResultChunk([]common.ScalarType{common.Int64}, 16)
	outResult := newResultChunk([]common.ScalarType{common.Uint64}, 16)
	require.NoError(t, ht.Scan(&position, outGroups, outResult))
	assert.Equal(t, 0, outGroups.Count())
	assert.GreaterOrEqual(t, position, 16)
}

func TestAddChunk_AllSameKeyFullAggregateSet(t *testing.T) {
	descs := []Descriptor{
		{Kind: Sum, Typ: common.Int64},
		{Kind: Count},
		{Kind: Avg, Typ: common.Int64},
		{Kind: Min, Typ: common.Int64},
		{Kind: Max, Typ: common.Int64},
	}
	ht, err := NewHashTable(1024, []int{8}, 8+8+8+8+8, descs, false)
	require.NoError(t, err)

	keys := make([]int64, 1000)
	vals := make([]int64, 1000)
	for i := 0; i < 1000; i++ {
		keys[i] = 1
		vals[i] = int64(i + 1)
	}
	groups := groupsChunk(keys)
	payload := payloadChunk(vals, vals, vals, vals, vals)
	require.NoError(t, ht.AddChunk(groups, payload))

	groupRows, resultRows := drain(t, ht,
		[]common.ScalarType{common.Int64},
		[]common.ScalarType{common.Int64, common.Uint64, common.Int64, common.Int64, common.Int64})
	require.Len(t, groupRows, 1)
	row := resultRows[0]
	assert.Equal(t, float64(500500), row[0]) // sum
	assert.Equal(t, float64(1000), row[1])   // count
	assert.Equal(t, float64(500), row[2])    // avg, integer division
	assert.Equal(t, float64(1), row[3])      // min
	assert.Equal(t, float64(1000), row[4])   // max
}

func TestAddChunk_TwoColumnKeyCountStar(t *testing.T) {
	descs := []Descriptor{{Kind: CountStar}}
	ht, err := NewHashTable(64, []int{8, 8}, 0, descs, false)
	require.NoError(t, err)

	a := int64Vector([]int64{1, 1, 1, 2})
	b := int64Vector([]int64{1, 2, 1, 1})
	groups := chunk.NewChunk([]*chunk.Vector{a, b}, 4)
	groups.SetCount(4)
	payload := chunk.NewChunk([]*chunk.Vector{chunk.NewVector(common.Uint64, 4)}, 4)
	payload.SetCount(4)
	require.NoError(t, ht.AddChunk(groups, payload))

	groupRows, resultRows := drain(t, ht,
		[]common.ScalarType{common.Int64, common.Int64},
		[]common.ScalarType{common.Uint64})
	require.Len(t, groupRows, 3)
	counts := map[[2]int64]int64{}
	for i, g := range groupRows {
		counts[[2]int64{g[0], g[1]}] = int64(resultRows[i][0])
	}
	assert.Equal(t, int64(2), counts[[2]int64{1, 1}])
	assert.Equal(t, int64(1), counts[[2]int64{1, 2}])
	assert.Equal(t, int64(1), counts[[2]int64{2, 1}])
}

// homeSlot mirrors AddChunk's own home-slot computation (hash mod
// capacity), so the test can choose keys that are guaranteed to collide
// instead of hoping six arbitrary small integers happen to.
func homeSlot(key int64, capacity int) int {
	h := chunk.Hash(int64Vector([]int64{key}), 1)
	return int(h[0] % uint64(capacity))
}

func TestAddChunk_CollisionStressMaxChain(t *testing.T) {
	descs := []Descriptor{{Kind: CountStar}}
	capacity := 8
	ht, err := NewHashTable(capacity, []int{8}, 0, descs, false)
	require.NoError(t, err)

	// S5: six keys that all hash to slot 0.
	var keys []int64
	for k := int64(0); len(keys) < 6; k++ {
		if homeSlot(k, capacity) == 0 {
			keys = append(keys, k)
		}
	}

	groups := groupsChunk(keys)
	payload := chunk.NewChunk([]*chunk.Vector{chunk.NewVector(common.Uint64, 6)}, 6)
	payload.SetCount(6)
	require.NoError(t, ht.AddChunk(groups, payload))

	assert.Equal(t, 6, ht.Entries())
	assert.GreaterOrEqual(t, ht.MaxChain(), 5)

	groupRows, _ := drain(t, ht, []common.ScalarType{common.Int64}, []common.ScalarType{common.Uint64})
	seen := map[int64]bool{}
	for _, g := range groupRows {
		assert.False(t, seen[g[0]], "key %d emitted twice", g[0])
		seen[g[0]] = true
	}
	assert.Len(t, seen, 6)
	for _, k := range keys {
		assert.True(t, seen[k], "key %d missing from scan", k)
	}
}

func TestAddChunk_BatchIndependence(t *testing.T) {
	keys := []int64{1, 1, 2, 1, 3, 2}
	vals := []int64{10, 20, 30, 40, 50, 60}

	run := func(batches [][2]int) map[int64]float64 {
		descs := []Descriptor{{Kind: Sum, Typ: common.Int64}}
		ht, err := NewHashTable(64, []int{8}, 8, descs, false)
		require.NoError(t, err)
		for _, b := range batches {
			lo, hi := b[0], b[1]
			groups := groupsChunk(keys[lo:hi])
			payload := payloadChunk(vals[lo:hi])
			require.NoError(t, ht.AddChunk(groups, payload))
		}
		groupRows, resultRows := drain(t, ht, []common.ScalarType{common.Int64}, []common.ScalarType{common.Int64})
		got := map[int64]float64{}
		for i, g := range groupRows {
			got[g[0]] = resultRows[i][0]
		}
		return got
	}

	oneBatch := run([][2]int{{0, 6}})
	sixBatches := run([][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}})
	twoBatches := run([][2]int{{0, 3}, {3, 6}})

	assert.Equal(t, oneBatch, sixBatches)
	assert.Equal(t, oneBatch, twoBatches)
}

func TestNewHashTable_ParallelRejected(t *testing.T) {
	descs := []Descriptor{{Kind: CountStar}}
	_, err := NewHashTable(16, []int{8}, 0, descs, true)
	require.Error(t, err)
	var niErr *NotImplementedError
	assert.ErrorAs(t, err, &niErr)
}

// TestNewHashTable_UnknownAggKindRejected guards the validation NewHashTable
// runs before computing the tuple layout: an out-of-range AggKind must fail
// construction as NotImplemented, not panic inside StateWidth.
func TestNewHashTable_UnknownAggKindRejected(t *testing.T) {
	descs := []Descriptor{{Kind: AggKind(99)}}
	_, err := NewHashTable(16, []int{8}, 0, descs, false)
	require.Error(t, err)
	var niErr *NotImplementedError
	assert.ErrorAs(t, err, &niErr)
}

// TestNewHashTable_UnsupportedScalarTypeRejected is the Typ-side twin: an
// out-of-range ScalarType on a SUM/AVG/MIN/MAX descriptor must fail
// construction as NotImplemented, not panic inside ScalarType.Width.
func TestNewHashTable_UnsupportedScalarTypeRejected(t *testing.T) {
	descs := []Descriptor{{Kind: Sum, Typ: common.ScalarType(99)}}
	_, err := NewHashTable(16, []int{8}, 8, descs, false)
	require.Error(t, err)
	var niErr *NotImplementedError
	assert.ErrorAs(t, err, &niErr)
}

// TestScan_AvgOverDecimalFailsNotImplemented covers S7: the failing Scan
// must not disturb the table. Since a table's descriptor list is fixed at
// construction, "usable" here means Entries()/MaxChain() are unaffected and
// a subsequent AddChunk still succeeds — not that a later Scan call can
// somehow drop the offending AVG aggregate and succeed.
func TestScan_AvgOverDecimalFailsNotImplemented(t *testing.T) {
	descs := []Descriptor{{Kind: Avg, Typ: common.DecimalT}}
	ht, err := NewHashTable(16, []int{8}, common.DecimalT.Width(), descs, false)
	require.NoError(t, err)

	groups := groupsChunk([]int64{1})
	payload := chunk.NewChunk([]*chunk.Vector{chunk.NewVector(common.DecimalT, 1)}, 1)
	payload.SetCount(1)
	require.NoError(t, ht.AddChunk(groups, payload))

	entriesBefore, chainBefore := ht.Entries(), ht.MaxChain()

	position := 0
	outGroups := newResultChunk([]common.ScalarType{common.Int64}, 16)
	outResult := newResultChunk([]common.ScalarType{common.Float64}, 16)
	err = ht.Scan(&position, outGroups, outResult)
	require.Error(t, err)
	var niErr *NotImplementedError
	assert.ErrorAs(t, err, &niErr)

	assert.Equal(t, entriesBefore, ht.Entries())
	assert.Equal(t, chainBefore, ht.MaxChain())

	moreGroups := groupsChunk([]int64{2})
	morePayload := chunk.NewChunk([]*chunk.Vector{chunk.NewVector(common.DecimalT, 1)}, 1)
	morePayload.SetCount(1)
	require.NoError(t, ht.AddChunk(moreGroups, morePayload))
	assert.Equal(t, entriesBefore+1, ht.Entries())

	// A second Scan over the same fixed descriptor list fails identically.
	position = 0
	err = ht.Scan(&position, outGroups, outResult)
	require.Error(t, err)
	assert.ErrorAs(t, err, &niErr)
}

func TestHashTable_ResizeUnsupported(t *testing.T) {
	descs := []Descriptor{{Kind: CountStar}}
	ht, err := NewHashTable(16, []int{8}, 0, descs, false)
	require.NoError(t, err)

	err = ht.Resize(32)
	require.Error(t, err)
	var niErr *NotImplementedError
	assert.ErrorAs(t, err, &niErr)
}
