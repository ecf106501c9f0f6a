package main

import (
	"math/rand"

	"github.com/vecbase/aggtable/pkg/aggregate"
	"github.com/vecbase/aggtable/pkg/chunk"
	"github.com/vecbase/aggtable/pkg/common"
)

// demoDescriptors is the fixed aggregate set aggbench exercises: one
// grouping key and one COUNT_STAR/SUM/AVG/MIN/MAX each over a single
// int64 payload column.
func demoDescriptors() []aggregate.Descriptor {
	return []aggregate.Descriptor{
		{Kind: aggregate.CountStar},
		{Kind: aggregate.Sum, Typ: common.Int64},
		{Kind: aggregate.Avg, Typ: common.Int64},
		{Kind: aggregate.Min, Typ: common.Int64},
		{Kind: aggregate.Max, Typ: common.Int64},
	}
}

func demoPayloadWidth(descs []aggregate.Descriptor) int {
	w := 0
	for _, d := range descs {
		w += d.StateWidth()
	}
	return w
}

// genBatch produces one batch of n rows whose keys are drawn uniformly
// from [0, cardinality) and whose payload value is a random int64 in
// [0, 1000).
func genBatch(rng *rand.Rand, n, cardinality int) (*chunk.Chunk, *chunk.Chunk) {
	keys := chunk.NewVector(common.Int64, n)
	vals := chunk.NewVector(common.Int64, n)
	keyData := chunk.Slice[int64](keys)
	valData := chunk.Slice[int64](vals)
	for i := 0; i < n; i++ {
		keyData[i] = int64(rng.Intn(cardinality))
		valData[i] = int64(rng.Intn(1000))
	}
	keys.SetCount(n)
	vals.SetCount(n)

	groups := chunk.NewChunk([]*chunk.Vector{keys}, n)
	groups.SetCount(n)

	payloadCols := []*chunk.Vector{
		chunk.NewVector(common.Uint64, n), // COUNT_STAR slot, ignored
		vals, vals, vals, vals,
	}
	payload := chunk.NewChunk(payloadCols, n)
	payload.SetCount(n)
	return groups, payload
}
