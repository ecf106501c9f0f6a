package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vecbase/aggtable/pkg/aggregate"
	"github.com/vecbase/aggtable/pkg/chunk"
)

var benchBatches int
var benchRowsPerBatch int
var benchCardinality int

var benchInfo = "generate batches concurrently, then feed them into one table sequentially and report timing"
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: benchInfo,
	Long:  benchInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBench()
	},
}

func initBenchCmd() {
	RootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVar(&benchBatches, "batches", 64, "number of batches to generate and feed")
	benchCmd.Flags().IntVar(&benchRowsPerBatch, "rows-per-batch", 4096, "rows per generated batch")
	benchCmd.Flags().IntVar(&benchCardinality, "cardinality", 10000, "number of distinct group keys")
}

type genResult struct {
	groups  *chunk.Chunk
	payload *chunk.Chunk
}

// runBench generates every batch concurrently, since batch generation
// touches no shared state, then feeds the table one batch at a time on
// the calling goroutine, since AddChunk declares a single-owner
// precondition (pkg/util.OwnerGuard) that concurrent feeding would trip.
func runBench() error {
	descs := demoDescriptors()
	ht, err := aggregate.NewHashTable(aggCfg.Table.InitialCapacity, []int{8}, demoPayloadWidth(descs), descs, false)
	if err != nil {
		return err
	}

	results := make([]genResult, benchBatches)
	var g errgroup.Group
	for i := 0; i < benchBatches; i++ {
		i := i
		g.Go(func() error {
			rng := rand.New(rand.NewSource(int64(i) + 1))
			groups, payload := genBatch(rng, benchRowsPerBatch, benchCardinality)
			results[i] = genResult{groups: groups, payload: payload}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	start := time.Now()
	for _, r := range results {
		if err := ht.AddChunk(r.groups, r.payload); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	totalRows := benchBatches * benchRowsPerBatch
	fmt.Printf("fed %d rows in %d batches in %s (%.0f rows/sec)\n",
		totalRows, benchBatches, elapsed, float64(totalRows)/elapsed.Seconds())
	fmt.Printf("entries=%d maxChain=%d\n", ht.Entries(), ht.MaxChain())
	return nil
}
