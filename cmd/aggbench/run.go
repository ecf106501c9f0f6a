package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/vecbase/aggtable/pkg/aggregate"
	"github.com/vecbase/aggtable/pkg/chunk"
	"github.com/vecbase/aggtable/pkg/common"
	"github.com/vecbase/aggtable/pkg/util"
)

var runRows int
var runCardinality int
var runSeed int64

var runInfo = "build one aggregate table from a sample batch and print its layout and contents"
var runCmd = &cobra.Command{
	Use:   "run",
	Short: runInfo,
	Long:  runInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnce()
	},
}

func initRunCmd() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVar(&runRows, "rows", 10000, "number of sample rows to insert")
	runCmd.Flags().IntVar(&runCardinality, "cardinality", 20, "number of distinct group keys")
	runCmd.Flags().Int64Var(&runSeed, "seed", 1, "PRNG seed for the sample batch")
}

func runOnce() error {
	descs := demoDescriptors()
	ht, err := aggregate.NewHashTable(aggCfg.Table.InitialCapacity, []int{8}, demoPayloadWidth(descs), descs, false)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(runSeed))
	groups, payload := genBatch(rng, runRows, runCardinality)
	if err := ht.AddChunk(groups, payload); err != nil {
		return err
	}

	if aggCfg.Debug.PrintLayout {
		printLayout(ht)
	}

	resultTyps := []common.ScalarType{common.Uint64, common.Int64, common.Int64, common.Int64, common.Int64}
	printed := 0
	position := 0
	for {
		outGroups := chunk.NewChunk([]*chunk.Vector{chunk.NewVector(common.Int64, 64)}, 64)
		outResult := chunk.NewChunk(resultVectors(resultTyps, 64), 64)
		if err := ht.Scan(&position, outGroups, outResult); err != nil {
			return err
		}
		n := outGroups.Count()
		if n == 0 {
			break
		}
		if aggCfg.Debug.PrintResult {
			printed = printRows(outGroups, outResult, printed, aggCfg.Debug.MaxPrintRows)
		}
	}

	util.Info("run finished")
	fmt.Printf("entries=%d maxChain=%d\n", ht.Entries(), ht.MaxChain())
	return nil
}

func resultVectors(typs []common.ScalarType, size int) []*chunk.Vector {
	vecs := make([]*chunk.Vector, len(typs))
	for i, t := range typs {
		vecs[i] = chunk.NewVector(t, size)
	}
	return vecs
}

func printLayout(ht *aggregate.HashTable) {
	tree := treeprint.NewWithRoot("tuple layout")
	tree.AddNode("FLAG: 1 byte")
	tree.AddNode("GROUP KEYS: 8 bytes")
	tree.AddNode(fmt.Sprintf("PAYLOAD: %d bytes", demoPayloadWidth(demoDescriptors())))
	tree.AddNode("COUNT: 8 bytes")
	fmt.Println(tree.String())
}

func printRows(groups, result *chunk.Chunk, printed, maxRows int) int {
	keyCol := chunk.Slice[int64](groups.Cols[0])
	countCol := chunk.Slice[uint64](result.Cols[0])
	sumCol := chunk.Slice[int64](result.Cols[1])
	avgCol := chunk.Slice[int64](result.Cols[2])
	minCol := chunk.Slice[int64](result.Cols[3])
	maxCol := chunk.Slice[int64](result.Cols[4])
	for i := 0; i < groups.Count() && printed < maxRows; i++ {
		fmt.Printf("key=%d count=%d sum=%d avg=%d min=%d max=%d\n",
			keyCol[i], countCol[i], sumCol[i], avgCol[i], minCol[i], maxCol[i])
		printed++
	}
	return printed
}
