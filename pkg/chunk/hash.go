package chunk

import "github.com/vecbase/aggtable/pkg/util"

// Hash computes out[i] = 64-bit hash of col[i] for the first n rows, using
// the same byte-range murmur-style hash the teacher's util.HashBytes
// implements for its row-storage tuples.
func Hash(col *Vector, n int) []uint64 {
	out := make([]uint64, n)
	w := col.Typ.Width()
	base := util.BytesSliceToPointer(col.Data)
	for i := 0; i < n; i++ {
		out[i] = util.HashBytes(util.PointerAdd(base, i*w), uint64(w))
	}
	return out
}

// CombineHash folds the hash of col[i] into hashes[i] in place, for the
// first n rows. The fold is the same checksum-style combine the teacher
// uses to mix a running hash with a new value: scale the accumulator by a
// fixed odd constant, then XOR in the new hash.
func CombineHash(hashes []uint64, col *Vector, n int) {
	w := col.Typ.Width()
	base := util.BytesSliceToPointer(col.Data)
	for i := 0; i < n; i++ {
		h := util.HashBytes(util.PointerAdd(base, i*w), uint64(w))
		hashes[i] = util.ChecksumU64(hashes[i]) ^ h
	}
}
