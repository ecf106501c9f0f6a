// Copyright 2023-2024 daviszhen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package aggregate

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/vecbase/aggtable/pkg/chunk"
	"github.com/vecbase/aggtable/pkg/common"
	"github.com/vecbase/aggtable/pkg/util"
)

const (
	flagEmpty byte = 0
	flagFull  byte = 1
)

// HashTable is a single-threaded, open-addressed, linear-probed grouped
// aggregation table. Every slot is a fixed-stride byte record
// [FLAG][GROUP KEYS][PAYLOAD][COUNT]; capacity is fixed at construction
// and the table never grows or rehashes itself.
type HashTable struct {
	buf      []byte
	capacity int
	layout   *layout
	descs    []Descriptor
	entries  int
	maxChain int
	guard    util.OwnerGuard
}

// NewHashTable allocates a table of capacity slots, with group keys of
// groupWidths (in column order) and the given aggregate descriptors.
// payloadWidth must equal the sum of every non-CountStar descriptor's
// state width; parallel must be false.
func NewHashTable(capacity int, groupWidths []int, payloadWidth int, descs []Descriptor, parallel bool) (*HashTable, error) {
	if parallel {
		return nil, notImplemented("parallel aggregation")
	}
	if capacity <= 0 {
		return nil, notImplemented("non-positive initial capacity")
	}
	for _, d := range descs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	lo := newLayout(groupWidths, descs)
	if lo.payloadWidth != payloadWidth {
		return nil, notImplemented("payload width does not match the aggregate descriptor list")
	}
	buf, err := allocBuffer(capacity * lo.stride)
	if err != nil {
		return nil, err
	}
	util.Info("aggregate table constructed",
		zap.Int("capacity", capacity), zap.Int("stride", lo.stride))
	return &HashTable{
		buf:      buf,
		capacity: capacity,
		layout:   lo,
		descs:    cloneDescriptors(descs),
	}, nil
}

// Resize is declared unsupported regardless of direction: the table is
// sized once at construction or rebuilt empty by the caller.
func (h *HashTable) Resize(newCapacity int) error {
	return notImplemented("resizing a hash table after construction")
}

// Entries is the number of distinct groups currently held.
func (h *HashTable) Entries() int { return h.entries }

// MaxChain is the longest forward probe walk any insert has had to make
// so far, in stride units.
func (h *HashTable) MaxChain() int { return h.maxChain }

func allocBuffer(size int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = &OutOfMemoryError{Requested: size}
		}
	}()
	buf = util.GAlloc.Alloc(size)
	return buf, nil
}

func (h *HashTable) base() unsafe.Pointer {
	return util.BytesSliceToPointer(h.buf)
}

func (h *HashTable) slotPtr(slot int) unsafe.Pointer {
	return util.PointerAdd(h.base(), slot*h.layout.stride)
}

// AddChunk absorbs groups.Count() input rows, creating one new group per
// previously unseen key and folding the rest into existing groups. An
// empty chunk is a no-op.
func (h *HashTable) AddChunk(groups, payload *chunk.Chunk) error {
	h.guard.Check()

	n := groups.Count()
	if n == 0 {
		return nil
	}

	hashes := chunk.Hash(groups.Cols[0], n)
	for i := 1; i < len(groups.Cols); i++ {
		chunk.CombineHash(hashes, groups.Cols[i], n)
	}

	addrs := chunk.Cast(hashes)
	chunk.Modulo(addrs, h.capacity)
	chunk.Multiply(addrs, h.layout.stride)
	homeSlots := chunk.AddBase(addrs, h.base())

	slotAddrs := make([]unsafe.Pointer, n)
	newEntries := make([]int, 0, n)
	updatedEntries := make([]int, 0, n)
	groupBuf := make([]byte, h.layout.groupWidth)

	for i := 0; i < n; i++ {
		h.materializeGroupBytes(groups, i, groupBuf)
		ptr := homeSlots[i]
		slot := int(util.PointerSub(ptr, h.base()) / int64(h.layout.stride))
		chain := 0

		for {
			flag := util.Load[byte](ptr)
			if flag == flagEmpty {
				util.Store[byte](flagFull, ptr)
				keysPtr := util.PointerAdd(ptr, 1)
				util.PointerCopy2(keysPtr, groupBuf, h.layout.groupWidth)
				tailPtr := util.PointerAdd(keysPtr, h.layout.groupWidth)
				util.Memset(tailPtr, 0, h.layout.payloadWidth+8)
				newEntries = append(newEntries, i)
				h.entries++
				slotAddrs[i] = ptr
				break
			}
			keysPtr := util.PointerAdd(ptr, 1)
			if util.PointerMemcmp(keysPtr, util.BytesSliceToPointer(groupBuf), h.layout.groupWidth) == 0 {
				updatedEntries = append(updatedEntries, i)
				slotAddrs[i] = ptr
				break
			}
			slot++
			chain++
			if slot >= h.capacity {
				slot = 0
				ptr = h.base()
			} else {
				ptr = util.PointerAdd(ptr, h.layout.stride)
			}
		}
		if chain > h.maxChain {
			h.maxChain = chain
		}
	}

	for j, d := range h.descs {
		if d.Kind == CountStar {
			continue
		}
		fieldAddrs := chunk.OffsetAll(slotAddrs, h.layout.aggOffsets[j])
		switch d.Kind {
		case Count:
			if len(newEntries) > 0 {
				chunk.ScatterSetCount(payload.Cols[j], fieldAddrs, newEntries)
			}
			if len(updatedEntries) > 0 {
				chunk.ScatterAddOne(fieldAddrs, updatedEntries)
			}
		case Sum, Avg:
			if len(newEntries) > 0 {
				chunk.ScatterSetDispatch(d.Typ, payload.Cols[j], fieldAddrs, newEntries)
			}
			if len(updatedEntries) > 0 {
				chunk.ScatterAddDispatch(d.Typ, payload.Cols[j], fieldAddrs, updatedEntries)
			}
		case Min:
			if len(newEntries) > 0 {
				chunk.ScatterSetDispatch(d.Typ, payload.Cols[j], fieldAddrs, newEntries)
			}
			if len(updatedEntries) > 0 {
				chunk.ScatterMinDispatch(d.Typ, payload.Cols[j], fieldAddrs, updatedEntries)
			}
		case Max:
			if len(newEntries) > 0 {
				chunk.ScatterSetDispatch(d.Typ, payload.Cols[j], fieldAddrs, newEntries)
			}
			if len(updatedEntries) > 0 {
				chunk.ScatterMaxDispatch(d.Typ, payload.Cols[j], fieldAddrs, updatedEntries)
			}
		default:
			return notImplemented("unknown aggregate kind " + d.Kind.String())
		}
	}

	chunk.ScatterAddOneAll(chunk.OffsetAll(slotAddrs, h.layout.countOffset))
	return nil
}

func (h *HashTable) materializeGroupBytes(groups *chunk.Chunk, row int, out []byte) {
	off := 0
	for _, col := range groups.Cols {
		w := col.Typ.Width()
		copy(out[off:off+w], col.Data[row*w:row*w+w])
		off += w
	}
}

// Scan emits up to outResult.MaxSize() live groups starting at slot
// *position, advancing *position past the last slot examined. A call
// that finds no further FULL slot returns an empty chunk and leaves
// *position >= capacity.
func (h *HashTable) Scan(position *int, outGroups, outResult *chunk.Chunk) error {
	h.guard.Check()

	maxSize := outResult.MaxSize()
	if maxSize <= 0 {
		maxSize = outGroups.MaxSize()
	}

	slot := *position
	addrs := make([]unsafe.Pointer, 0, maxSize)
	for slot < h.capacity && len(addrs) < maxSize {
		ptr := h.slotPtr(slot)
		if util.Load[byte](ptr) == flagFull {
			addrs = append(addrs, util.PointerAdd(ptr, 1))
		}
		slot++
	}
	*position = slot

	emitted := len(addrs)
	outGroups.SetCount(emitted)
	outResult.SetCount(emitted)
	if emitted == 0 {
		return nil
	}

	// slotAddrs points at each emitted row's FLAG byte, so every aggregate
	// field is reached by adding its precomputed, slot-relative layout
	// offset rather than walking the payload one aggregate at a time.
	slotAddrs := chunk.OffsetAll(addrs, -1)

	for _, col := range outGroups.Cols {
		w := col.Typ.Width()
		chunk.GatherSetDispatch(col.Typ, addrs, emitted, col)
		chunk.AdvanceAll(addrs, w)
	}

	for i, d := range h.descs {
		if d.Kind == CountStar {
			continue
		}
		fieldAddrs := chunk.OffsetAll(slotAddrs, h.layout.aggOffsets[i])
		switch d.Kind {
		case Avg:
			if !d.Typ.AvgDispatchable() {
				return notImplemented("AVG gather over scalar type " + d.Typ.String())
			}
			offset := h.layout.countOffset - h.layout.aggOffsets[i]
			chunk.GatherAverageDispatch(d.Typ, fieldAddrs, offset, emitted, outResult.Cols[i])
		case Count:
			chunk.GatherSetDispatch(common.Uint64, fieldAddrs, emitted, outResult.Cols[i])
		default: // Sum, Min, Max
			chunk.GatherSetDispatch(d.Typ, fieldAddrs, emitted, outResult.Cols[i])
		}
	}

	for i, d := range h.descs {
		if d.Kind != CountStar {
			continue
		}
		fieldAddrs := chunk.OffsetAll(slotAddrs, h.layout.countOffset)
		chunk.GatherSetDispatch(common.Uint64, fieldAddrs, emitted, outResult.Cols[i])
	}
	return nil
}
