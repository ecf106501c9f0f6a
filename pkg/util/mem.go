package util

// BytesAllocator abstracts the table's one buffer allocation so the
// failure path (OutOfMemory, rather than a bare panic) has somewhere to
// hook in without pulling cgo into the hot path.
type BytesAllocator interface {
	Alloc(sz int) []byte
	Free([]byte)
}

type DefaultAllocator struct {
}

func (alloc *DefaultAllocator) Alloc(sz int) []byte {
	return make([]byte, sz)
}

func (alloc *DefaultAllocator) Free(bytes []byte) {
}

var GAlloc BytesAllocator = &DefaultAllocator{}
