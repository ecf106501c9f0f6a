package util

import (
	"bytes"
	"unsafe"
)

func Load[T any](ptr unsafe.Pointer) T {
	return *(*T)(ptr)
}

func Store[T any](val T, ptr unsafe.Pointer) {
	*(*T)(ptr) = val
}

func Memset(ptr unsafe.Pointer, val byte, size int) {
	for i := 0; i < size; i++ {
		Store[byte](val, PointerAdd(ptr, i))
	}
}

func ToSlice[T any](data []byte, pSize int) []T {
	slen := len(data) / pSize
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(data))), slen)
}

func BytesSliceToPointer(data []byte) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(data))
}

func PointerAdd(base unsafe.Pointer, offset int) unsafe.Pointer {
	return unsafe.Add(base, offset)
}

func PointerSub(lhs, rhs unsafe.Pointer) int64 {
	a := uint64(uintptr(lhs))
	b := uint64(uintptr(rhs))
	//uint64
	ret0 := a - b
	ret := int64(ret0)
	if a < b {
		ret = -ret
	}
	return ret
}

func PointerToSlice[T any](base unsafe.Pointer, len int) []T {
	return unsafe.Slice((*T)(base), len)
}

func PointerCopy2(dst unsafe.Pointer, src []byte, len int) {
	dstSlice := PointerToSlice[byte](dst, len)
	copy(dstSlice, src[:len])
}

func PointerMemcmp(lAddr, rAddr unsafe.Pointer, len int) int {
	lSlice := PointerToSlice[byte](lAddr, len)
	rSlice := PointerToSlice[byte](rAddr, len)
	ret := bytes.Compare(lSlice, rSlice)
	return ret
}
