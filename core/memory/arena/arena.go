// Copyright (C) 2026 Fossilize Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package arena implements a bump-pointer memory arena used to hold private,
// deep-copied descriptor trees. Unlike gapid's cgo-backed arena, allocations
// here are ordinary Go memory: the arena exists to give every recorded
// descriptor a single, GC-friendly owner rather than to manage native
// memory, so it is a plain growable list of byte blocks.
package arena

import (
	"unsafe"
)

// minBlockSize is the smallest block the arena will grow by.
const minBlockSize = 64 * 1024

// Arena is a bump allocator. It owns every byte it has ever handed out;
// there is no per-allocation free. The zero value is a ready-to-use, empty
// arena.
type Arena struct {
	blocks []block
	stats  Stats
}

type block struct {
	data   []byte
	offset int
}

// Stats describes the current and historical usage of an Arena.
type Stats struct {
	NumAllocations    int
	NumBytesAllocated int
}

// New returns a new, empty Arena.
func New() *Arena {
	return &Arena{}
}

// Stats returns the current allocation statistics for the arena.
func (a *Arena) Stats() Stats {
	return a.stats
}

// Allocate returns a pointer to a zeroed, arena-owned, contiguous block of
// memory of the given size and alignment. The returned memory is valid for
// as long as the arena itself is reachable.
func (a *Arena) Allocate(size, alignment int) unsafe.Pointer {
	if size == 0 {
		size = 1
	}
	if alignment <= 0 {
		alignment = 1
	}
	if n := len(a.blocks); n > 0 {
		if p, ok := a.blocks[n-1].allocate(size, alignment); ok {
			a.stats.NumAllocations++
			a.stats.NumBytesAllocated += size
			return p
		}
	}
	blockSize := size + alignment
	if blockSize < minBlockSize {
		blockSize = minBlockSize
	}
	a.blocks = append(a.blocks, block{data: make([]byte, blockSize)})
	p, ok := a.blocks[len(a.blocks)-1].allocate(size, alignment)
	if !ok {
		panic("arena: freshly grown block cannot satisfy its own allocation")
	}
	a.stats.NumAllocations++
	a.stats.NumBytesAllocated += size
	return p
}

func (b *block) allocate(size, alignment int) (unsafe.Pointer, bool) {
	base := uintptr(unsafe.Pointer(&b.data[0]))
	cur := base + uintptr(b.offset)
	aligned := (cur + uintptr(alignment) - 1) &^ (uintptr(alignment) - 1)
	pad := int(aligned - cur)
	if b.offset+pad+size > len(b.data) {
		return nil, false
	}
	b.offset += pad
	p := unsafe.Pointer(&b.data[b.offset])
	b.offset += size
	return p, true
}

// Bytes arena-copies src and returns the owned copy. A nil or empty src
// returns a nil slice, matching the "absent" representation used throughout
// the descriptor types.
func Bytes(a *Arena, src []byte) []byte {
	if len(src) == 0 {
		return nil
	}
	p := a.Allocate(len(src), 1)
	dst := unsafe.Slice((*byte)(p), len(src))
	copy(dst, src)
	return dst
}

// String arena-copies s into a private, length-preserving copy.
func String(a *Arena, s string) string {
	if s == "" {
		return ""
	}
	return string(Bytes(a, []byte(s)))
}

// Allocate allocates room for one value of type T from the arena and
// returns a pointer to it, zero-initialized.
func Allocate[T any](a *Arena) *T {
	var zero T
	p := a.Allocate(int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero)))
	return (*T)(p)
}

// Slice arena-copies src into a freshly allocated slice of n elements backed
// by the arena. A zero-length src yields a nil slice.
func Slice[T any](a *Arena, src []T) []T {
	if len(src) == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero)) * len(src)
	align := int(unsafe.Alignof(zero))
	p := a.Allocate(size, align)
	dst := unsafe.Slice((*T)(p), len(src))
	copy(dst, src)
	return dst
}
