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

package arena_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DuckSoft/Fossilize/core/memory/arena"
)

func TestArenaStats(t *testing.T) {
	a := arena.New()
	assert.Equal(t, arena.Stats{}, a.Stats())

	a.Allocate(10, 4)
	assert.Equal(t, 1, a.Stats().NumAllocations)
	assert.GreaterOrEqual(t, a.Stats().NumBytesAllocated, 10)
}

func TestArenaAllocateIsZeroed(t *testing.T) {
	a := arena.New()
	p := a.Allocate(32, 8)
	buf := unsafe.Slice((*byte)(p), 32)
	for _, b := range buf {
		require.Zero(t, b)
	}
}

func TestArenaGrowsAcrossBlocks(t *testing.T) {
	a := arena.New()
	// Force at least two blocks by asking for more than the minimum block
	// size across two allocations.
	a.Allocate(70*1024, 8)
	a.Allocate(70*1024, 8)
	assert.Equal(t, 2, a.Stats().NumAllocations)
}

func TestBytesCopiesAndIsIndependent(t *testing.T) {
	a := arena.New()
	src := []byte{1, 2, 3, 4}
	dst := arena.Bytes(a, src)
	require.Equal(t, src, dst)
	src[0] = 0xff
	assert.Equal(t, byte(1), dst[0], "arena copy must not alias the source slice")
}

func TestBytesEmptyIsNil(t *testing.T) {
	a := arena.New()
	assert.Nil(t, arena.Bytes(a, nil))
	assert.Nil(t, arena.Bytes(a, []byte{}))
}

func TestStringRoundTrips(t *testing.T) {
	a := arena.New()
	got := arena.String(a, "hello fossilize")
	assert.Equal(t, "hello fossilize", got)
}

func TestSliceCopiesAndIsIndependent(t *testing.T) {
	a := arena.New()
	src := []uint32{1, 2, 3}
	dst := arena.Slice(a, src)
	require.Equal(t, src, dst)
	src[0] = 99
	assert.Equal(t, uint32(1), dst[0])
}

func TestAllocateGeneric(t *testing.T) {
	a := arena.New()
	type point struct{ X, Y int32 }
	p := arena.Allocate[point](a)
	assert.Equal(t, point{}, *p)
	p.X = 5
	assert.Equal(t, int32(5), p.X)
}
