package engine

import (
	"unsafe"
)

const (
	boundLower = 1 << iota
	boundUpper
)

const boundExact = boundLower | boundUpper

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

type transEntry[M comparable] struct {
	key     uint64
	move    M
	score   int32
	depth   int16
	date    uint16
	bound   uint8
	hasMove bool
	horizon bool
}

type transTable[M comparable] struct {
	megabytes int
	entries   []transEntry[M]
	date      uint16
	mask      uint64
}

func newTransTable[M comparable](megabytes int) *transTable[M] {
	var entrySize = int(unsafe.Sizeof(transEntry[M]{}))
	var size = roundPowerOfTwo(1024 * 1024 * megabytes / entrySize)
	return &transTable[M]{
		megabytes: megabytes,
		entries:   make([]transEntry[M], size),
		mask:      uint64(size - 1),
	}
}

func (tt *transTable[M]) Size() int {
	return tt.megabytes
}

func (tt *transTable[M]) IncDate() {
	tt.date++
}

func (tt *transTable[M]) Clear() {
	tt.date = 0
	for i := range tt.entries {
		tt.entries[i] = transEntry[M]{}
	}
}

// Read returns the stored entry for key. horizon reports whether the stored
// subtree had leaves cut by the depth limit.
func (tt *transTable[M]) Read(key uint64) (depth, score, bound int, move optMove[M], horizon, ok bool) {
	var entry = &tt.entries[key&tt.mask]
	if entry.bound == 0 || entry.key != key {
		return
	}
	entry.date = tt.date
	depth = int(entry.depth)
	score = int(entry.score)
	bound = int(entry.bound)
	move = optMove[M]{move: entry.move, ok: entry.hasMove}
	horizon = entry.horizon
	ok = true
	return
}

func (tt *transTable[M]) Update(key uint64, depth, score, bound int, move optMove[M], horizon bool) {
	var entry = &tt.entries[key&tt.mask]
	var replace bool
	if entry.key == key {
		replace = depth >= int(entry.depth)-3 || bound == boundExact
	} else {
		replace = entry.date != tt.date ||
			depth >= int(entry.depth)
	}
	if replace {
		entry.key = key
		entry.score = int32(score)
		entry.depth = int16(depth)
		entry.bound = uint8(bound)
		entry.move = move.move
		entry.hasMove = move.ok
		entry.horizon = horizon
		entry.date = tt.date
	}
}
