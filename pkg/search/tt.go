package search

import "github.com/IlikeChooros/go-uttt/pkg/uttt"

type Bound uint8

const (
	BoundExact Bound = iota
	BoundLower       // value is at least this (fail high)
	BoundUpper       // value is at most this (fail low)
)

func (b Bound) String() string {
	switch b {
	case BoundExact:
		return "exact"
	case BoundLower:
		return "lower"
	case BoundUpper:
		return "upper"
	}
	return "unknown"
}

type Entry struct {
	Value float64
	Depth int // remaining depth the value was searched with
	Bound Bound
}

const DefaultTableSize = 1 << 20

// Transposition table, caches search results by position key.
// Not safe for concurrent use, a table lives for a single search call.
type TranspositionTable struct {
	entries map[uttt.Key]Entry
	size    int
	hits    uint64
	stores  uint64
}

// Create a table holding at most 'size' entries (DefaultTableSize if size <= 0)
func NewTranspositionTable(size int) *TranspositionTable {
	if size <= 0 {
		size = DefaultTableSize
	}
	return &TranspositionTable{
		entries: make(map[uttt.Key]Entry, min(size, 1<<12)),
		size:    size,
	}
}

func (tt *TranspositionTable) Probe(key uttt.Key) (Entry, bool) {
	entry, ok := tt.entries[key]
	if ok {
		tt.hits++
	}
	return entry, ok
}

// Store the value, a deeper (or equally deep) search replaces the old entry.
// New keys are dropped once the table is full.
func (tt *TranspositionTable) Store(key uttt.Key, value float64, depth int, bound Bound) {
	old, ok := tt.entries[key]
	if ok && old.Depth > depth {
		return
	}
	if !ok && len(tt.entries) >= tt.size {
		return
	}
	tt.entries[key] = Entry{Value: value, Depth: depth, Bound: bound}
	tt.stores++
}

func (tt *TranspositionTable) Len() int {
	return len(tt.entries)
}

func (tt *TranspositionTable) Hits() uint64 {
	return tt.hits
}

func (tt *TranspositionTable) Stores() uint64 {
	return tt.stores
}

func (tt *TranspositionTable) Clear() {
	clear(tt.entries)
	tt.hits, tt.stores = 0, 0
}

// Scores beyond this are game results, carrying the remaining depth of the terminal node
const winThreshold = WinScore / 2

// Win scores are stored relative to the node, so the distance to the end
// stays right when the entry is probed at another remaining depth
func toTable(value float64, depth int) float64 {
	switch {
	case value > winThreshold:
		return value - float64(depth)
	case value < -winThreshold:
		return value + float64(depth)
	}
	return value
}

func fromTable(value float64, depth int) float64 {
	switch {
	case value > winThreshold:
		return value + float64(depth)
	case value < -winThreshold:
		return value - float64(depth)
	}
	return value
}
