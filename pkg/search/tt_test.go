package search

import (
	"testing"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspositionTable(t *testing.T) {
	tt := NewTranspositionTable(2)
	pos := uttt.NewPosition()
	start := pos.Key()

	_, ok := tt.Probe(start)
	assert.False(t, ok)

	tt.Store(start, 12, 3, BoundExact)
	entry, ok := tt.Probe(start)
	require.True(t, ok)
	assert.Equal(t, Entry{Value: 12, Depth: 3, Bound: BoundExact}, entry)

	// shallower result doesn't replace a deeper one
	tt.Store(start, -4, 2, BoundUpper)
	entry, _ = tt.Probe(start)
	assert.Equal(t, 12.0, entry.Value)

	tt.Store(start, 7, 3, BoundLower)
	entry, _ = tt.Probe(start)
	assert.Equal(t, Entry{Value: 7, Depth: 3, Bound: BoundLower}, entry)

	// full table drops new keys
	pos.ApplyMove(uttt.Move{Row: 4, Col: 4})
	second := pos.Key()
	pos.ApplyMove(uttt.Move{Row: 3, Col: 3})
	third := pos.Key()

	tt.Store(second, 1, 1, BoundExact)
	tt.Store(third, 1, 1, BoundExact)
	assert.Equal(t, 2, tt.Len())
	_, ok = tt.Probe(third)
	assert.False(t, ok)

	assert.Equal(t, uint64(3), tt.Hits())
	tt.Clear()
	assert.Zero(t, tt.Len())
	assert.Zero(t, tt.Hits())
}

func TestBoundString(t *testing.T) {
	assert.Equal(t, "exact", BoundExact.String())
	assert.Equal(t, "lower", BoundLower.String())
	assert.Equal(t, "upper", BoundUpper.String())
}

func TestWinDistanceIsStoredRelative(t *testing.T) {
	tt := NewTranspositionTable(4)
	key := uttt.NewPosition().Key()

	// a win 3 plies below a node searched with remaining depth 4
	win := WinScore + 1
	tt.Store(key, toTable(win, 4), 4, BoundExact)

	entry, ok := tt.Probe(key)
	require.True(t, ok)
	assert.Equal(t, WinScore-3, entry.Value)

	// same node reached with remaining depth 2, still 3 plies away
	assert.Equal(t, WinScore-1, fromTable(entry.Value, 2))
	assert.Equal(t, win, fromTable(entry.Value, 4))

	loss := -WinScore - 2
	assert.Equal(t, -WinScore+3, toTable(loss, 5))
	assert.Equal(t, loss, fromTable(toTable(loss, 5), 5))

	// evaluation scores are kept as they are
	assert.Equal(t, 250.0, toTable(250, 6))
	assert.Equal(t, -250.0, fromTable(-250, 6))
}
