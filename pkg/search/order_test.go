package search

import (
	"testing"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/stretchr/testify/assert"
)

func TestMovePriority(t *testing.T) {
	assert.Equal(t, 3, MovePriority(uttt.Move{Row: 4, Col: 4}))
	assert.Equal(t, 3, MovePriority(uttt.Move{Row: 1, Col: 7}))
	assert.Equal(t, 2, MovePriority(uttt.Move{Row: 0, Col: 0}))
	assert.Equal(t, 2, MovePriority(uttt.Move{Row: 5, Col: 3}))
	assert.Equal(t, 1, MovePriority(uttt.Move{Row: 0, Col: 1}))
	assert.Equal(t, 1, MovePriority(uttt.Move{Row: 7, Col: 6}))
}

func TestOrderMoves(t *testing.T) {
	moves := uttt.NewPosition().LegalMoves()
	ordered := OrderMoves(moves)

	assert.ElementsMatch(t, moves, ordered)
	assert.Len(t, ordered, 81)

	// centres first, then corners, then edges
	for i := 1; i < len(ordered); i++ {
		assert.GreaterOrEqual(t, MovePriority(ordered[i-1]), MovePriority(ordered[i]))
	}
	assert.Equal(t, uttt.Move{Row: 1, Col: 1}, ordered[0])
	assert.Equal(t, uttt.Move{Row: 0, Col: 0}, ordered[9])

	// stable within the same priority, input untouched
	assert.Equal(t, uttt.Move{Row: 0, Col: 0}, moves[0])
	assert.Equal(t, uttt.Move{Row: 1, Col: 4}, ordered[1])
}

func TestOrderMovesEmpty(t *testing.T) {
	assert.Empty(t, OrderMoves(nil))
}
