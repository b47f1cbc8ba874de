package search

import (
	"sort"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

// Priority of a move within it's local board: 3 for the centre, 2 for a corner, 1 for an edge
func MovePriority(m uttt.Move) int {
	switch m.SmallIndex() {
	case 4:
		return 3
	case 0, 2, 6, 8:
		return 2
	}
	return 1
}

// Returns a new slice with the same moves, sorted by descending priority.
// The sort is stable, equal priorities keep their relative order.
func OrderMoves(moves []uttt.Move) []uttt.Move {
	ordered := make([]uttt.Move, len(moves))
	copy(ordered, moves)
	sort.SliceStable(ordered, func(i, j int) bool {
		return MovePriority(ordered[i]) > MovePriority(ordered[j])
	})
	return ordered
}
