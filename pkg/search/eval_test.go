package search

import (
	"math/rand"
	"testing"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func swapMarks(board uttt.Board) uttt.Board {
	for r := range board {
		for c := range board[r] {
			if board[r][c] != 0 {
				board[r][c] = 3 - board[r][c]
			}
		}
	}
	return board
}

func drawnBoards(pos *uttt.Position) int {
	n := 0
	for bi := 0; bi < 9; bi++ {
		if pos.LocalResultAt(bi) == uttt.LocalDrawn {
			n++
		}
	}
	return n
}

// Collect positions from seeded random playouts
func randomPositions(t *testing.T, games int) []*uttt.Position {
	t.Helper()
	r := rand.New(rand.NewSource(7))
	positions := []*uttt.Position{}

	for i := 0; i < games; i++ {
		pos := uttt.NewPosition()
		for pos.Result() == uttt.InProgress {
			moves := pos.LegalMoves()
			require.True(t, pos.ApplyMove(moves[r.Intn(len(moves))]))
			if pos.Ply()%7 == 0 {
				positions = append(positions, pos.Clone())
			}
		}
		positions = append(positions, pos.Clone())
	}
	return positions
}

func TestEvaluateStartingPosition(t *testing.T) {
	pos := uttt.NewPosition()
	assert.Zero(t, Evaluate(pos, uttt.PlayerX))
	assert.Zero(t, Evaluate(pos, uttt.PlayerO))
	assert.Zero(t, Evaluate(pos, uttt.PlayerNone))
}

func TestEvaluateRewardsLocalWinAndThreats(t *testing.T) {
	pos, err := uttt.FromNotation("xxx6/1o7/9/9/9/9/9/9/9 o A3a3")
	require.NoError(t, err)

	x := Evaluate(pos, uttt.PlayerX)
	assert.Greater(t, x, DefaultWeights.LocalWin-10)
	assert.Less(t, Evaluate(pos, uttt.PlayerO), -DefaultWeights.LocalWin+10)

	// a single two-in-line is worth a threat more than the same marks apart
	threat, err := uttt.FromNotation("xx7/9/9/9/9/9/9/9/9 o -")
	require.NoError(t, err)
	apart, err := uttt.FromNotation("x2x5/9/9/9/9/9/9/9/9 o -")
	require.NoError(t, err)

	w := DefaultWeights
	w.Cell = [3][3]float64{}
	assert.Equal(t, w.Threat, w.Score(threat, uttt.PlayerX))
	assert.Equal(t, 0.0, w.Score(apart, uttt.PlayerX))
	assert.Equal(t, -w.OppThreat, w.Score(threat, uttt.PlayerO))
}

func TestEvaluateIsSymmetric(t *testing.T) {
	for _, pos := range randomPositions(t, 40) {
		last, _ := pos.LastMove()
		mirror, err := uttt.FromBoard(swapMarks(pos.Board()), last, pos.ToMove().Opponent())
		require.NoError(t, err)

		for _, w := range []Weights{DefaultWeights, ClassicWeights} {
			assert.Equal(t, w.Score(pos, uttt.PlayerX), w.Score(mirror, uttt.PlayerO), pos.Notation())
			assert.Equal(t, w.Score(pos, uttt.PlayerO), w.Score(mirror, uttt.PlayerX), pos.Notation())
		}

		// every term but the drawn board penalty is zero-sum
		sum := Evaluate(pos, uttt.PlayerX) + Evaluate(pos, uttt.PlayerO)
		assert.InDelta(t, -2*DefaultWeights.LocalDraw*float64(drawnBoards(pos)), sum, 1e-9, pos.Notation())
	}
}

func TestClassicWeightsAreNotZeroSum(t *testing.T) {
	// o threat in board 0, costs x more than it gains o
	pos, err := uttt.FromNotation("oo7/9/9/9/9/9/9/9/9 x -")
	require.NoError(t, err)

	w := ClassicWeights
	w.Cell = [3][3]float64{}
	assert.Equal(t, -w.OppThreat, w.Score(pos, uttt.PlayerX))
	assert.Equal(t, w.Threat, w.Score(pos, uttt.PlayerO))
}

func TestEvaluateMetaLine(t *testing.T) {
	pos, err := uttt.FromNotation("xxxxxx3/9/9/9/9/9/9/9/9 o -")
	require.NoError(t, err)

	w := Weights{MetaThreat: 100, MetaOppThreat: 40, MetaWin: 300}
	assert.Equal(t, 100.0, w.Score(pos, uttt.PlayerX))
	assert.Equal(t, -40.0, w.Score(pos, uttt.PlayerO))
}
