package uttt

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// x wins the row 0, o has no line
var (
	patternXWins = [3][3]int{{1, 1, 1}, {2, 2, 1}, {1, 2, 2}}
	patternOWins = [3][3]int{{2, 2, 2}, {1, 1, 2}, {2, 1, 1}}
	patternDrawn = [3][3]int{{1, 2, 1}, {1, 2, 2}, {2, 1, 1}}
)

// Build a board, by filling each local board with given pattern
func boardFromPatterns(patterns [9][3][3]int) Board {
	var board Board
	for bi, pattern := range patterns {
		for si := 0; si < 9; si++ {
			m := MoveAt(bi, si)
			board[m.Row][m.Col] = pattern[si/3][si%3]
		}
	}
	return board
}

func playMoves(t *testing.T, pos *Position, moves ...Move) {
	t.Helper()
	for _, m := range moves {
		require.NoError(t, pos.MakeLegalMove(m), "move %v", m)
	}
}

func emptyCellsOf(pos *Position, bigIndex int) []Move {
	moves := []Move{}
	for si := 0; si < 9; si++ {
		m := MoveAt(bigIndex, si)
		if pos.Cell(m.Row, m.Col) == CellEmpty {
			moves = append(moves, m)
		}
	}
	return moves
}

func TestStartingPosition(t *testing.T) {
	pos := NewPosition()

	assert.Equal(t, StartingPosition, pos.Notation())
	assert.Equal(t, PlayerX, pos.ToMove())
	assert.Equal(t, InProgress, pos.Result())
	assert.Len(t, pos.LegalMoves(), 81)
	assert.Equal(t, 81, pos.CountMoves())

	_, ok := pos.LastMove()
	assert.False(t, ok)
	_, ok = pos.ForcedBoard()
	assert.False(t, ok)
}

func TestFirstMoveForcesCenterBoard(t *testing.T) {
	pos := NewPosition()
	playMoves(t, pos, Move{4, 4})

	forced, ok := pos.ForcedBoard()
	require.True(t, ok)
	assert.Equal(t, 4, forced)
	assert.Equal(t, PlayerO, pos.ToMove())

	moves := pos.LegalMoves()
	assert.ElementsMatch(t, emptyCellsOf(pos, 4), moves)
	assert.Len(t, moves, 8)
	for _, m := range moves {
		assert.Equal(t, 1, m.Row/3)
		assert.Equal(t, 1, m.Col/3)
	}
}

func TestIllegalMoveDoesNotMutate(t *testing.T) {
	pos := NewPosition()
	playMoves(t, pos, Move{4, 4})
	before := pos.Notation()

	for _, m := range []Move{{4, 4}, {0, 0}, {9, 0}, {-1, 3}, MoveNone} {
		assert.False(t, pos.ApplyMove(m), "move %v", m)
		assert.Equal(t, before, pos.Notation())
		assert.Equal(t, 1, pos.Ply())
	}

	err := pos.MakeLegalMove(Move{0, 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestLocalBoardWonImmediately(t *testing.T) {
	pos := NewPosition()
	playMoves(t, pos,
		Move{0, 0}, Move{1, 1}, Move{3, 3}, Move{2, 2}, Move{6, 7},
		Move{0, 3}, Move{0, 1}, Move{0, 4}, Move{0, 5}, Move{0, 6},
	)
	require.Equal(t, LocalUndecided, pos.LocalResult(0, 0))

	playMoves(t, pos, Move{0, 2})
	assert.Equal(t, LocalWonByX, pos.LocalResult(0, 0))
	assert.Equal(t, InProgress, pos.Result())
	assert.Equal(t, 1, pos.MetaBoard()[0][0])
}

func TestTopMetaRowWins(t *testing.T) {
	pos, err := FromNotation("xxxxxxxx1/9/9/oo1oo1oo1/9/9/9/9/9 x -")
	require.NoError(t, err)
	require.Equal(t, LocalWonByX, pos.LocalResult(0, 0))
	require.Equal(t, LocalWonByX, pos.LocalResult(0, 1))
	require.Equal(t, InProgress, pos.Result())

	playMoves(t, pos, Move{0, 8})
	assert.Equal(t, WonByX, pos.Result())
	assert.Equal(t, PlayerX, pos.Result().Winner())
	assert.Equal(t, LocalUndecided, pos.LocalResult(1, 1))
	assert.Equal(t, LocalUndecided, pos.LocalResult(2, 2))
}

func TestLinesCannotChangeTheRules(t *testing.T) {
	lines := Lines()
	for i := range lines {
		lines[i] = [3]int{4, 4, 4}
	}
	assert.Equal(t, [3]int{0, 1, 2}, Lines()[0])

	pos, err := FromNotation("xxxxxxxx1/9/9/oo1oo1oo1/9/9/9/9/9 x -")
	require.NoError(t, err)
	playMoves(t, pos, Move{0, 8})
	assert.Equal(t, WonByX, pos.Result())
}

func TestFullBoardWithoutMetaLineIsDrawn(t *testing.T) {
	var patterns [9][3][3]int
	for i := range patterns {
		patterns[i] = patternDrawn
	}
	pos, err := FromBoard(boardFromPatterns(patterns), MoveNone, PlayerX)
	require.NoError(t, err)

	assert.True(t, pos.IsFull())
	assert.Equal(t, Drawn, pos.Result())
	assert.Empty(t, pos.LegalMoves())

	// Won local boards, but no line on the meta board
	meta := [9][3][3]int{
		patternXWins, patternOWins, patternXWins,
		patternXWins, patternOWins, patternOWins,
		patternOWins, patternXWins, patternXWins,
	}
	pos, err = FromBoard(boardFromPatterns(meta), MoveNone, PlayerO)
	require.NoError(t, err)
	assert.True(t, pos.IsFull())
	assert.Equal(t, Drawn, pos.Result())
}

func TestDrawnLocalBoardsNeverFormALine(t *testing.T) {
	var patterns [9][3][3]int
	patterns[0], patterns[1], patterns[2] = patternDrawn, patternDrawn, patternDrawn
	pos, err := FromBoard(boardFromPatterns(patterns), MoveNone, PlayerX)
	require.NoError(t, err)

	assert.Equal(t, MetaBoard{{3, 3, 3}, {0, 0, 0}, {0, 0, 0}}, pos.MetaBoard())
	assert.Equal(t, InProgress, pos.Result())

	// X X drawn in a line is not a win either
	patterns[0], patterns[1] = patternXWins, patternXWins
	pos, err = FromBoard(boardFromPatterns(patterns), MoveNone, PlayerX)
	require.NoError(t, err)
	assert.Equal(t, InProgress, pos.Result())
}

func TestNoUndecidedBoardLeftIsDrawn(t *testing.T) {
	// Every local board decided with empty cells left and no meta line,
	// there is nowhere to play, so the game can't be in progress
	meta := [9][3][3]int{
		patternXWins, patternOWins, patternXWins,
		patternXWins, patternOWins, patternOWins,
		patternOWins, patternXWins, patternXWins,
	}
	board := boardFromPatterns(meta)
	board[2][0] = 0 // bottom left of x's won board 0
	pos, err := FromBoard(board, MoveNone, PlayerX)
	require.NoError(t, err)

	assert.False(t, pos.IsFull())
	assert.Empty(t, pos.LegalMoves())
	assert.Equal(t, Drawn, pos.Result())
}

func TestDecidedForcedBoardGivesFreeChoice(t *testing.T) {
	// Board 0 is won by x, last move sends o there
	pos, err := FromNotation("xxx6/1o7/9/9/9/9/9/9/9 o A3a3")
	require.NoError(t, err)
	require.Equal(t, LocalWonByX, pos.LocalResultAt(0))

	_, ok := pos.ForcedBoard()
	assert.False(t, ok)

	moves := pos.LegalMoves()
	expected := []Move{}
	for bi := 1; bi < 9; bi++ {
		expected = append(expected, emptyCellsOf(pos, bi)...)
	}
	assert.ElementsMatch(t, expected, moves)
	for _, m := range moves {
		assert.NotEqual(t, 0, m.BigIndex(), "move %v inside decided board", m)
	}

	// The empty cells of the decided board stay off-limits
	assert.False(t, pos.IsLegal(Move{2, 2}))
	assert.True(t, pos.IsLegal(Move{8, 8}))
}

func TestUndoMove(t *testing.T) {
	pos := NewPosition()
	notations := []string{pos.Notation()}
	keys := []Key{pos.Key()}

	moves := []Move{
		{0, 0}, {1, 1}, {3, 3}, {2, 2}, {6, 7},
		{0, 3}, {0, 1}, {0, 4}, {0, 5}, {0, 6}, {0, 2},
	}
	for _, m := range moves {
		playMoves(t, pos, m)
		notations = append(notations, pos.Notation())
		keys = append(keys, pos.Key())
	}
	assert.Equal(t, moves, pos.History())

	for i := len(moves) - 1; i >= 0; i-- {
		pos.UndoMove()
		assert.Equal(t, notations[i], pos.Notation())
		assert.Equal(t, keys[i], pos.Key())
		assert.Equal(t, i, pos.Ply())
	}
	assert.Equal(t, LocalUndecided, pos.LocalResultAt(0))

	// Nothing to undo
	pos.UndoMove()
	assert.Equal(t, StartingPosition, pos.Notation())
}

func TestCloneHasNoSharedMemory(t *testing.T) {
	pos := NewPosition()
	playMoves(t, pos, Move{4, 4})

	clone := pos.Clone()
	playMoves(t, clone, Move{3, 3})

	assert.Equal(t, 1, pos.Ply())
	assert.Equal(t, CellEmpty, pos.Cell(3, 3))
	assert.Equal(t, 2, clone.Ply())

	clone.UndoMove()
	clone.UndoMove()
	assert.Equal(t, 1, pos.Ply())
	assert.Equal(t, CellX, pos.Cell(4, 4))
}

// swap x and o on the board
func swapped(board Board) Board {
	for r := range board {
		for c := range board[r] {
			if board[r][c] != 0 {
				board[r][c] = 3 - board[r][c]
			}
		}
	}
	return board
}

func TestRandomPlayout(t *testing.T) {
	r := rand.New(rand.NewSource(22))

	for i := 0; i < 300; i++ {
		t.Run(fmt.Sprintf("Playout-%d", i), func(t *testing.T) {
			pos := NewPosition()
			for pos.Result() == InProgress {
				moves := pos.LegalMoves()
				require.NotEmpty(t, moves, "no legal moves in %s", pos.Notation())
				require.Equal(t, len(moves), pos.CountMoves())

				// forced board property
				if forced, ok := pos.ForcedBoard(); ok {
					require.ElementsMatch(t, emptyCellsOf(pos, forced), moves)
				} else {
					for _, m := range moves {
						require.Equal(t, LocalUndecided, pos.LocalResultAt(m.BigIndex()))
					}
				}

				mover := pos.ToMove()
				before := pos.Notation()
				move := moves[r.Intn(len(moves))]
				require.True(t, pos.ApplyMove(move))
				require.Equal(t, mover.Opponent(), pos.ToMove())
				require.Equal(t, mover.Cell(), pos.Cell(move.Row, move.Col))

				// cached local results never drift from the cells
				for bi := 0; bi < 9; bi++ {
					require.Equal(t, pos.ComputeLocalResult(bi), pos.LocalResultAt(bi))
				}
				require.Equal(t, pos.Result(), pos.Result())

				// undo & redo is exact
				pos.UndoMove()
				require.Equal(t, before, pos.Notation())
				require.True(t, pos.ApplyMove(move))
			}

			// result is symmetric under swapping the marks
			last, _ := pos.LastMove()
			mirror, err := FromBoard(swapped(pos.Board()), last, pos.ToMove().Opponent())
			require.NoError(t, err)
			require.Equal(t, pos.Result().Winner().Opponent(), mirror.Result().Winner())
			if pos.Result() == Drawn {
				require.Equal(t, Drawn, mirror.Result())
			}
		})
	}
}

func BenchmarkLegalMoves(b *testing.B) {
	pos, err := FromNotation("xxx6/1o7/9/9/9/9/9/9/9 o A3a3")
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pos.LegalMoves()
	}
}
