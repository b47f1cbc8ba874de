package uttt

import "github.com/pkg/errors"

// Constants

const (
	StartingPosition string = "9/9/9/9/9/9/9/9/9 x -"
)

// Main position struct
type Position struct {
	cells     [9][9]Cell     // row-major grid of the cells
	bitboards [2][9]uint16   // [player-1][bigIndex], cache of the cells
	local     [9]LocalResult // result of each local board, cache of the cells
	lastMove  Move
	toMove    Player
	history   *StateList // history of the position (for ApplyMove, UndoMove)
}

// Create a heap-allocated, initialized Ultimate Tic Tac Toe position
func NewPosition() *Position {
	pos := &Position{}
	pos.Init()
	return pos
}

// Initialize the position
func (p *Position) Init() {
	p.history = NewStateList()
	p.lastMove = MoveNone
	p.toMove = PlayerX
}

// Make a deep copy of the position (has no shared memory with this object)
func (p *Position) Clone() *Position {
	pos := &Position{
		cells:     p.cells,
		bitboards: p.bitboards,
		local:     p.local,
		lastMove:  p.lastMove,
		toMove:    p.toMove,
		history:   p.history.Clone(),
	}
	return pos
}

func (p *Position) Reset() {
	p.history.Clear()
	p.lastMove = MoveNone
	p.toMove = PlayerX

	// Zero the board
	p.cells = [9][9]Cell{}
	p.bitboards = [2][9]uint16{}
	p.local = [9]LocalResult{}
}

// Make sure bitboards and local results represent the same position as the cells
func (p *Position) setupBoardState() {
	p.bitboards = [2][9]uint16{}
	for r := range p.cells {
		for c := range p.cells[r] {
			m := Move{r, c}
			switch p.cells[r][c] {
			case CellX:
				p.bitboards[0][m.BigIndex()] |= 1 << m.SmallIndex()
			case CellO:
				p.bitboards[1][m.BigIndex()] |= 1 << m.SmallIndex()
			}
		}
	}

	for bi := range p.local {
		p.local[bi] = _checkLocalTermination(p.bitboards[0][bi], p.bitboards[1][bi])
	}
}

// Getters

func (p *Position) Cell(row, col int) Cell {
	return p.cells[row][col]
}

func (p *Position) ToMove() Player {
	return p.toMove
}

// Last move played, ok is false on a position without one
func (p *Position) LastMove() (Move, bool) {
	return p.lastMove, !p.lastMove.IsNone()
}

// Get the local board result, addressed by local row and column (0-2)
func (p *Position) LocalResult(localRow, localCol int) LocalResult {
	return p.local[localRow*3+localCol]
}

// Get the local board result by it's big index (0-8)
func (p *Position) LocalResultAt(bigIndex int) LocalResult {
	return p.local[bigIndex]
}

// Get the bitboards of given local board, bit i is set when
// the cell with small index i is occupied by that player
func (p *Position) Bitboards(bigIndex int) (x, o uint16) {
	return p.bitboards[0][bigIndex], p.bitboards[1][bigIndex]
}

// Get the local board the side to move is restricted to,
// ok is false when the player can choose freely
func (p *Position) ForcedBoard() (bigIndex int, ok bool) {
	if p.lastMove.IsNone() {
		return 0, false
	}

	bigIndex = p.lastMove.SmallIndex()
	if p.local[bigIndex] != LocalUndecided {
		return 0, false
	}
	return bigIndex, true
}

// Moves played on this position so far, oldest first
func (p *Position) History() []Move {
	return p.history.Moves()
}

// Number of plies played on this position
func (p *Position) Ply() int {
	return p.history.Size()
}

// Verifies legality of given move, then if it's valid, make's it on the board
func (p *Position) MakeLegalMove(move Move) error {
	if !p.ApplyMove(move) {
		return errors.Wrapf(ErrIllegalMove, "%s (%d, %d), possible moves=[%s]",
			move.String(), move.Row, move.Col, moveListString(p.LegalMoves()))
	}
	return nil
}

// Make a move for the side to move, fails without changing anything
// if the move is not legal
func (p *Position) ApplyMove(move Move) bool {
	if !p.IsLegal(move) {
		return false
	}
	p.makeMove(move)
	return true
}

// Puts the current piece on the given cell, switches the sides,
// assumes the move is legal
func (p *Position) makeMove(move Move) {
	bigIndex, smallIndex := move.BigIndex(), move.SmallIndex()
	index := int(p.toMove) - 1
	posStateBefore := p.local[bigIndex]

	// Put that piece on the position
	p.cells[move.Row][move.Col] = p.toMove.Cell()
	p.bitboards[index][bigIndex] |= 1 << smallIndex

	// Update local board state, by checking if the board,
	// we are making move on, is terminated
	p.local[bigIndex] = _checkLocalTermination(
		p.bitboards[0][bigIndex], p.bitboards[1][bigIndex],
	)

	// Append new state
	p.history.Append(move, p.lastMove, posStateBefore)
	p.lastMove = move
	p.toMove = p.toMove.Opponent()
}

// Undo last move, from the state list
func (p *Position) UndoMove() {
	if p.history.Size() == 0 {
		return
	}

	last := p.history.Last()
	move := last.move
	bigIndex, smallIndex := move.BigIndex(), move.SmallIndex()

	// The mover is the player who's not on turn now
	mover := p.toMove.Opponent()

	// Remove that piece from it's cell
	p.cells[move.Row][move.Col] = CellEmpty
	p.bitboards[int(mover)-1][bigIndex] &^= 1 << smallIndex

	// Restore local board state, last move and the turn
	p.local[bigIndex] = last.prevLocal
	p.lastMove = last.prevLast
	p.toMove = mover
	p.history.Remove()
}

// Check if given move is legal
func (p *Position) IsLegal(move Move) bool {
	if !move.Valid() || p.cells[move.Row][move.Col] != CellEmpty {
		return false
	}

	bi := move.BigIndex()
	if forced, ok := p.ForcedBoard(); ok && forced != bi {
		return false
	}

	// Decided local boards are off-limits, even under free choice
	return p.local[bi] == LocalUndecided
}
