package uttt

import "github.com/pkg/errors"

// Canonical fixed-width encoding of a position: two bits per cell (162 bits),
// the side to move and the forced local board index (9 = free choice).
// Comparable, so it can be used directly as a map key.
type Key [3]uint64

const (
	keyTurnShift   = 34
	keyForcedShift = 36
	freeChoice     = 9
)

// Compute the canonical key of the position
func (p *Position) Key() Key {
	var key Key
	for i := 0; i < 81; i++ {
		cell := uint64(p.cells[i/9][i%9])
		key[i/32] |= cell << (2 * (i % 32))
	}

	forced := uint64(freeChoice)
	if bi, ok := p.ForcedBoard(); ok {
		forced = uint64(bi)
	}
	key[2] |= uint64(p.toMove) << keyTurnShift
	key[2] |= forced << keyForcedShift
	return key
}

// Get the 9x9 integer grid of the cells (0 = empty, 1 = X, 2 = O)
func (p *Position) Board() Board {
	var board Board
	for r := range p.cells {
		for c := range p.cells[r] {
			board[r][c] = int(p.cells[r][c])
		}
	}
	return board
}

// Get the 3x3 integer grid of the local results (0 = undecided, 1 = X, 2 = O, 3 = drawn)
func (p *Position) MetaBoard() MetaBoard {
	var meta MetaBoard
	for bi, v := range p.local {
		meta[bi/3][bi%3] = int(v)
	}
	return meta
}

// Create a position from the external grid encoding, the previous move
// (MoveNone if there is none) and the side to move.
// The history is empty, local results are recomputed from the cells.
func FromBoard(board Board, prev Move, toMove Player) (*Position, error) {
	if !toMove.Valid() {
		return nil, errors.Wrapf(ErrInvalidPlayer, "player %d", toMove)
	}

	pos := NewPosition()
	for r := range board {
		for c, v := range board[r] {
			if v < int(CellEmpty) || v > int(CellO) {
				return nil, errors.Wrapf(ErrInvalidBoard, "cell (%d, %d) has value %d", r, c, v)
			}
			pos.cells[r][c] = Cell(v)
		}
	}

	if !prev.IsNone() {
		if !prev.Valid() {
			return nil, errors.Wrapf(ErrInvalidBoard, "previous move (%d, %d) is out of range", prev.Row, prev.Col)
		}
		if pos.cells[prev.Row][prev.Col] == CellEmpty {
			return nil, errors.Wrapf(ErrInvalidBoard, "previous move (%d, %d) points at an empty cell", prev.Row, prev.Col)
		}
	}

	pos.lastMove = prev
	pos.toMove = toMove
	pos.setupBoardState()
	return pos, nil
}
