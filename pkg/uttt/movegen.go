package uttt

import "math/bits"

// Generate all legal moves in given position, in row-major order
func (p *Position) LegalMoves() []Move {
	moves := make([]Move, 0, 81)

	if bi, ok := p.ForcedBoard(); ok {
		// Forced local board, only it's empty cells are playable
		return p.appendLocalMoves(moves, bi)
	}

	// Free choice, every empty cell of every undecided local board
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			m := Move{r, c}
			if p.cells[r][c] == CellEmpty && p.local[m.BigIndex()] == LocalUndecided {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// Append empty cells of the given local board, the bitboards are mutally exclusive,
// so the free cells are the complement of their union
func (p *Position) appendLocalMoves(moves []Move, bigIndex int) []Move {
	free := fullLocalBoard ^ (p.bitboards[0][bigIndex] | p.bitboards[1][bigIndex])
	for free != 0 {
		moves = append(moves, MoveAt(bigIndex, bits.TrailingZeros16(free)))
		free &= free - 1
	}
	return moves
}

// Number of legal moves, without allocating them
func (p *Position) CountMoves() int {
	if bi, ok := p.ForcedBoard(); ok {
		return 9 - bits.OnesCount16(p.bitboards[0][bi]|p.bitboards[1][bi])
	}

	count := 0
	for bi := range p.local {
		if p.local[bi] == LocalUndecided {
			count += 9 - bits.OnesCount16(p.bitboards[0][bi]|p.bitboards[1][bi])
		}
	}
	return count
}
