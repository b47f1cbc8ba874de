package uttt

// horizontal, vertical and diagonal patterns as bitboards,
// bit i is the small index i of a local board
var _winningBitboardPatterns = [8]uint16{
	0b000000111, 0b000111000, 0b111000000,
	0b001001001, 0b010010010, 0b100100100,
	0b100010001, 0b001010100,
}

// Exported copy of the line bitboards, for the evaluation
var LineMasks = _winningBitboardPatterns

// Same patterns as index triples, shared by the local boards and the meta board
var _lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Winning lines as index triples (0-8), the result is a copy
func Lines() [8][3]int {
	return _lines
}

const fullLocalBoard uint16 = 0b111111111

// Check if given local board is terminated
func _checkLocalTermination(xbb, obb uint16) LocalResult {
	// See if there is any winning patterns
	for i := 0; i < 8; i++ {
		if xbb&_winningBitboardPatterns[i] == _winningBitboardPatterns[i] {
			return LocalWonByX
		}
		if obb&_winningBitboardPatterns[i] == _winningBitboardPatterns[i] {
			return LocalWonByO
		}
	}

	// If not, check if that's a draw (this board is fully filled)
	if (xbb | obb) == fullLocalBoard {
		return LocalDrawn
	}
	return LocalUndecided
}

// Compute the result of the given local board directly from the cells,
// without using the cached bitboards
func (p *Position) ComputeLocalResult(bigIndex int) LocalResult {
	var xbb, obb uint16
	for si := 0; si < 9; si++ {
		m := MoveAt(bigIndex, si)
		switch p.cells[m.Row][m.Col] {
		case CellX:
			xbb |= 1 << si
		case CellO:
			obb |= 1 << si
		}
	}
	return _checkLocalTermination(xbb, obb)
}

// Get the game result, based on the local board results.
// Drawn local boards never take part in a winning line.
// Unlike a plain 'all 81 cells filled' rule, the game is Drawn as soon as
// no local board is undecided, so a game in progress always has a legal move.
func (p *Position) Result() GameResult {
	for i := 0; i < 8; i++ {
		// Check this pattern, and resolve it
		if v := p.local[_lines[i][0]]; v == p.local[_lines[i][1]] &&
			v == p.local[_lines[i][2]] &&
			v != LocalUndecided && v != LocalDrawn {
			return wonBy(v.Winner())
		}
	}

	// No winner, if there is no local board left to play on
	// (every cell filled is a special case of that), it's a draw
	for i := range p.local {
		if p.local[i] == LocalUndecided {
			return InProgress
		}
	}
	return Drawn
}

// Check if the whole game is terminated
func (p *Position) IsTerminated() bool {
	return p.Result() != InProgress
}

// Check if all 81 cells are occupied
func (p *Position) IsFull() bool {
	for i := range p.bitboards[0] {
		if p.bitboards[0][i]|p.bitboards[1][i] != fullLocalBoard {
			return false
		}
	}
	return true
}
