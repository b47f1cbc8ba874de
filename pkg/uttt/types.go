package uttt

import "github.com/pkg/errors"

// Type defines for the position
type Cell int8
type Player int8
type LocalResult int8
type GameResult int8

// External grid encodings, 0 = empty, 1 = first player, 2 = second player
// (and 3 = drawn local board, for the meta board)
type Board [9][9]int
type MetaBoard [3][3]int

// Enum for the cell values
const (
	CellEmpty Cell = iota
	CellX
	CellO
)

// Enum for the players, values match the cell they put on the board
const (
	PlayerNone Player = iota
	PlayerX
	PlayerO
)

// Enum for the local board state, values match the meta board encoding
const (
	LocalUndecided LocalResult = iota
	LocalWonByX
	LocalWonByO
	LocalDrawn
)

// Enum for the whole game state
const (
	InProgress GameResult = iota
	WonByX
	WonByO
	Drawn
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrInvalidBoard  = errors.New("invalid board")
	ErrInvalidPlayer = errors.New("invalid player")
)

// Get the cell value this player puts on the board
func (p Player) Cell() Cell {
	return Cell(p)
}

// Get the other player
func (p Player) Opponent() Player {
	switch p {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	}
	return PlayerNone
}

func (p Player) Valid() bool {
	return p == PlayerX || p == PlayerO
}

func (p Player) String() string {
	switch p {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	}
	return "-"
}

// Player owning this cell, PlayerNone for an empty one
func (c Cell) Player() Player {
	return Player(c)
}

func (c Cell) Rune() rune {
	switch c {
	case CellX:
		return 'x'
	case CellO:
		return 'o'
	}
	return '.'
}

// Create a cell from a rune
func CellFromRune(r rune) Cell {
	switch r {
	case 'x', 'X':
		return CellX
	case 'o', 'O':
		return CellO
	default:
		return CellEmpty
	}
}

// Local board won by given player
func localWonBy(p Player) LocalResult {
	if p == PlayerX {
		return LocalWonByX
	}
	return LocalWonByO
}

// Winner of the local board, PlayerNone if it's undecided or drawn
func (r LocalResult) Winner() Player {
	switch r {
	case LocalWonByX:
		return PlayerX
	case LocalWonByO:
		return PlayerO
	}
	return PlayerNone
}

func (r LocalResult) Decided() bool {
	return r != LocalUndecided
}

func (r LocalResult) String() string {
	switch r {
	case LocalWonByX:
		return "WonByX"
	case LocalWonByO:
		return "WonByO"
	case LocalDrawn:
		return "Drawn"
	}
	return "Undecided"
}

// Winner of the game, PlayerNone if it's in progress or drawn
func (r GameResult) Winner() Player {
	switch r {
	case WonByX:
		return PlayerX
	case WonByO:
		return PlayerO
	}
	return PlayerNone
}

func (r GameResult) Over() bool {
	return r != InProgress
}

func (r GameResult) String() string {
	switch r {
	case WonByX:
		return "WonByX"
	case WonByO:
		return "WonByO"
	case Drawn:
		return "Drawn"
	}
	return "InProgress"
}

// Game won by given player
func wonBy(p Player) GameResult {
	if p == PlayerX {
		return WonByX
	}
	return WonByO
}
