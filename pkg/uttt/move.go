package uttt

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// A single cell on the 9x9 board, 0-indexed
type Move struct {
	Row int
	Col int
}

// No move, for example there is no 'last move' on the starting position
var MoveNone = Move{-1, -1}

// Create a move, based on big and small indexes
func MoveAt(bigIndex, smallIndex int) Move {
	return Move{
		Row: (bigIndex/3)*3 + smallIndex/3,
		Col: (bigIndex%3)*3 + smallIndex%3,
	}
}

func (m Move) IsNone() bool {
	return m == MoveNone
}

// Check if the coordinates are within the board
func (m Move) Valid() bool {
	return m.Row >= 0 && m.Row < 9 && m.Col >= 0 && m.Col < 9
}

// Get the big index (local board index, 0-8) of a move
func (m Move) BigIndex() int {
	return (m.Row/3)*3 + m.Col/3
}

// Get the small index of the move within it's local board
func (m Move) SmallIndex() int {
	return (m.Row%3)*3 + m.Col%3
}

// Get string representation of the move, will contain
// a/b/c 1/2/3 as coorinates, for example big index = 7,
// small index = 2 -> <big index part><small index part>
// -> B1c3
//
//	     	A    B    C
//			 0 | 1 | 2	3
//			-----------
//			 3 | 4 | 5	2
//			-----------
//		     6 | 7 | 8	1
func (m Move) String() string {
	if !m.Valid() {
		return "(none)"
	}

	bi, si := m.BigIndex(), m.SmallIndex()
	builder := strings.Builder{}
	builder.WriteByte('A' + byte(bi%3))
	builder.WriteByte('3' - byte(bi/3))
	builder.WriteByte('a' + byte(si%3))
	builder.WriteByte('3' - byte(si/3))
	return builder.String()
}

// Convert given move notation (should be done with Move.String()) to Move
func MoveFromString(str string) (Move, error) {
	if str == "(none)" || str == "-" {
		return MoveNone, nil
	}
	if len(str) != 4 {
		return MoveNone, errors.Errorf("invalid move notation %q", str)
	}

	// Helper function to make sure the coordinates are withing the range
	_cmp := func(i int, letter byte) bool {
		return (str[i] >= letter && str[i] <= letter+2) &&
			(str[i+1] >= '1' && str[i+1] <= '3')
	}

	if _cmp(0, 'A') && _cmp(2, 'a') {
		return MoveAt(
			int((str[0]-'A')+('3'-str[1])*3),
			int((str[2]-'a')+('3'-str[3])*3)), nil
	}

	return MoveNone, errors.Errorf("invalid move notation %q", str)
}

// Moves are exchanged as [row, col] pairs
func (m Move) MarshalJSON() ([]byte, error) {
	if m.IsNone() {
		return []byte("null"), nil
	}
	return json.Marshal([2]int{m.Row, m.Col})
}

func (m *Move) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = MoveNone
		return nil
	}

	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return errors.Wrap(err, "move must be a [row, col] pair")
	}
	*m = Move{pair[0], pair[1]}
	return nil
}

func moveListString(moves []Move) string {
	if len(moves) == 0 {
		return "empty"
	}

	strMoves := make([]string, len(moves))
	for i, m := range moves {
		strMoves[i] = m.String()
	}
	return strings.Join(strMoves, " ")
}
